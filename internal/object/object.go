// Package object implements the ECMA-262 §4.2 object protocol: property
// tables with attribute bits, prototype chains, and the [[Call]]/
// [[Construct]] capability flags that let script-visible functions,
// arrays, and plain objects all satisfy values.Object.
package object

import (
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

// property is one entry in an object's own property table.
type property struct {
	value values.Value
	attr  values.PropAttr
}

// Base is the common implementation every concrete object type embeds.
// It supplies the ordinary (non-exotic) [[Get]]/[[Put]]/[[Delete]]/
// [[DefaultValue]] algorithms of ECMA-262 §8.6.2; exotic objects (arrays,
// functions, arguments objects) override individual methods.
type Base struct {
	class string
	proto values.Object

	names []*strs.String // insertion order, for PropertyNames/enumerate
	props map[*strs.String]*property

	extensible bool

	callFn        func(this values.Value, args []values.Value) (values.Value, error)
	constructFn   func(args []values.Value) (values.Value, error)
	hasInstanceFn func(values.Value) (bool, error)
}

// New creates a Base object of the given class with the given prototype
// (nil for none, matching Object.prototype's own chain terminator).
func New(class string, proto values.Object) *Base {
	return &Base{
		class:      class,
		proto:      proto,
		props:      make(map[*strs.String]*property),
		extensible: true,
	}
}

func (o *Base) Class() string           { return o.class }
func (o *Base) Prototype() values.Object { return o.proto }
func (o *Base) SetPrototype(p values.Object) { o.proto = p }

// findOwn looks up a property on this object only (no prototype walk),
// matching by code-unit content rather than pointer identity so callers
// don't have to pre-intern every property name.
func (o *Base) findOwn(name *strs.String) (*property, *strs.String) {
	for _, n := range o.names {
		if n.Equal(name) {
			return o.props[n], n
		}
	}
	return nil, nil
}

// Get implements ECMA-262 §8.6.2.1 [[Get]]: walk this object, then its
// prototype chain, returning Undefined if the property is nowhere found.
func (o *Base) Get(name *strs.String) (values.Value, error) {
	var cur values.Object = o
	for cur != nil {
		if b, ok := cur.(*Base); ok {
			if p, _ := b.findOwn(name); p != nil {
				return p.value, nil
			}
			cur = b.proto
			continue
		}
		// A non-Base object further up the chain (e.g. a host object):
		// defer to its own Get, which already walks its own prototype.
		if cur.HasProperty(name) {
			return cur.Get(name)
		}
		return values.Undefined, nil
	}
	return values.Undefined, nil
}

// CanPut implements ECMA-262 §8.6.2.3: false if a ReadOnly own property
// exists, or a ReadOnly property exists anywhere up the prototype chain
// with no writable own shadow; true otherwise (including when nothing is
// found, subject to [[Extensible]], checked by Put itself at write time
// per spec.md's simplification "CanPut ignores the Extensible internal
// property").
func (o *Base) CanPut(name *strs.String) bool {
	if p, _ := o.findOwn(name); p != nil {
		return p.attr&values.ReadOnly == 0
	}
	if b, ok := o.proto.(*Base); ok {
		return b.CanPut(name)
	}
	if o.proto != nil {
		return o.proto.CanPut(name)
	}
	return true
}

// Put implements ECMA-262 §8.6.2.2 [[Put]].
func (o *Base) Put(name *strs.String, v values.Value, attr values.PropAttr) error {
	if !o.CanPut(name) {
		return nil
	}
	if p, existing := o.findOwn(name); p != nil {
		p.value = v
		_ = existing
		return nil
	}
	if !o.extensible {
		return nil
	}
	o.defineOwn(name, v, attr)
	return nil
}

// defineOwn creates or overwrites an own property unconditionally,
// bypassing CanPut — used by Put for new properties and by object
// literal/array/argument-object construction.
func (o *Base) defineOwn(name *strs.String, v values.Value, attr values.PropAttr) {
	if p, existing := o.findOwn(name); p != nil {
		p.value = v
		p.attr = attr
		_ = existing
		return
	}
	o.names = append(o.names, name)
	o.props[name] = &property{value: v, attr: attr}
}

// DefineOwnProperty is the exported form of defineOwn, for the parser/
// evaluator building object and array literals and for host code
// registering built-ins.
func (o *Base) DefineOwnProperty(name *strs.String, v values.Value, attr values.PropAttr) {
	o.defineOwn(name, v, attr)
}

// HasProperty implements ECMA-262 §8.6.2.4.
func (o *Base) HasProperty(name *strs.String) bool {
	var cur values.Object = o
	for cur != nil {
		b, ok := cur.(*Base)
		if !ok {
			return cur.HasProperty(name)
		}
		if p, _ := b.findOwn(name); p != nil {
			return true
		}
		cur = b.proto
	}
	return false
}

// Delete implements ECMA-262 §8.6.2.5: own properties only.
func (o *Base) Delete(name *strs.String) (bool, error) {
	p, found := o.findOwn(name)
	if p == nil {
		return true, nil
	}
	if p.attr&values.DontDelete != 0 {
		return false, nil
	}
	delete(o.props, found)
	for i, n := range o.names {
		if n == found {
			o.names = append(o.names[:i], o.names[i+1:]...)
			break
		}
	}
	return true, nil
}

// DefaultValue implements ECMA-262 §8.6.2.6: try toString/valueOf in the
// order the hint dictates, falling back to the other on TypeError or a
// non-primitive result.
func (o *Base) DefaultValue(hint values.Kind) (values.Value, error) {
	order := []string{"valueOf", "toString"}
	if hint == values.KindString {
		order = []string{"toString", "valueOf"}
	}
	for _, name := range order {
		method, err := o.Get(strs.New(name))
		if err != nil {
			return values.Undefined, err
		}
		if method.Kind() != values.KindObject || !method.Obj().HasCall() {
			continue
		}
		result, err := method.Obj().Call(values.FromObject(o), nil)
		if err != nil {
			return values.Undefined, err
		}
		if result.IsPrimitive() {
			return result, nil
		}
	}
	return values.Undefined, &values.TypeError{Message: "cannot convert object to primitive value"}
}

// PropertyNames returns own enumerable (non-DontEnum) property names in
// insertion order, per ECMA-262 §12.6.4's for-in enumeration order
// requirement (unspecified by the spec in general, but insertion order
// is what every real engine does and what spec.md §4.4 calls for).
func (o *Base) PropertyNames() []*strs.String {
	out := make([]*strs.String, 0, len(o.names))
	for _, n := range o.names {
		if o.props[n].attr&values.DontEnum == 0 {
			out = append(out, n)
		}
	}
	return out
}

// AllOwnPropertyNames returns every own property name regardless of
// DontEnum, for host introspection (e.g. JSON export).
func (o *Base) AllOwnPropertyNames() []*strs.String {
	out := make([]*strs.String, len(o.names))
	copy(out, o.names)
	return out
}

// HasCall, Call, HasConstruct, Construct, HasInstance, and HasInstanceOf
// implement the capability-flag idiom (an object either has the
// internal [[Call]]/[[Construct]] methods or it doesn't); a plain Base
// has none of them until SetCall/SetConstruct install one (used by
// internal/eval's and internal/bytecode's function objects, this
// package's built-in constructors, and pkg/es3's host functions).
func (o *Base) HasCall() bool { return o.callFn != nil }

func (o *Base) Call(this values.Value, args []values.Value) (values.Value, error) {
	if o.callFn == nil {
		return values.Undefined, &values.TypeError{Message: o.class + " is not callable"}
	}
	return o.callFn(this, args)
}

func (o *Base) SetCall(fn func(this values.Value, args []values.Value) (values.Value, error)) {
	o.callFn = fn
}

func (o *Base) HasConstruct() bool { return o.constructFn != nil }

func (o *Base) Construct(args []values.Value) (values.Value, error) {
	if o.constructFn == nil {
		return values.Undefined, &values.TypeError{Message: o.class + " is not a constructor"}
	}
	return o.constructFn(args)
}

func (o *Base) SetConstruct(fn func(args []values.Value) (values.Value, error)) {
	o.constructFn = fn
}

// HasInstance and HasInstanceOf back the instanceof operator (ECMA-262
// §11.8.6); only Function objects normally implement [[HasInstance]],
// via internal/eval wiring SetHasInstance with the prototype-chain walk.
func (o *Base) HasInstance() bool { return o.hasInstanceFn != nil }

func (o *Base) HasInstanceOf(v values.Value) (bool, error) {
	if o.hasInstanceFn == nil {
		return false, &values.TypeError{Message: o.class + " has no [[HasInstance]]"}
	}
	return o.hasInstanceFn(v)
}

func (o *Base) SetHasInstance(fn func(values.Value) (bool, error)) {
	o.hasInstanceFn = fn
}

// Extensible reports ECMA-262's internal [[Extensible]] flag.
func (o *Base) Extensible() bool      { return o.extensible }
func (o *Base) SetExtensible(e bool)  { o.extensible = e }
