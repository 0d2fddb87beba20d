package object

import (
	"github.com/es3vm/es3vm/internal/cerr"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

// errorNames maps each native error kind to its script-visible
// constructor/prototype name (ECMA-262 §15.11.6).
var errorNames = []cerr.Kind{
	cerr.Error,
	cerr.TypeErrorKind,
	cerr.RangeErrorKind,
	cerr.RefErrorKind,
	cerr.SyntaxErrKind,
	cerr.URIErrorKind,
}

// Builtins bundles the minimal Object.prototype/Function.prototype and
// native Error family every program needs to make the object protocol
// concrete and testable; it is not a standard library (Non-goal —
// Math/Array/String/Date methods are out of scope, see SPEC_FULL.md §C).
type Builtins struct {
	ObjectProto   *Base
	FunctionProto *Base
	ErrorProtos   map[cerr.Kind]*Base
	Constructors  map[cerr.Kind]*Base
}

// NewBuiltins wires the prototype chain: ObjectProto has no parent;
// FunctionProto inherits from it; Error.prototype inherits from it too,
// and every other native error kind's prototype inherits from
// Error.prototype, per §15.11.6 ("NativeError.prototype... is an
// instance of Error").
func NewBuiltins() *Builtins {
	objProto := New("Object", nil)
	objProto.DefineOwnProperty(strs.New("toString"), values.FromObject(
		newNativeFunction(nil, "toString", 0, objectToString)), values.DontEnum)
	objProto.DefineOwnProperty(strs.New("valueOf"), values.FromObject(
		newNativeFunction(nil, "valueOf", 0, objectValueOf)), values.DontEnum)

	funcProto := New("Function", objProto)
	funcProto.SetCall(func(values.Value, []values.Value) (values.Value, error) {
		return values.Undefined, nil
	})

	// the two toString/valueOf natives above were built before funcProto
	// existed, so their own prototype link (nil) is patched in now.
	patchFunctionProto(objProto, funcProto)

	b := &Builtins{
		ObjectProto:   objProto,
		FunctionProto: funcProto,
		ErrorProtos:   make(map[cerr.Kind]*Base),
		Constructors:  make(map[cerr.Kind]*Base),
	}

	errorProto := New(string(cerr.Error), objProto)
	b.ErrorProtos[cerr.Error] = errorProto
	b.installErrorMembers(errorProto, string(cerr.Error))
	b.Constructors[cerr.Error] = b.newErrorConstructor(cerr.Error, errorProto, funcProto)

	for _, kind := range errorNames {
		if kind == cerr.Error {
			continue
		}
		proto := New(string(kind), errorProto)
		b.ErrorProtos[kind] = proto
		b.installErrorMembers(proto, string(kind))
		b.Constructors[kind] = b.newErrorConstructor(kind, proto, funcProto)
	}

	return b
}

// patchFunctionProto re-parents natives that had to be built before
// Function.prototype existed (Object.prototype's own toString/valueOf).
func patchFunctionProto(objProto, funcProto *Base) {
	for _, name := range []string{"toString", "valueOf"} {
		v, _ := objProto.Get(strs.New(name))
		if v.Kind() == values.KindObject {
			if fn, ok := v.Obj().(*Base); ok {
				fn.SetPrototype(funcProto)
			}
		}
	}
}

// newNativeFunction builds a callable-only Function object: a Base with
// [[Call]] installed and the non-enumerable name/length ECMA-262 §15.3.5
// gives every native function.
func newNativeFunction(proto values.Object, name string, length int, fn func(values.Value, []values.Value) (values.Value, error)) *Base {
	f := New("Function", proto)
	f.SetCall(fn)
	attrs := values.DontEnum | values.DontDelete | values.ReadOnly
	f.DefineOwnProperty(strs.New("name"), values.StringFromGo(name), attrs)
	f.DefineOwnProperty(strs.New("length"), values.Number(float64(length)), attrs)
	return f
}

func objectToString(this values.Value, _ []values.Value) (values.Value, error) {
	class := "Object"
	if this.Kind() == values.KindObject {
		class = this.Obj().Class()
	}
	return values.StringFromGo("[object " + class + "]"), nil
}

func objectValueOf(this values.Value, _ []values.Value) (values.Value, error) {
	return this, nil
}

// installErrorMembers gives an error prototype the own "name" data
// property and shared "toString" method of ECMA-262 §15.11.4.
func (b *Builtins) installErrorMembers(proto *Base, name string) {
	proto.DefineOwnProperty(strs.New("name"), values.StringFromGo(name), values.DontEnum)
	proto.DefineOwnProperty(strs.New("message"), values.StringFromGo(""), values.DontEnum)
	proto.DefineOwnProperty(strs.New("toString"), values.FromObject(
		newNativeFunction(b.FunctionProto, "toString", 0, errorToString)), values.DontEnum)
}

func errorToString(this values.Value, _ []values.Value) (values.Value, error) {
	if this.Kind() != values.KindObject {
		return values.Undefined, &values.TypeError{Message: "Error.prototype.toString called on a non-object"}
	}
	obj := this.Obj()
	nameV, err := obj.Get(strs.New("name"))
	if err != nil {
		return values.Undefined, err
	}
	name, err := values.ToString(nameV)
	if err != nil {
		return values.Undefined, err
	}
	msgV, err := obj.Get(strs.New("message"))
	if err != nil {
		return values.Undefined, err
	}
	msg, err := values.ToString(msgV)
	if err != nil {
		return values.Undefined, err
	}
	if msg.Len() == 0 {
		return values.String(name), nil
	}
	return values.StringFromGo(name.MustUTF8() + ": " + msg.MustUTF8()), nil
}

// newErrorConstructor builds the Function object for one native error
// kind: [[Call]] and [[Construct]] behave identically (§15.11.1 — calling
// Error without `new` is the same as constructing it), and [[HasInstance]]
// walks the prototype chain for `instanceof`.
func (b *Builtins) newErrorConstructor(kind cerr.Kind, proto *Base, funcProto values.Object) *Base {
	build := func(args []values.Value) (values.Value, error) {
		obj := New(string(kind), proto)
		if len(args) > 0 && !args[0].IsUndefined() {
			msg, err := values.ToString(args[0])
			if err != nil {
				return values.Undefined, err
			}
			obj.DefineOwnProperty(strs.New("message"), values.String(msg), values.DontEnum)
		}
		return values.FromObject(obj), nil
	}

	ctor := New("Function", funcProto)
	ctor.SetCall(func(_ values.Value, args []values.Value) (values.Value, error) { return build(args) })
	ctor.SetConstruct(build)
	ctor.SetHasInstance(func(v values.Value) (bool, error) {
		if v.Kind() != values.KindObject {
			return false, nil
		}
		for cur := v.Obj().Prototype(); cur != nil; cur = cur.Prototype() {
			if cur == proto {
				return true, nil
			}
		}
		return false, nil
	})
	attrs := values.DontEnum | values.DontDelete | values.ReadOnly
	ctor.DefineOwnProperty(strs.New("prototype"), values.FromObject(proto), attrs)
	proto.DefineOwnProperty(strs.New("constructor"), values.FromObject(ctor), values.DontEnum)
	return ctor
}

// NewErrorConstructors adapts Builtins into cerr.Constructors, letting
// internal/eval and internal/runtime raise native errors without
// importing internal/object (breaking what would otherwise be an import
// cycle between cerr, object, and eval).
func (b *Builtins) NewErrorConstructors() cerr.Constructors {
	return cerr.Constructors{
		New: func(kind cerr.Kind, message string) values.Object {
			proto, ok := b.ErrorProtos[kind]
			if !ok {
				proto = b.ErrorProtos[cerr.Error]
			}
			obj := New(string(kind), proto)
			obj.DefineOwnProperty(strs.New("message"), values.StringFromGo(message), values.DontEnum)
			return obj
		},
	}
}
