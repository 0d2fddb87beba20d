package bytecode

import (
	"github.com/es3vm/es3vm/internal/ast"
	"github.com/es3vm/es3vm/internal/cerr"
	"github.com/es3vm/es3vm/internal/object"
	"github.com/es3vm/es3vm/internal/runtime"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

// thrownValue carries a script Throw completion's exact value across a
// values.Object Call/Construct boundary, mirroring internal/eval's own
// thrownValue — the two packages can't share the unexported type, but
// the contract (wrap on the way out, unwrap via rethrow on the way
// back) is identical so a thrown object's identity survives a round
// trip through a bytecode function invocation exactly as it does
// through the tree walker's.
type thrownValue struct{ value values.Value }

func (t *thrownValue) Error() string { return "uncaught script exception: " + t.value.String() }

func asGoError(v values.Value) error { return &thrownValue{value: v} }

// rethrow converts the Go error coming back from a values.Object Call/
// Construct into the thrown value when it came from script code, or
// classifies a host/runtime error otherwise.
func (vm *VM) rethrow(err error) values.Value {
	if tv, ok := err.(*thrownValue); ok {
		return tv.value
	}
	return vm.throwErr(err)
}

// Rethrow exports rethrow for a host that calls a values.Object it got
// from MakeFunction directly (spec.md §6.1's eval_functionbody) and
// needs the same error (Go error) ↔ completion (values.Value)
// conversion invoke itself uses.
func (vm *VM) Rethrow(err error) values.Value {
	v := vm.rethrow(err)
	return values.NewCompletion(values.Throw, &v, 0)
}

// MakeFunction exports compileFunctionProto+makeFunction for a host
// embedding this package directly, mirroring spec.md §6.1's
// parse_function/eval_functionbody split: a host parses a
// FunctionLiteral (pkg/es3.ParseFunction) and turns it into a callable
// Value closed over closureScope, without installing it as a
// script-visible global.
func (vm *VM) MakeFunction(lit *ast.FunctionLiteral, source string, closureScope *runtime.Scope) values.Value {
	proto := compileFunctionProto(lit, source)
	return vm.makeFunction(proto, closureScope)
}

// makeFunction builds a script-visible Function object for a compiled
// FuncProto, mirroring internal/eval.Evaluator.makeFunction exactly:
// name/length as non-enumerable own properties, a fresh "prototype"
// object with a back-pointing "constructor", [[Call]]/[[Construct]]
// both running the same compiled chunk, and [[HasInstance]] walking
// the instance's prototype chain.
func (vm *VM) makeFunction(proto *FuncProto, closureScope *runtime.Scope) values.Value {
	fn := object.New("Function", vm.builtins.FunctionProto)

	attrs := values.DontEnum | values.DontDelete | values.ReadOnly
	fn.DefineOwnProperty(strs.New("name"), values.StringFromGo(proto.Name), attrs)
	fn.DefineOwnProperty(strs.New("length"), values.Number(float64(len(proto.Params))), attrs)

	protoObj := object.New("Object", vm.builtins.ObjectProto)
	protoObj.DefineOwnProperty(strs.New("constructor"), values.FromObject(fn), values.DontEnum)
	fn.DefineOwnProperty(strs.New("prototype"), values.FromObject(protoObj), values.DontDelete)

	if proto.Name != "" {
		self := object.New("FunctionEnv", nil)
		self.DefineOwnProperty(strs.New(proto.Name), values.FromObject(fn), values.DontDelete|values.ReadOnly)
		closureScope = runtime.NewScope(self, closureScope)
	}

	fn.SetCall(func(this values.Value, args []values.Value) (values.Value, error) {
		return vm.invoke(fn, proto, closureScope, this, args, cerr.CallKindCall)
	})
	fn.SetConstruct(func(args []values.Value) (values.Value, error) {
		return vm.construct(fn, protoObj, proto, closureScope, args)
	})
	fn.SetHasInstance(func(v values.Value) (bool, error) {
		if v.Kind() != values.KindObject {
			return false, nil
		}
		for cur := v.Obj().Prototype(); cur != nil; cur = cur.Prototype() {
			if cur == values.Object(protoObj) {
				return true, nil
			}
		}
		return false, nil
	})

	return values.FromObject(fn)
}

// invoke runs a compiled function body as an ordinary call, mirroring
// internal/eval.Evaluator.invoke: a fresh activation object receives
// parameter bindings and the arguments object, and the frame's final
// completion is converted to invoke's required (Value, error) form.
func (vm *VM) invoke(fn *object.Base, proto *FuncProto, closureScope *runtime.Scope, this values.Value, args []values.Value, kind cerr.CallKind) (values.Value, error) {
	if this.Kind() != values.KindObject {
		this = values.FromObject(closureScope.Global())
	}

	activation := object.New("activation", nil)
	for i, name := range proto.Params {
		v := values.Undefined
		if i < len(args) {
			v = args[i]
		}
		activation.DefineOwnProperty(strs.New(name), v, values.DontDelete)
	}
	activation.DefineOwnProperty(strs.New("arguments"), values.FromObject(vm.makeArguments(fn, args)), values.DontDelete)

	fnScope := runtime.NewScope(activation, closureScope)

	if err := vm.calls.Push(funcDisplayName(proto), vm.fileName, nil, kind); err != nil {
		return values.Undefined, &values.RangeError{Message: err.Error()}
	}
	defer vm.calls.Pop()

	fr := &frame{
		vm:     vm,
		chunk:  proto.Chunk,
		scope:  fnScope,
		varObj: activation,
		this:   this,
		c:      values.Normal,
	}
	fr.exec(0)

	switch fr.c {
	case values.Throw:
		return values.Undefined, asGoError(fr.cvalue)
	case values.Return:
		return fr.cvalue, nil
	default:
		return values.Undefined, nil
	}
}

// construct runs a compiled function body as `new F(...)`, mirroring
// internal/eval.Evaluator.construct: a fresh instance parented to F's
// own "prototype" property becomes `this`; an explicit Object return
// overrides it.
func (vm *VM) construct(fn *object.Base, protoObj *object.Base, proto *FuncProto, closureScope *runtime.Scope, args []values.Value) (values.Value, error) {
	instance := object.New("Object", protoObj)
	result, err := vm.invoke(fn, proto, closureScope, values.FromObject(instance), args, cerr.CallKindConstruct)
	if err != nil {
		return values.Undefined, err
	}
	if result.Kind() == values.KindObject {
		return result, nil
	}
	return values.FromObject(instance), nil
}

func funcDisplayName(proto *FuncProto) string {
	if proto.Name != "" {
		return proto.Name
	}
	return "<anonymous>"
}

// makeArguments builds the arguments object every invocation gets,
// mirroring internal/eval.Evaluator.makeArguments: snapshot
// array-index-named own properties plus "length" and "callee".
func (vm *VM) makeArguments(callee *object.Base, args []values.Value) *object.Base {
	obj := object.New("Arguments", vm.builtins.ObjectProto)
	for i, v := range args {
		obj.DefineOwnProperty(strs.New(itoa(i)), v, 0)
	}
	obj.DefineOwnProperty(strs.New("length"), values.Number(float64(len(args))), values.DontEnum)
	obj.DefineOwnProperty(strs.New("callee"), values.FromObject(callee), values.DontEnum)
	return obj
}
