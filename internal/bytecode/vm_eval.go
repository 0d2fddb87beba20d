package bytecode

import (
	"github.com/es3vm/es3vm/internal/cerr"
	"github.com/es3vm/es3vm/internal/compat"
	"github.com/es3vm/es3vm/internal/lexer"
	"github.com/es3vm/es3vm/internal/object"
	"github.com/es3vm/es3vm/internal/parser"
	"github.com/es3vm/es3vm/internal/runtime"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

// isDirectEvalName mirrors internal/eval.Evaluator.isDirectEvalCall for
// the bytecode backend: the compiler already restricted EVALCALL to a
// literal `eval` callee (see compileCallExpression), so all that's left
// at run time is the dynamic half — confirming the name wasn't shadowed
// by a local binding that resolves somewhere other than vm.global.
func (vm *VM) isDirectEvalName(scope *runtime.Scope) bool {
	owner, found := scope.Resolve(strs.New("eval"))
	return found && owner == values.Object(vm.global)
}

// runEvalSource parses source as a Program and runs its statements
// against the given scope/varObj/this, mirroring
// internal/eval.Evaluator.runEvalSource: each statement is compiled and
// executed through the ordinary bytecode pipeline, in a frame sharing
// the caller's own context, so declarations it hoists land in the
// caller's variable object exactly as a direct eval must. It returns a
// Normal completion of the last statement value, or a Throw completion.
func (vm *VM) runEvalSource(source string, scope *runtime.Scope, varObj values.Object, this values.Value) values.Value {
	var opts []lexer.Option
	if vm.compat != nil {
		opts = append(opts, parser.WithCompat(vm.compat))
	}
	prog, errs := parser.ParseProgram(source, opts...)
	if len(errs) > 0 {
		t := vm.throwNative(cerr.SyntaxErrKind, errs[0].Message)
		return values.NewCompletion(values.Throw, &t, 0)
	}

	chunk := Compile(prog, source)
	sub := &frame{
		vm:     vm,
		chunk:  chunk,
		scope:  scope,
		varObj: varObj,
		this:   this,
		c:      values.Normal,
	}
	sub.exec(0)
	switch sub.c {
	case values.Throw:
		cv := sub.cvalue
		return values.NewCompletion(values.Throw, &cv, 0)
	default:
		return values.NormalCompletion(sub.lastValue)
	}
}

// directEval runs a direct eval call's argument in the calling frame's
// own scope/variable object/this (ECMA-262 §15.1.2.1.1), returning a
// Normal completion of the result or the Throw completion unchanged.
func (vm *VM) directEval(f *frame, args []values.Value) values.Value {
	if len(args) == 0 {
		return values.NormalCompletion(values.Undefined)
	}
	if args[0].Kind() != values.KindString {
		return values.NormalCompletion(args[0])
	}
	return vm.runEvalSource(args[0].Str().MustUTF8(), f.scope, f.varObj, f.this)
}

// makeEvalFunction builds the global `eval` binding's callable object
// for the bytecode backend — the *indirect* eval variant, mirroring
// internal/eval.Evaluator.makeEvalFunction: runs in the global context
// by default, or (with the ext1 compat flag and an object receiver) in
// a context extended with that receiver, per spec.md §4.1/§6.2.
func (vm *VM) makeEvalFunction() *object.Base {
	fn := object.New("Function", vm.builtins.FunctionProto)
	attrs := values.DontEnum | values.DontDelete | values.ReadOnly
	fn.DefineOwnProperty(strs.New("name"), values.StringFromGo("eval"), attrs)
	fn.DefineOwnProperty(strs.New("length"), values.Number(1), attrs)

	fn.SetCall(func(this values.Value, args []values.Value) (values.Value, error) {
		if len(args) == 0 {
			return values.Undefined, nil
		}
		if args[0].Kind() != values.KindString {
			return args[0], nil
		}

		scope := runtime.NewScope(vm.global, nil)
		varObj := values.Object(vm.global)
		thisVal := values.FromObject(vm.global)
		if vm.compat.Has(compat.Ext1) && this.Kind() == values.KindObject {
			scope = runtime.NewScope(this.Obj(), scope)
			thisVal = this
		}

		result := vm.runEvalSource(args[0].Str().MustUTF8(), scope, varObj, thisVal)
		switch result.CompletionKind() {
		case values.Throw:
			return values.Undefined, asGoError(result.CompletionValue())
		case values.Normal:
			return result.CompletionValue(), nil
		default:
			return values.Undefined, nil
		}
	})
	return fn
}
