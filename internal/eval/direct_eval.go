package eval

import (
	"github.com/es3vm/es3vm/internal/ast"
	"github.com/es3vm/es3vm/internal/cerr"
	"github.com/es3vm/es3vm/internal/compat"
	"github.com/es3vm/es3vm/internal/lexer"
	"github.com/es3vm/es3vm/internal/object"
	"github.com/es3vm/es3vm/internal/parser"
	"github.com/es3vm/es3vm/internal/runtime"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

// isDirectEvalCall recognizes the one syntactic shape ECMA-262 §15.1.2.1.1
// calls "a direct call to eval": the callee is literally the identifier
// `eval`, resolving to this Evaluator's own global eval binding rather
// than some local shadow of the name.
func (e *Evaluator) isDirectEvalCall(ctx *runtime.Context, callee ast.Expression) bool {
	ident, ok := callee.(*ast.Identifier)
	if !ok || ident.Name != "eval" {
		return false
	}
	owner, found := ctx.Scope.Resolve(strs.New("eval"))
	return found && owner == e.global
}

// evalDirectEval runs a direct eval call in the caller's own execution
// context (spec.md §4.6/Module K's eval_functionbody): the evaluated
// source sees the caller's scope chain, variable object, and `this`,
// exactly as if its statements had been written in place of the call.
func (e *Evaluator) evalDirectEval(ctx *runtime.Context, call *ast.CallExpression) values.Value {
	args, v := e.evalArguments(ctx, call.Arguments)
	if isThrow(v) {
		return v
	}
	if len(args) == 0 {
		return values.Undefined
	}
	if args[0].Kind() != values.KindString {
		return args[0] // eval of a non-string returns it unevaluated (§15.1.2.1 step 2)
	}
	return e.runEvalSource(args[0].Str().MustUTF8(), ctx)
}

// runEvalSource parses source as a Program and runs its statements in
// ctx, returning the last expression statement's value as a plain
// Value on success, or the Throw/other abrupt completion itself so the
// caller can propagate it unchanged.
func (e *Evaluator) runEvalSource(source string, ctx *runtime.Context) values.Value {
	var opts []lexer.Option
	if e.compat != nil {
		opts = append(opts, parser.WithCompat(e.compat))
	}
	prog, errs := parser.ParseProgram(source, opts...)
	if len(errs) > 0 {
		return e.throwNative(cerr.SyntaxErrKind, errs[0].Message)
	}

	e.hoist(ctx, prog.Statements)
	result := values.Undefined
	for _, stmt := range prog.Statements {
		c := e.evalStatement(ctx, stmt)
		switch c.CompletionKind() {
		case values.Normal:
			result = c.CompletionValue()
		default:
			return c
		}
	}
	return result
}

// makeEvalFunction builds the global `eval` binding's callable object:
// its [[Call]] implements the *indirect* eval variant (any call not
// recognized by isDirectEvalCall — e.g. `var e = eval; e(str)`, or
// `obj.eval(str)`), which spec.md §6.2 pins to running in the global
// context by default. With the `ext1` compat flag set, the receiver
// (this call's `this`) instead supplies `this`, the variable object,
// and a scope extension — spec.md §4.1's "special eval-with-this".
func (e *Evaluator) makeEvalFunction() *object.Base {
	fn := object.New("Function", e.builtins.FunctionProto)
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

		ctx := runtime.NewGlobalContext(e.global)
		if e.compat.Has(compat.Ext1) && this.Kind() == values.KindObject {
			ctx = ctx.WithObject(this.Obj())
			ctx.ThisValue = this
		}

		result := e.runEvalSource(args[0].Str().MustUTF8(), ctx)
		if isThrow(result) {
			return values.Undefined, asGoError(result)
		}
		if isAbrupt(result) {
			return values.Undefined, nil
		}
		return result, nil
	})
	return fn
}
