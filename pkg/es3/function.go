package es3

import (
	"fmt"
	"strings"

	"github.com/es3vm/es3vm/internal/ast"
	"github.com/es3vm/es3vm/internal/parser"
	"github.com/es3vm/es3vm/internal/values"
)

// ParseFunction parses a function from its name, parameter list, and
// body text as one unit (spec.md §6.1's parse_function) — the host
// embedding equivalent of the ECMA-262 §15.3.2.1 Function constructor
// algorithm, without installing a global Function constructor (a
// Non-goal; see SPEC_FULL.md §C). Parameters and body are assembled
// into a single function expression and parsed once, so a syntax
// error anywhere in either is reported against that combined source;
// name may be empty for an anonymous function.
func (i *Interpreter) ParseFunction(name string, params []string, body string) (*ast.FunctionLiteral, *CompileError) {
	source := "(function " + name + "(" + strings.Join(params, ", ") + ") {\n" + body + "\n})"
	i.source = source
	prog, errs := parser.ParseProgram(source, i.lexerOpts()...)
	if len(errs) > 0 {
		return nil, i.newCompileError("parse_function", errs)
	}

	stmt, ok := prog.Statements[0].(*ast.ExpressionStatement)
	lit, litOK := stmt.Expression.(*ast.FunctionLiteral)
	if len(prog.Statements) != 1 || !ok || !litOK {
		return nil, i.newCompileError("parse_function", []*parser.Error{
			{Message: "parameters and body did not parse as a single function"},
		})
	}
	return lit, nil
}

// EvalFunctionBody turns a parsed function into a callable Value bound
// to this interpreter's global scope and invokes it once with this/
// args, returning its completion (spec.md §6.1's eval_functionbody).
// An uncaught throw inside the body surfaces as *ScriptError, exactly
// as it does from Eval/Run.
func (i *Interpreter) EvalFunctionBody(fn *ast.FunctionLiteral, this values.Value, args []values.Value) (Result, error) {
	var fnVal values.Value
	if i.useVM {
		fnVal = i.vm.MakeFunction(fn, i.source, i.vm.NewGlobalContext().Scope)
	} else {
		fnVal = i.tree.MakeFunction(i.tree.NewGlobalContext(), fn)
	}

	if fnVal.Kind() != values.KindObject || !fnVal.Obj().HasCall() {
		return Result{}, fmt.Errorf("es3: parsed function is not callable")
	}

	result, err := fnVal.Obj().Call(this, args)
	if err != nil {
		var completion values.Value
		if i.useVM {
			completion = i.vm.Rethrow(err)
		} else {
			completion = i.tree.Rethrow(err)
		}
		return i.resultFromCompletion(completion)
	}
	return Result{Value: result}, nil
}
