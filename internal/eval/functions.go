package eval

import (
	"github.com/es3vm/es3vm/internal/ast"
	"github.com/es3vm/es3vm/internal/cerr"
	"github.com/es3vm/es3vm/internal/object"
	"github.com/es3vm/es3vm/internal/runtime"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

// makeFunction builds a script-visible Function object for a
// FunctionLiteral (ECMA-262 §13.2): name/length are non-enumerable own
// properties, a fresh "prototype" object is created with a back-pointing
// "constructor", [[Call]]/[[Construct]] both invoke the same body, and
// [[HasInstance]] walks the instance's prototype chain for `instanceof`
// exactly as the native error constructors do.
// MakeFunction exports makeFunction for a host embedding this package
// directly, mirroring spec.md §6.1's parse_function/eval_functionbody
// split: a host parses a FunctionLiteral (pkg/es3.ParseFunction) and
// turns it into a callable Value bound to ctx's scope without ever
// installing it as a script-visible global.
func (e *Evaluator) MakeFunction(ctx *runtime.Context, lit *ast.FunctionLiteral) values.Value {
	return e.makeFunction(ctx, lit)
}

func (e *Evaluator) makeFunction(ctx *runtime.Context, lit *ast.FunctionLiteral) values.Value {
	fn := object.New("Function", e.builtins.FunctionProto)

	name := ""
	if lit.Name != nil {
		name = lit.Name.Name
	}
	attrs := values.DontEnum | values.DontDelete | values.ReadOnly
	fn.DefineOwnProperty(strs.New("name"), values.StringFromGo(name), attrs)
	fn.DefineOwnProperty(strs.New("length"), values.Number(float64(len(lit.Parameters))), attrs)

	proto := object.New("Object", e.builtins.ObjectProto)
	proto.DefineOwnProperty(strs.New("constructor"), values.FromObject(fn), values.DontEnum)
	fn.DefineOwnProperty(strs.New("prototype"), values.FromObject(proto), values.DontDelete)

	// A named function expression can refer to itself from within its
	// own body (ECMA-262 §13's NFE-binding); give it a private scope
	// link holding only that one binding, ahead of the defining scope.
	closureScope := ctx.Scope
	if lit.Name != nil {
		self := object.New("FunctionEnv", nil)
		self.DefineOwnProperty(strs.New(lit.Name.Name), values.FromObject(fn), values.DontDelete|values.ReadOnly)
		closureScope = runtime.NewScope(self, closureScope)
	}

	fn.SetCall(func(this values.Value, args []values.Value) (values.Value, error) {
		return e.invoke(fn, lit, closureScope, this, args, cerr.CallKindCall)
	})
	fn.SetConstruct(func(args []values.Value) (values.Value, error) {
		return e.construct(fn, proto, lit, closureScope, args)
	})
	fn.SetHasInstance(func(v values.Value) (bool, error) {
		if v.Kind() != values.KindObject {
			return false, nil
		}
		for cur := v.Obj().Prototype(); cur != nil; cur = cur.Prototype() {
			if cur == values.Object(proto) {
				return true, nil
			}
		}
		return false, nil
	})

	return values.FromObject(fn)
}

// invoke runs a function body as an ordinary call (ECMA-262 §13.2.1):
// a fresh activation object receives the parameter bindings and the
// `arguments` object, var/function declarations are hoisted into it,
// and the body's completion is converted to invoke's required (Value,
// error) signature — Throw becomes a Go error via asGoError so it can
// cross the values.Object.Call boundary, Return unwraps to its value,
// and any other completion (a bare fall-off-the-end Normal) yields
// undefined.
func (e *Evaluator) invoke(fn *object.Base, lit *ast.FunctionLiteral, closureScope *runtime.Scope, this values.Value, args []values.Value, kind cerr.CallKind) (values.Value, error) {
	if this.Kind() != values.KindObject {
		this = values.FromObject(closureScope.Global())
	}

	activation := object.New("activation", nil)
	for i, p := range lit.Parameters {
		var v values.Value = values.Undefined
		if i < len(args) {
			v = args[i]
		}
		activation.DefineOwnProperty(strs.New(p.Name), v, values.DontDelete)
	}
	activation.DefineOwnProperty(strs.New("arguments"), values.FromObject(e.makeArguments(fn, args)), values.DontDelete)

	fnCtx := runtime.NewFunctionContext(activation, closureScope, this)

	pos := lit.Pos()
	if err := e.calls.Push(functionName(lit), e.fileName, &pos, kind); err != nil {
		// A blown recursion budget or an aborted run both surface here;
		// script code sees a catchable RangeError either way, matching
		// real engines' "too much recursion" behavior.
		return values.Undefined, &values.RangeError{Message: err.Error()}
	}
	defer e.calls.Pop()

	savedLabels := e.labels
	e.labels = runtime.NewLabelStack()
	defer func() { e.labels = savedLabels }()

	e.hoist(fnCtx, lit.Body.Statements)
	result := e.evalBlockStatement(fnCtx, lit.Body)

	switch result.CompletionKind() {
	case values.Throw:
		return values.Undefined, asGoError(result)
	case values.Return:
		return result.CompletionValue(), nil
	default:
		return values.Undefined, nil
	}
}

// construct runs a function body as `new F(...)` (ECMA-262 §13.2.2): a
// fresh instance object is parented to F's own "prototype" property
// (not FunctionProto) and becomes `this`; if the body explicitly
// returns an Object, that value is used instead (the one case where a
// constructor's `return` is honored).
func (e *Evaluator) construct(fn *object.Base, proto *object.Base, lit *ast.FunctionLiteral, closureScope *runtime.Scope, args []values.Value) (values.Value, error) {
	instance := object.New("Object", proto)
	result, err := e.invoke(fn, lit, closureScope, values.FromObject(instance), args, cerr.CallKindConstruct)
	if err != nil {
		return values.Undefined, err
	}
	if result.Kind() == values.KindObject {
		return result, nil
	}
	return values.FromObject(instance), nil
}

func functionName(lit *ast.FunctionLiteral) string {
	if lit.Name != nil {
		return lit.Name.Name
	}
	return "<anonymous>"
}

// makeArguments builds the arguments object ECMA-262 §10.1.8 gives
// every function invocation: array-index-named own properties 0..N-1
// plus "length" and "callee" (DontEnum), all writable so script code
// can mutate them freely (an ES3 arguments object is not yet the
// live-parameter-aliasing exotic object of later editions; spec.md
// calls for the simpler snapshot form).
func (e *Evaluator) makeArguments(callee *object.Base, args []values.Value) *object.Base {
	obj := object.New("Arguments", e.builtins.ObjectProto)
	for i, v := range args {
		obj.DefineOwnProperty(strs.New(itoa(i)), v, 0)
	}
	obj.DefineOwnProperty(strs.New("length"), values.Number(float64(len(args))), values.DontEnum)
	obj.DefineOwnProperty(strs.New("callee"), values.FromObject(callee), values.DontEnum)
	return obj
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

// hoist implements ECMA-262 §10.1.3's variable instantiation: every
// var declared anywhere in stmts (except inside a nested function
// literal's own body) is pre-bound to undefined unless already bound,
// then every top-level function declaration is bound to its function
// object, later declarations of the same name overriding earlier ones
// and overriding any same-named hoisted var. Function declarations are
// only collected at the top level of stmts — ES3's grammar restricts
// FunctionDeclaration to direct SourceElements, so block-nested
// `function` statements are a non-standard extension this interpreter
// does not hoist block-locally.
func (e *Evaluator) hoist(ctx *runtime.Context, stmts []ast.Statement) {
	for _, name := range collectVarNames(stmts) {
		key := strs.New(name)
		if !ctx.VariableObj.HasProperty(key) {
			_ = ctx.VariableObj.Put(key, values.Undefined, values.DontDelete)
		}
	}
	for _, decl := range collectFunctionDecls(stmts) {
		fn := e.makeFunction(ctx, decl.Function)
		_ = ctx.VariableObj.Put(strs.New(decl.Function.Name.Name), fn, values.DontDelete)
	}
}

func collectFunctionDecls(stmts []ast.Statement) []*ast.FunctionDeclaration {
	var out []*ast.FunctionDeclaration
	for _, s := range stmts {
		if fd, ok := s.(*ast.FunctionDeclaration); ok {
			out = append(out, fd)
		}
	}
	return out
}

// collectVarNames walks every statement kind that can nest statements,
// collecting `var` names, but never descends into a FunctionLiteral's
// body (that function's own vars belong to its own activation object,
// instantiated when it is itself invoked).
func collectVarNames(stmts []ast.Statement) []string {
	var out []string
	var walkStmt func(ast.Statement)

	walkStmt = func(stmt ast.Statement) {
		switch s := stmt.(type) {
		case *ast.VariableStatement:
			for _, d := range s.Declarations {
				out = append(out, d.Name.Name)
			}
		case *ast.BlockStatement:
			for _, inner := range s.Statements {
				walkStmt(inner)
			}
		case *ast.IfStatement:
			walkStmt(s.Consequent)
			if s.Alternate != nil {
				walkStmt(s.Alternate)
			}
		case *ast.WhileStatement:
			walkStmt(s.Body)
		case *ast.DoWhileStatement:
			walkStmt(s.Body)
		case *ast.ForStatement:
			if vs, ok := s.Init.(*ast.VariableStatement); ok {
				walkStmt(vs)
			}
			walkStmt(s.Body)
		case *ast.ForInStatement:
			if vs, ok := s.Left.(*ast.VariableStatement); ok {
				walkStmt(vs)
			}
			walkStmt(s.Body)
		case *ast.WithStatement:
			walkStmt(s.Body)
		case *ast.LabelledStatement:
			walkStmt(s.Body)
		case *ast.SwitchStatement:
			for _, c := range s.Cases {
				for _, inner := range c.Consequent {
					walkStmt(inner)
				}
			}
		case *ast.TryStatement:
			walkStmt(s.Block)
			if s.Catch != nil {
				walkStmt(s.Catch.Body)
			}
			if s.Finally != nil {
				walkStmt(s.Finally)
			}
		}
	}

	for _, s := range stmts {
		walkStmt(s)
	}
	return out
}
