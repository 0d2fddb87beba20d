package eval

import (
	"github.com/es3vm/es3vm/internal/ast"
	"github.com/es3vm/es3vm/internal/cerr"
	"github.com/es3vm/es3vm/internal/object"
	"github.com/es3vm/es3vm/internal/runtime"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

// evalStatement dispatches on stmt's concrete type and always returns
// a Completion value (ECMA-262 §8.9/§12): Normal carries the
// statement's completion value (empty for statements that don't
// produce one, represented here as Undefined); Break/Continue/Return/
// Throw propagate upward until a construct that handles them.
func (e *Evaluator) evalStatement(ctx *runtime.Context, stmt ast.Statement) values.Value {
	e.lastPos = stmt.Pos()
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		v := e.evalExpression(ctx, s.Expression)
		if isThrow(v) {
			return v
		}
		return values.NormalCompletion(v)
	case *ast.BlockStatement:
		return e.evalBlockStatement(ctx, s)
	case *ast.EmptyStatement:
		return values.NormalCompletion(values.Undefined)
	case *ast.VariableStatement:
		return e.evalVariableStatement(ctx, s)
	case *ast.FunctionDeclaration:
		// already instantiated and bound during hoisting.
		return values.NormalCompletion(values.Undefined)
	case *ast.IfStatement:
		return e.evalIfStatement(ctx, s)
	case *ast.WhileStatement:
		return e.evalWhileStatement(ctx, s, "")
	case *ast.DoWhileStatement:
		return e.evalDoWhileStatement(ctx, s, "")
	case *ast.ForStatement:
		return e.evalForStatement(ctx, s, "")
	case *ast.ForInStatement:
		return e.evalForInStatement(ctx, s, "")
	case *ast.BreakStatement:
		return e.evalBreakStatement(s)
	case *ast.ContinueStatement:
		return e.evalContinueStatement(s)
	case *ast.ReturnStatement:
		return e.evalReturnStatement(ctx, s)
	case *ast.WithStatement:
		return e.evalWithStatement(ctx, s)
	case *ast.SwitchStatement:
		return e.evalSwitchStatement(ctx, s, "")
	case *ast.ThrowStatement:
		return e.evalThrowStatement(ctx, s)
	case *ast.TryStatement:
		return e.evalTryStatement(ctx, s)
	case *ast.DebuggerStatement:
		return values.NormalCompletion(values.Undefined)
	case *ast.LabelledStatement:
		return e.evalLabelledBody(ctx, s.Body, s.Label)
	default:
		return e.throwNative(cerr.Error, "cannot evaluate statement")
	}
}

func (e *Evaluator) evalBlockStatement(ctx *runtime.Context, b *ast.BlockStatement) values.Value {
	result := values.Undefined
	for _, s := range b.Statements {
		c := e.evalStatement(ctx, s)
		if c.CompletionKind() != values.Normal {
			return c
		}
		result = c.CompletionValue()
	}
	return values.NormalCompletion(result)
}

// evalVariableStatement evaluates each initializer and writes it
// directly to the variable object, bypassing scope-chain resolution —
// var bindings always belong to the function/global variable object
// regardless of any with/catch object spliced into the scope chain in
// between (ECMA-262 §12.2).
func (e *Evaluator) evalVariableStatement(ctx *runtime.Context, vs *ast.VariableStatement) values.Value {
	for _, d := range vs.Declarations {
		if d.Init == nil {
			continue
		}
		v := e.evalExpression(ctx, d.Init)
		if isThrow(v) {
			return v
		}
		if err := ctx.VariableObj.Put(strs.New(d.Name.Name), v, values.DontDelete); err != nil {
			return e.throw(err)
		}
	}
	return values.NormalCompletion(values.Undefined)
}

func (e *Evaluator) evalIfStatement(ctx *runtime.Context, s *ast.IfStatement) values.Value {
	cond := e.evalExpression(ctx, s.Condition)
	if isThrow(cond) {
		return cond
	}
	if values.ToBoolean(cond) {
		return e.evalStatement(ctx, s.Consequent)
	}
	if s.Alternate != nil {
		return e.evalStatement(ctx, s.Alternate)
	}
	return values.NormalCompletion(values.Undefined)
}

func (e *Evaluator) evalWhileStatement(ctx *runtime.Context, s *ast.WhileStatement, label string) values.Value {
	target := e.labels.PushLoop(label)
	defer e.labels.Pop()

	result := values.Undefined
	for {
		cond := e.evalExpression(ctx, s.Condition)
		if isThrow(cond) {
			return cond
		}
		if !values.ToBoolean(cond) {
			break
		}
		c := e.evalStatement(ctx, s.Body)
		switch c.CompletionKind() {
		case values.Normal:
			result = c.CompletionValue()
		case values.Continue:
			if c.CompletionTarget() != target {
				return c
			}
		case values.Break:
			if c.CompletionTarget() != target {
				return c
			}
			return values.NormalCompletion(result)
		default:
			return c
		}
	}
	return values.NormalCompletion(result)
}

func (e *Evaluator) evalDoWhileStatement(ctx *runtime.Context, s *ast.DoWhileStatement, label string) values.Value {
	target := e.labels.PushLoop(label)
	defer e.labels.Pop()

	result := values.Undefined
	for {
		c := e.evalStatement(ctx, s.Body)
		switch c.CompletionKind() {
		case values.Normal:
			result = c.CompletionValue()
		case values.Continue:
			if c.CompletionTarget() != target {
				return c
			}
		case values.Break:
			if c.CompletionTarget() != target {
				return c
			}
			return values.NormalCompletion(result)
		default:
			return c
		}
		cond := e.evalExpression(ctx, s.Condition)
		if isThrow(cond) {
			return cond
		}
		if !values.ToBoolean(cond) {
			break
		}
	}
	return values.NormalCompletion(result)
}

func (e *Evaluator) evalForStatement(ctx *runtime.Context, s *ast.ForStatement, label string) values.Value {
	if s.Init != nil {
		switch init := s.Init.(type) {
		case *ast.VariableStatement:
			c := e.evalVariableStatement(ctx, init)
			if isAbrupt(c) {
				return c
			}
		case ast.Expression:
			v := e.evalExpression(ctx, init)
			if isThrow(v) {
				return v
			}
		}
	}

	target := e.labels.PushLoop(label)
	defer e.labels.Pop()

	result := values.Undefined
loop:
	for {
		if s.Test != nil {
			t := e.evalExpression(ctx, s.Test)
			if isThrow(t) {
				return t
			}
			if !values.ToBoolean(t) {
				break
			}
		}
		c := e.evalStatement(ctx, s.Body)
		switch c.CompletionKind() {
		case values.Normal:
			result = c.CompletionValue()
		case values.Continue:
			if c.CompletionTarget() != target {
				return c
			}
		case values.Break:
			if c.CompletionTarget() != target {
				return c
			}
			break loop
		default:
			return c
		}
		if s.Update != nil {
			u := e.evalExpression(ctx, s.Update)
			if isThrow(u) {
				return u
			}
		}
	}
	return values.NormalCompletion(result)
}

// evalForInStatement enumerates own-and-inherited enumerable property
// names, most-derived first, each name visited at most once even when
// shadowed further up the prototype chain (ECMA-262 §12.6.4). A right-
// hand side that is null/undefined iterates zero times; any other
// primitive also iterates zero times, since no wrapper objects exist to
// box it (Non-goal — see toObjectForMember).
func (e *Evaluator) evalForInStatement(ctx *runtime.Context, s *ast.ForInStatement, label string) values.Value {
	rightVal := e.evalExpression(ctx, s.Right)
	if isThrow(rightVal) {
		return rightVal
	}
	if rightVal.Kind() != values.KindObject {
		return values.NormalCompletion(values.Undefined)
	}
	obj := rightVal.Obj()
	names := enumerateNames(obj)

	target := e.labels.PushLoop(label)
	defer e.labels.Pop()

	result := values.Undefined
loop:
	for _, name := range names {
		if !obj.HasProperty(name) {
			continue // deleted by a previous iteration of the body
		}
		bound := e.bindForInTarget(ctx, s.Left, values.String(name))
		if isThrow(bound) {
			return bound
		}
		c := e.evalStatement(ctx, s.Body)
		switch c.CompletionKind() {
		case values.Normal:
			result = c.CompletionValue()
		case values.Continue:
			if c.CompletionTarget() != target {
				return c
			}
		case values.Break:
			if c.CompletionTarget() != target {
				return c
			}
			break loop
		default:
			return c
		}
	}
	return values.NormalCompletion(result)
}

func enumerateNames(obj values.Object) []*strs.String {
	seen := map[string]bool{}
	var out []*strs.String
	for cur := obj; cur != nil; cur = cur.Prototype() {
		for _, n := range cur.PropertyNames() {
			key := n.MustUTF8()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, n)
		}
	}
	return out
}

func (e *Evaluator) bindForInTarget(ctx *runtime.Context, left ast.Node, value values.Value) values.Value {
	switch l := left.(type) {
	case *ast.VariableStatement:
		name := strs.New(l.Declarations[0].Name.Name)
		if err := ctx.VariableObj.Put(name, value, values.DontDelete); err != nil {
			return e.throw(err)
		}
		return values.NormalCompletion(values.Undefined)
	case ast.Expression:
		ref := e.evalReference(ctx, l)
		if isThrow(ref) {
			return ref
		}
		return e.putValue(ref, value)
	default:
		return e.throwNative(cerr.Error, "invalid for-in target")
	}
}

func (e *Evaluator) evalBreakStatement(s *ast.BreakStatement) values.Value {
	target, ok := e.labels.ResolveBreak(s.Label)
	if !ok {
		return e.throwNative(cerr.SyntaxErrKind, "illegal break statement")
	}
	return values.NewCompletion(values.Break, nil, target)
}

func (e *Evaluator) evalContinueStatement(s *ast.ContinueStatement) values.Value {
	target, ok := e.labels.ResolveContinue(s.Label)
	if !ok {
		return e.throwNative(cerr.SyntaxErrKind, "illegal continue statement")
	}
	return values.NewCompletion(values.Continue, nil, target)
}

func (e *Evaluator) evalReturnStatement(ctx *runtime.Context, s *ast.ReturnStatement) values.Value {
	if s.Argument == nil {
		return values.NewCompletion(values.Return, nil, 0)
	}
	v := e.evalExpression(ctx, s.Argument)
	if isThrow(v) {
		return v
	}
	return values.NewCompletion(values.Return, &v, 0)
}

func (e *Evaluator) evalThrowStatement(ctx *runtime.Context, s *ast.ThrowStatement) values.Value {
	v := e.evalExpression(ctx, s.Argument)
	if isThrow(v) {
		return v
	}
	return values.NewCompletion(values.Throw, &v, 0)
}

func (e *Evaluator) evalWithStatement(ctx *runtime.Context, s *ast.WithStatement) values.Value {
	objV := e.evalExpression(ctx, s.Object)
	if isThrow(objV) {
		return objV
	}
	obj, err := e.toObjectForMember(objV)
	if err != nil {
		return e.throw(err)
	}
	return e.evalStatement(ctx.WithObject(obj), s.Body)
}

// evalTryStatement implements ECMA-262 §12.14: the finally block's own
// abrupt completion, when present, always wins over whatever the try/
// catch sequence produced.
func (e *Evaluator) evalTryStatement(ctx *runtime.Context, s *ast.TryStatement) values.Value {
	result := e.evalBlockStatement(ctx, s.Block)
	if result.CompletionKind() == values.Throw && s.Catch != nil {
		thrown := result.CompletionValue()
		catchObj := object.New("CatchScope", nil)
		catchObj.DefineOwnProperty(strs.New(s.Catch.Param.Name), thrown, values.DontDelete)
		result = e.evalBlockStatement(ctx.WithObject(catchObj), s.Catch.Body)
	}
	if s.Finally != nil {
		finallyResult := e.evalBlockStatement(ctx, s.Finally)
		if finallyResult.CompletionKind() != values.Normal {
			return finallyResult
		}
	}
	return result
}

// evalSwitchStatement implements ECMA-262 §12.11: cases are compared
// by strict equality in source order; execution falls through case
// boundaries once a match (or the default clause) is found. A switch
// is a break target like a loop, but never a continue target, so it is
// pushed with PushLabel (isLoop: false) rather than PushLoop.
func (e *Evaluator) evalSwitchStatement(ctx *runtime.Context, s *ast.SwitchStatement, label string) values.Value {
	discV := e.evalExpression(ctx, s.Discriminant)
	if isThrow(discV) {
		return discV
	}

	target := e.labels.PushLabel(label)
	defer e.labels.Pop()

	matchIdx, defaultIdx := -1, -1
	for i, c := range s.Cases {
		if c.Test == nil {
			defaultIdx = i
			continue
		}
		testV := e.evalExpression(ctx, c.Test)
		if isThrow(testV) {
			return testV
		}
		if values.StrictEquals(discV, testV) {
			matchIdx = i
			break
		}
	}
	start := matchIdx
	if start == -1 {
		start = defaultIdx
	}
	if start == -1 {
		return values.NormalCompletion(values.Undefined)
	}

	result := values.Undefined
	for i := start; i < len(s.Cases); i++ {
		for _, stmt := range s.Cases[i].Consequent {
			c := e.evalStatement(ctx, stmt)
			switch c.CompletionKind() {
			case values.Normal:
				result = c.CompletionValue()
			case values.Break:
				if c.CompletionTarget() == target {
					return values.NormalCompletion(result)
				}
				return c
			default:
				return c
			}
		}
	}
	return values.NormalCompletion(result)
}

// evalLabelledBody applies label to body. A loop or switch body pushes
// its own loop/label entry directly (so `break label;` and, for loops,
// `continue label;` both resolve to it); any other body is wrapped in
// a plain label scope that only `break label;` can reach.
func (e *Evaluator) evalLabelledBody(ctx *runtime.Context, body ast.Statement, label string) values.Value {
	switch b := body.(type) {
	case *ast.WhileStatement:
		return e.evalWhileStatement(ctx, b, label)
	case *ast.DoWhileStatement:
		return e.evalDoWhileStatement(ctx, b, label)
	case *ast.ForStatement:
		return e.evalForStatement(ctx, b, label)
	case *ast.ForInStatement:
		return e.evalForInStatement(ctx, b, label)
	case *ast.SwitchStatement:
		return e.evalSwitchStatement(ctx, b, label)
	default:
		target := e.labels.PushLabel(label)
		defer e.labels.Pop()
		c := e.evalStatement(ctx, body)
		if c.CompletionKind() == values.Break && c.CompletionTarget() == target {
			return values.NormalCompletion(c.CompletionValue())
		}
		return c
	}
}
