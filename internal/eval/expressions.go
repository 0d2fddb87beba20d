package eval

import (
	"github.com/es3vm/es3vm/internal/ast"
	"github.com/es3vm/es3vm/internal/cerr"
	"github.com/es3vm/es3vm/internal/compat"
	"github.com/es3vm/es3vm/internal/object"
	"github.com/es3vm/es3vm/internal/runtime"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

// evalExpression dispatches on expr's concrete type and always returns
// a plain (non-Completion) Value on success, or a Throw completion on
// failure — every caller in this package checks isThrow before using
// the result as an operand.
func (e *Evaluator) evalExpression(ctx *runtime.Context, expr ast.Expression) values.Value {
	switch x := expr.(type) {
	case *ast.NumberLiteral:
		return values.Number(x.Value)
	case *ast.StringLiteral:
		return values.String(strs.FromUnits(x.Units))
	case *ast.BooleanLiteral:
		return values.Bool(x.Value)
	case *ast.NullLiteral:
		return values.Null
	case *ast.ThisExpression:
		return ctx.ThisValue
	case *ast.RegexLiteral:
		return e.evalRegexLiteral(x)
	case *ast.Identifier:
		return e.evalIdentifier(ctx, x)
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(ctx, x)
	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(ctx, x)
	case *ast.FunctionLiteral:
		return e.makeFunction(ctx, x)
	case *ast.MemberExpression:
		ref := e.evalReference(ctx, x)
		if isThrow(ref) {
			return ref
		}
		return e.getValue(ref)
	case *ast.CallExpression:
		return e.evalCallExpression(ctx, x)
	case *ast.NewExpression:
		return e.evalNewExpression(ctx, x)
	case *ast.AssignmentExpression:
		return e.evalAssignmentExpression(ctx, x)
	case *ast.ConditionalExpression:
		return e.evalConditionalExpression(ctx, x)
	case *ast.SequenceExpression:
		return e.evalSequenceExpression(ctx, x)
	case *ast.BinaryExpression:
		return e.evalBinaryExpression(ctx, x)
	case *ast.LogicalExpression:
		return e.evalLogicalExpression(ctx, x)
	case *ast.UnaryExpression:
		return e.evalUnaryExpression(ctx, x)
	case *ast.UpdateExpression:
		return e.evalUpdateExpression(ctx, x)
	default:
		return e.throwNative(cerr.Error, "cannot evaluate expression")
	}
}

func (e *Evaluator) evalIdentifier(ctx *runtime.Context, id *ast.Identifier) values.Value {
	ref := e.evalReference(ctx, id)
	if isThrow(ref) {
		return ref
	}
	return e.getValue(ref)
}

// evalReference builds a Reference value for an Identifier or
// MemberExpression (ECMA-262 §8.7), shared by reads, assignment,
// update expressions, delete, and for-in target binding.
func (e *Evaluator) evalReference(ctx *runtime.Context, expr ast.Expression) values.Value {
	switch ex := expr.(type) {
	case *ast.Identifier:
		name := strs.New(ex.Name)
		base, _ := ctx.Scope.Resolve(name)
		return values.NewReference(base, name)
	case *ast.MemberExpression:
		objV := e.evalExpression(ctx, ex.Object)
		if isThrow(objV) {
			return objV
		}
		obj, err := e.toObjectForMember(objV)
		if err != nil {
			return e.throw(err)
		}
		name, errV := e.propertyName(ctx, ex)
		if isThrow(errV) {
			return errV
		}
		return values.NewReference(obj, name)
	default:
		return e.throwNative(cerr.RefErrorKind, "invalid assignment target")
	}
}

// propertyName computes a MemberExpression's property name: the
// literal identifier for `.property`, or ToString of the evaluated
// subscript for `[property]`.
func (e *Evaluator) propertyName(ctx *runtime.Context, m *ast.MemberExpression) (*strs.String, values.Value) {
	if !m.Computed {
		id := m.Property.(*ast.Identifier)
		return strs.New(id.Name), values.Value{}
	}
	v := e.evalExpression(ctx, m.Property)
	if isThrow(v) {
		return nil, v
	}
	name, err := values.ToString(v)
	if err != nil {
		return nil, e.throw(err)
	}
	return name, values.Value{}
}

func (e *Evaluator) getValue(ref values.Value) values.Value {
	v, err := runtime.GetValue(ref, e.undefDef())
	if err != nil {
		return e.throw(err)
	}
	return v
}

func (e *Evaluator) putValue(ref, value values.Value) values.Value {
	if err := runtime.PutValue(ref, value, e.global); err != nil {
		return e.throw(err)
	}
	return value
}

// undefDef reports whether reading an undeclared identifier should
// yield undefined instead of raising ReferenceError (a compat flag;
// off by default, matching strict ECMA-262 3rd edition behavior).
func (e *Evaluator) undefDef() bool {
	return e.compat.Has(compat.UndefDef)
}

func (e *Evaluator) evalArrayLiteral(ctx *runtime.Context, lit *ast.ArrayLiteral) values.Value {
	arr := object.NewArray(e.builtins.ObjectProto, uint32(len(lit.Elements)))
	for i, elem := range lit.Elements {
		if elem == nil {
			continue // elision: leaves a hole, `length` already accounts for it
		}
		v := e.evalExpression(ctx, elem)
		if isThrow(v) {
			return v
		}
		if err := arr.Put(strs.New(itoa(i)), v, 0); err != nil {
			return e.throw(err)
		}
	}
	return values.FromObject(arr)
}

// evalObjectLiteral implements ECMA-262 §11.1.5: PropertyInit entries
// are plain data properties; a PropertyGet entry's function is called
// once at construction time and its result stored as a data property,
// and a PropertySet entry is dropped (this interpreter has no accessor
// property kind, so a getter runs once up front rather than on every
// access, and no setter is installed).
func (e *Evaluator) evalObjectLiteral(ctx *runtime.Context, lit *ast.ObjectLiteral) values.Value {
	obj := object.New("Object", e.builtins.ObjectProto)
	for _, prop := range lit.Properties {
		name, err := e.objectLiteralKeyName(prop.Key)
		if err != nil {
			return e.throw(err)
		}
		v := e.evalExpression(ctx, prop.Value)
		if isThrow(v) {
			return v
		}
		switch prop.Kind {
		case ast.PropertyGet:
			if v.Kind() == values.KindObject && v.Obj().HasCall() {
				result, callErr := v.Obj().Call(values.FromObject(obj), nil)
				if callErr != nil {
					return e.rethrow(callErr)
				}
				v = result
			}
		case ast.PropertySet:
			continue // no accessor storage to invoke a setter against; value is dropped
		}
		obj.DefineOwnProperty(name, v, 0)
	}
	return values.FromObject(obj)
}

func (e *Evaluator) objectLiteralKeyName(key ast.Expression) (*strs.String, error) {
	switch k := key.(type) {
	case *ast.Identifier:
		return strs.New(k.Name), nil
	case *ast.StringLiteral:
		return strs.FromUnits(k.Units), nil
	case *ast.NumberLiteral:
		s, err := values.ToString(values.Number(k.Value))
		return s, err
	default:
		return nil, &values.TypeError{Message: "invalid object literal key"}
	}
}

// evalRegexLiteral builds a plain object carrying the literal's source
// text and flags (a full regular-expression engine is a Non-goal — see
// SPEC_FULL.md §C); `source`/`flags`/`lastIndex` give script code
// enough to introspect a regex literal without matching anything.
func (e *Evaluator) evalRegexLiteral(lit *ast.RegexLiteral) values.Value {
	obj := object.New("RegExp", e.builtins.ObjectProto)
	obj.DefineOwnProperty(strs.New("source"), values.StringFromGo(lit.Pattern), values.DontDelete|values.ReadOnly)
	obj.DefineOwnProperty(strs.New("flags"), values.StringFromGo(lit.Flags), values.DontDelete|values.ReadOnly)
	obj.DefineOwnProperty(strs.New("lastIndex"), values.Number(0), values.DontDelete)
	return values.FromObject(obj)
}

func (e *Evaluator) evalCallExpression(ctx *runtime.Context, call *ast.CallExpression) values.Value {
	if e.isDirectEvalCall(ctx, call.Callee) {
		return e.evalDirectEval(ctx, call)
	}

	this := values.Undefined
	var calleeVal values.Value
	if member, ok := call.Callee.(*ast.MemberExpression); ok {
		ref := e.evalReference(ctx, member)
		if isThrow(ref) {
			return ref
		}
		calleeVal = e.getValue(ref)
		if isThrow(calleeVal) {
			return calleeVal
		}
		if base, hasBase := ref.RefBase(); hasBase {
			this = values.FromObject(base)
		}
	} else {
		calleeVal = e.evalExpression(ctx, call.Callee)
		if isThrow(calleeVal) {
			return calleeVal
		}
	}

	args, v := e.evalArguments(ctx, call.Arguments)
	if isThrow(v) {
		return v
	}

	if calleeVal.Kind() != values.KindObject || !calleeVal.Obj().HasCall() {
		return e.throwNative(cerr.TypeErrorKind, "value is not a function")
	}
	result, err := calleeVal.Obj().Call(this, args)
	if err != nil {
		return e.rethrow(err)
	}
	return result
}

func (e *Evaluator) evalNewExpression(ctx *runtime.Context, n *ast.NewExpression) values.Value {
	calleeVal := e.evalExpression(ctx, n.Callee)
	if isThrow(calleeVal) {
		return calleeVal
	}
	args, v := e.evalArguments(ctx, n.Arguments)
	if isThrow(v) {
		return v
	}
	if calleeVal.Kind() != values.KindObject || !calleeVal.Obj().HasConstruct() {
		return e.throwNative(cerr.TypeErrorKind, "value is not a constructor")
	}
	result, err := calleeVal.Obj().Construct(args)
	if err != nil {
		return e.rethrow(err)
	}
	return result
}

// evalArguments evaluates each argument left to right, stopping at the
// first Throw; v is the zero Value on success.
func (e *Evaluator) evalArguments(ctx *runtime.Context, exprs []ast.Expression) ([]values.Value, values.Value) {
	args := make([]values.Value, 0, len(exprs))
	for _, a := range exprs {
		v := e.evalExpression(ctx, a)
		if isThrow(v) {
			return nil, v
		}
		args = append(args, v)
	}
	return args, values.Value{}
}

// evalAssignmentExpression implements ECMA-262 §11.13: `=` evaluates
// the value and writes it directly; a compound operator (`+=` etc.)
// reads the target's current value first, applies the corresponding
// binary operator, then writes the result. The target reference is
// built exactly once, so a computed member target (`a[f()] += 1`)
// evaluates its subscript expression a single time.
func (e *Evaluator) evalAssignmentExpression(ctx *runtime.Context, a *ast.AssignmentExpression) values.Value {
	ref := e.evalReference(ctx, a.Target)
	if isThrow(ref) {
		return ref
	}

	if a.Operator == "=" {
		v := e.evalExpression(ctx, a.Value)
		if isThrow(v) {
			return v
		}
		return e.putValue(ref, v)
	}

	old := e.getValue(ref)
	if isThrow(old) {
		return old
	}
	rhs := e.evalExpression(ctx, a.Value)
	if isThrow(rhs) {
		return rhs
	}
	op := a.Operator[:len(a.Operator)-1] // "+=" -> "+"
	result := e.applyBinaryOperator(op, old, rhs)
	if isThrow(result) {
		return result
	}
	return e.putValue(ref, result)
}

func (e *Evaluator) evalConditionalExpression(ctx *runtime.Context, c *ast.ConditionalExpression) values.Value {
	test := e.evalExpression(ctx, c.Test)
	if isThrow(test) {
		return test
	}
	if values.ToBoolean(test) {
		return e.evalExpression(ctx, c.Consequent)
	}
	return e.evalExpression(ctx, c.Alternate)
}

func (e *Evaluator) evalSequenceExpression(ctx *runtime.Context, s *ast.SequenceExpression) values.Value {
	var result values.Value = values.Undefined
	for _, expr := range s.Expressions {
		result = e.evalExpression(ctx, expr)
		if isThrow(result) {
			return result
		}
	}
	return result
}
