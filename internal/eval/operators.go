package eval

import (
	"math"

	"github.com/es3vm/es3vm/internal/ast"
	"github.com/es3vm/es3vm/internal/cerr"
	"github.com/es3vm/es3vm/internal/runtime"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

func (e *Evaluator) evalBinaryExpression(ctx *runtime.Context, b *ast.BinaryExpression) values.Value {
	left := e.evalExpression(ctx, b.Left)
	if isThrow(left) {
		return left
	}
	right := e.evalExpression(ctx, b.Right)
	if isThrow(right) {
		return right
	}
	return e.applyBinaryOperator(b.Operator, left, right)
}

// applyBinaryOperator implements ECMA-262 §11.5-§11.10. Every branch
// returns a plain (non-Completion) Value on success — the evalExpression
// family's convention throughout this package — or a Throw completion
// on failure.
func (e *Evaluator) applyBinaryOperator(op string, left, right values.Value) values.Value {
	switch op {
	case "+":
		return e.evalAdd(left, right)
	case "-":
		return e.numericOp(left, right, func(a, b float64) float64 { return a - b })
	case "*":
		return e.numericOp(left, right, func(a, b float64) float64 { return a * b })
	case "/":
		return e.numericOp(left, right, func(a, b float64) float64 { return a / b })
	case "%":
		return e.numericOp(left, right, mathMod)
	case "<":
		return e.relational(left, right, true, values.RelLess)
	case ">":
		return e.relational(right, left, false, values.RelLess)
	case "<=":
		return e.relational(right, left, false, values.RelGreaterOrEqual)
	case ">=":
		return e.relational(left, right, true, values.RelGreaterOrEqual)
	case "==":
		ok, err := values.AbstractEquals(left, right)
		if err != nil {
			return e.throw(err)
		}
		return values.Bool(ok)
	case "!=":
		ok, err := values.AbstractEquals(left, right)
		if err != nil {
			return e.throw(err)
		}
		return values.Bool(!ok)
	case "===":
		return values.Bool(values.StrictEquals(left, right))
	case "!==":
		return values.Bool(!values.StrictEquals(left, right))
	case "&":
		return e.bitwiseOp(left, right, func(a, b int32) int32 { return a & b })
	case "|":
		return e.bitwiseOp(left, right, func(a, b int32) int32 { return a | b })
	case "^":
		return e.bitwiseOp(left, right, func(a, b int32) int32 { return a ^ b })
	case "<<":
		return e.shiftLeft(left, right)
	case ">>":
		return e.shiftRightSigned(left, right)
	case ">>>":
		return e.shiftRightUnsigned(left, right)
	case "instanceof":
		return e.evalInstanceof(left, right)
	case "in":
		return e.evalIn(left, right)
	default:
		return e.throwNative(cerr.Error, "unsupported binary operator "+op)
	}
}

// evalAdd implements ECMA-262 §11.6.1: reduce both operands to
// primitives first; concatenate if either primitive is a String,
// otherwise add as numbers.
func (e *Evaluator) evalAdd(left, right values.Value) values.Value {
	lp, err := values.ToPrimitive(left, 0)
	if err != nil {
		return e.throw(err)
	}
	rp, err := values.ToPrimitive(right, 0)
	if err != nil {
		return e.throw(err)
	}
	if lp.Kind() == values.KindString || rp.Kind() == values.KindString {
		ls, err := values.ToString(lp)
		if err != nil {
			return e.throw(err)
		}
		rs, err := values.ToString(rp)
		if err != nil {
			return e.throw(err)
		}
		return values.String(strs.Concat(ls, rs))
	}
	ln, err := values.ToNumber(lp)
	if err != nil {
		return e.throw(err)
	}
	rn, err := values.ToNumber(rp)
	if err != nil {
		return e.throw(err)
	}
	return values.Number(ln + rn)
}

func (e *Evaluator) numericOp(left, right values.Value, op func(a, b float64) float64) values.Value {
	ln, err := values.ToNumber(left)
	if err != nil {
		return e.throw(err)
	}
	rn, err := values.ToNumber(right)
	if err != nil {
		return e.throw(err)
	}
	return values.Number(op(ln, rn))
}

// mathMod implements ECMA-262 §11.5.3's remainder operator: IEEE 754
// remainder with the sign following the dividend, which is exactly
// what Go's math.Mod computes.
func mathMod(a, b float64) float64 {
	return math.Mod(a, b)
}

func (e *Evaluator) relational(x, y values.Value, leftFirst bool, wantTrue values.RelCompareResult) values.Value {
	r, err := values.AbstractRelCompare(x, y, leftFirst)
	if err != nil {
		return e.throw(err)
	}
	if r == values.RelUndefined {
		return values.False
	}
	return values.Bool(r == wantTrue)
}

func (e *Evaluator) bitwiseOp(left, right values.Value, op func(a, b int32) int32) values.Value {
	ln, err := values.ToInt32(left)
	if err != nil {
		return e.throw(err)
	}
	rn, err := values.ToInt32(right)
	if err != nil {
		return e.throw(err)
	}
	return values.Number(float64(op(ln, rn)))
}

func (e *Evaluator) shiftLeft(left, right values.Value) values.Value {
	ln, err := values.ToInt32(left)
	if err != nil {
		return e.throw(err)
	}
	rn, err := values.ToUint32(right)
	if err != nil {
		return e.throw(err)
	}
	return values.Number(float64(ln << (rn & 31)))
}

func (e *Evaluator) shiftRightSigned(left, right values.Value) values.Value {
	ln, err := values.ToInt32(left)
	if err != nil {
		return e.throw(err)
	}
	rn, err := values.ToUint32(right)
	if err != nil {
		return e.throw(err)
	}
	return values.Number(float64(ln >> (rn & 31)))
}

func (e *Evaluator) shiftRightUnsigned(left, right values.Value) values.Value {
	ln, err := values.ToUint32(left)
	if err != nil {
		return e.throw(err)
	}
	rn, err := values.ToUint32(right)
	if err != nil {
		return e.throw(err)
	}
	return values.Number(float64(ln >> (rn & 31)))
}

// evalInstanceof implements ECMA-262 §11.8.6: the right operand must
// be an Object with [[HasInstance]] (only Function objects install it
// here), anything else raises TypeError.
func (e *Evaluator) evalInstanceof(left, right values.Value) values.Value {
	if right.Kind() != values.KindObject || !right.Obj().HasInstance() {
		return e.throwNative(cerr.TypeErrorKind, "right-hand side of 'instanceof' is not callable")
	}
	ok, err := right.Obj().HasInstanceOf(left)
	if err != nil {
		return e.throw(err)
	}
	return values.Bool(ok)
}

// evalIn implements ECMA-262 §11.8.7.
func (e *Evaluator) evalIn(left, right values.Value) values.Value {
	if right.Kind() != values.KindObject {
		return e.throwNative(cerr.TypeErrorKind, "'in' requires an object right-hand side")
	}
	name, err := values.ToString(left)
	if err != nil {
		return e.throw(err)
	}
	return values.Bool(right.Obj().HasProperty(name))
}

// evalLogicalExpression implements ECMA-262 §11.11: && and || only
// evaluate the right operand when the left doesn't already decide the
// result, and the result is whichever operand's (unconverted) value
// decided it.
func (e *Evaluator) evalLogicalExpression(ctx *runtime.Context, b *ast.LogicalExpression) values.Value {
	left := e.evalExpression(ctx, b.Left)
	if isThrow(left) {
		return left
	}
	switch b.Operator {
	case "&&":
		if !values.ToBoolean(left) {
			return left
		}
	case "||":
		if values.ToBoolean(left) {
			return left
		}
	}
	return e.evalExpression(ctx, b.Right)
}

// evalUnaryExpression implements ECMA-262 §11.4: delete and typeof
// operate on a Reference rather than a dereferenced value, so they get
// their operand via evalReference instead of evalExpression; prefix
// ++/-- are UnaryExpression operators too (ast.UpdateExpression only
// covers postfix).
func (e *Evaluator) evalUnaryExpression(ctx *runtime.Context, u *ast.UnaryExpression) values.Value {
	switch u.Operator {
	case "typeof":
		return e.evalTypeof(ctx, u.Operand)
	case "delete":
		return e.evalDelete(ctx, u.Operand)
	case "++", "--":
		return e.evalPrefixUpdate(ctx, u.Operator, u.Operand)
	case "void":
		v := e.evalExpression(ctx, u.Operand)
		if isThrow(v) {
			return v
		}
		return values.Undefined
	case "!":
		v := e.evalExpression(ctx, u.Operand)
		if isThrow(v) {
			return v
		}
		return values.Bool(!values.ToBoolean(v))
	case "-":
		v := e.evalExpression(ctx, u.Operand)
		if isThrow(v) {
			return v
		}
		n, err := values.ToNumber(v)
		if err != nil {
			return e.throw(err)
		}
		return values.Number(-n)
	case "+":
		v := e.evalExpression(ctx, u.Operand)
		if isThrow(v) {
			return v
		}
		n, err := values.ToNumber(v)
		if err != nil {
			return e.throw(err)
		}
		return values.Number(n)
	case "~":
		v := e.evalExpression(ctx, u.Operand)
		if isThrow(v) {
			return v
		}
		n, err := values.ToInt32(v)
		if err != nil {
			return e.throw(err)
		}
		return values.Number(float64(^n))
	default:
		return e.throwNative(cerr.Error, "unsupported unary operator "+u.Operator)
	}
}

// evalTypeof implements ECMA-262 §11.4.3's special case: an
// unresolvable identifier yields "undefined" rather than throwing
// ReferenceError, so it bypasses the normal getValue path and checks
// scope resolution directly.
func (e *Evaluator) evalTypeof(ctx *runtime.Context, arg ast.Expression) values.Value {
	if id, ok := arg.(*ast.Identifier); ok {
		if _, resolved := ctx.Scope.Resolve(strs.New(id.Name)); !resolved {
			return values.StringFromGo("undefined")
		}
	}
	v := e.evalExpression(ctx, arg)
	if isThrow(v) {
		return v
	}
	return values.StringFromGo(typeofString(v))
}

func typeofString(v values.Value) string {
	switch v.Kind() {
	case values.KindUndefined:
		return "undefined"
	case values.KindNull:
		return "object"
	case values.KindBoolean:
		return "boolean"
	case values.KindNumber:
		return "number"
	case values.KindString:
		return "string"
	case values.KindObject:
		if v.Obj().HasCall() {
			return "function"
		}
		return "object"
	default:
		return "undefined"
	}
}

// evalDelete implements ECMA-262 §11.4.1: deleting a non-reference
// expression (e.g. `delete 1`) always succeeds; an unresolvable
// reference also succeeds (there was nothing to delete); otherwise
// delegate to the base object's [[Delete]].
func (e *Evaluator) evalDelete(ctx *runtime.Context, arg ast.Expression) values.Value {
	switch a := arg.(type) {
	case *ast.Identifier:
		base, resolved := ctx.Scope.Resolve(strs.New(a.Name))
		if !resolved {
			return values.True
		}
		ok, err := base.Delete(strs.New(a.Name))
		if err != nil {
			return e.throw(err)
		}
		return values.Bool(ok)
	case *ast.MemberExpression:
		objV := e.evalExpression(ctx, a.Object)
		if isThrow(objV) {
			return objV
		}
		obj, err := e.toObjectForMember(objV)
		if err != nil {
			return e.throw(err)
		}
		name, errV := e.propertyName(ctx, a)
		if isThrow(errV) {
			return errV
		}
		ok, err := obj.Delete(name)
		if err != nil {
			return e.throw(err)
		}
		return values.Bool(ok)
	default:
		v := e.evalExpression(ctx, arg)
		if isThrow(v) {
			return v
		}
		return values.True
	}
}

// evalUpdateExpression implements ECMA-262 §11.3, the postfix x++/x--
// (ast.UpdateExpression is postfix-only; prefix forms are
// UnaryExpression, handled by evalPrefixUpdate).
func (e *Evaluator) evalUpdateExpression(ctx *runtime.Context, u *ast.UpdateExpression) values.Value {
	ref := e.evalReference(ctx, u.Operand)
	if isThrow(ref) {
		return ref
	}
	old := e.getValue(ref)
	if isThrow(old) {
		return old
	}
	n, err := values.ToNumber(old)
	if err != nil {
		return e.throw(err)
	}
	delta := 1.0
	if u.Operator == "--" {
		delta = -1.0
	}
	put := e.putValue(ref, values.Number(n+delta))
	if isThrow(put) {
		return put
	}
	return values.Number(n)
}

func (e *Evaluator) evalPrefixUpdate(ctx *runtime.Context, op string, arg ast.Expression) values.Value {
	ref := e.evalReference(ctx, arg)
	if isThrow(ref) {
		return ref
	}
	old := e.getValue(ref)
	if isThrow(old) {
		return old
	}
	n, err := values.ToNumber(old)
	if err != nil {
		return e.throw(err)
	}
	delta := 1.0
	if op == "--" {
		delta = -1.0
	}
	newVal := values.Number(n + delta)
	put := e.putValue(ref, newVal)
	if isThrow(put) {
		return put
	}
	return newVal
}
