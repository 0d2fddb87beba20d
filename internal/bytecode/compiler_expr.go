package bytecode

import (
	"github.com/es3vm/es3vm/internal/ast"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

func (c *Compiler) compileExpr(expr ast.Expression) {
	switch x := expr.(type) {
	case *ast.NumberLiteral:
		c.emitB(LITERAL, c.chunk.addLiteral(values.Number(x.Value)))
	case *ast.StringLiteral:
		c.emitB(LITERAL, c.chunk.addLiteral(values.String(strs.FromUnits(x.Units))))
	case *ast.BooleanLiteral:
		c.emitB(LITERAL, c.chunk.addLiteral(values.Bool(x.Value)))
	case *ast.NullLiteral:
		c.emitB(LITERAL, c.chunk.addLiteral(values.Null))
	case *ast.ThisExpression:
		c.emitOp(THIS)
	case *ast.RegexLiteral:
		c.emitB(LITERAL, c.chunk.addLiteral(values.StringFromGo(x.Pattern)))
		c.emitB(LITERAL, c.chunk.addLiteral(values.StringFromGo(x.Flags)))
		c.emitOp(REGEXP)
	case *ast.Identifier:
		c.emitB(LOC, c.chunk.addName(x.Name))
		c.emitOp(LOOKUP)
		c.emitOp(GETVALUE)
	case *ast.ArrayLiteral:
		c.compileArrayLiteral(x)
	case *ast.ObjectLiteral:
		c.compileObjectLiteral(x)
	case *ast.FunctionLiteral:
		c.compileFunctionLiteral(x)
	case *ast.MemberExpression:
		c.compileMemberRef(x)
		c.emitOp(GETVALUE)
	case *ast.CallExpression:
		c.compileCallExpression(x)
	case *ast.NewExpression:
		c.compileNewExpression(x)
	case *ast.AssignmentExpression:
		c.compileAssignmentExpression(x)
	case *ast.ConditionalExpression:
		c.compileConditional(x)
	case *ast.SequenceExpression:
		c.compileSequence(x)
	case *ast.BinaryExpression:
		c.compileBinary(x)
	case *ast.LogicalExpression:
		c.compileLogical(x)
	case *ast.UnaryExpression:
		c.compileUnaryExpression(x)
	case *ast.UpdateExpression:
		c.compilePostfixUpdate(x)
	default:
		c.emitB(LITERAL, c.chunk.addLiteral(values.Undefined))
	}
}

// compileRef compiles expr as a Reference rather than a resolved
// value, for the constructs that need the reference itself (the
// left-hand side of an assignment/update, typeof/delete's identifier
// case, a for-in binding target).
func (c *Compiler) compileRef(expr ast.Expression) {
	switch x := expr.(type) {
	case *ast.Identifier:
		c.emitB(LOC, c.chunk.addName(x.Name))
		c.emitOp(LOOKUP)
	case *ast.MemberExpression:
		c.compileMemberRef(x)
	default:
		c.emitB(LITERAL, c.chunk.addLiteral(values.Undefined))
	}
}

func (c *Compiler) compileMemberRef(m *ast.MemberExpression) {
	c.compileExpr(m.Object)
	c.emitOp(TOOBJECT)
	if m.Computed {
		c.compileExpr(m.Property)
		c.emitOp(REF)
		return
	}
	id := m.Property.(*ast.Identifier)
	c.emitB(LOC, c.chunk.addName(id.Name))
	c.emitOp(REF)
}

func (c *Compiler) compileArrayLiteral(lit *ast.ArrayLiteral) {
	for _, elem := range lit.Elements {
		if elem == nil {
			// elision: materializes as undefined rather than a true
			// sparse hole (documented deviation, see DESIGN.md).
			c.emitB(LITERAL, c.chunk.addLiteral(values.Undefined))
			continue
		}
		c.compileExpr(elem)
	}
	c.emitB(ARRAY, uint16(len(lit.Elements)))
}

// objectLiteralKeyName resolves a Property's Key to its interned
// property name at compile time — the key grammar (Identifier,
// StringLiteral, NumberLiteral) never depends on anything evaluated at
// run time, mirroring internal/eval.objectLiteralKeyName exactly.
func (c *Compiler) objectLiteralKeyName(key ast.Expression) *strs.String {
	switch k := key.(type) {
	case *ast.Identifier:
		return strs.New(k.Name)
	case *ast.StringLiteral:
		return strs.FromUnits(k.Units)
	case *ast.NumberLiteral:
		s, _ := values.ToString(values.Number(k.Value))
		return s
	default:
		return strs.New("")
	}
}

// compileObjectLiteral mirrors internal/eval.evalObjectLiteral: a
// plain init property stores its value directly; a getter is invoked
// immediately with this bound to the object under construction, and
// its return value becomes the stored property (no accessor
// properties exist); a setter's value expression runs for its side
// effects and error propagation but its result is discarded (there is
// nowhere to store it).
func (c *Compiler) compileObjectLiteral(lit *ast.ObjectLiteral) {
	c.emitB(OBJECT, 0)
	for _, prop := range lit.Properties {
		key := c.objectLiteralKeyName(prop.Key)
		switch prop.Kind {
		case ast.PropertySet:
			c.compileExpr(prop.Value)
			c.emitOp(POP)

		case ast.PropertyGet:
			c.emitOp(DUP)                                             // [obj, obj]            (copy A: becomes `this`)
			c.emitOp(DUP)                                             // [obj, obj, obj]        (copy B: ref base)
			c.emitB(LITERAL, c.chunk.addLiteral(values.String(key)))  // [obj, obj, obj, key]
			c.emitOp(REF)                                             // [obj, obj, ref]
			c.compileExpr(prop.Value)                                 // [obj, obj, ref, fn]
			c.emitOp(ROLL3)                                           // swaps ref/copyA -> [obj, ref, obj, fn]
			c.emitB(CALL, 0)                                          // pops fn, this(copyA) -> [obj, ref, result]
			c.emitOp(PUTVALUE)                                        // pops result, ref, pushes result back -> [obj, result]
			c.emitOp(POP)                                             // [obj]

		default: // PropertyInit
			c.emitOp(DUP)                                            // [obj, obj]
			c.emitB(LITERAL, c.chunk.addLiteral(values.String(key))) // [obj, obj, key]
			c.emitOp(REF)                                            // [obj, ref]
			c.compileExpr(prop.Value)                                // [obj, ref, value]
			c.emitOp(PUTVALUE)                                       // pops value, ref, pushes value back -> [obj, value]
			c.emitOp(POP)                                            // [obj]
		}
	}
}

func (c *Compiler) compileFunctionLiteral(lit *ast.FunctionLiteral) {
	proto := compileFunctionProto(lit, c.chunk.Source)
	c.emitB(FUNC, c.chunk.addFunc(proto))
}

// compileCallExpression mirrors internal/eval.evalCallExpression's
// this-binding derivation: a member-expression callee builds its
// Reference once, uses BASE to pull `this` from that same reference,
// then GETVALUEs it for the callee — a plain callee always binds this
// to Undefined. A bare `eval(...)` callee is syntactically a direct
// eval call (ECMA-262 §15.1.2.1.1) and compiles to EVALCALL instead of
// CALL, so the VM can give it the executing frame's own scope/variable
// object/this when the name isn't locally shadowed — see vm_ops.go.
func (c *Compiler) compileCallExpression(call *ast.CallExpression) {
	if ident, ok := call.Callee.(*ast.Identifier); ok && ident.Name == "eval" {
		c.emitB(LITERAL, c.chunk.addLiteral(values.Undefined))
		c.compileExpr(call.Callee)
		for _, a := range call.Arguments {
			c.compileExpr(a)
		}
		c.emitB(EVALCALL, uint16(len(call.Arguments)))
		return
	}
	if member, ok := call.Callee.(*ast.MemberExpression); ok {
		c.compileMemberRef(member)
		c.emitOp(DUP)
		c.emitOp(BASE)
		c.emitOp(EXCH)
		c.emitOp(GETVALUE)
	} else {
		c.emitB(LITERAL, c.chunk.addLiteral(values.Undefined))
		c.compileExpr(call.Callee)
	}
	for _, a := range call.Arguments {
		c.compileExpr(a)
	}
	c.emitB(CALL, uint16(len(call.Arguments)))
}

func (c *Compiler) compileNewExpression(n *ast.NewExpression) {
	c.compileExpr(n.Callee)
	for _, a := range n.Arguments {
		c.compileExpr(a)
	}
	c.emitB(NEW, uint16(len(n.Arguments)))
}

// compileAssignmentExpression builds the target reference exactly
// once (so a computed member target's subscript expression is
// evaluated only once), matching
// internal/eval.evalAssignmentExpression.
func (c *Compiler) compileAssignmentExpression(a *ast.AssignmentExpression) {
	c.compileRef(a.Target)
	if a.Operator == "=" {
		c.compileExpr(a.Value)
		c.emitOp(PUTVALUE)
		return
	}
	c.emitOp(DUP)
	c.emitOp(GETVALUE)
	c.compileExpr(a.Value)
	op := a.Operator[:len(a.Operator)-1]
	c.emitBinaryOp(op)
	c.emitOp(PUTVALUE)
}

func (c *Compiler) compileConditional(cond *ast.ConditionalExpression) {
	c.compileExpr(cond.Test)
	c.emitOp(NOT)
	elseJump := c.emitJump(B_TRUE)
	c.compileExpr(cond.Consequent)
	endJump := c.emitJump(B_ALWAYS)
	c.patchJump(elseJump)
	c.compileExpr(cond.Alternate)
	c.patchJump(endJump)
}

func (c *Compiler) compileSequence(s *ast.SequenceExpression) {
	for i, e := range s.Expressions {
		if i > 0 {
			c.emitOp(POP)
		}
		c.compileExpr(e)
	}
}

func (c *Compiler) compileBinary(b *ast.BinaryExpression) {
	c.compileExpr(b.Left)
	c.compileExpr(b.Right)
	c.emitBinaryOp(b.Operator)
}

// compileLogical implements && and ||'s short-circuit: Left is kept
// unconverted as the result when it already decides the outcome (a
// falsy Left for &&, a truthy Left for ||); otherwise Left is
// discarded and Right's value is the result.
func (c *Compiler) compileLogical(b *ast.LogicalExpression) {
	c.compileExpr(b.Left)
	c.emitOp(DUP)
	if b.Operator == "&&" {
		c.emitOp(NOT)
	}
	// B_TRUE coerces its operand with ToBoolean itself, so no explicit
	// TOBOOLEAN is needed here (nor in compileIf/compileWhile/compileFor's
	// condition tests, all of which rely on the same NOT/B_TRUE
	// self-coercion).
	skip := c.emitJump(B_TRUE)
	c.emitOp(POP)
	c.compileExpr(b.Right)
	c.patchJump(skip)
}

func (c *Compiler) emitBinaryOp(op string) {
	switch op {
	case "+":
		c.emitOp(ADD)
	case "-":
		c.emitOp(SUB)
	case "*":
		c.emitOp(MUL)
	case "/":
		c.emitOp(DIV)
	case "%":
		c.emitOp(MOD)
	case "<<":
		c.emitOp(LSHIFT)
	case ">>":
		c.emitOp(RSHIFT)
	case ">>>":
		c.emitOp(URSHIFT)
	case "&":
		c.emitOp(BAND)
	case "^":
		c.emitOp(BXOR)
	case "|":
		c.emitOp(BOR)
	case "<":
		c.emitOp(LT)
	case ">":
		c.emitOp(GT)
	case "<=":
		c.emitOp(LE)
	case ">=":
		c.emitOp(GE)
	case "==":
		c.emitOp(EQ)
	case "!=":
		c.emitOp(EQ)
		c.emitOp(NOT)
	case "===":
		c.emitOp(SEQ)
	case "!==":
		c.emitOp(SEQ)
		c.emitOp(NOT)
	case "instanceof":
		c.emitOp(INSTANCEOF)
	case "in":
		c.emitOp(IN)
	}
}

func (c *Compiler) compileUnaryExpression(u *ast.UnaryExpression) {
	switch u.Operator {
	case "typeof":
		c.compileTypeof(u.Operand)
	case "delete":
		c.compileDelete(u.Operand)
	case "++", "--":
		c.compilePrefixUpdate(u.Operator, u.Operand)
	case "void":
		c.compileExpr(u.Operand)
		c.emitOp(POP)
		c.emitB(LITERAL, c.chunk.addLiteral(values.Undefined))
	case "!":
		c.compileExpr(u.Operand)
		c.emitOp(NOT)
	case "-":
		c.compileExpr(u.Operand)
		c.emitOp(NEG)
	case "+":
		c.compileExpr(u.Operand)
		c.emitOp(TONUMBER)
	case "~":
		c.compileExpr(u.Operand)
		c.emitOp(INV)
	}
}

// compileTypeof mirrors internal/eval.evalTypeof's identifier special
// case: an identifier typeof's its raw (possibly unresolved)
// reference directly, never going through GETVALUE's ReferenceError
// path — TYPEOF's own reference branch reports "undefined" for an
// unresolved name instead of throwing. Any other operand is a plain
// resolved value, and TYPEOF computes its type directly.
func (c *Compiler) compileTypeof(operand ast.Expression) {
	if id, ok := operand.(*ast.Identifier); ok {
		c.emitB(LOC, c.chunk.addName(id.Name))
		c.emitOp(LOOKUP)
	} else {
		c.compileExpr(operand)
	}
	c.emitOp(TYPEOF)
}

// compileDelete mirrors internal/eval.evalDelete: an identifier or
// member expression deletes through its reference (DELETE's
// zero-value RefBase fallback naturally returns true for an
// unresolved identifier); any other operand is evaluated for side
// effects only and always deletes to true.
func (c *Compiler) compileDelete(operand ast.Expression) {
	switch operand.(type) {
	case *ast.Identifier, *ast.MemberExpression:
		c.compileRef(operand)
	default:
		c.compileExpr(operand)
	}
	c.emitOp(DELETE)
}

func updateDelta(op string) values.Value {
	if op == "--" {
		return values.Number(-1)
	}
	return values.Number(1)
}

// compilePostfixUpdate mirrors internal/eval.evalUpdateExpression:
// builds the reference once, reads and coerces the old value, stores
// old+delta, and yields the OLD (pre-update) value. ROLL3 swaps the
// saved old value below the ref so PUTVALUE's [ref, value] order lines
// up without disturbing the old copy kept for the final result.
func (c *Compiler) compilePostfixUpdate(u *ast.UpdateExpression) {
	c.compileRef(u.Operand)
	c.emitOp(DUP)
	c.emitOp(GETVALUE)
	c.emitOp(TONUMBER)
	c.emitOp(DUP)
	c.emitB(LITERAL, c.chunk.addLiteral(updateDelta(u.Operator)))
	c.emitOp(ADD)
	c.emitOp(ROLL3)
	c.emitOp(PUTVALUE)
	c.emitOp(POP)
}

// compilePrefixUpdate mirrors internal/eval.evalPrefixUpdate: same
// read/coerce/store skeleton as the postfix form, but yields the NEW
// value and needs no extra juggling since nothing but the ref and the
// new value are ever on the stack.
func (c *Compiler) compilePrefixUpdate(op string, operand ast.Expression) {
	c.compileRef(operand)
	c.emitOp(DUP)
	c.emitOp(GETVALUE)
	c.emitOp(TONUMBER)
	c.emitB(LITERAL, c.chunk.addLiteral(updateDelta(op)))
	c.emitOp(ADD)
	c.emitOp(PUTVALUE)
}
