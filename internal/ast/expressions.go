package ast

import (
	"strings"

	"github.com/es3vm/es3vm/internal/token"
)

// UnaryExpression is a prefix unary operator: `!x`, `-x`, `typeof x`,
// `delete x.y`, `void x`, `++x`, `--x`.
type UnaryExpression struct {
	Token    token.Token
	Operator string
	Operand  Expression
}

func (u *UnaryExpression) expressionNode()      {}
func (u *UnaryExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpression) Pos() token.Position  { return u.Token.Pos }
func (u *UnaryExpression) String() string       { return "(" + u.Operator + u.Operand.String() + ")" }
func (u *UnaryExpression) IsConst() bool {
	switch u.Operator {
	case "delete", "++", "--":
		return false
	default:
		return u.Operand.IsConst()
	}
}

// UpdateExpression is a postfix `x++`/`x--`.
type UpdateExpression struct {
	Token    token.Token
	Operator string
	Operand  Expression
}

func (u *UpdateExpression) expressionNode()      {}
func (u *UpdateExpression) IsConst() bool        { return false }
func (u *UpdateExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UpdateExpression) Pos() token.Position  { return u.Token.Pos }
func (u *UpdateExpression) String() string       { return "(" + u.Operand.String() + u.Operator + ")" }

// BinaryExpression is any left-associative binary operator, including
// the relational, equality, bitwise, and arithmetic families.
type BinaryExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() token.Position  { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}
func (b *BinaryExpression) IsConst() bool { return b.Left.IsConst() && b.Right.IsConst() }

// LogicalExpression is `&&` or `||` — kept distinct from BinaryExpression
// because its right operand evaluates conditionally (short-circuit),
// which matters for the constant-folding hook: it is never folded.
type LogicalExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (l *LogicalExpression) expressionNode()      {}
func (l *LogicalExpression) IsConst() bool        { return false }
func (l *LogicalExpression) TokenLiteral() string { return l.Token.Literal }
func (l *LogicalExpression) Pos() token.Position  { return l.Token.Pos }
func (l *LogicalExpression) String() string {
	return "(" + l.Left.String() + " " + l.Operator + " " + l.Right.String() + ")"
}

// AssignmentExpression is `target op= value` (`=`, `+=`, `-=`, ...).
type AssignmentExpression struct {
	Token    token.Token
	Target   Expression
	Operator string
	Value    Expression
}

func (a *AssignmentExpression) expressionNode()      {}
func (a *AssignmentExpression) IsConst() bool        { return false }
func (a *AssignmentExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AssignmentExpression) Pos() token.Position  { return a.Token.Pos }
func (a *AssignmentExpression) String() string {
	return "(" + a.Target.String() + " " + a.Operator + " " + a.Value.String() + ")"
}

// ConditionalExpression is the ternary `test ? cons : alt`.
type ConditionalExpression struct {
	Token       token.Token
	Test        Expression
	Consequent  Expression
	Alternate   Expression
}

func (c *ConditionalExpression) expressionNode()      {}
func (c *ConditionalExpression) TokenLiteral() string { return c.Token.Literal }
func (c *ConditionalExpression) Pos() token.Position  { return c.Token.Pos }
func (c *ConditionalExpression) String() string {
	return "(" + c.Test.String() + " ? " + c.Consequent.String() + " : " + c.Alternate.String() + ")"
}
func (c *ConditionalExpression) IsConst() bool {
	return c.Test.IsConst() && c.Consequent.IsConst() && c.Alternate.IsConst()
}

// SequenceExpression is the comma operator: `a, b, c`.
type SequenceExpression struct {
	Token       token.Token
	Expressions []Expression
}

func (s *SequenceExpression) expressionNode()      {}
func (s *SequenceExpression) IsConst() bool        { return false }
func (s *SequenceExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SequenceExpression) Pos() token.Position  { return s.Token.Pos }
func (s *SequenceExpression) String() string {
	parts := make([]string, len(s.Expressions))
	for i, e := range s.Expressions {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// MemberExpression is `object.property` or `object[property]`.
type MemberExpression struct {
	Token    token.Token
	Object   Expression
	Property Expression
	Computed bool // true for [property], false for .property
}

func (m *MemberExpression) expressionNode()      {}
func (m *MemberExpression) IsConst() bool        { return false }
func (m *MemberExpression) TokenLiteral() string { return m.Token.Literal }
func (m *MemberExpression) Pos() token.Position  { return m.Token.Pos }
func (m *MemberExpression) String() string {
	if m.Computed {
		return m.Object.String() + "[" + m.Property.String() + "]"
	}
	return m.Object.String() + "." + m.Property.String()
}

// CallExpression is `callee(args...)`.
type CallExpression struct {
	Token     token.Token
	Callee    Expression
	Arguments []Expression
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) IsConst() bool        { return false }
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) Pos() token.Position  { return c.Token.Pos }
func (c *CallExpression) String() string {
	parts := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		parts[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// NewExpression is `new callee(args...)`.
type NewExpression struct {
	Token     token.Token
	Callee    Expression
	Arguments []Expression
}

func (n *NewExpression) expressionNode()      {}
func (n *NewExpression) IsConst() bool        { return false }
func (n *NewExpression) TokenLiteral() string { return n.Token.Literal }
func (n *NewExpression) Pos() token.Position  { return n.Token.Pos }
func (n *NewExpression) String() string {
	parts := make([]string, len(n.Arguments))
	for i, a := range n.Arguments {
		parts[i] = a.String()
	}
	return "new " + n.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}
