// Package ast defines the Abstract Syntax Tree node types for ECMA-262
// 3rd edition source text.
package ast

import (
	"bytes"
	"strings"

	"github.com/es3vm/es3vm/internal/token"
)

// Node is the base interface every AST node satisfies.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
	// IsConst reports whether the expression is a compile-time
	// constant (spec.md §4.3). The parser does not fold constants:
	// `1 + 2` stays a BinaryExpression, whose IsConst reports true.
	IsConst() bool
}

// Statement is any node that performs an action without producing a value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: a source text's top-level statement list.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

// Identifier names a variable, property, or label.
type Identifier struct {
	Token token.Token
	Name  string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) IsConst() bool        { return false }
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() token.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Name }

// ThisExpression is the `this` keyword.
type ThisExpression struct {
	Token token.Token
}

func (t *ThisExpression) expressionNode()      {}
func (t *ThisExpression) IsConst() bool        { return false }
func (t *ThisExpression) TokenLiteral() string { return t.Token.Literal }
func (t *ThisExpression) Pos() token.Position  { return t.Token.Pos }
func (t *ThisExpression) String() string       { return "this" }

// NullLiteral is the `null` keyword.
type NullLiteral struct {
	Token token.Token
}

func (n *NullLiteral) expressionNode()      {}
func (n *NullLiteral) IsConst() bool        { return true }
func (n *NullLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NullLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *NullLiteral) String() string       { return "null" }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) IsConst() bool        { return true }
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) Pos() token.Position  { return b.Token.Pos }
func (b *BooleanLiteral) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// NumberLiteral is any numeric literal (decimal, hex, or octal — the
// lexer has already normalized the spelling to a float64).
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) IsConst() bool        { return true }
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *NumberLiteral) String() string       { return n.Token.Literal }

// StringLiteral is a quoted string literal, already escape-decoded by
// the lexer into UTF-16 code units.
type StringLiteral struct {
	Token token.Token
	Units []uint16
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) IsConst() bool        { return true }
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) Pos() token.Position  { return s.Token.Pos }
func (s *StringLiteral) String() string       { return "\"" + s.Token.Literal + "\"" }

// RegexLiteral is a `/pattern/flags` literal.
type RegexLiteral struct {
	Token   token.Token
	Pattern string
	Flags   string
}

func (r *RegexLiteral) expressionNode()      {}
func (r *RegexLiteral) IsConst() bool        { return false } // a fresh RegExp object each evaluation
func (r *RegexLiteral) TokenLiteral() string { return r.Token.Literal }
func (r *RegexLiteral) Pos() token.Position  { return r.Token.Pos }
func (r *RegexLiteral) String() string       { return "/" + r.Pattern + "/" + r.Flags }

// ArrayLiteral is `[elem, elem, ...]`; a nil element models an elision
// (`[1, , 3]`).
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode()      {}
func (a *ArrayLiteral) IsConst() bool        { return false }
func (a *ArrayLiteral) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayLiteral) Pos() token.Position  { return a.Token.Pos }
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		if e == nil {
			parts[i] = ""
			continue
		}
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// PropertyKind distinguishes an object literal's property shorthand
// forms (ECMA-262 §11.1.5).
type PropertyKind int

const (
	PropertyInit PropertyKind = iota
	PropertyGet
	PropertySet
)

// Property is one entry of an ObjectLiteral.
type Property struct {
	Key   Expression // Identifier or StringLiteral or NumberLiteral
	Value Expression
	Kind  PropertyKind
}

// ObjectLiteral is `{ key: value, get x() {...}, ... }`.
type ObjectLiteral struct {
	Token      token.Token
	Properties []Property
}

func (o *ObjectLiteral) expressionNode()      {}
func (o *ObjectLiteral) IsConst() bool        { return false }
func (o *ObjectLiteral) TokenLiteral() string { return o.Token.Literal }
func (o *ObjectLiteral) Pos() token.Position  { return o.Token.Pos }
func (o *ObjectLiteral) String() string {
	parts := make([]string, len(o.Properties))
	for i, p := range o.Properties {
		parts[i] = p.Key.String() + ": " + p.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
