package ast

import (
	"strings"

	"github.com/es3vm/es3vm/internal/token"
)

// FunctionLiteral is a function expression or declaration (ECMA-262
// §13): `function name(params) { body }`. Name is nil for an anonymous
// function expression.
type FunctionLiteral struct {
	Token      token.Token
	Name       *Identifier // nil for an anonymous function expression
	Parameters []Identifier
	Body       *BlockStatement
}

func (f *FunctionLiteral) expressionNode()      {}
func (f *FunctionLiteral) IsConst() bool        { return false }
func (f *FunctionLiteral) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionLiteral) Pos() token.Position  { return f.Token.Pos }
func (f *FunctionLiteral) String() string {
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = p.String()
	}
	var sb strings.Builder
	sb.WriteString("function ")
	if f.Name != nil {
		sb.WriteString(f.Name.String())
	}
	sb.WriteString("(")
	sb.WriteString(strings.Join(params, ", "))
	sb.WriteString(") ")
	sb.WriteString(f.Body.String())
	return sb.String()
}

// FunctionDeclaration is a FunctionLiteral appearing as a statement
// (ECMA-262 §13: "FunctionDeclaration ::= function Identifier (...) {...}"),
// hoisted to the top of its enclosing scope; it is bound after the
// scope's var names and overrides a same-named var.
type FunctionDeclaration struct {
	Function *FunctionLiteral
}

func (f *FunctionDeclaration) statementNode()      {}
func (f *FunctionDeclaration) TokenLiteral() string { return f.Function.TokenLiteral() }
func (f *FunctionDeclaration) Pos() token.Position  { return f.Function.Pos() }
func (f *FunctionDeclaration) String() string       { return f.Function.String() }
