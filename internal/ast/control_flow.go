package ast

import (
	"strings"

	"github.com/es3vm/es3vm/internal/token"
)

// IfStatement is `if (cond) cons` or `if (cond) cons else alt`.
type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequent  Statement
	Alternate   Statement // nil if no else clause
}

func (i *IfStatement) statementNode()      {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) Pos() token.Position  { return i.Token.Pos }
func (i *IfStatement) String() string {
	var sb strings.Builder
	sb.WriteString("if (")
	sb.WriteString(i.Condition.String())
	sb.WriteString(") ")
	sb.WriteString(i.Consequent.String())
	if i.Alternate != nil {
		sb.WriteString(" else ")
		sb.WriteString(i.Alternate.String())
	}
	return sb.String()
}

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      Statement
}

func (w *WhileStatement) statementNode()      {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) Pos() token.Position  { return w.Token.Pos }
func (w *WhileStatement) String() string {
	return "while (" + w.Condition.String() + ") " + w.Body.String()
}

// DoWhileStatement is `do body while (cond);`.
type DoWhileStatement struct {
	Token     token.Token
	Body      Statement
	Condition Expression
}

func (d *DoWhileStatement) statementNode()      {}
func (d *DoWhileStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DoWhileStatement) Pos() token.Position  { return d.Token.Pos }
func (d *DoWhileStatement) String() string {
	return "do " + d.Body.String() + " while (" + d.Condition.String() + ");"
}

// ForStatement is the C-style `for (init; test; update) body`; Init,
// Test, and Update are each independently optional.
type ForStatement struct {
	Token  token.Token
	Init   Node // Expression, *VariableStatement, or nil
	Test   Expression
	Update Expression
	Body   Statement
}

func (f *ForStatement) statementNode()      {}
func (f *ForStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForStatement) Pos() token.Position  { return f.Token.Pos }
func (f *ForStatement) String() string {
	var sb strings.Builder
	sb.WriteString("for (")
	if f.Init != nil {
		sb.WriteString(f.Init.String())
	}
	sb.WriteString("; ")
	if f.Test != nil {
		sb.WriteString(f.Test.String())
	}
	sb.WriteString("; ")
	if f.Update != nil {
		sb.WriteString(f.Update.String())
	}
	sb.WriteString(") ")
	sb.WriteString(f.Body.String())
	return sb.String()
}

// ForInStatement is `for (var? left in right) body` (ECMA-262 §12.6.4).
type ForInStatement struct {
	Token     token.Token
	Left      Node // Expression or *VariableStatement with one declarator
	Right     Expression
	Body      Statement
}

func (f *ForInStatement) statementNode()      {}
func (f *ForInStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForInStatement) Pos() token.Position  { return f.Token.Pos }
func (f *ForInStatement) String() string {
	return "for (" + f.Left.String() + " in " + f.Right.String() + ") " + f.Body.String()
}

// SwitchCase is one `case expr: stmts` or the `default: stmts` clause of
// a SwitchStatement. Test is nil for the default clause.
type SwitchCase struct {
	Test       Expression
	Consequent []Statement
}

// SwitchStatement is `switch (disc) { case ...: ...; default: ...; }`.
type SwitchStatement struct {
	Token        token.Token
	Discriminant Expression
	Cases        []SwitchCase
}

func (s *SwitchStatement) statementNode()      {}
func (s *SwitchStatement) TokenLiteral() string { return s.Token.Literal }
func (s *SwitchStatement) Pos() token.Position  { return s.Token.Pos }
func (s *SwitchStatement) String() string {
	var sb strings.Builder
	sb.WriteString("switch (")
	sb.WriteString(s.Discriminant.String())
	sb.WriteString(") {")
	for _, c := range s.Cases {
		if c.Test != nil {
			sb.WriteString("case ")
			sb.WriteString(c.Test.String())
			sb.WriteString(": ")
		} else {
			sb.WriteString("default: ")
		}
		for _, stmt := range c.Consequent {
			sb.WriteString(stmt.String())
		}
	}
	sb.WriteString("}")
	return sb.String()
}
