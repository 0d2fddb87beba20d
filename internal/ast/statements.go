package ast

import (
	"strings"

	"github.com/es3vm/es3vm/internal/token"
)

// ExpressionStatement wraps an expression evaluated for its side effect.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) statementNode()      {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) Pos() token.Position  { return e.Token.Pos }
func (e *ExpressionStatement) String() string       { return e.Expression.String() + ";" }

// BlockStatement is `{ stmt; stmt; ... }`.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (b *BlockStatement) statementNode()      {}
func (b *BlockStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStatement) Pos() token.Position  { return b.Token.Pos }
func (b *BlockStatement) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for _, s := range b.Statements {
		sb.WriteString(s.String())
	}
	sb.WriteString("}")
	return sb.String()
}

// EmptyStatement is a bare `;`.
type EmptyStatement struct {
	Token token.Token
}

func (e *EmptyStatement) statementNode()      {}
func (e *EmptyStatement) TokenLiteral() string { return e.Token.Literal }
func (e *EmptyStatement) Pos() token.Position  { return e.Token.Pos }
func (e *EmptyStatement) String() string       { return ";" }

// VariableDeclarator is one `name` or `name = init` in a var statement.
type VariableDeclarator struct {
	Name Identifier
	Init Expression // nil if no initializer
}

// VariableStatement is `var a, b = 1, c;`.
type VariableStatement struct {
	Token        token.Token
	Declarations []VariableDeclarator
}

func (v *VariableStatement) statementNode()      {}
func (v *VariableStatement) TokenLiteral() string { return v.Token.Literal }
func (v *VariableStatement) Pos() token.Position  { return v.Token.Pos }
func (v *VariableStatement) String() string {
	parts := make([]string, len(v.Declarations))
	for i, d := range v.Declarations {
		if d.Init != nil {
			parts[i] = d.Name.String() + " = " + d.Init.String()
		} else {
			parts[i] = d.Name.String()
		}
	}
	return "var " + strings.Join(parts, ", ") + ";"
}

// ReturnStatement is `return;` or `return expr;`.
type ReturnStatement struct {
	Token    token.Token
	Argument Expression // nil for a bare return
}

func (r *ReturnStatement) statementNode()      {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStatement) Pos() token.Position  { return r.Token.Pos }
func (r *ReturnStatement) String() string {
	if r.Argument == nil {
		return "return;"
	}
	return "return " + r.Argument.String() + ";"
}

// BreakStatement is `break;` or `break label;`.
type BreakStatement struct {
	Token token.Token
	Label string // "" if unlabelled
}

func (b *BreakStatement) statementNode()      {}
func (b *BreakStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BreakStatement) Pos() token.Position  { return b.Token.Pos }
func (b *BreakStatement) String() string {
	if b.Label == "" {
		return "break;"
	}
	return "break " + b.Label + ";"
}

// ContinueStatement is `continue;` or `continue label;`.
type ContinueStatement struct {
	Token token.Token
	Label string
}

func (c *ContinueStatement) statementNode()      {}
func (c *ContinueStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ContinueStatement) Pos() token.Position  { return c.Token.Pos }
func (c *ContinueStatement) String() string {
	if c.Label == "" {
		return "continue;"
	}
	return "continue " + c.Label + ";"
}

// ThrowStatement is `throw expr;`.
type ThrowStatement struct {
	Token    token.Token
	Argument Expression
}

func (t *ThrowStatement) statementNode()      {}
func (t *ThrowStatement) TokenLiteral() string { return t.Token.Literal }
func (t *ThrowStatement) Pos() token.Position  { return t.Token.Pos }
func (t *ThrowStatement) String() string       { return "throw " + t.Argument.String() + ";" }

// WithStatement is `with (object) Statement` (ECMA-262 §12.10).
type WithStatement struct {
	Token  token.Token
	Object Expression
	Body   Statement
}

func (w *WithStatement) statementNode()      {}
func (w *WithStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WithStatement) Pos() token.Position  { return w.Token.Pos }
func (w *WithStatement) String() string {
	return "with (" + w.Object.String() + ") " + w.Body.String()
}

// LabelledStatement is `label: Statement` (ECMA-262 §12.12).
type LabelledStatement struct {
	Token token.Token
	Label string
	Body  Statement
}

func (l *LabelledStatement) statementNode()      {}
func (l *LabelledStatement) TokenLiteral() string { return l.Token.Literal }
func (l *LabelledStatement) Pos() token.Position  { return l.Token.Pos }
func (l *LabelledStatement) String() string       { return l.Label + ": " + l.Body.String() }

// CatchClause is the `catch (param) { body }` part of a TryStatement.
type CatchClause struct {
	Param Identifier
	Body  *BlockStatement
}

// TryStatement is `try { } catch (e) { } finally { }`, with Catch and/or
// Finally optional (at least one must be present, enforced by the
// parser).
type TryStatement struct {
	Token   token.Token
	Block   *BlockStatement
	Catch   *CatchClause // nil if no catch clause
	Finally *BlockStatement // nil if no finally clause
}

func (t *TryStatement) statementNode()      {}
func (t *TryStatement) TokenLiteral() string { return t.Token.Literal }
func (t *TryStatement) Pos() token.Position  { return t.Token.Pos }
func (t *TryStatement) String() string {
	var sb strings.Builder
	sb.WriteString("try ")
	sb.WriteString(t.Block.String())
	if t.Catch != nil {
		sb.WriteString(" catch (")
		sb.WriteString(t.Catch.Param.String())
		sb.WriteString(") ")
		sb.WriteString(t.Catch.Body.String())
	}
	if t.Finally != nil {
		sb.WriteString(" finally ")
		sb.WriteString(t.Finally.String())
	}
	return sb.String()
}

// DebuggerStatement is the `debugger;` statement — a no-op absent an
// attached debugger (Non-goal; parsed and evaluated as a no-op).
type DebuggerStatement struct {
	Token token.Token
}

func (d *DebuggerStatement) statementNode()      {}
func (d *DebuggerStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DebuggerStatement) Pos() token.Position  { return d.Token.Pos }
func (d *DebuggerStatement) String() string       { return "debugger;" }
