package ast

import (
	"testing"

	"github.com/es3vm/es3vm/internal/token"
)

func numberLit(n float64, literal string) *NumberLiteral {
	return &NumberLiteral{Token: token.Token{Literal: literal}, Value: n}
}

func TestBinaryExpressionIsConstWhenBothSidesConst(t *testing.T) {
	expr := &BinaryExpression{
		Left:     numberLit(1, "1"),
		Operator: "+",
		Right:    numberLit(2, "2"),
	}
	if !expr.IsConst() {
		t.Error("1 + 2 should be constant-foldable")
	}
}

func TestBinaryExpressionNotConstWithIdentifier(t *testing.T) {
	expr := &BinaryExpression{
		Left:     &Identifier{Name: "x"},
		Operator: "+",
		Right:    numberLit(2, "2"),
	}
	if expr.IsConst() {
		t.Error("x + 2 should not be constant-foldable")
	}
}

func TestLogicalExpressionNeverConst(t *testing.T) {
	expr := &LogicalExpression{
		Left:     numberLit(1, "1"),
		Operator: "&&",
		Right:    numberLit(2, "2"),
	}
	if expr.IsConst() {
		t.Error("&& must never be folded (short-circuit semantics)")
	}
}

func TestProgramStringConcatenatesStatements(t *testing.T) {
	prog := &Program{Statements: []Statement{
		&ExpressionStatement{Expression: numberLit(1, "1")},
		&ExpressionStatement{Expression: numberLit(2, "2")},
	}}
	if got := prog.String(); got != "1;2;" {
		t.Errorf("got %q, want %q", got, "1;2;")
	}
}

func TestIfStatementStringWithElse(t *testing.T) {
	stmt := &IfStatement{
		Condition:  &Identifier{Name: "x"},
		Consequent: &EmptyStatement{},
		Alternate:  &EmptyStatement{},
	}
	if got := stmt.String(); got != "if (x) ; else ;" {
		t.Errorf("got %q", got)
	}
}

func TestBreakStatementWithAndWithoutLabel(t *testing.T) {
	if got := (&BreakStatement{}).String(); got != "break;" {
		t.Errorf("got %q", got)
	}
	if got := (&BreakStatement{Label: "outer"}).String(); got != "break outer;" {
		t.Errorf("got %q", got)
	}
}
