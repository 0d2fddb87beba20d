package parser

import (
	"testing"

	"github.com/es3vm/es3vm/internal/ast"
)

func parseOK(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, errs := ParseProgram(source)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", source, errs)
	}
	return prog
}

func TestParseVariableStatement(t *testing.T) {
	prog := parseOK(t, "var a, b = 1;")
	if len(prog.Statements) != 1 {
		t.Fatalf("want 1 statement, got %d", len(prog.Statements))
	}
	stmt, ok := prog.Statements[0].(*ast.VariableStatement)
	if !ok {
		t.Fatalf("want *ast.VariableStatement, got %T", prog.Statements[0])
	}
	if len(stmt.Declarations) != 2 || stmt.Declarations[0].Init != nil || stmt.Declarations[1].Init == nil {
		t.Errorf("unexpected declarations: %#v", stmt.Declarations)
	}
}

func TestParseASIBeforeRBrace(t *testing.T) {
	prog := parseOK(t, "{ 1 }")
	block, ok := prog.Statements[0].(*ast.BlockStatement)
	if !ok {
		t.Fatalf("want *ast.BlockStatement, got %T", prog.Statements[0])
	}
	if len(block.Statements) != 1 {
		t.Fatalf("expected ASI to close the expression statement, got %d stmts", len(block.Statements))
	}
}

func TestParseASIAcrossNewline(t *testing.T) {
	prog := parseOK(t, "a = 1\nb = 2")
	if len(prog.Statements) != 2 {
		t.Fatalf("want 2 statements via ASI, got %d", len(prog.Statements))
	}
}

func TestParseReturnNoArgumentAcrossNewline(t *testing.T) {
	prog := parseOK(t, "function f() {\n  return\n  1\n}")
	decl := prog.Statements[0].(*ast.FunctionDeclaration)
	ret := decl.Function.Body.Statements[0].(*ast.ReturnStatement)
	if ret.Argument != nil {
		t.Errorf("return followed by a newline must not consume the next line as its argument")
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	prog := parseOK(t, "1 + 2 * 3;")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	bin := stmt.Expression.(*ast.BinaryExpression)
	if bin.Operator != "+" {
		t.Fatalf("want top-level +, got %s", bin.Operator)
	}
	if _, ok := bin.Right.(*ast.BinaryExpression); !ok {
		t.Fatalf("want 2*3 grouped as the right operand, got %T", bin.Right)
	}
}

func TestParseLogicalNeverFoldedByParser(t *testing.T) {
	prog := parseOK(t, "true && false;")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	if _, ok := stmt.Expression.(*ast.LogicalExpression); !ok {
		t.Fatalf("want *ast.LogicalExpression, got %T", stmt.Expression)
	}
}

func TestParseForStatementRegular(t *testing.T) {
	prog := parseOK(t, "for (var i = 0; i < 10; i++) ;")
	forStmt, ok := prog.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("want *ast.ForStatement, got %T", prog.Statements[0])
	}
	if _, ok := forStmt.Init.(*ast.VariableStatement); !ok {
		t.Errorf("want var init, got %T", forStmt.Init)
	}
}

func TestParseForInStatement(t *testing.T) {
	prog := parseOK(t, "for (var k in obj) ;")
	forIn, ok := prog.Statements[0].(*ast.ForInStatement)
	if !ok {
		t.Fatalf("want *ast.ForInStatement, got %T", prog.Statements[0])
	}
	if _, ok := forIn.Left.(*ast.VariableStatement); !ok {
		t.Errorf("want var left, got %T", forIn.Left)
	}
}

func TestParseForStatementNoInExcludesBareIn(t *testing.T) {
	// Without NoIn handling this would misparse "x in y" as a for-in test.
	prog := parseOK(t, "for (x = (1 in y); x; x) ;")
	forStmt, ok := prog.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("want *ast.ForStatement, got %T", prog.Statements[0])
	}
	if forStmt.Test == nil {
		t.Errorf("expected a regular for-statement, not a for-in")
	}
}

func TestParseTernaryInForInitAllowsIn(t *testing.T) {
	prog := parseOK(t, "for (var x = a ? b : c; x; x) ;")
	if _, ok := prog.Statements[0].(*ast.ForStatement); !ok {
		t.Fatalf("want *ast.ForStatement, got %T", prog.Statements[0])
	}
}

func TestParseRegexLiteralAfterAssign(t *testing.T) {
	prog := parseOK(t, "var re = /ab[c\\/]+/gi;")
	stmt := prog.Statements[0].(*ast.VariableStatement)
	regex, ok := stmt.Declarations[0].Init.(*ast.RegexLiteral)
	if !ok {
		t.Fatalf("want *ast.RegexLiteral, got %T", stmt.Declarations[0].Init)
	}
	if regex.Pattern != `ab[c\/]+` || regex.Flags != "gi" {
		t.Errorf("got pattern=%q flags=%q", regex.Pattern, regex.Flags)
	}
}

func TestParseDivisionNotMisreadAsRegex(t *testing.T) {
	prog := parseOK(t, "var q = a / b / c;")
	stmt := prog.Statements[0].(*ast.VariableStatement)
	outer, ok := stmt.Declarations[0].Init.(*ast.BinaryExpression)
	if !ok || outer.Operator != "/" {
		t.Fatalf("want outer division, got %#v", stmt.Declarations[0].Init)
	}
}

func TestParseObjectLiteralWithAccessors(t *testing.T) {
	prog := parseOK(t, "var o = { x: 1, get y() { return 2; }, set y(v) { } };")
	stmt := prog.Statements[0].(*ast.VariableStatement)
	obj := stmt.Declarations[0].Init.(*ast.ObjectLiteral)
	if len(obj.Properties) != 3 {
		t.Fatalf("want 3 properties, got %d", len(obj.Properties))
	}
	if obj.Properties[1].Kind != ast.PropertyGet || obj.Properties[2].Kind != ast.PropertySet {
		t.Errorf("accessor kinds not recognized: %#v", obj.Properties[1:])
	}
}

func TestParseArrayLiteralElisions(t *testing.T) {
	prog := parseOK(t, "var a = [1, , 3];")
	stmt := prog.Statements[0].(*ast.VariableStatement)
	arr := stmt.Declarations[0].Init.(*ast.ArrayLiteral)
	if len(arr.Elements) != 3 || arr.Elements[1] != nil {
		t.Fatalf("want [1, nil, 3], got %#v", arr.Elements)
	}
}

func TestParseNewExpressionChain(t *testing.T) {
	prog := parseOK(t, "new Foo.Bar(1, 2).baz;")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	member, ok := stmt.Expression.(*ast.MemberExpression)
	if !ok {
		t.Fatalf("want trailing .baz member access, got %T", stmt.Expression)
	}
	if _, ok := member.Object.(*ast.NewExpression); !ok {
		t.Errorf("want new-expression as the member's object, got %T", member.Object)
	}
}

func TestParseLabelledBreak(t *testing.T) {
	prog := parseOK(t, "outer: while (true) { break outer; }")
	label, ok := prog.Statements[0].(*ast.LabelledStatement)
	if !ok {
		t.Fatalf("want *ast.LabelledStatement, got %T", prog.Statements[0])
	}
	if label.Label != "outer" {
		t.Errorf("got label %q", label.Label)
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	prog := parseOK(t, "try { a(); } catch (e) { b(); } finally { c(); }")
	stmt, ok := prog.Statements[0].(*ast.TryStatement)
	if !ok {
		t.Fatalf("want *ast.TryStatement, got %T", prog.Statements[0])
	}
	if stmt.Catch == nil || stmt.Finally == nil {
		t.Errorf("expected both catch and finally to be parsed")
	}
}

func TestParseErrorOnUnexpectedToken(t *testing.T) {
	_, errs := ParseProgram("var ;")
	if len(errs) == 0 {
		t.Errorf("expected at least one parse error")
	}
}
