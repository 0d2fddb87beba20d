package bytecode

import (
	"testing"

	"github.com/es3vm/es3vm/internal/parser"
	"github.com/es3vm/es3vm/internal/values"
)

// run compiles and executes source in a fresh global VM, failing the
// test on a parse error. Mirrors internal/eval's own run helper so the
// two back-ends can be held to the same assertions.
func run(t *testing.T, source string) values.Value {
	t.Helper()
	prog, errs := parser.ParseProgram(source)
	if len(errs) > 0 {
		t.Fatalf("parse error: %v", errs[0])
	}
	chunk := Compile(prog, source)
	vm := NewVM(0, nil)
	return vm.Run(vm.NewGlobalContext(), chunk)
}

func runValue(t *testing.T, source string) values.Value {
	t.Helper()
	c := run(t, source)
	if c.CompletionKind() == values.Throw {
		t.Fatalf("unexpected throw: %v", c.CompletionValue())
	}
	return c.CompletionValue()
}

func runThrow(t *testing.T, source string) values.Value {
	t.Helper()
	c := run(t, source)
	if c.CompletionKind() != values.Throw {
		t.Fatalf("expected a throw, got completion kind %v with value %v", c.CompletionKind(), c.CompletionValue())
	}
	return c.CompletionValue()
}

func TestLiteralsAndArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   float64
	}{
		{"add", "1 + 2;", 3},
		{"precedence", "2 + 3 * 4;", 14},
		{"subtract negative", "3 - 10;", -7},
		{"modulo", "7 % 3;", 1},
		{"unary minus", "-5 + 1;", -4},
		{"bitwise and", "6 & 3;", 2},
		{"shift left", "1 << 4;", 16},
		{"shift right unsigned", "-1 >>> 28;", 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := runValue(t, tt.source)
			if !v.IsNumber() || v.Num() != tt.want {
				t.Errorf("got %v, want %v", v, tt.want)
			}
		})
	}
}

func TestStringConcatenation(t *testing.T) {
	v := runValue(t, `"foo" + "bar";`)
	if !v.IsString() || v.Str().MustUTF8() != "foobar" {
		t.Errorf("got %v, want foobar", v)
	}
}

func TestVariablesAndAssignment(t *testing.T) {
	v := runValue(t, `var x = 1; x = x + 41; x;`)
	if !v.IsNumber() || v.Num() != 42 {
		t.Errorf("got %v, want 42", v)
	}
}

func TestCompoundAssignment(t *testing.T) {
	v := runValue(t, `var x = 10; x += 5; x *= 2; x;`)
	if !v.IsNumber() || v.Num() != 30 {
		t.Errorf("got %v, want 30", v)
	}
}

func TestPostfixAndPrefixUpdate(t *testing.T) {
	v := runValue(t, `var x = 5; var y = x++; var z = ++x; y + "," + x + "," + z;`)
	if !v.IsString() || v.Str().MustUTF8() != "5,7,7" {
		t.Errorf("got %v, want 5,7,7", v)
	}
}

func TestUpdateExpressionsOnObjectProperties(t *testing.T) {
	v := runValue(t, `var o = {n: 1}; var before = o.n++; var after = ++o.n; before + "," + after + "," + o.n;`)
	if !v.IsString() || v.Str().MustUTF8() != "1,3,3" {
		t.Errorf("got %v, want 1,3,3", v)
	}
}

func TestIfElse(t *testing.T) {
	v := runValue(t, `var r; if (1 < 2) { r = "yes"; } else { r = "no"; } r;`)
	if !v.IsString() || v.Str().MustUTF8() != "yes" {
		t.Errorf("got %v, want yes", v)
	}
}

func TestWhileLoopWithBreakAndContinue(t *testing.T) {
	v := runValue(t, `
		var sum = 0;
		var i = 0;
		while (i < 10) {
			i = i + 1;
			if (i % 2 == 0) continue;
			if (i > 7) break;
			sum = sum + i;
		}
		sum;
	`)
	if !v.IsNumber() || v.Num() != 16 {
		t.Errorf("got %v, want 16 (1+3+5+7)", v)
	}
}

func TestDoWhileLoop(t *testing.T) {
	v := runValue(t, `var i = 0; do { i = i + 1; } while (i < 5); i;`)
	if !v.IsNumber() || v.Num() != 5 {
		t.Errorf("got %v, want 5", v)
	}
}

func TestForLoop(t *testing.T) {
	v := runValue(t, `var sum = 0; for (var i = 0; i < 5; i++) { sum = sum + i; } sum;`)
	if !v.IsNumber() || v.Num() != 10 {
		t.Errorf("got %v, want 10", v)
	}
}

func TestForInEnumeratesOwnAndInheritedEnumerableNames(t *testing.T) {
	v := runValue(t, `
		var o = {a: 1, b: 2};
		var keys = "";
		for (var k in o) { keys = keys + k; }
		keys;
	`)
	if !v.IsString() {
		t.Fatalf("got %v, want string", v)
	}
	s := v.Str().MustUTF8()
	if len(s) != 2 || !((s == "ab") || (s == "ba")) {
		t.Errorf("got %q, want some permutation of ab", s)
	}
}

func TestForInOverNonObjectSkipsSilently(t *testing.T) {
	v := runValue(t, `var seen = false; for (var k in null) { seen = true; } seen;`)
	if !v.IsBoolean() || v.Bool() != false {
		t.Errorf("got %v, want false", v)
	}
}

func TestNestedFunctionCallsAndClosures(t *testing.T) {
	v := runValue(t, `
		function counter() {
			var n = 0;
			return function() { n = n + 1; return n; };
		}
		var c = counter();
		c(); c(); c();
	`)
	if !v.IsNumber() || v.Num() != 3 {
		t.Errorf("got %v, want 3", v)
	}
}

func TestRecursiveFunction(t *testing.T) {
	v := runValue(t, `
		function fact(n) { return n <= 1 ? 1 : n * fact(n - 1); }
		fact(6);
	`)
	if !v.IsNumber() || v.Num() != 720 {
		t.Errorf("got %v, want 720", v)
	}
}

func TestConstructorAndPrototype(t *testing.T) {
	v := runValue(t, `
		function Point(x, y) { this.x = x; this.y = y; }
		Point.prototype.sum = function() { return this.x + this.y; };
		var p = new Point(3, 4);
		p.sum();
	`)
	if !v.IsNumber() || v.Num() != 7 {
		t.Errorf("got %v, want 7", v)
	}
}

func TestTryCatch(t *testing.T) {
	v := runValue(t, `
		var r;
		try {
			throw "boom";
		} catch (e) {
			r = "caught:" + e;
		}
		r;
	`)
	if !v.IsString() || v.Str().MustUTF8() != "caught:boom" {
		t.Errorf("got %v, want caught:boom", v)
	}
}

func TestTryFinallyRunsOnNormalAndThrowPaths(t *testing.T) {
	v := runValue(t, `
		var log = "";
		try {
			log = log + "a";
		} finally {
			log = log + "b";
		}
		log;
	`)
	if !v.IsString() || v.Str().MustUTF8() != "ab" {
		t.Errorf("got %v, want ab", v)
	}
}

func TestUncaughtThrowPropagatesToTopLevel(t *testing.T) {
	v := runThrow(t, `throw "uncaught";`)
	if !v.IsString() || v.Str().MustUTF8() != "uncaught" {
		t.Errorf("got %v, want uncaught", v)
	}
}

func TestThrowFromDeeplyNestedTryIsCaughtByOuterCatch(t *testing.T) {
	v := runValue(t, `
		var r = "";
		try {
			try {
				throw "inner";
			} finally {
				r = r + "finally;";
			}
		} catch (e) {
			r = r + "caught:" + e;
		}
		r;
	`)
	if !v.IsString() || v.Str().MustUTF8() != "finally;caught:inner" {
		t.Errorf("got %v, want finally;caught:inner", v)
	}
}

func TestSwitchStatementFallthrough(t *testing.T) {
	v := runValue(t, `
		function classify(n) {
			var r = "";
			switch (n) {
			case 1:
				r = r + "one";
			case 2:
				r = r + "two";
				break;
			default:
				r = r + "other";
			}
			return r;
		}
		classify(1) + "|" + classify(2) + "|" + classify(5);
	`)
	if !v.IsString() || v.Str().MustUTF8() != "onetwo|two|other" {
		t.Errorf("got %v, want onetwo|two|other", v)
	}
}

func TestWithStatement(t *testing.T) {
	v := runValue(t, `
		var o = {x: 9};
		var r;
		with (o) { r = x; }
		r;
	`)
	if !v.IsNumber() || v.Num() != 9 {
		t.Errorf("got %v, want 9", v)
	}
}

func TestLabelledBreakOutOfNestedLoop(t *testing.T) {
	v := runValue(t, `
		var found = -1;
		outer:
		for (var i = 0; i < 3; i++) {
			for (var j = 0; j < 3; j++) {
				if (i === 1 && j === 1) {
					found = i * 10 + j;
					break outer;
				}
			}
		}
		found;
	`)
	if !v.IsNumber() || v.Num() != 11 {
		t.Errorf("got %v, want 11", v)
	}
}

func TestTypeofAndDelete(t *testing.T) {
	v := runValue(t, `
		var o = {a: 1};
		var before = typeof o.a;
		delete o.a;
		var after = typeof o.a;
		before + "," + after;
	`)
	if !v.IsString() || v.Str().MustUTF8() != "number,undefined" {
		t.Errorf("got %v, want number,undefined", v)
	}
}

func TestConditionalExpression(t *testing.T) {
	v := runValue(t, `var x = 5; (x > 3 ? "big" : "small");`)
	if !v.IsString() || v.Str().MustUTF8() != "big" {
		t.Errorf("got %v, want big", v)
	}
}

func TestLogicalShortCircuit(t *testing.T) {
	v := runValue(t, `
		var calls = 0;
		function mark(v) { calls = calls + 1; return v; }
		var a = mark(false) && mark(true);
		var b = mark(true) || mark(true);
		calls;
	`)
	if !v.IsNumber() || v.Num() != 2 {
		t.Errorf("got %v, want 2 (two short-circuited calls skipped)", v)
	}
}

func TestArrayAndObjectLiteralsWithAccessors(t *testing.T) {
	v := runValue(t, `
		var arr = [1, 2, 3];
		var obj = {
			sum: arr[0] + arr[1] + arr[2],
			get doubled() { return this.sum * 2; }
		};
		obj.doubled;
	`)
	if !v.IsNumber() || v.Num() != 12 {
		t.Errorf("got %v, want 12", v)
	}
}

func TestSequenceExpression(t *testing.T) {
	v := runValue(t, `var x = (1, 2, 3); x;`)
	if !v.IsNumber() || v.Num() != 3 {
		t.Errorf("got %v, want 3", v)
	}
}

func TestInstanceofOperator(t *testing.T) {
	v := runValue(t, `
		function Dog() {}
		var d = new Dog();
		d instanceof Dog;
	`)
	if !v.IsBoolean() || !v.Bool() {
		t.Errorf("got %v, want true", v)
	}
}
