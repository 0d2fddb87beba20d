package bytecode

import (
	"testing"

	"github.com/es3vm/es3vm/internal/eval"
	"github.com/es3vm/es3vm/internal/parser"
	"github.com/es3vm/es3vm/internal/values"
)

// evalValue runs source through the tree-walking evaluator, the
// bytecode back-end's reference behavior.
func evalValue(t *testing.T, source string) values.Value {
	t.Helper()
	prog, errs := parser.ParseProgram(source)
	if len(errs) > 0 {
		t.Fatalf("parse error: %v", errs[0])
	}
	e := eval.New(0, nil)
	c := e.Run(e.NewGlobalContext(), prog)
	if c.CompletionKind() == values.Throw {
		t.Fatalf("tree walker unexpectedly threw: %v", c.CompletionValue())
	}
	return c.CompletionValue()
}

// assertParity runs source through both back-ends and requires an
// identical SameValue result, the two-implementation invariant
// DESIGN.md holds internal/bytecode to.
func assertParity(t *testing.T, source string) {
	t.Helper()
	want := evalValue(t, source)
	got := runValue(t, source)
	if !want.SameValue(got) {
		t.Errorf("bytecode result %v diverges from tree-walker result %v for %q", got, want, source)
	}
}

func TestBytecodeMatchesTreeWalkerOnArithmeticAndControlFlow(t *testing.T) {
	sources := []string{
		`1 + 2 * 3;`,
		`var x = 0; for (var i = 0; i < 10; i++) { x += i; } x;`,
		`var x = 10; while (x > 0) { x--; } x;`,
		`var n = 0; for (var k in {a:1,b:2,c:3}) { n++; } n;`,
		`function f(n) { if (n <= 0) return 0; return n + f(n - 1); } f(10);`,
		`var s = 0; outer: for (var i=0;i<3;i++){ for (var j=0;j<3;j++){ if (j===1) continue outer; s++; } } s;`,
		`function make(n) { return function() { return n * 2; }; } make(21)();`,
		`var o = {a: 1, b: 2}; delete o.a; typeof o.a;`,
		`try { try { throw 1; } finally { } } catch (e) { e + 1; }`,
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) { assertParity(t, src) })
	}
}

func TestHoistingMovesVarAndFunctionDeclarationsToTop(t *testing.T) {
	v := runValue(t, `
		var r = f();
		function f() { return 42; }
		r;
	`)
	if !v.IsNumber() || v.Num() != 42 {
		t.Errorf("got %v, want 42 (function declaration hoisted above its use)", v)
	}
}

func TestVarDeclaredInsideBlockIsFunctionScoped(t *testing.T) {
	v := runValue(t, `
		if (true) { var x = 5; }
		x;
	`)
	if !v.IsNumber() || v.Num() != 5 {
		t.Errorf("got %v, want 5 (var hoisted out of the if-block)", v)
	}
}

func TestBreakUnwindsThroughAnInterveningFinally(t *testing.T) {
	v := runValue(t, `
		var log = "";
		for (var i = 0; i < 3; i++) {
			try {
				if (i === 1) break;
				log += i;
			} finally {
				log += "f";
			}
		}
		log;
	`)
	if !v.IsString() || v.Str().MustUTF8() != "0ff" {
		t.Errorf("got %v, want 0ff (finally runs once per iteration, break still triggers it)", v)
	}
}

func TestContinueUnwindsThroughAnInterveningFinally(t *testing.T) {
	v := runValue(t, `
		var log = "";
		for (var i = 0; i < 3; i++) {
			try {
				if (i === 1) continue;
				log += i;
			} finally {
				log += "f";
			}
		}
		log;
	`)
	if !v.IsString() || v.Str().MustUTF8() != "0ff2f" {
		t.Errorf("got %v, want 0ff2f", v)
	}
}

func TestReturnUnwindsThroughAnInterveningFinally(t *testing.T) {
	v := runValue(t, `
		function f() {
			try {
				return "early";
			} finally {
				// no return here, finally must still run before returning
			}
		}
		f();
	`)
	if !v.IsString() || v.Str().MustUTF8() != "early" {
		t.Errorf("got %v, want early", v)
	}
}
