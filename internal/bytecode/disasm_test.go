package bytecode

import (
	"testing"

	"github.com/es3vm/es3vm/internal/parser"
	"github.com/gkampitakis/go-snaps/snaps"
)

func disassembleSource(t *testing.T, source string) string {
	t.Helper()
	prog, errs := parser.ParseProgram(source)
	if len(errs) > 0 {
		t.Fatalf("parse error: %v", errs[0])
	}
	chunk := Compile(prog, source)
	return DisassembleToString(chunk, "main")
}

func TestDisassembleArithmetic(t *testing.T) {
	snaps.MatchSnapshot(t, disassembleSource(t, `1 + 2 * 3;`))
}

func TestDisassembleIfElse(t *testing.T) {
	snaps.MatchSnapshot(t, disassembleSource(t, `if (x < 1) { y = 1; } else { y = 2; }`))
}

func TestDisassembleWhileLoop(t *testing.T) {
	snaps.MatchSnapshot(t, disassembleSource(t, `while (x > 0) { x--; }`))
}

func TestDisassembleFunctionLiteral(t *testing.T) {
	snaps.MatchSnapshot(t, disassembleSource(t, `var f = function(a, b) { return a + b; };`))
}

func TestDisassembleTryCatchFinally(t *testing.T) {
	snaps.MatchSnapshot(t, disassembleSource(t, `try { throw 1; } catch (e) { e; } finally { cleanup(); }`))
}
