package cerr

import (
	"strings"
	"testing"

	"github.com/es3vm/es3vm/internal/token"
)

func TestTracebackStringMostRecentFirst(t *testing.T) {
	pos1 := token.Position{Line: 1, Column: 1}
	pos2 := token.Position{Line: 2, Column: 1}
	tb := Traceback{
		NewFrame("outer", "main.js", &pos1, CallKindCall),
		NewFrame("inner", "main.js", &pos2, CallKindCall),
	}
	got := tb.String()
	lines := strings.Split(got, "\n")
	if !strings.Contains(lines[0], "inner") {
		t.Errorf("expected most recent frame first, got %q", got)
	}
	if !strings.Contains(lines[1], "outer") {
		t.Errorf("expected oldest frame last, got %q", got)
	}
}

func TestFrameWithoutPosition(t *testing.T) {
	f := NewFrame("anon", "", nil, CallKindCall)
	if f.String() != "anon" {
		t.Errorf("got %q, want anon", f.String())
	}
}

func TestFrameIncludesFileName(t *testing.T) {
	pos := token.Position{Line: 3, Column: 1}
	f := NewFrame("g", "main.js", &pos, CallKindCall)
	if got := f.String(); !strings.Contains(got, "main.js") {
		t.Errorf("got %q, want it to mention the file name", got)
	}
}

func TestFrameMarksConstructCalls(t *testing.T) {
	pos := token.Position{Line: 3, Column: 1}
	f := NewFrame("Foo", "main.js", &pos, CallKindConstruct)
	if got := f.String(); !strings.Contains(got, "new Foo") {
		t.Errorf("got %q, want a construct frame marked with \"new\"", got)
	}
}

func TestTracebackTopAndDepth(t *testing.T) {
	tb := Traceback{NewFrame("a", "", nil, CallKindCall), NewFrame("b", "", nil, CallKindCall)}
	if tb.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", tb.Depth())
	}
	if tb.Top().FunctionName != "b" {
		t.Errorf("Top() = %q, want b", tb.Top().FunctionName)
	}
}
