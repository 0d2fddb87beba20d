package runtime

import (
	"testing"

	"github.com/es3vm/es3vm/internal/cerr"
)

func TestCallStackPushPop(t *testing.T) {
	cs := NewCallStack(10)
	if err := cs.Push("foo", "main.js", nil, cerr.CallKindCall); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if cs.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", cs.Depth())
	}
	cs.Pop()
	if cs.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", cs.Depth())
	}
}

func TestCallStackOverflow(t *testing.T) {
	cs := NewCallStack(2)
	if err := cs.Push("a", "", nil, cerr.CallKindCall); err != nil {
		t.Fatalf("Push a: %v", err)
	}
	if err := cs.Push("b", "", nil, cerr.CallKindCall); err != nil {
		t.Fatalf("Push b: %v", err)
	}
	if err := cs.Push("c", "", nil, cerr.CallKindCall); err == nil {
		t.Fatal("expected a stack overflow error on the third push")
	}
}

func TestCallStackAbortHook(t *testing.T) {
	cs := NewCallStack(100)
	cs.SetAbortHook(func() bool { return true })
	if err := cs.Push("f", "", nil, cerr.CallKindCall); err == nil {
		t.Fatal("expected the abort hook to stop the push")
	}
}

func TestCallStackDefaultMaxDepth(t *testing.T) {
	cs := NewCallStack(0)
	if cs.MaxDepth() != defaultMaxDepth {
		t.Errorf("MaxDepth() = %d, want %d", cs.MaxDepth(), defaultMaxDepth)
	}
}

func TestCallStackTracebackOrder(t *testing.T) {
	cs := NewCallStack(10)
	_ = cs.Push("outer", "", nil, cerr.CallKindCall)
	_ = cs.Push("inner", "", nil, cerr.CallKindCall)
	tb := cs.Traceback()
	if tb[0].FunctionName != "outer" || tb[1].FunctionName != "inner" {
		t.Errorf("got %v, want [outer inner]", tb)
	}
}

func TestCallStackMarksConstructFrame(t *testing.T) {
	cs := NewCallStack(10)
	_ = cs.Push("Foo", "", nil, cerr.CallKindConstruct)
	tb := cs.Traceback()
	if tb[0].Kind != cerr.CallKindConstruct {
		t.Errorf("got %v, want a construct frame", tb[0].Kind)
	}
}
