package runtime

import (
	"fmt"

	"github.com/es3vm/es3vm/internal/cerr"
	"github.com/es3vm/es3vm/internal/token"
)

// defaultMaxDepth matches the teacher's own default recursion budget.
const defaultMaxDepth = 1024

// CallStack tracks function-call nesting for stack-overflow detection
// and traceback construction (spec.md §5's recursion budget, §7's
// traceback requirement).
type CallStack struct {
	frames   cerr.Traceback
	maxDepth int
	abort    func() bool
}

// NewCallStack creates a call stack with the given maximum depth (<=0
// uses defaultMaxDepth).
func NewCallStack(maxDepth int) *CallStack {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	return &CallStack{frames: cerr.Traceback{}, maxDepth: maxDepth}
}

// SetAbortHook installs a callback polled on every Push — the
// cooperative interruption hook spec.md §5 requires so a host can
// cancel a runaway script (e.g. on a context deadline) without the
// interpreter needing goroutine-level preemption.
func (cs *CallStack) SetAbortHook(abort func() bool) { cs.abort = abort }

// Push adds a frame, returning an error if doing so would exceed
// maxDepth or the abort hook reports the run should stop. kind
// distinguishes a plain call from a `new` construct call (spec.md
// §7's frame shape).
func (cs *CallStack) Push(functionName, fileName string, pos *token.Position, kind cerr.CallKind) error {
	if cs.abort != nil && cs.abort() {
		return fmt.Errorf("execution aborted")
	}
	if len(cs.frames) >= cs.maxDepth {
		return fmt.Errorf("stack overflow: maximum recursion depth (%d) exceeded in function %q", cs.maxDepth, functionName)
	}
	cs.frames = append(cs.frames, cerr.NewFrame(functionName, fileName, pos, kind))
	return nil
}

// Pop removes the most recent frame; a no-op on an empty stack.
func (cs *CallStack) Pop() {
	if len(cs.frames) > 0 {
		cs.frames = cs.frames[:len(cs.frames)-1]
	}
}

// Depth reports the current nesting depth.
func (cs *CallStack) Depth() int { return len(cs.frames) }

// Traceback returns a copy of the current frames, oldest first.
func (cs *CallStack) Traceback() cerr.Traceback {
	out := make(cerr.Traceback, len(cs.frames))
	copy(out, cs.frames)
	return out
}

// MaxDepth reports the configured recursion budget.
func (cs *CallStack) MaxDepth() int { return cs.maxDepth }

// SetMaxDepth updates the recursion budget (<=0 resets to default).
func (cs *CallStack) SetMaxDepth(maxDepth int) {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	cs.maxDepth = maxDepth
}
