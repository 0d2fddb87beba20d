package bytecode

import (
	"github.com/es3vm/es3vm/internal/object"
	"github.com/es3vm/es3vm/internal/runtime"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

type blockKind byte

const (
	blockWith blockKind = iota
	blockEnum
	blockTryCatch
	blockTryFinally
)

// block is one entry of the bounded block stack spec.md §6.3 calls
// for: with/enum blocks carry enough to restore scope/enumeration
// state when popped; try-catch/try-finally blocks carry a handler
// entry point only consulted by unwindThrow (a normal, non-throwing
// exit pops them without further action, since the compiler always
// inlines a finally's body at every statically-known exit point —
// see compiler.go's openFinally handling).
type block struct {
	kind     blockKind
	stackLen int

	savedScope   *runtime.Scope
	savedEnum    []*strs.String
	savedEnumIdx int

	handlerPC int
	catchName *strs.String
}

// frame is one function (or top-level program) activation: its own
// value stack, block stack, program counter, and the three registers
// (scope/variable-object/this double as the "L" location context,
// enumNames/enumIdx as "E", c/cvalue as "C"). A nested frame is never
// allocated for control-flow redirection — catch and finally bodies
// run via a recursive call to exec on this SAME frame, at a floor
// matching the block depth they were entered at, so Go's own call
// stack does the work internal/eval's recursive tree walk would
// otherwise do by hand.
type frame struct {
	vm    *VM
	chunk *Chunk
	pc    int

	stack  []values.Value
	blocks []block

	scope  *runtime.Scope
	varObj values.Object
	this   values.Value

	enumNames []*strs.String
	enumIdx   int

	c      values.CompletionKind
	cvalue values.Value

	lastValue values.Value
}

func (f *frame) push(v values.Value) { f.stack = append(f.stack, v) }

func (f *frame) pop() values.Value {
	n := len(f.stack) - 1
	v := f.stack[n]
	f.stack = f.stack[:n]
	return v
}

func (f *frame) peek() values.Value { return f.stack[len(f.stack)-1] }

// raise converts a Go error from the shared values/object/runtime
// primitives into a Throw and unwinds; it returns true when the
// caller's exec loop should return immediately (the unwind left
// block depth at or below floor).
func (f *frame) raise(err error, floor int) bool {
	return f.raiseValue(f.vm.throwErr(err), floor)
}

func (f *frame) raiseValue(thrown values.Value, floor int) bool {
	f.stampThrowLine()
	f.unwindThrow(thrown)
	return len(f.blocks) <= floor
}

// stampThrowLine records the line of the instruction currently raising
// a throw, read once at the point of the original throw rather than
// inside unwindThrow itself (which recurses into a finally body and
// would otherwise overwrite the throw's own line with the finally
// body's exit point).
func (f *frame) stampThrowLine() {
	if idx := f.pc - 1; idx >= 0 && idx < len(f.chunk.Lines) {
		f.vm.lastLine = f.chunk.Lines[idx]
	}
}

// exec runs instructions starting at the frame's current pc until
// block depth drops to or below floor. Every opcode that changes
// block depth (END, THROW, and any opcode that fails and unwinds) is
// followed by that one check — the same rule correctly stops a
// top-level function body (floor 0), a nested finally body (floor =
// depth at finally entry, whether it falls through normally or exits
// early via its own return/throw/break), and a nested catch body.
func (f *frame) exec(floor int) {
	for {
		instr := f.chunk.Code[f.pc]
		f.pc++
		if f.execOne(instr, floor) {
			return
		}
	}
}

func (f *frame) doEnd(target int) {
	for len(f.blocks) > target {
		idx := len(f.blocks) - 1
		b := f.blocks[idx]
		f.blocks = f.blocks[:idx]
		f.restoreBlock(b)
	}
}

func (f *frame) restoreBlock(b block) {
	switch b.kind {
	case blockWith:
		f.scope = b.savedScope
	case blockEnum:
		f.enumNames = b.savedEnum
		f.enumIdx = b.savedEnumIdx
	}
}

// unwindThrow implements the dynamic exception search: with/enum
// blocks are just restored and skipped; a try-catch block redirects
// into a freshly-built one-property shield scope and recursively runs
// the catch body; a try-finally block redirects into the finally
// body and, if that falls through normally, resumes the search
// further out with the same pending value.
func (f *frame) unwindThrow(thrown values.Value) {
	f.c = values.Throw
	f.cvalue = thrown

	for len(f.blocks) > 0 {
		idx := len(f.blocks) - 1
		b := f.blocks[idx]

		switch b.kind {
		case blockWith, blockEnum:
			f.blocks = f.blocks[:idx]
			f.restoreBlock(b)
			continue

		case blockTryCatch:
			f.blocks = f.blocks[:idx]
			f.stack = f.stack[:b.stackLen]

			shield := object.New("Object", nil)
			shield.DefineOwnProperty(b.catchName, thrown, values.DontDelete)
			savedScope := f.scope
			f.scope = runtime.NewScope(shield, f.scope)
			f.blocks = append(f.blocks, block{kind: blockWith, savedScope: savedScope})

			f.pc = b.handlerPC
			f.c = values.Normal
			f.exec(len(f.blocks))
			return

		case blockTryFinally:
			f.blocks = f.blocks[:idx]
			f.stack = f.stack[:b.stackLen]

			f.pc = b.handlerPC
			f.c = values.Normal
			f.exec(len(f.blocks))
			if f.c == values.Normal {
				f.unwindThrow(thrown)
			}
			return
		}
	}
	// Exhausted with no handler: f.c/f.cvalue (Throw/thrown) are the
	// frame's final completion, exactly as an uncaught exception
	// propagates out of internal/eval's tree walker.
}
