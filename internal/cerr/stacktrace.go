package cerr

import (
	"fmt"
	"strings"

	"github.com/es3vm/es3vm/internal/token"
)

// CallKind distinguishes an ordinary call from a `new` construct call
// at a traceback frame (spec.md §7's frame shape: `{call_location,
// callee, call_kind}`).
type CallKind byte

const (
	CallKindCall CallKind = iota
	CallKindConstruct
)

func (k CallKind) String() string {
	if k == CallKindConstruct {
		return "new"
	}
	return "call"
}

// Frame is one call-stack entry: the function name, the file and
// position of the call site within it, and whether it was a plain
// call or a `new` construct call (spec.md §7's traceback requirement).
type Frame struct {
	FunctionName string
	FileName     string
	Pos          *token.Position
	Kind         CallKind
}

func (f Frame) String() string {
	name := f.FunctionName
	if f.Kind == CallKindConstruct {
		name = "new " + name
	}
	if f.Pos == nil {
		if f.FileName == "" {
			return name
		}
		return fmt.Sprintf("%s [%s]", name, f.FileName)
	}
	if f.FileName == "" {
		return fmt.Sprintf("%s [line: %d, column: %d]", name, f.Pos.Line, f.Pos.Column)
	}
	return fmt.Sprintf("%s [%s:%d, column: %d]", name, f.FileName, f.Pos.Line, f.Pos.Column)
}

// Traceback is a sequence of Frames, oldest call first.
type Traceback []Frame

// String renders the traceback most-recent-call-first, one frame per
// line — the presentation order a thrown error's traceback is printed
// in.
func (tb Traceback) String() string {
	if len(tb) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(tb) - 1; i >= 0; i-- {
		sb.WriteString(tb[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (tb Traceback) Top() *Frame {
	if len(tb) == 0 {
		return nil
	}
	return &tb[len(tb)-1]
}

func (tb Traceback) Depth() int { return len(tb) }

// NewFrame builds a Frame.
func NewFrame(functionName, fileName string, pos *token.Position, kind CallKind) Frame {
	return Frame{FunctionName: functionName, FileName: fileName, Pos: pos, Kind: kind}
}
