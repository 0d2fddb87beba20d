package bytecode

import (
	"fmt"
	"io"
	"strings"
)

// Disassembler renders a Chunk (and the FuncProto chunks it reaches
// through Funcs) as a human-readable instruction listing, mirroring
// the teacher's own bytecode disassembler: one line per instruction,
// table-index operands resolved inline against the chunk's pools.
type Disassembler struct {
	writer io.Writer
}

func NewDisassembler(w io.Writer) *Disassembler {
	return &Disassembler{writer: w}
}

// Disassemble writes chunk's listing, then recurses into every nested
// FuncProto chunk it references.
func (d *Disassembler) Disassemble(chunk *Chunk, name string) {
	fmt.Fprintf(d.writer, "== %s ==\n", name)
	for offset := range chunk.Code {
		d.instruction(chunk, offset)
	}
	fmt.Fprintln(d.writer)

	for i, proto := range chunk.Funcs {
		label := proto.Name
		if label == "" {
			label = "<anonymous>"
		}
		d.Disassemble(proto.Chunk, fmt.Sprintf("%s (func #%d %s)", name, i, label))
	}
}

func (d *Disassembler) instruction(chunk *Chunk, offset int) {
	instr := chunk.Code[offset]
	op := instr.OpCode()

	fmt.Fprintf(d.writer, "%04d ", offset)

	switch op {
	case LITERAL:
		idx := int(instr.B())
		lit := "?"
		if idx < len(chunk.Literals) {
			lit = chunk.Literals[idx].String()
		}
		fmt.Fprintf(d.writer, "%-12s #%d '%s'\n", op.String(), idx, lit)
	case LOC:
		idx := int(instr.B())
		name := "?"
		if idx < len(chunk.Names) {
			name = chunk.Names[idx]
		}
		fmt.Fprintf(d.writer, "%-12s #%d '%s'\n", op.String(), idx, name)
	case FUNC:
		idx := int(instr.B())
		name := "?"
		if idx < len(chunk.Funcs) {
			name = funcDisplayName(chunk.Funcs[idx])
		}
		fmt.Fprintf(d.writer, "%-12s #%d '%s'\n", op.String(), idx, name)
	case B_ALWAYS, B_TRUE, B_ENUM, S_TRYC, S_TRYF:
		target := offset + 1 + int(instr.SignedB())
		fmt.Fprintf(d.writer, "%-12s %d -> %04d\n", op.String(), instr.SignedB(), target)
	case NEW, CALL:
		fmt.Fprintf(d.writer, "%-12s args=%d\n", op.String(), instr.B())
	case END:
		fmt.Fprintf(d.writer, "%-12s depth=%d\n", op.String(), instr.B())
	case SETC:
		fmt.Fprintf(d.writer, "%-12s kind=%d\n", op.String(), instr.A())
	default:
		fmt.Fprintf(d.writer, "%s\n", op.String())
	}
}

// DisassembleToString is the entry point snapshot tests drive: compile
// a program, then diff this string against a golden file.
func DisassembleToString(chunk *Chunk, name string) string {
	var sb strings.Builder
	NewDisassembler(&sb).Disassemble(chunk, name)
	return sb.String()
}
