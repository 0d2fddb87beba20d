package es3

import (
	"github.com/es3vm/es3vm/internal/bytecode"
)

// Compile parses source and lowers it to a bytecode Chunk (spec.md
// §6.3) without running it — for a host that wants to inspect or
// cache the compiled form (e.g. cmd/es3's compile subcommand) ahead of
// a later Run. Compiling never itself fails beyond the parse errors
// Parse already reports: the compiler accepts any program the parser
// accepted.
func (i *Interpreter) Compile(source string) (*bytecode.Chunk, *CompileError) {
	prog, cerr := i.Parse(source)
	if cerr != nil {
		return nil, cerr
	}
	return bytecode.Compile(prog, source), nil
}

// RunChunk executes a previously compiled Chunk against this
// interpreter's global object, via the bytecode VM regardless of
// whether WithBytecodeVM was set (compiling only makes sense if the
// host intends to run it on the VM).
func (i *Interpreter) RunChunk(chunk *bytecode.Chunk) (Result, error) {
	if i.vm == nil {
		i.vm = bytecode.NewVM(i.maxDepth, i.compat)
		i.vm.SetFileName(i.fileName)
	}
	completion := i.vm.Run(i.vm.NewGlobalContext(), chunk)
	return i.resultFromCompletion(completion)
}

// Disassemble renders chunk's instructions as human-readable text
// (spec.md §6.3), for the compile subcommand's --disassemble-style
// output and for debugging embedded scripts.
func Disassemble(chunk *bytecode.Chunk, name string) string {
	return bytecode.DisassembleToString(chunk, name)
}
