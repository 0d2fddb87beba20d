package es3

import (
	"fmt"
	"strings"

	"github.com/es3vm/es3vm/internal/ast"
	"github.com/es3vm/es3vm/internal/parser"
)

// CompileError collects every diagnostic a failed Parse or Compile
// produced, in source order (spec.md §7's SyntaxError, surfaced at the
// embedding boundary rather than as a script-level throw since no
// program ever ran). Stage names which phase produced it ("parse" —
// Compile has no phase of its own beyond parsing, since this
// interpreter's bytecode compiler cannot itself reject a program the
// parser accepted). File is this interpreter's current SetFileName
// value, threaded into every Diagnostic so Error() can render spec.md
// §4.3/§7's `<file>:line: ` prefix.
type CompileError struct {
	Stage  string
	File   string
	Errors []Diagnostic
}

// Diagnostic is one parse error's line and message, stripped of the
// internal/parser.Error's column/offset detail a host embedding this
// library rarely needs (a host that does want it can call
// internal/parser directly; pkg/es3 only re-exports the summary).
type Diagnostic struct {
	Line    int
	Message string
}

func (e *CompileError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s failed with %d error(s)", e.Stage, len(e.Errors))
	for _, d := range e.Errors {
		fmt.Fprintf(&sb, "\n  %s: %s", fileLine(e.File, d.Line), d.Message)
	}
	return sb.String()
}

// fileLine renders spec.md §4.3/§7's error-location prefix: `<file>:line: `
// when a file name is known, or a bare `line <n>` otherwise (e.g.
// source passed to Eval without a prior SetFileName call).
func fileLine(file string, line int) string {
	if file == "" {
		return fmt.Sprintf("line %d", line)
	}
	return fmt.Sprintf("%s:%d", file, line)
}

func (i *Interpreter) newCompileError(stage string, errs []*parser.Error) *CompileError {
	diags := make([]Diagnostic, len(errs))
	for idx, e := range errs {
		diags[idx] = Diagnostic{Line: e.Pos.Line, Message: e.Message}
	}
	return &CompileError{Stage: stage, File: i.fileName, Errors: diags}
}

// Parse parses source as a Program without running it (spec.md §6.1's
// parse_program). The AST is returned even when a *CompileError is
// also returned, for a host that wants best-effort tooling (e.g. an
// editor's outline view) over source with syntax errors; execution
// should always check the error first.
func (i *Interpreter) Parse(source string) (*ast.Program, *CompileError) {
	i.source = source
	prog, errs := parser.ParseProgram(source, i.lexerOpts()...)
	if len(errs) > 0 {
		return prog, i.newCompileError("parse", errs)
	}
	return prog, nil
}
