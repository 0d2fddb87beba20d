// Package es3 is the embeddable host API for the interpreter: it
// wraps internal/parser, internal/eval, and internal/bytecode behind
// the small surface a host program needs (spec.md §6.1) — construct an
// interpreter, feed it source, get a value or a structured error back.
package es3

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/es3vm/es3vm/internal/ast"
	"github.com/es3vm/es3vm/internal/bytecode"
	"github.com/es3vm/es3vm/internal/compat"
	"github.com/es3vm/es3vm/internal/eval"
	"github.com/es3vm/es3vm/internal/lexer"
	"github.com/es3vm/es3vm/internal/parser"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

// Interpreter owns one interpreter association (spec.md §1): its own
// global object, error constructors, and call stack. Every Eval/Parse/
// Compile call runs against the same global object, so bindings and
// host functions registered on one call are visible to the next.
type Interpreter struct {
	tree     *eval.Evaluator
	vm       *bytecode.VM
	useVM    bool
	compat   *compat.Set
	maxDepth int
	lexOpts  []lexer.Option
	fileName string

	mu     sync.RWMutex
	hosts  map[string]bool
	source string // last source Parse/Eval ran, for Compile's traceback lines
	output io.Writer
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithCompat installs a compatibility flag set (spec.md §4.1, §6.2);
// nil (the default) runs plain ECMA-262 3rd edition behavior.
func WithCompat(set *compat.Set) Option {
	return func(i *Interpreter) { i.compat = set }
}

// WithCompatString parses text in the §6.2 string encoding and
// installs the resulting flag set. A malformed token is reported to
// errOut, when non-nil, and otherwise leaves compat unset; a host that
// wants a hard failure should call compat.Parse itself and pass the
// result to WithCompat.
func WithCompatString(text string, errOut io.Writer) Option {
	return func(i *Interpreter) {
		set, err := compat.Parse(nil, text)
		if err != nil {
			if errOut != nil {
				fmt.Fprintf(errOut, "es3: %v\n", err)
			}
			return
		}
		i.compat = set
	}
}

// WithRecursionBudget caps call-stack depth (spec.md §5); <=0 uses the
// runtime package's own default.
func WithRecursionBudget(n int) Option {
	return func(i *Interpreter) { i.maxDepth = n }
}

// WithBytecodeVM switches Eval/Run from the tree-walking evaluator to
// the bytecode compiler + VM (spec.md §6.3); both back ends realize
// the same semantics (internal/bytecode's own parity tests assert
// this against internal/eval), so this is a performance/inspection
// choice for the host, not a behavior choice.
func WithBytecodeVM(enabled bool) Option {
	return func(i *Interpreter) { i.useVM = enabled }
}

// WithUnicodeIdentifiers widens identifier scanning beyond the default
// ASCII-only subset (internal/lexer.WithUnicodeIdentifiers).
func WithUnicodeIdentifiers(enabled bool) Option {
	return func(i *Interpreter) { i.lexOpts = append(i.lexOpts, lexer.WithUnicodeIdentifiers(enabled)) }
}

// WithPreserveComments keeps comment tokens in Lex's output, for host
// tooling built on top of it (pretty-printers, linters).
func WithPreserveComments(enabled bool) Option {
	return func(i *Interpreter) { i.lexOpts = append(i.lexOpts, lexer.WithPreserveComments(enabled)) }
}

// New builds an Interpreter with a fresh global object and installs
// its builtin error constructors — the embedding API's
// interpreter_new()/interpreter_init() pair (spec.md §6.1).
func New(opts ...Option) (*Interpreter, error) {
	i := &Interpreter{hosts: make(map[string]bool), output: os.Stdout}
	for _, opt := range opts {
		opt(i)
	}
	i.tree = eval.New(i.maxDepth, i.compat)
	if i.useVM {
		i.vm = bytecode.NewVM(i.maxDepth, i.compat)
	}
	return i, nil
}

// SetFileName records the source file name attached to traceback
// frames and thrown-error positions for every subsequent Eval/Run.
func (i *Interpreter) SetFileName(name string) {
	i.fileName = name
	i.tree.SetFileName(name)
	if i.vm != nil {
		i.vm.SetFileName(name)
	}
}

// SetAbortHook installs the cooperative interruption hook checked on
// every function call (spec.md §5).
func (i *Interpreter) SetAbortHook(hook func() bool) {
	i.tree.SetAbortHook(hook)
	if i.vm != nil {
		i.vm.SetAbortHook(hook)
	}
}

// SetOutput redirects this interpreter's output sink — consulted by
// any RegisterFunction callback the host writes to implement a
// print-like builtin (this interpreter has none of its own; spec.md's
// Non-goals exclude a standard library, so "print" is host-supplied).
// Defaults to os.Stdout.
func (i *Interpreter) SetOutput(w io.Writer) { i.output = w }

// Output returns the current output sink, for RegisterFunction
// callbacks to write through.
func (i *Interpreter) Output() io.Writer { return i.output }

// Global returns the global object, for host code that wants to read
// or set bindings directly instead of going through RegisterFunction.
func (i *Interpreter) Global() values.Object {
	if i.useVM {
		return i.vm.Global()
	}
	return i.tree.Global()
}

// Result is what Eval and Run return on success: the completion value
// of the last expression statement executed (Undefined if the program
// ended on a non-expression statement, or was empty).
type Result struct {
	Value values.Value
}

// ScriptError wraps a script-level throw that escaped Eval/Run
// uncaught (spec.md §7's "unhandled throw... surfaced to the host as
// an exception value"). Name and Message are read off the thrown
// value's own "name"/"message" properties when it is an Error
// instance; for a non-Error throw (`throw "boom";`), Name is empty and
// Message is the thrown value coerced to string. File/Line locate
// where the throw happened (spec.md §4.3/§7's `<file>:line: ` prefix);
// Line is 0 when no statement had yet been entered (e.g. RunChunk
// called with no prior Eval/Run on this interpreter).
type ScriptError struct {
	Name    string
	Message string
	Value   values.Value
	File    string
	Line    int
}

func (e *ScriptError) Error() string {
	name := e.Message
	if e.Name != "" {
		name = e.Name + ": " + e.Message
	}
	if e.Line == 0 {
		return name
	}
	return fileLine(e.File, e.Line) + ": " + name
}

var (
	nameKey    = strs.New("name")
	messageKey = strs.New("message")
)

func (i *Interpreter) newScriptError(thrown values.Value) *ScriptError {
	se := &ScriptError{Value: thrown, File: i.fileName}
	if i.useVM {
		se.Line = i.vm.LastLine()
	} else {
		se.Line = i.tree.LastPos().Line
	}
	if thrown.Kind() == values.KindObject {
		if nameV, err := thrown.Obj().Get(nameKey); err == nil {
			if n, err := values.ToString(nameV); err == nil {
				se.Name = n.MustUTF8()
			}
		}
		if msgV, err := thrown.Obj().Get(messageKey); err == nil {
			if m, err := values.ToString(msgV); err == nil {
				se.Message = m.MustUTF8()
			}
		}
		return se
	}
	if s, err := values.ToString(thrown); err == nil {
		se.Message = s.MustUTF8()
	}
	return se
}

// Eval parses source as a Program and runs it to completion (spec.md
// §6.1's Global_eval). A parse failure returns *CompileError; an
// uncaught script throw returns *ScriptError; otherwise Result.Value
// holds the program's completion value.
func (i *Interpreter) Eval(source string) (Result, error) {
	prog, cerr := i.Parse(source)
	if cerr != nil {
		return Result{}, cerr
	}
	return i.Run(prog)
}

// Run executes an already-parsed Program against this interpreter's
// global object (spec.md §6.1's parse_program + eval_functionbody
// split, for a host that wants to parse once and run the result
// multiple times, or reuse an AST across runs).
func (i *Interpreter) Run(prog *ast.Program) (Result, error) {
	var completion values.Value
	if i.useVM {
		chunk := bytecode.Compile(prog, i.source)
		completion = i.vm.Run(i.vm.NewGlobalContext(), chunk)
	} else {
		completion = i.tree.Run(i.tree.NewGlobalContext(), prog)
	}
	return i.resultFromCompletion(completion)
}

// resultFromCompletion turns a top-level Run's completion value (a
// Normal completion on success, a Throw completion on an uncaught
// script exception) into the public Result/error pair.
func (i *Interpreter) resultFromCompletion(completion values.Value) (Result, error) {
	if !completion.IsCompletion() {
		return Result{Value: completion}, nil
	}
	if completion.CompletionKind() == values.Throw {
		return Result{}, i.newScriptError(completion.CompletionValue())
	}
	return Result{Value: completion.CompletionValue()}, nil
}

// lexerOpts composes this interpreter's own lexer options with its
// compat set, for Parse/Lex/Compile to share.
func (i *Interpreter) lexerOpts() []lexer.Option {
	opts := append([]lexer.Option{}, i.lexOpts...)
	if i.compat != nil {
		opts = append(opts, parser.WithCompat(i.compat))
	}
	return opts
}
