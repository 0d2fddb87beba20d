// Package eval implements the tree-walking evaluator of spec.md §4:
// given a parsed ast.Program, it drives scope resolution, reference
// binding, and the object protocol directly over the AST, producing
// script-visible Completion values rather than Go errors at every
// composition point (internal/cerr.ThrowOf is the one conversion
// boundary from a Go error to a script-level Throw completion).
package eval

import (
	"github.com/es3vm/es3vm/internal/ast"
	"github.com/es3vm/es3vm/internal/cerr"
	"github.com/es3vm/es3vm/internal/compat"
	"github.com/es3vm/es3vm/internal/object"
	"github.com/es3vm/es3vm/internal/runtime"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/token"
	"github.com/es3vm/es3vm/internal/values"
)

// Evaluator holds everything a running program shares across its whole
// execution: the object-protocol builtins, the native error factory,
// the call stack (recursion budget, traceback), the label stack for
// the currently-executing loop/switch nest, and the compatibility
// flags that tune a handful of ES3 behaviors.
type Evaluator struct {
	builtins *object.Builtins
	global   *object.Base
	ctors    cerr.Constructors
	calls    *runtime.CallStack
	labels   *runtime.LabelStack
	compat   *compat.Set
	fileName string
	lastPos  token.Position // position of the statement most recently entered, for an uncaught throw's reported location
}

// New builds an Evaluator with a fresh global object wired with the
// minimal Object/Function/Error builtins. maxDepth <=0 uses the call
// stack's own default; set is nil for plain ECMA-262 3rd edition
// behavior with every compatibility flag off.
func New(maxDepth int, set *compat.Set) *Evaluator {
	builtins := object.NewBuiltins()
	global := object.New("global", builtins.ObjectProto)

	e := &Evaluator{
		builtins: builtins,
		global:   global,
		ctors:    builtins.NewErrorConstructors(),
		calls:    runtime.NewCallStack(maxDepth),
		labels:   runtime.NewLabelStack(),
		compat:   set,
	}
	e.installGlobals()
	return e
}

// installGlobals exposes the native error constructors as global
// bindings, so script code can do `throw new TypeError("...")` and
// `e instanceof RangeError` (ECMA-262 §15.11.6); a full Object/Function
// constructor pair is deliberately not provided (Non-goal — no
// standard library beyond the minimal object protocol, see
// SPEC_FULL.md §C). `eval` is installed the same way (ECMA-262
// §15.1.2.1) — direct_eval.go recognizes a syntactically direct call
// to this exact binding and gives it the caller's own context instead
// of going through [[Call]] below.
func (e *Evaluator) installGlobals() {
	for kind, ctor := range e.builtins.Constructors {
		e.global.DefineOwnProperty(strs.New(string(kind)), values.FromObject(ctor), values.DontEnum)
	}
	e.global.DefineOwnProperty(strs.New("eval"), values.FromObject(e.makeEvalFunction()), values.DontEnum)
}

// SetFileName records the source file name attached to traceback
// frames and thrown-error positions (empty for a string passed to Eval
// with no associated file).
func (e *Evaluator) SetFileName(name string) { e.fileName = name }

// FileName returns the file name passed to SetFileName, for a host
// reporting an uncaught throw's location.
func (e *Evaluator) FileName() string { return e.fileName }

// LastPos returns the source position of the statement most recently
// entered — an approximation of "where execution currently is" used to
// locate an uncaught throw when no more precise position is available
// (spec.md §7's "current file and line").
func (e *Evaluator) LastPos() token.Position { return e.lastPos }

// SetAbortHook installs the cooperative interruption hook checked on
// every function call (spec.md §5); delegates to the call stack.
func (e *Evaluator) SetAbortHook(hook func() bool) { e.calls.SetAbortHook(hook) }

// Global returns the global object, for host code registering
// additional functions (pkg/es3.RegisterFunction) or reading globals
// back out after a run.
func (e *Evaluator) Global() values.Object { return e.global }

// NewGlobalContext builds the execution context a top-level Run starts
// in.
func (e *Evaluator) NewGlobalContext() *runtime.Context {
	return runtime.NewGlobalContext(e.global)
}

// Run evaluates every statement of prog in ctx and returns the
// program's completion: Normal wrapping the last expression statement's
// value, or Throw if an uncaught exception propagated to the top.
// A top-level break/continue/return cannot occur in a program the
// parser accepted (parseReturnStatement rejects a return outside a
// function body; break/continue validity is checked against the label
// stack at the point they execute and only ever targets an enclosing
// loop/switch/label, all of which are nested inside Run's own
// statement loop).
func (e *Evaluator) Run(ctx *runtime.Context, prog *ast.Program) values.Value {
	e.hoist(ctx, prog.Statements)
	result := values.Undefined
	for _, stmt := range prog.Statements {
		c := e.evalStatement(ctx, stmt)
		switch c.CompletionKind() {
		case values.Normal:
			result = c.CompletionValue()
		default:
			return c
		}
	}
	return values.NormalCompletion(result)
}

func isThrow(v values.Value) bool {
	return v.IsCompletion() && v.CompletionKind() == values.Throw
}

func isAbrupt(v values.Value) bool {
	return v.IsCompletion() && v.CompletionKind() != values.Normal
}

// throw converts a Go error from a lower layer (values coercions,
// runtime.GetValue/PutValue, object Get/Put/Call) into a script-level
// Throw completion via cerr's classification.
func (e *Evaluator) throw(err error) values.Value {
	return cerr.ThrowOf(err, e.ctors)
}

// throwNative raises one of the five native error kinds directly,
// without an intervening Go error value.
func (e *Evaluator) throwNative(kind cerr.Kind, message string) values.Value {
	obj := e.ctors.New(kind, message)
	v := values.FromObject(obj)
	return values.NewCompletion(values.Throw, &v, 0)
}

// toObjectForMember implements the ToObject step member access and
// delete perform on their base (ECMA-262 §11.2.1); since no Boolean/
// Number/String wrapper objects exist (Non-goal — no standard
// library), a primitive base raises TypeError rather than boxing.
func (e *Evaluator) toObjectForMember(v values.Value) (values.Object, error) {
	switch v.Kind() {
	case values.KindObject:
		return v.Obj(), nil
	case values.KindUndefined, values.KindNull:
		return nil, &values.TypeError{Message: "cannot read properties of " + v.Kind().String()}
	default:
		return nil, &values.TypeError{Message: "cannot convert " + v.Kind().String() + " to an object (primitive wrapper objects are not implemented)"}
	}
}
