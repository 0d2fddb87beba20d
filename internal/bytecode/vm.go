package bytecode

import (
	"github.com/es3vm/es3vm/internal/cerr"
	"github.com/es3vm/es3vm/internal/compat"
	"github.com/es3vm/es3vm/internal/object"
	"github.com/es3vm/es3vm/internal/runtime"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

// VM holds everything a running program shares across its whole
// execution — the same builtins/error-factory/call-stack/compat-flag
// set internal/eval.Evaluator holds, so a script compiled to bytecode
// and one walked by the tree evaluator see identical globals and
// produce identical observable behavior. What differs is entirely in
// how a function body's statements are executed: here, a flat
// instruction stream against a value stack and a block stack, instead
// of a recursive descent over the AST.
type VM struct {
	builtins *object.Builtins
	global   *object.Base
	ctors    cerr.Constructors
	calls    *runtime.CallStack
	compat   *compat.Set
	fileName string
	lastLine int // line of the instruction that most recently triggered an unwind, for ScriptError's location
}

// NewVM builds a VM with a fresh global object, mirroring
// internal/eval.New exactly: same builtins, same native error
// constructors exposed as globals, same recursion-budget default.
func NewVM(maxDepth int, set *compat.Set) *VM {
	builtins := object.NewBuiltins()
	global := object.New("global", builtins.ObjectProto)

	vm := &VM{
		builtins: builtins,
		global:   global,
		ctors:    builtins.NewErrorConstructors(),
		calls:    runtime.NewCallStack(maxDepth),
		compat:   set,
	}
	vm.installGlobals()
	return vm
}

func (vm *VM) installGlobals() {
	for kind, ctor := range vm.builtins.Constructors {
		vm.global.DefineOwnProperty(strs.New(string(kind)), values.FromObject(ctor), values.DontEnum)
	}
	vm.global.DefineOwnProperty(strs.New("eval"), values.FromObject(vm.makeEvalFunction()), values.DontEnum)
}

func (vm *VM) SetFileName(name string) { vm.fileName = name }

// LastLine returns the source line of the instruction that most
// recently raised a Throw completion, for a host reporting an
// uncaught throw's location (spec.md §4.3/§7); zero if nothing has
// thrown yet.
func (vm *VM) LastLine() int { return vm.lastLine }

func (vm *VM) SetAbortHook(hook func() bool) { vm.calls.SetAbortHook(hook) }

func (vm *VM) Global() values.Object { return vm.global }

func (vm *VM) NewGlobalContext() *runtime.Context {
	return runtime.NewGlobalContext(vm.global)
}

func (vm *VM) undefDef() bool { return vm.compat.Has(compat.UndefDef) }

// Run executes an already compiled top-level chunk in ctx, returning
// the program's completion exactly as internal/eval.Evaluator.Run
// does: Normal wrapping the last expression statement's value, or
// Throw if an uncaught exception propagated to the top.
func (vm *VM) Run(ctx *runtime.Context, chunk *Chunk) values.Value {
	fr := &frame{
		vm:     vm,
		chunk:  chunk,
		scope:  ctx.Scope,
		varObj: ctx.VariableObj,
		this:   ctx.ThisValue,
		c:      values.Normal,
	}
	fr.exec(0)
	switch fr.c {
	case values.Throw:
		cv := fr.cvalue
		return values.NewCompletion(values.Throw, &cv, 0)
	default:
		return values.NormalCompletion(fr.lastValue)
	}
}

// throwErr converts a Go error from the shared values/object/runtime
// primitives into the script-visible value thrown for it (the value a
// frame raises and keeps in its cvalue register on failure).
func (vm *VM) throwErr(err error) values.Value {
	completion := cerr.ThrowOf(err, vm.ctors)
	return completion.CompletionValue()
}

func (vm *VM) throwNative(kind cerr.Kind, message string) values.Value {
	obj := vm.ctors.New(kind, message)
	return values.FromObject(obj)
}
