package es3

import (
	"fmt"

	"github.com/es3vm/es3vm/internal/object"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

// NativeFunc is the call signature a host function registered via
// RegisterFunction must have — the same signature every builtin method
// in internal/object uses (cfunction_make in spec.md §6.1). Unlike the
// teacher's RegisterFunction, which marshals an arbitrary Go function
// signature through reflection, this interpreter's object protocol
// only ever calls a function this one way, so RegisterFunction takes
// that signature directly: no reflection layer exists (or is needed)
// between the host and the script.
type NativeFunc func(this values.Value, args []values.Value) (values.Value, error)

// RegisterFunction exposes fn as a global script-callable function
// named name (spec.md §6.1's cfunction_make, wired onto the global
// object so script code can call it like any other function). It is
// an error to register the same name twice — mirroring the teacher's
// own ExternalFunctionRegistry, whose duplicate-registration check
// exists so a host accidentally double-registering a callback finds
// out immediately rather than silently shadowing the first one.
func (i *Interpreter) RegisterFunction(name string, fn NativeFunc) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.hosts[name] {
		return fmt.Errorf("es3: function %q is already registered", name)
	}

	native := object.New("Function", nil)
	native.SetCall(func(this values.Value, args []values.Value) (values.Value, error) {
		return fn(this, args)
	})
	attrs := values.DontEnum | values.DontDelete | values.ReadOnly
	native.DefineOwnProperty(strs.New("name"), values.StringFromGo(name), attrs)

	i.Global().DefineOwnProperty(strs.New(name), values.FromObject(native), values.DontEnum)
	i.hosts[name] = true
	return nil
}

// HasRegisteredFunction reports whether name was already bound by
// RegisterFunction, for a host that wants to avoid the duplicate error
// (e.g. re-registering the same callback set on interpreter reuse).
func (i *Interpreter) HasRegisteredFunction(name string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.hosts[name]
}

// RegisteredFunctions lists every name RegisterFunction has bound, in
// no particular order.
func (i *Interpreter) RegisteredFunctions() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	names := make([]string, 0, len(i.hosts))
	for name := range i.hosts {
		names = append(names, name)
	}
	return names
}
