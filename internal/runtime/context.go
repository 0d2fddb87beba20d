package runtime

import "github.com/es3vm/es3vm/internal/values"

// Context is one execution context of ECMA-262 §10.2: a scope chain, a
// variable object (where `var`/function declarations are hoisted to —
// the activation object for function code, the global object for
// global code), and a `this` binding.
type Context struct {
	Scope       *Scope
	VariableObj values.Object
	ThisValue   values.Value
}

// NewGlobalContext builds the single execution context a program starts
// in: its own scope chain link is the global object, which is also the
// variable object and (per §10.2.3) the this-binding at the top level.
func NewGlobalContext(global values.Object) *Context {
	return &Context{
		Scope:       NewScope(global, nil),
		VariableObj: global,
		ThisValue:   values.FromObject(global),
	}
}

// NewFunctionContext builds the execution context entered on a function
// call: activation is the fresh activation/arguments object that
// becomes both the innermost scope link and the variable object;
// callerScope is the function's defining (lexical, not caller's
// dynamic) scope, per ECMA-262 §10.1.3/§13.2.1.
func NewFunctionContext(activation values.Object, callerScope *Scope, this values.Value) *Context {
	return &Context{
		Scope:       NewScope(activation, callerScope),
		VariableObj: activation,
		ThisValue:   this,
	}
}

// WithObject returns a new Context sharing everything except that
// object has been prepended to the scope chain — the `with` statement's
// effect (ECMA-262 §12.10) and also how a `catch` clause's parameter
// binding object is spliced in (§12.14).
func (c *Context) WithObject(object values.Object) *Context {
	return &Context{
		Scope:       NewScope(object, c.Scope),
		VariableObj: c.VariableObj,
		ThisValue:   c.ThisValue,
	}
}
