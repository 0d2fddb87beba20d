// Package runtime implements the execution-context machinery of
// spec.md §3.4/§3.5: the scope chain (a linked list of objects, so
// `with` can prepend an arbitrary host or script object), execution
// contexts, the label stack, and the call stack's recursion budget.
package runtime

import (
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

// Scope is one link in the scope chain (ECMA-262 §10.1.4). Identifier
// resolution walks outward from the innermost scope, testing each
// link's object with HasProperty — exactly what lets `with` and
// `catch` splice an arbitrary object into the chain without a special
// case, since any values.Object (activation object, global object,
// host object, or the object a `with` names) satisfies the same
// protocol.
type Scope struct {
	object values.Object
	outer  *Scope
}

// NewScope prepends object as a new innermost link in front of outer
// (outer may be nil for the global scope's own link).
func NewScope(object values.Object, outer *Scope) *Scope {
	return &Scope{object: object, outer: outer}
}

// Object returns this link's backing object.
func (s *Scope) Object() values.Object { return s.object }

// Outer returns the next link outward, or nil at the global scope.
func (s *Scope) Outer() *Scope { return s.outer }

// Resolve walks the chain outward from s looking for an object with an
// own-or-inherited property named name, implementing the identifier
// resolution half of ECMA-262 §10.1.4's "Identifier Resolution": the
// first link whose HasProperty succeeds becomes the reference's base.
func (s *Scope) Resolve(name *strs.String) (values.Object, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if cur.object.HasProperty(name) {
			return cur.object, true
		}
	}
	return nil, false
}

// Global returns the outermost link of the chain — the global object.
func (s *Scope) Global() values.Object {
	cur := s
	for cur.outer != nil {
		cur = cur.outer
	}
	return cur.object
}
