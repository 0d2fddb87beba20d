package runtime

import "github.com/es3vm/es3vm/internal/values"

// GetValue implements ECMA-262 §8.7.1. If v is not a Reference it is
// returned unchanged; an unresolvable reference (no base) raises a
// ReferenceError unless allowUndefDef permits reading undeclared
// identifiers as undefined (spec.md §4.1's undefdef compat flag).
func GetValue(v values.Value, allowUndefDef bool) (values.Value, error) {
	if !v.IsReference() {
		return v, nil
	}
	base, hasBase := v.RefBase()
	if !hasBase {
		if allowUndefDef {
			return values.Undefined, nil
		}
		return values.Undefined, &values.ReferenceError{
			Message: identName(v) + " is not defined",
		}
	}
	return base.Get(v.RefProperty())
}

// PutValue implements ECMA-262 §8.7.2. An unresolvable reference (no
// base) implicitly creates a property on the global object — ES3's
// sloppy-mode "implied global" behavior, since ES3 predates strict
// mode.
func PutValue(v, value values.Value, global values.Object) error {
	if !v.IsReference() {
		return &values.ReferenceError{Message: "invalid assignment target"}
	}
	base, hasBase := v.RefBase()
	if !hasBase {
		base = global
	}
	return base.Put(v.RefProperty(), value, 0)
}

func identName(v values.Value) string {
	if p := v.RefProperty(); p != nil {
		return p.MustUTF8()
	}
	return "<anonymous>"
}
