package es3

import (
	"github.com/es3vm/es3vm/internal/object"
	"github.com/es3vm/es3vm/internal/values"
)

// jsonFactory builds the plain Object/Array instances ImportJSON needs
// to materialize a parsed document; host-facing values built this way
// get no prototype (they're data, not script-authored objects, so
// there's no Object.prototype/Array.prototype method host JSON import
// needs to inherit).
var jsonFactory = object.Factory{
	NewObject: func() values.Object { return object.New("Object", nil) },
	NewArray:  func(length uint32) values.Object { return object.NewArray(nil, length) },
}

// ExportJSON serializes v to a JSON document (spec.md §6.1's embedding
// bridge to host-side JSON tooling; independent of any in-language
// JSON global, which is out of scope per SPEC_FULL.md §C).
func ExportJSON(v values.Value) (string, error) {
	return object.ExportJSON(v)
}

// ImportJSON parses a host JSON document into an interpreter Value
// usable as an argument to Eval'd script code or a RegisterFunction
// callback's return value.
func ImportJSON(doc string) (values.Value, error) {
	return object.ImportJSON(doc, jsonFactory)
}
