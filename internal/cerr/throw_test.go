package cerr

import (
	"testing"

	"github.com/es3vm/es3vm/internal/values"
)

func TestThrowOfClassifiesTypeError(t *testing.T) {
	var gotKind Kind
	var gotMsg string
	ctors := Constructors{New: func(kind Kind, message string) values.Object {
		gotKind, gotMsg = kind, message
		return nil
	}}
	ThrowOf(&values.TypeError{Message: "not a function"}, ctors)
	if gotKind != TypeErrorKind {
		t.Errorf("got kind %v, want TypeError", gotKind)
	}
	if gotMsg != "not a function" {
		t.Errorf("got message %q", gotMsg)
	}
}

func TestThrowOfProducesThrowCompletion(t *testing.T) {
	ctors := Constructors{New: func(kind Kind, message string) values.Object { return nil }}
	c := ThrowOf(&values.RangeError{Message: "too deep"}, ctors)
	if !c.IsCompletion() || c.CompletionKind() != values.Throw {
		t.Fatalf("expected a Throw completion, got %v", c)
	}
}
