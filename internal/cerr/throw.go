package cerr

import "github.com/es3vm/es3vm/internal/values"

// Kind names the Error constructor or one of the five native error
// constructors of ECMA-262 §15.11.6.
type Kind string

const (
	Error          Kind = "Error"
	TypeErrorKind  Kind = "TypeError"
	RangeErrorKind Kind = "RangeError"
	RefErrorKind   Kind = "ReferenceError"
	SyntaxErrKind  Kind = "SyntaxError"
	URIErrorKind   Kind = "URIError"
)

// Constructors maps each native error kind to a factory that builds the
// corresponding script-visible Error object with the given message;
// internal/object (NewErrorConstructors) supplies the concrete closures
// once the error prototypes exist, breaking what would otherwise be an
// import cycle between cerr (which classifies failures) and object
// (which constructs them).
type Constructors struct {
	New func(kind Kind, message string) values.Object
}

// ThrowOf classifies a Go error raised by internal/values' coercions
// into the native error kind ECMA-262 prescribes, then builds and
// returns a Throw completion wrapping the constructed Error object.
func ThrowOf(err error, ctors Constructors) values.Value {
	kind, message := classify(err)
	obj := ctors.New(kind, message)
	thrown := values.FromObject(obj)
	return values.NewCompletion(values.Throw, &thrown, 0)
}

func classify(err error) (Kind, string) {
	switch e := err.(type) {
	case *values.TypeError:
		return TypeErrorKind, e.Message
	case *values.RangeError:
		return RangeErrorKind, e.Message
	case *values.ReferenceError:
		return RefErrorKind, e.Message
	case *values.SyntaxError:
		return SyntaxErrKind, e.Message
	case *values.URIError:
		return URIErrorKind, e.Message
	default:
		return Error, err.Error()
	}
}
