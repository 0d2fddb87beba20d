package eval

import "github.com/es3vm/es3vm/internal/values"

// thrownValue carries a script-level Throw completion's exact value
// across a values.Object Call/Construct boundary, which only speaks
// Go's (Value, error) convention — rethrow unwraps it back into the
// original completion on the way out, so a thrown object's identity
// survives a round trip through a function invocation.
type thrownValue struct{ value values.Value }

func (t *thrownValue) Error() string { return "uncaught script exception: " + t.value.String() }

// asGoError converts a Throw completion into the Go error a callFn/
// constructFn closure must return; any other completion kind is a
// programming error in the caller (invoke only calls this once it has
// confirmed the completion is a Throw).
func asGoError(completion values.Value) error {
	v := completion.CompletionValue()
	return &thrownValue{value: v}
}

// rethrow converts the Go error coming back from a values.Object Call/
// Construct into the original Throw completion when it came from
// script code (a thrownValue), or classifies a host/runtime error
// (e.g. call-stack overflow) into a fresh native error otherwise.
func (e *Evaluator) rethrow(err error) values.Value {
	if tv, ok := err.(*thrownValue); ok {
		return values.NewCompletion(values.Throw, &tv.value, 0)
	}
	return e.throw(err)
}

// Rethrow exports rethrow for a host that calls a values.Object it got
// from MakeFunction directly (spec.md §6.1's eval_functionbody) and
// needs the same error (Go error) ↔ completion (values.Value)
// conversion invoke itself uses.
func (e *Evaluator) Rethrow(err error) values.Value {
	return e.rethrow(err)
}
