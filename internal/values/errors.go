package values

// The five native error kinds of ECMA-262 §15.11/§15.7-15.10 each get a
// distinct Go type so callers (internal/eval, internal/cerr) can
// type-switch on what failed without string-matching messages. They are
// plain Go errors raised internally during evaluation, before an
// eval-level Throw value is constructed and wrapped in script-visible
// form by internal/eval or internal/bytecode (through internal/cerr).

type TypeError struct{ Message string }

func (e *TypeError) Error() string { return "TypeError: " + e.Message }

type ReferenceError struct{ Message string }

func (e *ReferenceError) Error() string { return "ReferenceError: " + e.Message }

type RangeError struct{ Message string }

func (e *RangeError) Error() string { return "RangeError: " + e.Message }

type SyntaxError struct{ Message string }

func (e *SyntaxError) Error() string { return "SyntaxError: " + e.Message }

type URIError struct{ Message string }

func (e *URIError) Error() string { return "URIError: " + e.Message }
