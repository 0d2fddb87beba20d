// Package values implements the tagged-union runtime value of spec.md
// §3.1: primitive, object, reference, and completion values, plus the
// abstract coercion operations ECMA-262 §9 defines over them.
package values

import (
	"fmt"
	"math"

	"github.com/es3vm/es3vm/internal/strs"
)

// Kind discriminates which variant a Value holds.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindObject
	KindReference
	KindCompletion
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindReference:
		return "reference"
	case KindCompletion:
		return "completion"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Object is the object-protocol interface (spec.md §4.2), implemented
// by internal/object. It lives here, rather than in internal/object, so
// that Value can embed an Object field without an import cycle.
type Object interface {
	Class() string
	Prototype() Object
	Get(name *strs.String) (Value, error)
	Put(name *strs.String, v Value, attr PropAttr) error
	CanPut(name *strs.String) bool
	HasProperty(name *strs.String) bool
	Delete(name *strs.String) (bool, error)
	DefaultValue(hint Kind) (Value, error)
	PropertyNames() []*strs.String // own enumerable names, insertion order

	HasCall() bool
	Call(this Value, args []Value) (Value, error)
	HasConstruct() bool
	Construct(args []Value) (Value, error)
	HasInstance() bool
	HasInstanceOf(v Value) (bool, error)
}

// PropAttr is the ECMA-262 property attribute bit set (spec.md §3.3).
type PropAttr uint8

const (
	DontEnum PropAttr = 1 << iota
	DontDelete
	ReadOnly
)

// CompletionKind classifies a statement Completion (spec.md §3.1, §4.4).
type CompletionKind uint8

const (
	Normal CompletionKind = iota
	Break
	Continue
	Return
	Throw
)

func (k CompletionKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Break:
		return "break"
	case Continue:
		return "continue"
	case Return:
		return "return"
	case Throw:
		return "throw"
	default:
		return "completion?"
	}
}

// TargetID identifies the loop/switch/labelled statement a break or
// continue completion addresses; the zero value means "innermost
// unlabelled target".
type TargetID int

// Value is the tagged union of spec.md §3.1. Exactly one field group is
// meaningful, selected by Kind. Reference and Completion values must
// never reach script-visible code: every API that hands a value back to
// script code first resolves references (GetValue) and unwraps
// completions.
type Value struct {
	kind Kind

	boolean bool
	number  float64
	str     *strs.String
	object  Object

	// Reference fields (spec.md §3.1, §4.2 GetValue/PutValue).
	refBase     Object
	refHasBase  bool
	refProperty *strs.String

	// Completion fields (spec.md §3.1, §4.4).
	compKind   CompletionKind
	compValue  *Value
	compTarget TargetID
}

// Undefined is the sentinel undefined value.
var Undefined = Value{kind: KindUndefined}

// Null is the null object reference.
var Null = Value{kind: KindNull}

// True and False are the two boolean values.
var (
	True  = Value{kind: KindBoolean, boolean: true}
	False = Value{kind: KindBoolean, boolean: false}
)

// Bool returns True or False for b.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Number returns a Number value. NaN, +Inf, -Inf, +0, and -0 are all
// preserved exactly (spec.md §3.1).
func Number(n float64) Value { return Value{kind: KindNumber, number: n} }

// NaN is the IEEE-754 not-a-number value; NaN != NaN (spec.md §3.1,
// §8 invariant 3).
var NaN = Number(math.NaN())

// String wraps a *strs.String as a String value.
func String(s *strs.String) Value { return Value{kind: KindString, str: s} }

// StringFromGo is a convenience wrapper for a Go (UTF-8) string literal.
func StringFromGo(s string) Value { return String(strs.New(s)) }

// FromObject wraps an Object reference as an Object value.
func FromObject(o Object) Value {
	if o == nil {
		return Null
	}
	return Value{kind: KindObject, object: o}
}

// NewReference builds an unresolved Reference value. base is nil for an
// unresolved identifier reference (spec.md §4.2: "GetValue... raises
// ReferenceError" unless the undefdef compat flag is set).
func NewReference(base Object, property *strs.String) Value {
	v := Value{kind: KindReference, refProperty: property}
	if base != nil {
		v.refBase = base
		v.refHasBase = true
	}
	return v
}

// NewCompletion builds a Completion value.
func NewCompletion(kind CompletionKind, value *Value, target TargetID) Value {
	return Value{kind: KindCompletion, compKind: kind, compValue: value, compTarget: target}
}

// NormalCompletion is shorthand for NewCompletion(Normal, &v, 0).
func NormalCompletion(v Value) Value {
	return NewCompletion(Normal, &v, 0)
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsUndefined() bool  { return v.kind == KindUndefined }
func (v Value) IsNull() bool       { return v.kind == KindNull }
func (v Value) IsBoolean() bool    { return v.kind == KindBoolean }
func (v Value) IsNumber() bool     { return v.kind == KindNumber }
func (v Value) IsString() bool     { return v.kind == KindString }
func (v Value) IsObject() bool     { return v.kind == KindObject }
func (v Value) IsReference() bool  { return v.kind == KindReference }
func (v Value) IsCompletion() bool { return v.kind == KindCompletion }

// IsPrimitive reports whether v is one of Undefined/Null/Boolean/Number/String.
func (v Value) IsPrimitive() bool {
	switch v.kind {
	case KindUndefined, KindNull, KindBoolean, KindNumber, KindString:
		return true
	default:
		return false
	}
}

// Bool extracts the boolean payload. Only meaningful when IsBoolean.
func (v Value) Bool() bool { return v.boolean }

// Num extracts the numeric payload. Only meaningful when IsNumber.
func (v Value) Num() float64 { return v.number }

// Str extracts the string payload. Only meaningful when IsString.
func (v Value) Str() *strs.String { return v.str }

// Obj extracts the object payload. Only meaningful when IsObject.
func (v Value) Obj() Object { return v.object }

// RefBase returns the reference's base object (nil if unresolved with
// no base) and whether a base was set at all. Only meaningful when
// IsReference.
func (v Value) RefBase() (Object, bool) { return v.refBase, v.refHasBase }

// RefProperty returns the reference's property name. Only meaningful
// when IsReference.
func (v Value) RefProperty() *strs.String { return v.refProperty }

// CompletionKind, CompletionValue, and CompletionTarget decompose a
// Completion value. Only meaningful when IsCompletion.
func (v Value) CompletionKind() CompletionKind { return v.compKind }
func (v Value) CompletionValue() Value {
	if v.compValue == nil {
		return Undefined
	}
	return *v.compValue
}
func (v Value) CompletionTarget() TargetID { return v.compTarget }

// SameValue implements the non-converting equality used by strict
// equality's object/undefined/null branches and by §8 invariant 3:
// v === v is true except when v is NaN.
func (v Value) SameValue(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindUndefined, KindNull:
		return true
	case KindBoolean:
		return v.boolean == other.boolean
	case KindNumber:
		return v.number == other.number // NaN != NaN falls out of Go's float equality
	case KindString:
		return v.str.Equal(other.str)
	case KindObject:
		return v.object == other.object
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.number)
	case KindString:
		return v.str.MustUTF8()
	case KindObject:
		return fmt.Sprintf("[object %s]", v.object.Class())
	case KindReference:
		return "<reference>"
	case KindCompletion:
		return fmt.Sprintf("<completion %s>", v.compKind)
	default:
		return "<value?>"
	}
}
