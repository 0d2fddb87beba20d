package values

import (
	"math"
	"strconv"
	"strings"

	"github.com/es3vm/es3vm/internal/strs"
)

// ToPrimitive implements ECMA-262 §9.1: objects are reduced to a
// primitive by trying DefaultValue with the given hint (KindNumber or
// KindString; any other hint is treated as KindNumber, "no hint").
func ToPrimitive(v Value, hint Kind) (Value, error) {
	if v.Kind() != KindObject {
		return v, nil
	}
	return v.Obj().DefaultValue(hint)
}

// ToBoolean implements ECMA-262 §9.2.
func ToBoolean(v Value) bool {
	switch v.Kind() {
	case KindUndefined, KindNull:
		return false
	case KindBoolean:
		return v.Bool()
	case KindNumber:
		n := v.Num()
		return n != 0 && !math.IsNaN(n)
	case KindString:
		return v.Str().Len() > 0
	case KindObject:
		return true
	default:
		return false
	}
}

// ToNumber implements ECMA-262 §9.3.
func ToNumber(v Value) (float64, error) {
	switch v.Kind() {
	case KindUndefined:
		return math.NaN(), nil
	case KindNull:
		return 0, nil
	case KindBoolean:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	case KindNumber:
		return v.Num(), nil
	case KindString:
		return stringToNumber(v.Str()), nil
	case KindObject:
		prim, err := ToPrimitive(v, KindNumber)
		if err != nil {
			return 0, err
		}
		return ToNumber(prim)
	default:
		return math.NaN(), nil
	}
}

// stringToNumber implements the grammar of ECMA-262 §9.3.1: optional
// sign, decimal/hex literal, or Infinity, with leading/trailing
// whitespace stripped; anything else (including an empty string after
// trimming becomes 0, anything malformed becomes NaN).
func stringToNumber(s *strs.String) float64 {
	raw := s.MustUTF8()
	trimmed := strings.TrimFunc(raw, isStrNumWhitespace)
	if trimmed == "" {
		return 0
	}
	neg := false
	rest := trimmed
	if strings.HasPrefix(rest, "+") {
		rest = rest[1:]
	} else if strings.HasPrefix(rest, "-") {
		neg = true
		rest = rest[1:]
	}
	if rest == "Infinity" {
		if neg {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	if strings.HasPrefix(rest, "0x") || strings.HasPrefix(rest, "0X") {
		n, err := strconv.ParseUint(rest[2:], 16, 64)
		if err != nil || rest == "0x" || rest == "0X" {
			return math.NaN()
		}
		if neg {
			return -float64(n)
		}
		return float64(n)
	}
	n, err := strconv.ParseFloat(rest, 64)
	if err != nil {
		return math.NaN()
	}
	if neg {
		return -n
	}
	return n
}

func isStrNumWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\u00a0', '\ufeff':
		return true
	default:
		return false
	}
}

// ToString implements ECMA-262 §9.8.
func ToString(v Value) (*strs.String, error) {
	switch v.Kind() {
	case KindUndefined:
		return strs.New("undefined"), nil
	case KindNull:
		return strs.New("null"), nil
	case KindBoolean:
		if v.Bool() {
			return strs.New("true"), nil
		}
		return strs.New("false"), nil
	case KindNumber:
		return strs.New(formatNumber(v.Num())), nil
	case KindString:
		return v.Str(), nil
	case KindObject:
		prim, err := ToPrimitive(v, KindString)
		if err != nil {
			return nil, err
		}
		return ToString(prim)
	default:
		return strs.New(""), nil
	}
}

// formatNumber implements the ECMA-262 §9.8.1 ToString-for-Number
// algorithm as far as Go's shortest round-tripping formatter allows:
// NaN, +-Infinity, and -0 get their literal spellings; everything else
// uses the shortest decimal that reads back to the same float64, with
// exponential notation for very large/small magnitudes (the same
// threshold ECMA-262 specifies: exponent >= 21 or <= -7).
func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		if math.Signbit(n) {
			return "0" // ToString never distinguishes -0 from 0
		}
		return "0"
	}
	abs := math.Abs(n)
	exp := int(math.Floor(math.Log10(abs)))
	if exp >= 21 || exp <= -7 {
		return strconv.FormatFloat(n, 'e', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// ToObject implements ECMA-262 §9.9. Undefined and Null always raise a
// TypeError; the ctor callbacks (supplied by internal/object, which
// depends on this package, not the reverse) box primitives.
type ObjectBoxer struct {
	Boolean func(bool) Object
	Number  func(float64) Object
	String  func(*strs.String) Object
}

func (b ObjectBoxer) ToObject(v Value) (Object, error) {
	switch v.Kind() {
	case KindObject:
		return v.Obj(), nil
	case KindBoolean:
		return b.Boolean(v.Bool()), nil
	case KindNumber:
		return b.Number(v.Num()), nil
	case KindString:
		return b.String(v.Str()), nil
	default:
		return nil, &TypeError{Message: "cannot convert " + v.Kind().String() + " to object"}
	}
}

// toUint32Bits implements the common ECMA-262 §9.5/§9.6 reduction: modulo
// 2^32 of the truncated magnitude, with NaN/Infinity/+-0 mapping to 0.
func toUint32Bits(n float64) uint32 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return 0
	}
	sign := float64(1)
	if n < 0 {
		sign = -1
	}
	m := math.Floor(math.Abs(n))
	m = math.Mod(sign*m, 4294967296)
	if m < 0 {
		m += 4294967296
	}
	return uint32(m)
}

// ToInt32 implements ECMA-262 §9.5.
func ToInt32(v Value) (int32, error) {
	n, err := ToNumber(v)
	if err != nil {
		return 0, err
	}
	u := toUint32Bits(n)
	if u >= 2147483648 {
		return int32(u - 4294967296), nil
	}
	return int32(u), nil
}

// ToUint32 implements ECMA-262 §9.6.
func ToUint32(v Value) (uint32, error) {
	n, err := ToNumber(v)
	if err != nil {
		return 0, err
	}
	return toUint32Bits(n), nil
}

// ToUint16 implements ECMA-262 §9.7.
func ToUint16(v Value) (uint16, error) {
	n, err := ToNumber(v)
	if err != nil {
		return 0, err
	}
	return uint16(toUint32Bits(n) % 65536), nil
}
