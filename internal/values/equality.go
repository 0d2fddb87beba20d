package values

// StrictEquals implements ECMA-262 §11.9.6 (the === operator).
func StrictEquals(x, y Value) bool {
	if x.Kind() != y.Kind() {
		return false
	}
	switch x.Kind() {
	case KindUndefined, KindNull:
		return true
	case KindNumber:
		return x.Num() == y.Num() // NaN != NaN, +0 == -0, both from Go float equality
	case KindString:
		return x.Str().Equal(y.Str())
	case KindBoolean:
		return x.Bool() == y.Bool()
	case KindObject:
		return x.Obj() == y.Obj()
	default:
		return false
	}
}

// AbstractEquals implements ECMA-262 §11.9.3 (the == operator), including
// its cross-type coercion steps.
func AbstractEquals(x, y Value) (bool, error) {
	if x.Kind() == y.Kind() {
		return StrictEquals(x, y), nil
	}
	switch {
	case x.Kind() == KindNull && y.Kind() == KindUndefined,
		x.Kind() == KindUndefined && y.Kind() == KindNull:
		return true, nil
	case x.Kind() == KindNumber && y.Kind() == KindString:
		yn, err := ToNumber(y)
		if err != nil {
			return false, err
		}
		return x.Num() == yn, nil
	case x.Kind() == KindString && y.Kind() == KindNumber:
		xn, err := ToNumber(x)
		if err != nil {
			return false, err
		}
		return xn == y.Num(), nil
	case x.Kind() == KindBoolean:
		xn, err := ToNumber(x)
		if err != nil {
			return false, err
		}
		return AbstractEquals(Number(xn), y)
	case y.Kind() == KindBoolean:
		yn, err := ToNumber(y)
		if err != nil {
			return false, err
		}
		return AbstractEquals(x, Number(yn))
	case (x.Kind() == KindNumber || x.Kind() == KindString) && y.Kind() == KindObject:
		yp, err := ToPrimitive(y, 0)
		if err != nil {
			return false, err
		}
		return AbstractEquals(x, yp)
	case x.Kind() == KindObject && (y.Kind() == KindNumber || y.Kind() == KindString):
		xp, err := ToPrimitive(x, 0)
		if err != nil {
			return false, err
		}
		return AbstractEquals(xp, y)
	default:
		return false, nil
	}
}

// RelCompareResult is the tri-state result of an abstract relational
// comparison (ECMA-262 §11.8.5): Undefined arises when either operand
// converts to NaN, per the "if NaN, return undefined" step.
type RelCompareResult int

const (
	RelLess RelCompareResult = iota
	RelGreaterOrEqual
	RelUndefined
)

// AbstractRelCompare implements ECMA-262 §11.8.5 with leftFirst
// controlling evaluation order of the ToPrimitive conversions (true for
// <, <=; false for >, >=, which evaluate right-to-left per the spec).
func AbstractRelCompare(x, y Value, leftFirst bool) (RelCompareResult, error) {
	var px, py Value
	var err error
	if leftFirst {
		if px, err = ToPrimitive(x, KindNumber); err != nil {
			return RelUndefined, err
		}
		if py, err = ToPrimitive(y, KindNumber); err != nil {
			return RelUndefined, err
		}
	} else {
		if py, err = ToPrimitive(y, KindNumber); err != nil {
			return RelUndefined, err
		}
		if px, err = ToPrimitive(x, KindNumber); err != nil {
			return RelUndefined, err
		}
	}
	if px.Kind() == KindString && py.Kind() == KindString {
		switch px.Str().Compare(py.Str()) {
		case -1:
			return RelLess, nil
		default:
			return RelGreaterOrEqual, nil
		}
	}
	nx, err := ToNumber(px)
	if err != nil {
		return RelUndefined, err
	}
	ny, err := ToNumber(py)
	if err != nil {
		return RelUndefined, err
	}
	if nx != nx || ny != ny { // NaN
		return RelUndefined, nil
	}
	if nx < ny {
		return RelLess, nil
	}
	return RelGreaterOrEqual, nil
}
