package values

import "testing"

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"undefined", Undefined, KindUndefined},
		{"null", Null, KindNull},
		{"boolean", True, KindBoolean},
		{"number", Number(1), KindNumber},
		{"string", StringFromGo("x"), KindString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestSameValueNaN(t *testing.T) {
	if NaN.SameValue(NaN) {
		t.Error("SameValue(NaN, NaN) should be false (this models ===, not Object.is)")
	}
}

func TestSameValueString(t *testing.T) {
	if !StringFromGo("abc").SameValue(StringFromGo("abc")) {
		t.Error("equal-content strings should be SameValue")
	}
}

func TestCompletionRoundTrip(t *testing.T) {
	v := Number(42)
	c := NewCompletion(Return, &v, 0)
	if !c.IsCompletion() {
		t.Fatal("expected a completion value")
	}
	if c.CompletionKind() != Return {
		t.Errorf("got kind %v, want Return", c.CompletionKind())
	}
	if got := c.CompletionValue(); !got.SameValue(v) {
		t.Errorf("got completion value %v, want %v", got, v)
	}
}

func TestCompletionDefaultsToUndefinedValue(t *testing.T) {
	c := NewCompletion(Break, nil, 3)
	if got := c.CompletionValue(); !got.IsUndefined() {
		t.Errorf("expected undefined completion value, got %v", got)
	}
	if c.CompletionTarget() != 3 {
		t.Errorf("got target %v, want 3", c.CompletionTarget())
	}
}

func TestReferenceUnresolvedHasNoBase(t *testing.T) {
	r := NewReference(nil, nil)
	base, hasBase := r.RefBase()
	if hasBase {
		t.Errorf("expected no base, got %v", base)
	}
}
