package values

import "testing"

func TestStrictEqualsCrossType(t *testing.T) {
	if StrictEquals(Number(1), StringFromGo("1")) {
		t.Error("1 === \"1\" should be false")
	}
	if !StrictEquals(Number(1), Number(1)) {
		t.Error("1 === 1 should be true")
	}
	if StrictEquals(NaN, NaN) {
		t.Error("NaN === NaN should be false")
	}
	if !StrictEquals(Undefined, Undefined) {
		t.Error("undefined === undefined should be true")
	}
	if StrictEquals(Null, Undefined) {
		t.Error("null === undefined should be false")
	}
}

func TestAbstractEqualsCoercion(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"null == undefined", Null, Undefined, true},
		{"1 == \"1\"", Number(1), StringFromGo("1"), true},
		{"true == 1", True, Number(1), true},
		{"false == 0", False, Number(0), true},
		{"0 == \"\"", Number(0), StringFromGo(""), true},
		{"1 == 2", Number(1), Number(2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AbstractEquals(tt.a, tt.b)
			if err != nil {
				t.Fatalf("AbstractEquals: %v", err)
			}
			if got != tt.want {
				t.Errorf("AbstractEquals(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// symmetry
			got2, err := AbstractEquals(tt.b, tt.a)
			if err != nil {
				t.Fatalf("AbstractEquals (swapped): %v", err)
			}
			if got2 != tt.want {
				t.Errorf("AbstractEquals(%v, %v) = %v, want %v (symmetry)", tt.b, tt.a, got2, tt.want)
			}
		})
	}
}

func TestAbstractRelCompareStrings(t *testing.T) {
	res, err := AbstractRelCompare(StringFromGo("abc"), StringFromGo("abd"), true)
	if err != nil {
		t.Fatalf("AbstractRelCompare: %v", err)
	}
	if res != RelLess {
		t.Errorf("got %v, want RelLess", res)
	}
}

func TestAbstractRelCompareNaN(t *testing.T) {
	res, err := AbstractRelCompare(NaN, Number(1), true)
	if err != nil {
		t.Fatalf("AbstractRelCompare: %v", err)
	}
	if res != RelUndefined {
		t.Errorf("got %v, want RelUndefined", res)
	}
}

func TestAbstractRelCompareNumbers(t *testing.T) {
	res, err := AbstractRelCompare(Number(1), Number(2), true)
	if err != nil {
		t.Fatalf("AbstractRelCompare: %v", err)
	}
	if res != RelLess {
		t.Errorf("got %v, want RelLess", res)
	}
}
