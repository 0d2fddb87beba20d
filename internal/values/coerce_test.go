package values

import (
	"math"
	"testing"

	"github.com/es3vm/es3vm/internal/strs"
)

func TestToBoolean(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want bool
	}{
		{"undefined", Undefined, false},
		{"null", Null, false},
		{"zero", Number(0), false},
		{"negative zero", Number(math.Copysign(0, -1)), false},
		{"nan", NaN, false},
		{"one", Number(1), true},
		{"empty string", StringFromGo(""), false},
		{"non-empty string", StringFromGo("a"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToBoolean(tt.in); got != tt.want {
				t.Errorf("ToBoolean(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToNumberFromString(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"123", 123},
		{"  42  ", 42},
		{"3.14", 3.14},
		{"-1.5e2", -150},
		{"0x1F", 31},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{"abc", math.NaN()},
	}
	for _, tt := range tests {
		got, err := ToNumber(StringFromGo(tt.in))
		if err != nil {
			t.Fatalf("ToNumber(%q): %v", tt.in, err)
		}
		if math.IsNaN(tt.want) {
			if !math.IsNaN(got) {
				t.Errorf("ToNumber(%q) = %v, want NaN", tt.in, got)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ToNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToStringNumberFormatting(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{3.14, "3.14"},
		{-2.5, "-2.5"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		s, err := ToString(Number(tt.in))
		if err != nil {
			t.Fatalf("ToString(%v): %v", tt.in, err)
		}
		if got := s.MustUTF8(); got != tt.want {
			t.Errorf("ToString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToInt32Wraparound(t *testing.T) {
	tests := []struct {
		in   float64
		want int32
	}{
		{0, 0},
		{1, 1},
		{-1, -1},
		{4294967296, 0},           // 2^32
		{4294967297, 1},           // 2^32 + 1
		{2147483648, -2147483648}, // 2^31 wraps to min int32
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		got, err := ToInt32(Number(tt.in))
		if err != nil {
			t.Fatalf("ToInt32(%v): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ToInt32(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToUint32Wraparound(t *testing.T) {
	got, err := ToUint32(Number(-1))
	if err != nil {
		t.Fatalf("ToUint32(-1): %v", err)
	}
	if got != 4294967295 {
		t.Errorf("ToUint32(-1) = %v, want 4294967295", got)
	}
}

func TestToObjectRejectsUndefinedAndNull(t *testing.T) {
	boxer := ObjectBoxer{}
	for _, v := range []Value{Undefined, Null} {
		if _, err := boxer.ToObject(v); err == nil {
			t.Errorf("ToObject(%v) should have raised a TypeError", v)
		} else if _, ok := err.(*TypeError); !ok {
			t.Errorf("ToObject(%v) raised %T, want *TypeError", v, err)
		}
	}
}

func TestStringToNumberSkipsUnicodeWhitespace(t *testing.T) {
	s := strs.FromUnits([]uint16{0x00A0, '7', 0x00A0})
	got, err := ToNumber(String(s))
	if err != nil {
		t.Fatalf("ToNumber: %v", err)
	}
	if got != 7 {
		t.Errorf("got %v, want 7", got)
	}
}
