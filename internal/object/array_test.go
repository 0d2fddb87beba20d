package object

import (
	"testing"

	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

func TestArrayPutExtendsLength(t *testing.T) {
	a := NewArray(nil, 0)
	if err := a.Put(strs.New("3"), values.Number(9), 0); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if a.length() != 4 {
		t.Errorf("got length %d, want 4", a.length())
	}
}

func TestArraySettingLengthTruncates(t *testing.T) {
	a := NewArray(nil, 0)
	_ = a.Put(strs.New("0"), values.Number(1), 0)
	_ = a.Put(strs.New("1"), values.Number(2), 0)
	_ = a.Put(strs.New("2"), values.Number(3), 0)

	if err := a.Put(strs.New("length"), values.Number(1), 0); err != nil {
		t.Fatalf("Put length: %v", err)
	}
	if a.HasProperty(strs.New("1")) || a.HasProperty(strs.New("2")) {
		t.Error("indices >= new length should have been deleted")
	}
	if !a.HasProperty(strs.New("0")) {
		t.Error("index 0 should survive truncation to length 1")
	}
}

func TestArrayIndexValidation(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"0", true},
		{"1", true},
		{"4294967294", true},
		{"4294967295", false}, // 2^32-1 is excluded by definition
		{"01", false},         // leading zero is not a canonical index string
		{"-1", false},
		{"abc", false},
		{"", false},
	}
	for _, tt := range tests {
		_, ok := arrayIndex(strs.New(tt.name))
		if ok != tt.want {
			t.Errorf("arrayIndex(%q) ok = %v, want %v", tt.name, ok, tt.want)
		}
	}
}
