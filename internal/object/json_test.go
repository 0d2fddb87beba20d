package object

import (
	"strings"
	"testing"

	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

func TestExportJSONPrimitives(t *testing.T) {
	tests := []struct {
		in   values.Value
		want string
	}{
		{values.Undefined, "null"},
		{values.Null, "null"},
		{values.True, "true"},
		{values.Number(42), "42"},
		{values.StringFromGo("hi"), `"hi"`},
	}
	for _, tt := range tests {
		got, err := ExportJSON(tt.in)
		if err != nil {
			t.Fatalf("ExportJSON(%v): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExportJSON(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExportJSONObject(t *testing.T) {
	o := New("Object", nil)
	o.DefineOwnProperty(strs.New("a"), values.Number(1), 0)
	o.DefineOwnProperty(strs.New("b"), values.StringFromGo("two"), 0)

	got, err := ExportJSON(values.FromObject(o))
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if !strings.Contains(got, `"a":1`) || !strings.Contains(got, `"b":"two"`) {
		t.Errorf("got %s", got)
	}
}

func TestExportJSONArray(t *testing.T) {
	a := NewArray(nil, 0)
	_ = a.Put(strs.New("0"), values.Number(1), 0)
	_ = a.Put(strs.New("1"), values.Number(2), 0)

	got, err := ExportJSON(values.FromObject(a))
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if got != "[1,2]" {
		t.Errorf("got %s, want [1,2]", got)
	}
}

func TestImportJSONRoundTrip(t *testing.T) {
	factory := Factory{
		NewObject: func() values.Object { return New("Object", nil) },
		NewArray:  func(n uint32) values.Object { return NewArray(nil, n) },
	}
	v, err := ImportJSON(`{"x":1,"y":[true,"z"]}`, factory)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	obj := v.Obj()
	x, _ := obj.Get(strs.New("x"))
	if x.Num() != 1 {
		t.Errorf("x = %v, want 1", x)
	}
	y, _ := obj.Get(strs.New("y"))
	arr, ok := y.Obj().(*Array)
	if !ok {
		t.Fatalf("y is not an Array: %T", y.Obj())
	}
	if arr.length() != 2 {
		t.Errorf("y.length = %d, want 2", arr.length())
	}
}
