package object

import (
	"testing"

	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

func TestPutAndGet(t *testing.T) {
	o := New("Object", nil)
	if err := o.Put(strs.New("x"), values.Number(1), 0); err != nil {
		t.Fatalf("Put: %v", err)
	}
	v, err := o.Get(strs.New("x"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v.Num() != 1 {
		t.Errorf("got %v, want 1", v)
	}
}

func TestPrototypeChainGet(t *testing.T) {
	proto := New("Object", nil)
	proto.DefineOwnProperty(strs.New("greet"), values.StringFromGo("hi"), 0)
	child := New("Object", proto)

	v, err := child.Get(strs.New("greet"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v.Str().MustUTF8() != "hi" {
		t.Errorf("got %v, want hi", v)
	}
}

func TestReadOnlyCannotBeOverwritten(t *testing.T) {
	o := New("Object", nil)
	o.DefineOwnProperty(strs.New("x"), values.Number(1), values.ReadOnly)
	if err := o.Put(strs.New("x"), values.Number(2), 0); err != nil {
		t.Fatalf("Put: %v", err)
	}
	v, _ := o.Get(strs.New("x"))
	if v.Num() != 1 {
		t.Errorf("ReadOnly property was overwritten: got %v", v)
	}
}

func TestDontDeleteCannotBeDeleted(t *testing.T) {
	o := New("Object", nil)
	o.DefineOwnProperty(strs.New("x"), values.Number(1), values.DontDelete)
	ok, err := o.Delete(strs.New("x"))
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok {
		t.Error("Delete should have failed for a DontDelete property")
	}
	if !o.HasProperty(strs.New("x")) {
		t.Error("property should still be present")
	}
}

func TestDontEnumExcludedFromPropertyNames(t *testing.T) {
	o := New("Object", nil)
	o.DefineOwnProperty(strs.New("visible"), values.Number(1), 0)
	o.DefineOwnProperty(strs.New("hidden"), values.Number(2), values.DontEnum)

	names := o.PropertyNames()
	if len(names) != 1 || names[0].MustUTF8() != "visible" {
		t.Errorf("got %v, want only [visible]", names)
	}
}

func TestDefaultValueNumberHintPrefersValueOf(t *testing.T) {
	o := New("Object", nil)
	valueOf := New("Function", nil)
	valueOf.SetCall(func(this values.Value, args []values.Value) (values.Value, error) {
		return values.Number(42), nil
	})
	o.DefineOwnProperty(strs.New("valueOf"), values.FromObject(valueOf), 0)

	v, err := o.DefaultValue(values.KindNumber)
	if err != nil {
		t.Fatalf("DefaultValue: %v", err)
	}
	if v.Num() != 42 {
		t.Errorf("got %v, want 42", v)
	}
}

func TestCallOnNonCallableIsTypeError(t *testing.T) {
	o := New("Object", nil)
	_, err := o.Call(values.Undefined, nil)
	if _, ok := err.(*values.TypeError); !ok {
		t.Fatalf("got %T, want *values.TypeError", err)
	}
}
