package runtime

import (
	"testing"

	"github.com/es3vm/es3vm/internal/object"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

func TestGetValuePassesThroughNonReference(t *testing.T) {
	v, err := GetValue(values.Number(5), false)
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if v.Num() != 5 {
		t.Errorf("got %v, want 5", v)
	}
}

func TestGetValueUnresolvedRaisesReferenceError(t *testing.T) {
	ref := values.NewReference(nil, strs.New("x"))
	_, err := GetValue(ref, false)
	if _, ok := err.(*values.ReferenceError); !ok {
		t.Fatalf("got %T, want *values.ReferenceError", err)
	}
}

func TestGetValueUnresolvedWithUndefDefReturnsUndefined(t *testing.T) {
	ref := values.NewReference(nil, strs.New("x"))
	v, err := GetValue(ref, true)
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if !v.IsUndefined() {
		t.Errorf("got %v, want undefined", v)
	}
}

func TestGetValueResolvedReadsBase(t *testing.T) {
	o := object.New("Object", nil)
	o.DefineOwnProperty(strs.New("x"), values.Number(7), 0)
	ref := values.NewReference(o, strs.New("x"))
	v, err := GetValue(ref, false)
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if v.Num() != 7 {
		t.Errorf("got %v, want 7", v)
	}
}

func TestPutValueUnresolvedCreatesGlobalProperty(t *testing.T) {
	global := object.New("global", nil)
	ref := values.NewReference(nil, strs.New("g"))
	if err := PutValue(ref, values.Number(3), global); err != nil {
		t.Fatalf("PutValue: %v", err)
	}
	v, _ := global.Get(strs.New("g"))
	if v.Num() != 3 {
		t.Errorf("implicit global assignment failed: got %v", v)
	}
}
