package runtime

import (
	"testing"

	"github.com/es3vm/es3vm/internal/object"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

func TestResolveFindsInnermostScope(t *testing.T) {
	global := object.New("global", nil)
	global.DefineOwnProperty(strs.New("x"), values.Number(1), 0)

	inner := object.New("activation", nil)
	inner.DefineOwnProperty(strs.New("x"), values.Number(2), 0)

	chain := NewScope(inner, NewScope(global, nil))
	obj, ok := chain.Resolve(strs.New("x"))
	if !ok {
		t.Fatal("expected to resolve x")
	}
	v, _ := obj.Get(strs.New("x"))
	if v.Num() != 2 {
		t.Errorf("got %v, want inner scope's x=2", v)
	}
}

func TestResolveFallsThroughToOuterScope(t *testing.T) {
	global := object.New("global", nil)
	global.DefineOwnProperty(strs.New("y"), values.Number(9), 0)

	inner := object.New("activation", nil)
	chain := NewScope(inner, NewScope(global, nil))

	obj, ok := chain.Resolve(strs.New("y"))
	if !ok {
		t.Fatal("expected to resolve y via outer scope")
	}
	if obj != values.Object(global) {
		t.Error("expected global object to be the resolved base")
	}
}

func TestResolveUnresolvedReturnsFalse(t *testing.T) {
	global := object.New("global", nil)
	chain := NewScope(global, nil)
	if _, ok := chain.Resolve(strs.New("nope")); ok {
		t.Error("expected resolution to fail for an undeclared identifier")
	}
}

func TestGlobalReturnsOutermostLink(t *testing.T) {
	global := object.New("global", nil)
	inner := object.New("activation", nil)
	chain := NewScope(inner, NewScope(global, nil))
	if chain.Global() != values.Object(global) {
		t.Error("Global() should return the outermost scope link")
	}
}
