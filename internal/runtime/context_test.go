package runtime

import (
	"testing"

	"github.com/es3vm/es3vm/internal/object"
	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

func TestNewGlobalContextThisIsGlobalObject(t *testing.T) {
	global := object.New("global", nil)
	ctx := NewGlobalContext(global)
	if ctx.ThisValue.Obj() != values.Object(global) {
		t.Error("global context's this should be the global object")
	}
	if ctx.VariableObj != values.Object(global) {
		t.Error("global context's variable object should be the global object")
	}
}

func TestWithObjectPrependsScopeWithoutChangingThis(t *testing.T) {
	global := object.New("global", nil)
	ctx := NewGlobalContext(global)

	withObj := object.New("Object", nil)
	withObj.DefineOwnProperty(strs.New("inWith"), values.True, 0)

	nested := ctx.WithObject(withObj)
	if nested.ThisValue.Obj() != values.Object(global) {
		t.Error("with statement must not change this")
	}
	if nested.Scope.Object() != values.Object(withObj) {
		t.Error("with statement should prepend its object as the innermost scope")
	}
	if nested.Scope.Outer() != ctx.Scope {
		t.Error("the outer scope should be unchanged")
	}
}

func TestNewFunctionContextUsesActivationAsVariableObject(t *testing.T) {
	activation := object.New("activation", nil)
	callerScope := NewScope(object.New("global", nil), nil)
	ctx := NewFunctionContext(activation, callerScope, values.Undefined)

	if ctx.VariableObj != values.Object(activation) {
		t.Error("function context's variable object should be the activation object")
	}
	if ctx.Scope.Outer() != callerScope {
		t.Error("function context's scope should chain to the lexical (defining) scope")
	}
}
