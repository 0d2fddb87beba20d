package es3

import (
	"bytes"
	"testing"

	"github.com/es3vm/es3vm/internal/values"
)

func TestRegisterFunctionIsCallableFromScript(t *testing.T) {
	i, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = i.RegisterFunction("add", func(_ values.Value, args []values.Value) (values.Value, error) {
		a, err := values.ToNumber(args[0])
		if err != nil {
			return values.Undefined, err
		}
		b, err := values.ToNumber(args[1])
		if err != nil {
			return values.Undefined, err
		}
		return values.Number(a + b), nil
	})
	if err != nil {
		t.Fatalf("RegisterFunction: %v", err)
	}

	result, err := i.Eval("add(40, 2);")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if result.Value.Num() != 42 {
		t.Fatalf("got %v, want 42", result.Value)
	}
}

func TestRegisterFunctionDuplicateNameErrors(t *testing.T) {
	i, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	noop := func(_ values.Value, _ []values.Value) (values.Value, error) { return values.Undefined, nil }
	if err := i.RegisterFunction("f", noop); err != nil {
		t.Fatalf("first RegisterFunction: %v", err)
	}
	if err := i.RegisterFunction("f", noop); err == nil {
		t.Fatal("expected an error registering the same name twice")
	}
}

func TestRegisterFunctionErrorBecomesScriptThrow(t *testing.T) {
	i, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = i.RegisterFunction("fail", func(_ values.Value, _ []values.Value) (values.Value, error) {
		return values.Undefined, &values.TypeError{Message: "host refused"}
	})
	if err != nil {
		t.Fatalf("RegisterFunction: %v", err)
	}

	_, err = i.Eval("fail();")
	serr, ok := err.(*ScriptError)
	if !ok {
		t.Fatalf("got %T, want *ScriptError", err)
	}
	if serr.Name != "TypeError" {
		t.Fatalf("got %+v, want a TypeError", serr)
	}
}

func TestSetOutputRedirectsHostPrintCallback(t *testing.T) {
	i, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	i.SetOutput(&buf)

	err = i.RegisterFunction("print", func(_ values.Value, args []values.Value) (values.Value, error) {
		s, err := values.ToString(args[0])
		if err != nil {
			return values.Undefined, err
		}
		buf2 := i.Output()
		buf2.Write([]byte(s.MustUTF8()))
		return values.Undefined, nil
	})
	if err != nil {
		t.Fatalf("RegisterFunction: %v", err)
	}

	if _, err := i.Eval(`print("hello");`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if buf.String() != "hello" {
		t.Fatalf("got %q, want %q", buf.String(), "hello")
	}
}
