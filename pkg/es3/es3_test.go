package es3

import (
	"strings"
	"testing"

	"github.com/es3vm/es3vm/internal/values"
)

func TestEvalReturnsLastExpressionValue(t *testing.T) {
	i, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := i.Eval("1 + 2;")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if result.Value.Kind() != values.KindNumber || result.Value.Num() != 3 {
		t.Fatalf("got %v, want 3", result.Value)
	}
}

func TestEvalParseErrorReportsLineAndMessage(t *testing.T) {
	i, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = i.Eval("var x = ;")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	cerr, ok := err.(*CompileError)
	if !ok {
		t.Fatalf("got %T, want *CompileError", err)
	}
	if cerr.Stage != "parse" || len(cerr.Errors) == 0 {
		t.Fatalf("got %+v, want a non-empty parse-stage error list", cerr)
	}
}

func TestEvalUncaughtThrowReportsScriptError(t *testing.T) {
	i, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = i.Eval(`throw new TypeError("bad");`)
	if err == nil {
		t.Fatal("expected a script error")
	}
	serr, ok := err.(*ScriptError)
	if !ok {
		t.Fatalf("got %T, want *ScriptError", err)
	}
	if serr.Name != "TypeError" || serr.Message != "bad" {
		t.Fatalf("got %+v, want TypeError: bad", serr)
	}
}

func TestEvalNonErrorThrowCoercesToString(t *testing.T) {
	i, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = i.Eval(`throw "boom";`)
	serr, ok := err.(*ScriptError)
	if !ok {
		t.Fatalf("got %T, want *ScriptError", err)
	}
	if serr.Name != "" || serr.Message != "boom" {
		t.Fatalf("got %+v, want empty name and message 'boom'", serr)
	}
	if want := "line 1: boom"; serr.Error() != want {
		t.Fatalf("Error() = %q, want %q", serr.Error(), want)
	}
}

func TestEvalScriptErrorIncludesFileName(t *testing.T) {
	i, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	i.SetFileName("main.js")
	_, err = i.Eval(`throw "boom";`)
	serr, ok := err.(*ScriptError)
	if !ok {
		t.Fatalf("got %T, want *ScriptError", err)
	}
	if want := "main.js:1: boom"; serr.Error() != want {
		t.Fatalf("Error() = %q, want %q", serr.Error(), want)
	}
}

func TestWithBytecodeVMMatchesTreeWalkerResult(t *testing.T) {
	tree, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	vm, err := New(WithBytecodeVM(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	source := "var x = 0; for (var i = 0; i < 5; i++) { x = x + i; } x;"
	treeResult, err := tree.Eval(source)
	if err != nil {
		t.Fatalf("tree Eval: %v", err)
	}
	vmResult, err := vm.Eval(source)
	if err != nil {
		t.Fatalf("vm Eval: %v", err)
	}
	if !treeResult.Value.SameValue(vmResult.Value) {
		t.Fatalf("got tree=%v vm=%v, want identical results", treeResult.Value, vmResult.Value)
	}
}

func TestGlobalBindingPersistsAcrossEvalCalls(t *testing.T) {
	i, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := i.Eval("var counter = 10;"); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	result, err := i.Eval("counter + 1;")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if result.Value.Num() != 11 {
		t.Fatalf("got %v, want 11 (global scope should persist)", result.Value)
	}
}

func TestCompileAndRunChunkMatchesDirectEval(t *testing.T) {
	i, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	chunk, cerr := i.Compile("2 * 21;")
	if cerr != nil {
		t.Fatalf("Compile: %v", cerr)
	}
	result, err := i.RunChunk(chunk)
	if err != nil {
		t.Fatalf("RunChunk: %v", err)
	}
	if result.Value.Num() != 42 {
		t.Fatalf("got %v, want 42", result.Value)
	}

	text := Disassemble(chunk, "test")
	if !strings.Contains(text, "==") {
		t.Fatalf("Disassemble output missing header: %q", text)
	}
}

func TestImportExportJSONRoundTrip(t *testing.T) {
	v, err := ImportJSON(`{"a":1,"b":[true,false,null],"c":"x"}`)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	doc, err := ExportJSON(v)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if !strings.Contains(doc, `"a":1`) {
		t.Fatalf("got %q, want it to contain the round-tripped \"a\":1 field", doc)
	}
}
