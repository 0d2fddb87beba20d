package es3

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// Input bundles a source text with the file name its diagnostics
// should carry — spec.md §6.1's input_from_file/input_from_string/
// input_from_utf8 trio, collapsed from three host-side reader objects
// into one value plus three constructors, since Go reads a whole file
// into memory up front rather than streaming characters the way the
// reference's next()/eof reader does.
type Input struct {
	Source   string
	FileName string
}

// InputFromFile reads path whole and names it as the input's file name
// (spec.md's input_from_file).
func InputFromFile(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("es3: %w", err)
	}
	return Input{Source: string(data), FileName: path}, nil
}

// InputFromString wraps an in-memory string with no associated file
// name (spec.md's input_from_string); used for -e/--eval style inline
// snippets.
func InputFromString(source string) Input {
	return Input{Source: source}
}

// InputFromUTF8 validates bytes as UTF-8 before wrapping it (spec.md's
// input_from_utf8, which the reference documents as validating its
// input; a lone/invalid sequence is rejected here rather than being
// silently replaced, since source text with broken encoding should
// fail before the lexer ever sees it).
func InputFromUTF8(data []byte, fileName string) (Input, error) {
	if !utf8.Valid(data) {
		return Input{}, fmt.Errorf("es3: input is not valid UTF-8")
	}
	return Input{Source: string(data), FileName: fileName}, nil
}

// EvalInput is a convenience wrapper around Eval that also sets the
// interpreter's file name from the input, so thrown errors and
// tracebacks report it.
func (i *Interpreter) EvalInput(in Input) (Result, error) {
	if in.FileName != "" {
		i.SetFileName(in.FileName)
	}
	return i.Eval(in.Source)
}
