package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/es3vm/es3vm/pkg/es3"
)

// newInterpreter builds an Interpreter from the root command's persistent
// flags, shared by run/parse/compile so each of them sees the same
// --compat/--recursion-budget/--bytecode-vm/--unicode-identifiers knobs.
func newInterpreter() (*es3.Interpreter, error) {
	opts := []es3.Option{
		es3.WithRecursionBudget(recursionBudget),
		es3.WithBytecodeVM(bytecodeVM),
		es3.WithUnicodeIdentifiers(unicodeIdentifiers),
	}
	if compatFlags != "" {
		opts = append(opts, es3.WithCompatString(compatFlags, os.Stderr))
	}
	return es3.New(opts...)
}

// readSource resolves the "either an inline expression or a file argument,
// falling back to stdin" convention the teacher's run/parse subcommands
// share.
func readSource(args []string, inline string) (source, name string, err error) {
	if inline != "" {
		return inline, "<expression>", nil
	}
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("es3: %w", err)
		}
		return string(data), args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("es3: reading stdin: %w", err)
	}
	return string(data), "<stdin>", nil
}
