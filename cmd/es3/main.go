// Command es3 is the command-line driver for the interpreter: a thin
// shell over pkg/es3, matching spec.md §6.4's informational CLI
// surface (run/parse/lex/compile/version).
package main

import (
	"os"

	"github.com/es3vm/es3vm/cmd/es3/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
