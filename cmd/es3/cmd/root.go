package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	compatFlags        string
	recursionBudget    int
	bytecodeVM         bool
	unicodeIdentifiers bool
	verbose            bool
)

var rootCmd = &cobra.Command{
	Use:   "es3",
	Short: "ECMA-262 3rd edition interpreter",
	Long: `es3 is an embeddable interpreter for ECMA-262 (3rd edition) source text:
a lexer, a recursive-descent parser, and a tree-walking evaluator (with
an optional bytecode compiler + VM back end), exposed both as a Go
library (pkg/es3) and through this command-line shell.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nCommit: %s\nBuilt:  %s\n", GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&compatFlags, "compat", "c", "", "compatibility flags (spec.md §6.2 string encoding, e.g. \"262_3b ext1\")")
	rootCmd.PersistentFlags().IntVarP(&recursionBudget, "recursion-budget", "r", 0, "maximum call-stack depth (0 uses the runtime default)")
	rootCmd.PersistentFlags().BoolVar(&bytecodeVM, "bytecode-vm", false, "run via the bytecode compiler + VM instead of the tree-walking evaluator")
	rootCmd.PersistentFlags().BoolVar(&unicodeIdentifiers, "unicode-identifiers", false, "accept Unicode letters/digits/combining marks in identifiers, not just the ASCII subset")
}
