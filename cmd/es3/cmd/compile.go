package cmd

import (
	"fmt"
	"os"

	"github.com/es3vm/es3vm/pkg/es3"
	"github.com/spf13/cobra"
)

var compileOutput string

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a script to bytecode and print its disassembly",
	Long: `Compile parses and compiles a script to a bytecode chunk (spec.md §6.3)
and prints its human-readable disassembly. There is no binary bytecode
artifact format here (unlike a persisted-to-disk .dwc file) — the chunk
exists for this process's bytecode VM to run, and disassembly is the
inspectable form a host or developer gets at it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "write the disassembly to this file instead of stdout")
}

func runCompile(_ *cobra.Command, args []string) error {
	source, name, err := readSource(args, "")
	if err != nil {
		return err
	}

	i, err := newInterpreter()
	if err != nil {
		return err
	}
	i.SetFileName(name)

	chunk, cerr := i.Compile(source)
	if cerr != nil {
		exitWithError(cerr)
		return nil
	}

	text := es3.Disassemble(chunk, name)
	if compileOutput != "" {
		return os.WriteFile(compileOutput, []byte(text), 0o644)
	}
	fmt.Fprint(os.Stdout, text)
	return nil
}
