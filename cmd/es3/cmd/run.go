package cmd

import (
	"fmt"
	"os"

	"github.com/es3vm/es3vm/internal/values"
	"github.com/es3vm/es3vm/pkg/es3"
	"github.com/spf13/cobra"
)

var runEval string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script",
	Long: `Run evaluates a script file (or an inline expression given with -e, or
stdin when no file argument is given); with --verbose it prints the
completion value when that value is not undefined.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runEval, "eval", "e", "", "evaluate this expression instead of reading a file")
}

func runRun(_ *cobra.Command, args []string) error {
	source, name, err := readSource(args, runEval)
	if err != nil {
		return err
	}

	i, err := newInterpreter()
	if err != nil {
		return err
	}
	i.SetFileName(name)
	registerHostPrint(i)

	result, err := i.Eval(source)
	if err != nil {
		exitWithError(err)
		return nil
	}
	if verbose && !result.Value.IsUndefined() {
		fmt.Fprintln(os.Stdout, result.Value.String())
	}
	return nil
}

// registerHostPrint wires a minimal print builtin: the language itself has
// no I/O (spec.md's Non-goals exclude a standard library), so the CLI
// supplies one the way any embedding host would, through RegisterFunction.
func registerHostPrint(i *es3.Interpreter) {
	i.RegisterFunction("print", func(_ values.Value, args []values.Value) (values.Value, error) {
		for n, arg := range args {
			if n > 0 {
				fmt.Fprint(i.Output(), " ")
			}
			s, err := values.ToString(arg)
			if err != nil {
				return values.Undefined, err
			}
			fmt.Fprint(i.Output(), s.MustUTF8())
		}
		fmt.Fprintln(i.Output())
		return values.Undefined, nil
	})
}

// exitWithError reports a CompileError/ScriptError to stderr and exits 1
// (spec.md §6.4: exit code 0 on success, 1 on parse/runtime error).
func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "es3: %v\n", err)
	os.Exit(1)
}
