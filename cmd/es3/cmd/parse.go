package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var parseExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a script and print its AST",
	Long: `Parse reads a script file (or -e, or stdin) and prints the parsed
program back out via the AST's own String() rendering, without running it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseExpr, "expression", "e", "", "parse this expression instead of reading a file")
}

func runParse(_ *cobra.Command, args []string) error {
	source, name, err := readSource(args, parseExpr)
	if err != nil {
		return err
	}

	i, err := newInterpreter()
	if err != nil {
		return err
	}
	i.SetFileName(name)

	prog, cerr := i.Parse(source)
	if cerr != nil {
		exitWithError(cerr)
		return nil
	}
	fmt.Fprintln(os.Stdout, prog.String())
	return nil
}
