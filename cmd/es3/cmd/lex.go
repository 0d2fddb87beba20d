package cmd

import (
	"fmt"
	"os"

	"github.com/es3vm/es3vm/internal/compat"
	"github.com/es3vm/es3vm/internal/lexer"
	"github.com/es3vm/es3vm/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexShowPos      bool
	lexOnlyKeywords bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a script",
	Long:  `Lex reads a script file (or stdin) and prints its token stream, one token per line.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", true, "show each token's line:column position")
	lexCmd.Flags().BoolVar(&lexOnlyKeywords, "only-keywords", false, "print only keyword tokens")
}

func runLex(_ *cobra.Command, args []string) error {
	source, _, err := readSource(args, "")
	if err != nil {
		return err
	}

	var opts []lexer.Option
	if compatFlags != "" {
		set, perr := compat.Parse(nil, compatFlags)
		if perr != nil {
			return fmt.Errorf("es3: %w", perr)
		}
		opts = append(opts, lexer.WithCompat(set))
	}
	if unicodeIdentifiers {
		opts = append(opts, lexer.WithUnicodeIdentifiers(true))
	}

	l := lexer.New(source, opts...)
	for {
		tok := l.Next()
		if lexOnlyKeywords && !token.IsKeyword(tok.Type) {
			if tok.Type == token.EOF {
				break
			}
			continue
		}
		printToken(tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return nil
}

func printToken(tok token.Token) {
	if lexShowPos {
		fmt.Fprintf(os.Stdout, "%-20s %-20q %s\n", tok.Type.String(), tok.Literal, tok.Pos.String())
		return
	}
	fmt.Fprintf(os.Stdout, "%-20s %q\n", tok.Type.String(), tok.Literal)
}
