package cmd

import (
	"fmt"
	"os"

	"github.com/bisayapp/bisaya/interp"
	"github.com/bisayapp/bisaya/token"
	"github.com/spf13/cobra"
)

var showKind bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Bisaya++ program and print the resulting tokens",
	Long: `Tokenize (lex) a Bisaya++ program and print the resulting token stream,
one token per line. Useful for debugging the lexer.`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline source instead of reading from a file")
	lexCmd.Flags().BoolVar(&showKind, "show-kind", false, "show the token kind name alongside its lexeme")
}

func lexScript(cmd *cobra.Command, args []string) error {
	color, _ := cmd.Flags().GetBool("color")

	source, err := sourceFromArgs(args)
	if err != nil {
		return err
	}

	tokens, err := interp.Tokenize(source)
	if err != nil {
		fmt.Fprint(os.Stderr, interp.FormatError(err, source, color))
		return fmt.Errorf("lexing failed")
	}

	for _, tok := range tokens {
		printToken(tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

func printToken(tok token.Token) {
	lexeme := tok.Lexeme
	if tok.Kind == token.NEWLINE {
		lexeme = "\\n"
	}
	if showKind {
		fmt.Printf("%4d  %-14s %q\n", tok.Line, tok.Kind, lexeme)
		return
	}
	fmt.Printf("%4d  %q\n", tok.Line, lexeme)
}

func sourceFromArgs(args []string) (string, error) {
	if evalExpr != "" {
		return evalExpr, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("could not read file: %w", err)
		}
		return string(content), nil
	}
	return "", fmt.Errorf("either provide a file path or use -e for inline source")
}
