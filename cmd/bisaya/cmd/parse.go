package cmd

import (
	"fmt"
	"os"

	"github.com/bisayapp/bisaya/ast"
	"github.com/bisayapp/bisaya/interp"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Bisaya++ program and print its statement tree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline source instead of reading from a file")
}

func parseScript(cmd *cobra.Command, args []string) error {
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

	prog, err := interp.Parse(tokens)
	if err != nil {
		fmt.Fprint(os.Stderr, interp.FormatError(err, source, color))
		return fmt.Errorf("parsing failed")
	}

	for _, stmt := range prog.Statements {
		printStatement(stmt, 0)
	}
	return nil
}

func printStatement(stmt ast.Statement, depth int) {
	fmt.Printf("%*sline %d: %T\n", depth*2, "", stmt.Line(), stmt)

	switch s := stmt.(type) {
	case *ast.Block:
		for _, inner := range s.Statements {
			printStatement(inner, depth+1)
		}
	case *ast.If:
		for _, inner := range s.Then.Statements {
			printStatement(inner, depth+1)
		}
		if s.Else != nil {
			printStatement(s.Else, depth)
		}
	case *ast.While:
		for _, inner := range s.Body.Statements {
			printStatement(inner, depth+1)
		}
	case *ast.For:
		for _, inner := range s.Body.Statements {
			printStatement(inner, depth+1)
		}
	}
}
