package cmd

import (
	"fmt"
	"os"

	"github.com/bisayapp/bisaya/interp"
	"github.com/bisayapp/bisaya/repl"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Bisaya++ program",
	Long: `Execute a Bisaya++ program from a file or inline expression. With no
file and no -e flag, run starts an interactive read-eval-print loop.

Examples:
  bisaya run hello.bpp
  bisaya run -e 'SUGOD IPAKITA: "hello" KATAPUSAN'
  bisaya run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline source instead of reading from a file")
}

func runScript(cmd *cobra.Command, args []string) error {
	color, _ := cmd.Flags().GetBool("color")

	var source string
	switch {
	case evalExpr != "":
		source = evalExpr
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("could not read file: %w", err)
		}
		source = string(content)
	default:
		repl.Start(os.Stdin, os.Stdout)
		return nil
	}

	if err := interp.Run(source, os.Stdin, os.Stdout); err != nil {
		fmt.Fprint(os.Stderr, interp.FormatError(err, source, color))
		return fmt.Errorf("execution failed")
	}
	return nil
}
