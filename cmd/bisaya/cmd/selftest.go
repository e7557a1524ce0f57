package cmd

import (
	"fmt"
	"os"

	"github.com/bisayapp/bisaya/selftest"
	"github.com/spf13/cobra"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run the built-in fixture table against this build",
	Long: `Run every fixture in the self-test table through the lexer, parser, and
evaluator, and report any that produced an unexpected runtime error or
output. This does not check fixtures that rely on a golden snapshot —
use "go test ./selftest" for full snapshot coverage.`,
	RunE: runSelftest,
}

func init() {
	rootCmd.AddCommand(selftestCmd)
}

func runSelftest(_ *cobra.Command, _ []string) error {
	fixtures, err := selftest.Load()
	if err != nil {
		return err
	}

	failed := 0
	for _, f := range fixtures {
		actual, err := selftest.Run(f)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", f.Name, err)
			continue
		}
		if f.Expected != nil && actual != *f.Expected {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: want %q, got %q\n", f.Name, *f.Expected, actual)
			continue
		}
		fmt.Printf("ok   %s\n", f.Name)
	}

	if failed > 0 {
		return fmt.Errorf("%d fixture(s) failed", failed)
	}
	return nil
}
