// Package cmd implements the bisaya CLI's subcommands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set by release build flags; it stays at its dev default for
// ordinary `go build` invocations.
var Version = "0.1.0-dev"

var rootCmd = &cobra.Command{
	Use:   "bisaya",
	Short: "Bisaya++ interpreter",
	Long: `bisaya is a tree-walking interpreter for Bisaya++, a small imperative
teaching language with Cebuano-word keywords (SUGOD/KATAPUSAN, MUGNA,
IPAKITA, KUNG, SAMTANG, ALANG SA, DAWAT).

The run subcommand, given no file argument and no -e flag, starts an
interactive read-eval-print loop.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("bisaya version %s\n", Version))
	rootCmd.PersistentFlags().Bool("color", true, "colorize diagnostic output")
}
