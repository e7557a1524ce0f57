// Command bisaya is the Bisaya++ interpreter CLI.
package main

import (
	"fmt"
	"os"

	"github.com/bisayapp/bisaya/cmd/bisaya/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
