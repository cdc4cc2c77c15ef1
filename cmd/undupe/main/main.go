package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/undupe/cmd/undupe"
	"github.com/arthur-debert/undupe/pkg/display"
)

func main() {
	rootCmd := undupe.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		fmt.Fprintln(os.Stderr, display.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))

		// Show the full help for the command that failed
		fmt.Fprintln(os.Stderr)
		_ = rootCmd.Help()

		os.Exit(1)
	}
}
