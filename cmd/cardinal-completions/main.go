// Command cardinal-completions writes a shell completion script to stdout,
// for packaging completions alongside release archives.
package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/cardinal/cmd/cardinal"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bash|zsh|fish|powershell>\n", os.Args[0])
		os.Exit(1)
	}

	rootCmd := cardinal.NewRootCmd()
	rootCmd.SetArgs([]string{"completion", os.Args[1]})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s completion: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}
