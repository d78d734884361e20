package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/cardinal/cmd/cardinal"
	"github.com/arthur-debert/cardinal/pkg/ui/styles"
)

func main() {
	rootCmd := cardinal.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Render("Error", fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
