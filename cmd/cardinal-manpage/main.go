package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/cardinal/cmd/cardinal"
	"github.com/arthur-debert/cardinal/internal/version"
)

func main() {
	rootCmd := cardinal.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "CARDINAL",
		Section: "1",
		Source:  "cardinal " + version.Version,
		Manual:  "cardinal manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
