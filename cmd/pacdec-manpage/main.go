// Command pacdec-manpage writes the pacdec(1) man page to stdout for
// packaging.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/pacdec/cmd/pacdec"
	"github.com/arthur-debert/pacdec/internal/version"
)

func main() {
	rootCmd := pacdec.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PACDEC",
		Section: "1",
		Source:  "pacdec " + version.Version,
		Manual:  "pacdec manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
