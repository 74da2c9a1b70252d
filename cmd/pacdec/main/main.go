package main

import (
	"os"

	"github.com/arthur-debert/pacdec/cmd/pacdec"
)

func main() {
	os.Exit(pacdec.Execute())
}
