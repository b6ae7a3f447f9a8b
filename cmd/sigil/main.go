// Command sigil is the CLI front end for the sigil interpreter.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/sigil/cmd/sigil/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
