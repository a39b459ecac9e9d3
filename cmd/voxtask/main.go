// Command voxtask runs the voice-driven task assistant API.
package main

import (
	"fmt"
	"os"

	"github.com/ncobase/voxtask/cmd/voxtask/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
