// Command addispos is the operator CLI for the AddisPOS state engine.
package main

import (
	"fmt"
	"os"

	"github.com/addisware/addispos/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
