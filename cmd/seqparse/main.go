// Command seqparse is the CLI front end for the sequence combinator engine.
package main

import (
	"fmt"
	"os"

	"github.com/flowdev/seqparse/internal/cliapp/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
