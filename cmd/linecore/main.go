// Package main is the entry point for the linecore command.
//
// linecore drives the editing core from the command line: it prints and
// re-indents files, answers completion queries, runs Lua scripts against
// a document, and offers a line-oriented REPL over the editor commands.
package main

import (
	"fmt"
	"os"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
