// ABOUTME: Entry point for the askdocs CLI
// ABOUTME: Injects build metadata and delegates to the command tree
package main

import (
	"fmt"
	"os"

	"github.com/askdocs/askdocs/cmd/askdocs/commands"
)

// Populated at link time by the release build; defaults are resolved
// against the module build info at runtime.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
