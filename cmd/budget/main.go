package main

import (
	"fmt"
	"os"

	"github.com/ppiankov/budget/internal/commands"
)

// Build information, injected with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := commands.Execute(version, commit, date); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
