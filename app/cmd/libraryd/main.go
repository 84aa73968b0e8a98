// Command libraryd serves the library circulation HTTP API and manages its database schema.
package main

import (
	"os"
)

// version is overwritten at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
