// Package main provides the CLI entry point for pgschema.
package main

import (
	"os"

	"github.com/pgschema-labs/pgschema/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
