// Package main provides the LeapLineage command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/leaplineage/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
