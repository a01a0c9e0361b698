// Package commands implements the LeapLineage CLI subcommands.
package commands

import (
	"github.com/leapstack-labs/leaplineage/internal/cli/config"
)

// getConfig returns the loaded configuration, falling back to defaults when
// a command runs outside the root command's PersistentPreRunE (tests, direct
// invocation).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		OutputFormat: config.DefaultOutput,
		Concurrency:  config.DefaultConcurrency,
	}
}
