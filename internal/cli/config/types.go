// Package config provides configuration management for the LeapLineage CLI.
//
// Configuration is layered: defaults, then an optional leaplineage.yaml,
// then LEAPLINEAGE_-prefixed environment variables, then CLI flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	// CatalogPath is the YAML catalog used to verify table and column
	// references. Empty means every reference is unverified.
	CatalogPath string `koanf:"catalog"`

	// OutputFormat selects how extracted edges are rendered: table or json.
	OutputFormat string `koanf:"output"`

	// Concurrency bounds the fan-out when extracting from multi-statement
	// input.
	Concurrency int `koanf:"concurrency"`

	Verbose bool `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultOutput      = "table"
	DefaultConcurrency = 4
)
