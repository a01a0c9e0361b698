package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.CatalogPath)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfig_FromFile(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "leaplineage.yaml")
	content := `catalog: warehouse.yaml
output: json
concurrency: 8
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "warehouse.yaml", cfg.CatalogPath)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "leaplineage.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: table\n"), 0o600))

	t.Setenv("LEAPLINEAGE_OUTPUT", "json")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoadConfig_FlagsOverrideEverything(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	t.Setenv("LEAPLINEAGE_CONCURRENCY", "2")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("concurrency", DefaultConcurrency, "")
	flags.String("output", DefaultOutput, "")
	require.NoError(t, flags.Parse([]string{"--concurrency", "16", "--output", "json"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Concurrency)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoadConfig_UnchangedFlagsDoNotOverride(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "leaplineage.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("concurrency: 8\n"), 0o600))

	// Flag is registered but never set, so the file value must win.
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("concurrency", DefaultConcurrency, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		errSubstr string
	}{
		{
			name:      "bad output format",
			yaml:      "output: xml\n",
			errSubstr: "invalid output format",
		},
		{
			name:      "zero concurrency",
			yaml:      "concurrency: 0\n",
			errSubstr: "concurrency must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			t.Cleanup(ResetConfig)

			dir := t.TempDir()
			cfgPath := filepath.Join(dir, "leaplineage.yaml")
			require.NoError(t, os.WriteFile(cfgPath, []byte(tt.yaml), 0o600))

			_, err := LoadConfig(cfgPath, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
