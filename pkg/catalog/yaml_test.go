package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leaplineage/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
tables:
  - database: prod
    schema: public
    name: users
    columns: [id, name, email]
  - schema: public
    name: orders
    columns:
      - id
      - user_id
      - total
`

func TestParseYAML(t *testing.T) {
	st, err := catalog.ParseYAML([]byte(sampleCatalog))
	require.NoError(t, err)
	assert.Equal(t, 2, st.Len())

	id, cols, ok := st.Lookup("prod", "public", "users")
	require.True(t, ok)
	assert.Equal(t, "prod.public.users", id.String())
	assert.Equal(t, []string{"id", "name", "email"}, cols)

	_, cols, ok = st.Lookup("", "public", "orders")
	require.True(t, ok)
	assert.Equal(t, []string{"id", "user_id", "total"}, cols)
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid yaml", "tables: ["},
		{"missing table name", "tables:\n  - schema: public\n    columns: [id]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.ParseYAML([]byte(tt.input))
			require.Error(t, err)
		})
	}
}

func TestParseYAMLEmpty(t *testing.T) {
	st, err := catalog.ParseYAML([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, 0, st.Len())
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	st, err := catalog.LoadYAMLFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Len())
}

func TestLoadYAMLFileMissing(t *testing.T) {
	_, err := catalog.LoadYAMLFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
