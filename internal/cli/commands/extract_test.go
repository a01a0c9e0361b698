package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplineage/pkg/lineage"
)

const testCatalogYAML = `tables:
  - schema: shop
    name: orders
    columns: [id, customer_id, total]
  - schema: shop
    name: customers
    columns: [id, name]
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runExtractJSON(t *testing.T, args []string, stdin string) []lineage.ParsedQuery {
	t.Helper()

	cmd := NewExtractCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(append(args, "-o", "json"))

	require.NoError(t, cmd.Execute())

	var results []lineage.ParsedQuery
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	return results
}

func TestExtractCommand_File(t *testing.T) {
	catalogPath := writeTempFile(t, "catalog.yaml", testCatalogYAML)
	sqlPath := writeTempFile(t, "queries.sql",
		"SELECT id, name FROM customers;\nSELECT SUM(total) AS revenue FROM orders GROUP BY customer_id;")

	results := runExtractJSON(t, []string{sqlPath, "--catalog", catalogPath}, "")

	require.Len(t, results, 2)

	assert.Equal(t, lineage.QuerySelect, results[0].QueryType)
	require.Len(t, results[0].Edges, 2)
	assert.Equal(t, "shop.customers", results[0].Edges[0].Source.Table)
	assert.True(t, results[0].Edges[0].Source.Verified)
	assert.Equal(t, lineage.TransformDirect, results[0].Edges[0].Type)

	require.Len(t, results[1].Edges, 1)
	assert.Equal(t, lineage.TransformAggregated, results[1].Edges[0].Type)
	assert.Equal(t, "revenue", results[1].Edges[0].Target.Column)
}

func TestExtractCommand_Stdin(t *testing.T) {
	results := runExtractJSON(t, nil, "SELECT x FROM unknown_table")

	require.Len(t, results, 1)
	require.Len(t, results[0].Edges, 1)
	assert.False(t, results[0].Edges[0].Source.Verified)
	assert.Less(t, results[0].Edges[0].Confidence, 100)
}

func TestExtractCommand_MalformedStatementDoesNotFail(t *testing.T) {
	results := runExtractJSON(t, nil, "SELECT x FROM t; SELEKT broken; SELECT y FROM t")

	require.Len(t, results, 3)
	assert.NotEmpty(t, results[0].Edges)
	assert.Empty(t, results[1].Edges)
	assert.NotEmpty(t, results[1].Errors)
	assert.NotEmpty(t, results[2].Edges)
}

func TestExtractCommand_QueryIDs(t *testing.T) {
	results := runExtractJSON(t, []string{"--query-ids"}, "SELECT a FROM t; SELECT b FROM t")

	require.Len(t, results, 2)
	assert.NotEmpty(t, results[0].QueryID)
	assert.NotEmpty(t, results[1].QueryID)
	assert.NotEqual(t, results[0].QueryID, results[1].QueryID)
	assert.False(t, results[0].Timestamp.IsZero())
}

func TestExtractCommand_EmptyInput(t *testing.T) {
	cmd := NewExtractCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader("   \n"))
	cmd.SetArgs(nil)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no SQL statements")
}

func TestExtractCommand_MissingFile(t *testing.T) {
	cmd := NewExtractCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.sql")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input")
}

func TestExtractCommand_TableOutput(t *testing.T) {
	cmd := NewExtractCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader("SELECT id FROM users"))
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, "Statement 1 (SELECT)")
	assert.Contains(t, output, "SOURCE")
	assert.Contains(t, output, "users.id (?)")
}
