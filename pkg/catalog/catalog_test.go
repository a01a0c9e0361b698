package catalog_test

import (
	"testing"

	"github.com/leapstack-labs/leaplineage/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableIdentityString(t *testing.T) {
	tests := []struct {
		name string
		id   catalog.TableIdentity
		want string
	}{
		{"bare", catalog.TableIdentity{Table: "users"}, "users"},
		{"schema qualified", catalog.TableIdentity{Schema: "public", Table: "users"}, "public.users"},
		{"fully qualified", catalog.TableIdentity{Database: "prod", Schema: "public", Table: "users"}, "prod.public.users"},
		{"lowercased", catalog.TableIdentity{Schema: "Public", Table: "Users"}, "public.users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.String())
		})
	}
}

func TestSymbolTableLookup(t *testing.T) {
	st := catalog.NewSymbolTable()
	st.Add(catalog.TableIdentity{Schema: "public", Table: "users"}, []string{"id", "name", "email"})
	st.Add(catalog.TableIdentity{Schema: "public", Table: "orders"}, []string{"id", "user_id", "total"})

	t.Run("exact qualified lookup", func(t *testing.T) {
		id, cols, ok := st.Lookup("", "public", "users")
		require.True(t, ok)
		assert.Equal(t, "public.users", id.String())
		assert.Equal(t, []string{"id", "name", "email"}, cols)
	})

	t.Run("bare name fallback", func(t *testing.T) {
		id, cols, ok := st.Lookup("", "", "orders")
		require.True(t, ok)
		assert.Equal(t, "public.orders", id.String())
		assert.Equal(t, []string{"id", "user_id", "total"}, cols)
	})

	t.Run("case insensitive", func(t *testing.T) {
		_, _, ok := st.Lookup("", "PUBLIC", "Users")
		assert.True(t, ok)
	})

	t.Run("miss", func(t *testing.T) {
		_, _, ok := st.Lookup("", "", "nonexistent")
		assert.False(t, ok)
	})
}

func TestSymbolTableAmbiguousBareName(t *testing.T) {
	st := catalog.NewSymbolTable()
	st.Add(catalog.TableIdentity{Schema: "staging", Table: "events"}, []string{"id"})
	st.Add(catalog.TableIdentity{Schema: "prod", Table: "events"}, []string{"id"})

	// Two schemas own "events": a bare lookup cannot pick one.
	_, _, ok := st.Lookup("", "", "events")
	assert.False(t, ok)

	// Qualified lookups still resolve.
	id, _, ok := st.Lookup("", "staging", "events")
	require.True(t, ok)
	assert.Equal(t, "staging.events", id.String())
}

func TestSymbolTableSchemaFallback(t *testing.T) {
	st := catalog.NewSymbolTable()
	st.Add(catalog.TableIdentity{Database: "prod", Schema: "public", Table: "users"}, []string{"id"})

	// Schema-qualified lookup should find the database-qualified entry.
	id, _, ok := st.Lookup("", "public", "users")
	require.True(t, ok)
	assert.Equal(t, "prod.public.users", id.String())
}

func TestSymbolTableReAdd(t *testing.T) {
	st := catalog.NewSymbolTable()
	id := catalog.TableIdentity{Table: "t"}
	st.Add(id, []string{"a"})
	st.Add(id, []string{"a", "b"})

	cols, ok := st.Columns(id)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, cols)
	assert.Equal(t, 1, st.Len())
}

func TestSymbolTableHasColumn(t *testing.T) {
	st := catalog.NewSymbolTable()
	id := catalog.TableIdentity{Table: "users"}
	st.Add(id, []string{"id", "Name"})

	assert.True(t, st.HasColumn(id, "id"))
	assert.True(t, st.HasColumn(id, "name"))
	assert.False(t, st.HasColumn(id, "missing"))
	assert.False(t, st.HasColumn(catalog.TableIdentity{Table: "other"}, "id"))
}
