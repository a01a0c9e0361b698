// Package catalog provides the symbol table that supplies table and column
// metadata to the lineage engine. The engine never mutates a symbol table;
// callers build one up front from YAML files, information_schema, or code.
package catalog

import (
	"sort"
	"strings"
)

// TableIdentity uniquely identifies a table. Any of Database and Schema may
// be empty for partially qualified tables.
type TableIdentity struct {
	Database string `json:"database,omitempty"`
	Schema   string `json:"schema,omitempty"`
	Table    string `json:"table"`
}

// String returns the canonical dotted form, lowercased, omitting empty parts.
func (id TableIdentity) String() string {
	parts := make([]string, 0, 3)
	if id.Database != "" {
		parts = append(parts, strings.ToLower(id.Database))
	}
	if id.Schema != "" {
		parts = append(parts, strings.ToLower(id.Schema))
	}
	parts = append(parts, strings.ToLower(id.Table))
	return strings.Join(parts, ".")
}

// tableEntry holds one table's identity and its ordered column list.
type tableEntry struct {
	identity TableIdentity
	columns  []string
}

// SymbolTable maps table identities to ordered column lists. Lookups are
// case-insensitive. A table registered with qualification is also findable
// by its bare name as long as that bare name is unambiguous.
type SymbolTable struct {
	byCanonical map[string]*tableEntry
	byBareName  map[string][]*tableEntry
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		byCanonical: make(map[string]*tableEntry),
		byBareName:  make(map[string][]*tableEntry),
	}
}

// Add registers a table and its ordered columns. Re-adding the same identity
// replaces the previous column list.
func (st *SymbolTable) Add(id TableIdentity, columns []string) {
	key := id.String()

	if existing, ok := st.byCanonical[key]; ok {
		existing.columns = append([]string(nil), columns...)
		return
	}

	entry := &tableEntry{
		identity: id,
		columns:  append([]string(nil), columns...),
	}
	st.byCanonical[key] = entry

	bare := strings.ToLower(id.Table)
	st.byBareName[bare] = append(st.byBareName[bare], entry)
}

// Lookup resolves a (possibly partially qualified) table reference to its
// identity and ordered columns. It first tries the exact qualification as
// given; for a bare name it falls back to the registered tables with that
// name, succeeding only when the match is unambiguous.
func (st *SymbolTable) Lookup(database, schema, table string) (TableIdentity, []string, bool) {
	id := TableIdentity{Database: database, Schema: schema, Table: table}
	if entry, ok := st.byCanonical[id.String()]; ok {
		return entry.identity, entry.columns, true
	}

	// Bare-name fallback
	if database == "" && schema == "" {
		candidates := st.byBareName[strings.ToLower(table)]
		if len(candidates) == 1 {
			return candidates[0].identity, candidates[0].columns, true
		}
		return TableIdentity{}, nil, false
	}

	// Schema-qualified fallback: match entries whose schema and table agree,
	// ignoring the database part.
	if database == "" {
		var found *tableEntry
		for _, entry := range st.byBareName[strings.ToLower(table)] {
			if strings.EqualFold(entry.identity.Schema, schema) {
				if found != nil {
					return TableIdentity{}, nil, false
				}
				found = entry
			}
		}
		if found != nil {
			return found.identity, found.columns, true
		}
	}

	return TableIdentity{}, nil, false
}

// Columns returns the ordered column list for an exact identity.
func (st *SymbolTable) Columns(id TableIdentity) ([]string, bool) {
	entry, ok := st.byCanonical[id.String()]
	if !ok {
		return nil, false
	}
	return entry.columns, true
}

// HasColumn reports whether the table identified by id has the named column.
// The column comparison is case-insensitive.
func (st *SymbolTable) HasColumn(id TableIdentity, column string) bool {
	cols, ok := st.Columns(id)
	if !ok {
		return false
	}
	for _, c := range cols {
		if strings.EqualFold(c, column) {
			return true
		}
	}
	return false
}

// Len returns the number of registered tables.
func (st *SymbolTable) Len() int {
	return len(st.byCanonical)
}

// Tables returns every registered identity, sorted by canonical name.
func (st *SymbolTable) Tables() []TableIdentity {
	ids := make([]TableIdentity, 0, len(st.byCanonical))
	for _, entry := range st.byCanonical {
		ids = append(ids, entry.identity)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}
