package lineage

import (
	"strings"

	"github.com/leapstack-labs/leaplineage/pkg/catalog"
)

// entryKind discriminates the sources a FROM clause can introduce.
type entryKind int

const (
	entryTable entryKind = iota
	entryCTE
	entryDerived
)

// sourceRef is one resolved source column together with everything needed to
// classify an edge built from it. The transformation flags accumulate as the
// reference crosses query blocks (e.g. aggregation inside a CTE survives into
// the block that selects from the CTE), and the strongest one wins at
// classification time.
type sourceRef struct {
	col       Column
	ambiguous bool // resolved via the ambiguous-unqualified path
	agg       bool
	calc      bool
	joined    bool
	filtered  bool
	union     bool
}

// outputColumn is one output of a query block: its exposed name, the
// expression text it came from, and the flattened source columns feeding it.
type outputColumn struct {
	name     string
	exprText string
	sources  []sourceRef
}

// scopeEntry is one source visible in a scope: a base table, a CTE reference,
// or a derived table.
type scopeEntry struct {
	kind     entryKind
	name     string // reference name: alias if given, else bare table name
	rawName  string // table name as written (qualified), for unverified refs
	identity catalog.TableIdentity
	verified bool
	columns  []string       // base table columns, ordinal order
	outputs  []outputColumn // CTE/derived outputs, ordinal order
}

// matches reports whether the entry answers to the given qualifier.
func (e *scopeEntry) matches(qualifier string) bool {
	if strings.EqualFold(e.name, qualifier) {
		return true
	}
	// A fully written qualifier (schema.table) also addresses an unaliased
	// table entry.
	return e.rawName != "" && strings.EqualFold(e.rawName, qualifier)
}

// hasColumn reports whether the entry is known to expose the named column.
func (e *scopeEntry) hasColumn(col string) bool {
	for _, c := range e.columns {
		if strings.EqualFold(c, col) {
			return true
		}
	}
	for _, o := range e.outputs {
		if strings.EqualFold(o.name, col) {
			return true
		}
	}
	return false
}

// sourcesFor resolves a column name against this entry. For base tables the
// result is a single reference to the table itself; for CTEs and derived
// tables the reference flattens to the columns feeding the matching output.
func (e *scopeEntry) sourcesFor(col string) []sourceRef {
	switch e.kind {
	case entryTable:
		table := e.rawName
		if e.verified {
			table = e.identity.String()
		}
		return []sourceRef{{col: Column{Table: table, Column: col, Verified: e.verified}}}

	default:
		for _, o := range e.outputs {
			if strings.EqualFold(o.name, col) {
				refs := make([]sourceRef, len(o.sources))
				copy(refs, o.sources)
				return refs
			}
		}
		// Output not known (e.g. the CTE selected * from an unknown table).
		return []sourceRef{{col: Column{Table: e.name, Column: col, Verified: false}}}
	}
}

// scope is the set of sources visible to one query block, chained to the
// lexically enclosing block. Entries keep FROM-clause order so resolution
// and star expansion are deterministic.
type scope struct {
	parent  *scope
	entries []*scopeEntry
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent}
}

func (s *scope) add(e *scopeEntry) {
	s.entries = append(s.entries, e)
}

// lookupEntry finds the entry a qualifier refers to, walking outward through
// enclosing scopes. The second result is the scope the entry was found in.
func (s *scope) lookupEntry(qualifier string) (*scopeEntry, *scope) {
	for sc := s; sc != nil; sc = sc.parent {
		for _, e := range sc.entries {
			if e.matches(qualifier) {
				return e, sc
			}
		}
	}
	return nil, nil
}

// resolveQualified resolves table.column. An unknown qualifier yields an
// unverified reference under the name as written.
func (s *scope) resolveQualified(qualifier, col string) ([]sourceRef, *scope) {
	entry, owner := s.lookupEntry(qualifier)
	if entry == nil {
		return []sourceRef{{col: Column{Table: qualifier, Column: col, Verified: false}}}, nil
	}
	return entry.sourcesFor(col), owner
}

// resolveUnqualified resolves a bare column name by scanning scopes innermost
// first. Within one scope: a single entry exposing the column wins; several
// exposing it produce ambiguous references to every candidate; when no entry
// lists it, unverified entries (whose columns are unknowable) are the
// candidates, and a single-source scope claims the column outright.
func (s *scope) resolveUnqualified(col string) ([]sourceRef, *scope) {
	for sc := s; sc != nil; sc = sc.parent {
		if len(sc.entries) == 0 {
			continue
		}

		var listing []*scopeEntry
		for _, e := range sc.entries {
			if e.hasColumn(col) {
				listing = append(listing, e)
			}
		}

		switch len(listing) {
		case 1:
			return listing[0].sourcesFor(col), sc
		case 0:
			// Fall through to the unknown-table candidates.
		default:
			return ambiguousSources(listing, col), sc
		}

		var unknowns []*scopeEntry
		for _, e := range sc.entries {
			if e.kind == entryTable && !e.verified {
				unknowns = append(unknowns, e)
			}
		}
		switch {
		case len(unknowns) == 1:
			return unknowns[0].sourcesFor(col), sc
		case len(unknowns) > 1:
			return ambiguousSources(unknowns, col), sc
		case len(sc.entries) == 1:
			// One known source that doesn't list the column: attribute the
			// reference to it anyway; the catalog may simply be stale.
			return sc.entries[0].sourcesFor(col), sc
		}
	}
	return nil, nil
}

func ambiguousSources(entries []*scopeEntry, col string) []sourceRef {
	var refs []sourceRef
	for _, e := range entries {
		for _, r := range e.sourcesFor(col) {
			r.ambiguous = true
			refs = append(refs, r)
		}
	}
	return refs
}

// cteRegistry holds the CTEs visible to a statement's query blocks. Layered
// so a WITH inside a CTE body shadows outer definitions.
type cteRegistry struct {
	parent *cteRegistry
	ctes   map[string]*scopeEntry
}

func newCTERegistry(parent *cteRegistry) *cteRegistry {
	return &cteRegistry{parent: parent, ctes: make(map[string]*scopeEntry)}
}

func (r *cteRegistry) register(name string, outputs []outputColumn) {
	r.ctes[strings.ToLower(name)] = &scopeEntry{
		kind:    entryCTE,
		name:    name,
		outputs: outputs,
	}
}

func (r *cteRegistry) lookup(name string) *scopeEntry {
	for reg := r; reg != nil; reg = reg.parent {
		if e, ok := reg.ctes[strings.ToLower(name)]; ok {
			return e
		}
	}
	return nil
}
