// Package lineage extracts column-level lineage from SQL statements.
//
// The engine is a pure function of (SQL text, symbol table): it performs no
// I/O, holds no shared state, and is safe to call concurrently. Every failure
// mode is reported as data on the returned ParsedQuery; ParseQuery never
// panics and never aborts a caller's batch.
//
// Pipeline per statement:
//
//	tokenize/parse → scope resolution → column reference extraction →
//	transformation classification → edge assembly
package lineage

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/leaplineage/pkg/catalog"
	"github.com/leapstack-labs/leaplineage/pkg/parser"
)

// TransformationType classifies how a source column feeds its target.
type TransformationType string

// TransformationType values, strongest classification first.
const (
	TransformAggregated TransformationType = "AGGREGATED"
	TransformUnion      TransformationType = "UNION"
	TransformJoined     TransformationType = "JOINED"
	TransformFiltered   TransformationType = "FILTERED"
	TransformCalculated TransformationType = "CALCULATED"
	TransformDirect     TransformationType = "DIRECT"
)

// QueryType identifies the statement kind of a ParsedQuery.
type QueryType string

// QueryType values for the supported statement kinds.
const (
	QuerySelect        QueryType = "SELECT"
	QueryInsert        QueryType = "INSERT"
	QueryCreateTableAs QueryType = "CREATE_TABLE_AS"
	QueryMerge         QueryType = "MERGE"
	QueryUnknown       QueryType = "UNKNOWN"
)

// Column identifies one side of a lineage edge. Table is the canonical
// identity string of the owning table (empty for the anonymous result of a
// plain SELECT). Verified is false when the table could not be found in the
// symbol table, so the column id is the name as written, unvalidated.
type Column struct {
	Table    string `json:"table"`
	Column   string `json:"column"`
	Verified bool   `json:"verified"`
}

// Edge is one directed source→target column dependency.
type Edge struct {
	Source     Column             `json:"source"`
	Target     Column             `json:"target"`
	Type       TransformationType `json:"type"`
	Expression string             `json:"expression,omitempty"`
	Confidence int                `json:"confidence"`
}

// ParsedQuery is the result of analyzing one SQL statement. It is constructed
// fresh per call and never mutated after return.
type ParsedQuery struct {
	QueryType       QueryType               `json:"queryType"`
	QueryID         string                  `json:"queryId,omitempty"`
	Timestamp       time.Time               `json:"timestamp,omitempty"`
	Edges           []Edge                  `json:"edges"`
	TableReferences []catalog.TableIdentity `json:"tableReferences"`
	Errors          []string                `json:"errors,omitempty"`
}

// DefaultMaxDepth bounds nested scope recursion (subqueries, derived tables,
// CTE bodies). Exceeding it aborts the statement with a single error entry.
const DefaultMaxDepth = 32

// Options configures optional provenance and limits. QueryID and Timestamp
// are attached to the ParsedQuery only, never to edges, so edge output stays
// byte-identical across calls with identical inputs.
type Options struct {
	QueryID   string
	Timestamp time.Time
	MaxDepth  int
}

// ParseQuery extracts column lineage from one SQL statement.
func ParseQuery(sqlText string, symbols *catalog.SymbolTable) ParsedQuery {
	return ParseQueryWithOptions(sqlText, symbols, Options{})
}

// ParseQueryWithOptions extracts column lineage with provenance options.
func ParseQueryWithOptions(sqlText string, symbols *catalog.SymbolTable, opts Options) (result ParsedQuery) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if symbols == nil {
		symbols = catalog.NewSymbolTable()
	}

	result = ParsedQuery{
		QueryType: QueryUnknown,
		QueryID:   opts.QueryID,
		Timestamp: opts.Timestamp,
	}

	// Failures must surface as data; a batch over a query log cannot be
	// taken down by one malformed statement.
	defer func() {
		if r := recover(); r != nil {
			result.Edges = nil
			result.TableReferences = nil
			result.Errors = append(result.Errors, fmt.Sprintf("internal error: %v", r))
		}
	}()

	stmt, err := parser.Parse(sqlText)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	ex := newExtractor(symbols, opts.MaxDepth)
	ex.extractStatement(stmt)

	result.QueryType = ex.queryType
	if ex.aborted {
		result.Errors = append(result.Errors, ex.errors...)
		return result
	}

	result.Edges, result.TableReferences = assemble(ex.triples, ex.tables)
	result.Errors = append(result.Errors, ex.errors...)
	return result
}
