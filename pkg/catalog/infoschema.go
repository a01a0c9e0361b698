package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// InfoSchemaLoader populates a symbol table from information_schema.columns.
// It works against any database/sql driver that exposes information_schema
// with ? placeholders.
type InfoSchemaLoader struct {
	DB     *sql.DB
	Logger *slog.Logger
}

// LoadTable loads one table's columns into st. The columns are added in
// ordinal_position order.
func (l *InfoSchemaLoader) LoadTable(ctx context.Context, st *SymbolTable, schema, table string) error {
	if l.DB == nil {
		return fmt.Errorf("database connection not established")
	}

	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position
	`

	rows, err := l.DB.QueryContext(ctx, query, schema, table)
	if err != nil {
		return fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan column metadata: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating column metadata: %w", err)
	}

	if len(columns) == 0 {
		return fmt.Errorf("table %s.%s not found", schema, table)
	}

	if l.Logger != nil {
		l.Logger.Debug("loaded table metadata", "schema", schema, "table", table, "columns", len(columns))
	}

	st.Add(TableIdentity{Schema: schema, Table: table}, columns)
	return nil
}

// LoadSchema loads every table in a schema into st, in table_name order.
func (l *InfoSchemaLoader) LoadSchema(ctx context.Context, st *SymbolTable, schema string) error {
	if l.DB == nil {
		return fmt.Errorf("database connection not established")
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ?
		ORDER BY table_name
	`

	rows, err := l.DB.QueryContext(ctx, query, schema)
	if err != nil {
		return fmt.Errorf("failed to query table list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating table list: %w", err)
	}

	for _, table := range tables {
		if err := l.LoadTable(ctx, st, schema, table); err != nil {
			return err
		}
	}
	return nil
}
