package parser

// DML and DDL statement nodes beyond plain SELECT: INSERT, CREATE TABLE AS
// SELECT, and MERGE. These are the statement forms that feed column lineage
// into a named target table.

// InsertStmt represents INSERT INTO ... SELECT or INSERT INTO ... VALUES.
type InsertStmt struct {
	Target  *TableName
	Columns []string    // explicit column list, may be empty
	Select  *SelectStmt // nil for VALUES form
	Values  [][]Expr    // VALUES rows (no lineage extracted from these)
}

func (*InsertStmt) stmtNode() {}

// CreateTableAsStmt represents CREATE TABLE ... AS SELECT (CTAS).
type CreateTableAsStmt struct {
	Target *TableName
	Select *SelectStmt
}

func (*CreateTableAsStmt) stmtNode() {}

// MergeStmt represents MERGE INTO ... USING ... ON ... WHEN clauses.
type MergeStmt struct {
	Target *TableName
	Source TableRef
	On     Expr
	Whens  []*MergeWhen
}

func (*MergeStmt) stmtNode() {}

// MergeActionType identifies the action of a WHEN branch.
type MergeActionType string

// MergeActionType constants.
const (
	MergeUpdate MergeActionType = "UPDATE"
	MergeInsert MergeActionType = "INSERT"
	MergeDelete MergeActionType = "DELETE"
)

// MergeWhen represents one WHEN [NOT] MATCHED THEN ... branch.
type MergeWhen struct {
	NotMatched bool
	Condition  Expr // optional AND condition on the WHEN branch
	Action     MergeActionType
	// UPDATE SET assignments
	Assignments []MergeAssignment
	// INSERT (columns) VALUES (exprs)
	InsertColumns []string
	InsertValues  []Expr
}

// MergeAssignment represents one "col = expr" in WHEN MATCHED THEN UPDATE SET.
type MergeAssignment struct {
	Column string
	Value  Expr
}
