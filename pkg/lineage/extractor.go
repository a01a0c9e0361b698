package lineage

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplineage/pkg/catalog"
	"github.com/leapstack-labs/leaplineage/pkg/parser"
)

// triple is one raw (source, target) pair before assembly.
type triple struct {
	target   Column
	source   sourceRef
	exprText string
}

// captureFrame collects references that resolve outside a subquery, so a
// correlated subquery contributes its outer-scope references (and only those)
// to the enclosing item's source set.
type captureFrame struct {
	boundary *scope
	refs     []sourceRef
}

// extractor walks one statement's AST, building scopes per query block and
// producing raw lineage triples.
type extractor struct {
	symbols   *catalog.SymbolTable
	maxDepth  int
	queryType QueryType
	triples   []triple
	tables    []catalog.TableIdentity
	tableSeen map[string]bool
	errors    []string
	aborted   bool
	captures  []*captureFrame
}

func newExtractor(symbols *catalog.SymbolTable, maxDepth int) *extractor {
	return &extractor{
		symbols:   symbols,
		maxDepth:  maxDepth,
		queryType: QueryUnknown,
		tableSeen: make(map[string]bool),
	}
}

func (e *extractor) addError(msg string) {
	e.errors = append(e.errors, msg)
}

// recordTable tracks every table identity touched, in first-seen order.
func (e *extractor) recordTable(id catalog.TableIdentity) {
	key := id.String()
	if e.tableSeen[key] {
		return
	}
	e.tableSeen[key] = true
	e.tables = append(e.tables, id)
}

func (e *extractor) emit(target Column, exprText string, sources []sourceRef) {
	for _, s := range sources {
		e.triples = append(e.triples, triple{target: target, source: s, exprText: exprText})
	}
}

// noteResolution feeds a resolved reference to any active capture frames
// whose boundary scope (or an ancestor of it) owns the resolution.
func (e *extractor) noteResolution(refs []sourceRef, owner *scope) {
	if owner == nil {
		return
	}
	for _, frame := range e.captures {
		for sc := frame.boundary; sc != nil; sc = sc.parent {
			if sc == owner {
				frame.refs = append(frame.refs, refs...)
				break
			}
		}
	}
}

// ---------- Statement dispatch ----------

func (e *extractor) extractStatement(stmt parser.Statement) {
	switch s := stmt.(type) {
	case *parser.SelectStmt:
		e.queryType = QuerySelect
		outs := e.processSelect(s, nil, nil, 0)
		if e.aborted {
			return
		}
		for _, o := range outs {
			e.emit(Column{Column: o.name, Verified: true}, o.exprText, o.sources)
		}

	case *parser.InsertStmt:
		e.queryType = QueryInsert
		e.extractInsert(s)

	case *parser.CreateTableAsStmt:
		e.queryType = QueryCreateTableAs
		e.extractCreateTableAs(s)

	case *parser.MergeStmt:
		e.queryType = QueryMerge
		e.extractMerge(s)

	default:
		e.addError("unsupported statement type")
	}
}

func (e *extractor) extractInsert(s *parser.InsertStmt) {
	targetTable, targetVerified, targetCols := e.resolveTarget(s.Target)

	// INSERT ... VALUES carries no lineage; the target is still a reference.
	if s.Select == nil {
		return
	}

	outs := e.processSelect(s.Select, nil, nil, 0)
	if e.aborted {
		return
	}

	cols := s.Columns
	if len(cols) == 0 {
		if !targetVerified {
			e.addError(fmt.Sprintf(
				"cannot determine target columns for %s: table not in symbol table and no column list given",
				rawTableName(s.Target)))
			return
		}
		cols = targetCols
	}

	n := len(outs)
	if len(cols) < n {
		n = len(cols)
	}
	if len(outs) != len(cols) {
		e.addError(fmt.Sprintf(
			"ArityMismatchError: SELECT produces %d columns but INSERT target has %d, extra positions dropped",
			len(outs), len(cols)))
	}
	for i := 0; i < n; i++ {
		e.emit(Column{Table: targetTable, Column: cols[i], Verified: targetVerified}, outs[i].exprText, outs[i].sources)
	}
}

func (e *extractor) extractCreateTableAs(s *parser.CreateTableAsStmt) {
	// The target is created by the statement itself, so it is verified even
	// though the symbol table has never seen it.
	id := catalog.TableIdentity{Database: s.Target.Catalog, Schema: s.Target.Schema, Table: s.Target.Name}
	e.recordTable(id)

	outs := e.processSelect(s.Select, nil, nil, 0)
	if e.aborted {
		return
	}
	for _, o := range outs {
		e.emit(Column{Table: id.String(), Column: o.name, Verified: true}, o.exprText, o.sources)
	}
}

func (e *extractor) extractMerge(s *parser.MergeStmt) {
	sc := newScope(nil)
	e.addTableRef(sc, s.Target, nil, 0)
	e.addTableRef(sc, s.Source, nil, 0)
	if e.aborted || len(sc.entries) == 0 {
		return
	}

	targetEntry := sc.entries[0]
	targetTable := targetEntry.rawName
	if targetEntry.verified {
		targetTable = targetEntry.identity.String()
	}

	// The ON condition is the merge's join; resolve it so correlated and
	// unknown references surface.
	if s.On != nil {
		e.collectExpr(s.On, sc, nil, 0)
	}

	for _, when := range s.Whens {
		hasCond := when.Condition != nil
		condTables := make(map[string]bool)
		if hasCond {
			for _, r := range e.collectExpr(when.Condition, sc, nil, 0) {
				condTables[r.col.Table] = true
			}
		}

		switch when.Action {
		case parser.MergeUpdate:
			for _, a := range when.Assignments {
				sources := e.collectExpr(a.Value, sc, nil, 0)
				applySourceFlags(sources, sourceFlags{
					calc:        !isBareColumn(a.Value),
					joined:      spansTables(sources) >= 2,
					hasWhere:    hasCond,
					whereTables: condTables,
				})
				e.emit(Column{Table: targetTable, Column: a.Column, Verified: targetEntry.verified},
					renderExpr(a.Value), sources)
			}

		case parser.MergeInsert:
			cols := when.InsertColumns
			if len(cols) == 0 {
				if !targetEntry.verified {
					e.addError(fmt.Sprintf(
						"cannot determine insert columns for %s: table not in symbol table and no column list given",
						targetEntry.rawName))
					continue
				}
				cols = targetEntry.columns
			}

			n := len(when.InsertValues)
			if len(cols) < n {
				n = len(cols)
			}
			if len(when.InsertValues) != len(cols) {
				e.addError(fmt.Sprintf(
					"ArityMismatchError: MERGE INSERT has %d values but %d target columns, extra positions dropped",
					len(when.InsertValues), len(cols)))
			}
			for i := 0; i < n; i++ {
				sources := e.collectExpr(when.InsertValues[i], sc, nil, 0)
				applySourceFlags(sources, sourceFlags{
					calc:        !isBareColumn(when.InsertValues[i]),
					joined:      spansTables(sources) >= 2,
					hasWhere:    hasCond,
					whereTables: condTables,
				})
				e.emit(Column{Table: targetTable, Column: cols[i], Verified: targetEntry.verified},
					renderExpr(when.InsertValues[i]), sources)
			}

		case parser.MergeDelete:
			// Removes rows, moves no column data.
		}
	}
}

// resolveTarget resolves a DML target table against the symbol table,
// recording it as a reference either way.
func (e *extractor) resolveTarget(t *parser.TableName) (table string, verified bool, columns []string) {
	id, cols, ok := e.symbols.Lookup(t.Catalog, t.Schema, t.Name)
	if ok {
		e.recordTable(id)
		return id.String(), true, cols
	}
	given := catalog.TableIdentity{Database: t.Catalog, Schema: t.Schema, Table: t.Name}
	e.recordTable(given)
	return rawTableName(t), false, nil
}

// ---------- Query block processing ----------

// processSelect handles a full SELECT statement (WITH clause plus body) and
// returns its output columns.
func (e *extractor) processSelect(sel *parser.SelectStmt, parent *scope, reg *cteRegistry, depth int) []outputColumn {
	if sel == nil || e.aborted {
		return nil
	}
	if depth >= e.maxDepth {
		e.addError(fmt.Sprintf("DepthExceededError: nested scope depth exceeds %d", e.maxDepth))
		e.aborted = true
		return nil
	}

	if sel.With != nil {
		reg = newCTERegistry(reg)
		for _, cte := range sel.With.CTEs {
			outs := e.processSelect(cte.Select, parent, reg, depth+1)
			if e.aborted {
				return nil
			}
			reg.register(cte.Name, outs)
		}
	}

	return e.processBody(sel.Body, parent, reg, depth, false)
}

// processBody handles set-operation chains. All branches of a UNION (or
// INTERSECT/EXCEPT) feed the same output columns positionally, named by the
// first branch.
func (e *extractor) processBody(body *parser.SelectBody, parent *scope, reg *cteRegistry, depth int, inUnion bool) []outputColumn {
	if body == nil || e.aborted {
		return nil
	}

	union := inUnion || body.Op != parser.SetOpNone
	outs := e.processCore(body.Left, parent, reg, depth, union)

	if body.Right != nil && !e.aborted {
		rights := e.processBody(body.Right, parent, reg, depth, true)

		n := len(outs)
		if len(rights) < n {
			n = len(rights)
		}
		if len(outs) != len(rights) {
			e.addError(fmt.Sprintf(
				"ArityMismatchError: set operation branches have %d and %d columns",
				len(outs), len(rights)))
		}
		for i := 0; i < n; i++ {
			outs[i].sources = append(outs[i].sources, rights[i].sources...)
		}
	}

	return outs
}

// processCore handles one query block: builds its scope, resolves clause
// expressions, and extracts an outputColumn per select item.
func (e *extractor) processCore(core *parser.SelectCore, parent *scope, reg *cteRegistry, depth int, inUnion bool) []outputColumn {
	if core == nil || e.aborted {
		return nil
	}

	sc := newScope(parent)
	hasJoin := false

	if core.From != nil {
		e.addTableRef(sc, core.From.Source, reg, depth)
		for _, j := range core.From.Joins {
			hasJoin = true
			e.addTableRef(sc, j.Right, reg, depth)
		}
		if e.aborted {
			return nil
		}
		for _, j := range core.From.Joins {
			if j.Condition != nil {
				e.collectExpr(j.Condition, sc, reg, depth)
			}
		}
	}

	hasWhere := core.Where != nil
	whereTables := make(map[string]bool)
	if hasWhere {
		for _, r := range e.collectExpr(core.Where, sc, reg, depth) {
			whereTables[r.col.Table] = true
		}
	}

	hasGroupBy := len(core.GroupBy) > 0
	for _, g := range core.GroupBy {
		e.collectExpr(g, sc, reg, depth)
	}
	if core.Having != nil {
		e.collectExpr(core.Having, sc, reg, depth)
	}
	for _, o := range core.OrderBy {
		e.collectExpr(o.Expr, sc, reg, depth)
	}

	starFlags := sourceFlags{
		agg:         hasGroupBy,
		union:       inUnion,
		hasWhere:    hasWhere,
		whereTables: whereTables,
	}

	var outs []outputColumn
	for i, item := range core.Columns {
		if e.aborted {
			return nil
		}

		switch {
		case item.Star:
			outs = append(outs, e.expandStar(sc, "", starFlags)...)

		case item.TableStar != "":
			outs = append(outs, e.expandStar(sc, item.TableStar, starFlags)...)

		default:
			name := item.Alias
			if name == "" {
				if cr, ok := item.Expr.(*parser.ColumnRef); ok {
					name = cr.Column
				} else {
					name = fmt.Sprintf("expr_%d", i+1)
				}
			}

			sources := e.collectExpr(item.Expr, sc, reg, depth)
			applySourceFlags(sources, sourceFlags{
				agg:         hasGroupBy || isAggregateExpr(item.Expr),
				calc:        !isBareColumn(item.Expr),
				joined:      hasJoin && spansTables(sources) >= 2,
				union:       inUnion,
				hasWhere:    hasWhere,
				whereTables: whereTables,
			})
			outs = append(outs, outputColumn{name: name, exprText: renderExpr(item.Expr), sources: sources})
		}
	}

	return outs
}

// expandStar expands * or table.* into one output per source column, in
// FROM-clause then ordinal order.
func (e *extractor) expandStar(sc *scope, qualifier string, flags sourceFlags) []outputColumn {
	var entries []*scopeEntry
	if qualifier == "" {
		entries = sc.entries
	} else {
		entry, _ := sc.lookupEntry(qualifier)
		if entry == nil {
			e.addError(fmt.Sprintf("cannot expand %s.*: unknown table or alias", qualifier))
			return nil
		}
		entries = []*scopeEntry{entry}
	}

	var outs []outputColumn
	for _, entry := range entries {
		switch entry.kind {
		case entryTable:
			if !entry.verified {
				e.addError(fmt.Sprintf("cannot expand * for unknown table %s", entry.rawName))
				continue
			}
			for _, col := range entry.columns {
				refs := entry.sourcesFor(col)
				applySourceFlags(refs, flags)
				outs = append(outs, outputColumn{name: col, exprText: col, sources: refs})
			}

		default:
			for _, o := range entry.outputs {
				refs := make([]sourceRef, len(o.sources))
				copy(refs, o.sources)
				applySourceFlags(refs, flags)
				outs = append(outs, outputColumn{name: o.name, exprText: o.name, sources: refs})
			}
		}
	}
	return outs
}

// addTableRef adds one FROM/JOIN source to the scope: a CTE reference, a
// known or unknown base table, or a derived table processed as a nested
// block.
func (e *extractor) addTableRef(sc *scope, ref parser.TableRef, reg *cteRegistry, depth int) {
	switch t := ref.(type) {
	case *parser.TableName:
		refName := t.Alias
		if refName == "" {
			refName = t.Name
		}

		// CTE names are never qualified.
		if t.Schema == "" && t.Catalog == "" && reg != nil {
			if cte := reg.lookup(t.Name); cte != nil {
				sc.add(&scopeEntry{kind: entryCTE, name: refName, outputs: cte.outputs})
				return
			}
		}

		raw := rawTableName(t)
		if id, cols, ok := e.symbols.Lookup(t.Catalog, t.Schema, t.Name); ok {
			sc.add(&scopeEntry{
				kind: entryTable, name: refName, rawName: raw,
				identity: id, verified: true, columns: cols,
			})
			e.recordTable(id)
			return
		}

		given := catalog.TableIdentity{Database: t.Catalog, Schema: t.Schema, Table: t.Name}
		sc.add(&scopeEntry{kind: entryTable, name: refName, rawName: raw, identity: given})
		e.recordTable(given)

	case *parser.DerivedTable:
		outs := e.processSelect(t.Select, sc.parent, reg, depth+1)
		name := t.Alias
		if name == "" {
			name = fmt.Sprintf("subquery_%d", len(sc.entries)+1)
		}
		sc.add(&scopeEntry{kind: entryDerived, name: name, outputs: outs})
	}
}

// ---------- Expression walking ----------

// collectExpr returns every source column referenced anywhere in the
// expression tree. Function arguments, operands, CASE arms, and window
// partition/order expressions are recursed into. Subqueries contribute only
// their correlated (outer-scope) references.
func (e *extractor) collectExpr(expr parser.Expr, sc *scope, reg *cteRegistry, depth int) []sourceRef {
	var refs []sourceRef
	e.walkExpr(expr, sc, reg, depth, &refs)
	return refs
}

func (e *extractor) walkExpr(expr parser.Expr, sc *scope, reg *cteRegistry, depth int, refs *[]sourceRef) {
	if expr == nil || e.aborted {
		return
	}

	switch x := expr.(type) {
	case *parser.ColumnRef:
		var rs []sourceRef
		var owner *scope
		if x.Table != "" {
			rs, owner = sc.resolveQualified(x.Table, x.Column)
		} else {
			rs, owner = sc.resolveUnqualified(x.Column)
			if rs == nil {
				e.addError(fmt.Sprintf("unresolved column reference: %s", x.Column))
				return
			}
		}
		e.noteResolution(rs, owner)
		*refs = append(*refs, rs...)

	case *parser.BinaryExpr:
		e.walkExpr(x.Left, sc, reg, depth, refs)
		e.walkExpr(x.Right, sc, reg, depth, refs)

	case *parser.UnaryExpr:
		e.walkExpr(x.Expr, sc, reg, depth, refs)

	case *parser.ParenExpr:
		e.walkExpr(x.Expr, sc, reg, depth, refs)

	case *parser.FuncCall:
		for _, arg := range x.Args {
			e.walkExpr(arg, sc, reg, depth, refs)
		}
		e.walkExpr(x.Filter, sc, reg, depth, refs)
		if x.Window != nil {
			for _, p := range x.Window.PartitionBy {
				e.walkExpr(p, sc, reg, depth, refs)
			}
			for _, o := range x.Window.OrderBy {
				e.walkExpr(o.Expr, sc, reg, depth, refs)
			}
		}

	case *parser.CaseExpr:
		e.walkExpr(x.Operand, sc, reg, depth, refs)
		for _, w := range x.Whens {
			e.walkExpr(w.Condition, sc, reg, depth, refs)
			e.walkExpr(w.Result, sc, reg, depth, refs)
		}
		e.walkExpr(x.Else, sc, reg, depth, refs)

	case *parser.CastExpr:
		e.walkExpr(x.Expr, sc, reg, depth, refs)

	case *parser.InExpr:
		e.walkExpr(x.Expr, sc, reg, depth, refs)
		for _, v := range x.Values {
			e.walkExpr(v, sc, reg, depth, refs)
		}
		if x.Query != nil {
			*refs = append(*refs, e.collectSubquery(x.Query, sc, reg, depth)...)
		}

	case *parser.BetweenExpr:
		e.walkExpr(x.Expr, sc, reg, depth, refs)
		e.walkExpr(x.Low, sc, reg, depth, refs)
		e.walkExpr(x.High, sc, reg, depth, refs)

	case *parser.IsNullExpr:
		e.walkExpr(x.Expr, sc, reg, depth, refs)

	case *parser.IsBoolExpr:
		e.walkExpr(x.Expr, sc, reg, depth, refs)

	case *parser.LikeExpr:
		e.walkExpr(x.Expr, sc, reg, depth, refs)
		e.walkExpr(x.Pattern, sc, reg, depth, refs)

	case *parser.SubqueryExpr:
		*refs = append(*refs, e.collectSubquery(x.Select, sc, reg, depth)...)

	case *parser.ExistsExpr:
		*refs = append(*refs, e.collectSubquery(x.Select, sc, reg, depth)...)

	case *parser.Literal, *parser.StarExpr:
		// No column references.
	}
}

// collectSubquery processes a subquery as a nested block and returns only
// the references that resolved to the enclosing scope or above.
func (e *extractor) collectSubquery(sel *parser.SelectStmt, outer *scope, reg *cteRegistry, depth int) []sourceRef {
	frame := &captureFrame{boundary: outer}
	e.captures = append(e.captures, frame)
	e.processSelect(sel, outer, reg, depth+1)
	e.captures = e.captures[:len(e.captures)-1]
	return frame.refs
}

// ---------- Helpers ----------

// sourceFlags is the per-item clause context applied onto resolved sources.
type sourceFlags struct {
	agg         bool
	calc        bool
	joined      bool
	union       bool
	hasWhere    bool
	whereTables map[string]bool
}

func applySourceFlags(sources []sourceRef, f sourceFlags) {
	for i := range sources {
		sources[i].agg = sources[i].agg || f.agg
		sources[i].calc = sources[i].calc || f.calc
		sources[i].joined = sources[i].joined || f.joined
		sources[i].union = sources[i].union || f.union
		if f.hasWhere && f.whereTables[sources[i].col.Table] {
			sources[i].filtered = true
		}
	}
}

// spansTables counts the distinct source tables in a source set.
func spansTables(sources []sourceRef) int {
	seen := make(map[string]bool)
	for _, s := range sources {
		if s.col.Table != "" {
			seen[s.col.Table] = true
		}
	}
	return len(seen)
}

// isBareColumn reports whether the expression is a single column reference
// with no wrapper at all.
func isBareColumn(expr parser.Expr) bool {
	_, ok := expr.(*parser.ColumnRef)
	return ok
}

// aggregateFuncs are the functions whose application classifies an edge as
// AGGREGATED, windowed or not.
var aggregateFuncs = map[string]bool{
	"SUM":          true,
	"COUNT":        true,
	"AVG":          true,
	"MIN":          true,
	"MAX":          true,
	"GROUP_CONCAT": true,
	"STRING_AGG":   true,
	"ARRAY_AGG":    true,
	"LISTAGG":      true,
}

// isAggregateExpr reports whether the expression's top-level function is an
// aggregate. Parentheses are transparent.
func isAggregateExpr(expr parser.Expr) bool {
	for {
		p, ok := expr.(*parser.ParenExpr)
		if !ok {
			break
		}
		expr = p.Expr
	}
	fn, ok := expr.(*parser.FuncCall)
	return ok && aggregateFuncs[strings.ToUpper(fn.Name)]
}

// rawTableName renders a table name as written, dotted.
func rawTableName(t *parser.TableName) string {
	parts := make([]string, 0, 3)
	if t.Catalog != "" {
		parts = append(parts, t.Catalog)
	}
	if t.Schema != "" {
		parts = append(parts, t.Schema)
	}
	parts = append(parts, t.Name)
	return strings.Join(parts, ".")
}
