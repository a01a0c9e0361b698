package parser

// DML statement parsing: INSERT, CREATE TABLE AS SELECT, MERGE.
//
// Grammar:
//
//	insert_stmt → INSERT INTO table_name ["(" ident_list ")"]
//	              (select_stmt | VALUES "(" expr_list ")" ("," "(" expr_list ")")*)
//	ctas_stmt   → CREATE TABLE table_name AS select_stmt
//	merge_stmt  → MERGE INTO table_name [AS alias] USING table_ref ON expr when_clause+
//	when_clause → WHEN MATCHED [AND expr] THEN (UPDATE SET assignment_list | DELETE)
//	            | WHEN NOT MATCHED [AND expr] THEN INSERT ["(" ident_list ")"] VALUES "(" expr_list ")"

// parseInsertStatement parses INSERT INTO ... SELECT / VALUES.
func (p *Parser) parseInsertStatement() *InsertStmt {
	p.expect(TOKEN_INSERT)
	p.expect(TOKEN_INTO)

	stmt := &InsertStmt{}
	stmt.Target = p.parseTargetTableName()

	// Optional explicit column list
	if p.check(TOKEN_LPAREN) {
		stmt.Columns = p.parseIdentList()
	}

	switch {
	case p.check(TOKEN_SELECT) || p.check(TOKEN_WITH):
		stmt.Select = p.parseSelectStatement()

	case p.match(TOKEN_VALUES):
		for {
			p.expect(TOKEN_LPAREN)
			row := p.parseExpressionList()
			p.expect(TOKEN_RPAREN)
			stmt.Values = append(stmt.Values, row)

			if !p.match(TOKEN_COMMA) {
				break
			}
		}

	default:
		p.addError("expected SELECT or VALUES after INSERT target")
	}

	return stmt
}

// parseCreateTableAsStatement parses CREATE TABLE ... AS SELECT.
func (p *Parser) parseCreateTableAsStatement() *CreateTableAsStmt {
	p.expect(TOKEN_CREATE)
	p.expect(TOKEN_TABLE)

	stmt := &CreateTableAsStmt{}
	stmt.Target = p.parseTargetTableName()

	p.expect(TOKEN_AS)

	if !p.check(TOKEN_SELECT) && !p.check(TOKEN_WITH) {
		p.addError("expected SELECT after CREATE TABLE ... AS")
		return stmt
	}
	stmt.Select = p.parseSelectStatement()

	return stmt
}

// parseMergeStatement parses MERGE INTO ... USING ... ON ... WHEN clauses.
func (p *Parser) parseMergeStatement() *MergeStmt {
	p.expect(TOKEN_MERGE)
	p.expect(TOKEN_INTO)

	stmt := &MergeStmt{}
	stmt.Target = p.parseTableName()

	p.expect(TOKEN_USING)
	stmt.Source = p.parseTableRef()

	p.expect(TOKEN_ON)
	stmt.On = p.parseExpression()

	for p.check(TOKEN_WHEN) {
		when := p.parseMergeWhen()
		if when == nil {
			break
		}
		stmt.Whens = append(stmt.Whens, when)
	}

	if len(stmt.Whens) == 0 {
		p.addError("MERGE requires at least one WHEN clause")
	}

	return stmt
}

// parseMergeWhen parses one WHEN [NOT] MATCHED THEN ... branch.
func (p *Parser) parseMergeWhen() *MergeWhen {
	p.expect(TOKEN_WHEN)
	when := &MergeWhen{}

	if p.match(TOKEN_NOT) {
		when.NotMatched = true
	}
	p.expect(TOKEN_MATCHED)

	// Optional AND condition on the branch
	if p.match(TOKEN_AND) {
		when.Condition = p.parseExpression()
	}

	p.expect(TOKEN_THEN)

	switch {
	case p.match(TOKEN_UPDATE):
		when.Action = MergeUpdate
		p.expect(TOKEN_SET)
		when.Assignments = p.parseMergeAssignments()

	case p.match(TOKEN_DELETE):
		when.Action = MergeDelete

	case p.match(TOKEN_INSERT):
		when.Action = MergeInsert
		if p.check(TOKEN_LPAREN) {
			when.InsertColumns = p.parseIdentList()
		}
		p.expect(TOKEN_VALUES)
		p.expect(TOKEN_LPAREN)
		when.InsertValues = p.parseExpressionList()
		p.expect(TOKEN_RPAREN)

	default:
		p.addError("expected UPDATE, INSERT, or DELETE in MERGE WHEN clause")
		return nil
	}

	return when
}

// parseMergeAssignments parses the "col = expr" list of UPDATE SET.
func (p *Parser) parseMergeAssignments() []MergeAssignment {
	var assignments []MergeAssignment

	for {
		var a MergeAssignment

		// Target columns may be written qualified (t.col); only the column
		// part names the target.
		if !p.check(TOKEN_IDENT) {
			p.addError("expected column name in SET clause")
			break
		}
		a.Column = p.token.Literal
		p.nextToken()
		if p.match(TOKEN_DOT) {
			if p.check(TOKEN_IDENT) {
				a.Column = p.token.Literal
				p.nextToken()
			}
		}

		p.expect(TOKEN_EQ)
		a.Value = p.parseExpression()
		assignments = append(assignments, a)

		if !p.match(TOKEN_COMMA) {
			break
		}
	}

	return assignments
}

// parseTargetTableName parses a (possibly qualified) table name without
// consuming a trailing alias. Used for INSERT/CTAS targets where a bare
// identifier after the name would be a syntax error anyway.
func (p *Parser) parseTargetTableName() *TableName {
	table := &TableName{}

	if !p.check(TOKEN_IDENT) {
		p.addError("expected table name")
		return table
	}

	parts := []string{p.token.Literal}
	p.nextToken()

	for p.match(TOKEN_DOT) {
		if p.check(TOKEN_IDENT) {
			parts = append(parts, p.token.Literal)
			p.nextToken()
		}
	}

	switch len(parts) {
	case 1:
		table.Name = parts[0]
	case 2:
		table.Schema = parts[0]
		table.Name = parts[1]
	case 3:
		table.Catalog = parts[0]
		table.Schema = parts[1]
		table.Name = parts[2]
	}

	return table
}

// parseIdentList parses a parenthesized identifier list.
func (p *Parser) parseIdentList() []string {
	p.expect(TOKEN_LPAREN)
	var idents []string
	for {
		if !p.check(TOKEN_IDENT) {
			p.addError("expected identifier")
			break
		}
		idents = append(idents, p.token.Literal)
		p.nextToken()
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.expect(TOKEN_RPAREN)
	return idents
}
