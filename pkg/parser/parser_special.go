package parser

// parseCaseExpr parses a CASE expression, with or without an operand.
func (p *Parser) parseCaseExpr() Expr {
	p.expect(TOKEN_CASE)

	caseExpr := &CaseExpr{}

	// Simple CASE has an operand before the first WHEN
	if !p.check(TOKEN_WHEN) {
		caseExpr.Operand = p.parseExpression()
	}

	for p.match(TOKEN_WHEN) {
		when := WhenClause{}
		when.Condition = p.parseExpression()
		p.expect(TOKEN_THEN)
		when.Result = p.parseExpression()
		caseExpr.Whens = append(caseExpr.Whens, when)
	}

	if len(caseExpr.Whens) == 0 {
		p.addError("CASE expression requires at least one WHEN clause")
	}

	if p.match(TOKEN_ELSE) {
		caseExpr.Else = p.parseExpression()
	}

	p.expect(TOKEN_END)
	return caseExpr
}

// parseCastExpr parses CAST(expr AS type).
func (p *Parser) parseCastExpr() Expr {
	p.expect(TOKEN_CAST)
	p.expect(TOKEN_LPAREN)

	cast := &CastExpr{}
	cast.Expr = p.parseExpression()

	p.expect(TOKEN_AS)
	cast.TypeName = p.parseTypeName()

	p.expect(TOKEN_RPAREN)
	return cast
}

// parseTypeName parses a type name such as INTEGER, VARCHAR(255), or DECIMAL(10, 2).
func (p *Parser) parseTypeName() string {
	if !p.check(TOKEN_IDENT) {
		p.addError("expected type name in CAST")
		return ""
	}

	name := p.token.Literal
	p.nextToken()

	// Multi-word type names: DOUBLE PRECISION, TIMESTAMP WITH ...
	for p.check(TOKEN_IDENT) {
		name += " " + p.token.Literal
		p.nextToken()
	}

	// Optional precision/scale arguments
	if p.match(TOKEN_LPAREN) {
		name += "("
		for !p.check(TOKEN_RPAREN) && !p.check(TOKEN_EOF) {
			name += p.token.Literal
			p.nextToken()
			if p.match(TOKEN_COMMA) {
				name += ", "
			}
		}
		p.expect(TOKEN_RPAREN)
		name += ")"
	}

	return name
}

// parseExistsExpr parses EXISTS (subquery).
func (p *Parser) parseExistsExpr() Expr {
	p.expect(TOKEN_EXISTS)
	p.expect(TOKEN_LPAREN)

	exists := &ExistsExpr{}
	exists.Select = p.parseSelectStatement()

	p.expect(TOKEN_RPAREN)
	return exists
}

// parseParenExpr parses a parenthesized expression or a scalar subquery.
func (p *Parser) parseParenExpr() Expr {
	p.expect(TOKEN_LPAREN)

	if p.check(TOKEN_SELECT) || p.check(TOKEN_WITH) {
		sub := &SubqueryExpr{Select: p.parseSelectStatement()}
		p.expect(TOKEN_RPAREN)
		return sub
	}

	expr := p.parseExpression()
	p.expect(TOKEN_RPAREN)
	return &ParenExpr{Expr: expr}
}
