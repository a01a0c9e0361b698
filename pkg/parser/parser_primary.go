package parser

// parsePrimary parses a primary expression: literals, column references,
// function calls, and special forms.
func (p *Parser) parsePrimary() Expr {
	switch p.token.Type {
	case TOKEN_NUMBER:
		lit := &Literal{Type: LiteralNumber, Value: p.token.Literal}
		p.nextToken()
		return lit

	case TOKEN_STRING:
		lit := &Literal{Type: LiteralString, Value: p.token.Literal}
		p.nextToken()
		return lit

	case TOKEN_TRUE:
		p.nextToken()
		return &Literal{Type: LiteralBool, Value: "TRUE"}

	case TOKEN_FALSE:
		p.nextToken()
		return &Literal{Type: LiteralBool, Value: "FALSE"}

	case TOKEN_NULL:
		p.nextToken()
		return &Literal{Type: LiteralNull, Value: "NULL"}

	case TOKEN_CASE:
		return p.parseCaseExpr()

	case TOKEN_CAST:
		return p.parseCastExpr()

	case TOKEN_EXISTS:
		return p.parseExistsExpr()

	case TOKEN_LPAREN:
		return p.parseParenExpr()

	case TOKEN_IDENT:
		return p.parseIdentifierExpr()

	case TOKEN_LEFT, TOKEN_RIGHT, TOKEN_FILTER, TOKEN_CURRENT:
		// Keywords that double as function names (LEFT(s, n), RIGHT(s, n), ...)
		if p.checkPeek(TOKEN_LPAREN) {
			return p.parseIdentifierExpr()
		}
		p.addError("unexpected token in expression: " + p.token.Type.String())
		p.nextToken()
		return nil

	default:
		p.addError("unexpected token in expression: " + p.token.Type.String())
		p.nextToken()
		return nil
	}
}

// parseIdentifierExpr parses an expression starting with an identifier:
// a column reference (possibly qualified), a qualified star, or a function call.
func (p *Parser) parseIdentifierExpr() Expr {
	name := p.token.Literal
	p.nextToken()

	// Function call
	if p.check(TOKEN_LPAREN) {
		return p.parseFuncCall(name)
	}

	// Bare column
	if !p.check(TOKEN_DOT) {
		return &ColumnRef{Column: name}
	}

	// Qualified reference: t.col, t.*, or schema.table.col
	p.nextToken() // consume .

	if p.check(TOKEN_STAR) {
		p.nextToken()
		return &StarExpr{Table: name}
	}

	if !p.check(TOKEN_IDENT) {
		p.addError("expected identifier after '.'")
		return &ColumnRef{Column: name}
	}

	second := p.token.Literal
	p.nextToken()

	// Three-part reference: fold the leading parts into the qualifier
	if p.check(TOKEN_DOT) && p.checkPeek(TOKEN_IDENT) {
		p.nextToken()
		third := p.token.Literal
		p.nextToken()
		return &ColumnRef{Table: name + "." + second, Column: third}
	}

	return &ColumnRef{Table: name, Column: second}
}

// parseFuncCall parses a function call. The function name has already been
// consumed; the current token is the opening paren.
func (p *Parser) parseFuncCall(name string) Expr {
	fn := &FuncCall{Name: name}

	p.expect(TOKEN_LPAREN)

	// COUNT(*)
	if p.check(TOKEN_STAR) && p.checkPeek(TOKEN_RPAREN) {
		fn.Star = true
		p.nextToken()
	} else if !p.check(TOKEN_RPAREN) {
		if p.match(TOKEN_DISTINCT) {
			fn.Distinct = true
		}
		fn.Args = p.parseExpressionList()
	}

	p.expect(TOKEN_RPAREN)

	// FILTER (WHERE condition)
	if p.match(TOKEN_FILTER) {
		p.expect(TOKEN_LPAREN)
		p.expect(TOKEN_WHERE)
		fn.Filter = p.parseExpression()
		p.expect(TOKEN_RPAREN)
	}

	// OVER (window spec)
	if p.match(TOKEN_OVER) {
		fn.Window = p.parseWindowSpec()
	}

	return fn
}
