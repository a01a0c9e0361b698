package parser

// parseWindowSpec parses a window specification after OVER.
// The OVER keyword has already been consumed; the current token is the opening paren.
func (p *Parser) parseWindowSpec() *WindowSpec {
	p.expect(TOKEN_LPAREN)

	spec := &WindowSpec{}

	if p.match(TOKEN_PARTITION) {
		p.expect(TOKEN_BY)
		spec.PartitionBy = p.parseExpressionList()
	}

	if p.match(TOKEN_ORDER) {
		p.expect(TOKEN_BY)
		spec.OrderBy = p.parseOrderByList()
	}

	if p.check(TOKEN_ROWS) || p.check(TOKEN_RANGE) {
		spec.Frame = p.parseFrameSpec()
	}

	p.expect(TOKEN_RPAREN)
	return spec
}

// parseFrameSpec parses a window frame specification (ROWS/RANGE ...).
func (p *Parser) parseFrameSpec() *FrameSpec {
	frame := &FrameSpec{}

	if p.match(TOKEN_ROWS) {
		frame.Type = FrameRows
	} else if p.match(TOKEN_RANGE) {
		frame.Type = FrameRange
	}

	// BETWEEN start AND end, or a single start bound
	if p.match(TOKEN_BETWEEN) {
		frame.Start = p.parseFrameBound()
		p.expect(TOKEN_AND)
		frame.End = p.parseFrameBound()
	} else {
		frame.Start = p.parseFrameBound()
	}

	return frame
}

// parseFrameBound parses a single window frame bound.
func (p *Parser) parseFrameBound() *FrameBound {
	switch {
	case p.match(TOKEN_UNBOUNDED):
		if p.match(TOKEN_PRECEDING) {
			return &FrameBound{Type: FrameUnboundedPreceding}
		}
		if p.match(TOKEN_FOLLOWING) {
			return &FrameBound{Type: FrameUnboundedFollowing}
		}
		p.addError("expected PRECEDING or FOLLOWING after UNBOUNDED")
		return nil

	case p.match(TOKEN_CURRENT):
		p.expect(TOKEN_ROW)
		return &FrameBound{Type: FrameCurrentRow}

	default:
		offset := p.parseExpression()
		if p.match(TOKEN_PRECEDING) {
			return &FrameBound{Type: FrameExprPreceding, Offset: offset}
		}
		if p.match(TOKEN_FOLLOWING) {
			return &FrameBound{Type: FrameExprFollowing, Offset: offset}
		}
		p.addError("expected PRECEDING or FOLLOWING in frame bound")
		return nil
	}
}
