package parser

import "strings"

// SplitStatements splits a SQL script into individual statements on
// semicolons, using the lexer so semicolons inside string literals, quoted
// identifiers, and comments do not split. Empty statements are dropped; the
// returned statements carry no trailing semicolon.
func SplitStatements(input string) []string {
	l := NewLexer(input)

	var stmts []string
	start := 0
	for {
		tok := l.NextToken()

		if tok.Type == TOKEN_SEMICOLON {
			if s := strings.TrimSpace(input[start:tok.Pos.Offset]); s != "" {
				stmts = append(stmts, s)
			}
			start = tok.Pos.Offset + 1
			continue
		}

		if tok.Type == TOKEN_EOF {
			if s := strings.TrimSpace(input[start:]); s != "" {
				stmts = append(stmts, s)
			}
			return stmts
		}
	}
}
