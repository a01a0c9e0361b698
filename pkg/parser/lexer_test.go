package parser_test

import (
	"testing"

	"github.com/leapstack-labs/leaplineage/pkg/parser"
	"github.com/leapstack-labs/leaplineage/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerBasicTokens(t *testing.T) {
	input := "SELECT id, name FROM users WHERE age >= 21"
	tokens := parser.Tokenize(input)

	want := []token.TokenType{
		token.TOKEN_SELECT,
		token.TOKEN_IDENT,
		token.TOKEN_COMMA,
		token.TOKEN_IDENT,
		token.TOKEN_FROM,
		token.TOKEN_IDENT,
		token.TOKEN_WHERE,
		token.TOKEN_IDENT,
		token.TOKEN_GE,
		token.TOKEN_NUMBER,
		token.TOKEN_EOF,
	}

	require.Len(t, tokens, len(want))
	for i, tt := range want {
		assert.Equal(t, tt, tokens[i].Type, "token %d: got %s", i, tokens[i].Type)
	}
}

func TestLexerOperators(t *testing.T) {
	tests := []struct {
		input string
		want  token.TokenType
	}{
		{"+", token.TOKEN_PLUS},
		{"-", token.TOKEN_MINUS},
		{"*", token.TOKEN_STAR},
		{"/", token.TOKEN_SLASH},
		{"%", token.TOKEN_PERCENT},
		{"||", token.TOKEN_DPIPE},
		{"=", token.TOKEN_EQ},
		{"!=", token.TOKEN_NE},
		{"<>", token.TOKEN_NE},
		{"<", token.TOKEN_LT},
		{">", token.TOKEN_GT},
		{"<=", token.TOKEN_LE},
		{">=", token.TOKEN_GE},
		{";", token.TOKEN_SEMICOLON},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := parser.Tokenize(tt.input)
			require.NotEmpty(t, tokens)
			assert.Equal(t, tt.want, tokens[0].Type)
		})
	}
}

func TestLexerStringLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple string", "'hello'", "hello"},
		{"empty string", "''", ""},
		{"escaped quote", "'it''s'", "it's"},
		{"string with spaces", "'hello world'", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := parser.Tokenize(tt.input)
			require.NotEmpty(t, tokens)
			assert.Equal(t, token.TOKEN_STRING, tokens[0].Type)
			assert.Equal(t, tt.want, tokens[0].Literal)
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{"1e10", "1e10"},
		{"2.5e-3", "2.5e-3"},
		{"0.001", "0.001"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := parser.Tokenize(tt.input)
			require.NotEmpty(t, tokens)
			assert.Equal(t, token.TOKEN_NUMBER, tokens[0].Type)
			assert.Equal(t, tt.want, tokens[0].Literal)
		})
	}
}

func TestLexerQuotedIdentifiers(t *testing.T) {
	tokens := parser.Tokenize(`SELECT "order" FROM "my table"`)
	require.Len(t, tokens, 5)
	assert.Equal(t, token.TOKEN_IDENT, tokens[1].Type)
	assert.Equal(t, "order", tokens[1].Literal)
	assert.Equal(t, token.TOKEN_IDENT, tokens[3].Type)
	assert.Equal(t, "my table", tokens[3].Literal)
}

func TestLexerComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"line comment", "SELECT 1 -- trailing comment"},
		{"block comment", "SELECT /* inline */ 1"},
		{"multiline block comment", "SELECT /* line one\nline two */ 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := parser.Tokenize(tt.input)
			require.Len(t, tokens, 3)
			assert.Equal(t, token.TOKEN_SELECT, tokens[0].Type)
			assert.Equal(t, token.TOKEN_NUMBER, tokens[1].Type)
			assert.Equal(t, token.TOKEN_EOF, tokens[2].Type)
		})
	}
}

func TestLexerKeywordsCaseInsensitive(t *testing.T) {
	for _, input := range []string{"select", "SELECT", "Select", "sElEcT"} {
		tokens := parser.Tokenize(input)
		require.NotEmpty(t, tokens)
		assert.Equal(t, token.TOKEN_SELECT, tokens[0].Type, "input %q", input)
	}
}

func TestLexerPositionTracking(t *testing.T) {
	input := "SELECT id\nFROM users"
	tokens := parser.Tokenize(input)

	require.Len(t, tokens, 5)

	assert.Equal(t, 1, tokens[0].Pos.Line)
	assert.Equal(t, 1, tokens[0].Pos.Column)

	assert.Equal(t, 1, tokens[1].Pos.Line)
	assert.Equal(t, 8, tokens[1].Pos.Column)

	assert.Equal(t, 2, tokens[2].Pos.Line)
	assert.Equal(t, 1, tokens[2].Pos.Column)

	assert.Equal(t, 2, tokens[3].Pos.Line)
	assert.Equal(t, 6, tokens[3].Pos.Column)
}

func TestLexerIllegalCharacter(t *testing.T) {
	tokens := parser.Tokenize("SELECT @ FROM t")
	var sawIllegal bool
	for _, tok := range tokens {
		if tok.Type == token.TOKEN_ILLEGAL {
			sawIllegal = true
		}
	}
	assert.True(t, sawIllegal, "expected an ILLEGAL token for '@'")
}
