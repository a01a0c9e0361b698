// Package parser provides SQL parsing for the lineage engine.
// This file re-exports token types so parser code can use them unqualified.
package parser

import "github.com/leapstack-labs/leaplineage/pkg/token"

// TokenType is an alias for token.TokenType.
type TokenType = token.TokenType

// Token is an alias for token.Token.
type Token = token.Token

// Position is an alias for token.Position.
type Position = token.Position

// LookupIdent is re-exported from the token package.
var LookupIdent = token.LookupIdent

//nolint:revive // TOKEN_* names are intentionally ALL_CAPS for SQL token conventions
const (
	// Special tokens
	TOKEN_EOF     = token.TOKEN_EOF
	TOKEN_ILLEGAL = token.TOKEN_ILLEGAL

	// Literals
	TOKEN_IDENT  = token.TOKEN_IDENT
	TOKEN_NUMBER = token.TOKEN_NUMBER
	TOKEN_STRING = token.TOKEN_STRING

	// Operators
	TOKEN_PLUS      = token.TOKEN_PLUS
	TOKEN_MINUS     = token.TOKEN_MINUS
	TOKEN_STAR      = token.TOKEN_STAR
	TOKEN_SLASH     = token.TOKEN_SLASH
	TOKEN_PERCENT   = token.TOKEN_PERCENT
	TOKEN_DPIPE     = token.TOKEN_DPIPE
	TOKEN_EQ        = token.TOKEN_EQ
	TOKEN_NE        = token.TOKEN_NE
	TOKEN_LT        = token.TOKEN_LT
	TOKEN_GT        = token.TOKEN_GT
	TOKEN_LE        = token.TOKEN_LE
	TOKEN_GE        = token.TOKEN_GE
	TOKEN_DOT       = token.TOKEN_DOT
	TOKEN_COMMA     = token.TOKEN_COMMA
	TOKEN_LPAREN    = token.TOKEN_LPAREN
	TOKEN_RPAREN    = token.TOKEN_RPAREN
	TOKEN_SEMICOLON = token.TOKEN_SEMICOLON

	// Keywords (alphabetical)
	TOKEN_ALL       = token.TOKEN_ALL
	TOKEN_AND       = token.TOKEN_AND
	TOKEN_AS        = token.TOKEN_AS
	TOKEN_ASC       = token.TOKEN_ASC
	TOKEN_BETWEEN   = token.TOKEN_BETWEEN
	TOKEN_BY        = token.TOKEN_BY
	TOKEN_CASE      = token.TOKEN_CASE
	TOKEN_CAST      = token.TOKEN_CAST
	TOKEN_CREATE    = token.TOKEN_CREATE
	TOKEN_CROSS     = token.TOKEN_CROSS
	TOKEN_CURRENT   = token.TOKEN_CURRENT
	TOKEN_DELETE    = token.TOKEN_DELETE
	TOKEN_DESC      = token.TOKEN_DESC
	TOKEN_DISTINCT  = token.TOKEN_DISTINCT
	TOKEN_ELSE      = token.TOKEN_ELSE
	TOKEN_END       = token.TOKEN_END
	TOKEN_EXCEPT    = token.TOKEN_EXCEPT
	TOKEN_EXISTS    = token.TOKEN_EXISTS
	TOKEN_FALSE     = token.TOKEN_FALSE
	TOKEN_FILTER    = token.TOKEN_FILTER
	TOKEN_FIRST     = token.TOKEN_FIRST
	TOKEN_FOLLOWING = token.TOKEN_FOLLOWING
	TOKEN_FROM      = token.TOKEN_FROM
	TOKEN_FULL      = token.TOKEN_FULL
	TOKEN_GROUP     = token.TOKEN_GROUP
	TOKEN_HAVING    = token.TOKEN_HAVING
	TOKEN_ILIKE     = token.TOKEN_ILIKE
	TOKEN_IN        = token.TOKEN_IN
	TOKEN_INNER     = token.TOKEN_INNER
	TOKEN_INSERT    = token.TOKEN_INSERT
	TOKEN_INTERSECT = token.TOKEN_INTERSECT
	TOKEN_INTO      = token.TOKEN_INTO
	TOKEN_IS        = token.TOKEN_IS
	TOKEN_JOIN      = token.TOKEN_JOIN
	TOKEN_LAST      = token.TOKEN_LAST
	TOKEN_LEFT      = token.TOKEN_LEFT
	TOKEN_LIKE      = token.TOKEN_LIKE
	TOKEN_LIMIT     = token.TOKEN_LIMIT
	TOKEN_MATCHED   = token.TOKEN_MATCHED
	TOKEN_MERGE     = token.TOKEN_MERGE
	TOKEN_NOT       = token.TOKEN_NOT
	TOKEN_NULL      = token.TOKEN_NULL
	TOKEN_NULLS     = token.TOKEN_NULLS
	TOKEN_OFFSET    = token.TOKEN_OFFSET
	TOKEN_ON        = token.TOKEN_ON
	TOKEN_OR        = token.TOKEN_OR
	TOKEN_ORDER     = token.TOKEN_ORDER
	TOKEN_OUTER     = token.TOKEN_OUTER
	TOKEN_OVER      = token.TOKEN_OVER
	TOKEN_PARTITION = token.TOKEN_PARTITION
	TOKEN_PRECEDING = token.TOKEN_PRECEDING
	TOKEN_RANGE     = token.TOKEN_RANGE
	TOKEN_RECURSIVE = token.TOKEN_RECURSIVE
	TOKEN_RIGHT     = token.TOKEN_RIGHT
	TOKEN_ROW       = token.TOKEN_ROW
	TOKEN_ROWS      = token.TOKEN_ROWS
	TOKEN_SELECT    = token.TOKEN_SELECT
	TOKEN_SET       = token.TOKEN_SET
	TOKEN_TABLE     = token.TOKEN_TABLE
	TOKEN_THEN      = token.TOKEN_THEN
	TOKEN_TRUE      = token.TOKEN_TRUE
	TOKEN_UNBOUNDED = token.TOKEN_UNBOUNDED
	TOKEN_UNION     = token.TOKEN_UNION
	TOKEN_UPDATE    = token.TOKEN_UPDATE
	TOKEN_USING     = token.TOKEN_USING
	TOKEN_VALUES    = token.TOKEN_VALUES
	TOKEN_WHEN      = token.TOKEN_WHEN
	TOKEN_WHERE     = token.TOKEN_WHERE
	TOKEN_WITH      = token.TOKEN_WITH
)
