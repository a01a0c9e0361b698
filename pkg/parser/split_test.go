package parser_test

import (
	"testing"

	"github.com/leapstack-labs/leaplineage/pkg/parser"
	"github.com/stretchr/testify/assert"
)

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "two statements",
			input: "SELECT 1; SELECT 2",
			want:  []string{"SELECT 1", "SELECT 2"},
		},
		{
			name:  "trailing semicolon",
			input: "SELECT 1;",
			want:  []string{"SELECT 1"},
		},
		{
			name:  "semicolon inside string literal",
			input: "SELECT 'a;b' FROM t; SELECT 2",
			want:  []string{"SELECT 'a;b' FROM t", "SELECT 2"},
		},
		{
			name:  "semicolon inside comment",
			input: "SELECT 1 -- not a split; here\n; SELECT 2",
			want:  []string{"SELECT 1 -- not a split; here", "SELECT 2"},
		},
		{
			name:  "empty statements dropped",
			input: ";;SELECT 1;;",
			want:  []string{"SELECT 1"},
		},
		{
			name:  "empty input",
			input: "   ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.SplitStatements(tt.input))
		})
	}
}
