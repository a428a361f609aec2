package cst_test

import (
	"testing"

	"github.com/leapstack-labs/sqlseg/pkg/cst"
	"github.com/leapstack-labs/sqlseg/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		types    []token.TokenType
		literals []string
	}{
		{
			name:     "simple select",
			input:    "SELECT a, ? FROM t",
			types:    []token.TokenType{token.SELECT, token.IDENT, token.COMMA, token.PARAM, token.FROM, token.IDENT, token.EOF},
			literals: []string{"SELECT", "a", ",", "?", "FROM", "t", ""},
		},
		{
			name:     "numbered placeholder",
			input:    "?12 ?",
			types:    []token.TokenType{token.PARAM, token.PARAM, token.EOF},
			literals: []string{"?12", "?", ""},
		},
		{
			name:     "strings keep raw text",
			input:    "'it''s'",
			types:    []token.TokenType{token.STRING, token.EOF},
			literals: []string{"'it''s'", ""},
		},
		{
			name:     "quoted identifiers keep raw text",
			input:    `"a""b" [x]]y]`,
			types:    []token.TokenType{token.IDENT, token.IDENT, token.EOF},
			literals: []string{`"a""b"`, "[x]]y]", ""},
		},
		{
			name:     "unterminated string is illegal",
			input:    "'abc",
			types:    []token.TokenType{token.ILLEGAL, token.EOF},
			literals: []string{"'abc", ""},
		},
		{
			name:     "not equal spellings",
			input:    "a <> b != c",
			types:    []token.TokenType{token.IDENT, token.NE, token.IDENT, token.NE, token.IDENT, token.EOF},
			literals: []string{"a", "<>", "b", "!=", "c", ""},
		},
		{
			name:     "json operators",
			input:    "a->b->>c",
			types:    []token.TokenType{token.IDENT, token.ARROW, token.IDENT, token.DARROW, token.IDENT, token.EOF},
			literals: []string{"a", "->", "b", "->>", "c", ""},
		},
		{
			name:     "numbers",
			input:    "1.5e10 .5 1e",
			types:    []token.TokenType{token.NUMBER, token.NUMBER, token.NUMBER, token.IDENT, token.EOF},
			literals: []string{"1.5e10", ".5", "1", "e", ""},
		},
		{
			name:     "keywords are case insensitive",
			input:    "select Rows",
			types:    []token.TokenType{token.SELECT, token.ROWS, token.EOF},
			literals: []string{"select", "Rows", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, _ := cst.Tokenize(tt.input)
			require.Len(t, tokens, len(tt.types))
			for i, tok := range tokens {
				assert.Equal(t, tt.types[i], tok.Type, "token %d", i)
				assert.Equal(t, tt.literals[i], tok.Literal, "token %d", i)
			}
		})
	}
}

func TestTokenize_Comments(t *testing.T) {
	tokens, comments := cst.Tokenize("SELECT -- first\n 1 /* second */")

	require.Len(t, tokens, 3)
	assert.Equal(t, token.SELECT, tokens[0].Type)
	assert.Equal(t, token.NUMBER, tokens[1].Type)
	assert.Equal(t, token.EOF, tokens[2].Type)

	require.Len(t, comments, 2)
	assert.True(t, comments[0].IsLineComment())
	assert.Equal(t, "-- first", comments[0].Text)
	assert.True(t, comments[1].IsBlockComment())
	assert.Equal(t, "/* second */", comments[1].Text)
	assert.Equal(t, "second", comments[1].Body())
}

func TestTokenize_Positions(t *testing.T) {
	tokens, _ := cst.Tokenize("SELECT\n  ab")
	require.Len(t, tokens, 3)

	ident := tokens[1]
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 9}, ident.Pos)
	assert.Equal(t, 11, ident.End.Offset)
	assert.Equal(t, "ab", ident.Span().Text("SELECT\n  ab"))
}

func TestTokenize_BinaryNoise(t *testing.T) {
	inputs := []string{
		"\x00\xff\x01",
		"'",
		`"`,
		"[",
		"/*",
		"--",
		"?",
		"!|=",
	}
	for _, input := range inputs {
		tokens, _ := cst.Tokenize(input)
		require.NotEmpty(t, tokens)
		assert.Equal(t, token.EOF, tokens[len(tokens)-1].Type, "input %q", input)
	}
}
