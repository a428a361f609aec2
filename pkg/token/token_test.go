package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenType
	}{
		{"select", SELECT},
		{"conflict", CONFLICT},
		{"nothing", NOTHING},
		{"users", IDENT},
		{"SELECT", IDENT}, // lookup expects lowercase
	}
	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupIdent(tt.ident))
		})
	}
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "SELECT", SELECT.String())
	assert.Equal(t, "->>", DARROW.String())
	assert.Equal(t, "IDENT", IDENT.String())
	assert.Equal(t, "TOKEN(-1)", TokenType(-1).String())
}

func TestClassification(t *testing.T) {
	assert.True(t, IsKeyword(WITH))
	assert.False(t, IsKeyword(IDENT))
	assert.True(t, IsOperator(RPAREN))
	assert.False(t, IsOperator(ALL))

	assert.True(t, IsSoftKeyword(ROWS))
	assert.True(t, IsSoftKeyword(CONFLICT))
	assert.False(t, IsSoftKeyword(SELECT))
}

func TestSpanText(t *testing.T) {
	src := "SELECT a"
	span := Span{Start: Position{Line: 1, Column: 8, Offset: 7}, End: Position{Line: 1, Column: 9, Offset: 8}}

	assert.Equal(t, "a", span.Text(src))
	assert.Equal(t, 1, span.Len())
	assert.True(t, span.Contains(7))
	assert.False(t, span.Contains(8))
	assert.True(t, span.IsValid())

	wide := Span{End: Position{Offset: 100}}
	assert.Equal(t, src, wide.Text(src))
	assert.Empty(t, Span{Start: Position{Offset: 5}, End: Position{Offset: 2}}.Text(src))
}

func TestCommentBody(t *testing.T) {
	tests := []struct {
		c    Comment
		want string
	}{
		{Comment{Kind: LineComment, Text: "-- note"}, "note"},
		{Comment{Kind: LineComment, Text: "--"}, ""},
		{Comment{Kind: BlockComment, Text: "/* a\n b */"}, "a\n b"},
		{Comment{Kind: BlockComment, Text: "/* open"}, "open"},
	}
	for _, tt := range tests {
		t.Run(tt.c.Text, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Body())
		})
	}
}
