package token

import "strings"

// CommentKind is the syntax a comment was written in.
type CommentKind int

const (
	LineComment  CommentKind = iota // -- to end of line
	BlockComment                    // /* ... */
)

// Comment is a comment skipped by the lexer. Comments never become
// tokens; the lexer records them so callers can recover them by span.
type Comment struct {
	Kind CommentKind
	Text string // source text, delimiters included
	Span Span
}

// IsLineComment reports whether c is a -- comment.
func (c *Comment) IsLineComment() bool { return c.Kind == LineComment }

// IsBlockComment reports whether c is a /* */ comment.
func (c *Comment) IsBlockComment() bool { return c.Kind == BlockComment }

// Body returns the comment text without its delimiters or surrounding
// whitespace. An unterminated block comment has no closing delimiter to
// strip.
func (c *Comment) Body() string {
	s := c.Text
	switch c.Kind {
	case LineComment:
		s = strings.TrimPrefix(s, "--")
	case BlockComment:
		s = strings.TrimSuffix(strings.TrimPrefix(s, "/*"), "*/")
	}
	return strings.TrimSpace(s)
}
