// Package format re-serializes AST statements to SQL text.
//
// Compact output puts a statement on one line. Pretty output places each
// clause on its own line and indents clause items. Raw fragments are
// always printed verbatim, so formatting a SegmentedStatement keeps the
// text the parser could not convert.
package format

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlseg/pkg/ast"
)

// KeywordCase selects how keywords are written.
type KeywordCase string

// Keyword cases.
const (
	KeywordUpper KeywordCase = "upper"
	KeywordLower KeywordCase = "lower"
)

// ParseKeywordCase validates a keyword case name. The empty string means
// KeywordUpper.
func ParseKeywordCase(s string) (KeywordCase, error) {
	switch KeywordCase(strings.ToLower(s)) {
	case "", KeywordUpper:
		return KeywordUpper, nil
	case KeywordLower:
		return KeywordLower, nil
	}
	return "", fmt.Errorf("invalid keyword case %q: must be %q or %q", s, KeywordUpper, KeywordLower)
}

// Options controls the output layout.
type Options struct {
	Pretty      bool
	KeywordCase KeywordCase
}

// Statement formats a statement.
func Statement(stmt ast.Statement, opts Options) string {
	p := newPrinter(opts)
	p.formatStatement(stmt)
	return p.String()
}

// Expression formats an expression on a single line.
func Expression(e ast.Expression, opts Options) string {
	p := newPrinter(opts)
	p.formatExpr(e)
	return p.String()
}

// Segmented formats every statement segment of s and copies raw fragments
// unchanged.
func Segmented(s *ast.SegmentedStatement, opts Options) string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	for _, seg := range s.Segments {
		switch seg := seg.(type) {
		case *ast.StatementSegment:
			b.WriteString(Statement(seg.Statement, opts))
		case *ast.RawFragment:
			b.WriteString(seg.SQLText)
		}
	}
	return b.String()
}
