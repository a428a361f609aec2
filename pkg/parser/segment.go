package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlseg/pkg/ast"
	"github.com/leapstack-labs/sqlseg/pkg/cst"
)

// Segmentation fallback.
//
// When the grammar rejects the input as a whole, the text is scanned for
// SELECT regions that parse on their own. A "select" keyword starts a
// region when it is inside parentheses, is the first candidate in the
// text, or directly follows UNION or UNION ALL. Everything between regions
// is kept as raw fragments.

// SegmentSelectStatements splits sql into parsed SELECT segments and raw
// fragments. It returns nil when no region is found or when a region does
// not parse as a plain SELECT. The error is non-nil only for an
// *InvariantError raised while converting a region.
func SegmentSelectStatements(sql string, provider cst.Provider, v Visitor) (*ast.SegmentedStatement, error) {
	var (
		segments []ast.Segment
		cursor   int
		depth    int
		inQuote  bool
		first    = true
	)

	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		if inQuote {
			if ch == '\'' {
				if i+1 < len(sql) && sql[i+1] == '\'' {
					i++
					continue
				}
				inQuote = false
			}
			continue
		}

		switch ch {
		case '\'':
			inQuote = true
			continue
		case '(':
			depth++
			continue
		case ')':
			if depth > 0 {
				depth--
			}
			continue
		}

		if !keywordAt(sql, i, "select") {
			continue
		}
		start := depth > 0 || first || precededByUnion(sql, i)
		first = false
		if !start {
			continue
		}

		end := FindSelectBoundary(sql, i)
		stmt, err := parseSelectRegion(sql[i:end], provider, v)
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			return nil, nil
		}

		if i > cursor {
			segments = append(segments, &ast.RawFragment{SQLText: sql[cursor:i]})
		}
		segments = append(segments, &ast.StatementSegment{Statement: stmt, SQLText: sql[i:end]})
		cursor = end
		i = end - 1
	}

	if len(segments) == 0 {
		return nil, nil
	}
	if cursor < len(sql) {
		segments = append(segments, &ast.RawFragment{SQLText: sql[cursor:]})
	}
	return &ast.SegmentedStatement{Segments: segments}, nil
}

// parseSelectRegion parses one region with the full grammar. It returns
// nil when the region is rejected or is not a plain SELECT.
func parseSelectRegion(region string, provider cst.Provider, v Visitor) (*ast.SelectStatement, error) {
	root := provider.ParseCST(region)
	if root == nil {
		return nil, nil
	}
	stmt, err := v.Statement(root)
	if err != nil {
		if isUnsupported(err) {
			return nil, nil
		}
		return nil, err
	}
	sel, ok := stmt.(*ast.SelectStatement)
	if !ok {
		return nil, nil
	}
	return sel, nil
}

// FindSelectBoundary returns the end offset of the SELECT region starting
// at start. The region ends before a UNION at the starting depth, before a
// closing parenthesis that would leave the starting depth, or at the end
// of the input.
func FindSelectBoundary(sql string, start int) int {
	depth := 0
	inQuote := false

	for i := start; i < len(sql); i++ {
		ch := sql[i]
		if inQuote {
			if ch == '\'' {
				if i+1 < len(sql) && sql[i+1] == '\'' {
					i++
					continue
				}
				inQuote = false
			}
			continue
		}

		switch ch {
		case '\'':
			inQuote = true
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return i
			}
			depth--
		default:
			if depth == 0 && i > start && keywordAt(sql, i, "union") {
				return i
			}
		}
	}
	return len(sql)
}

// keywordAt reports whether the keyword kw (lowercase) occurs at offset i,
// case-insensitively, with no identifier character on either side.
func keywordAt(sql string, i int, kw string) bool {
	end := i + len(kw)
	if end > len(sql) || !strings.EqualFold(sql[i:end], kw) {
		return false
	}
	if i > 0 && isIdentChar(sql[i-1]) {
		return false
	}
	return end == len(sql) || !isIdentChar(sql[end])
}

// precededByUnion reports whether the text before offset i, ignoring
// whitespace, ends with UNION or UNION ALL.
func precededByUnion(sql string, i int) bool {
	j := skipSpaceBackward(sql, i)
	if endsWithKeyword(sql, j, "all") {
		j = skipSpaceBackward(sql, j-len("all"))
	}
	return endsWithKeyword(sql, j, "union")
}

// skipSpaceBackward returns the offset just after the last non-space byte
// before i.
func skipSpaceBackward(sql string, i int) int {
	for i > 0 && isSpace(sql[i-1]) {
		i--
	}
	return i
}

// endsWithKeyword reports whether sql[:j] ends with the keyword kw.
func endsWithKeyword(sql string, j int, kw string) bool {
	start := j - len(kw)
	return start >= 0 && keywordAt(sql, start, kw)
}

func isIdentChar(ch byte) bool {
	return ch == '_' || ch == '$' || ch >= 0x80 ||
		'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || isDigit(ch)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}
