package parser

import (
	"strconv"

	"github.com/leapstack-labs/sqlseg/pkg/ast"
)

// Parameter position resolution.
//
// Positions are zero-based and assigned in lexical order with a single
// counter for the whole statement:
//
//	?    takes the counter, then the counter is incremented
//	?N   takes N-1; the counter advances to N if it is behind
//
// Raw fragments are not parsed. Their anonymous placeholders are counted
// with CountSequentialPlaceholders and advance the counter; numbered
// placeholders inside raw text never claim a position.

// resolver carries the counter for one resolution pass.
type resolver struct {
	nextSequential int
}

// ResolvePositions returns a copy of node with every parameter position
// assigned. The input is not modified, so resolving an already resolved
// tree yields an equal tree.
func ResolvePositions[T ast.Node](node T) T {
	cp, ok := ast.Clone(node).(T)
	if !ok {
		return node
	}
	r := &resolver{}
	r.resolve(cp)
	return cp
}

func (r *resolver) resolve(node ast.Node) {
	ast.Walk(node, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Parameter:
			n.Position = r.assign(n.Placeholder)
		case *ast.RawFragment:
			r.nextSequential += CountSequentialPlaceholders(n.SQLText)
		}
		return true
	})
}

// assign returns the position for a placeholder and advances the counter.
func (r *resolver) assign(placeholder string) int {
	if n, ok := placeholderNumber(placeholder); ok {
		if n > r.nextSequential {
			r.nextSequential = n
		}
		return n - 1
	}
	pos := r.nextSequential
	r.nextSequential++
	return pos
}

// placeholderNumber returns N for a placeholder of the form ?N with N >= 1.
// ?0 and numbers that overflow an int are treated as anonymous.
func placeholderNumber(placeholder string) (int, bool) {
	if len(placeholder) < 2 || placeholder[0] != '?' {
		return 0, false
	}
	digits := placeholder[1:]
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// CountSequentialPlaceholders counts the anonymous placeholders in sql: a
// '?' not immediately followed by a digit, outside string literals, quoted
// or bracketed identifiers and comments.
func CountSequentialPlaceholders(sql string) int {
	const (
		stateNone = iota
		stateSingleQuote
		stateDoubleQuote
		stateBracket
		stateLineComment
		stateBlockComment
	)

	count := 0
	state := stateNone
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch state {
		case stateSingleQuote, stateDoubleQuote, stateBracket:
			closing := byte('\'')
			if state == stateDoubleQuote {
				closing = '"'
			} else if state == stateBracket {
				closing = ']'
			}
			if ch == closing {
				if i+1 < len(sql) && sql[i+1] == closing {
					i++
					continue
				}
				state = stateNone
			}

		case stateLineComment:
			if ch == '\n' {
				state = stateNone
			}

		case stateBlockComment:
			if ch == '*' && i+1 < len(sql) && sql[i+1] == '/' {
				i++
				state = stateNone
			}

		default:
			switch {
			case ch == '\'':
				state = stateSingleQuote
			case ch == '"':
				state = stateDoubleQuote
			case ch == '[':
				state = stateBracket
			case ch == '-' && i+1 < len(sql) && sql[i+1] == '-':
				i++
				state = stateLineComment
			case ch == '/' && i+1 < len(sql) && sql[i+1] == '*':
				i++
				state = stateBlockComment
			case ch == '?':
				if i+1 < len(sql) && isDigit(sql[i+1]) {
					continue
				}
				count++
			}
		}
	}
	return count
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
