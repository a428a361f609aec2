// Package parser turns SQL text into segmented AST statements.
//
// # Usage
//
//	stmts, err := parser.Parse("SELECT a FROM t WHERE b = ?")
//	if err != nil {
//	    // grammar and visitor disagree; never caused by the input text
//	}
//
// Parse is total: any input, including empty or binary text, yields one
// SegmentedStatement. It tries three strategies in order:
//
//  1. the full grammar, giving a single statement segment
//  2. segmentation, giving SELECT segments mixed with raw fragments
//  3. a single raw fragment holding the whole input
//
// Parameter positions are then resolved once over the result.
package parser

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlseg/pkg/ast"
	"github.com/leapstack-labs/sqlseg/pkg/cst"
)

// Parser runs the parse strategies with a grammar provider. It holds only
// configuration and is safe for concurrent use.
type Parser struct {
	provider cst.Provider
	visitor  Visitor
	logger   *slog.Logger
}

// Config holds parser configuration.
type Config struct {
	// Provider produces the concrete syntax tree (optional, uses cst.Default if nil)
	Provider cst.Provider
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates a parser.
func New(cfg Config) *Parser {
	provider := cfg.Provider
	if provider == nil {
		provider = cst.Default
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{provider: provider, logger: logger}
}

var defaultParser = New(Config{})

// Parse parses sql with the default grammar. The result always holds
// exactly one SegmentedStatement. The error is non-nil only for an
// *InvariantError.
func Parse(sql string) ([]*ast.SegmentedStatement, error) {
	return defaultParser.Parse(sql)
}

// MustParse is like Parse but panics on error.
func MustParse(sql string) []*ast.SegmentedStatement {
	stmts, err := Parse(sql)
	if err != nil {
		panic(fmt.Sprintf("parser: Parse(%q): %v", sql, err))
	}
	return stmts
}

// Parse parses sql. See the package documentation for the strategies.
func (p *Parser) Parse(sql string) ([]*ast.SegmentedStatement, error) {
	seg, err := p.segment(sql)
	if err != nil {
		return nil, err
	}
	r := &resolver{}
	r.resolve(seg)
	return []*ast.SegmentedStatement{seg}, nil
}

func (p *Parser) segment(sql string) (*ast.SegmentedStatement, error) {
	if root := p.provider.ParseCST(sql); root != nil {
		stmt, err := p.visitor.Statement(root)
		if err == nil {
			return &ast.SegmentedStatement{Segments: []ast.Segment{
				&ast.StatementSegment{Statement: stmt, SQLText: sql},
			}}, nil
		}
		if !isUnsupported(err) {
			return nil, fmt.Errorf("converting statement: %w", err)
		}
		p.logger.Debug("visitor rejected statement", "error", err.Error())
	} else {
		p.logger.Debug("full grammar rejected input", "len", len(sql))
	}

	seg, err := SegmentSelectStatements(sql, p.provider, p.visitor)
	if err != nil {
		return nil, fmt.Errorf("converting segment: %w", err)
	}
	if seg != nil {
		p.logger.Debug("segmentation fallback succeeded", "segments", len(seg.Segments))
		return seg, nil
	}

	p.logger.Debug("segmentation fallback failed", "len", len(sql))
	return &ast.SegmentedStatement{Segments: []ast.Segment{&ast.RawFragment{SQLText: sql}}}, nil
}

// NormalizeSegmentedStatement returns a copy of s with every parameter
// position recomputed from scratch. It does not modify s and is
// idempotent.
func NormalizeSegmentedStatement(s *ast.SegmentedStatement) *ast.SegmentedStatement {
	if s == nil {
		return nil
	}
	return ResolvePositions(s)
}

// NormalizeSegmentedStatements applies NormalizeSegmentedStatement to each
// element.
func NormalizeSegmentedStatements(ss []*ast.SegmentedStatement) []*ast.SegmentedStatement {
	if ss == nil {
		return nil
	}
	out := make([]*ast.SegmentedStatement, len(ss))
	for i, s := range ss {
		out[i] = NormalizeSegmentedStatement(s)
	}
	return out
}
