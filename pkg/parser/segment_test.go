package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlseg/pkg/ast"
	"github.com/leapstack-labs/sqlseg/pkg/cst"
	"github.com/leapstack-labs/sqlseg/pkg/parser"
)

// segmentKinds describes each segment as "raw:<text>" or "stmt:<text>".
func segmentKinds(s *ast.SegmentedStatement) []string {
	var out []string
	for _, seg := range s.Segments {
		switch seg := seg.(type) {
		case *ast.RawFragment:
			out = append(out, "raw:"+seg.SQLText)
		case *ast.StatementSegment:
			out = append(out, "stmt:"+seg.SQLText)
		}
	}
	return out
}

func TestSegmentSelectStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{
			name: "select inside parentheses",
			sql:  "CREATE VIEW v AS (SELECT a FROM t WHERE b = ?)",
			want: []string{"raw:CREATE VIEW v AS (", "stmt:SELECT a FROM t WHERE b = ?", "raw:)"},
		},
		{
			name: "first candidate and union all",
			sql:  "CREATE TABLE x AS SELECT 1 UNION ALL SELECT 2",
			want: []string{"raw:CREATE TABLE x AS ", "stmt:SELECT 1 ", "raw:UNION ALL ", "stmt:SELECT 2"},
		},
		{
			name: "several parenthesized regions",
			sql:  "MERGE (select 1) WITH (SELECT b FROM c)",
			want: []string{"raw:MERGE (", "stmt:select 1", "raw:) WITH (", "stmt:SELECT b FROM c", "raw:)"},
		},
		{
			name: "quoted keyword ignored",
			sql:  "COMMENT 'select' ON (SELECT 1)",
			want: []string{"raw:COMMENT 'select' ON (", "stmt:SELECT 1", "raw:)"},
		},
		{
			name: "leading select with unsupported tail",
			sql:  "SELECT 1 (SELECT 2)",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg, err := parser.SegmentSelectStatements(tt.sql, cst.Default, parser.Visitor{})
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, seg)
				return
			}
			require.NotNil(t, seg)
			assert.Equal(t, tt.want, segmentKinds(seg))
			assert.Equal(t, tt.sql, seg.SourceText())
		})
	}
}

func TestSegmentSelectStatements_Fails(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"no select", "DROP TABLE t"},
		{"identifier containing select", "DROP TABLE selection"},
		{"empty", ""},
		{"region does not parse", "CREATE VIEW v AS SELECT 1; SELECT 2"},
		{"region is compound", "CREATE VIEW v AS (SELECT 1 INTERSECT SELECT 2)"},
		{"only candidates in strings", "PRINT 'select 1'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg, err := parser.SegmentSelectStatements(tt.sql, cst.Default, parser.Visitor{})
			require.NoError(t, err)
			assert.Nil(t, seg)
		})
	}
}

func TestFindSelectBoundary(t *testing.T) {
	tests := []struct {
		name  string
		sql   string
		start int
		want  int
	}{
		{"end of input", "SELECT a FROM t", 0, 15},
		{"before union", "SELECT 1 UNION SELECT 2", 0, 9},
		{"before closing paren", "(SELECT (1) ) x", 1, 12},
		{"paren in string", "SELECT ')' FROM t", 0, 17},
		{"union inside parens", "SELECT (SELECT 1 UNION SELECT 2)", 0, 32},
		{"union as part of name", "SELECT a FROM t_union", 0, 21},
		{"case insensitive union", "select 1 uNiOn select 2", 0, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.FindSelectBoundary(tt.sql, tt.start))
		})
	}
}
