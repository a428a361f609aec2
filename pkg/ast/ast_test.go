package ast_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlseg/pkg/ast"
)

func param(text string) *ast.Parameter {
	return &ast.Parameter{Placeholder: text, Position: ast.UnresolvedPosition}
}

func num(v string) *ast.Literal {
	return &ast.Literal{Type: ast.LiteralNumber, Value: v}
}

// sample is SELECT ?1, a FROM t WHERE b = ? LIMIT <raw ?>.
func sample() *ast.SelectStatement {
	return &ast.SelectStatement{
		Projection: []ast.SelectItem{
			&ast.SelectExpression{Expression: param("?1")},
			&ast.SelectExpression{Expression: &ast.ColumnReference{Path: []*ast.Identifier{ast.Ident("a")}}},
		},
		FromClauses: []*ast.FromClause{{Relation: &ast.TableReference{Name: ast.Ident("t")}}},
		Where: &ast.BinaryExpression{
			Left:     &ast.ColumnReference{Path: []*ast.Identifier{ast.Ident("b")}},
			Operator: ast.OpEq,
			Right:    param("?"),
		},
		Limit: &ast.RawFragment{SQLText: "?, 10"},
	}
}

func TestMarshalJSON_NodeKind(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{
			name: "empty struct",
			node: &ast.SelectStar{},
			want: `{"node_kind":"select_star"}`,
		},
		{
			name: "parameter",
			node: &ast.Parameter{Placeholder: "?2", Position: 1},
			want: `{"node_kind":"parameter","placeholder":"?2","position":1}`,
		},
		{
			name: "number literal",
			node: num("42"),
			want: `{"node_kind":"literal","literal_type":"number","value":42}`,
		},
		{
			name: "number literal that is not json",
			node: num(".5"),
			want: `{"node_kind":"literal","literal_type":"number","value":".5"}`,
		},
		{
			name: "boolean literal",
			node: &ast.Literal{Type: ast.LiteralBoolean, Value: "true"},
			want: `{"node_kind":"literal","literal_type":"boolean","value":true}`,
		},
		{
			name: "null literal",
			node: &ast.Literal{Type: ast.LiteralNull, Value: "null"},
			want: `{"node_kind":"literal","literal_type":"null","value":null}`,
		},
		{
			name: "raw fragment",
			node: &ast.RawFragment{SQLText: "x ~ y"},
			want: `{"node_kind":"raw_fragment","sql_text":"x ~ y"}`,
		},
		{
			name: "do nothing",
			node: &ast.OnConflictClause{Action: &ast.OnConflictDoNothing{}},
			want: `{"node_kind":"on_conflict_clause","target":null,"action":{"node_kind":"on_conflict_do_nothing"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.node)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestMarshalJSON_Nested(t *testing.T) {
	data, err := json.Marshal(sample())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "select_statement", decoded["node_kind"])

	where := decoded["where_clause"].(map[string]any)
	assert.Equal(t, "binary_expression", where["node_kind"])
	assert.Equal(t, "=", where["operator"])

	limit := decoded["limit"].(map[string]any)
	assert.Equal(t, "raw_fragment", limit["node_kind"])
}

func TestWalk_LexicalOrder(t *testing.T) {
	var kinds []ast.NodeKind
	ast.Walk(sample(), func(n ast.Node) bool {
		switch n.(type) {
		case *ast.Parameter, *ast.RawFragment, *ast.TableReference:
			kinds = append(kinds, n.Kind())
		}
		return true
	})
	assert.Equal(t, []ast.NodeKind{
		ast.KindParameter,
		ast.KindTableReference,
		ast.KindParameter,
		ast.KindRawFragment,
	}, kinds)
}

func TestWalk_SkipChildren(t *testing.T) {
	params := 0
	ast.Walk(sample(), func(n ast.Node) bool {
		if _, ok := n.(*ast.BinaryExpression); ok {
			return false
		}
		if _, ok := n.(*ast.Parameter); ok {
			params++
		}
		return true
	})
	assert.Equal(t, 1, params)
}

func TestWalk_TypedNil(t *testing.T) {
	var with *ast.WithClause
	assert.NotPanics(t, func() {
		ast.Walk(with, func(ast.Node) bool { return true })
		ast.Walk(&ast.CompoundSelect{}, func(ast.Node) bool { return true })
	})
}

func TestParameters(t *testing.T) {
	params := ast.Parameters(sample())
	require.Len(t, params, 2)
	assert.Equal(t, "?1", params[0].Placeholder)
	assert.Equal(t, "?", params[1].Placeholder)

	raws := ast.RawFragments(sample())
	require.Len(t, raws, 1)
	assert.Equal(t, "?, 10", raws[0].SQLText)
}

func TestClone(t *testing.T) {
	orig := sample()
	cp := ast.Clone(orig).(*ast.SelectStatement)
	require.Equal(t, orig, cp)

	ast.Parameters(cp)[0].Position = 7
	cp.Projection[1].(*ast.SelectExpression).Expression.(*ast.ColumnReference).Path[0].Name = "z"

	assert.Equal(t, ast.UnresolvedPosition, ast.Parameters(orig)[0].Position)
	assert.Equal(t, "a", orig.Projection[1].(*ast.SelectExpression).Expression.(*ast.ColumnReference).Path[0].Name)
	assert.Nil(t, cp.With)
	assert.Nil(t, ast.Clone(nil))
}

func TestSegmentedStatement_SourceText(t *testing.T) {
	s := &ast.SegmentedStatement{Segments: []ast.Segment{
		&ast.RawFragment{SQLText: "CREATE VIEW v AS ("},
		&ast.StatementSegment{Statement: sample(), SQLText: "SELECT 1"},
		&ast.RawFragment{SQLText: ")"},
	}}
	assert.Equal(t, "CREATE VIEW v AS (SELECT 1)", s.SourceText())
	assert.Empty(t, (&ast.SegmentedStatement{}).SourceText())
}
