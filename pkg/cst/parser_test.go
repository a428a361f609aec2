package cst_test

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/sqlseg/pkg/cst"
	"github.com/leapstack-labs/sqlseg/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCST_Accepts(t *testing.T) {
	tests := []string{
		"SELECT 1",
		"SELECT 1;",
		"select a, b AS c, t.* FROM t",
		"SELECT DISTINCT a FROM s.t AS x WHERE a = ? AND b <> ?2",
		"SELECT * FROM a LEFT OUTER JOIN b ON a.id = b.id JOIN c USING (id)",
		"SELECT * FROM (SELECT 1) AS sub, ((t)) x",
		"WITH RECURSIVE r(n) AS (SELECT 1 UNION ALL SELECT n + 1 FROM r) SELECT n FROM r",
		"SELECT 1 UNION SELECT 2 INTERSECT SELECT 3 EXCEPT SELECT 4 ORDER BY 1 LIMIT 1 OFFSET 2",
		"SELECT a FROM t GROUP BY a HAVING count(*) > 1",
		"SELECT row_number() OVER (PARTITION BY a ORDER BY b DESC NULLS LAST ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) FROM t",
		"SELECT sum(a) OVER w FROM t WINDOW w AS (ORDER BY b RANGE 3 PRECEDING)",
		"SELECT CASE WHEN a THEN 1 WHEN b THEN 2 ELSE 3 END, CASE x WHEN 1 THEN 'one' END",
		"SELECT a FROM t WHERE a NOT BETWEEN 1 AND 2 OR b IN (1, 2) OR c NOT IN (SELECT c FROM u)",
		"SELECT a FROM t WHERE NOT EXISTS (SELECT 1) AND b LIKE 'x%' AND c IS NOT NULL",
		"SELECT -a * (b + c) % 2, d -> 'k' ->> 'v' FROM t",
		"INSERT INTO t (a, b) VALUES (1, ?), (2, ?)",
		"INSERT INTO t SELECT * FROM u",
		"INSERT INTO t(a) VALUES (1) ON CONFLICT DO NOTHING",
		"INSERT INTO t(a) VALUES (1) ON CONFLICT(a) DO UPDATE SET a = 2 WHERE a > 0",
		"UPDATE t SET a = 1, b = ? WHERE c = ?",
		"DELETE FROM t WHERE a = 1",
		"DELETE FROM t",
		`SELECT "quoted ""name""", [bracketed] FROM "t"`,
		"SELECT o.end, t.order, Mixed.Case FROM s.select WHERE o.id = ?",
	}

	for _, sql := range tests {
		t.Run(sql, func(t *testing.T) {
			root, err := cst.ParseWithError(sql)
			require.NoError(t, err)
			require.NotNil(t, root)
			assert.Equal(t, cst.Statement, root.Kind)
		})
	}
}

func TestParseCST_Rejects(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"SELECT",
		"SELECT 1 2",
		"SELECT a FROM",
		"CREATE TABLE t (a INT)",
		"SELECT 1; SELECT 2",
		"SELECT CASE END",
		"SELECT (1",
		"UPDATE t SET",
		"INSERT INTO t DEFAULT VALUES",
	}

	for _, sql := range tests {
		t.Run(sql, func(t *testing.T) {
			assert.Nil(t, cst.ParseCST(sql))
		})
	}
}

func TestParseCST_RawRegions(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		clause cst.Kind
		want   string
	}{
		{
			name:   "where condition",
			sql:    "SELECT * FROM t WHERE a ~ b ORDER BY a",
			clause: cst.WhereClause,
			want:   "a ~ b",
		},
		{
			name:   "having condition",
			sql:    "SELECT a FROM t GROUP BY a HAVING a @> b",
			clause: cst.HavingClause,
			want:   "a @> b",
		},
		{
			name:   "limit value",
			sql:    "SELECT a FROM t LIMIT 10, 20",
			clause: cst.LimitClause,
			want:   "10, 20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := cst.ParseCST(tt.sql)
			require.NotNil(t, root)

			sel := root.Child(cst.SelectStatement)
			require.NotNil(t, sel)
			clause := sel.Child(tt.clause)
			if clause == nil {
				clause = sel.Child(cst.SelectCore).Child(tt.clause)
			}
			require.NotNil(t, clause)

			raw := clause.Child(cst.Raw)
			require.NotNil(t, raw)
			assert.Equal(t, tt.want, raw.Text)
			assert.Equal(t, tt.want, raw.SourceText(tt.sql))
		})
	}
}

func TestParseCST_RawRelation(t *testing.T) {
	sql := "SELECT * FROM generate_series(1, 10) g JOIN t ON t.n = g.n"
	root := cst.ParseCST(sql)
	require.NotNil(t, root)

	from := root.Child(cst.SelectStatement).Child(cst.SelectCore).Child(cst.FromClause)
	require.NotNil(t, from)
	item := from.Child(cst.FromItem)
	require.NotNil(t, item)

	raw := item.Child(cst.Raw)
	require.NotNil(t, raw)
	assert.Equal(t, "generate_series(1, 10) g", raw.Text)
	assert.Len(t, item.ChildrenOf(cst.JoinClause), 1)
}

func TestParseCST_CompoundShape(t *testing.T) {
	root := cst.ParseCST("SELECT 1 UNION ALL SELECT 2 UNION SELECT 3")
	require.NotNil(t, root)

	sel := root.Child(cst.SelectStatement)
	assert.Len(t, sel.ChildrenOf(cst.SelectCore), 3)

	ops := sel.ChildrenOf(cst.CompoundOperator)
	require.Len(t, ops, 2)
	assert.True(t, ops[0].HasToken(token.ALL))
	assert.False(t, ops[1].HasToken(token.ALL))
}

func TestParseCST_CaseShape(t *testing.T) {
	root := cst.ParseCST("SELECT CASE x WHEN 1 THEN 'a' WHEN 2 THEN 'b' ELSE 'c' END")
	require.NotNil(t, root)

	col := root.Child(cst.SelectStatement).Child(cst.SelectCore).Child(cst.ResultColumn)
	require.NotNil(t, col)
	pred := col.Child(cst.AtomicPredicate)
	require.NotNil(t, pred)
	caseNode := pred.Child(cst.CaseExpression)
	require.NotNil(t, caseNode)

	var when, then int
	for _, c := range caseNode.Children {
		switch {
		case c.IsTerminal(token.WHEN):
			when++
		case c.IsTerminal(token.THEN):
			then++
		}
	}
	assert.Equal(t, 2, when)
	assert.Equal(t, 2, then)
	assert.True(t, caseNode.HasToken(token.ELSE))
	assert.Equal(t, cst.AtomicPredicate, caseNode.Children[1].Kind)
}

func TestParseCST_Spans(t *testing.T) {
	sql := "  SELECT a FROM t ;  "
	root := cst.ParseCST(sql)
	require.NotNil(t, root)

	assert.Equal(t, "SELECT a FROM t ;", root.SourceText(sql))
	assert.Equal(t, "SELECT a FROM t", root.Child(cst.SelectStatement).SourceText(sql))
}

func TestParseWithError(t *testing.T) {
	_, err := cst.ParseWithError("SELECT a FROM")
	require.Error(t, err)

	var perr *cst.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 13, perr.Pos.Offset)
	assert.Contains(t, err.Error(), "line 1")
}

func TestParseExpression(t *testing.T) {
	expr, err := cst.ParseExpression("a + 1 > ?")
	require.NoError(t, err)
	assert.Equal(t, cst.AtomicPredicate, expr.Kind)

	_, err = cst.ParseExpression("a +")
	assert.Error(t, err)
}

func TestParseCST_DeepNesting(t *testing.T) {
	sql := "SELECT "
	for range 2000 {
		sql += "("
	}
	assert.Nil(t, cst.ParseCST(sql+"1"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "select_core", cst.SelectCore.String())
	assert.Equal(t, "raw", cst.Raw.String())
	assert.Equal(t, "Kind(9999)", cst.Kind(9999).String())
}

func TestProviderFunc(t *testing.T) {
	called := false
	var p cst.Provider = cst.ProviderFunc(func(sql string) *cst.Node {
		called = true
		return nil
	})
	assert.Nil(t, p.ParseCST("SELECT 1"))
	assert.True(t, called)

	assert.NotNil(t, cst.Default.ParseCST("SELECT 1"))
}
