package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlseg/pkg/ast"
	"github.com/leapstack-labs/sqlseg/pkg/cst"
	"github.com/leapstack-labs/sqlseg/pkg/parser"
)

func convert(t *testing.T, sql string) ast.Statement {
	t.Helper()
	root, err := cst.ParseWithError(sql)
	require.NoError(t, err, "grammar rejected %q", sql)
	stmt, err := parser.Visitor{}.Statement(root)
	require.NoError(t, err)
	return stmt
}

func convertSelect(t *testing.T, sql string) *ast.SelectStatement {
	t.Helper()
	sel, ok := convert(t, sql).(*ast.SelectStatement)
	require.True(t, ok, "expected select_statement for %q", sql)
	return sel
}

// firstExpr returns the expression of the first projection item.
func firstExpr(t *testing.T, sql string) ast.Expression {
	t.Helper()
	sel := convertSelect(t, sql)
	require.NotEmpty(t, sel.Projection)
	item, ok := sel.Projection[0].(*ast.SelectExpression)
	require.True(t, ok)
	return item.Expression
}

func col(parts ...string) *ast.ColumnReference {
	ref := &ast.ColumnReference{}
	for _, p := range parts {
		ref.Path = append(ref.Path, ast.Ident(p))
	}
	return ref
}

func numLit(v string) *ast.Literal {
	return &ast.Literal{Type: ast.LiteralNumber, Value: v}
}

func TestVisitor_CompoundSelect(t *testing.T) {
	tests := []struct {
		sql  string
		want []ast.CompoundOperator
	}{
		{"SELECT 1 UNION SELECT 2", []ast.CompoundOperator{ast.CompoundUnion}},
		{"SELECT 1 UNION ALL SELECT 2", []ast.CompoundOperator{ast.CompoundUnionByVersion}},
		{"SELECT 1 UNION DISTINCT SELECT 2", []ast.CompoundOperator{ast.CompoundUnion}},
		{"SELECT 1 INTERSECT SELECT 2", []ast.CompoundOperator{ast.CompoundIntersect}},
		{"SELECT 1 EXCEPT SELECT 2 UNION ALL SELECT 3", []ast.CompoundOperator{ast.CompoundExcept, ast.CompoundUnionByVersion}},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			compound, ok := convert(t, tt.sql).(*ast.CompoundSelect)
			require.True(t, ok)
			require.Len(t, compound.Branches, len(tt.want))
			for i, op := range tt.want {
				assert.Equal(t, op, compound.Branches[i].Operator)
			}
		})
	}
}

func TestVisitor_CompoundShape(t *testing.T) {
	compound, ok := convert(t, "SELECT 1 UNION SELECT 2 ORDER BY 1 LIMIT 5").(*ast.CompoundSelect)
	require.True(t, ok)

	assert.Equal(t, []ast.SelectItem{&ast.SelectExpression{Expression: numLit("1")}}, compound.First.Projection)
	require.Len(t, compound.Branches, 1)
	assert.Equal(t, []ast.SelectItem{&ast.SelectExpression{Expression: numLit("2")}}, compound.Branches[0].Select.Projection)

	// trailing clauses belong to the compound, not to a core
	require.Len(t, compound.OrderBy, 1)
	assert.Equal(t, numLit("5"), compound.Limit)
	assert.Nil(t, compound.First.OrderBy)
	assert.Nil(t, compound.First.Limit)
	assert.Nil(t, compound.Branches[0].Select.Limit)
}

func TestVisitor_SingleCoreTakesTrailingClauses(t *testing.T) {
	sel := convertSelect(t, "WITH RECURSIVE c(n) AS (SELECT 1) SELECT DISTINCT n FROM c ORDER BY n DESC NULLS LAST LIMIT 3 OFFSET 1")

	require.NotNil(t, sel.With)
	assert.True(t, sel.With.Recursive)
	require.Len(t, sel.With.CTEs, 1)
	assert.Equal(t, "c", sel.With.CTEs[0].Name.Name)
	assert.Equal(t, []*ast.Identifier{ast.Ident("n")}, sel.With.CTEs[0].Columns)

	assert.True(t, sel.Distinct)
	require.Len(t, sel.OrderBy, 1)
	assert.Equal(t, ast.SortDesc, sel.OrderBy[0].Direction)
	assert.Equal(t, ast.NullsLast, sel.OrderBy[0].Nulls)
	assert.Equal(t, numLit("3"), sel.Limit)
	assert.Equal(t, numLit("1"), sel.Offset)
}

func TestVisitor_Projection(t *testing.T) {
	sel := convertSelect(t, "SELECT *, t.*, a AS x, b y FROM t")
	require.Len(t, sel.Projection, 4)

	assert.Equal(t, &ast.SelectStar{}, sel.Projection[0])
	assert.Equal(t, &ast.SelectQualifiedStar{Qualifier: ast.Ident("t")}, sel.Projection[1])
	assert.Equal(t, &ast.SelectExpression{Expression: col("a"), Alias: ast.Ident("x")}, sel.Projection[2])
	assert.Equal(t, &ast.SelectExpression{Expression: col("b"), Alias: ast.Ident("y")}, sel.Projection[3])
}

func TestVisitor_Predicates(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want ast.Expression
	}{
		{
			name: "comparison",
			sql:  "SELECT a = 1",
			want: &ast.BinaryExpression{Left: col("a"), Operator: ast.OpEq, Right: numLit("1")},
		},
		{
			name: "not equal bang",
			sql:  "SELECT a != 1",
			want: &ast.BinaryExpression{Left: col("a"), Operator: ast.OpNotEq, Right: numLit("1")},
		},
		{
			name: "not equal angle",
			sql:  "SELECT a <> 1",
			want: &ast.BinaryExpression{Left: col("a"), Operator: ast.OpNotEqAlt, Right: numLit("1")},
		},
		{
			name: "not",
			sql:  "SELECT NOT a",
			want: &ast.UnaryExpression{Operator: ast.OpNot, Operand: col("a")},
		},
		{
			name: "between",
			sql:  "SELECT a NOT BETWEEN 1 AND 2",
			want: &ast.BetweenExpression{Operand: col("a"), Start: numLit("1"), End: numLit("2"), Negated: true},
		},
		{
			name: "in list",
			sql:  "SELECT a IN (1, 2)",
			want: &ast.InListExpression{Operand: col("a"), Items: []ast.Expression{numLit("1"), numLit("2")}},
		},
		{
			name: "like",
			sql:  "SELECT a LIKE 'x%'",
			want: &ast.BinaryExpression{Left: col("a"), Operator: ast.OpLike, Right: &ast.Literal{Type: ast.LiteralString, Value: "x%"}},
		},
		{
			name: "not like",
			sql:  "SELECT a NOT LIKE 'x'",
			want: &ast.BinaryExpression{Left: col("a"), Operator: ast.OpNotLike, Right: &ast.Literal{Type: ast.LiteralString, Value: "x"}},
		},
		{
			name: "is null",
			sql:  "SELECT a IS NULL",
			want: &ast.BinaryExpression{Left: col("a"), Operator: ast.OpIs, Right: &ast.Literal{Type: ast.LiteralNull, Value: "null"}},
		},
		{
			name: "is not null",
			sql:  "SELECT a IS NOT NULL",
			want: &ast.BinaryExpression{Left: col("a"), Operator: ast.OpIsNot, Right: &ast.Literal{Type: ast.LiteralNull, Value: "null"}},
		},
		{
			name: "grouped",
			sql:  "SELECT (a)",
			want: &ast.GroupedExpression{Expression: col("a")},
		},
		{
			name: "and binds tighter than or",
			sql:  "SELECT a OR b AND c",
			want: &ast.BinaryExpression{
				Left:     col("a"),
				Operator: ast.OpOr,
				Right:    &ast.BinaryExpression{Left: col("b"), Operator: ast.OpAnd, Right: col("c")},
			},
		},
		{
			name: "left fold",
			sql:  "SELECT a - b - c",
			want: &ast.BinaryExpression{
				Left:     &ast.BinaryExpression{Left: col("a"), Operator: ast.OpSub, Right: col("b")},
				Operator: ast.OpSub,
				Right:    col("c"),
			},
		},
		{
			name: "json",
			sql:  "SELECT doc->>'k'",
			want: &ast.BinaryExpression{Left: col("doc"), Operator: ast.OpJSONGetTxt, Right: &ast.Literal{Type: ast.LiteralString, Value: "k"}},
		},
		{
			name: "unary minus",
			sql:  "SELECT -a * 2",
			want: &ast.BinaryExpression{
				Left:     &ast.UnaryExpression{Operator: ast.OpMinus, Operand: col("a")},
				Operator: ast.OpMul,
				Right:    numLit("2"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstExpr(t, tt.sql))
		})
	}
}

func TestVisitor_Subqueries(t *testing.T) {
	in, ok := firstExpr(t, "SELECT a IN (SELECT b FROM t)").(*ast.InListExpression)
	require.True(t, ok)
	require.Len(t, in.Items, 1)
	_, ok = in.Items[0].(*ast.SubqueryExpression)
	assert.True(t, ok)

	exists, ok := firstExpr(t, "SELECT EXISTS (SELECT 1)").(*ast.ExistsExpression)
	require.True(t, ok)
	assert.Equal(t, ast.KindSelectStatement, exists.Statement.Kind())

	sub, ok := firstExpr(t, "SELECT (SELECT 1 UNION SELECT 2)").(*ast.SubqueryExpression)
	require.True(t, ok)
	assert.Equal(t, ast.KindCompoundSelect, sub.Statement.Kind())
}

func TestVisitor_Literals(t *testing.T) {
	tests := []struct {
		sql  string
		want ast.Expression
	}{
		{"SELECT 'it''s'", &ast.Literal{Type: ast.LiteralString, Value: "it's"}},
		{"SELECT 1.5e3", numLit("1.5e3")},
		{"SELECT TRUE", &ast.Literal{Type: ast.LiteralBoolean, Value: "true"}},
		{"SELECT false", &ast.Literal{Type: ast.LiteralBoolean, Value: "false"}},
		{"SELECT NULL", &ast.Literal{Type: ast.LiteralNull, Value: "null"}},
		{`SELECT "a""b"`, &ast.ColumnReference{Path: []*ast.Identifier{{Name: `a"b`, Quoted: true}}}},
		{"SELECT [a]]b]", &ast.ColumnReference{Path: []*ast.Identifier{{Name: "a]b", Quoted: true}}}},
		{"SELECT Mixed.Case", col("Mixed", "Case")},
		{"SELECT o.end", col("o", "end")},
		{"SELECT t.order", col("t", "order")},
		{"SELECT rows", col("rows")},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			assert.Equal(t, tt.want, firstExpr(t, tt.sql))
		})
	}
}

func TestVisitor_FunctionsAndWindows(t *testing.T) {
	fn, ok := firstExpr(t, "SELECT count(*)").(*ast.FunctionCall)
	require.True(t, ok)
	assert.Equal(t, []ast.Expression{&ast.AllColumns{}}, fn.Arguments)
	assert.Nil(t, fn.Over)

	fn, ok = firstExpr(t, "SELECT count(DISTINCT a, b)").(*ast.FunctionCall)
	require.True(t, ok)
	assert.True(t, fn.Distinct)
	assert.Len(t, fn.Arguments, 2)

	fn, ok = firstExpr(t, "SELECT now()").(*ast.FunctionCall)
	require.True(t, ok)
	assert.Empty(t, fn.Arguments)

	fn, ok = firstExpr(t, "SELECT sum(a) OVER w FROM t WINDOW w AS (PARTITION BY b)").(*ast.FunctionCall)
	require.True(t, ok)
	assert.Equal(t, &ast.WindowReference{Name: ast.Ident("w")}, fn.Over)

	fn, ok = firstExpr(t, "SELECT sum(a) OVER (base PARTITION BY b ORDER BY c ROWS BETWEEN 2 PRECEDING AND CURRENT ROW)").(*ast.FunctionCall)
	require.True(t, ok)
	spec, ok := fn.Over.(*ast.WindowSpecification)
	require.True(t, ok)
	assert.Equal(t, ast.Ident("base"), spec.Name)
	assert.Equal(t, []ast.Expression{col("b")}, spec.PartitionBy)
	require.Len(t, spec.OrderBy, 1)
	assert.Equal(t, &ast.WindowFrame{
		Unit:  ast.FrameRows,
		Start: &ast.FrameBound{BoundType: ast.BoundPreceding, Offset: numLit("2")},
		End:   &ast.FrameBound{BoundType: ast.BoundCurrentRow},
	}, spec.Frame)

	fn, ok = firstExpr(t, "SELECT sum(a) OVER (RANGE UNBOUNDED PRECEDING)").(*ast.FunctionCall)
	require.True(t, ok)
	spec = fn.Over.(*ast.WindowSpecification)
	assert.Equal(t, &ast.WindowFrame{
		Unit:  ast.FrameRange,
		Start: &ast.FrameBound{BoundType: ast.BoundUnboundedPreceding},
	}, spec.Frame)
}

func TestVisitor_WindowDefinitions(t *testing.T) {
	sel := convertSelect(t, "SELECT sum(a) OVER w FROM t WINDOW w AS (ORDER BY a GROUPS 1 FOLLOWING)")
	require.Len(t, sel.Windows, 1)
	assert.Equal(t, ast.Ident("w"), sel.Windows[0].Name)
	assert.Equal(t, ast.FrameGroups, sel.Windows[0].Specification.Frame.Unit)
	assert.Equal(t, ast.BoundFollowing, sel.Windows[0].Specification.Frame.Start.BoundType)
}

func TestVisitor_Case(t *testing.T) {
	searched, ok := firstExpr(t, "SELECT CASE WHEN a THEN 1 WHEN b THEN 2 ELSE 3 END").(*ast.CaseExpression)
	require.True(t, ok)
	assert.Nil(t, searched.Operand)
	assert.Equal(t, []*ast.CaseBranch{
		{Condition: col("a"), Result: numLit("1")},
		{Condition: col("b"), Result: numLit("2")},
	}, searched.Branches)
	assert.Equal(t, numLit("3"), searched.ElseResult)

	simple, ok := firstExpr(t, "SELECT CASE x WHEN 1 THEN 'one' END").(*ast.CaseExpression)
	require.True(t, ok)
	assert.Equal(t, col("x"), simple.Operand)
	assert.Len(t, simple.Branches, 1)
	assert.Nil(t, simple.ElseResult)
}

func TestVisitor_FromClause(t *testing.T) {
	sel := convertSelect(t, "SELECT 1 FROM s.t AS a JOIN u ON a.id = u.id LEFT OUTER JOIN v USING (id), w")
	require.Len(t, sel.FromClauses, 2)

	first := sel.FromClauses[0]
	assert.Equal(t, &ast.TableReference{Schema: ast.Ident("s"), Name: ast.Ident("t"), Alias: ast.Ident("a")}, first.Relation)
	require.Len(t, first.Joins, 2)
	assert.Equal(t, ast.JoinInner, first.Joins[0].JoinType)
	assert.Equal(t, &ast.TableReference{Name: ast.Ident("u")}, first.Joins[0].Relation)
	assert.Equal(t, &ast.BinaryExpression{Left: col("a", "id"), Operator: ast.OpEq, Right: col("u", "id")}, first.Joins[0].On)
	assert.Equal(t, ast.JoinLeft, first.Joins[1].JoinType)
	assert.Equal(t, []*ast.Identifier{ast.Ident("id")}, first.Joins[1].Using)

	assert.Equal(t, &ast.TableReference{Name: ast.Ident("w")}, sel.FromClauses[1].Relation)
}

func TestVisitor_KeywordAfterDot(t *testing.T) {
	sel := convertSelect(t, "SELECT 1 FROM s.select")
	require.Len(t, sel.FromClauses, 1)
	assert.Equal(t, &ast.TableReference{Schema: ast.Ident("s"), Name: ast.Ident("select")}, sel.FromClauses[0].Relation)
}

func TestVisitor_JoinTypes(t *testing.T) {
	tests := []struct {
		sql  string
		want ast.JoinType
	}{
		{"SELECT 1 FROM a JOIN b ON x", ast.JoinInner},
		{"SELECT 1 FROM a INNER JOIN b ON x", ast.JoinInner},
		{"SELECT 1 FROM a LEFT JOIN b ON x", ast.JoinLeft},
		{"SELECT 1 FROM a RIGHT OUTER JOIN b ON x", ast.JoinRight},
		{"SELECT 1 FROM a FULL JOIN b ON x", ast.JoinFull},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			sel := convertSelect(t, tt.sql)
			require.Len(t, sel.FromClauses[0].Joins, 1)
			assert.Equal(t, tt.want, sel.FromClauses[0].Joins[0].JoinType)
		})
	}
}

func TestVisitor_NestedRelations(t *testing.T) {
	sel := convertSelect(t, "SELECT 1 FROM ((t) x)")
	assert.Equal(t, &ast.TableReference{Name: ast.Ident("t"), Alias: ast.Ident("x")}, sel.FromClauses[0].Relation)

	sel = convertSelect(t, "SELECT 1 FROM (t a) b")
	assert.Equal(t, &ast.TableReference{Name: ast.Ident("t"), Alias: ast.Ident("b")}, sel.FromClauses[0].Relation)

	sel = convertSelect(t, "SELECT 1 FROM ((SELECT 2)) AS sq")
	sub, ok := sel.FromClauses[0].Relation.(*ast.Subquery)
	require.True(t, ok)
	assert.Equal(t, ast.Ident("sq"), sub.Alias)
	assert.Equal(t, ast.KindSelectStatement, sub.Statement.Kind())
}

func TestVisitor_RawRegions(t *testing.T) {
	sel := convertSelect(t, "SELECT a FROM generate_series(1, 10) g WHERE a ~ 'x' LIMIT ?, 10")

	assert.Equal(t, &ast.RawFragment{SQLText: "generate_series(1, 10) g"}, sel.FromClauses[0].Relation)
	assert.Equal(t, &ast.RawFragment{SQLText: "a ~ 'x'"}, sel.Where)
	assert.Equal(t, &ast.RawFragment{SQLText: "?, 10"}, sel.Limit)
}

func TestVisitor_Insert(t *testing.T) {
	stmt, ok := convert(t, "INSERT INTO s.t (a, b) VALUES (1, ?), (2, ?)").(*ast.InsertStatement)
	require.True(t, ok)
	assert.Equal(t, &ast.TableReference{Schema: ast.Ident("s"), Name: ast.Ident("t")}, stmt.Target)
	assert.Equal(t, []*ast.Identifier{ast.Ident("a"), ast.Ident("b")}, stmt.Columns)
	values, ok := stmt.Source.(*ast.InsertValues)
	require.True(t, ok)
	require.Len(t, values.Rows, 2)
	assert.Len(t, values.Rows[1], 2)
	assert.Nil(t, stmt.OnConflict)

	stmt, ok = convert(t, "INSERT INTO t SELECT a FROM u").(*ast.InsertStatement)
	require.True(t, ok)
	_, ok = stmt.Source.(*ast.InsertSelect)
	assert.True(t, ok)
}

func TestVisitor_OnConflict(t *testing.T) {
	stmt, ok := convert(t, "INSERT INTO t(a) VALUES (1) ON CONFLICT DO NOTHING").(*ast.InsertStatement)
	require.True(t, ok)
	require.NotNil(t, stmt.OnConflict)
	assert.Nil(t, stmt.OnConflict.Target)
	assert.Equal(t, ast.KindOnConflictDoNothing, stmt.OnConflict.Action.Kind())

	stmt, ok = convert(t, "INSERT INTO t(a) VALUES (1) ON CONFLICT(a) DO UPDATE SET a = 2 WHERE a > 0").(*ast.InsertStatement)
	require.True(t, ok)
	require.NotNil(t, stmt.OnConflict.Target)
	assert.Equal(t, []ast.Expression{col("a")}, stmt.OnConflict.Target.Expressions)
	update, ok := stmt.OnConflict.Action.(*ast.OnConflictDoUpdate)
	require.True(t, ok)
	assert.Equal(t, []*ast.Assignment{{Column: ast.Ident("a"), Value: numLit("2")}}, update.Assignments)
	assert.NotNil(t, update.Where)
}

func TestVisitor_UpdateDelete(t *testing.T) {
	upd, ok := convert(t, "UPDATE t AS x SET a = 1, b = ? WHERE id = ?").(*ast.UpdateStatement)
	require.True(t, ok)
	assert.Equal(t, &ast.TableReference{Name: ast.Ident("t"), Alias: ast.Ident("x")}, upd.Target)
	require.Len(t, upd.Assignments, 2)
	assert.Equal(t, ast.Ident("b"), upd.Assignments[1].Column)
	assert.NotNil(t, upd.Where)

	del, ok := convert(t, "DELETE FROM s.t").(*ast.DeleteStatement)
	require.True(t, ok)
	assert.Equal(t, &ast.TableReference{Schema: ast.Ident("s"), Name: ast.Ident("t")}, del.Target)
	assert.Nil(t, del.Where)
}

func TestVisitor_DoesNotModifyCST(t *testing.T) {
	root := cst.ParseCST("SELECT a, b FROM t WHERE c = 1")
	require.NotNil(t, root)
	before := len(root.Children)
	_, err := parser.Visitor{}.Statement(root)
	require.NoError(t, err)
	assert.Len(t, root.Children, before)
}
