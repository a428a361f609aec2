package format

import (
	"github.com/leapstack-labs/sqlseg/pkg/ast"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

func (p *Printer) formatStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.SelectStatement:
		p.formatSelectStmt(s)
	case *ast.CompoundSelect:
		p.formatCompoundSelect(s)
	case *ast.InsertStatement:
		p.formatInsert(s)
	case *ast.UpdateStatement:
		p.formatUpdate(s)
	case *ast.DeleteStatement:
		p.formatDelete(s)
	}
}

func (p *Printer) formatWithClause(with *ast.WithClause) {
	if with == nil {
		return
	}
	p.kw(token.WITH)
	if with.Recursive {
		p.space()
		p.kw(token.RECURSIVE)
	}
	p.block(func() {
		p.items(len(with.CTEs), func(i int) {
			cte := with.CTEs[i]
			p.formatIdent(cte.Name)
			if len(cte.Columns) > 0 {
				p.write(" ")
				p.formatIdentList(cte.Columns)
			}
			p.space()
			p.kw(token.AS)
			p.space()
			p.nested(cte.Statement)
		})
	})
	p.brk()
}

func (p *Printer) formatSelectStmt(stmt *ast.SelectStatement) {
	if stmt == nil {
		return
	}
	p.formatWithClause(stmt.With)

	p.kw(token.SELECT)
	if stmt.Distinct {
		p.space()
		p.kw(token.DISTINCT)
	}
	p.block(func() {
		p.items(len(stmt.Projection), func(i int) { p.formatSelectItem(stmt.Projection[i]) })
	})

	if len(stmt.FromClauses) > 0 {
		p.brk()
		p.kw(token.FROM)
		p.space()
		p.formatList(len(stmt.FromClauses), func(i int) { p.formatFromClause(stmt.FromClauses[i]) }, ",", false)
	}

	p.condition(stmt.Where, token.WHERE)

	if len(stmt.GroupBy) > 0 {
		p.brk()
		p.kw(token.GROUP, token.BY)
		p.block(func() {
			p.items(len(stmt.GroupBy), func(i int) { p.formatExpr(stmt.GroupBy[i]) })
		})
	}

	p.condition(stmt.Having, token.HAVING)

	if len(stmt.Windows) > 0 {
		p.brk()
		p.kw(token.WINDOW)
		p.block(func() {
			p.items(len(stmt.Windows), func(i int) {
				w := stmt.Windows[i]
				p.formatIdent(w.Name)
				p.space()
				p.kw(token.AS)
				p.space()
				p.formatWindowSpec(w.Specification)
			})
		})
	}

	p.formatTail(stmt.OrderBy, stmt.Limit, stmt.Offset)
}

// formatTail prints ORDER BY, LIMIT and OFFSET.
func (p *Printer) formatTail(orderBy []*ast.OrderingTerm, limit, offset ast.Expression) {
	if len(orderBy) > 0 {
		p.brk()
		p.kw(token.ORDER, token.BY)
		p.block(func() {
			p.items(len(orderBy), func(i int) { p.formatOrderingTerm(orderBy[i]) })
		})
	}
	if limit != nil {
		p.brk()
		p.kw(token.LIMIT)
		p.space()
		p.formatExpr(limit)
	}
	if offset != nil {
		p.brk()
		p.kw(token.OFFSET)
		p.space()
		p.formatExpr(offset)
	}
}

// condition prints a WHERE or HAVING clause when cond is set.
func (p *Printer) condition(cond ast.Expression, kw token.TokenType) {
	if cond == nil {
		return
	}
	p.brk()
	p.kw(kw)
	p.block(func() { p.formatExpr(cond) })
}

func (p *Printer) formatCompoundSelect(stmt *ast.CompoundSelect) {
	p.formatWithClause(stmt.With)
	p.formatSelectStmt(stmt.First)

	for _, branch := range stmt.Branches {
		p.brk()
		switch branch.Operator {
		case ast.CompoundUnion:
			p.kw(token.UNION)
		case ast.CompoundUnionByVersion:
			p.kw(token.UNION, token.ALL)
		case ast.CompoundIntersect:
			p.kw(token.INTERSECT)
		case ast.CompoundExcept:
			p.kw(token.EXCEPT)
		}
		p.brk()
		p.formatSelectStmt(branch.Select)
	}

	p.formatTail(stmt.OrderBy, stmt.Limit, stmt.Offset)
}

func (p *Printer) formatSelectItem(item ast.SelectItem) {
	switch it := item.(type) {
	case *ast.SelectStar:
		p.write("*")
	case *ast.SelectQualifiedStar:
		p.formatIdent(it.Qualifier)
		p.write(".*")
	case *ast.SelectExpression:
		p.formatExpr(it.Expression)
		p.formatAlias(it.Alias)
	}
}

func (p *Printer) formatAlias(alias *ast.Identifier) {
	if alias == nil {
		return
	}
	p.space()
	p.kw(token.AS)
	p.space()
	p.formatIdent(alias)
}

func (p *Printer) formatFromClause(from *ast.FromClause) {
	p.formatRelation(from.Relation)
	for _, join := range from.Joins {
		p.brk()
		p.formatJoin(join)
	}
}

func (p *Printer) formatRelation(rel ast.Relation) {
	switch r := rel.(type) {
	case *ast.TableReference:
		p.formatTableRef(r)
	case *ast.Subquery:
		p.nested(r.Statement)
		p.formatAlias(r.Alias)
	case *ast.RawFragment:
		p.write(r.SQLText)
	}
}

func (p *Printer) formatTableRef(t *ast.TableReference) {
	if t.Schema != nil {
		p.formatIdent(t.Schema)
		p.write(".")
	}
	p.formatIdent(t.Name)
	p.formatAlias(t.Alias)
}

func (p *Printer) formatJoin(join *ast.Join) {
	switch join.JoinType {
	case ast.JoinLeft:
		p.kw(token.LEFT)
		p.space()
	case ast.JoinRight:
		p.kw(token.RIGHT)
		p.space()
	case ast.JoinFull:
		p.kw(token.FULL)
		p.space()
	}
	p.kw(token.JOIN)
	p.space()
	p.formatRelation(join.Relation)

	switch {
	case join.On != nil:
		p.space()
		p.kw(token.ON)
		p.space()
		p.formatExpr(join.On)
	case len(join.Using) > 0:
		p.space()
		p.kw(token.USING)
		p.space()
		p.formatIdentList(join.Using)
	}
}

func (p *Printer) formatOrderingTerm(term *ast.OrderingTerm) {
	p.formatExpr(term.Expression)
	switch term.Direction {
	case ast.SortAsc:
		p.space()
		p.kw(token.ASC)
	case ast.SortDesc:
		p.space()
		p.kw(token.DESC)
	}
	switch term.Nulls {
	case ast.NullsFirst:
		p.space()
		p.kw(token.NULLS, token.FIRST)
	case ast.NullsLast:
		p.space()
		p.kw(token.NULLS, token.LAST)
	}
}

// ---------- DML ----------

func (p *Printer) formatInsert(stmt *ast.InsertStatement) {
	p.kw(token.INSERT, token.INTO)
	p.space()
	p.formatTableRef(stmt.Target)
	if len(stmt.Columns) > 0 {
		p.space()
		p.formatIdentList(stmt.Columns)
	}

	p.brk()
	switch src := stmt.Source.(type) {
	case *ast.InsertValues:
		p.kw(token.VALUES)
		p.block(func() {
			p.items(len(src.Rows), func(i int) {
				p.write("(")
				p.formatExprList(src.Rows[i])
				p.write(")")
			})
		})
	case *ast.InsertSelect:
		p.formatStatement(src.Statement)
	}

	if oc := stmt.OnConflict; oc != nil {
		p.brk()
		p.kw(token.ON, token.CONFLICT)
		if oc.Target != nil {
			p.write(" (")
			p.formatExprList(oc.Target.Expressions)
			p.write(")")
		}
		p.space()
		p.kw(token.DO)
		p.space()
		switch action := oc.Action.(type) {
		case *ast.OnConflictDoNothing:
			p.kw(token.NOTHING)
		case *ast.OnConflictDoUpdate:
			p.kw(token.UPDATE)
			p.space()
			p.formatSet(action.Assignments)
			p.condition(action.Where, token.WHERE)
		}
	}
}

func (p *Printer) formatUpdate(stmt *ast.UpdateStatement) {
	p.kw(token.UPDATE)
	p.space()
	p.formatTableRef(stmt.Target)
	p.brk()
	p.formatSet(stmt.Assignments)
	p.condition(stmt.Where, token.WHERE)
}

func (p *Printer) formatDelete(stmt *ast.DeleteStatement) {
	p.kw(token.DELETE, token.FROM)
	p.space()
	p.formatTableRef(stmt.Target)
	p.condition(stmt.Where, token.WHERE)
}

func (p *Printer) formatSet(assignments []*ast.Assignment) {
	p.kw(token.SET)
	p.block(func() {
		p.items(len(assignments), func(i int) {
			a := assignments[i]
			p.formatIdent(a.Column)
			p.write(" = ")
			p.formatExpr(a.Value)
		})
	})
}
