package cst

import (
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// FROM clause parsing: table references, derived tables, nested relations, JOINs.
//
// Grammar:
//
//	from_clause      → FROM from_item ("," from_item)*
//	from_item        → relation join_clause*
//	relation         → table_or_subquery | raw
//	table_or_subquery→ qualified_name [alias]
//	                 | "(" select_stmt ")" [alias]
//	                 | "(" table_or_subquery ")" [alias]
//	join_clause      → [join_type] JOIN relation [ON expr | USING column_list]
//	join_type        → INNER | LEFT [OUTER] | RIGHT [OUTER] | FULL [OUTER]

// parseFromClause parses the FROM clause.
func (p *Parser) parseFromClause() *Node {
	n := NewNode(FromClause, p.expect(token.FROM))
	for {
		item := p.parseFromItem()
		if item == nil {
			return nil
		}
		n.Append(item)

		comma := p.match(token.COMMA)
		if comma == nil {
			break
		}
		n.Append(comma)
	}
	return n
}

// parseFromItem parses a relation followed by its joins.
func (p *Parser) parseFromItem() *Node {
	rel := p.parseRelation()
	if rel == nil {
		return nil
	}
	n := NewNode(FromItem, rel)

	for p.checkAny(token.JOIN, token.INNER, token.LEFT, token.RIGHT, token.FULL) {
		join := p.parseJoinClause()
		if join == nil {
			return nil
		}
		n.Append(join)
	}
	return n
}

// parseRelation parses a table or subquery. Anything else up to the next
// relation boundary is kept as a raw region.
func (p *Parser) parseRelation() *Node {
	m := p.mark()
	if rel := p.parseTableOrSubquery(); rel != nil && isRelationBoundary(p.token().Type) {
		return rel
	}
	p.reset(m)
	return p.parseRaw(isRelationBoundary, "table or subquery")
}

// parseTableOrSubquery parses a table name, a derived table or a
// parenthesized relation.
func (p *Parser) parseTableOrSubquery() *Node {
	if !p.check(token.LPAREN) {
		name := p.parseQualifiedName()
		if name == nil {
			return nil
		}
		return NewNode(TableOrSubquery, name, p.parseAlias())
	}

	if !p.enter() {
		return nil
	}
	defer p.leave()

	n := NewNode(TableOrSubquery, p.nextToken())

	var inner *Node
	if p.checkAny(token.SELECT, token.WITH) {
		inner = p.parseSelectStatement()
	} else {
		inner = p.parseTableOrSubquery()
	}
	if inner == nil {
		return nil
	}
	n.Append(inner)

	rparen := p.expect(token.RPAREN)
	if rparen == nil {
		return nil
	}
	n.Append(rparen)
	n.Append(p.parseAlias())
	return n
}

// parseJoinClause parses a JOIN clause.
func (p *Parser) parseJoinClause() *Node {
	n := NewNode(JoinClause)

	if !p.check(token.JOIN) {
		jt := NewNode(JoinType, p.nextToken())
		if jt.Children[0].Token.Type != token.INNER {
			jt.Append(p.match(token.OUTER))
		}
		n.Append(jt)
	}

	join := p.expect(token.JOIN)
	if join == nil {
		return nil
	}
	n.Append(join)

	rel := p.parseRelation()
	if rel == nil {
		return nil
	}
	n.Append(rel)

	switch {
	case p.check(token.ON):
		n.Append(p.nextToken())
		cond := p.parseExpr()
		if cond == nil {
			return nil
		}
		n.Append(cond)
	case p.check(token.USING):
		n.Append(p.nextToken())
		cols := p.parseColumnNameList()
		if cols == nil {
			return nil
		}
		n.Append(cols)
	}

	return n
}
