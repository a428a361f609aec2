package cst

import (
	"fmt"

	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// Data modification statements: INSERT, UPDATE, DELETE.
//
// Grammar:
//
//	insert_stmt    → INSERT INTO qualified_name [column_list]
//	                 (VALUES values_row ("," values_row)* | select_stmt)
//	                 [on_conflict]
//	values_row     → "(" expr_list ")"
//	on_conflict    → ON CONFLICT ["(" expr_list ")"] DO
//	                 (NOTHING | UPDATE SET assignments [WHERE cond])
//	update_stmt    → UPDATE target SET assignments [WHERE cond]
//	delete_stmt    → DELETE FROM target [WHERE cond]
//	target         → qualified_name [alias]
//	assignments    → name "=" expr ("," name "=" expr)*

// parseInsertStatement parses an INSERT statement.
func (p *Parser) parseInsertStatement() *Node {
	n := NewNode(InsertStatement, p.expect(token.INSERT))

	into := p.expect(token.INTO)
	if into == nil {
		return nil
	}
	n.Append(into)

	target := p.parseQualifiedName()
	if target == nil {
		return nil
	}
	n.Append(target)

	if p.check(token.LPAREN) {
		cols := p.parseColumnNameList()
		if cols == nil {
			return nil
		}
		n.Append(cols)
	}

	var source *Node
	switch {
	case p.check(token.VALUES):
		source = p.parseValuesClause()
	case p.checkAny(token.SELECT, token.WITH):
		source = p.parseSelectStatement()
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token().Type, "VALUES or SELECT"))
	}
	if source == nil {
		return nil
	}
	n.Append(source)

	if p.check(token.ON) && p.checkPeek(token.CONFLICT) {
		conflict := p.parseOnConflictClause()
		if conflict == nil {
			return nil
		}
		n.Append(conflict)
	}
	return n
}

// parseValuesClause parses VALUES values_row ("," values_row)*.
func (p *Parser) parseValuesClause() *Node {
	n := NewNode(ValuesClause, p.expect(token.VALUES))
	for {
		lparen := p.expect(token.LPAREN)
		if lparen == nil {
			return nil
		}
		list := p.parseExpressionList()
		if list == nil {
			return nil
		}
		rparen := p.expect(token.RPAREN)
		if rparen == nil {
			return nil
		}
		n.Append(NewNode(ValuesRow, lparen, list, rparen))

		comma := p.match(token.COMMA)
		if comma == nil {
			break
		}
		n.Append(comma)
	}
	return n
}

// parseOnConflictClause parses an ON CONFLICT clause.
func (p *Parser) parseOnConflictClause() *Node {
	n := NewNode(OnConflictClause, p.expect(token.ON), p.expect(token.CONFLICT))

	if p.check(token.LPAREN) {
		lparen := p.nextToken()
		list := p.parseExpressionList()
		if list == nil {
			return nil
		}
		rparen := p.expect(token.RPAREN)
		if rparen == nil {
			return nil
		}
		n.Append(NewNode(ConflictTarget, lparen, list, rparen))
	}

	do := p.expect(token.DO)
	if do == nil {
		return nil
	}
	n.Append(do)

	switch {
	case p.check(token.NOTHING):
		n.Append(p.nextToken())

	case p.check(token.UPDATE):
		n.Append(p.nextToken())
		set := p.expect(token.SET)
		if set == nil {
			return nil
		}
		n.Append(set)
		assignments := p.parseAssignmentList()
		if assignments == nil {
			return nil
		}
		n.Append(assignments)
		if p.check(token.WHERE) {
			where := p.parseConditionClause(WhereClause)
			if where == nil {
				return nil
			}
			n.Append(where)
		}

	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token().Type, "NOTHING or UPDATE"))
		return nil
	}
	return n
}

// parseUpdateStatement parses an UPDATE statement.
func (p *Parser) parseUpdateStatement() *Node {
	n := NewNode(UpdateStatement, p.expect(token.UPDATE))

	target := p.parseTarget()
	if target == nil {
		return nil
	}
	n.Append(target)

	set := p.expect(token.SET)
	if set == nil {
		return nil
	}
	n.Append(set)

	assignments := p.parseAssignmentList()
	if assignments == nil {
		return nil
	}
	n.Append(assignments)

	if p.check(token.WHERE) {
		where := p.parseConditionClause(WhereClause)
		if where == nil {
			return nil
		}
		n.Append(where)
	}
	return n
}

// parseDeleteStatement parses a DELETE statement.
func (p *Parser) parseDeleteStatement() *Node {
	n := NewNode(DeleteStatement, p.expect(token.DELETE))

	from := p.expect(token.FROM)
	if from == nil {
		return nil
	}
	n.Append(from)

	target := p.parseTarget()
	if target == nil {
		return nil
	}
	n.Append(target)

	if p.check(token.WHERE) {
		where := p.parseConditionClause(WhereClause)
		if where == nil {
			return nil
		}
		n.Append(where)
	}
	return n
}

// parseTarget parses the table an UPDATE or DELETE applies to.
func (p *Parser) parseTarget() *Node {
	name := p.parseQualifiedName()
	if name == nil {
		return nil
	}
	return NewNode(TableOrSubquery, name, p.parseAlias())
}

// parseAssignmentList parses name "=" expr ("," name "=" expr)*.
func (p *Parser) parseAssignmentList() *Node {
	n := NewNode(AssignmentList)
	for {
		column := p.parseName("column name")
		if column == nil {
			return nil
		}
		eq := p.expect(token.EQ)
		if eq == nil {
			return nil
		}
		value := p.parseExpr()
		if value == nil {
			return nil
		}
		n.Append(NewNode(Assignment, column, eq, value))

		comma := p.match(token.COMMA)
		if comma == nil {
			break
		}
		n.Append(comma)
	}
	return n
}
