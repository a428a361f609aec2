package ast

// Clone returns a deep copy of node. The copy shares no pointers with the
// original, so it can be modified freely.
func Clone(node Node) Node {
	if isNil(node) {
		return nil
	}

	switch n := node.(type) {
	case *SegmentedStatement:
		return &SegmentedStatement{Segments: cloneList(n.Segments)}
	case *StatementSegment:
		return &StatementSegment{Statement: cloneOf(n.Statement), SQLText: n.SQLText}
	case *RawFragment:
		c := *n
		return &c
	case *Identifier:
		c := *n
		return &c

	case *SelectStatement:
		return &SelectStatement{
			With:        cloneOf(n.With),
			Distinct:    n.Distinct,
			Projection:  cloneList(n.Projection),
			FromClauses: cloneList(n.FromClauses),
			Where:       cloneOf(n.Where),
			GroupBy:     cloneList(n.GroupBy),
			Having:      cloneOf(n.Having),
			Windows:     cloneList(n.Windows),
			OrderBy:     cloneList(n.OrderBy),
			Limit:       cloneOf(n.Limit),
			Offset:      cloneOf(n.Offset),
		}
	case *CompoundSelect:
		return &CompoundSelect{
			With:     cloneOf(n.With),
			First:    cloneOf(n.First),
			Branches: cloneList(n.Branches),
			OrderBy:  cloneList(n.OrderBy),
			Limit:    cloneOf(n.Limit),
			Offset:   cloneOf(n.Offset),
		}
	case *CompoundBranch:
		return &CompoundBranch{Operator: n.Operator, Select: cloneOf(n.Select)}
	case *WithClause:
		return &WithClause{Recursive: n.Recursive, CTEs: cloneList(n.CTEs)}
	case *CommonTableExpression:
		return &CommonTableExpression{
			Name:      cloneOf(n.Name),
			Columns:   cloneList(n.Columns),
			Statement: cloneOf(n.Statement),
		}
	case *InsertStatement:
		return &InsertStatement{
			Target:     cloneOf(n.Target),
			Columns:    cloneList(n.Columns),
			Source:     cloneOf(n.Source),
			OnConflict: cloneOf(n.OnConflict),
		}
	case *InsertValues:
		var rows [][]Expression
		if n.Rows != nil {
			rows = make([][]Expression, len(n.Rows))
			for i, row := range n.Rows {
				rows[i] = cloneList(row)
			}
		}
		return &InsertValues{Rows: rows}
	case *InsertSelect:
		return &InsertSelect{Statement: cloneOf(n.Statement)}
	case *OnConflictClause:
		return &OnConflictClause{Target: cloneOf(n.Target), Action: cloneOf(n.Action)}
	case *ConflictTarget:
		return &ConflictTarget{Expressions: cloneList(n.Expressions)}
	case *OnConflictDoNothing:
		return &OnConflictDoNothing{}
	case *OnConflictDoUpdate:
		return &OnConflictDoUpdate{Assignments: cloneList(n.Assignments), Where: cloneOf(n.Where)}
	case *UpdateStatement:
		return &UpdateStatement{
			Target:      cloneOf(n.Target),
			Assignments: cloneList(n.Assignments),
			Where:       cloneOf(n.Where),
		}
	case *DeleteStatement:
		return &DeleteStatement{Target: cloneOf(n.Target), Where: cloneOf(n.Where)}
	case *Assignment:
		return &Assignment{Column: cloneOf(n.Column), Value: cloneOf(n.Value)}

	case *SelectStar:
		return &SelectStar{}
	case *SelectQualifiedStar:
		return &SelectQualifiedStar{Qualifier: cloneOf(n.Qualifier)}
	case *SelectExpression:
		return &SelectExpression{Expression: cloneOf(n.Expression), Alias: cloneOf(n.Alias)}
	case *FromClause:
		return &FromClause{Relation: cloneOf(n.Relation), Joins: cloneList(n.Joins)}
	case *Join:
		return &Join{
			JoinType: n.JoinType,
			Relation: cloneOf(n.Relation),
			On:       cloneOf(n.On),
			Using:    cloneList(n.Using),
		}
	case *TableReference:
		return &TableReference{Schema: cloneOf(n.Schema), Name: cloneOf(n.Name), Alias: cloneOf(n.Alias)}
	case *Subquery:
		return &Subquery{Statement: cloneOf(n.Statement), Alias: cloneOf(n.Alias)}
	case *OrderingTerm:
		return &OrderingTerm{Expression: cloneOf(n.Expression), Direction: n.Direction, Nulls: n.Nulls}

	case *Literal:
		c := *n
		return &c
	case *ColumnReference:
		return &ColumnReference{Path: cloneList(n.Path)}
	case *Parameter:
		c := *n
		return &c
	case *BinaryExpression:
		return &BinaryExpression{Left: cloneOf(n.Left), Operator: n.Operator, Right: cloneOf(n.Right)}
	case *UnaryExpression:
		return &UnaryExpression{Operator: n.Operator, Operand: cloneOf(n.Operand)}
	case *GroupedExpression:
		return &GroupedExpression{Expression: cloneOf(n.Expression)}
	case *InListExpression:
		return &InListExpression{Operand: cloneOf(n.Operand), Items: cloneList(n.Items), Negated: n.Negated}
	case *BetweenExpression:
		return &BetweenExpression{
			Operand: cloneOf(n.Operand),
			Start:   cloneOf(n.Start),
			End:     cloneOf(n.End),
			Negated: n.Negated,
		}
	case *ExistsExpression:
		return &ExistsExpression{Statement: cloneOf(n.Statement)}
	case *FunctionCall:
		return &FunctionCall{
			Name:      cloneOf(n.Name),
			Distinct:  n.Distinct,
			Arguments: cloneList(n.Arguments),
			Over:      cloneOf(n.Over),
		}
	case *AllColumns:
		return &AllColumns{}
	case *CaseExpression:
		return &CaseExpression{
			Operand:    cloneOf(n.Operand),
			Branches:   cloneList(n.Branches),
			ElseResult: cloneOf(n.ElseResult),
		}
	case *CaseBranch:
		return &CaseBranch{Condition: cloneOf(n.Condition), Result: cloneOf(n.Result)}
	case *SubqueryExpression:
		return &SubqueryExpression{Statement: cloneOf(n.Statement)}

	case *WindowReference:
		return &WindowReference{Name: cloneOf(n.Name)}
	case *WindowSpecification:
		return &WindowSpecification{
			Name:        cloneOf(n.Name),
			PartitionBy: cloneList(n.PartitionBy),
			OrderBy:     cloneList(n.OrderBy),
			Frame:       cloneOf(n.Frame),
		}
	case *WindowFrame:
		return &WindowFrame{Unit: n.Unit, Start: cloneOf(n.Start), End: cloneOf(n.End)}
	case *FrameBound:
		return &FrameBound{BoundType: n.BoundType, Offset: cloneOf(n.Offset)}
	case *WindowDefinition:
		return &WindowDefinition{Name: cloneOf(n.Name), Specification: cloneOf(n.Specification)}
	}
	return node
}

func cloneOf[T Node](n T) T {
	var zero T
	if isNil(n) {
		return zero
	}
	c, _ := Clone(n).(T)
	return c
}

func cloneList[T Node](list []T) []T {
	if list == nil {
		return nil
	}
	out := make([]T, len(list))
	for i, n := range list {
		out[i] = cloneOf(n)
	}
	return out
}
