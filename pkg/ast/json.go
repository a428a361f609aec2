package ast

import (
	"bytes"
	"encoding/json"
)

// withKind encodes v and inserts the node_kind discriminant as the first
// member of the resulting object.
func withKind(kind NodeKind, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(len(body) + len(kind) + 16)
	buf.WriteString(`{"node_kind":`)
	k, _ := json.Marshal(string(kind))
	buf.Write(k)
	if len(body) > 2 {
		buf.WriteByte(',')
		buf.Write(body[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

// MarshalJSON encodes the literal with a typed value: numbers as JSON
// numbers when they are valid JSON, booleans as booleans, NULL as null.
func (l *Literal) MarshalJSON() ([]byte, error) {
	var value any
	switch l.Type {
	case LiteralNumber:
		if json.Valid([]byte(l.Value)) {
			value = json.Number(l.Value)
		} else {
			value = l.Value
		}
	case LiteralBoolean:
		value = l.Value == "true"
	case LiteralNull:
		value = nil
	default:
		value = l.Value
	}
	return withKind(KindLiteral, struct {
		LiteralType LiteralType `json:"literal_type"`
		Value       any         `json:"value"`
	}{l.Type, value})
}

func (s *SegmentedStatement) MarshalJSON() ([]byte, error) {
	type plain SegmentedStatement
	return withKind(s.Kind(), (*plain)(s))
}

func (s *StatementSegment) MarshalJSON() ([]byte, error) {
	type plain StatementSegment
	return withKind(s.Kind(), (*plain)(s))
}

func (r *RawFragment) MarshalJSON() ([]byte, error) {
	type plain RawFragment
	return withKind(r.Kind(), (*plain)(r))
}

func (i *Identifier) MarshalJSON() ([]byte, error) {
	type plain Identifier
	return withKind(i.Kind(), (*plain)(i))
}

// Statements

func (s *SelectStatement) MarshalJSON() ([]byte, error) {
	type plain SelectStatement
	return withKind(s.Kind(), (*plain)(s))
}

func (s *CompoundSelect) MarshalJSON() ([]byte, error) {
	type plain CompoundSelect
	return withKind(s.Kind(), (*plain)(s))
}

func (b *CompoundBranch) MarshalJSON() ([]byte, error) {
	type plain CompoundBranch
	return withKind(b.Kind(), (*plain)(b))
}

func (w *WithClause) MarshalJSON() ([]byte, error) {
	type plain WithClause
	return withKind(w.Kind(), (*plain)(w))
}

func (c *CommonTableExpression) MarshalJSON() ([]byte, error) {
	type plain CommonTableExpression
	return withKind(c.Kind(), (*plain)(c))
}

func (s *InsertStatement) MarshalJSON() ([]byte, error) {
	type plain InsertStatement
	return withKind(s.Kind(), (*plain)(s))
}

func (v *InsertValues) MarshalJSON() ([]byte, error) {
	type plain InsertValues
	return withKind(v.Kind(), (*plain)(v))
}

func (v *InsertSelect) MarshalJSON() ([]byte, error) {
	type plain InsertSelect
	return withKind(v.Kind(), (*plain)(v))
}

func (c *OnConflictClause) MarshalJSON() ([]byte, error) {
	type plain OnConflictClause
	return withKind(c.Kind(), (*plain)(c))
}

func (c *ConflictTarget) MarshalJSON() ([]byte, error) {
	type plain ConflictTarget
	return withKind(c.Kind(), (*plain)(c))
}

func (a *OnConflictDoNothing) MarshalJSON() ([]byte, error) {
	return withKind(a.Kind(), struct{}{})
}

func (a *OnConflictDoUpdate) MarshalJSON() ([]byte, error) {
	type plain OnConflictDoUpdate
	return withKind(a.Kind(), (*plain)(a))
}

func (s *UpdateStatement) MarshalJSON() ([]byte, error) {
	type plain UpdateStatement
	return withKind(s.Kind(), (*plain)(s))
}

func (s *DeleteStatement) MarshalJSON() ([]byte, error) {
	type plain DeleteStatement
	return withKind(s.Kind(), (*plain)(s))
}

func (a *Assignment) MarshalJSON() ([]byte, error) {
	type plain Assignment
	return withKind(a.Kind(), (*plain)(a))
}

// Projection and FROM

func (s *SelectStar) MarshalJSON() ([]byte, error) {
	return withKind(s.Kind(), struct{}{})
}

func (s *SelectQualifiedStar) MarshalJSON() ([]byte, error) {
	type plain SelectQualifiedStar
	return withKind(s.Kind(), (*plain)(s))
}

func (s *SelectExpression) MarshalJSON() ([]byte, error) {
	type plain SelectExpression
	return withKind(s.Kind(), (*plain)(s))
}

func (f *FromClause) MarshalJSON() ([]byte, error) {
	type plain FromClause
	return withKind(f.Kind(), (*plain)(f))
}

func (j *Join) MarshalJSON() ([]byte, error) {
	type plain Join
	return withKind(j.Kind(), (*plain)(j))
}

func (t *TableReference) MarshalJSON() ([]byte, error) {
	type plain TableReference
	return withKind(t.Kind(), (*plain)(t))
}

func (s *Subquery) MarshalJSON() ([]byte, error) {
	type plain Subquery
	return withKind(s.Kind(), (*plain)(s))
}

func (o *OrderingTerm) MarshalJSON() ([]byte, error) {
	type plain OrderingTerm
	return withKind(o.Kind(), (*plain)(o))
}

// Expressions

func (c *ColumnReference) MarshalJSON() ([]byte, error) {
	type plain ColumnReference
	return withKind(c.Kind(), (*plain)(c))
}

func (p *Parameter) MarshalJSON() ([]byte, error) {
	type plain Parameter
	return withKind(p.Kind(), (*plain)(p))
}

func (e *BinaryExpression) MarshalJSON() ([]byte, error) {
	type plain BinaryExpression
	return withKind(e.Kind(), (*plain)(e))
}

func (e *UnaryExpression) MarshalJSON() ([]byte, error) {
	type plain UnaryExpression
	return withKind(e.Kind(), (*plain)(e))
}

func (e *GroupedExpression) MarshalJSON() ([]byte, error) {
	type plain GroupedExpression
	return withKind(e.Kind(), (*plain)(e))
}

func (e *InListExpression) MarshalJSON() ([]byte, error) {
	type plain InListExpression
	return withKind(e.Kind(), (*plain)(e))
}

func (e *BetweenExpression) MarshalJSON() ([]byte, error) {
	type plain BetweenExpression
	return withKind(e.Kind(), (*plain)(e))
}

func (e *ExistsExpression) MarshalJSON() ([]byte, error) {
	type plain ExistsExpression
	return withKind(e.Kind(), (*plain)(e))
}

func (f *FunctionCall) MarshalJSON() ([]byte, error) {
	type plain FunctionCall
	return withKind(f.Kind(), (*plain)(f))
}

func (a *AllColumns) MarshalJSON() ([]byte, error) {
	return withKind(a.Kind(), struct{}{})
}

func (c *CaseExpression) MarshalJSON() ([]byte, error) {
	type plain CaseExpression
	return withKind(c.Kind(), (*plain)(c))
}

func (b *CaseBranch) MarshalJSON() ([]byte, error) {
	type plain CaseBranch
	return withKind(b.Kind(), (*plain)(b))
}

func (s *SubqueryExpression) MarshalJSON() ([]byte, error) {
	type plain SubqueryExpression
	return withKind(s.Kind(), (*plain)(s))
}

// Windows

func (w *WindowReference) MarshalJSON() ([]byte, error) {
	type plain WindowReference
	return withKind(w.Kind(), (*plain)(w))
}

func (w *WindowSpecification) MarshalJSON() ([]byte, error) {
	type plain WindowSpecification
	return withKind(w.Kind(), (*plain)(w))
}

func (w *WindowFrame) MarshalJSON() ([]byte, error) {
	type plain WindowFrame
	return withKind(w.Kind(), (*plain)(w))
}

func (b *FrameBound) MarshalJSON() ([]byte, error) {
	type plain FrameBound
	return withKind(b.Kind(), (*plain)(b))
}

func (w *WindowDefinition) MarshalJSON() ([]byte, error) {
	type plain WindowDefinition
	return withKind(w.Kind(), (*plain)(w))
}
