package ast

// ---------- Projection and FROM ----------

// SelectStar is "*".
type SelectStar struct{}

// SelectQualifiedStar is "t.*".
type SelectQualifiedStar struct {
	Qualifier *Identifier `json:"qualifier"`
}

// SelectExpression is an expression with an optional alias.
type SelectExpression struct {
	Expression Expression  `json:"expression"`
	Alias      *Identifier `json:"alias"`
}

// FromClause is one comma-separated item of FROM with its joins.
type FromClause struct {
	Relation Relation `json:"relation"`
	Joins    []*Join  `json:"joins"`
}

// JoinType is the kind of a join. A bare JOIN is an inner join.
type JoinType string

// Join types.
const (
	JoinInner JoinType = "inner"
	JoinLeft  JoinType = "left"
	JoinRight JoinType = "right"
	JoinFull  JoinType = "full"
)

// Join is [type] JOIN relation [ON expr | USING (cols)].
type Join struct {
	JoinType JoinType      `json:"join_type"`
	Relation Relation      `json:"relation"`
	On       Expression    `json:"on"`
	Using    []*Identifier `json:"using"`
}

// TableReference is [schema.]name [alias].
type TableReference struct {
	Schema *Identifier `json:"schema"`
	Name   *Identifier `json:"name"`
	Alias  *Identifier `json:"alias"`
}

// Subquery is a parenthesized query in FROM position.
type Subquery struct {
	Statement Statement   `json:"statement"`
	Alias     *Identifier `json:"alias"`
}

// SortDirection is ASC or DESC; empty when not written.
type SortDirection string

// Sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// NullsOrder is NULLS FIRST or NULLS LAST; empty when not written.
type NullsOrder string

// Nulls orderings.
const (
	NullsFirst NullsOrder = "first"
	NullsLast  NullsOrder = "last"
)

// OrderingTerm is an ORDER BY item.
type OrderingTerm struct {
	Expression Expression    `json:"expression"`
	Direction  SortDirection `json:"direction,omitempty"`
	Nulls      NullsOrder    `json:"nulls,omitempty"`
}

func (*SelectStar) Kind() NodeKind          { return KindSelectStar }
func (*SelectQualifiedStar) Kind() NodeKind { return KindSelectQualifiedStar }
func (*SelectExpression) Kind() NodeKind    { return KindSelectExpression }
func (*FromClause) Kind() NodeKind          { return KindFromClause }
func (*Join) Kind() NodeKind                { return KindJoin }
func (*TableReference) Kind() NodeKind      { return KindTableReference }
func (*Subquery) Kind() NodeKind            { return KindSubquery }
func (*OrderingTerm) Kind() NodeKind        { return KindOrderingTerm }

func (*SelectStar) selectItemNode()          {}
func (*SelectQualifiedStar) selectItemNode() {}
func (*SelectExpression) selectItemNode()    {}

func (*TableReference) relationNode() {}
func (*Subquery) relationNode()       {}
