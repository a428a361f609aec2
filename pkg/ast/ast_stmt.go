package ast

// ---------- Statement Types ----------

// SelectStatement is a single SELECT, including the clauses that follow
// the select core when no compound operator is present.
type SelectStatement struct {
	With        *WithClause         `json:"with_clause"`
	Distinct    bool                `json:"distinct"`
	Projection  []SelectItem        `json:"projection"`
	FromClauses []*FromClause       `json:"from_clauses"`
	Where       Expression          `json:"where_clause"`
	GroupBy     []Expression        `json:"group_by"`
	Having      Expression          `json:"having"`
	Windows     []*WindowDefinition `json:"windows"`
	OrderBy     []*OrderingTerm     `json:"order_by"`
	Limit       Expression          `json:"limit"`
	Offset      Expression          `json:"offset"`
}

// CompoundOperator joins the branches of a compound select.
type CompoundOperator string

// Compound operators. UNION ALL is reported as union_by_version.
const (
	CompoundUnion          CompoundOperator = "union"
	CompoundUnionByVersion CompoundOperator = "union_by_version"
	CompoundIntersect      CompoundOperator = "intersect"
	CompoundExcept         CompoundOperator = "except"
)

// CompoundSelect is a SELECT built from several cores. ORDER BY, LIMIT and
// OFFSET apply to the whole compound.
type CompoundSelect struct {
	With     *WithClause       `json:"with_clause"`
	First    *SelectStatement  `json:"first"`
	Branches []*CompoundBranch `json:"branches"`
	OrderBy  []*OrderingTerm   `json:"order_by"`
	Limit    Expression        `json:"limit"`
	Offset   Expression        `json:"offset"`
}

// CompoundBranch is one operator and the select it introduces.
type CompoundBranch struct {
	Operator CompoundOperator `json:"operator"`
	Select   *SelectStatement `json:"select"`
}

// WithClause is a WITH clause.
type WithClause struct {
	Recursive bool                     `json:"recursive"`
	CTEs      []*CommonTableExpression `json:"ctes"`
}

// CommonTableExpression is a named subquery of a WITH clause.
type CommonTableExpression struct {
	Name      *Identifier   `json:"name"`
	Columns   []*Identifier `json:"columns"`
	Statement Statement     `json:"statement"`
}

// InsertStatement is INSERT INTO ... VALUES or INSERT INTO ... SELECT.
type InsertStatement struct {
	Target     *TableReference   `json:"target"`
	Columns    []*Identifier     `json:"columns"`
	Source     InsertSource      `json:"source"`
	OnConflict *OnConflictClause `json:"on_conflict"`
}

// InsertValues is a VALUES list; each row is one tuple of expressions.
type InsertValues struct {
	Rows [][]Expression `json:"rows"`
}

// InsertSelect is a query used as INSERT source.
type InsertSelect struct {
	Statement Statement `json:"statement"`
}

// OnConflictClause is ON CONFLICT [target] DO action.
type OnConflictClause struct {
	Target *ConflictTarget `json:"target"`
	Action ConflictAction  `json:"action"`
}

// ConflictTarget lists the expressions of ON CONFLICT (...).
type ConflictTarget struct {
	Expressions []Expression `json:"expressions"`
}

// OnConflictDoNothing is DO NOTHING.
type OnConflictDoNothing struct{}

// OnConflictDoUpdate is DO UPDATE SET ... [WHERE ...]. It has at least one
// assignment.
type OnConflictDoUpdate struct {
	Assignments []*Assignment `json:"assignments"`
	Where       Expression    `json:"where_clause"`
}

// UpdateStatement is UPDATE ... SET ... [WHERE ...]. It has at least one
// assignment.
type UpdateStatement struct {
	Target      *TableReference `json:"target"`
	Assignments []*Assignment   `json:"assignments"`
	Where       Expression      `json:"where_clause"`
}

// DeleteStatement is DELETE FROM ... [WHERE ...].
type DeleteStatement struct {
	Target *TableReference `json:"target"`
	Where  Expression      `json:"where_clause"`
}

// Assignment is column = value.
type Assignment struct {
	Column *Identifier `json:"column"`
	Value  Expression  `json:"value"`
}

func (*SelectStatement) Kind() NodeKind       { return KindSelectStatement }
func (*CompoundSelect) Kind() NodeKind        { return KindCompoundSelect }
func (*CompoundBranch) Kind() NodeKind        { return KindCompoundBranch }
func (*WithClause) Kind() NodeKind            { return KindWithClause }
func (*CommonTableExpression) Kind() NodeKind { return KindCommonTableExpression }
func (*InsertStatement) Kind() NodeKind       { return KindInsertStatement }
func (*InsertValues) Kind() NodeKind          { return KindInsertValues }
func (*InsertSelect) Kind() NodeKind          { return KindInsertSelect }
func (*OnConflictClause) Kind() NodeKind      { return KindOnConflictClause }
func (*ConflictTarget) Kind() NodeKind        { return KindConflictTarget }
func (*OnConflictDoNothing) Kind() NodeKind   { return KindOnConflictDoNothing }
func (*OnConflictDoUpdate) Kind() NodeKind    { return KindOnConflictDoUpdate }
func (*UpdateStatement) Kind() NodeKind       { return KindUpdateStatement }
func (*DeleteStatement) Kind() NodeKind       { return KindDeleteStatement }
func (*Assignment) Kind() NodeKind            { return KindAssignment }

func (*SelectStatement) statementNode() {}
func (*CompoundSelect) statementNode()  {}
func (*InsertStatement) statementNode() {}
func (*UpdateStatement) statementNode() {}
func (*DeleteStatement) statementNode() {}

func (*InsertValues) insertSourceNode() {}
func (*InsertSelect) insertSourceNode() {}

func (*OnConflictDoNothing) conflictActionNode() {}
func (*OnConflictDoUpdate) conflictActionNode()  {}
