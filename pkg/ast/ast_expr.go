package ast

// ---------- Expression Types ----------

// LiteralType classifies a literal.
type LiteralType string

// Literal types.
const (
	LiteralString  LiteralType = "string"
	LiteralNumber  LiteralType = "number"
	LiteralBoolean LiteralType = "boolean"
	LiteralNull    LiteralType = "null"
)

// Literal is a constant. Value holds the unescaped string, the number as
// written, "true"/"false", or "null".
type Literal struct {
	Type  LiteralType
	Value string
}

// ColumnReference is a column name, optionally qualified by a table.
type ColumnReference struct {
	Path []*Identifier `json:"path"`
}

// UnresolvedPosition is the position of a parameter that has not been
// through position resolution.
const UnresolvedPosition = -1

// Parameter is a bind placeholder. Position is zero-based.
type Parameter struct {
	Placeholder string `json:"placeholder"`
	Position    int    `json:"position"`
}

// BinaryOperator is the operator of a BinaryExpression.
type BinaryOperator string

// Binary operators.
const (
	OpAdd        BinaryOperator = "+"
	OpSub        BinaryOperator = "-"
	OpMul        BinaryOperator = "*"
	OpDiv        BinaryOperator = "/"
	OpMod        BinaryOperator = "%"
	OpJSONGet    BinaryOperator = "->"
	OpJSONGetTxt BinaryOperator = "->>"
	OpEq         BinaryOperator = "="
	OpNotEq      BinaryOperator = "!="
	OpNotEqAlt   BinaryOperator = "<>"
	OpGt         BinaryOperator = ">"
	OpGtEq       BinaryOperator = ">="
	OpLt         BinaryOperator = "<"
	OpLtEq       BinaryOperator = "<="
	OpAnd        BinaryOperator = "and"
	OpOr         BinaryOperator = "or"
	OpLike       BinaryOperator = "like"
	OpNotLike    BinaryOperator = "not_like"
	OpIs         BinaryOperator = "is"
	OpIsNot      BinaryOperator = "is_not"
)

// BinaryExpression is left operator right. IS [NOT] NULL is a binary
// expression whose right side is the null literal.
type BinaryExpression struct {
	Left     Expression     `json:"left"`
	Operator BinaryOperator `json:"operator"`
	Right    Expression     `json:"right"`
}

// UnaryOperator is the operator of a UnaryExpression.
type UnaryOperator string

// Unary operators.
const (
	OpMinus UnaryOperator = "minus"
	OpNot   UnaryOperator = "not"
)

// UnaryExpression is a prefix operator applied to an operand.
type UnaryExpression struct {
	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

// GroupedExpression is a parenthesized expression.
type GroupedExpression struct {
	Expression Expression `json:"expression"`
}

// InListExpression is operand [NOT] IN (items). Items is a single
// SubqueryExpression for IN (SELECT ...).
type InListExpression struct {
	Operand Expression   `json:"operand"`
	Items   []Expression `json:"items"`
	Negated bool         `json:"negated"`
}

// BetweenExpression is operand [NOT] BETWEEN start AND end.
type BetweenExpression struct {
	Operand Expression `json:"operand"`
	Start   Expression `json:"start"`
	End     Expression `json:"end"`
	Negated bool       `json:"negated"`
}

// ExistsExpression is EXISTS (statement).
type ExistsExpression struct {
	Statement Statement `json:"statement"`
}

// FunctionCall is name([DISTINCT] args) [OVER window]. COUNT(*) has the
// single argument AllColumns.
type FunctionCall struct {
	Name      *Identifier  `json:"name"`
	Distinct  bool         `json:"distinct"`
	Arguments []Expression `json:"arguments"`
	Over      WindowOver   `json:"over"`
}

// AllColumns is the "*" argument of COUNT(*).
type AllColumns struct{}

// CaseExpression is CASE [operand] WHEN ... THEN ... [ELSE ...] END.
type CaseExpression struct {
	Operand    Expression    `json:"operand"`
	Branches   []*CaseBranch `json:"branches"`
	ElseResult Expression    `json:"else_result"`
}

// CaseBranch is one WHEN condition THEN result pair.
type CaseBranch struct {
	Condition Expression `json:"condition"`
	Result    Expression `json:"result"`
}

// SubqueryExpression is a parenthesized query used as a value.
type SubqueryExpression struct {
	Statement Statement `json:"statement"`
}

// ---------- Window Types ----------

// WindowReference is OVER name.
type WindowReference struct {
	Name *Identifier `json:"name"`
}

// WindowSpecification is OVER ([name] [PARTITION BY ...] [ORDER BY ...] [frame]).
type WindowSpecification struct {
	Name        *Identifier     `json:"name"`
	PartitionBy []Expression    `json:"partition_by"`
	OrderBy     []*OrderingTerm `json:"order_by"`
	Frame       *WindowFrame    `json:"frame"`
}

// FrameUnit is ROWS, RANGE or GROUPS.
type FrameUnit string

// Frame units.
const (
	FrameRows   FrameUnit = "rows"
	FrameRange  FrameUnit = "range"
	FrameGroups FrameUnit = "groups"
)

// WindowFrame is a frame clause. End is nil for a single-bound frame.
type WindowFrame struct {
	Unit  FrameUnit   `json:"unit"`
	Start *FrameBound `json:"start"`
	End   *FrameBound `json:"end"`
}

// FrameBoundType is the kind of a frame bound.
type FrameBoundType string

// Frame bound types.
const (
	BoundUnboundedPreceding FrameBoundType = "unbounded_preceding"
	BoundPreceding          FrameBoundType = "preceding"
	BoundCurrentRow         FrameBoundType = "current_row"
	BoundFollowing          FrameBoundType = "following"
	BoundUnboundedFollowing FrameBoundType = "unbounded_following"
)

// FrameBound is a frame start or end. Offset is set for preceding and
// following bounds.
type FrameBound struct {
	BoundType FrameBoundType `json:"bound_type"`
	Offset    Expression     `json:"offset"`
}

// WindowDefinition is an entry of a WINDOW clause.
type WindowDefinition struct {
	Name          *Identifier          `json:"name"`
	Specification *WindowSpecification `json:"specification"`
}

func (*Literal) Kind() NodeKind             { return KindLiteral }
func (*ColumnReference) Kind() NodeKind     { return KindColumnReference }
func (*Parameter) Kind() NodeKind           { return KindParameter }
func (*BinaryExpression) Kind() NodeKind    { return KindBinaryExpression }
func (*UnaryExpression) Kind() NodeKind     { return KindUnaryExpression }
func (*GroupedExpression) Kind() NodeKind   { return KindGroupedExpression }
func (*InListExpression) Kind() NodeKind    { return KindInListExpression }
func (*BetweenExpression) Kind() NodeKind   { return KindBetweenExpression }
func (*ExistsExpression) Kind() NodeKind    { return KindExistsExpression }
func (*FunctionCall) Kind() NodeKind        { return KindFunctionCall }
func (*AllColumns) Kind() NodeKind          { return KindAllColumns }
func (*CaseExpression) Kind() NodeKind      { return KindCaseExpression }
func (*CaseBranch) Kind() NodeKind          { return KindCaseBranch }
func (*SubqueryExpression) Kind() NodeKind  { return KindSubqueryExpression }
func (*WindowReference) Kind() NodeKind     { return KindWindowReference }
func (*WindowSpecification) Kind() NodeKind { return KindWindowSpecification }
func (*WindowFrame) Kind() NodeKind         { return KindWindowFrame }
func (*FrameBound) Kind() NodeKind          { return KindFrameBound }
func (*WindowDefinition) Kind() NodeKind    { return KindWindowDefinition }

func (*Literal) expressionNode()            {}
func (*ColumnReference) expressionNode()    {}
func (*Parameter) expressionNode()          {}
func (*BinaryExpression) expressionNode()   {}
func (*UnaryExpression) expressionNode()    {}
func (*GroupedExpression) expressionNode()  {}
func (*InListExpression) expressionNode()   {}
func (*BetweenExpression) expressionNode()  {}
func (*ExistsExpression) expressionNode()   {}
func (*FunctionCall) expressionNode()       {}
func (*AllColumns) expressionNode()         {}
func (*CaseExpression) expressionNode()     {}
func (*SubqueryExpression) expressionNode() {}

func (*WindowReference) windowOverNode()     {}
func (*WindowSpecification) windowOverNode() {}
