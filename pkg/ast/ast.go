// Package ast defines the typed statement tree produced by the parser.
//
// Every node implements Node and reports its NodeKind, which is also the
// "node_kind" discriminant written when a node is encoded as JSON. Nodes
// form a strict tree; a node never appears under two parents.
//
// The top level of a parse is a SegmentedStatement: an ordered list of
// segments that are either parsed statements or raw fragments holding
// source text the grammar could not represent. Concatenating the source
// text of all segments reproduces the parsed input exactly.
package ast

// NodeKind is the discriminant of an AST node.
type NodeKind string

// Node kinds.
const (
	KindSegmentedStatement NodeKind = "segmented_statement"
	KindStatementSegment   NodeKind = "statement_segment"
	KindRawFragment        NodeKind = "raw_fragment"

	KindSelectStatement     NodeKind = "select_statement"
	KindCompoundSelect      NodeKind = "compound_select"
	KindCompoundBranch      NodeKind = "compound_select_branch"
	KindInsertStatement     NodeKind = "insert_statement"
	KindInsertValues        NodeKind = "insert_values"
	KindInsertSelect        NodeKind = "insert_select"
	KindOnConflictClause    NodeKind = "on_conflict_clause"
	KindConflictTarget      NodeKind = "conflict_target"
	KindOnConflictDoNothing NodeKind = "on_conflict_do_nothing"
	KindOnConflictDoUpdate  NodeKind = "on_conflict_do_update"
	KindUpdateStatement     NodeKind = "update_statement"
	KindDeleteStatement     NodeKind = "delete_statement"
	KindAssignment          NodeKind = "assignment"

	KindWithClause            NodeKind = "with_clause"
	KindCommonTableExpression NodeKind = "common_table_expression"
	KindSelectStar            NodeKind = "select_star"
	KindSelectQualifiedStar   NodeKind = "select_qualified_star"
	KindSelectExpression      NodeKind = "select_expression"
	KindFromClause            NodeKind = "from_clause"
	KindJoin                  NodeKind = "join"
	KindTableReference        NodeKind = "table_reference"
	KindSubquery              NodeKind = "subquery"
	KindOrderingTerm          NodeKind = "ordering_term"
	KindIdentifier            NodeKind = "identifier"

	KindLiteral            NodeKind = "literal"
	KindColumnReference    NodeKind = "column_reference"
	KindParameter          NodeKind = "parameter"
	KindBinaryExpression   NodeKind = "binary_expression"
	KindUnaryExpression    NodeKind = "unary_expression"
	KindGroupedExpression  NodeKind = "grouped_expression"
	KindInListExpression   NodeKind = "in_list_expression"
	KindBetweenExpression  NodeKind = "between_expression"
	KindExistsExpression   NodeKind = "exists_expression"
	KindFunctionCall       NodeKind = "function_call"
	KindAllColumns         NodeKind = "all_columns"
	KindCaseExpression     NodeKind = "case_expression"
	KindCaseBranch         NodeKind = "case_branch"
	KindSubqueryExpression NodeKind = "subquery_expression"

	KindWindowReference     NodeKind = "window_reference"
	KindWindowSpecification NodeKind = "window_specification"
	KindWindowFrame         NodeKind = "window_frame"
	KindFrameBound          NodeKind = "frame_bound"
	KindWindowDefinition    NodeKind = "window_definition"
)

// Node is implemented by every AST node.
type Node interface {
	Kind() NodeKind
}

// Statement is a top-level SQL statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a value expression or predicate.
type Expression interface {
	Node
	expressionNode()
}

// Relation is an item of a FROM clause or the right side of a join.
type Relation interface {
	Node
	relationNode()
}

// SelectItem is an entry of a SELECT projection.
type SelectItem interface {
	Node
	selectItemNode()
}

// Segment is an element of a SegmentedStatement.
type Segment interface {
	Node
	SourceText() string
	segmentNode()
}

// WindowOver is the target of an OVER clause.
type WindowOver interface {
	Node
	windowOverNode()
}

// InsertSource is the row source of an INSERT.
type InsertSource interface {
	Node
	insertSourceNode()
}

// ConflictAction is the action of an ON CONFLICT clause.
type ConflictAction interface {
	Node
	conflictActionNode()
}

// ---------- Segments ----------

// SegmentedStatement is the result of parsing one input text.
type SegmentedStatement struct {
	Segments []Segment `json:"segments"`
}

// SourceText concatenates the source text of all segments.
func (s *SegmentedStatement) SourceText() string {
	var n int
	for _, seg := range s.Segments {
		n += len(seg.SourceText())
	}
	buf := make([]byte, 0, n)
	for _, seg := range s.Segments {
		buf = append(buf, seg.SourceText()...)
	}
	return string(buf)
}

// StatementSegment is a parsed statement and the text it was parsed from.
type StatementSegment struct {
	Statement Statement `json:"statement"`
	SQLText   string    `json:"sql_text"`
}

// SourceText returns the text the statement was parsed from.
func (s *StatementSegment) SourceText() string { return s.SQLText }

// RawFragment is source text kept verbatim. It appears as a segment, a
// relation, a condition or a LIMIT/OFFSET value.
type RawFragment struct {
	SQLText string `json:"sql_text"`
}

// SourceText returns the fragment text.
func (r *RawFragment) SourceText() string { return r.SQLText }

func (*SegmentedStatement) Kind() NodeKind { return KindSegmentedStatement }
func (*StatementSegment) Kind() NodeKind   { return KindStatementSegment }
func (*RawFragment) Kind() NodeKind        { return KindRawFragment }

func (*StatementSegment) segmentNode() {}
func (*RawFragment) segmentNode()      {}
func (*RawFragment) expressionNode()   {}
func (*RawFragment) relationNode()     {}

// Identifier is a name. Quoted identifiers are stored unescaped.
type Identifier struct {
	Name   string `json:"name"`
	Quoted bool   `json:"quoted"`
}

func (*Identifier) Kind() NodeKind { return KindIdentifier }

// Ident returns an unquoted identifier.
func Ident(name string) *Identifier {
	return &Identifier{Name: name}
}
