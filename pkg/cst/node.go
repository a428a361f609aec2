// Package cst provides the default grammar for sqlseg: a lexer and a
// recursive descent parser that turn SQL text into a concrete syntax tree.
//
// The tree keeps every token of the input. Each interior node is tagged
// with the grammar production that produced it (a Kind), and leaves are
// Terminal nodes wrapping a single token. Regions the grammar cannot
// represent inside an otherwise valid statement are kept as Raw nodes
// holding the exact source text.
//
// # Usage
//
//	root := cst.ParseCST("SELECT a FROM t WHERE b = ?")
//	if root == nil {
//	    // the grammar rejected the input
//	}
package cst

import (
	"fmt"

	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// Kind identifies the grammar production a Node was built from.
type Kind int

// Grammar productions. The set is closed; consumers switch over it.
const (
	Terminal Kind = iota // single token
	Raw                  // unparsed source region

	Statement             // statement [";"]
	SelectStatement       // [with] core (compound_operator core)* [order_by] [limit] [offset]
	WithClause            // WITH [RECURSIVE] cte ("," cte)*
	CommonTableExpression // name [column_list] AS "(" select_statement ")"
	ColumnNameList        // "(" name ("," name)* ")"
	SelectCore            // SELECT [DISTINCT|ALL] result_column ("," result_column)* [from] [where] [group_by] [having] [window]
	CompoundOperator      // UNION [ALL|DISTINCT] | INTERSECT | EXCEPT
	ResultColumn          // "*" | name "." "*" | expr [[AS] alias]
	Alias                 // [AS] name
	FromClause            // FROM from_item ("," from_item)*
	FromItem              // table_or_subquery join_clause*
	TableOrSubquery       // qualified_name [alias] | "(" select_statement ")" [alias] | "(" table_or_subquery ")" [alias]
	QualifiedName         // name ["." name]
	JoinClause            // [join_type] JOIN table_or_subquery [ON expr | USING column_list]
	JoinType              // INNER | LEFT [OUTER] | RIGHT [OUTER] | FULL [OUTER]
	WhereClause           // WHERE expr
	GroupByClause         // GROUP BY expr ("," expr)*
	HavingClause          // HAVING expr
	WindowDefinitionList  // WINDOW window_definition ("," window_definition)*
	WindowDefinition      // name AS window_specification
	OrderByClause         // ORDER BY ordering_term ("," ordering_term)*
	OrderingTerm          // expr [ASC|DESC] [NULLS FIRST|LAST]
	LimitClause           // LIMIT expr
	OffsetClause          // OFFSET expr

	InsertStatement    // INSERT INTO qualified_name [column_list] (values_clause | select_statement) [on_conflict]
	ValuesClause       // VALUES values_row ("," values_row)*
	ValuesRow          // "(" expr ("," expr)* ")"
	OnConflictClause   // ON CONFLICT [conflict_target] DO (NOTHING | UPDATE SET assignments [WHERE expr])
	ConflictTarget     // "(" expr ("," expr)* ")"
	UpdateStatement    // UPDATE table_or_subquery SET assignment_list [where]
	DeleteStatement    // DELETE FROM table_or_subquery [where]
	AssignmentList     // assignment ("," assignment)*
	Assignment         // name "=" expr
	ExpressionList     // expr ("," expr)*
	OrExpression       // and_expr (OR and_expr)+
	AndExpression      // atomic_predicate (AND atomic_predicate)+
	AtomicPredicate    // NOT pred | EXISTS subquery | value cmp value | value [NOT] BETWEEN ... | value [NOT] IN ... | value [NOT] LIKE value | value IS [NOT] NULL | value
	AdditiveExpression // mul (("+"|"-") mul)+
	MultiplicativeExpr // json (("*"|"/"|"%") json)+
	JSONExpression     // unary (("->"|"->>") unary)+
	UnaryExpression    // "-" unary
	Literal            // NUMBER | STRING | TRUE | FALSE | NULL
	Parameter          // ? | ?N
	ColumnReference    // name ["." name]
	ParenExpression    // "(" expr ")"
	SubqueryExpression // "(" select_statement ")"
	FunctionCall       // name "(" [DISTINCT] ["*" | expr_list] ")" [window_clause]
	CaseExpression     // CASE [expr] (WHEN expr THEN expr)+ [ELSE expr] END
	WindowClause       // OVER (name | window_specification)
	WindowSpecification
	PartitionByClause // PARTITION BY expr ("," expr)*
	FrameClause       // (ROWS|RANGE|GROUPS) (BETWEEN frame_bound AND frame_bound | frame_bound)
	FrameBound        // UNBOUNDED PRECEDING | expr PRECEDING | CURRENT ROW | expr FOLLOWING | UNBOUNDED FOLLOWING
)

var kindNames = [...]string{
	Terminal:              "terminal",
	Raw:                   "raw",
	Statement:             "statement",
	SelectStatement:       "select_statement",
	WithClause:            "with_clause",
	CommonTableExpression: "common_table_expression",
	ColumnNameList:        "column_name_list",
	SelectCore:            "select_core",
	CompoundOperator:      "compound_operator",
	ResultColumn:          "result_column",
	Alias:                 "alias",
	FromClause:            "from_clause",
	FromItem:              "from_item",
	TableOrSubquery:       "table_or_subquery",
	QualifiedName:         "qualified_name",
	JoinClause:            "join_clause",
	JoinType:              "join_type",
	WhereClause:           "where_clause",
	GroupByClause:         "group_by_clause",
	HavingClause:          "having_clause",
	WindowDefinitionList:  "window_definition_list",
	WindowDefinition:      "window_definition",
	OrderByClause:         "order_by_clause",
	OrderingTerm:          "ordering_term",
	LimitClause:           "limit_clause",
	OffsetClause:          "offset_clause",
	InsertStatement:       "insert_statement",
	ValuesClause:          "values_clause",
	ValuesRow:             "values_row",
	OnConflictClause:      "on_conflict_clause",
	ConflictTarget:        "conflict_target",
	UpdateStatement:       "update_statement",
	DeleteStatement:       "delete_statement",
	AssignmentList:        "assignment_list",
	Assignment:            "assignment",
	ExpressionList:        "expression_list",
	OrExpression:          "or_expression",
	AndExpression:         "and_expression",
	AtomicPredicate:       "atomic_predicate",
	AdditiveExpression:    "additive_expression",
	MultiplicativeExpr:    "multiplicative_expression",
	JSONExpression:        "json_expression",
	UnaryExpression:       "unary_expression",
	Literal:               "literal",
	Parameter:             "parameter",
	ColumnReference:       "column_reference",
	ParenExpression:       "paren_expression",
	SubqueryExpression:    "subquery_expression",
	FunctionCall:          "function_call",
	CaseExpression:        "case_expression",
	WindowClause:          "window_clause",
	WindowSpecification:   "window_specification",
	PartitionByClause:     "partition_by_clause",
	FrameClause:           "frame_clause",
	FrameBound:            "frame_bound",
}

// String returns the production name.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is a node of the concrete syntax tree.
type Node struct {
	Kind     Kind
	Token    token.Token // set for Terminal nodes
	Text     string      // exact source text for Raw nodes
	Span     token.Span
	Children []*Node
}

// NewTerminal wraps a token in a Terminal node.
func NewTerminal(tok token.Token) *Node {
	return &Node{Kind: Terminal, Token: tok, Span: tok.Span()}
}

// NewNode creates an interior node whose span covers its children.
func NewNode(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind}
	for _, c := range children {
		n.Append(c)
	}
	return n
}

// Append adds a child and widens the node's span to include it.
// Nil children are ignored.
func (n *Node) Append(child *Node) {
	if child == nil {
		return
	}
	if len(n.Children) == 0 {
		n.Span.Start = child.Span.Start
	}
	n.Span.End = child.Span.End
	n.Children = append(n.Children, child)
}

// IsTerminal returns true if the node wraps a token of type t.
func (n *Node) IsTerminal(t token.TokenType) bool {
	return n != nil && n.Kind == Terminal && n.Token.Type == t
}

// Child returns the first child of the given kind, or nil.
func (n *Node) Child(kind Kind) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// ChildrenOf returns all children of the given kind.
func (n *Node) ChildrenOf(kind Kind) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// HasToken returns true if a direct child is a terminal of type t.
func (n *Node) HasToken(t token.TokenType) bool {
	return n.TokenIndex(t) >= 0
}

// TokenIndex returns the index of the first direct terminal child of type t,
// or -1.
func (n *Node) TokenIndex(t token.TokenType) int {
	if n == nil {
		return -1
	}
	for i, c := range n.Children {
		if c.IsTerminal(t) {
			return i
		}
	}
	return -1
}

// NonTerminals returns the children that are not Terminal nodes, in order.
func (n *Node) NonTerminals() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Kind != Terminal {
			out = append(out, c)
		}
	}
	return out
}

// SourceText returns the exact source text covered by the node.
func (n *Node) SourceText(src string) string {
	if n == nil {
		return ""
	}
	if n.Kind == Raw {
		return n.Text
	}
	return n.Span.Text(src)
}
