package ast

import (
	"rnorm/internal/rawtree"
	"rnorm/internal/source"
)

// Node is one element of the normalized tree. Nodes are built once by the
// normalizer and never modified afterwards.
type Node struct {
	Kind     Kind
	Location source.Range // location of the token that names the construct
	Lexeme   string       // source text of that token
	Info     Info
	Data     NodeData // Kind-specific payload, nil for Break and Next
}

// Info is bookkeeping shared by every node kind.
type Info struct {
	FullRange  source.Range // range of the enclosing raw expression
	FullLexeme string       // text of the enclosing raw expression
	// AdditionalTokens holds comments attached to the node that are not
	// structurally part of it.
	AdditionalTokens []*Node
}

// NodeData is the interface for kind-specific node data.
type NodeData interface {
	nodeData()
}

// CommentData holds data for KindComment.
type CommentData struct {
	Content string // text without the leading '#'
}

func (CommentData) nodeData() {}

// SymbolData holds data for KindSymbol.
type SymbolData struct {
	Name      string
	Namespace string // empty unless written as pkg::name or pkg:::name
	Internal  bool   // true for pkg:::name
}

func (SymbolData) nodeData() {}

// LiteralData holds data for KindLiteral.
type LiteralData struct {
	Kind LiteralKind
	// Number
	Number    float64
	IsInteger bool // 1L
	IsComplex bool // 1i
	// String
	Str   string
	Quote byte // '"' or '\''
	Raw   bool // r"(...)"
	// Logical
	Logical bool
}

func (LiteralData) nodeData() {}

// Grouping records the delimiter pair enclosing an expression list.
type Grouping struct {
	Open  *Node // Symbol node for '{' or '('
	Close *Node // Symbol node for '}' or ')'
}

// ExpressionListData holds data for KindExpressionList.
type ExpressionListData struct {
	Children []*Node
	Grouping *Grouping // nil for implicit lists
}

func (ExpressionListData) nodeData() {}

// WhileData holds data for KindWhileLoop.
type WhileData struct {
	Condition *Node
	Body      *Node // always an ExpressionList
}

func (WhileData) nodeData() {}

// ForData holds data for KindForLoop.
type ForData struct {
	Variable *Node // Symbol
	Vector   *Node
	Body     *Node // always an ExpressionList
}

func (ForData) nodeData() {}

// RepeatData holds data for KindRepeatLoop.
type RepeatData struct {
	Body *Node // always an ExpressionList
}

func (RepeatData) nodeData() {}

// IfData holds data for KindIfThen and KindIfThenElse.
type IfData struct {
	Condition *Node
	Then      *Node // always an ExpressionList
	Otherwise *Node // ExpressionList for KindIfThenElse, nil otherwise
}

func (IfData) nodeData() {}

// UnaryOpData holds data for KindUnaryOp.
type UnaryOpData struct {
	Op      string
	Flavor  OpFlavor
	Operand *Node
}

func (UnaryOpData) nodeData() {}

// BinaryOpData holds data for KindBinaryOp.
type BinaryOpData struct {
	Op     string
	Flavor OpFlavor
	Left   *Node
	Right  *Node
}

func (BinaryOpData) nodeData() {}

// CallData holds data for KindFunctionCall.
type CallData struct {
	Callee    *Node   // Symbol for named calls, any expression otherwise
	Arguments []*Node // KindArgument nodes
}

func (CallData) nodeData() {}

// ArgumentData holds data for KindArgument. Both fields are nil for an
// empty argument such as the middle one in f(a, , b).
type ArgumentData struct {
	Name  *Node // Symbol, nil for positional arguments
	Value *Node
}

func (ArgumentData) nodeData() {}

// FunctionData holds data for KindFunctionDefinition.
type FunctionData struct {
	Parameters []*Node // KindParameter nodes
	Body       *Node   // always an ExpressionList
	Lambda     bool    // written with '\'
}

func (FunctionData) nodeData() {}

// ParameterData holds data for KindParameter.
type ParameterData struct {
	Name    *Node // Symbol
	Default *Node // nil without a default value
	Dots    bool  // the `...` parameter
}

func (ParameterData) nodeData() {}

// AccessData holds data for KindAccess.
type AccessData struct {
	Operator  string // "[", "[[", "$" or "@"
	Accessed  *Node
	Arguments []*Node // KindArgument nodes
}

func (AccessData) nodeData() {}

// DelimiterData holds data for KindDelimiter.
type DelimiterData struct {
	Raw rawtree.Kind
}

func (DelimiterData) nodeData() {}
