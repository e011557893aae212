package ast

// Kind enumerates normalized node kinds.
type Kind uint8

const (
	// KindExpressionList is an ordered statement sequence, optionally grouped by braces or parens.
	KindExpressionList Kind = iota
	// KindComment is a source comment; it only appears in Info.AdditionalTokens or at top level.
	KindComment
	// KindSymbol is an identifier, possibly qualified by a namespace.
	KindSymbol
	// KindLiteral is a number, string, logical or NULL constant.
	KindLiteral
	// KindWhileLoop is `while (cond) body`.
	KindWhileLoop
	// KindForLoop is `for (var in vector) body`.
	KindForLoop
	// KindRepeatLoop is `repeat body`.
	KindRepeatLoop
	// KindIfThen is `if (cond) then`.
	KindIfThen
	// KindIfThenElse is `if (cond) then else otherwise`.
	KindIfThenElse
	// KindUnaryOp is a prefix operator application.
	KindUnaryOp
	// KindBinaryOp is an infix operator application, assignments included.
	KindBinaryOp
	// KindFunctionCall is `callee(args...)`.
	KindFunctionCall
	// KindArgument is one (possibly named, possibly empty) call or access argument.
	KindArgument
	// KindFunctionDefinition is `function(params) body` or `\(params) body`.
	KindFunctionDefinition
	// KindParameter is one formal parameter of a function definition.
	KindParameter
	// KindAccess is `x[...]`, `x[[...]]`, `x$name` or `x@slot`.
	KindAccess
	// KindBreak is the `break` keyword.
	KindBreak
	// KindNext is the `next` keyword.
	KindNext
	// KindDelimiter marks consumed punctuation. It never survives normalization.
	KindDelimiter
)

// String returns a human-readable name for the node kind.
func (k Kind) String() string {
	switch k {
	case KindExpressionList:
		return "ExpressionList"
	case KindComment:
		return "Comment"
	case KindSymbol:
		return "Symbol"
	case KindLiteral:
		return "Literal"
	case KindWhileLoop:
		return "WhileLoop"
	case KindForLoop:
		return "ForLoop"
	case KindRepeatLoop:
		return "RepeatLoop"
	case KindIfThen:
		return "IfThen"
	case KindIfThenElse:
		return "IfThenElse"
	case KindUnaryOp:
		return "UnaryOp"
	case KindBinaryOp:
		return "BinaryOp"
	case KindFunctionCall:
		return "FunctionCall"
	case KindArgument:
		return "Argument"
	case KindFunctionDefinition:
		return "FunctionDefinition"
	case KindParameter:
		return "Parameter"
	case KindAccess:
		return "Access"
	case KindBreak:
		return "Break"
	case KindNext:
		return "Next"
	case KindDelimiter:
		return "Delimiter"
	default:
		return "Unknown"
	}
}

// OpFlavor groups operators by their semantic family.
type OpFlavor uint8

const (
	FlavorArithmetic OpFlavor = iota
	FlavorComparison
	FlavorLogical
	FlavorModelFormula
	FlavorAssignment
	FlavorHelp
	FlavorSpecial
	FlavorPipe
)

func (f OpFlavor) String() string {
	switch f {
	case FlavorArithmetic:
		return "arithmetic"
	case FlavorComparison:
		return "comparison"
	case FlavorLogical:
		return "logical"
	case FlavorModelFormula:
		return "model formula"
	case FlavorAssignment:
		return "assignment"
	case FlavorHelp:
		return "help"
	case FlavorSpecial:
		return "special"
	case FlavorPipe:
		return "pipe"
	default:
		return "unknown"
	}
}

// LiteralKind enumerates literal value kinds.
type LiteralKind uint8

const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralLogical
	LiteralNull
	LiteralNA
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralNumber:
		return "number"
	case LiteralString:
		return "string"
	case LiteralLogical:
		return "logical"
	case LiteralNull:
		return "null"
	case LiteralNA:
		return "na"
	default:
		return "unknown"
	}
}
