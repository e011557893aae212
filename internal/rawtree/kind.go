package rawtree

// Kind is the grammar-level token kind assigned by R's parser.
// Values use the spelling of utils::getParseData, so punctuation kinds
// keep their quotes ("'('") while named tokens are upper case.
type Kind string

const (
	// KindUnknown marks a token whose kind was not supplied by the producer.
	KindUnknown Kind = ""

	// KindExprList is the root of every parse tree.
	KindExprList Kind = "exprlist"
	// KindExpression is a syntactically complete expression.
	KindExpression Kind = "expr"
	// KindExprOfAssignOrHelp wraps assignments and `?` at top level (R >= 4.0).
	KindExprOfAssignOrHelp Kind = "expr_or_assign_or_help"
	// KindLegacyEqualAssign wraps `=` assignments in older parsers.
	KindLegacyEqualAssign Kind = "equal_assign"

	KindComment       Kind = "COMMENT"
	KindLineDirective Kind = "LINE_DIRECTIVE"

	KindNullConst    Kind = "NULL_CONST"
	KindNumericConst Kind = "NUM_CONST"
	KindStringConst  Kind = "STR_CONST"

	KindSymbol             Kind = "SYMBOL"
	KindSymbolPackage      Kind = "SYMBOL_PACKAGE"
	KindSymbolFunctionCall Kind = "SYMBOL_FUNCTION_CALL"
	KindSymbolFormals      Kind = "SYMBOL_FORMALS"
	KindSymbolSub          Kind = "SYMBOL_SUB"
	KindSlot               Kind = "SLOT"

	KindEqualSub     Kind = "EQ_SUB"
	KindEqualFormals Kind = "EQ_FORMALS"
	KindEqualAssign  Kind = "EQ_ASSIGN"
	KindLeftAssign   Kind = "LEFT_ASSIGN"
	KindRightAssign  Kind = "RIGHT_ASSIGN"

	KindPlus        Kind = "'+'"
	KindMinus       Kind = "'-'"
	KindTimes       Kind = "'*'"
	KindDiv         Kind = "'/'"
	KindColon       Kind = "':'"
	KindExp         Kind = "'^'"
	KindTilde       Kind = "'~'"
	KindQuestion    Kind = "'?'"
	KindExclamation Kind = "'!'"
	KindSpecial     Kind = "SPECIAL"
	KindPipe        Kind = "PIPE"
	KindPipeBind    Kind = "PIPEBIND"

	KindLT   Kind = "LT"
	KindLE   Kind = "LE"
	KindGT   Kind = "GT"
	KindGE   Kind = "GE"
	KindEQ   Kind = "EQ"
	KindNE   Kind = "NE"
	KindAnd  Kind = "AND"
	KindAnd2 Kind = "AND2"
	KindOr   Kind = "OR"
	KindOr2  Kind = "OR2"

	KindDollar   Kind = "'$'"
	KindAt       Kind = "'@'"
	KindNsGet    Kind = "NS_GET"
	KindNsGetInt Kind = "NS_GET_INT"

	KindParenLeft         Kind = "'('"
	KindParenRight        Kind = "')'"
	KindBraceLeft         Kind = "'{'"
	KindBraceRight        Kind = "'}'"
	KindBracketLeft       Kind = "'['"
	KindBracketRight      Kind = "']'"
	KindDoubleBracketLeft Kind = "LBB"
	KindSemicolon         Kind = "';'"
	KindComma             Kind = "','"

	KindFunction     Kind = "FUNCTION"
	KindLambda       Kind = `'\\'`
	KindIf           Kind = "IF"
	KindElse         Kind = "ELSE"
	KindFor          Kind = "FOR"
	KindForCondition Kind = "forcond"
	KindForIn        Kind = "IN"
	KindWhile        Kind = "WHILE"
	KindRepeat       Kind = "REPEAT"
	KindBreak        Kind = "BREAK"
	KindNext         Kind = "NEXT"
)

// xmlparsedata renames punctuation so it can be used as an element name.
var xmlAliases = map[string]Kind{
	"OP-LEFT-PAREN":    KindParenLeft,
	"OP-RIGHT-PAREN":   KindParenRight,
	"OP-LEFT-BRACE":    KindBraceLeft,
	"OP-RIGHT-BRACE":   KindBraceRight,
	"OP-LEFT-BRACKET":  KindBracketLeft,
	"OP-RIGHT-BRACKET": KindBracketRight,
	"OP-SEMICOLON":     KindSemicolon,
	"OP-COMMA":         KindComma,
	"OP-PLUS":          KindPlus,
	"OP-MINUS":         KindMinus,
	"OP-STAR":          KindTimes,
	"OP-SLASH":         KindDiv,
	"OP-COLON":         KindColon,
	"OP-CARET":         KindExp,
	"OP-TILDE":         KindTilde,
	"OP-QUESTION":      KindQuestion,
	"OP-EXCLAMATION":   KindExclamation,
	"OP-DOLLAR":        KindDollar,
	"OP-AT":            KindAt,
	"OP-LAMBDA":        KindLambda,
}

// reverse of xmlAliases, used when writing XML
var xmlNames = func() map[Kind]string {
	out := make(map[Kind]string, len(xmlAliases))
	for name, kind := range xmlAliases {
		out[kind] = name
	}
	return out
}()

// CanonicalKind maps either spelling (getParseData or xmlparsedata) to a Kind.
func CanonicalKind(name string) Kind {
	if k, ok := xmlAliases[name]; ok {
		return k
	}
	return Kind(name)
}

// XMLName returns the element name xmlparsedata uses for k.
func (k Kind) XMLName() string {
	if name, ok := xmlNames[k]; ok {
		return name
	}
	return string(k)
}

func (k Kind) String() string {
	if k == KindUnknown {
		return "<untagged>"
	}
	return string(k)
}

// IsExpressionBoundary reports whether k denotes a complete expression that
// may follow another one without a separating semicolon.
func (k Kind) IsExpressionBoundary() bool {
	switch k {
	case KindExpression, KindExprOfAssignOrHelp, KindLegacyEqualAssign:
		return true
	default:
		return false
	}
}

// IsOpening reports whether k opens a brace or paren group.
func (k Kind) IsOpening() bool {
	return k == KindParenLeft || k == KindBraceLeft
}

// ClosingFor returns the kind that closes an opening kind.
func (k Kind) ClosingFor() (Kind, bool) {
	switch k {
	case KindParenLeft:
		return KindParenRight, true
	case KindBraceLeft:
		return KindBraceRight, true
	case KindBracketLeft:
		return KindBracketRight, true
	default:
		return KindUnknown, false
	}
}

// IsSymbol reports whether k names an identifier-like token.
func (k Kind) IsSymbol() bool {
	switch k {
	case KindSymbol, KindSymbolPackage, KindSymbolFunctionCall, KindSymbolFormals,
		KindSymbolSub, KindSlot:
		return true
	default:
		return false
	}
}

// IsDelimiter reports whether k is punctuation that never becomes a tree node.
func (k Kind) IsDelimiter() bool {
	switch k {
	case KindParenLeft, KindParenRight, KindBraceLeft, KindBraceRight,
		KindBracketLeft, KindBracketRight, KindDoubleBracketLeft,
		KindSemicolon, KindComma:
		return true
	default:
		return false
	}
}
