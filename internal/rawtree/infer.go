package rawtree

import (
	"strings"
)

var textKinds = map[string]Kind{
	"(":        KindParenLeft,
	")":        KindParenRight,
	"{":        KindBraceLeft,
	"}":        KindBraceRight,
	"[":        KindBracketLeft,
	"]":        KindBracketRight,
	"[[":       KindDoubleBracketLeft,
	";":        KindSemicolon,
	",":        KindComma,
	"+":        KindPlus,
	"-":        KindMinus,
	"*":        KindTimes,
	"/":        KindDiv,
	"^":        KindExp,
	":":        KindColon,
	"~":        KindTilde,
	"?":        KindQuestion,
	"!":        KindExclamation,
	"$":        KindDollar,
	"@":        KindAt,
	"::":       KindNsGet,
	":::":      KindNsGetInt,
	"<-":       KindLeftAssign,
	"<<-":      KindLeftAssign,
	":=":       KindLeftAssign,
	"->":       KindRightAssign,
	"->>":      KindRightAssign,
	"=":        KindEqualAssign,
	"==":       KindEQ,
	"!=":       KindNE,
	"<":        KindLT,
	"<=":       KindLE,
	">":        KindGT,
	">=":       KindGE,
	"&":        KindAnd,
	"&&":       KindAnd2,
	"|":        KindOr,
	"||":       KindOr2,
	"|>":       KindPipe,
	"=>":       KindPipeBind,
	`\`:        KindLambda,
	"if":       KindIf,
	"else":     KindElse,
	"for":      KindFor,
	"in":       KindForIn,
	"while":    KindWhile,
	"repeat":   KindRepeat,
	"break":    KindBreak,
	"next":     KindNext,
	"function": KindFunction,
	"NULL":     KindNullConst,
	"TRUE":     KindNumericConst,
	"FALSE":    KindNumericConst,
	"NA":       KindNumericConst,
	"Inf":      KindNumericConst,
	"NaN":      KindNumericConst,
}

// InferKind guesses the kind of an untagged token from its text and shape.
// Tagged tokens are returned unchanged.
func InferKind(t *Token) Kind {
	if t.Kind != KindUnknown {
		return t.Kind
	}
	if !t.IsLeaf() {
		return KindExpression
	}
	text := t.Text
	if k, ok := textKinds[text]; ok {
		return k
	}
	switch {
	case strings.HasPrefix(text, "#"):
		return KindComment
	case strings.HasPrefix(text, "NA_"):
		return KindNumericConst
	case len(text) >= 2 && strings.HasPrefix(text, "%") && strings.HasSuffix(text, "%"):
		return KindSpecial
	case isQuoted(text):
		return KindStringConst
	case looksNumeric(text):
		return KindNumericConst
	default:
		return KindSymbol
	}
}

// Tagged returns tokens with every missing kind filled in. The input slice
// and its tokens are never modified; untagged tokens are shallow-copied.
func Tagged(tokens []*Token) []*Token {
	var out []*Token
	for i, t := range tokens {
		if t.Kind != KindUnknown {
			if out != nil {
				out[i] = t
			}
			continue
		}
		if out == nil {
			out = make([]*Token, len(tokens))
			copy(out, tokens[:i])
		}
		cp := *t
		cp.Kind = InferKind(t)
		out[i] = &cp
	}
	if out == nil {
		return tokens
	}
	return out
}

func isQuoted(text string) bool {
	if len(text) < 2 {
		return false
	}
	first, last := text[0], text[len(text)-1]
	if (first == '"' || first == '\'') && last == first {
		return true
	}
	// raw strings: r"(...)", R'[...]', r"---{...}---"
	if (first == 'r' || first == 'R') && (text[1] == '"' || text[1] == '\'') {
		return last == text[1]
	}
	return false
}

func looksNumeric(text string) bool {
	if text == "" {
		return false
	}
	c := text[0]
	if c >= '0' && c <= '9' {
		return true
	}
	return c == '.' && len(text) > 1 && text[1] >= '0' && text[1] <= '9'
}
