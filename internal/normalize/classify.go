package normalize

import (
	"fmt"

	"rnorm/internal/diag"
	"rnorm/internal/rawtree"
)

// isComment reports whether the token is hoisted as a comment.
func isComment(tok *rawtree.Token) bool {
	return tok.Kind == rawtree.KindComment || tok.Kind == rawtree.KindLineDirective
}

// splitComments separates comments from everything else, keeping the order
// within each group.
func splitComments(tokens []*rawtree.Token) (comments, others []*rawtree.Token) {
	for _, tok := range tokens {
		if isComment(tok) {
			comments = append(comments, tok)
		} else {
			others = append(others, tok)
		}
	}
	return comments, others
}

// splitExprs cuts a comment-free token run into statements. Semicolons end
// a statement; a complete expression directly following another one starts
// a new statement on its own. Every semicolon closes a statement, even an
// empty one.
func splitExprs(tokens []*rawtree.Token) [][]*rawtree.Token {
	var segments [][]*rawtree.Token
	last := 0
	lastWasExpr := false
	for i, tok := range tokens {
		switch {
		case tok.Kind == rawtree.KindSemicolon:
			segments = append(segments, tokens[last:i])
			lastWasExpr = false
			last = i + 1
		case lastWasExpr && tok.Kind.IsExpressionBoundary():
			if i > last {
				segments = append(segments, tokens[last:i])
			}
			segments = append(segments, tokens[i:i+1])
			last = i + 1
		default:
			lastWasExpr = tok.Kind.IsExpressionBoundary()
		}
	}
	if last < len(tokens) {
		segments = append(segments, tokens[last:])
	}
	return segments
}

// listShape is the classification of one statement context.
type listShape struct {
	segments [][]*rawtree.Token
	comments []*rawtree.Token
	grouping [2]*rawtree.Token // zero when the run is not wrapped in a pair
}

func (s *listShape) grouped() bool {
	return s.grouping[0] != nil
}

// handleExpressionList classifies a token run. A run opened by '{' or '('
// must be closed by the matching token; its interior becomes the single
// segment and the pair is returned as grouping.
func handleExpressionList(tokens []*rawtree.Token) (*listShape, error) {
	comments, others := splitComments(tokens)
	shape := &listShape{comments: comments}
	if len(others) == 0 {
		return shape, nil
	}

	first := others[0]
	if !first.Kind.IsOpening() {
		shape.segments = splitExprs(others)
		return shape, nil
	}

	want, _ := first.Kind.ClosingFor()
	last := others[len(others)-1]
	if len(others) < 2 || last.Kind != want {
		return nil, structural(diag.NrmUnclosedDelimiter, last.Range,
			fmt.Sprintf("expected %s at the end of the expression list opened by %s", want, first.Kind),
			last)
	}
	interior := others[1 : len(others)-1]
	// R may wrap the statements between braces into an exprlist of their own
	if len(interior) == 1 && interior[0].Kind == rawtree.KindExprList {
		interior = rawtree.Tagged(interior[0].Children)
	}
	shape.segments = [][]*rawtree.Token{interior}
	shape.grouping = [2]*rawtree.Token{first, last}
	return shape, nil
}
