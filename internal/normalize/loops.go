package normalize

import (
	"rnorm/internal/ast"
	"rnorm/internal/diag"
	"rnorm/internal/rawtree"
)

// expect checks a token the construct has already committed to.
func expect(tok *rawtree.Token, want rawtree.Kind, code diag.Code, what string) error {
	if tok.Kind == want {
		return nil
	}
	return structural(code, tok.Range, "expected "+want.String()+" "+what, tok)
}

// body normalizes a loop, branch or function body. The result is always a list.
func (c *Context) body(tok *rawtree.Token, code diag.Code, what string) (*ast.Node, error) {
	node, err := c.operand(tok, code, what)
	if err != nil {
		return nil, err
	}
	return ast.EnsureExpressionList(node), nil
}

// tryWhile matches `while ( cond ) body`.
func tryWhile(c *Context, tokens []*rawtree.Token) (*ast.Node, bool, error) {
	if len(tokens) != 5 || tokens[0].Kind != rawtree.KindWhile {
		return nil, false, nil
	}
	if err := expect(tokens[1], rawtree.KindParenLeft, diag.NrmUnexpectedToken, "after while"); err != nil {
		return nil, true, err
	}
	if err := expect(tokens[3], rawtree.KindParenRight, diag.NrmUnexpectedToken, "after the while condition"); err != nil {
		return nil, true, err
	}
	cond, err := c.operand(tokens[2], diag.NrmMissingOperand, "while condition")
	if err != nil {
		return nil, true, err
	}
	body, err := c.body(tokens[4], diag.NrmMissingOperand, "while body")
	if err != nil {
		return nil, true, err
	}
	return c.leaf(tokens[0], ast.KindWhileLoop, ast.WhileData{Condition: cond, Body: body}), true, nil
}

// tryRepeat matches `repeat body`.
func tryRepeat(c *Context, tokens []*rawtree.Token) (*ast.Node, bool, error) {
	if len(tokens) != 2 || tokens[0].Kind != rawtree.KindRepeat {
		return nil, false, nil
	}
	body, err := c.body(tokens[1], diag.NrmMissingOperand, "repeat body")
	if err != nil {
		return nil, true, err
	}
	return c.leaf(tokens[0], ast.KindRepeatLoop, ast.RepeatData{Body: body}), true, nil
}

// tryFor matches `for forcond body` where forcond is `( var in vector )`.
// Comments written inside the head are attached to the loop.
func tryFor(c *Context, tokens []*rawtree.Token) (*ast.Node, bool, error) {
	if len(tokens) != 3 || tokens[0].Kind != rawtree.KindFor {
		return nil, false, nil
	}
	head := tokens[1]
	if head.Kind != rawtree.KindForCondition || head.IsLeaf() {
		return nil, true, structural(diag.NrmBadForHeader, head.Range,
			"expected a for condition after for", head)
	}

	rawComments, parts := splitComments(rawtree.Tagged(head.Children))
	in := -1
	for i, tok := range parts {
		if tok.Kind == rawtree.KindForIn {
			in = i
			break
		}
	}
	if in < 1 || in+1 >= len(parts) {
		return nil, true, structural(diag.NrmBadForHeader, head.Range,
			"expected `variable in vector` in the for condition", parts...)
	}
	variable := parts[in-1]
	if !variable.Kind.IsSymbol() {
		return nil, true, structural(diag.NrmBadForHeader, variable.Range,
			"expected a symbol as the loop variable", variable)
	}
	vector, err := c.operand(parts[in+1], diag.NrmBadForHeader, "for vector")
	if err != nil {
		return nil, true, err
	}
	body, err := c.body(tokens[2], diag.NrmMissingOperand, "for body")
	if err != nil {
		return nil, true, err
	}

	node := c.leaf(tokens[0], ast.KindForLoop, ast.ForData{
		Variable: c.symbol(variable, nil, nil),
		Vector:   vector,
		Body:     body,
	})
	node.Info.AdditionalTokens = c.comments(rawComments)
	return node, true, nil
}
