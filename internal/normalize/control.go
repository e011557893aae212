package normalize

import (
	"rnorm/internal/ast"
	"rnorm/internal/diag"
	"rnorm/internal/rawtree"
)

// tryIfThen matches `if ( cond ) then`.
func tryIfThen(c *Context, tokens []*rawtree.Token) (*ast.Node, bool, error) {
	if len(tokens) != 5 || tokens[0].Kind != rawtree.KindIf {
		return nil, false, nil
	}
	if err := expect(tokens[1], rawtree.KindParenLeft, diag.NrmUnexpectedToken, "after if"); err != nil {
		return nil, true, err
	}
	if err := expect(tokens[3], rawtree.KindParenRight, diag.NrmUnexpectedToken, "after the if condition"); err != nil {
		return nil, true, err
	}
	cond, err := c.operand(tokens[2], diag.NrmMissingOperand, "if condition")
	if err != nil {
		return nil, true, err
	}
	then, err := c.body(tokens[4], diag.NrmMissingOperand, "then branch")
	if err != nil {
		return nil, true, err
	}
	return c.leaf(tokens[0], ast.KindIfThen, ast.IfData{Condition: cond, Then: then}), true, nil
}

// tryIfThenElse matches `if ( cond ) then else otherwise`.
func tryIfThenElse(c *Context, tokens []*rawtree.Token) (*ast.Node, bool, error) {
	if len(tokens) != 7 || tokens[0].Kind != rawtree.KindIf {
		return nil, false, nil
	}
	node, matched, err := tryIfThen(c, tokens[:5])
	if err != nil {
		return nil, true, err
	}
	if !matched {
		return nil, false, nil
	}
	if err := expect(tokens[5], rawtree.KindElse, diag.NrmUnexpectedToken, "after the then branch"); err != nil {
		return nil, true, err
	}
	otherwise, err := c.body(tokens[6], diag.NrmMissingOperand, "else branch")
	if err != nil {
		return nil, true, err
	}
	data := node.Data.(ast.IfData)
	data.Otherwise = otherwise
	node.Kind = ast.KindIfThenElse
	node.Data = data
	return node, true, nil
}
