package normalize

import (
	"rnorm/internal/ast"
	"rnorm/internal/diag"
	"rnorm/internal/rawtree"
)

// single normalizes one token on its own.
func (c *Context) single(tok *rawtree.Token) (*ast.Node, error) {
	if err := c.enter(tok); err != nil {
		return nil, err
	}
	defer c.leave()

	if kind := rawtree.InferKind(tok); kind != tok.Kind {
		cp := *tok
		cp.Kind = kind
		tok = &cp
	}

	switch {
	case tok.Kind.IsDelimiter():
		return &ast.Node{
			Kind:     ast.KindDelimiter,
			Location: tok.Range,
			Lexeme:   tok.Text,
			Info:     c.info(),
			Data:     ast.DelimiterData{Raw: tok.Kind},
		}, nil
	case isComment(tok):
		return c.comment(tok), nil
	case tok.Kind.IsSymbol():
		return c.symbol(tok, nil, nil), nil
	}

	switch tok.Kind {
	case rawtree.KindExpression, rawtree.KindExprOfAssignOrHelp,
		rawtree.KindLegacyEqualAssign, rawtree.KindExprList:
		return c.expression(tok)
	case rawtree.KindNumericConst:
		return c.number(tok)
	case rawtree.KindStringConst:
		return c.str(tok)
	case rawtree.KindNullConst:
		return c.leaf(tok, ast.KindLiteral, ast.LiteralData{Kind: ast.LiteralNull}), nil
	case rawtree.KindBreak:
		return c.leaf(tok, ast.KindBreak, nil), nil
	case rawtree.KindNext:
		return c.leaf(tok, ast.KindNext, nil), nil
	default:
		return nil, structural(diag.NrmUnknownTokenKind, tok.Range,
			"unknown token kind "+tok.Kind.String(), tok)
	}
}

// operand normalizes a required part of a committed construct.
func (c *Context) operand(tok *rawtree.Token, code diag.Code, what string) (*ast.Node, error) {
	node, err := c.single(tok)
	if err != nil {
		return nil, err
	}
	if node.Kind == ast.KindDelimiter {
		return nil, structural(code, tok.Range, what+" cannot be a delimiter", tok)
	}
	return node, nil
}

func (c *Context) leaf(tok *rawtree.Token, kind ast.Kind, data ast.NodeData) *ast.Node {
	return &ast.Node{
		Kind:     kind,
		Location: tok.Range,
		Lexeme:   tok.Text,
		Info:     c.info(),
		Data:     data,
	}
}
