package normalize

import (
	"context"
	"slices"

	"rnorm/internal/ast"
	"rnorm/internal/diag"
	"rnorm/internal/rawtree"
	"rnorm/internal/trace"
)

// File normalizes the root of a raw tree into an ungrouped expression list.
// Comments are attached to the first statement only when the top level
// splits into several statements; otherwise they stay on the returned list.
func File(ctx context.Context, root *rawtree.Token, opts Options) (*ast.Node, error) {
	c := NewContext(ctx, opts)
	span := trace.Begin(c.tracer, trace.ScopeStage, "normalize", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")

	if err := c.ctx.Err(); err != nil {
		return nil, err
	}

	tokens := root.Children
	if root.Kind != rawtree.KindExprList && root.Kind != rawtree.KindUnknown {
		tokens = []*rawtree.Token{root}
	}
	c.CurrentRange, c.CurrentLexeme = root.Range, root.Text

	nodes, err := Expressions(c, tokens)
	if err != nil {
		return nil, err
	}
	comments, children := partitionComments(nodes)
	return &ast.Node{
		Kind:     ast.KindExpressionList,
		Location: root.Range,
		Lexeme:   root.Text,
		Info: ast.Info{
			FullRange:        root.Range,
			FullLexeme:       root.Text,
			AdditionalTokens: comments,
		},
		Data: ast.ExpressionListData{Children: children},
	}, nil
}

// Expressions normalizes a token run of one statement context. The result
// never contains delimiters; comments that have no node to attach to are
// returned as Comment nodes.
func Expressions(c *Context, tokens []*rawtree.Token) ([]*ast.Node, error) {
	nodes, err := c.expressions(tokens)
	if err != nil {
		return nil, err
	}
	if err := checkNoDelimiter(nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// expressions is the recursive assembler. Its result may still hold
// delimiters produced by the per-token fallback; callers strip or reject them.
func (c *Context) expressions(tokens []*rawtree.Token) ([]*ast.Node, error) {
	if len(tokens) == 0 {
		trace.Point(c.tracer, trace.ScopeStage, "normalize", "no children received, skipping")
		return nil, nil
	}
	if err := c.enter(tokens[0]); err != nil {
		return nil, err
	}
	defer c.leave()

	tokens = rawtree.Tagged(tokens)

	var leading []*ast.Node
	if len(tokens) > 1 {
		shape, err := handleExpressionList(tokens)
		if err != nil {
			return nil, err
		}
		comments := c.comments(shape.comments)

		if len(shape.segments) > 1 || shape.grouped() {
			var processed []*ast.Node
			for _, seg := range shape.segments {
				nodes, err := c.expressions(seg)
				if err != nil {
					return nil, err
				}
				if err := checkNoDelimiter(nodes); err != nil {
					return nil, err
				}
				processed = append(processed, nodes...)
			}
			switch {
			case shape.grouped():
				return []*ast.Node{c.groupedList(shape.grouping, processed, comments)}, nil
			case len(processed) > 0:
				processed[0] = withComments(processed[0], comments)
				return processed, nil
			default:
				return comments, nil
			}
		}

		if len(shape.segments) == 0 {
			return comments, nil
		}
		tokens = shape.segments[0]
		leading = comments
	}

	nodes, err := c.dispatch(tokens)
	if err != nil {
		return nil, err
	}
	if len(leading) == 0 {
		return nodes, nil
	}
	return append(leading, nodes...), nil
}

// groupedList wraps statements into a list bound to its brace or paren pair.
func (c *Context) groupedList(pair [2]*rawtree.Token, children, comments []*ast.Node) *ast.Node {
	open, closing := groupingMarker(c, pair[0]), groupingMarker(c, pair[1])
	info := c.info()
	info.AdditionalTokens = comments
	return &ast.Node{
		Kind:     ast.KindExpressionList,
		Location: pair[0].Range.Cover(pair[1].Range),
		Lexeme:   c.CurrentLexeme,
		Info:     info,
		Data: ast.ExpressionListData{
			Children: children,
			Grouping: &ast.Grouping{Open: open, Close: closing},
		},
	}
}

// expression normalizes a single expr-like token: calls, accesses and
// function definitions are recognized first, everything else re-enters
// the assembler with the expression as the enclosing context.
func (c *Context) expression(tok *rawtree.Token) (*ast.Node, error) {
	restore := c.stamp(tok)
	defer restore()

	children := rawtree.Tagged(tok.Children)
	rawComments, others := splitComments(children)

	for _, try := range []constructor{tryCall, tryAccess, tryFunctionDefinition} {
		node, matched, err := try(c, others)
		if err != nil {
			return nil, err
		}
		if matched {
			return withComments(node, c.comments(rawComments)), nil
		}
	}

	nodes, err := c.expressions(children)
	if err != nil {
		return nil, err
	}
	comments, rest := partitionComments(nodes)
	rest = slices.DeleteFunc(rest, func(n *ast.Node) bool { return n.Kind == ast.KindDelimiter })
	if len(rest) == 1 {
		return withComments(rest[0], comments), nil
	}
	if len(rest) == 0 && len(comments) == 0 {
		return nil, structural(diag.NrmMissingOperand, tok.Range, "expression without content", tok)
	}
	info := c.info()
	info.AdditionalTokens = comments
	return &ast.Node{
		Kind:     ast.KindExpressionList,
		Location: tok.Range,
		Lexeme:   tok.Text,
		Info:     info,
		Data:     ast.ExpressionListData{Children: rest},
	}, nil
}

func (c *Context) comments(tokens []*rawtree.Token) []*ast.Node {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]*ast.Node, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, c.comment(tok))
	}
	return out
}

// withComments returns n with comments appended to its attached tokens.
// The node is copied so the caller's value stays untouched.
func withComments(n *ast.Node, comments []*ast.Node) *ast.Node {
	if len(comments) == 0 {
		return n
	}
	cp := *n
	cp.Info.AdditionalTokens = append(slices.Clip(n.Info.AdditionalTokens), comments...)
	return &cp
}

func partitionComments(nodes []*ast.Node) (comments, others []*ast.Node) {
	for _, n := range nodes {
		if n.Kind == ast.KindComment {
			comments = append(comments, n)
		} else {
			others = append(others, n)
		}
	}
	return comments, others
}

func checkNoDelimiter(nodes []*ast.Node) error {
	for _, n := range nodes {
		if n.Kind == ast.KindDelimiter {
			return structural(diag.NrmLeakedDelimiter, n.Location,
				"unexpected "+n.Lexeme+" outside of a matching pair")
		}
	}
	return nil
}
