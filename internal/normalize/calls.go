package normalize

import (
	"rnorm/internal/ast"
	"rnorm/internal/diag"
	"rnorm/internal/rawtree"
	"rnorm/internal/source"
)

// splitOnComma cuts the tokens between a pair of brackets into argument
// runs. Empty runs are kept: f(a, , b) has three arguments. The separator
// preceding each run is returned alongside it.
func splitOnComma(open *rawtree.Token, tokens []*rawtree.Token) (runs [][]*rawtree.Token, seps []*rawtree.Token) {
	if len(tokens) == 0 {
		return nil, nil
	}
	sep, last := open, 0
	for i, tok := range tokens {
		if tok.Kind != rawtree.KindComma {
			continue
		}
		runs = append(runs, tokens[last:i])
		seps = append(seps, sep)
		sep, last = tok, i+1
	}
	runs = append(runs, tokens[last:])
	seps = append(seps, sep)
	return runs, seps
}

// tryCall matches `callee ( args )` inside an expression.
func tryCall(c *Context, tokens []*rawtree.Token) (*ast.Node, bool, error) {
	if len(tokens) < 3 || !tokens[0].Kind.IsExpressionBoundary() ||
		tokens[1].Kind != rawtree.KindParenLeft {
		return nil, false, nil
	}
	closing := tokens[len(tokens)-1]
	if closing.Kind != rawtree.KindParenRight {
		return nil, true, structural(diag.NrmMalformedCall, closing.Range,
			"expected ')' at the end of the call", closing)
	}
	callee, err := c.operand(tokens[0], diag.NrmMalformedCall, "callee")
	if err != nil {
		return nil, true, err
	}
	args, err := c.arguments(tokens[1], tokens[2:len(tokens)-1], diag.NrmMalformedCall)
	if err != nil {
		return nil, true, err
	}
	node := c.leaf(tokens[0], ast.KindFunctionCall, ast.CallData{Callee: callee, Arguments: args})
	node.Location = callee.Location
	node.Lexeme = callee.Lexeme
	return node, true, nil
}

// arguments normalizes a comma separated argument list.
func (c *Context) arguments(open *rawtree.Token, tokens []*rawtree.Token, code diag.Code) ([]*ast.Node, error) {
	runs, seps := splitOnComma(open, tokens)
	out := make([]*ast.Node, 0, len(runs))
	for i, run := range runs {
		arg, err := c.argument(seps[i], run, code)
		if err != nil {
			return nil, err
		}
		out = append(out, arg)
	}
	return out, nil
}

// argument normalizes one of: nothing, `value`, `name =` or `name = value`.
func (c *Context) argument(sep *rawtree.Token, run []*rawtree.Token, code diag.Code) (*ast.Node, error) {
	switch {
	case len(run) == 0:
		return &ast.Node{
			Kind:     ast.KindArgument,
			Location: source.Range{File: sep.Range.File, Start: sep.Range.End, End: sep.Range.End},
			Info:     c.info(),
			Data:     ast.ArgumentData{},
		}, nil
	case len(run) == 1 && run[0].Kind != rawtree.KindEqualSub:
		value, err := c.operand(run[0], code, "argument")
		if err != nil {
			return nil, err
		}
		return &ast.Node{
			Kind:     ast.KindArgument,
			Location: value.Location,
			Lexeme:   value.Lexeme,
			Info:     c.info(),
			Data:     ast.ArgumentData{Value: value},
		}, nil
	case (len(run) == 2 || len(run) == 3) && run[1].Kind == rawtree.KindEqualSub:
		name, err := c.argumentName(run[0], code)
		if err != nil {
			return nil, err
		}
		var value *ast.Node
		if len(run) == 3 {
			if value, err = c.operand(run[2], code, "argument value"); err != nil {
				return nil, err
			}
		}
		return &ast.Node{
			Kind:     ast.KindArgument,
			Location: name.Location,
			Lexeme:   name.Lexeme,
			Info:     c.info(),
			Data:     ast.ArgumentData{Name: name, Value: value},
		}, nil
	default:
		return nil, structural(code, run[0].Range, "expected `value` or `name = value` as argument", run...)
	}
}

// argumentName accepts f(x = 1), f("x" = 1) and f(NULL = 1).
func (c *Context) argumentName(tok *rawtree.Token, code diag.Code) (*ast.Node, error) {
	switch tok.Kind {
	case rawtree.KindSymbolSub, rawtree.KindSymbol:
		return c.symbol(tok, nil, nil), nil
	case rawtree.KindStringConst:
		lit, err := parseString(tok.Text)
		if err != nil {
			return nil, structural(diag.NrmMalformedLiteral, tok.Range, err.Error(), tok)
		}
		return c.leaf(tok, ast.KindSymbol, ast.SymbolData{Name: lit.Str}), nil
	case rawtree.KindNullConst:
		return c.leaf(tok, ast.KindSymbol, ast.SymbolData{Name: tok.Text}), nil
	default:
		return nil, structural(code, tok.Range, "expected an argument name before '='", tok)
	}
}

// tryAccess matches `x[...]`, `x[[...]]`, `x$name` and `x@slot`.
func tryAccess(c *Context, tokens []*rawtree.Token) (*ast.Node, bool, error) {
	if len(tokens) < 3 {
		return nil, false, nil
	}
	op := tokens[1]
	var (
		operator string
		args     []*ast.Node
		err      error
	)
	switch op.Kind {
	case rawtree.KindBracketLeft:
		operator = "["
		last := tokens[len(tokens)-1]
		if last.Kind != rawtree.KindBracketRight {
			return nil, true, structural(diag.NrmMalformedAccess, last.Range, "expected ']' to close '['", last)
		}
		args, err = c.arguments(op, tokens[2:len(tokens)-1], diag.NrmMalformedAccess)
	case rawtree.KindDoubleBracketLeft:
		operator = "[["
		n := len(tokens)
		if n < 4 || tokens[n-1].Kind != rawtree.KindBracketRight || tokens[n-2].Kind != rawtree.KindBracketRight {
			return nil, true, structural(diag.NrmMalformedAccess, tokens[n-1].Range, "expected ']]' to close '[['", tokens[n-1])
		}
		args, err = c.arguments(op, tokens[2:n-2], diag.NrmMalformedAccess)
	case rawtree.KindDollar, rawtree.KindAt:
		operator = op.Text
		if len(tokens) != 3 {
			return nil, true, structural(diag.NrmMalformedAccess, op.Range,
				"expected exactly one name after "+op.Text, tokens[2:]...)
		}
		var arg *ast.Node
		arg, err = c.argument(op, tokens[2:], diag.NrmMalformedAccess)
		args = []*ast.Node{arg}
	default:
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}

	accessed, err := c.operand(tokens[0], diag.NrmMalformedAccess, "accessed value")
	if err != nil {
		return nil, true, err
	}
	return c.leaf(op, ast.KindAccess, ast.AccessData{
		Operator:  operator,
		Accessed:  accessed,
		Arguments: args,
	}), true, nil
}

// tryFunctionDefinition matches `function ( formals ) body` and the `\` shorthand.
func tryFunctionDefinition(c *Context, tokens []*rawtree.Token) (*ast.Node, bool, error) {
	if len(tokens) == 0 {
		return nil, false, nil
	}
	kw := tokens[0]
	if kw.Kind != rawtree.KindFunction && kw.Kind != rawtree.KindLambda {
		return nil, false, nil
	}
	if len(tokens) < 4 {
		return nil, true, structural(diag.NrmMalformedDefinition, kw.Range,
			"expected `(formals) body` after "+kw.Text, tokens...)
	}
	if err := expect(tokens[1], rawtree.KindParenLeft, diag.NrmMalformedDefinition, "after "+kw.Text); err != nil {
		return nil, true, err
	}
	closing := -1
	for i := 2; i < len(tokens); i++ {
		if tokens[i].Kind == rawtree.KindParenRight {
			closing = i
			break
		}
	}
	if closing < 0 || closing != len(tokens)-2 {
		return nil, true, structural(diag.NrmMalformedDefinition, kw.Range,
			"expected a single body after the formals", tokens[1:]...)
	}

	params, err := c.parameters(tokens[1], tokens[2:closing])
	if err != nil {
		return nil, true, err
	}
	body, err := c.body(tokens[closing+1], diag.NrmMalformedDefinition, "function body")
	if err != nil {
		return nil, true, err
	}
	return c.leaf(kw, ast.KindFunctionDefinition, ast.FunctionData{
		Parameters: params,
		Body:       body,
		Lambda:     kw.Kind == rawtree.KindLambda,
	}), true, nil
}

func (c *Context) parameters(open *rawtree.Token, tokens []*rawtree.Token) ([]*ast.Node, error) {
	runs, _ := splitOnComma(open, tokens)
	out := make([]*ast.Node, 0, len(runs))
	for _, run := range runs {
		if len(run) == 0 || run[0].Kind != rawtree.KindSymbolFormals ||
			len(run) == 2 || len(run) > 3 || (len(run) == 3 && run[1].Kind != rawtree.KindEqualFormals) {
			rng := open.Range
			if len(run) > 0 {
				rng = run[0].Range
			}
			return nil, structural(diag.NrmMalformedDefinition, rng,
				"expected `name` or `name = default` as parameter", run...)
		}
		name := c.symbol(run[0], nil, nil)
		var def *ast.Node
		if len(run) == 3 {
			var err error
			if def, err = c.operand(run[2], diag.NrmMalformedDefinition, "parameter default"); err != nil {
				return nil, err
			}
		}
		out = append(out, &ast.Node{
			Kind:     ast.KindParameter,
			Location: run[0].Range,
			Lexeme:   run[0].Text,
			Info:     c.info(),
			Data: ast.ParameterData{
				Name:    name,
				Default: def,
				Dots:    run[0].Text == "...",
			},
		})
	}
	return out, nil
}
