package normalize

import (
	"strconv"

	"rnorm/internal/ast"
	"rnorm/internal/rawtree"
)

// constructor attempts to build one construct from a whole segment.
// It returns (nil, false, nil) when the leading tokens do not select its
// shape, (node, true, nil) on success and (nil, true, err) when the shape
// was selected but the remaining tokens violate it.
type constructor func(c *Context, tokens []*rawtree.Token) (*ast.Node, bool, error)

type candidate struct {
	name string
	try  constructor
}

// Candidates per segment length, in trial order. The order at length 3
// decides between operator, loop and namespaced symbol and must stay as is.
var byArity map[int][]candidate

func init() {
	byArity = map[int][]candidate{
		2: {{"unary", tryUnary}, {"repeat", tryRepeat}},
		3: {{"binary", tryBinary}, {"for", tryFor}, {"symbol", trySymbol}},
		5: {{"if-then", tryIfThen}, {"while", tryWhile}},
		7: {{"if-then-else", tryIfThenElse}},
	}
}

// dispatch normalizes a comment-free, semicolon-free segment.
func (c *Context) dispatch(tokens []*rawtree.Token) ([]*ast.Node, error) {
	if len(tokens) == 1 {
		node, err := c.single(tokens[0])
		if err != nil {
			return nil, err
		}
		return []*ast.Node{node}, nil
	}

	arity := strconv.Itoa(len(tokens))
	for _, cand := range byArity[len(tokens)] {
		node, matched, err := cand.try(c, tokens)
		if err != nil {
			return nil, err
		}
		if matched {
			c.point("dispatch", "match", "len", arity, "candidate", cand.name)
			return []*ast.Node{node}, nil
		}
		c.point("dispatch", "miss", "len", arity, "candidate", cand.name)
	}

	c.point("dispatch", "fallback", "len", arity)
	out := make([]*ast.Node, 0, len(tokens))
	for _, tok := range tokens {
		node, err := c.single(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}
