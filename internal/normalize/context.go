package normalize

import (
	"context"
	"fmt"

	"rnorm/internal/ast"
	"rnorm/internal/diag"
	"rnorm/internal/rawtree"
	"rnorm/internal/source"
	"rnorm/internal/trace"
)

// DefaultMaxDepth bounds the recursion of a single normalization.
const DefaultMaxDepth = 4096

// how many recursion steps pass between cancellation checks
const cancelCheckEvery = 1024

// Options configures one normalization run.
type Options struct {
	MaxDepth int          // 0 means DefaultMaxDepth
	Tracer   trace.Tracer // nil means the tracer from the context, or trace.Nop
}

// Context is the state threaded through one parse unit. It holds the range
// and text of the innermost raw expression being normalized, which are
// stamped onto every node built inside it. A Context must not be shared
// between goroutines; concurrent files each get their own.
type Context struct {
	CurrentRange  source.Range
	CurrentLexeme string

	ctx      context.Context
	tracer   trace.Tracer
	depth    int
	maxDepth int
	steps    int
}

// NewContext creates a fresh normalization context.
func NewContext(ctx context.Context, opts Options) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Context{
		ctx:      ctx,
		tracer:   tracer,
		maxDepth: maxDepth,
	}
}

// enter guards recursion depth; every successful call must be paired with leave.
func (c *Context) enter(tok *rawtree.Token) error {
	c.steps++
	if c.steps%cancelCheckEvery == 0 {
		if err := c.ctx.Err(); err != nil {
			return err
		}
	}
	if c.depth >= c.maxDepth {
		var rng source.Range
		if tok != nil {
			rng = tok.Range
		}
		return structural(diag.NrmNestingTooDeep, rng,
			fmt.Sprintf("nesting exceeds the limit of %d levels", c.maxDepth), tok)
	}
	c.depth++
	return nil
}

func (c *Context) leave() {
	c.depth--
}

// stamp switches the enclosing expression and returns a function restoring the previous one.
func (c *Context) stamp(tok *rawtree.Token) func() {
	prevRange, prevLexeme := c.CurrentRange, c.CurrentLexeme
	c.CurrentRange, c.CurrentLexeme = tok.Range, tok.Text
	return func() {
		c.CurrentRange, c.CurrentLexeme = prevRange, prevLexeme
	}
}

func (c *Context) info() ast.Info {
	return ast.Info{FullRange: c.CurrentRange, FullLexeme: c.CurrentLexeme}
}

func (c *Context) point(name, detail string, kv ...string) {
	trace.Point(c.tracer, trace.ScopeNode, name, detail, kv...)
}
