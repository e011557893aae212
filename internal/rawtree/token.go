package rawtree

import (
	"strings"

	"rnorm/internal/source"
)

// Token is one node of the tagged parse tree produced by R's parser.
// Terminals carry Text; non-terminals carry Children and a Text that is
// rebuilt from their terminals by Seal.
type Token struct {
	Kind     Kind
	Text     string
	Range    source.Range
	Children []*Token
}

// IsLeaf reports whether the token has no children.
func (t *Token) IsLeaf() bool {
	return len(t.Children) == 0
}

// Leaf builds a terminal token.
func Leaf(kind Kind, text string, rng source.Range) *Token {
	return &Token{Kind: kind, Text: text, Range: rng}
}

// Node builds a non-terminal token whose range covers its children.
// Text is reconstructed from the children.
func Node(kind Kind, children ...*Token) *Token {
	t := &Token{Kind: kind, Children: children}
	for _, c := range children {
		t.Range = t.Range.Cover(c.Range)
	}
	t.Text = rebuildText(children)
	return t
}

// Expr is shorthand for Node(KindExpression, children...).
func Expr(children ...*Token) *Token {
	return Node(KindExpression, children...)
}

// Seal fills in the text of every non-terminal below root that lacks one.
// Decoders call it once after building a tree.
func Seal(root *Token) {
	if root == nil || root.IsLeaf() {
		return
	}
	for _, c := range root.Children {
		Seal(c)
	}
	if root.Text == "" {
		root.Text = rebuildText(root.Children)
	}
}

// rebuildText joins the children's text, re-creating the whitespace between
// them from their line/column positions.
func rebuildText(children []*Token) string {
	var sb strings.Builder
	var prev *Token
	for _, c := range children {
		if c.Text == "" {
			continue
		}
		if prev != nil {
			writeGap(&sb, prev.Range.End, c.Range.Start)
		}
		sb.WriteString(c.Text)
		prev = c
	}
	return sb.String()
}

// Gaps are clamped: positions come from the input document and a forged
// line or column attribute must not blow up every ancestor's lexeme.
const (
	maxGapLines = 64
	maxGapCols  = 256
)

func writeGap(sb *strings.Builder, end, start source.Position) {
	if end.IsZero() || start.IsZero() {
		return
	}
	switch {
	case start.Line > end.Line:
		sb.WriteString(strings.Repeat("\n", clampGap(start.Line-end.Line, maxGapLines)))
		if start.Col > 1 {
			sb.WriteString(strings.Repeat(" ", clampGap(start.Col-1, maxGapCols)))
		}
	case start.Line == end.Line && start.Col > end.Col+1:
		sb.WriteString(strings.Repeat(" ", clampGap(start.Col-end.Col-1, maxGapCols)))
	}
}

func clampGap(n, limit uint32) int {
	return int(min(n, limit))
}

// Count returns the number of tokens of the given kind in the tree.
func Count(root *Token, kind Kind) int {
	if root == nil {
		return 0
	}
	n := 0
	if root.Kind == kind {
		n++
	}
	for _, c := range root.Children {
		n += Count(c, kind)
	}
	return n
}

// CountAll sums Count over a token run.
func CountAll(tokens []*Token, kind Kind) int {
	n := 0
	for _, t := range tokens {
		n += Count(t, kind)
	}
	return n
}
