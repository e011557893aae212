package astfmt

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// TreeOpts configures WriteTree.
type TreeOpts struct {
	Locations bool // append line:col ranges in an aligned column
	Comments  bool // print attached comments as "#" children
	MaxLexeme int  // lexemes wider than this are shortened, 0 means 32
}

// slots print in source order
var slotOrder = []string{
	"callee", "accessed", "variable", "vector", "condition",
	"lhs", "operand", "rhs", "name", "value", "default",
	"then", "else", "body",
}

type treeLine struct {
	text string
	loc  string
}

// WriteTree prints the document as an indented tree:
//
//	ExpressionList
//	└─ BinaryOp "<-" assignment     1:3-1:4
//	   ├─ lhs: Symbol x             1:1-1:1
//	   └─ rhs: Literal number 1     1:6-1:6
func WriteTree(w io.Writer, doc *Document, opts TreeOpts) error {
	if opts.MaxLexeme <= 0 {
		opts.MaxLexeme = 32
	}
	var lines []treeLine
	if doc.File != "" {
		lines = append(lines, treeLine{text: doc.File})
	}
	if doc.Root != nil {
		collect(&lines, doc.Root, "", "", "", opts)
	}
	for _, d := range doc.Diagnostics {
		lines = append(lines, treeLine{
			text: fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message),
			loc:  d.Location.String(),
		})
	}

	width := 0
	for _, l := range lines {
		if l.loc != "" {
			width = max(width, runewidth.StringWidth(l.text))
		}
	}
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		text := l.text
		if opts.Locations && l.loc != "" {
			text = runewidth.FillRight(text, width) + "  " + l.loc
		}
		if _, err := bw.WriteString(text + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// collect appends n and its subtree. head is the connector of n itself,
// indent the prefix inherited by its children.
func collect(lines *[]treeLine, n *Node, head, indent, slot string, opts TreeOpts) {
	label := describe(n, opts.MaxLexeme)
	if slot != "" {
		label = slot + ": " + label
	}
	loc := ""
	if opts.Locations {
		loc = n.Location.String()
	}
	*lines = append(*lines, treeLine{text: head + label, loc: loc})

	type child struct {
		slot string
		node *Node
	}
	var children []child
	if opts.Comments {
		for _, c := range n.Comments {
			children = append(children, child{"#", c})
		}
	}
	for _, name := range slotOrder {
		if s, ok := n.Slots[name]; ok {
			children = append(children, child{name, s})
		}
	}
	for _, c := range n.Children {
		children = append(children, child{"", c})
	}

	for i, c := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		collect(lines, c.node, indent+branch, indent+next, c.slot, opts)
	}
}

func describe(n *Node, maxLexeme int) string {
	var sb strings.Builder
	sb.WriteString(n.Type)
	switch n.Type {
	case "Symbol":
		sb.WriteByte(' ')
		if ns := n.Attrs["namespace"]; ns != "" {
			sep := "::"
			if n.Attrs["internal"] == "true" {
				sep = ":::"
			}
			sb.WriteString(ns + sep)
		}
		sb.WriteString(n.Attrs["name"])
	case "Literal":
		sb.WriteString(" " + n.Attrs["kind"])
		if v, ok := n.Attrs["value"]; ok {
			if n.Attrs["kind"] == "string" {
				v = strconv.Quote(v)
			}
			sb.WriteString(" " + shorten(v, maxLexeme))
		}
	case "UnaryOp", "BinaryOp":
		fmt.Fprintf(&sb, " %q %s", n.Attrs["op"], n.Attrs["flavor"])
	case "Access":
		fmt.Fprintf(&sb, " %q", n.Attrs["operator"])
	case "Comment":
		sb.WriteString(" " + strconv.Quote(shorten(n.Attrs["content"], maxLexeme)))
	default:
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%s", k, n.Attrs[k])
		}
	}
	return sb.String()
}

// shorten truncates s to maxWidth terminal cells.
func shorten(s string, maxWidth int) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}
