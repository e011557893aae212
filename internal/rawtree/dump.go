package rawtree

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes an indented one-token-per-line view of the tree.
func Dump(w io.Writer, root *Token) error {
	return dump(w, root, 0)
}

func dump(w io.Writer, t *Token, depth int) error {
	indent := strings.Repeat("  ", depth)
	var err error
	if t.IsLeaf() {
		_, err = fmt.Fprintf(w, "%s%s %s %s\n", indent, t.Kind, t.Range, strconv.Quote(t.Text))
	} else {
		_, err = fmt.Fprintf(w, "%s%s %s\n", indent, t.Kind, t.Range)
	}
	if err != nil {
		return err
	}
	for _, c := range t.Children {
		if err := dump(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
