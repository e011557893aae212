package testkit

import (
	"fmt"

	"rnorm/internal/ast"
	"rnorm/internal/rawtree"
)

// CheckTreeInvariants runs the structural checks every normalized tree must pass:
// 1) no Delimiter node is reachable
// 2) every node is reachable exactly once (no cycles, no sharing)
// 3) loop, branch and function bodies are expression lists
// 4) every located node lies inside the raw root range
// 5) the number of comments equals the number of comment tokens in raw
func CheckTreeInvariants(root *ast.Node, raw *rawtree.Token) error {
	if root == nil || raw == nil {
		return fmt.Errorf("nil tree")
	}
	seen := make(map[*ast.Node]struct{})
	var firstErr error
	fail := func(format string, args ...any) bool {
		if firstErr == nil {
			firstErr = fmt.Errorf(format, args...)
		}
		return false
	}

	ast.Walk(root, func(n *ast.Node) bool {
		if firstErr != nil {
			return false
		}
		if _, dup := seen[n]; dup {
			return fail("node %s at %s is reachable twice", n.Kind, n.Location)
		}
		seen[n] = struct{}{}

		if n.Kind == ast.KindDelimiter {
			return fail("delimiter %q leaked at %s", n.Lexeme, n.Location)
		}
		if err := checkBodies(n); err != nil {
			return fail("%s at %s: %w", n.Kind, n.Location, err)
		}
		// 4) located nodes inside the root
		if !raw.Range.IsZero() && !n.Location.IsZero() &&
			(!raw.Range.Contains(n.Location.Start) || !raw.Range.Contains(n.Location.End)) {
			return fail("%s at %s is outside the root range %s", n.Kind, n.Location, raw.Range)
		}
		return true
	})
	if firstErr != nil {
		return firstErr
	}

	// 5) comment conservation
	want := rawtree.Count(raw, rawtree.KindComment) + rawtree.Count(raw, rawtree.KindLineDirective)
	if got := ast.CountComments([]*ast.Node{root}); got != want {
		return fmt.Errorf("comment count mismatch: tree has %d, raw input has %d", got, want)
	}
	return nil
}

func checkBodies(n *ast.Node) error {
	var bodies []*ast.Node
	switch d := n.Data.(type) {
	case ast.WhileData:
		bodies = append(bodies, d.Body)
	case ast.ForData:
		bodies = append(bodies, d.Body)
	case ast.RepeatData:
		bodies = append(bodies, d.Body)
	case ast.IfData:
		bodies = append(bodies, d.Then)
		if n.Kind == ast.KindIfThenElse {
			bodies = append(bodies, d.Otherwise)
		}
	case ast.FunctionData:
		bodies = append(bodies, d.Body)
	}
	for _, b := range bodies {
		if b == nil || b.Kind != ast.KindExpressionList {
			return fmt.Errorf("body is not an expression list")
		}
	}
	return nil
}
