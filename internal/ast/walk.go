package ast

// Children returns the structural children of n in source order.
// Grouping markers of an expression list are included; attached comments are not.
func Children(n *Node) []*Node {
	if n == nil {
		return nil
	}
	switch d := n.Data.(type) {
	case ExpressionListData:
		if d.Grouping == nil {
			return d.Children
		}
		out := make([]*Node, 0, len(d.Children)+2)
		out = append(out, d.Grouping.Open)
		out = append(out, d.Children...)
		return append(out, d.Grouping.Close)
	case WhileData:
		return []*Node{d.Condition, d.Body}
	case ForData:
		return []*Node{d.Variable, d.Vector, d.Body}
	case RepeatData:
		return []*Node{d.Body}
	case IfData:
		if d.Otherwise == nil {
			return []*Node{d.Condition, d.Then}
		}
		return []*Node{d.Condition, d.Then, d.Otherwise}
	case UnaryOpData:
		return []*Node{d.Operand}
	case BinaryOpData:
		return []*Node{d.Left, d.Right}
	case CallData:
		return append([]*Node{d.Callee}, d.Arguments...)
	case ArgumentData:
		return compact(d.Name, d.Value)
	case FunctionData:
		return append(append([]*Node(nil), d.Parameters...), d.Body)
	case ParameterData:
		return compact(d.Name, d.Default)
	case AccessData:
		return append([]*Node{d.Accessed}, d.Arguments...)
	default:
		return nil
	}
}

func compact(nodes ...*Node) []*Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Walk visits n and everything below it depth-first, attached comments
// before structural children. Returning false from fn skips the subtree.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Info.AdditionalTokens {
		Walk(c, fn)
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// WalkAll calls Walk on every node of a sequence.
func WalkAll(nodes []*Node, fn func(*Node) bool) {
	for _, n := range nodes {
		Walk(n, fn)
	}
}

// Count returns how many nodes of the given kind are reachable from nodes.
func Count(nodes []*Node, kind Kind) int {
	n := 0
	WalkAll(nodes, func(node *Node) bool {
		if node.Kind == kind {
			n++
		}
		return true
	})
	return n
}

// CountComments counts comments reachable from nodes, attached ones included.
func CountComments(nodes []*Node) int {
	return Count(nodes, KindComment)
}

// EnsureExpressionList wraps n into an ungrouped expression list unless it
// already is one.
func EnsureExpressionList(n *Node) *Node {
	if n == nil || n.Kind == KindExpressionList {
		return n
	}
	return &Node{
		Kind:     KindExpressionList,
		Location: n.Location,
		Info: Info{
			FullRange:  n.Info.FullRange,
			FullLexeme: n.Info.FullLexeme,
		},
		Data: ExpressionListData{Children: []*Node{n}},
	}
}
