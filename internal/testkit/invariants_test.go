package testkit

import (
	"strings"
	"testing"

	"rnorm/internal/ast"
	"rnorm/internal/rawtree"
	"rnorm/internal/source"
)

func TestCheckTreeInvariants(t *testing.T) {
	rng := source.RangeOf(1, 1, 1, 1, 1)
	raw := rawtree.Node(rawtree.KindExprList,
		rawtree.Expr(rawtree.Leaf(rawtree.KindSymbol, "x", rng)))
	x := &ast.Node{Kind: ast.KindSymbol, Location: rng, Lexeme: "x", Data: ast.SymbolData{Name: "x"}}
	root := &ast.Node{Kind: ast.KindExpressionList, Location: raw.Range, Data: ast.ExpressionListData{Children: []*ast.Node{x}}}

	if err := CheckTreeInvariants(root, raw); err != nil {
		t.Fatalf("valid tree rejected: %v", err)
	}

	shared := &ast.Node{Kind: ast.KindExpressionList, Data: ast.ExpressionListData{Children: []*ast.Node{x, x}}}
	if err := CheckTreeInvariants(shared, raw); err == nil || !strings.Contains(err.Error(), "twice") {
		t.Fatalf("expected sharing error, got %v", err)
	}

	delim := &ast.Node{Kind: ast.KindDelimiter, Lexeme: ";", Data: ast.DelimiterData{Raw: rawtree.KindSemicolon}}
	leaky := &ast.Node{Kind: ast.KindExpressionList, Data: ast.ExpressionListData{Children: []*ast.Node{delim}}}
	if err := CheckTreeInvariants(leaky, raw); err == nil || !strings.Contains(err.Error(), "leaked") {
		t.Fatalf("expected delimiter error, got %v", err)
	}

	loop := &ast.Node{Kind: ast.KindRepeatLoop, Data: ast.RepeatData{Body: &ast.Node{Kind: ast.KindBreak}}}
	bad := &ast.Node{Kind: ast.KindExpressionList, Data: ast.ExpressionListData{Children: []*ast.Node{loop}}}
	if err := CheckTreeInvariants(bad, raw); err == nil || !strings.Contains(err.Error(), "body") {
		t.Fatalf("expected body error, got %v", err)
	}

	commented := rawtree.Node(rawtree.KindExprList, raw.Children[0], rawtree.Leaf(rawtree.KindComment, "# c", source.RangeOf(1, 1, 3, 1, 5)))
	if err := CheckTreeInvariants(root, commented); err == nil || !strings.Contains(err.Error(), "comment") {
		t.Fatalf("expected comment count error, got %v", err)
	}
}
