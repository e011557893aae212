package normalize

import (
	"context"
	"errors"
	"testing"

	"rnorm/internal/ast"
	"rnorm/internal/diag"
	"rnorm/internal/rawtree"
	"rnorm/internal/source"
)

const testFile source.FileID = 1

func at(text string, line, col uint32) source.Range {
	width := uint32(len(text))
	if width == 0 {
		width = 1
	}
	return source.RangeOf(testFile, line, col, line, col+width-1)
}

func leaf(kind rawtree.Kind, text string, line, col uint32) *rawtree.Token {
	return rawtree.Leaf(kind, text, at(text, line, col))
}

// sym is `expr(SYMBOL)` as R emits it for a bare identifier.
func sym(name string, line, col uint32) *rawtree.Token {
	return rawtree.Expr(leaf(rawtree.KindSymbol, name, line, col))
}

func num(text string, line, col uint32) *rawtree.Token {
	return rawtree.Expr(leaf(rawtree.KindNumericConst, text, line, col))
}

func punct(kind rawtree.Kind, line, col uint32) *rawtree.Token {
	text := string(kind)
	if len(text) == 3 && text[0] == '\'' {
		text = text[1:2]
	}
	return leaf(kind, text, line, col)
}

func program(children ...*rawtree.Token) *rawtree.Token {
	return rawtree.Node(rawtree.KindExprList, children...)
}

func normalizeProgram(t *testing.T, root *rawtree.Token) *ast.Node {
	t.Helper()
	list, err := File(context.Background(), root, Options{})
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if list.Kind != ast.KindExpressionList {
		t.Fatalf("root kind = %s, want ExpressionList", list.Kind)
	}
	return list
}

// only normalizes a program holding one statement and returns that statement.
func only(t *testing.T, root *rawtree.Token) *ast.Node {
	t.Helper()
	list := normalizeProgram(t, root)
	children := list.Data.(ast.ExpressionListData).Children
	if len(children) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(children))
	}
	return children[0]
}

func wantCode(t *testing.T, err error, code diag.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil error", code.ID())
	}
	var se *StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StructuralError, got %T: %v", err, err)
	}
	if se.Code != code {
		t.Fatalf("code = %s, want %s (%v)", se.Code.ID(), code.ID(), err)
	}
}

func symbolName(t *testing.T, n *ast.Node) string {
	t.Helper()
	if n == nil || n.Kind != ast.KindSymbol {
		t.Fatalf("expected Symbol, got %+v", n)
	}
	return n.Data.(ast.SymbolData).Name
}

func listChildren(t *testing.T, n *ast.Node) []*ast.Node {
	t.Helper()
	if n == nil || n.Kind != ast.KindExpressionList {
		t.Fatalf("expected ExpressionList, got %+v", n)
	}
	return n.Data.(ast.ExpressionListData).Children
}
