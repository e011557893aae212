package normalize

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"rnorm/internal/ast"
	"rnorm/internal/diag"
	"rnorm/internal/rawtree"
	"rnorm/internal/testkit"
	"rnorm/internal/trace"
)

func TestSymbol(t *testing.T) {
	n := only(t, program(sym("x", 1, 1)))
	if symbolName(t, n) != "x" {
		t.Fatalf("unexpected symbol %+v", n.Data)
	}
	if n.Location != at("x", 1, 1) || n.Lexeme != "x" {
		t.Fatalf("location = %s %q", n.Location, n.Lexeme)
	}
}

func TestBacktickedSymbol(t *testing.T) {
	n := only(t, program(sym("`my var`", 1, 1)))
	if got := symbolName(t, n); got != "my var" {
		t.Fatalf("name = %q", got)
	}
}

// x <- 1
func TestAssignment(t *testing.T) {
	expr := rawtree.Expr(sym("x", 1, 1), leaf(rawtree.KindLeftAssign, "<-", 1, 3), num("1", 1, 6))
	n := only(t, program(expr))
	if n.Kind != ast.KindBinaryOp {
		t.Fatalf("kind = %s", n.Kind)
	}
	data := n.Data.(ast.BinaryOpData)
	if data.Op != "<-" || data.Flavor != ast.FlavorAssignment {
		t.Fatalf("unexpected op %q / %s", data.Op, data.Flavor)
	}
	if symbolName(t, data.Left) != "x" || data.Right.Kind != ast.KindLiteral {
		t.Fatalf("unexpected operands %+v %+v", data.Left, data.Right)
	}
	if n.Location != at("<-", 1, 3) {
		t.Fatalf("location = %s, want the operator", n.Location)
	}
	if n.Info.FullLexeme != "x <- 1" || n.Info.FullRange != expr.Range {
		t.Fatalf("info = %q %s", n.Info.FullLexeme, n.Info.FullRange)
	}
}

func TestBinaryFlavors(t *testing.T) {
	cases := []struct {
		kind   rawtree.Kind
		text   string
		flavor ast.OpFlavor
	}{
		{rawtree.KindPlus, "+", ast.FlavorArithmetic},
		{rawtree.KindColon, ":", ast.FlavorArithmetic},
		{rawtree.KindLE, "<=", ast.FlavorComparison},
		{rawtree.KindAnd2, "&&", ast.FlavorLogical},
		{rawtree.KindTilde, "~", ast.FlavorModelFormula},
		{rawtree.KindEqualAssign, "=", ast.FlavorAssignment},
		{rawtree.KindRightAssign, "->", ast.FlavorAssignment},
		{rawtree.KindQuestion, "?", ast.FlavorHelp},
		{rawtree.KindSpecial, "%in%", ast.FlavorSpecial},
		{rawtree.KindPipe, "|>", ast.FlavorPipe},
	}
	for _, tc := range cases {
		expr := rawtree.Expr(sym("a", 1, 1), leaf(tc.kind, tc.text, 1, 3), sym("b", 1, 8))
		n := only(t, program(expr))
		data, ok := n.Data.(ast.BinaryOpData)
		if !ok {
			t.Fatalf("%s: expected BinaryOp, got %s", tc.text, n.Kind)
		}
		if data.Op != tc.text || data.Flavor != tc.flavor {
			t.Fatalf("%s: got %q/%s, want %s", tc.text, data.Op, data.Flavor, tc.flavor)
		}
	}
}

func TestUnary(t *testing.T) {
	cases := []struct {
		kind   rawtree.Kind
		text   string
		flavor ast.OpFlavor
	}{
		{rawtree.KindMinus, "-", ast.FlavorArithmetic},
		{rawtree.KindExclamation, "!", ast.FlavorLogical},
		{rawtree.KindTilde, "~", ast.FlavorModelFormula},
		{rawtree.KindQuestion, "?", ast.FlavorHelp},
	}
	for _, tc := range cases {
		n := only(t, program(rawtree.Expr(leaf(tc.kind, tc.text, 1, 1), sym("x", 1, 2))))
		data, ok := n.Data.(ast.UnaryOpData)
		if !ok {
			t.Fatalf("%s: expected UnaryOp, got %s", tc.text, n.Kind)
		}
		if data.Op != tc.text || data.Flavor != tc.flavor || symbolName(t, data.Operand) != "x" {
			t.Fatalf("%s: unexpected %+v", tc.text, data)
		}
	}
}

// while (x) y
func TestWhile(t *testing.T) {
	expr := rawtree.Expr(
		leaf(rawtree.KindWhile, "while", 1, 1),
		punct(rawtree.KindParenLeft, 1, 7),
		sym("x", 1, 8),
		punct(rawtree.KindParenRight, 1, 9),
		sym("y", 1, 11),
	)
	n := only(t, program(expr))
	if n.Kind != ast.KindWhileLoop {
		t.Fatalf("kind = %s", n.Kind)
	}
	if n.Location != at("while", 1, 1) || n.Lexeme != "while" {
		t.Fatalf("location = %s %q", n.Location, n.Lexeme)
	}
	if n.Info.FullLexeme != "while (x) y" {
		t.Fatalf("full lexeme = %q", n.Info.FullLexeme)
	}
	data := n.Data.(ast.WhileData)
	if symbolName(t, data.Condition) != "x" {
		t.Fatalf("condition = %+v", data.Condition)
	}
	body := listChildren(t, data.Body)
	if len(body) != 1 || symbolName(t, body[0]) != "y" {
		t.Fatalf("body = %+v", body)
	}
	if data.Body.Data.(ast.ExpressionListData).Grouping != nil {
		t.Fatal("wrapped body must not be grouped")
	}

	c := NewContext(context.Background(), Options{})
	wantCond, err := c.single(expr.Children[2])
	if err != nil {
		t.Fatalf("condition: %v", err)
	}
	wantBody, err := c.single(expr.Children[4])
	if err != nil {
		t.Fatalf("body: %v", err)
	}
	if diff := cmp.Diff(wantCond, data.Condition); diff != "" {
		t.Fatalf("condition differs from its own normalization (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ast.EnsureExpressionList(wantBody), data.Body); diff != "" {
		t.Fatalf("body differs from its own normalization (-want +got):\n%s", diff)
	}
}

func TestWhileMissingParen(t *testing.T) {
	expr := rawtree.Expr(
		leaf(rawtree.KindWhile, "while", 1, 1),
		leaf(rawtree.KindSymbol, "oops", 1, 7),
		sym("x", 1, 12),
		punct(rawtree.KindParenRight, 1, 13),
		sym("y", 1, 15),
	)
	_, err := File(context.Background(), program(expr), Options{})
	wantCode(t, err, diag.NrmUnexpectedToken)
}

func TestRepeat(t *testing.T) {
	body := rawtree.Expr(
		punct(rawtree.KindBraceLeft, 1, 8),
		rawtree.Expr(leaf(rawtree.KindBreak, "break", 1, 10)),
		punct(rawtree.KindBraceRight, 1, 16),
	)
	n := only(t, program(rawtree.Expr(leaf(rawtree.KindRepeat, "repeat", 1, 1), body)))
	if n.Kind != ast.KindRepeatLoop {
		t.Fatalf("kind = %s", n.Kind)
	}
	inner := listChildren(t, n.Data.(ast.RepeatData).Body)
	if len(inner) != 1 || inner[0].Kind != ast.KindBreak {
		t.Fatalf("body = %+v", inner)
	}
}

// for (i # index
//
//	in xs) y
func TestForWithHeadComment(t *testing.T) {
	head := rawtree.Node(rawtree.KindForCondition,
		punct(rawtree.KindParenLeft, 1, 5),
		leaf(rawtree.KindSymbol, "i", 1, 6),
		leaf(rawtree.KindComment, "# index", 1, 8),
		leaf(rawtree.KindForIn, "in", 2, 1),
		sym("xs", 2, 4),
		punct(rawtree.KindParenRight, 2, 6),
	)
	n := only(t, program(rawtree.Expr(leaf(rawtree.KindFor, "for", 1, 1), head, sym("y", 2, 8))))
	if n.Kind != ast.KindForLoop {
		t.Fatalf("kind = %s", n.Kind)
	}
	data := n.Data.(ast.ForData)
	if symbolName(t, data.Variable) != "i" || symbolName(t, data.Vector) != "xs" {
		t.Fatalf("head = %+v / %+v", data.Variable, data.Vector)
	}
	if body := listChildren(t, data.Body); len(body) != 1 {
		t.Fatalf("body = %+v", body)
	}
	if len(n.Info.AdditionalTokens) != 1 || n.Info.AdditionalTokens[0].Data.(ast.CommentData).Content != " index" {
		t.Fatalf("attached = %+v", n.Info.AdditionalTokens)
	}
}

func TestForBadHeader(t *testing.T) {
	expr := rawtree.Expr(
		leaf(rawtree.KindFor, "for", 1, 1),
		leaf(rawtree.KindSymbol, "i", 1, 5),
		sym("y", 1, 7),
	)
	_, err := File(context.Background(), program(expr), Options{})
	wantCode(t, err, diag.NrmBadForHeader)
}

// if (a) b else c
func TestIfThenElse(t *testing.T) {
	tokens := []*rawtree.Token{
		leaf(rawtree.KindIf, "if", 1, 1),
		punct(rawtree.KindParenLeft, 1, 4),
		sym("a", 1, 5),
		punct(rawtree.KindParenRight, 1, 6),
		sym("b", 1, 8),
		leaf(rawtree.KindElse, "else", 1, 10),
		sym("c", 1, 15),
	}
	n := only(t, program(rawtree.Expr(tokens...)))
	if n.Kind != ast.KindIfThenElse {
		t.Fatalf("kind = %s", n.Kind)
	}
	data := n.Data.(ast.IfData)
	if symbolName(t, data.Condition) != "a" {
		t.Fatalf("condition = %+v", data.Condition)
	}
	if then := listChildren(t, data.Then); len(then) != 1 || symbolName(t, then[0]) != "b" {
		t.Fatalf("then = %+v", then)
	}
	if other := listChildren(t, data.Otherwise); len(other) != 1 || symbolName(t, other[0]) != "c" {
		t.Fatalf("otherwise = %+v", other)
	}

	n = only(t, program(rawtree.Expr(tokens[:5]...)))
	if n.Kind != ast.KindIfThen || n.Data.(ast.IfData).Otherwise != nil {
		t.Fatalf("expected IfThen without else, got %s", n.Kind)
	}
}

func TestIfThenElseBadElse(t *testing.T) {
	expr := rawtree.Expr(
		leaf(rawtree.KindIf, "if", 1, 1),
		punct(rawtree.KindParenLeft, 1, 4),
		sym("a", 1, 5),
		punct(rawtree.KindParenRight, 1, 6),
		sym("b", 1, 8),
		leaf(rawtree.KindSymbol, "otherwise", 1, 10),
		sym("c", 1, 20),
	)
	_, err := File(context.Background(), program(expr), Options{})
	wantCode(t, err, diag.NrmUnexpectedToken)
}

// {a;b;c}
func TestBracedList(t *testing.T) {
	expr := rawtree.Expr(
		punct(rawtree.KindBraceLeft, 1, 1),
		sym("a", 1, 2),
		punct(rawtree.KindSemicolon, 1, 3),
		sym("b", 1, 4),
		punct(rawtree.KindSemicolon, 1, 5),
		sym("c", 1, 6),
		punct(rawtree.KindBraceRight, 1, 7),
	)
	n := only(t, program(expr))
	children := listChildren(t, n)
	if len(children) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(children))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := symbolName(t, children[i]); got != want {
			t.Fatalf("statement %d = %q, want %q", i, got, want)
		}
	}
	g := n.Data.(ast.ExpressionListData).Grouping
	if g == nil || g.Open.Lexeme != "{" || g.Close.Lexeme != "}" {
		t.Fatalf("grouping = %+v", g)
	}
	if n.Location != expr.Range {
		t.Fatalf("location = %s, want %s", n.Location, expr.Range)
	}
}

func TestEmptyBraces(t *testing.T) {
	n := only(t, program(rawtree.Expr(punct(rawtree.KindBraceLeft, 1, 1), punct(rawtree.KindBraceRight, 1, 2))))
	if len(listChildren(t, n)) != 0 || n.Data.(ast.ExpressionListData).Grouping == nil {
		t.Fatalf("unexpected %+v", n)
	}
}

func TestBracedExprListUnwrapped(t *testing.T) {
	inner := rawtree.Node(rawtree.KindExprList, sym("a", 2, 3), sym("b", 3, 3))
	expr := rawtree.Expr(punct(rawtree.KindBraceLeft, 1, 1), inner, punct(rawtree.KindBraceRight, 4, 1))
	n := only(t, program(expr))
	if children := listChildren(t, n); len(children) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(children))
	}
}

// { a; b )
func TestMismatchedGrouping(t *testing.T) {
	expr := rawtree.Expr(
		punct(rawtree.KindBraceLeft, 1, 1),
		sym("a", 1, 3),
		punct(rawtree.KindSemicolon, 1, 4),
		sym("b", 1, 6),
		punct(rawtree.KindParenRight, 1, 8),
	)
	_, err := File(context.Background(), program(expr), Options{})
	wantCode(t, err, diag.NrmUnclosedDelimiter)
}

func TestAdjacentExpressions(t *testing.T) {
	list := normalizeProgram(t, program(sym("a", 1, 1), sym("b", 2, 1)))
	children := listChildren(t, list)
	if len(children) != 2 || symbolName(t, children[0]) != "a" || symbolName(t, children[1]) != "b" {
		t.Fatalf("unexpected statements %+v", children)
	}
}

func TestLeakedDelimiter(t *testing.T) {
	_, err := File(context.Background(), program(sym("a", 1, 1), punct(rawtree.KindComma, 1, 2), sym("b", 1, 3)), Options{})
	wantCode(t, err, diag.NrmLeakedDelimiter)
}

func TestEmptyInput(t *testing.T) {
	ring := trace.NewRingTracer(16, trace.LevelDebug)
	list, err := File(context.Background(), program(), Options{Tracer: ring})
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if len(listChildren(t, list)) != 0 {
		t.Fatal("expected no statements")
	}
	found := false
	for _, ev := range ring.Snapshot() {
		if ev.Detail == "no children received, skipping" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing skip event in %+v", ring.Snapshot())
	}

	c := NewContext(context.Background(), Options{})
	nodes, err := Expressions(c, nil)
	if err != nil || len(nodes) != 0 {
		t.Fatalf("Expressions(nil) = %v, %v", nodes, err)
	}
}

func TestNamespacedSymbol(t *testing.T) {
	cases := []struct {
		op       rawtree.Kind
		text     string
		internal bool
	}{
		{rawtree.KindNsGet, "::", false},
		{rawtree.KindNsGetInt, ":::", true},
	}
	for _, tc := range cases {
		expr := rawtree.Expr(
			leaf(rawtree.KindSymbolPackage, "pkg", 1, 1),
			leaf(tc.op, tc.text, 1, 4),
			leaf(rawtree.KindSymbol, "f", 1, 4+uint32(len(tc.text))),
		)
		n := only(t, program(expr))
		data, ok := n.Data.(ast.SymbolData)
		if !ok {
			t.Fatalf("%s: expected Symbol, got %s", tc.text, n.Kind)
		}
		if data.Name != "f" || data.Namespace != "pkg" || data.Internal != tc.internal {
			t.Fatalf("%s: unexpected %+v", tc.text, data)
		}
	}
}

// f(a, b = 1)
func TestCall(t *testing.T) {
	expr := rawtree.Expr(
		rawtree.Expr(leaf(rawtree.KindSymbolFunctionCall, "f", 1, 1)),
		punct(rawtree.KindParenLeft, 1, 2),
		sym("a", 1, 3),
		punct(rawtree.KindComma, 1, 4),
		leaf(rawtree.KindSymbolSub, "b", 1, 6),
		leaf(rawtree.KindEqualSub, "=", 1, 8),
		num("1", 1, 10),
		punct(rawtree.KindParenRight, 1, 11),
	)
	n := only(t, program(expr))
	if n.Kind != ast.KindFunctionCall {
		t.Fatalf("kind = %s", n.Kind)
	}
	data := n.Data.(ast.CallData)
	if symbolName(t, data.Callee) != "f" {
		t.Fatalf("callee = %+v", data.Callee)
	}
	if len(data.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(data.Arguments))
	}
	first := data.Arguments[0].Data.(ast.ArgumentData)
	if first.Name != nil || symbolName(t, first.Value) != "a" {
		t.Fatalf("first argument = %+v", first)
	}
	second := data.Arguments[1].Data.(ast.ArgumentData)
	if symbolName(t, second.Name) != "b" || second.Value.Data.(ast.LiteralData).Number != 1 {
		t.Fatalf("second argument = %+v", second)
	}
	if n.Info.FullLexeme != "f(a, b = 1)" {
		t.Fatalf("full lexeme = %q", n.Info.FullLexeme)
	}
}

// f(, "x" = )
func TestCallEmptyAndStringNamedArguments(t *testing.T) {
	expr := rawtree.Expr(
		rawtree.Expr(leaf(rawtree.KindSymbolFunctionCall, "f", 1, 1)),
		punct(rawtree.KindParenLeft, 1, 2),
		punct(rawtree.KindComma, 1, 3),
		leaf(rawtree.KindStringConst, `"x"`, 1, 5),
		leaf(rawtree.KindEqualSub, "=", 1, 9),
		punct(rawtree.KindParenRight, 1, 11),
	)
	data := only(t, program(expr)).Data.(ast.CallData)
	if len(data.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(data.Arguments))
	}
	if a := data.Arguments[0].Data.(ast.ArgumentData); a.Name != nil || a.Value != nil {
		t.Fatalf("expected empty argument, got %+v", a)
	}
	if a := data.Arguments[1].Data.(ast.ArgumentData); symbolName(t, a.Name) != "x" || a.Value != nil {
		t.Fatalf("expected named argument without value, got %+v", a)
	}
}

func TestCallWithoutArguments(t *testing.T) {
	expr := rawtree.Expr(
		rawtree.Expr(leaf(rawtree.KindSymbolFunctionCall, "f", 1, 1)),
		punct(rawtree.KindParenLeft, 1, 2),
		punct(rawtree.KindParenRight, 1, 3),
	)
	if args := only(t, program(expr)).Data.(ast.CallData).Arguments; len(args) != 0 {
		t.Fatalf("expected no arguments, got %d", len(args))
	}
}

func TestMalformedCallArgument(t *testing.T) {
	expr := rawtree.Expr(
		rawtree.Expr(leaf(rawtree.KindSymbolFunctionCall, "f", 1, 1)),
		punct(rawtree.KindParenLeft, 1, 2),
		sym("a", 1, 3),
		sym("b", 1, 5),
		punct(rawtree.KindParenRight, 1, 6),
	)
	_, err := File(context.Background(), program(expr), Options{})
	wantCode(t, err, diag.NrmMalformedCall)
}

func TestAccess(t *testing.T) {
	cases := []struct {
		name     string
		expr     *rawtree.Token
		operator string
		args     int
	}{
		{"single", rawtree.Expr(sym("x", 1, 1), punct(rawtree.KindBracketLeft, 1, 2), num("1", 1, 3), punct(rawtree.KindBracketRight, 1, 4)), "[", 1},
		{"double", rawtree.Expr(sym("x", 1, 1), leaf(rawtree.KindDoubleBracketLeft, "[[", 1, 2), num("1", 1, 4),
			punct(rawtree.KindBracketRight, 1, 5), punct(rawtree.KindBracketRight, 1, 6)), "[[", 1},
		{"matrix", rawtree.Expr(sym("x", 1, 1), punct(rawtree.KindBracketLeft, 1, 2), punct(rawtree.KindComma, 1, 3),
			num("2", 1, 4), punct(rawtree.KindBracketRight, 1, 5)), "[", 2},
		{"dollar", rawtree.Expr(sym("x", 1, 1), punct(rawtree.KindDollar, 1, 2), leaf(rawtree.KindSymbol, "a", 1, 3)), "$", 1},
		{"slot", rawtree.Expr(sym("x", 1, 1), punct(rawtree.KindAt, 1, 2), leaf(rawtree.KindSlot, "a", 1, 3)), "@", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := only(t, program(tc.expr))
			if n.Kind != ast.KindAccess {
				t.Fatalf("kind = %s", n.Kind)
			}
			data := n.Data.(ast.AccessData)
			if data.Operator != tc.operator || len(data.Arguments) != tc.args {
				t.Fatalf("got %q with %d arguments", data.Operator, len(data.Arguments))
			}
			if symbolName(t, data.Accessed) != "x" {
				t.Fatalf("accessed = %+v", data.Accessed)
			}
		})
	}
}

func TestMalformedAccess(t *testing.T) {
	cases := map[string]*rawtree.Token{
		"unclosed": rawtree.Expr(sym("x", 1, 1), punct(rawtree.KindBracketLeft, 1, 2), num("1", 1, 3), punct(rawtree.KindParenRight, 1, 4)),
		"dollar":   rawtree.Expr(sym("x", 1, 1), punct(rawtree.KindDollar, 1, 2), sym("a", 1, 3), sym("b", 1, 5)),
	}
	for name, expr := range cases {
		_, err := File(context.Background(), program(expr), Options{})
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		wantCode(t, err, diag.NrmMalformedAccess)
	}
}

// function(x, y = 2) x
func TestFunctionDefinition(t *testing.T) {
	expr := rawtree.Expr(
		leaf(rawtree.KindFunction, "function", 1, 1),
		punct(rawtree.KindParenLeft, 1, 9),
		leaf(rawtree.KindSymbolFormals, "x", 1, 10),
		punct(rawtree.KindComma, 1, 11),
		leaf(rawtree.KindSymbolFormals, "y", 1, 13),
		leaf(rawtree.KindEqualFormals, "=", 1, 15),
		num("2", 1, 17),
		punct(rawtree.KindParenRight, 1, 18),
		sym("x", 1, 20),
	)
	n := only(t, program(expr))
	if n.Kind != ast.KindFunctionDefinition {
		t.Fatalf("kind = %s", n.Kind)
	}
	data := n.Data.(ast.FunctionData)
	if data.Lambda || len(data.Parameters) != 2 {
		t.Fatalf("unexpected %+v", data)
	}
	y := data.Parameters[1].Data.(ast.ParameterData)
	if symbolName(t, y.Name) != "y" || y.Default == nil || y.Default.Data.(ast.LiteralData).Number != 2 {
		t.Fatalf("second parameter = %+v", y)
	}
	if body := listChildren(t, data.Body); len(body) != 1 || symbolName(t, body[0]) != "x" {
		t.Fatalf("body = %+v", body)
	}
}

// \(...) 1
func TestLambdaWithDots(t *testing.T) {
	expr := rawtree.Expr(
		leaf(rawtree.KindLambda, `\`, 1, 1),
		punct(rawtree.KindParenLeft, 1, 2),
		leaf(rawtree.KindSymbolFormals, "...", 1, 3),
		punct(rawtree.KindParenRight, 1, 6),
		num("1", 1, 8),
	)
	data := only(t, program(expr)).Data.(ast.FunctionData)
	if !data.Lambda || len(data.Parameters) != 1 || !data.Parameters[0].Data.(ast.ParameterData).Dots {
		t.Fatalf("unexpected %+v", data)
	}
}

func TestMalformedDefinition(t *testing.T) {
	expr := rawtree.Expr(
		leaf(rawtree.KindFunction, "function", 1, 1),
		punct(rawtree.KindParenLeft, 1, 9),
		sym("x", 1, 10),
		punct(rawtree.KindParenRight, 1, 11),
		sym("x", 1, 13),
	)
	_, err := File(context.Background(), program(expr), Options{})
	wantCode(t, err, diag.NrmMalformedDefinition)
}

func TestUnknownTokenKind(t *testing.T) {
	_, err := File(context.Background(), program(rawtree.Expr(leaf("WEIRD", "?!", 1, 1))), Options{})
	wantCode(t, err, diag.NrmUnknownTokenKind)
}

func TestUntaggedTokens(t *testing.T) {
	// a bare `x <- 1` without kinds
	expr := rawtree.Expr(
		rawtree.Expr(leaf(rawtree.KindUnknown, "x", 1, 1)),
		leaf(rawtree.KindUnknown, "<-", 1, 3),
		rawtree.Expr(leaf(rawtree.KindUnknown, "1", 1, 6)),
	)
	expr.Kind = rawtree.KindUnknown
	n := only(t, program(expr))
	if n.Kind != ast.KindBinaryOp {
		t.Fatalf("kind = %s", n.Kind)
	}
}

func commentedProgram() *rawtree.Token {
	// # head
	// x <- 1 # one
	// { # inner
	//   y }
	return program(
		leaf(rawtree.KindComment, "# head", 1, 1),
		rawtree.Expr(sym("x", 2, 1), leaf(rawtree.KindLeftAssign, "<-", 2, 3), num("1", 2, 6)),
		leaf(rawtree.KindComment, "# one", 2, 8),
		rawtree.Expr(
			punct(rawtree.KindBraceLeft, 3, 1),
			leaf(rawtree.KindComment, "# inner", 3, 3),
			sym("y", 4, 3),
			punct(rawtree.KindBraceRight, 4, 5),
		),
	)
}

func TestCommentsAreConserved(t *testing.T) {
	root := commentedProgram()
	list := normalizeProgram(t, root)
	want := rawtree.Count(root, rawtree.KindComment)
	if got := ast.CountComments([]*ast.Node{list}); got != want {
		t.Fatalf("comments: got %d, want %d", got, want)
	}
	first := listChildren(t, list)[0]
	if got := len(first.Info.AdditionalTokens); got != 2 {
		t.Fatalf("comments on the first statement = %d, want 2", got)
	}
	if err := testkit.CheckTreeInvariants(list, root); err != nil {
		t.Fatal(err)
	}
}

func TestIdempotentAndPure(t *testing.T) {
	root := commentedProgram()
	first := normalizeProgram(t, root)
	second := normalizeProgram(t, root)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("normalization is not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(commentedProgram(), root); diff != "" {
		t.Fatalf("raw tree was modified (-want +got):\n%s", diff)
	}
}

// { while (x) y; z }
func TestRenormalizedSubtreeIsEqual(t *testing.T) {
	loop := rawtree.Expr(
		leaf(rawtree.KindWhile, "while", 1, 3),
		punct(rawtree.KindParenLeft, 1, 9),
		sym("x", 1, 10),
		punct(rawtree.KindParenRight, 1, 11),
		sym("y", 1, 13),
	)
	block := rawtree.Expr(
		punct(rawtree.KindBraceLeft, 1, 1),
		loop,
		punct(rawtree.KindSemicolon, 1, 14),
		sym("z", 1, 16),
		punct(rawtree.KindBraceRight, 1, 18),
	)
	list := only(t, program(block))
	children := listChildren(t, list)
	if len(children) != 2 || children[0].Kind != ast.KindWhileLoop {
		t.Fatalf("unexpected statements %+v", children)
	}

	again := only(t, program(loop))
	if diff := cmp.Diff(children[0], again); diff != "" {
		t.Fatalf("re-normalized while differs (-in block +alone):\n%s", diff)
	}
	if diff := cmp.Diff(children[1], only(t, program(block.Children[3]))); diff != "" {
		t.Fatalf("re-normalized symbol differs (-in block +alone):\n%s", diff)
	}
}

// ; a # c
func TestLeadingSemicolonKeepsEmptyStatement(t *testing.T) {
	tokens := []*rawtree.Token{punct(rawtree.KindSemicolon, 1, 1), sym("a", 1, 3)}
	segments := splitExprs(tokens)
	if len(segments) != 2 || len(segments[0]) != 0 || len(segments[1]) != 1 {
		t.Fatalf("segments = %v", segments)
	}
	if got := splitExprs([]*rawtree.Token{sym("a", 1, 1), punct(rawtree.KindSemicolon, 1, 2), punct(rawtree.KindSemicolon, 1, 3)}); len(got) != 2 {
		t.Fatalf("a;; gave %d segments, want 2", len(got))
	}

	list := normalizeProgram(t, program(tokens[0], tokens[1], leaf(rawtree.KindComment, "# c", 1, 5)))
	if n := len(list.Info.AdditionalTokens); n != 0 {
		t.Fatalf("root holds %d comments, want 0", n)
	}
	children := listChildren(t, list)
	if len(children) != 1 || symbolName(t, children[0]) != "a" {
		t.Fatalf("unexpected statements %+v", children)
	}
	if n := len(children[0].Info.AdditionalTokens); n != 1 {
		t.Fatalf("comments on a = %d, want 1", n)
	}
}

// # c
// a
func TestSingleStatementCommentStaysOnRoot(t *testing.T) {
	list := normalizeProgram(t, program(leaf(rawtree.KindComment, "# c", 1, 1), sym("a", 2, 1)))
	if n := len(list.Info.AdditionalTokens); n != 1 {
		t.Fatalf("root holds %d comments, want 1", n)
	}
	if first := listChildren(t, list)[0]; len(first.Info.AdditionalTokens) != 0 {
		t.Fatalf("first statement holds %d comments, want 0", len(first.Info.AdditionalTokens))
	}
}

func TestCandidatesMissCleanly(t *testing.T) {
	c := NewContext(context.Background(), Options{})
	for arity, cands := range byArity {
		tokens := make([]*rawtree.Token, arity)
		for i := range tokens {
			tokens[i] = sym("v", 1, uint32(2*i+1))
		}
		for _, cand := range cands {
			node, matched, err := cand.try(c, tokens)
			if node != nil || matched || err != nil {
				t.Fatalf("%s on %d symbols: node=%v matched=%v err=%v", cand.name, arity, node, matched, err)
			}
		}
	}
	if c.CurrentLexeme != "" || !c.CurrentRange.IsZero() {
		t.Fatalf("a miss changed the context: %s %q", c.CurrentRange, c.CurrentLexeme)
	}

	ifElse := []*rawtree.Token{
		leaf(rawtree.KindIf, "if", 1, 1),
		punct(rawtree.KindParenLeft, 1, 4),
		sym("a", 1, 5),
		punct(rawtree.KindParenRight, 1, 6),
		sym("b", 1, 8),
		leaf(rawtree.KindElse, "else", 1, 10),
		sym("c", 1, 15),
	}
	node, matched, err := tryIfThenElse(c, ifElse)
	if err != nil || !matched || node == nil {
		t.Fatalf("if-else: node=%v matched=%v err=%v", node, matched, err)
	}
}

func nestedParens(depth int) *rawtree.Token {
	e := sym("x", 1, 1)
	for range depth {
		e = rawtree.Expr(punct(rawtree.KindParenLeft, 1, 1), e, punct(rawtree.KindParenRight, 1, 1))
	}
	return program(e)
}

func TestNestingLimit(t *testing.T) {
	_, err := File(context.Background(), nestedParens(64), Options{MaxDepth: 32})
	wantCode(t, err, diag.NrmNestingTooDeep)

	n := only(t, nestedParens(64))
	depth := 0
	for n.Kind == ast.KindExpressionList {
		children := listChildren(t, n)
		if len(children) != 1 {
			t.Fatalf("expected a single child at depth %d", depth)
		}
		n = children[0]
		depth++
	}
	if depth != 64 || symbolName(t, n) != "x" {
		t.Fatalf("depth = %d, leaf = %+v", depth, n)
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := File(ctx, commentedProgram(), Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConcurrentFiles(t *testing.T) {
	root := commentedProgram()
	want := normalizeProgram(t, root)

	results := make([]*ast.Node, 8)
	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			list, err := File(context.Background(), root, Options{})
			results[i] = list
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("File: %v", err)
	}
	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("result %d differs:\n%s", i, diff)
		}
	}
}

func TestStructuralErrorDiagnostic(t *testing.T) {
	_, err := File(context.Background(), program(rawtree.Expr(leaf("WEIRD", "?!", 3, 4))), Options{})
	var se *StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StructuralError, got %v", err)
	}
	d := se.Diagnostic()
	if d.Severity != diag.SevError || d.Code != diag.NrmUnknownTokenKind {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Primary != at("?!", 3, 4) {
		t.Fatalf("primary = %s", d.Primary)
	}
}

func TestOnlyComments(t *testing.T) {
	list := normalizeProgram(t, program(leaf(rawtree.KindComment, "# a", 1, 1), leaf(rawtree.KindComment, "# b", 2, 1)))
	if len(listChildren(t, list)) != 0 || len(list.Info.AdditionalTokens) != 2 {
		t.Fatalf("unexpected %+v", list)
	}
}
