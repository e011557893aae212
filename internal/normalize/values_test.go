package normalize

import (
	"math"
	"testing"

	"rnorm/internal/ast"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		text string
		want ast.LiteralData
	}{
		{"1", ast.LiteralData{Kind: ast.LiteralNumber, Number: 1}},
		{"1e-3", ast.LiteralData{Kind: ast.LiteralNumber, Number: 0.001}},
		{"5L", ast.LiteralData{Kind: ast.LiteralNumber, Number: 5, IsInteger: true}},
		{"2i", ast.LiteralData{Kind: ast.LiteralNumber, Number: 2, IsComplex: true}},
		{"0x10", ast.LiteralData{Kind: ast.LiteralNumber, Number: 16}},
		{"0xFFL", ast.LiteralData{Kind: ast.LiteralNumber, Number: 255, IsInteger: true}},
		{"0x1p4", ast.LiteralData{Kind: ast.LiteralNumber, Number: 16}},
		{"TRUE", ast.LiteralData{Kind: ast.LiteralLogical, Logical: true}},
		{"FALSE", ast.LiteralData{Kind: ast.LiteralLogical}},
		{"NA", ast.LiteralData{Kind: ast.LiteralNA}},
		{"NA_character_", ast.LiteralData{Kind: ast.LiteralNA}},
	}
	for _, tc := range cases {
		got, err := parseNumber(tc.text)
		if err != nil {
			t.Fatalf("parseNumber(%q): %v", tc.text, err)
		}
		if got != tc.want {
			t.Fatalf("parseNumber(%q) = %+v, want %+v", tc.text, got, tc.want)
		}
	}

	if got, _ := parseNumber("Inf"); !math.IsInf(got.Number, 1) {
		t.Fatalf("Inf = %v", got.Number)
	}
	if got, _ := parseNumber("NaN"); !math.IsNaN(got.Number) {
		t.Fatalf("NaN = %v", got.Number)
	}
	for _, bad := range []string{"1..2", "0xZZ", "abc"} {
		if _, err := parseNumber(bad); err == nil {
			t.Fatalf("parseNumber(%q) should fail", bad)
		}
	}
}

func TestParseString(t *testing.T) {
	cases := []struct {
		text  string
		want  string
		quote byte
		raw   bool
	}{
		{`"plain"`, "plain", '"', false},
		{`'single'`, "single", '\'', false},
		{`"a\nb\tc"`, "a\nb\tc", '"', false},
		{`'it\'s'`, "it's", '\'', false},
		{`"\x41\101"`, "AA", '"', false},
		{`"é"`, "é", '"', false},
		{`"\u{1F600}"`, "\U0001F600", '"', false},
		{`"\U0001F600"`, "\U0001F600", '"', false},
		{`"\0"`, "\x00", '"', false},
		{`"back\\slash"`, `back\slash`, '"', false},
		{`r"(a\b)"`, `a\b`, '"', true},
		{`R'[x]'`, "x", '\'', true},
		{`r"--{a}-"}--"`, `a}-"`, '"', true},
	}
	for _, tc := range cases {
		got, err := parseString(tc.text)
		if err != nil {
			t.Fatalf("parseString(%s): %v", tc.text, err)
		}
		if got.Kind != ast.LiteralString || got.Str != tc.want || got.Quote != tc.quote || got.Raw != tc.raw {
			t.Fatalf("parseString(%s) = %+v, want %q", tc.text, got, tc.want)
		}
	}

	for _, bad := range []string{`"\q"`, `"x`, `x`, `r"(a]"`, `"\x"`, `"\u{12"`} {
		if _, err := parseString(bad); err == nil {
			t.Fatalf("parseString(%s) should fail", bad)
		}
	}
}
