package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"rnorm/internal/ast"
	"rnorm/internal/diag"
	"rnorm/internal/rawtree"
)

func (c *Context) comment(tok *rawtree.Token) *ast.Node {
	return c.leaf(tok, ast.KindComment, ast.CommentData{Content: strings.TrimPrefix(tok.Text, "#")})
}

// symbol builds a Symbol from tok, qualified by ns when given. op is the
// namespace operator token (:: or :::).
func (c *Context) symbol(tok, ns, op *rawtree.Token) *ast.Node {
	data := ast.SymbolData{Name: unbacktick(tok.Text)}
	if ns != nil {
		data.Namespace = unbacktick(ns.Text)
		data.Internal = op != nil && op.Kind == rawtree.KindNsGetInt
	}
	return c.leaf(tok, ast.KindSymbol, data)
}

// groupingMarker turns a brace or paren token into the symbol recorded in a Grouping.
func groupingMarker(c *Context, tok *rawtree.Token) *ast.Node {
	return c.leaf(tok, ast.KindSymbol, ast.SymbolData{Name: tok.Text})
}

func unbacktick(s string) string {
	if len(s) >= 2 && s[0] == '`' && s[len(s)-1] == '`' {
		return s[1 : len(s)-1]
	}
	return s
}

func (c *Context) number(tok *rawtree.Token) (*ast.Node, error) {
	data, err := parseNumber(tok.Text)
	if err != nil {
		return nil, structural(diag.NrmMalformedLiteral, tok.Range, err.Error(), tok)
	}
	return c.leaf(tok, ast.KindLiteral, data), nil
}

func (c *Context) str(tok *rawtree.Token) (*ast.Node, error) {
	data, err := parseString(tok.Text)
	if err != nil {
		return nil, structural(diag.NrmMalformedLiteral, tok.Range, err.Error(), tok)
	}
	return c.leaf(tok, ast.KindLiteral, data), nil
}

// parseNumber interprets the text of a NUM_CONST token. R reports TRUE,
// FALSE, NA and friends under the same token kind.
func parseNumber(text string) (ast.LiteralData, error) {
	switch text {
	case "TRUE", "T":
		return ast.LiteralData{Kind: ast.LiteralLogical, Logical: true}, nil
	case "FALSE", "F":
		return ast.LiteralData{Kind: ast.LiteralLogical}, nil
	case "NA", "NA_integer_", "NA_real_", "NA_character_", "NA_complex_":
		return ast.LiteralData{Kind: ast.LiteralNA}, nil
	case "Inf":
		return ast.LiteralData{Kind: ast.LiteralNumber, Number: math.Inf(1)}, nil
	case "NaN":
		return ast.LiteralData{Kind: ast.LiteralNumber, Number: math.NaN()}, nil
	}

	data := ast.LiteralData{Kind: ast.LiteralNumber}
	body := text
	switch {
	case strings.HasSuffix(body, "L"):
		data.IsInteger = true
		body = body[:len(body)-1]
	case strings.HasSuffix(body, "i"):
		data.IsComplex = true
		body = body[:len(body)-1]
	}

	lower := strings.ToLower(body)
	if strings.HasPrefix(lower, "0x") && !strings.Contains(lower, "p") {
		v, err := strconv.ParseUint(body[2:], 16, 64)
		if err != nil {
			return ast.LiteralData{}, fmt.Errorf("invalid hexadecimal constant %q", text)
		}
		data.Number = float64(v)
		return data, nil
	}
	v, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return ast.LiteralData{}, fmt.Errorf("invalid numeric constant %q", text)
	}
	data.Number = v
	return data, nil
}

// parseString removes quotes and resolves escapes of a STR_CONST token.
func parseString(text string) (ast.LiteralData, error) {
	if len(text) < 2 {
		return ast.LiteralData{}, fmt.Errorf("string constant %q is not quoted", text)
	}
	if text[0] == 'r' || text[0] == 'R' {
		return parseRawString(text)
	}
	quote := text[0]
	if (quote != '"' && quote != '\'') || text[len(text)-1] != quote {
		return ast.LiteralData{}, fmt.Errorf("string constant %q is not quoted", text)
	}
	s, err := unescape(text[1 : len(text)-1])
	if err != nil {
		return ast.LiteralData{}, fmt.Errorf("string constant %s: %w", text, err)
	}
	return ast.LiteralData{Kind: ast.LiteralString, Str: s, Quote: quote}, nil
}

// parseRawString handles r"(...)", R'[...]', r"---{...}---" and friends.
func parseRawString(text string) (ast.LiteralData, error) {
	bad := fmt.Errorf("malformed raw string %q", text)
	quote := text[1]
	if (quote != '"' && quote != '\'') || text[len(text)-1] != quote {
		return ast.LiteralData{}, bad
	}
	inner := text[2 : len(text)-1]
	dashes := 0
	for dashes < len(inner) && inner[dashes] == '-' {
		dashes++
	}
	if dashes >= len(inner) {
		return ast.LiteralData{}, bad
	}
	var closing byte
	switch inner[dashes] {
	case '(':
		closing = ')'
	case '[':
		closing = ']'
	case '{':
		closing = '}'
	default:
		return ast.LiteralData{}, bad
	}
	suffix := string(closing) + strings.Repeat("-", dashes)
	body := inner[dashes+1:]
	if !strings.HasSuffix(body, suffix) {
		return ast.LiteralData{}, bad
	}
	return ast.LiteralData{
		Kind:  ast.LiteralString,
		Str:   body[:len(body)-len(suffix)],
		Quote: quote,
		Raw:   true,
	}, nil
}

var simpleEscapes = map[byte]string{
	'n': "\n", 't': "\t", 'r': "\r", 'a': "\a", 'b': "\b",
	'f': "\f", 'v': "\v", '\\': "\\", '"': "\"", '\'': "'", '`': "`", ' ': " ",
	'\n': "\n",
}

func unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			sb.WriteByte(s[i])
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("trailing backslash")
		}
		if rep, ok := simpleEscapes[s[i]]; ok {
			sb.WriteString(rep)
			continue
		}
		switch s[i] {
		case 'x':
			n, width := hexPrefix(s[i+1:], 2)
			if width == 0 {
				return "", fmt.Errorf(`'\x' used without hex digits`)
			}
			sb.WriteByte(byte(n))
			i += width
		case 'u', 'U':
			maxDigits := 4
			if s[i] == 'U' {
				maxDigits = 8
			}
			rest := s[i+1:]
			braced := strings.HasPrefix(rest, "{")
			if braced {
				rest = rest[1:]
			}
			n, width := hexPrefix(rest, maxDigits)
			if width == 0 || (braced && !strings.HasPrefix(rest[width:], "}")) {
				return "", fmt.Errorf(`invalid \%c escape`, s[i])
			}
			if !utf8.ValidRune(rune(n)) {
				return "", fmt.Errorf("invalid code point %#x", n)
			}
			sb.WriteRune(rune(n))
			i += width
			if braced {
				i += 2
			}
		default:
			if s[i] >= '0' && s[i] <= '7' {
				n, width := octalPrefix(s[i:], 3)
				sb.WriteByte(byte(n))
				i += width - 1
				continue
			}
			return "", fmt.Errorf(`unknown escape '\%c'`, s[i])
		}
	}
	return sb.String(), nil
}

func hexPrefix(s string, maxDigits int) (uint32, int) {
	var n uint32
	i := 0
	for ; i < len(s) && i < maxDigits; i++ {
		d, ok := hexDigit(s[i])
		if !ok {
			break
		}
		n = n<<4 | d
	}
	return n, i
}

func hexDigit(b byte) (uint32, bool) {
	switch {
	case b >= '0' && b <= '9':
		return uint32(b - '0'), true
	case b >= 'a' && b <= 'f':
		return uint32(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return uint32(b-'A') + 10, true
	}
	return 0, false
}

func octalPrefix(s string, maxDigits int) (uint32, int) {
	var n uint32
	i := 0
	for ; i < len(s) && i < maxDigits && s[i] >= '0' && s[i] <= '7'; i++ {
		n = n<<3 | uint32(s[i]-'0')
	}
	return n, i
}
