package astfmt

import (
	"strconv"

	"rnorm/internal/ast"
	"rnorm/internal/diag"
	"rnorm/internal/source"
)

// Location представляет диапазон строк/колонок в исходнике R.
type Location struct {
	StartLine uint32 `json:"start_line" yaml:"start_line" msgpack:"start_line"`
	StartCol  uint32 `json:"start_col" yaml:"start_col" msgpack:"start_col"`
	EndLine   uint32 `json:"end_line" yaml:"end_line" msgpack:"end_line"`
	EndCol    uint32 `json:"end_col" yaml:"end_col" msgpack:"end_col"`
}

// String renders the location as line:col-line:col.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	return source.RangeOf(0, l.StartLine, l.StartCol, l.EndLine, l.EndCol).String()
}

// Node is the serialisable form of an ast.Node. Named sub-nodes live in
// Slots, ordered sequences (statements, arguments, parameters) in Children.
type Node struct {
	Type     string            `json:"type" yaml:"type" msgpack:"type"`
	Location *Location         `json:"location,omitempty" yaml:"location,omitempty" msgpack:"location,omitempty"`
	Lexeme   string            `json:"lexeme,omitempty" yaml:"lexeme,omitempty" msgpack:"lexeme,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty" msgpack:"attrs,omitempty"`
	Slots    map[string]*Node  `json:"slots,omitempty" yaml:"slots,omitempty" msgpack:"slots,omitempty"`
	Children []*Node           `json:"children,omitempty" yaml:"children,omitempty" msgpack:"children,omitempty"`
	Comments []*Node           `json:"comments,omitempty" yaml:"comments,omitempty" msgpack:"comments,omitempty"`
}

// Diagnostic is the serialisable form of diag.Diagnostic.
type Diagnostic struct {
	Severity string    `json:"severity" yaml:"severity" msgpack:"severity"`
	Code     string    `json:"code" yaml:"code" msgpack:"code"`
	Message  string    `json:"message" yaml:"message" msgpack:"message"`
	Location *Location `json:"location,omitempty" yaml:"location,omitempty" msgpack:"location,omitempty"`
}

// Document is the result of normalizing one file.
type Document struct {
	File        string       `json:"file" yaml:"file" msgpack:"file"`
	Digest      string       `json:"digest,omitempty" yaml:"digest,omitempty" msgpack:"digest,omitempty"`
	Root        *Node        `json:"root,omitempty" yaml:"root,omitempty" msgpack:"root,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
}

// Failed reports whether the document carries an error diagnostic.
func (d *Document) Failed() bool {
	for _, dg := range d.Diagnostics {
		if dg.Severity == diag.SevError.String() {
			return true
		}
	}
	return false
}

// NewDocument assembles a document from a normalized tree and its diagnostics.
// root may be nil when normalization failed.
func NewDocument(file, digest string, root *ast.Node, diags []diag.Diagnostic) *Document {
	doc := &Document{File: file, Digest: digest, Root: Export(root)}
	for _, d := range diags {
		doc.Diagnostics = append(doc.Diagnostics, Diagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: location(d.Primary),
		})
	}
	return doc
}

func location(r source.Range) *Location {
	if r.IsZero() {
		return nil
	}
	return &Location{
		StartLine: r.Start.Line,
		StartCol:  r.Start.Col,
		EndLine:   r.End.Line,
		EndCol:    r.End.Col,
	}
}

// Export converts a normalized tree into its serialisable form.
func Export(n *ast.Node) *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Type:     n.Kind.String(),
		Location: location(n.Location),
		Lexeme:   n.Lexeme,
	}
	for _, c := range n.Info.AdditionalTokens {
		out.Comments = append(out.Comments, Export(c))
	}

	switch d := n.Data.(type) {
	case ast.CommentData:
		out.attr("content", d.Content)
	case ast.SymbolData:
		out.attr("name", d.Name)
		out.attr("namespace", d.Namespace)
		out.flag("internal", d.Internal)
	case ast.LiteralData:
		exportLiteral(out, d)
	case ast.ExpressionListData:
		if d.Grouping != nil {
			out.attr("grouping", d.Grouping.Open.Lexeme+d.Grouping.Close.Lexeme)
		}
		out.list(d.Children)
	case ast.WhileData:
		out.slot("condition", d.Condition)
		out.slot("body", d.Body)
	case ast.ForData:
		out.slot("variable", d.Variable)
		out.slot("vector", d.Vector)
		out.slot("body", d.Body)
	case ast.RepeatData:
		out.slot("body", d.Body)
	case ast.IfData:
		out.slot("condition", d.Condition)
		out.slot("then", d.Then)
		out.slot("else", d.Otherwise)
	case ast.UnaryOpData:
		out.attr("op", d.Op)
		out.attr("flavor", d.Flavor.String())
		out.slot("operand", d.Operand)
	case ast.BinaryOpData:
		out.attr("op", d.Op)
		out.attr("flavor", d.Flavor.String())
		out.slot("lhs", d.Left)
		out.slot("rhs", d.Right)
	case ast.CallData:
		out.slot("callee", d.Callee)
		out.list(d.Arguments)
	case ast.ArgumentData:
		out.slot("name", d.Name)
		out.slot("value", d.Value)
	case ast.FunctionData:
		out.flag("lambda", d.Lambda)
		out.list(d.Parameters)
		out.slot("body", d.Body)
	case ast.ParameterData:
		out.flag("dots", d.Dots)
		out.slot("name", d.Name)
		out.slot("default", d.Default)
	case ast.AccessData:
		out.attr("operator", d.Operator)
		out.slot("accessed", d.Accessed)
		out.list(d.Arguments)
	case ast.DelimiterData:
		out.attr("raw", string(d.Raw))
	}
	return out
}

func exportLiteral(out *Node, d ast.LiteralData) {
	out.attr("kind", d.Kind.String())
	switch d.Kind {
	case ast.LiteralNumber:
		out.attr("value", strconv.FormatFloat(d.Number, 'g', -1, 64))
		out.flag("integer", d.IsInteger)
		out.flag("complex", d.IsComplex)
	case ast.LiteralString:
		out.attr("value", d.Str)
		out.attr("quote", string(d.Quote))
		out.flag("raw", d.Raw)
	case ast.LiteralLogical:
		out.attr("value", strconv.FormatBool(d.Logical))
	}
}

func (n *Node) attr(key, value string) {
	if value == "" {
		return
	}
	if n.Attrs == nil {
		n.Attrs = make(map[string]string, 4)
	}
	n.Attrs[key] = value
}

func (n *Node) flag(key string, on bool) {
	if on {
		n.attr(key, "true")
	}
}

func (n *Node) slot(name string, child *ast.Node) {
	if child == nil {
		return
	}
	if n.Slots == nil {
		n.Slots = make(map[string]*Node, 3)
	}
	n.Slots[name] = Export(child)
}

func (n *Node) list(children []*ast.Node) {
	for _, c := range children {
		n.Children = append(n.Children, Export(c))
	}
}
