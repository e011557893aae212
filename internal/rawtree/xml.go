package rawtree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"fortio.org/safecast"
	"golang.org/x/text/encoding/ianaindex"

	"rnorm/internal/source"
)

type xmlFrame struct {
	tok  *Token
	text bytes.Buffer
}

func decodeXML(fs *source.FileSet, id source.FileID) (*Token, error) {
	file := fs.Get(id)
	dec := xml.NewDecoder(bytes.NewReader(file.Content))
	// R writes latin1 documents on some locales
	dec.CharsetReader = charsetReader

	malformed := func(err error, msg string) error {
		pos := fs.Resolve(id, dec.InputOffset())
		where := fmt.Sprintf("%d:%d", pos.Line, pos.Col)
		if err != nil {
			return ErrMalformedInput.Wrap(err, file.Path, where, msg)
		}
		return ErrMalformedInput.New(file.Path, where, msg)
	}

	var (
		stack []*xmlFrame
		root  *Token
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, malformed(err, "invalid xml")
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, malformed(nil, "more than one root element")
			}
			t := &Token{Kind: CanonicalKind(el.Name.Local)}
			rng, err := rangeFromAttrs(id, el.Attr)
			if err != nil {
				return nil, malformed(err, "bad position attribute on <"+el.Name.Local+">")
			}
			t.Range = rng
			if len(stack) > 0 {
				parent := stack[len(stack)-1].tok
				parent.Children = append(parent.Children, t)
			}
			stack = append(stack, &xmlFrame{tok: t})
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(el)
			}
		case xml.EndElement:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.tok.IsLeaf() {
				top.tok.Text = top.text.String()
			}
			if len(stack) == 0 {
				root = top.tok
			}
		}
	}
	if root == nil {
		return nil, ErrEmptyDocument.New(file.Path)
	}
	return root, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

func rangeFromAttrs(id source.FileID, attrs []xml.Attr) (source.Range, error) {
	var vals [4]uint32
	for _, a := range attrs {
		var slot int
		switch a.Name.Local {
		case "line1":
			slot = 0
		case "col1":
			slot = 1
		case "line2":
			slot = 2
		case "col2":
			slot = 3
		default:
			continue
		}
		n, err := strconv.Atoi(a.Value)
		if err != nil {
			return source.Range{}, err
		}
		v, err := safecast.Conv[uint32](n)
		if err != nil {
			return source.Range{}, err
		}
		vals[slot] = v
	}
	return source.RangeOf(id, vals[0], vals[1], vals[2], vals[3]), nil
}

// EncodeXML writes root in xmlparsedata layout.
func EncodeXML(w io.Writer, root *Token) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := encodeXMLToken(enc, root); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func encodeXMLToken(enc *xml.Encoder, t *Token) error {
	start := xml.StartElement{Name: xml.Name{Local: t.Kind.XMLName()}}
	if !t.Range.IsZero() {
		start.Attr = []xml.Attr{
			{Name: xml.Name{Local: "line1"}, Value: strconv.FormatUint(uint64(t.Range.Start.Line), 10)},
			{Name: xml.Name{Local: "col1"}, Value: strconv.FormatUint(uint64(t.Range.Start.Col), 10)},
			{Name: xml.Name{Local: "line2"}, Value: strconv.FormatUint(uint64(t.Range.End.Line), 10)},
			{Name: xml.Name{Local: "col2"}, Value: strconv.FormatUint(uint64(t.Range.End.Col), 10)},
		}
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if t.IsLeaf() {
		if err := enc.EncodeToken(xml.CharData(t.Text)); err != nil {
			return err
		}
	}
	for _, c := range t.Children {
		if err := encodeXMLToken(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}
