package rawtree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"rnorm/internal/source"
)

// jsonToken is the on-disk JSON layout:
//
//	{"kind": "expr", "range": [1, 1, 1, 6], "children": [...]}
//	{"kind": "SYMBOL", "text": "x", "range": [1, 1, 1, 1]}
type jsonToken struct {
	Kind     string       `json:"kind"`
	Text     string       `json:"text,omitempty"`
	Range    []uint32     `json:"range,omitempty"`
	Children []*jsonToken `json:"children,omitempty"`
}

func decodeJSON(fs *source.FileSet, id source.FileID) (*Token, error) {
	file := fs.Get(id)
	if len(bytes.TrimSpace(file.Content)) == 0 {
		return nil, ErrEmptyDocument.New(file.Path)
	}
	var doc jsonToken
	if err := json.Unmarshal(file.Content, &doc); err != nil {
		where := "1:1"
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			pos := fs.Resolve(id, syn.Offset)
			where = fmt.Sprintf("%d:%d", pos.Line, pos.Col)
		}
		return nil, ErrMalformedInput.Wrap(err, file.Path, where, "invalid json")
	}
	return fromJSON(file.Path, id, &doc)
}

func fromJSON(path string, id source.FileID, j *jsonToken) (*Token, error) {
	t := &Token{Kind: CanonicalKind(j.Kind), Text: j.Text}
	switch len(j.Range) {
	case 0:
	case 4:
		t.Range = source.RangeOf(id, j.Range[0], j.Range[1], j.Range[2], j.Range[3])
	default:
		return nil, ErrMalformedInput.New(path, "-", fmt.Sprintf("range of %q needs 4 numbers, got %d", j.Kind, len(j.Range)))
	}
	if len(j.Children) > 0 {
		t.Children = make([]*Token, 0, len(j.Children))
		t.Text = ""
	}
	for _, c := range j.Children {
		if c == nil {
			return nil, ErrMalformedInput.New(path, "-", "null child token")
		}
		child, err := fromJSON(path, id, c)
		if err != nil {
			return nil, err
		}
		t.Children = append(t.Children, child)
	}
	return t, nil
}

func toJSON(t *Token, withChildren bool) *jsonToken {
	j := &jsonToken{Kind: string(t.Kind)}
	if t.IsLeaf() || !withChildren {
		j.Text = t.Text
	}
	if !t.Range.IsZero() {
		j.Range = []uint32{t.Range.Start.Line, t.Range.Start.Col, t.Range.End.Line, t.Range.End.Col}
	}
	if withChildren {
		for _, c := range t.Children {
			j.Children = append(j.Children, toJSON(c, true))
		}
	}
	return j
}

// MarshalJSON encodes the token and its subtree in the JSON input layout.
func (t *Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(t, true))
}

// EncodeJSON writes root as indented JSON.
func EncodeJSON(w io.Writer, root *Token) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(root, true))
}

// Brief serialises tokens without their subtrees, for error messages.
func Brief(tokens ...*Token) string {
	out := make([]*jsonToken, 0, len(tokens))
	for _, t := range tokens {
		if t == nil {
			continue
		}
		out = append(out, toJSON(t, false))
	}
	var data []byte
	var err error
	if len(out) == 1 {
		data, err = json.Marshal(out[0])
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return fmt.Sprintf("<unserialisable: %v>", err)
	}
	return string(data)
}
