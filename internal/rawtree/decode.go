package rawtree

import (
	"bytes"
	"path/filepath"
	"strings"

	"rnorm/internal/source"
)

// Format selects the serialisation of a raw tree document.
type Format uint8

const (
	FormatAuto Format = iota
	FormatXML
	FormatJSON
)

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, true
	case "xml":
		return FormatXML, true
	case "json":
		return FormatJSON, true
	default:
		return FormatAuto, false
	}
}

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatJSON:
		return "json"
	default:
		return "auto"
	}
}

// DetectFormat picks a format from the file extension, falling back to
// the first non-blank byte of the content.
func DetectFormat(path string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return FormatXML
	case ".json":
		return FormatJSON
	}
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return FormatAuto
	}
	switch trimmed[0] {
	case '<':
		return FormatXML
	case '{', '[':
		return FormatJSON
	default:
		return FormatAuto
	}
}

// Decode reads the document id from fs into a sealed token tree.
// Ranges of the returned tokens carry id as their file.
func Decode(fs *source.FileSet, id source.FileID, format Format) (*Token, error) {
	file := fs.Get(id)
	if format == FormatAuto {
		format = DetectFormat(file.Path, file.Content)
	}
	var (
		root *Token
		err  error
	)
	switch format {
	case FormatXML:
		root, err = decodeXML(fs, id)
	case FormatJSON:
		root, err = decodeJSON(fs, id)
	default:
		if len(bytes.TrimSpace(file.Content)) == 0 {
			return nil, ErrEmptyDocument.New(file.Path)
		}
		return nil, ErrUnsupportedFormat.New(file.Path)
	}
	if err != nil {
		return nil, err
	}
	Seal(root)
	return root, nil
}
