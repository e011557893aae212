package source

import (
	"bytes"
	"errors"
	"path/filepath"
	"sort"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	crlf    = []byte("\r\n")
	lf      = []byte("\n")

	errNoBOM = errors.New("no byte order mark")
)

// stripBOM removes a leading UTF-8 BOM; errNoBOM means content was untouched.
func stripBOM(content []byte) ([]byte, error) {
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		return rest, nil
	}
	return content, errNoBOM
}

// foldCRLF turns CRLF pairs into LF. Lone CR bytes are kept.
func foldCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, lf), true
}

// buildLineIndex records the offset of every '\n'.
func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, lf))
	for off := 0; ; {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return idx
		}
		off += i
		idx = append(idx, uint32(off)) // #nosec G115 -- offsets fit, see Resolve
		off++
	}
}

// lineCol converts an offset into a 1-based position using the newline index.
func lineCol(lineIdx []uint32, off uint32) Position {
	// число переводов строк строго до off
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	start := uint32(0)
	if line > 0 {
		start = lineIdx[line-1] + 1
	}
	return Position{Line: uint32(line) + 1, Col: off - start + 1} // #nosec G115 -- bounded by len(lineIdx)
}

// normalizePath cleans p and uses forward slashes so output is the same on
// every platform.
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
