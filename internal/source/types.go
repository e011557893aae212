package source

type (
	// FileID uniquely identifies an input document within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about an input document.
	FileFlags uint8
)

const (
	// FileVirtual indicates the document was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single raw-tree document.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// Position is a 1-based line/column pair as reported by the R parser.
// The zero value means "unknown".
type Position struct {
	Line uint32
	Col  uint32
}

// IsZero reports whether the position is unset.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Col == 0
}

// Before reports whether p precedes q in document order.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}
