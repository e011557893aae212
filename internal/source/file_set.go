package source

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns the raw-tree documents of one run. IDs are dense and never
// reused; adding the same path twice yields a second version.
type FileSet struct {
	files   []File
	latest  map[string]FileID
	baseDir string // пусто: рабочая директория
}

func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase creates a set whose relative paths are computed
// against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{latest: make(map[string]FileID), baseDir: baseDir}
}

func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir returns the base directory, falling back to the working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add registers content under path and returns its new id.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(n)
	path = normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.latest[path] = id
	return id
}

// Load reads path from disk, strips a UTF-8 BOM, folds CRLF and adds it.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user supplied input
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	if content, err = stripBOM(content); err == nil {
		flags |= FileHadBOM
	}
	if folded, ok := foldCRLF(content); ok {
		content = folded
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory document such as stdin or a test fixture.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

func (fs *FileSet) Get(id FileID) *File { return &fs.files[id] }

func (fs *FileSet) Len() int { return len(fs.files) }

// Latest returns the newest version of path.
func (fs *FileSet) Latest(path string) (FileID, bool) {
	id, ok := fs.latest[normalizePath(path)]
	return id, ok
}

// Resolve maps a byte offset in the document to a line/column position;
// out-of-range offsets clamp to the end of the document. Decoders use it
// to locate syntax errors.
func (fs *FileSet) Resolve(id FileID, off int64) Position {
	f := &fs.files[id]
	end := uint32(len(f.Content)) // #nosec G115 -- Add bounds the count, not the size; inputs are far below 4GiB
	o, err := safecast.Conv[uint32](off)
	if err != nil || o > end {
		o = end
	}
	return lineCol(f.LineIdx, o)
}

// Digest is the hex SHA-256 of the normalized content; caches key on it.
func (f *File) Digest() string {
	return hex.EncodeToString(f.Hash[:])
}

// FormatPath renders the path for output.
// mode: "absolute", "relative" (to baseDir), "basename" or "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return BaseName(f.Path)
	case "auto":
		// длинные абсолютные пути сокращаем до имени
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return BaseName(f.Path)
		}
	}
	return f.Path
}
