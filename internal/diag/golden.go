package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"rnorm/internal/source"
)

// line is one rendered entry: a diagnostic or one of its notes.
type line struct {
	label string
	code  string
	path  string
	pos   source.Position
	msg   string
}

func (l line) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.label, l.code, l.path, l.pos.Line, l.pos.Col, l.msg)
}

// FormatGoldenDiagnostics renders diagnostics one per line with paths
// relative to the FileSet base, so the output is stable across machines.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return render(diags, fs, includeNotes, "relative")
}

// FormatShortDiagnostics renders diagnostics one per line for the terminal.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return render(diags, fs, includeNotes, "auto")
}

func render(diags []Diagnostic, fs *source.FileSet, includeNotes bool, pathMode string) string {
	if fs == nil {
		return ""
	}
	var lines []line
	for i := range diags {
		d := &diags[i]
		code := d.Code.ID()
		if path, ok := pathOf(fs, d.Primary.File, pathMode); ok {
			lines = append(lines, line{d.Severity.Label(), code, path, d.Primary.Start, oneLine(d.Message)})
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if path, ok := pathOf(fs, n.Range.File, pathMode); ok {
				lines = append(lines, line{"note", code, path, n.Range.Start, oneLine(n.Msg)})
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b line) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
			cmp.Compare(a.label, b.label),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.msg, b.msg),
		)
	})

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

// pathOf resolves a file id; ranges pointing outside the set are skipped.
func pathOf(fs *source.FileSet, id source.FileID, mode string) (string, bool) {
	if int(id) >= fs.Len() {
		return "", false
	}
	p := filepath.ToSlash(fs.Get(id).FormatPath(mode, fs.BaseDir()))
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p, true
}

// oneLine folds line breaks so every entry stays on a single line.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
