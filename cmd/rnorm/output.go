package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"rnorm/internal/astfmt"
	"rnorm/internal/diag"
	"rnorm/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	noteColor    = color.New(color.FgBlue)
	okColor      = color.New(color.FgGreen, color.Bold)
)

// printDiagnostics writes diagnostics one per line. Quiet mode keeps errors
// only; timing records are printed separately by printTimings.
func printDiagnostics(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, colored, quiet bool) {
	kept := items[:0:0]
	for _, d := range items {
		if d.Code == diag.ObsTimings || (quiet && d.Severity != diag.SevError) {
			continue
		}
		kept = append(kept, d)
	}
	items = kept
	out := diag.FormatShortDiagnostics(items, fs, true)
	if out == "" {
		return
	}
	for _, line := range strings.Split(out, "\n") {
		fmt.Fprintln(w, colorizeLine(line, colored))
	}
}

// printSuppressed tells how many diagnostics the bag rejected.
func printSuppressed(w io.Writer, bag *diag.Bag) {
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "... %d more diagnostics not shown (raise --max-diagnostics)\n", n)
	}
}

// colorizeLine раскрашивает метку серьёзности в начале строки.
func colorizeLine(line string, colored bool) string {
	label, rest, ok := strings.Cut(line, " ")
	if !colored || !ok {
		return line
	}
	var c *color.Color
	switch label {
	case "error":
		c = errorColor
	case "warning":
		c = warningColor
	case "info":
		c = infoColor
	case "note":
		c = noteColor
	default:
		return line
	}
	painted := *c
	painted.EnableColor()
	return painted.Sprint(label) + " " + rest
}

// writeDocument renders doc in the requested format.
func writeDocument(w io.Writer, doc *astfmt.Document, format astfmt.Format, opts astfmt.TreeOpts) error {
	if format == astfmt.FormatTree {
		return astfmt.WriteTree(w, doc, opts)
	}
	return astfmt.Encode(w, doc, format)
}

// writeDocumentFile writes doc to path, or to stdout when path is empty or "-".
func writeDocumentFile(path string, doc *astfmt.Document, format astfmt.Format, opts astfmt.TreeOpts) (err error) {
	if path == "" || path == "-" {
		bw := bufio.NewWriter(os.Stdout)
		if err := writeDocument(bw, doc, format, opts); err != nil {
			return err
		}
		return bw.Flush()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path) // #nosec G304 -- output path comes from the user
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(f)
	if err := writeDocument(bw, doc, format, opts); err != nil {
		return err
	}
	return bw.Flush()
}

// outputPath maps an input path relative to the batch root onto outDir,
// swapping the extension for the output format.
func outputPath(outDir, rel string, format astfmt.Format) string {
	rel = filepath.FromSlash(rel)
	base := strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.Join(outDir, base+format.Ext())
}
