package diag

import (
	"testing"

	"rnorm/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/testdata/golden/sample.xml", []byte("<exprlist/>\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     NrmUnclosedDelimiter,
			Message:  "first line\nsecond",
			Primary:  source.RangeOf(userFile, 1, 1, 1, 9),
			Notes: []Note{
				{Range: source.RangeOf(99, 1, 1, 1, 1), Msg: "skip me"},
				{Range: source.RangeOf(userFile, 2, 1, 2, 1), Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     NrmNoChildren,
			Message:  "another",
			Primary:  source.RangeOf(userFile, 2, 1, 2, 1),
		},
	}

	expected := "error NRM2002 testdata/golden/sample.xml:1:1 first line second\n" +
		"note NRM2002 testdata/golden/sample.xml:2:1 note line\n" +
		"warning NRM2011 testdata/golden/sample.xml:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagSortDedup(t *testing.T) {
	b := NewBag(10)
	late := NewError(NrmUnexpectedToken, source.RangeOf(0, 3, 1, 3, 2), "late")
	early := New(SevWarning, NrmNoChildren, source.RangeOf(0, 1, 4, 1, 4), "early")
	b.Add(late)
	b.Add(early)
	b.Add(late)
	b.Dedup()
	b.Sort()
	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", len(items))
	}
	if items[0].Message != "early" || items[1].Message != "late" {
		t.Fatalf("unexpected order: %q, %q", items[0].Message, items[1].Message)
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("expected both errors and warnings")
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(1)
	if !b.Add(NewError(NrmUnexpectedToken, source.Range{}, "a")) {
		t.Fatalf("first Add rejected")
	}
	if b.Add(NewError(NrmUnexpectedToken, source.Range{}, "b")) {
		t.Fatalf("Add over the limit accepted")
	}
	if b.Dropped() != 1 {
		t.Fatalf("dropped = %d, want 1", b.Dropped())
	}
	other := NewBag(4)
	other.Add(NewError(NrmMissingOperand, source.Range{}, "c"))
	b.Merge(other)
	if b.Len() != 2 || b.Limit() != 2 {
		t.Fatalf("after merge: len=%d limit=%d", b.Len(), b.Limit())
	}
	if NewBag(-3).Add(NewError(NrmMissingOperand, source.Range{}, "x")) {
		t.Fatalf("negative limit must keep nothing")
	}
}

func TestDiagnosticWithNote(t *testing.T) {
	d := NewError(NrmBadForHeader, source.RangeOf(0, 1, 1, 1, 3), "bad header").
		WithNote(source.RangeOf(0, 1, 5, 1, 5), "here")
	if len(d.Notes) != 1 || d.Notes[0].Msg != "here" {
		t.Fatalf("note not attached: %+v", d.Notes)
	}
	if got := d.Code.String(); got != "[NRM2005]: Malformed for-loop header" {
		t.Fatalf("code string = %q", got)
	}
}
