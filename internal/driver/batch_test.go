package driver

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestListInputs(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "b.xml", goodXML)
	writeInput(t, dir, "sub/a.json", "{}")
	writeInput(t, dir, "readme.txt", "skip")

	files, err := ListInputs(dir, nil)
	if err != nil {
		t.Fatalf("ListInputs: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v", files)
	}
	if files[0] > files[1] {
		t.Fatalf("not sorted: %v", files)
	}

	only, err := ListInputs(dir, []string{"*.txt"})
	if err != nil || len(only) != 1 {
		t.Fatalf("include *.txt: %v %v", only, err)
	}
}

func TestNormalizeDir(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "a.xml", goodXML)
	writeInput(t, dir, "b.xml", brokenXML)
	writeInput(t, dir, "c.xml", goodXML)
	writeInput(t, dir, "nested/d.xml", goodXML)

	events := make(chan Event, 64)
	fs, results, err := NormalizeDir(context.Background(), dir, BatchOptions{
		Options: Options{Progress: ChannelSink{Ch: events}},
		Jobs:    2,
	})
	close(events)
	if err != nil {
		t.Fatalf("NormalizeDir: %v", err)
	}
	if fs.Len() != 4 || len(results) != 4 {
		t.Fatalf("files=%d results=%d", fs.Len(), len(results))
	}

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
			if r.Path != "b.xml" {
				t.Fatalf("unexpected failure in %s", r.Path)
			}
		}
	}
	if failed != 1 {
		t.Fatalf("failed = %d, want 1", failed)
	}
	if results[3].Path != "nested/d.xml" {
		t.Fatalf("last path = %q", results[3].Path)
	}

	counts := map[Status]int{}
	for ev := range events {
		counts[ev.Status]++
	}
	if counts[StatusQueued] != 4 || counts[StatusDone] != 3 || counts[StatusError] != 1 {
		t.Fatalf("status counts = %v", counts)
	}
}

func TestNormalizeDirEmpty(t *testing.T) {
	fs, results, err := NormalizeDir(context.Background(), t.TempDir(), BatchOptions{})
	if err != nil || results != nil || fs == nil {
		t.Fatalf("fs=%v results=%v err=%v", fs, results, err)
	}
}

func TestNormalizeDirCanceled(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "a.xml", goodXML)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NormalizeDir(ctx, dir, BatchOptions{Jobs: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestNormalizeDirCorpus(t *testing.T) {
	root := filepath.Join("..", "..", "testdata")

	_, valid, err := NormalizeDir(context.Background(), filepath.Join(root, "valid"), BatchOptions{Jobs: 2})
	if err != nil {
		t.Fatalf("NormalizeDir(valid): %v", err)
	}
	if len(valid) == 0 {
		t.Fatal("valid corpus is empty")
	}
	for _, res := range valid {
		if res.Failed() {
			t.Errorf("%s failed: %v", res.Path, res.Bag.Items())
		}
		if res.Root == nil {
			t.Errorf("%s: no tree", res.Path)
		}
	}

	// invalid/<CODE>_name.xml must fail with CODE
	_, invalid, err := NormalizeDir(context.Background(), filepath.Join(root, "invalid"), BatchOptions{})
	if err != nil {
		t.Fatalf("NormalizeDir(invalid): %v", err)
	}
	for _, res := range invalid {
		want, _, _ := strings.Cut(filepath.Base(res.Path), "_")
		if !res.Failed() {
			t.Errorf("%s normalized without errors", res.Path)
			continue
		}
		if got := res.Bag.Items()[0].Code.ID(); got != want {
			t.Errorf("%s: code %s, want %s", res.Path, got, want)
		}
	}
}
