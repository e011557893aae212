package source

import (
	"path/filepath"
	"testing"
)

func TestRelativePath(t *testing.T) {
	base := filepath.Join(t.TempDir(), "trees")
	outside := filepath.Join(filepath.Dir(base), "other", "tree.xml")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"nested", filepath.Join(base, "pkg", "R", "a.xml"), "pkg/R/a.xml"},
		{"base itself", base, "."},
		{"outside base", outside, normalizePath(outside)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RelativePath(tt.in, base)
			if err != nil {
				t.Fatalf("RelativePath: %v", err)
			}
			if got != tt.want {
				t.Fatalf("RelativePath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatPathModes(t *testing.T) {
	base := t.TempDir()
	long := filepath.Join(base, "some", "deeply", "nested", "directory", "tree.xml")
	f := &File{Path: normalizePath(long)}

	if got := f.FormatPath("relative", base); got != "some/deeply/nested/directory/tree.xml" {
		t.Fatalf("relative = %q", got)
	}
	if got := f.FormatPath("basename", ""); got != "tree.xml" {
		t.Fatalf("basename = %q", got)
	}
	if got := f.FormatPath("auto", ""); got != "tree.xml" {
		t.Fatalf("auto on a long absolute path = %q", got)
	}
	short := &File{Path: "a/b.xml"}
	if got := short.FormatPath("auto", ""); got != "a/b.xml" {
		t.Fatalf("auto on a relative path = %q", got)
	}
	if got := short.FormatPath("unknown", ""); got != "a/b.xml" {
		t.Fatalf("unknown mode = %q", got)
	}
}
