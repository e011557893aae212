package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[normalize]
max_depth = 128

[batch]
jobs = 4
include = ["*.xml"]

[trace]
level = "debug"
`)
	values, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	want := map[string]string{
		"max-depth":   "128",
		"jobs":        "4",
		"include":     "*.xml",
		"trace-level": "debug",
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "[normalize]\nmax_dept = 3\n", "unknown key"},
		{"bad depth", "[normalize]\nmax_depth = 0\n", "max_depth must be positive"},
		{"negative jobs", "[batch]\njobs = -1\n", "jobs must not be negative"},
		{"empty include", "[batch]\ninclude = []\n", "include must not be empty"},
		{"bad trace level", "[trace]\nlevel = \"loud\"\n", "[trace].level"},
		{"broken toml", "[normalize\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, t.TempDir(), tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("found %s, want %s", got, want)
	}
}

func TestSetUnchangedKeepsExplicitFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("max-depth", 4096, "")
	cmd.Flags().Int("jobs", 0, "")
	cmd.Flags().StringSlice("include", []string{"*.xml", "*.json"}, "")
	if err := cmd.Flags().Parse([]string{"--jobs", "2"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	values := map[string]string{
		"max-depth":   "64",
		"jobs":        "8",
		"include":     "*.rxml",
		"trace-level": "debug", // нет такого флага у команды
	}
	if err := setUnchanged(cmd, values); err != nil {
		t.Fatalf("setUnchanged: %v", err)
	}

	if got, _ := cmd.Flags().GetInt("max-depth"); got != 64 {
		t.Fatalf("max-depth = %d, want 64", got)
	}
	if got, _ := cmd.Flags().GetInt("jobs"); got != 2 {
		t.Fatalf("jobs = %d, explicit flag overridden", got)
	}
	if got, _ := cmd.Flags().GetStringSlice("include"); !cmp.Equal(got, []string{"*.rxml"}) {
		t.Fatalf("include = %v", got)
	}
}
