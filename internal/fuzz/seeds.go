package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// builtinSeeds are small well-formed documents in both input formats.
var builtinSeeds = []string{
	`<exprlist><expr line1="1" col1="1" line2="1" col2="1"><SYMBOL line1="1" col1="1" line2="1" col2="1">x</SYMBOL></expr></exprlist>`,
	`<exprlist>
  <expr line1="1" col1="1" line2="1" col2="6">
    <expr line1="1" col1="1" line2="1" col2="1"><SYMBOL line1="1" col1="1" line2="1" col2="1">x</SYMBOL></expr>
    <LEFT_ASSIGN line1="1" col1="3" line2="1" col2="4">&lt;-</LEFT_ASSIGN>
    <expr line1="1" col1="6" line2="1" col2="6"><NUM_CONST line1="1" col1="6" line2="1" col2="6">1</NUM_CONST></expr>
  </expr>
  <COMMENT line1="1" col1="8" line2="1" col2="12"># one</COMMENT>
</exprlist>`,
	`<exprlist><expr line1="1" col1="1" line2="1" col2="2"><OP-LEFT-BRACE line1="1" col1="1" line2="1" col2="1">{</OP-LEFT-BRACE><OP-RIGHT-BRACE line1="1" col1="2" line2="1" col2="2">}</OP-RIGHT-BRACE></expr></exprlist>`,
	`{"kind":"exprlist","children":[{"kind":"expr","range":[1,1,1,5],"children":[{"kind":"BREAK","text":"break","range":[1,1,1,5]}]}]}`,
	`{"kind":"exprlist","children":[{"kind":"COMMENT","text":"# only","range":[1,1,1,6]}]}`,
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range builtinSeeds {
		f.Add([]byte(seed))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds raw trees exported by R into testdata/, when present.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем *.xml и *.json
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".xml", ".json":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		return append([]byte(nil), src[:maxSeedBytes]...)
	}
	return src
}
