package driver

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"rnorm/internal/ast"
	"rnorm/internal/astfmt"
	"rnorm/internal/diag"
	"rnorm/internal/source"
)

// DefaultCacheSize is the number of results kept in memory.
const DefaultCacheSize = 256

// cached is one memoized result. Documents and diagnostics are shared
// between every file with the same content; root carries the ranges of
// file and is only handed out for that file.
type cached struct {
	file  source.FileID
	root  *ast.Node
	doc   *astfmt.Document
	diags []diag.Diagnostic
}

// ResultCache is an in-memory LRU of normalization results keyed by
// content digest and recursion limit. Safe for concurrent use.
type ResultCache struct {
	entries *lru.Cache
}

// NewResultCache creates a cache holding up to size results.
func NewResultCache(size int) (*ResultCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("result cache: %w", err)
	}
	return &ResultCache{entries: entries}, nil
}

func (c *ResultCache) get(key string) (cached, bool) {
	if c == nil {
		return cached{}, false
	}
	v, ok := c.entries.Get(key)
	if !ok {
		return cached{}, false
	}
	return v.(cached), true
}

func (c *ResultCache) put(key string, entry cached) {
	if c == nil {
		return
	}
	c.entries.Add(key, entry)
}

// Len returns the number of cached results.
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

// Purge drops every cached result.
func (c *ResultCache) Purge() {
	if c != nil {
		c.entries.Purge()
	}
}

// cacheKey identifies a result: the same bytes normalized with a different
// depth limit may fail differently.
func cacheKey(digest string, maxDepth int) string {
	return fmt.Sprintf("%s-d%d", digest, maxDepth)
}
