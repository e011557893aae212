package driver

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"rnorm/internal/astfmt"
)

// diskSchema versions the on-disk record; bump it whenever DiskPayload or
// astfmt.Document changes shape.
const diskSchema uint16 = 1

// DiskCache keeps exported documents across runs, one MessagePack file per
// cache key under <root>/trees/<key[:2]>/. Safe for concurrent use.
type DiskCache struct {
	mu   sync.RWMutex
	root string
}

// DiskPayload is the record stored for one key. Key is repeated inside the
// file so a renamed or truncated entry reads as a miss.
type DiskPayload struct {
	Schema uint16           `msgpack:"schema"`
	Key    string           `msgpack:"key"`
	Doc    *astfmt.Document `msgpack:"doc"`
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/<app>, falling back
// to the platform user cache directory.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		base = dir
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache uses root as the cache directory, creating it if needed.
func NewDiskCache(root string) (*DiskCache, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{root: root}, nil
}

func (c *DiskCache) treesDir() string { return filepath.Join(c.root, "trees") }

func (c *DiskCache) pathFor(key string) string {
	shard := "_"
	if len(key) >= 2 {
		shard = key[:2]
	}
	return filepath.Join(c.treesDir(), shard, key+".mp")
}

// Put stores doc under key. The record is written to a temp file and renamed
// into place, so readers never see a partial entry.
func (c *DiskCache) Put(key string, doc *astfmt.Document) error {
	if c == nil {
		return nil
	}
	data, err := msgpack.Marshal(&DiskPayload{Schema: diskSchema, Key: key, Doc: doc})
	if err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	dst := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".put-*")
	if err != nil {
		return err
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Get loads the document stored under key. Missing entries and entries of
// another schema are misses, not errors.
func (c *DiskCache) Get(key string) (*astfmt.Document, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.pathFor(key))
	c.mu.RUnlock()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var payload DiskPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != diskSchema || payload.Key != key || payload.Doc == nil {
		return nil, false, nil
	}
	return payload.Doc, true, nil
}

// DropAll removes every stored tree. Writers are blocked while it runs.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(c.treesDir())
}
