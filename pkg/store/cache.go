package store

import (
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const defaultTTL = time.Hour

// Cached wraps a Store with a read-through on-disk cache for Get, which
// keeps repeated analysis passes from refetching the same evaluation
// blobs. Blobs are immutable once written, so the TTL only bounds how
// long a deleted or replaced path can keep serving stale bytes.
type Cached struct {
	Inner Store
	Dir   string
	TTL   time.Duration
}

func NewCached(inner Store, dir string, ttl time.Duration) (*Cached, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".boteval", "cache")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cached{Inner: inner, Dir: dir, TTL: ttl}, nil
}

type cacheEntry struct {
	Path     string    `json:"path"`
	Data     []byte    `json:"data"`
	CachedAt time.Time `json:"cached_at"`
}

func cacheKey(path string) string {
	h := sha256.Sum256([]byte(path))
	return hex.EncodeToString(h[:])
}

func (c *Cached) cachePath(key string) string {
	return filepath.Join(c.Dir, key+".json.gz")
}

func (c *Cached) Get(ctx context.Context, path string) ([]byte, error) {
	if data, ok := c.lookup(path); ok {
		return data, nil
	}
	data, err := c.Inner.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	// Cache write failures never fail the read.
	_ = c.fill(path, data)
	return data, nil
}

func (c *Cached) Put(ctx context.Context, path string, data []byte) error {
	if err := c.Inner.Put(ctx, path, data); err != nil {
		return err
	}
	_ = os.Remove(c.cachePath(cacheKey(path)))
	return nil
}

func (c *Cached) List(ctx context.Context, prefix string) ([]string, error) {
	return c.Inner.List(ctx, prefix)
}

func (c *Cached) lookup(path string) ([]byte, bool) {
	p := c.cachePath(cacheKey(path))
	f, err := os.Open(p)
	if err != nil {
		return nil, false
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, false
	}
	defer gz.Close()
	var entry cacheEntry
	if err := json.NewDecoder(gz).Decode(&entry); err != nil {
		return nil, false
	}
	if c.TTL > 0 && time.Since(entry.CachedAt) > c.TTL {
		_ = os.Remove(p)
		return nil, false
	}
	return entry.Data, true
}

func (c *Cached) fill(path string, data []byte) error {
	entry := cacheEntry{Path: path, Data: data, CachedAt: time.Now()}
	f, err := os.CreateTemp(c.Dir, "tmp-*.json.gz")
	if err != nil {
		return err
	}
	gz := gzip.NewWriter(f)
	if err := json.NewEncoder(gz).Encode(entry); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := gz.Close(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	if err := os.Rename(f.Name(), c.cachePath(cacheKey(path))); err != nil {
		os.Remove(f.Name())
		return err
	}
	return nil
}
