package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"implgen/internal/parser"
)

// Schema version of CachePayload - increment when the format changes.
const cacheSchemaVersion uint16 = 1

// Digest is a SHA-256 content hash used as the cache key material.
type Digest = [32]byte

// DiskCache хранит готовые результаты разворачивания по хэшу содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload stores one file's expansion output.
type CachePayload struct {
	Schema    uint16
	Output    string
	NumDecls  int
	NumCopies int
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location ($XDG_CACHE_HOME/<app> or ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt opens a cache rooted at an explicit directory; tests and
// the manifest's cache_dir setting use this.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// cacheKey mixes the file content hash with the attribute configuration:
// renaming the attributes must invalidate prior results.
func cacheKey(content Digest, cfg parser.Config) Digest {
	h := sha256.New()
	h.Write(content[:])
	h.Write([]byte(cfg.Attr))
	h.Write([]byte{0})
	h.Write([]byte(cfg.OverrideAttr))
	var out Digest
	h.Sum(out[:0])
	return out
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог для удобства очистки
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// Store serializes and writes a payload, atomically replacing any previous
// entry for the same key.
func (c *DiskCache) Store(content Digest, cfg parser.Config, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = cacheSchemaVersion
	p := c.pathFor(cacheKey(content, cfg))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(f.Name(), p)
}

// Lookup reads a payload back; a schema mismatch is a miss, not an error.
func (c *DiskCache) Lookup(content Digest, cfg parser.Config) (*CachePayload, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(cacheKey(content, cfg)))
	if err != nil {
		return nil, false
	}
	defer func() {
		_ = f.Close()
	}()

	var payload CachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false
	}
	return &payload, true
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
