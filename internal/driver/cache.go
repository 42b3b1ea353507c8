package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"myton/internal/project"
)

// Current schema version - increment when CachedRun format changes
const cacheSchemaVersion uint16 = 1

// ResultCache stores suite outcomes on disk keyed by script digest, so an
// unchanged script is not re-executed. Safe for concurrent use.
type ResultCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedRun is the msgpack payload of one script run.
type CachedRun struct {
	Schema   uint16
	Path     string
	Output   string // stdout followed by golden diagnostics
	ExitCode int
	Lines    int
}

// OpenResultCache uses $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func OpenResultCache(app string) (*ResultCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate cache directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return NewResultCache(filepath.Join(base, app))
}

// NewResultCache creates a cache rooted at dir.
func NewResultCache(dir string) (*ResultCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &ResultCache{dir: dir}, nil
}

func (c *ResultCache) Dir() string { return c.dir }

func (c *ResultCache) pathFor(key project.Digest) string {
	hexKey := key.String()
	// двухсимвольный префикс, чтобы не копить тысячи файлов в одном каталоге
	return filepath.Join(c.dir, "runs", hexKey[:2], hexKey+".mp")
}

// Put serializes run under key, replacing the file atomically.
func (c *ResultCache) Put(key project.Digest, run *CachedRun) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload := *run
	payload.Schema = cacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get loads the payload stored under key. Entries written with another
// schema count as misses.
func (c *ResultCache) Get(key project.Digest) (*CachedRun, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var out CachedRun
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	if out.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return &out, true, nil
}

// DropAll removes every cached run.
func (c *ResultCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "runs"))
}
