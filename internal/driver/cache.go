package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"layoutlint/internal/diag"
	"layoutlint/internal/source"
)

// bump when cachedResult changes shape
const cacheSchemaVersion uint16 = 1

// Cache stores lint results on disk keyed by file content, config digest
// and binary version. Only lint results are cached; fix runs always lint.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

type cachedDiagnostic struct {
	Severity   uint8
	RuleID     string
	MessageID  string
	Message    string
	Start      uint32
	End        uint32
	Notes      []cachedNote
	Deprecated bool
	Fixable    bool
}

type cachedResult struct {
	Schema      uint16
	Path        string
	Diagnostics []cachedDiagnostic
}

// OpenCache opens $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCacheDir(filepath.Join(base, app))
}

// OpenCacheDir opens a cache rooted at dir.
func OpenCacheDir(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir is the cache root.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// CacheKey is sha256(content ‖ config digest ‖ version).
func CacheKey(content []byte, configDigest, version string) [32]byte {
	h := sha256.New()
	_, _ = h.Write(content)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(configDigest))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(version))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (c *Cache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// два символа на подкаталог, чтобы не раздувать одну директорию
	return filepath.Join(c.dir, "lint", hexKey[:2], hexKey+".mp")
}

// Put stores the diagnostics of file under key. Fix edits are not stored;
// only whether a fix existed.
func (c *Cache) Put(key [32]byte, file *source.File, diags []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	payload := cachedResult{Schema: cacheSchemaVersion, Path: file.Path}
	payload.Diagnostics = make([]cachedDiagnostic, len(diags))
	for i, d := range diags {
		cd := cachedDiagnostic{
			Severity:   uint8(d.Severity),
			RuleID:     d.RuleID,
			MessageID:  d.MessageID,
			Message:    d.Message,
			Start:      d.Primary.Start,
			End:        d.Primary.End,
			Deprecated: d.Deprecated,
			Fixable:    d.Fixable(),
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diagnostics[i] = cd
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(tmp, p)
}

// Get loads the diagnostics stored under key and rebinds their spans to
// file. Entries written by another schema count as misses.
func (c *Cache) Get(key [32]byte, file *source.File) ([]diag.Diagnostic, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var payload cachedResult
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}

	out := make([]diag.Diagnostic, len(payload.Diagnostics))
	for i, cd := range payload.Diagnostics {
		d := diag.Diagnostic{
			Severity:   diag.Severity(cd.Severity),
			RuleID:     cd.RuleID,
			MessageID:  cd.MessageID,
			Message:    cd.Message,
			Primary:    source.Span{File: file.ID, Start: cd.Start, End: cd.End},
			Deprecated: cd.Deprecated,
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: source.Span{File: file.ID, Start: n.Start, End: n.End}, Msg: n.Msg})
		}
		if cd.Fixable {
			// пустая правка: Fixable() остаётся false, но заголовок виден в выводе
			d.Fixes = []diag.Fix{{Title: "fix available"}}
		}
		out[i] = d
	}
	return out, true, nil
}

// Clear removes every cached entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "lint"))
}
