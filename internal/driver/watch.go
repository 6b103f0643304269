package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"layoutlint/internal/config"
	"layoutlint/internal/parser"
)

// DefaultDebounce is the quiet period a batch of changes waits for.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports batches of changed lintable files under a set of roots.
type Watcher struct {
	cfg      *config.Config
	root     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// NewWatcher registers every non-skipped directory below roots. Ignore
// patterns of cfg apply as in Collect.
func NewWatcher(roots []string, cfg *config.Config, debounce time.Duration) (*Watcher, error) {
	root, err := filepath.Abs(cfg.Root())
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{cfg: cfg, root: root, debounce: debounce, fsw: fsw}
	for _, r := range roots {
		if err := w.addTree(r); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.fsw.Add(filepath.Dir(dir))
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != dir && w.skipDir(path, d.Name()) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) skipDir(path, name string) bool {
	return skipDirs[name] || strings.HasPrefix(name, ".") || ignored(w.root, path, w.cfg)
}

func (w *Watcher) lintable(path string) bool {
	if _, ok := parser.LanguageFor(path); !ok || strings.HasSuffix(path, ".d.ts") {
		return false
	}
	return !ignored(w.root, path, w.cfg)
}

// Run delivers sorted, de-duplicated batches to fn until ctx is done. Files
// removed before the batch fires are dropped. Errors from fn stop the loop.
func (w *Watcher) Run(ctx context.Context, fn func(ctx context.Context, files []string) error) error {
	defer func() { _ = w.fsw.Close() }()

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return err
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if !w.skipDir(ev.Name, filepath.Base(ev.Name)) {
						_ = w.addTree(ev.Name)
					}
					continue
				}
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !w.lintable(ev.Name) {
				continue
			}
			pending[filepath.Clean(ev.Name)] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			batch := make([]string, 0, len(pending))
			for p := range pending {
				if _, err := os.Stat(p); err == nil {
					batch = append(batch, p)
				}
			}
			clear(pending)
			if len(batch) == 0 {
				continue
			}
			sort.Strings(batch)
			if err := fn(ctx, batch); err != nil {
				return err
			}
		}
	}
}
