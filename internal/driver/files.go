package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"layoutlint/internal/config"
	"layoutlint/internal/parser"
)

// skipDirs are never descended into, whatever the ignore patterns say.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".hg":          true,
	".svn":         true,
}

// Collect expands paths into the sorted, de-duplicated list of lintable
// files. Directories are walked; files named explicitly are kept even when
// an ignore pattern matches them, as long as their extension is supported.
func Collect(paths []string, cfg *config.Config) ([]string, error) {
	root, err := filepath.Abs(cfg.Root())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config root: %w", err)
	}
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if _, ok := parser.LanguageFor(p); !ok {
				return nil, fmt.Errorf("%s: %w", p, parser.ErrUnsupported)
			}
			add(filepath.Clean(p))
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ignored(root, path, cfg) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != p && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			if _, ok := parser.LanguageFor(path); ok && !strings.HasSuffix(path, ".d.ts") {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// детерминированный порядок вывода
	sort.Strings(files)
	return files, nil
}

func ignored(root, path string, cfg *config.Config) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	return cfg.Ignored(filepath.ToSlash(rel))
}
