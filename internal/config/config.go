// Package config discovers and decodes layoutlint.toml / layoutlint.yaml.
package config

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"layoutlint/internal/diag"
	"layoutlint/internal/lint"
)

var (
	// ErrUnknownKey is returned for keys the config format does not define.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrUnknownRule is returned for rule names missing from the registry.
	ErrUnknownRule = errors.New("unknown rule")
)

// Names lists the file names Discover looks for, in priority order.
var Names = []string{
	"layoutlint.toml",
	".layoutlint.toml",
	"layoutlint.yaml",
	".layoutlint.yaml",
}

// Format is the encoding of a config file.
type Format uint8

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatFor picks the format from the file extension.
func FormatFor(p string) (Format, error) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return FormatTOML, fmt.Errorf("%s: unsupported config extension", p)
}

// RuleConfig is the per-rule table.
type RuleConfig struct {
	// Severity is off, info, warning or error; empty keeps the rule default.
	Severity string         `toml:"severity" yaml:"severity"`
	Options  map[string]any `toml:"options" yaml:"options"`
}

// Config is the decoded config file.
type Config struct {
	// Path is empty for the built-in defaults.
	Path string `toml:"-" yaml:"-"`
	// Ignore holds slash-separated glob patterns relative to the config dir.
	Ignore []string              `toml:"ignore" yaml:"ignore"`
	Rules  map[string]RuleConfig `toml:"rules" yaml:"rules"`

	digest string
}

// Default is the config used when no file is found.
func Default() *Config {
	return &Config{digest: "default"}
}

// Root is the directory patterns in Ignore are relative to.
func (c *Config) Root() string {
	if c == nil || c.Path == "" {
		return "."
	}
	return filepath.Dir(c.Path)
}

// Digest identifies the config content; cache keys include it.
func (c *Config) Digest() string {
	if c == nil {
		return "default"
	}
	return c.digest
}

// Discover walks up from startDir to the first directory holding one of Names.
func Discover(startDir string) (p string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range Names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads and decodes the config at p.
func Load(p string) (*Config, error) {
	format, err := FormatFor(p)
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	cfg.Path = p
	return cfg, nil
}

// LoadOrDiscover loads explicit when set, otherwise the discovered file,
// otherwise Default.
func LoadOrDiscover(explicit, startDir string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	p, ok, err := Discover(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(p)
}

// Parse decodes data strictly: keys outside the config shape fail with
// ErrUnknownKey.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := &Config{}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			if strings.Contains(err.Error(), "not found in type") {
				return nil, fmt.Errorf("%w: %v", ErrUnknownKey, err)
			}
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
		}
	}
	for _, pattern := range cfg.Ignore {
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", pattern, err)
		}
	}
	sum := sha256.Sum256(data)
	cfg.digest = hex.EncodeToString(sum[:])
	return cfg, nil
}

// Settings resolves the rule tables against reg. Rules without a table are
// absent from the result so Registry.Resolve applies their defaults.
func (c *Config) Settings(reg *lint.Registry) (map[string]lint.Setting, error) {
	out := make(map[string]lint.Setting)
	if c == nil {
		return out, nil
	}
	names := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rule, ok := reg.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownRule, name)
		}
		rc := c.Rules[name]
		setting := lint.Setting{
			Enabled:  true,
			Severity: rule.Meta().DefaultSeverity,
			Options:  lint.Options(rc.Options),
		}
		if rc.Severity != "" {
			sev, enabled, err := diag.ParseSeverity(rc.Severity)
			if err != nil {
				return nil, fmt.Errorf("rule %s: %w", name, err)
			}
			setting.Severity, setting.Enabled = sev, enabled
		}
		if err := lint.ValidateOptions(rule.Meta(), setting.Options); err != nil {
			return nil, err
		}
		out[name] = setting
	}
	return out, nil
}

// Ignored reports whether rel (slash-separated, relative to Root) matches an
// ignore pattern. A pattern matches a path or any of its parent directories;
// a trailing "/**" matches everything below a directory.
func (c *Config) Ignored(rel string) bool {
	if c == nil || len(c.Ignore) == 0 {
		return false
	}
	rel = path.Clean(filepath.ToSlash(rel))
	for _, pattern := range c.Ignore {
		pattern = strings.TrimSuffix(pattern, "/**")
		for p := rel; p != "." && p != "/"; p = path.Dir(p) {
			if ok, _ := path.Match(pattern, p); ok {
				return true
			}
			if ok, _ := path.Match(pattern, path.Base(p)); ok && !strings.Contains(pattern, "/") {
				return true
			}
		}
	}
	return false
}
