package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layoutlint/internal/config"
	"layoutlint/internal/diag"
	"layoutlint/internal/lint"
	"layoutlint/internal/observ"
	"layoutlint/internal/rules"
)

const messy = "const a = {\nfoo: 1, bar: 2 }\nif (a) console.log(a)\n"

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func defaultRules(t *testing.T) []lint.Enabled {
	t.Helper()
	enabled, err := rules.Registry().Resolve(nil)
	require.NoError(t, err)
	return enabled
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func TestCollect(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/a.ts":                "",
		"src/b.tsx":               "",
		"src/c.d.ts":              "",
		"src/readme.md":           "",
		"lib/x.mjs":               "",
		"dist/out.js":             "",
		"node_modules/m/index.js": "",
		".hidden/h.js":            "",
	})
	cfg := &config.Config{Path: filepath.Join(root, "layoutlint.toml"), Ignore: []string{"dist/**"}}

	files, err := Collect([]string{root}, cfg)
	require.NoError(t, err)
	var rel []string
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{"lib/x.mjs", "src/a.ts", "src/b.tsx"}, rel)

	_, err = Collect([]string{filepath.Join(root, "src/readme.md")}, cfg)
	require.Error(t, err)
}

func TestRunLint(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.ts":   messy,
		"b.ts":   "const ok = [1, 2]\n",
		"bad.ts": "const = ;\n",
	})
	paths := []string{filepath.Join(root, "a.ts"), filepath.Join(root, "b.ts"), filepath.Join(root, "bad.ts"), filepath.Join(root, "missing.ts")}
	sink := &recordingSink{}
	timer := observ.NewTimer()

	report, err := Run(context.Background(), paths, Options{Rules: defaultRules(t), Jobs: 2, Progress: sink, Timer: timer})
	require.NoError(t, err)
	require.Len(t, report.Results, 4)

	a := report.Results[0]
	assert.NotEmpty(t, a.Diagnostics)
	assert.False(t, a.Changed())
	assert.Empty(t, report.Results[1].Diagnostics)

	bad := report.Results[2].Diagnostics
	require.Len(t, bad, 1)
	assert.Equal(t, RuleParse, bad[0].RuleID)
	assert.Equal(t, diag.SevError, bad[0].Severity)

	missing := report.Results[3].Diagnostics
	require.Len(t, missing, 1)
	assert.Equal(t, RuleIO, missing[0].RuleID)

	assert.True(t, report.HasErrors())
	assert.NotEmpty(t, sink.events)
	assert.NotEmpty(t, timer.Report().Phases)
}

func TestRunFixAndWrite(t *testing.T) {
	root := writeTree(t, map[string]string{"a.ts": messy, "b.ts": "const ok = [1, 2]\n"})
	paths := []string{filepath.Join(root, "a.ts"), filepath.Join(root, "b.ts")}

	report, err := Run(context.Background(), paths, Options{Mode: ModeFix, Rules: defaultRules(t)})
	require.NoError(t, err)
	require.True(t, report.Results[0].Changed())
	require.False(t, report.Results[1].Changed())
	assert.Equal(t, 1, report.Changed())
	for _, d := range report.Results[0].Diagnostics {
		assert.False(t, d.Fixable(), "left %s", d.MessageID)
	}

	require.NoError(t, Write(report, nil))
	got, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, string(report.Results[0].Output), string(got))
	assert.NotEqual(t, messy, string(got))

	// second run is a no-op
	again, err := Run(context.Background(), paths[:1], Options{Mode: ModeFix, Rules: defaultRules(t)})
	require.NoError(t, err)
	assert.False(t, again.Results[0].Changed())
}

func TestRunUsesCache(t *testing.T) {
	root := writeTree(t, map[string]string{"a.ts": messy})
	cache, err := OpenCacheDir(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	opts := Options{Rules: defaultRules(t), Cache: cache, ConfigDigest: "cfg", Version: "test"}
	paths := []string{filepath.Join(root, "a.ts")}

	first, err := Run(context.Background(), paths, opts)
	require.NoError(t, err)
	require.False(t, first.Results[0].Cached)

	second, err := Run(context.Background(), paths, opts)
	require.NoError(t, err)
	require.True(t, second.Results[0].Cached)

	want, got := first.Results[0].Diagnostics, second.Results[0].Diagnostics
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].MessageID, got[i].MessageID)
		assert.Equal(t, want[i].Message, got[i].Message)
		assert.Equal(t, want[i].Primary.Start, got[i].Primary.Start)
		assert.Equal(t, want[i].Primary.End, got[i].Primary.End)
		assert.Equal(t, len(want[i].Fixes) > 0, len(got[i].Fixes) > 0)
	}

	opts.ConfigDigest = "other"
	third, err := Run(context.Background(), paths, opts)
	require.NoError(t, err)
	assert.False(t, third.Results[0].Cached)

	require.NoError(t, cache.Clear())
	fourth, err := Run(context.Background(), paths, opts)
	require.NoError(t, err)
	assert.False(t, fourth.Results[0].Cached)
}

func TestSource(t *testing.T) {
	res, err := Source(context.Background(), "stdin.ts", []byte(messy), Options{Mode: ModeFix, Rules: defaultRules(t)})
	require.NoError(t, err)
	require.True(t, res.Changed())
	assert.Positive(t, res.Passes)
}

func TestMaxDiagnosticsCapsOnlyTheReport(t *testing.T) {
	full, err := Source(context.Background(), "stdin.ts", []byte(messy), Options{Mode: ModeFix, Rules: defaultRules(t)})
	require.NoError(t, err)

	capped, err := Source(context.Background(), "stdin.ts", []byte(messy), Options{Mode: ModeFix, Rules: defaultRules(t), MaxDiagnostics: 1})
	require.NoError(t, err)
	require.True(t, capped.Changed())
	assert.Equal(t, string(full.Output), string(capped.Output))
	assert.LessOrEqual(t, len(capped.Diagnostics), 1)

	lintRes, err := Source(context.Background(), "stdin.ts", []byte(messy), Options{Rules: defaultRules(t), MaxDiagnostics: 1})
	require.NoError(t, err)
	assert.Len(t, lintRes.Diagnostics, 1)
}

func TestRunCanceled(t *testing.T) {
	root := writeTree(t, map[string]string{"a.ts": messy})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, []string{filepath.Join(root, "a.ts")}, Options{Rules: defaultRules(t)})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCacheKey(t *testing.T) {
	a := CacheKey([]byte("x"), "cfg", "1")
	assert.Equal(t, a, CacheKey([]byte("x"), "cfg", "1"))
	assert.NotEqual(t, a, CacheKey([]byte("x"), "cfg", "2"))
	// separators keep field boundaries apart
	assert.NotEqual(t, CacheKey([]byte("ab"), "c", "1"), CacheKey([]byte("a"), "bc", "1"))
}
