package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const messySource = "const a = {\nfoo: 1, bar: 2 }\nif (a)\n  foo()\nelse {\n  bar()\n}\n"

// execute runs rootCmd with args; flag values are reset first because
// cobra keeps them between runs.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{}, args...))
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "messy.ts"), []byte(messySource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clean.js"), []byte("const b = 1\n"), 0o644))
	cfg := "[rules.curly]\nseverity = \"error\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "layoutlint.toml"), []byte(cfg), 0o644))
	return dir
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := readUIMode("sometimes")
	require.Error(t, err)

	assert.True(t, shouldUseTUI(uiModeOn, 1))
	assert.False(t, shouldUseTUI(uiModeOff, 100))
}

func TestResolveColor(t *testing.T) {
	on, err := resolveColor("on")
	require.NoError(t, err)
	assert.True(t, on)
	off, err := resolveColor("never")
	require.NoError(t, err)
	assert.False(t, off)
	_, err = resolveColor("rainbow")
	require.Error(t, err)
}

func TestLintCommand(t *testing.T) {
	dir := writeProject(t)
	cfg := filepath.Join(dir, "layoutlint.toml")

	stdout, stderr, err := execute(t, "", "lint", "--color", "off", "--config", cfg, "--format", "short", dir)
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stdout, "curly")
	assert.Contains(t, stdout, "consistent-list-newline")
	assert.Contains(t, stderr, "2 files, 1 errors")

	stdout, _, err = execute(t, "", "lint", "--color", "off", "--config", cfg, "--format", "json", "--quiet", dir)
	require.ErrorIs(t, err, errDiagnostics)
	var rep struct {
		Errors       int `json:"errors"`
		FilesChecked int `json:"files_checked"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
	assert.Equal(t, 1, rep.Errors)
}

func TestLintStdin(t *testing.T) {
	stdout, _, err := execute(t, "const a = 1\n", "lint", "--color", "off", "--stdin", "--quiet")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	_, _, err = execute(t, "const = ;\n", "lint", "--color", "off", "--stdin", "--quiet")
	require.ErrorIs(t, err, errDiagnostics)
}

func TestFixCommand(t *testing.T) {
	dir := writeProject(t)
	cfg := filepath.Join(dir, "layoutlint.toml")
	messy := filepath.Join(dir, "messy.ts")

	stdout, _, err := execute(t, "", "fix", "--color", "off", "--config", cfg, "--diff", "--quiet", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "--- a/")
	data, err := os.ReadFile(messy)
	require.NoError(t, err)
	assert.Equal(t, messySource, string(data), "--diff must not write")

	_, _, err = execute(t, "", "fix", "--color", "off", "--config", cfg, "--quiet", dir)
	require.NoError(t, err)
	data, err = os.ReadFile(messy)
	require.NoError(t, err)
	assert.NotEqual(t, messySource, string(data))

	_, _, err = execute(t, "", "lint", "--color", "off", "--config", cfg, "--quiet", dir)
	require.NoError(t, err)
}

func TestFixStdin(t *testing.T) {
	in := "if (a)\n  foo()\nelse {\n  bar()\n}\n"
	stdout, _, err := execute(t, in, "fix", "--color", "off", "--stdin", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "if (a) {\n  foo()\n}\nelse {\n  bar()\n}\n", stdout)
}

func TestRulesCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "rules", "--color", "off")
	require.NoError(t, err)
	assert.Contains(t, stdout, "consistent-chaining")
	assert.Contains(t, stdout, "deprecated")

	stdout, _, err = execute(t, "", "rules", "--format", "json", "curly")
	require.NoError(t, err)
	var infos []ruleInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "curly", infos[0].Name)
	assert.True(t, infos[0].Fixable)

	_, _, err = execute(t, "", "rules", "no-such-rule")
	require.Error(t, err)
	assert.False(t, errors.Is(err, errDiagnostics))
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "version", "--format", "json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.NotEmpty(t, info["version"])
}

func TestBadConfigFails(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "layoutlint.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[rules.nope]\n"), 0o644))
	_, _, err := execute(t, "", "lint", "--config", cfg, dir)
	require.Error(t, err)
	assert.False(t, errors.Is(err, errDiagnostics))
}

func TestLintWritesTrace(t *testing.T) {
	dir := writeProject(t)
	out := filepath.Join(t.TempDir(), "trace.ndjson")
	_, _, err := execute(t, "", "lint", "--color", "off", "--quiet",
		"--trace", out, "--trace-level", "debug", filepath.Join(dir, "clean.js"))
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		var ev map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &ev), line)
	}
}
