package testkit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"layoutlint/internal/ast"
	"layoutlint/internal/diag"
	"layoutlint/internal/fix"
	"layoutlint/internal/lint"
	"layoutlint/internal/parser"
	"layoutlint/internal/source"
)

// DefaultFilename is used when a case names no file.
const DefaultFilename = "file.ts"

// Case is one rule test input.
type Case struct {
	Name     string
	Code     string
	Filename string
	Language parser.Language
	Options  lint.Options
	// Output is the expected text after one round of fixes. Empty skips
	// the check.
	Output string
	// Errors lists the expected message ids in source order.
	Errors []string
}

// Result is what one pass of a single rule produced.
type Result struct {
	Files       *source.FileSet
	File        *source.File
	Tree        *ast.Tree
	Diagnostics []diag.Diagnostic
	// Output is the text after applying the fixes of the pass once.
	Output string
}

// MessageIDs lists the message ids of the result in order.
func (r *Result) MessageIDs() []string {
	ids := make([]string, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		ids = append(ids, d.MessageID)
	}
	return ids
}

// Golden renders the diagnostics one per line for failure messages.
func (r *Result) Golden() string {
	return diag.FormatGoldenDiagnostics(r.Diagnostics, r.Files, true)
}

// Lint parses c.Code and runs rule over it once.
func Lint(t testing.TB, rule lint.Rule, c Case) *Result {
	t.Helper()
	fs := source.NewFileSet()
	name := c.Filename
	if name == "" {
		name = DefaultFilename
	}
	file := fs.Get(fs.AddVirtual(name, []byte(c.Code)))

	tree, err := parser.Parse(context.Background(), file, parser.Options{Language: c.Language})
	require.NoError(t, err, "parse %q", c.Code)
	require.NoError(t, lint.ValidateOptions(rule.Meta(), c.Options))

	bag, err := lint.Run(context.Background(), tree, []lint.Enabled{{
		Rule:     rule,
		Severity: diag.SevWarning,
		Options:  c.Options,
	}})
	require.NoError(t, err)

	res := &Result{
		Files:       fs,
		File:        file,
		Tree:        tree,
		Diagnostics: bag.Items(),
		Output:      c.Code,
	}
	applied, err := fix.Apply(file, res.Diagnostics)
	switch {
	case errors.Is(err, fix.ErrNoFixes):
	case err != nil:
		require.NoError(t, err)
	default:
		res.Output = string(applied.Output)
	}
	return res
}

// FixAll runs rule and applies its fixes until nothing changes.
func FixAll(t testing.TB, rule lint.Rule, c Case) *fix.LoopResult {
	t.Helper()
	fs := source.NewFileSet()
	name := c.Filename
	if name == "" {
		name = DefaultFilename
	}
	file := fs.Get(fs.AddVirtual(name, []byte(c.Code)))
	enabled := []lint.Enabled{{Rule: rule, Severity: diag.SevWarning, Options: c.Options}}

	res, err := fix.Loop(context.Background(), fs, file, func(ctx context.Context, f *source.File) ([]diag.Diagnostic, error) {
		tree, err := parser.Parse(ctx, f, parser.Options{Language: c.Language})
		if err != nil {
			return nil, err
		}
		bag, err := lint.Run(ctx, tree, enabled)
		if err != nil {
			return nil, err
		}
		return bag.Items(), nil
	})
	require.NoError(t, err)
	return res
}

// Valid asserts that rule reports nothing for every case.
func Valid(t *testing.T, rule lint.Rule, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(caseName("valid", c), func(t *testing.T) {
			res := Lint(t, rule, c)
			require.Empty(t, res.MessageIDs(), "code:\n%s\ngot:\n%s", c.Code, res.Golden())
		})
	}
}

// Invalid asserts the reported message ids and the fixed output of every
// case, then runs the fix loop and checks that nothing fixable is left.
func Invalid(t *testing.T, rule lint.Rule, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(caseName("invalid", c), func(t *testing.T) {
			require.NotEmpty(t, c.Errors, "invalid case needs expected errors")
			res := Lint(t, rule, c)
			require.Equal(t, c.Errors, res.MessageIDs(), "code:\n%s\ngot:\n%s", c.Code, res.Golden())
			if c.Output != "" {
				require.Equal(t, c.Output, res.Output, "code:\n%s", c.Code)
			}
			// fixed output must be clean on re-check
			final := FixAll(t, rule, c)
			for _, d := range final.Remaining {
				require.False(t, d.Fixable(), "fix loop left %s (%s) in:\n%s", d.MessageID, d.Message, final.Output)
			}
		})
	}
}

// Errors repeats id n times.
func Errors(id string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = id
	}
	return out
}

func caseName(prefix string, c Case) string {
	if c.Name != "" {
		return prefix + "/" + c.Name
	}
	code := strings.ReplaceAll(c.Code, "\n", `\n`)
	if len(code) > 40 {
		code = code[:40]
	}
	return prefix + "/" + code
}
