package fix

import (
	"context"
	"errors"

	"layoutlint/internal/diag"
	"layoutlint/internal/source"
)

// MaxPasses bounds the fix loop.
const MaxPasses = 10

// LintFunc lints one snapshot of a file.
type LintFunc func(ctx context.Context, file *source.File) ([]diag.Diagnostic, error)

// LoopResult is the outcome of Loop.
type LoopResult struct {
	// Output is the final content (BOM not included).
	Output []byte
	// File is the last snapshot that was linted.
	File    *source.File
	Passes  int
	Applied []AppliedFix
	// Remaining holds the diagnostics of the final snapshot.
	Remaining []diag.Diagnostic
}

// Changed reports whether any pass modified the content.
func (r *LoopResult) Changed() bool {
	return r != nil && len(r.Applied) > 0
}

// Loop lints file, applies the fixes, and repeats on a fresh snapshot until
// a pass applies nothing or MaxPasses passes have run. Every pass adds a
// new version of the file to fs.
func Loop(ctx context.Context, fs *source.FileSet, file *source.File, lint LintFunc) (*LoopResult, error) {
	res := &LoopResult{Output: file.Content, File: file}
	current := file
	for res.Passes < MaxPasses {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		diags, err := lint(ctx, current)
		if err != nil {
			return res, err
		}
		res.Remaining = diags

		applied, err := Apply(current, diags)
		if errors.Is(err, ErrNoFixes) || (err == nil && !applied.Changed()) {
			return res, nil
		}
		if err != nil {
			return res, err
		}
		res.Passes++
		res.Applied = append(res.Applied, applied.Applied...)
		res.Output = applied.Output
		current = fs.Get(fs.Add(current.Path, applied.Output, current.Flags&^source.FileHasCRLF))
		res.File = current
	}

	// the pass budget ran out; report what is left on the final text
	diags, err := lint(ctx, current)
	if err != nil {
		return res, err
	}
	res.Remaining = diags
	return res, nil
}
