package fix

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fortio.org/safecast"

	"layoutlint/internal/diag"
	"layoutlint/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	RuleID    string
	Title     string
	Message   string
	Span      source.Span
	EditCount int
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	RuleID string
	Title  string
	Reason string
}

// ApplyResult aggregates the new content, applied fixes, and skipped ones.
type ApplyResult struct {
	Output  []byte
	Applied []AppliedFix
	Skipped []SkippedFix
}

// Changed reports whether at least one fix was applied.
func (r *ApplyResult) Changed() bool {
	return r != nil && len(r.Applied) > 0
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	edit  diag.TextEdit // all edits of fix merged into one replacement
	order int
}

// Apply applies one fix per diagnostic to file.Content. Each fix is first
// merged into a single replacement covering all its edits. Replacements are
// taken in (start, end) order and one is skipped when it starts at or before
// the end of the last accepted one. Skipped fixes are picked up by the
// next pass of Loop.
func Apply(file *source.File, diagnostics []diag.Diagnostic) (*ApplyResult, error) {
	result := &ApplyResult{}
	if file == nil {
		return result, fmt.Errorf("fix: file is nil")
	}
	result.Output = file.Content

	candidates, skips := gatherCandidates(file, diagnostics)
	result.Skipped = append(result.Skipped, skips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	var b strings.Builder
	b.Grow(len(file.Content))
	lastEnd := -1
	copied := 0
	for _, cand := range candidates {
		start, end := int(cand.edit.Span.Start), int(cand.edit.Span.End)
		if lastEnd >= start {
			result.Skipped = append(result.Skipped, SkippedFix{
				RuleID: cand.diag.RuleID,
				Title:  cand.fix.Title,
				Reason: "overlaps a previously applied fix",
			})
			continue
		}
		b.Write(file.Content[copied:start])
		b.WriteString(cand.edit.NewText)
		copied = end
		lastEnd = end
		result.Applied = append(result.Applied, AppliedFix{
			RuleID:    cand.diag.RuleID,
			Title:     cand.fix.Title,
			Message:   cand.diag.Message,
			Span:      cand.edit.Span,
			EditCount: len(cand.fix.Edits),
		})
	}
	b.Write(file.Content[copied:])
	result.Output = []byte(b.String())
	return result, nil
}

// gatherCandidates takes the first fix of every diagnostic that has one and
// merges it. Fixes with no edits, edits in a different file, out-of-range
// spans, or self-overlapping edits are recorded as skipped.
func gatherCandidates(file *source.File, diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	cands := make([]candidate, 0, len(diagnostics))
	skips := make([]SkippedFix, 0)

	for order, d := range diagnostics {
		if len(d.Fixes) == 0 {
			continue
		}
		f := d.Fixes[0]
		merged, reason := mergeEdits(file, f.Edits)
		if reason != "" {
			skips = append(skips, SkippedFix{RuleID: d.RuleID, Title: f.Title, Reason: reason})
			continue
		}
		cands = append(cands, candidate{diag: d, fix: f, edit: merged, order: order})
	}
	return cands, skips
}

// mergeEdits folds a fix's edits into one replacement spanning all of them;
// the original text between edits is kept verbatim.
func mergeEdits(file *source.File, edits []diag.TextEdit) (diag.TextEdit, string) {
	if len(edits) == 0 {
		return diag.TextEdit{}, "fix has no edits"
	}
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return diag.TextEdit{}, "file too large"
	}
	sorted := append([]diag.TextEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start != sorted[j].Span.Start {
			return sorted[i].Span.Start < sorted[j].Span.Start
		}
		return sorted[i].Span.End < sorted[j].Span.End
	})
	for i, e := range sorted {
		if e.Span.File != file.ID {
			return diag.TextEdit{}, "edit targets another file"
		}
		if e.Span.Start > e.Span.End || e.Span.End > size {
			return diag.TextEdit{}, "edit span out of range"
		}
		if i > 0 && e.Span.Start < sorted[i-1].Span.End {
			return diag.TextEdit{}, "fix contains overlapping edits"
		}
	}
	if len(sorted) == 1 {
		return sorted[0], ""
	}

	first, last := sorted[0].Span, sorted[len(sorted)-1].Span
	var b strings.Builder
	pos := first.Start
	for _, e := range sorted {
		b.Write(file.Content[pos:e.Span.Start])
		b.WriteString(e.NewText)
		pos = e.Span.End
	}
	return diag.TextEdit{
		Span:    source.Span{File: file.ID, Start: first.Start, End: last.End},
		NewText: b.String(),
	}, ""
}

// sortCandidates orders by merged range start, then end, then report order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		ei, ej := candidates[i].edit.Span, candidates[j].edit.Span
		if ei.Start != ej.Start {
			return ei.Start < ej.Start
		}
		if ei.End != ej.End {
			return ei.End < ej.End
		}
		return candidates[i].order < candidates[j].order
	})
}

// WriteFile replaces path with content through a temporary file in the
// same directory, so readers see either the old or the new text. The mode
// of an existing file is kept.
func WriteFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
