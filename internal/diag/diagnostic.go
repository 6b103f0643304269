package diag

import (
	"layoutlint/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces Span with NewText. An empty span inserts.
type TextEdit struct {
	Span    source.Span
	NewText string
}

type Fix struct {
	Title string
	Edits []TextEdit
}

// Range returns the smallest span covering every edit of the fix.
func (f Fix) Range() source.Span {
	if len(f.Edits) == 0 {
		return source.Span{}
	}
	r := f.Edits[0].Span
	for _, e := range f.Edits[1:] {
		r = r.Cover(e.Span)
	}
	return r
}

type Diagnostic struct {
	Severity  Severity
	RuleID    string
	MessageID string
	Message   string
	Primary   source.Span
	Notes     []Note
	// Deprecated is set when the reporting rule is deprecated.
	Deprecated bool
	Fixes      []Fix
}

// Fixable reports whether the diagnostic carries at least one edit.
func (d Diagnostic) Fixable() bool {
	for _, f := range d.Fixes {
		if len(f.Edits) > 0 {
			return true
		}
	}
	return false
}
