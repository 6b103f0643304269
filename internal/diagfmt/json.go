package diagfmt

import (
	"encoding/json"
	"io"

	"layoutlint/internal/diag"
	"layoutlint/internal/source"
)

// LocationJSON is a position in a file. Lines and columns are 1-based.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line"`
	StartCol  uint32 `json:"start_col"`
	EndLine   uint32 `json:"end_line"`
	EndCol    uint32 `json:"end_col"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type FixEditJSON struct {
	Location LocationJSON `json:"location"`
	NewText  string       `json:"new_text"`
	OldText  string       `json:"old_text,omitempty"`
}

type FixJSON struct {
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

type DiagnosticJSON struct {
	Severity   string       `json:"severity"`
	Rule       string       `json:"rule"`
	MessageID  string       `json:"message_id"`
	Message    string       `json:"message"`
	Location   LocationJSON `json:"location"`
	Deprecated bool         `json:"deprecated,omitempty"`
	Fixable    bool         `json:"fixable"`
	Notes      []NoteJSON   `json:"notes,omitempty"`
	Fixes      []FixJSON    `json:"fixes,omitempty"`
}

// ReportJSON is the root of the JSON output.
type ReportJSON struct {
	Diagnostics  []DiagnosticJSON `json:"diagnostics"`
	Count        int              `json:"count"`
	Errors       int              `json:"errors"`
	Warnings     int              `json:"warnings"`
	Fixable      int              `json:"fixable"`
	FilesChecked int              `json:"files_checked"`
	FilesChanged int              `json:"files_changed,omitempty"`
}

// NewReportJSON returns an empty report; Diagnostics encodes as [] not null.
func NewReportJSON() *ReportJSON {
	return &ReportJSON{Diagnostics: make([]DiagnosticJSON, 0)}
}

func makeLocation(span source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	f := fs.Get(span.File)
	if f == nil {
		return LocationJSON{StartByte: span.Start, EndByte: span.End}
	}
	start, end := f.LineCol(span.Start), f.LineCol(span.End)
	return LocationJSON{
		File:      formatPath(f, opts.PathMode, opts.BaseDir),
		StartByte: span.Start,
		EndByte:   span.End,
		StartLine: start.Line,
		StartCol:  start.Col,
		EndLine:   end.Line,
		EndCol:    end.Col,
	}
}

// Add appends the diagnostics of one file. Once Max entries are stored the
// rest are only counted.
func (r *ReportJSON) Add(fs *source.FileSet, diags []diag.Diagnostic, opts JSONOpts) {
	r.FilesChecked++
	for _, d := range diags {
		switch d.Severity {
		case diag.SevError:
			r.Errors++
		case diag.SevWarning:
			r.Warnings++
		}
		if len(d.Fixes) > 0 {
			r.Fixable++
		}
		r.Count++
		if opts.Max > 0 && len(r.Diagnostics) >= opts.Max {
			continue
		}
		r.Diagnostics = append(r.Diagnostics, buildDiagnostic(fs, d, opts))
	}
}

func buildDiagnostic(fs *source.FileSet, d diag.Diagnostic, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity:   d.Severity.String(),
		Rule:       d.RuleID,
		MessageID:  d.MessageID,
		Message:    d.Message,
		Location:   makeLocation(d.Primary, fs, opts),
		Deprecated: d.Deprecated,
		Fixable:    len(d.Fixes) > 0,
	}
	for _, n := range d.Notes {
		out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: makeLocation(n.Span, fs, opts)})
	}
	if !opts.IncludeFixes {
		return out
	}
	for _, f := range d.Fixes {
		fj := FixJSON{Title: f.Title}
		for _, e := range f.Edits {
			edit := FixEditJSON{Location: makeLocation(e.Span, fs, opts), NewText: e.NewText}
			if file := fs.Get(e.Span.File); file != nil {
				edit.OldText = file.Text(e.Span)
			}
			fj.Edits = append(fj.Edits, edit)
		}
		out.Fixes = append(out.Fixes, fj)
	}
	return out
}

// Encode writes r as indented JSON.
func (r *ReportJSON) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
