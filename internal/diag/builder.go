package diag

import "layoutlint/internal/source"

func New(sev Severity, rule, messageID string, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity:  sev,
		RuleID:    rule,
		MessageID: messageID,
		Primary:   primary,
		Message:   msg,
	}
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}

// Insert is an edit inserting text at off.
func Insert(file source.FileID, off uint32, text string) TextEdit {
	return TextEdit{Span: source.Span{File: file, Start: off, End: off}, NewText: text}
}

// Replace is an edit replacing sp with text.
func Replace(sp source.Span, text string) TextEdit {
	return TextEdit{Span: sp, NewText: text}
}

// Remove is an edit deleting sp.
func Remove(sp source.Span) TextEdit {
	return TextEdit{Span: sp}
}
