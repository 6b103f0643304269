package fix

import (
	"layoutlint/internal/diag"
	"layoutlint/internal/source"
)

// InsertText creates fix that inserts text at span (Span.Start == Span.End).
func InsertText(title string, at source.Span, text string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.TextEdit{diag.Insert(at.File, at.Start, text)},
	}
}

// InsertAfter inserts text right after span.
func InsertAfter(title string, span source.Span, text string) diag.Fix {
	return InsertText(title, span.EndPoint(), text)
}

// InsertBefore inserts text right before span.
func InsertBefore(title string, span source.Span, text string) diag.Fix {
	return InsertText(title, span.StartPoint(), text)
}

// DeleteSpan removes text covered by span.
func DeleteSpan(title string, span source.Span) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.TextEdit{diag.Remove(span)},
	}
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.TextEdit{diag.Replace(span, newText)},
	}
}

// WrapWith surrounds span with prefix and suffix insertions.
func WrapWith(title string, span source.Span, prefix, suffix string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.TextEdit{
			diag.Insert(span.File, span.Start, prefix),
			diag.Insert(span.File, span.End, suffix),
		},
	}
}

// Combine joins the edits of several fixes into one fix.
func Combine(title string, fixes ...diag.Fix) diag.Fix {
	out := diag.Fix{Title: title}
	for _, f := range fixes {
		out.Edits = append(out.Edits, f.Edits...)
	}
	return out
}
