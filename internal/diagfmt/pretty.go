package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"layoutlint/internal/diag"
	"layoutlint/internal/source"
)

type palette struct {
	path, err, warn, info, rule, gutter, caret, note, fix *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:   color.New(color.Bold),
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		rule:   color.New(color.FgHiBlack),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
		fix:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.path, p.err, p.warn, p.info, p.rule, p.gutter, p.caret, p.note, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders diags with source context:
//
//	src/a.ts:2:9: WARNING consistent-list-newline: Should have line breaks ...
//	   1 | const a = {
//	 > 2 | foo: 1, bar: 2 }
//	     |         ^~~
//
// diags must point into fs; they are printed in the given order.
func Pretty(w io.Writer, fs *source.FileSet, diags []diag.Diagnostic, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for i := range diags {
		if err := prettyOne(w, fs, &diags[i], opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, fs *source.FileSet, d *diag.Diagnostic, opts PrettyOpts, pal palette) error {
	file := fs.Get(d.Primary.File)
	if file == nil {
		_, err := fmt.Fprintf(w, "%s %s: %s\n", pal.severity(d.Severity).Sprint(d.Severity), d.RuleID, d.Message)
		return err
	}
	pos := file.LineCol(d.Primary.Start)

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s %s: %s",
		pal.path.Sprintf("%s:%d:%d", formatPath(file, opts.PathMode, opts.BaseDir), pos.Line, pos.Col),
		pal.severity(d.Severity).Sprint(d.Severity),
		pal.rule.Sprint(d.RuleID),
		d.Message,
	)
	if d.Deprecated {
		b.WriteString(pal.rule.Sprint(" (deprecated rule)"))
	}
	b.WriteByte('\n')

	writeSnippet(&b, file, d.Primary, opts, pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
		}
	}
	if opts.ShowFixes {
		writeFixes(&b, fs, d, pal)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSnippet(b *strings.Builder, file *source.File, span source.Span, opts PrettyOpts, pal palette) {
	line := file.LineOf(span.Start)
	first := line
	if opts.Context > 0 {
		first = uint32(max(1, int(line)-opts.Context))
	}
	last := min(line+uint32(max(opts.Context, 0)), file.LineCount())
	width := len(fmt.Sprint(last))

	for l := first; l <= last; l++ {
		marker := "  "
		if l == line {
			marker = "> "
		}
		fmt.Fprintf(b, " %s%s %s\n", marker, pal.gutter.Sprintf("%*d |", width, l), file.GetLine(l))
		if l != line {
			continue
		}
		text := file.GetLine(l)
		startCol := int(span.Start - file.LineStart(l))
		endCol := len(text)
		if file.LineOf(span.End) == l {
			endCol = int(span.End - file.LineStart(l))
		}
		startCol = min(startCol, len(text))
		endCol = min(max(endCol, startCol), len(text))
		pad := caretPad(text[:startCol], opts.TabWidth)
		marks := max(runewidth.StringWidth(text[startCol:endCol]), 1)
		fmt.Fprintf(b, "   %s %s%s\n",
			pal.gutter.Sprintf("%*s |", width, ""),
			pad,
			pal.caret.Sprint("^"+strings.Repeat("~", marks-1)),
		)
	}
}

// caretPad reproduces the display width of prefix, keeping tabs so the
// caret lines up whatever the terminal's tab stops are.
func caretPad(prefix string, tabWidth int) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			if tabWidth > 0 {
				b.WriteString(strings.Repeat(" ", tabWidth))
			} else {
				b.WriteByte('\t')
			}
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func writeFixes(b *strings.Builder, fs *source.FileSet, d *diag.Diagnostic, pal palette) {
	for _, f := range d.Fixes {
		fmt.Fprintf(b, "  %s %s\n", pal.fix.Sprint("fix:"), f.Title)
		for _, e := range f.Edits {
			preview, err := buildFixEditPreview(fs, e)
			if err != nil {
				continue
			}
			for _, l := range preview.before {
				fmt.Fprintf(b, "    %s %s\n", pal.err.Sprint("-"), l)
			}
			for _, l := range preview.after {
				fmt.Fprintf(b, "    %s %s\n", pal.fix.Sprint("+"), l)
			}
		}
	}
}

// Short renders one line per diagnostic:
// path:line:col: severity rule/messageId: message
func Short(w io.Writer, fs *source.FileSet, diags []diag.Diagnostic, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, d := range diags {
		path := "<unknown>"
		var pos source.LineCol
		if file := fs.Get(d.Primary.File); file != nil {
			path = formatPath(file, opts.PathMode, opts.BaseDir)
			pos = file.LineCol(d.Primary.Start)
		}
		fixable := ""
		if len(d.Fixes) > 0 {
			fixable = pal.fix.Sprint(" [fixable]")
		}
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s/%s: %s%s\n",
			path, pos.Line, pos.Col,
			pal.severity(d.Severity).Sprint(strings.ToLower(d.Severity.String())),
			d.RuleID, d.MessageID, d.Message, fixable,
		); err != nil {
			return err
		}
	}
	return nil
}
