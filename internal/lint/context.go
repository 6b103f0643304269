package lint

import (
	"fmt"
	"regexp"
	"strings"

	"layoutlint/internal/ast"
	"layoutlint/internal/diag"
	"layoutlint/internal/source"
	"layoutlint/internal/token"
)

// Report is one finding as a rule describes it.
type Report struct {
	// Node locates the report when Span is empty.
	Node ast.NodeID
	// Span overrides the node location; an empty span at an offset is valid.
	Span      *source.Span
	MessageID string
	Data      map[string]string
	// Fix is optional; a fix without edits is dropped.
	Fix *diag.Fix
}

// Context gives a rule read access to one pass and a way to report.
type Context struct {
	Tree   *ast.Tree
	File   *source.File
	Tokens *token.Stream

	meta     Meta
	severity diag.Severity
	reporter diag.Reporter
}

// NewContext binds a rule to a tree for one pass.
func NewContext(tree *ast.Tree, meta Meta, sev diag.Severity, r diag.Reporter) *Context {
	return &Context{
		Tree:     tree,
		File:     tree.File,
		Tokens:   tree.Tokens,
		meta:     meta,
		severity: sev,
		reporter: r,
	}
}

// Rule returns the reporting rule's name.
func (c *Context) Rule() string { return c.meta.Name }

// Path is the path of the linted file.
func (c *Context) Path() string { return c.File.Path }

// Text returns the source text of sp.
func (c *Context) Text(sp source.Span) string { return c.File.Text(sp) }

// Span builds a span in the current file.
func (c *Context) Span(start, end uint32) source.Span {
	return source.Span{File: c.File.ID, Start: start, End: end}
}

// Report renders and emits one diagnostic.
func (c *Context) Report(r Report) {
	var primary source.Span
	switch {
	case r.Span != nil:
		primary = *r.Span
	case r.Node.IsValid():
		primary = c.Tree.Span(r.Node)
	default:
		return
	}

	msg := Format(c.meta.Messages[r.MessageID], r.Data)
	if msg == "" {
		msg = r.MessageID
	}
	b := diag.NewReportBuilder(c.reporter, c.severity, c.meta.Name, r.MessageID, primary, msg).
		Deprecated(c.meta.Deprecated)
	if c.meta.Deprecated && len(c.meta.ReplacedBy) > 0 {
		b.WithNote(primary, fmt.Sprintf("deprecated, use %s instead", strings.Join(c.meta.ReplacedBy, ", ")))
	}
	if r.Fix != nil {
		title := r.Fix.Title
		if title == "" {
			title = msg
		}
		b.WithFix(title, r.Fix.Edits...)
	}
	b.Emit()
}

var placeholder = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// Format fills {{name}} placeholders from data. Unknown names are kept.
func Format(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{{") {
		return tmpl
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		if v, ok := data[key]; ok {
			return v
		}
		return m
	})
}
