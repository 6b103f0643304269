package rules

import (
	"slices"
	"strings"

	"layoutlint/internal/ast"
	"layoutlint/internal/diag"
	"layoutlint/internal/fix"
	"layoutlint/internal/lint"
	"layoutlint/internal/source"
	"layoutlint/internal/token"
)

// IndentUnindent reindents the body of templates tagged with an unindent
// helper to one level below the statement that holds them.
type IndentUnindent struct{}

var defaultUnindentTags = []string{"$", "unindent", "unIndent"}

func (IndentUnindent) Meta() lint.Meta {
	return lint.Meta{
		Name:        "indent-unindent",
		Description: "Enforce consistent indentation in `unindent` template tag",
		Messages: map[string]string{
			"indent-unindent": "Consistent indentation in unindent tag",
		},
		Schema: lint.Schema{
			"indent": lint.OptInt,
			"tags":   lint.OptStrings,
		},
		Fixable:         true,
		Default:         true,
		DefaultSeverity: diag.SevWarning,
	}
}

func (IndentUnindent) Listen(ctx *lint.Context, opts lint.Options) (lint.Listeners, error) {
	c := &unindentChecker{
		pass: newPass(ctx),
		unit: strings.Repeat(" ", opts.Int("indent", 2)),
		tags: opts.Strings("tags", defaultUnindentTags),
	}
	return lint.Listeners{ast.TaggedTemplateExpression: c.check}, nil
}

type unindentChecker struct {
	*pass
	unit string
	tags []string
}

func (c *unindentChecker) check(id ast.NodeID, n *ast.Node) {
	tag := c.tree.Node(n.Tag)
	if tag == nil || tag.Kind != ast.Identifier || !slices.Contains(c.tags, tag.Text) {
		return
	}
	quasi := c.tree.Span(n.Quasi)
	raw := c.ctx.Text(quasi)
	if len(raw) < 2 || raw[0] != '`' || raw[len(raw)-1] != '`' {
		return
	}
	chunks := c.chunks(quasi)
	base := c.indentOf(c.tree.Span(id).Start)

	want, ok := reindent(raw[1:len(raw)-1], quasi.Start+1, chunks, base, base+c.unit)
	if !ok || want == raw {
		return
	}
	f := fix.ReplaceSpan("", quasi, want)
	c.ctx.Report(lint.Report{Node: n.Quasi, MessageID: "indent-unindent", Fix: &f})
}

// chunks returns the literal pieces of the template, between substitutions.
func (c *unindentChecker) chunks(quasi source.Span) []source.Span {
	var out []source.Span
	tok, ok := c.toks.FirstTokenIn(quasi)
	for ok && tok.Span.End <= quasi.End {
		if tok.Kind == token.Template {
			out = append(out, tok.Span)
		}
		tok, ok = c.toks.After(tok.Span.End)
	}
	return out
}

type templateLine struct {
	text    string
	literal bool // starts in template text, not inside ${}
}

// reindent rebuilds a template body whose opening line is empty. off is the
// file offset of body. Lines are joined with the body's own line ending.
func reindent(body string, off uint32, chunks []source.Span, base, target string) (string, bool) {
	parts := strings.Split(body, "\n")
	if len(parts) < 2 || strings.TrimSpace(parts[0]) != "" {
		return "", false
	}

	eol := "\n"
	if strings.Contains(body, "\r\n") {
		eol = "\r\n"
	}

	lines := make([]templateLine, 0, len(parts)-1)
	pos := off + uint32(len(parts[0])) + 1
	for _, p := range parts[1:] {
		lines = append(lines, templateLine{text: strings.TrimSuffix(p, "\r"), literal: inChunks(pos, chunks)})
		pos += uint32(len(p)) + 1
	}

	blank := func(l templateLine) bool { return l.literal && strings.TrimSpace(l.text) == "" }
	for len(lines) > 0 && blank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && blank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return "", false
	}

	common := -1
	for _, l := range lines {
		if blank(l) || !l.literal {
			continue
		}
		if w := leadingWidth(l.text); common < 0 || w < common {
			common = w
		}
	}
	if common < 0 {
		common = 0
	}

	var b strings.Builder
	b.WriteString("`" + eol)
	for _, l := range lines {
		switch {
		case blank(l):
		case !l.literal:
			b.WriteString(l.text)
		default:
			b.WriteString(target)
			b.WriteString(l.text[common:])
		}
		b.WriteString(eol)
	}
	b.WriteString(base)
	b.WriteByte('`')
	return b.String(), true
}

func inChunks(off uint32, chunks []source.Span) bool {
	for _, c := range chunks {
		if c.Start <= off && off < c.End {
			return true
		}
	}
	return false
}

func leadingWidth(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}
