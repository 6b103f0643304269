package rules

import (
	"fortio.org/safecast"

	"layoutlint/internal/ast"
	"layoutlint/internal/diag"
	"layoutlint/internal/fix"
	"layoutlint/internal/lint"
	"layoutlint/internal/token"
)

// IndentBinaryOps aligns the right operand of a multi-line binary or
// logical expression with the line of its left operand.
type IndentBinaryOps struct{}

func (IndentBinaryOps) Meta() lint.Meta {
	return lint.Meta{
		Name:        "indent-binary-ops",
		Description: "Indentation for binary operators",
		Messages: map[string]string{
			"space": "Expect indentation to be consistent",
		},
		Schema: lint.Schema{
			"warn":   lint.OptBool,
			"indent": lint.OptIndent,
		},
		Fixable:         true,
		Default:         true,
		DefaultSeverity: diag.SevWarning,
	}
}

func (IndentBinaryOps) Listen(ctx *lint.Context, opts lint.Options) (lint.Listeners, error) {
	c := &binaryIndent{pass: newPass(ctx), unit: opts.Indent("indent", 2)}
	return lint.Listeners{}.On(c.check, ast.BinaryExpression, ast.LogicalExpression), nil
}

type binaryIndent struct {
	*pass
	unit string
}

func (c *binaryIndent) check(id ast.NodeID, n *ast.Node) {
	right, ok := c.firstToken(n.Right)
	if !ok {
		return
	}
	op, ok := c.toks.TokenBefore(right.Span)
	// step out of parentheses wrapping the right operand
	for ok && op.IsPunct("(") {
		right = op
		op, ok = c.toks.TokenBefore(right.Span)
	}
	if !ok {
		return
	}
	left, ok := c.toks.TokenBefore(op.Span)
	if !ok {
		return
	}

	leftLine := c.line(left.Span.Start)
	rightLine := c.line(right.Span.Start)
	if leftLine == rightLine {
		return
	}

	target := c.ctx.File.LineIndent(leftLine)
	// lines opened by `if`, `return` and friends get one more level
	if first, ok := c.toks.FirstOfLine(leftLine); ok && first.Kind == token.Keyword {
		target += c.unit
	}
	actual := c.ctx.File.LineIndent(rightLine)
	if target == actual {
		return
	}

	width, err := safecast.Conv[uint32](len(actual))
	if err != nil {
		return
	}
	lineStart := c.ctx.File.LineStart(rightLine)
	sp := c.ctx.Span(lineStart, lineStart+width)
	f := fix.ReplaceSpan("", sp, target)
	c.ctx.Report(lint.Report{Node: id, Span: &sp, MessageID: "space", Fix: &f})
}
