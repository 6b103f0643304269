package rules

import (
	"layoutlint/internal/ast"
	"layoutlint/internal/diag"
	"layoutlint/internal/fix"
	"layoutlint/internal/lint"
)

// IfNewline moves a braceless consequent onto its own line.
type IfNewline struct{}

func (IfNewline) Meta() lint.Meta {
	return lint.Meta{
		Name:        "if-newline",
		Description: "Newline after if",
		Messages: map[string]string{
			"missingIfNewline": "Expect newline after if",
		},
		Schema:          lint.Schema{},
		Fixable:         true,
		Default:         true,
		DefaultSeverity: diag.SevWarning,
	}
}

func (IfNewline) Listen(ctx *lint.Context, _ lint.Options) (lint.Listeners, error) {
	p := newPass(ctx)
	return lint.Listeners{
		ast.IfStatement: func(_ ast.NodeID, n *ast.Node) {
			body := p.tree.Node(n.Consequent)
			if body == nil || body.Kind == ast.BlockStatement || !n.Test.IsValid() {
				return
			}
			if p.endLine(n.Test) != p.startLine(n.Consequent) {
				return
			}
			f := fix.InsertBefore("", body.Span, "\n")
			ctx.Report(lint.Report{Node: n.Consequent, MessageID: "missingIfNewline", Fix: &f})
		},
	}, nil
}
