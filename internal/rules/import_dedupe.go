package rules

import (
	"layoutlint/internal/ast"
	"layoutlint/internal/diag"
	"layoutlint/internal/fix"
	"layoutlint/internal/lint"
)

// ImportDedupe removes specifiers that bind a name already imported by the
// same declaration.
type ImportDedupe struct{}

func (ImportDedupe) Meta() lint.Meta {
	return lint.Meta{
		Name:        "import-dedupe",
		Description: "Fix duplication in imports",
		Messages: map[string]string{
			"importDedupe": "Expect no duplication in imports",
		},
		Schema:          lint.Schema{},
		Fixable:         true,
		Default:         true,
		DefaultSeverity: diag.SevWarning,
	}
}

func (ImportDedupe) Listen(ctx *lint.Context, _ lint.Options) (lint.Listeners, error) {
	p := newPass(ctx)
	content := ctx.File.Content
	return lint.Listeners{
		ast.ImportDeclaration: func(_ ast.NodeID, n *ast.Node) {
			if len(n.List) <= 1 {
				return
			}
			names := make(map[string]struct{}, len(n.List))
			for _, spec := range n.List {
				sn := p.tree.Node(spec)
				if sn == nil {
					continue
				}
				if _, dup := names[sn.Text]; dup {
					end := sn.Span.End
					if int(end) < len(content) && content[end] == ',' {
						end++
					}
					f := fix.DeleteSpan("", ctx.Span(sn.Span.Start, end))
					ctx.Report(lint.Report{Node: spec, MessageID: "importDedupe", Fix: &f})
				}
				names[sn.Text] = struct{}{}
			}
		},
	}, nil
}
