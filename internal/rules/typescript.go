package rules

import (
	"layoutlint/internal/ast"
	"layoutlint/internal/diag"
	"layoutlint/internal/lint"
	"layoutlint/internal/parser"
)

// NoTopLevelAwait reports await expressions outside any function.
type NoTopLevelAwait struct{}

func (NoTopLevelAwait) Meta() lint.Meta {
	return lint.Meta{
		Name:        "no-top-level-await",
		Description: "Prevent using top-level await",
		Messages: map[string]string{
			"NoTopLevelAwait": "Do not use top-level await",
		},
		Schema:          lint.Schema{},
		Default:         true,
		DefaultSeverity: diag.SevWarning,
	}
}

func (NoTopLevelAwait) Listen(ctx *lint.Context, _ lint.Options) (lint.Listeners, error) {
	t := ctx.Tree
	return lint.Listeners{
		ast.AwaitExpression: func(id ast.NodeID, _ *ast.Node) {
			for p := t.Parent(id); p.IsValid(); p = t.Parent(p) {
				if t.KindOf(p).IsFunction() {
					return
				}
			}
			ctx.Report(lint.Report{Node: id, MessageID: "NoTopLevelAwait"})
		},
	}, nil
}

// NoConstEnum reports `const enum` declarations.
type NoConstEnum struct{}

func (NoConstEnum) Meta() lint.Meta {
	return lint.Meta{
		Name:        "no-const-enum",
		Description: "Disallow `const enum` declarations",
		Messages: map[string]string{
			"noConstEnum": "Do not use `const enum` expression",
		},
		Schema:          lint.Schema{},
		Deprecated:      true,
		DefaultSeverity: diag.SevWarning,
	}
}

func (NoConstEnum) Listen(ctx *lint.Context, _ lint.Options) (lint.Listeners, error) {
	return lint.Listeners{
		ast.TSEnumDeclaration: func(id ast.NodeID, n *ast.Node) {
			if n.Const {
				ctx.Report(lint.Report{Node: id, MessageID: "noConstEnum"})
			}
		},
	}, nil
}

// NoTSExportEqual reports `export = x` in TypeScript sources.
type NoTSExportEqual struct{}

func (NoTSExportEqual) Meta() lint.Meta {
	return lint.Meta{
		Name:        "no-ts-export-equal",
		Description: "Do not use `exports =`",
		Messages: map[string]string{
			"noTsExportEqual": "Use ESM `export default` instead",
		},
		Schema:          lint.Schema{},
		Default:         true,
		DefaultSeverity: diag.SevWarning,
	}
}

func (NoTSExportEqual) Listen(ctx *lint.Context, _ lint.Options) (lint.Listeners, error) {
	if !parser.IsTypeScriptPath(ctx.Path()) {
		return nil, nil
	}
	return lint.Listeners{
		ast.TSExportAssignment: func(id ast.NodeID, _ *ast.Node) {
			ctx.Report(lint.Report{Node: id, MessageID: "noTsExportEqual"})
		},
	}, nil
}
