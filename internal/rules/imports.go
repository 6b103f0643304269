package rules

import (
	"regexp"
	"strings"

	"layoutlint/internal/ast"
	"layoutlint/internal/diag"
	"layoutlint/internal/lint"
)

// NoImportDist forbids importing build output from a relative dist folder.
type NoImportDist struct{}

func (NoImportDist) Meta() lint.Meta {
	return lint.Meta{
		Name:        "no-import-dist",
		Description: "Prevent importing modules in `dist` folder",
		Messages: map[string]string{
			"noImportDist": "Do not import modules in `dist` folder, got {{path}}",
		},
		Schema:          lint.Schema{},
		Default:         true,
		DefaultSeverity: diag.SevWarning,
	}
}

var distSegment = regexp.MustCompile(`/dist(/|$)`)

func isDist(path string) bool {
	return (strings.HasPrefix(path, ".") && distSegment.MatchString(path)) || path == "dist"
}

func (NoImportDist) Listen(ctx *lint.Context, _ lint.Options) (lint.Listeners, error) {
	return lint.Listeners{
		ast.ImportDeclaration: func(id ast.NodeID, n *ast.Node) {
			path, ok := ctx.Tree.StringValue(n.Source)
			if !ok || !isDist(path) {
				return
			}
			ctx.Report(lint.Report{
				Node:      id,
				MessageID: "noImportDist",
				Data:      map[string]string{"path": path},
			})
		},
	}, nil
}

// NoImportNodeModulesByPath forbids reaching into node_modules by a file
// path, via import or require.
type NoImportNodeModulesByPath struct{}

func (NoImportNodeModulesByPath) Meta() lint.Meta {
	return lint.Meta{
		Name:        "no-import-node-modules-by-path",
		Description: "Prevent importing modules in `node_modules` folder by relative or absolute path",
		Messages: map[string]string{
			"noImportNodeModulesByPath": "Do not import modules in `node_modules` folder by path",
		},
		Schema:          lint.Schema{},
		Default:         true,
		DefaultSeverity: diag.SevWarning,
	}
}

func (NoImportNodeModulesByPath) Listen(ctx *lint.Context, _ lint.Options) (lint.Listeners, error) {
	byPath := func(id ast.NodeID, lit ast.NodeID) {
		if v, ok := ctx.Tree.StringValue(lit); ok && strings.Contains(v, "/node_modules/") {
			ctx.Report(lint.Report{Node: id, MessageID: "noImportNodeModulesByPath"})
		}
	}
	return lint.Listeners{
		ast.ImportDeclaration: func(id ast.NodeID, n *ast.Node) {
			byPath(id, n.Source)
		},
		ast.CallExpression: func(id ast.NodeID, n *ast.Node) {
			callee := ctx.Tree.Node(n.Callee)
			if callee == nil || callee.Kind != ast.Identifier || callee.Text != "require" || len(n.List) == 0 {
				return
			}
			byPath(id, n.List[0])
		},
	}, nil
}
