package rules

import (
	"strings"

	"layoutlint/internal/ast"
	"layoutlint/internal/diag"
	"layoutlint/internal/fix"
	"layoutlint/internal/lint"
)

// TopLevelFunction rewrites `const f = () => ...` at module level into a
// function declaration.
type TopLevelFunction struct{}

func (TopLevelFunction) Meta() lint.Meta {
	return lint.Meta{
		Name:        "top-level-function",
		Description: "Enforce top-level functions to be declared with function keyword",
		Messages: map[string]string{
			"topLevelFunctionDeclaration": "Top-level functions should be declared with function keyword",
		},
		Schema:          lint.Schema{},
		Fixable:         true,
		Default:         true,
		DefaultSeverity: diag.SevWarning,
	}
}

func (TopLevelFunction) Listen(ctx *lint.Context, _ lint.Options) (lint.Listeners, error) {
	c := &topLevelFunction{pass: newPass(ctx)}
	return lint.Listeners{ast.VariableDeclaration: c.check}, nil
}

type topLevelFunction struct {
	*pass
}

func (c *topLevelFunction) check(id ast.NodeID, n *ast.Node) {
	switch c.tree.KindOf(n.Parent) {
	case ast.Program, ast.ExportNamedDeclaration:
	default:
		return
	}
	if len(n.List) != 1 || !n.Const || n.Declare {
		return
	}
	decl := c.tree.Node(n.List[0])
	if decl == nil {
		return
	}
	fn := c.tree.Node(decl.Init)
	if fn == nil || (fn.Kind != ast.ArrowFunctionExpression && fn.Kind != ast.FunctionExpression) {
		return
	}
	name := c.tree.Node(decl.ID)
	if name == nil || name.Kind != ast.Identifier || name.TypeAnnotation.IsValid() {
		return
	}
	body := c.tree.Node(fn.Body)
	if body == nil {
		return
	}
	if body.Kind != ast.BlockStatement && c.startLine(decl.ID) == c.endLine(fn.Body) {
		return
	}

	c.ctx.Report(lint.Report{
		Node:      id,
		Span:      c.span(name.Span.Start, body.Span.Start),
		MessageID: "topLevelFunctionDeclaration",
		Fix:       c.rewrite(n, name, fn, body),
	})
}

func (c *topLevelFunction) rewrite(decl, name, fn, body *ast.Node) *diag.Fix {
	var b strings.Builder
	if fn.Async {
		b.WriteString("async ")
	}
	b.WriteString("function ")
	b.WriteString(c.ctx.Text(name.Span))
	b.WriteByte(' ')
	if tp := c.tree.Node(fn.TypeParams); tp != nil {
		b.WriteString(c.ctx.Text(tp.Span))
	}
	b.WriteByte('(')
	if len(fn.List) > 0 {
		first := c.tree.Span(fn.List[0])
		last := c.tree.Span(fn.List[len(fn.List)-1])
		b.WriteString(c.text(first.Start, last.End))
	}
	b.WriteByte(')')
	if rt := c.tree.Node(fn.ReturnType); rt != nil {
		b.WriteString(c.ctx.Text(rt.Span))
	}
	b.WriteByte(' ')
	if body.Kind == ast.BlockStatement {
		b.WriteString(c.ctx.Text(body.Span))
	} else {
		b.WriteString("{\n  return ")
		b.WriteString(c.ctx.Text(body.Span))
		b.WriteString("\n}")
	}
	f := fix.ReplaceSpan("", decl.Span, b.String())
	return &f
}
