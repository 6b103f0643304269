package rules

import (
	"layoutlint/internal/ast"
	"layoutlint/internal/diag"
	"layoutlint/internal/fix"
	"layoutlint/internal/lint"
)

// Curly wraps every branch of a construct in braces as soon as one branch
// needs them.
type Curly struct{}

func (Curly) Meta() lint.Meta {
	return lint.Meta{
		Name:        "curly",
		Description: "Enforce Anthony's style of curly bracket",
		Messages: map[string]string{
			"missingCurlyBrackets": "Expect curly brackets",
		},
		Schema:          lint.Schema{},
		Fixable:         true,
		Default:         true,
		DefaultSeverity: diag.SevWarning,
	}
}

func (Curly) Listen(ctx *lint.Context, _ lint.Options) (lint.Listeners, error) {
	c := &curlyChecker{pass: newPass(ctx)}
	l := lint.Listeners{
		ast.IfStatement: c.ifStatement,
	}
	l.On(func(_ ast.NodeID, n *ast.Node) {
		c.check([]ast.NodeID{n.Test}, []ast.NodeID{n.Body})
	}, ast.WhileStatement, ast.DoWhileStatement)
	l.On(func(_ ast.NodeID, n *ast.Node) {
		c.check(nil, []ast.NodeID{n.Body})
	}, ast.ForStatement, ast.ForInStatement, ast.ForOfStatement)
	return l, nil
}

type curlyChecker struct {
	*pass
}

func (c *curlyChecker) ifStatement(id ast.NodeID, n *ast.Node) {
	// else-if branches belong to the outermost if
	if parent := c.tree.Node(n.Parent); parent != nil && parent.Kind == ast.IfStatement && parent.Alternate == id {
		return
	}
	var tests, bodies []ast.NodeID
	for cur := n; cur != nil; {
		tests = append(tests, cur.Test)
		bodies = append(bodies, cur.Consequent)
		alt := c.tree.Node(cur.Alternate)
		switch {
		case alt == nil:
			cur = nil
		case alt.Kind == ast.IfStatement:
			cur = alt
		default:
			bodies = append(bodies, cur.Alternate)
			cur = nil
		}
	}
	c.check(tests, bodies)
}

func (c *curlyChecker) check(tests, bodies []ast.NodeID) {
	need := false
	for _, t := range tests {
		if t.IsValid() && c.startLine(t) != c.endLine(t) {
			need = true
		}
	}
	for _, b := range bodies {
		if c.requireCurly(b) {
			need = true
		}
	}
	if !need {
		return
	}
	for _, b := range bodies {
		c.wrap(b)
	}
}

func (c *curlyChecker) requireCurly(body ast.NodeID) bool {
	n := c.tree.Node(body)
	if n == nil {
		return false
	}
	if n.Kind == ast.BlockStatement || n.Kind.IsLoopOrIf() {
		return true
	}
	// a `;` on the next line does not make a statement multi-line
	span := body
	if n.Kind == ast.ExpressionStatement && n.Expr.IsValid() {
		span = n.Expr
	}
	return c.startLine(span) != c.endLine(span)
}

func (c *curlyChecker) wrap(body ast.NodeID) {
	n := c.tree.Node(body)
	if n == nil || n.Kind == ast.BlockStatement {
		return
	}
	report := lint.Report{Node: body, MessageID: "missingCurlyBrackets"}
	if before, ok := c.tokenBefore(body); ok {
		f := fix.Combine("",
			fix.InsertAfter("", n.Span, "\n}"),
			fix.InsertAfter("", before.Span, " {"),
		)
		report.Fix = &f
	}
	c.ctx.Report(report)
}
