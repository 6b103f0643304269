package rules

import (
	"layoutlint/internal/ast"
	"layoutlint/internal/diag"
	"layoutlint/internal/fix"
	"layoutlint/internal/lint"
)

// Chaining keeps the links of a member/call chain either all on one line or
// each on its own line.
type Chaining struct{}

func (Chaining) Meta() lint.Meta {
	return lint.Meta{
		Name:        "consistent-chaining",
		Description: "Having line breaks styles to object, array and named imports",
		Messages:    listMessages,
		Schema: lint.Schema{
			"allowLeadingPropertyAccess": lint.OptBool,
		},
		Fixable:         true,
		Default:         true,
		DefaultSeverity: diag.SevWarning,
	}
}

func (Chaining) Listen(ctx *lint.Context, opts lint.Options) (lint.Listeners, error) {
	c := &chainChecker{
		pass:         newPass(ctx),
		allowLeading: opts.Bool("allowLeadingPropertyAccess", true),
		seen:         make(map[ast.NodeID]struct{}),
	}
	return lint.Listeners{ast.MemberExpression: c.member}, nil
}

type chainChecker struct {
	*pass
	allowLeading bool
	// roots already checked in this pass
	seen map[ast.NodeID]struct{}
}

func (c *chainChecker) member(id ast.NodeID, _ *ast.Node) {
	root := id
	for {
		parent := c.tree.Parent(root)
		k := c.tree.KindOf(parent)
		if k != ast.MemberExpression && k != ast.CallExpression {
			break
		}
		root = parent
	}
	if _, ok := c.seen[root]; ok {
		return
	}
	c.seen[root] = struct{}{}

	// collect the non-computed links from the head outwards
	var members []ast.NodeID
	for cur := root; cur.IsValid(); {
		n := c.tree.Node(cur)
		switch n.Kind {
		case ast.MemberExpression:
			if !n.Computed {
				members = append(members, cur)
			}
			cur = n.Object
		case ast.CallExpression:
			cur = n.Callee
		case ast.TSNonNullExpression:
			cur = n.Expr
		default:
			cur = ast.NoNodeID
		}
	}
	for i, j := 0, len(members)-1; i < j; i, j = i+1, j-1 {
		members[i], members[j] = members[j], members[i]
	}

	name := map[string]string{"name": c.tree.KindOf(root).String()}
	leading := c.allowLeading
	mode := modeUnset
	for _, m := range members {
		n := c.tree.Node(m)
		dot, ok := c.tokenBefore(n.Property)
		if !ok {
			continue
		}
		before, ok := c.toks.TokenBefore(dot.Span)
		if !ok {
			continue
		}
		current := modeNewline
		if c.line(dot.Span.Start) == c.line(before.Span.End) {
			current = modeInline
		}

		if leading && current == modeInline {
			switch c.tree.KindOf(c.unwrapNonNull(n.Object)) {
			case ast.ThisExpression, ast.Identifier, ast.MemberExpression, ast.Literal:
				continue
			}
		}
		leading = false

		if mode == modeUnset {
			mode = current
			continue
		}
		if mode == current {
			continue
		}

		loc := dot.Span
		var f diag.Fix
		msg := "shouldWrap"
		if mode == modeNewline {
			f = fix.InsertAfter("", before.Span, "\n")
		} else {
			msg = "shouldNotWrap"
			f = fix.DeleteSpan("", c.ctx.Span(before.Span.End, dot.Span.Start))
		}
		c.ctx.Report(lint.Report{Span: &loc, MessageID: msg, Data: name, Fix: &f})
	}
}
