package rules

import (
	"strings"

	"layoutlint/internal/ast"
	"layoutlint/internal/diag"
	"layoutlint/internal/fix"
	"layoutlint/internal/lint"
	"layoutlint/internal/token"
)

type lineMode uint8

const (
	modeUnset lineMode = iota
	modeInline
	modeNewline
)

// listKinds are the containers consistent-list-newline knows, in option order.
var listKinds = []ast.Kind{
	ast.ArrayExpression,
	ast.ArrayPattern,
	ast.ArrowFunctionExpression,
	ast.CallExpression,
	ast.ExportNamedDeclaration,
	ast.FunctionDeclaration,
	ast.FunctionExpression,
	ast.ImportDeclaration,
	ast.JSONArrayExpression,
	ast.JSONObjectExpression,
	ast.JSXOpeningElement,
	ast.NewExpression,
	ast.ObjectExpression,
	ast.ObjectPattern,
	ast.TSFunctionType,
	ast.TSInterfaceDeclaration,
	ast.TSTupleType,
	ast.TSTypeLiteral,
	ast.TSTypeParameterDeclaration,
	ast.TSTypeParameterInstantiation,
}

// objectKinds are the containers of the deprecated consistent-object-newline.
var objectKinds = []ast.Kind{
	ast.ObjectExpression,
	ast.ArrayExpression,
	ast.ImportDeclaration,
	ast.ExportNamedDeclaration,
}

// alwaysCheckBoundary lists the containers whose closing bracket is checked
// even when they hold a single item.
var alwaysCheckBoundary = map[ast.Kind]bool{
	ast.ArrayExpression:        true,
	ast.FunctionDeclaration:    true,
	ast.ObjectExpression:       true,
	ast.ObjectPattern:          true,
	ast.TSTypeLiteral:          true,
	ast.TSTupleType:            true,
	ast.TSInterfaceDeclaration: true,
}

var listMessages = map[string]string{
	"shouldWrap":    "Should have line breaks between items, in node {{name}}",
	"shouldNotWrap": "Should not have line breaks between items, in node {{name}}",
}

// ListNewline keeps the items of every bracketed list either all on one
// line or each on its own line.
type ListNewline struct{}

func (ListNewline) Meta() lint.Meta {
	schema := lint.Schema{}
	for _, k := range listKinds {
		schema[k.String()] = lint.OptBool
	}
	return lint.Meta{
		Name:            "consistent-list-newline",
		Description:     "Having line breaks styles to object, array and named imports",
		Messages:        listMessages,
		Schema:          schema,
		Fixable:         true,
		Default:         true,
		DefaultSeverity: diag.SevWarning,
	}
}

func (ListNewline) Listen(ctx *lint.Context, opts lint.Options) (lint.Listeners, error) {
	c := &listChecker{pass: newPass(ctx)}
	l := lint.Listeners{}
	for _, k := range listKinds {
		// a disabled kind never enters the table
		if !opts.Bool(k.String(), true) {
			continue
		}
		l.On(c.listener(k), k)
	}
	return l, nil
}

// ObjectNewline is the deprecated predecessor of ListNewline; it only looks
// at object and array literals and at import/export specifier lists.
type ObjectNewline struct{}

func (ObjectNewline) Meta() lint.Meta {
	return lint.Meta{
		Name:            "consistent-object-newline",
		Description:     "Having line breaks styles to object, array and named imports",
		Messages:        listMessages,
		Schema:          lint.Schema{},
		Fixable:         true,
		Deprecated:      true,
		ReplacedBy:      []string{"consistent-list-newline"},
		DefaultSeverity: diag.SevWarning,
	}
}

func (ObjectNewline) Listen(ctx *lint.Context, _ lint.Options) (lint.Listeners, error) {
	c := &listChecker{pass: newPass(ctx)}
	l := lint.Listeners{}
	for _, k := range objectKinds {
		l.On(c.listener(k), k)
	}
	return l, nil
}

type listChecker struct {
	*pass
}

// listener returns the handler that extracts the item list of kind.
func (c *listChecker) listener(kind ast.Kind) lint.Handler {
	switch kind {
	case ast.ImportDeclaration:
		return func(id ast.NodeID, n *ast.Node) {
			items := n.List
			if len(items) > 0 && c.tree.KindOf(items[0]) == ast.ImportDefaultSpecifier {
				items = items[1:]
			}
			c.check(id, n, items, ast.NoNodeID)
		}
	case ast.FunctionDeclaration, ast.FunctionExpression:
		return func(id ast.NodeID, n *ast.Node) {
			c.check(id, n, n.List, firstValid(n.ReturnType, n.Body))
		}
	case ast.ArrowFunctionExpression:
		return func(id ast.NodeID, n *ast.Node) {
			if len(n.List) <= 1 {
				return
			}
			c.check(id, n, n.List, firstValid(n.ReturnType, n.Body))
		}
	case ast.ObjectPattern:
		return func(id ast.NodeID, n *ast.Node) {
			c.check(id, n, n.List, n.TypeAnnotation)
		}
	case ast.JSXOpeningElement:
		return func(id ast.NodeID, n *ast.Node) {
			for _, attr := range n.List {
				if c.startLine(attr) != c.endLine(attr) {
					return
				}
			}
			c.check(id, n, n.List, ast.NoNodeID)
		}
	case ast.JSONArrayExpression, ast.JSONObjectExpression:
		return func(id ast.NodeID, n *ast.Node) {
			if len(c.toks.CommentsBetween(n.Span.Start, n.Span.End)) > 0 {
				return
			}
			c.check(id, n, n.List, ast.NoNodeID)
		}
	}
	return func(id ast.NodeID, n *ast.Node) {
		c.check(id, n, n.List, ast.NoNodeID)
	}
}

func firstValid(ids ...ast.NodeID) ast.NodeID {
	for _, id := range ids {
		if id.IsValid() {
			return id
		}
	}
	return ast.NoNodeID
}

// startToken finds the token opening the list.
func (c *listChecker) startToken(n *ast.Node, items []ast.NodeID) (token.Token, bool) {
	var tok token.Token
	found := false
	switch n.Kind {
	case ast.CallExpression:
		anchor := n.Callee
		if n.TypeArgs.IsValid() {
			anchor = n.TypeArgs
		} else if callee := c.tree.Node(n.Callee); callee != nil && callee.Kind == ast.MemberExpression {
			anchor = callee.Property
		}
		if anchor.IsValid() {
			tok, found = c.tokenAfter(anchor)
		}
	case ast.NewExpression:
		// the opening paren is the token before the first argument
	default:
		tok, found = c.toks.FirstTokenIn(n.Span)
	}
	if !found || tok.Kind != token.Punctuator {
		return c.tokenBefore(items[0])
	}
	return tok, true
}

func (c *listChecker) check(id ast.NodeID, n *ast.Node, items []ast.NodeID, next ast.NodeID) {
	if len(items) == 0 {
		return
	}
	startTok, ok := c.startToken(n, items)
	if !ok {
		return
	}
	last := items[len(items)-1]
	endTok, ok := c.tokenAfter(last)
	if !ok {
		return
	}
	startLine := c.line(startTok.Span.Start)
	if startLine == c.line(endTok.Span.End) {
		return
	}

	name := map[string]string{"name": n.Kind.String()}
	mode := modeUnset
	lastLine := startLine

	for idx, item := range items {
		sp := c.tree.Span(item)
		if mode == modeUnset {
			mode = modeNewline
			if c.line(sp.Start) == lastLine {
				mode = modeInline
			}
			lastLine = c.line(sp.End)
			continue
		}

		current := c.line(sp.Start)
		switch {
		case mode == modeNewline && current == lastLine:
			f := fix.InsertBefore("", sp, "\n")
			c.ctx.Report(lint.Report{Node: item, MessageID: "shouldWrap", Data: name, Fix: &f})
		case mode == modeInline && current != lastLine:
			if len(c.toks.CommentsBefore(sp)) > 0 {
				continue
			}
			prev := items[idx-1]
			from := c.tree.Span(prev).End
			if strings.Contains(c.text(from, sp.Start), "\n") {
				r := lint.Report{Node: item, MessageID: "shouldNotWrap", Data: name}
				// joining lines would swallow the code after a line comment
				if len(c.toks.CommentsBetween(from, sp.Start)) == 0 {
					f := c.removeLines(from, sp.Start, c.delimiter(n, prev))
					r.Fix = &f
				}
				c.ctx.Report(r)
			}
		}
		lastLine = c.line(sp.End)
	}

	endRange := n.Span.End
	if next.IsValid() {
		if tok, ok := c.tokenBefore(next); ok && tok.Span.Start < endRange {
			endRange = tok.Span.Start
		}
	}
	endLine := c.line(endRange)
	lastSp := c.tree.Span(last)

	switch {
	case mode == modeNewline && endLine == lastLine:
		f := fix.InsertAfter("", lastSp, "\n")
		c.ctx.Report(lint.Report{Node: last, MessageID: "shouldWrap", Data: name, Fix: &f})
	case mode == modeInline && endLine != lastLine:
		// a lone multiline item may leave the closing bracket on its own line
		if len(items) == 1 && !alwaysCheckBoundary[n.Kind] {
			return
		}
		if len(c.toks.CommentsAfter(lastSp)) > 0 || endRange < lastSp.End {
			return
		}
		if !strings.Contains(c.text(lastSp.End, endRange), "\n") {
			return
		}
		r := lint.Report{Node: last, MessageID: "shouldNotWrap", Data: name}
		if len(c.toks.CommentsBetween(lastSp.End, endRange)) == 0 {
			delimiter := ""
			if len(items) > 1 {
				delimiter = c.delimiter(n, last)
			}
			f := c.removeLines(lastSp.End, endRange, delimiter)
			r.Fix = &f
		}
		c.ctx.Report(r)
	}
}

// delimiter is the separator to synthesize after item when line breaks
// around it are removed; interface and type literal members need one unless
// they already end with "," or ";".
func (c *listChecker) delimiter(container *ast.Node, item ast.NodeID) string {
	if container.Kind != ast.TSInterfaceDeclaration && container.Kind != ast.TSTypeLiteral {
		return ""
	}
	text := c.tree.Text(item)
	if strings.HasSuffix(text, ",") || strings.HasSuffix(text, ";") {
		return ""
	}
	return ","
}

func (c *listChecker) removeLines(start, end uint32, delimiter string) diag.Fix {
	sp := c.ctx.Span(start, end)
	return fix.ReplaceSpan("", sp, replaceNewlines(c.text(start, end), delimiter))
}
