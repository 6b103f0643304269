package rules

import (
	"strings"

	"layoutlint/internal/ast"
	"layoutlint/internal/lint"
	"layoutlint/internal/source"
	"layoutlint/internal/token"
)

// pass bundles the helpers every checker needs during one pass.
type pass struct {
	ctx  *lint.Context
	tree *ast.Tree
	toks *token.Stream
}

func newPass(ctx *lint.Context) *pass {
	return &pass{ctx: ctx, tree: ctx.Tree, toks: ctx.Tokens}
}

func (p *pass) line(off uint32) uint32 { return p.ctx.File.LineOf(off) }

func (p *pass) startLine(id ast.NodeID) uint32 { return p.line(p.tree.Span(id).Start) }

func (p *pass) endLine(id ast.NodeID) uint32 { return p.line(p.tree.Span(id).End) }

func (p *pass) text(start, end uint32) string {
	if end < start {
		return ""
	}
	return p.ctx.Text(p.ctx.Span(start, end))
}

func (p *pass) tokenBefore(id ast.NodeID) (token.Token, bool) {
	return p.toks.TokenBefore(p.tree.Span(id))
}

func (p *pass) tokenAfter(id ast.NodeID) (token.Token, bool) {
	return p.toks.TokenAfter(p.tree.Span(id))
}

func (p *pass) firstToken(id ast.NodeID) (token.Token, bool) {
	return p.toks.FirstTokenIn(p.tree.Span(id))
}

// indentOf is the leading whitespace of the line holding off.
func (p *pass) indentOf(off uint32) string {
	return p.ctx.File.LineIndent(p.line(off))
}

func (p *pass) span(start, end uint32) *source.Span {
	sp := p.ctx.Span(start, end)
	return &sp
}

// unwrapNonNull strips TSNonNullExpression wrappers.
func (p *pass) unwrapNonNull(id ast.NodeID) ast.NodeID {
	for {
		n := p.tree.Node(id)
		if n == nil || n.Kind != ast.TSNonNullExpression {
			return id
		}
		id = n.Expr
	}
}

// replaceNewlines swaps every \r\n or \n in s for with.
func replaceNewlines(s, with string) string {
	return strings.NewReplacer("\r\n", with, "\n", with).Replace(s)
}
