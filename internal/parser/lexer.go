package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"layoutlint/internal/source"
	"layoutlint/internal/token"
)

// lexer rebuilds an ESTree-style token list from the leaves of a
// tree-sitter tree. Literals with inner structure are emitted whole.
type lexer struct {
	file     *source.File
	tokens   []token.Token
	comments []token.Token
}

// atomic lists grammar nodes that form a single token despite having children.
var atomic = map[string]token.Kind{
	"string":   token.String,
	"number":   token.Numeric,
	"regex":    token.RegularExpression,
	"jsx_text": token.JSXText,
}

var identifierLeaves = map[string]struct{}{
	"identifier":                           {},
	"property_identifier":                  {},
	"shorthand_property_identifier":        {},
	"shorthand_property_identifier_pattern": {},
	"type_identifier":                      {},
	"statement_identifier":                 {},
}

func (lx *lexer) collect(n *sitter.Node) {
	if n.IsMissing() {
		return
	}
	switch t := n.Type(); t {
	case "comment", "html_comment":
		kind := token.BlockComment
		if text := lx.text(n.StartByte(), n.EndByte()); len(text) >= 2 && text[:2] == "//" {
			kind = token.LineComment
		}
		lx.comments = append(lx.comments, lx.make(kind, n.StartByte(), n.EndByte()))
		return
	case "hash_bang_line":
		lx.comments = append(lx.comments, lx.make(token.Hashbang, n.StartByte(), n.EndByte()))
		return
	case "template_string":
		lx.template(n)
		return
	default:
		if kind, ok := atomic[t]; ok {
			lx.emit(kind, n.StartByte(), n.EndByte())
			return
		}
	}

	if n.ChildCount() == 0 {
		lx.leaf(n)
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		lx.collect(n.Child(i))
	}
}

// template splits `a${x}b${y}c` into "`a${", x, "}b${", y, "}c`".
func (lx *lexer) template(n *sitter.Node) {
	pos := n.StartByte()
	for i := 0; i < int(n.ChildCount()); i++ {
		sub := n.Child(i)
		if sub.Type() != "template_substitution" {
			continue
		}
		lx.emit(token.Template, pos, sub.StartByte()+2)
		last := int(sub.ChildCount()) - 1
		for j := 1; j < last; j++ {
			lx.collect(sub.Child(j))
		}
		pos = sub.EndByte() - 1
		if last >= 0 {
			pos = sub.Child(last).StartByte()
		}
	}
	lx.emit(token.Template, pos, n.EndByte())
}

func (lx *lexer) leaf(n *sitter.Node) {
	start, end := n.StartByte(), n.EndByte()
	if start >= end {
		// automatic semicolons and other zero-width leaves
		return
	}
	text := lx.text(start, end)
	t := n.Type()
	switch {
	case t == "private_property_identifier":
		lx.emit(token.PrivateIdentifier, start, end)
	case n.IsNamed():
		if _, ok := identifierLeaves[t]; ok {
			lx.emit(token.Identifier, start, end)
			return
		}
		if isWordStart(text[0]) {
			lx.emit(token.LookupWord(text), start, end)
			return
		}
		lx.emit(token.Punctuator, start, end)
	case isWordStart(text[0]):
		lx.emit(token.LookupWord(text), start, end)
	default:
		lx.emit(token.Punctuator, start, end)
	}
}

func (lx *lexer) emit(kind token.Kind, start, end uint32) {
	if start >= end {
		return
	}
	lx.tokens = append(lx.tokens, lx.make(kind, start, end))
}

func (lx *lexer) make(kind token.Kind, start, end uint32) token.Token {
	return token.Token{
		Kind: kind,
		Span: source.Span{File: lx.file.ID, Start: start, End: end},
		Text: lx.text(start, end),
	}
}

func (lx *lexer) text(start, end uint32) string {
	return string(lx.file.Content[start:end])
}

func isWordStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '$' || c >= 0x80
}
