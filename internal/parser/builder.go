package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"layoutlint/internal/ast"
	"layoutlint/internal/source"
)

// builder converts tree-sitter nodes into arena nodes. Children are always
// converted before their parent is allocated, so no *ast.Node is held
// across an allocation.
type builder struct {
	file  *source.File
	nodes *ast.Nodes
}

func newBuilder(file *source.File) *builder {
	return &builder{
		file:  file,
		nodes: ast.NewNodes(uint(len(file.Content)/8) + 16),
	}
}

func (b *builder) spanOf(n *sitter.Node) source.Span {
	return source.Span{File: b.file.ID, Start: n.StartByte(), End: n.EndByte()}
}

func (b *builder) textOf(n *sitter.Node) string {
	return string(b.file.Content[n.StartByte():n.EndByte()])
}

// alloc creates a node covering n and returns it for filling in.
// The pointer is valid until the next alloc.
func (b *builder) alloc(kind ast.Kind, n *sitter.Node) (ast.NodeID, *ast.Node) {
	id := b.nodes.New(kind, b.spanOf(n))
	return id, b.nodes.Get(id)
}

// kidSet remembers which grammar node produced which arena node so that
// field lookups can be answered after conversion.
type kidSet struct {
	src []*sitter.Node
	ids []ast.NodeID
}

// kids converts every named child of n, dropping comments.
func (b *builder) kids(n *sitter.Node) kidSet {
	var ks kidSet
	if n == nil {
		return ks
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if id := b.convert(c); id.IsValid() {
			ks.src = append(ks.src, c)
			ks.ids = append(ks.ids, id)
		}
	}
	return ks
}

func (ks kidSet) field(n *sitter.Node, name string) ast.NodeID {
	f := n.ChildByFieldName(name)
	if f == nil {
		return ast.NoNodeID
	}
	for i, c := range ks.src {
		if sameNode(c, f) {
			return ks.ids[i]
		}
	}
	return ast.NoNodeID
}

func (ks kidSet) ofType(types ...string) []ast.NodeID {
	var out []ast.NodeID
	for i, c := range ks.src {
		for _, t := range types {
			if c.Type() == t {
				out = append(out, ks.ids[i])
				break
			}
		}
	}
	return out
}

func (ks kidSet) first() ast.NodeID {
	if len(ks.ids) == 0 {
		return ast.NoNodeID
	}
	return ks.ids[0]
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func isComment(n *sitter.Node) bool {
	switch n.Type() {
	case "comment", "html_comment", "hash_bang_line":
		return true
	}
	return false
}

// hasAnon reports whether n has an anonymous child spelled text.
func hasAnon(n *sitter.Node, text string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if !c.IsNamed() && c.Type() == text {
			return true
		}
	}
	return false
}

// soleNamed returns the only non-comment named child of n.
func soleNamed(n *sitter.Node) *sitter.Node {
	var found *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if isComment(c) {
			continue
		}
		if found != nil {
			return nil
		}
		found = c
	}
	return found
}

func firstOfType(n *sitter.Node, t string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == t {
			return c
		}
	}
	return nil
}

func nonZero(ids ...ast.NodeID) []ast.NodeID {
	out := make([]ast.NodeID, 0, len(ids))
	for _, id := range ids {
		if id.IsValid() {
			out = append(out, id)
		}
	}
	return out
}

// list converts the delimited children of a wrapper such as arguments or
// formal_parameters.
func (b *builder) list(n *sitter.Node) []ast.NodeID {
	return b.kids(n).ids
}

// members converts interface and type literal members. Each member span
// absorbs its trailing "," or ";" the way ESTree member ranges do.
func (b *builder) members(body *sitter.Node) []ast.NodeID {
	if body == nil {
		return nil
	}
	var out []ast.NodeID
	count := int(body.ChildCount())
	for i := 0; i < count; i++ {
		c := body.Child(i)
		if !c.IsNamed() || isComment(c) {
			continue
		}
		id := b.convert(c)
		if !id.IsValid() {
			continue
		}
		if i+1 < count {
			next := body.Child(i + 1)
			t := next.Type()
			if !next.IsNamed() && (t == "," || t == ";") && next.EndByte() > next.StartByte() {
				b.nodes.Get(id).Span.End = next.EndByte()
			}
		}
		out = append(out, id)
	}
	return out
}
