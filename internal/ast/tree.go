package ast

import (
	"layoutlint/internal/source"
	"layoutlint/internal/token"
)

// Tree bundles everything one lint pass reads: the node arena, the root,
// the token stream and the file they came from. It is read-only once built.
type Tree struct {
	File   *source.File
	Nodes  *Nodes
	Root   NodeID
	Tokens *token.Stream
}

// Node returns the node for id, or nil for NoNodeID.
func (t *Tree) Node(id NodeID) *Node {
	return t.Nodes.Get(id)
}

// KindOf returns the kind of id; absent nodes report KindOther.
func (t *Tree) KindOf(id NodeID) Kind {
	if n := t.Nodes.Get(id); n != nil {
		return n.Kind
	}
	return KindOther
}

// Span returns the span of id.
func (t *Tree) Span(id NodeID) source.Span {
	if n := t.Nodes.Get(id); n != nil {
		return n.Span
	}
	return source.Span{}
}

// Text returns the source text covered by id.
func (t *Tree) Text(id NodeID) string {
	return t.File.Text(t.Span(id))
}

// Parent returns the parent of id.
func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Nodes.Get(id); n != nil {
		return n.Parent
	}
	return NoNodeID
}

// StartLine returns the 1-based line on which id begins.
func (t *Tree) StartLine(id NodeID) uint32 {
	return t.File.LineOf(t.Span(id).Start)
}

// EndLine returns the 1-based line on which id ends.
func (t *Tree) EndLine(id NodeID) uint32 {
	return t.File.LineOf(t.Span(id).End)
}

// Walk visits the tree depth-first in source order. Returning false from
// visit skips the node's children.
func (t *Tree) Walk(visit func(id NodeID, n *Node) bool) {
	if !t.Root.IsValid() {
		return
	}
	stack := []NodeID{t.Root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.Nodes.Get(id)
		if n == nil || !visit(id, n) {
			continue
		}
		for i := len(n.Kids) - 1; i >= 0; i-- {
			stack = append(stack, n.Kids[i])
		}
	}
}

// LinkParents fills Node.Parent from the Kids relation. Builders call it
// once after the last node is allocated.
func (t *Tree) LinkParents() {
	nodes := t.Nodes.Arena.Slice()
	for i := range nodes {
		parent := NodeID(i + 1)
		for _, kid := range nodes[i].Kids {
			if k := t.Nodes.Get(kid); k != nil {
				k.Parent = parent
			}
		}
	}
}

// StringValue returns the unquoted value of a string literal.
func (t *Tree) StringValue(id NodeID) (string, bool) {
	n := t.Nodes.Get(id)
	if n == nil || n.Kind != Literal {
		return "", false
	}
	raw := t.Text(id)
	if raw == "" || (raw[0] != '"' && raw[0] != '\'') {
		return "", false
	}
	return n.Text, true
}

// Find returns the first node of kind in depth-first order.
func (t *Tree) Find(kind Kind) NodeID {
	found := NoNodeID
	t.Walk(func(id NodeID, n *Node) bool {
		if found.IsValid() {
			return false
		}
		if n.Kind == kind {
			found = id
			return false
		}
		return true
	})
	return found
}
