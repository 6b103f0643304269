package ast

import (
	"layoutlint/internal/source"
)

// Node is one ESTree-shaped syntax node. Which slots are filled depends on
// Kind; unused slots stay NoNodeID.
type Node struct {
	Kind   Kind
	Span   source.Span
	Parent NodeID
	// Kids lists every direct child in source order; Walk follows it.
	Kids []NodeID
	// List is the delimited item list of a container: properties, elements,
	// arguments, params, specifiers, members, attributes.
	List []NodeID

	Callee         NodeID
	Object         NodeID
	Property       NodeID
	Left           NodeID
	Right          NodeID
	Test           NodeID
	Consequent     NodeID
	Alternate      NodeID
	Body           NodeID
	ReturnType     NodeID
	TypeArgs       NodeID
	TypeParams     NodeID
	TypeAnnotation NodeID
	Expr           NodeID
	ID             NodeID
	Init           NodeID
	Source         NodeID
	Tag            NodeID
	Quasi          NodeID
	Declaration    NodeID

	Computed bool
	Optional bool
	Const    bool
	Async    bool
	Declare  bool

	Operator string
	// Text carries the cooked value of string literals, the name of
	// identifiers, or the grammar type name of KindOther nodes.
	Text string
}

type Nodes struct {
	Arena *Arena[Node]
}

func NewNodes(capHint uint) *Nodes {
	return &Nodes{
		Arena: NewArena[Node](capHint),
	}
}

func (n *Nodes) New(kind Kind, span source.Span) NodeID {
	return NodeID(n.Arena.Allocate(Node{
		Kind: kind,
		Span: span,
	}))
}

func (n *Nodes) Get(id NodeID) *Node {
	return n.Arena.Get(uint32(id))
}
