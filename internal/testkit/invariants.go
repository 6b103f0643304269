package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"layoutlint/internal/ast"
	"layoutlint/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed tree:
// 1) the root span is within file content bounds
// 2) every node span belongs to the file and lies inside its parent's span
// 3) every child points back at the node that lists it
// 4) tokens are sorted and do not overlap
func CheckSpanInvariants(tree *ast.Tree) error {
	if tree == nil || tree.File == nil {
		return fmt.Errorf("nil tree or file")
	}
	sf := tree.File
	root := tree.Node(tree.Root)
	if root == nil {
		return fmt.Errorf("root node not found")
	}

	// 1) root span sanity
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Span.End < root.Span.Start || root.Span.End > lenContent {
		return fmt.Errorf("root span out of bounds: %v (len %d)", root.Span, lenContent)
	}

	// 2) + 3)
	var bad error
	tree.Walk(func(id ast.NodeID, n *ast.Node) bool {
		if bad != nil {
			return false
		}
		sp := n.Span
		if sp.File != sf.ID {
			bad = fmt.Errorf("%s span file mismatch: got=%d want=%d", n.Kind, sp.File, sf.ID)
			return false
		}
		if sp.End < sp.Start {
			bad = fmt.Errorf("%s span is inverted: %v", n.Kind, sp)
			return false
		}
		for _, kid := range n.Kids {
			k := tree.Node(kid)
			if k == nil {
				bad = fmt.Errorf("%s has a nil child %d", n.Kind, kid)
				return false
			}
			if k.Parent != id {
				bad = fmt.Errorf("%s child %s has parent %d, want %d", n.Kind, k.Kind, k.Parent, id)
				return false
			}
			if k.Span.Start < sp.Start || k.Span.End > sp.End {
				bad = fmt.Errorf("%s span %v is outside parent %s span %v", k.Kind, k.Span, n.Kind, sp)
				return false
			}
		}
		return true
	})
	if bad != nil {
		return bad
	}

	// 4) token order
	if tree.Tokens != nil {
		var prev source.Span
		for i, tok := range tree.Tokens.Tokens() {
			if i > 0 && tok.Span.Start < prev.End {
				return fmt.Errorf("token %q at %v overlaps %v", tok.Text, tok.Span, prev)
			}
			prev = tok.Span
		}
	}
	return nil
}
