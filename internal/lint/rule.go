package lint

import (
	"layoutlint/internal/ast"
	"layoutlint/internal/diag"
)

// Meta describes a rule.
type Meta struct {
	Name        string
	Description string
	// Messages maps message ids to templates with {{name}} placeholders.
	Messages map[string]string
	Schema   Schema
	Fixable  bool
	// Deprecated rules keep working and point at ReplacedBy.
	Deprecated bool
	ReplacedBy []string
	// Default marks rules enabled when the config does not mention them.
	Default         bool
	DefaultSeverity diag.Severity
}

// Handler is called for each node of the kind it is registered for.
type Handler func(id ast.NodeID, n *ast.Node)

// Listeners is the dispatch table a rule builds for one pass.
type Listeners map[ast.Kind]Handler

// On registers h for kinds, chaining after any handler already present.
func (l Listeners) On(h Handler, kinds ...ast.Kind) Listeners {
	for _, k := range kinds {
		if prev, ok := l[k]; ok {
			l[k] = func(id ast.NodeID, n *ast.Node) {
				prev(id, n)
				h(id, n)
			}
			continue
		}
		l[k] = h
	}
	return l
}

// Rule is a single layout check.
type Rule interface {
	Meta() Meta
	// Listen is called once per pass; state captured by the returned
	// handlers lives exactly as long as the pass.
	Listen(ctx *Context, opts Options) (Listeners, error)
}
