package lint

import (
	"context"
	"fmt"
	"strconv"

	"layoutlint/internal/ast"
	"layoutlint/internal/diag"
	"layoutlint/internal/trace"
)

// Enabled is a rule switched on with its resolved settings.
type Enabled struct {
	Rule     Rule
	Severity diag.Severity
	Options  Options
}

type dispatch struct {
	handlers [][]Handler // indexed by ast.Kind
}

func newDispatch() *dispatch {
	return &dispatch{handlers: make([][]Handler, ast.KindCount)}
}

func (d *dispatch) add(l Listeners) {
	for kind, h := range l {
		if h == nil || int(kind) >= len(d.handlers) {
			continue
		}
		d.handlers[kind] = append(d.handlers[kind], h)
	}
}

// Run performs one pass of the enabled rules over tree.
func Run(ctx context.Context, tree *ast.Tree, enabled []Enabled) (*diag.Bag, error) {
	bag := diag.NewBag(0)
	if tree == nil || len(enabled) == 0 {
		return bag, nil
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lint", trace.CurrentSpan(ctx).SpanID).
		WithExtra("file", tree.File.Path).
		WithExtra("rules", strconv.Itoa(len(enabled)))
	defer span.End("")

	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	// handlers of one kind must run in rule order, so listeners are merged
	// rule by rule
	table := newDispatch()
	for _, e := range enabled {
		meta := e.Rule.Meta()
		lctx := NewContext(tree, meta, e.Severity, reporter)
		listeners, err := e.Rule.Listen(lctx, e.Options)
		if err != nil {
			return bag, fmt.Errorf("%s: %w", meta.Name, err)
		}
		table.add(listeners)
	}

	if err := ctx.Err(); err != nil {
		return bag, err
	}
	tree.Walk(func(id ast.NodeID, n *ast.Node) bool {
		for _, h := range table.handlers[n.Kind] {
			h(id, n)
		}
		return true
	})
	bag.Sort()
	return bag, nil
}
