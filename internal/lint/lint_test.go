package lint

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layoutlint/internal/ast"
	"layoutlint/internal/diag"
	"layoutlint/internal/fix"
	"layoutlint/internal/source"
	"layoutlint/internal/token"
)

// buildTree hand-assembles `[a, b]` so the engine can be tested without a parser.
func buildTree(t *testing.T) *ast.Tree {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("x.ts", []byte("[a, b]")))
	sp := func(s, e uint32) source.Span { return source.Span{File: file.ID, Start: s, End: e} }

	nodes := ast.NewNodes(4)
	a := nodes.New(ast.Identifier, sp(1, 2))
	b := nodes.New(ast.Identifier, sp(4, 5))
	arr := nodes.New(ast.ArrayExpression, sp(0, 6))
	nodes.Get(arr).Kids = []ast.NodeID{a, b}
	nodes.Get(arr).List = []ast.NodeID{a, b}
	root := nodes.New(ast.Program, sp(0, 6))
	nodes.Get(root).Kids = []ast.NodeID{arr}

	toks := []token.Token{
		{Kind: token.Punctuator, Span: sp(0, 1), Text: "["},
		{Kind: token.Identifier, Span: sp(1, 2), Text: "a"},
		{Kind: token.Punctuator, Span: sp(2, 3), Text: ","},
		{Kind: token.Identifier, Span: sp(4, 5), Text: "b"},
		{Kind: token.Punctuator, Span: sp(5, 6), Text: "]"},
	}
	tree := &ast.Tree{File: file, Nodes: nodes, Root: root, Tokens: token.NewStream(file, toks, nil)}
	tree.LinkParents()
	return tree
}

type stubRule struct {
	meta  Meta
	calls *[]string
}

func (r stubRule) Meta() Meta { return r.meta }

func (r stubRule) Listen(ctx *Context, opts Options) (Listeners, error) {
	if opts.Bool("fail", false) {
		return nil, errors.New("boom")
	}
	l := Listeners{}
	if opts.Bool("Identifier", true) {
		l.On(func(id ast.NodeID, n *ast.Node) {
			*r.calls = append(*r.calls, r.meta.Name+":"+ctx.Tree.Text(id))
			ctx.Report(Report{
				Node:      id,
				MessageID: "ident",
				Data:      map[string]string{"name": ctx.Tree.Text(id)},
				Fix:       &diag.Fix{Edits: fix.ReplaceSpan("", n.Span, "x").Edits},
			})
		}, ast.Identifier)
	}
	return l, nil
}

func newStub(name string, calls *[]string) stubRule {
	return stubRule{
		meta: Meta{
			Name:     name,
			Messages: map[string]string{"ident": "found {{ name }} in {{where}}"},
			Schema:   Schema{"Identifier": OptBool, "fail": OptBool},
			Default:  true,
		},
		calls: calls,
	}
}

func TestRunDispatchOrder(t *testing.T) {
	tree := buildTree(t)
	var calls []string
	enabled := []Enabled{
		{Rule: newStub("first", &calls), Severity: diag.SevWarning},
		{Rule: newStub("second", &calls), Severity: diag.SevError},
	}
	bag, err := Run(context.Background(), tree, enabled)
	require.NoError(t, err)
	assert.Equal(t, []string{"first:a", "second:a", "first:b", "second:b"}, calls)
	require.Equal(t, 4, bag.Len())

	d := bag.Items()[0]
	assert.Equal(t, "found a in {{where}}", d.Message)
	assert.Equal(t, diag.SevError, d.Severity, "error sorts before warning at the same span")
	require.Len(t, d.Fixes, 1)
	assert.Equal(t, d.Message, d.Fixes[0].Title)
}

func TestRunDisabledListener(t *testing.T) {
	tree := buildTree(t)
	var calls []string
	bag, err := Run(context.Background(), tree, []Enabled{
		{Rule: newStub("only", &calls), Options: Options{"Identifier": false}},
	})
	require.NoError(t, err)
	assert.Empty(t, calls)
	assert.Zero(t, bag.Len())
}

func TestRunListenError(t *testing.T) {
	var calls []string
	_, err := Run(context.Background(), buildTree(t), []Enabled{
		{Rule: newStub("bad", &calls), Options: Options{"fail": true}},
	})
	assert.ErrorContains(t, err, "bad: boom")
}

func TestDeprecatedNote(t *testing.T) {
	var calls []string
	rule := newStub("old", &calls)
	rule.meta.Deprecated = true
	rule.meta.ReplacedBy = []string{"new"}
	bag, err := Run(context.Background(), buildTree(t), []Enabled{{Rule: rule}})
	require.NoError(t, err)
	d := bag.Items()[0]
	assert.True(t, d.Deprecated)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "deprecated, use new instead", d.Notes[0].Msg)
}

func TestValidateOptions(t *testing.T) {
	meta := Meta{Name: "r", Schema: Schema{
		"on": OptBool, "n": OptInt, "indent": OptIndent, "tags": OptStrings,
	}}
	assert.NoError(t, ValidateOptions(meta, Options{
		"on": true, "n": int64(2), "indent": "tab", "tags": []any{"a", "b"},
	}))
	assert.NoError(t, ValidateOptions(meta, Options{"indent": 4}))
	assert.ErrorIs(t, ValidateOptions(meta, Options{"bogus": true}), ErrUnknownOption)
	assert.ErrorIs(t, ValidateOptions(meta, Options{"on": "yes"}), ErrOptionType)
	assert.ErrorIs(t, ValidateOptions(meta, Options{"n": -1}), ErrOptionType)
	assert.ErrorIs(t, ValidateOptions(meta, Options{"indent": "spaces"}), ErrOptionType)
	assert.ErrorIs(t, ValidateOptions(meta, Options{"tags": []any{"a", 1}}), ErrOptionType)
}

func TestOptionAccessors(t *testing.T) {
	o := Options{"indent": "tab", "width": float64(4), "tags": []any{"x"}}
	assert.Equal(t, "\t", o.Indent("indent", 2))
	assert.Equal(t, "    ", o.Indent("width", 2))
	assert.Equal(t, "  ", o.Indent("missing", 2))
	assert.Equal(t, []string{"x"}, o.Strings("tags", nil))
	assert.True(t, o.Bool("missing", true))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "a X b", Format("a {{name}} b", map[string]string{"name": "X"}))
	assert.Equal(t, "plain", Format("plain", nil))
}

func TestRegistryResolve(t *testing.T) {
	var calls []string
	on := newStub("on", &calls)
	off := newStub("off-by-default", &calls)
	off.meta.Default = false
	reg := NewRegistry(on, off)

	assert.Equal(t, []string{"off-by-default", "on"}, reg.Names())
	assert.Error(t, reg.Add(on))

	enabled, err := reg.Resolve(nil)
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, "on", enabled[0].Rule.Meta().Name)

	enabled, err = reg.Resolve(map[string]Setting{
		"on":             {Enabled: false},
		"off-by-default": {Enabled: true, Severity: diag.SevError, Options: Options{"Identifier": false}},
	})
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, diag.SevError, enabled[0].Severity)

	_, err = reg.Resolve(map[string]Setting{"nope": {Enabled: true}})
	assert.ErrorContains(t, err, `unknown rule "nope"`)
	_, err = reg.Resolve(map[string]Setting{"on": {Enabled: true, Options: Options{"x": 1}}})
	assert.ErrorIs(t, err, ErrUnknownOption)
}
