package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"layoutlint/internal/parser"
	"layoutlint/internal/source"
	"layoutlint/internal/testkit"
)

func TestTreesKeepSpanInvariants(t *testing.T) {
	inputs := map[string]string{
		"object.js":  "const a = {\n  foo: 1, bar: [1, 2] }\n",
		"call.ts":    "foo<string>(a,\n  b, (x: number) => x + 1)\n",
		"iface.ts":   "interface Foo {\n  a: string\n  b?: number\n}\ntype T = { x: 1; y: 2 }\n",
		"import.mjs": "import a, { b, c as d } from 'mod'\nexport { b }\n",
		"if.js":      "if (a)\n  foo()\nelse if (b) {\n  bar()\n}\nelse\n  baz()\n",
		"chain.ts":   "foo().bar\n  .baz()\n  .boo()\n",
		"tmpl.ts":    "const s = $`\n  a ${b}\n`\n",
		"class.tsx":  "class A {\n  async m(x = 1) { return <div a={x} /> }\n}\n",
	}
	for name, code := range inputs {
		t.Run(name, func(t *testing.T) {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual(name, []byte(code)))
			tree, err := parser.Parse(context.Background(), file, parser.Options{})
			require.NoError(t, err)
			require.NoError(t, testkit.CheckSpanInvariants(tree))
		})
	}
}
