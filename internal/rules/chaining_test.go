package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"layoutlint/internal/lint"
	"layoutlint/internal/testkit"
)

func TestChainingValid(t *testing.T) {
	testkit.Valid(t, Chaining{},
		testkit.Case{Code: "foo().bar().baz()[1].dar"},
		testkit.Case{Code: "foo().bar.baz().boo()"},
		testkit.Case{Code: unindent(`
			foo()
			  .bar
			  .baz()
			  .boo()
		`)},
		testkit.Case{Code: unindent(`
			Math.random()
			  .toString()
			  .split('')
			  .map(Number)
		`)},
		testkit.Case{Code: unindent(`
			foo.bar.baz()
			  .toString()
			  .split('')
			  .map(Number)
		`)},
		testkit.Case{Code: unindent(`
			foo.bar.baz
			  .toString()
			  .split('')
			  .map(Number)
		`)},
	)
}

func TestChainingInvalid(t *testing.T) {
	testkit.Invalid(t, Chaining{},
		testkit.Case{
			Name:   "call result is not a leading access",
			Code:   "foo().bar\n  .baz()\n  .boo()",
			Output: "foo().bar.baz().boo()",
			Errors: testkit.Errors("shouldNotWrap", 2),
		},
		testkit.Case{
			Name: "multi-line call head",
			Code: unindent(`
				foo({
				  bar: true
				}).bar
				  .baz()
				  .boo()
			`),
			Output: unindent(`
				foo({
				  bar: true
				}).bar.baz().boo()
			`),
			Errors: testkit.Errors("shouldNotWrap", 2),
		},
		testkit.Case{
			Name: "computed links are skipped",
			Code: unindent(`
				foo({
				  bar: true
				})[1]
				.bar
				  .baz[1]().boo.bar()
			`),
			Output: unindent(`
				foo({
				  bar: true
				})[1]
				.bar
				  .baz[1]()
				.boo
				.bar()
			`),
			Errors: testkit.Errors("shouldWrap", 2),
		},
		testkit.Case{
			Code: unindent(`
				foo({
				  bar: true
				})
				  .bar
				  .baz().boo()
			`),
			Output: unindent(`
				foo({
				  bar: true
				})
				  .bar
				  .baz()
				.boo()
			`),
			Errors: []string{"shouldWrap"},
		},
		testkit.Case{
			Code:   "Math.random()\n  .toString()\n  .split('').map(Number)",
			Output: "Math.random()\n  .toString()\n  .split('')\n.map(Number)",
			Errors: []string{"shouldWrap"},
		},
		testkit.Case{
			Code:   "this.foo\n  .toString()\n  .split('').map(Number)",
			Output: "this.foo\n  .toString()\n  .split('')\n.map(Number)",
			Errors: []string{"shouldWrap"},
		},
		testkit.Case{
			Code:   "Math\n  .random() .toString() .split('').map(Number)",
			Output: "Math\n  .random()\n .toString()\n .split('')\n.map(Number)",
			Errors: testkit.Errors("shouldWrap", 3),
		},
		testkit.Case{
			Code:   "[foo].map(x => x)\n  .filter(x => x)",
			Output: "[foo].map(x => x).filter(x => x)",
			Errors: []string{"shouldNotWrap"},
		},
		testkit.Case{
			Code:   "[foo]\n  .map(x => x).filter(x => x)",
			Output: "[foo]\n  .map(x => x)\n.filter(x => x)",
			Errors: []string{"shouldWrap"},
		},
		testkit.Case{
			Code:   "foo.bar.bar\n  .filter().map()",
			Output: "foo.bar.bar\n  .filter()\n.map()",
			Errors: []string{"shouldWrap"},
		},
	)
}

func TestChainingWithoutLeadingAccess(t *testing.T) {
	opts := lint.Options{"allowLeadingPropertyAccess": false}
	testkit.Invalid(t, Chaining{}, testkit.Case{
		Code:    "Math.random()\n  .toString()",
		Options: opts,
		Output:  "Math.random().toString()",
		Errors:  []string{"shouldNotWrap"},
	})
}

func TestChainingReportsOnDot(t *testing.T) {
	res := testkit.Lint(t, Chaining{}, testkit.Case{Code: "[foo].map(x => x)\n  .filter(x => x)"})
	require.Len(t, res.Diagnostics, 1)
	require.Equal(t, ".", res.File.Text(res.Diagnostics[0].Primary))
	require.Contains(t, res.Diagnostics[0].Message, "in node CallExpression")
}
