package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"layoutlint/internal/lint"
	"layoutlint/internal/testkit"
)

var unindent = testkit.Unindent

func TestListNewlineValid(t *testing.T) {
	testkit.Valid(t, ListNewline{},
		testkit.Case{Code: `const a = { foo: "bar", bar: 2 }`},
		testkit.Case{Code: "const a = {\nfoo: \"bar\",\nbar: 2\n}"},
		testkit.Case{Code: "const a = [1, 2, 3]"},
		testkit.Case{Code: "const a = [\n1,\n2,\n3\n]"},
		testkit.Case{Code: `import { foo, bar } from "foo"`},
		testkit.Case{Code: "import {\nfoo,\nbar\n} from \"foo\""},
		testkit.Case{Code: "const a = [`\n\n`, `\n\n`]"},
		testkit.Case{Code: "log(a, b)"},
		testkit.Case{Code: "log(\na,\nb\n)"},
		testkit.Case{Code: "function foo(a, b) {}"},
		testkit.Case{Code: "function foo(\na,\nb\n) {}"},
		testkit.Case{Code: "const foo = (a, b) => {\n\n}"},
		testkit.Case{Code: "interface Foo { a: 1, b: 2 }"},
		testkit.Case{Code: "interface Foo {\na: 1\nb: 2\n}"},
		testkit.Case{Code: "new Foo(a, b)"},
		testkit.Case{Code: "new Foo(\na,\nb\n)"},
		testkit.Case{Code: "foo(() =>\nbar())"},
		testkit.Case{Code: "foo(() =>\nbar()\n)"},
		testkit.Case{Code: unindent(`
			export const getTodoList = request.post<
			  Params,
			  ResponseData,
			>('/api/todo-list')
		`)},
		testkit.Case{Code: unindent(`
			bar(
			  foo => foo
			    ? ''
			    : ''
			)
		`)},
		testkit.Case{
			Name:    "disabled kind",
			Code:    "foo(\na, b\n)",
			Options: lint.Options{"CallExpression": false},
		},
	)
}

func TestListNewlineInvalid(t *testing.T) {
	wrap2 := testkit.Errors("shouldWrap", 2)
	unwrap2 := testkit.Errors("shouldNotWrap", 2)
	testkit.Invalid(t, ListNewline{},
		testkit.Case{
			Code:   "const a = {\nfoo: \"bar\", bar: 2 }",
			Output: "const a = {\nfoo: \"bar\", \nbar: 2\n }",
			Errors: wrap2,
		},
		testkit.Case{
			Code:   "const a = {foo: \"bar\", \nbar: 2\n}",
			Output: `const a = {foo: "bar", bar: 2}`,
			Errors: unwrap2,
		},
		testkit.Case{
			Name:   "CRLF",
			Code:   "const a = {foo: \"bar\", \r\nbar: 2\r\n}",
			Output: `const a = {foo: "bar", bar: 2}`,
			Errors: unwrap2,
		},
		testkit.Case{
			Code:   "const a = [\n1, 2, 3]",
			Output: "const a = [\n1, \n2, \n3\n]",
			Errors: testkit.Errors("shouldWrap", 3),
		},
		testkit.Case{
			Code:   "import {\nfoo, bar } from \"foo\"",
			Output: "import {\nfoo, \nbar\n } from \"foo\"",
			Errors: wrap2,
		},
		testkit.Case{
			Code:   "log(\na, b)",
			Output: "log(\na, \nb\n)",
			Errors: wrap2,
		},
		testkit.Case{
			Name:   "interface delimiter",
			Code:   "interface Foo {a: 1\nb: 2\n}",
			Output: "interface Foo {a: 1,b: 2,}",
			Errors: unwrap2,
		},
		testkit.Case{
			Name:   "type literal delimiter",
			Code:   "type Foo = {a: 1\nb: 2\n}",
			Output: "type Foo = {a: 1,b: 2,}",
			Errors: unwrap2,
		},
		testkit.Case{
			Name:   "delimiter already exists",
			Code:   "interface Foo {a: 1;\nb: 2,\nc: 3}",
			Output: "interface Foo {a: 1;b: 2,c: 3}",
			Errors: unwrap2,
		},
		testkit.Case{
			Name: "comment keeps the closing paren",
			Code: unindent(`
				export default antfu({
				},
				{
				  foo: 'bar'
				}
				  // some comment
				  // hello
				)
			`),
			Output: unindent(`
				export default antfu({
				},{
				  foo: 'bar'
				}
				  // some comment
				  // hello
				)
			`),
			Errors: []string{"shouldNotWrap"},
		},
		testkit.Case{
			Name: "comment before an item",
			Code: unindent(`
				export default antfu({
				},
				// some comment
				{
				  foo: 'bar'
				},
				{
				}
				  // hello
				)
			`),
			Output: unindent(`
				export default antfu({
				},
				// some comment
				{
				  foo: 'bar'
				},{
				}
				  // hello
				)
			`),
			Errors: []string{"shouldNotWrap"},
		},
		testkit.Case{
			Name:   "line comment before the separator",
			Code:   "const x = [1, 2 // note\n, 3]",
			Output: "const x = [1, 2 // note\n, 3]",
			Errors: []string{"shouldNotWrap"},
		},
		testkit.Case{
			Name:   "line comment before the closing bracket",
			Code:   "const x = [1, 2, // note\n]",
			Output: "const x = [1, 2, // note\n]",
			Errors: []string{"shouldNotWrap"},
		},
	)
}

func TestListNewlineKeepsCommentsOutOfJoinedLines(t *testing.T) {
	for _, code := range []string{
		"const x = [1, 2 // note\n, 3]",
		"const x = [1, 2, // note\n]",
		"foo(a, /* b */ b // c\n, d)",
	} {
		res := testkit.Lint(t, ListNewline{}, testkit.Case{Code: code})
		require.NotEmpty(t, res.Diagnostics, code)
		for _, d := range res.Diagnostics {
			require.False(t, d.Fixable(), "%s: fix offered across a comment", code)
		}
	}
}

func TestListNewlineMessageNamesNode(t *testing.T) {
	res := testkit.Lint(t, ListNewline{}, testkit.Case{Code: "log(\na, b)"})
	require.NotEmpty(t, res.Diagnostics)
	require.Equal(t, "Should have line breaks between items, in node CallExpression", res.Diagnostics[0].Message)
}

func TestListNewlineFixIsStable(t *testing.T) {
	res := testkit.FixAll(t, ListNewline{}, testkit.Case{Code: "const a = [\n1, 2, 3]"})
	require.Equal(t, "const a = [\n1, \n2, \n3\n]", string(res.Output))
	require.Empty(t, res.Remaining)
	require.Equal(t, 1, res.Passes)
}

func TestObjectNewlineIsDeprecated(t *testing.T) {
	res := testkit.Lint(t, ObjectNewline{}, testkit.Case{Code: "const a = {\nfoo: \"bar\", bar: 2 }"})
	require.Equal(t, testkit.Errors("shouldWrap", 2), res.MessageIDs())
	for _, d := range res.Diagnostics {
		require.True(t, d.Deprecated)
		require.Len(t, d.Notes, 1)
		require.Equal(t, "deprecated, use consistent-list-newline instead", d.Notes[0].Msg)
	}

	// calls are outside its scope
	testkit.Valid(t, ObjectNewline{}, testkit.Case{Code: "log(\na, b)"})
}
