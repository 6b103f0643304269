package rules

import (
	"testing"

	"layoutlint/internal/testkit"
)

func TestCurlyValid(t *testing.T) {
	testkit.Valid(t, Curly{},
		testkit.Case{Code: "if (true)\n  console.log('hello')"},
		testkit.Case{Code: "if (true) {\n  console.log('hello')\n}"},
		testkit.Case{Code: "while (true)\n  console.log('bar')"},
		testkit.Case{Code: unindent(`
			if (true)
			  console.log('foo')
			else if (false)
			  console.log('bar')
		`)},
		testkit.Case{Code: unindent(`
			if (true) {
			  console.log('foo')
			} else if (false) {
			  console.log('bar')
			} else if (true) {
			  console.log('baz')
			}
		`)},
		testkit.Case{Code: unindent(`
			function identity(x) {
			  if (foo)
			    console.log('bar')
			}
		`)},
		testkit.Case{Code: unindent(`
			function identity(x) {
			  if (foo)
			    console.log('bar')
			  ;console.log('baz')
			}
		`)},
		testkit.Case{Code: unindent(`
			function identity(x) {
			  if (foo)
			    return x;
			}
		`)},
	)
}

func TestCurlyInvalid(t *testing.T) {
	testkit.Invalid(t, Curly{},
		testkit.Case{
			Name: "multi",
			Code: unindent(`
				if (true)
				  console.log({
				    foo
				  })
			`),
			Output: unindent(`
				if (true) {
				  console.log({
				    foo
				  })
				}
			`),
			Errors: []string{"missingCurlyBrackets"},
		},
		testkit.Case{
			Name: "nested",
			Code: unindent(`
				if (true)
				  if (false) console.log('bar')
			`),
			Output: unindent(`
				if (true) {
				  if (false) console.log('bar')
				}
			`),
			Errors: []string{"missingCurlyBrackets"},
		},
		testkit.Case{
			Name: "consistent",
			Code: unindent(`
				if (true)
				  console.log('bar')
				else
				  console.log({
				    foo
				  })
			`),
			Output: unindent(`
				if (true) {
				  console.log('bar')
				}
				else {
				  console.log({
				    foo
				  })
				}
			`),
			Errors: testkit.Errors("missingCurlyBrackets", 2),
		},
		testkit.Case{
			Name: "while",
			Code: unindent(`
				while (true)
				  console.log({
				    foo
				  })
			`),
			Output: unindent(`
				while (true) {
				  console.log({
				    foo
				  })
				}
			`),
			Errors: []string{"missingCurlyBrackets"},
		},
		testkit.Case{
			Name: "if-else-if",
			Code: unindent(`
				if (true)
				  console.log('foo')
				else if (false)
				  console.log('bar')
				else if (true)
				  console.log('baz')
				else {
				  console.log('qux')
				}
			`),
			Output: unindent(`
				if (true) {
				  console.log('foo')
				}
				else if (false) {
				  console.log('bar')
				}
				else if (true) {
				  console.log('baz')
				}
				else {
				  console.log('qux')
				}
			`),
			Errors: testkit.Errors("missingCurlyBrackets", 3),
		},
		testkit.Case{
			Name: "multiline-test",
			Code: unindent(`
				if (
				  foo
				  || bar
				)
				  return true
			`),
			Output: unindent(`
				if (
				  foo
				  || bar
				) {
				  return true
				}
			`),
			Errors: []string{"missingCurlyBrackets"},
		},
	)
}
