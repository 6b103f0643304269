package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"layoutlint/internal/testkit"
)

func TestNoTopLevelAwait(t *testing.T) {
	testkit.Valid(t, NoTopLevelAwait{},
		testkit.Case{Code: "async function foo() { await bar() }"},
		testkit.Case{Code: "const a = async () => {\n  await bar()\n}"},
		testkit.Case{Code: "const o = { async m() { await bar() } }"},
	)
	invalid := []string{
		"await foo()",
		"function foo() {\n  \n}\n\nawait foo()",
		"const a = {\n  foo: await bar()\n}",
	}
	for _, code := range invalid {
		testkit.Invalid(t, NoTopLevelAwait{}, testkit.Case{Code: code, Errors: []string{"NoTopLevelAwait"}})
	}
}

func TestNoConstEnum(t *testing.T) {
	testkit.Valid(t, NoConstEnum{}, testkit.Case{Code: "enum Foo { A, B }"})
	testkit.Invalid(t, NoConstEnum{}, testkit.Case{Code: "const enum Foo { A, B }", Errors: []string{"noConstEnum"}})

	require.True(t, NoConstEnum{}.Meta().Deprecated)
	require.False(t, NoConstEnum{}.Meta().Default)
}
