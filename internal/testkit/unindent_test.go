package testkit

import (
	"testing"
)

func TestUnindent(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"\n    const a = 1\n    if (a)\n      b()\n  ", "const a = 1\nif (a)\n  b()"},
		{"foo", "foo"},
		{"\n\n  a\n\n  b\n\n", "a\n\nb"},
		{"\n  a\n      \n  b\n", "a\n    \nb"},
		{"   \n  ", ""},
	}
	for _, tc := range cases {
		if got := Unindent(tc.in); got != tc.want {
			t.Fatalf("Unindent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
