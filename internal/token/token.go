package token

import (
	"layoutlint/internal/source"
)

// Token represents a single source token or comment with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsPunct reports whether the token is the punctuator text.
func (t Token) IsPunct(text string) bool {
	return t.Kind == Punctuator && t.Text == text
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool { return t.Kind == Keyword }

// IsComment reports whether the token is a comment.
func (t Token) IsComment() bool { return t.Kind.IsComment() }
