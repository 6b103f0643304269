// Package token defines the token model the layout rules navigate.
// Invariants:
//   - Token.Text is exactly the source bytes covered by Token.Span.
//   - Code tokens never overlap and are sorted by Span.Start.
//   - Comments are Tokens with a comment Kind and live in a separate slice;
//     they never appear among code tokens.
//   - Template literals are split at every substitution boundary: "`a${",
//     "}b${", "}c`" are three Template tokens.
package token
