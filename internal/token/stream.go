package token

import (
	"sort"

	"layoutlint/internal/source"
)

// Stream is the sorted token and comment sequence of one file.
type Stream struct {
	file     *source.File
	tokens   []Token
	comments []Token
}

// NewStream sorts tokens and comments by start offset and wraps them.
func NewStream(file *source.File, tokens, comments []Token) *Stream {
	sort.SliceStable(tokens, func(i, j int) bool { return tokens[i].Span.Start < tokens[j].Span.Start })
	sort.SliceStable(comments, func(i, j int) bool { return comments[i].Span.Start < comments[j].Span.Start })
	return &Stream{file: file, tokens: tokens, comments: comments}
}

// File returns the file the stream was built from.
func (s *Stream) File() *source.File { return s.file }

// Tokens returns the code tokens in source order.
func (s *Stream) Tokens() []Token { return s.tokens }

// Comments returns the comments in source order.
func (s *Stream) Comments() []Token { return s.comments }

// Line returns the 1-based line of off.
func (s *Stream) Line(off uint32) uint32 { return s.file.LineOf(off) }

// Before returns the last code token ending at or before off.
func (s *Stream) Before(off uint32) (Token, bool) {
	i := sort.Search(len(s.tokens), func(i int) bool { return s.tokens[i].Span.End > off })
	if i == 0 {
		return Token{}, false
	}
	return s.tokens[i-1], true
}

// After returns the first code token starting at or after off.
func (s *Stream) After(off uint32) (Token, bool) {
	i := sort.Search(len(s.tokens), func(i int) bool { return s.tokens[i].Span.Start >= off })
	if i == len(s.tokens) {
		return Token{}, false
	}
	return s.tokens[i], true
}

// TokenBefore returns the code token immediately preceding span.
func (s *Stream) TokenBefore(span source.Span) (Token, bool) { return s.Before(span.Start) }

// TokenAfter returns the code token immediately following span.
func (s *Stream) TokenAfter(span source.Span) (Token, bool) { return s.After(span.End) }

// FirstTokenIn returns the first code token inside span.
func (s *Stream) FirstTokenIn(span source.Span) (Token, bool) {
	tok, ok := s.After(span.Start)
	if !ok || tok.Span.End > span.End {
		return Token{}, false
	}
	return tok, true
}

// LastTokenIn returns the last code token inside span.
func (s *Stream) LastTokenIn(span source.Span) (Token, bool) {
	tok, ok := s.Before(span.End)
	if !ok || tok.Span.Start < span.Start {
		return Token{}, false
	}
	return tok, true
}

// CommentsBetween returns the comments lying entirely inside [start, end).
func (s *Stream) CommentsBetween(start, end uint32) []Token {
	i := sort.Search(len(s.comments), func(i int) bool { return s.comments[i].Span.Start >= start })
	j := i
	for j < len(s.comments) && s.comments[j].Span.End <= end {
		j++
	}
	return s.comments[i:j]
}

// CommentsBefore returns the comments between span and the code token before it.
func (s *Stream) CommentsBefore(span source.Span) []Token {
	var from uint32
	if prev, ok := s.TokenBefore(span); ok {
		from = prev.Span.End
	}
	return s.CommentsBetween(from, span.Start)
}

// CommentsAfter returns the comments between span and the code token after it.
func (s *Stream) CommentsAfter(span source.Span) []Token {
	to := s.file.Span().End
	if next, ok := s.TokenAfter(span); ok {
		to = next.Span.Start
	}
	return s.CommentsBetween(span.End, to)
}

// FirstOfLine returns the first token or comment starting on line.
func (s *Stream) FirstOfLine(line uint32) (Token, bool) {
	start := s.file.LineStart(line)
	limit := s.file.LineEnd(line)

	var best Token
	found := false
	if tok, ok := s.After(start); ok && tok.Span.Start < limit {
		best, found = tok, true
	}
	i := sort.Search(len(s.comments), func(i int) bool { return s.comments[i].Span.Start >= start })
	if i < len(s.comments) {
		c := s.comments[i]
		if c.Span.Start < limit && (!found || c.Span.Start < best.Span.Start) {
			best, found = c, true
		}
	}
	return best, found
}
