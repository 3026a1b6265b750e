package parser

import "github.com/metaphox/kaleido/ast"

// Stream is the parser's token queue. It supports looking at the front token,
// removing the front token and asking how many remain; nothing else. A popped
// token is gone for good.
type Stream struct {
	toks []ast.Token
	head int
}

// NewStream returns a stream over its own copy of toks.
func NewStream(toks []ast.Token) *Stream {
	return &Stream{toks: append([]ast.Token(nil), toks...)}
}

// Peek returns the front token without consuming it, or an EOF token once the
// stream is empty.
func (s *Stream) Peek() ast.Token {
	if s.head >= len(s.toks) {
		return ast.Token{}
	}
	return s.toks[s.head]
}

// Pop consumes and returns the front token. On an empty stream it returns an
// EOF token and consumes nothing.
func (s *Stream) Pop() ast.Token {
	tok := s.Peek()
	if s.head < len(s.toks) {
		s.head++
	}
	return tok
}

// Len returns the number of tokens not yet consumed.
func (s *Stream) Len() int { return len(s.toks) - s.head }
