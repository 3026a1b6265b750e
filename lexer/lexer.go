// Package lexer implements the Kaleido lexer (tokeniser).
//
// [Tokenize] converts a Kaleido source string into an ordered slice of
// [ast.Token] values, or fails with an [*Error] describing the first character
// it could not classify.
//
// Design notes:
//   - Single-pass, character-by-character scanning using a read position cursor.
//   - No global state; every call owns its own [Lexer].
//   - Comments (# …) run to the end of the line and are dropped.
//   - Identifiers are scanned first and then classified as keywords via
//     [ast.LookupIdent].
//   - Number runs are scanned permissively (any mix of digits and dots) and
//     only validated when converted to float64.
//   - The first unrecognised character aborts the scan; no partial token
//     slice is ever returned alongside an error.
package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/metaphox/kaleido/ast"
)

var (
	// ErrUnexpectedChar classifies errors for characters no rule accepts.
	ErrUnexpectedChar = errors.New("unexpected character")
	// ErrMalformedNumber classifies errors for digit/dot runs that are not
	// valid floating point literals, e.g. 1.2.3 or a lone dot.
	ErrMalformedNumber = errors.New("malformed number")
)

// Error reports where and why tokenising stopped.
type Error struct {
	Kind    error  // ErrUnexpectedChar or ErrMalformedNumber
	Char    rune   // offending character (ErrUnexpectedChar)
	Literal string // offending run (ErrMalformedNumber)
	Offset  int    // 0-based byte offset of the failure
	Line    int    // 1-based line
	Col     int    // 1-based column
	Err     error  // underlying conversion error, if any
}

func (e *Error) Error() string {
	if e.Kind == ErrMalformedNumber {
		return fmt.Sprintf("malformed number %q at line %d, col %d", e.Literal, e.Line, e.Col)
	}
	return fmt.Sprintf("unexpected character %q at line %d, col %d", e.Char, e.Line, e.Col)
}

// Is lets errors.Is match the error's Kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

// Unwrap returns the underlying conversion error.
func (e *Error) Unwrap() error { return e.Err }

// Lexer holds the scan state for a single source string.
type Lexer struct {
	input   string // the full source text
	pos     int    // current read position (index of ch)
	readPos int    // next read position (pos + 1)
	ch      byte   // current character under examination, 0 at end

	line int // current 1-based line number
	col  int // 1-based column of ch
}

// New creates a Lexer positioned at the first character of input.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

// Tokenize scans the whole of input and returns its tokens in order.
func Tokenize(input string) ([]ast.Token, error) {
	return New(input).All()
}

// All scans the remaining input. On error the returned slice is nil.
func (l *Lexer) All() ([]ast.Token, error) {
	var toks []ast.Token
	for {
		tok, ok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// Next returns the next token. ok is false once the input is exhausted.
func (l *Lexer) Next() (ast.Token, bool, error) {
	for {
		l.skipWhitespace()

		if l.atEnd() {
			return ast.Token{}, false, nil
		}

		if kind, isSym := ast.LookupSymbol(l.ch); isSym {
			l.readChar()
			return ast.NewToken(kind), true, nil
		}

		switch {
		case isLetter(l.ch):
			return l.readIdentifier(), true, nil
		case isDigit(l.ch) || l.ch == '.':
			tok, err := l.readNumber()
			if err != nil {
				return ast.Token{}, false, err
			}
			return tok, true, nil
		case l.ch == '#':
			l.skipComment()
			continue
		}

		r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
		return ast.Token{}, false, &Error{
			Kind:   ErrUnexpectedChar,
			Char:   r,
			Offset: l.pos,
			Line:   l.line,
			Col:    l.col,
		}
	}
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// readChar advances the lexer by one character.
// When the input is exhausted l.ch is set to 0. Line and column counters are
// updated here; a newline moves the counters to the start of the next line.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// atEnd reports whether the cursor is past the last character. A NUL byte in
// the middle of the input is treated as end of buffer.
func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input) || l.ch == 0
}

func (l *Lexer) skipWhitespace() {
	for isSpace(l.ch) {
		l.readChar()
	}
}

// skipComment consumes a '#' comment up to, not including, the line break.
func (l *Lexer) skipComment() {
	for !l.atEnd() && l.ch != '\n' && l.ch != '\r' {
		l.readChar()
	}
}

// readIdentifier scans an identifier or keyword. On return the cursor is on
// the first character after the run.
func (l *Lexer) readIdentifier() ast.Token {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	word := l.input[start:l.pos]
	if kind, ok := ast.LookupIdent(word); ok {
		return ast.NewToken(kind)
	}
	return ast.NewIdent(word)
}

// readNumber scans a greedy run of digits and dots and converts it. The run is
// not validated while scanning; "1.2.3" is consumed whole and then rejected.
func (l *Lexer) readNumber() (ast.Token, error) {
	start, line, col := l.pos, l.line, l.col
	for isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	literal := l.input[start:l.pos]
	v, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return ast.Token{}, &Error{
			Kind:    ErrMalformedNumber,
			Literal: literal,
			Offset:  start,
			Line:    line,
			Col:     col,
			Err:     err,
		}
	}
	return ast.NewNumber(v), nil
}

// isLetter reports whether b is an ASCII letter.
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isDigit reports whether b is an ASCII decimal digit (0–9).
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
