// Package ast defines the token kinds, the Token value, and the syntax tree
// produced by the Kaleido lexer and parser.
//
// Tokens are the smallest meaningful units of a Kaleido source file. A token
// is a kind plus at most one payload: identifiers carry their name, numbers
// carry their float64 value, and every other kind carries nothing. The payload
// shape is fixed by the constructor used to build the token, so a NUMBER
// without a value or a PLUS with a name cannot exist.
package ast

import (
	"fmt"
	"strconv"
)

// TokenKind identifies the category of a scanned token.
type TokenKind int

const (
	// EOF is never produced by the lexer. A parser token stream reports it
	// once every token has been consumed.
	EOF TokenKind = iota

	// ── Literals ───────────────────────────────────────────────────────────────

	// IDENT is an identifier: [a-zA-Z][a-zA-Z0-9]*
	IDENT
	// NUMBER is a numeric literal made of digits and dots, e.g. 3, 4.5, .5
	NUMBER

	// ── Keywords ───────────────────────────────────────────────────────────────

	// DEF introduces a function definition: def add(a b) a + b
	DEF
	// EXTERN declares a function defined elsewhere: extern sin(x)
	EXTERN
	// IF begins a conditional expression: if x < 3 then 1 else 2
	IF
	// THEN separates the condition from the first branch.
	THEN
	// ELSE introduces the second, mandatory branch.
	ELSE
	// FOR begins a counted loop: for i = 1, 10, 2 in body
	FOR
	// IN separates the loop header from the loop body.
	IN

	// ── Operators ──────────────────────────────────────────────────────────────

	// PLUS is the addition operator: a + b
	PLUS
	// MINUS is the subtraction operator: a - b
	MINUS
	// ASTERISK is the multiplication operator: a * b
	ASTERISK
	// LT is the less-than operator: a < b
	LT
	// ASSIGN binds the loop variable in a for header: i = 0
	ASSIGN

	// ── Delimiters ─────────────────────────────────────────────────────────────

	// LPAREN is the left parenthesis: (
	LPAREN
	// RPAREN is the right parenthesis: )
	RPAREN
	// COMMA separates arguments and loop header parts: ,
	COMMA
	// SEMICOLON optionally terminates if and for expressions: ;
	SEMICOLON
)

var kindNames = [...]string{
	EOF:       "EOF",
	IDENT:     "Identifier",
	NUMBER:    "Number",
	DEF:       "Def",
	EXTERN:    "Extern",
	IF:        "If",
	THEN:      "Then",
	ELSE:      "Else",
	FOR:       "For",
	IN:        "In",
	PLUS:      "Plus",
	MINUS:     "Minus",
	ASTERISK:  "Asterisk",
	LT:        "LessThan",
	ASSIGN:    "Assign",
	LPAREN:    "ParenOpen",
	RPAREN:    "ParenClose",
	COMMA:     "Comma",
	SEMICOLON: "Semicolon",
}

// String returns the name of the kind, e.g. "Plus" or "ParenOpen".
func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// keywords maps the literal text of every Kaleido keyword to its TokenKind.
var keywords = map[string]TokenKind{
	"def":    DEF,
	"extern": EXTERN,
	"if":     IF,
	"then":   THEN,
	"else":   ELSE,
	"for":    FOR,
	"in":     IN,
}

// LookupIdent reports whether word is a reserved keyword and, if so, which.
func LookupIdent(word string) (TokenKind, bool) {
	kind, ok := keywords[word]
	return kind, ok
}

// symbols maps the single-character structural symbols to their kinds.
var symbols = map[byte]TokenKind{
	'(': LPAREN,
	')': RPAREN,
	'<': LT,
	'+': PLUS,
	'-': MINUS,
	'*': ASTERISK,
	',': COMMA,
	';': SEMICOLON,
	'=': ASSIGN,
}

// LookupSymbol returns the kind of a single-character symbol.
func LookupSymbol(ch byte) (TokenKind, bool) {
	kind, ok := symbols[ch]
	return kind, ok
}

// precedences holds the binding strength of every binary operator.
// Higher binds tighter.
var precedences = map[TokenKind]int{
	LT:       10,
	PLUS:     20,
	MINUS:    20,
	ASTERISK: 40,
}

// payload records which of the three payload shapes a token carries.
type payload uint8

const (
	payloadNone payload = iota
	payloadString
	payloadNumber
)

// Token is a single lexical unit. Build one with [NewToken], [NewIdent] or
// [NewNumber]; the zero value is an EOF token.
type Token struct {
	kind  TokenKind
	shape payload
	str   string
	num   float64
}

// NewToken returns a payload-free token of the given kind. It panics if kind
// requires a payload (IDENT, NUMBER); use NewIdent or NewNumber for those.
func NewToken(kind TokenKind) Token {
	if kind == IDENT || kind == NUMBER {
		panic(fmt.Sprintf("ast: %s token requires a payload", kind))
	}
	return Token{kind: kind}
}

// NewIdent returns an IDENT token carrying name.
func NewIdent(name string) Token {
	return Token{kind: IDENT, shape: payloadString, str: name}
}

// NewNumber returns a NUMBER token carrying v.
func NewNumber(v float64) Token {
	return Token{kind: NUMBER, shape: payloadNumber, num: v}
}

// Kind returns the token's kind.
func (t Token) Kind() TokenKind { return t.kind }

// Ident returns the identifier name and true for IDENT tokens.
func (t Token) Ident() (string, bool) {
	if t.shape != payloadString {
		return "", false
	}
	return t.str, true
}

// Number returns the numeric value and true for NUMBER tokens.
func (t Token) Number() (float64, bool) {
	if t.shape != payloadNumber {
		return 0, false
	}
	return t.num, true
}

// Precedence returns the binary-operator precedence of the token, or -1 if
// the token is not a binary operator.
func (t Token) Precedence() int {
	if p, ok := precedences[t.kind]; ok {
		return p
	}
	return -1
}

// String renders the token the way the debug token dump prints it:
// Identifier(foo), Number(3), Plus.
func (t Token) String() string {
	switch t.shape {
	case payloadString:
		return fmt.Sprintf("%s(%s)", t.kind, t.str)
	case payloadNumber:
		return fmt.Sprintf("%s(%s)", t.kind, strconv.FormatFloat(t.num, 'g', -1, 64))
	}
	return t.kind.String()
}
