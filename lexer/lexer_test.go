// Package lexer_test contains integration-style tests for the Kaleido lexer.
//
// Tests are organised by category:
//   - Keywords:   all seven keywords and the keyword boundary
//   - Symbols:    every single-character symbol
//   - Numbers:    number runs, including the permissive scan
//   - Comments:   '#' comments are skipped
//   - Errors:     unexpected characters and malformed numbers
//   - Program:    end-to-end snippet
package lexer_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/metaphox/kaleido/ast"
	"github.com/metaphox/kaleido/lexer"
)

// tokenize runs the lexer and fails the test on error.
func tokenize(t *testing.T, input string) []ast.Token {
	t.Helper()
	toks, err := lexer.Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q): unexpected error: %v", input, err)
	}
	return toks
}

// assertTokens compares got against want element by element.
func assertTokens(t *testing.T, got, want []ast.Token) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count: got %d %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func tok(kind ast.TokenKind) ast.Token { return ast.NewToken(kind) }

// ── Keywords ──────────────────────────────────────────────────────────────────

func TestTokenize_Keywords(t *testing.T) {
	got := tokenize(t, "def extern if then else for in")
	assertTokens(t, got, []ast.Token{
		tok(ast.DEF), tok(ast.EXTERN), tok(ast.IF), tok(ast.THEN),
		tok(ast.ELSE), tok(ast.FOR), tok(ast.IN),
	})
}

// TestTokenize_KeywordBoundary checks that keyword prefixes and suffixes stay
// identifiers: "define" must not become DEF + "ine".
func TestTokenize_KeywordBoundary(t *testing.T) {
	got := tokenize(t, "define iffy inner x1 For")
	assertTokens(t, got, []ast.Token{
		ast.NewIdent("define"),
		ast.NewIdent("iffy"),
		ast.NewIdent("inner"),
		ast.NewIdent("x1"),
		ast.NewIdent("For"),
	})
}

// ── Symbols ───────────────────────────────────────────────────────────────────

func TestTokenize_Symbols(t *testing.T) {
	got := tokenize(t, "( ) < + - * , ; =")
	assertTokens(t, got, []ast.Token{
		tok(ast.LPAREN), tok(ast.RPAREN), tok(ast.LT), tok(ast.PLUS),
		tok(ast.MINUS), tok(ast.ASTERISK), tok(ast.COMMA), tok(ast.SEMICOLON),
		tok(ast.ASSIGN),
	})
}

func TestTokenize_NoWhitespace(t *testing.T) {
	got := tokenize(t, "3+4*5")
	assertTokens(t, got, []ast.Token{
		ast.NewNumber(3), tok(ast.PLUS), ast.NewNumber(4), tok(ast.ASTERISK), ast.NewNumber(5),
	})
}

// ── Numbers ───────────────────────────────────────────────────────────────────

func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.14", 3.14},
		{".5", 0.5},
		{"1.", 1},
		{"007", 7},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := tokenize(t, tt.input)
			assertTokens(t, got, []ast.Token{ast.NewNumber(tt.want)})
		})
	}
}

// TestTokenize_NumberStopsAtLetter checks that a number run ends at the first
// character that is neither a digit nor a dot.
func TestTokenize_NumberStopsAtLetter(t *testing.T) {
	got := tokenize(t, "2x")
	assertTokens(t, got, []ast.Token{ast.NewNumber(2), ast.NewIdent("x")})
}

// ── Comments and whitespace ───────────────────────────────────────────────────

func TestTokenize_Comments(t *testing.T) {
	input := "# leading comment\n" +
		"x # trailing comment\n" +
		"\t y # no newline at end"
	got := tokenize(t, input)
	assertTokens(t, got, []ast.Token{ast.NewIdent("x"), ast.NewIdent("y")})
}

func TestTokenize_Empty(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "# only a comment"} {
		if got := tokenize(t, input); len(got) != 0 {
			t.Errorf("Tokenize(%q): expected no tokens, got %v", input, got)
		}
	}
}

// ── Errors ────────────────────────────────────────────────────────────────────

func TestTokenize_UnexpectedChar(t *testing.T) {
	toks, err := lexer.Tokenize("1 $ 2")
	if err == nil {
		t.Fatalf("expected error, got tokens %v", toks)
	}
	if toks != nil {
		t.Errorf("expected no tokens on error, got %v", toks)
	}
	if !errors.Is(err, lexer.ErrUnexpectedChar) {
		t.Errorf("errors.Is(err, ErrUnexpectedChar) = false for %v", err)
	}
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *lexer.Error, got %T", err)
	}
	if lexErr.Char != '$' {
		t.Errorf("char: got %q, want '$'", lexErr.Char)
	}
	if lexErr.Offset != 2 || lexErr.Line != 1 || lexErr.Col != 3 {
		t.Errorf("position: got offset %d line %d col %d, want 2 1 3",
			lexErr.Offset, lexErr.Line, lexErr.Col)
	}
	if want := `unexpected character '$' at line 1, col 3`; err.Error() != want {
		t.Errorf("message: got %q, want %q", err.Error(), want)
	}
}

func TestTokenize_ErrorPosition_Multiline(t *testing.T) {
	_, err := lexer.Tokenize("def f(x)\n  x @ 1")
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *lexer.Error, got %v", err)
	}
	if lexErr.Line != 2 || lexErr.Col != 5 {
		t.Errorf("position: got line %d col %d, want 2 5", lexErr.Line, lexErr.Col)
	}
	if lexErr.Char != '@' {
		t.Errorf("char: got %q, want '@'", lexErr.Char)
	}
}

func TestTokenize_UnexpectedChar_Unicode(t *testing.T) {
	_, err := lexer.Tokenize("x → y")
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *lexer.Error, got %v", err)
	}
	if lexErr.Char != '→' {
		t.Errorf("char: got %q, want '→'", lexErr.Char)
	}
}

func TestTokenize_Underscore(t *testing.T) {
	// Identifiers are alphanumeric only.
	if _, err := lexer.Tokenize("my_var"); !errors.Is(err, lexer.ErrUnexpectedChar) {
		t.Errorf("expected ErrUnexpectedChar, got %v", err)
	}
}

// TestTokenize_MalformedNumber checks the permissive scan: the whole run of
// digits and dots is consumed, then rejected when converted.
func TestTokenize_MalformedNumber(t *testing.T) {
	for _, input := range []string{"1.2.3", ".", "1..2"} {
		t.Run(input, func(t *testing.T) {
			_, err := lexer.Tokenize("x + " + input)
			if !errors.Is(err, lexer.ErrMalformedNumber) {
				t.Fatalf("expected ErrMalformedNumber, got %v", err)
			}
			var lexErr *lexer.Error
			errors.As(err, &lexErr)
			if lexErr.Literal != input {
				t.Errorf("literal: got %q, want %q", lexErr.Literal, input)
			}
			if lexErr.Col != 5 {
				t.Errorf("col: got %d, want 5", lexErr.Col)
			}
			var numErr *strconv.NumError
			if !errors.As(err, &numErr) {
				t.Errorf("expected wrapped *strconv.NumError, got %v", lexErr.Err)
			}
		})
	}
}

// ── Streaming API ─────────────────────────────────────────────────────────────

func TestLexer_Next(t *testing.T) {
	l := lexer.New("a 1")
	first, ok, err := l.Next()
	if err != nil || !ok || first != ast.NewIdent("a") {
		t.Fatalf("first: got %v %v %v", first, ok, err)
	}
	second, ok, err := l.Next()
	if err != nil || !ok || second != ast.NewNumber(1) {
		t.Fatalf("second: got %v %v %v", second, ok, err)
	}
	for i := 0; i < 2; i++ {
		if _, ok, err := l.Next(); ok || err != nil {
			t.Fatalf("after end: got ok=%v err=%v", ok, err)
		}
	}
}

// ── Integration ───────────────────────────────────────────────────────────────

func TestTokenize_Program(t *testing.T) {
	input := `
# Compute the x'th fibonacci number.
def fib(x)
  if x < 3 then
    1
  else
    fib(x-1)+fib(x-2)

fib(40)
`
	got := tokenize(t, input)
	id := ast.NewIdent
	num := ast.NewNumber
	assertTokens(t, got, []ast.Token{
		tok(ast.DEF), id("fib"), tok(ast.LPAREN), id("x"), tok(ast.RPAREN),
		tok(ast.IF), id("x"), tok(ast.LT), num(3), tok(ast.THEN),
		num(1),
		tok(ast.ELSE),
		id("fib"), tok(ast.LPAREN), id("x"), tok(ast.MINUS), num(1), tok(ast.RPAREN),
		tok(ast.PLUS),
		id("fib"), tok(ast.LPAREN), id("x"), tok(ast.MINUS), num(2), tok(ast.RPAREN),
		id("fib"), tok(ast.LPAREN), num(40), tok(ast.RPAREN),
	})
}
