// Package parser implements the Kaleido recursive-descent parser.
//
// The parser consumes a [Stream] of tokens front to back and builds an
// [ast.CompilationUnit]. Binary expressions are parsed by precedence climbing:
// every operator token has a fixed binding strength (see [ast.Token.Precedence])
// and equal-strength chains fold to the left.
//
// Usage:
//
//	toks, err := lexer.Tokenize(source)
//	if err != nil { ... }
//	unit, err := parser.Parse(parser.NewStream(toks), "main.k")
//	if err != nil { ... }
//
// Error handling is fail-fast: the first violated expectation aborts the whole
// parse and is returned as an [*Error]. There is no recovery and no partial
// tree.
package parser

import (
	"errors"
	"fmt"

	"github.com/metaphox/kaleido/ast"
	"github.com/metaphox/kaleido/internal/logging"
	"github.com/metaphox/kaleido/lexer"
)

// DefaultMaxDepth bounds expression nesting. Each parenthesis, call argument,
// branch, loop part or right-hand operand climb costs one level of Go stack,
// so unbounded input would otherwise be able to exhaust it.
const DefaultMaxDepth = 256

// ErrSyntax matches every *Error via errors.Is.
var ErrSyntax = errors.New("syntax error")

// Error describes the first grammar expectation the input violated.
type Error struct {
	Msg   string    // what was expected, e.g. "expected ')'"
	Found ast.Token // the token found instead; EOF at end of input
}

func (e *Error) Error() string {
	found := "end of input"
	if e.Found.Kind() != ast.EOF {
		found = e.Found.String()
	}
	return fmt.Sprintf("parse error: %s, found %s", e.Msg, found)
}

// Is reports whether target is ErrSyntax.
func (e *Error) Is(target error) bool { return target == ErrSyntax }

// Option configures a parse.
type Option func(*Parser)

// WithLogger traces productions at debug level to logger.
func WithLogger(logger *logging.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger.WithField("component", "parser")
		}
	}
}

// WithMaxDepth sets the nesting bound; n <= 0 keeps DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// Parser holds the state of a single parse. It is created by Parse and is
// not reusable.
type Parser struct {
	s        *Stream
	logger   *logging.Logger
	maxDepth int
	depth    int
}

// Parse consumes s and returns the compilation unit named name.
func Parse(s *Stream, name string, opts ...Option) (*ast.CompilationUnit, error) {
	p := &Parser{s: s, logger: logging.Discard(), maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p.parseUnit(name)
}

// ParseString tokenises src and parses the result. Lexical failures are
// returned unchanged as *lexer.Error.
func ParseString(name, src string, opts ...Option) (*ast.CompilationUnit, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(NewStream(toks), name, opts...)
}

// ── Internal token management ─────────────────────────────────────────────────

func (p *Parser) peekIs(kind ast.TokenKind) bool { return p.s.Peek().Kind() == kind }

// errorf builds an *Error against the current front token.
func (p *Parser) errorf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...), Found: p.s.Peek()}
}

// expect pops the front token if it has the given kind; otherwise it returns
// an error carrying msg and consumes nothing.
func (p *Parser) expect(kind ast.TokenKind, msg string) (ast.Token, error) {
	if !p.peekIs(kind) {
		return ast.Token{}, p.errorf("%s", msg)
	}
	return p.s.Pop(), nil
}

// skip pops the front token if it has the given kind.
func (p *Parser) skip(kind ast.TokenKind) {
	if p.peekIs(kind) {
		p.s.Pop()
	}
}

// enter records one more level of nesting; every successful enter is paired
// with a deferred leave.
func (p *Parser) enter() error {
	if p.depth >= p.maxDepth {
		return p.errorf("expression nesting exceeds maximum depth %d", p.maxDepth)
	}
	p.depth++
	return nil
}

func (p *Parser) leave() { p.depth-- }

// ── Top level ─────────────────────────────────────────────────────────────────

func (p *Parser) parseUnit(name string) (*ast.CompilationUnit, error) {
	unit := &ast.CompilationUnit{Name: name}
	p.logger.Debug("parsing compilation unit", "unit", name, "tokens", p.s.Len())

	for p.s.Len() > 0 {
		switch p.s.Peek().Kind() {
		case ast.DEF:
			def, err := p.parseDefinition()
			if err != nil {
				return nil, err
			}
			unit.Functions = append(unit.Functions, def)
		case ast.EXTERN:
			proto, err := p.parseExtern()
			if err != nil {
				return nil, err
			}
			unit.Externs = append(unit.Externs, proto)
		default:
			def, err := p.parseTopLevelExpr()
			if err != nil {
				return nil, err
			}
			unit.Functions = append(unit.Functions, def)
		}
	}

	p.logger.Debug("parsed compilation unit", "unit", name,
		"functions", len(unit.Functions), "externs", len(unit.Externs))
	return unit, nil
}

// parseDefinition parses `def prototype body`.
func (p *Parser) parseDefinition() (*ast.FunctionDefinition, error) {
	p.s.Pop() // 'def'
	proto, err := p.parsePrototype()
	if err != nil {
		return nil, err
	}
	p.logger.Debug("parsing function body", "function", proto.Name, "params", proto.Arity())
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDefinition{Proto: proto, Body: body}, nil
}

// parseExtern parses `extern prototype`.
func (p *Parser) parseExtern() (*ast.FunctionPrototype, error) {
	p.s.Pop() // 'extern'
	return p.parsePrototype()
}

// parseTopLevelExpr wraps a bare expression in an anonymous, parameterless
// definition.
func (p *Parser) parseTopLevelExpr() (*ast.FunctionDefinition, error) {
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDefinition{Proto: ast.NewPrototype("", nil), Body: body}, nil
}

// parsePrototype parses `name ( params )`. Commas between parameter names are
// consumed when present but not required: f(a b) and f(a, b) are the same.
func (p *Parser) parsePrototype() (*ast.FunctionPrototype, error) {
	tok, err := p.expect(ast.IDENT, "expected function name in prototype")
	if err != nil {
		return nil, err
	}
	name, _ := tok.Ident()

	if _, err := p.expect(ast.LPAREN, "expected '(' in prototype"); err != nil {
		return nil, err
	}

	var params []string
	seen := make(map[string]bool)
	for p.peekIs(ast.IDENT) {
		param, _ := p.s.Peek().Ident()
		if seen[param] {
			return nil, p.errorf("duplicate parameter %q in prototype", param)
		}
		p.s.Pop()
		seen[param] = true
		params = append(params, param)
		p.skip(ast.COMMA)
	}

	if _, err := p.expect(ast.RPAREN, "expected ')' in prototype"); err != nil {
		return nil, err
	}
	return ast.NewPrototype(name, params), nil
}

// ── Expression parsing (precedence climbing) ──────────────────────────────────

// parseExpr parses a primary expression followed by any binary operator tail.
func (p *Parser) parseExpr() (ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseBinOpRHS(0, lhs)
}

// parseBinOpRHS folds operators of precedence >= minPrec onto lhs. A
// non-operator front token has precedence -1 and ends the expression.
func (p *Parser) parseBinOpRHS(minPrec int, lhs ast.Node) (ast.Node, error) {
	for {
		prec := p.s.Peek().Precedence()
		if prec < minPrec {
			return lhs, nil
		}

		opTok := p.s.Pop()
		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		// A tighter operator after rhs claims rhs as its own left operand.
		if prec < p.s.Peek().Precedence() {
			if err := p.enter(); err != nil {
				return nil, err
			}
			rhs, err = p.parseBinOpRHS(prec+1, rhs)
			p.leave()
			if err != nil {
				return nil, err
			}
		}

		op, ok := ast.OperatorFor(opTok.Kind())
		if !ok {
			return nil, &Error{Msg: "invalid binary operator", Found: opTok}
		}
		lhs = &ast.Binary{Op: op, Left: lhs, Right: rhs}
	}
}

// parsePrimary dispatches on the front token.
func (p *Parser) parsePrimary() (ast.Node, error) {
	switch p.s.Peek().Kind() {
	case ast.IDENT:
		return p.parseIdentifierExpr()
	case ast.NUMBER:
		v, _ := p.s.Pop().Number()
		return &ast.Number{Value: v}, nil
	case ast.LPAREN:
		return p.parseParenExpr()
	case ast.IF:
		return p.parseIfExpr()
	case ast.FOR:
		return p.parseForExpr()
	default:
		return nil, p.errorf("unknown token in primary expression")
	}
}

// parseIdentifierExpr parses a variable reference or, when the name is
// followed by '(', a call.
func (p *Parser) parseIdentifierExpr() (ast.Node, error) {
	name, _ := p.s.Pop().Ident()
	if !p.peekIs(ast.LPAREN) {
		return &ast.Variable{Name: name}, nil
	}
	p.s.Pop() // '('

	var args []ast.Node
	if !p.peekIs(ast.RPAREN) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.peekIs(ast.RPAREN) {
				break
			}
			if !p.peekIs(ast.COMMA) {
				return nil, p.errorf("expected ')' or ',' in argument list")
			}
			p.s.Pop() // ','
		}
	}
	p.s.Pop() // ')'

	return &ast.Call{Callee: name, Args: args}, nil
}

// parseParenExpr parses `( expr )`.
func (p *Parser) parseParenExpr() (ast.Node, error) {
	p.s.Pop() // '('
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.RPAREN, "expected ')'"); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseIfExpr parses `if cond then expr else expr [;]`.
func (p *Parser) parseIfExpr() (ast.Node, error) {
	p.s.Pop() // 'if'

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.THEN, "expected 'then'"); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.ELSE, "expected 'else'"); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skip(ast.SEMICOLON)

	return &ast.If{Cond: cond, Then: then, Else: els}, nil
}

// parseForExpr parses `for ident = start, end [, step] in body [;]`.
func (p *Parser) parseForExpr() (ast.Node, error) {
	p.s.Pop() // 'for'

	tok, err := p.expect(ast.IDENT, "expected identifier after 'for'")
	if err != nil {
		return nil, err
	}
	name, _ := tok.Ident()

	if _, err := p.expect(ast.ASSIGN, "expected '=' after for variable"); err != nil {
		return nil, err
	}
	start, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.COMMA, "expected ',' after for start value"); err != nil {
		return nil, err
	}
	end, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	var step ast.Node
	if p.peekIs(ast.COMMA) {
		p.s.Pop()
		if step, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(ast.IN, "expected 'in' after for"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skip(ast.SEMICOLON)

	return &ast.For{Var: name, Start: start, End: end, Step: step, Body: body}, nil
}
