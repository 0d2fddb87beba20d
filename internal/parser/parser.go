// Package parser implements an LL(2) recursive-descent parser for
// ECMA-262 3rd edition source text, producing internal/ast nodes.
package parser

import (
	"fmt"

	"github.com/es3vm/es3vm/internal/ast"
	"github.com/es3vm/es3vm/internal/compat"
	"github.com/es3vm/es3vm/internal/lexer"
	"github.com/es3vm/es3vm/internal/token"
)

// Error is a single parse diagnostic. The parser itself only ever sees
// a raw source string, never a file name, so Error() renders just
// `line:col: message` — pkg/es3.CompileError is the layer that knows
// the active file name (via Interpreter.SetFileName) and renders
// spec.md §4.3/§7's `<file>:line: ` prefix around this message.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Message) }

// Parser holds a one-token lookahead buffer over a Lexer (plus the
// current token's own "preceded by newline" flag, both needed for
// automatic semicolon insertion) and tracks the few pieces of ambient
// parse state ECMA-262's grammar restrictions require: whether `in` is
// currently excluded from RelationalExpression (the NoIn variant used
// by a for-statement's own init clause), and how deep inside a function
// body the parser currently is (so a top-level `return` can be
// rejected).
type Parser struct {
	lex *lexer.Lexer

	cur, peek   token.Token
	curNewline  bool // true if cur was preceded by a line terminator
	peekNewline bool

	// curPreSlash/peekPreSlash capture the lexer state immediately
	// before a SLASH or SLASHASSIGN token was scanned, so that a
	// context that turns out to expect a PrimaryExpression (not a
	// division operator) can re-lex from there as a regex literal
	// (spec.md §4.1's rescan-as-regex hook).
	curPreSlash  *lexer.State
	peekPreSlash *lexer.State

	errors []*Error

	noIn      bool
	funcDepth int
}

// New creates a Parser reading from source.
func New(source string, opts ...lexer.Option) *Parser {
	p := &Parser{lex: lexer.New(source, opts...)}
	p.advance()
	p.advance()
	return p
}

// NewFromLexer wraps an already-constructed Lexer (e.g. one built with
// a specific compat.Set by a caller that also wants the raw token
// stream for tooling like `es3 lex`).
func NewFromLexer(l *lexer.Lexer) *Parser {
	p := &Parser{lex: l}
	p.advance()
	p.advance()
	return p
}

// Errors returns every diagnostic accumulated so far.
func (p *Parser) Errors() []*Error { return p.errors }

func (p *Parser) addError(format string, args ...interface{}) {
	p.errors = append(p.errors, &Error{Message: fmt.Sprintf(format, args...), Pos: p.cur.Pos})
}

// advance shifts the lookahead window forward by one token.
func (p *Parser) advance() {
	p.cur, p.curNewline, p.curPreSlash = p.peek, p.peekNewline, p.peekPreSlash
	p.scanPeek()
}

// scanPeek reads the next peek token, snapshotting the lexer state
// beforehand whenever the result could plausibly have been a regex
// literal instead.
func (p *Parser) scanPeek() {
	isSlash := func(t token.Type) bool { return t == token.SLASH || t == token.SLASHASSIGN }
	state := p.lex.Save()
	tok := p.lex.Next()
	if isSlash(tok.Type) {
		saved := state
		p.peekPreSlash = &saved
	} else {
		p.peekPreSlash = nil
	}
	p.peek = tok
	p.peekNewline = tok.PrecededByNewline
}

// rescanCurAsRegex re-lexes the current token as a regex literal,
// requiring that cur was a SLASH or SLASHASSIGN token and that its
// pre-token lexer state was captured. It also re-derives peek, since
// rescanning moves the lexer's read position.
func (p *Parser) rescanCurAsRegex() (token.Token, bool) {
	if p.curPreSlash == nil {
		return token.Token{}, false
	}
	newline := p.curNewline
	regexTok := p.lex.RescanAsRegex(*p.curPreSlash)
	regexTok.PrecededByNewline = newline
	p.cur = regexTok
	p.curPreSlash = nil
	p.scanPeek()
	return regexTok, true
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Type == t }

// expect advances past cur if it has type t, else records an error and
// does not advance (so the caller can attempt error recovery or simply
// continue, matching the teacher's non-panicking accumulate-and-continue
// error style).
func (p *Parser) expect(t token.Type) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	p.addError("expected %s, got %s (%q)", t, p.cur.Type, p.cur.Literal)
	return false
}

// consumeSemicolon implements automatic semicolon insertion (ECMA-262
// §7.9): an explicit `;` is always consumed; otherwise ASI fires when
// the next token is `}`, is EOF, or was preceded by a line terminator.
func (p *Parser) consumeSemicolon() {
	if p.curIs(token.SEMICOLON) {
		p.advance()
		return
	}
	if p.curIs(token.RBRACE) || p.curIs(token.EOF) || p.curNewline {
		return
	}
	p.addError("expected ; (or a line break) before %q", p.cur.Literal)
}

// Parse parses a complete program.
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		} else {
			p.advance() // avoid an infinite loop on an unparseable token
		}
	}
	return prog
}

// ParseProgram is a convenience entry point mirroring the teacher's
// New(l).ParseProgram() idiom.
func ParseProgram(source string, opts ...lexer.Option) (*ast.Program, []*Error) {
	p := New(source, opts...)
	prog := p.Parse()
	return prog, p.errors
}

// WithCompat is a lexer.Option re-exported here so callers constructing
// a Parser directly don't need to import internal/lexer just to set
// compatibility flags.
func WithCompat(c *compat.Set) lexer.Option { return lexer.WithCompat(c) }
