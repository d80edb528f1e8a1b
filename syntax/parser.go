package syntax

import (
	"sablec/ast"
	"sablec/report"
)

// Parser is a recursive-descent parser producing a Sable syntax tree.  It is
// an external collaborator of the semantic core: the checker consumes the
// fully-formed crate node it produces.
type Parser struct {
	lexer *Lexer

	// tok is the token currently being examined.
	tok *Token

	// noStructLit suppresses struct literal parsing at the top level of a
	// control-flow condition, where `Name {` must read as the condition
	// followed by the body block.
	noStructLit bool
}

// NewParser creates a parser over the given source text.
func NewParser(src string) *Parser {
	return &Parser{lexer: NewLexer(src)}
}

// ParseString parses a crate from source text.  The paths identify the
// source in diagnostics.
func ParseString(absPath, reprPath, src string) (crate *ast.Crate, err *report.CompileError) {
	defer report.Catch(&err)

	p := NewParser(src)
	p.advance()

	crate = &ast.Crate{AbsPath: absPath, ReprPath: reprPath}
	for !p.got(TOK_EOF) {
		crate.Items = append(crate.Items, p.parseItem())
	}

	return crate, nil
}

// -----------------------------------------------------------------------------

// advance moves the parser to the next token.
func (p *Parser) advance() {
	p.tok = p.lexer.NextToken()
}

// got reports whether the current token has the given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// accept consumes the current token if it has the given kind.
func (p *Parser) accept(kind int) bool {
	if p.got(kind) {
		p.advance()
		return true
	}

	return false
}

// want asserts that the current token has the given kind, consumes it, and
// returns it.
func (p *Parser) want(kind int) *Token {
	if !p.got(kind) {
		p.reject()
	}

	tok := p.tok
	p.advance()
	return tok
}

// reject raises a syntax error on the current token.
func (p *Parser) reject() {
	panic(report.Raise(report.ErrSyntax, p.tok.Span, "unexpected %s", KindName(p.tok.Kind)))
}

// rejectWith raises a syntax error on the current token naming what was
// expected.
func (p *Parser) rejectWith(expected string) {
	panic(report.Raise(report.ErrSyntax, p.tok.Span, "expected %s, found %s", expected, KindName(p.tok.Kind)))
}
