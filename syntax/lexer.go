package syntax

import (
	"strings"
	"unicode"

	"sablec/report"
)

// Lexer is responsible for tokenizing Sable source text.
type Lexer struct {
	src     []rune
	pos     int
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer over the given source text.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), tokBuff: &strings.Builder{}}
}

// symbolPatterns maps operator and punctuation strings to their token kind.
// The lexer matches maximally: the longest pattern that fits wins.
var symbolPatterns = map[string]int{
	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_STAR,
	"/": TOK_DIV,
	"%": TOK_MOD,

	"&":  TOK_AMP,
	"|":  TOK_PIPE,
	"^":  TOK_CARET,
	"<<": TOK_LSHIFT,
	">>": TOK_RSHIFT,

	"==": TOK_EQ,
	"!=": TOK_NEQ,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,

	"&&": TOK_LAND,
	"||": TOK_LOR,
	"!":  TOK_NOT,

	"=":   TOK_ASSIGN,
	"+=":  TOK_PLUSASSIGN,
	"-=":  TOK_MINUSASSIGN,
	"*=":  TOK_STARASSIGN,
	"/=":  TOK_DIVASSIGN,
	"%=":  TOK_MODASSIGN,
	"&=":  TOK_AMPASSIGN,
	"|=":  TOK_PIPEASSIGN,
	"^=":  TOK_CARETASSIGN,
	"<<=": TOK_LSHIFTASSIGN,
	">>=": TOK_RSHIFTASSIGN,

	"(":  TOK_LPAREN,
	")":  TOK_RPAREN,
	"{":  TOK_LBRACE,
	"}":  TOK_RBRACE,
	"[":  TOK_LBRACKET,
	"]":  TOK_RBRACKET,
	",":  TOK_COMMA,
	".":  TOK_DOT,
	";":  TOK_SEMI,
	":":  TOK_COLON,
	"::": TOK_DOUBLECOLON,
	"->": TOK_ARROW,
}

// NextToken retrieves the next token from the source text.  If the text has
// ended, this will be an EOF token.  Malformed input panics with a syntax
// error; the parser's Parse catches it.
func (l *Lexer) NextToken() *Token {
	for {
		c := l.peek()
		if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '/':
			if tok := l.lexCommentOrDiv(); tok != nil {
				return tok
			}
		case '\'':
			return l.lexCharLit()
		default:
			if isDecimalDigit(c) {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	return &Token{Kind: TOK_EOF, Span: l.hereSpan()}
}

// -----------------------------------------------------------------------------

// lexCommentOrDiv handles the ambiguity between line comments and the
// division operators.  It returns nil when it consumed a comment.
func (l *Lexer) lexCommentOrDiv() *Token {
	l.mark()
	l.eat()

	if l.peek() == '/' {
		for c := l.peek(); c != -1 && c != '\n'; c = l.peek() {
			l.skipInTok()
		}

		l.tokBuff.Reset()
		return nil
	}

	if l.peek() == '=' {
		l.eat()
		return l.makeToken(TOK_DIVASSIGN)
	}

	return l.makeToken(TOK_DIV)
}

// lexCharLit lexes a character literal.
func (l *Lexer) lexCharLit() *Token {
	l.mark()
	l.skipInTok() // opening quote

	c := l.peek()
	switch c {
	case -1, '\n':
		panic(report.Raise(report.ErrSyntax, l.getSpan(), "unclosed character literal"))
	case '\\':
		l.skipInTok()
		switch l.peek() {
		case 'n':
			l.tokBuff.WriteRune('\n')
		case 't':
			l.tokBuff.WriteRune('\t')
		case 'r':
			l.tokBuff.WriteRune('\r')
		case '0':
			l.tokBuff.WriteRune(0)
		case '\\', '\'':
			l.tokBuff.WriteRune(l.peek())
		default:
			panic(report.Raise(report.ErrSyntax, l.getSpan(), "unknown escape sequence"))
		}
		l.skipInTok()
	default:
		l.eat()
	}

	if l.peek() != '\'' {
		panic(report.Raise(report.ErrSyntax, l.getSpan(), "unclosed character literal"))
	}
	l.skipInTok() // closing quote

	return l.makeToken(TOK_CHARLIT)
}

// lexNumericLit lexes an integer literal: decimal, `0x`, `0o`, or `0b`, with
// optional `_` digit separators.  The raw text is retained for the integer
// literal resolver.
func (l *Lexer) lexNumericLit() *Token {
	l.mark()
	l.eat()

	isHex := false
	if l.tokBuff.String() == "0" {
		switch l.peek() {
		case 'x', 'X':
			isHex = true
			l.eat()
		case 'o', 'O', 'b', 'B':
			l.eat()
		}
	}

	for {
		c := l.peek()
		if c == '_' {
			l.skipInTok()
			continue
		}

		if isDecimalDigit(c) || (isHex && isHexDigit(c)) {
			l.eat()
			continue
		}

		break
	}

	return l.makeToken(TOK_INTLIT)
}

// lexIdentOrKeyword lexes an identifier, a keyword, or the `_` discard.
func (l *Lexer) lexIdentOrKeyword() *Token {
	l.mark()
	l.eat()

	for c := l.peek(); isIdentChar(c); c = l.peek() {
		l.eat()
	}

	text := l.tokBuff.String()
	if text == "_" {
		return l.makeToken(TOK_UNDERSCORE)
	}

	if kind, ok := keywordPatterns[text]; ok {
		return l.makeToken(kind)
	}

	return l.makeToken(TOK_IDENT)
}

// lexPunctOrOper lexes a punctuation or operator symbol maximally.
func (l *Lexer) lexPunctOrOper() *Token {
	l.mark()
	l.eat()

	kind, ok := symbolPatterns[l.tokBuff.String()]
	if !ok {
		panic(report.Raise(report.ErrSyntax, l.getSpan(), "unknown character `%s`", l.tokBuff.String()))
	}

	for {
		c := l.peek()
		if c == -1 {
			break
		}

		if longer, ok := symbolPatterns[l.tokBuff.String()+string(c)]; ok {
			l.eat()
			kind = longer
		} else {
			break
		}
	}

	return l.makeToken(kind)
}

// -----------------------------------------------------------------------------

// peek returns the next rune without consuming it, or -1 at end of text.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return -1
	}

	return l.src[l.pos]
}

// eat consumes the next rune into the token buffer.
func (l *Lexer) eat() {
	l.tokBuff.WriteRune(l.peek())
	l.skipInTok()
}

// skipInTok consumes the next rune without adding it to the token buffer but
// keeps the current token position open.
func (l *Lexer) skipInTok() {
	if l.peek() == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}

	l.pos++
}

// skip consumes a rune outside of any token.
func (l *Lexer) skip() {
	l.skipInTok()
}

// mark records the position where the current token begins.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// getSpan returns the span from the token mark to the current position.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// hereSpan returns a zero-width span at the current position.
func (l *Lexer) hereSpan() *report.TextSpan {
	return &report.TextSpan{StartLine: l.line, StartCol: l.col, EndLine: l.line, EndCol: l.col}
}

// makeToken builds a token from the token buffer and resets it.
func (l *Lexer) makeToken(kind int) *Token {
	tok := &Token{Kind: kind, Value: l.tokBuff.String(), Span: l.getSpan()}
	l.tokBuff.Reset()
	return tok
}

// -----------------------------------------------------------------------------

func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDecimalDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isFirstIdentChar(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentChar(c rune) bool {
	return isFirstIdentChar(c) || isDecimalDigit(c)
}
