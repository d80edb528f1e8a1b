package syntax

import "sablec/report"

// Token represents a single lexical token of Sable source text.
type Token struct {
	// Kind must be one of the enumerated token kinds.
	Kind int

	// Value is the raw source text of the token.
	Value string

	// Span is the position of the token in the source text.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_EOF = iota

	// Literals and identifiers.
	TOK_IDENT
	TOK_INTLIT
	TOK_CHARLIT

	// Keywords.
	TOK_FN
	TOK_LET
	TOK_MUT
	TOK_CONST
	TOK_STRUCT
	TOK_ENUM
	TOK_TRAIT
	TOK_IMPL
	TOK_FOR
	TOK_SELF
	TOK_SELFTYPE
	TOK_IF
	TOK_ELSE
	TOK_WHILE
	TOK_LOOP
	TOK_BREAK
	TOK_CONTINUE
	TOK_RETURN
	TOK_AS
	TOK_TRUE
	TOK_FALSE

	// Operators.
	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD
	TOK_AMP
	TOK_PIPE
	TOK_CARET
	TOK_LSHIFT
	TOK_RSHIFT
	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ
	TOK_LAND
	TOK_LOR
	TOK_NOT

	// Assignment.
	TOK_ASSIGN
	TOK_PLUSASSIGN
	TOK_MINUSASSIGN
	TOK_STARASSIGN
	TOK_DIVASSIGN
	TOK_MODASSIGN
	TOK_AMPASSIGN
	TOK_PIPEASSIGN
	TOK_CARETASSIGN
	TOK_LSHIFTASSIGN
	TOK_RSHIFTASSIGN

	// Punctuation.
	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_COMMA
	TOK_DOT
	TOK_SEMI
	TOK_COLON
	TOK_DOUBLECOLON
	TOK_ARROW
	TOK_UNDERSCORE
)

// keywordPatterns maps keyword strings to their token kind.
var keywordPatterns = map[string]int{
	"fn":       TOK_FN,
	"let":      TOK_LET,
	"mut":      TOK_MUT,
	"const":    TOK_CONST,
	"struct":   TOK_STRUCT,
	"enum":     TOK_ENUM,
	"trait":    TOK_TRAIT,
	"impl":     TOK_IMPL,
	"for":      TOK_FOR,
	"self":     TOK_SELF,
	"Self":     TOK_SELFTYPE,
	"if":       TOK_IF,
	"else":     TOK_ELSE,
	"while":    TOK_WHILE,
	"loop":     TOK_LOOP,
	"break":    TOK_BREAK,
	"continue": TOK_CONTINUE,
	"return":   TOK_RETURN,
	"as":       TOK_AS,
	"true":     TOK_TRUE,
	"false":    TOK_FALSE,
}

// tokKindNames maps token kinds to the names used in syntax errors.
var tokKindNames = map[int]string{
	TOK_EOF:     "end of file",
	TOK_IDENT:   "identifier",
	TOK_INTLIT:  "integer literal",
	TOK_CHARLIT: "character literal",

	TOK_LPAREN: "`(`", TOK_RPAREN: "`)`",
	TOK_LBRACE: "`{`", TOK_RBRACE: "`}`",
	TOK_LBRACKET: "`[`", TOK_RBRACKET: "`]`",
	TOK_COMMA: "`,`", TOK_DOT: "`.`", TOK_SEMI: "`;`",
	TOK_COLON: "`:`", TOK_DOUBLECOLON: "`::`", TOK_ARROW: "`->`",
	TOK_ASSIGN: "`=`", TOK_UNDERSCORE: "`_`",
}

// KindName returns the diagnostic name for a token kind.
func KindName(kind int) string {
	if name, ok := tokKindNames[kind]; ok {
		return name
	}

	for pat, k := range symbolPatterns {
		if k == kind {
			return "`" + pat + "`"
		}
	}

	for pat, k := range keywordPatterns {
		if k == kind {
			return "`" + pat + "`"
		}
	}

	return "token"
}
