package syntax

import (
	"sablec/ast"
	"sablec/report"
)

// parseType parses a syntactic type annotation.
func (p *Parser) parseType() ast.TypeNode {
	switch p.tok.Kind {
	case TOK_IDENT:
		tok := p.tok
		p.advance()
		return &ast.NamedTypeNode{ASTBase: ast.NewASTBase(tok.Span), Name: tok.Value}
	case TOK_SELFTYPE:
		tok := p.tok
		p.advance()
		return &ast.NamedTypeNode{ASTBase: ast.NewASTBase(tok.Span), Name: "Self"}
	case TOK_AMP:
		start := p.tok.Span
		p.advance()

		mut := p.accept(TOK_MUT)
		elem := p.parseType()

		return &ast.RefTypeNode{
			ASTBase: ast.NewASTBase(report.NewSpanOver(start, elem.Span())),
			Elem:    elem,
			Mut:     mut,
		}
	case TOK_LBRACKET:
		start := p.tok.Span
		p.advance()

		elem := p.parseType()
		p.want(TOK_SEMI)
		length := p.parseExpr()
		end := p.want(TOK_RBRACKET).Span

		return &ast.ArrayTypeNode{
			ASTBase: ast.NewASTBase(report.NewSpanOver(start, end)),
			Elem:    elem,
			Len:     length,
		}
	case TOK_LPAREN:
		start := p.tok.Span
		p.advance()
		end := p.want(TOK_RPAREN).Span

		return &ast.UnitTypeNode{ASTBase: ast.NewASTBase(report.NewSpanOver(start, end))}
	default:
		p.rejectWith("type")
		return nil
	}
}
