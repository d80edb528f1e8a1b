package syntax

import (
	"sablec/ast"
	"sablec/report"
	"sablec/types"
)

// parseItem parses a top-level item.
func (p *Parser) parseItem() ast.Item {
	switch p.tok.Kind {
	case TOK_FN:
		return p.parseFuncDef(false)
	case TOK_STRUCT:
		return p.parseStructDef()
	case TOK_ENUM:
		return p.parseEnumDef()
	case TOK_TRAIT:
		return p.parseTraitDef()
	case TOK_IMPL:
		return p.parseImplBlock()
	case TOK_CONST:
		return p.parseConstDecl(false)
	default:
		p.rejectWith("item")
		return nil
	}
}

// parseFuncDef parses a function definition.  Inside a trait, the body may
// be replaced by a semicolon to declare a required signature.
func (p *Parser) parseFuncDef(inTrait bool) *ast.FuncDef {
	start := p.want(TOK_FN).Span
	name := p.want(TOK_IDENT)

	fd := &ast.FuncDef{
		Name:     name.Value,
		NamePos:  name.Span,
		SelfKind: types.SelfNone,
	}

	p.want(TOK_LPAREN)
	p.parseParams(fd)
	p.want(TOK_RPAREN)

	if p.accept(TOK_ARROW) {
		fd.ReturnType = p.parseType()
	}

	var end *report.TextSpan
	if inTrait && p.got(TOK_SEMI) {
		end = p.tok.Span
		p.advance()
	} else {
		fd.Body = p.parseBlock()
		end = fd.Body.Span()
	}

	fd.ASTBase = ast.NewASTBase(report.NewSpanOver(start, end))
	return fd
}

// parseParams parses the parenthesized parameter list of a function,
// including an optional leading self parameter.
func (p *Parser) parseParams(fd *ast.FuncDef) {
	if p.got(TOK_RPAREN) {
		return
	}

	// A leading `&self` or `&mut self` declares a method.
	if p.got(TOK_AMP) {
		p.advance()

		fd.SelfKind = types.SelfRef
		if p.accept(TOK_MUT) {
			fd.SelfKind = types.SelfRefMut
		}

		p.want(TOK_SELF)

		if !p.accept(TOK_COMMA) {
			return
		}
	}

	for {
		mut := p.accept(TOK_MUT)
		name := p.want(TOK_IDENT)
		p.want(TOK_COLON)

		fd.Params = append(fd.Params, &ast.Param{
			Name:    name.Value,
			NamePos: name.Span,
			Mut:     mut,
			Type:    p.parseType(),
		})

		if !p.accept(TOK_COMMA) {
			break
		}
	}
}

// parseStructDef parses a struct declaration.
func (p *Parser) parseStructDef() *ast.StructDef {
	start := p.want(TOK_STRUCT).Span
	name := p.want(TOK_IDENT)

	sd := &ast.StructDef{Name: name.Value, NamePos: name.Span}

	p.want(TOK_LBRACE)
	for !p.got(TOK_RBRACE) {
		fieldName := p.want(TOK_IDENT)
		p.want(TOK_COLON)

		sd.Fields = append(sd.Fields, ast.FieldDef{
			Name:    fieldName.Value,
			NamePos: fieldName.Span,
			Type:    p.parseType(),
		})

		if !p.accept(TOK_COMMA) {
			break
		}
	}
	end := p.want(TOK_RBRACE).Span

	sd.ASTBase = ast.NewASTBase(report.NewSpanOver(start, end))
	return sd
}

// parseEnumDef parses an enum declaration with unit variants.
func (p *Parser) parseEnumDef() *ast.EnumDef {
	start := p.want(TOK_ENUM).Span
	name := p.want(TOK_IDENT)

	ed := &ast.EnumDef{Name: name.Value, NamePos: name.Span}

	p.want(TOK_LBRACE)
	for !p.got(TOK_RBRACE) {
		variant := p.want(TOK_IDENT)
		ed.Variants = append(ed.Variants, ast.VariantDef{Name: variant.Value, NamePos: variant.Span})

		if !p.accept(TOK_COMMA) {
			break
		}
	}
	end := p.want(TOK_RBRACE).Span

	ed.ASTBase = ast.NewASTBase(report.NewSpanOver(start, end))
	return ed
}

// parseTraitDef parses a trait declaration.
func (p *Parser) parseTraitDef() *ast.TraitDef {
	start := p.want(TOK_TRAIT).Span
	name := p.want(TOK_IDENT)

	td := &ast.TraitDef{Name: name.Value, NamePos: name.Span}

	p.want(TOK_LBRACE)
	for !p.got(TOK_RBRACE) {
		switch p.tok.Kind {
		case TOK_FN:
			td.Members = append(td.Members, p.parseFuncDef(true))
		case TOK_CONST:
			td.Members = append(td.Members, p.parseConstDecl(true))
		default:
			p.rejectWith("trait member")
		}
	}
	end := p.want(TOK_RBRACE).Span

	td.ASTBase = ast.NewASTBase(report.NewSpanOver(start, end))
	return td
}

// parseImplBlock parses an inherent impl `impl T { ... }` or a trait impl
// `impl Tr for T { ... }`.
func (p *Parser) parseImplBlock() *ast.ImplBlock {
	start := p.want(TOK_IMPL).Span

	ib := &ast.ImplBlock{}

	// The head is either the target type or the trait name; only a trailing
	// `for` disambiguates.
	head := p.want(TOK_IDENT)
	if p.accept(TOK_FOR) {
		ib.TraitName = head.Value
		ib.TraitPos = head.Span
		ib.Target = p.parseType()
	} else {
		ib.Target = &ast.NamedTypeNode{ASTBase: ast.NewASTBase(head.Span), Name: head.Value}
	}

	p.want(TOK_LBRACE)
	for !p.got(TOK_RBRACE) {
		switch p.tok.Kind {
		case TOK_FN:
			ib.Members = append(ib.Members, p.parseFuncDef(false))
		case TOK_CONST:
			ib.Members = append(ib.Members, p.parseConstDecl(false))
		default:
			p.rejectWith("impl member")
		}
	}
	end := p.want(TOK_RBRACE).Span

	ib.ASTBase = ast.NewASTBase(report.NewSpanOver(start, end))
	return ib
}

// parseConstDecl parses a constant declaration.  Inside a trait, the value
// may be omitted to declare a required constant.
func (p *Parser) parseConstDecl(inTrait bool) *ast.ConstDecl {
	start := p.want(TOK_CONST).Span
	name := p.want(TOK_IDENT)
	p.want(TOK_COLON)

	cd := &ast.ConstDecl{
		Name:    name.Value,
		NamePos: name.Span,
		Type:    p.parseType(),
	}

	if !inTrait || p.got(TOK_ASSIGN) {
		p.want(TOK_ASSIGN)
		cd.Value = p.parseExpr()
	}

	end := p.want(TOK_SEMI).Span
	cd.ASTBase = ast.NewASTBase(report.NewSpanOver(start, end))
	return cd
}
