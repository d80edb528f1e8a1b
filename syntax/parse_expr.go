package syntax

import (
	"sablec/ast"
	"sablec/report"
)

// binOpLevels lists the binary operator precedence levels from loosest to
// tightest binding.
var binOpLevels = [][]struct {
	tok int
	op  ast.OpKind
}{
	{{TOK_LOR, ast.OpLogOr}},
	{{TOK_LAND, ast.OpLogAnd}},
	{
		{TOK_EQ, ast.OpEq}, {TOK_NEQ, ast.OpNe},
		{TOK_LT, ast.OpLt}, {TOK_GT, ast.OpGt},
		{TOK_LTEQ, ast.OpLe}, {TOK_GTEQ, ast.OpGe},
	},
	{{TOK_PIPE, ast.OpBitOr}},
	{{TOK_CARET, ast.OpBitXor}},
	{{TOK_AMP, ast.OpBitAnd}},
	{{TOK_LSHIFT, ast.OpShl}, {TOK_RSHIFT, ast.OpShr}},
	{{TOK_PLUS, ast.OpAdd}, {TOK_MINUS, ast.OpSub}},
	{{TOK_STAR, ast.OpMul}, {TOK_DIV, ast.OpDiv}, {TOK_MOD, ast.OpRem}},
}

// parseExpr parses an expression.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinaryExpr(0)
}

// parseCondExpr parses a control-flow condition: struct literals are
// suppressed at the top level so `while x { ... }` reads the brace as the
// loop body.
func (p *Parser) parseCondExpr() ast.Expr {
	saved := p.noStructLit
	p.noStructLit = true
	defer func() { p.noStructLit = saved }()

	return p.parseExpr()
}

// parseBinaryExpr parses the binary operator level at the given index,
// associating left.
func (p *Parser) parseBinaryExpr(level int) ast.Expr {
	if level == len(binOpLevels) {
		return p.parseCastExpr()
	}

	lhs := p.parseBinaryExpr(level + 1)

	for {
		matched := false
		for _, entry := range binOpLevels[level] {
			if p.got(entry.tok) {
				opPos := p.tok.Span
				p.advance()

				rhs := p.parseBinaryExpr(level + 1)
				lhs = &ast.BinaryOp{
					ASTBase: ast.NewASTBase(report.NewSpanOver(lhs.Span(), rhs.Span())),
					Op:      entry.op,
					OpPos:   opPos,
					Lhs:     lhs,
					Rhs:     rhs,
				}

				matched = true
				break
			}
		}

		if !matched {
			return lhs
		}
	}
}

// parseCastExpr parses `unary (as Type)*`.
func (p *Parser) parseCastExpr() ast.Expr {
	expr := p.parseUnaryExpr()

	for p.accept(TOK_AS) {
		target := p.parseType()
		expr = &ast.CastExpr{
			ASTBase: ast.NewASTBase(report.NewSpanOver(expr.Span(), target.Span())),
			Src:     expr,
			Target:  target,
		}
	}

	return expr
}

// parseUnaryExpr parses prefix operators: negation, logical not, deref, and
// borrows.
func (p *Parser) parseUnaryExpr() ast.Expr {
	switch p.tok.Kind {
	case TOK_MINUS:
		start := p.tok.Span
		p.advance()

		operand := p.parseUnaryExpr()
		return &ast.UnaryOp{
			ASTBase: ast.NewASTBase(report.NewSpanOver(start, operand.Span())),
			Op:      ast.OpNeg,
			Operand: operand,
		}
	case TOK_NOT:
		start := p.tok.Span
		p.advance()

		operand := p.parseUnaryExpr()
		return &ast.UnaryOp{
			ASTBase: ast.NewASTBase(report.NewSpanOver(start, operand.Span())),
			Op:      ast.OpNot,
			Operand: operand,
		}
	case TOK_STAR:
		start := p.tok.Span
		p.advance()

		operand := p.parseUnaryExpr()
		return &ast.Deref{
			ASTBase: ast.NewASTBase(report.NewSpanOver(start, operand.Span())),
			Operand: operand,
		}
	case TOK_AMP:
		start := p.tok.Span
		p.advance()

		mut := p.accept(TOK_MUT)
		operand := p.parseUnaryExpr()
		return &ast.Borrow{
			ASTBase: ast.NewASTBase(report.NewSpanOver(start, operand.Span())),
			Mut:     mut,
			Operand: operand,
		}
	default:
		return p.parsePostfixExpr()
	}
}

// parsePostfixExpr parses an atom followed by any number of call, method
// call, field access, and index suffixes.
func (p *Parser) parsePostfixExpr() ast.Expr {
	expr := p.parseAtom()

	for {
		switch p.tok.Kind {
		case TOK_LPAREN:
			p.advance()
			args, end := p.parseArgs(TOK_RPAREN)

			expr = &ast.CallExpr{
				ASTBase: ast.NewASTBase(report.NewSpanOver(expr.Span(), end)),
				Func:    expr,
				Args:    args,
			}
		case TOK_DOT:
			p.advance()
			name := p.want(TOK_IDENT)

			if p.got(TOK_LPAREN) {
				p.advance()
				args, end := p.parseArgs(TOK_RPAREN)

				expr = &ast.MethodCall{
					ASTBase: ast.NewASTBase(report.NewSpanOver(expr.Span(), end)),
					Recv:    expr,
					Name:    name.Value,
					NamePos: name.Span,
					Args:    args,
				}
			} else {
				expr = &ast.FieldAccess{
					ASTBase:  ast.NewASTBase(report.NewSpanOver(expr.Span(), name.Span)),
					Base:     expr,
					Field:    name.Value,
					FieldPos: name.Span,
				}
			}
		case TOK_LBRACKET:
			p.advance()

			index := p.parseGrouped(func() ast.Expr { return p.parseExpr() })
			end := p.want(TOK_RBRACKET).Span

			expr = &ast.IndexExpr{
				ASTBase: ast.NewASTBase(report.NewSpanOver(expr.Span(), end)),
				Base:    expr,
				Index:   index,
			}
		default:
			return expr
		}
	}
}

// parseArgs parses a comma-separated argument list up to the closing token
// and returns the arguments and the closer's span.
func (p *Parser) parseArgs(closer int) ([]ast.Expr, *report.TextSpan) {
	var args []ast.Expr

	for !p.got(closer) {
		args = append(args, p.parseGrouped(func() ast.Expr { return p.parseExpr() }))

		if !p.accept(TOK_COMMA) {
			break
		}
	}

	return args, p.want(closer).Span
}

// parseGrouped parses a sub-expression inside brackets where the struct
// literal suppression of an enclosing condition no longer applies.
func (p *Parser) parseGrouped(parse func() ast.Expr) ast.Expr {
	saved := p.noStructLit
	p.noStructLit = false
	expr := parse()
	p.noStructLit = saved

	return expr
}

// parseAtom parses the tightest-binding expressions.
func (p *Parser) parseAtom() ast.Expr {
	switch p.tok.Kind {
	case TOK_INTLIT:
		tok := p.tok
		p.advance()
		return &ast.Literal{ASTBase: ast.NewASTBase(tok.Span), Kind: ast.IntLit, Text: tok.Value}
	case TOK_TRUE, TOK_FALSE:
		tok := p.tok
		p.advance()
		return &ast.Literal{ASTBase: ast.NewASTBase(tok.Span), Kind: ast.BoolLit, Text: tok.Value}
	case TOK_CHARLIT:
		tok := p.tok
		p.advance()
		return &ast.Literal{ASTBase: ast.NewASTBase(tok.Span), Kind: ast.CharLit, Text: tok.Value}
	case TOK_SELF:
		tok := p.tok
		p.advance()
		return &ast.Identifier{ASTBase: ast.NewASTBase(tok.Span), Name: "self"}
	case TOK_UNDERSCORE:
		tok := p.tok
		p.advance()
		return &ast.Wildcard{ASTBase: ast.NewASTBase(tok.Span)}
	case TOK_LPAREN:
		start := p.tok.Span
		p.advance()

		if p.got(TOK_RPAREN) {
			end := p.tok.Span
			p.advance()
			return &ast.Literal{
				ASTBase: ast.NewASTBase(report.NewSpanOver(start, end)),
				Kind:    ast.UnitLit,
				Text:    "()",
			}
		}

		expr := p.parseGrouped(func() ast.Expr { return p.parseExpr() })
		p.want(TOK_RPAREN)
		return expr
	case TOK_LBRACKET:
		return p.parseArrayLit()
	case TOK_IDENT:
		return p.parseNameExpr()
	case TOK_IF:
		return p.parseIfExpr()
	case TOK_WHILE:
		return p.parseWhileExpr()
	case TOK_LOOP:
		start := p.tok.Span
		p.advance()

		body := p.parseBlock()
		return &ast.LoopExpr{
			ASTBase: ast.NewASTBase(report.NewSpanOver(start, body.Span())),
			Body:    body,
		}
	case TOK_LBRACE:
		return p.parseBlock()
	default:
		p.rejectWith("expression")
		return nil
	}
}

// parseNameExpr parses an identifier and its path and struct-literal forms.
func (p *Parser) parseNameExpr() ast.Expr {
	name := p.want(TOK_IDENT)

	if p.got(TOK_DOUBLECOLON) {
		p.advance()
		member := p.want(TOK_IDENT)

		return &ast.PathExpr{
			ASTBase:   ast.NewASTBase(report.NewSpanOver(name.Span, member.Span)),
			Root:      name.Value,
			RootPos:   name.Span,
			Member:    member.Value,
			MemberPos: member.Span,
		}
	}

	if p.got(TOK_LBRACE) && !p.noStructLit {
		return p.parseStructLit(name)
	}

	return &ast.Identifier{ASTBase: ast.NewASTBase(name.Span), Name: name.Value}
}

// parseStructLit parses `Name { field: value, ... }`.
func (p *Parser) parseStructLit(name *Token) *ast.StructLit {
	p.want(TOK_LBRACE)

	sl := &ast.StructLit{Name: name.Value, NamePos: name.Span}

	for !p.got(TOK_RBRACE) {
		fieldName := p.want(TOK_IDENT)
		p.want(TOK_COLON)

		sl.Fields = append(sl.Fields, ast.StructLitField{
			Name:    fieldName.Value,
			NamePos: fieldName.Span,
			Value:   p.parseGrouped(func() ast.Expr { return p.parseExpr() }),
		})

		if !p.accept(TOK_COMMA) {
			break
		}
	}

	end := p.want(TOK_RBRACE).Span
	sl.ASTBase = ast.NewASTBase(report.NewSpanOver(name.Span, end))
	return sl
}

// parseArrayLit parses `[]`, `[a, b, c]`, or `[value; N]`.
func (p *Parser) parseArrayLit() ast.Expr {
	start := p.want(TOK_LBRACKET).Span

	if p.got(TOK_RBRACKET) {
		end := p.tok.Span
		p.advance()

		return &ast.ArrayLit{ASTBase: ast.NewASTBase(report.NewSpanOver(start, end))}
	}

	first := p.parseGrouped(func() ast.Expr { return p.parseExpr() })

	if p.accept(TOK_SEMI) {
		count := p.parseGrouped(func() ast.Expr { return p.parseExpr() })
		end := p.want(TOK_RBRACKET).Span

		return &ast.ArrayRepeat{
			ASTBase: ast.NewASTBase(report.NewSpanOver(start, end)),
			Value:   first,
			Count:   count,
		}
	}

	elems := []ast.Expr{first}
	for p.accept(TOK_COMMA) {
		if p.got(TOK_RBRACKET) {
			break
		}

		elems = append(elems, p.parseGrouped(func() ast.Expr { return p.parseExpr() }))
	}

	end := p.want(TOK_RBRACKET).Span
	return &ast.ArrayLit{
		ASTBase: ast.NewASTBase(report.NewSpanOver(start, end)),
		Elems:   elems,
	}
}

// parseIfExpr parses an if/else chain.
func (p *Parser) parseIfExpr() *ast.IfExpr {
	start := p.want(TOK_IF).Span

	ie := &ast.IfExpr{Cond: p.parseCondExpr()}
	ie.Then = p.parseBlock()

	end := ie.Then.Span()
	if p.accept(TOK_ELSE) {
		if p.got(TOK_IF) {
			ie.Else = p.parseIfExpr()
		} else {
			ie.Else = p.parseBlock()
		}

		end = ie.Else.Span()
	}

	ie.ASTBase = ast.NewASTBase(report.NewSpanOver(start, end))
	return ie
}

// parseWhileExpr parses a while loop.
func (p *Parser) parseWhileExpr() *ast.WhileExpr {
	start := p.want(TOK_WHILE).Span

	we := &ast.WhileExpr{Cond: p.parseCondExpr()}
	we.Body = p.parseBlock()

	we.ASTBase = ast.NewASTBase(report.NewSpanOver(start, we.Body.Span()))
	return we
}
