package syntax

import (
	"sablec/ast"
	"sablec/report"
)

// assignOps maps compound-assignment token kinds to the operator applied.
var assignOps = map[int]ast.OpKind{
	TOK_ASSIGN:       ast.OpNone,
	TOK_PLUSASSIGN:   ast.OpAdd,
	TOK_MINUSASSIGN:  ast.OpSub,
	TOK_STARASSIGN:   ast.OpMul,
	TOK_DIVASSIGN:    ast.OpDiv,
	TOK_MODASSIGN:    ast.OpRem,
	TOK_AMPASSIGN:    ast.OpBitAnd,
	TOK_PIPEASSIGN:   ast.OpBitOr,
	TOK_CARETASSIGN:  ast.OpBitXor,
	TOK_LSHIFTASSIGN: ast.OpShl,
	TOK_RSHIFTASSIGN: ast.OpShr,
}

// parseBlock parses `{ stmts...; tail }`.
func (p *Parser) parseBlock() *ast.Block {
	start := p.want(TOK_LBRACE).Span

	// Struct literal suppression applies to a condition expression, never to
	// the statements of a block nested inside it.
	saved := p.noStructLit
	p.noStructLit = false
	defer func() { p.noStructLit = saved }()

	block := &ast.Block{}

	for !p.got(TOK_RBRACE) {
		switch p.tok.Kind {
		case TOK_LET:
			block.Stmts = append(block.Stmts, p.parseVarDecl())
		case TOK_BREAK:
			bstart := p.tok.Span
			p.advance()

			bs := &ast.BreakStmt{}
			if !p.got(TOK_SEMI) {
				bs.Value = p.parseExpr()
			}
			bend := p.want(TOK_SEMI).Span

			bs.ASTBase = ast.NewASTBase(report.NewSpanOver(bstart, bend))
			block.Stmts = append(block.Stmts, bs)
		case TOK_CONTINUE:
			cstart := p.tok.Span
			p.advance()
			cend := p.want(TOK_SEMI).Span

			block.Stmts = append(block.Stmts, &ast.ContinueStmt{
				ASTBase: ast.NewASTBase(report.NewSpanOver(cstart, cend)),
			})
		case TOK_RETURN:
			rstart := p.tok.Span
			p.advance()

			rs := &ast.ReturnStmt{}
			if !p.got(TOK_SEMI) {
				rs.Value = p.parseExpr()
			}
			rend := p.want(TOK_SEMI).Span

			rs.ASTBase = ast.NewASTBase(report.NewSpanOver(rstart, rend))
			block.Stmts = append(block.Stmts, rs)
		default:
			if stmt, tail := p.parseExprBasedStmt(); stmt != nil {
				block.Stmts = append(block.Stmts, stmt)
			} else {
				block.Tail = tail
			}
		}
	}

	end := p.want(TOK_RBRACE).Span
	block.ASTBase = ast.NewASTBase(report.NewSpanOver(start, end))
	return block
}

// parseVarDecl parses a let binding.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	start := p.want(TOK_LET).Span

	vd := &ast.VarDecl{Mut: p.accept(TOK_MUT)}

	name := p.want(TOK_IDENT)
	vd.Name = name.Value
	vd.NamePos = name.Span

	if p.accept(TOK_COLON) {
		vd.Type = p.parseType()
	}

	p.want(TOK_ASSIGN)
	vd.Init = p.parseExpr()

	end := p.want(TOK_SEMI).Span
	vd.ASTBase = ast.NewASTBase(report.NewSpanOver(start, end))
	return vd
}

// parseExprBasedStmt parses a statement that begins with an expression: an
// assignment, a compound assignment, an expression statement, or the block's
// tail expression.  Exactly one of the two results is non-nil; a non-nil
// second result is the tail.
func (p *Parser) parseExprBasedStmt() (ast.Stmt, ast.Expr) {
	expr := p.parseExpr()

	if op, ok := assignOps[p.tok.Kind]; ok {
		p.advance()

		rhs := p.parseExpr()
		end := p.want(TOK_SEMI).Span

		return &ast.Assign{
			ASTBase: ast.NewASTBase(report.NewSpanOver(expr.Span(), end)),
			LHS:     expr,
			RHS:     rhs,
			Op:      op,
		}, nil
	}

	if p.got(TOK_SEMI) {
		end := p.tok.Span
		p.advance()

		return &ast.ExprStmt{
			ASTBase: ast.NewASTBase(report.NewSpanOver(expr.Span(), end)),
			Expr:    expr,
		}, nil
	}

	// No semicolon: either the block's tail expression, or a block-like
	// expression standing as a statement.
	if p.got(TOK_RBRACE) {
		return nil, expr
	}

	switch expr.(type) {
	case *ast.Block, *ast.IfExpr, *ast.WhileExpr, *ast.LoopExpr:
		return &ast.ExprStmt{ASTBase: ast.NewASTBase(expr.Span()), Expr: expr}, nil
	}

	p.rejectWith("`;`")
	return nil, nil
}
