package lower

import (
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"sablec/ast"
	"sablec/report"
	"sablec/types"
)

// lowerBlock lowers a block expression.  Statements after the first
// divergent one are unreachable and never emitted.
func (l *Lowerer) lowerBlock(block *ast.Block) value.Value {
	l.pushScope()
	defer l.popScope()

	for _, stmt := range block.Stmts {
		l.lowerStmt(stmt)

		if l.block.Term != nil {
			return nil
		}
	}

	if block.Tail == nil {
		return nil
	}

	return l.lowerExpr(block.Tail)
}

// lowerStmt lowers a single statement.
func (l *Lowerer) lowerStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		l.lowerVarDecl(v)
	case *ast.Assign:
		l.lowerAssign(v)
	case *ast.BreakStmt:
		l.lowerBreak(v)
	case *ast.ContinueStmt:
		if l.block.Term == nil {
			l.block.NewBr(l.loops[len(l.loops)-1].header)
		}
	case *ast.ReturnStmt:
		l.lowerReturn(v)
	case *ast.ExprStmt:
		l.lowerExpr(v.Expr)
	default:
		report.ReportICE("unknown statement")
	}
}

// lowerVarDecl gives the binding its own named entry slot; shadowing
// bindings get distinct slots, so the slot a name resolves to is always the
// innermost one.
func (l *Lowerer) lowerVarDecl(vd *ast.VarDecl) {
	t := l.table.TypeOf(vd.Init)
	v := l.lowerExpr(vd.Init)

	if types.IsDivergent(t) {
		return
	}

	if types.IsUnit(t) {
		l.defineLocal(vd.Name, nil)
		return
	}

	slot := l.entryAlloca(l.convType(t), l.localName(vd.Name))
	l.ensureBlock()
	l.block.NewStore(l.operand(v, t), slot)
	l.defineLocal(vd.Name, slot)
}

// lowerAssign lowers plain, destructuring, and compound assignments.
func (l *Lowerer) lowerAssign(as *ast.Assign) {
	if as.Op != ast.OpNone {
		l.lowerCompoundAssign(as)
		return
	}

	switch lhs := as.LHS.(type) {
	case *ast.Wildcard:
		// Evaluate for effect and discard.
		l.lowerExpr(as.RHS)
	case *ast.StructLit:
		l.lowerDestructure(lhs, as.RHS)
	default:
		addr := l.lowerAddr(as.LHS)

		t := l.table.TypeOf(as.RHS)
		v := l.lowerExpr(as.RHS)
		if isUnitLike(t) {
			return
		}

		l.ensureBlock()
		l.block.NewStore(l.operand(v, t), addr)
	}
}

// lowerDestructure lowers `Point { x: a, y: _ } = rhs`: the right-hand side
// lands in a temporary, then each listed field moves into its target.
func (l *Lowerer) lowerDestructure(lhs *ast.StructLit, rhs ast.Expr) {
	st := l.table.TypeOf(lhs).(*types.StructType)
	llty := l.convType(st)

	tmp := l.entryAlloca(llty, l.localName("destructure"))
	v := l.operand(l.lowerExpr(rhs), st)
	l.ensureBlock()
	l.block.NewStore(v, tmp)

	for _, field := range lhs.Fields {
		if _, ok := field.Value.(*ast.Wildcard); ok {
			continue
		}

		idx := st.FieldIndex(field.Name)
		ft := st.Fields[idx].Type
		if isUnitLike(ft) {
			continue
		}

		target := l.lowerAddr(field.Value)
		l.ensureBlock()

		ptr := l.block.NewGetElementPtr(llty, tmp,
			zero64(), constant.NewInt(lltypes.I32, int64(idx)))
		l.block.NewStore(l.block.NewLoad(l.convType(ft), ptr), target)
	}
}

// lowerCompoundAssign lowers `lhs op= rhs`.  The target address is computed
// exactly once.
func (l *Lowerer) lowerCompoundAssign(as *ast.Assign) {
	t := l.table.TypeOf(as.LHS)
	addr := l.lowerAddr(as.LHS)

	l.ensureBlock()
	cur := l.block.NewLoad(l.convType(t), addr)

	rt := l.table.TypeOf(as.RHS)
	rhs := l.operand(l.lowerExpr(as.RHS), rt)
	l.ensureBlock()

	var combined value.Value
	switch as.Op {
	case ast.OpAdd:
		combined = l.block.NewAdd(cur, rhs)
	case ast.OpSub:
		combined = l.block.NewSub(cur, rhs)
	case ast.OpMul:
		combined = l.block.NewMul(cur, rhs)
	case ast.OpDiv:
		if intSigned(t) {
			combined = l.block.NewSDiv(cur, rhs)
		} else {
			combined = l.block.NewUDiv(cur, rhs)
		}
	case ast.OpRem:
		if intSigned(t) {
			combined = l.block.NewSRem(cur, rhs)
		} else {
			combined = l.block.NewURem(cur, rhs)
		}
	case ast.OpBitAnd:
		combined = l.block.NewAnd(cur, rhs)
	case ast.OpBitOr:
		combined = l.block.NewOr(cur, rhs)
	case ast.OpBitXor:
		combined = l.block.NewXor(cur, rhs)
	case ast.OpShl:
		combined = l.block.NewShl(cur, l.matchShiftAmount(rhs, rt, t))
	case ast.OpShr:
		amount := l.matchShiftAmount(rhs, rt, t)
		if intSigned(t) {
			combined = l.block.NewAShr(cur, amount)
		} else {
			combined = l.block.NewLShr(cur, amount)
		}
	default:
		report.ReportICE("unknown compound assignment operator")
	}

	l.block.NewStore(combined, addr)
}

// lowerBreak stores the break value into the loop's yield slot, if any, and
// branches to the exit.
func (l *Lowerer) lowerBreak(bs *ast.BreakStmt) {
	frame := l.loops[len(l.loops)-1]

	if bs.Value != nil {
		t := l.table.TypeOf(bs.Value)
		v := l.lowerExpr(bs.Value)

		if frame.slot != nil && !isUnitLike(t) {
			l.ensureBlock()
			l.block.NewStore(l.operand(v, t), frame.slot)
		}
	}

	if l.block.Term == nil {
		l.block.NewBr(frame.exit)
	}
}

// lowerReturn lowers a return statement.
func (l *Lowerer) lowerReturn(rs *ast.ReturnStmt) {
	var v value.Value
	if rs.Value != nil {
		t := l.table.TypeOf(rs.Value)
		v = l.lowerExpr(rs.Value)
		if isUnitLike(t) {
			v = nil
		}
	}

	if l.block.Term == nil {
		l.block.NewRet(v)
	}
}
