package walk

import (
	"sablec/ast"
	"sablec/depm"
	"sablec/report"
	"sablec/types"
)

// checkStmt checks a single statement and returns its control type: unit for
// statements that complete normally, bottom or never for divergent ones.
func (c *Checker) checkStmt(stmt ast.Stmt) types.Type {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		return c.checkVarDecl(v)
	case *ast.Assign:
		return c.checkAssign(v)
	case *ast.BreakStmt:
		return c.checkBreak(v)
	case *ast.ContinueStmt:
		if !c.tree.InKind(c.curScope, depm.ScopeLoop) {
			c.error(report.ErrInvalidControlFlow, v.Span(), "`continue` outside of a loop")
		}

		return types.NeverType{}
	case *ast.ReturnStmt:
		return c.checkReturn(v)
	case *ast.ExprStmt:
		t := c.checkExpr(v.Expr, nil)
		if types.IsDivergent(t) {
			return t
		}

		return types.UnitType{}
	}

	report.ReportICE("unknown statement")
	return nil
}

// checkVarDecl checks a let binding and defines its variable in the current
// scope.  An unannotated binding takes the initializer's type; a pending
// untyped initializer defaults to i32 on the spot, since no later context
// can reach it.
func (c *Checker) checkVarDecl(vd *ast.VarDecl) types.Type {
	var varType types.Type
	var initType types.Type

	if vd.Type != nil {
		varType = c.resolveType(vd.Type)
		initType = c.checkExpr(vd.Init, varType)
		c.mustAssign(vd.Init, initType, varType)
	} else {
		initType = c.checkExpr(vd.Init, nil)

		varType = initType
		if types.IsUntyped(initType) {
			varType = types.PrimType(types.PrimI32)
			c.bindUntyped(vd.Init, varType)
		}
	}

	c.define(&depm.Symbol{
		Name:    vd.Name,
		Kind:    depm.SymVariable,
		DefSpan: vd.NamePos,
		Type:    varType,
		Mutable: vd.Mut,
	})

	if types.IsDivergent(initType) {
		return initType
	}

	return types.UnitType{}
}

// checkAssign checks a plain or compound assignment.
func (c *Checker) checkAssign(as *ast.Assign) types.Type {
	if as.Op == ast.OpNone {
		c.checkPlainAssign(as)
	} else {
		c.checkCompoundAssign(as)
	}

	if rt := c.table.TypeOf(as.RHS); types.IsDivergent(rt) {
		return rt
	}

	return types.UnitType{}
}

// checkPlainAssign checks `lhs = rhs`, where the left-hand side may be the
// wildcard discard or a destructuring struct literal.
func (c *Checker) checkPlainAssign(as *ast.Assign) {
	switch lhs := as.LHS.(type) {
	case *ast.Wildcard:
		c.setType(lhs, types.WildcardType{}, depm.ModeMutPlace, nil)

		rt := c.checkExpr(as.RHS, nil)
		if types.IsUntyped(rt) {
			c.bindUntyped(as.RHS, types.PrimType(types.PrimI32))
		}
	case *ast.StructLit:
		st := c.checkStructAssignee(lhs)

		rt := c.checkExpr(as.RHS, st)
		c.mustAssign(as.RHS, rt, st)
	default:
		lt := c.checkExpr(as.LHS, nil)
		if c.table.ModeOf(as.LHS) != depm.ModeMutPlace {
			c.error(report.ErrNotAssignable, as.LHS.Span(), "cannot assign to this expression")
		}

		rt := c.checkExpr(as.RHS, lt)
		c.mustAssign(as.RHS, rt, lt)
	}
}

// checkStructAssignee checks a destructuring assignment target.  Each listed
// field becomes an assignment target of its own; fields not listed are left
// untouched by the assignment.
func (c *Checker) checkStructAssignee(sl *ast.StructLit) types.Type {
	sym := c.lookup(sl.Name, sl.NamePos)
	if sym.Kind != depm.SymStruct {
		c.error(report.ErrTypeMismatch, sl.NamePos, "`%s` is not a struct", sl.Name)
	}

	st := sym.Type.(*types.StructType)
	if st.Opaque {
		c.error(report.ErrTypeMismatch, sl.NamePos, "`%s` cannot be destructured", sl.Name)
	}

	seen := make(map[string]bool)
	for _, field := range sl.Fields {
		idx := st.FieldIndex(field.Name)
		if idx < 0 {
			c.error(report.ErrUndefinedName, field.NamePos,
				"struct `%s` has no field `%s`", st.Name, field.Name)
		}

		if seen[field.Name] {
			c.error(report.ErrRedeclaration, field.NamePos,
				"field `%s` is listed twice", field.Name)
		}
		seen[field.Name] = true

		c.checkAssigneePlace(field.Value, st.Fields[idx].Type)
	}

	c.setType(sl, st, depm.ModeMutPlace, sym)
	return st
}

// checkAssigneePlace checks a single destructuring target, which must be a
// wildcard or a mutable place of the expected type.
func (c *Checker) checkAssigneePlace(expr ast.Expr, want types.Type) {
	if wc, ok := expr.(*ast.Wildcard); ok {
		c.setType(wc, types.WildcardType{}, depm.ModeMutPlace, nil)
		return
	}

	t := c.checkExpr(expr, want)
	if c.table.ModeOf(expr) != depm.ModeMutPlace {
		c.error(report.ErrNotAssignable, expr.Span(), "cannot assign to this expression")
	}

	if !types.Equal(t, want) {
		c.error(report.ErrTypeMismatch, expr.Span(),
			"expected `%s`, found `%s`", want.Repr(), t.Repr())
	}
}

// checkCompoundAssign checks `lhs op= rhs`.  The left-hand side must already
// be a mutable place before the operator is considered.
func (c *Checker) checkCompoundAssign(as *ast.Assign) {
	lt := c.checkExpr(as.LHS, nil)
	if c.table.ModeOf(as.LHS) != depm.ModeMutPlace {
		c.error(report.ErrNotAssignable, as.LHS.Span(), "cannot assign to this expression")
	}

	rt := c.checkExpr(as.RHS, lt)

	switch as.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpRem:
		if !types.IsNumeric(lt) {
			c.error(report.ErrTypeMismatch, as.LHS.Span(),
				"operator `%s=` requires an integer target, not `%s`", as.Op.Repr(), lt.Repr())
		}

		c.mustAssign(as.RHS, rt, lt)
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor:
		if !types.IsNumeric(lt) && !types.Equal(lt, types.PrimType(types.PrimBool)) {
			c.error(report.ErrTypeMismatch, as.LHS.Span(),
				"operator `%s=` requires an integer or bool target, not `%s`", as.Op.Repr(), lt.Repr())
		}

		c.mustAssign(as.RHS, rt, lt)
	case ast.OpShl, ast.OpShr:
		if !types.IsNumeric(lt) {
			c.error(report.ErrTypeMismatch, as.LHS.Span(),
				"operator `%s=` requires an integer target, not `%s`", as.Op.Repr(), lt.Repr())
		}

		// Shift amounts may have any integer type.
		if types.IsUntyped(rt) {
			c.bindUntyped(as.RHS, lt)
		} else if !types.IsNumeric(rt) && !types.IsDivergent(rt) {
			c.error(report.ErrTypeMismatch, as.RHS.Span(),
				"shift amount must be an integer, not `%s`", rt.Repr())
		}
	}
}

// checkBreak checks a break statement against the innermost loop.  The
// lexical context check goes through the scope tree: a loop scope must
// enclose the statement within the current function.
func (c *Checker) checkBreak(bs *ast.BreakStmt) types.Type {
	if !c.tree.InKind(c.curScope, depm.ScopeLoop) {
		c.error(report.ErrInvalidControlFlow, bs.Span(), "`break` outside of a loop")
	}

	lc := c.loops[len(c.loops)-1]

	if bs.Value != nil && lc.isWhile {
		c.error(report.ErrInvalidControlFlow, bs.Value.Span(),
			"can only break with a value inside `loop`")
	}

	var vt types.Type = types.UnitType{}
	if bs.Value != nil {
		vt = c.checkExpr(bs.Value, lc.yield)
		lc.breaks = append(lc.breaks, bs.Value)
	}

	if !lc.isWhile && !types.IsDivergent(vt) {
		c.unifyYield(lc, bs, vt)
	}

	return types.NeverType{}
}

// unifyYield folds a break value's type into the loop's yield type, seeding
// it on the first non-divergent break.
func (c *Checker) unifyYield(lc *loopContext, bs *ast.BreakStmt, vt types.Type) {
	if lc.yield == nil {
		lc.yield = vt
		return
	}

	switch {
	case types.Equal(lc.yield, vt):
	case types.IsUntyped(lc.yield) && types.IsInteger(vt):
		for _, prev := range lc.breaks {
			c.bindUntyped(prev, vt)
		}
		lc.yield = vt
	case types.IsUntyped(vt) && types.IsInteger(lc.yield):
		c.bindUntyped(bs.Value, lc.yield)
	default:
		c.error(report.ErrTypeMismatch, bs.Span(),
			"loop yields `%s`, but this break yields `%s`", lc.yield.Repr(), vt.Repr())
	}
}

// checkReturn checks a return statement against the enclosing function's
// return type.
func (c *Checker) checkReturn(rs *ast.ReturnStmt) types.Type {
	if c.enclosingReturn == nil {
		c.error(report.ErrInvalidControlFlow, rs.Span(), "`return` outside of a function")
	}

	if rs.Value == nil {
		if !types.IsUnit(c.enclosingReturn) {
			c.error(report.ErrTypeMismatch, rs.Span(),
				"function must return a value of type `%s`", c.enclosingReturn.Repr())
		}
	} else {
		vt := c.checkExpr(rs.Value, c.enclosingReturn)
		c.mustAssign(rs.Value, vt, c.enclosingReturn)
	}

	return types.BottomType{}
}
