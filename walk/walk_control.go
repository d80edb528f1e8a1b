package walk

import (
	"sablec/ast"
	"sablec/depm"
	"sablec/report"
	"sablec/types"
)

// checkBlock checks a block expression in a fresh scope of the given kind.
// A divergent statement makes the whole block divergent; remaining
// statements are still checked, but the tail no longer contributes a value.
func (c *Checker) checkBlock(block *ast.Block, hint types.Type, scopeKind int) types.Type {
	c.pushScope(scopeKind)

	var diverge types.Type
	for _, stmt := range block.Stmts {
		if t := c.checkStmt(stmt); types.IsDivergent(t) && diverge == nil {
			diverge = t
		}
	}

	var result types.Type = types.UnitType{}
	if block.Tail != nil {
		result = c.checkExpr(block.Tail, hint)
	}

	if diverge != nil {
		result = diverge
	}

	c.popScope()

	return c.setType(block, result, depm.ModeValue, nil)
}

// checkIf checks an if/else chain.
func (c *Checker) checkIf(ie *ast.IfExpr, hint types.Type) types.Type {
	ct := c.checkExpr(ie.Cond, nil)
	c.mustAssign(ie.Cond, ct, types.PrimType(types.PrimBool))

	tt := c.checkBlock(ie.Then, hint, depm.ScopeBlock)

	if ie.Else == nil {
		if !types.IsUnit(tt) && !types.IsDivergent(tt) {
			c.error(report.ErrTypeMismatch, ie.Then.Span(),
				"`if` without `else` cannot yield a value of type `%s`", tt.Repr())
		}

		return c.setType(ie, types.UnitType{}, depm.ModeValue, nil)
	}

	et := c.checkExpr(ie.Else, hint)

	return c.setType(ie, c.unifyBranches(ie, tt, et), depm.ModeValue, nil)
}

// unifyBranches merges the types of the two arms of an if/else.
func (c *Checker) unifyBranches(ie *ast.IfExpr, tt, et types.Type) types.Type {
	switch {
	case types.IsDivergent(tt) && types.IsDivergent(et):
		// Break-only divergence keeps control within the enclosing loop, so
		// it is the weaker claim of the two.
		if _, ok := tt.(types.NeverType); ok {
			return tt
		}

		return et
	case types.IsDivergent(tt):
		return et
	case types.IsDivergent(et):
		return tt
	case types.IsUntyped(tt) && types.IsUntyped(et):
		return tt
	case types.IsUntyped(tt) && types.IsInteger(et):
		c.bindUntyped(ie.Then, et)
		return et
	case types.IsUntyped(et) && types.IsInteger(tt):
		c.bindUntyped(ie.Else, tt)
		return tt
	case types.Equal(tt, et):
		return tt
	}

	c.error(report.ErrTypeMismatch, ie.Span(),
		"`if` and `else` branches have mismatched types `%s` and `%s`", tt.Repr(), et.Repr())
	return nil
}

// checkWhile checks a while loop, which always yields unit: the condition
// may be false on the first test, so the loop body proves nothing about
// divergence.
func (c *Checker) checkWhile(we *ast.WhileExpr) types.Type {
	ct := c.checkExpr(we.Cond, nil)
	c.mustAssign(we.Cond, ct, types.PrimType(types.PrimBool))

	c.loops = append(c.loops, &loopContext{isWhile: true})
	c.checkBlock(we.Body, nil, depm.ScopeLoop)
	c.loops = c.loops[:len(c.loops)-1]

	return c.setType(we, types.UnitType{}, depm.ModeValue, nil)
}

// checkLoop checks an unconditional loop.  With no break, control never
// leaves the loop and its type is bottom; otherwise the type is the unified
// yield of its breaks.
func (c *Checker) checkLoop(le *ast.LoopExpr) types.Type {
	lc := &loopContext{}

	c.loops = append(c.loops, lc)
	c.checkBlock(le.Body, nil, depm.ScopeLoop)
	c.loops = c.loops[:len(c.loops)-1]

	c.loopBreaks[le] = lc.breaks

	var result types.Type = types.BottomType{}
	if lc.yield != nil {
		result = lc.yield
	}

	return c.setType(le, result, depm.ModeValue, nil)
}
