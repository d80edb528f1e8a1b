package walk

import (
	"sablec/ast"
	"sablec/depm"
	"sablec/report"
	"sablec/types"
)

// checkBodies is the fifth pass: it fully type-checks every function body,
// annotating each expression node with its type, mode, and backing symbol.
func (c *Checker) checkBodies() {
	for _, item := range c.crate.Items {
		switch v := item.(type) {
		case *ast.FuncDef:
			c.checkFuncBody(v, c.itemSyms[item], nil)
		case *ast.ImplBlock:
			target := c.itemSyms[item].Type

			c.selfType = target
			c.pushScope(depm.ScopeImpl)
			for _, member := range v.Members {
				if fd, ok := member.(*ast.FuncDef); ok {
					c.checkFuncBody(fd, c.itemSyms[member], target)
				}
			}
			c.popScope()
			c.selfType = nil
		}
	}

	c.checkMainSignature()
}

// checkFuncBody checks one function body against its resolved signature.
// For methods, recv is the receiver type bound to self.
func (c *Checker) checkFuncBody(fd *ast.FuncDef, sym *depm.Symbol, recv types.Type) {
	ft := sym.Signature()

	c.enclosingReturn = ft.ReturnType
	c.loops = nil
	c.pushScope(depm.ScopeFunc)

	if fd.SelfKind != types.SelfNone {
		c.define(&depm.Symbol{
			Name:    "self",
			Kind:    depm.SymVariable,
			DefSpan: fd.NamePos,
			Type:    &types.RefType{Elem: recv, Mut: fd.SelfKind == types.SelfRefMut},
		})
	}

	for i, param := range fd.Params {
		c.define(&depm.Symbol{
			Name:    param.Name,
			Kind:    depm.SymVariable,
			DefSpan: param.NamePos,
			Type:    ft.ParamTypes[i],
			Mutable: param.Mut,
		})
	}

	bodyType := c.checkBlock(fd.Body, ft.ReturnType, depm.ScopeBlock)
	c.mustAssign(fd.Body, bodyType, ft.ReturnType)

	c.popScope()
	c.enclosingReturn = nil
}

// checkMainSignature validates the entry point, if the crate declares one.
func (c *Checker) checkMainSignature() {
	sym := c.tree.Lookup(0, "main")
	if sym == nil || sym.Kind != depm.SymFunc {
		return
	}

	ft := sym.Signature()
	if len(ft.ParamTypes) != 0 || !types.IsUnit(ft.ReturnType) {
		c.error(report.ErrTypeMismatch, sym.DefSpan,
			"`main` must take no parameters and return no value")
	}
}
