package walk

import (
	"sablec/ast"
	"sablec/depm"
	"sablec/report"
	"sablec/types"
)

// checkConformance is the fourth pass: every trait impl must provide exactly
// the members its trait requires, with matching kinds and signatures.  The
// trait side of a signature is resolved against the Self placeholder, so the
// comparison substitutes the impl target for it first.
func (c *Checker) checkConformance() {
	for _, item := range c.crate.Items {
		ib, ok := item.(*ast.ImplBlock)
		if !ok || ib.TraitName == "" {
			continue
		}

		traitSym := c.tree.Lookup(0, ib.TraitName)
		target := c.itemSyms[ib].Type
		impl := c.reg.TraitImpl(target, traitSym)

		for _, req := range c.traitMembers[traitSym] {
			c.checkRequiredMember(ib, impl, req, target)
		}

		// Members the trait never asked for do not belong in a trait impl.
		for _, m := range impl.Members {
			if c.traitMember(traitSym, m.Name) == nil {
				c.error(report.ErrUndefinedName, m.DefSpan,
					"`%s` is not a member of trait `%s`", m.Name, traitSym.Name)
			}
		}
	}
}

// traitMember returns the trait's required member with the given name, or
// nil.
func (c *Checker) traitMember(traitSym *depm.Symbol, name string) *depm.Symbol {
	for _, m := range c.traitMembers[traitSym] {
		if m.Name == name {
			return m
		}
	}

	return nil
}

// checkRequiredMember validates one required trait member against the impl.
func (c *Checker) checkRequiredMember(ib *ast.ImplBlock, impl *depm.Impl, req *depm.Symbol, target types.Type) {
	got := impl.Member(req.Name)
	if got == nil {
		c.error(report.ErrUndefinedName, ib.Span(),
			"impl of trait `%s` for `%s` is missing member `%s`",
			impl.Trait.Name, target.Repr(), req.Name)
	}

	if got.Kind != req.Kind {
		c.error(report.ErrTypeMismatch, got.DefSpan,
			"trait `%s` declares `%s` as a %s, not a %s",
			impl.Trait.Name, req.Name, req.KindLabel(), got.KindLabel())
	}

	want := substSelf(req.Type, target)
	if !types.Equal(got.Type, want) {
		c.error(report.ErrTypeMismatch, got.DefSpan,
			"`%s` has type `%s`, but trait `%s` requires `%s`",
			req.Name, got.Type.Repr(), impl.Trait.Name, want.Repr())
	}
}

// substSelf replaces the Self placeholder with the given target type
// everywhere inside a type.
func substSelf(t types.Type, target types.Type) types.Type {
	switch v := t.(type) {
	case *types.StructType:
		if v == selfPlaceholder {
			return target
		}
	case *types.RefType:
		return &types.RefType{Elem: substSelf(v.Elem, target), Mut: v.Mut}
	case *types.ArrayType:
		return &types.ArrayType{Elem: substSelf(v.Elem, target), Len: v.Len}
	case *types.FuncType:
		ft := &types.FuncType{ReturnType: substSelf(v.ReturnType, target), Self: v.Self}
		for _, pt := range v.ParamTypes {
			ft.ParamTypes = append(ft.ParamTypes, substSelf(pt, target))
		}
		return ft
	}

	return t
}
