package walk

import (
	"sablec/ast"
	"sablec/depm"
	"sablec/report"
	"sablec/types"
)

// primTypeNames maps the primitive type names of the surface language to
// their resolved types.
var primTypeNames = map[string]types.PrimType{
	"i32":   types.PrimI32,
	"u32":   types.PrimU32,
	"i64":   types.PrimI64,
	"u64":   types.PrimU64,
	"usize": types.PrimUsize,
	"bool":  types.PrimBool,
	"char":  types.PrimChar,
}

// selfPlaceholder stands in for the implementing type while resolving trait
// member signatures.  Conformance checking substitutes the impl target for
// it when comparing signatures.
var selfPlaceholder = &types.StructType{Name: "Self", Opaque: true}

// resolveSignatures is the second pass: it resolves every type annotation in
// every declaration, fills in struct field types and function signatures,
// and registers impl blocks with the impl registry.
func (c *Checker) resolveSignatures() {
	for _, item := range c.crate.Items {
		switch v := item.(type) {
		case *ast.StructDef:
			st := c.itemSyms[item].Type.(*types.StructType)

			seen := make(map[string]bool)
			for _, field := range v.Fields {
				if seen[field.Name] {
					c.error(report.ErrRedeclaration, field.NamePos,
						"field `%s` is declared multiple times in struct `%s`", field.Name, v.Name)
				}
				seen[field.Name] = true

				st.Fields = append(st.Fields, types.StructField{
					Name: field.Name,
					Type: c.resolveType(field.Type),
				})
			}
		case *ast.FuncDef:
			c.itemSyms[item].Type = c.resolveSignature(v)
		case *ast.ConstDecl:
			c.itemSyms[item].Type = c.resolveConstType(v)
		case *ast.TraitDef:
			c.selfType = selfPlaceholder
			c.pushScope(depm.ScopeTrait)
			c.resolveMemberTypes(v.Members)
			c.popScope()
			c.selfType = nil
		case *ast.ImplBlock:
			c.resolveImplBlock(v)
		}
	}
}

// resolveSignature builds the function type of a definition from its
// annotations.
func (c *Checker) resolveSignature(fd *ast.FuncDef) *types.FuncType {
	ft := &types.FuncType{Self: fd.SelfKind, ReturnType: types.UnitType{}}

	for _, param := range fd.Params {
		ft.ParamTypes = append(ft.ParamTypes, c.resolveType(param.Type))
	}

	if fd.ReturnType != nil {
		ft.ReturnType = c.resolveType(fd.ReturnType)
	}

	return ft
}

// resolveConstType resolves the declared type of a constant, which must be a
// primitive the constant evaluator can produce.
func (c *Checker) resolveConstType(cd *ast.ConstDecl) types.Type {
	t := c.resolveType(cd.Type)

	if pt, ok := t.(types.PrimType); !ok || pt == types.PrimChar {
		c.error(report.ErrTypeMismatch, cd.Type.Span(),
			"constants must have an integer or bool type, not `%s`", t.Repr())
	}

	return t
}

// resolveMemberTypes resolves the signatures of a list of trait or impl
// members, whose symbols were already created.
func (c *Checker) resolveMemberTypes(members []ast.Item) {
	for _, member := range members {
		switch m := member.(type) {
		case *ast.FuncDef:
			c.itemSyms[member].Type = c.resolveSignature(m)
		case *ast.ConstDecl:
			c.itemSyms[member].Type = c.resolveConstType(m)
		}
	}
}

// resolveImplBlock resolves an impl block's target type, creates and
// resolves its member symbols, and registers it.  Trait impls that duplicate
// an existing (type, trait) pairing are rejected here.
func (c *Checker) resolveImplBlock(ib *ast.ImplBlock) {
	target := c.resolveType(ib.Target)

	var targetSym *depm.Symbol
	switch target.(type) {
	case *types.StructType, *types.EnumType:
		targetSym = c.lookup(target.Repr(), ib.Target.Span())
	default:
		c.error(report.ErrTypeMismatch, ib.Target.Span(),
			"impl target must be a struct or enum type, not `%s`", target.Repr())
	}

	c.itemSyms[ib] = targetSym

	var traitSym *depm.Symbol
	if ib.TraitName != "" {
		traitSym = c.lookup(ib.TraitName, ib.TraitPos)
		if traitSym.Kind != depm.SymTrait {
			c.error(report.ErrTypeMismatch, ib.TraitPos,
				"`%s` is a %s, not a trait", ib.TraitName, traitSym.KindLabel())
		}
	}

	impl := &depm.Impl{Target: target, Trait: traitSym, Span: ib.Span()}

	seen := make(map[string]bool)
	c.selfType = target
	for _, member := range ib.Members {
		var msym *depm.Symbol

		switch m := member.(type) {
		case *ast.FuncDef:
			if m.Body == nil {
				c.error(report.ErrSyntax, m.NamePos, "impl member `%s` must have a body", m.Name)
			}

			msym = &depm.Symbol{
				Name:         m.Name,
				Kind:         depm.SymFunc,
				DefSpan:      m.NamePos,
				Type:         c.resolveSignature(m),
				IsMethod:     m.SelfKind != types.SelfNone,
				IsAssociated: true,
				Owner:        targetSym,
				Decl:         member,
			}
		case *ast.ConstDecl:
			if m.Value == nil {
				c.error(report.ErrSyntax, m.NamePos, "impl constant `%s` must have a value", m.Name)
			}

			msym = &depm.Symbol{
				Name:         m.Name,
				Kind:         depm.SymConst,
				DefSpan:      m.NamePos,
				Type:         c.resolveConstType(m),
				IsAssociated: true,
				Owner:        targetSym,
				Decl:         member,
			}
		}

		if seen[msym.Name] {
			c.error(report.ErrRedeclaration, msym.DefSpan,
				"`%s` is declared multiple times in this impl block", msym.Name)
		}
		seen[msym.Name] = true

		c.itemSyms[member] = msym
		impl.Members = append(impl.Members, msym)
	}
	c.selfType = nil

	if prev := c.reg.Register(impl); prev != nil {
		c.error(report.ErrRedeclaration, ib.Span(),
			"trait `%s` is already implemented for `%s`", traitSym.Name, target.Repr())
	}
}

// resolveType resolves a syntactic type annotation to a semantic type.
func (c *Checker) resolveType(node ast.TypeNode) types.Type {
	switch v := node.(type) {
	case *ast.NamedTypeNode:
		if pt, ok := primTypeNames[v.Name]; ok {
			return pt
		}

		if v.Name == "Self" {
			if c.selfType == nil {
				c.error(report.ErrUndefinedName, v.Span(),
					"`Self` can only be used inside an impl or trait")
			}

			return c.selfType
		}

		sym := c.lookup(v.Name, v.Span())
		if sym.Kind != depm.SymStruct && sym.Kind != depm.SymEnum {
			c.error(report.ErrTypeMismatch, v.Span(),
				"`%s` is a %s, not a type", v.Name, sym.KindLabel())
		}

		return sym.Type
	case *ast.RefTypeNode:
		return &types.RefType{Elem: c.resolveType(v.Elem), Mut: v.Mut}
	case *ast.ArrayTypeNode:
		elem := c.resolveType(v.Elem)

		length := c.foldConstExpr(v.Len)
		if length < 0 {
			c.error(report.ErrTypeMismatch, v.Len.Span(),
				"array length must be non-negative, got %d", length)
		}

		return &types.ArrayType{Elem: elem, Len: length}
	case *ast.UnitTypeNode:
		return types.UnitType{}
	}

	report.ReportICE("unknown type node")
	return nil
}
