package walk

import (
	"sablec/ast"
	"sablec/depm"
	"sablec/report"
	"sablec/types"
)

// collectDecls is the first pass: it walks the top level of the crate and
// creates a symbol for every declaration, so later passes can resolve names
// in any order.  Types and signatures remain unresolved until the second
// pass; only the nominal type shells of structs and enums are created here.
func (c *Checker) collectDecls() {
	for _, item := range c.crate.Items {
		switch v := item.(type) {
		case *ast.FuncDef:
			c.declareSymbol(item, &depm.Symbol{
				Name:    v.Name,
				Kind:    depm.SymFunc,
				DefSpan: v.NamePos,
				Decl:    item,
			})
		case *ast.StructDef:
			st := &types.StructType{Name: v.Name}

			c.declareSymbol(item, &depm.Symbol{
				Name:    v.Name,
				Kind:    depm.SymStruct,
				DefSpan: v.NamePos,
				Type:    st,
				Decl:    item,
			})
		case *ast.EnumDef:
			c.declareEnum(v)
		case *ast.TraitDef:
			c.declareTrait(v)
		case *ast.ConstDecl:
			c.declareSymbol(item, &depm.Symbol{
				Name:    v.Name,
				Kind:    depm.SymConst,
				DefSpan: v.NamePos,
				Decl:    item,
			})
		case *ast.ImplBlock:
			// Impl blocks declare no top-level name; their members are
			// collected during signature resolution once the target type is
			// known.
		default:
			report.ReportICE("unknown top-level item")
		}
	}
}

// declareSymbol defines a top-level symbol and records it for its item.
func (c *Checker) declareSymbol(item ast.Item, sym *depm.Symbol) {
	c.define(sym)
	c.itemSyms[item] = sym
}

// declareEnum creates the enum symbol along with a symbol per variant.
func (c *Checker) declareEnum(ed *ast.EnumDef) {
	et := &types.EnumType{Name: ed.Name}

	variants := make(map[string]*depm.Symbol)
	for _, variant := range ed.Variants {
		if _, ok := variants[variant.Name]; ok {
			c.error(report.ErrRedeclaration, variant.NamePos,
				"variant `%s` is declared multiple times in enum `%s`", variant.Name, ed.Name)
		}

		et.Variants = append(et.Variants, variant.Name)
		variants[variant.Name] = &depm.Symbol{
			Name:    variant.Name,
			Kind:    depm.SymVariant,
			DefSpan: variant.NamePos,
			Type:    et,
		}
	}

	sym := &depm.Symbol{
		Name:    ed.Name,
		Kind:    depm.SymEnum,
		DefSpan: ed.NamePos,
		Type:    et,
		Decl:    ed,
	}

	c.declareSymbol(ed, sym)
	c.variantSyms[et] = variants

	for _, vsym := range variants {
		vsym.Owner = sym
	}
}

// declareTrait creates the trait symbol and the symbols of its required
// members.  Member signatures are resolved in the second pass with the
// trait's Self context active.
func (c *Checker) declareTrait(td *ast.TraitDef) {
	sym := &depm.Symbol{
		Name:    td.Name,
		Kind:    depm.SymTrait,
		DefSpan: td.NamePos,
		Decl:    td,
	}
	c.declareSymbol(td, sym)

	seen := make(map[string]bool)
	for _, member := range td.Members {
		var msym *depm.Symbol

		switch m := member.(type) {
		case *ast.FuncDef:
			msym = &depm.Symbol{
				Name:         m.Name,
				Kind:         depm.SymFunc,
				DefSpan:      m.NamePos,
				IsMethod:     m.SelfKind != types.SelfNone,
				IsAssociated: true,
				Owner:        sym,
				Decl:         member,
			}
		case *ast.ConstDecl:
			msym = &depm.Symbol{
				Name:         m.Name,
				Kind:         depm.SymConst,
				DefSpan:      m.NamePos,
				IsAssociated: true,
				Owner:        sym,
				Decl:         member,
			}
		default:
			report.ReportICE("unknown trait member")
		}

		if seen[msym.Name] {
			c.error(report.ErrRedeclaration, msym.DefSpan,
				"trait `%s` already declares a member named `%s`", td.Name, msym.Name)
		}
		seen[msym.Name] = true

		c.itemSyms[member] = msym
		c.traitMembers[sym] = append(c.traitMembers[sym], msym)
	}
}
