package ast

import "sablec/report"

// Item represents a top-level or impl/trait-member declaration.
type Item interface {
	ASTNode
	item()
}

// -----------------------------------------------------------------------------

// Param is a single function parameter declaration.
type Param struct {
	Name    string
	NamePos *report.TextSpan
	Mut     bool
	Type    TypeNode
}

// FuncDef represents a function definition or, inside a trait, a required
// function signature without a body.
type FuncDef struct {
	ASTBase

	Name    string
	NamePos *report.TextSpan

	// SelfKind is one of the self parameter kinds enumerated in the types
	// package.  Only meaningful for impl and trait members.
	SelfKind int

	Params     []*Param
	ReturnType TypeNode // nil when the function returns unit

	Body *Block // nil for trait-required signatures
}

func (fd *FuncDef) item() {}

// FieldDef is a single field of a struct declaration.
type FieldDef struct {
	Name    string
	NamePos *report.TextSpan
	Type    TypeNode
}

// StructDef represents a struct declaration.
type StructDef struct {
	ASTBase

	Name    string
	NamePos *report.TextSpan
	Fields  []FieldDef
}

func (sd *StructDef) item() {}

// VariantDef is a single unit variant of an enum declaration.
type VariantDef struct {
	Name    string
	NamePos *report.TextSpan
}

// EnumDef represents an enum declaration.
type EnumDef struct {
	ASTBase

	Name     string
	NamePos  *report.TextSpan
	Variants []VariantDef
}

func (ed *EnumDef) item() {}

// TraitDef represents a trait declaration.  Members are function signatures
// without bodies and constants without values.
type TraitDef struct {
	ASTBase

	Name    string
	NamePos *report.TextSpan
	Members []Item
}

func (td *TraitDef) item() {}

// ImplBlock represents an inherent impl (`impl T { ... }`) or a trait impl
// (`impl Tr for T { ... }`).
type ImplBlock struct {
	ASTBase

	// The trait being implemented; empty for an inherent impl.
	TraitName string
	TraitPos  *report.TextSpan

	Target  TypeNode
	Members []Item
}

func (ib *ImplBlock) item() {}

// ConstDecl represents a constant declaration, either top-level, trait
// member (no value), or impl member.
type ConstDecl struct {
	ASTBase

	Name    string
	NamePos *report.TextSpan
	Type    TypeNode
	Value   Expr // nil for trait-required constants
}

func (cd *ConstDecl) item() {}
