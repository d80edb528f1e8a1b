package ast

// TypeNode represents a syntactic type annotation, resolved to a semantic
// type by the type resolver.
type TypeNode interface {
	ASTNode
	typeNode()
}

// -----------------------------------------------------------------------------

// NamedTypeNode is a primitive, struct, enum, or `Self` annotation.
type NamedTypeNode struct {
	ASTBase

	Name string
}

func (nt *NamedTypeNode) typeNode() {}

// RefTypeNode is `&T` or `&mut T`.
type RefTypeNode struct {
	ASTBase

	Elem TypeNode
	Mut  bool
}

func (rt *RefTypeNode) typeNode() {}

// ArrayTypeNode is `[T; len]`.  The length expression must fold to a
// non-negative compile-time constant.
type ArrayTypeNode struct {
	ASTBase

	Elem TypeNode
	Len  Expr
}

func (at *ArrayTypeNode) typeNode() {}

// UnitTypeNode is `()`.
type UnitTypeNode struct {
	ASTBase
}

func (ut *UnitTypeNode) typeNode() {}
