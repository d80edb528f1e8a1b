package ast

import "sablec/report"

// Stmt represents a statement inside a block.
type Stmt interface {
	ASTNode
	stmt()
}

// -----------------------------------------------------------------------------

// VarDecl represents a let binding: `let [mut] name [: T] = init;`.
type VarDecl struct {
	ASTBase

	Name    string
	NamePos *report.TextSpan
	Mut     bool
	Type    TypeNode // nil when the type is inferred
	Init    Expr
}

func (vd *VarDecl) stmt() {}

// Assign represents an assignment or compound assignment statement.  A plain
// assignment has Op == OpNone.
type Assign struct {
	ASTBase

	LHS Expr
	RHS Expr

	// The compound operator kind, or OpNone.
	Op OpKind
}

func (as *Assign) stmt() {}

// BreakStmt represents `break;` or `break value;`.
type BreakStmt struct {
	ASTBase

	Value Expr // nil for a bare break
}

func (bs *BreakStmt) stmt() {}

// ContinueStmt represents `continue;`.
type ContinueStmt struct {
	ASTBase
}

func (cs *ContinueStmt) stmt() {}

// ReturnStmt represents `return;` or `return value;`.
type ReturnStmt struct {
	ASTBase

	Value Expr // nil for a bare return
}

func (rs *ReturnStmt) stmt() {}

// ExprStmt represents an expression used as a statement.
type ExprStmt struct {
	ASTBase

	Expr Expr
}

func (es *ExprStmt) stmt() {}
