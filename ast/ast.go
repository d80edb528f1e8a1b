// Package ast defines the syntax tree consumed by the semantic checker and
// the lowering engine.  Each node category (item, statement, expression, type
// annotation) is a closed interface dispatched over with exhaustive type
// switches.  Nodes carry no semantic facts: resolved types, place modes, and
// symbol bindings live in a side table owned by the checker.
package ast

import "sablec/report"

// ASTNode is the common interface of all syntax tree nodes.
type ASTNode interface {
	// Span returns the spanning position of the node's source text.
	Span() *report.TextSpan
}

// ASTBase is the base struct embedded in all syntax tree nodes.
type ASTBase struct {
	NodeSpan *report.TextSpan
}

func NewASTBase(span *report.TextSpan) ASTBase {
	return ASTBase{NodeSpan: span}
}

func (ab *ASTBase) Span() *report.TextSpan {
	return ab.NodeSpan
}

// -----------------------------------------------------------------------------

// Crate is the root of a parsed Sable program.
type Crate struct {
	// The path used to identify the crate's source in diagnostics.
	AbsPath  string
	ReprPath string

	// The top-level items of the crate.
	Items []Item
}
