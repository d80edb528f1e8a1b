package depm

import (
	"sablec/ast"
	"sablec/report"
	"sablec/types"
)

// Enumeration of expression value modes.
const (
	ModeValue    = iota // A plain value with no addressable storage.
	ModePlace           // A readable storage location.
	ModeMutPlace        // A storage location eligible for mutation.
)

// CheckedExpr is the set of facts the checker establishes for one expression
// node: its resolved type, its place classification, and, for path-like
// expressions, the backing symbol.
type CheckedExpr struct {
	Type types.Type

	// Mode must be one of the enumerated value modes.
	Mode int

	// Sym is the symbol a name, path, or method expression resolved to.
	// Nil for all other expressions.
	Sym *Symbol
}

// CheckedTable is the side table mapping expression nodes to their checked
// facts, keyed by node identity.  Annotations are write-once: lowering reads
// a fully populated table and a missing or doubly-written entry is an
// internal error, never a diagnostic.
type CheckedTable struct {
	exprs map[ast.Expr]*CheckedExpr
}

// NewCheckedTable creates an empty checked-expression table.
func NewCheckedTable() *CheckedTable {
	return &CheckedTable{exprs: make(map[ast.Expr]*CheckedExpr)}
}

// Set records the checked facts for an expression node.
func (ct *CheckedTable) Set(expr ast.Expr, typ types.Type, mode int, sym *Symbol) {
	if _, ok := ct.exprs[expr]; ok {
		report.ReportICE("expression at %v annotated twice", expr.Span())
	}

	ct.exprs[expr] = &CheckedExpr{Type: typ, Mode: mode, Sym: sym}
}

// Retype replaces a pending untyped-integer annotation with its final type.
// Only the integer literal resolver calls this, and only on entries still
// marked untyped.
func (ct *CheckedTable) Retype(expr ast.Expr, typ types.Type) {
	ce, ok := ct.exprs[expr]
	if !ok || !types.IsUntyped(ce.Type) {
		report.ReportICE("retyping a non-pending expression at %v", expr.Span())
	}

	ce.Type = typ
}

// Get returns the checked facts for an expression node.  Missing entries are
// an internal error: the checker annotates every expression exactly once.
func (ct *CheckedTable) Get(expr ast.Expr) *CheckedExpr {
	ce, ok := ct.exprs[expr]
	if !ok {
		report.ReportICE("expression at %v was never checked", expr.Span())
	}

	return ce
}

// TypeOf returns the resolved type of an expression node.
func (ct *CheckedTable) TypeOf(expr ast.Expr) types.Type {
	return ct.Get(expr).Type
}

// ModeOf returns the place classification of an expression node.
func (ct *CheckedTable) ModeOf(expr ast.Expr) int {
	return ct.Get(expr).Mode
}

// SymOf returns the backing symbol of a path-like expression node, or nil.
func (ct *CheckedTable) SymOf(expr ast.Expr) *Symbol {
	return ct.Get(expr).Sym
}

// Has reports whether an expression node has been annotated.
func (ct *CheckedTable) Has(expr ast.Expr) bool {
	_, ok := ct.exprs[expr]
	return ok
}
