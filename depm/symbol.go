// Package depm holds the shared symbol model of the compiler: the scope
// tree, symbols, the impl registry, the checked-expression side table, and
// the builtin universe.  Everything here is built during checking and
// read-only once checking completes; lowering never mutates it.
package depm

import (
	"sablec/ast"
	"sablec/report"
	"sablec/types"
)

// Enumeration of symbol kinds.
const (
	SymVariable = iota
	SymFunc
	SymConst
	SymStruct
	SymEnum
	SymTrait
	SymVariant
)

// symKindLabels maps symbol kinds to the labels used in diagnostics.
var symKindLabels = map[int]string{
	SymVariable: "variable",
	SymFunc:     "function",
	SymConst:    "constant",
	SymStruct:   "struct",
	SymEnum:     "enum",
	SymTrait:    "trait",
	SymVariant:  "variant",
}

// Symbol represents a named Sable entity.  A symbol is created exactly once,
// by the declaration pass, and only annotated by later passes: its type and
// constant value fields start empty and are filled in as the corresponding
// pass runs.  Redeclaring a name in the same scope is an error, never an
// overwrite.
type Symbol struct {
	Name string

	// Kind must be one of the enumerated symbol kinds.
	Kind int

	// DefSpan is the position of the identifier that defines the symbol.
	DefSpan *report.TextSpan

	// Type carries the symbol's resolved type: the value type for variables
	// and constants, the signature for functions, the nominal type for
	// structs and enums, and the owning enum type for variants.  Filled in by
	// the type resolution pass.
	Type types.Type

	// Mutable indicates whether a variable symbol may be mutated.
	Mutable bool

	// IsMethod indicates a function symbol declared with a self parameter.
	IsMethod bool

	// IsAssociated indicates a function or constant symbol that belongs to an
	// impl or trait rather than the global scope.
	IsAssociated bool

	// Owner is the type symbol owning an associated member or variant.
	Owner *Symbol

	// HasValue indicates that a constant symbol's value has been evaluated.
	HasValue bool

	// Value is the evaluated value of a constant symbol.
	Value int64

	// Decl is the declaration node the symbol was created from, used by
	// later passes to reach unresolved annotations and value expressions.
	Decl ast.Item

	// Builtin marks symbols provided by the universe rather than user code.
	Builtin bool

	// LinkName is the externally linked runtime name of a builtin symbol.
	LinkName string
}

// KindLabel returns the diagnostic label for the symbol's kind.
func (s *Symbol) KindLabel() string {
	return symKindLabels[s.Kind]
}

// Signature returns the symbol's function type.  It is an internal error to
// call this on a non-function symbol before type resolution has run.
func (s *Symbol) Signature() *types.FuncType {
	ft, ok := s.Type.(*types.FuncType)
	if !ok {
		report.ReportICE("symbol `%s` has no signature", s.Name)
	}

	return ft
}
