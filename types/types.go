package types

import (
	"fmt"
	"strings"
)

// Type represents a resolved Sable type.  All Sable types are either
// primitives, units, references, arrays, nominal struct or enum types, or one
// of the special checker-internal types (bottom, never, wildcard, untyped
// integer, unknown).
type Type interface {
	// Repr returns the string representation of the type for diagnostics.
	Repr() string
}

// -----------------------------------------------------------------------------

// PrimType represents a Sable primitive type.  The integer value must be one
// of the enumerated primitive kinds.
type PrimType int

// Enumeration of the primitive type kinds.
const (
	PrimI32 = PrimType(iota)
	PrimU32
	PrimI64
	PrimU64
	PrimUsize
	PrimBool
	PrimChar
)

var primReprs = map[PrimType]string{
	PrimI32:   "i32",
	PrimU32:   "u32",
	PrimI64:   "i64",
	PrimU64:   "u64",
	PrimUsize: "usize",
	PrimBool:  "bool",
	PrimChar:  "char",
}

func (pt PrimType) Repr() string {
	return primReprs[pt]
}

// Signed returns whether the primitive is a signed integer type.
func (pt PrimType) Signed() bool {
	return pt == PrimI32 || pt == PrimI64
}

// Bits returns the bit width of the primitive's machine representation.
// Pointer-sized integers are 64 bits on every supported target; char is a
// Unicode scalar value stored in 32 bits.
func (pt PrimType) Bits() int {
	switch pt {
	case PrimI32, PrimU32, PrimChar:
		return 32
	case PrimI64, PrimU64, PrimUsize:
		return 64
	case PrimBool:
		return 1
	}

	return 0
}

// -----------------------------------------------------------------------------

// UnitType is the type of expressions that yield no interesting value, `()`.
type UnitType struct{}

func (UnitType) Repr() string { return "()" }

// BottomType is the type of expressions that never complete normally at all:
// return statements, infinite loops with no break.  It is assignable to every
// type.
type BottomType struct{}

func (BottomType) Repr() string { return "!" }

// NeverType is the type of break-only divergence: the expression never
// completes normally, but control stays within the enclosing loop.  Like
// bottom, it satisfies every expected type.
type NeverType struct{}

func (NeverType) Repr() string { return "<never>" }

// WildcardType is the type of the `_` discard pattern on the left-hand side
// of an assignment.  Anything may be assigned to it.
type WildcardType struct{}

func (WildcardType) Repr() string { return "_" }

// UntypedIntType is the checker-internal type of an integer literal whose
// concrete type has not yet been forced by context.  The integer literal
// resolver replaces every occurrence before lowering begins.
type UntypedIntType struct{}

func (UntypedIntType) Repr() string { return "{integer}" }

// UnknownType is the type given to expressions the checker could not type.
// It never survives a successful check.
type UnknownType struct{}

func (UnknownType) Repr() string { return "<unknown>" }

// -----------------------------------------------------------------------------

// RefType represents a reference type: `&T` or `&mut T`.
type RefType struct {
	Elem Type
	Mut  bool
}

func (rt *RefType) Repr() string {
	if rt.Mut {
		return "&mut " + rt.Elem.Repr()
	}

	return "&" + rt.Elem.Repr()
}

// ArrayType represents a fixed-length array type `[T; N]`.  Len is always a
// resolved, non-negative compile-time constant by the time checking finishes.
type ArrayType struct {
	Elem Type
	Len  int64
}

func (at *ArrayType) Repr() string {
	return fmt.Sprintf("[%s; %d]", at.Elem.Repr(), at.Len)
}

// -----------------------------------------------------------------------------

// StructField is a single field of a struct type.
type StructField struct {
	Name string
	Type Type
}

// StructType represents a nominal struct type.  Each struct declaration
// produces exactly one StructType instance, so nominal equality is pointer
// equality.  Opaque struct types have a layout known only to the lowering
// engine and the runtime (the builtin String).
type StructType struct {
	Name   string
	Fields []StructField
	Opaque bool
}

func (st *StructType) Repr() string { return st.Name }

// FieldIndex returns the declaration index of the named field, or -1.
func (st *StructType) FieldIndex(name string) int {
	for i, f := range st.Fields {
		if f.Name == name {
			return i
		}
	}

	return -1
}

// EnumType represents a nominal enum type with unit variants.  Variant order
// is declaration order; a variant's discriminant is its index.
type EnumType struct {
	Name     string
	Variants []string
}

func (et *EnumType) Repr() string { return et.Name }

// VariantIndex returns the discriminant of the named variant, or -1.
func (et *EnumType) VariantIndex(name string) int {
	for i, v := range et.Variants {
		if v == name {
			return i
		}
	}

	return -1
}

// -----------------------------------------------------------------------------

// Enumeration of the kinds of self parameter a function can declare.
const (
	SelfNone   = iota // No self parameter: a free or associated function.
	SelfRef           // `&self`
	SelfRefMut        // `&mut self`
)

// FuncType represents the signature of a function or method.
type FuncType struct {
	ParamTypes []Type
	ReturnType Type

	// Self must be one of the enumerated self parameter kinds.
	Self int
}

func (ft *FuncType) Repr() string {
	params := make([]string, len(ft.ParamTypes))
	for i, pt := range ft.ParamTypes {
		params[i] = pt.Repr()
	}

	if IsUnit(ft.ReturnType) {
		return fmt.Sprintf("fn(%s)", strings.Join(params, ", "))
	}

	return fmt.Sprintf("fn(%s) -> %s", strings.Join(params, ", "), ft.ReturnType.Repr())
}
