package lower

import (
	lltypes "github.com/llir/llvm/ir/types"

	"sablec/report"
	"sablec/types"
)

// convType converts a semantic type to its LLVM representation.  Unit is a
// zero-sized empty struct so it can appear inside aggregates; return types
// go through convRetType instead, which prunes it to void.
func (l *Lowerer) convType(t types.Type) lltypes.Type {
	switch v := t.(type) {
	case types.PrimType:
		switch v {
		case types.PrimBool:
			return lltypes.I1
		case types.PrimI32, types.PrimU32, types.PrimChar:
			return lltypes.I32
		default:
			return lltypes.I64
		}
	case types.UnitType:
		return lltypes.NewStruct()
	case *types.RefType:
		return lltypes.NewPointer(l.convType(v.Elem))
	case *types.ArrayType:
		return lltypes.NewArray(uint64(v.Len), l.convType(v.Elem))
	case *types.StructType:
		td, ok := l.structs[v]
		if !ok {
			report.ReportICE("struct `%s` was never predefined", v.Name)
		}

		return td
	case *types.EnumType:
		// Enums lower to their discriminant.
		return lltypes.I32
	}

	report.ReportICE("cannot lower type `%s`", t.Repr())
	return nil
}

// convRetType converts a function return type, pruning unit to void.  A
// divergent body still needs a declared return type, which stays void.
func (l *Lowerer) convRetType(t types.Type) lltypes.Type {
	if isUnitLike(t) {
		return lltypes.Void
	}

	return l.convType(t)
}

// isUnitLike reports whether expressions of a type produce no LLVM value.
func isUnitLike(t types.Type) bool {
	return types.IsUnit(t) || types.IsDivergent(t)
}

// intBits returns the bit width of a scalar's LLVM representation.
func intBits(t types.Type) int {
	switch v := t.(type) {
	case types.PrimType:
		return v.Bits()
	case *types.EnumType:
		return 32
	}

	report.ReportICE("type `%s` has no integer representation", t.Repr())
	return 0
}

// intSigned reports whether a scalar's LLVM representation is treated as
// signed for widening and ordered comparison.  Bool, char, and enum
// discriminants are unsigned.
func intSigned(t types.Type) bool {
	return types.IsSigned(t)
}
