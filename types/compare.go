package types

// Equal reports whether two resolved types are the same type.  Primitives,
// units, and the special types compare by kind; references and arrays
// compare structurally; nominal struct and enum types compare by identity
// since each declaration produces exactly one instance.
func Equal(a, b Type) bool {
	switch v := a.(type) {
	case PrimType:
		w, ok := b.(PrimType)
		return ok && v == w
	case UnitType:
		_, ok := b.(UnitType)
		return ok
	case BottomType:
		_, ok := b.(BottomType)
		return ok
	case NeverType:
		_, ok := b.(NeverType)
		return ok
	case WildcardType:
		_, ok := b.(WildcardType)
		return ok
	case UntypedIntType:
		_, ok := b.(UntypedIntType)
		return ok
	case UnknownType:
		_, ok := b.(UnknownType)
		return ok
	case *RefType:
		w, ok := b.(*RefType)
		return ok && v.Mut == w.Mut && Equal(v.Elem, w.Elem)
	case *ArrayType:
		w, ok := b.(*ArrayType)
		return ok && v.Len == w.Len && Equal(v.Elem, w.Elem)
	case *StructType:
		return a == b
	case *EnumType:
		return a == b
	case *FuncType:
		w, ok := b.(*FuncType)
		if !ok || v.Self != w.Self || len(v.ParamTypes) != len(w.ParamTypes) {
			return false
		}

		for i, pt := range v.ParamTypes {
			if !Equal(pt, w.ParamTypes[i]) {
				return false
			}
		}

		return Equal(v.ReturnType, w.ReturnType)
	}

	return false
}

// -----------------------------------------------------------------------------

// IsUnit returns whether a type is the unit type.
func IsUnit(t Type) bool {
	_, ok := t.(UnitType)
	return ok
}

// IsDivergent returns whether a type marks an expression that never completes
// normally: bottom or never.
func IsDivergent(t Type) bool {
	switch t.(type) {
	case BottomType, NeverType:
		return true
	}

	return false
}

// IsInteger returns whether a type is a concrete integer type.
func IsInteger(t Type) bool {
	pt, ok := t.(PrimType)
	return ok && pt != PrimBool && pt != PrimChar
}

// IsNumeric returns whether a type participates in arithmetic.  Sable has no
// floating point, so numeric means integer.
func IsNumeric(t Type) bool {
	return IsInteger(t)
}

// IsUntyped returns whether a type is a pending untyped integer.
func IsUntyped(t Type) bool {
	_, ok := t.(UntypedIntType)
	return ok
}

// IsSigned returns whether an integer type is signed.  Untyped integers are
// not signed or unsigned until resolved.
func IsSigned(t Type) bool {
	pt, ok := t.(PrimType)
	return ok && pt.Signed()
}
