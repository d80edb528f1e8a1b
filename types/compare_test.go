package types

import "testing"

func TestPrimEquality(t *testing.T) {
	if !Equal(PrimType(PrimI32), PrimType(PrimI32)) {
		t.Error("i32 should equal i32")
	}

	if Equal(PrimType(PrimI32), PrimType(PrimU32)) {
		t.Error("i32 should not equal u32")
	}
}

func TestRefEquality(t *testing.T) {
	a := &RefType{Elem: PrimType(PrimI64)}
	b := &RefType{Elem: PrimType(PrimI64)}
	if !Equal(a, b) {
		t.Error("&i64 should equal &i64 structurally")
	}

	m := &RefType{Elem: PrimType(PrimI64), Mut: true}
	if Equal(a, m) {
		t.Error("&i64 should not equal &mut i64")
	}
}

func TestArrayEquality(t *testing.T) {
	a := &ArrayType{Elem: PrimType(PrimI32), Len: 4}
	b := &ArrayType{Elem: PrimType(PrimI32), Len: 4}
	c := &ArrayType{Elem: PrimType(PrimI32), Len: 5}

	if !Equal(a, b) {
		t.Error("[i32; 4] should equal [i32; 4]")
	}

	if Equal(a, c) {
		t.Error("[i32; 4] should not equal [i32; 5]")
	}
}

func TestNominalIdentity(t *testing.T) {
	a := &StructType{Name: "P", Fields: []StructField{{Name: "x", Type: PrimType(PrimI32)}}}
	b := &StructType{Name: "P", Fields: []StructField{{Name: "x", Type: PrimType(PrimI32)}}}

	if !Equal(a, a) {
		t.Error("a struct type should equal itself")
	}

	if Equal(a, b) {
		t.Error("distinct struct declarations should not be equal, even with the same shape")
	}
}

func TestFuncEquality(t *testing.T) {
	a := &FuncType{ParamTypes: []Type{PrimType(PrimI32)}, ReturnType: UnitType{}, Self: SelfRef}
	b := &FuncType{ParamTypes: []Type{PrimType(PrimI32)}, ReturnType: UnitType{}, Self: SelfRef}
	c := &FuncType{ParamTypes: []Type{PrimType(PrimI32)}, ReturnType: UnitType{}, Self: SelfRefMut}

	if !Equal(a, b) {
		t.Error("identical signatures should be equal")
	}

	if Equal(a, c) {
		t.Error("signatures differing in self kind should not be equal")
	}
}

func TestClassification(t *testing.T) {
	if !IsInteger(PrimType(PrimUsize)) {
		t.Error("usize is an integer")
	}

	if IsInteger(PrimType(PrimBool)) || IsInteger(PrimType(PrimChar)) {
		t.Error("bool and char are not integers")
	}

	if IsSigned(PrimType(PrimU64)) || IsSigned(PrimType(PrimUsize)) {
		t.Error("u64 and usize are unsigned")
	}

	if !IsSigned(PrimType(PrimI64)) {
		t.Error("i64 is signed")
	}

	if !IsDivergent(BottomType{}) || !IsDivergent(NeverType{}) {
		t.Error("bottom and never are divergent")
	}

	if IsDivergent(UnitType{}) {
		t.Error("unit is not divergent")
	}
}

func TestReprs(t *testing.T) {
	cases := []struct {
		t    Type
		want string
	}{
		{PrimType(PrimUsize), "usize"},
		{UnitType{}, "()"},
		{BottomType{}, "!"},
		{&RefType{Elem: PrimType(PrimI32), Mut: true}, "&mut i32"},
		{&ArrayType{Elem: PrimType(PrimU32), Len: 3}, "[u32; 3]"},
		{UntypedIntType{}, "{integer}"},
	}

	for _, c := range cases {
		if got := c.t.Repr(); got != c.want {
			t.Errorf("Repr() = %q, want %q", got, c.want)
		}
	}
}
