package depm

import (
	"testing"

	"sablec/types"
)

func TestScopeDefineAndLookup(t *testing.T) {
	tree := NewScopeTree()

	x := &Symbol{Name: "x", Kind: SymVariable}
	if prev := tree.Define(0, x); prev != nil {
		t.Fatal("first definition returned a previous symbol")
	}

	if tree.Lookup(0, "x") != x {
		t.Error("lookup did not find the defined symbol")
	}

	if tree.Lookup(0, "y") != nil {
		t.Error("lookup found an undefined name")
	}
}

func TestScopeRedefinitionReturnsPrev(t *testing.T) {
	tree := NewScopeTree()

	first := &Symbol{Name: "x", Kind: SymVariable}
	second := &Symbol{Name: "x", Kind: SymFunc}

	tree.Define(0, first)
	if prev := tree.Define(0, second); prev != first {
		t.Fatal("redefinition did not return the first symbol")
	}

	if tree.Lookup(0, "x") != first {
		t.Error("redefinition overwrote the first symbol")
	}
}

func TestScopeShadowing(t *testing.T) {
	tree := NewScopeTree()

	outer := &Symbol{Name: "x", Kind: SymVariable}
	tree.Define(0, outer)

	child := tree.NewScope(0, ScopeBlock)
	inner := &Symbol{Name: "x", Kind: SymVariable}
	if prev := tree.Define(child, inner); prev != nil {
		t.Fatal("shadowing in a child scope was treated as a redefinition")
	}

	if tree.Lookup(child, "x") != inner {
		t.Error("child lookup did not find the shadowing symbol")
	}

	if tree.Lookup(0, "x") != outer {
		t.Error("global lookup no longer finds the outer symbol")
	}
}

func TestInKindStopsAtFunctionBoundary(t *testing.T) {
	tree := NewScopeTree()

	loop := tree.NewScope(0, ScopeLoop)
	fn := tree.NewScope(loop, ScopeFunc)
	body := tree.NewScope(fn, ScopeBlock)

	if !tree.InKind(loop, ScopeLoop) {
		t.Error("the loop scope itself should satisfy InKind")
	}

	if tree.InKind(body, ScopeLoop) {
		t.Error("a loop outside the enclosing function should not be visible")
	}
}

// -----------------------------------------------------------------------------

func TestRegistryDuplicateTraitImpl(t *testing.T) {
	reg := NewRegistry()

	target := &types.StructType{Name: "S"}
	trait := &Symbol{Name: "T", Kind: SymTrait}

	first := &Impl{Target: target, Trait: trait}
	if reg.Register(first) != nil {
		t.Fatal("first trait impl was rejected")
	}

	second := &Impl{Target: target, Trait: trait}
	if reg.Register(second) != first {
		t.Error("duplicate (type, trait) pairing was not rejected")
	}
}

func TestRegistryAllowsMultipleInherentImpls(t *testing.T) {
	reg := NewRegistry()

	target := &types.StructType{Name: "S"}
	if reg.Register(&Impl{Target: target}) != nil || reg.Register(&Impl{Target: target}) != nil {
		t.Fatal("inherent impls should never collide")
	}

	if len(reg.ImplsFor(target)) != 2 {
		t.Error("both inherent impls should be registered")
	}
}

func TestRegistryMethodVsAssociatedLookup(t *testing.T) {
	reg := NewRegistry()

	target := &types.StructType{Name: "S"}
	method := &Symbol{Name: "get", Kind: SymFunc, IsMethod: true}
	assoc := &Symbol{Name: "make", Kind: SymFunc}

	reg.Register(&Impl{Target: target, Members: []*Symbol{method, assoc}})

	if reg.LookupMethod(target, "get") != method {
		t.Error("method lookup failed")
	}

	if reg.LookupMethod(target, "make") != nil {
		t.Error("associated function satisfied a method lookup")
	}

	if reg.LookupAssociated(target, "make") != assoc {
		t.Error("associated lookup failed")
	}

	if reg.LookupAssociated(target, "get") != nil {
		t.Error("method satisfied an associated lookup")
	}
}

// -----------------------------------------------------------------------------

func TestUniverseBuiltins(t *testing.T) {
	tree := NewScopeTree()
	reg := NewRegistry()
	Universe(tree, reg)

	if tree.Lookup(0, "print_int") == nil {
		t.Error("print_int missing from the universe")
	}

	str := tree.Lookup(0, "String")
	if str == nil || str.Kind != SymStruct {
		t.Fatal("String missing from the universe")
	}

	if reg.LookupAssociated(StringType, "new") == nil {
		t.Error("String::new missing from the builtin impl")
	}

	if reg.LookupMethod(StringType, "push") == nil {
		t.Error("String push method missing from the builtin impl")
	}
}

func TestBuiltinsOrderStable(t *testing.T) {
	a := Builtins()
	b := Builtins()

	if len(a) == 0 || len(a) != len(b) {
		t.Fatal("builtin catalogue size changed between calls")
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("builtin order differs at index %d", i)
		}
	}
}
