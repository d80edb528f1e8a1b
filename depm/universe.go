package depm

import "sablec/types"

// StringType is the builtin growable string aggregate.  Its layout is opaque
// to user code; the lowering engine and the runtime agree on {i8*, i64, i64}.
var StringType = &types.StructType{Name: "String", Opaque: true}

// Universe populates the global scope of a scope tree with the builtin
// runtime catalogue and registers the builtin String impl.  The catalogue is
// fixed: these symbols are declared but never defined by the compiler, and
// lowering must match each builtin's calling convention exactly (scalars by
// value, references and the mutable-string receiver by address).
func Universe(tree *ScopeTree, reg *Registry) {
	for _, b := range builtinFuncs {
		tree.Define(0, b)
	}

	tree.Define(0, stringSymbol)
	reg.Register(stringImpl)
}

// Builtins returns every builtin function symbol in a fixed order: the free
// functions first, then the String members.  Lowering declares all of them as
// external symbols regardless of use.
func Builtins() []*Symbol {
	all := make([]*Symbol, 0, len(builtinFuncs)+len(stringImpl.Members))
	all = append(all, builtinFuncs...)
	all = append(all, stringImpl.Members...)
	return all
}

// builtinFunc constructs a builtin function symbol.
func builtinFunc(name, linkName string, self int, params []types.Type, ret types.Type) *Symbol {
	return &Symbol{
		Name:     name,
		Kind:     SymFunc,
		Type:     &types.FuncType{ParamTypes: params, ReturnType: ret, Self: self},
		IsMethod: self != types.SelfNone,
		Builtin:  true,
		LinkName: linkName,
	}
}

// builtinFuncs is the fixed catalogue of free builtin functions: numeric and
// string console I/O and the process-exit primitive.
var builtinFuncs = []*Symbol{
	builtinFunc("print_int", "sable_print_int", types.SelfNone,
		[]types.Type{types.PrimType(types.PrimI64)}, types.UnitType{}),
	builtinFunc("print_uint", "sable_print_uint", types.SelfNone,
		[]types.Type{types.PrimType(types.PrimU64)}, types.UnitType{}),
	builtinFunc("print_bool", "sable_print_bool", types.SelfNone,
		[]types.Type{types.PrimType(types.PrimBool)}, types.UnitType{}),
	builtinFunc("print_char", "sable_print_char", types.SelfNone,
		[]types.Type{types.PrimType(types.PrimChar)}, types.UnitType{}),
	builtinFunc("print_str", "sable_print_str", types.SelfNone,
		[]types.Type{&types.RefType{Elem: StringType}}, types.UnitType{}),
	builtinFunc("read_int", "sable_read_int", types.SelfNone,
		nil, types.PrimType(types.PrimI64)),
	builtinFunc("exit", "sable_exit", types.SelfNone,
		[]types.Type{types.PrimType(types.PrimI32)}, types.UnitType{}),
}

// stringSymbol is the global symbol binding the name String to its type.
var stringSymbol = &Symbol{
	Name:    "String",
	Kind:    SymStruct,
	Type:    StringType,
	Builtin: true,
}

// stringImpl is the builtin inherent impl carrying the String constructor
// and methods.
var stringImpl = func() *Impl {
	members := []*Symbol{
		builtinFunc("new", "sable_string_new", types.SelfNone,
			nil, StringType),
		builtinFunc("push", "sable_string_push", types.SelfRefMut,
			[]types.Type{types.PrimType(types.PrimChar)}, types.UnitType{}),
		builtinFunc("append", "sable_string_append", types.SelfRefMut,
			[]types.Type{&types.RefType{Elem: StringType}}, types.UnitType{}),
		builtinFunc("len", "sable_string_len", types.SelfRef,
			nil, types.PrimType(types.PrimUsize)),
		builtinFunc("view", "sable_string_view", types.SelfRef,
			nil, &types.RefType{Elem: StringType}),
	}

	for _, m := range members {
		m.IsAssociated = true
		m.Owner = stringSymbol
	}

	return &Impl{Target: StringType, Members: members}
}()
