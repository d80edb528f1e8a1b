package lower

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	"sablec/ast"
	"sablec/depm"
	"sablec/types"
	"sablec/walk"
)

// predefine declares every module-level entity before any body is lowered:
// the String aggregate, user struct type definitions, the builtin externs,
// constant globals, and the function declarations themselves.  Everything
// runs in declaration order so the output module is deterministic.
func (l *Lowerer) predefine(res *walk.Result) {
	l.predefineString()
	l.predefineStructs(res)
	l.predefineBuiltins()
	l.predefineConstants(res)
	l.predefineFuncs(res)
}

// predefineString emits the builtin string aggregate: a data pointer, a
// length, and a capacity, matching the runtime's layout.
func (l *Lowerer) predefineString() {
	st := lltypes.NewStruct(lltypes.NewPointer(lltypes.I8), lltypes.I64, lltypes.I64)
	l.mod.NewTypeDef("String", st)
	l.structs[depm.StringType] = st
}

// predefineStructs creates a named type definition per user struct.  Shells
// are created first and fields filled second, so structs may reference each
// other regardless of declaration order.
func (l *Lowerer) predefineStructs(res *walk.Result) {
	shells := make(map[*types.StructType]*lltypes.StructType)

	for _, item := range l.crate.Items {
		if sd, ok := item.(*ast.StructDef); ok {
			st := res.ItemSyms[sd].Type.(*types.StructType)

			shell := lltypes.NewStruct()
			l.mod.NewTypeDef(sd.Name, shell)

			shells[st] = shell
			l.structs[st] = shell
		}
	}

	for _, item := range l.crate.Items {
		if sd, ok := item.(*ast.StructDef); ok {
			st := res.ItemSyms[sd].Type.(*types.StructType)

			for _, field := range st.Fields {
				shells[st].Fields = append(shells[st].Fields, l.convType(field.Type))
			}
		}
	}
}

// predefineBuiltins declares the full runtime catalogue as external
// functions.  Method receivers pass by address.
func (l *Lowerer) predefineBuiltins() {
	for _, b := range depm.Builtins() {
		ft := b.Signature()

		var params []*ir.Param
		if ft.Self != types.SelfNone {
			params = append(params, ir.NewParam("self", lltypes.NewPointer(l.structs[depm.StringType])))
		}

		for i, pt := range ft.ParamTypes {
			params = append(params, ir.NewParam(paramName(i), l.convType(pt)))
		}

		l.funcs[b] = l.mod.NewFunc(b.LinkName, l.convRetType(ft.ReturnType), params...)
	}
}

// predefineConstants emits immutable global storage for every constant,
// global and associated, initialized with its evaluated value.
func (l *Lowerer) predefineConstants(res *walk.Result) {
	emit := func(sym *depm.Symbol) {
		g := l.mod.NewGlobalDef(l.mangleConst(sym),
			constant.NewInt(l.convType(sym.Type).(*lltypes.IntType), sym.Value))
		g.Immutable = true

		l.consts[sym] = g
	}

	for _, item := range l.crate.Items {
		switch v := item.(type) {
		case *ast.ConstDecl:
			emit(res.ItemSyms[item])
		case *ast.ImplBlock:
			for _, member := range v.Members {
				if _, ok := member.(*ast.ConstDecl); ok {
					emit(res.ItemSyms[member])
				}
			}
		}
	}
}

// predefineFuncs declares every user function with its mangled name, so
// bodies can call forward in any order.
func (l *Lowerer) predefineFuncs(res *walk.Result) {
	for _, item := range l.crate.Items {
		switch v := item.(type) {
		case *ast.FuncDef:
			l.declareFunc(v, res.ItemSyms[item], "")
		case *ast.ImplBlock:
			for _, member := range v.Members {
				if fd, ok := member.(*ast.FuncDef); ok {
					l.declareFunc(fd, res.ItemSyms[member], v.TraitName)
				}
			}
		}
	}
}

// declareFunc declares one function.  Unit-typed parameters carry no data
// and are pruned from the signature.  Parameters stay unnamed so the named
// entry slots they spill into can carry the source names.
func (l *Lowerer) declareFunc(fd *ast.FuncDef, sym *depm.Symbol, traitName string) {
	ft := sym.Signature()

	var params []*ir.Param
	if ft.Self != types.SelfNone {
		params = append(params, ir.NewParam("", lltypes.NewPointer(l.convType(sym.Owner.Type))))
	}

	for _, pt := range ft.ParamTypes {
		if isUnitLike(pt) {
			continue
		}

		params = append(params, ir.NewParam("", l.convType(pt)))
	}

	l.funcs[sym] = l.mod.NewFunc(l.mangleFunc(sym, traitName), l.convRetType(ft.ReturnType), params...)
}

// paramName names the positional parameters of builtin declarations.
func paramName(i int) string {
	return "p" + string(rune('0'+i))
}

// -----------------------------------------------------------------------------

// lowerBodies lowers every function body in declaration order.
func (l *Lowerer) lowerBodies(res *walk.Result) {
	for _, item := range l.crate.Items {
		switch v := item.(type) {
		case *ast.FuncDef:
			l.lowerFunc(v, res.ItemSyms[item])
		case *ast.ImplBlock:
			for _, member := range v.Members {
				if fd, ok := member.(*ast.FuncDef); ok {
					l.lowerFunc(fd, res.ItemSyms[member])
				}
			}
		}
	}
}

// lowerFunc lowers one function body.  Every parameter is spilled to a
// named entry-block slot, so parameters and locals read and write through
// memory uniformly.
func (l *Lowerer) lowerFunc(fd *ast.FuncDef, sym *depm.Symbol) {
	fn := l.funcs[sym]
	ft := sym.Signature()

	l.block = fn.NewBlock("entry")
	l.blockID = 0
	l.localNames = make(map[string]int)
	l.pushScope()

	paramIdx := 0
	if ft.Self != types.SelfNone {
		p := fn.Params[0]
		slot := l.entryAlloca(p.Type(), l.localName("self"))
		l.block.NewStore(p, slot)
		l.defineLocal("self", slot)
		paramIdx = 1
	}

	for i, pt := range ft.ParamTypes {
		if isUnitLike(pt) {
			continue
		}

		p := fn.Params[paramIdx]
		paramIdx++

		slot := l.entryAlloca(l.convType(pt), l.localName(fd.Params[i].Name))
		l.block.NewStore(p, slot)
		l.defineLocal(fd.Params[i].Name, slot)
	}

	result := l.lowerExpr(fd.Body)

	if l.block.Term == nil {
		switch {
		case isUnitLike(ft.ReturnType):
			l.block.NewRet(nil)
		case result != nil:
			l.block.NewRet(result)
		}
		// A non-void body with no result diverged; the fixup below seals
		// its unreachable exit block.
	}

	l.popScope()

	// Dead blocks produced by divergent subexpressions still need a
	// terminator for the module to be well formed.
	for _, b := range fn.Blocks {
		if b.Term == nil {
			b.NewUnreachable()
		}
	}
}
