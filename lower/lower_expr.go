package lower

import (
	"strconv"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"sablec/ast"
	"sablec/depm"
	"sablec/report"
	"sablec/types"
)

// lowerExpr lowers an expression to its value.  Unit-typed and divergent
// expressions yield nil; place expressions load through their address.
func (l *Lowerer) lowerExpr(expr ast.Expr) value.Value {
	switch v := expr.(type) {
	case *ast.Literal:
		return l.lowerLiteral(v)
	case *ast.Identifier, *ast.PathExpr:
		return l.lowerNameRef(expr)
	case *ast.BinaryOp:
		return l.lowerBinary(v)
	case *ast.UnaryOp:
		return l.lowerUnary(v)
	case *ast.Borrow:
		return l.lowerAddr(v.Operand)
	case *ast.Deref:
		return l.lowerDeref(v)
	case *ast.CastExpr:
		return l.lowerCast(v)
	case *ast.CallExpr:
		return l.lowerCall(v)
	case *ast.MethodCall:
		return l.lowerMethodCall(v)
	case *ast.FieldAccess, *ast.IndexExpr:
		return l.loadPlace(expr)
	case *ast.StructLit:
		return l.lowerStructLit(v)
	case *ast.ArrayLit:
		return l.lowerArrayLit(v)
	case *ast.ArrayRepeat:
		return l.lowerArrayRepeat(v)
	case *ast.Block:
		return l.lowerBlock(v)
	case *ast.IfExpr:
		return l.lowerIf(v)
	case *ast.WhileExpr:
		return l.lowerWhile(v)
	case *ast.LoopExpr:
		return l.lowerLoop(v)
	}

	report.ReportICE("cannot lower expression at %v", expr.Span())
	return nil
}

// lowerAddr lowers an expression to the address of its storage.  Plain
// values are spilled to a temporary slot, which is how borrows of
// temporaries and field access on call results work.
func (l *Lowerer) lowerAddr(expr ast.Expr) value.Value {
	switch v := expr.(type) {
	case *ast.Identifier:
		if sym := l.table.SymOf(v); sym.Kind == depm.SymVariable {
			return l.lookupLocal(sym.Name)
		}
	case *ast.Deref:
		return l.operand(l.lowerExpr(v.Operand), l.table.TypeOf(v.Operand))
	case *ast.FieldAccess:
		base, baseType := l.lowerPlaceBase(v.Base)
		st := baseType.(*types.StructType)

		l.ensureBlock()
		return l.block.NewGetElementPtr(l.convType(baseType), base,
			zero64(), constant.NewInt(lltypes.I32, int64(st.FieldIndex(v.Field))))
	case *ast.IndexExpr:
		base, baseType := l.lowerPlaceBase(v.Base)
		idx := l.operand(l.lowerExpr(v.Index), l.table.TypeOf(v.Index))

		l.ensureBlock()
		return l.block.NewGetElementPtr(l.convType(baseType), base, zero64(), idx)
	}

	return l.materialize(expr)
}

// lowerPlaceBase lowers the base of a field or index expression: a
// reference base contributes its pointee directly, anything else its
// address.
func (l *Lowerer) lowerPlaceBase(base ast.Expr) (value.Value, types.Type) {
	bt := l.table.TypeOf(base)
	if ref, ok := bt.(*types.RefType); ok {
		return l.operand(l.lowerExpr(base), bt), ref.Elem
	}

	return l.lowerAddr(base), bt
}

// materialize spills an expression's value to a fresh entry-block slot and
// returns the slot.
func (l *Lowerer) materialize(expr ast.Expr) value.Value {
	t := l.table.TypeOf(expr)
	v := l.operand(l.lowerExpr(expr), t)

	l.ensureBlock()
	slot := l.entryAlloca(l.convType(t), l.localName("tmp"))
	l.block.NewStore(v, slot)
	return slot
}

// operand guards a lowered operand: divergent and unit subexpressions yield
// nil, and any instruction consuming one is unreachable, so a placeholder of
// the right type keeps the module well formed.
func (l *Lowerer) operand(v value.Value, t types.Type) value.Value {
	if v != nil {
		return v
	}

	if isUnitLike(t) {
		return constant.False
	}

	return constant.NewZeroInitializer(l.convType(t))
}

// loadPlace lowers a place expression to its value by loading through its
// address.
func (l *Lowerer) loadPlace(expr ast.Expr) value.Value {
	t := l.table.TypeOf(expr)
	addr := l.lowerAddr(expr)

	if isUnitLike(t) {
		return nil
	}

	l.ensureBlock()
	return l.block.NewLoad(l.convType(t), addr)
}

// -----------------------------------------------------------------------------

// lowerLiteral lowers a literal at its resolved type.
func (l *Lowerer) lowerLiteral(lit *ast.Literal) value.Value {
	t := l.table.TypeOf(lit)

	switch lit.Kind {
	case ast.IntLit:
		return constant.NewInt(l.convType(t).(*lltypes.IntType), parseIntValue(lit.Text))
	case ast.BoolLit:
		return constant.NewBool(lit.Text == "true")
	case ast.CharLit:
		return constant.NewInt(lltypes.I32, int64([]rune(lit.Text)[0]))
	default:
		return nil
	}
}

// lowerNameRef lowers an identifier or path to its value: a load for
// variables and constants, the discriminant for enum variants.
func (l *Lowerer) lowerNameRef(expr ast.Expr) value.Value {
	sym := l.table.SymOf(expr)
	t := l.table.TypeOf(expr)

	switch sym.Kind {
	case depm.SymVariable:
		if isUnitLike(t) {
			return nil
		}

		l.ensureBlock()
		return l.block.NewLoad(l.convType(t), l.lookupLocal(sym.Name))
	case depm.SymConst:
		l.ensureBlock()
		return l.block.NewLoad(l.convType(t), l.consts[sym])
	case depm.SymVariant:
		et := sym.Type.(*types.EnumType)
		return constant.NewInt(lltypes.I32, int64(et.VariantIndex(sym.Name)))
	}

	report.ReportICE("cannot lower a reference to %s `%s`", sym.KindLabel(), sym.Name)
	return nil
}

// -----------------------------------------------------------------------------

// lowerBinary lowers a binary operator application.  Signedness of the
// operand type selects between the signed and unsigned division, remainder,
// right-shift, and ordering forms.
func (l *Lowerer) lowerBinary(bop *ast.BinaryOp) value.Value {
	switch bop.Op {
	case ast.OpLogAnd:
		return l.lowerLogical(bop, true)
	case ast.OpLogOr:
		return l.lowerLogical(bop, false)
	}

	lt := l.table.TypeOf(bop.Lhs)
	rt := l.table.TypeOf(bop.Rhs)

	x := l.operand(l.lowerExpr(bop.Lhs), lt)
	y := l.operand(l.lowerExpr(bop.Rhs), rt)
	l.ensureBlock()

	opType := lt
	if types.IsDivergent(opType) {
		opType = rt
	}

	switch bop.Op {
	case ast.OpAdd:
		return l.block.NewAdd(x, y)
	case ast.OpSub:
		return l.block.NewSub(x, y)
	case ast.OpMul:
		return l.block.NewMul(x, y)
	case ast.OpDiv:
		if intSigned(opType) {
			return l.block.NewSDiv(x, y)
		}
		return l.block.NewUDiv(x, y)
	case ast.OpRem:
		if intSigned(opType) {
			return l.block.NewSRem(x, y)
		}
		return l.block.NewURem(x, y)
	case ast.OpBitAnd:
		return l.block.NewAnd(x, y)
	case ast.OpBitOr:
		return l.block.NewOr(x, y)
	case ast.OpBitXor:
		return l.block.NewXor(x, y)
	case ast.OpShl:
		return l.block.NewShl(x, l.matchShiftAmount(y, rt, opType))
	case ast.OpShr:
		y = l.matchShiftAmount(y, rt, opType)
		if intSigned(opType) {
			return l.block.NewAShr(x, y)
		}
		return l.block.NewLShr(x, y)
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		return l.block.NewICmp(icmpPred(bop.Op, intSigned(opType)), x, y)
	}

	report.ReportICE("cannot lower operator `%s`", bop.Op.Repr())
	return nil
}

// matchShiftAmount widens or narrows a shift amount to the shifted operand's
// type, as LLVM shifts require matching operand types.
func (l *Lowerer) matchShiftAmount(v value.Value, from, to types.Type) value.Value {
	fb, tb := intBits(from), intBits(to)
	if types.IsDivergent(from) || fb == tb {
		return v
	}

	target := l.convType(to).(*lltypes.IntType)
	if fb > tb {
		return l.block.NewTrunc(v, target)
	}

	// Shift amounts are non-negative, so the widening is always zero extend.
	return l.block.NewZExt(v, target)
}

// icmpPred maps a comparison operator and operand signedness to the LLVM
// integer predicate.
func icmpPred(op ast.OpKind, signed bool) enum.IPred {
	switch op {
	case ast.OpEq:
		return enum.IPredEQ
	case ast.OpNe:
		return enum.IPredNE
	case ast.OpLt:
		if signed {
			return enum.IPredSLT
		}
		return enum.IPredULT
	case ast.OpGt:
		if signed {
			return enum.IPredSGT
		}
		return enum.IPredUGT
	case ast.OpLe:
		if signed {
			return enum.IPredSLE
		}
		return enum.IPredULE
	default:
		if signed {
			return enum.IPredSGE
		}
		return enum.IPredUGE
	}
}

// lowerLogical lowers `&&` and `||` with short-circuit control flow: the
// right operand gets its own block and the results merge through a phi.
func (l *Lowerer) lowerLogical(bop *ast.BinaryOp, isAnd bool) value.Value {
	x := l.operand(l.lowerExpr(bop.Lhs), l.table.TypeOf(bop.Lhs))
	l.ensureBlock()

	rhsBlock := l.newBlock("logical.rhs.")
	mergeBlock := l.newBlock("logical.exit.")

	lhsEnd := l.block
	if isAnd {
		lhsEnd.NewCondBr(x, rhsBlock, mergeBlock)
	} else {
		lhsEnd.NewCondBr(x, mergeBlock, rhsBlock)
	}

	l.block = rhsBlock
	y := l.operand(l.lowerExpr(bop.Rhs), l.table.TypeOf(bop.Rhs))

	var rhsEnd *ir.Block
	if l.block.Term == nil {
		rhsEnd = l.block
		rhsEnd.NewBr(mergeBlock)
	}

	l.block = mergeBlock

	shortCircuit := constant.Constant(constant.False)
	if !isAnd {
		shortCircuit = constant.True
	}

	// A divergent right operand never reaches the merge, so the result is
	// the short-circuit value itself.
	if rhsEnd == nil {
		return shortCircuit
	}

	return mergeBlock.NewPhi(ir.NewIncoming(shortCircuit, lhsEnd), ir.NewIncoming(y, rhsEnd))
}

// lowerUnary lowers `-x` as a subtraction from zero and `!x` as xor true.
func (l *Lowerer) lowerUnary(uop *ast.UnaryOp) value.Value {
	t := l.table.TypeOf(uop)
	x := l.operand(l.lowerExpr(uop.Operand), l.table.TypeOf(uop.Operand))
	l.ensureBlock()

	if uop.Op == ast.OpNot {
		return l.block.NewXor(x, constant.True)
	}

	return l.block.NewSub(constant.NewInt(l.convType(t).(*lltypes.IntType), 0), x)
}

// lowerDeref lowers `*x` as a value.
func (l *Lowerer) lowerDeref(d *ast.Deref) value.Value {
	t := l.table.TypeOf(d)
	ptr := l.operand(l.lowerExpr(d.Operand), l.table.TypeOf(d.Operand))

	if isUnitLike(t) {
		return nil
	}

	l.ensureBlock()
	return l.block.NewLoad(l.convType(t), ptr)
}

// lowerCast lowers `x as T` to the appropriate truncation or extension.
func (l *Lowerer) lowerCast(ce *ast.CastExpr) value.Value {
	from := l.table.TypeOf(ce.Src)
	to := l.table.TypeOf(ce)

	x := l.operand(l.lowerExpr(ce.Src), from)
	l.ensureBlock()

	if types.IsDivergent(from) || types.Equal(from, to) {
		return x
	}

	fb, tb := intBits(from), intBits(to)
	switch {
	case fb == tb:
		return x
	case fb > tb:
		return l.block.NewTrunc(x, l.convType(to).(*lltypes.IntType))
	case intSigned(from):
		return l.block.NewSExt(x, l.convType(to).(*lltypes.IntType))
	default:
		return l.block.NewZExt(x, l.convType(to).(*lltypes.IntType))
	}
}

// -----------------------------------------------------------------------------

// lowerCall lowers a call to a free or associated function.
func (l *Lowerer) lowerCall(call *ast.CallExpr) value.Value {
	fn := l.funcs[l.table.SymOf(call.Func)]

	args := l.lowerArgs(call.Args)
	l.ensureBlock()

	result := l.block.NewCall(fn, args...)
	if isUnitLike(l.table.TypeOf(call)) {
		return nil
	}

	return result
}

// lowerMethodCall lowers `recv.name(args...)`.  The receiver always passes
// by address: a reference receiver is already one, anything else is
// auto-borrowed.
func (l *Lowerer) lowerMethodCall(mc *ast.MethodCall) value.Value {
	fn := l.funcs[l.table.SymOf(mc)]

	var recv value.Value
	rt := l.table.TypeOf(mc.Recv)
	if _, ok := rt.(*types.RefType); ok {
		recv = l.operand(l.lowerExpr(mc.Recv), rt)
	} else {
		recv = l.lowerAddr(mc.Recv)
	}

	args := append([]value.Value{recv}, l.lowerArgs(mc.Args)...)
	l.ensureBlock()

	result := l.block.NewCall(fn, args...)
	if isUnitLike(l.table.TypeOf(mc)) {
		return nil
	}

	return result
}

// lowerArgs lowers an argument list, pruning unit-typed arguments after
// evaluating them for effect.
func (l *Lowerer) lowerArgs(args []ast.Expr) []value.Value {
	var out []value.Value
	for _, arg := range args {
		at := l.table.TypeOf(arg)

		v := l.lowerExpr(arg)
		if isUnitLike(at) {
			continue
		}

		out = append(out, l.operand(v, at))
	}

	return out
}

// -----------------------------------------------------------------------------

// lowerStructLit builds a struct value through a temporary slot, storing the
// fields in their written order.
func (l *Lowerer) lowerStructLit(sl *ast.StructLit) value.Value {
	st := l.table.TypeOf(sl).(*types.StructType)
	llty := l.convType(st)

	tmp := l.entryAlloca(llty, l.localName("lit."+st.Name))

	for _, field := range sl.Fields {
		idx := st.FieldIndex(field.Name)
		ft := st.Fields[idx].Type

		fv := l.lowerExpr(field.Value)
		if isUnitLike(ft) {
			continue
		}

		l.ensureBlock()
		ptr := l.block.NewGetElementPtr(llty, tmp,
			zero64(), constant.NewInt(lltypes.I32, int64(idx)))
		l.block.NewStore(l.operand(fv, ft), ptr)
	}

	l.ensureBlock()
	return l.block.NewLoad(llty, tmp)
}

// lowerArrayLit builds an array value through a temporary slot.
func (l *Lowerer) lowerArrayLit(al *ast.ArrayLit) value.Value {
	at := l.table.TypeOf(al).(*types.ArrayType)
	llty := l.convType(at)

	tmp := l.entryAlloca(llty, l.localName("lit.array"))

	for i, e := range al.Elems {
		ev := l.lowerExpr(e)

		l.ensureBlock()
		ptr := l.block.NewGetElementPtr(llty, tmp,
			zero64(), constant.NewInt(lltypes.I64, int64(i)))
		l.block.NewStore(l.operand(ev, at.Elem), ptr)
	}

	l.ensureBlock()
	return l.block.NewLoad(llty, tmp)
}

// lowerArrayRepeat evaluates the element once and fills the array with it.
func (l *Lowerer) lowerArrayRepeat(ar *ast.ArrayRepeat) value.Value {
	at := l.table.TypeOf(ar).(*types.ArrayType)
	llty := l.convType(at)

	tmp := l.entryAlloca(llty, l.localName("lit.array"))
	ev := l.operand(l.lowerExpr(ar.Value), at.Elem)
	l.ensureBlock()

	for i := int64(0); i < at.Len; i++ {
		ptr := l.block.NewGetElementPtr(llty, tmp,
			zero64(), constant.NewInt(lltypes.I64, i))
		l.block.NewStore(ev, ptr)
	}

	return l.block.NewLoad(llty, tmp)
}

// -----------------------------------------------------------------------------

// zero64 is the leading GEP index.
func zero64() constant.Constant {
	return constant.NewInt(lltypes.I64, 0)
}

// parseIntValue parses validated integer literal text, honoring base
// prefixes and digit separators.
func parseIntValue(text string) int64 {
	v, err := strconv.ParseInt(strings.ReplaceAll(text, "_", ""), 0, 64)
	if err != nil {
		report.ReportICE("invalid integer literal `%s` reached lowering", text)
	}

	return v
}
