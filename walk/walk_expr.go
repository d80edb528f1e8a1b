package walk

import (
	"sablec/ast"
	"sablec/depm"
	"sablec/report"
	"sablec/types"
)

// checkExpr checks an expression, annotates it in the side table, and
// returns its type.  The hint, when non-nil, is the type the surrounding
// context expects; it guides integer literals and composite literals but
// never overrides what the expression actually is.
func (c *Checker) checkExpr(expr ast.Expr, hint types.Type) types.Type {
	switch v := expr.(type) {
	case *ast.Literal:
		return c.checkLiteral(v, hint)
	case *ast.Identifier:
		return c.checkIdentifier(v)
	case *ast.PathExpr:
		return c.checkPath(v)
	case *ast.Wildcard:
		c.error(report.ErrNotAssignable, v.Span(),
			"`_` can only appear on the left-hand side of an assignment")
	case *ast.BinaryOp:
		return c.checkBinaryOp(v, hint)
	case *ast.UnaryOp:
		return c.checkUnaryOp(v, hint)
	case *ast.Borrow:
		return c.checkBorrow(v, hint)
	case *ast.Deref:
		return c.checkDeref(v)
	case *ast.CastExpr:
		return c.checkCast(v)
	case *ast.CallExpr:
		return c.checkCall(v)
	case *ast.MethodCall:
		return c.checkMethodCall(v)
	case *ast.FieldAccess:
		return c.checkFieldAccess(v)
	case *ast.IndexExpr:
		return c.checkIndex(v)
	case *ast.StructLit:
		return c.checkStructLit(v)
	case *ast.ArrayLit:
		return c.checkArrayLit(v, hint)
	case *ast.ArrayRepeat:
		return c.checkArrayRepeat(v, hint)
	case *ast.Block:
		return c.checkBlock(v, hint, depm.ScopeBlock)
	case *ast.IfExpr:
		return c.checkIf(v, hint)
	case *ast.WhileExpr:
		return c.checkWhile(v)
	case *ast.LoopExpr:
		return c.checkLoop(v)
	}

	report.ReportICE("unknown expression")
	return nil
}

// mustAssign checks that an expression of the given type satisfies the
// expected type.  Divergent expressions satisfy anything; pending untyped
// integers are bound if the expectation is a concrete integer type.
func (c *Checker) mustAssign(expr ast.Expr, t, want types.Type) {
	switch {
	case types.IsDivergent(t):
	case types.Equal(t, want):
	case types.IsUntyped(t) && types.IsInteger(want):
		c.bindUntyped(expr, want)
	default:
		c.error(report.ErrTypeMismatch, expr.Span(),
			"expected `%s`, found `%s`", want.Repr(), t.Repr())
	}
}

// bindUntyped resolves a pending untyped integer expression to its final
// type, recursing through the operand structure that produced it.
func (c *Checker) bindUntyped(expr ast.Expr, t types.Type) {
	if !types.IsUntyped(c.table.TypeOf(expr)) {
		return
	}

	c.table.Retype(expr, t)

	switch v := expr.(type) {
	case *ast.Literal:
		if !intFits(parseIntText(v.Text, v.Span()), t) {
			c.error(report.ErrTypeMismatch, v.Span(),
				"integer literal `%s` is out of range for `%s`", v.Text, t.Repr())
		}
	case *ast.UnaryOp:
		c.bindUntyped(v.Operand, t)
	case *ast.BinaryOp:
		switch v.Op {
		case ast.OpShl, ast.OpShr:
			// The shift amount's type is independent of the result's.
			c.bindUntyped(v.Lhs, t)
		default:
			c.bindUntyped(v.Lhs, t)
			c.bindUntyped(v.Rhs, t)
		}
	case *ast.Block:
		if v.Tail != nil {
			c.bindUntyped(v.Tail, t)
		}
	case *ast.IfExpr:
		c.bindUntyped(v.Then, t)
		if v.Else != nil {
			c.bindUntyped(v.Else, t)
		}
	case *ast.LoopExpr:
		for _, b := range c.loopBreaks[v] {
			c.bindUntyped(b, t)
		}
	}
}

// -----------------------------------------------------------------------------

// checkLiteral checks a literal.  Integer literals take a concrete integer
// hint immediately; otherwise they stay pending for the deferred resolver.
func (c *Checker) checkLiteral(lit *ast.Literal, hint types.Type) types.Type {
	switch lit.Kind {
	case ast.IntLit:
		// Validate the digits now so lowering never sees a bad literal.
		value := parseIntText(lit.Text, lit.Span())

		if hint != nil && types.IsInteger(hint) {
			if !intFits(value, hint) {
				c.error(report.ErrTypeMismatch, lit.Span(),
					"integer literal `%s` is out of range for `%s`", lit.Text, hint.Repr())
			}

			return c.setType(lit, hint, depm.ModeValue, nil)
		}

		return c.setType(lit, types.UntypedIntType{}, depm.ModeValue, nil)
	case ast.BoolLit:
		return c.setType(lit, types.PrimType(types.PrimBool), depm.ModeValue, nil)
	case ast.CharLit:
		return c.setType(lit, types.PrimType(types.PrimChar), depm.ModeValue, nil)
	default:
		return c.setType(lit, types.UnitType{}, depm.ModeValue, nil)
	}
}

// checkIdentifier checks a bare name reference.  Mutable variables are the
// only expressions that start out as mutable places.
func (c *Checker) checkIdentifier(id *ast.Identifier) types.Type {
	sym := c.lookup(id.Name, id.Span())

	switch sym.Kind {
	case depm.SymVariable:
		mode := depm.ModePlace
		if sym.Mutable {
			mode = depm.ModeMutPlace
		}

		return c.setType(id, sym.Type, mode, sym)
	case depm.SymConst:
		return c.setType(id, sym.Type, depm.ModeValue, sym)
	case depm.SymFunc:
		c.error(report.ErrTypeMismatch, id.Span(),
			"function `%s` must be called; functions are not first-class values", id.Name)
	default:
		c.error(report.ErrTypeMismatch, id.Span(),
			"%s `%s` cannot be used as a value", sym.KindLabel(), id.Name)
	}

	return nil
}

// checkPath checks `Root::member` outside of a call position: an enum
// variant or an associated constant.
func (c *Checker) checkPath(pe *ast.PathExpr) types.Type {
	sym := c.lookup(pe.Root, pe.RootPos)

	switch sym.Kind {
	case depm.SymEnum:
		et := sym.Type.(*types.EnumType)
		if et.VariantIndex(pe.Member) >= 0 {
			return c.setType(pe, et, depm.ModeValue, c.variantSyms[et][pe.Member])
		}

		if member := c.reg.LookupAssociated(et, pe.Member); member != nil {
			return c.checkPathMember(pe, member)
		}

		c.error(report.ErrUndefinedName, pe.MemberPos,
			"enum `%s` has no variant or member `%s`", pe.Root, pe.Member)
	case depm.SymStruct:
		member := c.reg.LookupAssociated(sym.Type, pe.Member)
		if member == nil {
			c.error(report.ErrUndefinedName, pe.MemberPos,
				"`%s` has no associated member `%s`", pe.Root, pe.Member)
		}

		return c.checkPathMember(pe, member)
	default:
		c.error(report.ErrTypeMismatch, pe.RootPos,
			"%s `%s` has no members", sym.KindLabel(), pe.Root)
	}

	return nil
}

// checkPathMember annotates a path that resolved to an associated member.
func (c *Checker) checkPathMember(pe *ast.PathExpr, member *depm.Symbol) types.Type {
	if member.Kind == depm.SymFunc {
		c.error(report.ErrTypeMismatch, pe.MemberPos,
			"associated function `%s` must be called; functions are not first-class values", pe.Member)
	}

	return c.setType(pe, member.Type, depm.ModeValue, member)
}

// -----------------------------------------------------------------------------

// checkBinaryOp checks a binary operator application.
func (c *Checker) checkBinaryOp(bop *ast.BinaryOp, hint types.Type) types.Type {
	switch bop.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpRem:
		t := c.checkOperands(bop, hint)
		if !types.IsNumeric(t) && !types.IsUntyped(t) && !types.IsDivergent(t) {
			c.error(report.ErrTypeMismatch, bop.OpPos,
				"operator `%s` requires integer operands, not `%s`", bop.Op.Repr(), t.Repr())
		}

		return c.setType(bop, t, depm.ModeValue, nil)
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor:
		t := c.checkOperands(bop, hint)
		if !types.IsNumeric(t) && !types.Equal(t, types.PrimType(types.PrimBool)) &&
			!types.IsUntyped(t) && !types.IsDivergent(t) {
			c.error(report.ErrTypeMismatch, bop.OpPos,
				"operator `%s` requires integer or bool operands, not `%s`", bop.Op.Repr(), t.Repr())
		}

		return c.setType(bop, t, depm.ModeValue, nil)
	case ast.OpShl, ast.OpShr:
		return c.checkShift(bop, hint)
	case ast.OpEq, ast.OpNe:
		t := c.checkOperands(bop, nil)
		if !comparableType(t) {
			c.error(report.ErrTypeMismatch, bop.OpPos,
				"operator `%s` cannot compare values of type `%s`", bop.Op.Repr(), t.Repr())
		}

		return c.setType(bop, types.PrimType(types.PrimBool), depm.ModeValue, nil)
	case ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		t := c.checkOperands(bop, nil)
		if !orderedType(t) {
			c.error(report.ErrTypeMismatch, bop.OpPos,
				"operator `%s` cannot order values of type `%s`", bop.Op.Repr(), t.Repr())
		}

		return c.setType(bop, types.PrimType(types.PrimBool), depm.ModeValue, nil)
	case ast.OpLogAnd, ast.OpLogOr:
		lt := c.checkExpr(bop.Lhs, nil)
		c.mustAssign(bop.Lhs, lt, types.PrimType(types.PrimBool))

		rt := c.checkExpr(bop.Rhs, nil)
		c.mustAssign(bop.Rhs, rt, types.PrimType(types.PrimBool))

		return c.setType(bop, types.PrimType(types.PrimBool), depm.ModeValue, nil)
	}

	report.ReportICE("unknown binary operator")
	return nil
}

// checkOperands checks both operands of a binary operator and unifies their
// types, binding a pending untyped side to a concrete integer one.
func (c *Checker) checkOperands(bop *ast.BinaryOp, hint types.Type) types.Type {
	lt := c.checkExpr(bop.Lhs, hint)

	rhint := lt
	if types.IsUntyped(lt) || types.IsDivergent(lt) {
		rhint = hint
	}
	rt := c.checkExpr(bop.Rhs, rhint)

	switch {
	case types.IsDivergent(lt):
		return rt
	case types.IsDivergent(rt):
		return lt
	case types.IsUntyped(lt) && types.IsUntyped(rt):
		return lt
	case types.IsUntyped(lt) && types.IsInteger(rt):
		c.bindUntyped(bop.Lhs, rt)
		return rt
	case types.IsUntyped(rt) && types.IsInteger(lt):
		c.bindUntyped(bop.Rhs, lt)
		return lt
	case types.Equal(lt, rt):
		return lt
	}

	c.error(report.ErrTypeMismatch, bop.OpPos,
		"operator `%s` has mismatched operand types `%s` and `%s`",
		bop.Op.Repr(), lt.Repr(), rt.Repr())
	return nil
}

// checkShift checks `<<` and `>>`.  The result takes the left operand's
// type; the amount may have any integer type.
func (c *Checker) checkShift(bop *ast.BinaryOp, hint types.Type) types.Type {
	lt := c.checkExpr(bop.Lhs, hint)
	if !types.IsNumeric(lt) && !types.IsUntyped(lt) && !types.IsDivergent(lt) {
		c.error(report.ErrTypeMismatch, bop.OpPos,
			"operator `%s` requires an integer operand, not `%s`", bop.Op.Repr(), lt.Repr())
	}

	rt := c.checkExpr(bop.Rhs, nil)
	if !types.IsNumeric(rt) && !types.IsUntyped(rt) && !types.IsDivergent(rt) {
		c.error(report.ErrTypeMismatch, bop.Rhs.Span(),
			"shift amount must be an integer, not `%s`", rt.Repr())
	}

	return c.setType(bop, lt, depm.ModeValue, nil)
}

// comparableType reports whether equality comparison is defined for a type.
func comparableType(t types.Type) bool {
	switch t.(type) {
	case types.PrimType, types.UntypedIntType, types.BottomType, types.NeverType, *types.EnumType:
		return true
	}

	return false
}

// orderedType reports whether ordering comparison is defined for a type.
func orderedType(t types.Type) bool {
	switch v := t.(type) {
	case types.PrimType:
		return v != types.PrimBool
	case types.UntypedIntType, types.BottomType, types.NeverType:
		return true
	}

	return false
}

// checkUnaryOp checks `-x` and `!x`.
func (c *Checker) checkUnaryOp(uop *ast.UnaryOp, hint types.Type) types.Type {
	if uop.Op == ast.OpNot {
		t := c.checkExpr(uop.Operand, nil)
		c.mustAssign(uop.Operand, t, types.PrimType(types.PrimBool))

		return c.setType(uop, types.PrimType(types.PrimBool), depm.ModeValue, nil)
	}

	t := c.checkExpr(uop.Operand, hint)

	switch {
	case types.IsUntyped(t), types.IsDivergent(t):
	case types.IsSigned(t):
	default:
		c.error(report.ErrTypeMismatch, uop.Span(),
			"cannot negate a value of type `%s`", t.Repr())
	}

	return c.setType(uop, t, depm.ModeValue, nil)
}

// -----------------------------------------------------------------------------

// checkBorrow checks `&x` and `&mut x`.  Borrowing a plain value materializes
// a temporary, so only borrowing an immutable place mutably is rejected.
func (c *Checker) checkBorrow(b *ast.Borrow, hint types.Type) types.Type {
	var elemHint types.Type
	if rh, ok := hint.(*types.RefType); ok {
		elemHint = rh.Elem
	}

	t := c.checkExpr(b.Operand, elemHint)

	if b.Mut && c.table.ModeOf(b.Operand) == depm.ModePlace {
		c.error(report.ErrNotAssignable, b.Operand.Span(),
			"cannot mutably borrow an immutable value")
	}

	// References never point at a pending literal.
	if types.IsUntyped(t) {
		c.bindUntyped(b.Operand, types.PrimType(types.PrimI32))
		t = types.PrimType(types.PrimI32)
	}

	return c.setType(b, &types.RefType{Elem: t, Mut: b.Mut}, depm.ModeValue, nil)
}

// checkDeref checks `*x`.  The place mode of the result follows the
// reference's mutability, not the operand's.
func (c *Checker) checkDeref(d *ast.Deref) types.Type {
	t := c.checkExpr(d.Operand, nil)

	ref, ok := t.(*types.RefType)
	if !ok {
		c.error(report.ErrTypeMismatch, d.Operand.Span(),
			"cannot dereference a value of type `%s`", t.Repr())
	}

	mode := depm.ModePlace
	if ref.Mut {
		mode = depm.ModeMutPlace
	}

	return c.setType(d, ref.Elem, mode, nil)
}

// checkCast checks `x as T`.
func (c *Checker) checkCast(ce *ast.CastExpr) types.Type {
	target := c.resolveType(ce.Target)

	st := c.checkExpr(ce.Src, nil)
	if types.IsUntyped(st) {
		bound := types.Type(types.PrimType(types.PrimI32))
		if types.IsInteger(target) {
			bound = target
		}

		c.bindUntyped(ce.Src, bound)
		st = bound
	}

	if !castable(st, target) {
		c.error(report.ErrTypeMismatch, ce.Span(),
			"cannot cast `%s` to `%s`", st.Repr(), target.Repr())
	}

	return c.setType(ce, target, depm.ModeValue, nil)
}

// castable reports whether an explicit cast between two types is legal:
// integer conversions, plus bool, char, and enum discriminants widening into
// integers.
func castable(src, target types.Type) bool {
	if types.IsDivergent(src) || types.Equal(src, target) {
		return true
	}

	if !types.IsInteger(target) {
		return false
	}

	switch src.(type) {
	case types.PrimType, *types.EnumType:
		return true
	}

	return false
}

// -----------------------------------------------------------------------------

// checkCall checks a call to a free or associated function.  Functions are
// not first-class, so the callee must be a name or path that resolves
// directly to a function symbol.
func (c *Checker) checkCall(call *ast.CallExpr) types.Type {
	sym := c.checkCallee(call.Func)
	ft := sym.Signature()

	c.checkArgs(call.Args, ft, call.Span())

	return c.setType(call, ft.ReturnType, depm.ModeValue, nil)
}

// checkCallee resolves and annotates the callee of a call expression.
func (c *Checker) checkCallee(callee ast.Expr) *depm.Symbol {
	switch v := callee.(type) {
	case *ast.Identifier:
		sym := c.lookup(v.Name, v.Span())
		if sym.Kind != depm.SymFunc {
			c.error(report.ErrTypeMismatch, v.Span(),
				"%s `%s` is not a function", sym.KindLabel(), v.Name)
		}

		c.setType(v, sym.Type, depm.ModeValue, sym)
		return sym
	case *ast.PathExpr:
		root := c.lookup(v.Root, v.RootPos)
		if root.Kind != depm.SymStruct && root.Kind != depm.SymEnum {
			c.error(report.ErrTypeMismatch, v.RootPos,
				"%s `%s` has no associated functions", root.KindLabel(), v.Root)
		}

		member := c.reg.LookupAssociated(root.Type, v.Member)
		if member == nil || member.Kind != depm.SymFunc {
			c.error(report.ErrUndefinedName, v.MemberPos,
				"`%s` has no associated function `%s`", v.Root, v.Member)
		}

		c.setType(v, member.Type, depm.ModeValue, member)
		return member
	}

	c.error(report.ErrTypeMismatch, callee.Span(), "expression is not callable")
	return nil
}

// checkArgs checks a call's arguments against the signature's parameters.
func (c *Checker) checkArgs(args []ast.Expr, ft *types.FuncType, span *report.TextSpan) {
	if len(args) != len(ft.ParamTypes) {
		c.error(report.ErrTypeMismatch, span,
			"expected %d argument(s), found %d", len(ft.ParamTypes), len(args))
	}

	for i, arg := range args {
		at := c.checkExpr(arg, ft.ParamTypes[i])
		c.mustAssign(arg, at, ft.ParamTypes[i])
	}
}

// checkMethodCall checks `recv.name(args...)`, resolving the method through
// the impl registry.  A reference receiver is dereferenced once; a plain
// place receiver is borrowed automatically.
func (c *Checker) checkMethodCall(mc *ast.MethodCall) types.Type {
	rt := c.checkExpr(mc.Recv, nil)

	base := rt
	viaRef, refMut := false, false
	if ref, ok := rt.(*types.RefType); ok {
		base, viaRef, refMut = ref.Elem, true, ref.Mut
	}

	method := c.reg.LookupMethod(base, mc.Name)
	if method == nil {
		c.error(report.ErrUndefinedName, mc.NamePos,
			"`%s` has no method `%s`", base.Repr(), mc.Name)
	}

	ft := method.Signature()
	if ft.Self == types.SelfRefMut {
		if viaRef && !refMut {
			c.error(report.ErrNotAssignable, mc.Recv.Span(),
				"method `%s` requires `&mut self`, but the receiver is behind `&`", mc.Name)
		}

		if !viaRef && c.table.ModeOf(mc.Recv) != depm.ModeMutPlace {
			c.error(report.ErrNotAssignable, mc.Recv.Span(),
				"method `%s` requires `&mut self`, but the receiver is not mutable", mc.Name)
		}
	}

	c.checkArgs(mc.Args, ft, mc.Span())

	return c.setType(mc, ft.ReturnType, depm.ModeValue, method)
}

// -----------------------------------------------------------------------------

// checkFieldAccess checks `base.field`, dereferencing a reference base once.
func (c *Checker) checkFieldAccess(fa *ast.FieldAccess) types.Type {
	bt, mode := c.checkReceiverPlace(fa.Base)

	st, ok := bt.(*types.StructType)
	if !ok || st.Opaque {
		c.error(report.ErrTypeMismatch, fa.Base.Span(),
			"type `%s` has no fields", bt.Repr())
	}

	idx := st.FieldIndex(fa.Field)
	if idx < 0 {
		c.error(report.ErrUndefinedName, fa.FieldPos,
			"struct `%s` has no field `%s`", st.Name, fa.Field)
	}

	return c.setType(fa, st.Fields[idx].Type, mode, nil)
}

// checkIndex checks `base[index]`.  Indexing a plain array value promotes
// the element to a mutable place backed by a temporary.
func (c *Checker) checkIndex(ie *ast.IndexExpr) types.Type {
	bt, mode := c.checkReceiverPlace(ie.Base)

	at, ok := bt.(*types.ArrayType)
	if !ok {
		c.error(report.ErrTypeMismatch, ie.Base.Span(),
			"cannot index a value of type `%s`", bt.Repr())
	}

	usize := types.PrimType(types.PrimUsize)
	it := c.checkExpr(ie.Index, usize)
	c.mustAssign(ie.Index, it, usize)

	if mode == depm.ModeValue {
		mode = depm.ModeMutPlace
	}

	return c.setType(ie, at.Elem, mode, nil)
}

// checkReceiverPlace checks the base of a field access or index expression,
// applying a single automatic dereference when the base is a reference.  It
// returns the effective base type and place mode.
func (c *Checker) checkReceiverPlace(base ast.Expr) (types.Type, int) {
	bt := c.checkExpr(base, nil)
	mode := c.table.ModeOf(base)

	if ref, ok := bt.(*types.RefType); ok {
		bt = ref.Elem

		mode = depm.ModePlace
		if ref.Mut {
			mode = depm.ModeMutPlace
		}
	}

	return bt, mode
}

// -----------------------------------------------------------------------------

// checkStructLit checks a struct literal, which must cover every field of a
// non-opaque struct exactly once.
func (c *Checker) checkStructLit(sl *ast.StructLit) types.Type {
	sym := c.lookup(sl.Name, sl.NamePos)
	if sym.Kind != depm.SymStruct {
		c.error(report.ErrTypeMismatch, sl.NamePos, "`%s` is not a struct", sl.Name)
	}

	st := sym.Type.(*types.StructType)
	if st.Opaque {
		c.error(report.ErrTypeMismatch, sl.NamePos,
			"`%s` cannot be constructed with a struct literal", sl.Name)
	}

	seen := make(map[string]bool)
	for _, field := range sl.Fields {
		idx := st.FieldIndex(field.Name)
		if idx < 0 {
			c.error(report.ErrUndefinedName, field.NamePos,
				"struct `%s` has no field `%s`", st.Name, field.Name)
		}

		if seen[field.Name] {
			c.error(report.ErrRedeclaration, field.NamePos,
				"field `%s` is initialized twice", field.Name)
		}
		seen[field.Name] = true

		want := st.Fields[idx].Type
		vt := c.checkExpr(field.Value, want)
		c.mustAssign(field.Value, vt, want)
	}

	for _, field := range st.Fields {
		if !seen[field.Name] {
			c.error(report.ErrTypeMismatch, sl.Span(),
				"missing field `%s` in struct literal", field.Name)
		}
	}

	return c.setType(sl, st, depm.ModeValue, sym)
}

// checkArrayLit checks `[a, b, c]`, unifying the element types.  Elements
// whose type no context forces default to i32, since an array type cannot
// stay pending.
func (c *Checker) checkArrayLit(al *ast.ArrayLit, hint types.Type) types.Type {
	var elem types.Type
	if ah, ok := hint.(*types.ArrayType); ok {
		elem = ah.Elem
	}

	var pendingElems []ast.Expr
	for _, e := range al.Elems {
		t := c.checkExpr(e, elem)

		switch {
		case types.IsDivergent(t):
		case types.IsUntyped(t):
			if elem != nil && types.IsInteger(elem) {
				c.bindUntyped(e, elem)
			} else {
				pendingElems = append(pendingElems, e)
			}
		case elem == nil:
			elem = t
		case !types.Equal(t, elem):
			c.error(report.ErrTypeMismatch, e.Span(),
				"array element has type `%s`, expected `%s`", t.Repr(), elem.Repr())
		}
	}

	if elem == nil || types.IsUntyped(elem) {
		elem = types.PrimType(types.PrimI32)
	}

	if len(al.Elems) == 0 && hint == nil {
		c.error(report.ErrTypeMismatch, al.Span(),
			"cannot infer the element type of an empty array literal")
	}

	for _, e := range pendingElems {
		if !types.IsInteger(elem) {
			c.error(report.ErrTypeMismatch, e.Span(),
				"array element has type `{integer}`, expected `%s`", elem.Repr())
		}

		c.bindUntyped(e, elem)
	}

	return c.setType(al, &types.ArrayType{Elem: elem, Len: int64(len(al.Elems))}, depm.ModeValue, nil)
}

// checkArrayRepeat checks `[value; N]`, where N must be a non-negative
// compile-time constant.
func (c *Checker) checkArrayRepeat(ar *ast.ArrayRepeat, hint types.Type) types.Type {
	var elemHint types.Type
	if ah, ok := hint.(*types.ArrayType); ok {
		elemHint = ah.Elem
	}

	vt := c.checkExpr(ar.Value, elemHint)
	if types.IsUntyped(vt) {
		bound := types.Type(types.PrimType(types.PrimI32))
		if elemHint != nil && types.IsInteger(elemHint) {
			bound = elemHint
		}

		c.bindUntyped(ar.Value, bound)
		vt = bound
	}

	count := c.foldConstExpr(ar.Count)
	if count < 0 {
		c.error(report.ErrTypeMismatch, ar.Count.Span(),
			"array length must be non-negative, got %d", count)
	}

	return c.setType(ar, &types.ArrayType{Elem: vt, Len: count}, depm.ModeValue, nil)
}
