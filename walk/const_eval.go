package walk

import (
	"strconv"
	"strings"

	"sablec/ast"
	"sablec/depm"
	"sablec/report"
	"sablec/types"
)

// Constant evaluation states.
const (
	constUnvisited = iota
	constInProgress
	constDone
)

// Kinds of folded constant value.
const (
	constInt = iota
	constBool
)

// evaluateConstants is the third pass: it folds the value of every constant
// declaration, global and associated, and checks it against the declared
// type.  Evaluation is demand driven, so constants may reference each other
// in any order; cycles are rejected.
func (c *Checker) evaluateConstants() {
	for _, item := range c.crate.Items {
		switch v := item.(type) {
		case *ast.ConstDecl:
			c.constValue(c.itemSyms[item])
		case *ast.ImplBlock:
			for _, member := range v.Members {
				if _, ok := member.(*ast.ConstDecl); ok {
					c.constValue(c.itemSyms[member])
				}
			}
		}
	}
}

// constValue returns the evaluated value of a constant symbol, folding it on
// first demand.
func (c *Checker) constValue(sym *depm.Symbol) int64 {
	switch c.constState[sym] {
	case constDone:
		return sym.Value
	case constInProgress:
		c.error(report.ErrNonConstant, sym.DefSpan,
			"constant `%s` depends on its own value", sym.Name)
	}

	decl := sym.Decl.(*ast.ConstDecl)
	if decl.Value == nil {
		c.error(report.ErrNonConstant, sym.DefSpan,
			"constant `%s` has no value", sym.Name)
	}

	c.constState[sym] = constInProgress
	value, kind := c.foldConst(decl.Value)
	c.constState[sym] = constDone

	wantBool := types.Equal(sym.Type, types.PrimType(types.PrimBool))
	if wantBool != (kind == constBool) {
		c.error(report.ErrTypeMismatch, decl.Value.Span(),
			"constant value does not match declared type `%s`", sym.Type.Repr())
	}

	if kind == constInt && !intFits(value, sym.Type) {
		c.error(report.ErrTypeMismatch, decl.Value.Span(),
			"constant value %d is out of range for `%s`", value, sym.Type.Repr())
	}

	sym.Value = value
	sym.HasValue = true
	return value
}

// foldConstExpr folds an expression required to be a compile-time integer
// constant, such as an array length.
func (c *Checker) foldConstExpr(expr ast.Expr) int64 {
	value, kind := c.foldConst(expr)
	if kind != constInt {
		c.error(report.ErrTypeMismatch, expr.Span(), "expected a constant integer")
	}

	return value
}

// foldConst folds a constant expression: integer, bool, and char literals,
// references to other constants and enum variants, unary negation, and basic
// integer arithmetic.  Anything else is not a compile-time constant.
func (c *Checker) foldConst(expr ast.Expr) (int64, int) {
	switch v := expr.(type) {
	case *ast.Literal:
		switch v.Kind {
		case ast.IntLit:
			return parseIntText(v.Text, v.Span()), constInt
		case ast.BoolLit:
			if v.Text == "true" {
				return 1, constBool
			}
			return 0, constBool
		case ast.CharLit:
			return int64([]rune(v.Text)[0]), constInt
		}
	case *ast.Identifier:
		sym := c.lookup(v.Name, v.Span())
		if sym.Kind != depm.SymConst {
			c.error(report.ErrNonConstant, v.Span(),
				"%s `%s` cannot be used in a constant expression", sym.KindLabel(), v.Name)
		}

		return c.namedConstValue(sym)
	case *ast.PathExpr:
		return c.foldConstPath(v)
	case *ast.UnaryOp:
		if v.Op == ast.OpNeg {
			operand, kind := c.foldConst(v.Operand)
			if kind != constInt {
				c.error(report.ErrTypeMismatch, v.Span(), "cannot negate a non-integer constant")
			}

			return -operand, constInt
		}
	case *ast.BinaryOp:
		return c.foldConstBinary(v)
	}

	c.error(report.ErrNonConstant, expr.Span(), "expression is not a compile-time constant")
	return 0, constInt
}

// namedConstValue folds a reference to another constant, returning its value
// and the kind implied by its declared type.
func (c *Checker) namedConstValue(sym *depm.Symbol) (int64, int) {
	value := c.constValue(sym)

	if types.Equal(sym.Type, types.PrimType(types.PrimBool)) {
		return value, constBool
	}

	return value, constInt
}

// foldConstPath folds `Enum::Variant` to the variant's discriminant, or
// `Type::CONST` to the associated constant's value.
func (c *Checker) foldConstPath(pe *ast.PathExpr) (int64, int) {
	sym := c.lookup(pe.Root, pe.RootPos)

	switch sym.Kind {
	case depm.SymEnum:
		et := sym.Type.(*types.EnumType)
		if idx := et.VariantIndex(pe.Member); idx >= 0 {
			return int64(idx), constInt
		}
	case depm.SymStruct:
		if member := c.reg.LookupAssociated(sym.Type, pe.Member); member != nil && member.Kind == depm.SymConst {
			return c.namedConstValue(member)
		}
	}

	c.error(report.ErrNonConstant, pe.Span(),
		"`%s::%s` is not a compile-time constant", pe.Root, pe.Member)
	return 0, constInt
}

// foldConstBinary folds integer arithmetic over constant operands.
func (c *Checker) foldConstBinary(bop *ast.BinaryOp) (int64, int) {
	switch bop.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpRem:
	default:
		c.error(report.ErrNonConstant, bop.OpPos,
			"operator `%s` cannot be used in a constant expression", bop.Op.Repr())
	}

	lhs, lk := c.foldConst(bop.Lhs)
	rhs, rk := c.foldConst(bop.Rhs)
	if lk != constInt || rk != constInt {
		c.error(report.ErrTypeMismatch, bop.OpPos,
			"operator `%s` requires integer constant operands", bop.Op.Repr())
	}

	switch bop.Op {
	case ast.OpAdd:
		return lhs + rhs, constInt
	case ast.OpSub:
		return lhs - rhs, constInt
	case ast.OpMul:
		return lhs * rhs, constInt
	case ast.OpDiv:
		if rhs == 0 {
			c.error(report.ErrNonConstant, bop.OpPos, "division by zero in constant expression")
		}
		return lhs / rhs, constInt
	default:
		if rhs == 0 {
			c.error(report.ErrNonConstant, bop.OpPos, "division by zero in constant expression")
		}
		return lhs % rhs, constInt
	}
}

// intFits reports whether an integer value is representable by a primitive
// type's machine representation.
func intFits(value int64, t types.Type) bool {
	pt, ok := t.(types.PrimType)
	if !ok {
		return true
	}

	bits := pt.Bits()
	switch {
	case bits >= 64:
		return true
	case pt.Signed():
		return -(int64(1)<<(bits-1)) <= value && value < int64(1)<<(bits-1)
	default:
		return 0 <= value && value < int64(1)<<bits
	}
}

// parseIntText parses the text of an integer literal, honoring base prefixes
// and digit separators.
func parseIntText(text string, span *report.TextSpan) int64 {
	value, err := strconv.ParseInt(strings.ReplaceAll(text, "_", ""), 0, 64)
	if err != nil {
		panic(report.Raise(report.ErrSyntax, span, "integer literal out of range"))
	}

	return value
}
