package ast

import "sablec/report"

// Expr represents an expression node.
type Expr interface {
	ASTNode
	expr()
}

// -----------------------------------------------------------------------------

// OpKind identifies a unary or binary operator.
type OpKind int

// Enumeration of operator kinds.
const (
	OpNone = OpKind(iota)

	// Arithmetic.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem

	// Bitwise.
	OpBitAnd
	OpBitOr
	OpBitXor

	// Shifts.
	OpShl
	OpShr

	// Comparison.
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe

	// Lazy boolean.
	OpLogAnd
	OpLogOr

	// Unary.
	OpNeg
	OpNot
)

var opReprs = map[OpKind]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpRem: "%",
	OpBitAnd: "&", OpBitOr: "|", OpBitXor: "^",
	OpShl: "<<", OpShr: ">>",
	OpEq: "==", OpNe: "!=", OpLt: "<", OpGt: ">", OpLe: "<=", OpGe: ">=",
	OpLogAnd: "&&", OpLogOr: "||",
	OpNeg: "-", OpNot: "!",
}

func (op OpKind) Repr() string { return opReprs[op] }

// -----------------------------------------------------------------------------

// Enumeration of literal kinds.
const (
	IntLit = iota
	BoolLit
	CharLit
	UnitLit
)

// Literal represents a literal value.  The raw source text is retained so
// the integer literal resolver can materialize the value at its final type.
type Literal struct {
	ASTBase

	// Kind must be one of the enumerated literal kinds.
	Kind int

	// The raw source text of the literal.
	Text string
}

func (lit *Literal) expr() {}

// Identifier represents a bare name reference.
type Identifier struct {
	ASTBase

	Name string
}

func (id *Identifier) expr() {}

// PathExpr represents a two-segment path: `Type::member`, `Enum::Variant`, or
// `Trait::member` through an implementing type.
type PathExpr struct {
	ASTBase

	Root      string
	RootPos   *report.TextSpan
	Member    string
	MemberPos *report.TextSpan
}

func (pe *PathExpr) expr() {}

// Wildcard represents the `_` discard, valid only as an assignee.
type Wildcard struct {
	ASTBase
}

func (wc *Wildcard) expr() {}

// -----------------------------------------------------------------------------

// BinaryOp represents a binary operator application.
type BinaryOp struct {
	ASTBase

	Op    OpKind
	OpPos *report.TextSpan

	Lhs, Rhs Expr
}

func (bo *BinaryOp) expr() {}

// UnaryOp represents `-x` or `!x`.
type UnaryOp struct {
	ASTBase

	Op      OpKind
	Operand Expr
}

func (uo *UnaryOp) expr() {}

// Borrow represents `&x` or `&mut x`.
type Borrow struct {
	ASTBase

	Mut     bool
	Operand Expr
}

func (b *Borrow) expr() {}

// Deref represents `*x`.
type Deref struct {
	ASTBase

	Operand Expr
}

func (d *Deref) expr() {}

// CastExpr represents `x as T`.
type CastExpr struct {
	ASTBase

	Src    Expr
	Target TypeNode
}

func (ce *CastExpr) expr() {}

// -----------------------------------------------------------------------------

// CallExpr represents a call to a free function, an associated function, or
// a function-typed path.
type CallExpr struct {
	ASTBase

	Func Expr
	Args []Expr
}

func (ce *CallExpr) expr() {}

// MethodCall represents `recv.name(args...)`.  The callee is resolved through
// the impl registry, never by plain name lookup.
type MethodCall struct {
	ASTBase

	Recv    Expr
	Name    string
	NamePos *report.TextSpan
	Args    []Expr
}

func (mc *MethodCall) expr() {}

// FieldAccess represents `base.field`.
type FieldAccess struct {
	ASTBase

	Base     Expr
	Field    string
	FieldPos *report.TextSpan
}

func (fa *FieldAccess) expr() {}

// IndexExpr represents `base[index]`.
type IndexExpr struct {
	ASTBase

	Base  Expr
	Index Expr
}

func (ie *IndexExpr) expr() {}

// -----------------------------------------------------------------------------

// StructLitField is a single field initializer of a struct literal.
type StructLitField struct {
	Name    string
	NamePos *report.TextSpan
	Value   Expr
}

// StructLit represents `Name { field: value, ... }`.  Field order is the
// written order, which lowering preserves for evaluation.
type StructLit struct {
	ASTBase

	Name    string
	NamePos *report.TextSpan
	Fields  []StructLitField
}

func (sl *StructLit) expr() {}

// ArrayLit represents `[a, b, c]`.
type ArrayLit struct {
	ASTBase

	Elems []Expr
}

func (al *ArrayLit) expr() {}

// ArrayRepeat represents `[value; N]`.
type ArrayRepeat struct {
	ASTBase

	Value Expr
	Count Expr
}

func (ar *ArrayRepeat) expr() {}

// -----------------------------------------------------------------------------

// Block represents `{ stmts...; tail }`.  The tail expression is the block's
// value and may be nil.
type Block struct {
	ASTBase

	Stmts []Stmt
	Tail  Expr
}

func (b *Block) expr() {}

// IfExpr represents an if/else chain.  Else is nil, another *IfExpr, or a
// *Block.
type IfExpr struct {
	ASTBase

	Cond Expr
	Then *Block
	Else Expr
}

func (ie *IfExpr) expr() {}

// WhileExpr represents a while loop.  While loops always yield unit.
type WhileExpr struct {
	ASTBase

	Cond Expr
	Body *Block
}

func (we *WhileExpr) expr() {}

// LoopExpr represents an unconditional `loop`.  Its type is seeded by its
// first non-divergent break value.
type LoopExpr struct {
	ASTBase

	Body *Block
}

func (le *LoopExpr) expr() {}
