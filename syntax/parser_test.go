package syntax

import (
	"testing"

	"sablec/ast"
	"sablec/report"
)

// parseCrate parses a source string expected to be well formed.
func parseCrate(t *testing.T, src string) *ast.Crate {
	t.Helper()

	crate, cerr := ParseString("test.sb", "test.sb", src)
	if cerr != nil {
		t.Fatalf("parse error: %s", cerr.Error())
	}

	return crate
}

// parseFnTail parses a single function and returns its body's tail
// expression.
func parseFnTail(t *testing.T, body string) ast.Expr {
	t.Helper()

	crate := parseCrate(t, "fn test() { "+body+" }")
	tail := crate.Items[0].(*ast.FuncDef).Body.Tail
	if tail == nil {
		t.Fatal("function body has no tail expression")
	}

	return tail
}

// wantSyntaxError parses a source string expected to be rejected.
func wantSyntaxError(t *testing.T, src string) {
	t.Helper()

	_, cerr := ParseString("test.sb", "test.sb", src)
	if cerr == nil {
		t.Fatal("expected a syntax error, got none")
	}

	if cerr.Kind != report.ErrSyntax {
		t.Errorf("expected a syntax error, got kind %d", cerr.Kind)
	}
}

// -----------------------------------------------------------------------------

func TestParseItems(t *testing.T) {
	crate := parseCrate(t, `
struct Point { x: i64, y: i64 }

enum Color { Red, Green, Blue }

trait Area {
	fn area(&self) -> i64;
	const SIDES: i32;
}

impl Point {
	fn norm(&self) -> i64 { self.x }
}

impl Area for Point {
	fn area(&self) -> i64 { 0 }
	const SIDES: i32 = 4;
}

const LIMIT: i64 = 100;

fn main() {}
`)

	if len(crate.Items) != 7 {
		t.Fatalf("parsed %d items, want 7", len(crate.Items))
	}

	ib := crate.Items[4].(*ast.ImplBlock)
	if ib.TraitName != "Area" {
		t.Errorf("trait impl parsed trait %q, want Area", ib.TraitName)
	}

	if len(ib.Members) != 2 {
		t.Errorf("trait impl has %d members, want 2", len(ib.Members))
	}
}

func TestParseSelfKinds(t *testing.T) {
	crate := parseCrate(t, `
impl S {
	fn a(&self) {}
	fn b(&mut self, v: i32) {}
	fn c() {}
}
`)

	members := crate.Items[0].(*ast.ImplBlock).Members
	kinds := []int{members[0].(*ast.FuncDef).SelfKind, members[1].(*ast.FuncDef).SelfKind, members[2].(*ast.FuncDef).SelfKind}
	if kinds[0] == kinds[1] || kinds[2] != 0 {
		t.Errorf("self kinds parsed as %v", kinds)
	}

	if len(members[1].(*ast.FuncDef).Params) != 1 {
		t.Error("self should not count as an ordinary parameter")
	}
}

// -----------------------------------------------------------------------------

func TestPrecedenceMulOverAdd(t *testing.T) {
	tail := parseFnTail(t, "1 + 2 * 3")

	add := tail.(*ast.BinaryOp)
	if add.Op != ast.OpAdd {
		t.Fatalf("top operator is %s, want +", add.Op.Repr())
	}

	if mul := add.Rhs.(*ast.BinaryOp); mul.Op != ast.OpMul {
		t.Errorf("right operand operator is %s, want *", mul.Op.Repr())
	}
}

func TestPrecedenceShiftOverComparison(t *testing.T) {
	tail := parseFnTail(t, "a << 2 < b")

	cmp := tail.(*ast.BinaryOp)
	if cmp.Op != ast.OpLt {
		t.Fatalf("top operator is %s, want <", cmp.Op.Repr())
	}

	if shift := cmp.Lhs.(*ast.BinaryOp); shift.Op != ast.OpShl {
		t.Errorf("left operand operator is %s, want <<", shift.Op.Repr())
	}
}

func TestPrecedenceAndOverOr(t *testing.T) {
	tail := parseFnTail(t, "a || b && c")

	or := tail.(*ast.BinaryOp)
	if or.Op != ast.OpLogOr {
		t.Fatalf("top operator is %s, want ||", or.Op.Repr())
	}

	if and := or.Rhs.(*ast.BinaryOp); and.Op != ast.OpLogAnd {
		t.Errorf("right operand operator is %s, want &&", and.Op.Repr())
	}
}

func TestCastBindsTighterThanBinary(t *testing.T) {
	tail := parseFnTail(t, "x as i64 + 1")

	add := tail.(*ast.BinaryOp)
	if add.Op != ast.OpAdd {
		t.Fatalf("top operator is %s, want +", add.Op.Repr())
	}

	if _, ok := add.Lhs.(*ast.CastExpr); !ok {
		t.Error("left operand should be the cast")
	}
}

func TestUnaryBinding(t *testing.T) {
	tail := parseFnTail(t, "-x * y")

	mul := tail.(*ast.BinaryOp)
	if mul.Op != ast.OpMul {
		t.Fatalf("top operator is %s, want *", mul.Op.Repr())
	}

	if neg := mul.Lhs.(*ast.UnaryOp); neg.Op != ast.OpNeg {
		t.Error("left operand should be the negation")
	}
}

// -----------------------------------------------------------------------------

func TestMethodCallVsFieldAccess(t *testing.T) {
	call := parseFnTail(t, "p.area()").(*ast.MethodCall)
	if call.Name != "area" {
		t.Errorf("method name parsed as %q", call.Name)
	}

	field := parseFnTail(t, "p.x").(*ast.FieldAccess)
	if field.Field != "x" {
		t.Errorf("field name parsed as %q", field.Field)
	}
}

func TestChainedPostfix(t *testing.T) {
	tail := parseFnTail(t, "grid[0].row().len")

	fa := tail.(*ast.FieldAccess)
	mc := fa.Base.(*ast.MethodCall)
	if _, ok := mc.Recv.(*ast.IndexExpr); !ok {
		t.Error("postfix chain did not associate left")
	}
}

func TestPathExpr(t *testing.T) {
	pe := parseFnTail(t, "Color::Blue").(*ast.PathExpr)
	if pe.Root != "Color" || pe.Member != "Blue" {
		t.Errorf("path parsed as %s::%s", pe.Root, pe.Member)
	}
}

func TestStructLitSuppressedInCondition(t *testing.T) {
	tail := parseFnTail(t, "while running { step(); }")

	we := tail.(*ast.WhileExpr)
	if _, ok := we.Cond.(*ast.Identifier); !ok {
		t.Error("condition should parse as a bare identifier, not a struct literal")
	}
}

func TestStructLitAllowedInsideConditionParens(t *testing.T) {
	tail := parseFnTail(t, "if check(Point { x: 1, y: 2 }) { 1 } else { 2 }")

	ie := tail.(*ast.IfExpr)
	call := ie.Cond.(*ast.CallExpr)
	if _, ok := call.Args[0].(*ast.StructLit); !ok {
		t.Error("struct literal inside call arguments should not be suppressed")
	}
}

func TestArrayForms(t *testing.T) {
	lit := parseFnTail(t, "[1, 2, 3]").(*ast.ArrayLit)
	if len(lit.Elems) != 3 {
		t.Errorf("array literal has %d elements, want 3", len(lit.Elems))
	}

	rep := parseFnTail(t, "[0; 8]").(*ast.ArrayRepeat)
	if rep.Value == nil || rep.Count == nil {
		t.Error("array repeat missing value or count")
	}

	empty := parseFnTail(t, "[]").(*ast.ArrayLit)
	if len(empty.Elems) != 0 {
		t.Errorf("empty array literal parsed %d elements", len(empty.Elems))
	}
}

func TestBlockTailVersusStatement(t *testing.T) {
	crate := parseCrate(t, `
fn test() -> i32 {
	helper();
	42
}
`)

	body := crate.Items[0].(*ast.FuncDef).Body
	if len(body.Stmts) != 1 {
		t.Fatalf("body has %d statements, want 1", len(body.Stmts))
	}

	if _, ok := body.Tail.(*ast.Literal); !ok {
		t.Error("trailing expression without semicolon should be the tail")
	}
}

func TestCompoundAssignOps(t *testing.T) {
	crate := parseCrate(t, `
fn test() {
	x += 1;
	x <<= 2;
}
`)

	stmts := crate.Items[0].(*ast.FuncDef).Body.Stmts
	if stmts[0].(*ast.Assign).Op != ast.OpAdd {
		t.Error("+= did not parse as an add assignment")
	}

	if stmts[1].(*ast.Assign).Op != ast.OpShl {
		t.Error("<<= did not parse as a shift assignment")
	}
}

// -----------------------------------------------------------------------------

func TestMissingSemicolonRejected(t *testing.T) {
	wantSyntaxError(t, `
fn test() {
	let x = 1
	x
}
`)
}

func TestStrayTokenRejected(t *testing.T) {
	wantSyntaxError(t, `struct S { x: i32 } ;`)
}

func TestTraitBodyOutsideTraitRejected(t *testing.T) {
	wantSyntaxError(t, `
fn headless();
`)
}

func TestUnterminatedBlockRejected(t *testing.T) {
	wantSyntaxError(t, `
fn test() {
	let x = 1;
`)
}
