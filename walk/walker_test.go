package walk

import (
	"strings"
	"testing"

	"sablec/ast"
	"sablec/report"
	"sablec/syntax"
	"sablec/types"
)

// checkSource parses and checks a source string, failing the test on a parse
// error.  The check result may carry a compile error.
func checkSource(t *testing.T, src string) (*ast.Crate, *Result, *report.CompileError) {
	t.Helper()

	crate, cerr := syntax.ParseString("test.sb", "test.sb", src)
	if cerr != nil {
		t.Fatalf("parse error: %s", cerr.Error())
	}

	res, cerr := Check(crate)
	return crate, res, cerr
}

// mustCheck checks a source string that is expected to be valid.
func mustCheck(t *testing.T, src string) (*ast.Crate, *Result) {
	t.Helper()

	crate, res, cerr := checkSource(t, src)
	if cerr != nil {
		t.Fatalf("unexpected error: %s", cerr.Error())
	}

	return crate, res
}

// wantError checks a source string that is expected to fail with an error of
// the given kind whose message contains the given fragment.
func wantError(t *testing.T, src string, kind int, fragment string) {
	t.Helper()

	_, _, cerr := checkSource(t, src)
	if cerr == nil {
		t.Fatal("expected an error, got none")
	}

	if cerr.Kind != kind {
		t.Errorf("expected error kind %d, got %d (%s)", kind, cerr.Kind, cerr.Error())
	}

	if !strings.Contains(cerr.Message, fragment) {
		t.Errorf("expected message containing %q, got %q", fragment, cerr.Message)
	}
}

// fnBody returns the body of the index-th top-level item, which must be a
// function definition.
func fnBody(t *testing.T, crate *ast.Crate, index int) *ast.Block {
	t.Helper()

	fd, ok := crate.Items[index].(*ast.FuncDef)
	if !ok {
		t.Fatalf("item %d is not a function", index)
	}

	return fd.Body
}

// -----------------------------------------------------------------------------

func TestCheckValidProgram(t *testing.T) {
	mustCheck(t, `
struct Point { x: i64, y: i64 }

enum Color { Red, Green, Blue }

trait Area {
	fn area(&self) -> i64;
	const SIDES: i32;
}

impl Point {
	fn origin() -> Point {
		Point { x: 0, y: 0 }
	}

	fn shift(&mut self, dx: i64) {
		self.x += dx;
	}
}

impl Area for Point {
	fn area(&self) -> i64 {
		self.x * self.y
	}

	const SIDES: i32 = 4;
}

const LIMIT: i64 = 100;

fn main() {
	let mut p = Point::origin();
	p.shift(LIMIT);

	let a = p.area();
	let c = Color::Green;
	let wide = a > 10 && c == Color::Green;

	_ = wide;
}
`)
}

func TestIntLiteralDefaultsToI32(t *testing.T) {
	crate, res := mustCheck(t, `
fn main() {
	let x = 5;
	_ = x;
}
`)

	init := fnBody(t, crate, 0).Stmts[0].(*ast.VarDecl).Init
	if !types.Equal(res.Table.TypeOf(init), types.PrimType(types.PrimI32)) {
		t.Errorf("unannotated literal has type %s, want i32", res.Table.TypeOf(init).Repr())
	}
}

func TestIntLiteralTakesAnnotation(t *testing.T) {
	crate, res := mustCheck(t, `
fn main() {
	let x: u64 = 5;
	_ = x;
}
`)

	init := fnBody(t, crate, 0).Stmts[0].(*ast.VarDecl).Init
	if !types.Equal(res.Table.TypeOf(init), types.PrimType(types.PrimU64)) {
		t.Errorf("annotated literal has type %s, want u64", res.Table.TypeOf(init).Repr())
	}
}

func TestIntLiteralFromReturnType(t *testing.T) {
	crate, res := mustCheck(t, `
fn answer() -> i64 { 41 + 1 }
`)

	tail := fnBody(t, crate, 0).Tail
	if !types.Equal(res.Table.TypeOf(tail), types.PrimType(types.PrimI64)) {
		t.Errorf("tail has type %s, want i64", res.Table.TypeOf(tail).Repr())
	}
}

func TestIntLiteralFromOperandPeer(t *testing.T) {
	crate, res := mustCheck(t, `
fn main() {
	let base: u32 = 7;
	let x = base + 1;
	_ = x;
}
`)

	sum := fnBody(t, crate, 0).Stmts[1].(*ast.VarDecl).Init.(*ast.BinaryOp)
	if !types.Equal(res.Table.TypeOf(sum.Rhs), types.PrimType(types.PrimU32)) {
		t.Errorf("peer-typed literal has type %s, want u32", res.Table.TypeOf(sum.Rhs).Repr())
	}
}

func TestLiteralOverflowRejected(t *testing.T) {
	wantError(t, `
fn main() {
	let x = 99999999999999999999999999;
	_ = x;
}
`, report.ErrSyntax, "out of range")
}

func TestLiteralRangeAgainstAnnotation(t *testing.T) {
	wantError(t, `
fn main() {
	let x: i32 = 5000000000;
	_ = x;
}
`, report.ErrTypeMismatch, "out of range for `i32`")
}

func TestLiteralRangeAtDefault(t *testing.T) {
	wantError(t, `
fn main() {
	let x = 5000000000;
	_ = x;
}
`, report.ErrTypeMismatch, "out of range for `i32`")
}

func TestLiteralRangeUnsigned(t *testing.T) {
	mustCheck(t, `
fn main() {
	let x: u32 = 4294967295;
	_ = x;
}
`)

	wantError(t, `
fn main() {
	let x: u32 = 4294967296;
	_ = x;
}
`, report.ErrTypeMismatch, "out of range for `u32`")
}

func TestWideLiteralFitsAnnotation(t *testing.T) {
	mustCheck(t, `
fn main() {
	let x: i64 = 5000000000;
	_ = x;
}
`)
}

// -----------------------------------------------------------------------------

func TestLoopYieldFromReturnContext(t *testing.T) {
	crate, res := mustCheck(t, `
fn first() -> i64 {
	loop {
		break 1;
	}
}
`)

	brk := fnBody(t, crate, 0).Tail.(*ast.LoopExpr).Body.Stmts[0].(*ast.BreakStmt)
	if !types.Equal(res.Table.TypeOf(brk.Value), types.PrimType(types.PrimI64)) {
		t.Errorf("break value has type %s, want i64", res.Table.TypeOf(brk.Value).Repr())
	}
}

func TestLoopYieldUnifiedByLaterBreak(t *testing.T) {
	crate, res := mustCheck(t, `
fn pick(flag: bool, typed: u64) -> u64 {
	loop {
		if flag {
			break 1;
		}
		break typed;
	}
}
`)

	loop := fnBody(t, crate, 0).Tail.(*ast.LoopExpr)
	first := loop.Body.Stmts[0].(*ast.ExprStmt).Expr.(*ast.IfExpr).Then.Stmts[0].(*ast.BreakStmt)
	if !types.Equal(res.Table.TypeOf(first.Value), types.PrimType(types.PrimU64)) {
		t.Errorf("earlier break has type %s, want u64", res.Table.TypeOf(first.Value).Repr())
	}
}

func TestLoopYieldBoundBySeededBreak(t *testing.T) {
	crate, res := mustCheck(t, `
fn pick(flag: bool, typed: u64) -> u64 {
	loop {
		if flag {
			break typed;
		}
		break 1;
	}
}
`)

	loop := fnBody(t, crate, 0).Tail.(*ast.LoopExpr)
	second := loop.Body.Stmts[1].(*ast.BreakStmt)
	if !types.Equal(res.Table.TypeOf(second.Value), types.PrimType(types.PrimU64)) {
		t.Errorf("later break has type %s, want u64", res.Table.TypeOf(second.Value).Repr())
	}
}

func TestLoopYieldMismatch(t *testing.T) {
	wantError(t, `
fn main() {
	let x = loop {
		if true {
			break true;
		}
		break 'a';
	};
	_ = x;
}
`, report.ErrTypeMismatch, "loop yields")
}

func TestBreakWithValueInWhile(t *testing.T) {
	wantError(t, `
fn main() {
	while true {
		break 3;
	}
}
`, report.ErrInvalidControlFlow, "inside `loop`")
}

func TestBreakOutsideLoop(t *testing.T) {
	wantError(t, `
fn main() {
	break;
}
`, report.ErrInvalidControlFlow, "outside of a loop")
}

func TestContinueOutsideLoop(t *testing.T) {
	wantError(t, `
fn main() {
	continue;
}
`, report.ErrInvalidControlFlow, "outside of a loop")
}

func TestLoopWithoutBreakIsDivergent(t *testing.T) {
	mustCheck(t, `
fn spin() -> i64 {
	loop {}
}
`)
}

// -----------------------------------------------------------------------------

func TestDuplicateTraitImpl(t *testing.T) {
	wantError(t, `
struct S { v: i32 }
trait T {
	fn get(&self) -> i32;
}
impl T for S {
	fn get(&self) -> i32 { self.v }
}
impl T for S {
	fn get(&self) -> i32 { self.v }
}
`, report.ErrRedeclaration, "already implemented")
}

func TestDuplicateTopLevelName(t *testing.T) {
	wantError(t, `
fn thing() {}
struct thing { v: i32 }
`, report.ErrRedeclaration, "already declared")
}

func TestMissingTraitMember(t *testing.T) {
	wantError(t, `
struct S { v: i32 }
trait T {
	fn get(&self) -> i32;
	fn set(&mut self, v: i32);
}
impl T for S {
	fn get(&self) -> i32 { self.v }
}
`, report.ErrUndefinedName, "missing member")
}

func TestExtraTraitImplMember(t *testing.T) {
	wantError(t, `
struct S { v: i32 }
trait T {
	fn get(&self) -> i32;
}
impl T for S {
	fn get(&self) -> i32 { self.v }
	fn extra(&self) -> i32 { 0 }
}
`, report.ErrUndefinedName, "not a member of trait")
}

func TestTraitImplSignatureMismatch(t *testing.T) {
	wantError(t, `
struct S { v: i32 }
trait T {
	fn get(&self) -> i32;
}
impl T for S {
	fn get(&self) -> i64 { 0 }
}
`, report.ErrTypeMismatch, "requires")
}

func TestTraitSelfResolvesToTarget(t *testing.T) {
	mustCheck(t, `
struct Pair { a: i32, b: i32 }
trait Dup {
	fn dup(&self) -> Self;
}
impl Dup for Pair {
	fn dup(&self) -> Pair {
		Pair { a: self.a, b: self.b }
	}
}
`)
}

func TestTraitSelfMismatchRejected(t *testing.T) {
	wantError(t, `
struct Pair { a: i32, b: i32 }
struct Other { c: i32 }
trait Dup {
	fn dup(&self) -> Self;
}
impl Dup for Pair {
	fn dup(&self) -> Other {
		Other { c: self.a }
	}
}
`, report.ErrTypeMismatch, "requires")
}

func TestImplTargetMustBeNominal(t *testing.T) {
	wantError(t, `
impl i32 {
	fn zero() -> i32 { 0 }
}
`, report.ErrTypeMismatch, "struct or enum")
}

// -----------------------------------------------------------------------------

func TestConstReferencesConst(t *testing.T) {
	_, res := mustCheck(t, `
const BASE: i64 = 10;
const SCALED: i64 = BASE * 4 + 2;
`)

	sym := res.Tree.Lookup(0, "SCALED")
	if !sym.HasValue || sym.Value != 42 {
		t.Errorf("SCALED evaluated to %d, want 42", sym.Value)
	}
}

func TestConstCycle(t *testing.T) {
	wantError(t, `
const A: i32 = B;
const B: i32 = A;
`, report.ErrNonConstant, "depends on its own value")
}

func TestConstDivisionByZero(t *testing.T) {
	wantError(t, `
const BAD: i32 = 1 / 0;
`, report.ErrNonConstant, "division by zero")
}

func TestConstKindMismatch(t *testing.T) {
	wantError(t, `
const FLAG: bool = 3;
`, report.ErrTypeMismatch, "declared type")
}

func TestConstValueRange(t *testing.T) {
	wantError(t, `
const BIG: i32 = 5000000000;
`, report.ErrTypeMismatch, "out of range for `i32`")
}

func TestConstFromEnumVariant(t *testing.T) {
	_, res := mustCheck(t, `
enum Color { Red, Green, Blue }
const PICK: i32 = Color::Blue;
`)

	sym := res.Tree.Lookup(0, "PICK")
	if sym.Value != 2 {
		t.Errorf("PICK evaluated to %d, want 2", sym.Value)
	}
}

func TestNonConstantArrayLength(t *testing.T) {
	wantError(t, `
fn main() {
	let n = 3;
	let a = [0; n];
	_ = a[0];
}
`, report.ErrNonConstant, "constant expression")
}

func TestNegativeArrayLength(t *testing.T) {
	wantError(t, `
fn main() {
	let a = [0; 0 - 1];
	_ = a;
}
`, report.ErrTypeMismatch, "non-negative")
}

// -----------------------------------------------------------------------------

func TestAssignToImmutable(t *testing.T) {
	wantError(t, `
fn main() {
	let x = 1;
	x = 2;
}
`, report.ErrNotAssignable, "cannot assign")
}

func TestAssignThroughSharedRef(t *testing.T) {
	wantError(t, `
fn set(r: &i32) {
	*r = 5;
}
`, report.ErrNotAssignable, "cannot assign")
}

func TestAssignThroughMutRef(t *testing.T) {
	mustCheck(t, `
fn set(r: &mut i32) {
	*r = 5;
}
`)
}

func TestDestructuringAssign(t *testing.T) {
	mustCheck(t, `
struct Point { x: i64, y: i64 }

fn main() {
	let mut a: i64 = 0;
	Point { x: a, y: _ } = Point { x: 3, y: 4 };
	_ = a;
}
`)
}

func TestDestructuringUnknownField(t *testing.T) {
	wantError(t, `
struct Point { x: i64, y: i64 }

fn main() {
	let mut a: i64 = 0;
	Point { z: a } = Point { x: 3, y: 4 };
}
`, report.ErrUndefinedName, "no field")
}

func TestMutBorrowOfImmutable(t *testing.T) {
	wantError(t, `
fn main() {
	let x = 1;
	let r = &mut x;
	_ = r;
}
`, report.ErrNotAssignable, "mutably borrow")
}

func TestMethodRequiresMutReceiver(t *testing.T) {
	wantError(t, `
struct Counter { n: i32 }

impl Counter {
	fn bump(&mut self) {
		self.n += 1;
	}
}

fn main() {
	let c = Counter { n: 0 };
	c.bump();
}
`, report.ErrNotAssignable, "&mut self")
}

func TestMethodAutoDerefReceiver(t *testing.T) {
	mustCheck(t, `
struct Counter { n: i32 }

impl Counter {
	fn get(&self) -> i32 { self.n }
}

fn read(c: &Counter) -> i32 {
	c.get()
}
`)
}

// -----------------------------------------------------------------------------

func TestIfBranchMismatch(t *testing.T) {
	wantError(t, `
fn main() {
	let x = if true { 1 } else { false };
	_ = x;
}
`, report.ErrTypeMismatch, "mismatched types")
}

func TestIfWithoutElseCannotYield(t *testing.T) {
	wantError(t, `
fn main() {
	let x = if true { 1 };
	_ = x;
}
`, report.ErrTypeMismatch, "without `else`")
}

func TestIfBranchesUnifyUntyped(t *testing.T) {
	crate, res := mustCheck(t, `
fn pick(flag: bool) -> u32 {
	if flag { 1 } else { 2 }
}
`)

	tail := fnBody(t, crate, 0).Tail
	if !types.Equal(res.Table.TypeOf(tail), types.PrimType(types.PrimU32)) {
		t.Errorf("if has type %s, want u32", res.Table.TypeOf(tail).Repr())
	}
}

func TestDivergentArmAdoptsOtherType(t *testing.T) {
	mustCheck(t, `
fn clamp(v: i64) -> i64 {
	let x = if v > 10 { return 10; } else { v };
	x
}
`)
}

func TestConditionMustBeBool(t *testing.T) {
	wantError(t, `
fn main() {
	if 1 {}
}
`, report.ErrTypeMismatch, "expected `bool`")
}

// -----------------------------------------------------------------------------

func TestFunctionsNotFirstClass(t *testing.T) {
	wantError(t, `
fn helper() -> i32 { 0 }

fn main() {
	let f = helper;
	_ = f;
}
`, report.ErrTypeMismatch, "not first-class")
}

func TestAssociatedFunctionNotFirstClass(t *testing.T) {
	wantError(t, `
struct S { v: i32 }

impl S {
	fn make() -> S { S { v: 0 } }
}

fn main() {
	let f = S::make;
	_ = f;
}
`, report.ErrTypeMismatch, "not first-class")
}

func TestCallArgumentCount(t *testing.T) {
	wantError(t, `
fn add(a: i32, b: i32) -> i32 { a + b }

fn main() {
	let x = add(1);
	_ = x;
}
`, report.ErrTypeMismatch, "argument")
}

func TestMainSignature(t *testing.T) {
	wantError(t, `
fn main(x: i32) {
	_ = x;
}
`, report.ErrTypeMismatch, "`main`")
}

func TestUndefinedName(t *testing.T) {
	wantError(t, `
fn main() {
	let x = nowhere;
	_ = x;
}
`, report.ErrUndefinedName, "nowhere")
}

// -----------------------------------------------------------------------------

func TestCastEnumToInteger(t *testing.T) {
	mustCheck(t, `
enum Color { Red, Green, Blue }

fn disc(c: Color) -> u64 {
	c as u64
}
`)
}

func TestInvalidCast(t *testing.T) {
	wantError(t, `
fn main() {
	let b = 1 as bool;
	_ = b;
}
`, report.ErrTypeMismatch, "cannot cast")
}

func TestComparisonOnStructRejected(t *testing.T) {
	wantError(t, `
struct S { v: i32 }

fn main() {
	let eq = S { v: 1 } == S { v: 2 };
	_ = eq;
}
`, report.ErrTypeMismatch, "cannot compare")
}

func TestOrderingOnBoolRejected(t *testing.T) {
	wantError(t, `
fn main() {
	let lt = true < false;
	_ = lt;
}
`, report.ErrTypeMismatch, "cannot order")
}

func TestNegateUnsignedRejected(t *testing.T) {
	wantError(t, `
fn main() {
	let x: u32 = 3;
	let y = -x;
	_ = y;
}
`, report.ErrTypeMismatch, "cannot negate")
}

func TestShiftAmountIndependentType(t *testing.T) {
	mustCheck(t, `
fn shift(v: i64, by: u32) -> i64 {
	v << by
}
`)
}

// -----------------------------------------------------------------------------

func TestStructLitMissingField(t *testing.T) {
	wantError(t, `
struct Point { x: i64, y: i64 }

fn main() {
	let p = Point { x: 1 };
	_ = p.y;
}
`, report.ErrTypeMismatch, "missing field")
}

func TestStructLitDuplicateField(t *testing.T) {
	wantError(t, `
struct Point { x: i64, y: i64 }

fn main() {
	let p = Point { x: 1, x: 2, y: 3 };
	_ = p.y;
}
`, report.ErrRedeclaration, "twice")
}

func TestArrayElementsUnify(t *testing.T) {
	crate, res := mustCheck(t, `
fn main() {
	let wide: i64 = 9;
	let a = [1, 2, wide];
	_ = a[0];
}
`)

	lit := fnBody(t, crate, 0).Stmts[1].(*ast.VarDecl).Init
	at := res.Table.TypeOf(lit).(*types.ArrayType)
	if !types.Equal(at.Elem, types.PrimType(types.PrimI64)) {
		t.Errorf("array element type is %s, want i64", at.Elem.Repr())
	}
}

func TestArrayElementsDefaultToI32(t *testing.T) {
	crate, res := mustCheck(t, `
fn main() {
	let a = [1, 2, 3];
	_ = a[0];
}
`)

	lit := fnBody(t, crate, 0).Stmts[0].(*ast.VarDecl).Init
	at := res.Table.TypeOf(lit).(*types.ArrayType)
	if !types.Equal(at.Elem, types.PrimType(types.PrimI32)) {
		t.Errorf("array element type is %s, want i32", at.Elem.Repr())
	}
}

func TestEmptyArrayWithoutContext(t *testing.T) {
	wantError(t, `
fn main() {
	let a = [];
	_ = a;
}
`, report.ErrTypeMismatch, "empty array")
}

func TestEmptyArrayWithAnnotation(t *testing.T) {
	crate, res := mustCheck(t, `
fn main() {
	let a: [i64; 0] = [];
	_ = a;
}
`)

	lit := fnBody(t, crate, 0).Stmts[0].(*ast.VarDecl).Init
	at := res.Table.TypeOf(lit).(*types.ArrayType)
	if at.Len != 0 || !types.Equal(at.Elem, types.PrimType(types.PrimI64)) {
		t.Errorf("empty array literal resolved to %s", at.Repr())
	}
}

func TestIndexOnValuePromotesToPlace(t *testing.T) {
	mustCheck(t, `
fn head() -> i32 {
	[10, 20, 30][0]
}
`)
}

func TestVariableShadowingInNestedBlocks(t *testing.T) {
	mustCheck(t, `
fn main() {
	let x = 1;
	{
		let x = true;
		_ = x;
	}
	_ = x;
}
`)
}
