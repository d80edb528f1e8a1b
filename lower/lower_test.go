package lower

import (
	"strings"
	"testing"

	"sablec/syntax"
	"sablec/walk"
)

// lowerSource parses, checks, lowers, and verifies a source string, returning
// the rendered module text.
func lowerSource(t *testing.T, src string) string {
	t.Helper()

	crate, cerr := syntax.ParseString("test.sb", "test.sb", src)
	if cerr != nil {
		t.Fatalf("parse error: %s", cerr.Error())
	}

	res, cerr := walk.Check(crate)
	if cerr != nil {
		t.Fatalf("check error: %s", cerr.Error())
	}

	mod := Lower(crate, res)
	if err := Verify(mod); err != nil {
		t.Fatalf("verify failed: %s", err.Error())
	}

	return mod.String()
}

// wantContains asserts that the module text contains every fragment.
func wantContains(t *testing.T, text string, fragments ...string) {
	t.Helper()

	for _, f := range fragments {
		if !strings.Contains(text, f) {
			t.Errorf("module text missing %q", f)
		}
	}
}

// wantExcludes asserts that the module text contains none of the fragments.
func wantExcludes(t *testing.T, text string, fragments ...string) {
	t.Helper()

	for _, f := range fragments {
		if strings.Contains(text, f) {
			t.Errorf("module text unexpectedly contains %q", f)
		}
	}
}

// -----------------------------------------------------------------------------

func TestSignedArithmeticSelection(t *testing.T) {
	text := lowerSource(t, `
fn signed(a: i32, b: i32) -> i32 { a / b % b }
fn unsigned(a: u32, b: u32) -> u32 { a / b % b }
`)

	wantContains(t, text, "sdiv", "srem", "udiv", "urem")
}

func TestShiftSelection(t *testing.T) {
	text := lowerSource(t, `
fn signed(v: i64, by: i64) -> i64 { v >> by }
fn unsigned(v: u64, by: u64) -> u64 { v >> by }
`)

	wantContains(t, text, "ashr", "lshr")
}

func TestComparisonPredicates(t *testing.T) {
	text := lowerSource(t, `
fn signed(a: i32, b: i32) -> bool { a < b }
fn unsigned(a: u32, b: u32) -> bool { a < b }
`)

	wantContains(t, text, "icmp slt", "icmp ult")
}

func TestShiftAmountWidthMatched(t *testing.T) {
	text := lowerSource(t, `
fn wide(v: i64, by: u32) -> i64 { v << by }
fn narrow(v: i32, by: u64) -> i32 { v << by }
`)

	// A narrower amount is widened, a wider one truncated, before the shift.
	wantContains(t, text, "zext i32", "trunc i64")
}

// -----------------------------------------------------------------------------

func TestShadowedLocalSlots(t *testing.T) {
	text := lowerSource(t, `
fn main() {
	let x = 1;
	{
		let x = true;
		_ = x;
	}
	_ = x;
}
`)

	wantContains(t, text, "%x = alloca i32", "%x.1 = alloca i1")
}

func TestParamsSpilledToEntrySlots(t *testing.T) {
	text := lowerSource(t, `
fn add(a: i64, b: i64) -> i64 { a + b }
`)

	wantContains(t, text,
		"%a = alloca i64",
		"%b = alloca i64",
		"store i64 %0, i64* %a")
}

// -----------------------------------------------------------------------------

func TestShortCircuitAnd(t *testing.T) {
	text := lowerSource(t, `
fn rhs() -> bool { true }

fn test(a: bool) -> bool { a && rhs() }
`)

	wantContains(t, text, "logical.rhs.", "logical.exit.", "phi i1", "call i1 @s.rhs()")

	// The right-hand side is evaluated only on the fallthrough path, so its
	// call must not appear before the conditional branch.
	entry := text[:strings.Index(text, "logical.rhs.")]
	wantExcludes(t, entry, "call i1 @s.rhs()")
}

func TestShortCircuitOrConstantEdge(t *testing.T) {
	text := lowerSource(t, `
fn test(a: bool, b: bool) -> bool { a || b }
`)

	// The short-circuit edge carries the constant true into the phi.
	wantContains(t, text, "phi i1 [ true,")
}

// -----------------------------------------------------------------------------

func TestMangledNames(t *testing.T) {
	text := lowerSource(t, `
struct Point { x: i64, y: i64 }

trait Area {
	fn area(&self) -> i64;
}

impl Point {
	fn norm(&self) -> i64 { self.x + self.y }
}

impl Area for Point {
	fn area(&self) -> i64 { self.x * self.y }
}

const LIMIT: i64 = 9;

fn main() {}
`)

	wantContains(t, text,
		"@s.Point.norm",
		"@s.Point.Area.area",
		"@s.LIMIT",
		"define void @main()")
	wantExcludes(t, text, "@s.main")
}

func TestRepeatedInherentMemberNames(t *testing.T) {
	text := lowerSource(t, `
struct A { v: i32 }
struct B { v: i32 }

impl A {
	fn get(&self) -> i32 { self.v }
}

impl B {
	fn get(&self) -> i32 { self.v }
}
`)

	wantContains(t, text, "@s.A.get", "@s.B.get")
}

// -----------------------------------------------------------------------------

func TestStructAndStringTypeDefs(t *testing.T) {
	text := lowerSource(t, `
struct Point { x: i64, y: i64 }

fn main() {}
`)

	wantContains(t, text,
		"%String = type { i8*, i64, i64 }",
		"%Point = type { i64, i64 }")
}

func TestBuiltinsDeclared(t *testing.T) {
	text := lowerSource(t, `
fn main() {
	print_int(42);
}
`)

	wantContains(t, text,
		"declare void @sable_print_int(i64 %p0)",
		"declare i64 @sable_read_int()",
		"declare void @sable_string_push(%String* %self, i32 %p0)",
		"call void @sable_print_int(i64 42)")
}

func TestConstGlobalsImmutable(t *testing.T) {
	text := lowerSource(t, `
const LIMIT: i64 = 100;

fn read() -> i64 { LIMIT }
`)

	wantContains(t, text, "@s.LIMIT = constant i64 100", "load i64, i64* @s.LIMIT")
}

func TestEnumDiscriminants(t *testing.T) {
	text := lowerSource(t, `
enum Color { Red, Green, Blue }

fn pick() -> Color { Color::Blue }
`)

	wantContains(t, text, "ret i32 2")
}

// -----------------------------------------------------------------------------

func TestWhileLoopStructure(t *testing.T) {
	text := lowerSource(t, `
fn count(n: i64) -> i64 {
	let mut total: i64 = 0;
	let mut i: i64 = 0;
	while i < n {
		total += i;
		i += 1;
	}
	total
}
`)

	wantContains(t, text, "while.cond.", "while.body.", "while.exit.", "br i1")
}

func TestLoopBreakValue(t *testing.T) {
	text := lowerSource(t, `
fn find(limit: i64) -> i64 {
	let mut i: i64 = 0;
	loop {
		if i * i > limit {
			break i;
		}
		i += 1;
	}
}
`)

	wantContains(t, text, "%loop.val = alloca i64", "loop.exit.", "load i64, i64* %loop.val")
}

func TestBothArmsDivergentIf(t *testing.T) {
	text := lowerSource(t, `
fn choose(flag: bool) -> i64 {
	if flag {
		return 1;
	} else {
		return 2;
	}
}
`)

	wantContains(t, text, "unreachable")
}

func TestDivergentInitializerStopsEmission(t *testing.T) {
	text := lowerSource(t, `
fn choose(flag: bool) -> i64 {
	let x: i64 = if flag {
		return 1;
	} else {
		return 2;
	};
	x
}
`)

	wantContains(t, text, "ret i64 1", "ret i64 2", "unreachable")
	wantExcludes(t, text, "%x = alloca")
}

func TestDivergentLoopInitializer(t *testing.T) {
	text := lowerSource(t, `
fn spin() -> i64 {
	let x: i64 = loop {};
	x
}
`)

	wantContains(t, text, "loop.body.", "unreachable")
	wantExcludes(t, text, "%x = alloca", "loop.val")
}

func TestValueYieldingIfUsesPhi(t *testing.T) {
	text := lowerSource(t, `
fn max(a: i64, b: i64) -> i64 {
	if a > b { a } else { b }
}
`)

	wantContains(t, text, "if.then.", "if.else.", "if.exit.", "phi i64")
}

// -----------------------------------------------------------------------------

func TestCastSelection(t *testing.T) {
	text := lowerSource(t, `
fn widen_signed(v: i32) -> i64 { v as i64 }
fn widen_unsigned(v: u32) -> u64 { v as u64 }
fn narrow(v: i64) -> i32 { v as i32 }
`)

	wantContains(t, text, "sext i32", "zext i32", "trunc i64")
}

func TestUnitParamsPruned(t *testing.T) {
	text := lowerSource(t, `
fn takes_unit(u: (), v: i32) -> i32 { v }

fn main() {
	let x = takes_unit((), 3);
	_ = x;
}
`)

	wantContains(t, text, "define i32 @s.takes_unit(i32 %0)")
}

func TestMethodReceiverPassedByAddress(t *testing.T) {
	text := lowerSource(t, `
struct Counter { n: i64 }

impl Counter {
	fn bump(&mut self) {
		self.n += 1;
	}
}

fn main() {
	let mut c = Counter { n: 0 };
	c.bump();
}
`)

	wantContains(t, text, "call void @s.Counter.bump(%Counter* %c)")
}

// -----------------------------------------------------------------------------

func TestSumProgramEndToEnd(t *testing.T) {
	text := lowerSource(t, `
fn calculate_sum(values: &[i64; 4]) -> i64 {
	let mut total: i64 = 0;
	let mut i: usize = 0;
	while i < 4 {
		total += values[i];
		i += 1;
	}
	total
}

fn main() {
	let data: [i64; 4] = [10, 20, 30, 40];
	print_int(calculate_sum(&data));
}
`)

	wantContains(t, text,
		"define i64 @s.calculate_sum([4 x i64]* %0)",
		"define void @main()",
		"call i64 @s.calculate_sum(",
		"call void @sable_print_int(")
}

func TestDeterministicOutput(t *testing.T) {
	src := `
struct Point { x: i64, y: i64 }

enum Color { Red, Green, Blue }

const LIMIT: i64 = 7;

impl Point {
	fn norm(&self) -> i64 { self.x + self.y }
}

fn main() {
	let p = Point { x: 1, y: LIMIT };
	print_int(p.norm());
	let c = Color::Red;
	_ = c;
}
`

	lower := func() string {
		crate, cerr := syntax.ParseString("test.sb", "test.sb", src)
		if cerr != nil {
			t.Fatalf("parse error: %s", cerr.Error())
		}

		res, cerr := walk.Check(crate)
		if cerr != nil {
			t.Fatalf("check error: %s", cerr.Error())
		}

		return Lower(crate, res).String()
	}

	first := lower()
	second := lower()
	if first != second {
		t.Error("two compilations of the same source produced different modules")
	}
}
