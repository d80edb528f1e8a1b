// Package walk implements the semantic checker of the Sable compiler: a
// multi-pass analysis that collects declarations, resolves types, evaluates
// constants, validates impl/trait conformance, and type-checks every
// function body.  Its output is the read-only scope tree, impl registry, and
// checked-expression side table consumed by the lowering engine.
package walk

import (
	"sablec/ast"
	"sablec/depm"
	"sablec/report"
	"sablec/types"
)

// Result carries the artifacts of a successful check.  Everything in it is
// read-only from this point on: lowering consults it and never mutates it.
type Result struct {
	Tree  *depm.ScopeTree
	Reg   *depm.Registry
	Table *depm.CheckedTable

	// ItemSyms maps declaration nodes to the symbols created for them.  Impl
	// blocks map to the symbol of their target type.
	ItemSyms map[ast.Item]*depm.Symbol
}

// loopContext tracks the control context of one lexically enclosing loop.
type loopContext struct {
	// isWhile marks a while loop, which never yields a value.
	isWhile bool

	// yield is the loop's yield type, seeded by the first non-divergent
	// break value.  Nil until seeded.
	yield types.Type

	// breaks collects the break value expressions, so a pending untyped
	// yield can be bound through them.
	breaks []ast.Expr
}

// Checker performs semantic analysis of a crate.
type Checker struct {
	crate *ast.Crate

	tree  *depm.ScopeTree
	reg   *depm.Registry
	table *depm.CheckedTable

	// itemSyms maps declaration nodes to their symbols.
	itemSyms map[ast.Item]*depm.Symbol

	// variantSyms holds the variant symbols of each enum.
	variantSyms map[*types.EnumType]map[string]*depm.Symbol

	// traitMembers holds the required member symbols of each trait.
	traitMembers map[*depm.Symbol][]*depm.Symbol

	// curScope is the index of the scope currently being checked into.
	curScope int

	// enclosingReturn is the return type of the enclosing function, or nil
	// outside of any function body.
	enclosingReturn types.Type

	// selfType is the target type of the impl or trait context currently
	// active, or nil.
	selfType types.Type

	// loops is the stack of lexically enclosing loops of the current body.
	loops []*loopContext

	// loopBreaks records the break value expressions of each loop, so a
	// pending untyped loop yield can be bound through them.
	loopBreaks map[*ast.LoopExpr][]ast.Expr

	// pending lists every expression annotated with a pending untyped
	// integer type, for the deferred literal resolver.
	pending []ast.Expr

	// constState tracks constant evaluation: unvisited, in progress (cycle
	// detection), or done.
	constState map[*depm.Symbol]int
}

// Check runs all semantic passes over a crate.  The first error raised by
// any pass aborts the check; on success the returned result is complete and
// ready for lowering.
func Check(crate *ast.Crate) (res *Result, cerr *report.CompileError) {
	defer report.Catch(&cerr)

	c := &Checker{
		crate:        crate,
		tree:         depm.NewScopeTree(),
		reg:          depm.NewRegistry(),
		table:        depm.NewCheckedTable(),
		itemSyms:     make(map[ast.Item]*depm.Symbol),
		variantSyms:  make(map[*types.EnumType]map[string]*depm.Symbol),
		traitMembers: make(map[*depm.Symbol][]*depm.Symbol),
		loopBreaks:   make(map[*ast.LoopExpr][]ast.Expr),
		constState:   make(map[*depm.Symbol]int),
	}

	depm.Universe(c.tree, c.reg)

	c.collectDecls()      // Pass 1: declaration collection.
	c.resolveSignatures() // Pass 2: type resolution.
	c.evaluateConstants() // Pass 3: constant evaluation.
	c.checkConformance()  // Pass 4: impl/trait conformance.
	c.checkBodies()       // Pass 5: full expression checking.
	c.resolveIntLits()    // Deferred integer literal resolution.

	return &Result{Tree: c.tree, Reg: c.reg, Table: c.table, ItemSyms: c.itemSyms}, nil
}

// -----------------------------------------------------------------------------

// error raises a compile error, aborting the current pass.
func (c *Checker) error(kind int, span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(kind, span, msg, args...))
}

// pushScope enters a new child scope of the given kind.
func (c *Checker) pushScope(kind int) {
	c.curScope = c.tree.NewScope(c.curScope, kind)
}

// popScope returns to the parent scope.
func (c *Checker) popScope() {
	c.curScope = c.tree.ParentOf(c.curScope)
}

// define adds a symbol to the current scope, raising a redeclaration error
// if the name is already bound there.
func (c *Checker) define(sym *depm.Symbol) {
	if prev := c.tree.Define(c.curScope, sym); prev != nil {
		c.error(report.ErrRedeclaration, sym.DefSpan,
			"`%s` is already declared in this scope as a %s", sym.Name, prev.KindLabel())
	}
}

// lookup resolves a name in the current scope chain, raising an undefined
// name error if it is nowhere visible.
func (c *Checker) lookup(name string, span *report.TextSpan) *depm.Symbol {
	if sym := c.tree.Lookup(c.curScope, name); sym != nil {
		return sym
	}

	c.error(report.ErrUndefinedName, span, "undefined name: `%s`", name)
	return nil
}

// setType records the checked annotation of an expression node, tracking
// pending untyped integers for the deferred resolver.
func (c *Checker) setType(expr ast.Expr, typ types.Type, mode int, sym *depm.Symbol) types.Type {
	c.table.Set(expr, typ, mode, sym)

	if types.IsUntyped(typ) {
		c.pending = append(c.pending, expr)
	}

	return typ
}
