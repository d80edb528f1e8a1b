// Package lower translates a checked crate into an LLVM IR module.  It
// consumes the side table and registries built by the checker, never the
// source text: by the time lowering runs, every expression has a concrete
// type and every name a resolved symbol.
package lower

import (
	"fmt"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"sablec/ast"
	"sablec/depm"
	"sablec/report"
	"sablec/types"
	"sablec/walk"
)

// loopFrame tracks the branch targets of one enclosing loop during body
// lowering.
type loopFrame struct {
	// header is the continue target: the condition block of a while loop or
	// the body block of a plain loop.
	header *ir.Block

	// exit is the break target.
	exit *ir.Block

	// slot is the stack slot a `break v` stores its value into before
	// branching to the exit, or nil for loops that yield no value.
	slot     value.Value
	slotType lltypes.Type
}

// Lowerer drives the translation of one crate to one LLVM module.
type Lowerer struct {
	crate *ast.Crate
	table *depm.CheckedTable

	mod *ir.Module

	// block is the basic block currently receiving instructions.
	block *ir.Block

	// localScopes maps names to stack slots, innermost scope last.  Unit
	// typed locals have no slot and no entry.
	localScopes []map[string]value.Value

	loops []*loopFrame

	// funcs maps every function symbol, user and builtin, to its declared
	// LLVM function.
	funcs map[*depm.Symbol]*ir.Func

	// consts maps constant symbols to their immutable global storage.
	consts map[*depm.Symbol]*ir.Global

	// structs maps nominal struct types to their LLVM type definitions.
	structs map[*types.StructType]lltypes.Type

	// globalNames counts global name uses for suffix disambiguation, and
	// localNames does the same per function for shadowed slot names.
	globalNames map[string]int
	localNames  map[string]int

	// blockID numbers the labeled blocks of the current function.
	blockID int
}

// Lower translates a fully checked crate into an LLVM module.  The output
// is deterministic: identical input produces a byte-identical module.
func Lower(crate *ast.Crate, res *walk.Result) *ir.Module {
	l := &Lowerer{
		crate:       crate,
		table:       res.Table,
		mod:         ir.NewModule(),
		funcs:       make(map[*depm.Symbol]*ir.Func),
		consts:      make(map[*depm.Symbol]*ir.Global),
		structs:     make(map[*types.StructType]lltypes.Type),
		globalNames: make(map[string]int),
	}

	l.predefine(res)
	l.lowerBodies(res)

	return l.mod
}

// -----------------------------------------------------------------------------

// curFn returns the function currently being lowered.
func (l *Lowerer) curFn() *ir.Func {
	return l.block.Parent
}

// newBlock appends a labeled block to the current function.
func (l *Lowerer) newBlock(prefix string) *ir.Block {
	l.blockID++
	return l.curFn().NewBlock(fmt.Sprintf("%s%d", prefix, l.blockID))
}

// ensureBlock guarantees there is an open block to emit into.  After a
// divergent subexpression the current block is terminated; anything emitted
// afterward lands in a dead block that the terminator fixup closes off.
func (l *Lowerer) ensureBlock() {
	if l.block.Term != nil {
		l.block = l.newBlock("dead.")
	}
}

// entryAlloca allocates a named stack slot in the function's entry block, so
// allocation never happens inside a loop.
func (l *Lowerer) entryAlloca(elem lltypes.Type, name string) value.Value {
	slot := l.curFn().Blocks[0].NewAlloca(elem)
	slot.SetName(name)
	return slot
}

// pushScope enters a new local binding scope.
func (l *Lowerer) pushScope() {
	l.localScopes = append(l.localScopes, make(map[string]value.Value))
}

// popScope leaves the innermost local binding scope.
func (l *Lowerer) popScope() {
	l.localScopes = l.localScopes[:len(l.localScopes)-1]
}

// defineLocal binds a name to its stack slot in the innermost scope.
func (l *Lowerer) defineLocal(name string, slot value.Value) {
	l.localScopes[len(l.localScopes)-1][name] = slot
}

// lookupLocal resolves a name to its slot, innermost scope first so
// shadowing picks the right binding.
func (l *Lowerer) lookupLocal(name string) value.Value {
	for i := len(l.localScopes) - 1; i >= 0; i-- {
		if slot, ok := l.localScopes[i][name]; ok {
			return slot
		}
	}

	report.ReportICE("local `%s` has no stack slot", name)
	return nil
}

// localName returns a slot name for a local, suffixing shadowed names so
// every slot in a function is distinct.
func (l *Lowerer) localName(name string) string {
	n := l.localNames[name]
	l.localNames[name] = n + 1

	if n == 0 {
		return name
	}

	return fmt.Sprintf("%s.%d", name, n)
}
