package lower

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"sablec/ast"
	"sablec/types"
)

// lowerIf lowers an if/else chain.  Each arm gets its own block; arms that
// complete fall to a shared exit block, and a value-yielding if merges the
// arm values through a phi there.
func (l *Lowerer) lowerIf(ie *ast.IfExpr) value.Value {
	resType := l.table.TypeOf(ie)

	cond := l.operand(l.lowerExpr(ie.Cond), l.table.TypeOf(ie.Cond))
	l.ensureBlock()

	thenBlock := l.newBlock("if.then.")
	var elseBlock *ir.Block
	if ie.Else != nil {
		elseBlock = l.newBlock("if.else.")
	}
	exitBlock := l.newBlock("if.exit.")

	condBlock := l.block
	if elseBlock != nil {
		condBlock.NewCondBr(cond, thenBlock, elseBlock)
	} else {
		condBlock.NewCondBr(cond, thenBlock, exitBlock)
	}

	l.block = thenBlock
	thenValue := l.lowerExpr(ie.Then)
	thenEnd := l.closeArm(exitBlock)

	var elseValue value.Value
	var elseEnd *ir.Block
	if ie.Else != nil {
		l.block = elseBlock
		elseValue = l.lowerExpr(ie.Else)
		elseEnd = l.closeArm(exitBlock)
	} else {
		// With no else arm the false edge falls straight to the exit.  Such
		// an if is always unit typed, so the phi below is never built for it.
		elseValue, elseEnd = nil, condBlock
	}

	l.block = exitBlock

	if thenEnd == nil && elseEnd == nil {
		// Both arms diverged; nothing branches to the exit.
		exitBlock.NewUnreachable()
		return nil
	}

	if isUnitLike(resType) {
		return nil
	}

	switch {
	case thenEnd != nil && elseEnd != nil:
		return exitBlock.NewPhi(
			ir.NewIncoming(l.operand(thenValue, resType), thenEnd),
			ir.NewIncoming(l.operand(elseValue, resType), elseEnd))
	case thenEnd != nil:
		return l.operand(thenValue, resType)
	default:
		return l.operand(elseValue, resType)
	}
}

// closeArm branches the current block to the exit if the arm completed, and
// returns the predecessor block for the phi, or nil for a divergent arm.
func (l *Lowerer) closeArm(exit *ir.Block) *ir.Block {
	if l.block.Term != nil {
		return nil
	}

	end := l.block
	end.NewBr(exit)
	return end
}

// lowerWhile lowers a while loop: a condition header re-evaluated on every
// iteration, the body, and an exit.  Continue targets the header, break the
// exit.
func (l *Lowerer) lowerWhile(we *ast.WhileExpr) value.Value {
	header := l.newBlock("while.cond.")
	body := l.newBlock("while.body.")
	exit := l.newBlock("while.exit.")

	l.block.NewBr(header)

	l.block = header
	cond := l.operand(l.lowerExpr(we.Cond), l.table.TypeOf(we.Cond))
	l.ensureBlock()
	l.block.NewCondBr(cond, body, exit)

	l.loops = append(l.loops, &loopFrame{header: header, exit: exit})
	l.block = body
	l.lowerExpr(we.Body)
	if l.block.Term == nil {
		l.block.NewBr(header)
	}
	l.loops = l.loops[:len(l.loops)-1]

	l.block = exit
	return nil
}

// lowerLoop lowers an unconditional loop.  A value-yielding loop allocates a
// slot that every `break v` stores through before branching to the exit; the
// loop's value is the slot's content at the exit.
func (l *Lowerer) lowerLoop(le *ast.LoopExpr) value.Value {
	resType := l.table.TypeOf(le)

	frame := &loopFrame{
		header: l.newBlock("loop.body."),
		exit:   l.newBlock("loop.exit."),
	}

	if !isUnitLike(resType) {
		frame.slotType = l.convType(resType)
		frame.slot = l.entryAlloca(frame.slotType, l.localName("loop.val"))
	}

	l.block.NewBr(frame.header)

	l.loops = append(l.loops, frame)
	l.block = frame.header
	l.lowerExpr(le.Body)
	if l.block.Term == nil {
		l.block.NewBr(frame.header)
	}
	l.loops = l.loops[:len(l.loops)-1]

	l.block = frame.exit

	if types.IsDivergent(resType) {
		// No break ever branches to the exit.
		frame.exit.NewUnreachable()
		return nil
	}

	if frame.slot == nil {
		return nil
	}

	return l.block.NewLoad(frame.slotType, frame.slot)
}
