package lower

import (
	"fmt"
	"strings"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
)

// Verify performs structural checks on a lowered module before rendering:
// unique global names, an entry block in every defined function, and exactly
// one terminator per block, with returns agreeing with the signature.  A
// failure here is a compiler bug surfaced early, never a user diagnostic.
func Verify(mod *ir.Module) error {
	var problems []string

	seen := make(map[string]bool)
	for _, fn := range mod.Funcs {
		if seen[fn.Name()] {
			problems = append(problems, fmt.Sprintf("duplicate global name %q", fn.Name()))
		}
		seen[fn.Name()] = true

		problems = append(problems, verifyFunc(fn)...)
	}

	for _, g := range mod.Globals {
		if seen[g.Name()] {
			problems = append(problems, fmt.Sprintf("duplicate global name %q", g.Name()))
		}
		seen[g.Name()] = true
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid module:\n  %s", strings.Join(problems, "\n  "))
	}

	return nil
}

// verifyFunc checks the block structure of one function.  Declarations have
// no blocks and nothing to check.
func verifyFunc(fn *ir.Func) []string {
	if len(fn.Blocks) == 0 {
		return nil
	}

	var problems []string

	isVoid := lltypes.Equal(fn.Sig.RetType, lltypes.Void)
	for _, block := range fn.Blocks {
		if block.Term == nil {
			problems = append(problems,
				fmt.Sprintf("%s: block %q has no terminator", fn.Name(), block.Name()))
			continue
		}

		ret, ok := block.Term.(*ir.TermRet)
		if !ok {
			continue
		}

		if isVoid != (ret.X == nil) {
			problems = append(problems,
				fmt.Sprintf("%s: return does not match the signature", fn.Name()))
		} else if ret.X != nil && !lltypes.Equal(ret.X.Type(), fn.Sig.RetType) {
			problems = append(problems,
				fmt.Sprintf("%s: returns %v, declared %v", fn.Name(), ret.X.Type(), fn.Sig.RetType))
		}
	}

	return problems
}
