package lower

import (
	"fmt"

	"sablec/depm"
)

// symbolPrefix namespaces every Sable symbol in the output module so user
// code can never collide with the runtime's `sable_` externs.
const symbolPrefix = "s."

// mangleFunc produces the link name of a function symbol.  Free functions
// are prefixed, associated members are namespaced by their owning type and,
// for trait impls, the trait, and `main` keeps its name so the native entry
// shim can find it.
func (l *Lowerer) mangleFunc(sym *depm.Symbol, traitName string) string {
	if !sym.IsAssociated && sym.Name == "main" {
		return "main"
	}

	name := symbolPrefix
	if sym.IsAssociated {
		name += sym.Owner.Name + "."
		if traitName != "" {
			name += traitName + "."
		}
	}

	return l.uniqueGlobal(name + sym.Name)
}

// mangleConst produces the link name of a constant's global storage.
func (l *Lowerer) mangleConst(sym *depm.Symbol) string {
	name := symbolPrefix
	if sym.IsAssociated {
		name += sym.Owner.Name + "."
	}

	return l.uniqueGlobal(name + sym.Name)
}

// uniqueGlobal suffixes a global name that is already taken.  Inherent impl
// blocks may repeat a member name across blocks, so link names disambiguate
// by occurrence.
func (l *Lowerer) uniqueGlobal(name string) string {
	n := l.globalNames[name]
	l.globalNames[name] = n + 1

	if n == 0 {
		return name
	}

	return fmt.Sprintf("%s.%d", name, n)
}
