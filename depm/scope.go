package depm

// Enumeration of scope kinds.
const (
	ScopeGlobal = iota
	ScopeBlock
	ScopeFunc
	ScopeImpl
	ScopeTrait
	ScopeLoop
)

// Scope is a single node of the scope tree: a name to symbol mapping tagged
// with the kind of construct that introduced it.  The parent link is an
// index into the owning tree's arena, used only for upward lookup.
type Scope struct {
	// Kind must be one of the enumerated scope kinds.
	Kind int

	// Parent is the arena index of the enclosing scope, or -1 for the global
	// scope.
	Parent int

	symbols map[string]*Symbol
}

// ScopeTree is the arena owning every scope of a compilation.  Scopes are
// referenced by index and live for the compilation's lifetime, so there is
// no ownership or cycle concern in the parent back-references.
type ScopeTree struct {
	scopes []*Scope
}

// NewScopeTree creates a scope tree containing only the global scope, which
// is always index 0.
func NewScopeTree() *ScopeTree {
	return &ScopeTree{
		scopes: []*Scope{{Kind: ScopeGlobal, Parent: -1, symbols: make(map[string]*Symbol)}},
	}
}

// NewScope adds a child scope of the given kind and returns its index.
func (t *ScopeTree) NewScope(parent, kind int) int {
	t.scopes = append(t.scopes, &Scope{
		Kind:    kind,
		Parent:  parent,
		symbols: make(map[string]*Symbol),
	})

	return len(t.scopes) - 1
}

// Define adds a symbol to the scope at the given index.  If the name is
// already bound in that same scope, the previous symbol is returned and the
// new one is NOT stored: the caller raises the redeclaration error.
func (t *ScopeTree) Define(scope int, sym *Symbol) *Symbol {
	s := t.scopes[scope]
	if prev, ok := s.symbols[sym.Name]; ok {
		return prev
	}

	s.symbols[sym.Name] = sym
	return nil
}

// Lookup resolves a name starting at the given scope and walking upward
// through parents.  Returns nil if the name is nowhere visible.
func (t *ScopeTree) Lookup(scope int, name string) *Symbol {
	for i := scope; i != -1; i = t.scopes[i].Parent {
		if sym, ok := t.scopes[i].symbols[name]; ok {
			return sym
		}
	}

	return nil
}

// ParentOf returns the arena index of the enclosing scope, or -1 for the
// global scope.
func (t *ScopeTree) ParentOf(scope int) int {
	return t.scopes[scope].Parent
}

// InKind reports whether the given scope or any of its ancestors up to the
// nearest function boundary is of the given kind.  Used for the lexical
// break/continue context check: a loop in an outer function never licenses a
// break in a nested one.
func (t *ScopeTree) InKind(scope, kind int) bool {
	for i := scope; i != -1; i = t.scopes[i].Parent {
		if t.scopes[i].Kind == kind {
			return true
		}

		if t.scopes[i].Kind == ScopeFunc {
			break
		}
	}

	return false
}
