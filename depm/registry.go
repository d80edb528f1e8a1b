package depm

import (
	"sablec/report"
	"sablec/types"
)

// Impl binds a target type, and optionally a trait, to a set of member
// symbols.  Members preserves declaration order.
type Impl struct {
	// Target is the nominal type the impl attaches to.
	Target types.Type

	// Trait is the implemented trait symbol, or nil for an inherent impl.
	Trait *Symbol

	Members []*Symbol

	// Span is the position of the impl header, used for duplicate reporting.
	Span *report.TextSpan
}

// Member returns the named member of the impl, or nil.
func (im *Impl) Member(name string) *Symbol {
	for _, m := range im.Members {
		if m.Name == name {
			return m
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// Registry catalogs the impl blocks of a compilation, keyed by the nominal
// name of the target type.  Per target, impls are kept in registration
// order; method and associated-member resolution walks that order and
// returns the first match.
type Registry struct {
	impls map[string][]*Impl
}

// NewRegistry creates an empty impl registry.
func NewRegistry() *Registry {
	return &Registry{impls: make(map[string][]*Impl)}
}

// nominalName returns the registry key of a type, or "" for types that
// cannot carry impls.
func nominalName(t types.Type) string {
	switch v := t.(type) {
	case *types.StructType:
		return v.Name
	case *types.EnumType:
		return v.Name
	}

	return ""
}

// Register adds an impl to the registry.  At most one impl may exist per
// (type, trait) pair: registering a second one returns the first, and the
// caller reports the redeclaration.
func (r *Registry) Register(impl *Impl) *Impl {
	key := nominalName(impl.Target)

	if impl.Trait != nil {
		for _, prev := range r.impls[key] {
			if prev.Trait == impl.Trait {
				return prev
			}
		}
	}

	r.impls[key] = append(r.impls[key], impl)
	return nil
}

// ImplsFor returns the impls attached to a type in registration order.
func (r *Registry) ImplsFor(t types.Type) []*Impl {
	return r.impls[nominalName(t)]
}

// TraitImpl returns the unique impl of the given trait for the given type,
// or nil.
func (r *Registry) TraitImpl(t types.Type, trait *Symbol) *Impl {
	for _, impl := range r.impls[nominalName(t)] {
		if impl.Trait == trait {
			return impl
		}
	}

	return nil
}

// LookupMethod resolves a method on a type: the first member with the given
// name, in registration order, that actually is a method (declares a self
// parameter).  Plain associated functions never satisfy a method lookup.
func (r *Registry) LookupMethod(t types.Type, name string) *Symbol {
	for _, impl := range r.impls[nominalName(t)] {
		if m := impl.Member(name); m != nil && m.IsMethod {
			return m
		}
	}

	return nil
}

// LookupAssociated resolves an associated function or constant on a type.
// Methods never satisfy an associated lookup.
func (r *Registry) LookupAssociated(t types.Type, name string) *Symbol {
	for _, impl := range r.impls[nominalName(t)] {
		if m := impl.Member(name); m != nil && !m.IsMethod {
			return m
		}
	}

	return nil
}
