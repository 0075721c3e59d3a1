package typesys

import "iter"

// AssignableTypes lazily enumerates every type t can stand in for, paired
// with its structural distance from t: t itself at depth 0, then the base
// chain depth-first, then each interface. A type reachable through several
// paths is produced once per path.
func AssignableTypes(t Type) iter.Seq2[Type, int] {
	return func(yield func(Type, int) bool) {
		if t != nil {
			walkAssignable(t, 0, yield)
		}
	}
}

func walkAssignable(t Type, depth int, yield func(Type, int) bool) bool {
	if !yield(t, depth) {
		return false
	}
	if base := t.BaseType(); base != nil {
		if !walkAssignable(base, depth+1, yield) {
			return false
		}
	}
	for _, iface := range t.Interfaces() {
		if !walkAssignable(iface, depth+1, yield) {
			return false
		}
	}
	return true
}

// IsDirectlyAssignableTo reports whether source and target have the same
// shape, treating placeholders as wildcards. With considerGenerics the
// generic arguments are unified pairwise according to each parameter's
// variance and every discovered binding is returned. On failure the
// returned Bindings is nil.
//
// Two placeholders unify without binding either of them.
func IsDirectlyAssignableTo(source, target Type, considerGenerics bool) (Bindings, bool) {
	if source == nil || target == nil {
		return nil, false
	}
	if source.IsExec() || target.IsExec() {
		if source.IsExec() && target.IsExec() {
			return Bindings{}, true
		}
		return nil, false
	}

	su, sourceOpen := source.(*UndefinedGenericType)
	tu, targetOpen := target.(*UndefinedGenericType)
	switch {
	case sourceOpen && targetOpen:
		return Bindings{}, true
	case targetOpen:
		return Bindings{tu: source}, true
	case sourceOpen:
		return Bindings{su: target}, true
	}

	sc, ok := source.(*ConcreteType)
	if !ok {
		return nil, false
	}
	tc, ok := target.(*ConcreteType)
	if !ok || !sameDescriptor(sc.desc, tc.desc) || len(sc.args) != len(tc.args) {
		return nil, false
	}

	out := Bindings{}
	if !considerGenerics || sc == tc {
		return out, true
	}

	params := sc.desc.GenericParams()
	for i := range sc.args {
		variance := Invariant
		if i < len(params) {
			variance = params[i].Variance
		}
		pair, ok := unifyArgument(sc.args[i], tc.args[i], variance)
		if !ok || !out.merge(pair) {
			return nil, false
		}
	}
	return out, true
}

func unifyArgument(source, target Type, variance Variance) (Bindings, bool) {
	transitive := AssignOptions{AllowTransitive: true}
	switch variance {
	case Covariant:
		raw, _, _, ok := search(source, target, transitive)
		return raw, ok
	case Contravariant:
		raw, _, _, ok := search(target, source, transitive)
		return raw, ok
	default:
		return IsDirectlyAssignableTo(source, target, true)
	}
}

// AssignOptions controls IsAssignableTo.
type AssignOptions struct {
	// AllowTransitive walks the source's base types and interfaces instead of
	// testing the source type alone.
	AllowTransitive bool
	// BothDirections additionally walks the target's chain against the source
	// when the forward search fails and either side carries placeholders.
	BothDirections bool
}

// Assignment describes a successful IsAssignableTo.
type Assignment struct {
	// Source holds bindings for placeholders that occur in the source type.
	Source Bindings
	// Target holds bindings for placeholders that occur in the target type.
	Target Bindings
	// Depth is the structural distance of the matching type.
	Depth int
	// Reversed is set when the match came from walking the target's chain.
	Reversed bool
	// UsedInitialTypes is set by port-level checks that had to fall back to
	// the ports' declared types.
	UsedInitialTypes bool
}

// HasBindings reports whether either side gained a binding.
func (a Assignment) HasBindings() bool {
	return len(a.Source) > 0 || len(a.Target) > 0
}

// IsAssignableTo reports whether a value of type source can flow into target.
// The lowest-depth match wins.
func IsAssignableTo(source, target Type, opts AssignOptions) (Assignment, bool) {
	raw, depth, reversed, ok := search(source, target, opts)
	if !ok {
		return Assignment{}, false
	}
	return Assignment{
		Source:   partition(raw, source),
		Target:   partition(raw, target),
		Depth:    depth,
		Reversed: reversed,
	}, true
}

func search(source, target Type, opts AssignOptions) (Bindings, int, bool, bool) {
	if source == nil || target == nil {
		return nil, 0, false, false
	}
	for candidate, depth := range AssignableTypes(source) {
		if depth > 0 && !opts.AllowTransitive {
			break
		}
		if b, ok := IsDirectlyAssignableTo(candidate, target, true); ok {
			return b, depth, false, true
		}
	}

	if !opts.BothDirections || !(source.HasUndefinedGenerics() || target.HasUndefinedGenerics()) {
		return nil, 0, false, false
	}
	for candidate, depth := range AssignableTypes(target) {
		if depth > 0 && !opts.AllowTransitive {
			break
		}
		if b, ok := IsDirectlyAssignableTo(candidate, source, true); ok {
			return b, depth, true, true
		}
	}
	return nil, 0, false, false
}

func partition(raw Bindings, side Type) Bindings {
	out := Bindings{}
	for u, t := range raw {
		if Occurs(side, u) {
			out[u] = t
		}
	}
	return out
}
