package typesys

import "fmt"

// Bindings maps placeholders to the types they resolve to. A nil Bindings
// means unification failed; an empty, non-nil one means it succeeded without
// discovering anything.
type Bindings map[*UndefinedGenericType]Type

// merge adds other into b. It reports false when a placeholder would be bound
// to two different types.
func (b Bindings) merge(other Bindings) bool {
	for u, t := range other {
		if prev, ok := b[u]; ok && !Equal(prev, t) {
			return false
		}
		b[u] = t
	}
	return true
}

// Clone returns a shallow copy; nil stays nil.
func (b Bindings) Clone() Bindings {
	if b == nil {
		return nil
	}
	out := make(Bindings, len(b))
	for u, t := range b {
		out[u] = t
	}
	return out
}

// Names lists the display names of the bound placeholders.
func (b Bindings) Names() []string {
	names := make([]string, 0, len(b))
	for u := range b {
		names = append(names, u.name)
	}
	return names
}

// Lookup returns the binding for the placeholder called name, if any.
func (b Bindings) Lookup(name string) (*UndefinedGenericType, Type, bool) {
	for u, t := range b {
		if u.name == name {
			return u, t, true
		}
	}
	return nil, nil, false
}

// Substitute replaces every bound placeholder in t. Sub-trees that contain no
// bound placeholder are returned as the same instance.
func Substitute(t Type, b Bindings) Type {
	if len(b) == 0 || t == nil || !t.HasUndefinedGenerics() {
		return t
	}
	switch v := t.(type) {
	case *UndefinedGenericType:
		if r, ok := b[v]; ok {
			return r
		}
		return v
	case *ConcreteType:
		changed := false
		args := make([]Type, len(v.args))
		for i, a := range v.args {
			args[i] = Substitute(a, b)
			if args[i] != a {
				changed = true
			}
		}
		if !changed {
			return v
		}
		// Arity cannot change under substitution, so Get only fails on
		// programmer error.
		ct, err := v.registry.Get(v.desc, args...)
		if err != nil {
			panic(fmt.Sprintf("typesys: substituting into %s: %v", v.FullName(), err))
		}
		return ct
	default:
		return t
	}
}

// Occurs reports whether placeholder u appears anywhere in t.
func Occurs(t Type, u *UndefinedGenericType) bool {
	if t == nil || !t.HasUndefinedGenerics() {
		return false
	}
	if v, ok := t.(*UndefinedGenericType); ok {
		return v.id == u.id
	}
	for _, a := range t.Generics() {
		if Occurs(a, u) {
			return true
		}
	}
	return false
}

// References reports whether t mentions any placeholder bound in b.
func References(t Type, b Bindings) bool {
	for u := range b {
		if Occurs(t, u) {
			return true
		}
	}
	return false
}

// Placeholders returns the distinct placeholders in t in first-seen order.
func Placeholders(t Type) []*UndefinedGenericType {
	var out []*UndefinedGenericType
	seen := map[*UndefinedGenericType]bool{}
	var walk func(Type)
	walk = func(t Type) {
		if t == nil || !t.HasUndefinedGenerics() {
			return
		}
		if u, ok := t.(*UndefinedGenericType); ok {
			if !seen[u] {
				seen[u] = true
				out = append(out, u)
			}
			return
		}
		for _, a := range t.Generics() {
			walk(a)
		}
	}
	walk(t)
	return out
}
