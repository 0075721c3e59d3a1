package node

import "github.com/vk/portgraph/internal/typesys"

// Scope holds the generic placeholders of one node. Every signature of the
// node is built against the same scope, so a generic re-declared by another
// overload is the identical placeholder.
type Scope struct {
	reg      *typesys.Registry
	generics map[string]*typesys.UndefinedGenericType
	order    []string
	fixed    map[string]typesys.Type
}

// NewScope creates an empty scope minting placeholders from reg.
func NewScope(reg *typesys.Registry) *Scope {
	return &Scope{
		reg:      reg,
		generics: make(map[string]*typesys.UndefinedGenericType),
		fixed:    make(map[string]typesys.Type),
	}
}

func (s *Scope) Registry() *typesys.Registry { return s.reg }

// Generic returns the placeholder called name, minting it on first use.
func (s *Scope) Generic(name string) *typesys.UndefinedGenericType {
	if u, ok := s.generics[name]; ok {
		return u
	}
	u := s.reg.NewUndefined(name)
	s.generics[name] = u
	s.order = append(s.order, name)
	return u
}

// Lookup returns an already minted placeholder.
func (s *Scope) Lookup(name string) (*typesys.UndefinedGenericType, bool) {
	u, ok := s.generics[name]
	return u, ok
}

// Names lists the minted generic names in creation order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Owns reports whether u belongs to this scope.
func (s *Scope) Owns(u *typesys.UndefinedGenericType) bool {
	got, ok := s.generics[u.Name()]
	return ok && got == u
}

// Fix records a permanent resolution of the generic called name.
func (s *Scope) Fix(name string, t typesys.Type) {
	s.fixed[name] = t
}

// Fixed returns the permanent resolution of name, if any.
func (s *Scope) Fixed(name string) (typesys.Type, bool) {
	t, ok := s.fixed[name]
	return t, ok
}

// FixedBindings returns the permanent resolutions as bindings of this scope's
// placeholders.
func (s *Scope) FixedBindings() typesys.Bindings {
	out := typesys.Bindings{}
	for name, t := range s.fixed {
		if u, ok := s.generics[name]; ok {
			out[u] = t
		}
	}
	return out
}
