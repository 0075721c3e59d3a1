package catalog

import (
	"fmt"
	"slices"

	"github.com/vk/portgraph/internal/typesys"
)

// Descriptor is a host type declared by a catalog `type` block. It implements
// typesys.Descriptor.
type Descriptor struct {
	cat       *Catalog
	name      string
	namespace string
	params    []typesys.GenericParam

	base       *term
	interfaces []*term
	methods    []*method

	block *typeBlock // dropped once compiled
}

type method struct {
	name     string
	generics []*typesys.UndefinedGenericType
	params   []methodParam
	returns  *term
}

type methodParam struct {
	name string
	typ  *term
}

var _ typesys.Descriptor = (*Descriptor)(nil)

func (d *Descriptor) Name() string { return d.name }

// Namespace returns the dotted namespace, possibly empty.
func (d *Descriptor) Namespace() string { return d.namespace }

func (d *Descriptor) FullName() string {
	if d.namespace == "" {
		return d.name
	}
	return d.namespace + "." + d.name
}

func (d *Descriptor) GenericParams() []typesys.GenericParam { return d.params }

func (d *Descriptor) BaseType(args []typesys.Type) typesys.Type {
	if d.base == nil {
		return nil
	}
	return d.mustInstantiate(d.base, d.bindArgs(args, nil))
}

func (d *Descriptor) Interfaces(args []typesys.Type) []typesys.Type {
	if len(d.interfaces) == 0 {
		return nil
	}
	bind := d.bindArgs(args, nil)
	out := make([]typesys.Type, len(d.interfaces))
	for i, t := range d.interfaces {
		out[i] = d.mustInstantiate(t, bind)
	}
	return out
}

// Members returns the declared methods in declaration order. Same-named
// methods are overloads of each other. Method-level generics are left as the
// member's own placeholders.
func (d *Descriptor) Members(args []typesys.Type) []typesys.Member {
	out := make([]typesys.Member, 0, len(d.methods))
	for _, m := range d.methods {
		bind := d.bindArgs(args, m.generics)
		member := typesys.Member{Name: m.name, Generics: m.generics}
		for _, p := range m.params {
			member.Params = append(member.Params, typesys.Param{Name: p.name, Type: d.mustInstantiate(p.typ, bind)})
		}
		if m.returns != nil {
			member.Returns = d.mustInstantiate(m.returns, bind)
		}
		out = append(out, member)
	}
	return out
}

// bindArgs binds the descriptor's parameters positionally to args and the
// method generics to themselves.
func (d *Descriptor) bindArgs(args []typesys.Type, methodGenerics []*typesys.UndefinedGenericType) binder {
	return func(name string) (typesys.Type, bool) {
		for i, p := range d.params {
			if p.Name == name && i < len(args) {
				return args[i], true
			}
		}
		for _, u := range methodGenerics {
			if u.Name() == name {
				return u, true
			}
		}
		return nil, false
	}
}

// mustInstantiate is only reached with compiled terms, whose names and
// arities were checked at load time.
func (d *Descriptor) mustInstantiate(t *term, bind binder) typesys.Type {
	typ, err := d.cat.instantiate(t, bind)
	if err != nil {
		panic(fmt.Sprintf("catalog: instantiating %s in %s: %v", t, d.FullName(), err))
	}
	return typ
}

// supertypes lists the descriptors named directly by base and interfaces.
func (d *Descriptor) supertypes() []*Descriptor {
	var out []*Descriptor
	if d.base != nil && d.base.desc != nil {
		out = append(out, d.base.desc)
	}
	for _, t := range d.interfaces {
		if t.desc != nil {
			out = append(out, t.desc)
		}
	}
	return out
}

// HasMember reports whether a method called name is declared.
func (d *Descriptor) HasMember(name string) bool {
	for _, m := range d.methods {
		if m.name == name {
			return true
		}
	}
	return false
}

// MemberGenerics lists the method-level generic names of every overload
// called name, in declaration order and without repeats.
func (d *Descriptor) MemberGenerics(name string) []string {
	var out []string
	for _, m := range d.methods {
		if m.name != name {
			continue
		}
		for _, u := range m.generics {
			if !slices.Contains(out, u.Name()) {
				out = append(out, u.Name())
			}
		}
	}
	return out
}
