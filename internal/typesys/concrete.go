package typesys

import "sync"

// ConcreteType is a host type instantiated with generic arguments. Obtain
// instances through Registry.Get; never construct one directly.
type ConcreteType struct {
	registry *Registry
	desc     Descriptor
	args     []Type
	key      string
	open     bool

	supertypes sync.Once
	base       Type
	interfaces []Type
}

// Descriptor returns the host descriptor the type was built from.
func (c *ConcreteType) Descriptor() Descriptor { return c.desc }

// Registry returns the registry that interned the type.
func (c *ConcreteType) Registry() *Registry { return c.registry }

func (c *ConcreteType) Name() string { return c.desc.Name() }

func (c *ConcreteType) FullName() string {
	return formatGenerics(c.desc.FullName(), c.args, Type.FullName)
}

func (c *ConcreteType) Generics() []Type {
	out := make([]Type, len(c.args))
	copy(out, c.args)
	return out
}

func (c *ConcreteType) BaseType() Type {
	c.resolveSupertypes()
	return c.base
}

func (c *ConcreteType) Interfaces() []Type {
	c.resolveSupertypes()
	return c.interfaces
}

// Members returns the descriptor's members instantiated with this type's
// generic arguments.
func (c *ConcreteType) Members() []Member {
	return c.desc.Members(c.args)
}

func (c *ConcreteType) HasUndefinedGenerics() bool { return c.open }
func (c *ConcreteType) IsExec() bool               { return false }
func (c *ConcreteType) Kind() Kind                 { return KindConcrete }

func (c *ConcreteType) String() string {
	return formatGenerics(c.desc.Name(), c.args, Type.String)
}

func (c *ConcreteType) resolveSupertypes() {
	c.supertypes.Do(func() {
		c.base = c.desc.BaseType(c.args)
		c.interfaces = c.desc.Interfaces(c.args)
	})
}

// sameDescriptor compares descriptors by full name. Descriptors need not be
// comparable values.
func sameDescriptor(a, b Descriptor) bool {
	return a.FullName() == b.FullName()
}
