package typesys

// Variance describes how a generic parameter position relates subtyping of
// its argument to subtyping of the constructed type.
type Variance int

const (
	// Invariant positions only unify with the same argument shape.
	Invariant Variance = iota
	// Covariant ("out") positions accept any argument assignable to the target's.
	Covariant
	// Contravariant ("in") positions accept any argument the target's is assignable to.
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "out"
	case Contravariant:
		return "in"
	default:
		return "invariant"
	}
}

// GenericParam is a declared generic parameter of a descriptor.
type GenericParam struct {
	Name     string
	Variance Variance
}

// Param is a named, typed parameter of a Member.
type Param struct {
	Name string
	Type Type
}

// Member is a callable declared on a descriptor, already instantiated with the
// generic arguments of the owning concrete type.
type Member struct {
	Name string
	// Generics are the member's own type parameters. They appear in Params
	// and Returns and are meant to be substituted by the caller.
	Generics []*UndefinedGenericType
	Params   []Param
	Returns  Type // nil when the member returns nothing
}

// Descriptor is the capability interface a host type system implements. The
// unification algorithm only relies on identity, generic parameters, the
// base type and interfaces; it never reflects on host types directly.
type Descriptor interface {
	// Name is the short name, e.g. "List".
	Name() string
	// FullName identifies the descriptor uniquely within a Registry.
	FullName() string
	GenericParams() []GenericParam
	// BaseType returns the base type of the descriptor instantiated with args.
	BaseType(args []Type) Type
	// Interfaces returns the directly implemented interfaces instantiated with args.
	Interfaces(args []Type) []Type
	// Members returns the declared members instantiated with args.
	Members(args []Type) []Member
}

// ClosedDescriptor is implemented by descriptors that are already closed over
// their generic parameters, e.g. an alias of List<int>. Registry.Get derives
// the generic arguments from BoundArguments when none are supplied.
type ClosedDescriptor interface {
	Descriptor
	BoundArguments() []Descriptor
}
