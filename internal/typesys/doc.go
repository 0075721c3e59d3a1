// Package typesys implements the type model used by port graphs: concrete
// types built from host descriptors, open generic placeholders, and the
// control-flow exec marker.
//
// # Type Variants
//
//   - *ConcreteType wraps a Descriptor and an ordered list of generic
//     arguments. Instances are interned per Registry, so two concrete types
//     are equal exactly when they are the same pointer.
//   - *UndefinedGenericType is an unresolved placeholder. It carries a display
//     name and a UUID; identity is the UUID alone.
//   - ExecType is the singleton Exec, marking control-flow ports.
//
// # Unification
//
// AssignableTypes enumerates every type a value can stand in for, ordered by
// structural distance. IsDirectlyAssignableTo unifies two types of the same
// shape and collects placeholder bindings; IsAssignableTo walks the
// assignable-types sequence and returns the lowest-depth match.
//
// # Registry
//
// The Registry interns concrete types, remembers every placeholder ever
// created (so deserialization recovers shared identity) and resolves
// descriptors by full name. It is the only shared mutable state and is safe
// for concurrent use.
package typesys
