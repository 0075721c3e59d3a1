package typesys

import "strings"

// Kind tags the type variant. It doubles as the TypeKindTag of a persisted
// envelope.
type Kind string

const (
	KindConcrete  Kind = "typesys.ConcreteType"
	KindUndefined Kind = "typesys.UndefinedGenericType"
	KindExec      Kind = "typesys.ExecType"
)

// Type is implemented by every type variant. Types are immutable once
// created and are shared freely between ports.
type Type interface {
	// Name is the short display name, e.g. "List".
	Name() string
	// FullName is the fully qualified name including generic arguments.
	FullName() string
	// Generics returns the ordered generic arguments.
	Generics() []Type
	// BaseType returns the direct base type, or nil.
	BaseType() Type
	// Interfaces returns the interfaces the type implements directly.
	Interfaces() []Type
	// HasUndefinedGenerics reports whether the type is, or contains, a placeholder.
	HasUndefinedGenerics() bool
	IsExec() bool
	Kind() Kind
	String() string
}

// ExecType marks control-flow connections. Use the Exec singleton.
type ExecType struct{}

// Exec is the only ExecType value.
var Exec Type = &ExecType{}

func (*ExecType) Name() string               { return "Exec" }
func (*ExecType) FullName() string           { return "Exec" }
func (*ExecType) Generics() []Type           { return nil }
func (*ExecType) BaseType() Type             { return nil }
func (*ExecType) Interfaces() []Type         { return nil }
func (*ExecType) HasUndefinedGenerics() bool { return false }
func (*ExecType) IsExec() bool               { return true }
func (*ExecType) Kind() Kind                 { return KindExec }
func (*ExecType) String() string             { return "Exec" }

// Equal reports whether a and b denote the same type. Concrete types are
// interned and placeholders are unique, so identity is sufficient.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if ua, ok := a.(*UndefinedGenericType); ok {
		ub, ok := b.(*UndefinedGenericType)
		return ok && ua.id == ub.id
	}
	return a == b
}

// formatGenerics renders "Name<A, B>" using render for each argument.
func formatGenerics(name string, args []Type, render func(Type) string) string {
	if len(args) == 0 {
		return name
	}
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('<')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(render(a))
	}
	sb.WriteByte('>')
	return sb.String()
}
