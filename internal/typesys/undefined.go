package typesys

import "github.com/google/uuid"

// UndefinedGenericType is an unresolved generic placeholder. Two placeholders
// are the same entity only when their ids match; the name is for display.
type UndefinedGenericType struct {
	name string
	id   uuid.UUID
}

// ID returns the placeholder's unique identifier.
func (u *UndefinedGenericType) ID() uuid.UUID { return u.id }

func (u *UndefinedGenericType) Name() string               { return u.name }
func (u *UndefinedGenericType) FullName() string           { return u.name }
func (u *UndefinedGenericType) Generics() []Type           { return nil }
func (u *UndefinedGenericType) BaseType() Type             { return nil }
func (u *UndefinedGenericType) Interfaces() []Type         { return nil }
func (u *UndefinedGenericType) HasUndefinedGenerics() bool { return true }
func (u *UndefinedGenericType) IsExec() bool               { return false }
func (u *UndefinedGenericType) Kind() Kind                 { return KindUndefined }
func (u *UndefinedGenericType) String() string             { return u.name }
