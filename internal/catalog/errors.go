package catalog

import "errors"

var (
	// ErrUnknownType is returned when a type expression names no declared type.
	ErrUnknownType = errors.New("unknown type")
	// ErrDuplicateType is returned when two type blocks share a name.
	ErrDuplicateType = errors.New("type declared twice")
	// ErrTypeArity is returned when a type expression supplies the wrong
	// number of generic arguments.
	ErrTypeArity = errors.New("wrong number of generic arguments")
	// ErrInheritanceCycle is returned when base types or interfaces loop.
	ErrInheritanceCycle = errors.New("inheritance cycle")
	// ErrInvalidType is returned for a malformed type expression.
	ErrInvalidType = errors.New("invalid type expression")
)
