package nodedef

import "errors"

var (
	// ErrDuplicateDefinition is returned when two definitions share a name.
	ErrDuplicateDefinition = errors.New("node definition already registered")
	// ErrUnknownDefinition is returned when a name has no definition.
	ErrUnknownDefinition = errors.New("unknown node definition")
	// ErrUnknownMember is returned when a method block names a member its
	// type does not declare.
	ErrUnknownMember = errors.New("unknown member")
)
