package typesys

import "errors"

// Sentinel errors for type construction and deserialization. Callers match
// them with errors.Is; the returned errors wrap them with context.
var (
	// ErrUnboundGenerics is returned when a generic descriptor is instantiated
	// without arguments and cannot supply its own.
	ErrUnboundGenerics = errors.New("descriptor has unbound generic parameters")

	// ErrGenericArity is returned when the number of generic arguments does not
	// match the descriptor's declared parameters.
	ErrGenericArity = errors.New("generic argument count mismatch")

	// ErrNilType is returned when a nil descriptor or argument is supplied.
	ErrNilType = errors.New("nil type or descriptor")

	// ErrDuplicateDescriptor is returned when a full name is registered twice.
	ErrDuplicateDescriptor = errors.New("descriptor already registered")

	// ErrUnknownDescriptor is returned when a persisted name cannot be resolved.
	ErrUnknownDescriptor = errors.New("unknown descriptor")

	// ErrUnknownTypeKind is returned for an envelope with an unrecognized tag.
	ErrUnknownTypeKind = errors.New("unknown type kind")

	// ErrMalformedEnvelope is returned when an envelope payload cannot be decoded.
	ErrMalformedEnvelope = errors.New("malformed type envelope")
)
