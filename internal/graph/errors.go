package graph

import "errors"

var (
	// ErrSamePort is returned when a port is connected to itself.
	ErrSamePort = errors.New("cannot connect a port to itself")
	// ErrSameDirection is returned when two inputs or two outputs are connected.
	ErrSameDirection = errors.New("ports have the same direction")
	// ErrUnknownNode is returned for a node, or a port of a node, the graph does not hold.
	ErrUnknownNode = errors.New("unknown node")
	// ErrUnknownPort is returned for a port that is no longer on its node,
	// typically one replaced by an overload switch.
	ErrUnknownPort = errors.New("port is not on its node")
	// ErrDuplicateNode is returned when a node id is added twice.
	ErrDuplicateNode = errors.New("node already exists")
	// ErrIncompatible is returned when the port types do not unify.
	ErrIncompatible = errors.New("incompatible port types")
	// ErrPropagationLimit is returned when a propagation cascade exceeds the
	// step budget. Changes applied before the limit are kept.
	ErrPropagationLimit = errors.New("propagation step budget exhausted")
	// ErrUnknownGeneric is returned for a generic name a node does not declare.
	ErrUnknownGeneric = errors.New("unknown generic")
)
