// Package graph keeps a graph of typed ports consistent while it is edited.
//
// # Model
//
// A Graph owns nodes by id. Nodes own their ports, and ports keep symmetric
// link lists. Ports refer back to their node by id only; the graph resolves
// the owner when it needs one.
//
// Every mutation goes through the Graph:
//
//   - Connect links an output to an input after checking assignability,
//     first on the live port types and then re-deriving one or both ends
//     from their declared types. A link that does not fit its live types
//     once propagation settles is removed again.
//   - Disconnect removes a link. Removing a link that does not exist is a
//     no-op.
//   - FixGeneric permanently resolves one generic of a node.
//   - SelectOverload swaps a node's ports for another signature and carries
//     over the links that still fit.
//
// # Propagation
//
// When a link binds a generic placeholder, every port of the owning node that
// mentions the placeholder is rewritten, and every link of a rewritten port
// is checked again. A link that no longer type-checks is dropped; one that
// yields new bindings schedules the same work on the node at its far end.
//
// The cascade runs as a FIFO work-list. Each (link, source type, target type)
// triple is examined at most once and the number of steps is capped, so
// self-referential wirings such as a node feeding List<T> back into its own T
// input stop with ErrPropagationLimit instead of growing without bound.
// Work already applied when the limit is reached is kept.
//
// # Observers
//
// The Canvas receives link, port and node events as they happen. Subscribers
// receive a Change after every mutation; RefreshUI is set when a node's state
// changed beyond its port types, for example its title.
//
// # Thread-Safety
//
// A Graph is not safe for concurrent use. Callers serialize access. The type
// registry shared between graphs is safe for concurrent use.
package graph
