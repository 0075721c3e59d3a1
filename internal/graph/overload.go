package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/portgraph/internal/ctxlog"
	"github.com/vk/portgraph/internal/node"
	"github.com/vk/portgraph/internal/typesys"
)

// SelectOverload replaces the ports of n with those of the overload at index
// and carries over every link whose port survives the switch.
func (g *Graph) SelectOverload(ctx context.Context, n *node.Node, index int) error {
	if _, ok := g.nodes[n.ID()]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, n.ID())
	}
	if index == n.Overload() {
		return nil
	}
	inputs, outputs, err := n.BuildPorts(index)
	if err != nil {
		return err
	}

	removed := n.InputsAndOutputs()
	n.SetPorts(index, inputs, outputs)
	if fixed := n.Scope().FixedBindings(); len(fixed) > 0 {
		for _, p := range n.InputsAndOutputs() {
			p.InitialType = typesys.Substitute(p.InitialType, fixed)
			p.Type = p.InitialType
		}
	}
	ctxlog.FromContext(ctx).Debug("Overload selected.", "node", n.ID(), "overload", n.Signature().Name, "index", index)

	g.canvas.Refresh(n)
	err = g.MergeRemovedConnectionsWithNewConnections(ctx, n.InputsAndOutputs(), removed)
	g.notify(Change{RefreshUI: true})
	return err
}

// MergeRemovedConnectionsWithNewConnections moves the links of removedPorts
// onto newPorts. A removed port is matched to the new port of the same node
// with the same name and the identical declared type. Every link of a
// removed port is dropped; links to neighbors facing the matched port are
// re-created through Connect. Links that no longer type-check stay dropped.
func (g *Graph) MergeRemovedConnectionsWithNewConnections(ctx context.Context, newPorts, removedPorts []*node.Port) error {
	logger := ctxlog.FromContext(ctx)
	var errs []error

	for _, old := range removedPorts {
		match := matchPort(newPorts, old)
		neighbors := old.Links()
		for _, other := range neighbors {
			g.unlink(ctx, old, other)
		}
		if match == nil {
			if len(neighbors) > 0 {
				logger.Debug("Port has no counterpart, links dropped.", "port", old.Ref().String(), "links", len(neighbors))
			}
			continue
		}
		for _, other := range neighbors {
			if other.IsInput == match.IsInput {
				continue
			}
			err := g.Connect(ctx, match, other)
			switch {
			case err == nil:
			case errors.Is(err, ErrIncompatible):
				logger.Debug("Link dropped by overload switch.", "port", match.Ref().String(), "neighbor", other.Ref().String())
			default:
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// matchPort finds the counterpart of old among ports, preferring one with
// the same direction.
func matchPort(ports []*node.Port, old *node.Port) *node.Port {
	var fallback *node.Port
	for _, p := range ports {
		if p.NodeID() != old.NodeID() || p.Name != old.Name || !typesys.Equal(p.InitialType, old.InitialType) {
			continue
		}
		if p.IsInput == old.IsInput {
			return p
		}
		if fallback == nil {
			fallback = p
		}
	}
	return fallback
}
