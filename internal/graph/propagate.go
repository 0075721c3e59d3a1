package graph

import (
	"context"
	"fmt"

	set "github.com/hashicorp/go-set/v3"
	"github.com/vk/portgraph/internal/ctxlog"
	"github.com/vk/portgraph/internal/node"
	"github.com/vk/portgraph/internal/typesys"
)

// job is one pending application of bindings to a node.
type job struct {
	node    *node.Node
	changed typesys.Bindings
	// useInitial substitutes into declared types instead of live ones.
	useInitial bool
	// initiating is the port the bindings arrived through. Its link is not
	// re-checked.
	initiating *node.Port
	// override also rewrites the declared types.
	override bool
}

// visitKey identifies a link check by the link and the types at both ends.
type visitKey struct {
	src, dst         *node.Port
	srcType, dstType typesys.Type
}

// PropagateNewGeneric applies changed to the ports of n and cascades the
// result through the graph.
//
// Ports whose live type, or declared type when useInitialTypes is set, does
// not mention a changed placeholder are skipped. overrideInitialTypes also
// rewrites the declared types, which makes the resolution permanent.
// initiating, when not nil, is the neighbor the bindings came from.
func (g *Graph) PropagateNewGeneric(ctx context.Context, n *node.Node, changed typesys.Bindings, useInitialTypes bool, initiating *node.Port, overrideInitialTypes bool) error {
	if _, ok := g.nodes[n.ID()]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, n.ID())
	}
	return g.propagate(ctx, job{
		node:       n,
		changed:    changed,
		useInitial: useInitialTypes,
		initiating: initiating,
		override:   overrideInitialTypes,
	})
}

// FixGeneric permanently resolves the generic called name on n to t.
func (g *Graph) FixGeneric(ctx context.Context, n *node.Node, name string, t typesys.Type) error {
	if _, ok := g.nodes[n.ID()]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, n.ID())
	}
	u, ok := n.Scope().Lookup(name)
	if !ok {
		return fmt.Errorf("%w %q on %q", ErrUnknownGeneric, name, n.ID())
	}
	n.Scope().Fix(name, t)
	ctxlog.FromContext(ctx).Debug("Generic fixed.", "node", n.ID(), "generic", name, "type", t.String())

	err := g.propagate(ctx, job{node: n, changed: typesys.Bindings{u: t}, useInitial: true, override: true})
	g.notify(Change{RefreshUI: false})
	return err
}

// propagate drains a FIFO work-list seeded with jobs. Nodes whose hooks
// reported a state change are refreshed once at the end.
func (g *Graph) propagate(ctx context.Context, jobs ...job) error {
	if len(jobs) == 0 {
		return nil
	}
	logger := ctxlog.FromContext(ctx)

	queue := jobs
	visited := set.New[visitKey](0)
	refreshed := set.New[*node.Node](0)
	var refresh []*node.Node
	steps := 0

	var err error
	for len(queue) > 0 {
		if steps >= g.budget {
			err = fmt.Errorf("%w after %d steps, %d pending", ErrPropagationLimit, steps, len(queue))
			logger.Warn("Propagation stopped.", "steps", steps, "pending", len(queue))
			break
		}
		steps++

		j := queue[0]
		queue = queue[1:]
		if j.node == nil {
			continue
		}

		ports, stateChanged := g.apply(j)
		if stateChanged && refreshed.Insert(j.node) {
			refresh = append(refresh, j.node)
		}

		for _, p := range ports {
			for _, other := range p.Links() {
				if other == j.initiating {
					continue
				}
				src, dst := p, other
				if src.IsInput {
					src, dst = dst, src
				}
				if !visited.Insert(visitKey{src: src, dst: dst, srcType: src.Type, dstType: dst.Type}) {
					continue
				}

				a, ok := g.linkFits(src, dst)
				if !ok {
					logger.Debug("Link no longer type-checks.", "source", src.String(), "target", dst.String())
					g.unlink(ctx, src, dst)
					continue
				}
				if len(a.Source) > 0 {
					queue = append(queue, job{node: g.nodes[src.NodeID()], changed: a.Source, initiating: dst})
				}
				if len(a.Target) > 0 {
					queue = append(queue, job{node: g.nodes[dst.NodeID()], changed: a.Target, initiating: src})
				}
			}
		}
	}

	logger.Debug("Propagation settled.", "steps", steps, "refreshed_nodes", len(refresh))
	for _, n := range refresh {
		g.canvas.Refresh(n)
	}
	if len(refresh) > 0 {
		g.notify(Change{RefreshUI: true})
	}
	return err
}

// apply substitutes j's bindings into the ports of j.node. It returns the
// ports whose live type changed and whether a hook reported a state change.
func (g *Graph) apply(j job) (changedPorts []*node.Port, stateChanged bool) {
	n := j.node
	def := n.Definition()
	def.BeforeGenericsFixed(n, j.changed)

	for _, p := range n.InputsAndOutputs() {
		base := p.Type
		switch {
		case j.useInitial && typesys.References(p.InitialType, j.changed):
			base = p.InitialType
		case !typesys.References(p.Type, j.changed):
			continue
		}

		next := typesys.Substitute(base, j.changed)
		typeChanged := !typesys.Equal(next, p.Type)
		p.Type = next
		if j.override {
			p.InitialType = typesys.Substitute(p.InitialType, j.changed)
		}

		g.canvas.UpdatePortAppearance(p)
		if def.GenericFixed(n, p, j.changed) {
			stateChanged = true
		}
		if typeChanged {
			changedPorts = append(changedPorts, p)
		}
	}
	return changedPorts, stateChanged
}
