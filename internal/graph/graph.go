package graph

import (
	"context"
	"fmt"
	"maps"
	"slices"

	set "github.com/hashicorp/go-set/v3"
	"github.com/vk/portgraph/internal/ctxlog"
	"github.com/vk/portgraph/internal/node"
)

// DefaultStepBudget bounds a single propagation cascade.
const DefaultStepBudget = 1000

// Graph holds nodes and mediates every change to their links and port types.
type Graph struct {
	nodes     map[string]*node.Node
	canvas    Canvas
	budget    int
	listeners []*listener
	// reversed holds the links accepted by walking the target's chain.
	reversed *set.Set[portPair]
}

type listener struct {
	fn func(Change)
}

// Option configures a Graph.
type Option func(*Graph)

// WithCanvas sets the observer notified of visual changes.
func WithCanvas(c Canvas) Option {
	return func(g *Graph) {
		if c != nil {
			g.canvas = c
		}
	}
}

// WithStepBudget caps the number of propagation steps a single mutation may
// take. Values below one select DefaultStepBudget.
func WithStepBudget(steps int) Option {
	return func(g *Graph) {
		if steps > 0 {
			g.budget = steps
		}
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		nodes:  make(map[string]*node.Node),
		canvas: nopCanvas{},
		budget: DefaultStepBudget,

		reversed: set.New[portPair](0),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddNode adds n to the graph.
func (g *Graph) AddNode(ctx context.Context, n *node.Node) error {
	if _, exists := g.nodes[n.ID()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID())
	}
	g.nodes[n.ID()] = n
	g.canvas.AddNode(n)
	ctxlog.FromContext(ctx).Debug("Node added.", "node", n.ID(), "kind", n.Kind())
	g.notify(Change{RefreshUI: true})
	return nil
}

// RemoveNode severs every link of the node and removes it.
func (g *Graph) RemoveNode(ctx context.Context, id string) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	for _, p := range n.InputsAndOutputs() {
		for _, other := range p.Links() {
			g.unlink(ctx, p, other)
		}
	}
	delete(g.nodes, id)
	g.canvas.RemoveNode(n)
	ctxlog.FromContext(ctx).Debug("Node removed.", "node", id)
	g.notify(Change{RefreshUI: true})
	return nil
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*node.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns every node sorted by id.
func (g *Graph) Nodes() []*node.Node {
	out := make([]*node.Node, 0, len(g.nodes))
	for _, id := range slices.Sorted(maps.Keys(g.nodes)) {
		out = append(out, g.nodes[id])
	}
	return out
}

// Links returns every link once, ordered by source node id and port order.
func (g *Graph) Links() []Link {
	var out []Link
	for _, n := range g.Nodes() {
		for _, p := range n.Outputs {
			for _, dst := range p.Links() {
				out = append(out, Link{Source: p, Target: dst})
			}
		}
	}
	return out
}

// Subscribe registers fn for change notifications and returns a function
// that unregisters it.
func (g *Graph) Subscribe(fn func(Change)) (cancel func()) {
	l := &listener{fn: fn}
	g.listeners = append(g.listeners, l)
	return func() {
		g.listeners = slices.DeleteFunc(g.listeners, func(other *listener) bool { return other == l })
	}
}

func (g *Graph) notify(c Change) {
	for _, l := range slices.Clone(g.listeners) {
		l.fn(c)
	}
}

// owner resolves the node of p and checks p is still one of its ports.
func (g *Graph) owner(p *node.Port) (*node.Node, error) {
	n, ok := g.nodes[p.NodeID()]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, p.NodeID())
	}
	if !slices.Contains(n.InputsAndOutputs(), p) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPort, p.Ref())
	}
	return n, nil
}
