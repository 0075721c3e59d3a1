package graph

import "github.com/vk/portgraph/internal/node"

// Canvas observes a graph. The graph calls it synchronously during every
// mutation, so implementations must not call back into the graph.
type Canvas interface {
	AddLink(src, dst *node.Port)
	RemoveLink(src, dst *node.Port)
	// UpdatePortAppearance is called whenever a port's type may have changed
	// or one of its links went away.
	UpdatePortAppearance(p *node.Port)
	AddNode(n *node.Node)
	RemoveNode(n *node.Node)
	// Refresh redraws n, or everything when n is nil.
	Refresh(n *node.Node)
}

// Change is raised after every mutation.
type Change struct {
	// RefreshUI reports that node state other than port types changed.
	RefreshUI bool
}

// Link is an output port linked to an input port.
type Link struct {
	Source *node.Port
	Target *node.Port
}

type nopCanvas struct{}

func (nopCanvas) AddLink(_, _ *node.Port)         {}
func (nopCanvas) RemoveLink(_, _ *node.Port)      {}
func (nopCanvas) UpdatePortAppearance(*node.Port) {}
func (nopCanvas) AddNode(*node.Node)              {}
func (nopCanvas) RemoveNode(*node.Node)           {}
func (nopCanvas) Refresh(*node.Node)              {}
