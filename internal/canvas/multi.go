package canvas

import "github.com/vk/portgraph/internal/node"

// Observer is the set of callbacks a graph makes. It mirrors graph.Canvas so
// this package does not depend on the graph.
type Observer interface {
	AddLink(src, dst *node.Port)
	RemoveLink(src, dst *node.Port)
	UpdatePortAppearance(p *node.Port)
	AddNode(n *node.Node)
	RemoveNode(n *node.Node)
	Refresh(n *node.Node)
}

// Multi forwards every callback to each observer in order.
type Multi []Observer

func (m Multi) AddLink(src, dst *node.Port) {
	for _, o := range m {
		o.AddLink(src, dst)
	}
}

func (m Multi) RemoveLink(src, dst *node.Port) {
	for _, o := range m {
		o.RemoveLink(src, dst)
	}
}

func (m Multi) UpdatePortAppearance(p *node.Port) {
	for _, o := range m {
		o.UpdatePortAppearance(p)
	}
}

func (m Multi) AddNode(n *node.Node) {
	for _, o := range m {
		o.AddNode(n)
	}
}

func (m Multi) RemoveNode(n *node.Node) {
	for _, o := range m {
		o.RemoveNode(n)
	}
}

func (m Multi) Refresh(n *node.Node) {
	for _, o := range m {
		o.Refresh(n)
	}
}
