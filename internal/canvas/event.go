package canvas

import "github.com/vk/portgraph/internal/node"

// Op names a canvas callback.
type Op string

const (
	OpAddLink    Op = "add_link"
	OpRemoveLink Op = "remove_link"
	OpUpdatePort Op = "update_port"
	OpAddNode    Op = "add_node"
	OpRemoveNode Op = "remove_node"
	OpRefresh    Op = "refresh"
)

// Event is the serializable form of one canvas callback. Ports are given as
// "node.port" references.
type Event struct {
	Op     Op     `json:"op" yaml:"op"`
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
	Port   string `json:"port,omitempty" yaml:"port,omitempty"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Color  string `json:"color,omitempty" yaml:"color,omitempty"`
	Node   string `json:"node,omitempty" yaml:"node,omitempty"`
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
}

func linkEvent(op Op, src, dst *node.Port) Event {
	return Event{Op: op, Source: src.Ref().String(), Target: dst.Ref().String()}
}

func portEvent(p *node.Port) Event {
	return Event{
		Op:    OpUpdatePort,
		Port:  p.Ref().String(),
		Node:  p.NodeID(),
		Type:  p.Type.String(),
		Color: Color(p.Type),
	}
}

// nodeEvent describes n; a nil node stands for the whole canvas.
func nodeEvent(op Op, n *node.Node) Event {
	if n == nil {
		return Event{Op: op}
	}
	return Event{Op: op, Node: n.ID(), Title: n.Title}
}

// sink adapts a function receiving Events to the canvas callbacks.
type sink func(Event)

func (s sink) AddLink(src, dst *node.Port)       { s(linkEvent(OpAddLink, src, dst)) }
func (s sink) RemoveLink(src, dst *node.Port)    { s(linkEvent(OpRemoveLink, src, dst)) }
func (s sink) UpdatePortAppearance(p *node.Port) { s(portEvent(p)) }
func (s sink) AddNode(n *node.Node)              { s(nodeEvent(OpAddNode, n)) }
func (s sink) RemoveNode(n *node.Node)           { s(nodeEvent(OpRemoveNode, n)) }
func (s sink) Refresh(n *node.Node)              { s(nodeEvent(OpRefresh, n)) }
