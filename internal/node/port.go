package node

import (
	"slices"

	"github.com/google/uuid"
	"github.com/vk/portgraph/internal/portref"
	"github.com/vk/portgraph/internal/typesys"
)

// Port is a typed endpoint on a node. Links are symmetric: when a is linked
// to b, b is linked to a.
type Port struct {
	id     uuid.UUID
	nodeID string

	// Name is unique among the node's ports of the same direction.
	Name    string
	IsInput bool
	// Type is the live type. Only generic propagation mutates it.
	Type typesys.Type
	// InitialType is the type the definition declared. It changes only when a
	// generic is fixed permanently.
	InitialType typesys.Type

	links []*Port
}

// NewPort creates an unlinked port owned by the node with the given id.
func NewPort(nodeID, name string, isInput bool, t typesys.Type) *Port {
	return &Port{
		id:          uuid.New(),
		nodeID:      nodeID,
		Name:        name,
		IsInput:     isInput,
		Type:        t,
		InitialType: t,
	}
}

func (p *Port) ID() uuid.UUID { return p.id }

// NodeID returns the id of the owning node. The node itself is resolved
// through the graph.
func (p *Port) NodeID() string { return p.nodeID }

// IsExec reports whether the port carries control flow.
func (p *Port) IsExec() bool { return p.Type != nil && p.Type.IsExec() }

// Links returns a snapshot of the linked ports, oldest first.
func (p *Port) Links() []*Port { return slices.Clone(p.links) }

func (p *Port) IsLinkedTo(other *Port) bool { return slices.Contains(p.links, other) }

// Link records a symmetric link between p and other. Linking an already
// linked pair does nothing.
func (p *Port) Link(other *Port) {
	if p.IsLinkedTo(other) {
		return
	}
	p.links = append(p.links, other)
	other.links = append(other.links, p)
}

// Unlink removes the link between p and other and reports whether one existed.
func (p *Port) Unlink(other *Port) bool {
	i := slices.Index(p.links, other)
	if i < 0 {
		return false
	}
	p.links = slices.Delete(p.links, i, i+1)
	if j := slices.Index(other.links, p); j >= 0 {
		other.links = slices.Delete(other.links, j, j+1)
	}
	return true
}

// Ref returns the "node.port" reference of the port.
func (p *Port) Ref() portref.Ref {
	return portref.Ref{Node: p.nodeID, Port: p.Name}
}

func (p *Port) Direction() string {
	if p.IsInput {
		return "input"
	}
	return "output"
}

func (p *Port) String() string {
	return p.Ref().String() + ": " + p.Type.String()
}
