package node

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/portgraph/internal/typesys"
)

var (
	// ErrNoSignatures is returned when a definition declares no overload.
	ErrNoSignatures = errors.New("definition declares no signatures")
	// ErrOverloadIndex is returned for an overload index out of range.
	ErrOverloadIndex = errors.New("overload index out of range")
	// ErrDuplicatePort is returned when a signature repeats a port name.
	ErrDuplicatePort = errors.New("duplicate port name")
)

// Node is a vertex of a port graph. Its ports are replaced wholesale when a
// different overload is selected.
type Node struct {
	id    string
	def   Definition
	scope *Scope

	// Title is the display title. Definition hooks keep it current.
	Title string

	signatures []Signature
	overload   int

	Inputs  []*Port
	Outputs []*Port
}

// New instantiates def with the first overload selected. An empty id is
// replaced by a fresh UUID.
func New(id string, def Definition, reg *typesys.Registry) (*Node, error) {
	if id == "" {
		id = uuid.NewString()
	}
	n := &Node{id: id, def: def, scope: NewScope(reg)}

	sigs, err := def.Signatures(n.scope)
	if err != nil {
		return nil, fmt.Errorf("building signatures of %s %q: %w", def.Kind(), id, err)
	}
	if len(sigs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSignatures, def.Kind())
	}
	n.signatures = sigs

	inputs, outputs, err := n.BuildPorts(0)
	if err != nil {
		return nil, err
	}
	n.SetPorts(0, inputs, outputs)

	n.Title = def.Kind()
	if t, ok := def.(Titler); ok {
		n.Title = t.Title(n)
	}
	return n, nil
}

func (n *Node) ID() string                  { return n.id }
func (n *Node) Definition() Definition      { return n.def }
func (n *Node) Kind() string                { return n.def.Kind() }
func (n *Node) Scope() *Scope               { return n.scope }
func (n *Node) Registry() *typesys.Registry { return n.scope.reg }
func (n *Node) Overload() int               { return n.overload }
func (n *Node) Signature() Signature        { return n.signatures[n.overload] }
func (n *Node) Overloads() []Signature      { return n.signatures }

// BuildPorts creates fresh, unlinked ports for the overload at index.
func (n *Node) BuildPorts(index int) (inputs, outputs []*Port, err error) {
	if index < 0 || index >= len(n.signatures) {
		return nil, nil, fmt.Errorf("%w: %d of %d on %q", ErrOverloadIndex, index, len(n.signatures), n.id)
	}
	sig := n.signatures[index]
	build := func(specs []PortSpec, isInput bool) ([]*Port, error) {
		ports := make([]*Port, 0, len(specs))
		seen := make(map[string]bool, len(specs))
		for _, s := range specs {
			if seen[s.Name] {
				return nil, fmt.Errorf("%w: %q in %s", ErrDuplicatePort, s.Name, sig.Name)
			}
			seen[s.Name] = true
			ports = append(ports, NewPort(n.id, s.Name, isInput, s.Type))
		}
		return ports, nil
	}
	if inputs, err = build(sig.Inputs, true); err != nil {
		return nil, nil, err
	}
	if outputs, err = build(sig.Outputs, false); err != nil {
		return nil, nil, err
	}
	return inputs, outputs, nil
}

// SetPorts swaps in the ports of the overload at index. Links of the previous
// ports are left untouched; reconciling them is the graph's job.
func (n *Node) SetPorts(index int, inputs, outputs []*Port) {
	n.overload = index
	n.Inputs = inputs
	n.Outputs = outputs
}

// InputsAndOutputs returns the inputs followed by the outputs.
func (n *Node) InputsAndOutputs() []*Port {
	out := make([]*Port, 0, len(n.Inputs)+len(n.Outputs))
	out = append(out, n.Inputs...)
	return append(out, n.Outputs...)
}

func (n *Node) Input(name string) (*Port, bool)  { return find(n.Inputs, name) }
func (n *Node) Output(name string) (*Port, bool) { return find(n.Outputs, name) }

func find(ports []*Port, name string) (*Port, bool) {
	for _, p := range ports {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// ResolvedGeneric returns what the generic called name currently stands for
// on this node: its fixed type, or the binding recovered by unifying a port's
// live type with its declared type.
func (n *Node) ResolvedGeneric(name string) (typesys.Type, bool) {
	if t, ok := n.scope.Fixed(name); ok {
		return t, true
	}
	u, ok := n.scope.Lookup(name)
	if !ok {
		return nil, false
	}
	for _, p := range n.InputsAndOutputs() {
		if !typesys.Occurs(p.InitialType, u) {
			continue
		}
		b, ok := typesys.IsDirectlyAssignableTo(p.Type, p.InitialType, true)
		if !ok {
			continue
		}
		if t, bound := b[u]; bound && !typesys.Equal(t, u) {
			return t, true
		}
	}
	return nil, false
}
