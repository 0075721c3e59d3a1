package node

import "github.com/vk/portgraph/internal/typesys"

// PortSpec declares one port of a signature.
type PortSpec struct {
	Name string
	Type typesys.Type
}

// Signature is one overload of a node: the full set of ports it exposes.
type Signature struct {
	Name    string
	Inputs  []PortSpec
	Outputs []PortSpec
}

// Definition supplies the ports of a node and reacts to generic resolution.
// A single Definition is shared by every node instantiated from it; per-node
// state lives on the Node.
type Definition interface {
	// Kind names the definition, e.g. "identity" or "List.Add".
	Kind() string
	// Signatures returns every overload. Placeholders must come from scope.
	Signatures(scope *Scope) ([]Signature, error)
	// BeforeGenericsFixed runs before bindings are substituted into n's ports.
	BeforeGenericsFixed(n *Node, changed typesys.Bindings)
	// GenericFixed runs after p's type changed. It reports whether node-level
	// state changed and the node needs to be redrawn.
	GenericFixed(n *Node, p *Port, changed typesys.Bindings) bool
}

// Titler is implemented by definitions that render a node title.
type Titler interface {
	Title(n *Node) string
}

// NopHooks implements the Definition hooks as no-ops.
type NopHooks struct{}

func (NopHooks) BeforeGenericsFixed(*Node, typesys.Bindings) {}

func (NopHooks) GenericFixed(*Node, *Port, typesys.Bindings) bool { return false }
