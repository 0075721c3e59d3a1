package nodedef

import (
	"errors"
	"fmt"

	"github.com/vk/portgraph/internal/catalog"
	"github.com/vk/portgraph/internal/node"
	"github.com/vk/portgraph/internal/typesys"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Kind and output port name of constant nodes.
const (
	ConstantKind = "constant"
	ValuePort    = "value"
)

// Constant is a definition with a single output carrying a fixed value.
type Constant struct {
	node.NopHooks
	value cty.Value
	typ   typesys.Type
	title string
}

var (
	_ node.Definition = (*Constant)(nil)
	_ node.Titler     = (*Constant)(nil)
)

// NewConstant types v through cat and returns a definition producing it.
func NewConstant(cat *catalog.Catalog, v cty.Value) (*Constant, error) {
	if !v.IsWhollyKnown() {
		return nil, errors.New("constant value must be known")
	}
	t, err := cat.FromValue(v)
	if err != nil {
		return nil, err
	}
	raw, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return nil, fmt.Errorf("rendering constant: %w", err)
	}
	return &Constant{value: v, typ: t, title: string(raw)}, nil
}

func (c *Constant) Kind() string { return ConstantKind }

// Value returns the constant value.
func (c *Constant) Value() cty.Value { return c.value }

// Type returns the type of the output.
func (c *Constant) Type() typesys.Type { return c.typ }

func (c *Constant) Signatures(*node.Scope) ([]node.Signature, error) {
	return []node.Signature{{
		Name:    ConstantKind,
		Outputs: []node.PortSpec{{Name: ValuePort, Type: c.typ}},
	}}, nil
}

func (c *Constant) Title(*node.Node) string { return c.title }
