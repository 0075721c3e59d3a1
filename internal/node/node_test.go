package node

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/portgraph/internal/typesys"
)

type simpleDescriptor struct {
	name   string
	params []typesys.GenericParam
}

func (d simpleDescriptor) Name() string                          { return d.name }
func (d simpleDescriptor) FullName() string                      { return "node_test." + d.name }
func (d simpleDescriptor) GenericParams() []typesys.GenericParam { return d.params }
func (d simpleDescriptor) BaseType([]typesys.Type) typesys.Type  { return nil }
func (d simpleDescriptor) Interfaces([]typesys.Type) []typesys.Type {
	return nil
}
func (d simpleDescriptor) Members([]typesys.Type) []typesys.Member { return nil }

var (
	intDescriptor  = simpleDescriptor{name: "int"}
	listDescriptor = simpleDescriptor{name: "List", params: []typesys.GenericParam{{Name: "T"}}}
)

// wrapDefinition declares two overloads sharing the generic T.
type wrapDefinition struct {
	NopHooks
	reg *typesys.Registry
	err error
}

func (d wrapDefinition) Kind() string { return "wrap" }

func (d wrapDefinition) Signatures(s *Scope) ([]Signature, error) {
	if d.err != nil {
		return nil, d.err
	}
	T := s.Generic("T")
	list := d.reg.MustGet(listDescriptor, T)
	return []Signature{
		{
			Name:    "Wrap",
			Inputs:  []PortSpec{{Name: "value", Type: T}},
			Outputs: []PortSpec{{Name: "list", Type: list}},
		},
		{
			Name:    "WrapTwo",
			Inputs:  []PortSpec{{Name: "value", Type: T}, {Name: "other", Type: T}},
			Outputs: []PortSpec{{Name: "list", Type: list}},
		},
	}, nil
}

func TestNew(t *testing.T) {
	reg := typesys.NewRegistry()
	n, err := New("w", wrapDefinition{reg: reg}, reg)
	require.NoError(t, err)

	assert.Equal(t, "w", n.ID())
	assert.Equal(t, "wrap", n.Title)
	assert.Equal(t, 0, n.Overload())
	assert.Len(t, n.Overloads(), 2)
	require.Len(t, n.Inputs, 1)
	require.Len(t, n.Outputs, 1)

	in := n.Inputs[0]
	assert.True(t, in.IsInput)
	assert.Equal(t, "w", in.NodeID())
	assert.Same(t, in.Type, in.InitialType)
	assert.Equal(t, []string{"T"}, n.Scope().Names())

	out, ok := n.Output("list")
	require.True(t, ok)
	assert.Equal(t, "List<T>", out.Type.String())
	assert.Equal(t, []*Port{in, out}, n.InputsAndOutputs())

	_, ok = n.Input("missing")
	assert.False(t, ok)
}

func TestNew_GeneratesID(t *testing.T) {
	reg := typesys.NewRegistry()
	a, err := New("", wrapDefinition{reg: reg}, reg)
	require.NoError(t, err)
	b, err := New("", wrapDefinition{reg: reg}, reg)
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestNew_Errors(t *testing.T) {
	reg := typesys.NewRegistry()
	boom := errors.New("boom")
	_, err := New("w", wrapDefinition{reg: reg, err: boom}, reg)
	assert.ErrorIs(t, err, boom)
}

func TestBuildPorts_SharedScope(t *testing.T) {
	reg := typesys.NewRegistry()
	n, err := New("w", wrapDefinition{reg: reg}, reg)
	require.NoError(t, err)

	inputs, outputs, err := n.BuildPorts(1)
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Same(t, n.Inputs[0].InitialType, inputs[0].InitialType, "overloads share placeholders")
	assert.Same(t, n.Outputs[0].InitialType, outputs[0].InitialType)
	assert.NotSame(t, n.Inputs[0], inputs[0])

	_, _, err = n.BuildPorts(2)
	assert.ErrorIs(t, err, ErrOverloadIndex)

	n.SetPorts(1, inputs, outputs)
	assert.Equal(t, 1, n.Overload())
	assert.Equal(t, "WrapTwo", n.Signature().Name)
}

func TestPort_Links(t *testing.T) {
	reg := typesys.NewRegistry()
	intType := reg.MustGet(intDescriptor)
	a := NewPort("a", "out", false, intType)
	b := NewPort("b", "in", true, intType)
	c := NewPort("c", "in", true, intType)

	a.Link(b)
	a.Link(b)
	a.Link(c)
	assert.Equal(t, []*Port{b, c}, a.Links())
	assert.Equal(t, []*Port{a}, b.Links())
	assert.True(t, b.IsLinkedTo(a))

	assert.True(t, b.Unlink(a))
	assert.False(t, b.Unlink(a))
	assert.Equal(t, []*Port{c}, a.Links())
	assert.Empty(t, b.Links())

	assert.Equal(t, "a.out", a.Ref().String())
	assert.Equal(t, "a.out: int", a.String())
	assert.Equal(t, "output", a.Direction())
	assert.Equal(t, "input", b.Direction())
	assert.False(t, a.IsExec())
	assert.True(t, NewPort("a", "then", false, typesys.Exec).IsExec())
}

func TestResolvedGeneric(t *testing.T) {
	reg := typesys.NewRegistry()
	intType := reg.MustGet(intDescriptor)
	n, err := New("w", wrapDefinition{reg: reg}, reg)
	require.NoError(t, err)

	_, ok := n.ResolvedGeneric("T")
	assert.False(t, ok, "unresolved")

	n.Outputs[0].Type = reg.MustGet(listDescriptor, intType)
	got, ok := n.ResolvedGeneric("T")
	require.True(t, ok)
	assert.Same(t, intType, got)

	_, ok = n.ResolvedGeneric("U")
	assert.False(t, ok)

	n.Scope().Fix("T", intType)
	got, ok = n.ResolvedGeneric("T")
	require.True(t, ok)
	assert.Same(t, intType, got)
}

func TestScope(t *testing.T) {
	reg := typesys.NewRegistry()
	s := NewScope(reg)
	T := s.Generic("T")
	assert.Same(t, T, s.Generic("T"))
	assert.True(t, s.Owns(T))
	assert.False(t, s.Owns(reg.NewUndefined("T")))

	got, ok := s.Lookup("T")
	require.True(t, ok)
	assert.Same(t, T, got)
	_, ok = s.Lookup("U")
	assert.False(t, ok)
}
