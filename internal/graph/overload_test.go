package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/portgraph/internal/node"
)

func (f *fixture) wrap(id string) *node.Node {
	return f.add(id, &testDef{
		kind:     "wrap",
		cat:      f.cat,
		generics: []string{"T"},
		sigs: []sig{
			{name: "Wrap", inputs: []string{"value: T"}, outputs: []string{"list: List(T)"}},
			{name: "WrapTwo", inputs: []string{"value: T", "other: T"}, outputs: []string{"list: List(T)"}},
		},
	})
}

func TestSelectOverload_KeepsMatchingLinks(t *testing.T) {
	f := newFixture(t)
	src := f.source("src", "int")
	w := f.wrap("w")
	sink := f.sink("sink", "List(int)")
	f.connect(src.Outputs[0], in(t, w, "value"))
	f.connect(out(t, w, "list"), sink.Inputs[0])
	oldValue, oldList := in(t, w, "value"), out(t, w, "list")
	f.changes = nil

	require.NoError(t, f.g.SelectOverload(f.ctx, w, 1))

	assert.Equal(t, 1, w.Overload())
	assert.Equal(t, "WrapTwo", w.Signature().Name)
	require.Len(t, w.Inputs, 2)
	assert.Empty(t, oldValue.Links())
	assert.Empty(t, oldList.Links())

	value := in(t, w, "value")
	assert.NotSame(t, oldValue, value)
	assert.Equal(t, []*node.Port{value}, src.Outputs[0].Links())
	assert.Equal(t, []*node.Port{sink.Inputs[0]}, out(t, w, "list").Links())

	assert.Equal(t, "int", in(t, w, "other").Type.String(), "reconnecting re-runs propagation")
	assert.Equal(t, "List<int>", out(t, w, "list").Type.String())
	assert.Contains(t, f.changes, Change{RefreshUI: true})

	t.Run("same overload is a no-op", func(t *testing.T) {
		before := w.Inputs
		require.NoError(t, f.g.SelectOverload(f.ctx, w, 1))
		assert.Equal(t, before, w.Inputs)
	})

	t.Run("out of range", func(t *testing.T) {
		assert.ErrorIs(t, f.g.SelectOverload(f.ctx, w, 5), node.ErrOverloadIndex)
		assert.Equal(t, 1, w.Overload())
	})
}

func TestSelectOverload_DropsLinksWithoutCounterpart(t *testing.T) {
	f := newFixture(t)
	conv := f.add("conv", &testDef{
		kind: "convert",
		cat:  f.cat,
		sigs: []sig{
			{name: "FromInt", inputs: []string{"value: int"}, outputs: []string{"result: string"}},
			{name: "FromBool", inputs: []string{"value: bool"}, outputs: []string{"result: string"}},
		},
	})
	ints := f.source("ints", "int")
	strs := f.sink("strs", "string")
	f.connect(ints.Outputs[0], in(t, conv, "value"))
	f.connect(out(t, conv, "result"), strs.Inputs[0])

	require.NoError(t, f.g.SelectOverload(f.ctx, conv, 1))

	assert.Empty(t, ints.Outputs[0].Links(), "value changed type")
	assert.Empty(t, in(t, conv, "value").Links())
	assert.Equal(t, []*node.Port{out(t, conv, "result")}, strs.Inputs[0].Links(), "result kept its type")
}

func TestSelectOverload_KeepsFixedGenerics(t *testing.T) {
	f := newFixture(t)
	w := f.wrap("w")
	intType := f.typ("int")
	require.NoError(t, f.g.FixGeneric(f.ctx, w, "T", intType))
	sink := f.sink("sink", "List(int)")
	f.connect(out(t, w, "list"), sink.Inputs[0])

	require.NoError(t, f.g.SelectOverload(f.ctx, w, 1))
	assert.Same(t, intType, in(t, w, "other").InitialType)
	assert.True(t, out(t, w, "list").IsLinkedTo(sink.Inputs[0]))
}

func TestMergeRemovedConnectionsWithNewConnections(t *testing.T) {
	f := newFixture(t)
	src := f.source("src", "int")
	old := f.identity("id")
	f.connect(src.Outputs[0], old.Inputs[0])

	t.Run("direction must oppose the neighbor", func(t *testing.T) {
		removed := old.Inputs[0]
		replacement := node.NewPort("id", "in", false, removed.InitialType)
		require.NoError(t, f.g.MergeRemovedConnectionsWithNewConnections(f.ctx, []*node.Port{replacement}, []*node.Port{removed}))
		assert.Empty(t, src.Outputs[0].Links())
		assert.Empty(t, replacement.Links())
	})

	t.Run("different node never matches", func(t *testing.T) {
		f.connect(src.Outputs[0], old.Inputs[0])
		removed := old.Inputs[0]
		elsewhere := node.NewPort("elsewhere", "in", true, removed.InitialType)
		require.NoError(t, f.g.MergeRemovedConnectionsWithNewConnections(f.ctx, []*node.Port{elsewhere}, []*node.Port{removed}))
		assert.Empty(t, src.Outputs[0].Links())
	})
}
