package script

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/portgraph/internal/canvas"
	"github.com/vk/portgraph/internal/catalog"
	"github.com/vk/portgraph/internal/graph"
	"github.com/vk/portgraph/internal/node"
	"github.com/vk/portgraph/internal/nodedef"
	"github.com/vk/portgraph/internal/typesys"
)

type harness struct {
	t   *testing.T
	ctx context.Context
	cat *catalog.Catalog
	lib *nodedef.Library
	rec *canvas.Recorder
	g   *graph.Graph
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	cat, err := catalog.NewBuiltin(ctx, typesys.NewRegistry())
	require.NoError(t, err)
	lib, err := nodedef.NewBuiltin(ctx, cat)
	require.NoError(t, err)
	rec := canvas.NewRecorder()
	return &harness{t: t, ctx: ctx, cat: cat, lib: lib, rec: rec, g: graph.New(graph.WithCanvas(rec))}
}

func (h *harness) apply(src string) error {
	h.t.Helper()
	s, err := Parse("test.hcl", []byte(src))
	require.NoError(h.t, err)
	return s.Apply(h.ctx, h.g, h.lib, h.cat)
}

func (h *harness) node(id string) *node.Node {
	h.t.Helper()
	n, ok := h.g.Node(id)
	require.True(h.t, ok, "node %s", id)
	return n
}

func port(t *testing.T, ports []*node.Port, name string) *node.Port {
	t.Helper()
	for _, p := range ports {
		if p.Name == name {
			return p
		}
	}
	require.Failf(t, "missing port", "%s", name)
	return nil
}

func TestApply_ResolvesThroughLinks(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.apply(`
constant "numbers" {
  value = [1, 2, 3]
}

instance "list" {
  node = "to_list"
}

link {
  from = "numbers.value"
  to   = "list.source"
}
`))

	numbers := h.node("numbers")
	list := h.node("list")
	assert.Equal(t, "[1,2,3]", numbers.Title)
	assert.Equal(t, "List<int>", numbers.Outputs[0].Type.String())
	assert.Equal(t, "IEnumerable<int>", port(t, list.Inputs, "source").Type.String())
	assert.Equal(t, "List<int>", port(t, list.Outputs, "list").Type.String())
	assert.Equal(t, "ToList<int>", list.Title)
	assert.True(t, numbers.Outputs[0].IsLinkedTo(port(t, list.Inputs, "source")))

	assert.Equal(t, 2, h.rec.Count(canvas.OpAddNode))
	assert.Equal(t, 1, h.rec.Count(canvas.OpAddLink))
}

func TestApply_FixAndOverload(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.apply(`
instance "id" {
  node = "identity"
}

fix "id" {
  generic = "T"
  type    = List(string)
}

instance "log" {
  node = "print"
}

overload "log" {
  index = 1
}

link {
  from = "id.value"
  to   = "log.value"
}
`))

	id := h.node("id")
	assert.Equal(t, "List<string>", id.Inputs[0].Type.String())
	assert.Equal(t, "List<string>", id.Outputs[0].InitialType.String())
	assert.Equal(t, "identity<List<string>>", id.Title)

	log := h.node("log")
	assert.Equal(t, 1, log.Overload())
	assert.Equal(t, "PrintFormat", log.Signature().Name)
	assert.True(t, id.Outputs[0].IsLinkedTo(port(t, log.Inputs, "value")))
}

func TestApply_UnlinkAndRemove(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.apply(`
instance "a" {
  node = "identity"
}

instance "b" {
  node = "identity"
}

instance "c" {
  node = "identity"
}

link {
  from = "a.value"
  to   = "b.value"
}

link {
  from = "a.value"
  to   = "c.value"
}

unlink {
  from = "a.value"
  to   = "b.value"
}

remove "c" {}
`))

	_, ok := h.g.Node("c")
	assert.False(t, ok)
	assert.Empty(t, h.g.Links())
	assert.Empty(t, h.node("a").Outputs[0].Links())
	assert.Equal(t, 2, h.rec.Count(canvas.OpRemoveLink))
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{name: "syntax", src: `instance "a" {`, wantMsg: "failed to parse"},
		{name: "unknown block", src: `bogus "a" {}`, wantMsg: "failed to decode"},
		{name: "missing attribute", src: `instance "a" {}`, wantMsg: "failed to decode"},
		{name: "invalid id", src: "instance \"a.b\" {\n  node = \"identity\"\n}", wantMsg: "invalid node id"},
		{name: "bad reference", src: "link {\n  from = \"nodot\"\n  to   = \"b.value\"\n}", wantMsg: "from"},
		{name: "remove with attributes", src: "remove \"a\" {\n  force = true\n}", wantMsg: "failed to decode"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("test.hcl", []byte(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestApply_Errors(t *testing.T) {
	const two = `
instance "a" {
  node = "identity"
}

constant "s" {
  value = "text"
}

instance "l" {
  node = "to_list"
}
`
	testCases := []struct {
		name    string
		src     string
		wantErr error
	}{
		{name: "unknown definition", src: "instance \"x\" {\n  node = \"nope\"\n}", wantErr: nodedef.ErrUnknownDefinition},
		{name: "duplicate node", src: "instance \"a\" {\n  node = \"identity\"\n}", wantErr: graph.ErrDuplicateNode},
		{name: "unknown node", src: "link {\n  from = \"x.value\"\n  to   = \"a.value\"\n}", wantErr: graph.ErrUnknownNode},
		{name: "unknown port", src: "link {\n  from = \"a.nope\"\n  to   = \"l.source\"\n}", wantErr: ErrNoSuchPort},
		{name: "wrong direction", src: "link {\n  from = \"l.source\"\n  to   = \"a.value\"\n}", wantErr: ErrNoSuchPort},
		{name: "incompatible", src: "link {\n  from = \"s.value\"\n  to   = \"l.source\"\n}", wantErr: graph.ErrIncompatible},
		{name: "unknown generic", src: "fix \"a\" {\n  generic = \"U\"\n  type    = int\n}", wantErr: graph.ErrUnknownGeneric},
		{name: "unknown type", src: "fix \"a\" {\n  generic = \"T\"\n  type    = Nope\n}", wantErr: catalog.ErrUnknownType},
		{name: "overload out of range", src: "overload \"a\" {\n  index = 3\n}", wantErr: node.ErrOverloadIndex},
		{name: "remove unknown", src: `remove "x" {}`, wantErr: graph.ErrUnknownNode},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, h.apply(two))

			err := h.apply(tc.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Contains(t, err.Error(), "test.hcl:")
		})
	}
}

func TestApply_KeepsEarlierSteps(t *testing.T) {
	h := newHarness(t)
	err := h.apply(`
instance "a" {
  node = "identity"
}

instance "b" {
  node = "missing"
}
`)
	require.ErrorIs(t, err, nodedef.ErrUnknownDefinition)
	h.node("a")
	assert.Len(t, h.g.Nodes(), 1)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wiring.hcl")
	require.NoError(t, os.WriteFile(path, []byte("instance \"a\" {\n  node = \"identity\"\n}\n"), 0o644))

	s, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.ErrorContains(t, err, "failed to read script")
}
