package graph

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/portgraph/internal/canvas"
	"github.com/vk/portgraph/internal/catalog"
	"github.com/vk/portgraph/internal/node"
	"github.com/vk/portgraph/internal/typesys"
)

// sig declares ports as "name: type expression".
type sig struct {
	name    string
	inputs  []string
	outputs []string
}

// testDef builds its signatures from type expressions compiled against the
// builtin catalog.
type testDef struct {
	kind     string
	cat      *catalog.Catalog
	generics []string
	sigs     []sig
	// titled renders "kind<T>" once T resolves.
	titled bool
	before int
}

func (d *testDef) Kind() string { return d.kind }

func (d *testDef) Signatures(s *node.Scope) ([]node.Signature, error) {
	out := make([]node.Signature, 0, len(d.sigs))
	for _, sg := range d.sigs {
		ins, err := d.specs(s, sg.inputs)
		if err != nil {
			return nil, err
		}
		outs, err := d.specs(s, sg.outputs)
		if err != nil {
			return nil, err
		}
		out = append(out, node.Signature{Name: sg.name, Inputs: ins, Outputs: outs})
	}
	return out, nil
}

func (d *testDef) specs(s *node.Scope, decls []string) ([]node.PortSpec, error) {
	var out []node.PortSpec
	for _, decl := range decls {
		name, expr, _ := strings.Cut(decl, ": ")
		tmpl, err := d.cat.CompileString(context.Background(), expr, d.generics...)
		if err != nil {
			return nil, err
		}
		t, err := tmpl.Instantiate(func(g string) (typesys.Type, bool) { return s.Generic(g), true })
		if err != nil {
			return nil, err
		}
		out = append(out, node.PortSpec{Name: name, Type: t})
	}
	return out, nil
}

func (d *testDef) BeforeGenericsFixed(*node.Node, typesys.Bindings) { d.before++ }

func (d *testDef) GenericFixed(n *node.Node, _ *node.Port, _ typesys.Bindings) bool {
	if !d.titled {
		return false
	}
	title := d.kind
	if t, ok := n.ResolvedGeneric("T"); ok {
		title += "<" + t.String() + ">"
	}
	if title == n.Title {
		return false
	}
	n.Title = title
	return true
}

type fixture struct {
	t       *testing.T
	ctx     context.Context
	cat     *catalog.Catalog
	rec     *canvas.Recorder
	g       *Graph
	changes []Change
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	cat, err := catalog.NewBuiltin(context.Background(), typesys.NewRegistry())
	require.NoError(t, err)
	f := &fixture{t: t, ctx: context.Background(), cat: cat, rec: canvas.NewRecorder()}
	f.g = New(append([]Option{WithCanvas(f.rec)}, opts...)...)
	f.g.Subscribe(func(c Change) { f.changes = append(f.changes, c) })
	return f
}

func (f *fixture) typ(src string) typesys.Type {
	f.t.Helper()
	t, err := f.cat.ParseType(f.ctx, src)
	require.NoError(f.t, err)
	return t
}

// def returns a single-signature definition.
func (f *fixture) def(kind string, generics []string, inputs, outputs []string) *testDef {
	return &testDef{kind: kind, cat: f.cat, generics: generics, sigs: []sig{{name: kind, inputs: inputs, outputs: outputs}}}
}

func (f *fixture) add(id string, def node.Definition) *node.Node {
	f.t.Helper()
	n, err := node.New(id, def, f.cat.Registry())
	require.NoError(f.t, err)
	require.NoError(f.t, f.g.AddNode(f.ctx, n))
	return n
}

func (f *fixture) source(id, typ string) *node.Node {
	return f.add(id, f.def("source", nil, nil, []string{"out: " + typ}))
}

func (f *fixture) sink(id, typ string) *node.Node {
	return f.add(id, f.def("sink", nil, []string{"in: " + typ}, nil))
}

func (f *fixture) identity(id string) *node.Node {
	return f.add(id, f.def("identity", []string{"T"}, []string{"in: T"}, []string{"out: T"}))
}

func (f *fixture) connect(a, b *node.Port) {
	f.t.Helper()
	require.NoError(f.t, f.g.Connect(f.ctx, a, b))
	f.linksTypeCheck()
}

// linksTypeCheck asserts that every link of the graph still fits the live
// types of its ends.
func (f *fixture) linksTypeCheck() {
	f.t.Helper()
	for _, l := range f.g.Links() {
		_, ok := f.g.linkFits(l.Source, l.Target)
		assert.True(f.t, ok, "link %s -> %s", l.Source, l.Target)
	}
}

func in(t *testing.T, n *node.Node, name string) *node.Port {
	t.Helper()
	p, ok := n.Input(name)
	require.True(t, ok, "input %s.%s", n.ID(), name)
	return p
}

func out(t *testing.T, n *node.Node, name string) *node.Port {
	t.Helper()
	p, ok := n.Output(name)
	require.True(t, ok, "output %s.%s", n.ID(), name)
	return p
}
