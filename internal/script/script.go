package script

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/portgraph/internal/catalog"
	"github.com/vk/portgraph/internal/ctxlog"
	"github.com/vk/portgraph/internal/graph"
	"github.com/vk/portgraph/internal/node"
	"github.com/vk/portgraph/internal/nodedef"
	"github.com/vk/portgraph/internal/portref"
	"github.com/vk/portgraph/internal/typesys"
)

// Script is a parsed wiring script.
type Script struct {
	filename string
	steps    []step
}

type step struct {
	kind  string
	label string
	rng   hcl.Range
	run   func(ctx context.Context, e *env) error
}

// env is what steps act on.
type env struct {
	g   *graph.Graph
	lib *nodedef.Library
	cat *catalog.Catalog
}

// ParseFile reads and parses the script at path.
func ParseFile(path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return Parse(path, src)
}

// Parse parses src. Node, port and type names are resolved by Apply.
func Parse(filename string, src []byte) (*Script, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse script %s: %w", filename, diags)
	}
	content, diags := f.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode script %s: %w", filename, diags)
	}

	s := &Script{filename: filename}
	for _, block := range content.Blocks {
		st, err := decodeStep(block)
		if err != nil {
			return nil, fmt.Errorf("failed to decode script %s: %w", filename, err)
		}
		s.steps = append(s.steps, st)
	}
	return s, nil
}

// Len returns the number of steps.
func (s *Script) Len() int { return len(s.steps) }

func decodeStep(block *hcl.Block) (step, error) {
	st := step{kind: block.Type, rng: block.DefRange}
	if len(block.Labels) > 0 {
		st.label = block.Labels[0]
	}

	decode := func(v any) error {
		if diags := gohcl.DecodeBody(block.Body, nil, v); diags.HasErrors() {
			return diags
		}
		return nil
	}

	switch block.Type {
	case "instance":
		var b instanceBlock
		if err := decode(&b); err != nil {
			return st, err
		}
		if !portref.ValidNodeID(st.label) {
			return st, fmt.Errorf("%s: invalid node id %q", st.rng, st.label)
		}
		st.run = func(ctx context.Context, e *env) error { return e.instance(ctx, st.label, b.Node) }
	case "constant":
		var b constantBlock
		if err := decode(&b); err != nil {
			return st, err
		}
		if !portref.ValidNodeID(st.label) {
			return st, fmt.Errorf("%s: invalid node id %q", st.rng, st.label)
		}
		st.run = func(ctx context.Context, e *env) error { return e.constant(ctx, st.label, b.Value) }
	case "link", "unlink":
		var b linkBlock
		if err := decode(&b); err != nil {
			return st, err
		}
		from, err := portref.Parse(b.From)
		if err != nil {
			return st, fmt.Errorf("%s: from: %w", st.rng, err)
		}
		to, err := portref.Parse(b.To)
		if err != nil {
			return st, fmt.Errorf("%s: to: %w", st.rng, err)
		}
		st.label = from.String() + " -> " + to.String()
		if block.Type == "link" {
			st.run = func(ctx context.Context, e *env) error { return e.link(ctx, from, to) }
		} else {
			st.run = func(ctx context.Context, e *env) error { return e.unlink(ctx, from, to) }
		}
	case "fix":
		var b fixBlock
		if err := decode(&b); err != nil {
			return st, err
		}
		st.run = func(ctx context.Context, e *env) error { return e.fix(ctx, st.label, b.Generic, b.Type) }
	case "overload":
		var b overloadBlock
		if err := decode(&b); err != nil {
			return st, err
		}
		st.run = func(ctx context.Context, e *env) error { return e.overload(ctx, st.label, b.Index) }
	case "remove":
		var b removeBlock
		if err := decode(&b); err != nil {
			return st, err
		}
		st.run = func(ctx context.Context, e *env) error { return e.g.RemoveNode(ctx, st.label) }
	}
	return st, nil
}

// Apply runs every step against g in source order and stops at the first
// failure. Steps already applied stay applied.
func (s *Script) Apply(ctx context.Context, g *graph.Graph, lib *nodedef.Library, cat *catalog.Catalog) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Applying script.", "file", s.filename, "steps", len(s.steps))

	e := &env{g: g, lib: lib, cat: cat}
	for _, st := range s.steps {
		logger.Debug("Applying script step.", "kind", st.kind, "target", st.label, "range", st.rng.String())
		if err := st.run(ctx, e); err != nil {
			return fmt.Errorf("%s: %s %q: %w", st.rng, st.kind, st.label, err)
		}
	}

	logger.Info("Script applied.", "file", s.filename, "steps", len(s.steps), "nodes", len(g.Nodes()))
	return nil
}

func (e *env) instance(ctx context.Context, id, kind string) error {
	def, err := e.lib.Get(kind)
	if err != nil {
		return err
	}
	n, err := node.New(id, def, e.cat.Registry())
	if err != nil {
		return err
	}
	return e.g.AddNode(ctx, n)
}

func (e *env) constant(ctx context.Context, id string, expr hcl.Expression) error {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}
	def, err := nodedef.NewConstant(e.cat, v)
	if err != nil {
		return err
	}
	n, err := node.New(id, def, e.cat.Registry())
	if err != nil {
		return err
	}
	return e.g.AddNode(ctx, n)
}

func (e *env) ports(from, to portref.Ref) (src, dst *node.Port, err error) {
	if src, err = e.port(from, false); err != nil {
		return nil, nil, err
	}
	if dst, err = e.port(to, true); err != nil {
		return nil, nil, err
	}
	return src, dst, nil
}

func (e *env) port(ref portref.Ref, input bool) (*node.Port, error) {
	n, err := e.node(ref.Node)
	if err != nil {
		return nil, err
	}
	find, dir := n.Output, "output"
	if input {
		find, dir = n.Input, "input"
	}
	p, ok := find(ref.Port)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s %q", ErrNoSuchPort, ref.Node, dir, ref.Port)
	}
	return p, nil
}

func (e *env) node(id string) (*node.Node, error) {
	n, ok := e.g.Node(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", graph.ErrUnknownNode, id)
	}
	return n, nil
}

func (e *env) link(ctx context.Context, from, to portref.Ref) error {
	src, dst, err := e.ports(from, to)
	if err != nil {
		return err
	}
	return e.g.Connect(ctx, src, dst)
}

func (e *env) unlink(ctx context.Context, from, to portref.Ref) error {
	src, dst, err := e.ports(from, to)
	if err != nil {
		return err
	}
	e.g.Disconnect(ctx, src, dst)
	return nil
}

func (e *env) fix(ctx context.Context, id, generic string, expr hcl.Expression) error {
	n, err := e.node(id)
	if err != nil {
		return err
	}
	tmpl, err := e.cat.Compile(ctx, expr)
	if err != nil {
		return err
	}
	t, err := tmpl.Instantiate(func(string) (typesys.Type, bool) { return nil, false })
	if err != nil {
		return err
	}
	return e.g.FixGeneric(ctx, n, generic, t)
}

func (e *env) overload(ctx context.Context, id string, index int) error {
	n, err := e.node(id)
	if err != nil {
		return err
	}
	return e.g.SelectOverload(ctx, n, index)
}
