package nodedef

import (
	"context"
	"fmt"

	"github.com/vk/portgraph/internal/catalog"
	"github.com/vk/portgraph/internal/node"
	"github.com/vk/portgraph/internal/typesys"
)

// Exec port names added to definitions with exec = true.
const (
	ExecInput  = "exec"
	ExecOutput = "then"
)

// Declared is a definition from a `node` block.
type Declared struct {
	node.NopHooks

	name     string
	title    string
	generics []string
	sigs     []declaredSignature
}

type declaredSignature struct {
	name    string
	inputs  []declaredPort
	outputs []declaredPort
}

type declaredPort struct {
	name string
	// tmpl is nil for exec ports.
	tmpl *catalog.Template
}

var (
	_ node.Definition = (*Declared)(nil)
	_ node.Titler     = (*Declared)(nil)
)

func newDeclared(ctx context.Context, cat *catalog.Catalog, b *nodeBlock) (*Declared, error) {
	d := &Declared{name: b.Name}
	for _, g := range b.Generics {
		for _, seen := range d.generics {
			if seen == g.Name {
				return nil, fmt.Errorf("generic %q declared twice", g.Name)
			}
		}
		d.generics = append(d.generics, g.Name)
	}
	d.title = b.Title
	if d.title == "" {
		d.title = b.Name + genericSuffix(d.generics)
	}

	compile := func(blocks []*portBlock) ([]declaredPort, error) {
		out := make([]declaredPort, 0, len(blocks))
		for _, pb := range blocks {
			tmpl, err := cat.Compile(ctx, pb.Type, d.generics...)
			if err != nil {
				return nil, fmt.Errorf("port %q: %w", pb.Name, err)
			}
			out = append(out, declaredPort{name: pb.Name, tmpl: tmpl})
		}
		return out, nil
	}

	var commonIn, commonOut []declaredPort
	if b.Exec {
		commonIn = append(commonIn, declaredPort{name: ExecInput})
		commonOut = append(commonOut, declaredPort{name: ExecOutput})
	}
	in, err := compile(b.Inputs)
	if err != nil {
		return nil, err
	}
	out, err := compile(b.Outputs)
	if err != nil {
		return nil, err
	}
	commonIn = append(commonIn, in...)
	commonOut = append(commonOut, out...)

	if len(b.Signatures) == 0 {
		d.sigs = []declaredSignature{{name: b.Name, inputs: commonIn, outputs: commonOut}}
		return d, nil
	}
	for _, sb := range b.Signatures {
		in, err := compile(sb.Inputs)
		if err != nil {
			return nil, fmt.Errorf("signature %q: %w", sb.Name, err)
		}
		out, err := compile(sb.Outputs)
		if err != nil {
			return nil, fmt.Errorf("signature %q: %w", sb.Name, err)
		}
		d.sigs = append(d.sigs, declaredSignature{
			name:    sb.Name,
			inputs:  append(append([]declaredPort(nil), commonIn...), in...),
			outputs: append(append([]declaredPort(nil), commonOut...), out...),
		})
	}
	return d, nil
}

func (d *Declared) Kind() string { return d.name }

// Generics lists the declared generic names.
func (d *Declared) Generics() []string { return d.generics }

func (d *Declared) Signatures(s *node.Scope) ([]node.Signature, error) {
	bind := func(name string) (typesys.Type, bool) { return s.Generic(name), true }
	build := func(ports []declaredPort) ([]node.PortSpec, error) {
		specs := make([]node.PortSpec, 0, len(ports))
		for _, p := range ports {
			if p.tmpl == nil {
				specs = append(specs, node.PortSpec{Name: p.name, Type: typesys.Exec})
				continue
			}
			t, err := p.tmpl.Instantiate(bind)
			if err != nil {
				return nil, fmt.Errorf("port %q: %w", p.name, err)
			}
			specs = append(specs, node.PortSpec{Name: p.name, Type: t})
		}
		return specs, nil
	}

	out := make([]node.Signature, 0, len(d.sigs))
	for _, sig := range d.sigs {
		in, err := build(sig.inputs)
		if err != nil {
			return nil, err
		}
		o, err := build(sig.outputs)
		if err != nil {
			return nil, err
		}
		out = append(out, node.Signature{Name: sig.name, Inputs: in, Outputs: o})
	}
	return out, nil
}

// Title renders the title template with the resolved generics.
func (d *Declared) Title(n *node.Node) string {
	return renderGenerics(n, d.title, d.generics)
}

func (d *Declared) GenericFixed(n *node.Node, _ *node.Port, _ typesys.Bindings) bool {
	return retitle(n, d)
}
