package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vk/portgraph/internal/canvas"
	"github.com/vk/portgraph/internal/graph"
	"github.com/vk/portgraph/internal/node"
	"github.com/vk/portgraph/internal/typesys"
	"gopkg.in/yaml.v3"
)

// Report is the resolved state of a graph.
type Report struct {
	Nodes []NodeReport `json:"nodes" yaml:"nodes"`
	Links []LinkReport `json:"links" yaml:"links"`
}

type NodeReport struct {
	ID       string       `json:"id" yaml:"id"`
	Kind     string       `json:"kind" yaml:"kind"`
	Title    string       `json:"title" yaml:"title"`
	Overload string       `json:"overload" yaml:"overload"`
	Inputs   []PortReport `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs  []PortReport `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

type PortReport struct {
	Name        string           `json:"name" yaml:"name"`
	Type        string           `json:"type" yaml:"type"`
	InitialType string           `json:"initial_type" yaml:"initial_type"`
	Color       string           `json:"color" yaml:"color"`
	Links       []string         `json:"links,omitempty" yaml:"links,omitempty"`
	Envelope    typesys.Envelope `json:"envelope" yaml:"envelope"`
}

type LinkReport struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// BuildReport captures g. Nodes are ordered by id.
func BuildReport(g *graph.Graph) (*Report, error) {
	r := &Report{Nodes: []NodeReport{}, Links: []LinkReport{}}
	for _, n := range g.Nodes() {
		nr := NodeReport{ID: n.ID(), Kind: n.Kind(), Title: n.Title, Overload: n.Signature().Name}
		var err error
		if nr.Inputs, err = portReports(n.Inputs); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID(), err)
		}
		if nr.Outputs, err = portReports(n.Outputs); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID(), err)
		}
		r.Nodes = append(r.Nodes, nr)
	}
	for _, l := range g.Links() {
		r.Links = append(r.Links, LinkReport{From: l.Source.Ref().String(), To: l.Target.Ref().String()})
	}
	return r, nil
}

func portReports(ports []*node.Port) ([]PortReport, error) {
	var out []PortReport
	for _, p := range ports {
		env, err := typesys.Serialize(p.Type)
		if err != nil {
			return nil, fmt.Errorf("port %q: %w", p.Name, err)
		}
		pr := PortReport{
			Name:        p.Name,
			Type:        p.Type.String(),
			InitialType: p.InitialType.String(),
			Color:       canvas.Color(p.Type),
			Envelope:    env,
		}
		for _, other := range p.Links() {
			pr.Links = append(pr.Links, other.Ref().String())
		}
		out = append(out, pr)
	}
	return out, nil
}

// Render writes r to w in format.
func (r *Report) Render(w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return r.renderText(w)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func (r *Report) renderText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tKIND\tTITLE\tOVERLOAD")
	for _, n := range r.Nodes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Kind, n.Title, n.Overload)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "PORT\tDIRECTION\tTYPE\tDECLARED\tLINKS")
	row := func(id, dir string, p PortReport) {
		links := "-"
		if len(p.Links) > 0 {
			links = strings.Join(p.Links, ",")
		}
		fmt.Fprintf(tw, "%s.%s\t%s\t%s\t%s\t%s\n", id, p.Name, dir, p.Type, p.InitialType, links)
	}
	for _, n := range r.Nodes {
		for _, p := range n.Inputs {
			row(n.ID, "input", p)
		}
		for _, p := range n.Outputs {
			row(n.ID, "output", p)
		}
	}
	return tw.Flush()
}
