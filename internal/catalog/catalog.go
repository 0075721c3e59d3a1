package catalog

import (
	"context"
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/portgraph/internal/ctxlog"
	"github.com/vk/portgraph/internal/fsutil"
	"github.com/vk/portgraph/internal/typesys"
)

// Catalog resolves type names to descriptors and compiles type expressions.
// It is not safe for concurrent loading; lookups after loading are read-only.
type Catalog struct {
	reg    *typesys.Registry
	byName map[string]*Descriptor
	order  []string
}

// New creates an empty catalog whose descriptors are registered with reg.
func New(reg *typesys.Registry) *Catalog {
	return &Catalog{
		reg:    reg,
		byName: make(map[string]*Descriptor),
	}
}

func (c *Catalog) Registry() *typesys.Registry { return c.reg }

// Lookup returns the descriptor declared under the short name.
func (c *Catalog) Lookup(name string) (*Descriptor, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// Names lists the declared type names in load order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.order)
}

// Type instantiates the named type with args.
func (c *Catalog) Type(name string, args ...typesys.Type) (*typesys.ConcreteType, error) {
	d, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, name)
	}
	return c.reg.Get(d, args...)
}

// MustType is like Type but panics on error.
func (c *Catalog) MustType(name string, args ...typesys.Type) *typesys.ConcreteType {
	t, err := c.Type(name, args...)
	if err != nil {
		panic(err)
	}
	return t
}

// Load discovers every .hcl file under paths and loads the type blocks it
// finds. Files may also contain unrelated blocks.
func (c *Catalog) Load(ctx context.Context, paths ...string) error {
	files, err := fsutil.FindFilesByExtension(paths, ".hcl")
	if err != nil {
		return err
	}
	return c.LoadFiles(ctx, files...)
}

// LoadFiles parses and loads the given files as one unit, so types may refer
// to each other across files.
func (c *Catalog) LoadFiles(ctx context.Context, files ...string) error {
	parser := hclparse.NewParser()
	var parsed []parsedFile
	for _, name := range files {
		f, diags := parser.ParseHCLFile(name)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse HCL file %s: %w", name, diags)
		}
		parsed = append(parsed, parsedFile{name: name, file: f})
	}
	return c.declare(ctx, parsed)
}

// LoadSource loads a single in-memory HCL document.
func (c *Catalog) LoadSource(ctx context.Context, filename string, src []byte) error {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return c.declare(ctx, []parsedFile{{name: filename, file: f}})
}

type parsedFile struct {
	name string
	file *hcl.File
}

// declare registers every type block of files. Either all of them load or
// the catalog is left as it was.
func (c *Catalog) declare(ctx context.Context, files []parsedFile) (err error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Catalog loading started.", "file_count", len(files))

	var added []*Descriptor
	defer func() {
		if err != nil {
			c.rollback(added)
		}
	}()

	for _, pf := range files {
		var root fileRoot
		if diags := gohcl.DecodeBody(pf.file.Body, nil, &root); diags.HasErrors() {
			return fmt.Errorf("failed to decode HCL file %s: %w", pf.name, diags)
		}
		for _, block := range root.Types {
			d, err := c.newDescriptor(block)
			if err != nil {
				return fmt.Errorf("in %s: %w", pf.name, err)
			}
			added = append(added, d)
		}
	}

	for _, d := range added {
		if err := c.compile(ctx, d); err != nil {
			return fmt.Errorf("in type %q: %w", d.name, err)
		}
	}

	if err := c.detectCycles(); err != nil {
		return err
	}

	for _, d := range added {
		if err := c.reg.RegisterDescriptor(d); err != nil {
			return err
		}
	}

	logger.Debug("Catalog loading complete.", "types_added", len(added), "types_total", len(c.order))
	return nil
}

func (c *Catalog) rollback(added []*Descriptor) {
	for _, d := range added {
		// The registry is append-only; a descriptor that reached it stays
		// registered. Only the name index is restored.
		delete(c.byName, d.name)
	}
	c.order = slices.DeleteFunc(c.order, func(name string) bool {
		_, ok := c.byName[name]
		return !ok
	})
}

func (c *Catalog) newDescriptor(block *typeBlock) (*Descriptor, error) {
	if _, exists := c.byName[block.Name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateType, block.Name)
	}
	if block.Name == execKeyword {
		return nil, fmt.Errorf("%w: %q is reserved", ErrDuplicateType, block.Name)
	}

	d := &Descriptor{cat: c, name: block.Name, namespace: block.Namespace, block: block}
	seen := make(map[string]bool)
	for _, g := range block.Generics {
		if seen[g.Name] {
			return nil, fmt.Errorf("type %q declares generic %q twice", block.Name, g.Name)
		}
		seen[g.Name] = true
		variance, err := parseVariance(g.Variance)
		if err != nil {
			return nil, fmt.Errorf("type %q, generic %q: %w", block.Name, g.Name, err)
		}
		d.params = append(d.params, typesys.GenericParam{Name: g.Name, Variance: variance})
	}

	c.byName[block.Name] = d
	c.order = append(c.order, block.Name)
	return d, nil
}

func parseVariance(s string) (typesys.Variance, error) {
	switch s {
	case "", "invariant":
		return typesys.Invariant, nil
	case "out":
		return typesys.Covariant, nil
	case "in":
		return typesys.Contravariant, nil
	default:
		return typesys.Invariant, fmt.Errorf("unknown variance %q: must be 'in', 'out' or 'invariant'", s)
	}
}

// compile resolves every type expression of d's block.
func (c *Catalog) compile(ctx context.Context, d *Descriptor) error {
	block := d.block
	isParam := func(names []string) func(string) bool {
		return func(name string) bool { return slices.Contains(names, name) }
	}
	typeParams := make([]string, len(d.params))
	for i, p := range d.params {
		typeParams[i] = p.Name
	}

	if isExprDefined(ctx, block.Base, "base") {
		t, err := c.compileTypeExpr(ctx, block.Base, isParam(typeParams))
		if err != nil {
			return fmt.Errorf("base: %w", err)
		}
		if t.desc == nil {
			return fmt.Errorf("base: %w: %s is not a declared type", ErrInvalidType, t)
		}
		d.base = t
	}

	if isExprDefined(ctx, block.Interfaces, "interfaces") {
		exprs, diags := hcl.ExprList(block.Interfaces)
		if diags.HasErrors() {
			return fmt.Errorf("interfaces: %w", diags)
		}
		for _, expr := range exprs {
			t, err := c.compileTypeExpr(ctx, expr, isParam(typeParams))
			if err != nil {
				return fmt.Errorf("interfaces: %w", err)
			}
			if t.desc == nil {
				return fmt.Errorf("interfaces: %w: %s is not a declared type", ErrInvalidType, t)
			}
			d.interfaces = append(d.interfaces, t)
		}
	}

	for _, mb := range block.Methods {
		m := &method{name: mb.Name}
		names := slices.Clone(typeParams)
		for _, g := range mb.Generics {
			if slices.Contains(names, g.Name) {
				return fmt.Errorf("method %q: generic %q shadows another generic", mb.Name, g.Name)
			}
			names = append(names, g.Name)
			m.generics = append(m.generics, c.reg.NewUndefined(g.Name))
		}
		for _, pb := range mb.Params {
			t, err := c.compileTypeExpr(ctx, pb.Type, isParam(names))
			if err != nil {
				return fmt.Errorf("method %q, param %q: %w", mb.Name, pb.Name, err)
			}
			m.params = append(m.params, methodParam{name: pb.Name, typ: t})
		}
		if isExprDefined(ctx, mb.Returns, "returns") {
			t, err := c.compileTypeExpr(ctx, mb.Returns, isParam(names))
			if err != nil {
				return fmt.Errorf("method %q, returns: %w", mb.Name, err)
			}
			m.returns = t
		}
		d.methods = append(d.methods, m)
	}

	d.block = nil
	return nil
}

// detectCycles rejects inheritance loops with a depth-first search over the
// direct supertypes of every descriptor.
func (c *Catalog) detectCycles() error {
	permanent := make(map[*Descriptor]bool)
	temporary := make(map[*Descriptor]bool)

	var visit func(d *Descriptor) error
	visit = func(d *Descriptor) error {
		if permanent[d] {
			return nil
		}
		if temporary[d] {
			return fmt.Errorf("%w involving type %q", ErrInheritanceCycle, d.name)
		}
		temporary[d] = true
		for _, super := range d.supertypes() {
			if err := visit(super); err != nil {
				return err
			}
		}
		delete(temporary, d)
		permanent[d] = true
		return nil
	}

	for _, name := range c.order {
		if err := visit(c.byName[name]); err != nil {
			return err
		}
	}
	return nil
}
