package catalog

import (
	"context"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/portgraph/internal/typesys"
)

// Template is a compiled type expression that still refers to generics by
// name. Instantiate it once per generic scope.
type Template struct {
	cat  *Catalog
	root *term
}

// Compile compiles an HCL type expression in which the identifiers listed in
// generics name generic parameters.
func (c *Catalog) Compile(ctx context.Context, expr hcl.Expression, generics ...string) (*Template, error) {
	t, err := c.compileTypeExpr(ctx, expr, func(name string) bool { return slices.Contains(generics, name) })
	if err != nil {
		return nil, err
	}
	return &Template{cat: c, root: t}, nil
}

// CompileString is Compile for a type expression in source form.
func (c *Catalog) CompileString(ctx context.Context, src string, generics ...string) (*Template, error) {
	t, err := c.compileTypeString(ctx, src, "<type>", func(name string) bool { return slices.Contains(generics, name) })
	if err != nil {
		return nil, err
	}
	return &Template{cat: c, root: t}, nil
}

// ParseType compiles and instantiates a closed type expression such as
// "List(int)".
func (c *Catalog) ParseType(ctx context.Context, src string) (typesys.Type, error) {
	tmpl, err := c.CompileString(ctx, src)
	if err != nil {
		return nil, err
	}
	return tmpl.Instantiate(func(string) (typesys.Type, bool) { return nil, false })
}

// Instantiate builds the type with every generic resolved through bind.
func (t *Template) Instantiate(bind func(name string) (typesys.Type, bool)) (typesys.Type, error) {
	return t.cat.instantiate(t.root, bind)
}

// Generics lists the generic names the template refers to.
func (t *Template) Generics() []string { return t.root.params(nil) }

func (t *Template) String() string { return t.root.String() }
