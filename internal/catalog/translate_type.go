// This file contains the logic for parsing HCL type expressions (e.g. `int`,
// `List(IEnumerable(T))`) into compiled type terms.

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/portgraph/internal/ctxlog"
	"github.com/vk/portgraph/internal/typesys"
	"github.com/zclconf/go-cty/cty"
)

// execKeyword names the control-flow type in type expressions.
const execKeyword = "Exec"

// term is a compiled type expression. Exactly one of param, exec or desc is
// set.
type term struct {
	param string
	exec  bool
	desc  *Descriptor
	args  []*term
}

func (t *term) String() string {
	switch {
	case t.exec:
		return execKeyword
	case t.param != "":
		return t.param
	case len(t.args) == 0:
		return t.desc.name
	}
	parts := make([]string, len(t.args))
	for i, a := range t.args {
		parts[i] = a.String()
	}
	return t.desc.name + "(" + strings.Join(parts, ", ") + ")"
}

// params appends the generic names referenced by t in first-seen order.
func (t *term) params(out []string) []string {
	if t.param != "" {
		for _, p := range out {
			if p == t.param {
				return out
			}
		}
		return append(out, t.param)
	}
	for _, a := range t.args {
		out = a.params(out)
	}
	return out
}

// binder resolves a generic name to the type it currently stands for.
type binder func(name string) (typesys.Type, bool)

func (c *Catalog) instantiate(t *term, bind binder) (typesys.Type, error) {
	switch {
	case t.exec:
		return typesys.Exec, nil
	case t.param != "":
		typ, ok := bind(t.param)
		if !ok {
			return nil, fmt.Errorf("generic %q is not bound", t.param)
		}
		return typ, nil
	}
	args := make([]typesys.Type, len(t.args))
	for i, a := range t.args {
		typ, err := c.instantiate(a, bind)
		if err != nil {
			return nil, err
		}
		args[i] = typ
	}
	return c.reg.Get(t.desc, args...)
}

// compileTypeExpr converts an HCL type expression into a term. isGeneric
// reports whether an identifier names a generic parameter in scope.
func (c *Catalog) compileTypeExpr(ctx context.Context, expr hcl.Expression, isGeneric func(string) bool) (*term, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		return nil, fmt.Errorf("%w: missing type expression", ErrInvalidType)
	}

	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		logger.Debug("Parsing type expression as a generic instantiation.", "call", v.Name)

		d, ok := c.byName[v.Name]
		if !ok {
			return nil, fmt.Errorf("%s: %w %q", v.Range(), ErrUnknownType, v.Name)
		}
		if len(v.Args) == 0 {
			return nil, fmt.Errorf("%s: %w: %s() needs at least one argument, use the bare name for non-generic types", v.Range(), ErrInvalidType, v.Name)
		}
		if len(v.Args) != len(d.params) {
			return nil, fmt.Errorf("%s: %w: %s expects %d, got %d", v.Range(), ErrTypeArity, v.Name, len(d.params), len(v.Args))
		}

		t := &term{desc: d, args: make([]*term, len(v.Args))}
		for i, arg := range v.Args {
			argTerm, err := c.compileTypeExpr(ctx, arg, isGeneric)
			if err != nil {
				return nil, fmt.Errorf("in argument %d of %s: %w", i, v.Name, err)
			}
			t.args[i] = argTerm
		}
		return t, nil

	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return nil, fmt.Errorf("%s: %w: type names are single identifiers", v.Range(), ErrInvalidType)
		}
		name := v.Traversal.RootName()
		logger.Debug("Parsing type expression as a name.", "keyword", name)

		switch {
		case isGeneric != nil && isGeneric(name):
			return &term{param: name}, nil
		case name == execKeyword:
			return &term{exec: true}, nil
		}
		d, ok := c.byName[name]
		if !ok {
			return nil, fmt.Errorf("%s: %w %q", v.Range(), ErrUnknownType, name)
		}
		if len(d.params) > 0 {
			return nil, fmt.Errorf("%s: %w: %s expects %d, got 0", v.Range(), ErrTypeArity, name, len(d.params))
		}
		return &term{desc: d}, nil

	case *hclsyntax.TemplateExpr:
		// A quoted type, e.g. type = "List(int)".
		if !v.IsStringLiteral() {
			return nil, fmt.Errorf("%s: %w: quoted types cannot contain interpolations", v.Range(), ErrInvalidType)
		}
		val, diags := v.Value(nil)
		if diags.HasErrors() || !val.Type().Equals(cty.String) {
			return nil, fmt.Errorf("%s: %w: %s", v.Range(), ErrInvalidType, diags.Error())
		}
		return c.compileTypeString(ctx, val.AsString(), v.Range().Filename, isGeneric)

	default:
		return nil, fmt.Errorf("%s: %w: unsupported expression %T", expr.Range(), ErrInvalidType, v)
	}
}

func (c *Catalog) compileTypeString(ctx context.Context, src, filename string, isGeneric func(string) bool) (*term, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidType, src, diags)
	}
	return c.compileTypeExpr(ctx, expr, isGeneric)
}
