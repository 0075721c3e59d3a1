package catalog

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/portgraph/internal/ctxlog"
)

// fileRoot decodes the catalog blocks of a file and leaves everything else,
// such as node definitions, to other loaders.
type fileRoot struct {
	Types  []*typeBlock `hcl:"type,block"`
	Remain hcl.Body     `hcl:",remain"`
}

type typeBlock struct {
	Name       string          `hcl:"name,label"`
	Namespace  string          `hcl:"namespace,optional"`
	Base       hcl.Expression  `hcl:"base,optional"`
	Interfaces hcl.Expression  `hcl:"interfaces,optional"`
	Generics   []*genericBlock `hcl:"generic,block"`
	Methods    []*methodBlock  `hcl:"method,block"`
}

type genericBlock struct {
	Name     string `hcl:"name,label"`
	Variance string `hcl:"variance,optional"`
}

type methodBlock struct {
	Name     string          `hcl:"name,label"`
	Generics []*genericBlock `hcl:"generic,block"`
	Params   []*paramBlock   `hcl:"param,block"`
	Returns  hcl.Expression  `hcl:"returns,optional"`
}

type paramBlock struct {
	Name string         `hcl:"name,label"`
	Type hcl.Expression `hcl:"type"`
}

// isExprDefined checks if an HCL expression was actually present in the
// source. The decoder fills omitted optional expressions with a zero-width
// null expression, so a nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", r.String(),
		"is_defined", defined,
	)
	return defined
}

// IsExprDefined is isExprDefined for other loaders that decode type
// expressions with gohcl.
func IsExprDefined(ctx context.Context, expr hcl.Expression) bool {
	return isExprDefined(ctx, expr, "")
}
