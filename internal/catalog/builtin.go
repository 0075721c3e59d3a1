package catalog

import (
	"context"
	_ "embed"

	"github.com/vk/portgraph/internal/typesys"
)

//go:embed builtin.hcl
var builtinSource []byte

// NewBuiltin creates a catalog pre-loaded with the builtin types.
func NewBuiltin(ctx context.Context, reg *typesys.Registry) (*Catalog, error) {
	c := New(reg)
	if err := c.LoadSource(ctx, "builtin.hcl", builtinSource); err != nil {
		return nil, err
	}
	return c, nil
}
