package nodedef

import (
	"context"
	_ "embed"

	"github.com/vk/portgraph/internal/catalog"
)

//go:embed builtin.hcl
var builtinSource []byte

// NewBuiltin creates a library with the builtin definitions. cat must know
// the builtin catalog types.
func NewBuiltin(ctx context.Context, cat *catalog.Catalog) (*Library, error) {
	l := NewLibrary()
	if err := l.LoadSource(ctx, cat, "builtin.hcl", builtinSource); err != nil {
		return nil, err
	}
	return l, nil
}
