package nodedef

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/vk/portgraph/internal/ctxlog"
	"github.com/vk/portgraph/internal/node"
	"github.com/vk/portgraph/internal/typesys"
)

// Library holds node definitions by name.
type Library struct {
	defs map[string]node.Definition
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{defs: make(map[string]node.Definition)}
}

// Register adds def under its kind.
func (l *Library) Register(ctx context.Context, def node.Definition) error {
	name := def.Kind()
	if _, exists := l.defs[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateDefinition, name)
	}
	ctxlog.FromContext(ctx).Debug("Registering node definition.", "name", name)
	l.defs[name] = def
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// definitions compiled into the binary.
func (l *Library) MustRegister(ctx context.Context, def node.Definition) {
	if err := l.Register(ctx, def); err != nil {
		panic(err)
	}
}

// Lookup returns the definition registered under name.
func (l *Library) Lookup(name string) (node.Definition, bool) {
	def, ok := l.defs[name]
	return def, ok
}

// Get is Lookup with an error for unknown names.
func (l *Library) Get(name string) (node.Definition, error) {
	def, ok := l.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownDefinition, name)
	}
	return def, nil
}

// Names lists the registered names in sorted order.
func (l *Library) Names() []string {
	return slices.Sorted(maps.Keys(l.defs))
}

// Validate instantiates every definition once and reports all failures
// together.
func (l *Library) Validate(ctx context.Context, reg *typesys.Registry) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range l.Names() {
		def := l.defs[name]
		n, err := node.New("validate", def, reg)
		if err != nil {
			errs = append(errs, fmt.Sprintf("node %q: %v", name, err))
			continue
		}
		for i := 1; i < len(n.Overloads()); i++ {
			if _, _, err := n.BuildPorts(i); err != nil {
				errs = append(errs, fmt.Sprintf("node %q, overload %d: %v", name, i, err))
			}
		}
		if len(n.InputsAndOutputs()) == 0 {
			logger.Warn("Node definition declares no ports.", "node", name)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("node definition validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
