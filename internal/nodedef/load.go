package nodedef

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/portgraph/internal/catalog"
	"github.com/vk/portgraph/internal/ctxlog"
	"github.com/vk/portgraph/internal/fsutil"
	"github.com/vk/portgraph/internal/node"
)

// Load discovers every .hcl file under paths and registers the node and
// method blocks it finds. The types they mention must already be in cat.
func (l *Library) Load(ctx context.Context, cat *catalog.Catalog, paths ...string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading node definitions...", "paths", paths)

	files, err := fsutil.FindFilesByExtension(paths, ".hcl")
	if err != nil {
		logger.Error("Failed to walk definition paths.", "paths", paths, "error", err)
		return err
	}
	if len(files) == 0 {
		logger.Warn("No .hcl definition files found.", "paths", paths)
		return nil
	}
	logger.Debug("Found HCL files to load.", "files", files)
	return l.LoadFiles(ctx, cat, files...)
}

// LoadFiles parses files and registers their definitions in file order.
func (l *Library) LoadFiles(ctx context.Context, cat *catalog.Catalog, files ...string) error {
	parser := hclparse.NewParser()
	for _, name := range files {
		f, diags := parser.ParseHCLFile(name)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse HCL file %s: %w", name, diags)
		}
		if err := l.decode(ctx, cat, name, f.Body); err != nil {
			return err
		}
	}
	ctxlog.FromContext(ctx).Info("Node definitions loaded.", "definitions_total", len(l.defs))
	return nil
}

// LoadSource registers the definitions of one in-memory HCL document.
func (l *Library) LoadSource(ctx context.Context, cat *catalog.Catalog, filename string, src []byte) error {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.decode(ctx, cat, filename, f.Body)
}

func (l *Library) decode(ctx context.Context, cat *catalog.Catalog, filename string, body hcl.Body) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	var defs []node.Definition
	for _, b := range root.Nodes {
		d, err := newDeclared(ctx, cat, b)
		if err != nil {
			return fmt.Errorf("in %s, node %q: %w", filename, b.Name, err)
		}
		defs = append(defs, d)
	}
	for _, b := range root.Methods {
		m, err := NewMethod(cat, b.Name, b.Type, b.Member, b.Pure)
		if err != nil {
			return fmt.Errorf("in %s, method %q: %w", filename, b.Name, err)
		}
		defs = append(defs, m)
	}

	for _, d := range defs {
		if err := l.Register(ctx, d); err != nil {
			return fmt.Errorf("in %s: %w", filename, err)
		}
	}
	ctxlog.FromContext(ctx).Debug("Successfully loaded definitions from HCL file.", "file", filename, "definitions", len(defs))
	return nil
}
