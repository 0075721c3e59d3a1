package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/vk/portgraph/internal/catalog"
	"github.com/vk/portgraph/internal/ctxlog"
	"github.com/vk/portgraph/internal/fsutil"
	"github.com/vk/portgraph/internal/nodedef"
	"github.com/vk/portgraph/internal/script"
	"github.com/vk/portgraph/internal/typesys"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	catalog *catalog.Catalog
	library *nodedef.Library
	script  *script.Script
}

// NewApp is the constructor for the main application. It loads the catalog,
// the node definitions and the script, and panics when any of them fails:
// nothing can run without them. The report goes to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	paths := cfg.Paths
	if len(paths) == 0 {
		paths = []string{filepath.Dir(cfg.ScriptPath)}
	}
	files, err := fsutil.FindFilesByExtension(paths, ".hcl")
	if err != nil {
		panic(fmt.Errorf("failed to discover definition files: %w", err))
	}
	files = fsutil.Exclude(files, cfg.ScriptPath)
	logger.Debug("Found HCL files to load.", "files", files)

	cat, err := catalog.NewBuiltin(ctx, typesys.NewRegistry())
	if err != nil {
		panic(fmt.Errorf("failed to load builtin catalog: %w", err))
	}
	if err := cat.LoadFiles(ctx, files...); err != nil {
		panic(fmt.Errorf("failed to load catalog: %w", err))
	}
	logger.Debug("Catalog loaded.", "types", len(cat.Names()))

	lib, err := nodedef.NewBuiltin(ctx, cat)
	if err != nil {
		panic(fmt.Errorf("failed to load builtin node definitions: %w", err))
	}
	if err := lib.LoadFiles(ctx, cat, files...); err != nil {
		panic(fmt.Errorf("failed to load node definitions: %w", err))
	}
	// A definition that cannot be instantiated is a mismatch between the
	// definitions and the catalog, so we panic.
	if err := lib.Validate(ctx, cat.Registry()); err != nil {
		panic(err)
	}
	logger.Debug("Node definition validation passed.", "definitions", len(lib.Names()))

	s, err := script.ParseFile(cfg.ScriptPath)
	if err != nil {
		panic(fmt.Errorf("failed to load script: %w", err))
	}
	logger.Debug("Script parsed.", "path", cfg.ScriptPath, "steps", s.Len())

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		catalog: cat,
		library: lib,
		script:  s,
	}
}

// Catalog returns the loaded catalog. This is primarily for testing.
func (a *App) Catalog() *catalog.Catalog { return a.catalog }

// Library returns the loaded node definitions. This is primarily for testing.
func (a *App) Library() *nodedef.Library { return a.library }
