package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/portgraph/internal/canvas"
	"github.com/vk/portgraph/internal/ctxlog"
	"github.com/vk/portgraph/internal/graph"
)

// Run applies the script to a new graph and writes the report.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	observers := canvas.Multi{canvas.NewLogger(a.logger, slog.LevelDebug)}
	if a.config.MirrorURL != "" {
		mirror, err := canvas.DialSocketIO(ctx, a.config.MirrorURL, canvas.DialOptions{Namespace: a.config.MirrorNamespace})
		if err != nil {
			return fmt.Errorf("failed to connect canvas mirror: %w", err)
		}
		defer func() {
			if err := mirror.Close(); err != nil {
				a.logger.Warn("Failed to close canvas mirror.", "error", err)
			}
		}()
		a.logger.Info("Mirroring canvas events.", "url", a.config.MirrorURL)
		observers = append(observers, mirror)
	}

	g := graph.New(graph.WithCanvas(observers), graph.WithStepBudget(a.config.StepBudget))
	if err := a.script.Apply(ctx, g, a.library, a.catalog); err != nil {
		return fmt.Errorf("failed to apply script: %w", err)
	}
	a.logger.Debug("Graph built.", "node_count", len(g.Nodes()), "link_count", len(g.Links()))

	report, err := BuildReport(g)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := report.Render(a.outW, a.config.ReportFormat); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
