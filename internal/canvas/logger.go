package canvas

import (
	"context"
	"log/slog"

	"github.com/vk/portgraph/internal/node"
)

// Logger writes every event to a slog.Logger at the configured level.
type Logger struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogger returns a canvas that logs to logger at level.
func NewLogger(logger *slog.Logger, level slog.Level) *Logger {
	return &Logger{logger: logger, level: level}
}

func (l *Logger) log(e Event) {
	attrs := []slog.Attr{slog.String("op", string(e.Op))}
	for _, kv := range [][2]string{
		{"source", e.Source},
		{"target", e.Target},
		{"port", e.Port},
		{"type", e.Type},
		{"node", e.Node},
		{"title", e.Title},
	} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}
	l.logger.LogAttrs(context.Background(), l.level, "Canvas event.", attrs...)
}

func (l *Logger) AddLink(src, dst *node.Port)       { sink(l.log).AddLink(src, dst) }
func (l *Logger) RemoveLink(src, dst *node.Port)    { sink(l.log).RemoveLink(src, dst) }
func (l *Logger) UpdatePortAppearance(p *node.Port) { sink(l.log).UpdatePortAppearance(p) }
func (l *Logger) AddNode(n *node.Node)              { sink(l.log).AddNode(n) }
func (l *Logger) RemoveNode(n *node.Node)           { sink(l.log).RemoveNode(n) }
func (l *Logger) Refresh(n *node.Node)              { sink(l.log).Refresh(n) }
