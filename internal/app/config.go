package app

import (
	"errors"
	"fmt"
	"slices"
)

// Report formats accepted by Config.ReportFormat.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScriptPath string   // wiring script
	Paths      []string // .hcl files or directories with types and node definitions

	LogFormat    string
	LogLevel     string
	ReportFormat string
	StepBudget   int

	// MirrorURL, when set, is the socket.io endpoint canvas events are
	// mirrored to.
	MirrorURL       string
	MirrorNamespace string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScriptPath == "" {
		return nil, errors.New("ScriptPath is a required configuration field and cannot be empty")
	}
	if cfg.ReportFormat == "" {
		cfg.ReportFormat = FormatText
	}
	if !slices.Contains([]string{FormatText, FormatJSON, FormatYAML}, cfg.ReportFormat) {
		return nil, fmt.Errorf("unknown report format %q", cfg.ReportFormat)
	}
	if cfg.StepBudget <= 0 {
		return nil, fmt.Errorf("step budget must be positive, got %d", cfg.StepBudget)
	}
	return &cfg, nil
}
