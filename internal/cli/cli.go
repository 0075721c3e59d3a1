package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/portgraph/internal/app"
	"github.com/vk/portgraph/internal/graph"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// pathList collects a repeatable path flag.
type pathList []string

func (p *pathList) String() string { return strings.Join(*p, ",") }

func (p *pathList) Set(v string) error {
	if v == "" {
		return errors.New("path cannot be empty")
	}
	*p = append(*p, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("portgraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
portgraph - Resolve the generic port types of a wired node graph.

Usage:
  portgraph [options] SCRIPT [DEFINITION_PATH...]

Arguments:
  SCRIPT
    Wiring script (.hcl) with instance, constant, link, fix and overload blocks.
  DEFINITION_PATH
    .hcl files or directories with type, node and method blocks.
    Defaults to the directory of SCRIPT.

Options:
`)
		flagSet.PrintDefaults()
	}

	var defs pathList
	scriptFlag := flagSet.String("script", "", "Path to the wiring script.")
	sFlag := flagSet.String("s", "", "Path to the wiring script (shorthand).")
	flagSet.Var(&defs, "defs", "Path to a definition file or directory. May be repeated.")
	formatFlag := flagSet.String("format", app.FormatText, "Report format. Options: 'text', 'json' or 'yaml'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	budgetFlag := flagSet.Int("step-budget", graph.DefaultStepBudget, "Maximum propagation steps per operation.")
	mirrorFlag := flagSet.String("mirror", "", "socket.io URL to mirror canvas events to. Empty is disabled.")
	namespaceFlag := flagSet.String("mirror-namespace", "/", "socket.io namespace for the canvas mirror.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	positional := flagSet.Args()
	path := ""
	switch {
	case *scriptFlag != "":
		path = *scriptFlag
	case *sFlag != "":
		path = *sFlag
	case len(positional) > 0:
		path, positional = positional[0], positional[1:]
	}
	slog.Debug("Script path determined.", "path", path)

	if path == "" {
		slog.Debug("No script path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	defs = append(defs, positional...)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ScriptPath:      path,
		Paths:           []string(defs),
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		ReportFormat:    strings.ToLower(*formatFlag),
		StepBudget:      *budgetFlag,
		MirrorURL:       *mirrorFlag,
		MirrorNamespace: *namespaceFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
