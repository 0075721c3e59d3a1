package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/portgraph/internal/app"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      string
		expectedConfig *app.Config
	}{
		{
			name: "Happy path with all flags",
			args: []string{
				"-script", "/test/wiring.hcl",
				"-defs", "/test/types",
				"--defs=/test/nodes",
				"--format=json",
				"--log-level=debug",
				"--log-format=json",
				"--step-budget=50",
				"--mirror=http://localhost:3000",
				"--mirror-namespace=/canvas",
			},
			expectedConfig: &app.Config{
				ScriptPath:      "/test/wiring.hcl",
				Paths:           []string{"/test/types", "/test/nodes"},
				ReportFormat:    "json",
				LogLevel:        "debug",
				LogFormat:       "json",
				StepBudget:      50,
				MirrorURL:       "http://localhost:3000",
				MirrorNamespace: "/canvas",
			},
		},
		{
			name: "Shorthand flag and defaults",
			args: []string{"-s", "/short/wiring.hcl"},
			expectedConfig: &app.Config{
				ScriptPath:      "/short/wiring.hcl",
				ReportFormat:    "text",
				LogLevel:        "info",
				LogFormat:       "text",
				StepBudget:      1000,
				MirrorNamespace: "/",
			},
		},
		{
			name: "Positional script and definition paths",
			args: []string{"-defs", "/a", "/wiring.hcl", "/b", "/c"},
			expectedConfig: &app.Config{
				ScriptPath:      "/wiring.hcl",
				Paths:           []string{"/a", "/b", "/c"},
				ReportFormat:    "text",
				LogLevel:        "info",
				LogFormat:       "text",
				StepBudget:      1000,
				MirrorNamespace: "/",
			},
		},
		{name: "Help flag triggers clean exit", args: []string{"-h"}, expectExit: true},
		{name: "No script triggers clean exit with usage", args: []string{}, expectExit: true},
		{name: "Invalid log level", args: []string{"--log-level=foo", "/wiring.hcl"}, expectErr: "invalid log-level"},
		{name: "Invalid log format", args: []string{"--log-format=yaml", "/wiring.hcl"}, expectErr: "invalid log-format"},
		{name: "Invalid report format", args: []string{"--format=xml", "/wiring.hcl"}, expectErr: "unknown report format"},
		{name: "Non-positive step budget", args: []string{"--step-budget=0", "/wiring.hcl"}, expectErr: "step budget"},
		{name: "Empty definition path", args: []string{"-defs=", "/wiring.hcl"}, expectErr: "path cannot be empty"},
		{name: "Unknown flag", args: []string{"--nope"}, expectErr: "flag provided but not defined"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := &bytes.Buffer{}
			cfg, shouldExit, err := Parse(tc.args, out)

			if tc.expectErr != "" {
				require.Error(t, err)
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr), "Expected error to be of type ExitError")
				require.Equal(t, 2, exitErr.Code)
				require.Contains(t, err.Error(), tc.expectErr)
				return
			}
			require.NoError(t, err)

			if tc.expectExit {
				require.True(t, shouldExit)
				require.Nil(t, cfg)
				require.Contains(t, out.String(), "Usage:")
				return
			}

			require.False(t, shouldExit)
			if diff := cmp.Diff(tc.expectedConfig, cfg); diff != "" {
				t.Errorf("Parse() config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
