package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/attrflow/internal/app"
)

func TestParse_FlagsAndDefaults(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{
		"--flow", "flows/demo.hcl",
		"--do", "get:a7",
		"--do", "set:a6=4",
		"--do", "get:a7",
		"--metrics-port", "9090",
	}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "flows/demo.hcl", cfg.FlowPath)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.MetricsPort)

	// Operations keep their command-line order.
	require.Len(t, cfg.Ops, 3)
	assert.Equal(t, app.Operation{Kind: app.OpGet, Attribute: "a7"}, cfg.Ops[0])
	assert.Equal(t, app.Operation{Kind: app.OpSet, Attribute: "a6", RawValue: "4"}, cfg.Ops[1])
	assert.Equal(t, app.Operation{Kind: app.OpGet, Attribute: "a7"}, cfg.Ops[2])
}

func TestParse_FlowPathSources(t *testing.T) {
	t.Run("shorthand flag", func(t *testing.T) {
		cfg, shouldExit, err := Parse([]string{"-f", "demo.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		require.False(t, shouldExit)
		assert.Equal(t, "demo.hcl", cfg.FlowPath)
	})

	t.Run("positional argument", func(t *testing.T) {
		cfg, shouldExit, err := Parse([]string{"demo.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		require.False(t, shouldExit)
		assert.Equal(t, "demo.hcl", cfg.FlowPath)
	})

	t.Run("long flag wins over positional", func(t *testing.T) {
		cfg, _, err := Parse([]string{"--flow", "first.hcl", "second.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "first.hcl", cfg.FlowPath)
	})
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_HelpRequested(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--bogus", "demo.hcl"}},
		{"invalid operation", []string{"--do", "drop:a7", "demo.hcl"}},
		{"invalid log format", []string{"--log-format", "xml", "demo.hcl"}},
		{"invalid log level", []string{"--log-level", "loud", "demo.hcl"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}

func TestParse_LogSettingsAreCaseInsensitive(t *testing.T) {
	cfg, _, err := Parse([]string{"--log-format", "JSON", "--log-level", "Debug", "demo.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}
