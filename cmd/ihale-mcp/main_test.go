package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihale-mcp/ihale-mcp/internal/config"
)

// TestConstants verifies application constants
func TestConstants(t *testing.T) {
	assert.NotEmpty(t, version)
	assert.Equal(t, "ihale-mcp", appName)
}

func newFlagSet() (*flag.FlagSet, *bool, *string) {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.Bool("help", false, "Show help message")
	fs.Bool("version", false, "Show version information")
	fs.Bool("sse", false, "Start SSE stream server mode (real-time with heartbeat)")
	fs.Bool("http", false, "Start HTTP server mode (stateless, easier for hosting/caching)")
	fs.Bool("stdio", false, "Use stdio mode (default)")
	fs.String("config", "", "Path to a config file (yaml, json or toml)")
	debugMode := fs.Bool("debug", false, "Enable debug logging")
	serverAddr := fs.String("addr", config.DefaultAddr, "Server address (used with -sse or -http)")
	return fs, debugMode, serverAddr
}

// TestFlagUsage tests the custom usage function
func TestFlagUsage(t *testing.T) {
	fs, _, _ := newFlagSet()

	var buf bytes.Buffer
	printUsage(&buf, fs)
	output := buf.String()

	expectedStrings := []string{
		"Usage: ihale-mcp [OPTIONS]",
		"Turkish Government Tenders (EKAP v2) MCP Server",
		"Model Context Protocol (MCP) interface",
		"OPTIONS:",
		"MODES:",
		"CONFIGURATION:",
		"IHALE_MCP_BASE_URL",
		"EXAMPLES:",
		"LOGGING:",
		"-help",
		"-version",
		"-sse",
		"-http",
		"-stdio",
		"-debug",
		"-addr",
		"-config",
	}

	for _, expected := range expectedStrings {
		assert.Contains(t, output, expected)
	}
}

// TestModeCountLogic tests the mode validation logic
func TestModeCountLogic(t *testing.T) {
	testCases := []struct {
		name          string
		sseMode       bool
		httpMode      bool
		stdioMode     bool
		expectError   bool
		expectedStdio bool
	}{
		{name: "no modes specified", expectedStdio: true},
		{name: "stdio mode only", stdioMode: true, expectedStdio: true},
		{name: "sse mode only", sseMode: true},
		{name: "http mode only", httpMode: true},
		{name: "multiple modes - sse and http", sseMode: true, httpMode: true, expectError: true},
		{name: "multiple modes - sse and stdio", sseMode: true, stdioMode: true, expectError: true, expectedStdio: true},
		{name: "multiple modes - http and stdio", httpMode: true, stdioMode: true, expectError: true, expectedStdio: true},
		{name: "all modes specified", sseMode: true, httpMode: true, stdioMode: true, expectError: true, expectedStdio: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sseMode, httpMode, stdioMode := tc.sseMode, tc.httpMode, tc.stdioMode

			err := validateAndSetMode(&sseMode, &httpMode, &stdioMode)
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectedStdio, stdioMode)
		})
	}
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ihale-mcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: true\naddr: \":7000\"\n"), 0o600))

	t.Run("unset flags keep file values", func(t *testing.T) {
		fs, debugMode, serverAddr := newFlagSet()
		require.NoError(t, fs.Parse(nil))

		cfg, err := loadConfig(fs, path, *debugMode, *serverAddr)
		require.NoError(t, err)
		assert.True(t, cfg.Debug)
		assert.Equal(t, ":7000", cfg.Addr)
	})

	t.Run("explicit flags win", func(t *testing.T) {
		fs, debugMode, serverAddr := newFlagSet()
		require.NoError(t, fs.Parse([]string{"-debug=false", "-addr", ":9000"}))

		cfg, err := loadConfig(fs, path, *debugMode, *serverAddr)
		require.NoError(t, err)
		assert.False(t, cfg.Debug)
		assert.Equal(t, ":9000", cfg.Addr)
	})

	t.Run("missing file", func(t *testing.T) {
		fs, debugMode, serverAddr := newFlagSet()
		require.NoError(t, fs.Parse(nil))

		_, err := loadConfig(fs, filepath.Join(dir, "missing.yaml"), *debugMode, *serverAddr)
		assert.Error(t, err)
	})
}

// TestVersionDisplay tests version output functionality
func TestVersionDisplay(t *testing.T) {
	versionString := fmt.Sprintf("%s version %s\n", appName, version)
	assert.True(t, strings.HasPrefix(versionString, "ihale-mcp version"))
	assert.Contains(t, versionString, version)
}

// BenchmarkModeValidation benchmarks the mode counting logic
func BenchmarkModeValidation(b *testing.B) {
	b.Run("SingleMode", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = countModes(true, false, false) > 1
		}
	})

	b.Run("MultipleMode", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = countModes(true, true, false) > 1
		}
	})
}
