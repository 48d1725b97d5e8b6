// Package main provides the CLI entry point for the ihale-mcp server that connects to the Turkish public procurement portal EKAP.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/ihale-mcp/ihale-mcp/internal/config"
	"github.com/ihale-mcp/ihale-mcp/internal/server"
)

const (
	version = "1.0.0"
	appName = "ihale-mcp"
)

// countModes returns how many of the transport modes are selected.
func countModes(sseMode, httpMode, stdioMode bool) int {
	modeCount := 0
	for _, selected := range []bool{sseMode, httpMode, stdioMode} {
		if selected {
			modeCount++
		}
	}
	return modeCount
}

// validateAndSetMode validates that only one mode is specified and sets default mode if none is specified
func validateAndSetMode(sseMode, httpMode, stdioMode *bool) error {
	switch countModes(*sseMode, *httpMode, *stdioMode) {
	case 0:
		*stdioMode = true
	case 1:
	default:
		return fmt.Errorf("cannot specify multiple modes (-sse, -http, and -stdio are mutually exclusive)")
	}
	return nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s [OPTIONS]\n\n", appName)
	fmt.Fprintf(w, "%s - Turkish Government Tenders (EKAP v2) MCP Server\n\n", appName)
	fmt.Fprintf(w, "This server provides access to Turkish public procurement data: tenders, announcements,\n")
	fmt.Fprintf(w, "OKAS codes and contracting authorities through the Model Context Protocol (MCP) interface.\n\n")
	fmt.Fprintf(w, "OPTIONS:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nMODES:\n")
	fmt.Fprintf(w, "  Default mode is stdio for use with MCP clients\n")
	fmt.Fprintf(w, "  SSE mode provides real-time streaming with heartbeat (best for development/testing)\n")
	fmt.Fprintf(w, "  HTTP mode is stateless and easier for production hosting with load balancers/caching\n\n")
	fmt.Fprintf(w, "CONFIGURATION:\n")
	fmt.Fprintf(w, "  Settings are read from -config, then %s_* environment variables (a .env file is loaded first)\n", config.EnvPrefix)
	fmt.Fprintf(w, "  e.g. %s_BASE_URL, %s_TIMEOUT=45s, %s_INSECURE_LEGACY_TLS=false, %s_PREVIEW_LENGTH=300\n",
		config.EnvPrefix, config.EnvPrefix, config.EnvPrefix, config.EnvPrefix)
	fmt.Fprintf(w, "  Command line flags override both\n\n")
	fmt.Fprintf(w, "EXAMPLES:\n")
	fmt.Fprintf(w, "  %s                          # Start in stdio mode (default)\n", appName)
	fmt.Fprintf(w, "  %s -stdio                   # Explicit stdio mode\n", appName)
	fmt.Fprintf(w, "  %s -sse                     # Start SSE server on :8080\n", appName)
	fmt.Fprintf(w, "  %s -http                    # Start HTTP server on :8080\n", appName)
	fmt.Fprintf(w, "  %s -sse -addr :9000         # Start SSE server on :9000\n", appName)
	fmt.Fprintf(w, "  %s -config ihale-mcp.yaml   # Load settings from a file\n", appName)
	fmt.Fprintf(w, "  %s -debug                   # Enable debug logging\n", appName)
	fmt.Fprintf(w, "\nLOGGING:\n")
	fmt.Fprintf(w, "  Logs are written to stderr in stdio, SSE, and HTTP modes\n")
	fmt.Fprintf(w, "  Use -debug for detailed request/response logging\n")
	fmt.Fprintf(w, "  Prometheus metrics are served on /metrics in SSE and HTTP modes\n\n")
}

// loadConfig reads the configuration and applies the flags the user set explicitly.
func loadConfig(fs *flag.FlagSet, path string, debugMode bool, serverAddr string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Debug = debugMode
		case "addr":
			cfg.Addr = serverAddr
		}
	})
	return cfg, nil
}

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		sseMode     = flag.Bool("sse", false, "Start SSE stream server mode (real-time with heartbeat)")
		httpMode    = flag.Bool("http", false, "Start HTTP server mode (stateless, easier for hosting/caching)")
		serverAddr  = flag.String("addr", config.DefaultAddr, "Server address (used with -sse or -http)")
		stdioMode   = flag.Bool("stdio", false, "Use stdio mode (default)")
		debugMode   = flag.Bool("debug", false, "Enable debug logging")
		configPath  = flag.String("config", "", "Path to a config file (yaml, json or toml)")
	)

	flag.Usage = func() {
		printUsage(os.Stderr, flag.CommandLine)
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("%s version %s\n", appName, version)
		os.Exit(0)
	}

	if err := validateAndSetMode(sseMode, httpMode, stdioMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// A missing .env file is not an error.
	_ = godotenv.Load()

	cfg, err := loadConfig(flag.CommandLine, *configPath, *debugMode, *serverAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	ihaleServer := server.NewIhaleServerWithConfig(cfg)

	if *sseMode {
		fmt.Fprintf(os.Stderr, "Starting %s SSE server on %s (debug=%v)\n", appName, cfg.Addr, cfg.Debug)
		fmt.Fprintf(os.Stderr, "SSE mode provides real-time connection with heartbeat. Logs will be visible in this terminal. Use Ctrl+C to stop.\n")
		err = ihaleServer.RunSSE(cfg.Addr)
	} else if *httpMode {
		fmt.Fprintf(os.Stderr, "Starting %s HTTP server on %s (debug=%v)\n", appName, cfg.Addr, cfg.Debug)
		fmt.Fprintf(os.Stderr, "HTTP mode is stateless and easier for hosting/caching. Logs will be visible in this terminal. Use Ctrl+C to stop.\n")
		err = ihaleServer.RunHTTP(cfg.Addr)
	} else {
		// stdio mode - don't print startup messages to stderr as it interferes with MCP protocol
		err = ihaleServer.RunStdio()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
