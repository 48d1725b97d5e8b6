package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ihale-mcp/ihale-mcp/internal/config"
	"github.com/ihale-mcp/ihale-mcp/pkg/ekap"
)

const (
	serviceName    = "ihale-mcp"
	serviceVersion = "1.0.0"
)

// IhaleServer exposes Turkish public procurement data from the EKAP portal
// through the MCP protocol.
type IhaleServer struct {
	server *server.MCPServer
	client *ekap.Client
	logger *slog.Logger
	config config.Config

	registry  *prometheus.Registry
	toolCalls *prometheus.CounterVec

	// now is replaced in tests to pin "today".
	now func() time.Time
}

// NewIhaleServer creates a new instance of IhaleServer with default configuration.
func NewIhaleServer() *IhaleServer {
	return NewIhaleServerWithConfig(config.Default())
}

// NewIhaleServerWithConfig creates a new instance of IhaleServer with custom configuration.
func NewIhaleServerWithConfig(cfg config.Config) *IhaleServer {
	return newIhaleServer(cfg, os.Stderr)
}

func newIhaleServer(cfg config.Config, logOutput io.Writer) *IhaleServer {
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	// stdout belongs to the MCP protocol in stdio mode, so logs always go elsewhere.
	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
	}))
	logger.Info("IHALE-MCP server starting up",
		slog.Bool("debugMode", cfg.Debug),
		slog.String("logLevel", logLevel.String()))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	toolCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ihale_tool_calls_total",
		Help: "Total number of MCP tool calls by outcome",
	}, []string{"tool", "outcome"})
	registry.MustRegister(toolCalls)

	opts := append(cfg.ClientOptions(),
		ekap.WithLogger(logger),
		ekap.WithMetrics(ekap.NewMetrics(registry)))

	s := &IhaleServer{
		client:    ekap.NewClient(opts...),
		logger:    logger,
		config:    cfg,
		registry:  registry,
		toolCalls: toolCalls,
		now:       time.Now,
	}
	logger.Info("EKAP client configured",
		slog.String("baseURL", s.client.BaseURL()),
		slog.Duration("timeout", cfg.Timeout),
		slog.Bool("insecureLegacyTLS", cfg.InsecureLegacyTLS))

	s.server = server.NewMCPServer(
		serviceName,
		serviceVersion,
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)
	s.registerTools()

	return s
}

// RunStdio starts the server in stdio mode for MCP client communication.
func (s *IhaleServer) RunStdio() error {
	s.logger.Debug("Starting server in stdio mode")
	return server.ServeStdio(s.server)
}

// RunSSE starts the server in SSE mode with real-time streaming capabilities.
func (s *IhaleServer) RunSSE(addr string) error {
	s.logger.Info("Starting server in SSE mode", slog.String("address", addr))
	return s.serve(addr, s.sseHandler())
}

// RunHTTP starts the server in stateless HTTP mode for production deployment.
func (s *IhaleServer) RunHTTP(addr string) error {
	s.logger.Info("Starting server in HTTP mode", slog.String("address", addr))
	return s.serve(addr, s.httpHandler())
}

func (s *IhaleServer) sseHandler() http.Handler {
	sseServer := server.NewSSEServer(s.server,
		server.WithSSEEndpoint("/mcp"),
		server.WithMessageEndpoint("/mcp/message"),
		server.WithKeepAlive(true),
		server.WithKeepAliveInterval(10*time.Second))

	r := s.newRouter()
	r.Handle("/mcp", s.logMCPRequest(sseServer))
	r.Handle("/mcp/message", sseServer.MessageHandler())
	return r
}

func (s *IhaleServer) httpHandler() http.Handler {
	httpServer := server.NewStreamableHTTPServer(s.server,
		server.WithEndpointPath("/mcp"),
		server.WithStateLess(true),
		server.WithHeartbeatInterval(30*time.Second))

	r := s.newRouter()
	r.Handle("/mcp", s.logMCPRequest(httpServer))
	return r
}

// newRouter builds the routes shared by the SSE and HTTP modes.
func (s *IhaleServer) newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleRoot)
	r.Get("/mcp/health", s.handleMCPHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

func (s *IhaleServer) logMCPRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Info("MCP request received",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("requestID", chiMiddleware.GetReqID(r.Context())),
			slog.String("userAgent", r.Header.Get("User-Agent")),
			slog.String("contentType", r.Header.Get("Content-Type")))
		next.ServeHTTP(w, r)
	})
}

func (s *IhaleServer) writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("Failed to encode response", slog.Any("error", err))
	}
}

func (s *IhaleServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Health check request received", slog.String("method", r.Method), slog.String("path", r.URL.Path))
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

func (s *IhaleServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Root endpoint request", slog.String("method", r.Method), slog.String("path", r.URL.Path))
	s.writeJSON(w, map[string]interface{}{
		"service": serviceName,
		"version": serviceVersion,
		"status":  "healthy",
		"mcp":     "/mcp",
		"metrics": "/metrics",
	})
}

func (s *IhaleServer) handleMCPHealth(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("MCP health check request received", slog.String("method", r.Method), slog.String("path", r.URL.Path))
	s.writeJSON(w, map[string]interface{}{
		"jsonrpc": "2.0",
		"result": map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"logging": map[string]interface{}{},
				"tools": map[string]interface{}{
					"listChanged": true,
				},
			},
			"serverInfo": map[string]interface{}{
				"name":    serviceName,
				"version": serviceVersion,
			},
		},
	})
}

// serve listens on addr and blocks serving handler.
func (s *IhaleServer) serve(addr string, handler http.Handler) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		if strings.Contains(err.Error(), "address already in use") {
			s.logger.Error("Port already in use",
				slog.String("address", addr),
				slog.String("suggestion", "Try a different port with -addr :8081 or kill existing processes"))
		}
		return fmt.Errorf("failed to create listener on %s: %w", addr, err)
	}

	// The actual address matters when addr asks for a random port.
	actualAddr := listener.Addr().String()
	_, port, _ := net.SplitHostPort(actualAddr)
	s.logger.Info("HTTP server will be available with endpoints",
		slog.String("actualAddress", actualAddr),
		slog.String("health", "http://localhost:"+port+"/health"),
		slog.String("metrics", "http://localhost:"+port+"/metrics"),
		slog.String("mcp", "http://localhost:"+port+"/mcp"))

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 30 * time.Second,
	}
	return srv.Serve(listener)
}
