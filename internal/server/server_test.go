package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihale-mcp/ihale-mcp/internal/config"
	"github.com/ihale-mcp/ihale-mcp/pkg/ekap"
)

func TestNewIhaleServer(t *testing.T) {
	s := NewIhaleServer()
	require.NotNil(t, s)
	assert.NotNil(t, s.server)
	assert.NotNil(t, s.client)
	assert.NotNil(t, s.logger)
	assert.Equal(t, ekap.DefaultBaseURL, s.client.BaseURL())
}

func TestNewIhaleServerWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.BaseURL = "http://localhost:9999"
	cfg.Debug = true

	s := NewIhaleServerWithConfig(cfg)
	assert.Equal(t, "http://localhost:9999", s.client.BaseURL())
	assert.True(t, s.config.Debug)
}

func TestStartupLogsClientOrigin(t *testing.T) {
	cfg := config.Default()
	cfg.BaseURL = "http://localhost:9999/"

	var logs bytes.Buffer
	s := newIhaleServer(cfg, &logs)
	assert.Equal(t, "http://localhost:9999", s.client.BaseURL())
	assert.Contains(t, logs.String(), "baseURL=http://localhost:9999 ")
}

func serveRoute(t *testing.T, handler http.Handler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	if recorder.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	}
	return recorder, body
}

func TestRouterEndpoints(t *testing.T) {
	s, _ := newTestServer(t, nil)

	for name, handler := range map[string]http.Handler{"http": s.httpHandler(), "sse": s.sseHandler()} {
		t.Run(name, func(t *testing.T) {
			recorder, body := serveRoute(t, handler, "/health")
			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, "healthy", body["status"])
			assert.Equal(t, serviceName, body["service"])
			assert.Equal(t, serviceVersion, body["version"])

			recorder, body = serveRoute(t, handler, "/")
			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, "/mcp", body["mcp"])
			assert.Equal(t, "/metrics", body["metrics"])

			recorder, body = serveRoute(t, handler, "/mcp/health")
			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, "2.0", body["jsonrpc"])
			serverInfo := body["result"].(map[string]interface{})["serverInfo"].(map[string]interface{})
			assert.Equal(t, serviceName, serverInfo["name"])

			recorder, _ = serveRoute(t, handler, "/missing")
			assert.Equal(t, http.StatusNotFound, recorder.Code)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, map[string]string{ekap.EndpointTenderSearch: tenderListAnswer})
	callTool(t, s, "search_tenders", map[string]interface{}{"search_text": "yol"})

	recorder, _ := serveRoute(t, s.httpHandler(), "/metrics")
	assert.Equal(t, http.StatusOK, recorder.Code)

	text := recorder.Body.String()
	assert.Contains(t, text, `ihale_tool_calls_total{outcome="success",tool="search_tenders"} 1`)
	assert.Contains(t, text, "ihale_upstream_requests_total")
	assert.Contains(t, text, "go_goroutines")
}

func TestServeRejectsBusyAddress(t *testing.T) {
	s, _ := newTestServer(t, nil)

	busy := httptest.NewServer(http.NotFoundHandler())
	defer busy.Close()

	err := s.serve(busy.Listener.Addr().String(), s.httpHandler())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create listener")
}
