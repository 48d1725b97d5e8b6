package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ihale-mcp/ihale-mcp/internal/config"
)

// fixedNow pins "today" for tests that depend on the date.
var fixedNow = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.Local)

// portalCall is a request received by the mock portal.
type portalCall struct {
	Path string
	Body map[string]interface{}
}

// mockPortal answers EKAP endpoints with canned JSON and records what it received.
type mockPortal struct {
	mu      sync.Mutex
	answers map[string]string
	status  int
	calls   []portalCall
}

func (p *mockPortal) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	var body map[string]interface{}
	_ = json.Unmarshal(data, &body)

	p.mu.Lock()
	p.calls = append(p.calls, portalCall{Path: r.URL.Path, Body: body})
	status := p.status
	answer, ok := p.answers[r.URL.Path]
	p.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		fmt.Fprint(w, `{"error": "upstream failure"}`)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "Not found"}`)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, answer)
}

func (p *mockPortal) setStatus(status int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
}

func (p *mockPortal) last(t *testing.T) portalCall {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.calls) == 0 {
		t.Fatal("Expected the portal to be called")
	}
	return p.calls[len(p.calls)-1]
}

func (p *mockPortal) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

// newTestServer creates an IhaleServer talking to a mock portal with the given answers.
func newTestServer(t *testing.T, answers map[string]string) (*IhaleServer, *mockPortal) {
	t.Helper()
	portal := &mockPortal{answers: answers}
	upstream := httptest.NewServer(portal)
	t.Cleanup(upstream.Close)

	cfg := config.Default()
	cfg.BaseURL = upstream.URL
	cfg.Timeout = 5 * time.Second

	s := newIhaleServer(cfg, io.Discard)
	s.now = func() time.Time { return fixedNow }
	return s, portal
}

// extractTextContent joins the text parts of an MCP result.
func extractTextContent(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}

	var content strings.Builder
	for _, c := range result.Content {
		if textContent, ok := mcp.AsTextContent(c); ok {
			content.WriteString(textContent.Text)
		}
	}
	return content.String()
}

// decodeResult parses the JSON text of an MCP result.
func decodeResult(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(extractTextContent(result)), &out); err != nil {
		t.Fatalf("Result is not JSON: %v\n%s", err, extractTextContent(result))
	}
	return out
}

func createMockRequest(params map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: params,
		},
	}
}
