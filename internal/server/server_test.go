package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gogrim"
	"github.com/njchilds90/gogrim/config"
	"github.com/njchilds90/gogrim/internal/server"
)

func newServer(t *testing.T) *server.Server {
	t.Helper()
	cfg := config.Default()
	e, err := gogrim.New(cfg, nil)
	require.NoError(t, err)
	return server.New(e, cfg.Server, nil)
}

func do(s *server.Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

// ============================================================
// Routes
// ============================================================

func TestTool(t *testing.T) {
	s := newServer(t)
	rec := do(s, http.MethodPost, "/tool", `{"tool": "simplify", "params": {"expr": "Div(Add(1, Sqrt(5)), 2)"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp gogrim.ToolResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Error)
	assert.Equal(t, "GoldenRatio", resp.String)

	_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestToolBadRequests(t *testing.T) {
	s := newServer(t)
	for name, body := range map[string]string{
		"not json":      `{"tool":`,
		"unknown field": `{"tool": "simplify", "colour": "blue"}`,
		"trailing data": `{"tool": "simplify"} {}`,
	} {
		rec := do(s, http.MethodPost, "/tool", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}

	rec := do(s, http.MethodGet, "/tool", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestToolErrorIsReported(t *testing.T) {
	s := newServer(t)
	rec := do(s, http.MethodPost, "/tool", `{"tool": "nope"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp gogrim.ToolResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "unknown tool")
}

func TestRequestIDIsKept(t *testing.T) {
	s := newServer(t)
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", id)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get("X-Request-ID"))

	req.Header.Set("X-Request-ID", "not-a-uuid")
	rec = httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get("X-Request-ID"))
}

func TestSchemaAndHealth(t *testing.T) {
	s := newServer(t)
	rec := do(s, http.MethodGet, "/schema", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, gogrim.MCPToolSpec(), rec.Body.String())

	rec = do(s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
	assert.Positive(t, health["entries"])
}

func TestMetrics(t *testing.T) {
	s := newServer(t)
	do(s, http.MethodPost, "/tool", `{"tool": "complexity", "params": {"expr": "Pi"}}`)
	do(s, http.MethodPost, "/tool", `{"tool": "nope"}`)
	do(s, http.MethodGet, "/health", "")

	n, err := testutil.GatherAndCount(s.Registry(), "grim_tool_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rec := do(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `grim_http_requests_total{code="200",route="/tool"} 2`)
	assert.Contains(t, string(body), `grim_tool_calls_total{outcome="error",tool="nope"} 1`)
}

// ============================================================
// Lifecycle
// ============================================================

func TestRunStopsWithContext(t *testing.T) {
	cfg := config.Default()
	e, err := gogrim.New(cfg, nil)
	require.NoError(t, err)
	cfg.Server.Addr = "127.0.0.1:0"
	s := server.New(e, cfg.Server, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()
	assert.NoError(t, <-done)
}
