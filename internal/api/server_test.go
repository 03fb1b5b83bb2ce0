package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourdesk/internal/config"
)

func newTestServer(t *testing.T, metricsEnabled bool) *Server {
	t.Helper()
	cfg := config.Load()
	cfg.GinMode = "test"
	cfg.MetricsEnabled = metricsEnabled

	s, err := NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Cleanup() })
	return s
}

func TestServerRoutes(t *testing.T) {
	s := newTestServer(t, true)

	for _, path := range []string{"/health", "/api/catalog", "/api/catalog/stats", "/api/catalog/regions", "/api/shows/bangkok-12-03", "/metrics"} {
		w := httptest.NewRecorder()
		s.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestServerWithoutMetrics(t *testing.T) {
	s := newTestServer(t, false)

	w := httptest.NewRecorder()
	s.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServerRequestIDHeader(t *testing.T) {
	s := newTestServer(t, false)

	w := httptest.NewRecorder()
	s.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
