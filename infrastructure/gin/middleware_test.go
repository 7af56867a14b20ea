package gin_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ginpkg "github.com/gin-gonic/gin"
	infragin "github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/gin"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	ginpkg.SetMode(ginpkg.TestMode)
}

func TestRequestIDLoggerMiddleware_GeneratesID(t *testing.T) {
	t.Parallel()

	w := serve(t, newTestRouter(t), httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	// uuid without dashes
	const expectedLen = 32
	assert.Len(t, w.Header().Get("X-Request-ID"), expectedLen)
}

func TestRequestIDLoggerMiddleware_PreservesExistingID(t *testing.T) {
	t.Parallel()

	const inboundID = "trace-from-upstream-abc123"

	router := ginpkg.New()
	router.Use(infragin.RequestIDLoggerMiddleware(logger.NewNop()))

	var gotCtxID string
	router.GET("/test", func(c *ginpkg.Context) {
		gotCtxID = c.GetString("request_id")
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("X-Request-ID", inboundID)
	w := serve(t, router, req)

	assert.Equal(t, inboundID, w.Header().Get("X-Request-ID"))
	assert.Equal(t, inboundID, gotCtxID)
}

func TestRequestIDLoggerMiddleware_RejectsOversizedID(t *testing.T) {
	t.Parallel()

	oversized := strings.Repeat("x", 200)

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("X-Request-ID", oversized)
	w := serve(t, newTestRouter(t), req)

	got := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, got)
	assert.NotEqual(t, oversized, got)
}

func TestRequestIDLoggerMiddleware_StoresLoggerInContext(t *testing.T) {
	t.Parallel()

	base := logger.NewNop()
	router := ginpkg.New()
	router.Use(infragin.RequestIDLoggerMiddleware(base))

	var got logger.Logger
	router.GET("/test", func(c *ginpkg.Context) {
		got = logger.FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	serve(t, router, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	// NoOpLogger.With returns itself, so the stored logger is base.
	assert.Same(t, base, got)
}

func TestRequestIDLoggerMiddleware_UniqueIDs(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	const iterations = 100
	ids := make(map[string]struct{}, iterations)
	for range iterations {
		w := serve(t, router, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))
		id := w.Header().Get("X-Request-ID")
		_, dup := ids[id]
		require.False(t, dup, "duplicate request ID %s", id)
		ids[id] = struct{}{}
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	t.Parallel()

	router := ginpkg.New()
	router.Use(infragin.CORSMiddleware(infragin.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"https://ops.example.com"},
	}))
	router.POST("/api", func(c *ginpkg.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api", http.NoBody)
	req.Header.Set("Origin", "https://ops.example.com")
	w := serve(t, router, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://ops.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_UnknownOriginGetsNoHeaders(t *testing.T) {
	t.Parallel()

	router := ginpkg.New()
	router.Use(infragin.CORSMiddleware(infragin.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"https://ops.example.com"},
	}))
	router.GET("/api", func(c *ginpkg.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api", http.NoBody)
	req.Header.Set("Origin", "https://evil.example.com")
	w := serve(t, router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware_ReturnsJSON500(t *testing.T) {
	t.Parallel()

	router := ginpkg.New()
	router.Use(infragin.RecoveryMiddleware(logger.NewNop()))
	router.GET("/boom", func(*ginpkg.Context) { panic("boom") })

	w := serve(t, router, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestServerBuilder_HealthAndMetricsRoutes(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	srv := infragin.NewServerBuilder("dbhealth", 8080).
		WithVersion("1.2.3").
		WithMetrics(reg).
		WithHealthCheck("templates", func() infragin.CheckResult {
			return infragin.CheckResult{Status: infragin.HealthStatusDegraded}
		}).
		Build()

	w := serve(t, srv.Router(), httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)

	var body infragin.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, infragin.HealthStatusDegraded, body.Status)
	assert.Equal(t, "dbhealth", body.Service)
	assert.Equal(t, "1.2.3", body.Version)

	w = serve(t, srv.Router(), httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dbhealth_http_requests_total")
}

func TestServerBuilder_UnhealthyCheckReturns503(t *testing.T) {
	t.Parallel()

	srv := infragin.NewServerBuilder("dbhealth", 8080).
		WithHealthCheck("broken", func() infragin.CheckResult {
			return infragin.CheckResult{Status: infragin.HealthStatusUnhealthy}
		}).
		Build()

	w := serve(t, srv.Router(), httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func newTestRouter(t *testing.T) *ginpkg.Engine {
	t.Helper()

	router := ginpkg.New()
	router.Use(infragin.RequestIDLoggerMiddleware(logger.NewNop()))
	router.GET("/test", func(c *ginpkg.Context) {
		c.String(http.StatusOK, "ok")
	})

	return router
}

func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
