package api_test

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/logger"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/api"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/collector"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/config"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/domain"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/handler"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/middleware"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/monitor"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBurst = 3

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Service: config.ServiceConfig{Name: "dbhealth", Version: "test", Port: 8501},
		Dashboard: config.DashboardConfig{
			Host: "localhost", User: "root", Database: "testdb",
			Engine: domain.EngineMySQL, Mode: domain.ModeDemo,
		},
	}

	reg := prometheus.NewRegistry()
	factory := collector.NewFactory(collector.WithDemo(collector.NewDemo(rand.NewPCG(5, 6))))
	svc := monitor.NewService(factory, telemetry.NewMetrics(reg))
	dashboard := handler.NewDashboardHandler(svc, cfg.Dashboard, logger.NewNop())

	limiter := middleware.NewConnectLimiter(1, testBurst)
	t.Cleanup(limiter.Stop)

	server, err := api.NewServer(dashboard, limiter, cfg, logger.NewNop(), reg)
	require.NoError(t, err)
	return server.Router()
}

func do(h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.RemoteAddr = "192.0.2.10:40000"
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	h.ServeHTTP(w, req)
	return w
}

func TestServer_DemoRefreshAndMetrics(t *testing.T) {
	h := newTestServer(t)

	w := do(h, http.MethodPost, "/", url.Values{"mode": {"demo"}}.Encode())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Database Metrics")

	w = do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `mode="demo",result="success"} 1`)
	assert.Contains(t, w.Body.String(), "dbhealth_http_requests_total")
}

func TestServer_HealthReportsTemplatesCheck(t *testing.T) {
	h := newTestServer(t)

	w := do(h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string `json:"status"`
		Checks map[string]struct {
			Status string `json:"status"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	require.Contains(t, body.Checks, "templates")
	assert.Equal(t, "healthy", body.Checks["templates"].Status)
}

func TestServer_HealthIsNotRateLimited(t *testing.T) {
	h := newTestServer(t)

	for range testBurst + 2 {
		w := do(h, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestServer_BareFormIsNotRateLimited(t *testing.T) {
	h := newTestServer(t)

	for range testBurst + 2 {
		w := do(h, http.MethodGet, "/", "")
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestServer_CollectionsAreRateLimited(t *testing.T) {
	h := newTestServer(t)

	for range testBurst {
		require.Equal(t, http.StatusOK, do(h, http.MethodGet, "/?mode=demo", "").Code)
	}

	assert.Equal(t, http.StatusTooManyRequests, do(h, http.MethodPost, "/", "mode=demo").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(h, http.MethodPost, "/api/v1/snapshot", "").Code)
}
