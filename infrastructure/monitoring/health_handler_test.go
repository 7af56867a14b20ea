package monitoring_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/monitoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryHealthHandler(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	monitoring.MemoryHealthHandler(w, httptest.NewRequest(http.MethodGet, "/health/memory", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body monitoring.MemoryHealth
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Positive(t, body.NumGoroutine)
	assert.Positive(t, body.GOMaxProcs)
}
