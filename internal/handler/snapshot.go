package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	infralogger "github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/logger"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/collector"
)

// Snapshot handles POST /api/v1/snapshot. The body carries the same fields
// as the dashboard form.
func (h *DashboardHandler) Snapshot(c *gin.Context) {
	var form connectForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_REQUEST"})
		return
	}

	report, err := h.refresher.Refresh(c.Request.Context(), form.request(h.defaults))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, report)
	case collector.IsConnectionError(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "code": "CONNECTION_ERROR"})
	case errors.Is(err, collector.ErrUnknownMode), errors.Is(err, collector.ErrUnknownEngine):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_REQUEST"})
	default:
		h.logger.Error("Snapshot refresh failed", infralogger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "INTERNAL_ERROR"})
	}
}
