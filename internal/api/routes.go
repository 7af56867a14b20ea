package api

import (
	"github.com/gin-gonic/gin"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/handler"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/middleware"
)

// SetupRoutes configures the dashboard and API routes.
// Health and metrics routes are registered by the infrastructure gin builder.
func SetupRoutes(
	router *gin.Engine,
	dashboard *handler.DashboardHandler,
	limiter *middleware.ConnectLimiter,
) {
	// Only a GET carrying a mode collects, so only that one is limited.
	router.GET("/", limitIfQueried(limiter), dashboard.ShowDashboard)

	collect := router.Group("")
	collect.Use(limiter.Middleware())
	collect.POST("/", dashboard.SubmitDashboard)

	v1 := router.Group("/api/v1")
	v1.Use(limiter.Middleware())
	v1.POST("/snapshot", dashboard.Snapshot)
}

func limitIfQueried(limiter *middleware.ConnectLimiter) gin.HandlerFunc {
	limit := limiter.Middleware()
	return func(c *gin.Context) {
		if _, ok := c.GetQuery("mode"); ok {
			limit(c)
			return
		}
		c.Next()
	}
}
