package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	infralogger "github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/logger"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/collector"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/config"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/domain"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/monitor"
)

// connectionErrorPrefix precedes the driver message on the page.
const connectionErrorPrefix = "Database Connection Error: "

// Refresher runs one collect-evaluate cycle. *monitor.Service implements it.
type Refresher interface {
	Refresh(ctx context.Context, req monitor.Request) (monitor.Report, error)
}

// DashboardHandler serves the dashboard page and its JSON counterpart.
type DashboardHandler struct {
	refresher Refresher
	defaults  config.DashboardConfig
	logger    infralogger.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(
	refresher Refresher,
	defaults config.DashboardConfig,
	log infralogger.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		refresher: refresher,
		defaults:  defaults,
		logger:    log,
	}
}

type formView struct {
	Host     string
	User     string
	Database string
	Engine   domain.Engine
	Mode     domain.Mode
}

type metricView struct {
	Label string
	Value string
}

type reportView struct {
	Mode        domain.Mode
	Columns     [][]metricView
	Alerts      []domain.Alert
	CollectedAt string
}

type pageView struct {
	Form       formView
	Modes      []domain.Mode
	Engines    []domain.Engine
	Report     *reportView
	Error      string
	InputError string
}

// ShowDashboard renders the form. A mode in the query string counts as a
// refresh, so GET /?mode=demo collects immediately.
func (h *DashboardHandler) ShowDashboard(c *gin.Context) {
	if _, ok := c.GetQuery("mode"); !ok {
		h.render(c, http.StatusOK, h.newPage(connectForm{}.request(h.defaults)))
		return
	}

	var form connectForm
	err := c.ShouldBindQuery(&form)
	h.collect(c, form, err)
}

// SubmitDashboard handles the "Connect to Database" form post.
func (h *DashboardHandler) SubmitDashboard(c *gin.Context) {
	var form connectForm
	err := c.ShouldBind(&form)
	h.collect(c, form, err)
}

func (h *DashboardHandler) collect(c *gin.Context, form connectForm, bindErr error) {
	req := form.request(h.defaults)
	page := h.newPage(req)

	if bindErr != nil {
		page.InputError = "Invalid input: " + bindErr.Error()
		h.render(c, http.StatusBadRequest, page)
		return
	}

	report, err := h.refresher.Refresh(c.Request.Context(), req)
	switch {
	case err == nil:
		page.Report = newReportView(report)
	case collector.IsConnectionError(err):
		page.Error = connectionErrorPrefix + err.Error()
	case errors.Is(err, collector.ErrUnknownMode), errors.Is(err, collector.ErrUnknownEngine):
		page.InputError = "Invalid input: " + err.Error()
		h.render(c, http.StatusBadRequest, page)
		return
	default:
		h.logger.Error("Dashboard refresh failed", infralogger.Error(err))
		page.Error = connectionErrorPrefix + err.Error()
	}

	h.render(c, http.StatusOK, page)
}

// newPage echoes every input except the password.
func (h *DashboardHandler) newPage(req monitor.Request) pageView {
	return pageView{
		Form: formView{
			Host:     req.Credentials.Host,
			User:     req.Credentials.User,
			Database: req.Credentials.Database,
			Engine:   req.Credentials.Engine,
			Mode:     req.Mode,
		},
		Modes:   domain.Modes(),
		Engines: domain.Engines(),
	}
}

func (h *DashboardHandler) render(c *gin.Context, status int, page pageView) {
	c.HTML(status, DashboardTemplate, page)
}

func newReportView(r monitor.Report) *reportView {
	s := r.Snapshot
	return &reportView{
		Mode: r.Mode,
		Columns: [][]metricView{
			{
				{Label: "Uptime (sec)", Value: strconv.FormatInt(s.UptimeSeconds, 10)},
				{Label: "Query Time (s)", Value: strconv.FormatFloat(s.QueryLatencySeconds, 'f', -1, 64)},
			},
			{
				{Label: "Active Connections", Value: strconv.FormatInt(s.ActiveConnections, 10)},
				{Label: "Failed Connections", Value: strconv.FormatInt(s.FailedConnections, 10)},
			},
		},
		Alerts:      r.Alerts,
		CollectedAt: r.CollectedAt.Format(time.RFC3339),
	}
}
