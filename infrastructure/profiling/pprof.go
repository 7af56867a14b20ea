// Package profiling starts the optional pprof listener and Pyroscope agent.
package profiling

import (
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/logger"
)

const pprofReadHeaderTimeout = 5 * time.Second

// Config controls both profilers. Everything is off by default.
type Config struct {
	PprofEnabled bool `env:"ENABLE_PROFILING" yaml:"pprof_enabled"`
	PprofPort    int  `env:"PPROF_PORT"       yaml:"pprof_port"`

	PyroscopeEnabled     bool   `env:"ENABLE_CONTINUOUS_PROFILING" yaml:"pyroscope_enabled"`
	PyroscopeServerURL   string `env:"PYROSCOPE_SERVER_URL"        yaml:"pyroscope_server_url"`
	PyroscopeEnvironment string `env:"PYROSCOPE_ENVIRONMENT"       yaml:"pyroscope_environment"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.PprofPort == 0 {
		c.PprofPort = 6060
	}
	if c.PyroscopeServerURL == "" {
		c.PyroscopeServerURL = "http://pyroscope:4040"
	}
	if c.PyroscopeEnvironment == "" {
		c.PyroscopeEnvironment = "development"
	}
}

// NewPprofMux returns a mux serving the /debug/pprof endpoints.
func NewPprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// StartPprofServer serves pprof on localhost:PprofPort in the background
// when enabled. It binds to localhost only.
func StartPprofServer(cfg Config, log logger.Logger) {
	if !cfg.PprofEnabled {
		return
	}

	addr := net.JoinHostPort("localhost", strconv.Itoa(cfg.PprofPort))
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewPprofMux(),
		ReadHeaderTimeout: pprofReadHeaderTimeout,
	}

	go func() {
		log.Info("Starting pprof server", logger.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("pprof server error", logger.Error(err))
		}
	}()
}
