// Package diag serves the diagnostics endpoints of the console: prometheus
// metrics and pprof.
package diag

import (
	"net/http"
	"net/http/pprof"
	"scanconsole/internal/config"
	"scanconsole/pkg/logger"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options holds configuration for the diagnostics server.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":9090".
	Addr string
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.Metrics.Addr,
		MetricsPath:       cfg.Metrics.Path,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewServer returns an *http.Server exposing the metrics endpoint at
// MetricsPath and pprof under /debug/pprof/.
func NewServer(opts Options) *http.Server {
	mux := http.NewServeMux()

	mux.Handle(opts.MetricsPath, promhttp.Handler())

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           withAccessLog(mux),
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
	}
}

// statusRecorder captures the status code written by the downstream handler.
type statusRecorder struct {
	http.ResponseWriter

	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// withAccessLog logs every scrape at debug level with a request id.
func withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := logger.WithFields(r.Context(), zap.String("requestID", requestID))

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.Debug(ctx, "diagnostics request",
			zap.Int("status_code", rec.status),
			zap.Float64("latency", time.Since(start).Seconds()),
			zap.String("remote_addr", r.RemoteAddr),
			zap.String("url", r.URL.String()),
			zap.String("method", r.Method),
		)
	})
}
