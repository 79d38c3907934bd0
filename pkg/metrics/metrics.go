// Package metrics holds the prometheus collectors exported by the console.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

//nolint: gochecknoglobals
var (
	// BackendRequestDuration observes backend calls by endpoint and result.
	BackendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "scanconsole",
		Name:      "backend_request_duration_seconds",
		Help:      "Latency of scanning backend requests.",
		Buckets:   DefaultBuckets,
	}, []string{"endpoint", "result"})

	// Submissions counts submission outcomes (local_only, tracked, rejected).
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scanconsole",
		Name:      "submissions_total",
		Help:      "Scan submissions by outcome.",
	}, []string{"outcome"})

	// PollAttempts counts report status queries by result (pending, completed, failed, transport_error).
	PollAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scanconsole",
		Name:      "poll_attempts_total",
		Help:      "Report status queries by result.",
	}, []string{"result"})

	// MonitorRefreshes counts monitor feed refreshes by feed and result.
	MonitorRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scanconsole",
		Name:      "monitor_refreshes_total",
		Help:      "Protection view feed refreshes.",
	}, []string{"feed", "result"})
)

// Result labels shared by the collectors.
const (
	ResultOK    = "ok"
	ResultError = "error"
)
