// Package backend defines the scanning backend surface consumed by the console.
// Implementations live in subpackages; httpapi talks to the JSON HTTP API.
package backend

import (
	"context"
	"io"
	"scanconsole/pkg/domain"
)

// TypeLocalOnly tags scan responses whose local verdict is final.
const TypeLocalOnly = "local_only"

// ScanResponse is the immediate answer to a scan submission.
type ScanResponse struct {
	// Type is the backend result tag, e.g. "local_only", "file", "file_analysis" or "url_analysis".
	Type string
	// JobID identifies the cloud job; empty for local-only results.
	JobID string
	// Cached is set when an identical prior scan was found.
	Cached bool
	// URL echoes the submitted URL for URL scans.
	URL string
	// LocalAnalysis is the heuristic verdict, when the backend produced one.
	LocalAnalysis *domain.LocalVerdict
	// Message is an optional informational note, e.g. why the cloud scan was skipped.
	Message string
}

// LocalOnly reports whether no polling should follow.
func (r ScanResponse) LocalOnly() bool {
	return r.Type == TypeLocalOnly
}

// Client is the backend abstraction. Errors are serrors kinds: ErrRejected when
// the backend reports failure, ErrTransport for network and decoding failures,
// ErrNotFound for unknown resources.
//
//go:generate mockgen -package mockbackend -source=interface.go -destination=mock/mockbackend.go *
type Client interface {
	// Scan uploads the file or submits the URL.
	Scan(ctx context.Context, target domain.ScanTarget) (ScanResponse, error)
	// Report queries a job's status once. name only labels the request for the backend.
	Report(ctx context.Context, jobID string, typ domain.TargetType, name string) (domain.ReportStatus, error)
	// ReportPDFURL is the navigable address of the job's PDF report.
	ReportPDFURL(jobID string) string
	// DownloadPDF copies the PDF report to w without interpreting it.
	DownloadPDF(ctx context.Context, jobID string, w io.Writer) (int64, error)
	// History lists recent completed scans.
	History(ctx context.Context) ([]domain.HistoryRecord, error)
	// MonitorLogs returns the recent file-activity window.
	MonitorLogs(ctx context.Context) ([]domain.MonitorLogEntry, error)
	// Quarantine lists quarantined files.
	Quarantine(ctx context.Context) ([]domain.QuarantineItem, error)
	// RestoreQuarantined restores a quarantined file and returns the backend message.
	RestoreQuarantined(ctx context.Context, id string) (string, error)
	// DeleteQuarantined permanently deletes a quarantined file and returns the backend message.
	DeleteQuarantined(ctx context.Context, id string) (string, error)
}
