// Package httpapi provides a backend.Client implementation for the scanning
// backend's JSON over HTTP API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"scanconsole/pkg/backend"
	"scanconsole/pkg/domain"
	"scanconsole/pkg/logger"
	"scanconsole/pkg/metrics"
	"scanconsole/pkg/serrors"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxErrorBody bounds how much of an unexpected response body ends up in error messages.
const maxErrorBody = 512

// Client talks to the backend gateway. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Ensure Client conforms to the backend.Client interface at compile time.
var _ backend.Client = (*Client)(nil)

// New constructs a Client sending requests to baseURL with httpClient.
func New(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Scan submits the target to POST /api/scan as a multipart form. The file
// content is streamed, not buffered.
func (c *Client) Scan(ctx context.Context, target domain.ScanTarget) (backend.ScanResponse, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeScanForm(mw, target))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/scan", pr)
	if err != nil {
		_ = pr.Close()

		return backend.ScanResponse{}, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	status, b, err := c.do(ctx, "scan", req)
	if err != nil {
		return backend.ScanResponse{}, err
	}

	var rs struct {
		Success       bool                 `json:"success"`
		Error         string               `json:"error"`
		Type          string               `json:"type"`
		ID            string               `json:"id"`
		Cached        bool                 `json:"cached"`
		URL           string               `json:"url"`
		Message       string               `json:"message"`
		LocalAnalysis *domain.LocalVerdict `json:"local_analysis"`
	}
	if err := json.Unmarshal(b, &rs); err != nil {
		return backend.ScanResponse{}, serrors.Wrap(serrors.ErrTransport, err,
			"could not decode scan response (HTTP %d)", status)
	}
	if !rs.Success {
		msg := rs.Error
		if msg == "" {
			msg = "Scan failed"
		}

		return backend.ScanResponse{}, serrors.With(serrors.ErrRejected, "%s", msg)
	}

	return backend.ScanResponse{
		Type:          rs.Type,
		JobID:         rs.ID,
		Cached:        rs.Cached,
		URL:           rs.URL,
		LocalAnalysis: rs.LocalAnalysis,
		Message:       rs.Message,
	}, nil
}

func writeScanForm(mw *multipart.Writer, target domain.ScanTarget) error {
	switch t := target.(type) {
	case domain.FileTarget:
		if !t.Selected() {
			return fmt.Errorf("no file selected")
		}
		part, err := mw.CreateFormFile("file", t.Name)
		if err != nil {
			return fmt.Errorf("could not create file part: %w", err)
		}
		if _, err := io.Copy(part, t.Content); err != nil {
			return fmt.Errorf("could not stream file: %w", err)
		}
	case domain.URLTarget:
		if err := mw.WriteField("url", strings.TrimSpace(t.URL)); err != nil {
			return fmt.Errorf("could not write url field: %w", err)
		}
	default:
		return fmt.Errorf("unsupported scan target %T", target)
	}

	return mw.Close()
}

// Report queries GET /api/report/{id}. The body is decoded whatever the status
// code, since the backend reports upstream failures as {"status":"error"}.
func (c *Client) Report(ctx context.Context,
	jobID string,
	typ domain.TargetType,
	name string) (domain.ReportStatus, error) {
	if name == "" {
		name = "unknown"
	}
	q := url.Values{}
	q.Set("type", string(typ))
	q.Set("filename", name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/report/"+url.PathEscape(jobID)+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	status, b, err := c.do(ctx, "report", req)
	if err != nil {
		return nil, err
	}

	rs, err := DecodeReport(b)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrTransport, err,
			"could not decode report (HTTP %d: %s)", status, snippet(b))
	}

	return rs, nil
}

// ReportPDFURL returns the address of GET /api/report/{id}/pdf.
func (c *Client) ReportPDFURL(jobID string) string {
	return c.baseURL + "/api/report/" + url.PathEscape(jobID) + "/pdf"
}

// DownloadPDF streams the PDF report into w.
func (c *Client) DownloadPDF(ctx context.Context, jobID string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ReportPDFURL(jobID), nil)
	if err != nil {
		return 0, fmt.Errorf("could not create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observe("pdf", start, err)

		return 0, serrors.Wrap(serrors.ErrTransport, err, "could not download report")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err = statusError(resp.StatusCode, b)
		observe("pdf", start, err)

		return 0, err
	}

	n, err := io.Copy(w, resp.Body)
	observe("pdf", start, err)
	if err != nil {
		return n, serrors.Wrap(serrors.ErrTransport, err, "could not write report")
	}

	return n, nil
}

// History returns GET /api/history.
func (c *Client) History(ctx context.Context) ([]domain.HistoryRecord, error) {
	var out []domain.HistoryRecord
	if err := c.getJSON(ctx, "history", "/api/history", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// MonitorLogs returns GET /api/monitor/logs.
func (c *Client) MonitorLogs(ctx context.Context) ([]domain.MonitorLogEntry, error) {
	var out []domain.MonitorLogEntry
	if err := c.getJSON(ctx, "monitor_logs", "/api/monitor/logs", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Quarantine returns GET /api/quarantine.
func (c *Client) Quarantine(ctx context.Context) ([]domain.QuarantineItem, error) {
	var out []domain.QuarantineItem
	if err := c.getJSON(ctx, "quarantine", "/api/quarantine", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// RestoreQuarantined posts to /api/quarantine/restore.
func (c *Client) RestoreQuarantined(ctx context.Context, id string) (string, error) {
	return c.quarantineAction(ctx, "quarantine_restore", "/api/quarantine/restore", id)
}

// DeleteQuarantined posts to /api/quarantine/delete.
func (c *Client) DeleteQuarantined(ctx context.Context, id string) (string, error) {
	return c.quarantineAction(ctx, "quarantine_delete", "/api/quarantine/delete", id)
}

func (c *Client) quarantineAction(ctx context.Context, endpoint, path, id string) (string, error) {
	body, err := json.Marshal(struct {
		ID string `json:"id"`
	}{ID: id})
	if err != nil {
		return "", fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	status, b, err := c.do(ctx, endpoint, req)
	if err != nil {
		return "", err
	}

	var rs struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(b, &rs); err != nil {
		if serr := statusError(status, b); serr != nil {
			return "", serr
		}

		return "", serrors.Wrap(serrors.ErrTransport, err, "could not decode %s response", endpoint)
	}
	if !rs.Success {
		msg := rs.Message
		if msg == "" {
			msg = rs.Error
		}
		if msg == "" {
			msg = "Failed"
		}

		return "", serrors.With(serrors.ErrRejected, "%s", msg)
	}

	return rs.Message, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	status, b, err := c.do(ctx, endpoint, req)
	if err != nil {
		return err
	}
	if err := statusError(status, b); err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return serrors.Wrap(serrors.ErrTransport, err, "could not decode %s response", endpoint)
	}

	return nil
}

// do sends req and reads the whole body. Only transport failures are errors;
// status handling is left to the caller.
func (c *Client) do(ctx context.Context, endpoint string, req *http.Request) (int, []byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observe(endpoint, start, err)
		logger.Debug(ctx, "backend request failed",
			zap.String("endpoint", endpoint),
			zap.String("method", req.Method),
			zap.Error(err))

		return 0, nil, serrors.Wrap(serrors.ErrTransport, err, "could not reach backend")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	observe(endpoint, start, err)
	if err != nil {
		return resp.StatusCode, nil, serrors.Wrap(serrors.ErrTransport, err, "could not read response body")
	}

	logger.Debug(ctx, "backend request",
		zap.String("endpoint", endpoint),
		zap.String("method", req.Method),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	return resp.StatusCode, b, nil
}

func statusError(status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return serrors.With(serrors.ErrNotFound, "not found: %s", snippet(body))
	case status >= 500:
		return serrors.With(serrors.ErrTransport, "backend unavailable (HTTP %d): %s", status, snippet(body))
	default:
		return serrors.With(serrors.ErrRejected, "request failed (HTTP %d): %s", status, snippet(body))
	}
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}

	return s
}

func observe(endpoint string, start time.Time, err error) {
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
	}
	metrics.BackendRequestDuration.WithLabelValues(endpoint, result).Observe(time.Since(start).Seconds())
}
