package diag_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"scanconsole/internal/diag"
	"scanconsole/pkg/logger"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestServer_Metrics(t *testing.T) {
	srv := httptest.NewServer(diag.NewServer(diag.Options{MetricsPath: "/metrics"}).Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(b), "go_goroutines")
}

func TestServer_Pprof(t *testing.T) {
	srv := httptest.NewServer(diag.NewServer(diag.Options{MetricsPath: "/metrics"}).Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/debug/pprof/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_AccessLog(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger.SetDefault(zap.New(core))
	t.Cleanup(func() { logger.SetDefault(zap.NewNop()) })

	srv := httptest.NewServer(diag.NewServer(diag.Options{MetricsPath: "/metrics"}).Handler)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/missing", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "req-1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	entries := logs.FilterMessage("diagnostics request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "req-1", fields["requestID"])
	require.EqualValues(t, http.StatusNotFound, fields["status_code"])
}
