package main

import (
	"bytes"
	"context"
	"errors"
	"scanconsole/internal/console"
	"scanconsole/internal/textview"
	"scanconsole/pkg/backend"
	mockbackend "scanconsole/pkg/backend/mock"
	"scanconsole/pkg/domain"
	"scanconsole/pkg/serrors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testPollerOptions = console.PollerOptions{Interval: time.Millisecond, MaxTransportFailures: 2, MaxBackoff: time.Millisecond}

func TestRunScan_ValidationKeepsKind(t *testing.T) {
	client := mockbackend.NewMockClient(gomock.NewController(t))

	_, err := runScan(context.Background(), client, testPollerOptions, textview.New(&bytes.Buffer{}), domain.FileTarget{})
	require.ErrorIs(t, err, serrors.ErrValidation)
	require.EqualError(t, err, console.MsgSelectFile)
}

func TestRunScan_ServerRejectionKeepsKind(t *testing.T) {
	client := mockbackend.NewMockClient(gomock.NewController(t))
	client.EXPECT().Scan(gomock.Any(), gomock.Any()).
		Return(backend.ScanResponse{}, serrors.With(serrors.ErrRejected, "File too large"))

	_, err := runScan(context.Background(), client, testPollerOptions, textview.New(&bytes.Buffer{}),
		domain.URLTarget{URL: "https://example.com"})
	require.ErrorIs(t, err, serrors.ErrRejected)
	require.False(t, errors.Is(err, serrors.ErrValidation))
	require.EqualError(t, err, "File too large")
}

func TestRunScan_TrackedRendersCloudVerdict(t *testing.T) {
	client := mockbackend.NewMockClient(gomock.NewController(t))
	client.EXPECT().Scan(gomock.Any(), gomock.Any()).Return(backend.ScanResponse{JobID: "job-1"}, nil)
	client.EXPECT().Report(gomock.Any(), "job-1", domain.TargetURL, gomock.Any()).
		Return(domain.Completed{Data: domain.ReportData{Stats: domain.Stats{Harmless: 3}}}, nil)
	client.EXPECT().ReportPDFURL("job-1").Return("http://backend.test/api/report/job-1/pdf")

	var out bytes.Buffer
	d, err := runScan(context.Background(), client, testPollerOptions, textview.New(&out),
		domain.URLTarget{URL: "https://example.com"})
	require.NoError(t, err)
	require.Equal(t, "http://backend.test/api/report/job-1/pdf", d.ReportURL)
	require.Contains(t, out.String(), "PDF report: http://backend.test/api/report/job-1/pdf")
}

func TestWaitReport_FailedIsTerminal(t *testing.T) {
	client := mockbackend.NewMockClient(gomock.NewController(t))
	client.EXPECT().Report(gomock.Any(), "job-1", domain.TargetFile, "a.exe").
		Return(domain.Failed{Reason: "Upstream timeout"}, nil)

	_, err := waitReport(context.Background(), client, testPollerOptions, textview.New(&bytes.Buffer{}),
		console.Request{JobID: "job-1", Type: domain.TargetFile, Name: "a.exe"})
	require.ErrorIs(t, err, serrors.ErrTerminal)
	require.EqualError(t, err, "Upstream timeout")
}
