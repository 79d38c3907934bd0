package console_test

import (
	"context"
	"errors"
	"scanconsole/internal/console"
	mockbackend "scanconsole/pkg/backend/mock"
	"scanconsole/pkg/domain"
	"scanconsole/pkg/serrors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var pollReq = console.Request{JobID: "job-1", Type: domain.TargetFile, Name: "a.exe"}

// pollRecorder collects poll callbacks.
type pollRecorder struct {
	mu        sync.Mutex
	notices   []string
	terminals []domain.ReportStatus
}

func (r *pollRecorder) callbacks() console.Callbacks {
	return console.Callbacks{
		Notice: func(msg string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.notices = append(r.notices, msg)
		},
		Terminal: func(st domain.ReportStatus) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.terminals = append(r.terminals, st)
		},
	}
}

func transportErr() error {
	return serrors.Wrap(serrors.ErrTransport, errors.New("connection reset"), "could not reach backend")
}

func waitTask(t *testing.T, done <-chan struct{}) {
	t.Helper()

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("poll did not stop")
	}
}

func TestPoller_CompletesAfterPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockbackend.NewMockClient(ctrl)
	data := domain.ReportData{Stats: domain.Stats{Harmless: 5}, Results: map[string]domain.EngineResult{}}
	gomock.InOrder(
		client.EXPECT().Report(gomock.Any(), "job-1", domain.TargetFile, "a.exe").Return(domain.Pending{}, nil).Times(2),
		client.EXPECT().Report(gomock.Any(), "job-1", domain.TargetFile, "a.exe").Return(domain.Completed{Data: data}, nil),
	)

	var rec pollRecorder
	task := console.NewPoller(client, testOptions().Poller).Start(context.Background(), pollReq, rec.callbacks())
	waitTask(t, task.Done())

	// give a misbehaving poll the chance to query again.
	time.Sleep(4 * testInterval)
	require.Equal(t, []domain.ReportStatus{domain.Completed{Data: data}}, rec.terminals)
	require.Empty(t, rec.notices)
}

func TestPoller_ErrorStatusTerminatesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockbackend.NewMockClient(ctrl)
	client.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.Failed{Reason: "timeout"}, nil).Times(1)

	var rec pollRecorder
	task := console.NewPoller(client, testOptions().Poller).Start(context.Background(), pollReq, rec.callbacks())
	waitTask(t, task.Done())

	time.Sleep(4 * testInterval)
	require.Equal(t, []domain.ReportStatus{domain.Failed{Reason: "timeout"}}, rec.terminals)
}

func TestPoller_RetriesTransportFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockbackend.NewMockClient(ctrl)
	data := domain.ReportData{Results: map[string]domain.EngineResult{}}
	gomock.InOrder(
		client.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, transportErr()).Times(2),
		client.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Pending{}, nil),
		client.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, transportErr()).Times(2),
		client.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Completed{Data: data}, nil),
	)

	var rec pollRecorder
	task := console.NewPoller(client, testOptions().Poller).Start(context.Background(), pollReq, rec.callbacks())
	waitTask(t, task.Done())

	// four failures, but never three in a row.
	require.Equal(t, []string{console.MsgRetrying, console.MsgRetrying, console.MsgRetrying, console.MsgRetrying}, rec.notices)
	require.Equal(t, []domain.ReportStatus{domain.Completed{Data: data}}, rec.terminals)
}

func TestPoller_GivesUpAfterMaxFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockbackend.NewMockClient(ctrl)
	client.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, transportErr()).Times(3)

	var rec pollRecorder
	task := console.NewPoller(client, testOptions().Poller).Start(context.Background(), pollReq, rec.callbacks())
	waitTask(t, task.Done())

	require.Equal(t, []string{console.MsgRetrying, console.MsgRetrying}, rec.notices)
	require.Equal(t, []domain.ReportStatus{domain.Failed{Reason: "Connection lost: could not reach backend"}}, rec.terminals)
}

func TestPoller_CancelSuppressesTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockbackend.NewMockClient(ctrl)
	entered := make(chan struct{})
	client.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ domain.TargetType, _ string) (domain.ReportStatus, error) {
			close(entered)
			<-ctx.Done()

			// a response that arrives after cancellation.
			return domain.Completed{}, nil
		})

	var rec pollRecorder
	task := console.NewPoller(client, testOptions().Poller).Start(context.Background(), pollReq, rec.callbacks())

	<-entered
	task.Cancel()
	waitTask(t, task.Done())

	require.Empty(t, rec.terminals)
}

func TestPoller_Wait(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockbackend.NewMockClient(ctrl)
	gomock.InOrder(
		client.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, transportErr()),
		client.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Failed{Reason: "timeout"}, nil),
	)

	var notices []string
	st, err := console.NewPoller(client, testOptions().Poller).Wait(context.Background(), pollReq, func(msg string) {
		notices = append(notices, msg)
	})
	require.NoError(t, err)
	require.Equal(t, domain.Failed{Reason: "timeout"}, st)
	require.Equal(t, []string{console.MsgRetrying}, notices)
}

func TestPoller_WaitCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockbackend.NewMockClient(ctrl)
	client.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Pending{}, nil).AnyTimes()

	ctx, cancel := context.WithTimeout(context.Background(), 5*testInterval)
	defer cancel()

	_, err := console.NewPoller(client, testOptions().Poller).Wait(ctx, pollReq, nil)
	require.ErrorIs(t, err, serrors.ErrCancelled)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
