package console

import (
	"context"
	"scanconsole/internal/config"
	"scanconsole/internal/schedule"
	"scanconsole/pkg/backend"
	"scanconsole/pkg/domain"
	"scanconsole/pkg/logger"
	"scanconsole/pkg/metrics"
	"scanconsole/pkg/serrors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// MsgRetrying is the notice emitted after a failed status query.
const MsgRetrying = "Connection interrupted. Retrying..."

// PollerOptions configure report polling.
type PollerOptions struct {
	// Interval is the wait before the first query and between two queries.
	Interval time.Duration
	// MaxTransportFailures is the number of consecutive failed queries that
	// ends a poll. Zero retries forever.
	MaxTransportFailures int
	// MaxBackoff caps the wait after a failed query.
	MaxBackoff time.Duration
}

// NewPollerOptions constructs a PollerOptions value from the provided application config.
func NewPollerOptions(cfg *config.Config) PollerOptions {
	return PollerOptions{
		Interval:             cfg.Poller.Interval,
		MaxTransportFailures: cfg.Poller.MaxTransportFailures,
		MaxBackoff:           cfg.Poller.MaxBackoff,
	}
}

// Request identifies the report to poll.
type Request struct {
	JobID string
	Type  domain.TargetType
	// Name labels the report on the backend side.
	Name string
}

// Callbacks receive poll progress. Either may be nil.
type Callbacks struct {
	// Notice receives transient messages, such as MsgRetrying.
	Notice func(msg string)
	// Terminal receives the terminal status. It is called at most once, never
	// after the poll was cancelled, and no query is issued after it.
	Terminal func(status domain.ReportStatus)
}

// Poller queries report status until a terminal state.
type Poller struct {
	client  backend.Client
	options PollerOptions
}

// NewPoller constructs a Poller.
func NewPoller(client backend.Client, options PollerOptions) *Poller {
	return &Poller{client: client, options: options}
}

// Start begins polling req in the background. Cancelling the returned task
// stops the poll.
func (p *Poller) Start(ctx context.Context, req Request, cb Callbacks) *schedule.Task {
	ctx = logger.WithFields(ctx, zap.String("jobID", req.JobID))
	bo := p.newBackOff()
	failures := 0

	terminal := func(ctx context.Context, st domain.ReportStatus) {
		if ctx.Err() != nil || cb.Terminal == nil {
			return
		}
		cb.Terminal(st)
	}

	return schedule.Start(ctx, p.options.Interval, func(ctx context.Context) (time.Duration, bool) {
		st, err := p.client.Report(ctx, req.JobID, req.Type, req.Name)
		if err != nil {
			if ctx.Err() != nil {
				return 0, false
			}

			failures++
			metrics.PollAttempts.WithLabelValues("transport_error").Inc()
			logger.Warn(ctx, "report status query failed",
				zap.Int("failures", failures),
				zap.Error(err))

			if p.options.MaxTransportFailures > 0 && failures >= p.options.MaxTransportFailures {
				terminal(ctx, domain.Failed{Reason: "Connection lost: " + serrors.UserMessage(err)})

				return 0, false
			}
			if cb.Notice != nil {
				cb.Notice(MsgRetrying)
			}

			return max(p.options.Interval, bo.NextBackOff()), true
		}

		failures = 0
		bo.Reset()

		switch s := st.(type) {
		case domain.Completed:
			metrics.PollAttempts.WithLabelValues("completed").Inc()
			logger.Info(ctx, "report completed", zap.Int("engines", len(s.Data.Results)))
			terminal(ctx, s)

			return 0, false
		case domain.Failed:
			metrics.PollAttempts.WithLabelValues("failed").Inc()
			logger.Info(ctx, "report failed", zap.String("reason", s.Reason))
			terminal(ctx, s)

			return 0, false
		case domain.Pending:
			metrics.PollAttempts.WithLabelValues("pending").Inc()

			return p.options.Interval, true
		default:
			return p.options.Interval, true
		}
	})
}

// Wait polls req until a terminal status and returns it. notice may be nil.
func (p *Poller) Wait(ctx context.Context, req Request, notice func(msg string)) (domain.ReportStatus, error) {
	res := make(chan domain.ReportStatus, 1)
	task := p.Start(ctx, req, Callbacks{
		Notice:   notice,
		Terminal: func(st domain.ReportStatus) { res <- st },
	})

	select {
	case st := <-res:
		return st, nil
	case <-task.Done():
		select {
		case st := <-res:
			return st, nil
		default:
			return nil, serrors.Wrap(serrors.ErrCancelled, context.Cause(ctx), "polling cancelled")
		}
	}
}

func (p *Poller) newBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.options.Interval
	bo.MaxInterval = p.options.MaxBackoff
	bo.MaxElapsedTime = 0
	bo.Reset()

	return bo
}
