package console

import (
	"context"
	"scanconsole/internal/config"
	"scanconsole/internal/schedule"
	"scanconsole/pkg/backend"
	"scanconsole/pkg/logger"
	"scanconsole/pkg/metrics"
	"scanconsole/pkg/serrors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Action is a quarantine mutation.
type Action string

const (
	ActionRestore Action = "restore"
	ActionDelete  Action = "delete"
)

// Confirmation prompts for quarantine actions.
const (
	PromptRestore = "Restore this file? It may be dangerous."
	PromptDelete  = "Permanently delete?"
)

// Command asks the monitor to apply Action to the quarantined item ID.
type Command struct {
	Action Action
	ID     string
}

// Confirmer asks the user to approve a destructive action. Confirm blocks
// until the user answers or ctx is done.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// MonitorOptions configure the protection monitor.
type MonitorOptions struct {
	// Interval between two refreshes of each feed.
	Interval time.Duration
}

// NewMonitorOptions constructs a MonitorOptions value from the provided application config.
func NewMonitorOptions(cfg *config.Config) MonitorOptions {
	return MonitorOptions{Interval: cfg.Monitor.Interval}
}

type handler struct {
	prompt string
	do     func(ctx context.Context, id string) (string, error)
}

// Monitor refreshes the activity log and the quarantine inventory while the
// protection view is active, and applies quarantine commands. At most one
// refresh cycle of each feed runs at a time.
type Monitor struct {
	client    backend.Client
	confirmer Confirmer
	feeds     Feeds
	options   MonitorOptions
	handlers  map[Action]handler

	mu sync.Mutex
	// gen changes on every Start and Stop; deliveries from an older generation are dropped.
	gen            uint64
	logsTask       *schedule.Task
	quarantineTask *schedule.Task
}

// NewMonitor constructs a stopped Monitor delivering refreshes to feeds.
func NewMonitor(client backend.Client, confirmer Confirmer, feeds Feeds, options MonitorOptions) *Monitor {
	m := &Monitor{
		client:    client,
		confirmer: confirmer,
		feeds:     feeds,
		options:   options,
	}
	m.handlers = map[Action]handler{
		ActionRestore: {prompt: PromptRestore, do: client.RestoreQuarantined},
		ActionDelete:  {prompt: PromptDelete, do: client.DeleteQuarantined},
	}

	return m
}

// Start stops any running cycle, refreshes both feeds right away and then
// every Interval until Stop.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()
	gen := m.gen

	logger.Debug(ctx, "starting protection monitor")
	m.logsTask = schedule.Every(ctx, m.options.Interval, true, func(ctx context.Context) {
		m.refreshLogs(ctx, gen)
	})
	m.quarantineTask = schedule.Every(ctx, m.options.Interval, true, func(ctx context.Context) {
		m.refreshQuarantine(ctx, gen)
	})
}

// Stop cancels both refreshers. It is idempotent and does not wait for an
// in-flight fetch, whose result is discarded.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()
}

func (m *Monitor) stopLocked() {
	m.gen++
	m.logsTask.Cancel()
	m.quarantineTask.Cancel()
	m.logsTask, m.quarantineTask = nil, nil
}

// Dispatch applies cmd after user confirmation, then refreshes the quarantine
// feed whether or not the request succeeded. A declined confirmation issues
// no request and returns an ErrCancelled error.
func (m *Monitor) Dispatch(ctx context.Context, cmd Command) (string, error) {
	h, ok := m.handlers[cmd.Action]
	if !ok {
		return "", serrors.With(serrors.ErrValidation, "unknown action %q", cmd.Action)
	}
	if strings.TrimSpace(cmd.ID) == "" {
		return "", serrors.With(serrors.ErrValidation, "missing quarantine item id")
	}

	m.mu.Lock()
	gen := m.gen
	m.mu.Unlock()

	ctx = logger.WithFields(ctx, zap.String("action", string(cmd.Action)), zap.String("itemID", cmd.ID))

	confirmed, err := m.confirmer.Confirm(ctx, h.prompt)
	if err != nil {
		return "", serrors.Wrap(serrors.ErrCancelled, err, "confirmation failed")
	}
	if !confirmed {
		logger.Debug(ctx, "quarantine action declined")

		return "", serrors.With(serrors.ErrCancelled, "cancelled")
	}

	msg, err := h.do(ctx, cmd.ID)
	if err != nil {
		logger.Warn(ctx, "quarantine action failed", zap.Error(err))
	} else {
		logger.Info(ctx, "quarantine action applied", zap.String("message", msg))
	}

	m.refreshQuarantine(ctx, gen)

	return msg, err
}

func (m *Monitor) refreshLogs(ctx context.Context, gen uint64) {
	entries, err := m.client.MonitorLogs(ctx)
	if err != nil {
		m.swallow(ctx, "logs", err)

		return
	}
	metrics.MonitorRefreshes.WithLabelValues("logs", metrics.ResultOK).Inc()

	m.deliver(gen, func() { m.feeds.MonitorLogs(entries) })
}

func (m *Monitor) refreshQuarantine(ctx context.Context, gen uint64) {
	items, err := m.client.Quarantine(ctx)
	if err != nil {
		m.swallow(ctx, "quarantine", err)

		return
	}
	metrics.MonitorRefreshes.WithLabelValues("quarantine", metrics.ResultOK).Inc()

	m.deliver(gen, func() { m.feeds.Quarantine(items) })
}

// swallow records a failed refresh. The feed keeps its previous content.
func (m *Monitor) swallow(ctx context.Context, feed string, err error) {
	metrics.MonitorRefreshes.WithLabelValues(feed, metrics.ResultError).Inc()
	logger.Debug(ctx, "monitor refresh failed", zap.String("feed", feed), zap.Error(err))
}

func (m *Monitor) deliver(gen uint64, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen {
		return
	}
	fn()
}
