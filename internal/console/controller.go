package console

import (
	"context"
	"scanconsole/internal/config"
	"scanconsole/internal/render"
	"scanconsole/internal/schedule"
	"scanconsole/pkg/backend"
	"scanconsole/pkg/domain"
	"scanconsole/pkg/logger"
	"sync"

	"go.uber.org/zap"
)

// Progress labels.
const (
	LabelSubmitting = "Submitting..."
	LabelCached     = "Result found in cache..."
	LabelAnalyzing  = "Analyzing cloud sandbox..."
	LabelLoading    = "Loading..."
)

// MsgHistoryError replaces the history list when it cannot be fetched.
const MsgHistoryError = "Error loading history."

// Options configure a Controller.
type Options struct {
	Poller  PollerOptions
	Monitor MonitorOptions
}

// Controller owns the active mode and guarantees that at most one report poll
// and one monitor cycle run at a time.
//
// Every mode switch and submission starts a new generation. Asynchronous work
// captures the generation it was started in and renders only if it is still
// current, checked under mu.
type Controller struct {
	client    backend.Client
	submitter *Submitter
	poller    *Poller
	monitor   *Monitor
	view      View

	mu       sync.Mutex
	mode     domain.Mode
	gen      uint64
	resource string
	poll     *schedule.Task
}

// NewController constructs a Controller in ModeFile rendering into view.
func NewController(client backend.Client, view View, confirmer Confirmer, options Options) *Controller {
	return &Controller{
		client:    client,
		submitter: NewSubmitter(client),
		poller:    NewPoller(client, options.Poller),
		monitor:   NewMonitor(client, confirmer, view, options.Monitor),
		view:      view,
		mode:      domain.ModeFile,
	}
}

// Mode returns the active mode.
func (c *Controller) Mode() domain.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.mode
}

// SwitchMode stops the monitor, discards any in-flight poll and displayed
// result, then activates mode. History triggers a one-shot fetch and Protect
// starts the monitor.
func (c *Controller) SwitchMode(ctx context.Context, mode domain.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := c.switchLocked(ctx, mode)

	switch mode {
	case domain.ModeHistory:
		go c.loadHistory(ctx, token)
	case domain.ModeProtect:
		c.monitor.Start(ctx)
	case domain.ModeFile, domain.ModeURL:
	}
}

// switchLocked performs the mode transition shared by SwitchMode and
// OpenHistory and returns the new generation.
func (c *Controller) switchLocked(ctx context.Context, mode domain.Mode) uint64 {
	c.monitor.Stop()
	token := c.supersedeLocked()
	c.mode = mode

	c.view.Reset()
	c.view.ModeChanged(mode)
	logger.Debug(ctx, "mode switched", zap.Stringer("mode", mode))

	return token
}

// supersedeLocked cancels the in-flight poll, forgets the current resource
// and starts a new generation.
func (c *Controller) supersedeLocked() uint64 {
	c.poll.Cancel()
	c.poll = nil
	c.resource = ""
	c.gen++

	return c.gen
}

func (c *Controller) loadHistory(ctx context.Context, token uint64) {
	records, err := c.client.History(ctx)
	if err != nil {
		logger.Debug(ctx, "could not load history", zap.Error(err))
	}

	c.deliver(token, func() {
		if err != nil {
			c.view.Error(MsgHistoryError)

			return
		}
		c.view.History(records)
	})
}

// Submit sends target and renders its outcome. A tracked submission hands off
// to the report poller; Submit returns without waiting for it. Submitting
// supersedes any prior submission.
func (c *Controller) Submit(ctx context.Context, target domain.ScanTarget) domain.SubmissionOutcome {
	c.mu.Lock()
	token := c.supersedeLocked()
	c.view.Reset()
	c.view.Loading(LabelSubmitting)
	c.mu.Unlock()

	outcome := c.submitter.Submit(ctx, target)

	c.deliver(token, func() {
		switch o := outcome.(type) {
		case domain.Rejected:
			c.view.Error(o.Reason)
		case domain.LocalOnly:
			c.view.Result(render.Local(o.Verdict))
		case domain.Tracked:
			label := LabelAnalyzing
			if o.Cached {
				label = LabelCached
			}
			c.trackLocked(ctx, token, Request{JobID: o.JobID, Type: o.Type, Name: o.DisplayName}, label)
		}
	})

	return outcome
}

// Reject shows reason as the outcome of a submission that failed before
// reaching the backend, such as an unreadable file. Like Submit it supersedes
// any prior submission.
func (c *Controller) Reject(ctx context.Context, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.supersedeLocked()
	c.view.Reset()
	c.view.Error(reason)
	logger.Debug(ctx, "submission rejected locally", zap.String("reason", reason))
}

// OpenHistory switches to ModeFile and loads the report of record.
func (c *Controller) OpenHistory(ctx context.Context, record domain.HistoryRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := c.switchLocked(ctx, domain.ModeFile)
	c.trackLocked(ctx, token, Request{
		JobID: record.ResourceID,
		Type:  record.ResourceType,
		Name:  record.DisplayName(),
	}, LabelLoading)
}

func (c *Controller) trackLocked(ctx context.Context, token uint64, req Request, label string) {
	c.resource = req.JobID
	c.view.Loading(label)

	c.poll = c.poller.Start(ctx, req, Callbacks{
		Notice: func(msg string) {
			c.deliver(token, func() { c.view.Notice(msg) })
		},
		Terminal: func(st domain.ReportStatus) {
			c.deliver(token, func() {
				c.poll = nil
				switch s := st.(type) {
				case domain.Completed:
					d := render.Cloud(s.Data)
					d.ReportURL = c.client.ReportPDFURL(req.JobID)
					c.view.Result(d)
				case domain.Failed:
					c.view.Error(s.Reason)
				case domain.Pending:
				}
			})
		},
	})
}

// CurrentResource returns the job id of the displayed or pending report, or
// an empty string.
func (c *Controller) CurrentResource() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.resource
}

// ReportPDFURL returns the report download address of the current resource.
func (c *Controller) ReportPDFURL() (string, bool) {
	id := c.CurrentResource()
	if id == "" {
		return "", false
	}

	return c.client.ReportPDFURL(id), true
}

// Dispatch forwards a quarantine command to the monitor.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) (string, error) {
	return c.monitor.Dispatch(ctx, cmd)
}

// Close stops all background work. Pending deliveries are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.monitor.Stop()
	c.supersedeLocked()
}

// deliver runs fn under the controller lock if token is still the current generation.
func (c *Controller) deliver(token uint64, fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.gen {
		return false
	}
	fn()

	return true
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Poller:  NewPollerOptions(cfg),
		Monitor: NewMonitorOptions(cfg),
	}
}
