// Package schedule runs cancellable, self-rescheduling background tasks.
package schedule

import (
	"context"
	"time"
)

// Func is one run of a task. It returns the delay before the next run, or
// false to stop the task.
type Func func(ctx context.Context) (next time.Duration, ok bool)

// Task is a handle to a running scheduled task.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Start runs fn after delay, then again after every delay fn returns, until fn
// returns false, ctx is done, or the task is cancelled.
func Start(ctx context.Context, delay time.Duration, fn Func) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go t.run(ctx, delay, fn)

	return t
}

// Every runs fn every interval. The first run happens right away when
// immediate is set, otherwise after one interval.
func Every(ctx context.Context, interval time.Duration, immediate bool, fn func(ctx context.Context)) *Task {
	delay := interval
	if immediate {
		delay = 0
	}

	return Start(ctx, delay, func(ctx context.Context) (time.Duration, bool) {
		fn(ctx)

		return interval, true
	})
}

func (t *Task) run(ctx context.Context, delay time.Duration, fn Func) {
	defer close(t.done)
	defer t.cancel()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		// the timer and the cancellation may fire together; cancellation wins.
		if ctx.Err() != nil {
			return
		}

		next, ok := fn(ctx)
		if !ok || ctx.Err() != nil {
			return
		}
		timer.Reset(next)
	}
}

// Cancel stops the task. It does not wait for an in-flight run, whose context
// is cancelled. Cancel is safe to call more than once and on a nil Task.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.cancel()
}

// Done is closed once the task has exited.
func (t *Task) Done() <-chan struct{} {
	return t.done
}
