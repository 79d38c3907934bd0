package console_test

import (
	"context"
	"scanconsole/internal/console"
	"scanconsole/internal/render"
	"scanconsole/pkg/domain"
	"sync"
	"time"
)

const (
	testInterval = 5 * time.Millisecond
	waitFor      = time.Second
)

func testOptions() console.Options {
	return console.Options{
		Poller: console.PollerOptions{
			Interval:             testInterval,
			MaxTransportFailures: 3,
			MaxBackoff:           2 * testInterval,
		},
		Monitor: console.MonitorOptions{Interval: testInterval},
	}
}

type event struct {
	kind  string
	value any
}

// recordingView records every call it receives.
type recordingView struct {
	mu     sync.Mutex
	events []event
}

var _ console.View = (*recordingView)(nil)

func (v *recordingView) add(kind string, value any) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.events = append(v.events, event{kind: kind, value: value})
}

func (v *recordingView) Reset()                           { v.add("reset", nil) }
func (v *recordingView) ModeChanged(mode domain.Mode)     { v.add("mode", mode) }
func (v *recordingView) Loading(label string)             { v.add("loading", label) }
func (v *recordingView) Notice(msg string)                { v.add("notice", msg) }
func (v *recordingView) Error(msg string)                 { v.add("error", msg) }
func (v *recordingView) Result(d render.Display)          { v.add("result", d) }
func (v *recordingView) History(r []domain.HistoryRecord) { v.add("history", r) }
func (v *recordingView) MonitorLogs(e []domain.MonitorLogEntry) {
	v.add("logs", e)
}
func (v *recordingView) Quarantine(items []domain.QuarantineItem) {
	v.add("quarantine", items)
}

func (v *recordingView) values(kind string) []any {
	v.mu.Lock()
	defer v.mu.Unlock()

	var out []any
	for _, e := range v.events {
		if e.kind == kind {
			out = append(out, e.value)
		}
	}

	return out
}

func (v *recordingView) count(kind string) int {
	return len(v.values(kind))
}

func (v *recordingView) results() []render.Display {
	var out []render.Display
	for _, r := range v.values("result") {
		out = append(out, r.(render.Display))
	}

	return out
}

func (v *recordingView) errors() []string {
	var out []string
	for _, r := range v.values("error") {
		out = append(out, r.(string))
	}

	return out
}

func (v *recordingView) last() event {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.events) == 0 {
		return event{}
	}

	return v.events[len(v.events)-1]
}

// staticConfirmer answers every prompt with answer.
type staticConfirmer struct {
	answer bool
	err    error

	mu      sync.Mutex
	prompts []string
}

func (c *staticConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prompts = append(c.prompts, prompt)

	return c.answer, c.err
}

func (c *staticConfirmer) asked() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.prompts...)
}
