package tui

import (
	"context"
	"scanconsole/internal/console"
	"scanconsole/internal/render"
	"scanconsole/pkg/domain"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

type (
	resetMsg   struct{}
	modeMsg    struct{ mode domain.Mode }
	loadingMsg struct{ label string }
	noticeMsg  struct{ text string }
	errorMsg   struct{ text string }
	resultMsg  struct{ display render.Display }
	historyMsg struct{ records []domain.HistoryRecord }
	logsMsg    struct{ entries []domain.MonitorLogEntry }

	quarantineMsg struct{ items []domain.QuarantineItem }

	// confirmMsg asks the user a yes/no question; the answer goes to reply.
	confirmMsg struct {
		prompt string
		reply  chan<- bool
	}
)

// Sink is a console.View and console.Confirmer that turns calls into bubbletea
// messages. Calls never block: messages queue in an unbounded mailbox and are
// forwarded in order by Run.
type Sink struct {
	mu    sync.Mutex
	queue []tea.Msg
	wake  chan struct{}
}

var (
	_ console.View      = (*Sink)(nil)
	_ console.Confirmer = (*Sink)(nil)
)

// NewSink constructs an empty Sink.
func NewSink() *Sink {
	return &Sink{wake: make(chan struct{}, 1)}
}

// Run forwards queued messages to send until ctx is done. Messages posted
// before Run starts are kept.
func (s *Sink) Run(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.wake:
		}

		s.mu.Lock()
		batch := s.queue
		s.queue = nil
		s.mu.Unlock()

		for _, msg := range batch {
			send(msg)
		}
	}
}

func (s *Sink) post(msg tea.Msg) {
	s.mu.Lock()
	s.queue = append(s.queue, msg)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Sink) Reset()                       { s.post(resetMsg{}) }
func (s *Sink) ModeChanged(mode domain.Mode) { s.post(modeMsg{mode: mode}) }
func (s *Sink) Loading(label string)         { s.post(loadingMsg{label: label}) }
func (s *Sink) Notice(msg string)            { s.post(noticeMsg{text: msg}) }
func (s *Sink) Error(msg string)             { s.post(errorMsg{text: msg}) }
func (s *Sink) Result(d render.Display)      { s.post(resultMsg{display: d}) }

func (s *Sink) History(records []domain.HistoryRecord) {
	s.post(historyMsg{records: records})
}

func (s *Sink) MonitorLogs(entries []domain.MonitorLogEntry) {
	s.post(logsMsg{entries: entries})
}

func (s *Sink) Quarantine(items []domain.QuarantineItem) {
	s.post(quarantineMsg{items: items})
}

// Confirm shows prompt in the console and waits for the user's y/n answer.
func (s *Sink) Confirm(ctx context.Context, prompt string) (bool, error) {
	reply := make(chan bool, 1)
	s.post(confirmMsg{prompt: prompt, reply: reply})

	select {
	case ok := <-reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
