// Package console coordinates the scan lifecycle: mode switching, submission,
// report polling and the protection monitor. Results reach the user through a
// View.
package console

import (
	"scanconsole/internal/render"
	"scanconsole/pkg/domain"
)

// View is the display boundary of the console. Implementations must be safe
// for concurrent use, must not block, and must not call back into the
// Controller.
type View interface {
	// Reset clears the displayed result, error and progress state.
	Reset()
	ModeChanged(mode domain.Mode)
	// Loading shows a progress label until the next Result or Error.
	Loading(label string)
	// Notice shows a transient message without ending progress.
	Notice(msg string)
	Error(msg string)
	Result(d render.Display)
	History(records []domain.HistoryRecord)
	Feeds
}

// Feeds receives the protection monitor refreshes.
type Feeds interface {
	MonitorLogs(entries []domain.MonitorLogEntry)
	Quarantine(items []domain.QuarantineItem)
}
