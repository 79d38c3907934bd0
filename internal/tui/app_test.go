package tui

import (
	"context"
	"scanconsole/internal/console"
	"scanconsole/internal/render"
	"scanconsole/pkg/domain"
	"scanconsole/pkg/serrors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	mu        sync.Mutex
	modes     []domain.Mode
	targets   []domain.ScanTarget
	opened    []domain.HistoryRecord
	rejected  []string
	commands  []console.Command
	dispatchE error
}

func (f *fakeController) SwitchMode(_ context.Context, mode domain.Mode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modes = append(f.modes, mode)
}

func (f *fakeController) Submit(_ context.Context, target domain.ScanTarget) domain.SubmissionOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.targets = append(f.targets, target)

	return domain.Rejected{Reason: "test"}
}

func (f *fakeController) OpenHistory(_ context.Context, record domain.HistoryRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, record)
}

func (f *fakeController) Reject(_ context.Context, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejected = append(f.rejected, reason)
}

func (f *fakeController) Dispatch(_ context.Context, cmd console.Command) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)

	return "Restored to uploads/a.exe", f.dispatchE
}

func newTestApp() (*App, *fakeController) {
	ctrl := &fakeController{}
	app := NewApp(context.Background(), ctrl, domain.ModeFile)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	return app, ctrl
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(app *App, s string) {
	for _, r := range s {
		app.Update(key(string(r)))
	}
}

func TestApp_InitActivatesFileMode(t *testing.T) {
	app, ctrl := newTestApp()
	app.Init()

	require.Equal(t, []domain.Mode{domain.ModeFile}, ctrl.modes)
	require.Contains(t, app.View(), "1:File")
}

func TestApp_InitActivatesStartMode(t *testing.T) {
	ctrl := &fakeController{}
	app := NewApp(context.Background(), ctrl, domain.ModeProtect)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app.Init()

	require.Equal(t, []domain.Mode{domain.ModeProtect}, ctrl.modes)
	require.Contains(t, app.View(), "Quarantine is empty.")
}

func TestApp_TabCyclesModes(t *testing.T) {
	app, ctrl := newTestApp()

	app.Update(key("tab"))
	app.Update(key("tab"))
	app.Update(key("tab"))
	app.Update(key("tab"))

	require.Equal(t, []domain.Mode{domain.ModeURL, domain.ModeHistory, domain.ModeProtect, domain.ModeFile}, ctrl.modes)
	require.Equal(t, domain.ModeFile, app.mode)
}

func TestApp_DigitsTypeIntoFocusedInput(t *testing.T) {
	app, ctrl := newTestApp()
	app.Update(key("tab"))
	typeText(app, "https://3.example")

	require.Equal(t, "https://3.example", app.urlInput.Value())
	require.Equal(t, []domain.Mode{domain.ModeURL}, ctrl.modes)

	app.Update(key("esc"))
	app.Update(key("3"))
	require.Equal(t, domain.ModeHistory, app.mode)
}

func TestApp_SubmitURL(t *testing.T) {
	app, ctrl := newTestApp()
	app.Update(key("tab"))
	typeText(app, "example.com")

	_, cmd := app.Update(key("enter"))
	require.NotNil(t, cmd)
	require.Nil(t, cmd())
	require.Equal(t, []domain.ScanTarget{domain.URLTarget{URL: "example.com"}}, ctrl.targets)
}

func TestApp_SubmitWithoutFileReachesValidation(t *testing.T) {
	app, ctrl := newTestApp()

	_, cmd := app.Update(key("enter"))
	require.Nil(t, cmd())
	require.Equal(t, []domain.ScanTarget{domain.FileTarget{}}, ctrl.targets)
}

func TestApp_SubmitUnreadableFileRejectsThroughController(t *testing.T) {
	app, ctrl := newTestApp()
	typeText(app, "/does/not/exist.exe")

	_, cmd := app.Update(key("enter"))
	require.Nil(t, cmd())
	require.Empty(t, ctrl.targets)
	require.Len(t, ctrl.rejected, 1)
	require.Contains(t, ctrl.rejected[0], "Could not open /does/not/exist.exe")
}

func TestApp_RendersViewMessages(t *testing.T) {
	app, _ := newTestApp()

	app.Update(loadingMsg{label: "Analyzing cloud sandbox..."})
	app.Update(noticeMsg{text: "Connection interrupted. Retrying..."})
	out := app.View()
	require.Contains(t, out, "Analyzing cloud sandbox...")
	require.Contains(t, out, "Connection interrupted. Retrying...")

	app.Update(resultMsg{display: render.Display{
		Title:     render.TitleThreat,
		Badge:     render.BadgeDanger,
		Malicious: 2,
		Safe:      13,
		Rows:      []render.Row{{Engine: "Bravo", Verdict: "Trojan.Gen", Detail: "malicious", Badge: render.BadgeDanger}},
		ReportURL: "http://backend.test/api/report/job-1/pdf",
	}})
	out = app.View()
	require.NotContains(t, out, "Analyzing cloud sandbox...")
	require.Contains(t, out, render.TitleThreat)
	require.Contains(t, out, "Trojan.Gen")
	require.Contains(t, out, "http://backend.test/api/report/job-1/pdf")

	app.Update(resetMsg{})
	require.Nil(t, app.result)
}

func TestApp_OpenHistoryRecord(t *testing.T) {
	app, ctrl := newTestApp()
	app.Update(key("esc"))
	app.Update(key("3"))

	records := []domain.HistoryRecord{
		{ResourceID: "r1", ResourceType: domain.TargetFile, Filename: "a.exe"},
		{ResourceID: "r2", ResourceType: domain.TargetURL},
	}
	app.Update(historyMsg{records: records})
	require.Contains(t, app.View(), "Unknown")

	app.Update(key("down"))
	app.Update(key("enter"))

	require.Equal(t, []domain.HistoryRecord{records[1]}, ctrl.opened)
	require.Equal(t, domain.ModeFile, app.mode)
}

func TestApp_HistoryReentryDropsPreviousRecords(t *testing.T) {
	app, ctrl := newTestApp()
	app.Update(key("esc"))
	app.Update(key("3"))
	app.Update(resetMsg{})
	app.Update(modeMsg{mode: domain.ModeHistory})
	app.Update(historyMsg{records: []domain.HistoryRecord{{ResourceID: "r1", ResourceType: domain.TargetFile, Filename: "a.exe"}}})
	require.Contains(t, app.View(), "a.exe")

	app.Update(key("4"))
	app.Update(resetMsg{})
	app.Update(modeMsg{mode: domain.ModeProtect})
	app.Update(key("3"))
	app.Update(resetMsg{})
	app.Update(modeMsg{mode: domain.ModeHistory})

	out := app.View()
	require.Contains(t, out, "Loading records...")
	require.NotContains(t, out, "a.exe")

	app.Update(errorMsg{text: "Error loading history."})
	out = app.View()
	require.Contains(t, out, "Error loading history.")
	require.NotContains(t, out, "a.exe")

	app.Update(key("enter"))
	require.Empty(t, ctrl.opened)
}

func TestApp_QuarantineActionWithConfirmation(t *testing.T) {
	app, ctrl := newTestApp()
	app.Update(key("esc"))
	app.Update(key("4"))
	app.Update(quarantineMsg{items: []domain.QuarantineItem{{ID: "q-1", OriginalName: "a.exe", Risk: "Critical"}}})
	app.Update(logsMsg{entries: []domain.MonitorLogEntry{{Time: "10:00", File: "a.exe", Info: "Score: 90"}}})
	require.Contains(t, app.View(), "Score: 90")

	_, cmd := app.Update(key("r"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.Equal(t, []console.Command{{Action: console.ActionRestore, ID: "q-1"}}, ctrl.commands)

	app.Update(msg)
	require.Equal(t, "Restored to uploads/a.exe", app.statusMsg)
}

func TestApp_ConfirmPrompt(t *testing.T) {
	app, _ := newTestApp()
	reply := make(chan bool, 1)

	app.Update(confirmMsg{prompt: console.PromptDelete, reply: reply})
	require.Contains(t, app.View(), console.PromptDelete)

	// other keys are swallowed while the prompt is open.
	app.Update(key("tab"))
	require.Equal(t, domain.ModeFile, app.mode)

	app.Update(key("n"))
	require.False(t, <-reply)
	require.Nil(t, app.confirm)
}

func TestApp_DispatchCancelled(t *testing.T) {
	app, _ := newTestApp()
	app.Update(dispatchDoneMsg{err: serrors.With(serrors.ErrCancelled, "cancelled")})
	require.Equal(t, "Cancelled.", app.statusMsg)

	app.Update(dispatchDoneMsg{err: serrors.With(serrors.ErrRejected, "Failed")})
	require.Equal(t, "Failed", app.statusMsg)
}
