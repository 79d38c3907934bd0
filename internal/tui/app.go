// Package tui implements the interactive scanning console on top of bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"scanconsole/internal/console"
	"scanconsole/internal/render"
	"scanconsole/pkg/domain"
	"scanconsole/pkg/serrors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var tabNames = []string{"File", "URL", "History", "Protect"}

// Controller is the part of console.Controller the App drives.
type Controller interface {
	SwitchMode(ctx context.Context, mode domain.Mode)
	Submit(ctx context.Context, target domain.ScanTarget) domain.SubmissionOutcome
	OpenHistory(ctx context.Context, record domain.HistoryRecord)
	Reject(ctx context.Context, reason string)
	Dispatch(ctx context.Context, cmd console.Command) (string, error)
}

type dispatchDoneMsg struct {
	message string
	err     error
}

// App is the root bubbletea model.
type App struct {
	ctx    context.Context
	ctrl   Controller
	width  int
	height int

	mode      domain.Mode
	fileInput textinput.Model
	urlInput  textinput.Model

	loading string
	notice  string
	errText string
	result  *render.Display

	history       []domain.HistoryRecord
	historyCursor int
	logs          []domain.MonitorLogEntry
	quarantine    []domain.QuarantineItem
	qCursor       int

	confirm   *confirmMsg
	statusMsg string
}

// NewApp creates the TUI application opening on the start tab. Background
// work started by the App stops when ctx is done.
func NewApp(ctx context.Context, ctrl Controller, start domain.Mode) *App {
	fileInput := textinput.New()
	fileInput.Prompt = "path › "
	fileInput.Placeholder = "/path/to/suspicious.exe"

	urlInput := textinput.New()
	urlInput.Prompt = "url › "
	urlInput.Placeholder = "https://example.com"

	app := &App{
		ctx:       ctx,
		ctrl:      ctrl,
		fileInput: fileInput,
		urlInput:  urlInput,
	}
	app.setMode(start)

	return app
}

// Run starts the bubbletea program, wiring sink into it.
func Run(ctx context.Context, app *App, sink *Sink) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	go sink.Run(ctx, p.Send)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.ctrl.SwitchMode(a.ctx, a.mode)

	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		return a, nil
	case tea.KeyMsg:
		return a.handleKey(msg)
	case resetMsg:
		a.loading, a.notice, a.errText, a.result = "", "", "", nil
		a.history, a.historyCursor = nil, 0
	case modeMsg:
		a.setMode(msg.mode)
	case loadingMsg:
		a.loading = msg.label
		a.notice = ""
	case noticeMsg:
		a.notice = msg.text
	case errorMsg:
		a.loading, a.notice = "", ""
		a.errText = msg.text
	case resultMsg:
		a.loading, a.notice, a.errText = "", "", ""
		d := msg.display
		a.result = &d
	case historyMsg:
		a.history = msg.records
		a.historyCursor = clamp(a.historyCursor, len(a.history))
	case logsMsg:
		a.logs = msg.entries
	case quarantineMsg:
		a.quarantine = msg.items
		a.qCursor = clamp(a.qCursor, len(a.quarantine))
	case confirmMsg:
		m := msg
		a.confirm = &m
	case dispatchDoneMsg:
		switch {
		case errors.Is(msg.err, serrors.ErrCancelled):
			a.statusMsg = "Cancelled."
		case msg.err != nil:
			a.statusMsg = serrors.UserMessage(msg.err)
		default:
			a.statusMsg = msg.message
		}
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if a.confirm != nil {
		switch key {
		case "y", "Y":
			a.answer(true)
		case "n", "N", "esc":
			a.answer(false)
		}

		return a, nil
	}

	switch key {
	case "tab":
		return a, a.switchTo(domain.Modes[(int(a.mode)+1)%len(domain.Modes)])
	case "shift+tab":
		return a, a.switchTo(domain.Modes[(int(a.mode)+len(domain.Modes)-1)%len(domain.Modes)])
	}

	if input := a.activeInput(); input != nil && input.Focused() {
		switch key {
		case "enter":
			return a, a.submit()
		case "esc":
			input.Blur()

			return a, nil
		}
		var cmd tea.Cmd
		*input, cmd = input.Update(msg)

		return a, cmd
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "1", "2", "3", "4":
		return a, a.switchTo(domain.Modes[int(key[0]-'1')])
	}

	switch {
	case a.mode.Submits():
		switch key {
		case "i", "enter":
			return a, a.activeInput().Focus()
		case "p":
			if a.result != nil && a.result.ReportURL != "" {
				a.statusMsg = "Report: " + a.result.ReportURL
			}
		}
	case a.mode == domain.ModeHistory:
		switch key {
		case "j", "down":
			a.historyCursor = clamp(a.historyCursor+1, len(a.history))
		case "k", "up":
			a.historyCursor = clamp(a.historyCursor-1, len(a.history))
		case "enter":
			if len(a.history) > 0 {
				record := a.history[a.historyCursor]
				a.statusMsg = ""
				a.ctrl.OpenHistory(a.ctx, record)

				return a, a.setMode(domain.ModeFile)
			}
		}
	case a.mode == domain.ModeProtect:
		switch key {
		case "j", "down":
			a.qCursor = clamp(a.qCursor+1, len(a.quarantine))
		case "k", "up":
			a.qCursor = clamp(a.qCursor-1, len(a.quarantine))
		case "r":
			return a, a.dispatch(console.ActionRestore)
		case "d":
			return a, a.dispatch(console.ActionDelete)
		}
	}

	return a, nil
}

func (a *App) answer(ok bool) {
	a.confirm.reply <- ok
	a.confirm = nil
}

func (a *App) switchTo(mode domain.Mode) tea.Cmd {
	a.statusMsg = ""
	a.ctrl.SwitchMode(a.ctx, mode)

	return a.setMode(mode)
}

func (a *App) setMode(mode domain.Mode) tea.Cmd {
	a.mode = mode
	a.fileInput.Blur()
	a.urlInput.Blur()
	if input := a.activeInput(); input != nil {
		return input.Focus()
	}

	return nil
}

func (a *App) activeInput() *textinput.Model {
	switch a.mode {
	case domain.ModeFile:
		return &a.fileInput
	case domain.ModeURL:
		return &a.urlInput
	default:
		return nil
	}
}

func (a *App) submit() tea.Cmd {
	ctx, ctrl := a.ctx, a.ctrl
	a.statusMsg = ""

	if a.mode == domain.ModeURL {
		target := domain.URLTarget{URL: a.urlInput.Value()}

		return func() tea.Msg {
			ctrl.Submit(ctx, target)

			return nil
		}
	}

	path := strings.TrimSpace(a.fileInput.Value())

	return func() tea.Msg {
		target := domain.FileTarget{}
		if path != "" {
			f, err := os.Open(path)
			if err != nil {
				ctrl.Reject(ctx, fmt.Sprintf("Could not open %s: %v", path, err))

				return nil
			}
			defer f.Close()
			target = domain.FileTarget{Name: filepath.Base(path), Content: f}
		}
		ctrl.Submit(ctx, target)

		return nil
	}
}

func (a *App) dispatch(action console.Action) tea.Cmd {
	if len(a.quarantine) == 0 {
		return nil
	}
	ctx, ctrl := a.ctx, a.ctrl
	cmd := console.Command{Action: action, ID: a.quarantine[a.qCursor].ID}

	return func() tea.Msg {
		message, err := ctrl.Dispatch(ctx, cmd)

		return dispatchDoneMsg{message: message, err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var content string
	switch {
	case a.mode.Submits():
		content = a.submitView()
	case a.mode == domain.ModeHistory:
		content = a.historyView()
	case a.mode == domain.ModeProtect:
		content = a.protectView()
	}

	contentBox := lipgloss.NewStyle().
		Width(a.width).
		Padding(0, 1).
		MaxHeight(max(1, a.height-4)).
		Render(panelStyle.Width(max(20, a.width-4)).Render(content))

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		a.renderTabs(),
		contentBox,
		a.renderStatus(),
	)
}

func (a *App) renderHeader() string {
	row := lipgloss.JoinHorizontal(lipgloss.Left,
		titleStyle.Render("scanconsole"),
		"  ",
		dimStyle.Render("file & URL malware scanning"),
	)

	return lipgloss.NewStyle().
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(line).
		Width(a.width).
		Padding(0, 1).
		Render(row)
}

func (a *App) renderTabs() string {
	parts := make([]string, 0, len(tabNames)*2)
	for i, name := range tabNames {
		label := fmt.Sprintf("%d:%s", i+1, name)
		if domain.Mode(i) == a.mode {
			parts = append(parts, lipgloss.NewStyle().Bold(true).Foreground(accent).Render(label))
		} else {
			parts = append(parts, dimStyle.Render(label))
		}
		if i < len(tabNames)-1 {
			parts = append(parts, dimStyle.Render("  ·  "))
		}
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Padding(0, 1).
		Render(lipgloss.JoinHorizontal(lipgloss.Left, parts...))
}

func (a *App) renderStatus() string {
	if a.confirm != nil {
		return promptStyle.Render(a.confirm.prompt + "  [y/n]")
	}

	help := "tab next  shift+tab prev  1-4 jump  q quit"
	switch {
	case a.mode.Submits():
		help = "enter scan  esc leave input  p report link  " + help
	case a.mode == domain.ModeHistory:
		help = "↑/↓ select  enter open  " + help
	case a.mode == domain.ModeProtect:
		help = "↑/↓ select  r restore  d delete  " + help
	}
	if a.statusMsg != "" {
		help = a.statusMsg + "  ·  " + help
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Padding(0, 1).
		Foreground(slateDim).
		Render(help)
}

func (a *App) submitView() string {
	lines := []string{panelHeaderStyle.Render(tabNames[a.mode]), "", a.activeInput().View(), ""}

	switch {
	case a.loading != "":
		lines = append(lines, noticeStyle.Render(a.loading))
		if a.notice != "" {
			lines = append(lines, warningStyle.Render(a.notice))
		}
	case a.errText != "":
		lines = append(lines, dangerStyle.Render(a.errText))
	case a.result != nil:
		lines = append(lines, resultView(*a.result, max(5, a.height-16)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func resultView(d render.Display, maxRows int) string {
	badge := badgeStyle.Foreground(bgDark).Background(badgeColor(d.Badge)).Render(d.Title)
	counters := fmt.Sprintf("%s  %s  %s",
		dangerStyle.Render(fmt.Sprintf("Malicious %d", d.Malicious)),
		warningStyle.Render(fmt.Sprintf("Suspicious %d", d.Suspicious)),
		okStyle.Render(fmt.Sprintf("Safe %d", d.Safe)))

	lines := []string{badge, counters, ""}
	for i, row := range d.Rows {
		if i >= maxRows {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("… %d more", len(d.Rows)-i)))

			break
		}
		lines = append(lines, fmt.Sprintf("%-28s %s  %s",
			truncate(row.Engine, 28), rowStyle(row.Badge).Render(row.Verdict), dimStyle.Render(row.Detail)))
	}
	if d.TotalEngines > len(d.Rows) {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("Showing %d of %d engines", len(d.Rows), d.TotalEngines)))
	}
	if d.ReportURL != "" {
		lines = append(lines, "", dimStyle.Render("PDF report: "+d.ReportURL))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a *App) historyView() string {
	lines := []string{panelHeaderStyle.Render("Scan History"), ""}

	switch {
	case a.errText != "":
		lines = append(lines, dangerStyle.Render(a.errText))

		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	case a.history == nil:
		lines = append(lines, dimStyle.Render("Loading records..."))
	case len(a.history) == 0:
		lines = append(lines, dimStyle.Render("No history."))
	}

	for i, r := range a.history {
		style := okStyle
		if r.MaliciousCount > 0 {
			style = dangerStyle
		}
		row := fmt.Sprintf("%-4s %-36s %-20s %s",
			strings.ToUpper(string(r.ResourceType)),
			truncate(r.DisplayName(), 36),
			r.Timestamp,
			style.Render(fmt.Sprintf("%d/%d", r.MaliciousCount, r.TotalCount)))
		if i == a.historyCursor {
			row = selectedRowStyle.Render(row)
		}
		lines = append(lines, row)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a *App) protectView() string {
	lines := []string{panelHeaderStyle.Render("Live Activity"), ""}
	if len(a.logs) == 0 {
		lines = append(lines, dimStyle.Render("Waiting for file activity..."))
	}
	for _, e := range a.logs {
		lines = append(lines, fmt.Sprintf("%s  %-30s %s", dimStyle.Render(e.Time), truncate(e.File, 30), e.Info))
	}

	lines = append(lines, "", panelHeaderStyle.Render("Quarantine"), "")
	if len(a.quarantine) == 0 {
		lines = append(lines, dimStyle.Render("Quarantine is empty."))
	}
	for i, q := range a.quarantine {
		row := fmt.Sprintf("%-36s %-20s %s", truncate(q.OriginalName, 36), q.Timestamp, riskStyle(q.Risk).Render(q.Risk))
		if i == a.qCursor {
			row = selectedRowStyle.Render(row)
		}
		lines = append(lines, row)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}

	return i
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
