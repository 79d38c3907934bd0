// Package textview renders console output as plain lines, for the headless
// commands.
package textview

import (
	"fmt"
	"io"
	"scanconsole/internal/console"
	"scanconsole/internal/render"
	"scanconsole/pkg/domain"
	"strings"
	"sync"
	"text/tabwriter"
)

// View writes every console event to w. It is safe for concurrent use.
type View struct {
	mu sync.Mutex
	w  io.Writer
	// Quiet suppresses progress lines.
	Quiet bool
}

var _ console.View = (*View)(nil)

// New constructs a View writing to w.
func New(w io.Writer) *View {
	return &View{w: w}
}

func (v *View) printf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, _ = fmt.Fprintf(v.w, format, args...)
}

func (v *View) Reset() {}

func (v *View) ModeChanged(domain.Mode) {}

func (v *View) Loading(label string) {
	if !v.Quiet {
		v.printf("%s\n", label)
	}
}

func (v *View) Notice(msg string) {
	if !v.Quiet {
		v.printf("! %s\n", msg)
	}
}

func (v *View) Error(msg string) {
	v.printf("Error: %s\n", msg)
}

// Result prints the verdict, the chart counters and the engine table.
func (v *View) Result(d render.Display) {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, _ = fmt.Fprintf(v.w, "%s [%s]\n", d.Title, d.Badge)
	_, _ = fmt.Fprintf(v.w, "Malicious: %d  Suspicious: %d  Safe: %d\n", d.Malicious, d.Suspicious, d.Safe)

	if len(d.Rows) > 0 {
		tw := tabwriter.NewWriter(v.w, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "ENGINE\tVERDICT\tDETAIL")
		for _, r := range d.Rows {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Engine, r.Verdict, r.Detail)
		}
		_ = tw.Flush()
	}
	if d.TotalEngines > len(d.Rows) {
		_, _ = fmt.Fprintf(v.w, "Showing %d of %d engines\n", len(d.Rows), d.TotalEngines)
	}
	if d.ReportURL != "" {
		_, _ = fmt.Fprintf(v.w, "PDF report: %s\n", d.ReportURL)
	}
}

func (v *View) History(records []domain.HistoryRecord) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(records) == 0 {
		_, _ = fmt.Fprintln(v.w, "No history.")

		return
	}

	tw := tabwriter.NewWriter(v.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTYPE\tNAME\tTIME\tDETECTIONS")
	for _, r := range records {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d/%d\n",
			r.ResourceID, strings.ToUpper(string(r.ResourceType)), r.DisplayName(), r.Timestamp,
			r.MaliciousCount, r.TotalCount)
	}
	_ = tw.Flush()
}

func (v *View) MonitorLogs(entries []domain.MonitorLogEntry) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, e := range entries {
		_, _ = fmt.Fprintf(v.w, "[%s] %s: %s\n", e.Time, e.File, e.Info)
	}
}

func (v *View) Quarantine(items []domain.QuarantineItem) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(items) == 0 {
		_, _ = fmt.Fprintln(v.w, "Quarantine is empty.")

		return
	}

	tw := tabwriter.NewWriter(v.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tTIME\tRISK")
	for _, q := range items {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", q.ID, q.OriginalName, q.Timestamp, q.Risk)
	}
	_ = tw.Flush()
}
