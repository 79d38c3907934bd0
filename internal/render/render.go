// Package render turns backend report data and local heuristic verdicts into
// display state. Functions in this package are pure.
package render

import (
	"scanconsole/pkg/domain"
	"sort"
	"strings"
)

// MaxRows bounds the number of engine rows in a Display.
const MaxRows = 50

// LocalEngine is the engine name shown for local heuristic findings.
const LocalEngine = "Local Heuristics Engine"

// Badge is the visual class of a verdict or of a single engine row.
type Badge int

const (
	BadgeSafe Badge = iota
	BadgeWarning
	BadgeDanger
)

func (b Badge) String() string {
	switch b {
	case BadgeWarning:
		return "warning"
	case BadgeDanger:
		return "danger"
	default:
		return "safe"
	}
}

// Cloud verdict titles.
const (
	TitleThreat     = "THREAT DETECTED"
	TitleSuspicious = "SUSPICIOUS ACTIVITY"
	TitleClean      = "CLEAN & SAFE"
)

// Row is one line of the findings table.
type Row struct {
	Engine  string
	Verdict string
	Detail  string
	Badge   Badge
}

// Display is everything a view needs to show a finished result.
type Display struct {
	Title string
	Badge Badge

	// Chart counters.
	Malicious  int
	Suspicious int
	Safe       int

	Rows []Row
	// TotalEngines counts every engine in the report, including rows cut by MaxRows.
	TotalEngines int

	// ReportURL is the address of the downloadable report. Empty for local results.
	ReportURL string
}

// Cloud builds the display for a completed multi-engine report.
func Cloud(data domain.ReportData) Display {
	s := data.Stats
	d := Display{
		Malicious:    s.Malicious,
		Suspicious:   s.Suspicious,
		Safe:         s.Harmless + s.Undetected,
		TotalEngines: len(data.Results),
	}

	switch {
	case s.Malicious > 0:
		d.Title, d.Badge = TitleThreat, BadgeDanger
	case s.Suspicious > 0:
		d.Title, d.Badge = TitleSuspicious, BadgeWarning
	default:
		d.Title, d.Badge = TitleClean, BadgeSafe
	}

	engines := make([]string, 0, len(data.Results))
	for name := range data.Results {
		engines = append(engines, name)
	}
	sort.Slice(engines, func(i, j int) bool {
		wi, wj := data.Results[engines[i]].Category.Weight(), data.Results[engines[j]].Category.Weight()
		if wi != wj {
			return wi > wj
		}

		return engines[i] < engines[j]
	})
	if len(engines) > MaxRows {
		engines = engines[:MaxRows]
	}

	d.Rows = make([]Row, 0, len(engines))
	for _, name := range engines {
		res := data.Results[name]
		verdict := "Clean"
		if res.Result != nil && *res.Result != "" {
			verdict = *res.Result
		}
		d.Rows = append(d.Rows, Row{
			Engine:  name,
			Verdict: verdict,
			Detail:  string(res.Category),
			Badge:   categoryBadge(res.Category),
		})
	}

	return d
}

// Local builds the display for a local-only heuristic verdict.
func Local(v domain.LocalVerdict) Display {
	d := Display{
		Title: strings.ToUpper(v.Risk.String()),
		Safe:  1,
		Rows:  make([]Row, 0, len(v.Details)),
	}

	switch v.Risk {
	case domain.RiskCritical:
		d.Badge, d.Malicious = BadgeDanger, 1
	case domain.RiskSuspicious:
		d.Badge, d.Suspicious = BadgeWarning, 1
	case domain.RiskSafe:
		d.Badge = BadgeSafe
	}

	for _, detail := range v.Details {
		d.Rows = append(d.Rows, Row{
			Engine:  LocalEngine,
			Verdict: "Alert",
			Detail:  detail,
			Badge:   BadgeDanger,
		})
	}
	d.TotalEngines = len(d.Rows)

	return d
}

func categoryBadge(c domain.Category) Badge {
	switch c {
	case domain.CategoryMalicious:
		return BadgeDanger
	case domain.CategorySuspicious:
		return BadgeWarning
	default:
		return BadgeSafe
	}
}
