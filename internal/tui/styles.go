package tui

import (
	"scanconsole/internal/render"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent   = lipgloss.Color("#14B8A6") // teal
	green    = lipgloss.Color("#22C55E")
	yellow   = lipgloss.Color("#F59E0B")
	red      = lipgloss.Color("#EF4444")
	slate    = lipgloss.Color("#94A3B8")
	slateDim = lipgloss.Color("#64748B")
	panelBg  = lipgloss.Color("#111827")
	bgDark   = lipgloss.Color("#0B1220")
	line     = lipgloss.Color("#1F2937")
	ink      = lipgloss.Color("#E5E7EB")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ink).
			Background(bgDark).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderTop(false).
			BorderRight(false).
			BorderBottom(false).
			BorderForeground(accent).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(line).
			Background(panelBg).
			Padding(1, 1)

	panelHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ink)

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(yellow).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(yellow).
			Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#0F172A")).
				BorderStyle(lipgloss.NormalBorder()).
				BorderLeft(true).
				BorderForeground(accent)

	dangerStyle  = lipgloss.NewStyle().Bold(true).Foreground(red)
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(yellow)
	okStyle      = lipgloss.NewStyle().Foreground(green)
	dimStyle     = lipgloss.NewStyle().Foreground(slateDim)
	noticeStyle  = lipgloss.NewStyle().Foreground(slate).Italic(true)
)

func badgeColor(b render.Badge) lipgloss.Color {
	switch b {
	case render.BadgeDanger:
		return red
	case render.BadgeWarning:
		return yellow
	default:
		return green
	}
}

func rowStyle(b render.Badge) lipgloss.Style {
	switch b {
	case render.BadgeDanger:
		return dangerStyle
	case render.BadgeWarning:
		return warningStyle
	default:
		return okStyle
	}
}

func riskStyle(risk string) lipgloss.Style {
	switch risk {
	case "Critical":
		return dangerStyle
	case "Suspicious":
		return warningStyle
	default:
		return dimStyle
	}
}
