package domain

import "fmt"

// Mode is one of the four mutually exclusive console views.
type Mode int

const (
	// ModeFile submits an uploaded file.
	ModeFile Mode = iota
	// ModeURL submits a URL.
	ModeURL
	// ModeHistory lists previous scans.
	ModeHistory
	// ModeProtect shows the live activity log and the quarantine inventory.
	ModeProtect
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeFile, ModeURL, ModeHistory, ModeProtect} //nolint: gochecknoglobals

func (m Mode) String() string {
	switch m {
	case ModeFile:
		return "file"
	case ModeURL:
		return "url"
	case ModeHistory:
		return "history"
	case ModeProtect:
		return "protect"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Submits reports whether the mode shows the scan button.
func (m Mode) Submits() bool {
	return m == ModeFile || m == ModeURL
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if m.String() == s {
			return m, nil
		}
	}

	return 0, fmt.Errorf("unknown mode %q", s)
}
