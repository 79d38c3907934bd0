package domain

// Category is an engine verdict category. Values outside the four known
// categories are preserved as received.
type Category string

const (
	CategoryMalicious  Category = "malicious"
	CategorySuspicious Category = "suspicious"
	CategoryHarmless   Category = "harmless"
	CategoryUndetected Category = "undetected"
)

// Weight is the display ranking weight of the category.
func (c Category) Weight() int {
	switch c {
	case CategoryMalicious:
		return 3
	case CategorySuspicious:
		return 2
	case CategoryHarmless:
		return 1
	default:
		return 0
	}
}

// Stats aggregates engine verdicts over the complete engine set.
type Stats struct {
	Malicious  int `json:"malicious"`
	Suspicious int `json:"suspicious"`
	Harmless   int `json:"harmless"`
	Undetected int `json:"undetected"`
}

// EngineResult is one engine's verdict. Result is nil when the engine reported none.
type EngineResult struct {
	Category Category `json:"category"`
	Result   *string  `json:"result"`
}

// ReportData is a completed multi-engine report. Results has no order.
type ReportData struct {
	Stats   Stats                   `json:"stats"`
	Results map[string]EngineResult `json:"results"`
}

// ReportStatus is Pending, Completed or Failed.
type ReportStatus interface {
	IsTerminal() bool
	isReportStatus()
}

type Pending struct{}

type Completed struct {
	Data ReportData
}

type Failed struct {
	Reason string
}

func (Pending) IsTerminal() bool   { return false }
func (Completed) IsTerminal() bool { return true }
func (Failed) IsTerminal() bool    { return true }

func (Pending) isReportStatus()   {}
func (Completed) isReportStatus() {}
func (Failed) isReportStatus()    {}
