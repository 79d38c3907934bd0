package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Risk is the local heuristic classification.
type Risk int

const (
	RiskSafe Risk = iota
	RiskSuspicious
	RiskCritical
)

func (r Risk) String() string {
	switch r {
	case RiskSuspicious:
		return "Suspicious"
	case RiskCritical:
		return "Critical"
	default:
		return "Safe"
	}
}

// ParseRisk maps the backend's risk label, case-insensitively. Unknown labels
// are an error.
func ParseRisk(s string) (Risk, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safe":
		return RiskSafe, nil
	case "suspicious":
		return RiskSuspicious, nil
	case "critical":
		return RiskCritical, nil
	default:
		return RiskSafe, fmt.Errorf("unknown risk %q", s)
	}
}

func (r Risk) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Risk) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("could not decode risk: %w", err)
	}
	parsed, err := ParseRisk(s)
	if err != nil {
		return err
	}
	*r = parsed

	return nil
}

// LocalVerdict is the synchronous heuristic result. It is final on arrival.
type LocalVerdict struct {
	Risk    Risk     `json:"risk"`
	Score   int      `json:"score"`
	Details []string `json:"details"`
}

// SubmissionOutcome is LocalOnly, Tracked or Rejected. It is produced once per
// submission and never mutated.
type SubmissionOutcome interface {
	isSubmissionOutcome()
}

// LocalOnly carries a final local verdict; no polling follows.
type LocalOnly struct {
	Verdict LocalVerdict
}

// Tracked identifies a cloud job that has to be polled.
type Tracked struct {
	JobID string
	// Cached is set when the backend found an identical prior scan. It only
	// changes the progress message.
	Cached      bool
	Type        TargetType
	DisplayName string
}

// Rejected means the submission did not produce a job.
type Rejected struct {
	Reason string
	Err    error
}

func (LocalOnly) isSubmissionOutcome() {}
func (Tracked) isSubmissionOutcome()   {}
func (Rejected) isSubmissionOutcome()  {}
