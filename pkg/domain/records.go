package domain

// HistoryRecord is a previously completed scan as listed by the backend.
type HistoryRecord struct {
	ResourceID     string     `json:"resource_id"`
	ResourceType   TargetType `json:"resource_type"`
	Filename       string     `json:"filename"`
	Timestamp      string     `json:"timestamp"`
	MaliciousCount int        `json:"score_malicious"`
	TotalCount     int        `json:"score_total"`
	Status         string     `json:"status"`
}

// DisplayName falls back to "Unknown" for records without a file name.
func (r HistoryRecord) DisplayName() string {
	if r.Filename == "" {
		return "Unknown"
	}

	return r.Filename
}

// QuarantineItem is a file held in the backend quarantine store.
type QuarantineItem struct {
	ID           string `json:"id"`
	OriginalName string `json:"original_name"`
	Timestamp    string `json:"timestamp"`
	Risk         string `json:"risk,omitempty"`
}

// MonitorLogEntry is one line of the backend file-activity log.
type MonitorLogEntry struct {
	Time string `json:"time"`
	File string `json:"file"`
	Info string `json:"info"`
}
