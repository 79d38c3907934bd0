package domain

import "io"

// TargetType is the backend label of a scan target, sent as the report "type".
type TargetType string

const (
	TargetFile TargetType = "file"
	TargetURL  TargetType = "url"
)

// ScanTarget is either a FileTarget or a URLTarget.
type ScanTarget interface {
	TargetType() TargetType
	isScanTarget()
}

// FileTarget is a file selected for upload. A zero Content means no file was selected.
type FileTarget struct {
	Name    string
	Content io.Reader
}

func (FileTarget) TargetType() TargetType { return TargetFile }
func (FileTarget) isScanTarget()          {}

// Selected reports whether a file was actually chosen.
func (f FileTarget) Selected() bool {
	return f.Content != nil && f.Name != ""
}

// URLTarget is a URL typed by the user, untrimmed.
type URLTarget struct {
	URL string
}

func (URLTarget) TargetType() TargetType { return TargetURL }
func (URLTarget) isScanTarget()          {}
