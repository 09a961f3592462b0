package store

import "time"

type PlatformSnapshot struct {
	Platform   string
	Profile    string
	Config     map[string]any
	CapturedAt time.Time
}

type ControlResult struct {
	ScanID      string
	Profile     string
	Platform    string
	Framework   string
	ControlID   string
	Severity    string
	Status      string
	Detail      string
	EvaluatedAt time.Time
}
