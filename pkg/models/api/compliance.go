package api

import "time"

type PlatformSnapshot struct {
	Platform   string         `json:"platform"`
	Profile    string         `json:"profile"`
	Config     map[string]any `json:"config"`
	CapturedAt time.Time      `json:"captured_at"`
}

type ControlResult struct {
	ControlID   string    `json:"control_id"`
	Name        string    `json:"name"`
	Framework   string    `json:"framework"`
	Severity    string    `json:"severity"`
	Status      string    `json:"status"`
	Detail      string    `json:"detail,omitempty"`
	Remediation string    `json:"remediation,omitempty"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

type FrameworkScore struct {
	Framework string  `json:"framework"`
	Passed    int     `json:"passed"`
	Failed    int     `json:"failed"`
	Errored   int     `json:"errored"`
	Score     float64 `json:"score"`
}

type ComplianceReport struct {
	Platform   string           `json:"platform"`
	Profile    string           `json:"profile"`
	Scores     []FrameworkScore `json:"scores"`
	Results    []ControlResult  `json:"results"`
	CapturedAt time.Time        `json:"captured_at"`
}
