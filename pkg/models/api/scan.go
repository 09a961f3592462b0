package api

import "time"

type Scan struct {
	ID         string     `json:"id"`
	Profile    string     `json:"profile"`
	Platform   string     `json:"platform"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	LastScanAt *time.Time `json:"last_scan_at,omitempty"`
	Error      *string    `json:"error,omitempty"`
}

type StartScanRequest struct {
	Profile string `json:"profile"`
}
