package domain

import "time"

type ScanStatus string

const (
	ScanStatusPending   ScanStatus = "pending"
	ScanStatusFinished  ScanStatus = "finished"
	ScanStatusFailed    ScanStatus = "failed"
	ScanStatusCancelled ScanStatus = "cancelled"
)

// Scan is the persisted state of one per-profile background
// compliance scan.
type Scan struct {
	ID         string
	Profile    string
	Platform   Platform
	Status     ScanStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
	LastScanAt time.Time
	Error      *string
}
