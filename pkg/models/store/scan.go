package store

import "time"

type ScanIdentity struct {
	Profile  string
	Platform string
}

type Scan struct {
	ID         string
	Profile    string
	Platform   string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	LastScanAt time.Time
	Error      *string
}
