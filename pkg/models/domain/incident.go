package domain

import "time"

type IncidentStatus string

const (
	IncidentStatusNew       IncidentStatus = "new"
	IncidentStatusTriaged   IncidentStatus = "triaged"
	IncidentStatusContained IncidentStatus = "contained"
	IncidentStatusResolved  IncidentStatus = "resolved"
)

type Incident struct {
	ID         string
	Title      string
	Category   string // phishing, malware, data_leak, unauthorized_access, outage
	Severity   Severity
	Status     IncidentStatus
	Reporter   string
	Assignee   string
	AssetID    string // soft reference into the asset register
	ImpactCost float64
	DetectedAt time.Time
	ResolvedAt *time.Time
}
