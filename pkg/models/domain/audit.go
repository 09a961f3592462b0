package domain

import "time"

type AuditStatus string

const (
	AuditStatusPlanned    AuditStatus = "planned"
	AuditStatusInProgress AuditStatus = "in_progress"
	AuditStatusReporting  AuditStatus = "reporting"
	AuditStatusClosed     AuditStatus = "closed"
)

// Audit is one engagement in the audit register.
type Audit struct {
	ID          string
	Name        string
	Framework   string // sox, pci_dss, hipaa, iso_27001, nist, hitrust
	AuditType   string // internal, external, regulatory
	LeadAuditor string
	Department  string
	Status      AuditStatus
	Progress    float64 // 0..100
	StartedAt   time.Time
	DueAt       *time.Time
}

type FindingStatus string

const (
	FindingStatusOpen       FindingStatus = "open"
	FindingStatusRemediated FindingStatus = "remediated"
	FindingStatusAccepted   FindingStatus = "risk_accepted"
)

// Finding is one issue raised by an audit or a compliance scan.
// AuditID and ControlID are soft references resolved by linear scan.
type Finding struct {
	ID          string
	Title       string
	AuditID     string
	ControlID   string
	Platform    string
	Severity    Severity
	Status      FindingStatus
	Owner       string
	Issue       string
	Remediation string
	RiskScore   float64
	RaisedAt    time.Time
	DueAt       *time.Time
	ClosedAt    *time.Time
}
