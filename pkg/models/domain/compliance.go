package domain

import "time"

type Platform string

const (
	PlatformIBMi       Platform = "ibmi"
	PlatformJDE        Platform = "jde"
	PlatformUnix       Platform = "unix"
	PlatformDatabricks Platform = "databricks"
	PlatformSnowflake  Platform = "snowflake"

	// Collector-only platforms: they feed the asset and vendor
	// registers but are not audited against control catalogs.
	PlatformAWS   Platform = "aws"
	PlatformAzure Platform = "azure"
)

func (p Platform) IsValid() bool {
	switch p {
	case PlatformIBMi, PlatformJDE, PlatformUnix, PlatformDatabricks, PlatformSnowflake,
		PlatformAWS, PlatformAzure:
		return true
	default:
		return false
	}
}

// Auditable reports whether control catalogs exist for the platform.
func (p Platform) Auditable() bool {
	switch p {
	case PlatformIBMi, PlatformJDE, PlatformUnix, PlatformDatabricks, PlatformSnowflake:
		return true
	default:
		return false
	}
}

type Framework string

const (
	FrameworkSOX      Framework = "sox"
	FrameworkPCIDSS   Framework = "pci_dss"
	FrameworkHIPAA    Framework = "hipaa"
	FrameworkISO27001 Framework = "iso_27001"
	FrameworkNIST     Framework = "nist"
	FrameworkHITRUST  Framework = "hitrust"
)

func Frameworks() []Framework {
	return []Framework{
		FrameworkSOX, FrameworkPCIDSS, FrameworkHIPAA,
		FrameworkISO27001, FrameworkNIST, FrameworkHITRUST,
	}
}

// PlatformSnapshot is a flat configuration capture of an audited
// platform. Config values are scalars keyed by setting name; a control
// rule only ever reads this map.
type PlatformSnapshot struct {
	Platform   Platform
	Profile    string
	Config     map[string]any
	CapturedAt time.Time
}

// Control is one checklist item from a catalog. Rule is a CEL
// expression over the `config` variable; it must evaluate to bool.
type Control struct {
	ID          string
	Name        string
	Framework   Framework
	Platform    Platform
	Severity    Severity
	Description string
	Rule        string
	Remediation string
}

type ControlStatus string

const (
	ControlStatusPass  ControlStatus = "pass"
	ControlStatusFail  ControlStatus = "fail"
	ControlStatusError ControlStatus = "error"
)

type ControlResult struct {
	Control     Control
	Status      ControlStatus
	Detail      string
	EvaluatedAt time.Time
}

// FrameworkScore is passed/total*100 over the evaluated controls of
// one framework. Errored controls count toward the total.
type FrameworkScore struct {
	Framework Framework
	Passed    int
	Failed    int
	Errored   int
	Score     float64
}

func (s FrameworkScore) Total() int {
	return s.Passed + s.Failed + s.Errored
}

type ComplianceReport struct {
	Platform   Platform
	Profile    string
	Period     TimePeriod
	Scores     []FrameworkScore
	Results    []ControlResult
	CapturedAt time.Time
}
