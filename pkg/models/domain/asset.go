package domain

import "time"

type AssetStatus string

const (
	AssetStatusActive   AssetStatus = "active"
	AssetStatusInRepair AssetStatus = "in_repair"
	AssetStatusRetired  AssetStatus = "retired"
)

// Asset is one entry in the asset register. Category and Platform are
// free-form dimensions; cloud-imported assets carry provider metadata
// in Region/ResourceID.
type Asset struct {
	ID          string
	Name        string
	Category    string // server, laptop, database, storage, application
	Platform    string // ibmi, unix, aws, azure, on_prem
	Owner       string
	Department  string
	Status      AssetStatus
	Criticality Severity
	Region      string
	ResourceID  string
	Value       float64 // book value, USD
	RiskScore   float64
	AcquiredAt  time.Time
}
