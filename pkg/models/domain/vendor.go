package domain

import "time"

type VendorTier string

const (
	VendorTierCritical VendorTier = "critical"
	VendorTierHigh     VendorTier = "high"
	VendorTierStandard VendorTier = "standard"
)

type Vendor struct {
	ID            string
	Name          string
	Category      string // cloud, software, services, hardware
	Tier          VendorTier
	Status        string // active, onboarding, offboarded
	Owner         string
	RiskScore     float64
	AnnualSpend   float64 // USD, fed by the spend collectors
	ContractEndAt *time.Time
	OnboardedAt   time.Time
}

// VendorSpend is one spend observation for a vendor over a period,
// produced by the AWS / Azure cost collectors.
type VendorSpend struct {
	Vendor    string
	Service   string
	Region    string
	Amount    float64
	Currency  string
	StartTime time.Time
	EndTime   time.Time
}
