package adapters

import (
	"testing"
	"time"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapAssetToRecord(t *testing.T) {
	acquired := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	asset := domain.Asset{
		ID:          "a-1",
		Name:        "web-01",
		Category:    "server",
		Platform:    "aws",
		Status:      domain.AssetStatusActive,
		Criticality: domain.SeverityHigh,
		Region:      "eu-west-1",
		Value:       1200,
		RiskScore:   6.5,
		AcquiredAt:  acquired,
	}

	record := MapAssetToRecord(asset)

	assert.Equal(t, "assets", record.Register)
	assert.Equal(t, "a-1", record.ID)
	assert.Equal(t, "server", record.Dims["category"])
	assert.Equal(t, "active", record.Dims["status"])
	assert.Equal(t, "high", record.Dims["criticality"])
	assert.InDelta(t, 1200.0, record.Measures["value"], 0.001)
	assert.Equal(t, acquired, record.CreatedAt)
}

func TestMapFindingToRecord_KeepsSoftReferences(t *testing.T) {
	raised := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	finding := domain.Finding{
		ID:        "f-1",
		Title:     "Root login enabled",
		AuditID:   "audit-7",
		ControlID: "SOX-202",
		Platform:  "unix",
		Severity:  domain.SeverityCritical,
		Status:    domain.FindingStatusOpen,
		RiskScore: domain.SeverityCritical.Weight(),
		RaisedAt:  raised,
	}

	record := MapFindingToRecord(finding)

	assert.Equal(t, "findings", record.Register)
	assert.Equal(t, "audit-7", record.Dims["audit_id"])
	assert.Equal(t, "SOX-202", record.Dims["control_id"])
	assert.InDelta(t, 10.0, record.Measures["risk_score"], 0.001)
}

func TestMapControlResultToFinding(t *testing.T) {
	evaluated := time.Date(2026, 5, 2, 3, 0, 0, 0, time.UTC)
	result := domain.ControlResult{
		Control: domain.Control{
			ID:          "PCI-001",
			Name:        "Sign-on attempts limited",
			Framework:   domain.FrameworkPCIDSS,
			Platform:    domain.PlatformIBMi,
			Severity:    domain.SeverityHigh,
			Description: "QMAXSIGN limits consecutive failed sign-on attempts.",
			Remediation: "Set QMAXSIGN to 6 or fewer attempts.",
		},
		Status:      domain.ControlStatusFail,
		EvaluatedAt: evaluated,
	}

	finding := MapControlResultToFinding("ibmi-prod", result)

	assert.NotEmpty(t, finding.ID)
	assert.Equal(t, "PCI-001: Sign-on attempts limited", finding.Title)
	assert.Equal(t, "PCI-001", finding.ControlID)
	assert.Equal(t, domain.SeverityHigh, finding.Severity)
	assert.Equal(t, domain.FindingStatusOpen, finding.Status)
	assert.Equal(t, evaluated, finding.RaisedAt)
	assert.InDelta(t, 7.5, finding.RiskScore, 0.001)
}

func TestRecordRoundTrip_StoreAndDomain(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	record := domain.RegisterRecord{
		ID:        "r-1",
		Register:  "policies",
		Name:      "Access Control Policy",
		Dims:      map[string]string{"status": "published"},
		Measures:  map[string]float64{"ack_rate": 92.5},
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		DueAt:     &due,
	}

	back := MapStoreRecordToDomain(MapDomainRecordToStore(record))
	assert.Equal(t, record, back)
}
