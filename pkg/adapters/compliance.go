package adapters

import (
	"fmt"
	"maps"

	"github.com/google/uuid"
	"github.com/grc-tools/control-atlas/pkg/models/api"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/models/store"
)

func MapSnapshotDomainToStore(snapshot domain.PlatformSnapshot) store.PlatformSnapshot {
	return store.PlatformSnapshot{
		Platform:   string(snapshot.Platform),
		Profile:    snapshot.Profile,
		Config:     maps.Clone(snapshot.Config),
		CapturedAt: snapshot.CapturedAt,
	}
}

func MapSnapshotStoreToDomain(snapshot store.PlatformSnapshot) domain.PlatformSnapshot {
	return domain.PlatformSnapshot{
		Platform:   domain.Platform(snapshot.Platform),
		Profile:    snapshot.Profile,
		Config:     maps.Clone(snapshot.Config),
		CapturedAt: snapshot.CapturedAt,
	}
}

func MapSnapshotDomainToApi(snapshot domain.PlatformSnapshot) api.PlatformSnapshot {
	return api.PlatformSnapshot{
		Platform:   string(snapshot.Platform),
		Profile:    snapshot.Profile,
		Config:     snapshot.Config,
		CapturedAt: snapshot.CapturedAt,
	}
}

func MapControlResultDomainToStore(scanID, profile string, result domain.ControlResult) store.ControlResult {
	return store.ControlResult{
		ScanID:      scanID,
		Profile:     profile,
		Platform:    string(result.Control.Platform),
		Framework:   string(result.Control.Framework),
		ControlID:   result.Control.ID,
		Severity:    string(result.Control.Severity),
		Status:      string(result.Status),
		Detail:      result.Detail,
		EvaluatedAt: result.EvaluatedAt,
	}
}

// MapControlResultStoreToDomain rebuilds a result from its persisted
// row. Only the fields the store keeps survive the round trip.
func MapControlResultStoreToDomain(row store.ControlResult) domain.ControlResult {
	return domain.ControlResult{
		Control: domain.Control{
			ID:        row.ControlID,
			Framework: domain.Framework(row.Framework),
			Platform:  domain.Platform(row.Platform),
			Severity:  domain.Severity(row.Severity),
		},
		Status:      domain.ControlStatus(row.Status),
		Detail:      row.Detail,
		EvaluatedAt: row.EvaluatedAt,
	}
}

func MapControlResultDomainToApi(result domain.ControlResult) api.ControlResult {
	return api.ControlResult{
		ControlID:   result.Control.ID,
		Name:        result.Control.Name,
		Framework:   string(result.Control.Framework),
		Severity:    string(result.Control.Severity),
		Status:      string(result.Status),
		Detail:      result.Detail,
		Remediation: result.Control.Remediation,
		EvaluatedAt: result.EvaluatedAt,
	}
}

func MapComplianceReportDomainToApi(report domain.ComplianceReport) api.ComplianceReport {
	out := api.ComplianceReport{
		Platform:   string(report.Platform),
		Profile:    report.Profile,
		CapturedAt: report.CapturedAt,
		Scores:     make([]api.FrameworkScore, 0, len(report.Scores)),
		Results:    make([]api.ControlResult, 0, len(report.Results)),
	}
	for _, score := range report.Scores {
		out.Scores = append(out.Scores, api.FrameworkScore{
			Framework: string(score.Framework),
			Passed:    score.Passed,
			Failed:    score.Failed,
			Errored:   score.Errored,
			Score:     score.Score,
		})
	}
	for _, result := range report.Results {
		out.Results = append(out.Results, MapControlResultDomainToApi(result))
	}
	return out
}

// MapControlResultToFinding projects a failed control into the
// findings register.
func MapControlResultToFinding(profile string, result domain.ControlResult) domain.Finding {
	return domain.Finding{
		ID:          uuid.NewString(),
		Title:       fmt.Sprintf("%s: %s", result.Control.ID, result.Control.Name),
		ControlID:   result.Control.ID,
		Platform:    string(result.Control.Platform),
		Severity:    result.Control.Severity,
		Status:      domain.FindingStatusOpen,
		Owner:       profile,
		Issue:       result.Control.Description,
		Remediation: result.Control.Remediation,
		RiskScore:   result.Control.Severity.Weight(),
		RaisedAt:    result.EvaluatedAt,
	}
}
