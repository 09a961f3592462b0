package adapters

import (
	"fmt"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
)

// Typed register entries flatten into the generic record shape: every
// string field becomes a dimension, every numeric field a measure.
// Soft references (audit_id, asset_id, vendor_id) stay dimensions.

func MapAssetToRecord(asset domain.Asset) domain.RegisterRecord {
	return domain.RegisterRecord{
		ID:       asset.ID,
		Register: "assets",
		Name:     asset.Name,
		Dims: map[string]string{
			"category":    asset.Category,
			"platform":    asset.Platform,
			"owner":       asset.Owner,
			"department":  asset.Department,
			"status":      string(asset.Status),
			"criticality": string(asset.Criticality),
			"region":      asset.Region,
			"resource_id": asset.ResourceID,
		},
		Measures: map[string]float64{
			"value":      asset.Value,
			"risk_score": asset.RiskScore,
		},
		CreatedAt: asset.AcquiredAt,
	}
}

func MapAuditToRecord(audit domain.Audit) domain.RegisterRecord {
	return domain.RegisterRecord{
		ID:       audit.ID,
		Register: "audits",
		Name:     audit.Name,
		Dims: map[string]string{
			"framework":    audit.Framework,
			"audit_type":   audit.AuditType,
			"lead_auditor": audit.LeadAuditor,
			"department":   audit.Department,
			"status":       string(audit.Status),
		},
		Measures: map[string]float64{
			"progress": audit.Progress,
		},
		CreatedAt: audit.StartedAt,
		DueAt:     audit.DueAt,
	}
}

func MapFindingToRecord(finding domain.Finding) domain.RegisterRecord {
	return domain.RegisterRecord{
		ID:       finding.ID,
		Register: "findings",
		Name:     finding.Title,
		Dims: map[string]string{
			"audit_id":    finding.AuditID,
			"control_id":  finding.ControlID,
			"platform":    finding.Platform,
			"severity":    string(finding.Severity),
			"status":      string(finding.Status),
			"owner":       finding.Owner,
			"issue":       finding.Issue,
			"remediation": finding.Remediation,
		},
		Measures: map[string]float64{
			"risk_score": finding.RiskScore,
		},
		CreatedAt: finding.RaisedAt,
		DueAt:     finding.DueAt,
		ClosedAt:  finding.ClosedAt,
	}
}

func MapIncidentToRecord(incident domain.Incident) domain.RegisterRecord {
	return domain.RegisterRecord{
		ID:       incident.ID,
		Register: "incidents",
		Name:     incident.Title,
		Dims: map[string]string{
			"category": incident.Category,
			"severity": string(incident.Severity),
			"status":   string(incident.Status),
			"reporter": incident.Reporter,
			"assignee": incident.Assignee,
			"asset_id": incident.AssetID,
		},
		Measures: map[string]float64{
			"impact_cost": incident.ImpactCost,
		},
		CreatedAt: incident.DetectedAt,
		ClosedAt:  incident.ResolvedAt,
	}
}

func MapPolicyToRecord(policy domain.Policy) domain.RegisterRecord {
	return domain.RegisterRecord{
		ID:       policy.ID,
		Register: "policies",
		Name:     policy.Name,
		Dims: map[string]string{
			"category": policy.Category,
			"owner":    policy.Owner,
			"status":   string(policy.Status),
			"version":  policy.Version,
		},
		Measures: map[string]float64{
			"ack_rate": policy.AckRate,
		},
		CreatedAt: policy.EffectiveAt,
		DueAt:     policy.ReviewDueAt,
	}
}

func MapVendorToRecord(vendor domain.Vendor) domain.RegisterRecord {
	return domain.RegisterRecord{
		ID:       vendor.ID,
		Register: "vendors",
		Name:     vendor.Name,
		Dims: map[string]string{
			"category": vendor.Category,
			"tier":     string(vendor.Tier),
			"status":   vendor.Status,
			"owner":    vendor.Owner,
		},
		Measures: map[string]float64{
			"risk_score":   vendor.RiskScore,
			"annual_spend": vendor.AnnualSpend,
		},
		CreatedAt: vendor.OnboardedAt,
		DueAt:     vendor.ContractEndAt,
	}
}

func MapPrivacyRequestToRecord(request domain.PrivacyRequest) domain.RegisterRecord {
	return domain.RegisterRecord{
		ID:       request.ID,
		Register: "privacy_requests",
		Name:     fmt.Sprintf("%s (%s)", request.Subject, request.Type),
		Dims: map[string]string{
			"type":       string(request.Type),
			"regulation": request.Regulation,
			"status":     string(request.Status),
			"assignee":   request.Assignee,
		},
		Measures: map[string]float64{
			"elapsed_days": request.ElapsedDays,
		},
		CreatedAt: request.ReceivedAt,
		DueAt:     request.DueAt,
		ClosedAt:  request.ClosedAt,
	}
}

func MapCampaignToRecord(campaign domain.Campaign) domain.RegisterRecord {
	return domain.RegisterRecord{
		ID:       campaign.ID,
		Register: "campaigns",
		Name:     campaign.Name,
		Dims: map[string]string{
			"topic":    campaign.Topic,
			"audience": campaign.Audience,
			"status":   campaign.Status,
			"owner":    campaign.Owner,
		},
		Measures: map[string]float64{
			"target_count":    campaign.TargetCount,
			"completion_rate": campaign.CompletionRate,
			"click_rate":      campaign.ClickRate,
		},
		CreatedAt: campaign.StartedAt,
		DueAt:     campaign.EndsAt,
	}
}

func MapCalendarEventToRecord(event domain.CalendarEvent) domain.RegisterRecord {
	due := event.DueAt
	return domain.RegisterRecord{
		ID:       event.ID,
		Register: "calendar_events",
		Name:     event.Name,
		Dims: map[string]string{
			"framework":  event.Framework,
			"event_type": event.EventType,
			"owner":      event.Owner,
			"status":     event.Status,
			"recurrence": event.Recurrence,
		},
		Measures: map[string]float64{
			"lead_time_days": event.LeadTimeDays,
		},
		CreatedAt: event.DueAt.AddDate(0, 0, -int(event.LeadTimeDays)),
		DueAt:     &due,
		ClosedAt:  event.CompletedAt,
	}
}
