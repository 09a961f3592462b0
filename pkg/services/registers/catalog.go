package registers

import (
	"fmt"
	"sort"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
)

// catalog declares every register the service exposes, in the
// vocabulary of the dashboards it replaces. Dimension and measure
// order doubles as export column order.
var catalog = map[string]domain.Register{
	"assets": {
		Name:       "assets",
		Title:      "Asset Management",
		Dimensions: []string{"category", "platform", "owner", "department", "status", "criticality", "region", "resource_id"},
		Measures:   []string{"value", "risk_score"},
	},
	"audits": {
		Name:       "audits",
		Title:      "Audit Management",
		Dimensions: []string{"framework", "audit_type", "lead_auditor", "department", "status"},
		Measures:   []string{"progress"},
	},
	"findings": {
		Name:       "findings",
		Title:      "Audit Findings",
		Dimensions: []string{"audit_id", "control_id", "platform", "severity", "status", "owner", "issue", "remediation"},
		Measures:   []string{"risk_score"},
	},
	"incidents": {
		Name:       "incidents",
		Title:      "Incident Response",
		Dimensions: []string{"category", "severity", "status", "reporter", "assignee", "asset_id"},
		Measures:   []string{"impact_cost"},
	},
	"policies": {
		Name:       "policies",
		Title:      "Policy Management",
		Dimensions: []string{"category", "owner", "status", "version"},
		Measures:   []string{"ack_rate"},
	},
	"vendors": {
		Name:       "vendors",
		Title:      "Vendor Risk",
		Dimensions: []string{"category", "tier", "status", "owner"},
		Measures:   []string{"risk_score", "annual_spend"},
	},
	"privacy_requests": {
		Name:       "privacy_requests",
		Title:      "Data Privacy Requests",
		Dimensions: []string{"type", "regulation", "status", "assignee"},
		Measures:   []string{"elapsed_days"},
	},
	"campaigns": {
		Name:       "campaigns",
		Title:      "Security Awareness Campaigns",
		Dimensions: []string{"topic", "audience", "status", "owner"},
		Measures:   []string{"target_count", "completion_rate", "click_rate"},
	},
	"calendar_events": {
		Name:       "calendar_events",
		Title:      "Compliance Calendar",
		Dimensions: []string{"framework", "event_type", "owner", "status", "recurrence"},
		Measures:   []string{"lead_time_days"},
	},
}

// Catalog lists all registers sorted by name.
func Catalog() []domain.Register {
	registers := make([]domain.Register, 0, len(catalog))
	for _, register := range catalog {
		registers = append(registers, register)
	}
	sort.Slice(registers, func(i, j int) bool { return registers[i].Name < registers[j].Name })
	return registers
}

// Lookup resolves a register by name.
func Lookup(name string) (domain.Register, error) {
	register, ok := catalog[name]
	if !ok {
		return domain.Register{}, fmt.Errorf("unknown register: %s", name)
	}
	return register, nil
}
