package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/grc-tools/control-atlas/pkg/adapters"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/services/registers"
	"github.com/rs/zerolog"
)

// DefaultSeed keeps seeded data stable across installs unless the
// caller asks for variation.
const DefaultSeed int64 = 20260101

// Seeder populates every register with sample data so a fresh
// install has something to look at. Generation is deterministic for a
// fixed seed; IDs are register-prefixed ordinals, like the
// dashboards this replaces used.
type Seeder struct {
	explorer registers.Explorer
	rng      *rand.Rand
	baseTime time.Time
}

func NewSeeder(explorer registers.Explorer, seed int64) *Seeder {
	return &Seeder{
		explorer: explorer,
		rng:      rand.New(rand.NewSource(seed)),
		baseTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Run fills every register. Registers that already hold records are
// left alone.
func (s *Seeder) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	batches := map[string][]domain.RegisterRecord{
		"assets":           s.Assets(),
		"audits":           s.Audits(),
		"findings":         s.Findings(),
		"incidents":        s.Incidents(),
		"policies":         s.Policies(),
		"vendors":          s.Vendors(),
		"privacy_requests": s.PrivacyRequests(),
		"campaigns":        s.Campaigns(),
		"calendar_events":  s.CalendarEvents(),
	}

	for _, register := range registers.Catalog() {
		stats, err := s.explorer.GetStats(ctx, register.Name)
		if err != nil {
			return fmt.Errorf("check %s: %w", register.Name, err)
		}
		if stats.RecordsCount > 0 {
			logger.Debug().Str("register", register.Name).Msg("register already populated, skipping")
			continue
		}

		batch := batches[register.Name]
		if err := s.explorer.AddRecords(ctx, register.Name, batch); err != nil {
			return fmt.Errorf("seed %s: %w", register.Name, err)
		}
		logger.Info().Str("register", register.Name).Int("records", len(batch)).Msg("seeded register")
	}
	return nil
}

var (
	owners      = []string{"m.okafor", "j.lindqvist", "r.patel", "s.tanaka", "a.moreau", "d.kowalski"}
	departments = []string{"finance", "engineering", "operations", "hr", "sales"}
	frameworks  = []string{"sox", "pci_dss", "hipaa", "iso_27001", "nist", "hitrust"}
)

func (s *Seeder) Assets() []domain.RegisterRecord {
	categories := []string{"server", "laptop", "database", "storage", "application"}
	platforms := []string{"ibmi", "unix", "aws", "azure", "on_prem"}
	statuses := []domain.AssetStatus{
		domain.AssetStatusActive, domain.AssetStatusActive, domain.AssetStatusActive,
		domain.AssetStatusInRepair, domain.AssetStatusRetired,
	}

	out := make([]domain.RegisterRecord, 0, 40)
	for i := 0; i < 40; i++ {
		category := pick(s.rng, categories)
		asset := domain.Asset{
			ID:          fmt.Sprintf("AST-%04d", i+1),
			Name:        fmt.Sprintf("%s-%02d", category, i+1),
			Category:    category,
			Platform:    pick(s.rng, platforms),
			Owner:       pick(s.rng, owners),
			Department:  pick(s.rng, departments),
			Status:      statuses[s.rng.Intn(len(statuses))],
			Criticality: pickSeverity(s.rng),
			Value:       float64(s.rng.Intn(20000)) + 500,
			RiskScore:   round1(s.rng.Float64() * 10),
			AcquiredAt:  s.baseTime.AddDate(0, 0, -s.rng.Intn(900)),
		}
		out = append(out, adapters.MapAssetToRecord(asset))
	}
	return out
}

func (s *Seeder) Audits() []domain.RegisterRecord {
	types := []string{"internal", "external", "regulatory"}
	statuses := []domain.AuditStatus{
		domain.AuditStatusPlanned, domain.AuditStatusInProgress,
		domain.AuditStatusReporting, domain.AuditStatusClosed,
	}

	out := make([]domain.RegisterRecord, 0, 12)
	for i := 0; i < 12; i++ {
		framework := pick(s.rng, frameworks)
		started := s.baseTime.AddDate(0, 0, -s.rng.Intn(365))
		due := started.AddDate(0, 3, 0)
		audit := domain.Audit{
			ID:          fmt.Sprintf("AUD-%04d", i+1),
			Name:        fmt.Sprintf("%s annual review %d", framework, started.Year()),
			Framework:   framework,
			AuditType:   pick(s.rng, types),
			LeadAuditor: pick(s.rng, owners),
			Department:  pick(s.rng, departments),
			Status:      statuses[s.rng.Intn(len(statuses))],
			Progress:    float64(s.rng.Intn(101)),
			StartedAt:   started,
			DueAt:       &due,
		}
		out = append(out, adapters.MapAuditToRecord(audit))
	}
	return out
}

func (s *Seeder) Findings() []domain.RegisterRecord {
	issues := []string{
		"Excessive privileged access",
		"Audit trail gaps on critical tables",
		"Stale user accounts not disabled",
		"Change promoted without approval",
		"Backup restore untested",
		"Password policy below baseline",
	}
	statuses := []domain.FindingStatus{
		domain.FindingStatusOpen, domain.FindingStatusOpen,
		domain.FindingStatusRemediated, domain.FindingStatusAccepted,
	}

	out := make([]domain.RegisterRecord, 0, 25)
	for i := 0; i < 25; i++ {
		severity := pickSeverity(s.rng)
		raised := s.baseTime.AddDate(0, 0, -s.rng.Intn(300))
		due := raised.AddDate(0, 1, 0)
		finding := domain.Finding{
			ID:          fmt.Sprintf("FND-%04d", i+1),
			Title:       pick(s.rng, issues),
			AuditID:     fmt.Sprintf("AUD-%04d", s.rng.Intn(12)+1),
			Platform:    pick(s.rng, []string{"ibmi", "jde", "unix"}),
			Severity:    severity,
			Status:      statuses[s.rng.Intn(len(statuses))],
			Owner:       pick(s.rng, owners),
			Issue:       pick(s.rng, issues),
			Remediation: "Remediate per control guidance",
			RiskScore:   severity.Weight(),
			RaisedAt:    raised,
			DueAt:       &due,
		}
		out = append(out, adapters.MapFindingToRecord(finding))
	}
	return out
}

func (s *Seeder) Incidents() []domain.RegisterRecord {
	categories := []string{"phishing", "malware", "data_leak", "unauthorized_access", "outage"}
	titles := []string{
		"Credential phishing campaign",
		"Malware on workstation",
		"Misdirected customer export",
		"After-hours admin login",
		"Storage array degradation",
	}
	statuses := []domain.IncidentStatus{
		domain.IncidentStatusNew, domain.IncidentStatusTriaged,
		domain.IncidentStatusContained, domain.IncidentStatusResolved,
	}

	out := make([]domain.RegisterRecord, 0, 18)
	for i := 0; i < 18; i++ {
		detected := s.baseTime.AddDate(0, 0, -s.rng.Intn(180))
		incident := domain.Incident{
			ID:         fmt.Sprintf("INC-%04d", i+1),
			Title:      pick(s.rng, titles),
			Category:   pick(s.rng, categories),
			Severity:   pickSeverity(s.rng),
			Status:     statuses[s.rng.Intn(len(statuses))],
			Reporter:   pick(s.rng, owners),
			Assignee:   pick(s.rng, owners),
			AssetID:    fmt.Sprintf("AST-%04d", s.rng.Intn(40)+1),
			ImpactCost: float64(s.rng.Intn(50000)),
			DetectedAt: detected,
		}
		if incident.Status == domain.IncidentStatusResolved {
			resolved := detected.AddDate(0, 0, s.rng.Intn(14)+1)
			incident.ResolvedAt = &resolved
		}
		out = append(out, adapters.MapIncidentToRecord(incident))
	}
	return out
}

func (s *Seeder) Policies() []domain.RegisterRecord {
	names := []string{
		"Access Control Policy", "Acceptable Use Policy", "Data Retention Policy",
		"Incident Response Plan", "Vendor Management Policy", "Encryption Standard",
		"Remote Work Policy", "Change Management Policy",
	}
	categories := []string{"security", "privacy", "hr", "operations"}
	statuses := []domain.PolicyStatus{
		domain.PolicyStatusDraft, domain.PolicyStatusInReview,
		domain.PolicyStatusPublished, domain.PolicyStatusPublished,
	}

	out := make([]domain.RegisterRecord, 0, 15)
	for i := 0; i < 15; i++ {
		effective := s.baseTime.AddDate(0, 0, -s.rng.Intn(700))
		review := effective.AddDate(1, 0, 0)
		policy := domain.Policy{
			ID:          fmt.Sprintf("POL-%04d", i+1),
			Name:        pick(s.rng, names),
			Category:    pick(s.rng, categories),
			Owner:       pick(s.rng, owners),
			Status:      statuses[s.rng.Intn(len(statuses))],
			Version:     fmt.Sprintf("%d.%d", s.rng.Intn(3)+1, s.rng.Intn(10)),
			AckRate:     round1(60 + s.rng.Float64()*40),
			EffectiveAt: effective,
			ReviewDueAt: &review,
		}
		out = append(out, adapters.MapPolicyToRecord(policy))
	}
	return out
}

func (s *Seeder) Vendors() []domain.RegisterRecord {
	names := []string{
		"Northwind Cloud", "Acme Payroll", "Globex Analytics", "Initech Support",
		"Umbrella Hosting", "Stark Logistics", "Wayne Security", "Hooli Storage",
	}
	categories := []string{"cloud", "software", "services", "hardware"}
	tiers := []domain.VendorTier{
		domain.VendorTierCritical, domain.VendorTierHigh,
		domain.VendorTierStandard, domain.VendorTierStandard,
	}

	out := make([]domain.RegisterRecord, 0, 16)
	for i := 0; i < 16; i++ {
		onboarded := s.baseTime.AddDate(0, 0, -s.rng.Intn(1000))
		contractEnd := onboarded.AddDate(s.rng.Intn(3)+1, 0, 0)
		vendor := domain.Vendor{
			ID:            fmt.Sprintf("VEN-%04d", i+1),
			Name:          fmt.Sprintf("%s %d", pick(s.rng, names), i+1),
			Category:      pick(s.rng, categories),
			Tier:          tiers[s.rng.Intn(len(tiers))],
			Status:        pick(s.rng, []string{"active", "active", "onboarding", "offboarded"}),
			Owner:         pick(s.rng, owners),
			RiskScore:     round1(s.rng.Float64() * 10),
			AnnualSpend:   float64(s.rng.Intn(500000)),
			ContractEndAt: &contractEnd,
			OnboardedAt:   onboarded,
		}
		out = append(out, adapters.MapVendorToRecord(vendor))
	}
	return out
}

func (s *Seeder) PrivacyRequests() []domain.RegisterRecord {
	types := []domain.PrivacyRequestType{
		domain.PrivacyRequestAccess, domain.PrivacyRequestErasure,
		domain.PrivacyRequestPortability, domain.PrivacyRequestRectification,
	}
	statuses := []domain.PrivacyRequestStatus{
		domain.PrivacyRequestStatusReceived, domain.PrivacyRequestStatusVerifying,
		domain.PrivacyRequestStatusFulfilled, domain.PrivacyRequestStatusRejected,
	}

	out := make([]domain.RegisterRecord, 0, 20)
	for i := 0; i < 20; i++ {
		received := s.baseTime.AddDate(0, 0, -s.rng.Intn(60))
		due := received.AddDate(0, 1, 0)
		request := domain.PrivacyRequest{
			ID:          fmt.Sprintf("DSR-%04d", i+1),
			Subject:     fmt.Sprintf("subject-%03d", s.rng.Intn(500)),
			Type:        types[s.rng.Intn(len(types))],
			Regulation:  pick(s.rng, []string{"gdpr", "gdpr", "ccpa", "lgpd"}),
			Status:      statuses[s.rng.Intn(len(statuses))],
			Assignee:    pick(s.rng, owners),
			ElapsedDays: float64(s.rng.Intn(30)),
			ReceivedAt:  received,
			DueAt:       &due,
		}
		out = append(out, adapters.MapPrivacyRequestToRecord(request))
	}
	return out
}

func (s *Seeder) Campaigns() []domain.RegisterRecord {
	topics := []string{"phishing", "passwords", "data_handling", "social_engineering"}
	audiences := []string{"all_staff", "engineering", "finance", "executives"}

	out := make([]domain.RegisterRecord, 0, 10)
	for i := 0; i < 10; i++ {
		started := s.baseTime.AddDate(0, 0, -s.rng.Intn(200))
		ends := started.AddDate(0, 1, 0)
		campaign := domain.Campaign{
			ID:             fmt.Sprintf("CMP-%04d", i+1),
			Name:           fmt.Sprintf("Q%d %s awareness", (i%4)+1, pick(s.rng, topics)),
			Topic:          pick(s.rng, topics),
			Audience:       pick(s.rng, audiences),
			Status:         pick(s.rng, []string{"draft", "running", "running", "completed"}),
			Owner:          pick(s.rng, owners),
			TargetCount:    float64(s.rng.Intn(900) + 100),
			CompletionRate: round1(s.rng.Float64() * 100),
			ClickRate:      round1(s.rng.Float64() * 25),
			StartedAt:      started,
			EndsAt:         &ends,
		}
		out = append(out, adapters.MapCampaignToRecord(campaign))
	}
	return out
}

func (s *Seeder) CalendarEvents() []domain.RegisterRecord {
	names := []string{
		"SOX quarterly certification", "PCI ASV scan", "HIPAA risk assessment",
		"ISO surveillance audit", "Access review", "DR exercise",
	}
	eventTypes := []string{"filing", "assessment", "renewal", "review"}

	out := make([]domain.RegisterRecord, 0, 14)
	for i := 0; i < 14; i++ {
		due := s.baseTime.AddDate(0, 0, s.rng.Intn(180)-30)
		event := domain.CalendarEvent{
			ID:           fmt.Sprintf("CAL-%04d", i+1),
			Name:         pick(s.rng, names),
			Framework:    pick(s.rng, frameworks),
			EventType:    pick(s.rng, eventTypes),
			Owner:        pick(s.rng, owners),
			Status:       pick(s.rng, []string{"upcoming", "upcoming", "in_progress", "done", "overdue"}),
			Recurrence:   pick(s.rng, []string{"once", "monthly", "quarterly", "annual"}),
			LeadTimeDays: float64(s.rng.Intn(30) + 5),
			DueAt:        due,
		}
		out = append(out, adapters.MapCalendarEventToRecord(event))
	}
	return out
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

func pickSeverity(rng *rand.Rand) domain.Severity {
	severities := []domain.Severity{
		domain.SeverityCritical, domain.SeverityHigh, domain.SeverityHigh,
		domain.SeverityMedium, domain.SeverityMedium, domain.SeverityLow,
	}
	return severities[rng.Intn(len(severities))]
}

func round1(v float64) float64 {
	return float64(int(v*10)) / 10
}
