package spend

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/grc-tools/control-atlas/pkg/adapters"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/services/registers"
	"github.com/rs/zerolog"
)

// Collector produces spend observations for one cloud vendor.
type Collector interface {
	Vendor() string
	GetSpend(ctx context.Context, days int) ([]domain.VendorSpend, error)
}

// TotalByService sums spend per service, sorted by service name.
func TotalByService(spends []domain.VendorSpend) []domain.SummaryGroup {
	totals := make(map[string]float64)
	for _, spend := range spends {
		totals[spend.Service] += spend.Amount
	}

	groups := make([]domain.SummaryGroup, 0, len(totals))
	for service, amount := range totals {
		groups = append(groups, domain.SummaryGroup{
			Key:   service,
			Label: service,
			Count: 1,
			Value: amount,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// SyncVendorSpend projects collected spend into the vendor register:
// each cloud vendor not present yet gets a record carrying its total
// observed spend. Existing vendors are left untouched.
func SyncVendorSpend(ctx context.Context, explorer registers.Explorer, spends []domain.VendorSpend) error {
	if len(spends) == 0 {
		return nil
	}
	logger := zerolog.Ctx(ctx)

	totals := make(map[string]float64)
	earliest := make(map[string]domain.VendorSpend)
	for _, spend := range spends {
		totals[spend.Vendor] += spend.Amount
		if current, ok := earliest[spend.Vendor]; !ok || spend.StartTime.Before(current.StartTime) {
			earliest[spend.Vendor] = spend
		}
	}

	existing, err := explorer.GetRecords(ctx, "vendors", domain.Filters{})
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(existing))
	for _, record := range existing {
		known[record.Name] = struct{}{}
	}

	records := make([]domain.RegisterRecord, 0, len(totals))
	for vendor, total := range totals {
		if _, ok := known[vendor]; ok {
			logger.Debug().Str("vendor", vendor).Msg("vendor already registered, spend not projected")
			continue
		}
		records = append(records, adapters.MapVendorToRecord(domain.Vendor{
			ID:          uuid.NewString(),
			Name:        vendor,
			Category:    "cloud",
			Tier:        domain.VendorTierStandard,
			Status:      "active",
			AnnualSpend: total,
			OnboardedAt: earliest[vendor].StartTime,
		}))
	}
	if len(records) == 0 {
		return nil
	}
	return explorer.AddRecords(ctx, "vendors", records)
}
