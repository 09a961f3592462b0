package commands

import (
	"context"
	"fmt"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/runtime/terminal/export"
	"github.com/grc-tools/control-atlas/pkg/services/inventory"
	"github.com/grc-tools/control-atlas/pkg/services/registers"
	"github.com/grc-tools/control-atlas/pkg/services/spend"
	"github.com/spf13/cobra"
)

type SpendCmd struct {
	vendor      string
	profile     string
	profilePath string
	days        int
	explorer    registers.Explorer
	reporter    *export.Reporter
}

func NewSpendCmd(explorer registers.Explorer, reporter *export.Reporter) *cobra.Command {
	sc := &SpendCmd{explorer: explorer, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "spend",
		Short: "Collect cloud vendor spend and project it into the vendor register",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.vendor, "vendor", "", "Cloud vendor: aws or azure")
	cmd.Flags().StringVar(&sc.profile, "profile", "default", "AWS shared config profile")
	cmd.Flags().StringVar(&sc.profilePath, "profile-path", "", "Azure collector profile config file")
	cmd.Flags().IntVar(&sc.days, "days", 30, "Number of days to collect")

	_ = cmd.MarkFlagRequired("vendor")

	return cmd
}

func (sc *SpendCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	collector, err := sc.collector(ctx)
	if err != nil {
		return err
	}

	spends, err := collector.GetSpend(ctx, sc.days)
	if err != nil {
		return err
	}

	if err := spend.SyncVendorSpend(ctx, sc.explorer, spends); err != nil {
		return err
	}

	return sc.reporter.Handle(spendReport(collector.Vendor(), sc.days, spends))
}

func (sc *SpendCmd) collector(ctx context.Context) (spend.Collector, error) {
	switch sc.vendor {
	case "aws":
		cfg, err := inventory.LoadAWSConfig(ctx, sc.profile)
		if err != nil {
			return nil, err
		}
		return spend.NewAWSCollector(*cfg), nil
	case "azure":
		if sc.profilePath == "" {
			return nil, fmt.Errorf("--profile-path is required for azure")
		}
		cfg, err := spend.LoadAzureConfig(sc.profilePath)
		if err != nil {
			return nil, err
		}
		return spend.NewAzureCollector(cfg)
	default:
		return nil, fmt.Errorf("unsupported vendor: %s", sc.vendor)
	}
}

func spendReport(vendor string, days int, spends []domain.VendorSpend) *domain.Report {
	var total float64
	for _, s := range spends {
		total += s.Amount
	}

	details := make([]domain.ReportDetail, 0)
	for _, group := range spend.TotalByService(spends) {
		details = append(details, domain.ReportDetail{
			Name:        group.Label,
			Value:       fmt.Sprintf("%.2f", group.Value),
			Unit:        "USD",
			Description: "total spend over the period",
		})
	}

	return &domain.Report{
		Title: fmt.Sprintf("%s spend", vendor),
		Period: domain.TimePeriod{
			Duration: days,
		},
		Sections: []domain.ReportSection{
			{
				Title: "By service",
				Summary: map[string]any{
					"total": fmt.Sprintf("%.2f", total),
				},
				Details: details,
			},
		},
	}
}
