package commands

import (
	"fmt"
	"strings"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/runtime/terminal/export"
	"github.com/grc-tools/control-atlas/pkg/services/registers"
	"github.com/spf13/cobra"
)

type SummaryCmd struct {
	register string
	groupBy  string
	measure  string
	agg      string
	limit    int
	filters  []string
	explorer registers.Explorer
	reporter *export.Reporter
}

func NewSummaryCmd(explorer registers.Explorer, reporter *export.Reporter) *cobra.Command {
	sc := &SummaryCmd{explorer: explorer, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate a register",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.register, "register", "", "Register to aggregate (e.g. incidents)")
	cmd.Flags().StringVar(&sc.groupBy, "group-by", "", "Comma-separated dimensions to group by")
	cmd.Flags().StringVar(&sc.measure, "measure", "", "Measure for sum/avg aggregation")
	cmd.Flags().StringVar(&sc.agg, "agg", "count", "Aggregation: count, sum or avg")
	cmd.Flags().IntVar(&sc.limit, "limit", 25, "Maximum number of groups")
	cmd.Flags().StringArrayVar(&sc.filters, "filter", nil,
		"Dimension filter as dim=value[,value...]; repeatable")

	_ = cmd.MarkFlagRequired("register")

	return cmd
}

func (sc *SummaryCmd) run(cmd *cobra.Command, _ []string) error {
	filters, err := ParseFilters(sc.filters)
	if err != nil {
		return err
	}

	query := domain.SummaryQuery{
		Measure:     sc.measure,
		Aggregation: domain.Aggregation(sc.agg),
		Limit:       sc.limit,
		Filters:     filters,
	}
	if sc.groupBy != "" {
		query.GroupBy = strings.Split(sc.groupBy, ",")
	}

	summary, err := sc.explorer.GetSummary(cmd.Context(), sc.register, query)
	if err != nil {
		return err
	}

	return sc.reporter.Handle(summaryReport(summary, query))
}

func summaryReport(summary domain.RegisterSummary, query domain.SummaryQuery) *domain.Report {
	sectionTitle := "Totals"
	if len(query.GroupBy) > 0 {
		sectionTitle = fmt.Sprintf("By %s", strings.Join(query.GroupBy, ", "))
	}

	details := make([]domain.ReportDetail, 0, len(summary.Groups))
	for _, group := range summary.Groups {
		details = append(details, domain.ReportDetail{
			Name:        group.Label,
			Value:       group.Value,
			Description: fmt.Sprintf("%d record(s)", group.Count),
		})
	}

	return &domain.Report{
		Title: fmt.Sprintf("%s summary (%s)", summary.Register, summary.Aggregation),
		Sections: []domain.ReportSection{
			{
				Title: sectionTitle,
				Summary: map[string]any{
					"records": summary.RecordCount,
					"total":   summary.Total,
				},
				Details: details,
			},
		},
	}
}
