package commands

import (
	"fmt"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/runtime/terminal/export"
	"github.com/grc-tools/control-atlas/pkg/services/compliance"
	"github.com/spf13/cobra"
)

type ComplyCmd struct {
	platform  string
	framework string
	explorer  compliance.Explorer
	reporter  *export.Reporter
}

func NewComplyCmd(explorer compliance.Explorer, reporter *export.Reporter) *cobra.Command {
	cc := &ComplyCmd{explorer: explorer, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "comply",
		Short: "Evaluate a platform against the control catalogs",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.platform, "platform", "", "Platform to evaluate (ibmi, jde, unix, databricks, snowflake)")
	cmd.Flags().StringVar(&cc.framework, "framework", "", "Restrict to one framework (e.g. sox)")

	_ = cmd.MarkFlagRequired("platform")

	return cmd
}

func (cc *ComplyCmd) run(cmd *cobra.Command, _ []string) error {
	platform := domain.Platform(cc.platform)
	if !platform.Auditable() {
		return fmt.Errorf("unknown platform: %s", cc.platform)
	}

	report, err := cc.explorer.GetReport(cmd.Context(), platform, domain.Framework(cc.framework))
	if err != nil {
		return err
	}

	return cc.reporter.Handle(complianceReport(report))
}

func complianceReport(report domain.ComplianceReport) *domain.Report {
	sections := make([]domain.ReportSection, 0, len(report.Scores))
	for _, score := range report.Scores {
		details := make([]domain.ReportDetail, 0)
		for _, result := range report.Results {
			if result.Control.Framework != score.Framework {
				continue
			}
			details = append(details, domain.ReportDetail{
				Name:        fmt.Sprintf("%s %s", result.Control.ID, result.Control.Name),
				Value:       string(result.Status),
				Unit:        string(result.Control.Severity),
				Description: result.Detail,
			})
		}

		sections = append(sections, domain.ReportSection{
			Title: string(score.Framework),
			Summary: map[string]any{
				"score":   fmt.Sprintf("%.1f%%", score.Score),
				"passed":  score.Passed,
				"failed":  score.Failed,
				"errored": score.Errored,
			},
			Details: details,
		})
	}

	return &domain.Report{
		Title:    fmt.Sprintf("%s compliance (%s)", report.Platform, report.Profile),
		Period:   report.Period,
		Sections: sections,
	}
}
