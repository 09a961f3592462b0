package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/services/registers"
	"github.com/spf13/cobra"
)

type ExportCmd struct {
	register string
	format   string
	outDir   string
	filters  []string
	explorer registers.Explorer
}

func NewExportCmd(explorer registers.Explorer) *cobra.Command {
	ec := &ExportCmd{explorer: explorer}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a register to csv, json or xlsx",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.register, "register", "", "Register to export (e.g. vendors)")
	cmd.Flags().StringVar(&ec.format, "format", "csv", "Export format: csv, json or xlsx")
	cmd.Flags().StringVar(&ec.outDir, "out", ".", "Directory for the export file")
	cmd.Flags().StringArrayVar(&ec.filters, "filter", nil,
		"Dimension filter as dim=value[,value...]; repeatable")

	_ = cmd.MarkFlagRequired("register")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	filters, err := ParseFilters(ec.filters)
	if err != nil {
		return err
	}

	format := domain.ExportFormat(ec.format)
	if !format.IsValid() {
		return fmt.Errorf("unsupported export format: %s", ec.format)
	}

	tmp, err := os.CreateTemp(ec.outDir, "export-*")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	filename, err := ec.explorer.Export(cmd.Context(), ec.register, format, filters, tmp)
	if err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	target := filepath.Join(ec.outDir, filename)
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("move export file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", target)
	return nil
}
