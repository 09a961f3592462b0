package commands

import (
	"fmt"

	"github.com/grc-tools/control-atlas/pkg/services/inventory"
	"github.com/grc-tools/control-atlas/pkg/services/registers"
	"github.com/spf13/cobra"
)

type ImportAWSCmd struct {
	profile  string
	explorer registers.Explorer
}

func NewImportAWSCmd(explorer registers.Explorer) *cobra.Command {
	ic := &ImportAWSCmd{explorer: explorer}
	cmd := &cobra.Command{
		Use:   "import-aws",
		Short: "Import EC2, RDS and S3 resources into the asset register",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.profile, "profile", "default", "AWS shared config profile")

	return cmd
}

func (ic *ImportAWSCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := inventory.LoadAWSConfig(ctx, ic.profile)
	if err != nil {
		return err
	}

	imported, err := inventory.NewAWSImporter(*cfg, ic.explorer).Import(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d asset(s)\n", imported)
	return nil
}
