package commands

import (
	"fmt"

	"github.com/grc-tools/control-atlas/pkg/services/registers"
	"github.com/grc-tools/control-atlas/pkg/services/seed"
	"github.com/spf13/cobra"
)

type SeedCmd struct {
	seedValue int64
	reset     bool
	explorer  registers.Explorer
}

func NewSeedCmd(explorer registers.Explorer) *cobra.Command {
	sc := &SeedCmd{explorer: explorer}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate empty registers with sample data",
		RunE:  sc.run,
	}

	cmd.Flags().Int64Var(&sc.seedValue, "seed", seed.DefaultSeed, "Seed for the sample data generator")
	cmd.Flags().BoolVar(&sc.reset, "reset", false, "Drop existing records before seeding")

	return cmd
}

func (sc *SeedCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if sc.reset {
		for _, register := range sc.explorer.ListRegisters(ctx) {
			if err := sc.explorer.ResetRegister(ctx, register.Name); err != nil {
				return err
			}
		}
	}

	seeder := seed.NewSeeder(sc.explorer, sc.seedValue)
	if err := seeder.Run(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "registers seeded")
	return nil
}
