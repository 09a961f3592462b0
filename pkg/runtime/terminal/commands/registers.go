package commands

import (
	"fmt"
	"strings"

	"github.com/grc-tools/control-atlas/pkg/services/registers"
	"github.com/spf13/cobra"
)

type RegistersCmd struct {
	explorer registers.Explorer
}

func NewRegistersCmd(explorer registers.Explorer) *cobra.Command {
	rc := &RegistersCmd{explorer: explorer}
	cmd := &cobra.Command{
		Use:   "registers",
		Short: "List the available registers",
		RunE:  rc.run,
	}
	return cmd
}

func (rc *RegistersCmd) run(cmd *cobra.Command, _ []string) error {
	for _, register := range rc.explorer.ListRegisters(cmd.Context()) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n  dimensions: %s\n  measures:   %s\n",
			register.Name,
			register.Title,
			strings.Join(register.Dimensions, ", "),
			strings.Join(register.Measures, ", "))
	}
	return nil
}
