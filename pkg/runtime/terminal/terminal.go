package terminal

import (
	"io"
	"os"

	"github.com/grc-tools/control-atlas/pkg/runtime/terminal/commands"
	"github.com/grc-tools/control-atlas/pkg/runtime/terminal/export"
	"github.com/grc-tools/control-atlas/pkg/services/compliance"
	"github.com/grc-tools/control-atlas/pkg/services/registers"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registers  registers.Explorer
	compliance compliance.Explorer
	reporter   *export.Reporter
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registers  registers.Explorer
	Compliance compliance.Explorer
	Output     io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		registers:  opts.Registers,
		compliance: opts.Compliance,
		reporter:   export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "control-atlas",
		Short: "GRC register and compliance tool",
	}

	cmd.AddCommand(commands.NewRegistersCmd(cli.registers))
	cmd.AddCommand(commands.NewRecordsCmd(cli.registers))
	cmd.AddCommand(commands.NewSummaryCmd(cli.registers, cli.reporter))
	cmd.AddCommand(commands.NewExportCmd(cli.registers))
	cmd.AddCommand(commands.NewComplyCmd(cli.compliance, cli.reporter))
	cmd.AddCommand(commands.NewSeedCmd(cli.registers))
	cmd.AddCommand(commands.NewImportAWSCmd(cli.registers))
	cmd.AddCommand(commands.NewSpendCmd(cli.registers, cli.reporter))

	return cmd
}
