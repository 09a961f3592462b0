package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/services/registers"
	"github.com/spf13/cobra"
)

type RecordsCmd struct {
	register string
	filters  []string
	explorer registers.Explorer
}

func NewRecordsCmd(explorer registers.Explorer) *cobra.Command {
	rc := &RecordsCmd{explorer: explorer}
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List records of a register",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.register, "register", "", "Register to read (e.g. assets)")
	cmd.Flags().StringArrayVar(&rc.filters, "filter", nil,
		"Dimension filter as dim=value[,value...]; repeatable")

	_ = cmd.MarkFlagRequired("register")

	return cmd
}

func (rc *RecordsCmd) run(cmd *cobra.Command, _ []string) error {
	filters, err := ParseFilters(rc.filters)
	if err != nil {
		return err
	}

	records, err := rc.explorer.GetRecords(cmd.Context(), rc.register, filters)
	if err != nil {
		return err
	}

	for _, record := range records {
		dims := make([]string, 0, len(record.Dims))
		for dim, value := range record.Dims {
			if value == "" {
				continue
			}
			dims = append(dims, fmt.Sprintf("%s=%s", dim, value))
		}
		sort.Strings(dims)
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-30s %s\n", record.ID, record.Name, strings.Join(dims, " "))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d record(s)\n", len(records))
	return nil
}

// ParseFilters turns repeated dim=value[,value...] flags into filters.
func ParseFilters(raw []string) (domain.Filters, error) {
	dims := make(map[string][]string)
	for _, pair := range raw {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" || value == "" {
			return domain.Filters{}, fmt.Errorf("invalid filter %q, expected dim=value", pair)
		}
		dims[key] = append(dims[key], strings.Split(value, ",")...)
	}
	return domain.Filters{Dimensions: dims}, nil
}
