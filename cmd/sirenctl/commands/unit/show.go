package unit

import (
	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/timeutil"
)

var showCmd = &cobra.Command{
	Use:     "show <call-sign>",
	Aliases: []string{"get"},
	Short:   "Show unit details",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		unit, err := client.GetUnit(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		pairs := [][2]string{
			{"Call sign", unit.CallSign},
			{"Category", unit.Category},
			{"Status", unit.Status},
			{"Station", cmdutil.EmptyOr(unit.Station, "-")},
			{"Registered", timeutil.FormatTimestamp(unit.CreatedAt)},
		}
		return cmdutil.PrintDetail(cmd.OutOrStdout(), unit, pairs)
	},
}
