package incident

import (
	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/output"
)

var showCmd = &cobra.Command{
	Use:     "show <reference>",
	Aliases: []string{"get"},
	Short:   "Show incident details",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		inc, err := client.GetIncident(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return cmdutil.PrintDetail(cmd.OutOrStdout(), inc, output.IncidentDetail(inc))
	},
}
