package incident

import (
	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/output"
)

var eventsCmd = &cobra.Command{
	Use:     "events <reference>",
	Aliases: []string{"history"},
	Short:   "Show an incident's audit trail",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		events, err := client.IncidentEvents(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return cmdutil.PrintOutput(cmd.OutOrStdout(), events, len(events) == 0,
			"No events recorded.", output.EventTable(events))
	},
}
