package incident

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/pkg/apiclient"
)

var ackCmd = &cobra.Command{
	Use:     "ack <reference>",
	Aliases: []string{"acknowledge"},
	Short:   "Acknowledge a reported incident",
	Long: `Acknowledge a reported incident.

Acknowledging moves a fresh report into triage and records the
dispatcher who took it. Dispatcher role required.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		inc, err := client.AcknowledgeIncident(cmd.Context(), args[0])
		if err != nil {
			if apiclient.IsConflict(err) {
				return fmt.Errorf("incident %s cannot be acknowledged: %w", args[0], err)
			}
			return err
		}

		return cmdutil.PrintResourceWithSuccess(cmd.OutOrStdout(), inc,
			fmt.Sprintf("Incident %s acknowledged", inc.Reference))
	},
}
