package incident

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/pkg/apiclient"
)

var statusCmd = &cobra.Command{
	Use:   "status <reference> <status>",
	Short: "Transition an incident to a new status",
	Long: `Transition an incident to a new status.

Valid transitions follow the incident lifecycle: reported, acknowledged,
dispatched, on_scene, resolved, closed. Any incident that is not yet
resolved or closed can be cancelled. Staff role required.`,
	Example: `  sirenctl incident status SIR-20260831-0001 on_scene
  sirenctl incident status SIR-20260831-0001 resolved
  sirenctl incident status SIR-20260831-0002 cancelled`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		inc, err := client.UpdateIncidentStatus(cmd.Context(), args[0], args[1])
		if err != nil {
			if apiclient.IsConflict(err) {
				return fmt.Errorf("cannot move incident %s to %s: %w", args[0], args[1], err)
			}
			return err
		}

		return cmdutil.PrintResourceWithSuccess(cmd.OutOrStdout(), inc,
			fmt.Sprintf("Incident %s is now %s", inc.Reference, inc.Status))
	},
}
