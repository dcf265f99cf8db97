package unit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/prompt"
	"github.com/sirenhq/siren/pkg/apiclient"
)

var statusCmd = &cobra.Command{
	Use:   "status <call-sign> [status]",
	Short: "Set a unit's operational status",
	Long: `Set a unit's operational status.

Valid statuses are available, dispatched, on_scene, and out_of_service.
A unit assigned to an open incident cannot be taken out of service.
When the status argument is omitted it is prompted for.`,
	Example: `  sirenctl unit status ENG-07 out_of_service
  sirenctl unit status ENG-07 available`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		status := ""
		if len(args) == 2 {
			status = args[1]
		} else {
			status, err = prompt.SelectUnitStatus()
			if err != nil {
				return cmdutil.HandleAbort(err)
			}
		}

		unit, err := client.UpdateUnitStatus(cmd.Context(), args[0], status)
		if err != nil {
			if apiclient.IsConflict(err) {
				return fmt.Errorf("unit %s cannot move to %s: %w", args[0], status, err)
			}
			return err
		}

		return cmdutil.PrintResourceWithSuccess(cmd.OutOrStdout(), unit,
			fmt.Sprintf("Unit %s is now %s", unit.CallSign, unit.Status))
	},
}
