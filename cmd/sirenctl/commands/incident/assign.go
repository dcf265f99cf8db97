package incident

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/pkg/apiclient"
)

var assignCmd = &cobra.Command{
	Use:   "assign <reference> <unit>",
	Short: "Assign a response unit to an incident",
	Long: `Assign a response unit to an incident.

The unit may be given by call sign (ENG-07) or by id. The unit must be
available unless --force is set. Dispatcher role required.`,
	Example: `  sirenctl incident assign SIR-20260831-0001 ENG-07
  sirenctl incident assign SIR-20260831-0001 ENG-07 --force`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		inc, err := client.AssignUnit(cmd.Context(), args[0], args[1], force)
		if err != nil {
			if apiclient.IsConflict(err) {
				return fmt.Errorf("unit %s cannot take this incident: %w", args[1], err)
			}
			return err
		}

		return cmdutil.PrintResourceWithSuccess(cmd.OutOrStdout(), inc,
			fmt.Sprintf("Unit %s dispatched to incident %s", args[1], inc.Reference))
	},
}

func init() {
	assignCmd.Flags().Bool("force", false, "Dispatch the unit even if it is not available")
}
