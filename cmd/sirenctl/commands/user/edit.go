package user

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/pkg/apiclient"
)

var editFlags struct {
	role        string
	unitID      string
	displayName string
	email       string
	phone       string
	enabled     bool
}

var editCmd = &cobra.Command{
	Use:   "edit <username>",
	Short: "Edit a user account",
	Long: `Edit a user account. Admin role required.

Only the given flags are changed. Pass --unit "" to detach a responder
from its unit. Disabled accounts cannot log in and their sessions stop
refreshing.`,
	Example: `  sirenctl user edit eng07crew --unit ENG-12
  sirenctl user edit exdispatcher --enabled=false`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editFlags.role, "role", "r", "", "New role")
	editCmd.Flags().StringVar(&editFlags.unitID, "unit", "", "Unit id or call sign (empty to detach)")
	editCmd.Flags().StringVar(&editFlags.displayName, "display-name", "", "New display name")
	editCmd.Flags().StringVar(&editFlags.email, "email", "", "New email address")
	editCmd.Flags().StringVar(&editFlags.phone, "phone", "", "New phone number")
	editCmd.Flags().BoolVar(&editFlags.enabled, "enabled", true, "Whether the account can log in")
}

func runEdit(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
	if err != nil {
		return err
	}

	var req apiclient.UpdateUserRequest
	if cmd.Flags().Changed("role") {
		req.Role = &editFlags.role
	}
	if cmd.Flags().Changed("unit") {
		unitID := editFlags.unitID
		if unitID != "" {
			unitID, err = resolveUnitID(cmd, client, unitID)
			if err != nil {
				return err
			}
		}
		req.UnitID = &unitID
	}
	if cmd.Flags().Changed("display-name") {
		req.DisplayName = &editFlags.displayName
	}
	if cmd.Flags().Changed("email") {
		req.Email = &editFlags.email
	}
	if cmd.Flags().Changed("phone") {
		req.Phone = &editFlags.phone
	}
	if cmd.Flags().Changed("enabled") {
		req.Enabled = &editFlags.enabled
	}

	if req == (apiclient.UpdateUserRequest{}) {
		return fmt.Errorf("nothing to change: pass at least one of --role, --unit, --display-name, --email, --phone, --enabled")
	}

	user, err := client.UpdateUser(cmd.Context(), args[0], req)
	if err != nil {
		return err
	}

	return cmdutil.PrintResourceWithSuccess(cmd.OutOrStdout(), user,
		fmt.Sprintf("User %s updated", user.Username))
}
