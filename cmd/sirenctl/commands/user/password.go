package user

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/prompt"
)

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password <username>",
	Short: "Reset another user's password",
	Long: `Reset another user's password. Admin role required.

Staff accounts are forced to change the new password at their next
login.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		newPassword, err := prompt.NewPassword("New password", 8)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}

		if err := client.ResetUserPassword(cmd.Context(), args[0], newPassword); err != nil {
			return err
		}

		cmdutil.PrintSuccess(fmt.Sprintf("Password for %s reset", args[0]))
		return nil
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your own password",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		current, err := prompt.Password("Current password")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
		newPassword, err := prompt.NewPassword("New password", 8)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}

		if err := client.ChangeOwnPassword(cmd.Context(), current, newPassword); err != nil {
			return err
		}

		cmdutil.PrintSuccess("Password changed")
		return nil
	},
}
