package user

import (
	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/output"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		users, err := client.ListUsers(cmd.Context())
		if err != nil {
			return err
		}

		return cmdutil.PrintOutput(cmd.OutOrStdout(), users, len(users) == 0,
			"No users found.", output.UserTable(users))
	},
}
