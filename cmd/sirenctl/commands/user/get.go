package user

import (
	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
)

var getCmd = &cobra.Command{
	Use:     "get <username>",
	Aliases: []string{"show"},
	Short:   "Show user details",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		user, err := client.GetUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		pairs := [][2]string{
			{"Username", user.Username},
			{"Role", user.Role},
			{"Enabled", cmdutil.BoolToYesNo(user.Enabled)},
			{"Display name", cmdutil.EmptyOr(user.DisplayName, "-")},
			{"Email", cmdutil.EmptyOr(user.Email, "-")},
			{"Phone", cmdutil.EmptyOr(user.Phone, "-")},
		}
		if user.UnitID != nil {
			pairs = append(pairs, [2]string{"Unit", *user.UnitID})
		}
		if user.MustChangePassword {
			pairs = append(pairs, [2]string{"Password", "must be changed at next login"})
		}
		return cmdutil.PrintDetail(cmd.OutOrStdout(), user, pairs)
	},
}
