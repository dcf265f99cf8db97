package commands

import (
	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		me, err := client.Me(cmd.Context())
		if err != nil {
			return err
		}

		pairs := [][2]string{
			{"Username", me.Username},
			{"Role", me.Role},
		}
		if me.DisplayName != "" {
			pairs = append(pairs, [2]string{"Display name", me.DisplayName})
		}
		if me.Email != "" {
			pairs = append(pairs, [2]string{"Email", me.Email})
		}
		if me.UnitID != nil {
			pairs = append(pairs, [2]string{"Unit", *me.UnitID})
		}
		pairs = append(pairs, [2]string{"Server", client.BaseURL()})

		return cmdutil.PrintDetail(cmd.OutOrStdout(), me, pairs)
	},
}
