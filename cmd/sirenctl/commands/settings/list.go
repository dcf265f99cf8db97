package settings

import (
	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/output"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List server settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		settings, err := client.ListSettings(cmd.Context())
		if err != nil {
			return err
		}

		return cmdutil.PrintOutput(cmd.OutOrStdout(), settings, len(settings) == 0,
			"No settings stored.", output.SettingTable(settings))
	},
}
