package settings

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
)

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Create or update a setting",
	Example: `  sirenctl settings set default_priority.fire 2
  sirenctl settings set dispatch.auto_close_after 72h`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		setting, err := client.SetSetting(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		return cmdutil.PrintResourceWithSuccess(cmd.OutOrStdout(), setting,
			fmt.Sprintf("Setting %s = %s", setting.Key, setting.Value))
	},
}
