package unit

import (
	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/output"
	"github.com/sirenhq/siren/pkg/apiclient"
)

var listFlags struct {
	available bool
	category  string
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List response units",
	Example: `  sirenctl unit list
  sirenctl unit list --available --category fire`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		var units []apiclient.Unit
		if listFlags.available || listFlags.category != "" {
			units, err = client.ListAvailableUnits(cmd.Context(), listFlags.category)
		} else {
			units, err = client.ListUnits(cmd.Context())
		}
		if err != nil {
			return err
		}

		return cmdutil.PrintOutput(cmd.OutOrStdout(), units, len(units) == 0,
			"No units found.", output.UnitTable(units))
	},
}

func init() {
	listCmd.Flags().BoolVar(&listFlags.available, "available", false, "Only units available for dispatch")
	listCmd.Flags().StringVarP(&listFlags.category, "category", "c", "", "Filter available units by category")
}
