package unit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/pkg/apiclient"
)

var editFlags struct {
	category string
	station  string
}

var editCmd = &cobra.Command{
	Use:   "edit <call-sign>",
	Short: "Edit a unit's category or station",
	Long:  "Edit a unit's category or station. Admin role required.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		var req apiclient.UpdateUnitRequest
		if cmd.Flags().Changed("category") {
			req.Category = &editFlags.category
		}
		if cmd.Flags().Changed("station") {
			req.Station = &editFlags.station
		}
		if req.Category == nil && req.Station == nil {
			return fmt.Errorf("nothing to change: pass --category or --station")
		}

		unit, err := client.UpdateUnit(cmd.Context(), args[0], req)
		if err != nil {
			return err
		}

		return cmdutil.PrintResourceWithSuccess(cmd.OutOrStdout(), unit,
			fmt.Sprintf("Unit %s updated", unit.CallSign))
	},
}

func init() {
	editCmd.Flags().StringVarP(&editFlags.category, "category", "c", "", "New category")
	editCmd.Flags().StringVar(&editFlags.station, "station", "", "New home station")
}
