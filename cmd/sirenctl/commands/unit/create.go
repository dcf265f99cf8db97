package unit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/prompt"
	"github.com/sirenhq/siren/pkg/apiclient"
)

var createFlags struct {
	callSign string
	category string
	station  string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new response unit",
	Long: `Register a new response unit. Admin role required.

When --call-sign is omitted the command prompts interactively.`,
	Example: `  sirenctl unit create --call-sign ENG-07 --category fire --station "Station 7"
  sirenctl unit create`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createFlags.callSign, "call-sign", "", "Unit call sign, e.g. ENG-07")
	createCmd.Flags().StringVarP(&createFlags.category, "category", "c", "", "Unit category (police|fire|medical|disaster)")
	createCmd.Flags().StringVar(&createFlags.station, "station", "", "Home station")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
	if err != nil {
		return err
	}

	req := apiclient.CreateUnitRequest{
		CallSign: createFlags.callSign,
		Category: createFlags.category,
		Station:  createFlags.station,
	}

	if !cmd.Flags().Changed("call-sign") {
		req.CallSign, err = prompt.InputRequired("Call sign")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
		req.Category, err = prompt.SelectCategory()
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
		req.Station, err = prompt.InputOptional("Station")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	if req.Category == "" {
		return fmt.Errorf("--category is required (police|fire|medical|disaster)")
	}

	unit, err := client.CreateUnit(cmd.Context(), req)
	if err != nil {
		if apiclient.IsConflict(err) {
			return fmt.Errorf("call sign %q is already registered", req.CallSign)
		}
		return err
	}

	return cmdutil.PrintResourceWithSuccess(cmd.OutOrStdout(), unit,
		fmt.Sprintf("Unit %s registered (%s)", unit.CallSign, unit.Category))
}
