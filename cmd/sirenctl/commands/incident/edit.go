package incident

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/output"
	"github.com/sirenhq/siren/pkg/apiclient"
)

var editFlags struct {
	title       string
	description string
	address     string
	latitude    string
	longitude   string
	priority    int
}

var editCmd = &cobra.Command{
	Use:   "edit <reference>",
	Short: "Edit incident details",
	Long: `Edit incident details.

Only the given flags are changed. Dispatcher role required; closed
incidents cannot be edited.`,
	Example: `  sirenctl incident edit SIR-20260831-0001 --priority 1
  sirenctl incident edit SIR-20260831-0001 --address "14 Elm St" --description "Fire spread to garage"`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editFlags.title, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editFlags.description, "description", "d", "", "New description")
	editCmd.Flags().StringVar(&editFlags.address, "address", "", "New address")
	editCmd.Flags().StringVar(&editFlags.latitude, "lat", "", "New latitude")
	editCmd.Flags().StringVar(&editFlags.longitude, "lon", "", "New longitude")
	editCmd.Flags().IntVarP(&editFlags.priority, "priority", "p", 0, "New priority 1-5")
}

func runEdit(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
	if err != nil {
		return err
	}

	var req apiclient.UpdateIncidentRequest
	if cmd.Flags().Changed("title") {
		req.Title = &editFlags.title
	}
	if cmd.Flags().Changed("description") {
		req.Description = &editFlags.description
	}
	if cmd.Flags().Changed("address") {
		req.Address = &editFlags.address
	}
	if cmd.Flags().Changed("lat") {
		lat, err := strconv.ParseFloat(editFlags.latitude, 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q", editFlags.latitude)
		}
		req.Latitude = &lat
	}
	if cmd.Flags().Changed("lon") {
		lon, err := strconv.ParseFloat(editFlags.longitude, 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q", editFlags.longitude)
		}
		req.Longitude = &lon
	}
	if cmd.Flags().Changed("priority") {
		req.Priority = &editFlags.priority
	}

	if req == (apiclient.UpdateIncidentRequest{}) {
		return fmt.Errorf("nothing to change: pass at least one of --title, --description, --address, --lat, --lon, --priority")
	}

	inc, err := client.UpdateIncident(cmd.Context(), args[0], req)
	if err != nil {
		return err
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Incident %s updated", inc.Reference))
	return cmdutil.PrintDetail(cmd.OutOrStdout(), inc, output.IncidentDetail(inc))
}
