package incident

import (
	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/output"
	"github.com/sirenhq/siren/pkg/apiclient"
)

var listFlags struct {
	status      string
	category    string
	unit        string
	open        bool
	minPriority int
	limit       int
	offset      int
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List incidents",
	Long: `List incidents.

Citizens see their own reports; dispatchers and responders see all
incidents. Results are newest first.`,
	Example: `  sirenctl incident list --open
  sirenctl incident list --status dispatched --category fire
  sirenctl incident list --min-priority 2 --limit 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		incidents, err := client.ListIncidents(cmd.Context(), apiclient.IncidentFilter{
			Status:       listFlags.status,
			Category:     listFlags.category,
			AssignedUnit: listFlags.unit,
			OpenOnly:     listFlags.open,
			MinPriority:  listFlags.minPriority,
			Limit:        listFlags.limit,
			Offset:       listFlags.offset,
		})
		if err != nil {
			return err
		}

		return cmdutil.PrintOutput(cmd.OutOrStdout(), incidents, len(incidents) == 0,
			"No incidents found.", output.IncidentTable(incidents))
	},
}

func init() {
	listCmd.Flags().StringVar(&listFlags.status, "status", "", "Filter by status")
	listCmd.Flags().StringVarP(&listFlags.category, "category", "c", "", "Filter by category")
	listCmd.Flags().StringVar(&listFlags.unit, "unit", "", "Filter by assigned unit call sign")
	listCmd.Flags().BoolVar(&listFlags.open, "open", false, "Only incidents that are not resolved, closed, or cancelled")
	listCmd.Flags().IntVar(&listFlags.minPriority, "min-priority", 0, "Only incidents at this priority or more urgent")
	listCmd.Flags().IntVar(&listFlags.limit, "limit", 0, "Maximum number of results")
	listCmd.Flags().IntVar(&listFlags.offset, "offset", 0, "Skip this many results")
}
