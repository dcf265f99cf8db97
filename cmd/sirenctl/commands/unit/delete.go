package unit

import (
	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:     "delete <call-sign>",
	Aliases: []string{"rm"},
	Short:   "Remove a response unit",
	Long: `Remove a response unit. Admin role required.

A unit assigned to an open incident cannot be removed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		return cmdutil.RunDeleteWithConfirmation("unit", args[0], deleteForce, func() error {
			return client.DeleteUnit(cmd.Context(), args[0])
		})
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}
