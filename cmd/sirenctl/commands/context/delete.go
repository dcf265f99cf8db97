package context

import (
	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/credentials"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a stored context",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := credentials.NewStore()
		if err != nil {
			return err
		}

		name := args[0]
		return cmdutil.RunDeleteWithConfirmation("context", name, deleteForce, func() error {
			return store.DeleteContext(name)
		})
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}
