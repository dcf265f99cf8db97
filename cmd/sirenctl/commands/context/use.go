package context

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/credentials"
)

var useCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Switch to a stored context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := credentials.NewStore()
		if err != nil {
			return err
		}

		name := args[0]
		if err := store.UseContext(name); err != nil {
			return fmt.Errorf("switching context: %w", err)
		}

		cmdutil.PrintSuccess(fmt.Sprintf("Switched to context %q", name))
		return nil
	},
}
