package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/internal/cli/credentials"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session for the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := credentials.NewStore()
		if err != nil {
			return fmt.Errorf("opening credential store: %w", err)
		}

		name := store.CurrentContextName()
		if name == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
			return nil
		}

		if err := store.Logout(); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged out of context %q.\n", name)
		return nil
	},
}
