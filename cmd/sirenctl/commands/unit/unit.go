// Package unit implements response unit management commands.
package unit

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for unit management.
var Cmd = &cobra.Command{
	Use:   "unit",
	Short: "Manage response units",
	Long: `Manage response units.

Units are dispatchable resources like patrol cars, fire engines, and
ambulances. Units are addressed by call sign. Listing and status updates
need staff role; create, edit, and delete need admin role.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(editCmd)
	Cmd.AddCommand(statusCmd)
	Cmd.AddCommand(deleteCmd)
}
