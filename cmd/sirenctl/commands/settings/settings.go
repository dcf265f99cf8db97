// Package settings implements server setting commands.
package settings

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for server settings.
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage server settings",
	Long: `Manage server settings.

Settings are key-value pairs stored on the server, such as default
priorities per category. Admin role required.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(deleteCmd)
}
