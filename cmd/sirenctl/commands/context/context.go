// Package context implements credential context management commands.
package context

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for context management.
var Cmd = &cobra.Command{
	Use:     "context",
	Aliases: []string{"ctx"},
	Short:   "Manage stored server contexts",
	Long: `Manage stored server contexts.

A context holds the server URL and session for one Siren server.
Logging in to several servers creates a context per server; the current
context decides which server other commands talk to.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(useCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(currentCmd)
}
