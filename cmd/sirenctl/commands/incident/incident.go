// Package incident implements incident reporting and dispatch commands.
package incident

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for incident operations.
var Cmd = &cobra.Command{
	Use:     "incident",
	Aliases: []string{"inc"},
	Short:   "Report and manage incidents",
	Long: `Report and manage incidents.

Citizens report incidents and follow their own reports. Dispatchers
acknowledge reports, assign response units, and drive incidents through
their lifecycle. Incidents are addressed by reference (SIR-20260831-0001)
or by id.`,
}

func init() {
	Cmd.AddCommand(reportCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(editCmd)
	Cmd.AddCommand(ackCmd)
	Cmd.AddCommand(assignCmd)
	Cmd.AddCommand(statusCmd)
	Cmd.AddCommand(eventsCmd)
	Cmd.AddCommand(messagesCmd)
	Cmd.AddCommand(sendCmd)
	Cmd.AddCommand(watchCmd)
}
