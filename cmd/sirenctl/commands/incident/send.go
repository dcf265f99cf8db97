package incident

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/prompt"
)

var sendCmd = &cobra.Command{
	Use:   "send <reference> [message...]",
	Short: "Post a chat message on an incident",
	Long: `Post a chat message on an incident.

The message is everything after the reference; when omitted it is
prompted for. Only the reporter and staff can post on an incident.`,
	Example: `  sirenctl incident send SIR-20260831-0001 "Engine 7 is two minutes out"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		body := strings.TrimSpace(strings.Join(args[1:], " "))
		if body == "" {
			body, err = prompt.InputRequired("Message")
			if err != nil {
				return cmdutil.HandleAbort(err)
			}
		}

		msg, err := client.SendMessage(cmd.Context(), args[0], body)
		if err != nil {
			return err
		}

		return cmdutil.PrintResourceWithSuccess(cmd.OutOrStdout(), msg,
			fmt.Sprintf("Message posted to %s", args[0]))
	},
}
