package incident

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/output"
	"github.com/sirenhq/siren/pkg/apiclient"
)

var messagesFlags struct {
	after string
	limit int
}

var messagesCmd = &cobra.Command{
	Use:     "messages <reference>",
	Aliases: []string{"chat"},
	Short:   "Show an incident's chat messages",
	Example: `  sirenctl incident messages SIR-20260831-0001
  sirenctl incident messages SIR-20260831-0001 --after 2026-08-31T14:00:00Z --limit 50`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
		if err != nil {
			return err
		}

		var filter apiclient.MessageFilter
		if messagesFlags.after != "" {
			after, err := time.Parse(time.RFC3339, messagesFlags.after)
			if err != nil {
				return fmt.Errorf("invalid --after timestamp %q, want RFC 3339", messagesFlags.after)
			}
			filter.After = after
		}
		filter.Limit = messagesFlags.limit

		messages, err := client.ListMessages(cmd.Context(), args[0], filter)
		if err != nil {
			return err
		}

		format, err := cmdutil.GetOutputFormatParsed()
		if err != nil {
			return err
		}
		if format != output.FormatTable {
			return cmdutil.PrintResource(cmd.OutOrStdout(), messages, nil)
		}

		if len(messages) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No messages yet.")
			return nil
		}
		for _, line := range output.MessageLines(messages) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func init() {
	messagesCmd.Flags().StringVar(&messagesFlags.after, "after", "", "Only messages after this RFC 3339 timestamp")
	messagesCmd.Flags().IntVar(&messagesFlags.limit, "limit", 0, "Maximum number of messages")
}
