package context

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/credentials"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := credentials.NewStore()
		if err != nil {
			return err
		}

		name := store.CurrentContextName()
		if name == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No current context. Run 'sirenctl login' first.")
			return nil
		}
		cctx, err := store.GetContext(name)
		if err != nil {
			return err
		}

		info := ContextInfo{
			Name:      name,
			ServerURL: cctx.ServerURL,
			Username:  cctx.Username,
			Role:      cctx.Role,
			Current:   true,
		}
		pairs := [][2]string{
			{"Name", name},
			{"Server", cctx.ServerURL},
			{"User", cctx.Username},
			{"Role", cctx.Role},
			{"Logged in", cmdutil.BoolToYesNo(cctx.AccessToken != "")},
		}
		return cmdutil.PrintDetail(cmd.OutOrStdout(), info, pairs)
	},
}
