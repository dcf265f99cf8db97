package context

import (
	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/credentials"
	"github.com/sirenhq/siren/internal/cli/output"
)

// ContextInfo is the list representation of a stored context.
type ContextInfo struct {
	Name      string `json:"name"`
	ServerURL string `json:"server_url"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Current   bool   `json:"current"`
}

// ContextList renders contexts as a table.
type ContextList []ContextInfo

func (l ContextList) Headers() []string {
	return []string{"", "NAME", "SERVER", "USER", "ROLE"}
}

func (l ContextList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, c := range l {
		marker := ""
		if c.Current {
			marker = "*"
		}
		rows = append(rows, []string{marker, c.Name, c.ServerURL, c.Username, c.Role})
	}
	return rows
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := credentials.NewStore()
		if err != nil {
			return err
		}

		current := store.CurrentContextName()
		names := store.ListContexts()

		list := make(ContextList, 0, len(names))
		for _, name := range names {
			cctx, err := store.GetContext(name)
			if err != nil {
				continue
			}
			list = append(list, ContextInfo{
				Name:      name,
				ServerURL: cctx.ServerURL,
				Username:  cctx.Username,
				Role:      cctx.Role,
				Current:   name == current,
			})
		}

		return cmdutil.PrintOutput(cmd.OutOrStdout(), list, len(list) == 0,
			"No contexts stored. Run 'sirenctl login' to create one.", output.TableRenderer(list))
	},
}
