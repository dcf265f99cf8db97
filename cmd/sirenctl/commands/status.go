package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/credentials"
	"github.com/sirenhq/siren/internal/cli/health"
	"github.com/sirenhq/siren/internal/cli/timeutil"
)

// ServerStatus summarizes a health probe against a Siren server.
type ServerStatus struct {
	Server    string `json:"server"`
	Reachable bool   `json:"reachable"`
	Status    string `json:"status,omitempty"`
	Service   string `json:"service,omitempty"`
	StartedAt string `json:"started_at,omitempty"`
	Uptime    string `json:"uptime,omitempty"`
	Error     string `json:"error,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check server health and uptime",
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL := cmdutil.Flags.ServerURL
		if serverURL == "" {
			store, err := credentials.NewStore()
			if err != nil {
				return err
			}
			cctx, err := store.CurrentContext()
			if err != nil {
				return fmt.Errorf("no server configured. Use --server or run 'sirenctl login' first")
			}
			serverURL = cctx.ServerURL
		}

		status := probeHealth(serverURL)

		pairs := [][2]string{
			{"Server", status.Server},
			{"Reachable", cmdutil.BoolToYesNo(status.Reachable)},
		}
		if status.Reachable {
			pairs = append(pairs,
				[2]string{"Status", status.Status},
				[2]string{"Service", status.Service},
				[2]string{"Started", timeutil.FormatTime(status.StartedAt)},
				[2]string{"Uptime", timeutil.FormatUptime(status.Uptime)},
			)
		}
		if status.Error != "" {
			pairs = append(pairs, [2]string{"Error", status.Error})
		}

		return cmdutil.PrintDetail(cmd.OutOrStdout(), status, pairs)
	},
}

func probeHealth(serverURL string) *ServerStatus {
	status := &ServerStatus{Server: serverURL}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(serverURL + "/health")
	if err != nil {
		status.Error = err.Error()
		return status
	}
	defer resp.Body.Close()

	var body health.Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		status.Error = fmt.Sprintf("unexpected health response: %v", err)
		return status
	}

	status.Reachable = true
	status.Status = body.Status
	status.Service = body.Data.Service
	status.StartedAt = body.Data.StartedAt
	status.Uptime = body.Data.Uptime
	if body.Error != "" {
		status.Error = body.Error
	}
	return status
}
