package incident

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
)

// liveEvent mirrors the realtime event frames pushed by the server.
type liveEvent struct {
	Type       string          `json:"type"`
	IncidentID string          `json:"incident_id"`
	At         time.Time       `json:"at"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

var watchCmd = &cobra.Command{
	Use:   "watch <reference>",
	Short: "Stream live updates for an incident",
	Long: `Stream live updates for an incident.

Connects to the incident's websocket feed and prints status changes and
chat messages as they happen. Press Ctrl+C to stop.`,
	Example: `  sirenctl incident watch SIR-20260831-0001`,
	Args:    cobra.ExactArgs(1),
	RunE:    runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
	if err != nil {
		return err
	}

	// Resolve the reference to an id first; the websocket route takes ids.
	inc, err := client.GetIncident(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	wsURL, err := websocketURL(client.BaseURL(), inc.ID)
	if err != nil {
		return err
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+client.Token())

	conn, resp, err := websocket.DefaultDialer.DialContext(cmd.Context(), wsURL, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("connecting to %s: %w (HTTP %d)", wsURL, err, resp.StatusCode)
		}
		return fmt.Errorf("connecting to %s: %w", wsURL, err)
	}
	defer conn.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", inc.Reference)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	done := make(chan error, 1)
	go func() {
		for {
			var event liveEvent
			if err := conn.ReadJSON(&event); err != nil {
				done <- err
				return
			}
			printLiveEvent(cmd, event)
		}
	}()

	select {
	case <-sigCh:
		deadline := time.Now().Add(time.Second)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		return nil
	case <-cmd.Context().Done():
		return nil
	case err := <-done:
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil
		}
		return fmt.Errorf("stream closed: %w", err)
	}
}

func websocketURL(baseURL, incidentID string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL %q: %w", baseURL, err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/v1/incidents/" + url.PathEscape(incidentID) + "/ws"
	return u.String(), nil
}

func printLiveEvent(cmd *cobra.Command, event liveEvent) {
	ts := event.At.Local().Format("15:04:05")

	switch event.Type {
	case "chat.message":
		var msg struct {
			SenderUsername string `json:"sender_username"`
			SenderRole     string `json:"sender_role"`
			Body           string `json:"body"`
		}
		if err := json.Unmarshal(event.Payload, &msg); err == nil && msg.Body != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s (%s): %s\n", ts, msg.SenderUsername, msg.SenderRole, msg.Body)
			return
		}
	case "incident.status", "incident.assigned", "incident.updated":
		var inc struct {
			Status       string `json:"status"`
			Priority     int    `json:"priority"`
			AssignedUnit *struct {
				CallSign string `json:"call_sign"`
			} `json:"assigned_unit"`
		}
		if err := json.Unmarshal(event.Payload, &inc); err == nil && inc.Status != "" {
			unit := "-"
			if inc.AssignedUnit != nil {
				unit = inc.AssignedUnit.CallSign
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: status=%s priority=P%d unit=%s\n",
				ts, event.Type, inc.Status, inc.Priority, unit)
			return
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", ts, event.Type)
}
