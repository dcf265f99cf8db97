package commands

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/credentials"
	"github.com/sirenhq/siren/internal/cli/prompt"
	"github.com/sirenhq/siren/pkg/apiclient"
)

var loginFlags struct {
	server   string
	username string
	password string
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against a Siren server",
	Long: `Authenticate against a Siren server and store the session.

Tokens are written to the sirenctl config file under a context named
after the server host. Subsequent commands use the stored session and
refresh it automatically when it expires.`,
	Example: `  sirenctl login --server https://siren.example.org
  sirenctl login --server http://localhost:8080 -u dispatcher1`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginFlags.server, "server", "", "Server URL to authenticate against")
	loginCmd.Flags().StringVarP(&loginFlags.username, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginFlags.password, "password", "p", "", "Password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	serverURL := loginFlags.server
	if serverURL == "" {
		serverURL = cmdutil.Flags.ServerURL
	}
	if serverURL == "" {
		var err error
		serverURL, err = prompt.Input("Server URL", "http://localhost:8080")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}
	serverURL = normalizeServerURL(serverURL)
	if _, err := url.Parse(serverURL); err != nil {
		return fmt.Errorf("invalid server URL %q: %w", serverURL, err)
	}

	username := loginFlags.username
	if username == "" {
		var err error
		username, err = prompt.InputRequired("Username")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	password := loginFlags.password
	if password == "" {
		var err error
		password, err = prompt.Password("Password")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	client := apiclient.New(serverURL)
	tokens, err := client.Login(cmd.Context(), username, password)
	if err != nil {
		if apiclient.IsAuthError(err) {
			return fmt.Errorf("login failed: invalid username or password")
		}
		return fmt.Errorf("login failed: %w", err)
	}

	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("opening credential store: %w", err)
	}

	contextName := credentials.ContextNameForURL(serverURL)
	if err := store.SetContext(contextName, &credentials.Context{
		ServerURL:    serverURL,
		Username:     tokens.User.Username,
		Role:         tokens.User.Role,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
	}); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	if err := store.UseContext(contextName); err != nil {
		return fmt.Errorf("selecting context: %w", err)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Logged in to %s as %s (%s)", serverURL, tokens.User.Username, tokens.User.Role))
	fmt.Fprintf(cmd.OutOrStdout(), "Context %q saved to %s\n", contextName, store.ConfigPath())
	if tokens.User.MustChangePassword {
		fmt.Fprintln(cmd.OutOrStdout(), "Your password must be changed. Run 'sirenctl user passwd' before continuing.")
	}
	return nil
}

func normalizeServerURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	return strings.TrimRight(raw, "/")
}
