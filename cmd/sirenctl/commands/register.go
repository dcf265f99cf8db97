package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/credentials"
	"github.com/sirenhq/siren/internal/cli/prompt"
	"github.com/sirenhq/siren/pkg/apiclient"
)

var registerFlags struct {
	server      string
	username    string
	displayName string
	email       string
	phone       string
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a citizen account on a Siren server",
	Long: `Create a citizen account on a Siren server.

Self-registration always produces a citizen account. Dispatcher,
responder, and admin accounts are created by an admin with
'sirenctl user create'. On success the new session is stored, so no
separate login is needed.`,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerFlags.server, "server", "", "Server URL to register against")
	registerCmd.Flags().StringVarP(&registerFlags.username, "username", "u", "", "Username")
	registerCmd.Flags().StringVar(&registerFlags.displayName, "display-name", "", "Display name")
	registerCmd.Flags().StringVar(&registerFlags.email, "email", "", "Email address")
	registerCmd.Flags().StringVar(&registerFlags.phone, "phone", "", "Phone number")
}

func runRegister(cmd *cobra.Command, args []string) error {
	serverURL := registerFlags.server
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

	username := registerFlags.username
	if username == "" {
		var err error
		username, err = prompt.InputRequired("Username")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	password, err := prompt.NewPassword("Password", 8)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}

	client := apiclient.New(serverURL)
	tokens, err := client.Register(cmd.Context(), apiclient.RegisterRequest{
		Username:    username,
		Password:    password,
		DisplayName: registerFlags.displayName,
		Email:       registerFlags.email,
		Phone:       registerFlags.phone,
	})
	if err != nil {
		if apiclient.IsConflict(err) {
			return fmt.Errorf("username %q is already taken", username)
		}
		return fmt.Errorf("registration failed: %w", err)
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

	cmdutil.PrintSuccess(fmt.Sprintf("Account %q created on %s", tokens.User.Username, serverURL))
	return nil
}
