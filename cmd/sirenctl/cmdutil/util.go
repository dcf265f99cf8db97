// Package cmdutil provides shared utilities for sirenctl commands.
package cmdutil

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirenhq/siren/internal/cli/credentials"
	"github.com/sirenhq/siren/internal/cli/output"
	"github.com/sirenhq/siren/internal/cli/prompt"
	"github.com/sirenhq/siren/pkg/apiclient"
)

// Flags stores global flag values accessible by subcommands.
var Flags = &GlobalFlags{}

// GlobalFlags holds the global flag values.
type GlobalFlags struct {
	ServerURL string
	Token     string
	Output    string
	NoColor   bool
}

// GetAuthenticatedClient returns an API client configured from the
// current context. Explicit --server and --token flags win over stored
// credentials. An expired access token is refreshed transparently when
// a refresh token is available.
func GetAuthenticatedClient(ctx context.Context) (*apiclient.Client, error) {
	if Flags.ServerURL != "" && Flags.Token != "" {
		return apiclient.New(Flags.ServerURL, apiclient.WithToken(Flags.Token)), nil
	}

	store, err := credentials.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}

	cctx, err := store.CurrentContext()
	if err != nil {
		return nil, fmt.Errorf("not logged in. Run 'sirenctl login' first")
	}

	url := cctx.ServerURL
	if Flags.ServerURL != "" {
		url = Flags.ServerURL
	}
	if url == "" {
		return nil, fmt.Errorf("no server URL configured. Run 'sirenctl login --server <url>' first")
	}

	token := cctx.AccessToken
	if Flags.Token != "" {
		token = Flags.Token
	}

	if Flags.Token == "" && cctx.IsExpired() && cctx.HasRefreshToken() {
		client := apiclient.New(url)
		tokens, err := client.Refresh(ctx, cctx.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("session expired. Run 'sirenctl login' to re-authenticate")
		}
		if err := store.UpdateTokens(tokens.AccessToken, tokens.RefreshToken, tokens.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to save refreshed tokens: %w", err)
		}
		token = tokens.AccessToken
	}

	if token == "" {
		return nil, fmt.Errorf("no access token. Run 'sirenctl login' first")
	}

	return apiclient.New(url, apiclient.WithToken(token)), nil
}

// GetOutputFormatParsed returns the parsed --output format.
func GetOutputFormatParsed() (output.Format, error) {
	return output.ParseFormat(Flags.Output)
}

// IsColorDisabled reports whether --no-color was set.
func IsColorDisabled() bool {
	return Flags.NoColor
}

// PrintOutput prints data in the selected format. Table output shows
// emptyMsg when the result set is empty.
func PrintOutput(w io.Writer, data any, isEmpty bool, emptyMsg string, tableRenderer output.TableRenderer) error {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(w, data)
	case output.FormatYAML:
		return output.PrintYAML(w, data)
	default:
		if isEmpty {
			_, _ = fmt.Fprintln(w, emptyMsg)
			return nil
		}
		return output.PrintTable(w, tableRenderer)
	}
}

// PrintResource prints a single resource; table output uses the given
// renderer.
func PrintResource(w io.Writer, data any, tableRenderer output.TableRenderer) error {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(w, data)
	case output.FormatYAML:
		return output.PrintYAML(w, data)
	default:
		return output.PrintTable(w, tableRenderer)
	}
}

// PrintDetail prints a resource as a key-value detail view in table
// format, falling back to structured output otherwise.
func PrintDetail(w io.Writer, data any, pairs [][2]string) error {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(w, data)
	case output.FormatYAML:
		return output.PrintYAML(w, data)
	default:
		return output.SimpleTable(w, pairs)
	}
}

// PrintResourceWithSuccess prints a success line in table format, or
// the full resource for JSON/YAML.
func PrintResourceWithSuccess(w io.Writer, data any, successMsg string) error {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(w, data)
	case output.FormatYAML:
		return output.PrintYAML(w, data)
	default:
		PrintSuccess(successMsg)
		return nil
	}
}

// PrintSuccess prints a success message in table format only.
func PrintSuccess(msg string) {
	format, err := GetOutputFormatParsed()
	if err != nil || format != output.FormatTable {
		return
	}
	printer := output.NewPrinter(os.Stdout, format, !IsColorDisabled())
	printer.Success(msg)
}

// RunDeleteWithConfirmation prompts for confirmation (unless force is
// set) and runs deleteFn.
func RunDeleteWithConfirmation(resourceType, name string, force bool, deleteFn func() error) error {
	confirmed, err := prompt.ConfirmWithForce(fmt.Sprintf("Delete %s '%s'?", resourceType, name), force)
	if err != nil {
		return HandleAbort(err)
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	if err := deleteFn(); err != nil {
		return err
	}

	PrintSuccess(fmt.Sprintf("%s '%s' deleted successfully", resourceType, name))
	return nil
}

// HandleAbort maps a Ctrl+C abort to a clean exit, passing other errors
// through.
func HandleAbort(err error) error {
	if prompt.IsAborted(err) {
		fmt.Println("\nAborted.")
		return nil
	}
	return err
}

// BoolToYesNo converts a boolean to "yes" or "no".
func BoolToYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// EmptyOr returns value, or fallback when value is empty.
func EmptyOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
