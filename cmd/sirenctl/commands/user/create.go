package user

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirenhq/siren/cmd/sirenctl/cmdutil"
	"github.com/sirenhq/siren/internal/cli/prompt"
	"github.com/sirenhq/siren/pkg/apiclient"
)

var createFlags struct {
	username    string
	password    string
	role        string
	unitID      string
	displayName string
	email       string
	phone       string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	Long: `Create a user account. Admin role required.

When --username is omitted the command prompts interactively. Responder
accounts can be tied to a unit with --unit; such accounts only see
incidents assigned to that unit.`,
	Example: `  sirenctl user create --username dispatcher1 --role dispatcher
  sirenctl user create --username eng07crew --role responder --unit ENG-07
  sirenctl user create`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createFlags.username, "username", "u", "", "Username")
	createCmd.Flags().StringVarP(&createFlags.password, "password", "p", "", "Initial password (prompted when omitted)")
	createCmd.Flags().StringVarP(&createFlags.role, "role", "r", "", "Role (citizen|dispatcher|responder|admin)")
	createCmd.Flags().StringVar(&createFlags.unitID, "unit", "", "Unit id or call sign for responder accounts")
	createCmd.Flags().StringVar(&createFlags.displayName, "display-name", "", "Display name")
	createCmd.Flags().StringVar(&createFlags.email, "email", "", "Email address")
	createCmd.Flags().StringVar(&createFlags.phone, "phone", "", "Phone number")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient(cmd.Context())
	if err != nil {
		return err
	}

	interactive := !cmd.Flags().Changed("username")

	req := apiclient.CreateUserRequest{
		Username:    createFlags.username,
		Password:    createFlags.password,
		Role:        createFlags.role,
		DisplayName: createFlags.displayName,
		Email:       createFlags.email,
		Phone:       createFlags.phone,
	}
	if createFlags.unitID != "" {
		req.UnitID = &createFlags.unitID
	}

	if interactive {
		req.Username, err = prompt.InputRequired("Username")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
		req.Role, err = prompt.SelectString("Role", []string{"citizen", "dispatcher", "responder", "admin"})
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
		if req.Role == "responder" {
			unitRef, err := prompt.InputOptional("Unit call sign")
			if err != nil {
				return cmdutil.HandleAbort(err)
			}
			if unitRef != "" {
				req.UnitID = &unitRef
			}
		}
	}

	if req.Role == "" {
		return fmt.Errorf("--role is required (citizen|dispatcher|responder|admin)")
	}
	if req.Password == "" {
		req.Password, err = prompt.NewPassword("Initial password", 8)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	if req.UnitID != nil {
		unitID, err := resolveUnitID(cmd, client, *req.UnitID)
		if err != nil {
			return err
		}
		req.UnitID = &unitID
	}

	user, err := client.CreateUser(cmd.Context(), req)
	if err != nil {
		if apiclient.IsConflict(err) {
			return fmt.Errorf("username %q is already taken", req.Username)
		}
		return err
	}

	return cmdutil.PrintResourceWithSuccess(cmd.OutOrStdout(), user,
		fmt.Sprintf("User %s created with role %s", user.Username, user.Role))
}

// resolveUnitID maps a unit call sign to its id. Values that do not
// resolve are passed through so ids keep working.
func resolveUnitID(cmd *cobra.Command, client *apiclient.Client, unitRef string) (string, error) {
	unit, err := client.GetUnit(cmd.Context(), unitRef)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return unitRef, nil
		}
		return "", err
	}
	return unit.ID, nil
}
