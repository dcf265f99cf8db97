package apiclient

import "context"

// CreateUserRequest is the payload for provisioning a user (admin only).
type CreateUserRequest struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	Role        string  `json:"role,omitempty"`
	UnitID      *string `json:"unit_id,omitempty"`
	DisplayName string  `json:"display_name,omitempty"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`
}

// UpdateUserRequest is the payload for editing a user. Nil fields are
// left unchanged.
type UpdateUserRequest struct {
	Role        *string `json:"role,omitempty"`
	UnitID      *string `json:"unit_id,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password"`
}

// CreateUser provisions a new user account (admin only).
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	return createResource[User](ctx, c, resourcePath("users"), req)
}

// ListUsers returns all user accounts (admin only).
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	return listResources[User](ctx, c, resourcePath("users"))
}

// GetUser returns a user by username. Non-admins can only fetch
// themselves.
func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	return getResource[User](ctx, c, resourcePath("users", username))
}

// UpdateUser edits a user account (admin only).
func (c *Client) UpdateUser(ctx context.Context, username string, req UpdateUserRequest) (*User, error) {
	return updateResource[User](ctx, c, resourcePath("users", username), req)
}

// DeleteUser removes a user account (admin only).
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	return c.delete(ctx, resourcePath("users", username))
}

// ResetUserPassword sets a new password for another user (admin only).
// Staff accounts are forced to change it at next login.
func (c *Client) ResetUserPassword(ctx context.Context, username, newPassword string) error {
	return c.post(ctx, resourcePath("users", username, "password"), changePasswordRequest{NewPassword: newPassword}, nil)
}

// ChangeOwnPassword changes the authenticated user's password after
// verifying the current one.
func (c *Client) ChangeOwnPassword(ctx context.Context, currentPassword, newPassword string) error {
	return c.post(ctx, resourcePath("users", "me", "password"), changePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}, nil)
}
