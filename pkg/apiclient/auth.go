package apiclient

import (
	"context"
	"time"
)

// User is a sanitized user as returned by the API.
type User struct {
	ID                 string  `json:"id"`
	Username           string  `json:"username"`
	DisplayName        string  `json:"display_name,omitempty"`
	Email              string  `json:"email,omitempty"`
	Phone              string  `json:"phone,omitempty"`
	Role               string  `json:"role"`
	UnitID             *string `json:"unit_id,omitempty"`
	Enabled            bool    `json:"enabled"`
	MustChangePassword bool    `json:"must_change_password"`
}

// TokenResponse is the token pair returned by login, register and refresh.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// RegisterRequest is the payload for citizen self-registration.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login authenticates with a username and password. On success the
// returned access token is installed on the client for later requests.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	resp, err := createResource[TokenResponse](ctx, c, resourcePath("auth", "login"), loginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.AccessToken)
	return resp, nil
}

// Refresh exchanges a refresh token for a fresh token pair. On success
// the new access token is installed on the client.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	resp, err := createResource[TokenResponse](ctx, c, resourcePath("auth", "refresh"), refreshRequest{
		RefreshToken: refreshToken,
	})
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.AccessToken)
	return resp, nil
}

// Register creates a new citizen account and logs it in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	resp, err := createResource[TokenResponse](ctx, c, resourcePath("auth", "register"), req)
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.AccessToken)
	return resp, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	return getResource[User](ctx, c, resourcePath("auth", "me"))
}
