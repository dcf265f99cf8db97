// Package auth provides JWT authentication for the Siren API.
package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/sirenhq/siren/pkg/models"
)

// TokenType indicates whether a token is an access token or refresh token.
type TokenType string

const (
	// TokenTypeAccess is a short-lived token used for API authorization.
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh is a long-lived token used to obtain new access tokens.
	TokenTypeRefresh TokenType = "refresh"
)

// Claims represents JWT claims for Siren authentication.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the unique identifier (UUID) for the user.
	UserID string `json:"uid"`

	// Username is the human-readable username.
	Username string `json:"username"`

	// Role is the user's role (citizen, dispatcher, responder, admin).
	Role string `json:"role"`

	// UnitID is the unit a responder is attached to, if any.
	UnitID string `json:"unit_id,omitempty"`

	// TokenType indicates whether this is an access or refresh token.
	TokenType TokenType `json:"token_type"`

	// MustChangePassword indicates the user must change their password.
	// When true, most API operations are blocked until password is changed.
	MustChangePassword bool `json:"must_change_password,omitempty"`
}

// IsAccessToken returns true if this is an access token.
func (c *Claims) IsAccessToken() bool {
	return c.TokenType == TokenTypeAccess
}

// IsRefreshToken returns true if this is a refresh token.
func (c *Claims) IsRefreshToken() bool {
	return c.TokenType == TokenTypeRefresh
}

// IsAdmin returns true if the user has admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == string(models.RoleAdmin)
}

// IsStaff returns true for dispatch-side roles (dispatcher, responder, admin).
func (c *Claims) IsStaff() bool {
	return models.UserRole(c.Role).IsStaff()
}

// GetRole returns the claims role as a typed UserRole.
func (c *Claims) GetRole() models.UserRole {
	return models.UserRole(c.Role)
}
