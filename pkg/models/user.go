package models

import (
	"fmt"
	"time"
)

// UserRole represents the role of a user in the system.
type UserRole string

const (
	// RoleCitizen is a member of the public who can report incidents and
	// chat on their own reports.
	RoleCitizen UserRole = "citizen"
	// RoleDispatcher triages incoming incidents, assigns units and drives
	// the incident lifecycle.
	RoleDispatcher UserRole = "dispatcher"
	// RoleResponder is a field operator attached to a unit.
	RoleResponder UserRole = "responder"
	// RoleAdmin is an administrator with full permissions.
	RoleAdmin UserRole = "admin"
)

// IsValid checks if the role is a valid UserRole.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleCitizen, RoleDispatcher, RoleResponder, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role belongs to dispatch-side personnel.
func (r UserRole) IsStaff() bool {
	return r == RoleDispatcher || r == RoleResponder || r == RoleAdmin
}

// User represents a Siren account for authentication and authorization.
//
// Citizens self-register and only ever see their own incidents. Dispatchers,
// responders and admins are provisioned by an admin. Responders may be
// attached to a unit, which routes unit assignments to them.
type User struct {
	ID                 string     `gorm:"primaryKey;size:36" json:"id"`
	Username           string     `gorm:"uniqueIndex;not null;size:255" json:"username"`
	PasswordHash       string     `gorm:"not null" json:"-"`
	Enabled            bool       `gorm:"default:true" json:"enabled"`
	MustChangePassword bool       `gorm:"default:false" json:"must_change_password"`
	Role               string     `gorm:"default:citizen;size:50" json:"role"` // citizen, dispatcher, responder, admin
	UnitID             *string    `gorm:"size:36;index" json:"unit_id,omitempty"`
	DisplayName        string     `gorm:"size:255" json:"display_name,omitempty"`
	Email              string     `gorm:"size:255" json:"email,omitempty"`
	Phone              string     `gorm:"size:50" json:"phone,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	LastLogin          *time.Time `json:"last_login,omitempty"`
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}

// GetDisplayName returns the display name, or username if display name is not set.
func (u *User) GetDisplayName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// Validate checks if the user has valid configuration.
func (u *User) Validate() error {
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}
	if u.Role != "" && !UserRole(u.Role).IsValid() {
		return fmt.Errorf("invalid role %q", u.Role)
	}
	return nil
}

// IsAdmin checks if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == string(RoleAdmin)
}

// GetRole returns the user's role as a UserRole type.
func (u *User) GetRole() UserRole {
	return UserRole(u.Role)
}
