// Package store provides the persistence layer for incidents, units, users,
// chat messages and settings.
//
// Two backends are supported:
//   - SQLite (single-node, default)
//   - PostgreSQL (HA-capable)
package store

import (
	"context"
	"time"

	"github.com/sirenhq/siren/pkg/models"
)

// IncidentFilter narrows ListIncidents results. Zero values mean "no
// constraint" for that field.
type IncidentFilter struct {
	// Status restricts to one lifecycle status.
	Status models.IncidentStatus
	// Category restricts to one incident category.
	Category models.IncidentCategory
	// ReporterID restricts to incidents filed by one user. Citizens are
	// always filtered to their own reports.
	ReporterID string
	// AssignedUnitID restricts to incidents assigned to one unit.
	AssignedUnitID string
	// OpenOnly excludes closed and cancelled incidents.
	OpenOnly bool
	// MinPriority keeps incidents at this priority or more urgent
	// (numerically lower or equal).
	MinPriority int
	// Limit caps the number of results; 0 means no cap.
	Limit int
	// Offset skips the first N results for pagination.
	Offset int
}

// MessageFilter narrows ListMessages results.
type MessageFilter struct {
	// After keeps messages created strictly after this time.
	After time.Time
	// Limit caps the number of results; 0 means no cap.
	Limit int
}

// Store provides the persistence interface for the dispatch domain.
//
// Thread Safety: Implementations must be safe for concurrent use from
// multiple goroutines.
type Store interface {
	// ============================================
	// USER OPERATIONS
	// ============================================

	// GetUser returns a user by username.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	GetUser(ctx context.Context, username string) (*models.User, error)

	// GetUserByID returns a user by their unique ID (UUID).
	// Returns models.ErrUserNotFound if no user has this ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// ListUsers returns all users.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// ListUsersByUnit returns all responders attached to a unit.
	ListUsersByUnit(ctx context.Context, unitID string) ([]*models.User, error)

	// CreateUser creates a new user.
	// The user ID will be generated if empty.
	// Returns the generated ID.
	// Returns models.ErrDuplicateUser if a user with the same username exists.
	CreateUser(ctx context.Context, user *models.User) (string, error)

	// UpdateUser updates an existing user.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser deletes a user by username.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	DeleteUser(ctx context.Context, username string) error

	// UpdatePassword updates a user's password hash.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	UpdatePassword(ctx context.Context, username, passwordHash string) error

	// UpdateLastLogin updates the user's last login timestamp.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	UpdateLastLogin(ctx context.Context, username string, timestamp time.Time) error

	// ValidateCredentials verifies username/password credentials.
	// Returns the user if credentials are valid.
	// Returns models.ErrInvalidCredentials if the credentials are invalid.
	// Returns models.ErrUserDisabled if the user account is disabled.
	ValidateCredentials(ctx context.Context, username, password string) (*models.User, error)

	// EnsureAdminUser creates the initial admin account if missing.
	// Returns the generated plaintext password when a new account was
	// created, or empty string if the admin already existed.
	EnsureAdminUser(ctx context.Context) (string, error)

	// ============================================
	// INCIDENT OPERATIONS
	// ============================================

	// CreateIncident files a new incident, allocating its day-scoped
	// reference number, and records the initial audit event.
	// Returns the incident ID.
	CreateIncident(ctx context.Context, incident *models.Incident) (string, error)

	// GetIncident returns an incident by ID, with reporter and assigned
	// unit preloaded.
	// Returns models.ErrIncidentNotFound if the incident doesn't exist.
	GetIncident(ctx context.Context, id string) (*models.Incident, error)

	// GetIncidentByReference returns an incident by its reference number.
	// Returns models.ErrIncidentNotFound if no incident has this reference.
	GetIncidentByReference(ctx context.Context, reference string) (*models.Incident, error)

	// ListIncidents returns incidents matching the filter, most recently
	// reported first.
	ListIncidents(ctx context.Context, filter IncidentFilter) ([]*models.Incident, error)

	// UpdateIncident updates an incident's editable fields (title,
	// description, address, coordinates, priority).
	// Returns models.ErrIncidentNotFound if the incident doesn't exist.
	UpdateIncident(ctx context.Context, incident *models.Incident, actorID string) error

	// TransitionIncident moves an incident to the next lifecycle status
	// and records an audit event. Resolving or cancelling releases the
	// assigned unit back to available.
	// Returns models.ErrIncidentNotFound if the incident doesn't exist.
	// Returns models.ErrInvalidTransition if the step is not legal.
	TransitionIncident(ctx context.Context, id string, next models.IncidentStatus, actorID string) (*models.Incident, error)

	// AssignUnit assigns a unit to an incident, transitions the incident
	// to dispatched (acknowledging it first when still reported), marks
	// the unit en route and records the audit events, all atomically.
	// force dispatches the unit regardless of its current status.
	// Returns models.ErrIncidentNotFound or models.ErrUnitNotFound for
	// missing records, models.ErrUnitUnavailable if the unit cannot be
	// dispatched, and models.ErrInvalidTransition if the incident cannot
	// move to dispatched.
	AssignUnit(ctx context.Context, incidentID, unitID, actorID string, force bool) (*models.Incident, error)

	// ListIncidentEvents returns an incident's audit trail, oldest first.
	// Returns models.ErrIncidentNotFound if the incident doesn't exist.
	ListIncidentEvents(ctx context.Context, incidentID string) ([]*models.IncidentEvent, error)

	// ============================================
	// UNIT OPERATIONS
	// ============================================

	// GetUnit returns a unit by call sign.
	// Returns models.ErrUnitNotFound if the unit doesn't exist.
	GetUnit(ctx context.Context, callSign string) (*models.Unit, error)

	// GetUnitByID returns a unit by its unique ID.
	// Returns models.ErrUnitNotFound if no unit has this ID.
	GetUnitByID(ctx context.Context, id string) (*models.Unit, error)

	// ListUnits returns all units.
	ListUnits(ctx context.Context) ([]*models.Unit, error)

	// ListAvailableUnits returns dispatchable units for a category.
	// An empty category returns available units of every category.
	ListAvailableUnits(ctx context.Context, category models.IncidentCategory) ([]*models.Unit, error)

	// CreateUnit registers a new unit.
	// The unit ID will be generated if empty.
	// Returns the generated ID.
	// Returns models.ErrDuplicateUnit if a unit with the same call sign exists.
	CreateUnit(ctx context.Context, unit *models.Unit) (string, error)

	// UpdateUnit updates an existing unit.
	// Returns models.ErrUnitNotFound if the unit doesn't exist.
	UpdateUnit(ctx context.Context, unit *models.Unit) error

	// UpdateUnitStatus sets a unit's operational status.
	// Returns models.ErrUnitNotFound if the unit doesn't exist.
	UpdateUnitStatus(ctx context.Context, callSign string, status models.UnitStatus) error

	// DeleteUnit removes a unit by call sign. Units assigned to an open
	// incident cannot be deleted.
	// Returns models.ErrUnitNotFound if the unit doesn't exist.
	// Returns models.ErrUnitAlreadyOnCall if the unit has an open assignment.
	DeleteUnit(ctx context.Context, callSign string) error

	// ============================================
	// CHAT OPERATIONS
	// ============================================

	// CreateMessage appends a chat message to an incident's thread.
	// Returns the message ID.
	// Returns models.ErrIncidentNotFound if the incident doesn't exist.
	CreateMessage(ctx context.Context, message *models.ChatMessage) (string, error)

	// ListMessages returns an incident's chat thread matching the filter,
	// oldest first.
	// Returns models.ErrIncidentNotFound if the incident doesn't exist.
	ListMessages(ctx context.Context, incidentID string, filter MessageFilter) ([]*models.ChatMessage, error)

	// ============================================
	// SETTINGS OPERATIONS
	// ============================================

	// GetSetting returns a setting value, or empty string if not set.
	GetSetting(ctx context.Context, key string) (string, error)

	// SetSetting creates or updates a setting.
	SetSetting(ctx context.Context, key, value string) error

	// DeleteSetting removes a setting. No error if the key doesn't exist.
	DeleteSetting(ctx context.Context, key string) error

	// ListSettings returns all settings.
	ListSettings(ctx context.Context) ([]*models.Setting, error)

	// ============================================
	// HEALTH & LIFECYCLE
	// ============================================

	// Healthcheck verifies the database connection is alive.
	Healthcheck(ctx context.Context) error

	// Type reports the configured database backend.
	Type() DatabaseType

	// Close releases the database connection.
	Close() error
}
