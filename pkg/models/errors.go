package models

import "errors"

// Common errors for incident and dispatch operations.
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
	ErrUserDisabled  = errors.New("user account is disabled")

	// Incident errors
	ErrIncidentNotFound   = errors.New("incident not found")
	ErrIncidentClosed     = errors.New("incident is closed")
	ErrInvalidTransition  = errors.New("invalid incident status transition")
	ErrDuplicateReference = errors.New("incident reference already exists")

	// Unit errors
	ErrUnitNotFound      = errors.New("unit not found")
	ErrDuplicateUnit     = errors.New("unit already exists")
	ErrUnitUnavailable   = errors.New("unit is not available for dispatch")
	ErrUnitAlreadyOnCall = errors.New("unit is already assigned to an incident")

	// Message errors
	ErrMessageNotFound = errors.New("message not found")
	ErrNotParticipant  = errors.New("user is not a participant of this incident")

	// Setting errors
	ErrSettingNotFound = errors.New("setting not found")
)
