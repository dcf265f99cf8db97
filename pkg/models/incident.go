package models

import (
	"fmt"
	"time"
)

// IncidentCategory classifies which emergency service an incident concerns.
type IncidentCategory string

const (
	CategoryPolice   IncidentCategory = "police"
	CategoryFire     IncidentCategory = "fire"
	CategoryMedical  IncidentCategory = "medical"
	CategoryDisaster IncidentCategory = "disaster"
)

// IsValid checks if the category is a valid IncidentCategory.
func (c IncidentCategory) IsValid() bool {
	switch c {
	case CategoryPolice, CategoryFire, CategoryMedical, CategoryDisaster:
		return true
	}
	return false
}

// AllCategories returns every valid incident category.
func AllCategories() []IncidentCategory {
	return []IncidentCategory{CategoryPolice, CategoryFire, CategoryMedical, CategoryDisaster}
}

// Incident priority bounds. 1 is the most urgent.
const (
	MinPriority = 1
	MaxPriority = 5
	// DefaultPriority is assigned when the reporter does not set one.
	DefaultPriority = 3
)

// IncidentStatus is the lifecycle state of an incident.
type IncidentStatus string

const (
	// StatusReported is the initial status after a citizen files a report.
	StatusReported IncidentStatus = "reported"
	// StatusAcknowledged means a dispatcher has seen and triaged the report.
	StatusAcknowledged IncidentStatus = "acknowledged"
	// StatusDispatched means a unit has been assigned and is en route.
	StatusDispatched IncidentStatus = "dispatched"
	// StatusOnScene means the assigned unit has arrived.
	StatusOnScene IncidentStatus = "on_scene"
	// StatusResolved means field work is complete.
	StatusResolved IncidentStatus = "resolved"
	// StatusClosed is the terminal state after administrative wrap-up.
	StatusClosed IncidentStatus = "closed"
	// StatusCancelled terminates an incident without resolution, for
	// duplicates, false alarms and reporter withdrawals.
	StatusCancelled IncidentStatus = "cancelled"
)

// IsValid checks if the status is a valid IncidentStatus.
func (s IncidentStatus) IsValid() bool {
	switch s {
	case StatusReported, StatusAcknowledged, StatusDispatched,
		StatusOnScene, StatusResolved, StatusClosed, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s IncidentStatus) IsTerminal() bool {
	return s == StatusClosed || s == StatusCancelled
}

// statusTransitions is the allowed forward edge set of the incident
// lifecycle. Cancellation is handled separately in CanTransitionTo since it
// is reachable from every non-terminal state.
var statusTransitions = map[IncidentStatus][]IncidentStatus{
	StatusReported:     {StatusAcknowledged},
	StatusAcknowledged: {StatusDispatched},
	StatusDispatched:   {StatusOnScene, StatusResolved},
	StatusOnScene:      {StatusResolved},
	StatusResolved:     {StatusClosed},
}

// CanTransitionTo reports whether moving from s to next is a legal
// lifecycle step.
func (s IncidentStatus) CanTransitionTo(next IncidentStatus) bool {
	if !next.IsValid() || s.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Incident is a reported emergency and its dispatch state.
//
// The Reference is a human-readable identifier quoted over the phone and in
// chat (for example SIR-20260831-0042); the ID is the stable machine key.
// Location is stored as free-text address plus optional coordinates since
// citizen reports frequently carry only one of the two.
type Incident struct {
	ID             string           `gorm:"primaryKey;size:36" json:"id"`
	Reference      string           `gorm:"uniqueIndex;not null;size:50" json:"reference"`
	Category       IncidentCategory `gorm:"not null;size:50;index" json:"category"`
	Priority       int              `gorm:"not null;default:3" json:"priority"`
	Status         IncidentStatus   `gorm:"not null;default:reported;size:50;index" json:"status"`
	Title          string           `gorm:"not null;size:255" json:"title"`
	Description    string           `gorm:"type:text" json:"description,omitempty"`
	Address        string           `gorm:"size:512" json:"address,omitempty"`
	Latitude       *float64         `json:"latitude,omitempty"`
	Longitude      *float64         `json:"longitude,omitempty"`
	ReporterID     string           `gorm:"not null;size:36;index" json:"reporter_id"`
	AssignedUnitID *string          `gorm:"size:36;index" json:"assigned_unit_id,omitempty"`
	ReportedAt     time.Time        `gorm:"not null" json:"reported_at"`
	AcknowledgedAt *time.Time       `json:"acknowledged_at,omitempty"`
	DispatchedAt   *time.Time       `json:"dispatched_at,omitempty"`
	ResolvedAt     *time.Time       `json:"resolved_at,omitempty"`
	ClosedAt       *time.Time       `json:"closed_at,omitempty"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	Reporter     *User `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	AssignedUnit *Unit `gorm:"foreignKey:AssignedUnitID" json:"assigned_unit,omitempty"`
}

// TableName returns the table name for Incident.
func (Incident) TableName() string {
	return "incidents"
}

// Validate checks if the incident has valid configuration.
func (i *Incident) Validate() error {
	if i.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !i.Category.IsValid() {
		return fmt.Errorf("invalid category %q", i.Category)
	}
	if i.Priority < MinPriority || i.Priority > MaxPriority {
		return fmt.Errorf("priority must be between %d and %d", MinPriority, MaxPriority)
	}
	if i.Status != "" && !i.Status.IsValid() {
		return fmt.Errorf("invalid status %q", i.Status)
	}
	if i.ReporterID == "" {
		return fmt.Errorf("reporter is required")
	}
	if (i.Latitude == nil) != (i.Longitude == nil) {
		return fmt.Errorf("latitude and longitude must be set together")
	}
	if i.Latitude != nil && (*i.Latitude < -90 || *i.Latitude > 90) {
		return fmt.Errorf("latitude out of range")
	}
	if i.Longitude != nil && (*i.Longitude < -180 || *i.Longitude > 180) {
		return fmt.Errorf("longitude out of range")
	}
	return nil
}

// Transition moves the incident to the next status, stamping the matching
// timestamp field. Returns ErrInvalidTransition when the step is not legal.
func (i *Incident) Transition(next IncidentStatus, now time.Time) error {
	if !i.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, i.Status, next)
	}

	i.Status = next
	switch next {
	case StatusAcknowledged:
		i.AcknowledgedAt = &now
	case StatusDispatched:
		i.DispatchedAt = &now
	case StatusResolved:
		i.ResolvedAt = &now
	case StatusClosed, StatusCancelled:
		i.ClosedAt = &now
	}
	return nil
}

// IsOpen reports whether the incident is still active.
func (i *Incident) IsOpen() bool {
	return !i.Status.IsTerminal()
}
