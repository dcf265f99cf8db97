package models

import "time"

// IncidentEventType classifies audit trail entries.
type IncidentEventType string

const (
	// EventReported records the initial filing of the incident.
	EventReported IncidentEventType = "reported"
	// EventStatusChanged records a lifecycle transition.
	EventStatusChanged IncidentEventType = "status_changed"
	// EventUnitAssigned records a unit assignment.
	EventUnitAssigned IncidentEventType = "unit_assigned"
	// EventUnitReleased records a unit being released from the incident.
	EventUnitReleased IncidentEventType = "unit_released"
	// EventPriorityChanged records a priority adjustment by a dispatcher.
	EventPriorityChanged IncidentEventType = "priority_changed"
)

// IncidentEvent is one entry in an incident's audit trail. Events are
// append-only; ActorID is empty for system-generated events.
type IncidentEvent struct {
	ID         uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	IncidentID string            `gorm:"not null;size:36;index" json:"incident_id"`
	Type       IncidentEventType `gorm:"not null;size:50" json:"type"`
	ActorID    string            `gorm:"size:36" json:"actor_id,omitempty"`
	FromStatus string            `gorm:"size:50" json:"from_status,omitempty"`
	ToStatus   string            `gorm:"size:50" json:"to_status,omitempty"`
	Detail     string            `gorm:"size:512" json:"detail,omitempty"`
	CreatedAt  time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName returns the table name for IncidentEvent.
func (IncidentEvent) TableName() string {
	return "incident_events"
}
