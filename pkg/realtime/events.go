// Package realtime provides per-incident event fan-out to connected
// websocket clients.
//
// The hub gives each subscriber a buffered FIFO queue of events for one
// incident. Delivery is best-effort: a subscriber that cannot keep up has
// events dropped rather than stalling publishers or other subscribers.
// Clients needing a complete picture re-fetch incident state over the
// REST API.
package realtime

import (
	"time"
)

// EventType classifies realtime events.
type EventType string

const (
	// EventIncidentUpdated signals an edit to an incident's fields.
	EventIncidentUpdated EventType = "incident.updated"
	// EventIncidentAssigned signals a unit assignment.
	EventIncidentAssigned EventType = "incident.assigned"
	// EventIncidentStatus signals a lifecycle transition.
	EventIncidentStatus EventType = "incident.status"
	// EventChatMessage signals a new chat message on the thread.
	EventChatMessage EventType = "chat.message"
)

// Event is one realtime notification scoped to a single incident.
type Event struct {
	Type       EventType `json:"type"`
	IncidentID string    `json:"incident_id"`
	At         time.Time `json:"at"`
	Payload    any       `json:"payload,omitempty"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(eventType EventType, incidentID string, payload any) Event {
	return Event{
		Type:       eventType,
		IncidentID: incidentID,
		At:         time.Now().UTC(),
		Payload:    payload,
	}
}
