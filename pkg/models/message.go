package models

import (
	"fmt"
	"time"
)

// MaxMessageLength caps chat message bodies.
const MaxMessageLength = 2000

// ChatMessage is one message on an incident's chat thread.
//
// Participants are the incident's reporter, all dispatch-side staff, and
// responders on the assigned unit. The sender's username and role are
// denormalized so the thread renders without joining users.
type ChatMessage struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	IncidentID     string    `gorm:"not null;size:36;index" json:"incident_id"`
	SenderID       string    `gorm:"not null;size:36" json:"sender_id"`
	SenderUsername string    `gorm:"not null;size:255" json:"sender_username"`
	SenderRole     string    `gorm:"not null;size:50" json:"sender_role"`
	Body           string    `gorm:"not null;type:text" json:"body"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName returns the table name for ChatMessage.
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// Validate checks if the message has valid configuration.
func (m *ChatMessage) Validate() error {
	if m.IncidentID == "" {
		return fmt.Errorf("incident is required")
	}
	if m.SenderID == "" {
		return fmt.Errorf("sender is required")
	}
	if m.Body == "" {
		return fmt.Errorf("message body is required")
	}
	if len(m.Body) > MaxMessageLength {
		return fmt.Errorf("message body exceeds %d characters", MaxMessageLength)
	}
	return nil
}
