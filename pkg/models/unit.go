package models

import (
	"fmt"
	"time"
)

// UnitStatus is the operational state of a response unit.
type UnitStatus string

const (
	// UnitAvailable means the unit can be assigned to an incident.
	UnitAvailable UnitStatus = "available"
	// UnitEnRoute means the unit is travelling to its assigned incident.
	UnitEnRoute UnitStatus = "en_route"
	// UnitOnScene means the unit is working its assigned incident.
	UnitOnScene UnitStatus = "on_scene"
	// UnitOutOfService means the unit cannot take assignments.
	UnitOutOfService UnitStatus = "out_of_service"
)

// IsValid checks if the status is a valid UnitStatus.
func (s UnitStatus) IsValid() bool {
	switch s {
	case UnitAvailable, UnitEnRoute, UnitOnScene, UnitOutOfService:
		return true
	}
	return false
}

// Unit is a dispatchable response crew, identified by its call sign.
type Unit struct {
	ID        string           `gorm:"primaryKey;size:36" json:"id"`
	CallSign  string           `gorm:"uniqueIndex;not null;size:50" json:"call_sign"`
	Category  IncidentCategory `gorm:"not null;size:50;index" json:"category"`
	Status    UnitStatus       `gorm:"not null;default:available;size:50;index" json:"status"`
	Station   string           `gorm:"size:255" json:"station,omitempty"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for Unit.
func (Unit) TableName() string {
	return "units"
}

// Validate checks if the unit has valid configuration.
func (u *Unit) Validate() error {
	if u.CallSign == "" {
		return fmt.Errorf("call sign is required")
	}
	if !u.Category.IsValid() {
		return fmt.Errorf("invalid category %q", u.Category)
	}
	if u.Status != "" && !u.Status.IsValid() {
		return fmt.Errorf("invalid status %q", u.Status)
	}
	return nil
}

// IsDispatchable reports whether the unit can be assigned to an incident.
func (u *Unit) IsDispatchable() bool {
	return u.Status == UnitAvailable
}
