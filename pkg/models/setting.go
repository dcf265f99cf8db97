package models

import "time"

// Setting is a runtime-configurable key-value pair, used for operational
// toggles and the day-scoped incident reference counter.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for Setting.
func (Setting) TableName() string {
	return "settings"
}

// Well-known setting keys.
const (
	// SettingIntakeEnabled gates citizen incident reporting. Values "true"
	// or "false"; missing means enabled.
	SettingIntakeEnabled = "intake.enabled"

	// SettingReferencePrefix is the prefix used for incident references.
	SettingReferencePrefix = "reference.prefix"

	// referenceCounterPrefix scopes the daily reference counters. The full
	// key is reference.counter.YYYYMMDD.
	referenceCounterPrefix = "reference.counter."
)

// ReferenceCounterKey returns the settings key holding the reference
// counter for the given day.
func ReferenceCounterKey(day time.Time) string {
	return referenceCounterPrefix + day.Format("20060102")
}
