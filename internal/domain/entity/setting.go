package entity

import "time"

// Setting groups used by the configuration store.
const (
	SettingGroupGeneral     = "general"
	SettingGroupEmail       = "email"
	SettingGroupTax         = "tax"
	SettingGroupMonitoring  = "monitoring"
	SettingGroupScanner     = "scanner"
	SettingGroupPerformance = "performance"
)

// Setting is one key/value row. Keys are unique; settings are the only freely
// mutable keyed store in the system.
type Setting struct {
	Key       string
	Value     string
	Group     string
	UpdatedAt time.Time
}
