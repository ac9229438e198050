package entity

import "time"

// Security event severities.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// SecurityEvent is one append-only security log row (failed logins, permission
// denials, rate limiting).
type SecurityEvent struct {
	ID        string
	EventType string
	UserID    string // empty if unauthenticated
	IP        string
	Severity  string
	Detail    string
	CreatedAt time.Time
}
