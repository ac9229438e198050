package entity

import "time"

// Email delivery states. Failed sends move through retry until the configured
// attempt limit, then stay failed. Rows are never deleted.
const (
	EmailStatusPending = "pending"
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
	EmailStatusRetry   = "retry"
)

// Email types dispatched by the system.
const (
	EmailTypeDailyReport    = "daily_report"
	EmailTypeWeeklyReport   = "weekly_report"
	EmailTypeMonthlyReport  = "monthly_report"
	EmailTypeWasteAlert     = "waste_alert"
	EmailTypeLowStockAlert  = "low_stock_alert"
	EmailTypeSessionReceipt = "session_receipt"
)

// EmailLog is the delivery record for one outbound email.
type EmailLog struct {
	ID          string
	Type        string
	Recipient   string
	Subject     string
	Status      string
	Attempts    int
	LastError   string
	ReferenceID string // session ID, waste entry ID, ... depending on Type
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
