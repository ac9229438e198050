package repository

import "github.com/automaten-pro/automaten-api/internal/domain/entity"

// EmailLogRepository is the persistence port for the delivery log. Rows are
// append-only except for the delivery status fields.
type EmailLogRepository interface {
	Create(log *entity.EmailLog) error
	UpdateStatus(id, status, lastError string, attempts int) error
	ListByStatus(status string, limit int) ([]*entity.EmailLog, error)
	ListRecent(limit int) ([]*entity.EmailLog, error)
}
