package postgres

import (
	"context"
	"fmt"

	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

var _ repository.EmailLogRepository = (*EmailLogRepo)(nil)

const emailLogColumns = `id, type, recipient, subject, status, attempts, last_error, reference_id, created_at, updated_at`

// EmailLogRepo implements the delivery log on PostgreSQL.
type EmailLogRepo struct {
	q Querier
}

// NewEmailLogRepository builds the persistence adapter.
func NewEmailLogRepository(q Querier) *EmailLogRepo {
	return &EmailLogRepo{q: q}
}

// Create appends one delivery record, normally in status pending.
func (r *EmailLogRepo) Create(l *entity.EmailLog) error {
	query := `
		INSERT INTO email_logs (id, type, recipient, subject, status, attempts, last_error, reference_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.Type, l.Recipient, l.Subject, l.Status, l.Attempts, l.LastError, l.ReferenceID, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert email log: %w", err)
	}
	return nil
}

// UpdateStatus advances the delivery state machine (pending → sent, or
// pending → retry → ... → failed).
func (r *EmailLogRepo) UpdateStatus(id, status, lastError string, attempts int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE email_logs SET status = $2, last_error = $3, attempts = $4, updated_at = now() WHERE id = $1`,
		id, status, lastError, attempts)
	if err != nil {
		return fmt.Errorf("update email log: %w", err)
	}
	return nil
}

// ListByStatus returns rows in one state, oldest first (retry sweeps).
func (r *EmailLogRepo) ListByStatus(status string, limit int) ([]*entity.EmailLog, error) {
	query := `SELECT ` + emailLogColumns + ` FROM email_logs WHERE status = $1 ORDER BY updated_at ASC LIMIT $2`
	return r.list(query, status, limit)
}

// ListRecent returns the latest rows regardless of state.
func (r *EmailLogRepo) ListRecent(limit int) ([]*entity.EmailLog, error) {
	return r.list(`SELECT `+emailLogColumns+` FROM email_logs ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *EmailLogRepo) list(query string, args ...any) ([]*entity.EmailLog, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list email logs: %w", err)
	}
	defer rows.Close()
	var out []*entity.EmailLog
	for rows.Next() {
		var l entity.EmailLog
		if err := rows.Scan(&l.ID, &l.Type, &l.Recipient, &l.Subject, &l.Status, &l.Attempts,
			&l.LastError, &l.ReferenceID, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan email log: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
