package postgres

import (
	"context"
	"fmt"

	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

var _ repository.SecurityEventRepository = (*SecurityEventRepo)(nil)

// SecurityEventRepo implements the append-only security log on PostgreSQL.
type SecurityEventRepo struct {
	q Querier
}

// NewSecurityEventRepository builds the persistence adapter.
func NewSecurityEventRepository(q Querier) *SecurityEventRepo {
	return &SecurityEventRepo{q: q}
}

// Create appends one security event.
func (r *SecurityEventRepo) Create(e *entity.SecurityEvent) error {
	query := `
		INSERT INTO security_events (id, event_type, user_id, ip, severity, detail, created_at)
		VALUES ($1, $2, NULLIF($3, '')::UUID, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.EventType, e.UserID, e.IP, e.Severity, e.Detail, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert security event: %w", err)
	}
	return nil
}

// ListRecent returns the latest events.
func (r *SecurityEventRepo) ListRecent(limit int) ([]*entity.SecurityEvent, error) {
	query := `SELECT id, event_type, COALESCE(user_id::TEXT, ''), ip, severity, detail, created_at
		FROM security_events ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list security events: %w", err)
	}
	defer rows.Close()
	var out []*entity.SecurityEvent
	for rows.Next() {
		var e entity.SecurityEvent
		if err := rows.Scan(&e.ID, &e.EventType, &e.UserID, &e.IP, &e.Severity, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan security event: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
