package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo implements the key/value settings store on PostgreSQL.
type SettingRepo struct {
	q Querier
}

// NewSettingRepository builds the persistence adapter.
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

// Get returns one setting or (nil, nil) when the key is unset.
func (r *SettingRepo) Get(key string) (*entity.Setting, error) {
	var s entity.Setting
	err := r.q.QueryRow(context.Background(),
		`SELECT key, value, "group", updated_at FROM settings WHERE key = $1`, key).
		Scan(&s.Key, &s.Value, &s.Group, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return &s, nil
}

// GetGroup returns all settings of one group.
func (r *SettingRepo) GetGroup(group string) ([]*entity.Setting, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT key, value, "group", updated_at FROM settings WHERE "group" = $1 ORDER BY key`, group)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()
	var out []*entity.Setting
	for rows.Next() {
		var s entity.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.Group, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Upsert writes a setting, inserting or overwriting by key.
func (r *SettingRepo) Upsert(s *entity.Setting) error {
	query := `
		INSERT INTO settings (key, value, "group", updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, "group" = EXCLUDED."group", updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query, s.Key, s.Value, s.Group, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}
