package repository

import "github.com/automaten-pro/automaten-api/internal/domain/entity"

// SecurityEventRepository is the persistence port for the security log
// (append-only).
type SecurityEventRepository interface {
	Create(event *entity.SecurityEvent) error
	ListRecent(limit int) ([]*entity.SecurityEvent, error)
}
