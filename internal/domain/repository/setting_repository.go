package repository

import "github.com/automaten-pro/automaten-api/internal/domain/entity"

// SettingRepository is the persistence port for the key/value settings store.
type SettingRepository interface {
	Get(key string) (*entity.Setting, error)
	GetGroup(group string) ([]*entity.Setting, error)
	Upsert(setting *entity.Setting) error
}
