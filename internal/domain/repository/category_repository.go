package repository

import "github.com/automaten-pro/automaten-api/internal/domain/entity"

// CategoryRepository is the persistence port for Category.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	Update(category *entity.Category) error
	SetStatus(id, status string) error
	List(status string) ([]*entity.Category, error)
}
