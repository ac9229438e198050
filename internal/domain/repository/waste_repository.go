package repository

import (
	"time"

	"github.com/automaten-pro/automaten-api/internal/domain/entity"
)

// WasteRepository is the persistence port for waste entries. Entries are an
// append-only audit trail: no update or delete exists anywhere in the system.
type WasteRepository interface {
	Create(entry *entity.WasteEntry) error
	GetByID(id string) (*entity.WasteEntry, error)
	ListPeriod(from, to time.Time, limit, offset int) ([]*entity.WasteEntry, error)
}
