package repository

import (
	"time"

	"github.com/automaten-pro/automaten-api/internal/domain/entity"
)

// StockMovementRepository is the persistence port for the movement ledger.
// The ledger is append-only: there is deliberately no update or delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListRecent(limit int) ([]*entity.StockMovement, error)
}
