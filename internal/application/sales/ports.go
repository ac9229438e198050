package sales

import (
	"context"

	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

// TxRunner executes the sale write inside one DB transaction: sold line,
// movement ledger row and product stock update are atomic.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		salesRepo repository.SalesRepository,
	) error) error
}

// Notifier delivers the session summary email after a close. Implementations
// must not block the caller.
type Notifier interface {
	SessionClosed(session *entity.SalesSession, items []*entity.SalesItem)
}
