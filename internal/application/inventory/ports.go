package inventory

import (
	"context"

	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

// TxRunner executes a function inside a DB transaction, passing repositories
// bound to that transaction. Guarantees atomicity of ledger + stock writes.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
