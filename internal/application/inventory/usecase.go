package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

// UseCase registers stock movements transactionally with row locking
// (SELECT FOR UPDATE) and keeps the ledger invariant: every row records the
// stock before and after, and the product row is updated in the same tx.
type UseCase struct {
	txRunner TxRunner
}

// NewUseCase builds the movement engine.
func NewUseCase(txRunner TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner}
}

// MovementInput input for RegisterMovement. Quantity may be negative only
// for adjustments (corrections downwards).
type MovementInput struct {
	ProductID     string
	Type          string
	Quantity      int
	ReferenceType string
	ReferenceID   string
	Note          string
	UserID        string
}

// RegisterMovement opens a transaction, locks the product row and applies
// the movement. Commit on success, rollback on any error.
func (uc *UseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	switch input.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut, entity.MovementTypeInitial,
		entity.MovementTypeDisposal, entity.MovementTypeDisposalReversal:
		if input.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	case entity.MovementTypeAdjustment:
		if input.Quantity == 0 {
			return nil, domain.ErrInvalidQuantity
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	var movement *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		m, err := ApplyMovementInTx(movRepo, productRepo, input, time.Now())
		if err != nil {
			return err
		}
		movement = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// ApplyMovementInTx applies one movement using repositories that are already
// bound to the caller's transaction. The waste and sales workflows call this
// so their own rows and the stock change commit or roll back together.
func ApplyMovementInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	product, err := productRepo.GetForUpdate(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active() {
		return nil, domain.ErrProductNotFound
	}

	previous := product.CurrentStock
	delta := input.Quantity
	switch input.Type {
	case entity.MovementTypeOut, entity.MovementTypeDisposal:
		delta = -input.Quantity
	case entity.MovementTypeAdjustment:
		// signed correction, stored with absolute quantity
	}
	newStock := previous + delta
	if newStock < 0 {
		return nil, domain.InsufficientStock(previous)
	}

	if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
		return nil, err
	}

	quantity := input.Quantity
	if quantity < 0 {
		quantity = -quantity
	}
	movement := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		Type:          input.Type,
		Quantity:      quantity,
		PreviousStock: previous,
		NewStock:      newStock,
		ReferenceType: input.ReferenceType,
		ReferenceID:   input.ReferenceID,
		Note:          input.Note,
		UserID:        input.UserID,
		CreatedAt:     now,
	}
	if err := movRepo.Create(movement); err != nil {
		return nil, err
	}
	return movement, nil
}
