// Package waste implements the disposal workflow: validated, atomic
// write-offs with cost valuation, pattern analysis and the tax-compliance
// export.
package waste

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/application/inventory"
	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
	domwaste "github.com/automaten-pro/automaten-api/internal/domain/waste"
	"github.com/automaten-pro/automaten-api/internal/observability"
	"github.com/automaten-pro/automaten-api/pkg/logger"
)

// UseCase records disposals. Each disposal writes the immutable waste entry,
// the stock movement and the product stock update in one transaction.
type UseCase struct {
	txRunner       TxRunner
	productRepo    repository.ProductRepository
	notifier       Notifier
	settings       Settings
	log            *logger.Logger
	taxRate        decimal.Decimal // default fraction, e.g. 0.19
	alertThreshold decimal.Decimal // default total cost at or above which an alert email goes out
}

// NewUseCase builds the disposal workflow. taxRate and alertThreshold are the
// configured defaults; the settings store overrides them per disposal.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	notifier Notifier,
	settings Settings,
	log *logger.Logger,
	taxRate float64,
	alertThreshold float64,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		productRepo:    productRepo,
		notifier:       notifier,
		settings:       settings,
		log:            log,
		taxRate:        decimal.NewFromFloat(taxRate),
		alertThreshold: decimal.NewFromFloat(alertThreshold),
	}
}

func (uc *UseCase) currentTaxRate() decimal.Decimal {
	if uc.settings == nil {
		return uc.taxRate
	}
	return uc.settings.GetDecimal(SettingTaxRate, uc.taxRate)
}

func (uc *UseCase) currentAlertThreshold() decimal.Decimal {
	if uc.settings == nil {
		return uc.alertThreshold
	}
	return uc.settings.GetDecimal(SettingAlertThreshold, uc.alertThreshold)
}

// LogDisposal validates and records one disposal. Validation order: product,
// quantity, reason, photo evidence, stock. Nothing is written unless every
// check passes; the stock check repeats under row lock inside the transaction.
func (uc *UseCase) LogDisposal(ctx context.Context, req dto.LogDisposalRequest, userID string) (*dto.DisposalResponse, error) {
	product, err := uc.productRepo.GetByID(req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active() {
		return nil, domain.ErrProductNotFound
	}
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	reason, ok := domwaste.LookupReason(req.Reason)
	if !ok {
		return nil, domain.ErrInvalidReason
	}
	if reason.RequiresPhoto && len(req.Photos) == 0 {
		return nil, domain.ErrPhotoRequired
	}
	if req.Quantity > product.CurrentStock {
		return nil, domain.InsufficientStock(product.CurrentStock)
	}

	cost := domwaste.CalculateCost(req.Quantity, product.BuyPrice, reason, uc.currentTaxRate())
	entry := &entity.WasteEntry{
		ID:                 uuid.New().String(),
		ProductID:          product.ID,
		Quantity:           req.Quantity,
		Reason:             reason.Key,
		UnitCost:           cost.UnitCost,
		TotalCost:          cost.TotalCost,
		TaxDeductible:      cost.TaxDeductible,
		EstimatedTaxSaving: cost.EstimatedTaxSaving,
		Photos:             req.Photos,
		Note:               req.Note,
		UserID:             userID,
		CreatedAt:          time.Now(),
	}

	var movement *entity.StockMovement
	err = uc.txRunner.RunDisposal(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		wasteRepo repository.WasteRepository,
	) error {
		if err := wasteRepo.Create(entry); err != nil {
			return err
		}
		m, err := inventory.ApplyMovementInTx(movRepo, productRepo, inventory.MovementInput{
			ProductID:     entry.ProductID,
			Type:          entity.MovementTypeDisposal,
			Quantity:      entry.Quantity,
			ReferenceType: "waste_entry",
			ReferenceID:   entry.ID,
			Note:          reason.Label,
			UserID:        userID,
		}, entry.CreatedAt)
		if err != nil {
			return err
		}
		movement = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.DisposalsTotal.WithLabelValues(reason.Key).Inc()
	uc.log.Info().
		Str("waste_entry_id", entry.ID).
		Str("product_id", product.ID).
		Str("reason", reason.Key).
		Int("quantity", entry.Quantity).
		Str("total_cost", entry.TotalCost.StringFixed(2)).
		Msg("disposal recorded")

	if uc.notifier != nil && entry.TotalCost.GreaterThanOrEqual(uc.currentAlertThreshold()) {
		uc.notifier.DisposalAlert(entry, product.Name)
	}

	return &dto.DisposalResponse{
		ID:                 entry.ID,
		ProductID:          entry.ProductID,
		ProductName:        product.Name,
		Quantity:           entry.Quantity,
		Reason:             entry.Reason,
		UnitCost:           entry.UnitCost,
		TotalCost:          entry.TotalCost,
		TaxDeductible:      entry.TaxDeductible,
		EstimatedTaxSaving: entry.EstimatedTaxSaving,
		NewStock:           movement.NewStock,
		CreatedAt:          entry.CreatedAt,
	}, nil
}

// GetReasons returns the fixed disposal reason catalog.
func (uc *UseCase) GetReasons() []dto.DisposalReasonDTO {
	catalog := domwaste.Reasons()
	out := make([]dto.DisposalReasonDTO, 0, len(catalog))
	for _, r := range catalog {
		out = append(out, dto.DisposalReasonDTO{
			Key:           r.Key,
			Label:         r.Label,
			TaxDeductible: r.TaxDeductible,
			RequiresPhoto: r.RequiresPhoto,
			Severity:      r.Severity,
		})
	}
	return out
}
