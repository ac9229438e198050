// Package scanner implements the barcode workflow: lookup plus one-shot
// dispatch of a scan into a sale, restock, disposal or product draft.
package scanner

import (
	"context"
	"fmt"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/application/inventory"
	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
	"github.com/automaten-pro/automaten-api/internal/observability"
)

// Restocker books incoming stock.
type Restocker interface {
	RegisterMovement(ctx context.Context, input inventory.MovementInput) (*entity.StockMovement, error)
}

// Disposer records a disposal.
type Disposer interface {
	LogDisposal(ctx context.Context, req dto.LogDisposalRequest, userID string) (*dto.DisposalResponse, error)
}

// Seller books a sold line into a session.
type Seller interface {
	AddItem(ctx context.Context, sessionID string, req dto.AddItemRequest, userID string) (*dto.SessionItemDTO, error)
}

// ProductCreator registers a product draft for an unknown barcode.
type ProductCreator interface {
	Create(ctx context.Context, req dto.CreateProductRequest, userID string) (*dto.ProductResponse, error)
}

// UseCase resolves barcodes and dispatches scan actions.
type UseCase struct {
	productRepo repository.ProductRepository
	salesRepo   repository.SalesRepository
	restocker   Restocker
	disposer    Disposer
	seller      Seller
	creator     ProductCreator
}

// NewUseCase builds the scanner use case.
func NewUseCase(
	productRepo repository.ProductRepository,
	salesRepo repository.SalesRepository,
	restocker Restocker,
	disposer Disposer,
	seller Seller,
	creator ProductCreator,
) *UseCase {
	return &UseCase{
		productRepo: productRepo,
		salesRepo:   salesRepo,
		restocker:   restocker,
		disposer:    disposer,
		seller:      seller,
		creator:     creator,
	}
}

// Lookup resolves a barcode. Unknown barcodes return ErrProductNotFound; the
// client then offers the create-new action.
func (uc *UseCase) Lookup(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active() {
		return nil, domain.ErrProductNotFound
	}
	return scanProductResponse(product), nil
}

// Dispatch routes one scan to its workflow. Quantity defaults to 1.
func (uc *UseCase) Dispatch(ctx context.Context, req dto.ScanActionRequest, userID string) (*dto.ScanActionResponse, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	var resp *dto.ScanActionResponse
	var err error
	switch req.Action {
	case dto.ScanActionSell:
		resp, err = uc.sell(ctx, req.Barcode, quantity, req.MachineID, userID)
	case dto.ScanActionRestock:
		resp, err = uc.restock(ctx, req.Barcode, quantity, userID)
	case dto.ScanActionDispose:
		resp, err = uc.dispose(ctx, req.Barcode, quantity, req.Reason, userID)
	case dto.ScanActionCreateNew:
		resp, err = uc.createNew(ctx, req.Barcode, req.Name, userID)
	default:
		return nil, domain.ErrInvalidAction
	}
	if err != nil {
		return nil, err
	}
	observability.ScanActionsTotal.WithLabelValues(req.Action).Inc()
	return resp, nil
}

func (uc *UseCase) sell(ctx context.Context, barcode string, quantity int, machineID, userID string) (*dto.ScanActionResponse, error) {
	if machineID == "" {
		return nil, domain.ErrInvalidInput
	}
	session, err := uc.salesRepo.GetOpenByMachine(machineID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	item, err := uc.seller.AddItem(ctx, session.ID, dto.AddItemRequest{Barcode: barcode, Quantity: quantity}, userID)
	if err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	resp := &dto.ScanActionResponse{
		Action: dto.ScanActionSell,
		Detail: fmt.Sprintf("sold %d into session %s", item.Quantity, session.ID),
	}
	if product != nil {
		resp.Product = scanProductResponse(product)
		resp.NewStock = product.CurrentStock
	}
	return resp, nil
}

func (uc *UseCase) restock(ctx context.Context, barcode string, quantity int, userID string) (*dto.ScanActionResponse, error) {
	product, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active() {
		return nil, domain.ErrProductNotFound
	}
	mv, err := uc.restocker.RegisterMovement(ctx, inventory.MovementInput{
		ProductID:     product.ID,
		Type:          entity.MovementTypeIn,
		Quantity:      quantity,
		ReferenceType: "restock",
		UserID:        userID,
	})
	if err != nil {
		return nil, err
	}
	product.CurrentStock = mv.NewStock
	return &dto.ScanActionResponse{
		Action:   dto.ScanActionRestock,
		Product:  scanProductResponse(product),
		NewStock: mv.NewStock,
	}, nil
}

func (uc *UseCase) dispose(ctx context.Context, barcode string, quantity int, reason, userID string) (*dto.ScanActionResponse, error) {
	product, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active() {
		return nil, domain.ErrProductNotFound
	}
	disposal, err := uc.disposer.LogDisposal(ctx, dto.LogDisposalRequest{
		ProductID: product.ID,
		Quantity:  quantity,
		Reason:    reason,
	}, userID)
	if err != nil {
		return nil, err
	}
	product.CurrentStock = disposal.NewStock
	return &dto.ScanActionResponse{
		Action:   dto.ScanActionDispose,
		Product:  scanProductResponse(product),
		NewStock: disposal.NewStock,
		Detail:   fmt.Sprintf("disposed %d, cost %s", disposal.Quantity, disposal.TotalCost.StringFixed(2)),
	}, nil
}

func (uc *UseCase) createNew(ctx context.Context, barcode, name string, userID string) (*dto.ScanActionResponse, error) {
	if name == "" {
		name = "New product " + barcode
	}
	created, err := uc.creator.Create(ctx, dto.CreateProductRequest{
		Name:    name,
		Barcode: barcode,
	}, userID)
	if err != nil {
		return nil, err
	}
	return &dto.ScanActionResponse{
		Action:  dto.ScanActionCreateNew,
		Product: created,
		Detail:  "draft created, prices pending",
	}, nil
}

func scanProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Barcode:      p.Barcode,
		CategoryID:   p.CategoryID,
		BuyPrice:     p.BuyPrice,
		SellPrice:    p.SellPrice,
		VATRate:      p.VATRate,
		Deposit:      p.Deposit,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		ExpiryDate:   p.ExpiryDate,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
