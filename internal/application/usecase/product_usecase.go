// Package usecase holds the CRUD-style use cases for products, categories and
// settings.
package usecase

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
)

// Money fields on products must not go below zero; a negative buy price would
// poison every downstream cost valuation. Checked here because the struct
// validator cannot express constraints on decimal fields.
var errNegativeAmount = domain.NewError("VALIDATION", "prices, VAT rate and deposit must not be negative")

func validateAmounts(amounts ...*decimal.Decimal) error {
	for _, a := range amounts {
		if a != nil && a.IsNegative() {
			return errNegativeAmount
		}
	}
	return nil
}

// ProductUseCase manages the product catalog. Deletes are soft: the row stays
// for the movement ledger and old sessions, only the status flips.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	inventoryUC *inventory.UseCase
}

// NewProductUseCase builds the product use case.
func NewProductUseCase(productRepo repository.ProductRepository, inventoryUC *inventory.UseCase) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, inventoryUC: inventoryUC}
}

// Create registers a product. A non-zero initial stock is booked as an
// "initial" movement so the ledger starts consistent.
func (uc *ProductUseCase) Create(ctx context.Context, req dto.CreateProductRequest, userID string) (*dto.ProductResponse, error) {
	if err := validateAmounts(&req.BuyPrice, &req.SellPrice, &req.VATRate, &req.Deposit); err != nil {
		return nil, err
	}
	existing, err := uc.productRepo.GetByBarcode(req.Barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrBarcodeExists
	}

	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Barcode:    req.Barcode,
		CategoryID: req.CategoryID,
		BuyPrice:   req.BuyPrice,
		SellPrice:  req.SellPrice,
		VATRate:    req.VATRate,
		Deposit:    req.Deposit,
		MinStock:   req.MinStock,
		ExpiryDate: req.ExpiryDate,
		Status:     entity.ProductStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}

	if req.InitialStock > 0 {
		mv, err := uc.inventoryUC.RegisterMovement(ctx, inventory.MovementInput{
			ProductID:     product.ID,
			Type:          entity.MovementTypeInitial,
			Quantity:      req.InitialStock,
			ReferenceType: "product_create",
			UserID:        userID,
		})
		if err != nil {
			return nil, err
		}
		product.CurrentStock = mv.NewStock
	}
	return productResponse(product), nil
}

// GetByID loads one product.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return productResponse(product), nil
}

// GetByBarcode loads one product by its barcode, used by the scanner lookup.
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return productResponse(product), nil
}

// Update changes the set fields. Stock is not updatable here, only through
// movements.
func (uc *ProductUseCase) Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validateAmounts(req.BuyPrice, req.SellPrice, req.VATRate, req.Deposit); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	if req.Barcode != nil && *req.Barcode != product.Barcode {
		existing, err := uc.productRepo.GetByBarcode(*req.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, domain.ErrBarcodeExists
		}
		product.Barcode = *req.Barcode
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.BuyPrice != nil {
		product.BuyPrice = *req.BuyPrice
	}
	if req.SellPrice != nil {
		product.SellPrice = *req.SellPrice
	}
	if req.VATRate != nil {
		product.VATRate = *req.VATRate
	}
	if req.Deposit != nil {
		product.Deposit = *req.Deposit
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	if req.ExpiryDate != nil {
		product.ExpiryDate = req.ExpiryDate
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return productResponse(product), nil
}

// Delete deactivates the product. History stays intact.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.productRepo.SetStatus(id, entity.ProductStatusInactive)
}

// List pages through products, optionally filtered by status.
func (uc *ProductUseCase) List(ctx context.Context, status string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range products {
		out.Items = append(out.Items, *productResponse(p))
	}
	return out, nil
}

// ListLowStock returns active products at or below their minimum stock.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *productResponse(p))
	}
	return out, nil
}

func productResponse(p *entity.Product) *dto.ProductResponse {
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
