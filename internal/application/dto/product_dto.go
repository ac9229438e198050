package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body for POST /api/products.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required"`
	Barcode      string          `json:"barcode" validate:"required"`
	CategoryID   string          `json:"category_id,omitempty"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	SellPrice    decimal.Decimal `json:"sell_price"`
	VATRate      decimal.Decimal `json:"vat_rate"`
	Deposit      decimal.Decimal `json:"deposit"`
	InitialStock int             `json:"initial_stock" validate:"min=0"`
	MinStock     int             `json:"min_stock" validate:"min=0"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
}

// UpdateProductRequest body for PUT /api/products/{id}. Nil fields are left
// unchanged.
type UpdateProductRequest struct {
	Name       *string          `json:"name,omitempty"`
	Barcode    *string          `json:"barcode,omitempty"`
	CategoryID *string          `json:"category_id,omitempty"`
	BuyPrice   *decimal.Decimal `json:"buy_price,omitempty"`
	SellPrice  *decimal.Decimal `json:"sell_price,omitempty"`
	VATRate    *decimal.Decimal `json:"vat_rate,omitempty"`
	Deposit    *decimal.Decimal `json:"deposit,omitempty"`
	MinStock   *int             `json:"min_stock,omitempty"`
	ExpiryDate *time.Time       `json:"expiry_date,omitempty"`
}

// ProductResponse representation of a product.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Barcode      string          `json:"barcode"`
	CategoryID   string          `json:"category_id,omitempty"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	SellPrice    decimal.Decimal `json:"sell_price"`
	VATRate      decimal.Decimal `json:"vat_rate"`
	Deposit      decimal.Decimal `json:"deposit"`
	CurrentStock int             `json:"current_stock"`
	MinStock     int             `json:"min_stock"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse page of products.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
