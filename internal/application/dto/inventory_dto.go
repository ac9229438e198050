package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body for POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Note      string `json:"note,omitempty"`
}

// MovementResponse one ledger row.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	ReferenceType string    `json:"reference_type,omitempty"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	Note          string    `json:"note,omitempty"`
	UserID        string    `json:"user_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ExpiringProductDTO one product approaching its best-before date.
type ExpiringProductDTO struct {
	ProductID    string    `json:"product_id"`
	Name         string    `json:"name"`
	Barcode      string    `json:"barcode"`
	CurrentStock int       `json:"current_stock"`
	ExpiryDate   time.Time `json:"expiry_date"`
	DaysLeft     int       `json:"days_left"`
}

// ABCClassDTO one product in the value-contribution classification.
type ABCClassDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	Revenue      decimal.Decimal `json:"revenue"`
	RevenueShare decimal.Decimal `json:"revenue_share_pct"`
	Cumulative   decimal.Decimal `json:"cumulative_pct"`
	Class        string          `json:"class"` // A, B or C
}

// TurnoverDTO one product's stock turnover in the period.
type TurnoverDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	UnitsSold    int             `json:"units_sold"`
	CurrentStock int             `json:"current_stock"`
	TurnoverRate decimal.Decimal `json:"turnover_rate"` // units sold / current stock
	Band         string          `json:"band"`          // slow, normal, fast
}
