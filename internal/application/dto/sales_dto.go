package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenSessionRequest body for POST /api/sales/sessions.
type OpenSessionRequest struct {
	MachineID string `json:"machine_id" validate:"required"`
}

// AddItemRequest body for POST /api/sales/sessions/{id}/items.
type AddItemRequest struct {
	Barcode  string `json:"barcode" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// SessionResponse representation of a sales session.
type SessionResponse struct {
	ID           string          `json:"id"`
	MachineID    string          `json:"machine_id"`
	Status       string          `json:"status"`
	TotalNet     decimal.Decimal `json:"total_net"`
	TotalVAT     decimal.Decimal `json:"total_vat"`
	TotalDeposit decimal.Decimal `json:"total_deposit"`
	TotalGross   decimal.Decimal `json:"total_gross"`
	ItemCount    int             `json:"item_count"`
	EmailSent    bool            `json:"email_sent"`
	OpenedAt     time.Time       `json:"opened_at"`
	ClosedAt     *time.Time      `json:"closed_at,omitempty"`
}

// SessionItemDTO one sold line.
type SessionItemDTO struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	VATRate   decimal.Decimal `json:"vat_rate"`
	Deposit   decimal.Decimal `json:"deposit"`
	LineTotal decimal.Decimal `json:"line_total"`
	CreatedAt time.Time       `json:"created_at"`
}

// SessionDetailsResponse session plus its items.
type SessionDetailsResponse struct {
	Session SessionResponse  `json:"session"`
	Items   []SessionItemDTO `json:"items"`
}
