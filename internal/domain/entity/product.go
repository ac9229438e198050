package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product status values. Rows are never hard-deleted; delete flips the status.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product is a vending machine article identified by its barcode.
// CurrentStock is only written through stock movements and never goes negative.
type Product struct {
	ID           string
	Name         string
	Barcode      string // unique across active and inactive rows
	CategoryID   string // empty if uncategorized
	BuyPrice     decimal.Decimal
	SellPrice    decimal.Decimal
	VATRate      decimal.Decimal // percent, e.g. 7 or 19
	Deposit      decimal.Decimal // bottle/can deposit added on top of the sell price
	CurrentStock int
	MinStock     int
	ExpiryDate   *time.Time
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active reports whether the product is sellable.
func (p *Product) Active() bool { return p.Status == ProductStatusActive }
