package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WasteEntry is the audit record of destroyed or written-off inventory.
// Entries are created only by the disposal workflow and are immutable:
// no update or delete path exists (7-year tax retention).
type WasteEntry struct {
	ID                 string
	ProductID          string
	Quantity           int
	Reason             string // key into the disposal reason catalog
	UnitCost           decimal.Decimal
	TotalCost          decimal.Decimal
	TaxDeductible      bool
	EstimatedTaxSaving decimal.Decimal
	Photos             []string // stored photo paths, persisted as jsonb
	Note               string
	UserID             string
	CreatedAt          time.Time
}
