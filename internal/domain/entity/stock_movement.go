package entity

import "time"

// Stock movement types. The ledger is append-only.
const (
	MovementTypeIn               = "in"
	MovementTypeOut              = "out"
	MovementTypeDisposal         = "disposal"
	MovementTypeDisposalReversal = "disposal_reversal"
	MovementTypeAdjustment       = "adjustment"
	MovementTypeInitial          = "initial"
)

// StockMovement is one ledger entry changing a product's tracked quantity.
// Invariant: NewStock equals PreviousStock plus or minus Quantity depending on
// the direction, and matches the product's stock at the time of the write.
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string
	Quantity      int // always positive; direction is carried by Type
	PreviousStock int
	NewStock      int
	ReferenceType string // waste_entry, sales_item, restock, manual, ...
	ReferenceID   string
	Note          string
	UserID        string
	CreatedAt     time.Time
}
