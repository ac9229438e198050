package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sales session status values.
const (
	SessionStatusOpen   = "open"
	SessionStatusClosed = "closed"
)

// SalesSession groups the items sold at one machine between opening and
// closing. Totals are computed at close time and are final.
type SalesSession struct {
	ID           string
	MachineID    string
	Status       string
	TotalNet     decimal.Decimal
	TotalVAT     decimal.Decimal
	TotalDeposit decimal.Decimal
	TotalGross   decimal.Decimal
	ItemCount    int
	EmailSent    bool
	OpenedBy     string
	OpenedAt     time.Time
	ClosedAt     *time.Time
}

// SalesItem is one sold line within a session. Prices are captured at sale
// time so later product edits do not rewrite history.
type SalesItem struct {
	ID        string
	SessionID string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal // gross sell price per unit, VAT included
	VATRate   decimal.Decimal
	Deposit   decimal.Decimal // per unit
	LineTotal decimal.Decimal // (UnitPrice + Deposit) * Quantity
	CreatedAt time.Time
}

// Net returns the VAT-exclusive share of the line (deposit excluded).
func (i *SalesItem) Net() decimal.Decimal {
	gross := i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
	divisor := decimal.NewFromInt(1).Add(i.VATRate.Div(decimal.NewFromInt(100)))
	return gross.DivRound(divisor, 4)
}

// VAT returns the VAT share of the line.
func (i *SalesItem) VAT() decimal.Decimal {
	gross := i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
	return gross.Sub(i.Net())
}

// DepositTotal returns the deposit share of the line.
func (i *SalesItem) DepositTotal() decimal.Decimal {
	return i.Deposit.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
