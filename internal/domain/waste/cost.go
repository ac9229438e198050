package waste

import "github.com/shopspring/decimal"

// Cost is the monetary impact of one disposal.
type Cost struct {
	UnitCost           decimal.Decimal
	TotalCost          decimal.Decimal
	TaxDeductible      bool
	EstimatedTaxSaving decimal.Decimal // TotalCost * taxRate, zero for non-deductible reasons
}

// CalculateCost values a disposal at purchase cost. taxRate is a fraction
// (0.19 for 19%); the saving is an estimate, the actual claim happens in the
// yearly tax filing.
func CalculateCost(quantity int, buyPrice decimal.Decimal, reason Reason, taxRate decimal.Decimal) Cost {
	total := buyPrice.Mul(decimal.NewFromInt(int64(quantity)))
	c := Cost{
		UnitCost:      buyPrice,
		TotalCost:     total,
		TaxDeductible: reason.TaxDeductible,
	}
	if reason.TaxDeductible {
		c.EstimatedTaxSaving = total.Mul(taxRate).Round(2)
	} else {
		c.EstimatedTaxSaving = decimal.Zero
	}
	return c
}
