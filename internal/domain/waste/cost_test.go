package waste_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automaten-pro/automaten-api/internal/domain/waste"
)

// TestCalculateCost_ExactVector pins the reference example: 3 units at a buy
// price of 0.75 disposed as expired must cost exactly 2.25. Decimal math, no
// float drift.
func TestCalculateCost_ExactVector(t *testing.T) {
	reason, ok := waste.LookupReason(waste.ReasonExpired)
	require.True(t, ok)

	cost := waste.CalculateCost(3, decimal.RequireFromString("0.75"), reason, decimal.RequireFromString("0.19"))

	assert.True(t, cost.TotalCost.Equal(decimal.RequireFromString("2.25")),
		"total cost must be exactly 2.25, got %s", cost.TotalCost)
	assert.True(t, cost.UnitCost.Equal(decimal.RequireFromString("0.75")))
	assert.True(t, cost.TaxDeductible)
	// 2.25 * 0.19 = 0.4275, rounded to cents
	assert.True(t, cost.EstimatedTaxSaving.Equal(decimal.RequireFromString("0.43")),
		"tax saving must round to 0.43, got %s", cost.EstimatedTaxSaving)
}

func TestCalculateCost_NonDeductibleHasNoSaving(t *testing.T) {
	reason, ok := waste.LookupReason(waste.ReasonTheft)
	require.True(t, ok)
	require.False(t, reason.TaxDeductible)

	cost := waste.CalculateCost(10, decimal.RequireFromString("1.20"), reason, decimal.RequireFromString("0.19"))

	assert.True(t, cost.TotalCost.Equal(decimal.RequireFromString("12.00")),
		"total cost must equal 12.00, got %s", cost.TotalCost)
	assert.False(t, cost.TaxDeductible)
	assert.True(t, cost.EstimatedTaxSaving.IsZero())
}

func TestReasonCatalog_Integrity(t *testing.T) {
	all := waste.Reasons()
	require.Len(t, all, 8, "the reason catalog is fixed at eight entries")

	seen := map[string]bool{}
	for _, r := range all {
		assert.NotEmpty(t, r.Key)
		assert.NotEmpty(t, r.Label)
		assert.Contains(t, []string{waste.SeverityLow, waste.SeverityMedium, waste.SeverityHigh, waste.SeverityCritical}, r.Severity)
		assert.False(t, seen[r.Key], "duplicate reason key %s", r.Key)
		seen[r.Key] = true

		got, ok := waste.LookupReason(r.Key)
		require.True(t, ok)
		assert.Equal(t, r, got)
	}

	_, ok := waste.LookupReason("shrinkage")
	assert.False(t, ok, "unknown keys must not resolve")
}

func TestReasonCatalog_PhotoEvidence(t *testing.T) {
	for _, key := range []string{waste.ReasonDamaged, waste.ReasonContaminated, waste.ReasonRecall} {
		r, ok := waste.LookupReason(key)
		require.True(t, ok)
		assert.True(t, r.RequiresPhoto, "%s must require photo evidence", key)
	}
	for _, key := range []string{waste.ReasonExpired, waste.ReasonSpoiled, waste.ReasonTheft, waste.ReasonTechnicalDefect, waste.ReasonOther} {
		r, ok := waste.LookupReason(key)
		require.True(t, ok)
		assert.False(t, r.RequiresPhoto, "%s must not require photo evidence", key)
	}
}
