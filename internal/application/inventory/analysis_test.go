package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

type stubReports struct {
	revenues []repository.ProductRevenue
}

func (s *stubReports) WasteSummary(context.Context, time.Time, time.Time, repository.WasteFilters) (repository.WasteSummary, error) {
	return repository.WasteSummary{}, nil
}

func (s *stubReports) WasteByReason(context.Context, time.Time, time.Time, repository.WasteFilters) ([]repository.WasteReasonBreakdown, error) {
	return nil, nil
}

func (s *stubReports) WasteByCategory(context.Context, time.Time, time.Time, repository.WasteFilters) ([]repository.WasteCategoryBreakdown, error) {
	return nil, nil
}

func (s *stubReports) WasteByDay(context.Context, time.Time, time.Time, repository.WasteFilters) ([]repository.WasteDailyPoint, error) {
	return nil, nil
}

func (s *stubReports) TopWasteProducts(context.Context, time.Time, time.Time, repository.WasteFilters, int) ([]repository.WasteProductTotal, error) {
	return nil, nil
}

func (s *stubReports) DeductibleEntries(context.Context, time.Time, time.Time) ([]repository.TaxReportRow, error) {
	return nil, nil
}

func (s *stubReports) GetSalesMetrics(context.Context, time.Time, time.Time) (repository.SalesMetrics, error) {
	return repository.SalesMetrics{}, nil
}

func (s *stubReports) TopProducts(context.Context, time.Time, time.Time, int) ([]repository.ProductRevenue, error) {
	return s.revenues, nil
}

func (s *stubReports) ProductRevenues(context.Context, time.Time, time.Time) ([]repository.ProductRevenue, error) {
	return s.revenues, nil
}

func rev(id, name string, units int, revenue string) repository.ProductRevenue {
	return repository.ProductRevenue{
		ProductID:   id,
		ProductName: name,
		Units:       units,
		Revenue:     decimal.RequireFromString(revenue),
	}
}

func TestClassifyABC(t *testing.T) {
	// shares: 60%, 25%, 10%, 5% -> cumulative 60, 85, 95, 100
	out := ClassifyABC([]repository.ProductRevenue{
		rev("p3", "Chips", 10, "100.00"),
		rev("p1", "Cola", 120, "600.00"),
		rev("p4", "Gum", 25, "50.00"),
		rev("p2", "Water", 90, "250.00"),
	})
	require.Len(t, out, 4)

	assert.Equal(t, "p1", out[0].ProductID)
	assert.Equal(t, "A", out[0].Class)
	assert.True(t, out[0].RevenueShare.Equal(decimal.RequireFromString("60")))

	assert.Equal(t, "p2", out[1].ProductID)
	assert.Equal(t, "B", out[1].Class)

	assert.Equal(t, "p3", out[2].ProductID)
	assert.Equal(t, "B", out[2].Class)
	assert.True(t, out[2].Cumulative.Equal(decimal.RequireFromString("95")))

	assert.Equal(t, "p4", out[3].ProductID)
	assert.Equal(t, "C", out[3].Class)
}

func TestClassifyABCEmpty(t *testing.T) {
	assert.Empty(t, ClassifyABC(nil))
}

func TestGetTurnoverAnalysisBands(t *testing.T) {
	products := newMemProducts(
		activeProduct("slow", 20),
		activeProduct("normal", 10),
		activeProduct("fast", 4),
		activeProduct("soldout", 0),
	)
	stub := &stubReports{revenues: []repository.ProductRevenue{
		rev("slow", "Candy", 5, "5.00"),     // 5/20 = 0.25
		rev("normal", "Cola", 10, "15.00"),  // 10/10 = 1.00
		rev("fast", "Water", 12, "12.00"),   // 12/4 = 3.00
		rev("soldout", "Chips", 8, "12.00"), // no stock left
	}}
	uc := NewAnalysisUseCase(products, stub)

	out, err := uc.GetTurnoverAnalysis(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, out, 4)

	bands := map[string]string{}
	for _, row := range out {
		bands[row.ProductID] = row.Band
	}
	assert.Equal(t, "slow", bands["slow"])
	assert.Equal(t, "normal", bands["normal"])
	assert.Equal(t, "fast", bands["fast"])
	assert.Equal(t, "fast", bands["soldout"])
}
