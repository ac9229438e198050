package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

// ABC classification boundaries (cumulative revenue share).
var (
	abcBoundaryA = decimal.NewFromInt(80)
	abcBoundaryB = decimal.NewFromInt(95)
)

// Turnover bands: units sold per unit of stock in the period.
var (
	turnoverSlow = decimal.NewFromFloat(0.5)
	turnoverFast = decimal.NewFromInt(2)
)

// AnalysisUseCase read-only inventory analytics: expiring stock, ABC
// classification and turnover.
type AnalysisUseCase struct {
	productRepo repository.ProductRepository
	reportRepo  repository.ReportRepository
}

// NewAnalysisUseCase builds the analytics use case.
func NewAnalysisUseCase(productRepo repository.ProductRepository, reportRepo repository.ReportRepository) *AnalysisUseCase {
	return &AnalysisUseCase{productRepo: productRepo, reportRepo: reportRepo}
}

// GetExpiringProducts lists active products expiring within the window,
// soonest first.
func (uc *AnalysisUseCase) GetExpiringProducts(withinDays int) ([]dto.ExpiringProductDTO, error) {
	if withinDays <= 0 {
		withinDays = 7
	}
	products, err := uc.productRepo.ListExpiring(withinDays)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.ExpiringProductDTO, 0, len(products))
	for _, p := range products {
		if p.ExpiryDate == nil {
			continue
		}
		days := int(p.ExpiryDate.Sub(now).Hours() / 24)
		out = append(out, dto.ExpiringProductDTO{
			ProductID:    p.ID,
			Name:         p.Name,
			Barcode:      p.Barcode,
			CurrentStock: p.CurrentStock,
			ExpiryDate:   *p.ExpiryDate,
			DaysLeft:     days,
		})
	}
	return out, nil
}

// GetABCAnalysis classifies products by revenue contribution over the
// period: A up to 80% cumulative share, B up to 95%, C the rest.
func (uc *AnalysisUseCase) GetABCAnalysis(ctx context.Context, periodDays int) ([]dto.ABCClassDTO, error) {
	if periodDays <= 0 {
		periodDays = 90
	}
	to := time.Now()
	from := to.AddDate(0, 0, -periodDays)
	revenues, err := uc.reportRepo.ProductRevenues(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return ClassifyABC(revenues), nil
}

// ClassifyABC is the pure classification over pre-aggregated revenues.
// Input order does not matter; output is sorted by revenue descending.
func ClassifyABC(revenues []repository.ProductRevenue) []dto.ABCClassDTO {
	sorted := make([]repository.ProductRevenue, len(revenues))
	copy(sorted, revenues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Revenue.GreaterThan(sorted[j].Revenue)
	})

	total := decimal.Zero
	for _, r := range sorted {
		total = total.Add(r.Revenue)
	}

	out := make([]dto.ABCClassDTO, 0, len(sorted))
	hundred := decimal.NewFromInt(100)
	cumulative := decimal.Zero
	for _, r := range sorted {
		share := decimal.Zero
		if total.IsPositive() {
			share = r.Revenue.Div(total).Mul(hundred).Round(2)
		}
		cumulative = cumulative.Add(share)
		class := "C"
		switch {
		case cumulative.LessThanOrEqual(abcBoundaryA):
			class = "A"
		case cumulative.LessThanOrEqual(abcBoundaryB):
			class = "B"
		}
		out = append(out, dto.ABCClassDTO{
			ProductID:    r.ProductID,
			Name:         r.ProductName,
			Revenue:      r.Revenue,
			RevenueShare: share,
			Cumulative:   cumulative,
			Class:        class,
		})
	}
	return out
}

// GetTurnoverAnalysis relates units sold in the period to the stock on hand
// and bands products into slow, normal and fast movers.
func (uc *AnalysisUseCase) GetTurnoverAnalysis(ctx context.Context, periodDays int) ([]dto.TurnoverDTO, error) {
	if periodDays <= 0 {
		periodDays = 30
	}
	to := time.Now()
	from := to.AddDate(0, 0, -periodDays)
	revenues, err := uc.reportRepo.ProductRevenues(ctx, from, to)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List("active", 1000, 0)
	if err != nil {
		return nil, err
	}
	stockByID := make(map[string]int, len(products))
	for _, p := range products {
		stockByID[p.ID] = p.CurrentStock
	}

	out := make([]dto.TurnoverDTO, 0, len(revenues))
	for _, r := range revenues {
		stock := stockByID[r.ProductID]
		rate := decimal.Zero
		if stock > 0 {
			rate = decimal.NewFromInt(int64(r.Units)).
				DivRound(decimal.NewFromInt(int64(stock)), 2)
		} else if r.Units > 0 {
			// everything sold out: treat as fast regardless of the ratio
			rate = turnoverFast
		}
		band := "normal"
		switch {
		case rate.LessThan(turnoverSlow):
			band = "slow"
		case rate.GreaterThanOrEqual(turnoverFast):
			band = "fast"
		}
		out = append(out, dto.TurnoverDTO{
			ProductID:    r.ProductID,
			Name:         r.ProductName,
			UnitsSold:    r.Units,
			CurrentStock: stock,
			TurnoverRate: rate,
			Band:         band,
		})
	}
	return out, nil
}
