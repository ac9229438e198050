package waste

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
	domwaste "github.com/automaten-pro/automaten-api/internal/domain/waste"
)

const topWasteProductsLimit = 10

// trendFlatBand: cost deltas below one percent count as flat.
var trendFlatBand = decimal.NewFromInt(1)

// AnalysisUseCase computes the waste pattern analysis over a filtered window.
type AnalysisUseCase struct {
	reportRepo repository.ReportRepository
}

// NewAnalysisUseCase builds the analysis use case.
func NewAnalysisUseCase(reportRepo repository.ReportRepository) *AnalysisUseCase {
	return &AnalysisUseCase{reportRepo: reportRepo}
}

// Analyze aggregates the window by reason, category, day, weekday and product
// and compares against the preceding window of equal length. Returns
// ErrNoWasteData when no entry matches.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, req dto.WasteAnalysisRequest) (*dto.WasteAnalysisResponse, error) {
	periodDays := req.PeriodDays
	if periodDays <= 0 {
		periodDays = 30
	}
	to := time.Now()
	from := to.AddDate(0, 0, -periodDays)
	filters := repository.WasteFilters{
		Reasons:    req.Reasons,
		CategoryID: req.CategoryID,
		MinCost:    req.MinCost,
	}

	summary, err := uc.reportRepo.WasteSummary(ctx, from, to, filters)
	if err != nil {
		return nil, err
	}
	if summary.Entries == 0 {
		return nil, domain.ErrNoWasteData
	}

	byReason, err := uc.reportRepo.WasteByReason(ctx, from, to, filters)
	if err != nil {
		return nil, err
	}
	byCategory, err := uc.reportRepo.WasteByCategory(ctx, from, to, filters)
	if err != nil {
		return nil, err
	}
	byDay, err := uc.reportRepo.WasteByDay(ctx, from, to, filters)
	if err != nil {
		return nil, err
	}
	topProducts, err := uc.reportRepo.TopWasteProducts(ctx, from, to, filters, topWasteProductsLimit)
	if err != nil {
		return nil, err
	}
	previous, err := uc.reportRepo.WasteSummary(ctx, from.AddDate(0, 0, -periodDays), from, filters)
	if err != nil {
		return nil, err
	}

	resp := &dto.WasteAnalysisResponse{
		Summary: dto.WasteSummaryDTO{
			From:               from,
			To:                 to,
			Entries:            summary.Entries,
			Units:              summary.Units,
			TotalCost:          summary.TotalCost,
			DeductibleCost:     summary.DeductibleCost,
			EstimatedTaxSaving: summary.EstimatedTaxSaving,
			AvgCostPerDay:      summary.TotalCost.DivRound(decimal.NewFromInt(int64(periodDays)), 2),
		},
		ByReason:    reasonRows(byReason, summary.TotalCost),
		ByCategory:  categoryRows(byCategory),
		ByDay:       dayRows(byDay),
		ByWeekday:   weekdayRows(byDay),
		TopProducts: productRows(topProducts),
		Trend:       trend(previous.TotalCost, summary.TotalCost),
	}
	return resp, nil
}

func reasonRows(rows []repository.WasteReasonBreakdown, total decimal.Decimal) []dto.WasteReasonDTO {
	hundred := decimal.NewFromInt(100)
	out := make([]dto.WasteReasonDTO, 0, len(rows))
	for _, r := range rows {
		label := r.Reason
		if cat, ok := domwaste.LookupReason(r.Reason); ok {
			label = cat.Label
		}
		share := decimal.Zero
		if total.IsPositive() {
			share = r.TotalCost.Div(total).Mul(hundred).Round(1)
		}
		out = append(out, dto.WasteReasonDTO{
			Reason:    r.Reason,
			Label:     label,
			Entries:   r.Entries,
			Units:     r.Units,
			TotalCost: r.TotalCost,
			CostShare: share,
		})
	}
	return out
}

func categoryRows(rows []repository.WasteCategoryBreakdown) []dto.WasteCategoryDTO {
	out := make([]dto.WasteCategoryDTO, 0, len(rows))
	for _, r := range rows {
		name := r.CategoryName
		if name == "" {
			name = "Uncategorized"
		}
		out = append(out, dto.WasteCategoryDTO{
			CategoryID:   r.CategoryID,
			CategoryName: name,
			Entries:      r.Entries,
			Units:        r.Units,
			TotalCost:    r.TotalCost,
		})
	}
	return out
}

func dayRows(points []repository.WasteDailyPoint) []dto.WasteDayDTO {
	out := make([]dto.WasteDayDTO, 0, len(points))
	for _, p := range points {
		out = append(out, dto.WasteDayDTO{
			Day:       p.Day.Format("2006-01-02"),
			Entries:   p.Entries,
			TotalCost: p.TotalCost,
		})
	}
	return out
}

// weekdayRows folds the daily series into a Monday-first weekday distribution.
func weekdayRows(points []repository.WasteDailyPoint) []dto.WasteWeekdayDTO {
	type bucket struct {
		entries int
		cost    decimal.Decimal
	}
	buckets := make(map[time.Weekday]*bucket, 7)
	for _, p := range points {
		wd := p.Day.Weekday()
		b, ok := buckets[wd]
		if !ok {
			b = &bucket{cost: decimal.Zero}
			buckets[wd] = b
		}
		b.entries += p.Entries
		b.cost = b.cost.Add(p.TotalCost)
	}

	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	out := make([]dto.WasteWeekdayDTO, 0, len(order))
	for _, wd := range order {
		row := dto.WasteWeekdayDTO{Weekday: wd.String(), TotalCost: decimal.Zero}
		if b, ok := buckets[wd]; ok {
			row.Entries = b.entries
			row.TotalCost = b.cost
		}
		out = append(out, row)
	}
	return out
}

func productRows(rows []repository.WasteProductTotal) []dto.WasteProductDTO {
	out := make([]dto.WasteProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.WasteProductDTO{
			ProductID: r.ProductID,
			Name:      r.ProductName,
			Barcode:   r.Barcode,
			Entries:   r.Entries,
			Units:     r.Units,
			TotalCost: r.TotalCost,
		})
	}
	return out
}

// trend compares the current window cost against the preceding window.
func trend(previous, current decimal.Decimal) dto.WasteTrendDTO {
	t := dto.WasteTrendDTO{
		PreviousCost: previous,
		CurrentCost:  current,
		DeltaPct:     decimal.Zero,
		Direction:    "flat",
	}
	switch {
	case previous.IsPositive():
		t.DeltaPct = current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(1)
	case current.IsPositive():
		// no baseline: any cost counts as a full increase
		t.DeltaPct = decimal.NewFromInt(100)
	}
	switch {
	case t.DeltaPct.GreaterThanOrEqual(trendFlatBand):
		t.Direction = "up"
	case t.DeltaPct.LessThanOrEqual(trendFlatBand.Neg()):
		t.Direction = "down"
	}
	return t
}
