package waste

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
	domwaste "github.com/automaten-pro/automaten-api/internal/domain/waste"
)

// optimizationPeriodDays: strategies need a quarter of history to be useful.
const optimizationPeriodDays = 90

// Thresholds for the pattern-based strategies. A weekday must carry at least
// seasonalPeakShare of the quarter's cost to count as a peak; waste units must
// make up at least overstockWasteShare of all moved units to count as
// systematic overfilling.
var (
	seasonalPeakShare   = decimal.NewFromFloat(0.30)
	seasonalReduction   = decimal.NewFromFloat(0.20)
	seasonalImplCost    = decimal.NewFromInt(100)
	overstockWasteShare = decimal.NewFromFloat(0.10)
	overstockReduction  = decimal.NewFromFloat(0.20)
	overstockImplCost   = decimal.NewFromInt(50)
)

// strategyRule maps a group of disposal reasons to one advisory measure with
// an assumed reduction rate and a one-off implementation cost.
type strategyRule struct {
	key         string
	title       string
	description string
	reasons     []string
	reduction   decimal.Decimal // fraction of the monthly cost assumed avoidable
	implCost    decimal.Decimal
}

var strategyRules = []strategyRule{
	{
		key:         "fifo_rotation",
		title:       "Strict FIFO rotation and expiry checks",
		description: "Refill machines front-to-back and pull items within 3 days of their best-before date for discounting.",
		reasons:     []string{domwaste.ReasonExpired, domwaste.ReasonSpoiled},
		reduction:   decimal.NewFromFloat(0.30),
		implCost:    decimal.NewFromInt(150),
	},
	{
		key:         "handling_maintenance",
		title:       "Handling training and spiral maintenance",
		description: "Most damage happens during refill and from worn dispensing spirals. Schedule quarterly maintenance.",
		reasons:     []string{domwaste.ReasonDamaged, domwaste.ReasonTechnicalDefect},
		reduction:   decimal.NewFromFloat(0.25),
		implCost:    decimal.NewFromInt(300),
	},
	{
		key:         "cooling_monitoring",
		title:       "Cooling chain monitoring",
		description: "A temperature logger per machine catches cooling failures before the whole load spoils.",
		reasons:     []string{domwaste.ReasonContaminated},
		reduction:   decimal.NewFromFloat(0.50),
		implCost:    decimal.NewFromInt(200),
	},
	{
		key:         "site_security",
		title:       "Site security for theft-prone machines",
		description: "Relocate or add camera coverage for machines with repeated theft and vandalism entries.",
		reasons:     []string{domwaste.ReasonTheft},
		reduction:   decimal.NewFromFloat(0.40),
		implCost:    decimal.NewFromInt(500),
	},
}

// OptimizationUseCase derives advisory reduction strategies from the last
// quarter of waste data. Output is informational only, nothing is persisted.
type OptimizationUseCase struct {
	reportRepo repository.ReportRepository
}

// NewOptimizationUseCase builds the optimization use case.
func NewOptimizationUseCase(reportRepo repository.ReportRepository) *OptimizationUseCase {
	return &OptimizationUseCase{reportRepo: reportRepo}
}

// Optimize matches the by-reason cost profile against the strategy rules,
// adds the seasonal and overstock pattern strategies and estimates monthly
// savings and payback. Returns ErrNoWasteData when the quarter has no entries.
func (uc *OptimizationUseCase) Optimize(ctx context.Context) (*dto.WasteOptimizationResponse, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -optimizationPeriodDays)

	byReason, err := uc.reportRepo.WasteByReason(ctx, from, to, repository.WasteFilters{})
	if err != nil {
		return nil, err
	}
	if len(byReason) == 0 {
		return nil, domain.ErrNoWasteData
	}
	byDay, err := uc.reportRepo.WasteByDay(ctx, from, to, repository.WasteFilters{})
	if err != nil {
		return nil, err
	}
	metrics, err := uc.reportRepo.GetSalesMetrics(ctx, from, to)
	if err != nil {
		return nil, err
	}

	costByReason := make(map[string]decimal.Decimal, len(byReason))
	for _, r := range byReason {
		costByReason[r.Reason] = r.TotalCost
	}

	months := decimal.NewFromInt(int64(optimizationPeriodDays / 30))
	strategies := make([]dto.WasteStrategyDTO, 0, len(strategyRules))
	totalMonthly := decimal.Zero
	implCost := decimal.Zero
	for _, rule := range strategyRules {
		groupCost := decimal.Zero
		for _, reason := range rule.reasons {
			if c, ok := costByReason[reason]; ok {
				groupCost = groupCost.Add(c)
			}
		}
		if !groupCost.IsPositive() {
			continue
		}
		monthlySaving := groupCost.Div(months).Mul(rule.reduction).Round(2)
		strategies = append(strategies, dto.WasteStrategyDTO{
			Key:                    rule.key,
			Title:                  rule.title,
			Description:            rule.description,
			EstimatedMonthlySaving: monthlySaving,
		})
		totalMonthly = totalMonthly.Add(monthlySaving)
		implCost = implCost.Add(rule.implCost)
	}

	if s := seasonalStrategy(byDay, months); s != nil {
		strategies = append(strategies, *s)
		totalMonthly = totalMonthly.Add(s.EstimatedMonthlySaving)
		implCost = implCost.Add(seasonalImplCost)
	}
	if s := overstockStrategy(byReason, metrics.Units, months); s != nil {
		strategies = append(strategies, *s)
		totalMonthly = totalMonthly.Add(s.EstimatedMonthlySaving)
		implCost = implCost.Add(overstockImplCost)
	}

	payback := decimal.Zero
	if totalMonthly.IsPositive() {
		payback = implCost.DivRound(totalMonthly, 1)
	}
	return &dto.WasteOptimizationResponse{
		AnalysisPeriodDays:    optimizationPeriodDays,
		Strategies:            strategies,
		TotalMonthlyPotential: totalMonthly,
		ImplementationCost:    implCost,
		PaybackMonths:         payback,
	}, nil
}

// seasonalStrategy fires when one weekday carries an outsized share of the
// quarter's waste cost, which points at a refill calendar mismatch.
func seasonalStrategy(points []repository.WasteDailyPoint, months decimal.Decimal) *dto.WasteStrategyDTO {
	total := decimal.Zero
	byWeekday := make(map[time.Weekday]decimal.Decimal, 7)
	for _, p := range points {
		wd := p.Day.Weekday()
		byWeekday[wd] = byWeekday[wd].Add(p.TotalCost)
		total = total.Add(p.TotalCost)
	}
	if !total.IsPositive() {
		return nil
	}

	peakDay := time.Monday
	peakCost := decimal.Zero
	for wd, cost := range byWeekday {
		if cost.GreaterThan(peakCost) {
			peakDay, peakCost = wd, cost
		}
	}
	if peakCost.Div(total).LessThan(seasonalPeakShare) {
		return nil
	}

	return &dto.WasteStrategyDTO{
		Key:   "seasonal_planning",
		Title: "Seasonal refill planning",
		Description: fmt.Sprintf(
			"Waste cost peaks on %ss. Shift refill volume and expiry checks away from the peak day and plan smaller loads around holidays and season changes.",
			peakDay),
		EstimatedMonthlySaving: peakCost.Div(months).Mul(seasonalReduction).Round(2),
	}
}

// overstockStrategy fires when the quarter's waste units are a large share of
// everything that moved through the machines. Needs sales data to compare
// against, so it stays silent when no units were sold.
func overstockStrategy(byReason []repository.WasteReasonBreakdown, unitsSold int, months decimal.Decimal) *dto.WasteStrategyDTO {
	if unitsSold <= 0 {
		return nil
	}
	wasteUnits := 0
	wasteCost := decimal.Zero
	for _, r := range byReason {
		wasteUnits += r.Units
		wasteCost = wasteCost.Add(r.TotalCost)
	}
	if wasteUnits == 0 || !wasteCost.IsPositive() {
		return nil
	}
	moved := decimal.NewFromInt(int64(wasteUnits + unitsSold))
	if decimal.NewFromInt(int64(wasteUnits)).Div(moved).LessThan(overstockWasteShare) {
		return nil
	}

	return &dto.WasteStrategyDTO{
		Key:                    "overstock_reduction",
		Title:                  "Smaller refill quantities for slow movers",
		Description:            "A large share of stocked units never sells. Cut refill quantities on slow-moving slots and let the low-stock alerts drive reordering.",
		EstimatedMonthlySaving: wasteCost.Div(months).Mul(overstockReduction).Round(2),
	}
}
