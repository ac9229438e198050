// Package report computes the dashboard, KPI and trend figures from the
// aggregation queries.
package report

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// SettingExpiryDays overrides the configured expiring-soon window.
const SettingExpiryDays = "report.expiry_days"

// Settings reads runtime-tunable report options from the settings store.
type Settings interface {
	GetInt(key string, def int) int
}

// UseCase serves the read-only business reports.
type UseCase struct {
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
	salesRepo   repository.SalesRepository
	settings    Settings
	expiryDays  int
}

// NewUseCase builds the report use case. expiryDays is the default
// expiring-soon window of the dashboard.
func NewUseCase(
	reportRepo repository.ReportRepository,
	productRepo repository.ProductRepository,
	salesRepo repository.SalesRepository,
	settings Settings,
	expiryDays int,
) *UseCase {
	if expiryDays <= 0 {
		expiryDays = 7
	}
	return &UseCase{
		reportRepo:  reportRepo,
		productRepo: productRepo,
		salesRepo:   salesRepo,
		settings:    settings,
		expiryDays:  expiryDays,
	}
}

func (uc *UseCase) expiryWindow() int {
	if uc.settings == nil {
		return uc.expiryDays
	}
	if d := uc.settings.GetInt(SettingExpiryDays, uc.expiryDays); d > 0 {
		return d
	}
	return uc.expiryDays
}

// GetDashboard collects the widget data. The independent queries run
// concurrently; the first error wins.
func (uc *UseCase) GetDashboard(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error

		today       repository.SalesMetrics
		month       repository.SalesMetrics
		top         []repository.ProductRevenue
		lowStock    int
		expiring    int
		openCount   int
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(5)
	go func() {
		defer wg.Done()
		m, err := uc.reportRepo.GetSalesMetrics(ctx, todayStart, now)
		if err != nil {
			fail(err)
			return
		}
		today = m
	}()
	go func() {
		defer wg.Done()
		m, err := uc.reportRepo.GetSalesMetrics(ctx, monthStart, now)
		if err != nil {
			fail(err)
			return
		}
		month = m
	}()
	go func() {
		defer wg.Done()
		t, err := uc.reportRepo.TopProducts(ctx, monthStart, now, 5)
		if err != nil {
			fail(err)
			return
		}
		top = t
	}()
	go func() {
		defer wg.Done()
		low, err := uc.productRepo.ListLowStock()
		if err != nil {
			fail(err)
			return
		}
		exp, err := uc.productRepo.ListExpiring(uc.expiryWindow())
		if err != nil {
			fail(err)
			return
		}
		lowStock, expiring = len(low), len(exp)
	}()
	go func() {
		defer wg.Done()
		n, err := uc.salesRepo.CountOpen()
		if err != nil {
			fail(err)
			return
		}
		openCount = n
	}()
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	out := &dto.DashboardSummaryDTO{
		TodayRevenue:     today.Gross.Round(2),
		TodayMargin:      today.Gross.Sub(today.COGS).Round(2),
		MonthRevenue:     month.Gross.Round(2),
		MonthMargin:      month.Gross.Sub(month.COGS).Round(2),
		MonthWasteCost:   month.WasteCost.Round(2),
		LowStockCount:    lowStock,
		ExpiringCount:    expiring,
		OpenSessionCount: openCount,
		DateLabel:        now.Format("2006-01-02"),
	}
	out.TopProducts = make([]dto.TopProductDTO, 0, len(top))
	for _, p := range top {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID: p.ProductID,
			Name:      p.ProductName,
			Units:     p.Units,
			Revenue:   p.Revenue,
		})
	}
	return out, nil
}

// GetKPIs computes the key figures over the period.
func (uc *UseCase) GetKPIs(ctx context.Context, periodDays int) (*dto.KPIResponse, error) {
	if periodDays <= 0 {
		periodDays = 30
	}
	to := time.Now()
	from := to.AddDate(0, 0, -periodDays)
	m, err := uc.reportRepo.GetSalesMetrics(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := &dto.KPIResponse{
		PeriodDays:      periodDays,
		GrossRevenue:    m.Gross.Round(2),
		GrossMarginPct:  decimal.Zero,
		WasteRatioPct:   decimal.Zero,
		AvgSessionValue: decimal.Zero,
		UnitsSold:       m.Units,
		Sessions:        m.Sessions,
	}
	if m.Gross.IsPositive() {
		out.GrossMarginPct = m.Gross.Sub(m.COGS).Div(m.Gross).Mul(hundred).Round(1)
		out.WasteRatioPct = m.WasteCost.Div(m.Gross).Mul(hundred).Round(1)
	}
	if m.Sessions > 0 {
		out.AvgSessionValue = m.Gross.DivRound(decimal.NewFromInt(int64(m.Sessions)), 2)
	}
	return out, nil
}

// GetTrends compares the period against the preceding one of equal length.
func (uc *UseCase) GetTrends(ctx context.Context, periodDays int) (*dto.TrendResponse, error) {
	if periodDays <= 0 {
		periodDays = 30
	}
	to := time.Now()
	from := to.AddDate(0, 0, -periodDays)
	current, err := uc.reportRepo.GetSalesMetrics(ctx, from, to)
	if err != nil {
		return nil, err
	}
	previous, err := uc.reportRepo.GetSalesMetrics(ctx, from.AddDate(0, 0, -periodDays), from)
	if err != nil {
		return nil, err
	}

	return &dto.TrendResponse{
		PeriodDays:      periodDays,
		RevenueCurrent:  current.Gross.Round(2),
		RevenuePrevious: previous.Gross.Round(2),
		RevenueDeltaPct: deltaPct(previous.Gross, current.Gross),
		WasteCurrent:    current.WasteCost.Round(2),
		WastePrevious:   previous.WasteCost.Round(2),
		WasteDeltaPct:   deltaPct(previous.WasteCost, current.WasteCost),
	}, nil
}

func deltaPct(previous, current decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(1)
}
