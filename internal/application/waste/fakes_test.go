package waste

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

// memProducts is an in-memory ProductRepository for tests.
type memProducts struct {
	items map[string]*entity.Product
}

func newMemProducts(products ...*entity.Product) *memProducts {
	m := &memProducts{items: map[string]*entity.Product{}}
	for _, p := range products {
		m.items[p.ID] = p
	}
	return m
}

func (m *memProducts) Create(p *entity.Product) error { m.items[p.ID] = p; return nil }

func (m *memProducts) GetByID(id string) (*entity.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range m.items {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProducts) GetForUpdate(id string) (*entity.Product, error) { return m.GetByID(id) }

func (m *memProducts) Update(p *entity.Product) error { m.items[p.ID] = p; return nil }

func (m *memProducts) UpdateStock(id string, stock int) error {
	if p, ok := m.items[id]; ok {
		p.CurrentStock = stock
	}
	return nil
}

func (m *memProducts) SetStatus(id, status string) error {
	if p, ok := m.items[id]; ok {
		p.Status = status
	}
	return nil
}

func (m *memProducts) List(string, int, int) ([]*entity.Product, error) { return nil, nil }

func (m *memProducts) CountActiveByCategory(string) (int, error) { return 0, nil }

func (m *memProducts) ListExpiring(int) ([]*entity.Product, error) { return nil, nil }

func (m *memProducts) ListLowStock() ([]*entity.Product, error) { return nil, nil }

// memMovements is an in-memory StockMovementRepository for tests.
type memMovements struct {
	items []*entity.StockMovement
}

func (m *memMovements) Create(mv *entity.StockMovement) error {
	m.items = append(m.items, mv)
	return nil
}

func (m *memMovements) ListByProduct(string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return m.items, nil
}

func (m *memMovements) ListRecent(int) ([]*entity.StockMovement, error) { return m.items, nil }

// memWastes is an in-memory WasteRepository for tests.
type memWastes struct {
	items []*entity.WasteEntry
}

func (m *memWastes) Create(e *entity.WasteEntry) error {
	m.items = append(m.items, e)
	return nil
}

func (m *memWastes) GetByID(id string) (*entity.WasteEntry, error) {
	for _, e := range m.items {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (m *memWastes) ListPeriod(time.Time, time.Time, int, int) ([]*entity.WasteEntry, error) {
	return m.items, nil
}

// fakeTxRunner runs the callback against the in-memory repos and rolls back
// their state when the callback fails.
type fakeTxRunner struct {
	products  *memProducts
	movements *memMovements
	wastes    *memWastes
}

func (r *fakeTxRunner) RunDisposal(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	wasteRepo repository.WasteRepository,
) error) error {
	stockBefore := make(map[string]int, len(r.products.items))
	for id, p := range r.products.items {
		stockBefore[id] = p.CurrentStock
	}
	movBefore := len(r.movements.items)
	wasteBefore := len(r.wastes.items)

	if err := fn(r.movements, r.products, r.wastes); err != nil {
		for id, stock := range stockBefore {
			r.products.items[id].CurrentStock = stock
		}
		r.movements.items = r.movements.items[:movBefore]
		r.wastes.items = r.wastes.items[:wasteBefore]
		return err
	}
	return nil
}

// mapSettings is an in-memory Settings store for tests.
type mapSettings map[string]decimal.Decimal

func (m mapSettings) GetDecimal(key string, def decimal.Decimal) decimal.Decimal {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}

// recordingNotifier captures alert calls.
type recordingNotifier struct {
	entries []*entity.WasteEntry
}

func (n *recordingNotifier) DisposalAlert(entry *entity.WasteEntry, _ string) {
	n.entries = append(n.entries, entry)
}

// stubReports is a canned ReportRepository for analysis and export tests.
type stubReports struct {
	summary        repository.WasteSummary
	previous       repository.WasteSummary
	byReason       []repository.WasteReasonBreakdown
	byCategory     []repository.WasteCategoryBreakdown
	byDay          []repository.WasteDailyPoint
	topProducts    []repository.WasteProductTotal
	taxRows        []repository.TaxReportRow
	salesMetrics   repository.SalesMetrics
	summaryCalls   int
	taxRowsQueried bool
}

func (s *stubReports) WasteSummary(_ context.Context, _, _ time.Time, _ repository.WasteFilters) (repository.WasteSummary, error) {
	s.summaryCalls++
	if s.summaryCalls > 1 {
		return s.previous, nil
	}
	return s.summary, nil
}

func (s *stubReports) WasteByReason(context.Context, time.Time, time.Time, repository.WasteFilters) ([]repository.WasteReasonBreakdown, error) {
	return s.byReason, nil
}

func (s *stubReports) WasteByCategory(context.Context, time.Time, time.Time, repository.WasteFilters) ([]repository.WasteCategoryBreakdown, error) {
	return s.byCategory, nil
}

func (s *stubReports) WasteByDay(context.Context, time.Time, time.Time, repository.WasteFilters) ([]repository.WasteDailyPoint, error) {
	return s.byDay, nil
}

func (s *stubReports) TopWasteProducts(context.Context, time.Time, time.Time, repository.WasteFilters, int) ([]repository.WasteProductTotal, error) {
	return s.topProducts, nil
}

func (s *stubReports) DeductibleEntries(context.Context, time.Time, time.Time) ([]repository.TaxReportRow, error) {
	s.taxRowsQueried = true
	return s.taxRows, nil
}

func (s *stubReports) GetSalesMetrics(context.Context, time.Time, time.Time) (repository.SalesMetrics, error) {
	return s.salesMetrics, nil
}

func (s *stubReports) TopProducts(context.Context, time.Time, time.Time, int) ([]repository.ProductRevenue, error) {
	return nil, nil
}

func (s *stubReports) ProductRevenues(context.Context, time.Time, time.Time) ([]repository.ProductRevenue, error) {
	return nil, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
