package sales

import (
	"context"
	"time"

	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

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

// memSales is an in-memory SalesRepository for tests.
type memSales struct {
	sessions  map[string]*entity.SalesSession
	items     []*entity.SalesItem
	lastLimit int
}

func newMemSales() *memSales {
	return &memSales{sessions: map[string]*entity.SalesSession{}}
}

func (m *memSales) CreateSession(s *entity.SalesSession) error {
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *memSales) GetSession(id string) (*entity.SalesSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSales) GetOpenByMachine(machineID string) (*entity.SalesSession, error) {
	for _, s := range m.sessions {
		if s.MachineID == machineID && s.Status == entity.SessionStatusOpen {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memSales) CloseSession(s *entity.SalesSession) error {
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *memSales) MarkEmailSent(id string) error {
	if s, ok := m.sessions[id]; ok {
		s.EmailSent = true
	}
	return nil
}

func (m *memSales) CountOpen() (int, error) {
	n := 0
	for _, s := range m.sessions {
		if s.Status == entity.SessionStatusOpen {
			n++
		}
	}
	return n, nil
}

func (m *memSales) ListSessions(_, _ time.Time, limit, _ int) ([]*entity.SalesSession, error) {
	m.lastLimit = limit
	out := make([]*entity.SalesSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (m *memSales) AddItem(item *entity.SalesItem) error {
	m.items = append(m.items, item)
	return nil
}

func (m *memSales) ListItems(sessionID string) ([]*entity.SalesItem, error) {
	out := []*entity.SalesItem{}
	for _, it := range m.items {
		if it.SessionID == sessionID {
			out = append(out, it)
		}
	}
	return out, nil
}

// fakeTxRunner runs the callback against the in-memory repos and rolls back
// their state when the callback fails.
type fakeTxRunner struct {
	products  *memProducts
	movements *memMovements
	sales     *memSales
}

func (r *fakeTxRunner) RunSale(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	salesRepo repository.SalesRepository,
) error) error {
	stockBefore := make(map[string]int, len(r.products.items))
	for id, p := range r.products.items {
		stockBefore[id] = p.CurrentStock
	}
	movBefore := len(r.movements.items)
	itemsBefore := len(r.sales.items)

	if err := fn(r.movements, r.products, r.sales); err != nil {
		for id, stock := range stockBefore {
			r.products.items[id].CurrentStock = stock
		}
		r.movements.items = r.movements.items[:movBefore]
		r.sales.items = r.sales.items[:itemsBefore]
		return err
	}
	return nil
}

type recordingNotifier struct {
	closed []*entity.SalesSession
}

func (n *recordingNotifier) SessionClosed(s *entity.SalesSession, _ []*entity.SalesItem) {
	n.closed = append(n.closed, s)
}
