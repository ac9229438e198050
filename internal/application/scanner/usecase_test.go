package scanner

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/application/inventory"
	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	domwaste "github.com/automaten-pro/automaten-api/internal/domain/waste"
)

type stubProducts struct {
	byBarcode map[string]*entity.Product
}

func (s *stubProducts) Create(p *entity.Product) error { return nil }

func (s *stubProducts) GetByID(string) (*entity.Product, error) { return nil, nil }

func (s *stubProducts) GetByBarcode(barcode string) (*entity.Product, error) {
	p, ok := s.byBarcode[barcode]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *stubProducts) GetForUpdate(string) (*entity.Product, error) { return nil, nil }

func (s *stubProducts) Update(*entity.Product) error { return nil }

func (s *stubProducts) UpdateStock(string, int) error { return nil }

func (s *stubProducts) SetStatus(string, string) error { return nil }

func (s *stubProducts) List(string, int, int) ([]*entity.Product, error) { return nil, nil }

func (s *stubProducts) CountActiveByCategory(string) (int, error) { return 0, nil }

func (s *stubProducts) ListExpiring(int) ([]*entity.Product, error) { return nil, nil }

func (s *stubProducts) ListLowStock() ([]*entity.Product, error) { return nil, nil }

type stubSales struct {
	open map[string]*entity.SalesSession
}

func (s *stubSales) CreateSession(*entity.SalesSession) error { return nil }

func (s *stubSales) GetSession(string) (*entity.SalesSession, error) { return nil, nil }

func (s *stubSales) GetOpenByMachine(machineID string) (*entity.SalesSession, error) {
	return s.open[machineID], nil
}

func (s *stubSales) CloseSession(*entity.SalesSession) error { return nil }

func (s *stubSales) MarkEmailSent(string) error { return nil }

func (s *stubSales) CountOpen() (int, error) { return 0, nil }

func (s *stubSales) ListSessions(time.Time, time.Time, int, int) ([]*entity.SalesSession, error) {
	return nil, nil
}

func (s *stubSales) AddItem(*entity.SalesItem) error { return nil }

func (s *stubSales) ListItems(string) ([]*entity.SalesItem, error) { return nil, nil }

type stubRestocker struct {
	last inventory.MovementInput
}

func (s *stubRestocker) RegisterMovement(_ context.Context, input inventory.MovementInput) (*entity.StockMovement, error) {
	s.last = input
	return &entity.StockMovement{NewStock: 15, Quantity: input.Quantity, Type: input.Type}, nil
}

type stubDisposer struct {
	last dto.LogDisposalRequest
}

func (s *stubDisposer) LogDisposal(_ context.Context, req dto.LogDisposalRequest, _ string) (*dto.DisposalResponse, error) {
	s.last = req
	return &dto.DisposalResponse{
		Quantity:  req.Quantity,
		NewStock:  9,
		TotalCost: decimal.RequireFromString("1.50"),
	}, nil
}

type stubSeller struct {
	sessionID string
	last      dto.AddItemRequest
}

func (s *stubSeller) AddItem(_ context.Context, sessionID string, req dto.AddItemRequest, _ string) (*dto.SessionItemDTO, error) {
	s.sessionID = sessionID
	s.last = req
	return &dto.SessionItemDTO{Quantity: req.Quantity}, nil
}

type stubCreator struct {
	last dto.CreateProductRequest
}

func (s *stubCreator) Create(_ context.Context, req dto.CreateProductRequest, _ string) (*dto.ProductResponse, error) {
	s.last = req
	return &dto.ProductResponse{ID: "new-id", Name: req.Name, Barcode: req.Barcode}, nil
}

const colaBarcode = "4000177415000"

func scanFixture() (*UseCase, *stubRestocker, *stubDisposer, *stubSeller, *stubCreator) {
	products := &stubProducts{byBarcode: map[string]*entity.Product{
		colaBarcode: {
			ID: "p1", Name: "Cola 0.33l", Barcode: colaBarcode,
			CurrentStock: 10, Status: entity.ProductStatusActive,
		},
	}}
	sales := &stubSales{open: map[string]*entity.SalesSession{
		"m1": {ID: "s1", MachineID: "m1", Status: entity.SessionStatusOpen},
	}}
	restocker := &stubRestocker{}
	disposer := &stubDisposer{}
	seller := &stubSeller{}
	creator := &stubCreator{}
	uc := NewUseCase(products, sales, restocker, disposer, seller, creator)
	return uc, restocker, disposer, seller, creator
}

func TestLookup(t *testing.T) {
	uc, _, _, _, _ := scanFixture()

	product, err := uc.Lookup(context.Background(), colaBarcode)
	require.NoError(t, err)
	assert.Equal(t, "p1", product.ID)

	_, err = uc.Lookup(context.Background(), "0000000000000")
	assert.Equal(t, "PRODUCT_NOT_FOUND", domain.CodeOf(err))
}

func TestDispatchUnknownAction(t *testing.T) {
	uc, _, _, _, _ := scanFixture()

	_, err := uc.Dispatch(context.Background(), dto.ScanActionRequest{
		Action: "vaporize", Barcode: colaBarcode,
	}, "u1")
	assert.Equal(t, "INVALID_ACTION", domain.CodeOf(err))
}

func TestDispatchSell(t *testing.T) {
	uc, _, _, seller, _ := scanFixture()

	resp, err := uc.Dispatch(context.Background(), dto.ScanActionRequest{
		Action: dto.ScanActionSell, Barcode: colaBarcode, Quantity: 2, MachineID: "m1",
	}, "u1")
	require.NoError(t, err)

	assert.Equal(t, "s1", seller.sessionID)
	assert.Equal(t, 2, seller.last.Quantity)
	assert.Equal(t, dto.ScanActionSell, resp.Action)
}

func TestDispatchSellRequiresMachineAndOpenSession(t *testing.T) {
	uc, _, _, _, _ := scanFixture()

	_, err := uc.Dispatch(context.Background(), dto.ScanActionRequest{
		Action: dto.ScanActionSell, Barcode: colaBarcode,
	}, "u1")
	assert.Equal(t, "VALIDATION", domain.CodeOf(err))

	_, err = uc.Dispatch(context.Background(), dto.ScanActionRequest{
		Action: dto.ScanActionSell, Barcode: colaBarcode, MachineID: "m9",
	}, "u1")
	assert.Equal(t, "SESSION_NOT_FOUND", domain.CodeOf(err))
}

func TestDispatchRestockDefaultsQuantity(t *testing.T) {
	uc, restocker, _, _, _ := scanFixture()

	resp, err := uc.Dispatch(context.Background(), dto.ScanActionRequest{
		Action: dto.ScanActionRestock, Barcode: colaBarcode,
	}, "u1")
	require.NoError(t, err)

	assert.Equal(t, 1, restocker.last.Quantity)
	assert.Equal(t, entity.MovementTypeIn, restocker.last.Type)
	assert.Equal(t, "restock", restocker.last.ReferenceType)
	assert.Equal(t, 15, resp.NewStock)
}

func TestDispatchDispose(t *testing.T) {
	uc, _, disposer, _, _ := scanFixture()

	resp, err := uc.Dispatch(context.Background(), dto.ScanActionRequest{
		Action: dto.ScanActionDispose, Barcode: colaBarcode, Quantity: 1,
		Reason: domwaste.ReasonExpired,
	}, "u1")
	require.NoError(t, err)

	assert.Equal(t, "p1", disposer.last.ProductID)
	assert.Equal(t, domwaste.ReasonExpired, disposer.last.Reason)
	assert.Equal(t, 9, resp.NewStock)
}

func TestDispatchCreateNew(t *testing.T) {
	uc, _, _, _, creator := scanFixture()

	resp, err := uc.Dispatch(context.Background(), dto.ScanActionRequest{
		Action: dto.ScanActionCreateNew, Barcode: "1111111111111",
	}, "u1")
	require.NoError(t, err)

	assert.Equal(t, "1111111111111", creator.last.Barcode)
	assert.Equal(t, "New product 1111111111111", creator.last.Name)
	assert.Equal(t, "new-id", resp.Product.ID)
}
