package sales

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func cola() *entity.Product {
	return &entity.Product{
		ID:           "p-cola",
		Name:         "Cola 0.33l",
		Barcode:      "4000177415000",
		BuyPrice:     dec("0.75"),
		SellPrice:    dec("1.50"),
		VATRate:      dec("19"),
		Deposit:      dec("0.25"),
		CurrentStock: 10,
		Status:       entity.ProductStatusActive,
	}
}

func water() *entity.Product {
	return &entity.Product{
		ID:           "p-water",
		Name:         "Water 0.5l",
		Barcode:      "4311501659714",
		BuyPrice:     dec("0.30"),
		SellPrice:    dec("1.00"),
		VATRate:      dec("19"),
		Deposit:      dec("0.25"),
		CurrentStock: 5,
		Status:       entity.ProductStatusActive,
	}
}

func newSalesFixture(products ...*entity.Product) (*UseCase, *fakeTxRunner, *recordingNotifier) {
	prodRepo := newMemProducts(products...)
	salesRepo := newMemSales()
	runner := &fakeTxRunner{
		products:  prodRepo,
		movements: &memMovements{},
		sales:     salesRepo,
	}
	notifier := &recordingNotifier{}
	uc := NewUseCase(runner, salesRepo, prodRepo, notifier, testLogger())
	return uc, runner, notifier
}

func openSession(t *testing.T, uc *UseCase, machineID string) string {
	t.Helper()
	resp, err := uc.OpenSession(context.Background(), machineID, "u1")
	require.NoError(t, err)
	return resp.ID
}

func TestOpenSessionOncePerMachine(t *testing.T) {
	uc, _, _ := newSalesFixture()

	first, err := uc.OpenSession(context.Background(), "m1", "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusOpen, first.Status)

	_, err = uc.OpenSession(context.Background(), "m1", "u1")
	assert.Equal(t, "SESSION_ALREADY_OPEN", domain.CodeOf(err))

	// a different machine is unaffected
	_, err = uc.OpenSession(context.Background(), "m2", "u1")
	assert.NoError(t, err)
}

func TestAddItemDecrementsStock(t *testing.T) {
	uc, runner, _ := newSalesFixture(cola())
	id := openSession(t, uc, "m1")

	item, err := uc.AddItem(context.Background(), id, dto.AddItemRequest{
		Barcode: "4000177415000", Quantity: 2,
	}, "u1")
	require.NoError(t, err)

	assert.True(t, item.UnitPrice.Equal(dec("1.50")))
	assert.True(t, item.LineTotal.Equal(dec("3.50")), "line total %s", item.LineTotal)
	assert.Equal(t, 8, runner.products.items["p-cola"].CurrentStock)

	require.Len(t, runner.movements.items, 1)
	mv := runner.movements.items[0]
	assert.Equal(t, entity.MovementTypeOut, mv.Type)
	assert.Equal(t, "sales_item", mv.ReferenceType)
	assert.Equal(t, item.ID, mv.ReferenceID)
}

func TestAddItemInsufficientStockRollsBack(t *testing.T) {
	uc, runner, _ := newSalesFixture(water())
	id := openSession(t, uc, "m1")

	_, err := uc.AddItem(context.Background(), id, dto.AddItemRequest{
		Barcode: "4311501659714", Quantity: 6,
	}, "u1")
	require.Error(t, err)
	assert.Equal(t, "INSUFFICIENT_STOCK", domain.CodeOf(err))

	assert.Equal(t, 5, runner.products.items["p-water"].CurrentStock)
	assert.Empty(t, runner.sales.items, "no sold line on rollback")
	assert.Empty(t, runner.movements.items)
}

func TestAddItemValidation(t *testing.T) {
	uc, _, _ := newSalesFixture(cola())
	id := openSession(t, uc, "m1")

	_, err := uc.AddItem(context.Background(), "missing", dto.AddItemRequest{Barcode: "4000177415000", Quantity: 1}, "u1")
	assert.Equal(t, "SESSION_NOT_FOUND", domain.CodeOf(err))

	_, err = uc.AddItem(context.Background(), id, dto.AddItemRequest{Barcode: "0000000000000", Quantity: 1}, "u1")
	assert.Equal(t, "PRODUCT_NOT_FOUND", domain.CodeOf(err))

	_, err = uc.AddItem(context.Background(), id, dto.AddItemRequest{Barcode: "4000177415000", Quantity: 0}, "u1")
	assert.Equal(t, "INVALID_QUANTITY", domain.CodeOf(err))
}

func TestCloseSessionTotals(t *testing.T) {
	uc, _, notifier := newSalesFixture(cola(), water())
	id := openSession(t, uc, "m1")

	_, err := uc.AddItem(context.Background(), id, dto.AddItemRequest{Barcode: "4000177415000", Quantity: 2}, "u1")
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), id, dto.AddItemRequest{Barcode: "4311501659714", Quantity: 1}, "u1")
	require.NoError(t, err)

	resp, err := uc.CloseSession(context.Background(), id)
	require.NoError(t, err)

	// 2x cola: gross 3.00, net 2.5210, vat 0.4790, deposit 0.50
	// 1x water: gross 1.00, net 0.8403, vat 0.1597, deposit 0.25
	assert.Equal(t, entity.SessionStatusClosed, resp.Status)
	assert.Equal(t, 3, resp.ItemCount)
	assert.True(t, resp.TotalNet.Equal(dec("3.36")), "net %s", resp.TotalNet)
	assert.True(t, resp.TotalVAT.Equal(dec("0.64")), "vat %s", resp.TotalVAT)
	assert.True(t, resp.TotalDeposit.Equal(dec("0.75")))
	assert.True(t, resp.TotalGross.Equal(dec("4.75")))
	require.NotNil(t, resp.ClosedAt)

	require.Len(t, notifier.closed, 1)
	assert.Equal(t, id, notifier.closed[0].ID)

	// closed sessions reject further items and a second close
	_, err = uc.AddItem(context.Background(), id, dto.AddItemRequest{Barcode: "4000177415000", Quantity: 1}, "u1")
	assert.Equal(t, "SESSION_CLOSED", domain.CodeOf(err))
	_, err = uc.CloseSession(context.Background(), id)
	assert.Equal(t, "SESSION_CLOSED", domain.CodeOf(err))
}

func TestCloseEmptySession(t *testing.T) {
	uc, _, _ := newSalesFixture()
	id := openSession(t, uc, "m1")

	resp, err := uc.CloseSession(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.ItemCount)
	assert.True(t, resp.TotalGross.IsZero())
}

func TestGetSessionDetails(t *testing.T) {
	uc, _, _ := newSalesFixture(cola())
	id := openSession(t, uc, "m1")
	_, err := uc.AddItem(context.Background(), id, dto.AddItemRequest{Barcode: "4000177415000", Quantity: 1}, "u1")
	require.NoError(t, err)

	details, err := uc.GetSessionDetails(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, details.Session.ID)
	require.Len(t, details.Items, 1)
	assert.Equal(t, "p-cola", details.Items[0].ProductID)

	_, err = uc.GetSessionDetails(context.Background(), "missing")
	assert.Equal(t, "SESSION_NOT_FOUND", domain.CodeOf(err))
}

func TestListSessionsPagesDefault(t *testing.T) {
	uc, runner, _ := newSalesFixture()
	openSession(t, uc, "m1")
	openSession(t, uc, "m2")

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	out, err := uc.ListSessions(context.Background(), from, to, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, 20, runner.sales.lastLimit, "default page size applied")
}
