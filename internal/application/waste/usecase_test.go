package waste

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	domwaste "github.com/automaten-pro/automaten-api/internal/domain/waste"
	"github.com/automaten-pro/automaten-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func testProduct() *entity.Product {
	return &entity.Product{
		ID:           "p1",
		Name:         "Cola 0.33l",
		Barcode:      "4000177415000",
		BuyPrice:     dec("0.75"),
		SellPrice:    dec("1.50"),
		VATRate:      dec("19"),
		CurrentStock: 10,
		Status:       entity.ProductStatusActive,
	}
}

func newDisposalFixture(products ...*entity.Product) (*UseCase, *fakeTxRunner, *recordingNotifier) {
	repo := newMemProducts(products...)
	runner := &fakeTxRunner{
		products:  repo,
		movements: &memMovements{},
		wastes:    &memWastes{},
	}
	notifier := &recordingNotifier{}
	uc := NewUseCase(runner, repo, notifier, nil, testLogger(), 0.19, 50)
	return uc, runner, notifier
}

func TestLogDisposalRecordsEntryMovementAndStock(t *testing.T) {
	uc, runner, _ := newDisposalFixture(testProduct())

	resp, err := uc.LogDisposal(context.Background(), dto.LogDisposalRequest{
		ProductID: "p1",
		Quantity:  3,
		Reason:    domwaste.ReasonExpired,
		Note:      "best-before 2026-08-28",
	}, "u1")
	require.NoError(t, err)

	assert.Equal(t, "Cola 0.33l", resp.ProductName)
	assert.True(t, resp.TotalCost.Equal(dec("2.25")), "total cost %s", resp.TotalCost)
	assert.True(t, resp.UnitCost.Equal(dec("0.75")))
	assert.True(t, resp.TaxDeductible)
	assert.True(t, resp.EstimatedTaxSaving.Equal(dec("0.43")), "saving %s", resp.EstimatedTaxSaving)
	assert.Equal(t, 7, resp.NewStock)

	require.Len(t, runner.wastes.items, 1)
	entry := runner.wastes.items[0]
	assert.Equal(t, domwaste.ReasonExpired, entry.Reason)
	assert.Equal(t, "u1", entry.UserID)

	require.Len(t, runner.movements.items, 1)
	mv := runner.movements.items[0]
	assert.Equal(t, entity.MovementTypeDisposal, mv.Type)
	assert.Equal(t, 3, mv.Quantity)
	assert.Equal(t, 10, mv.PreviousStock)
	assert.Equal(t, 7, mv.NewStock)
	assert.Equal(t, "waste_entry", mv.ReferenceType)
	assert.Equal(t, entry.ID, mv.ReferenceID)

	assert.Equal(t, 7, runner.products.items["p1"].CurrentStock)
}

func TestLogDisposalValidation(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.LogDisposalRequest
		wantCode string
	}{
		{
			name:     "unknown product",
			req:      dto.LogDisposalRequest{ProductID: "nope", Quantity: 1, Reason: domwaste.ReasonExpired},
			wantCode: "PRODUCT_NOT_FOUND",
		},
		{
			name:     "zero quantity",
			req:      dto.LogDisposalRequest{ProductID: "p1", Quantity: 0, Reason: domwaste.ReasonExpired},
			wantCode: "INVALID_QUANTITY",
		},
		{
			name:     "negative quantity",
			req:      dto.LogDisposalRequest{ProductID: "p1", Quantity: -2, Reason: domwaste.ReasonExpired},
			wantCode: "INVALID_QUANTITY",
		},
		{
			name:     "unknown reason",
			req:      dto.LogDisposalRequest{ProductID: "p1", Quantity: 1, Reason: "melted"},
			wantCode: "INVALID_REASON",
		},
		{
			name:     "photo evidence missing",
			req:      dto.LogDisposalRequest{ProductID: "p1", Quantity: 1, Reason: domwaste.ReasonDamaged},
			wantCode: "PHOTO_REQUIRED",
		},
		{
			name:     "more than stock",
			req:      dto.LogDisposalRequest{ProductID: "p1", Quantity: 11, Reason: domwaste.ReasonExpired},
			wantCode: "INSUFFICIENT_STOCK",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, runner, _ := newDisposalFixture(testProduct())

			_, err := uc.LogDisposal(context.Background(), tt.req, "u1")
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, domain.CodeOf(err))

			assert.Empty(t, runner.wastes.items, "no waste entry on validation failure")
			assert.Empty(t, runner.movements.items, "no ledger row on validation failure")
			assert.Equal(t, 10, runner.products.items["p1"].CurrentStock, "stock untouched")
		})
	}
}

func TestLogDisposalInsufficientStockReportsAvailable(t *testing.T) {
	uc, _, _ := newDisposalFixture(testProduct())

	_, err := uc.LogDisposal(context.Background(), dto.LogDisposalRequest{
		ProductID: "p1", Quantity: 11, Reason: domwaste.ReasonExpired,
	}, "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10 available")
}

func TestLogDisposalInactiveProductRejected(t *testing.T) {
	p := testProduct()
	p.Status = entity.ProductStatusInactive
	uc, _, _ := newDisposalFixture(p)

	_, err := uc.LogDisposal(context.Background(), dto.LogDisposalRequest{
		ProductID: "p1", Quantity: 1, Reason: domwaste.ReasonExpired,
	}, "u1")
	assert.Equal(t, "PRODUCT_NOT_FOUND", domain.CodeOf(err))
}

func TestLogDisposalNonDeductibleReasonHasNoSaving(t *testing.T) {
	uc, _, _ := newDisposalFixture(testProduct())

	resp, err := uc.LogDisposal(context.Background(), dto.LogDisposalRequest{
		ProductID: "p1", Quantity: 2, Reason: domwaste.ReasonTheft,
	}, "u1")
	require.NoError(t, err)
	assert.False(t, resp.TaxDeductible)
	assert.True(t, resp.EstimatedTaxSaving.IsZero())
}

func TestLogDisposalAlertThreshold(t *testing.T) {
	p := testProduct()
	p.BuyPrice = dec("25.00")
	uc, _, notifier := newDisposalFixture(p)

	// 1 * 25.00 below the 50 threshold: no alert
	_, err := uc.LogDisposal(context.Background(), dto.LogDisposalRequest{
		ProductID: "p1", Quantity: 1, Reason: domwaste.ReasonExpired,
	}, "u1")
	require.NoError(t, err)
	assert.Empty(t, notifier.entries)

	// 2 * 25.00 hits the threshold exactly: alert goes out
	_, err = uc.LogDisposal(context.Background(), dto.LogDisposalRequest{
		ProductID: "p1", Quantity: 2, Reason: domwaste.ReasonExpired,
	}, "u1")
	require.NoError(t, err)
	require.Len(t, notifier.entries, 1)
	assert.True(t, notifier.entries[0].TotalCost.Equal(dec("50.00")))
}

func TestLogDisposalSettingsOverrideDefaults(t *testing.T) {
	repo := newMemProducts(testProduct())
	runner := &fakeTxRunner{products: repo, movements: &memMovements{}, wastes: &memWastes{}}
	notifier := &recordingNotifier{}
	settings := mapSettings{
		SettingTaxRate:        dec("0.07"),
		SettingAlertThreshold: dec("2.00"),
	}
	uc := NewUseCase(runner, repo, notifier, settings, testLogger(), 0.19, 50)

	resp, err := uc.LogDisposal(context.Background(), dto.LogDisposalRequest{
		ProductID: "p1", Quantity: 3, Reason: domwaste.ReasonExpired,
	}, "u1")
	require.NoError(t, err)

	// 2.25 * 7% instead of the configured 19%
	assert.True(t, resp.EstimatedTaxSaving.Equal(dec("0.16")), "saving %s", resp.EstimatedTaxSaving)
	// 2.25 crosses the stored 2.00 threshold, the 50 default would stay silent
	require.Len(t, notifier.entries, 1)
}

func TestGetReasonsCatalog(t *testing.T) {
	uc, _, _ := newDisposalFixture()

	reasons := uc.GetReasons()
	require.Len(t, reasons, 8)
	assert.Equal(t, domwaste.ReasonExpired, reasons[0].Key)

	byKey := map[string]dto.DisposalReasonDTO{}
	for _, r := range reasons {
		byKey[r.Key] = r
	}
	assert.True(t, byKey[domwaste.ReasonDamaged].RequiresPhoto)
	assert.True(t, byKey[domwaste.ReasonContaminated].RequiresPhoto)
	assert.True(t, byKey[domwaste.ReasonRecall].RequiresPhoto)
	assert.False(t, byKey[domwaste.ReasonTheft].TaxDeductible)
	assert.False(t, byKey[domwaste.ReasonOther].TaxDeductible)
}
