package waste

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

// Setting keys read by the disposal workflow. A stored value overrides the
// configured default without a restart.
const (
	SettingTaxRate        = "tax.rate"
	SettingAlertThreshold = "waste.alert_threshold"
)

// Settings reads runtime-tunable values from the settings store.
type Settings interface {
	GetDecimal(key string, def decimal.Decimal) decimal.Decimal
}

// TxRunner executes the disposal write inside one DB transaction: waste
// entry, movement ledger row and product stock update are atomic.
type TxRunner interface {
	RunDisposal(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		wasteRepo repository.WasteRepository,
	) error) error
}

// Notifier delivers the alert when a disposal crosses the cost threshold.
// Implementations must not block the caller; delivery failures are logged,
// never surfaced to the disposal request.
type Notifier interface {
	DisposalAlert(entry *entity.WasteEntry, productName string)
}

// TaxReportPDFGenerator renders the tax-compliance report as PDF bytes.
type TaxReportPDFGenerator interface {
	GenerateTaxReport(ctx context.Context, from, to string, rows []repository.TaxReportRow) ([]byte, error)
}

// TaxReportXLSXGenerator renders the tax-compliance report as a real XLSX
// workbook.
type TaxReportXLSXGenerator interface {
	GenerateTaxReport(rows []repository.TaxReportRow) ([]byte, error)
}
