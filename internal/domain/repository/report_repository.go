package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// WasteFilters narrows waste analysis queries. Zero values mean "no filter".
type WasteFilters struct {
	Reasons    []string
	CategoryID string
	MinCost    decimal.Decimal
}

// WasteSummary is the aggregate over a waste analysis window.
type WasteSummary struct {
	Entries            int
	Units              int
	TotalCost          decimal.Decimal
	DeductibleCost     decimal.Decimal
	EstimatedTaxSaving decimal.Decimal
}

// WasteReasonBreakdown is one row of the by-reason aggregation.
type WasteReasonBreakdown struct {
	Reason    string
	Entries   int
	Units     int
	TotalCost decimal.Decimal
}

// WasteCategoryBreakdown is one row of the by-category aggregation.
// Uncategorized products group under an empty CategoryID.
type WasteCategoryBreakdown struct {
	CategoryID   string
	CategoryName string
	Entries      int
	Units        int
	TotalCost    decimal.Decimal
}

// WasteDailyPoint is one day bucket of the temporal pattern.
type WasteDailyPoint struct {
	Day       time.Time
	Entries   int
	TotalCost decimal.Decimal
}

// WasteProductTotal is one row of the top-waste-products ranking.
type WasteProductTotal struct {
	ProductID   string
	ProductName string
	Barcode     string
	Entries     int
	Units       int
	TotalCost   decimal.Decimal
}

// TaxReportRow is one line of the tax-compliance export, joined with product
// and user display data.
type TaxReportRow struct {
	Date        time.Time
	ProductName string
	Barcode     string
	Reason      string
	Quantity    int
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal
	TaxSaving   decimal.Decimal
	UserName    string
}

// SalesMetrics is the raw sales aggregate for a period.
type SalesMetrics struct {
	Sessions   int
	Units      int
	Net        decimal.Decimal
	VAT        decimal.Decimal
	Deposit    decimal.Decimal
	Gross      decimal.Decimal
	COGS       decimal.Decimal // units * product buy price
	WasteCost  decimal.Decimal
}

// ProductRevenue is units and gross revenue per product, used for top-product
// widgets and the ABC classification.
type ProductRevenue struct {
	ProductID   string
	ProductName string
	Barcode     string
	Units       int
	Revenue     decimal.Decimal
}

// ReportRepository groups the read-only aggregation queries behind the
// dashboard, the waste analysis and the exports. Implementations never write.
type ReportRepository interface {
	WasteSummary(ctx context.Context, from, to time.Time, f WasteFilters) (WasteSummary, error)
	WasteByReason(ctx context.Context, from, to time.Time, f WasteFilters) ([]WasteReasonBreakdown, error)
	WasteByCategory(ctx context.Context, from, to time.Time, f WasteFilters) ([]WasteCategoryBreakdown, error)
	WasteByDay(ctx context.Context, from, to time.Time, f WasteFilters) ([]WasteDailyPoint, error)
	TopWasteProducts(ctx context.Context, from, to time.Time, f WasteFilters, limit int) ([]WasteProductTotal, error)
	DeductibleEntries(ctx context.Context, from, to time.Time) ([]TaxReportRow, error)

	GetSalesMetrics(ctx context.Context, from, to time.Time) (SalesMetrics, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductRevenue, error)
	ProductRevenues(ctx context.Context, from, to time.Time) ([]ProductRevenue, error)
}
