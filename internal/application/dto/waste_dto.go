package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LogDisposalRequest body for POST /api/waste/disposals.
type LogDisposalRequest struct {
	ProductID string   `json:"product_id" validate:"required"`
	Quantity  int      `json:"quantity" validate:"required"`
	Reason    string   `json:"reason" validate:"required"`
	Note      string   `json:"note,omitempty"`
	Photos    []string `json:"photos,omitempty"` // paths returned by the photo upload endpoint
}

// DisposalResponse result of a recorded disposal.
type DisposalResponse struct {
	ID                 string          `json:"id"`
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	Quantity           int             `json:"quantity"`
	Reason             string          `json:"reason"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	TaxDeductible      bool            `json:"tax_deductible"`
	EstimatedTaxSaving decimal.Decimal `json:"estimated_tax_saving"`
	NewStock           int             `json:"new_stock"`
	CreatedAt          time.Time       `json:"created_at"`
}

// WasteEntryDTO one stored waste entry, as served by the disposal listing.
type WasteEntryDTO struct {
	ID                 string          `json:"id"`
	ProductID          string          `json:"product_id"`
	Quantity           int             `json:"quantity"`
	Reason             string          `json:"reason"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	TaxDeductible      bool            `json:"tax_deductible"`
	EstimatedTaxSaving decimal.Decimal `json:"estimated_tax_saving"`
	Photos             []string        `json:"photos,omitempty"`
	Note               string          `json:"note,omitempty"`
	UserID             string          `json:"user_id"`
	CreatedAt          time.Time       `json:"created_at"`
}

// WasteAnalysisRequest query for GET /api/waste/analysis.
type WasteAnalysisRequest struct {
	PeriodDays int             `query:"period_days"`
	Reasons    []string        `query:"reasons"`
	CategoryID string          `query:"category_id"`
	MinCost    decimal.Decimal `query:"min_cost"`
}

// WasteSummaryDTO aggregate of the analysis window.
type WasteSummaryDTO struct {
	From               time.Time       `json:"from"`
	To                 time.Time       `json:"to"`
	Entries            int             `json:"entries"`
	Units              int             `json:"units"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	DeductibleCost     decimal.Decimal `json:"deductible_cost"`
	EstimatedTaxSaving decimal.Decimal `json:"estimated_tax_saving"`
	AvgCostPerDay      decimal.Decimal `json:"avg_cost_per_day"`
}

// WasteReasonDTO by-reason breakdown row with cost share.
type WasteReasonDTO struct {
	Reason    string          `json:"reason"`
	Label     string          `json:"label"`
	Entries   int             `json:"entries"`
	Units     int             `json:"units"`
	TotalCost decimal.Decimal `json:"total_cost"`
	CostShare decimal.Decimal `json:"cost_share_pct"`
}

// WasteCategoryDTO by-category breakdown row.
type WasteCategoryDTO struct {
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name"`
	Entries      int             `json:"entries"`
	Units        int             `json:"units"`
	TotalCost    decimal.Decimal `json:"total_cost"`
}

// WasteDayDTO one day bucket of the temporal pattern.
type WasteDayDTO struct {
	Day       string          `json:"day"` // 2006-01-02
	Entries   int             `json:"entries"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// WasteWeekdayDTO aggregated weekday distribution.
type WasteWeekdayDTO struct {
	Weekday   string          `json:"weekday"`
	Entries   int             `json:"entries"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// WasteProductDTO top-waste-products row.
type WasteProductDTO struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	Barcode     string          `json:"barcode"`
	Entries     int             `json:"entries"`
	Units       int             `json:"units"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

// WasteTrendDTO current window vs the preceding window of equal length.
type WasteTrendDTO struct {
	PreviousCost decimal.Decimal `json:"previous_cost"`
	CurrentCost  decimal.Decimal `json:"current_cost"`
	DeltaPct     decimal.Decimal `json:"delta_pct"`
	Direction    string          `json:"direction"` // up, down, flat
}

// WasteAnalysisResponse the full pattern analysis.
type WasteAnalysisResponse struct {
	Summary     WasteSummaryDTO    `json:"summary"`
	ByReason    []WasteReasonDTO   `json:"by_reason"`
	ByCategory  []WasteCategoryDTO `json:"by_category"`
	ByDay       []WasteDayDTO      `json:"by_day"`
	ByWeekday   []WasteWeekdayDTO  `json:"by_weekday"`
	TopProducts []WasteProductDTO  `json:"top_products"`
	Trend       WasteTrendDTO      `json:"trend"`
}

// WasteStrategyDTO one advisory reduction strategy.
type WasteStrategyDTO struct {
	Key                     string          `json:"key"`
	Title                   string          `json:"title"`
	Description             string          `json:"description"`
	EstimatedMonthlySaving  decimal.Decimal `json:"estimated_monthly_saving"`
}

// WasteOptimizationResponse the advisory optimization report.
type WasteOptimizationResponse struct {
	AnalysisPeriodDays    int                `json:"analysis_period_days"`
	Strategies            []WasteStrategyDTO `json:"strategies"`
	TotalMonthlyPotential decimal.Decimal    `json:"total_monthly_potential"`
	ImplementationCost    decimal.Decimal    `json:"implementation_cost"`
	PaybackMonths         decimal.Decimal    `json:"payback_months"`
}

// ExportResponse a generated export file.
type ExportResponse struct {
	Format    string `json:"format"`
	Path      string `json:"path"`
	URL       string `json:"url"`
	RowCount  int    `json:"row_count"`
	CreatedAt string `json:"created_at"`
}

// DisposalReasonDTO catalog entry exposed to the UI.
type DisposalReasonDTO struct {
	Key           string `json:"key"`
	Label         string `json:"label"`
	TaxDeductible bool   `json:"tax_deductible"`
	RequiresPhoto bool   `json:"requires_photo"`
	Severity      string `json:"severity"`
}
