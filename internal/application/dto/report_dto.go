package dto

import "github.com/shopspring/decimal"

// TopProductDTO dashboard widget row.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DashboardSummaryDTO the main dashboard payload.
type DashboardSummaryDTO struct {
	TodayRevenue     decimal.Decimal `json:"today_revenue"`
	TodayMargin      decimal.Decimal `json:"today_margin"`
	MonthRevenue     decimal.Decimal `json:"month_revenue"`
	MonthMargin      decimal.Decimal `json:"month_margin"`
	MonthWasteCost   decimal.Decimal `json:"month_waste_cost"`
	LowStockCount    int             `json:"low_stock_count"`
	ExpiringCount    int             `json:"expiring_count"`
	OpenSessionCount int             `json:"open_session_count"`
	TopProducts      []TopProductDTO `json:"top_products"`
	DateLabel        string          `json:"date_label"`
}

// KPIResponse business key figures over a period.
type KPIResponse struct {
	PeriodDays        int             `json:"period_days"`
	GrossRevenue      decimal.Decimal `json:"gross_revenue"`
	GrossMarginPct    decimal.Decimal `json:"gross_margin_pct"`
	WasteRatioPct     decimal.Decimal `json:"waste_ratio_pct"` // waste cost / gross revenue
	AvgSessionValue   decimal.Decimal `json:"avg_session_value"`
	UnitsSold         int             `json:"units_sold"`
	Sessions          int             `json:"sessions"`
}

// TrendResponse current vs previous period deltas.
type TrendResponse struct {
	PeriodDays      int             `json:"period_days"`
	RevenueCurrent  decimal.Decimal `json:"revenue_current"`
	RevenuePrevious decimal.Decimal `json:"revenue_previous"`
	RevenueDeltaPct decimal.Decimal `json:"revenue_delta_pct"`
	WasteCurrent    decimal.Decimal `json:"waste_current"`
	WastePrevious   decimal.Decimal `json:"waste_previous"`
	WasteDeltaPct   decimal.Decimal `json:"waste_delta_pct"`
}
