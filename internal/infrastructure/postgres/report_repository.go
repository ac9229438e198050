package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo read-only aggregation queries for the dashboard, waste analysis
// and exports. Never writes.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository builds the reporting adapter.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// wasteFilterClause is shared by all waste aggregations. Parameters:
// $1 from, $2 to, $3 reasons (text[], empty = all), $4 category (text, '' = all),
// $5 min cost per entry.
const wasteFilterClause = `
	w.created_at BETWEEN $1 AND $2
	AND (cardinality($3::TEXT[]) = 0 OR w.reason = ANY($3::TEXT[]))
	AND ($4 = '' OR p.category_id = $4::UUID)
	AND w.total_cost >= $5`

func wasteFilterArgs(from, to time.Time, f repository.WasteFilters) []any {
	reasons := f.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return []any{from, to, reasons, f.CategoryID, f.MinCost}
}

// WasteSummary aggregates the whole window. COALESCE keeps empty windows at
// zero instead of NULL.
func (r *ReportRepo) WasteSummary(ctx context.Context, from, to time.Time, f repository.WasteFilters) (repository.WasteSummary, error) {
	query := `
	SELECT
	    COUNT(*),
	    COALESCE(SUM(w.quantity), 0),
	    COALESCE(SUM(w.total_cost), 0),
	    COALESCE(SUM(w.total_cost) FILTER (WHERE w.tax_deductible), 0),
	    COALESCE(SUM(w.estimated_tax_saving), 0)
	FROM waste_entries w
	JOIN products p ON p.id = w.product_id
	WHERE ` + wasteFilterClause

	var s repository.WasteSummary
	err := r.pool.QueryRow(ctx, query, wasteFilterArgs(from, to, f)...).
		Scan(&s.Entries, &s.Units, &s.TotalCost, &s.DeductibleCost, &s.EstimatedTaxSaving)
	if err != nil {
		return repository.WasteSummary{}, fmt.Errorf("report.WasteSummary: %w", err)
	}
	return s, nil
}

// WasteByReason groups the window by disposal reason, highest cost first.
func (r *ReportRepo) WasteByReason(ctx context.Context, from, to time.Time, f repository.WasteFilters) ([]repository.WasteReasonBreakdown, error) {
	query := `
	SELECT w.reason, COUNT(*), COALESCE(SUM(w.quantity), 0), COALESCE(SUM(w.total_cost), 0)
	FROM waste_entries w
	JOIN products p ON p.id = w.product_id
	WHERE ` + wasteFilterClause + `
	GROUP BY w.reason
	ORDER BY SUM(w.total_cost) DESC`

	rows, err := r.pool.Query(ctx, query, wasteFilterArgs(from, to, f)...)
	if err != nil {
		return nil, fmt.Errorf("report.WasteByReason: %w", err)
	}
	defer rows.Close()
	var out []repository.WasteReasonBreakdown
	for rows.Next() {
		var b repository.WasteReasonBreakdown
		if err := rows.Scan(&b.Reason, &b.Entries, &b.Units, &b.TotalCost); err != nil {
			return nil, fmt.Errorf("report.WasteByReason scan: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// WasteByCategory groups the window by product category. Uncategorized
// products fall into an empty-ID bucket named "Uncategorized".
func (r *ReportRepo) WasteByCategory(ctx context.Context, from, to time.Time, f repository.WasteFilters) ([]repository.WasteCategoryBreakdown, error) {
	query := `
	SELECT
	    COALESCE(c.id::TEXT, ''),
	    COALESCE(c.name, 'Uncategorized'),
	    COUNT(*),
	    COALESCE(SUM(w.quantity), 0),
	    COALESCE(SUM(w.total_cost), 0)
	FROM waste_entries w
	JOIN products p ON p.id = w.product_id
	LEFT JOIN categories c ON c.id = p.category_id
	WHERE ` + wasteFilterClause + `
	GROUP BY c.id, c.name
	ORDER BY SUM(w.total_cost) DESC`

	rows, err := r.pool.Query(ctx, query, wasteFilterArgs(from, to, f)...)
	if err != nil {
		return nil, fmt.Errorf("report.WasteByCategory: %w", err)
	}
	defer rows.Close()
	var out []repository.WasteCategoryBreakdown
	for rows.Next() {
		var b repository.WasteCategoryBreakdown
		if err := rows.Scan(&b.CategoryID, &b.CategoryName, &b.Entries, &b.Units, &b.TotalCost); err != nil {
			return nil, fmt.Errorf("report.WasteByCategory scan: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// WasteByDay buckets the window per calendar day for the temporal pattern.
func (r *ReportRepo) WasteByDay(ctx context.Context, from, to time.Time, f repository.WasteFilters) ([]repository.WasteDailyPoint, error) {
	query := `
	SELECT date_trunc('day', w.created_at), COUNT(*), COALESCE(SUM(w.total_cost), 0)
	FROM waste_entries w
	JOIN products p ON p.id = w.product_id
	WHERE ` + wasteFilterClause + `
	GROUP BY 1
	ORDER BY 1 ASC`

	rows, err := r.pool.Query(ctx, query, wasteFilterArgs(from, to, f)...)
	if err != nil {
		return nil, fmt.Errorf("report.WasteByDay: %w", err)
	}
	defer rows.Close()
	var out []repository.WasteDailyPoint
	for rows.Next() {
		var p repository.WasteDailyPoint
		if err := rows.Scan(&p.Day, &p.Entries, &p.TotalCost); err != nil {
			return nil, fmt.Errorf("report.WasteByDay scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// TopWasteProducts ranks products by waste cost in the window.
func (r *ReportRepo) TopWasteProducts(ctx context.Context, from, to time.Time, f repository.WasteFilters, limit int) ([]repository.WasteProductTotal, error) {
	query := `
	SELECT p.id, p.name, p.barcode, COUNT(*), COALESCE(SUM(w.quantity), 0), COALESCE(SUM(w.total_cost), 0)
	FROM waste_entries w
	JOIN products p ON p.id = w.product_id
	WHERE ` + wasteFilterClause + `
	GROUP BY p.id, p.name, p.barcode
	ORDER BY SUM(w.total_cost) DESC
	LIMIT $6`

	args := append(wasteFilterArgs(from, to, f), limit)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report.TopWasteProducts: %w", err)
	}
	defer rows.Close()
	var out []repository.WasteProductTotal
	for rows.Next() {
		var t repository.WasteProductTotal
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.Barcode, &t.Entries, &t.Units, &t.TotalCost); err != nil {
			return nil, fmt.Errorf("report.TopWasteProducts scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DeductibleEntries returns the tax-compliance export rows, oldest first,
// joined with product and user display data.
func (r *ReportRepo) DeductibleEntries(ctx context.Context, from, to time.Time) ([]repository.TaxReportRow, error) {
	query := `
	SELECT w.created_at, p.name, p.barcode, w.reason, w.quantity, w.unit_cost, w.total_cost,
	       w.estimated_tax_saving, COALESCE(u.name, '')
	FROM waste_entries w
	JOIN products p ON p.id = w.product_id
	LEFT JOIN users u ON u.id = w.user_id
	WHERE w.tax_deductible AND w.created_at BETWEEN $1 AND $2
	ORDER BY w.created_at ASC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("report.DeductibleEntries: %w", err)
	}
	defer rows.Close()
	var out []repository.TaxReportRow
	for rows.Next() {
		var t repository.TaxReportRow
		if err := rows.Scan(&t.Date, &t.ProductName, &t.Barcode, &t.Reason, &t.Quantity,
			&t.UnitCost, &t.TotalCost, &t.TaxSaving, &t.UserName); err != nil {
			return nil, fmt.Errorf("report.DeductibleEntries scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetSalesMetrics aggregates closed sessions plus waste cost for the period.
func (r *ReportRepo) GetSalesMetrics(ctx context.Context, from, to time.Time) (repository.SalesMetrics, error) {
	const sessionsQuery = `
	SELECT
	    COUNT(*),
	    COALESCE(SUM(item_count), 0),
	    COALESCE(SUM(total_net), 0),
	    COALESCE(SUM(total_vat), 0),
	    COALESCE(SUM(total_deposit), 0),
	    COALESCE(SUM(total_gross), 0)
	FROM sales_sessions
	WHERE status = 'closed' AND closed_at BETWEEN $1 AND $2`

	var m repository.SalesMetrics
	err := r.pool.QueryRow(ctx, sessionsQuery, from, to).
		Scan(&m.Sessions, &m.Units, &m.Net, &m.VAT, &m.Deposit, &m.Gross)
	if err != nil {
		return repository.SalesMetrics{}, fmt.Errorf("report.GetSalesMetrics sessions: %w", err)
	}

	const cogsQuery = `
	SELECT COALESCE(SUM(i.quantity * p.buy_price), 0)
	FROM sales_items i
	JOIN sales_sessions s ON s.id = i.session_id
	JOIN products p ON p.id = i.product_id
	WHERE s.status = 'closed' AND s.closed_at BETWEEN $1 AND $2`
	if err := r.pool.QueryRow(ctx, cogsQuery, from, to).Scan(&m.COGS); err != nil {
		return repository.SalesMetrics{}, fmt.Errorf("report.GetSalesMetrics cogs: %w", err)
	}

	const wasteQuery = `
	SELECT COALESCE(SUM(total_cost), 0) FROM waste_entries WHERE created_at BETWEEN $1 AND $2`
	if err := r.pool.QueryRow(ctx, wasteQuery, from, to).Scan(&m.WasteCost); err != nil {
		return repository.SalesMetrics{}, fmt.Errorf("report.GetSalesMetrics waste: %w", err)
	}
	return m, nil
}

// TopProducts returns the limit best sellers by gross revenue in the period.
func (r *ReportRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductRevenue, error) {
	return r.productRevenues(ctx, from, to, limit)
}

// ProductRevenues returns every sold product's units and gross revenue in the
// period, highest revenue first (input of the ABC classification).
func (r *ReportRepo) ProductRevenues(ctx context.Context, from, to time.Time) ([]repository.ProductRevenue, error) {
	return r.productRevenues(ctx, from, to, 0)
}

func (r *ReportRepo) productRevenues(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductRevenue, error) {
	query := `
	SELECT p.id, p.name, p.barcode, COALESCE(SUM(i.quantity), 0), COALESCE(SUM(i.line_total), 0)
	FROM sales_items i
	JOIN sales_sessions s ON s.id = i.session_id
	JOIN products p ON p.id = i.product_id
	WHERE s.status = 'closed' AND s.closed_at BETWEEN $1 AND $2
	GROUP BY p.id, p.name, p.barcode
	ORDER BY SUM(i.line_total) DESC`
	args := []any{from, to}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report.ProductRevenues: %w", err)
	}
	defer rows.Close()
	var out []repository.ProductRevenue
	for rows.Next() {
		var p repository.ProductRevenue
		var revenue decimal.Decimal
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.Barcode, &p.Units, &revenue); err != nil {
			return nil, fmt.Errorf("report.ProductRevenues scan: %w", err)
		}
		p.Revenue = revenue
		out = append(out, p)
	}
	return out, rows.Err()
}
