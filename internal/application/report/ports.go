package report

import (
	"context"

	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

// SalesReportPDFGenerator renders the sales report as a PDF document.
type SalesReportPDFGenerator interface {
	GenerateSalesReport(ctx context.Context, from, to string, metrics repository.SalesMetrics, rows []repository.ProductRevenue) ([]byte, error)
}

// SalesReportXLSXGenerator renders the sales report as an XLSX workbook.
type SalesReportXLSXGenerator interface {
	GenerateSalesReport(metrics repository.SalesMetrics, rows []repository.ProductRevenue) ([]byte, error)
}
