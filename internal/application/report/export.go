package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

// Export formats accepted by the sales report export.
const (
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// ExportUseCase renders the per-product sales report of a period and stores
// it under the export directory.
type ExportUseCase struct {
	reportRepo repository.ReportRepository
	pdfGen     SalesReportPDFGenerator
	xlsxGen    SalesReportXLSXGenerator
	exportDir  string
	publicURL  string
}

// NewExportUseCase builds the sales export use case.
func NewExportUseCase(
	reportRepo repository.ReportRepository,
	pdfGen SalesReportPDFGenerator,
	xlsxGen SalesReportXLSXGenerator,
	exportDir string,
	publicURL string,
) *ExportUseCase {
	return &ExportUseCase{
		reportRepo: reportRepo,
		pdfGen:     pdfGen,
		xlsxGen:    xlsxGen,
		exportDir:  exportDir,
		publicURL:  publicURL,
	}
}

// ExportSalesReport renders the sales of [from, to) in the given format. The
// format is checked before any query; a period without sessions returns
// ErrNoSalesData and no file is written.
func (uc *ExportUseCase) ExportSalesReport(ctx context.Context, from, to time.Time, format string) (*dto.ExportResponse, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case FormatCSV, FormatPDF, FormatXLSX:
	default:
		return nil, domain.ErrInvalidFormat
	}

	metrics, err := uc.reportRepo.GetSalesMetrics(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if metrics.Sessions == 0 {
		return nil, domain.ErrNoSalesData
	}
	rows, err := uc.reportRepo.ProductRevenues(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case FormatCSV:
		data, err = renderSalesCSV(metrics, rows)
	case FormatPDF:
		data, err = uc.pdfGen.GenerateSalesReport(ctx, from.Format("2006-01-02"), to.Format("2006-01-02"), metrics, rows)
	case FormatXLSX:
		data, err = uc.xlsxGen.GenerateSalesReport(metrics, rows)
	}
	if err != nil {
		return nil, fmt.Errorf("render sales report: %w", err)
	}

	if err := os.MkdirAll(uc.exportDir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	name := fmt.Sprintf("sales_report_%s_%s_%s.%s",
		from.Format("20060102"), to.Format("20060102"),
		time.Now().Format("20060102150405"), format)
	path := filepath.Join(uc.exportDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write export file: %w", err)
	}

	return &dto.ExportResponse{
		Format:    format,
		Path:      path,
		URL:       strings.TrimRight(uc.publicURL, "/") + "/exports/" + name,
		RowCount:  len(rows),
		CreatedAt: time.Now().Format(time.RFC3339),
	}, nil
}

// renderSalesCSV writes the totals line followed by one line per product.
// Every record carries six fields so the file parses with a strict reader.
func renderSalesCSV(metrics repository.SalesMetrics, rows []repository.ProductRevenue) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"sessions", "units", "net", "vat", "deposit", "gross"}); err != nil {
		return nil, err
	}
	totals := []string{
		fmt.Sprintf("%d", metrics.Sessions),
		fmt.Sprintf("%d", metrics.Units),
		metrics.Net.StringFixed(2),
		metrics.VAT.StringFixed(2),
		metrics.Deposit.StringFixed(2),
		metrics.Gross.StringFixed(2),
	}
	if err := w.Write(totals); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"product", "barcode", "units", "revenue", "", ""}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{r.ProductName, r.Barcode, fmt.Sprintf("%d", r.Units), r.Revenue.StringFixed(2), "", ""}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
