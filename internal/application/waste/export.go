package waste

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
	domwaste "github.com/automaten-pro/automaten-api/internal/domain/waste"
)

// Export formats accepted by the tax-compliance export.
const (
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// ExportUseCase generates the tax-compliance report over the deductible waste
// entries of a period and stores it under the export directory.
type ExportUseCase struct {
	reportRepo repository.ReportRepository
	pdfGen     TaxReportPDFGenerator
	xlsxGen    TaxReportXLSXGenerator
	exportDir  string
	publicURL  string // base URL under which exportDir is served
}

// NewExportUseCase builds the export use case.
func NewExportUseCase(
	reportRepo repository.ReportRepository,
	pdfGen TaxReportPDFGenerator,
	xlsxGen TaxReportXLSXGenerator,
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

// ExportTaxReport renders the deductible entries of [from, to) in the given
// format. The format is checked before any query; an empty result set returns
// ErrNoTaxData and no file is written.
func (uc *ExportUseCase) ExportTaxReport(ctx context.Context, from, to time.Time, format string) (*dto.ExportResponse, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case FormatCSV, FormatPDF, FormatXLSX:
	default:
		return nil, domain.ErrInvalidFormat
	}

	rows, err := uc.reportRepo.DeductibleEntries(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNoTaxData
	}

	var data []byte
	switch format {
	case FormatCSV:
		data, err = renderTaxCSV(rows)
	case FormatPDF:
		data, err = uc.pdfGen.GenerateTaxReport(ctx, from.Format("2006-01-02"), to.Format("2006-01-02"), rows)
	case FormatXLSX:
		data, err = uc.xlsxGen.GenerateTaxReport(rows)
	}
	if err != nil {
		return nil, fmt.Errorf("render tax report: %w", err)
	}

	if err := os.MkdirAll(uc.exportDir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	name := fmt.Sprintf("waste_tax_report_%s_%s_%s.%s",
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

// renderTaxCSV writes a real RFC 4180 CSV, one line per deductible entry.
func renderTaxCSV(rows []repository.TaxReportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"date", "product", "barcode", "reason", "quantity",
		"unit_cost", "total_cost", "estimated_tax_saving", "recorded_by",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		label := r.Reason
		if cat, ok := domwaste.LookupReason(r.Reason); ok {
			label = cat.Label
		}
		record := []string{
			r.Date.Format("2006-01-02"),
			r.ProductName,
			r.Barcode,
			label,
			fmt.Sprintf("%d", r.Quantity),
			r.UnitCost.StringFixed(2),
			r.TotalCost.StringFixed(2),
			r.TaxSaving.StringFixed(2),
			r.UserName,
		}
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
