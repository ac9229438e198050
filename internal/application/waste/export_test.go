package waste

import (
	"context"
	"encoding/csv"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
	domwaste "github.com/automaten-pro/automaten-api/internal/domain/waste"
)

type stubPDFGen struct{ called bool }

func (g *stubPDFGen) GenerateTaxReport(_ context.Context, _, _ string, _ []repository.TaxReportRow) ([]byte, error) {
	g.called = true
	return []byte("%PDF-1.7 stub"), nil
}

type stubXLSXGen struct{ called bool }

func (g *stubXLSXGen) GenerateTaxReport(_ []repository.TaxReportRow) ([]byte, error) {
	g.called = true
	return []byte("PK stub workbook"), nil
}

func taxRows() []repository.TaxReportRow {
	return []repository.TaxReportRow{
		{
			Date:        time.Date(2026, 8, 10, 14, 30, 0, 0, time.UTC),
			ProductName: "Cola 0.33l",
			Barcode:     "4000177415000",
			Reason:      domwaste.ReasonExpired,
			Quantity:    3,
			UnitCost:    dec("0.75"),
			TotalCost:   dec("2.25"),
			TaxSaving:   dec("0.43"),
			UserName:    "Max Betreiber",
		},
		{
			Date:        time.Date(2026, 8, 12, 9, 0, 0, 0, time.UTC),
			ProductName: "Chips Paprika",
			Barcode:     "4001242002612",
			Reason:      domwaste.ReasonDamaged,
			Quantity:    1,
			UnitCost:    dec("0.60"),
			TotalCost:   dec("0.60"),
			TaxSaving:   dec("0.11"),
			UserName:    "Max Betreiber",
		},
	}
}

func exportWindow() (time.Time, time.Time) {
	return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
}

func TestExportRejectsUnknownFormatBeforeQuerying(t *testing.T) {
	stub := &stubReports{taxRows: taxRows()}
	uc := NewExportUseCase(stub, &stubPDFGen{}, &stubXLSXGen{}, t.TempDir(), "https://api.example.com")

	from, to := exportWindow()
	_, err := uc.ExportTaxReport(context.Background(), from, to, "docx")
	require.Error(t, err)
	assert.Equal(t, "INVALID_FORMAT", domain.CodeOf(err))
	assert.False(t, stub.taxRowsQueried, "format check must come before the query")
}

func TestExportNoDeductibleEntries(t *testing.T) {
	uc := NewExportUseCase(&stubReports{}, &stubPDFGen{}, &stubXLSXGen{}, t.TempDir(), "https://api.example.com")

	from, to := exportWindow()
	_, err := uc.ExportTaxReport(context.Background(), from, to, FormatCSV)
	assert.Equal(t, "NO_TAX_DATA", domain.CodeOf(err))
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	uc := NewExportUseCase(&stubReports{taxRows: taxRows()}, &stubPDFGen{}, &stubXLSXGen{}, dir, "https://api.example.com/")

	from, to := exportWindow()
	resp, err := uc.ExportTaxReport(context.Background(), from, to, "CSV")
	require.NoError(t, err)

	assert.Equal(t, FormatCSV, resp.Format)
	assert.Equal(t, 2, resp.RowCount)
	assert.True(t, strings.HasPrefix(resp.URL, "https://api.example.com/exports/waste_tax_report_20260801_20260901_"))
	assert.True(t, strings.HasSuffix(resp.Path, ".csv"))

	data, err := os.ReadFile(resp.Path)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "date", records[0][0])
	assert.Equal(t, []string{
		"2026-08-10", "Cola 0.33l", "4000177415000",
		"Expired (past best-before date)", "3", "0.75", "2.25", "0.43", "Max Betreiber",
	}, records[1])
}

func TestExportPDFAndXLSXUseGenerators(t *testing.T) {
	pdfGen := &stubPDFGen{}
	xlsxGen := &stubXLSXGen{}
	uc := NewExportUseCase(&stubReports{taxRows: taxRows()}, pdfGen, xlsxGen, t.TempDir(), "https://api.example.com")

	from, to := exportWindow()
	resp, err := uc.ExportTaxReport(context.Background(), from, to, FormatPDF)
	require.NoError(t, err)
	assert.True(t, pdfGen.called)
	assert.True(t, strings.HasSuffix(resp.Path, ".pdf"))

	resp, err = uc.ExportTaxReport(context.Background(), from, to, FormatXLSX)
	require.NoError(t, err)
	assert.True(t, xlsxGen.called)
	assert.True(t, strings.HasSuffix(resp.Path, ".xlsx"))
	data, err := os.ReadFile(resp.Path)
	require.NoError(t, err)
	assert.Equal(t, "PK stub workbook", string(data))
}
