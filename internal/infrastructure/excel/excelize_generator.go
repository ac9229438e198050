// Package excel renders the tax-compliance waste report as a real XLSX
// workbook.
package excel

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/automaten-pro/automaten-api/internal/domain/repository"
	domwaste "github.com/automaten-pro/automaten-api/internal/domain/waste"
)

const sheetName = "Tax Report"

// ExcelizeGenerator implements waste.TaxReportXLSXGenerator.
type ExcelizeGenerator struct{}

// NewExcelizeGenerator builds the generator.
func NewExcelizeGenerator() *ExcelizeGenerator { return &ExcelizeGenerator{} }

// GenerateTaxReport writes one row per deductible disposal plus a totals row
// and returns the workbook bytes.
func (g *ExcelizeGenerator) GenerateTaxReport(rows []repository.TaxReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("excel: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel: drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#ECF0F1"}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: header style: %w", err)
	}

	headers := []string{
		"Date", "Product", "Barcode", "Reason", "Quantity",
		"Unit cost", "Total cost", "Estimated tax saving", "Recorded by",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("excel: header: %w", err)
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", "I1", headerStyle); err != nil {
		return nil, fmt.Errorf("excel: header style apply: %w", err)
	}

	total, saving := decimal.Zero, decimal.Zero
	for i, r := range rows {
		label := r.Reason
		if cat, ok := domwaste.LookupReason(r.Reason); ok {
			label = cat.Label
		}
		rowNum := i + 2
		values := []any{
			r.Date.Format("2006-01-02"),
			r.ProductName,
			r.Barcode,
			label,
			r.Quantity,
			r.UnitCost.InexactFloat64(),
			r.TotalCost.InexactFloat64(),
			r.TaxSaving.InexactFloat64(),
			r.UserName,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("excel: row %d: %w", rowNum, err)
			}
		}
		total = total.Add(r.TotalCost)
		saving = saving.Add(r.TaxSaving)
	}

	totalsRow := len(rows) + 2
	totals := map[string]any{
		"D": "Total",
		"E": sumUnits(rows),
		"G": total.InexactFloat64(),
		"H": saving.InexactFloat64(),
	}
	for colName, v := range totals {
		if err := f.SetCellValue(sheetName, fmt.Sprintf("%s%d", colName, totalsRow), v); err != nil {
			return nil, fmt.Errorf("excel: totals: %w", err)
		}
	}

	widths := map[string]float64{"A": 12, "B": 28, "C": 16, "D": 30, "E": 10, "F": 10, "G": 12, "H": 18, "I": 20}
	for colName, w := range widths {
		if err := f.SetColWidth(sheetName, colName, colName, w); err != nil {
			return nil, fmt.Errorf("excel: column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serialize: %w", err)
	}
	return buf.Bytes(), nil
}

func sumUnits(rows []repository.TaxReportRow) int {
	n := 0
	for _, r := range rows {
		n += r.Quantity
	}
	return n
}
