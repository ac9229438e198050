package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

const salesSheetName = "Sales Report"

// GenerateSalesReport writes the period totals followed by one row per
// product and returns the workbook bytes.
func (g *ExcelizeGenerator) GenerateSalesReport(metrics repository.SalesMetrics, rows []repository.ProductRevenue) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(salesSheetName)
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

	totalsHeaders := []string{"Sessions", "Units", "Net", "VAT", "Deposit", "Gross", "Margin"}
	for i, h := range totalsHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(salesSheetName, cell, h); err != nil {
			return nil, fmt.Errorf("excel: totals header: %w", err)
		}
	}
	if err := f.SetCellStyle(salesSheetName, "A1", "G1", headerStyle); err != nil {
		return nil, fmt.Errorf("excel: totals header style: %w", err)
	}
	totals := []any{
		metrics.Sessions,
		metrics.Units,
		metrics.Net.InexactFloat64(),
		metrics.VAT.InexactFloat64(),
		metrics.Deposit.InexactFloat64(),
		metrics.Gross.InexactFloat64(),
		metrics.Gross.Sub(metrics.COGS).InexactFloat64(),
	}
	for i, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(salesSheetName, cell, v); err != nil {
			return nil, fmt.Errorf("excel: totals: %w", err)
		}
	}

	productHeaders := []string{"Product", "Barcode", "Units", "Revenue"}
	for i, h := range productHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		if err := f.SetCellValue(salesSheetName, cell, h); err != nil {
			return nil, fmt.Errorf("excel: product header: %w", err)
		}
	}
	if err := f.SetCellStyle(salesSheetName, "A4", "D4", headerStyle); err != nil {
		return nil, fmt.Errorf("excel: product header style: %w", err)
	}

	for i, r := range rows {
		rowNum := i + 5
		values := []any{r.ProductName, r.Barcode, r.Units, r.Revenue.InexactFloat64()}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(salesSheetName, cell, v); err != nil {
				return nil, fmt.Errorf("excel: row %d: %w", rowNum, err)
			}
		}
	}

	widths := map[string]float64{"A": 28, "B": 16, "C": 10, "D": 12, "E": 10, "F": 10, "G": 10}
	for colName, w := range widths {
		if err := f.SetColWidth(salesSheetName, colName, colName, w); err != nil {
			return nil, fmt.Errorf("excel: column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serialize: %w", err)
	}
	return buf.Bytes(), nil
}
