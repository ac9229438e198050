// Package pdf renders the tax-compliance waste report as an A4 document:
// header with the reporting period, one table row per deductible disposal,
// totals block and a machine-readable reference barcode in the footer.
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/automaten-pro/automaten-api/internal/domain/repository"
	domwaste "github.com/automaten-pro/automaten-api/internal/domain/waste"
)

var (
	colorPrimary = &props.Color{Red: 44, Green: 62, Blue: 80}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implements waste.TaxReportPDFGenerator using Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator builds the generator.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateTaxReport renders the deductible disposals of [from, to] and
// returns the PDF bytes.
func (g *MarotoPDFGenerator) GenerateTaxReport(
	_ context.Context,
	from, to string,
	rows []repository.TaxReportRow,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Waste tax report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(from, to))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(detailRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(from, to)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(from, to string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Waste disposal tax report", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Deductible write-offs for the period "+from+" to "+to, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generated "+time.Now().Format("2006-01-02 15:04"), props.Text{
				Size: 8, Top: 2, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(7).Add(
		header(2, "Date", align.Left),
		header(3, "Product", align.Left),
		header(2, "Reason", align.Left),
		header(1, "Qty", align.Right),
		header(1, "Unit", align.Right),
		header(2, "Total EUR", align.Right),
		header(1, "Saving", align.Right),
	)
}

func detailRow(r repository.TaxReportRow) core.Row {
	label := r.Reason
	if cat, ok := domwaste.LookupReason(r.Reason); ok {
		label = cat.Label
	}
	cell := func(size int, value string, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1}))
	}
	return row.New(6).Add(
		cell(2, r.Date.Format("2006-01-02"), align.Left),
		cell(3, r.ProductName, align.Left),
		cell(2, label, align.Left),
		cell(1, fmt.Sprintf("%d", r.Quantity), align.Right),
		cell(1, r.UnitCost.StringFixed(2), align.Right),
		cell(2, r.TotalCost.StringFixed(2), align.Right),
		cell(1, r.TaxSaving.StringFixed(2), align.Right),
	)
}

func totalsRow(rows []repository.TaxReportRow) core.Row {
	total, saving := decimal.Zero, decimal.Zero
	units := 0
	for _, r := range rows {
		total = total.Add(r.TotalCost)
		saving = saving.Add(r.TaxSaving)
		units += r.Quantity
	}
	return row.New(10).Add(
		col.New(7).Add(text.New(fmt.Sprintf("%d entries, %d units", len(rows), units), props.Text{
			Size: 9, Top: 2, Color: colorGray,
		})),
		col.New(5).Add(
			text.New("Total cost: "+total.StringFixed(2)+" EUR", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Estimated tax saving: "+saving.StringFixed(2)+" EUR", props.Text{
				Size: 9, Align: align.Right, Top: 6, Color: colorPrimary,
			}),
		),
	)
}

func footerRows(from, to string) []core.Row {
	ref := "WTR-" + from + "-" + to
	return []core.Row{
		row.New(14).Add(
			col.New(8).Add(text.New(
				"Keep this report with the yearly tax filing. Disposal records are retained for 7 years.",
				props.Text{Size: 7, Color: colorGray, Top: 3},
			)),
			code.NewBarCol(4, ref, props.Barcode{Percent: 80, Center: true}),
		),
		row.New(5).Add(
			col.New(12).Add(text.New(ref, props.Text{Size: 7, Align: align.Right, Color: colorGray})),
		),
	}
}
