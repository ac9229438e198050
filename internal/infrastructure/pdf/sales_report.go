package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

// GenerateSalesReport renders the sales of [from, to] as an A4 document:
// totals block on top, one table row per product by revenue.
func (g *MarotoPDFGenerator) GenerateSalesReport(
	_ context.Context,
	from, to string,
	metrics repository.SalesMetrics,
	rows []repository.ProductRevenue,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Sales report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(salesHeaderRow(from, to))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(salesTotalsRow(metrics))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(salesTableHeaderRow())
	for _, r := range rows {
		m.AddRows(salesDetailRow(r))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func salesHeaderRow(from, to string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Sales report", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Vending sales for the period "+from+" to "+to, props.Text{
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

func salesTotalsRow(m repository.SalesMetrics) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New(fmt.Sprintf("%d sessions, %d units sold", m.Sessions, m.Units), props.Text{
				Size: 9, Top: 2, Color: colorGray,
			}),
			text.New("Net "+m.Net.StringFixed(2)+" EUR / VAT "+m.VAT.StringFixed(2)+" EUR / Deposit "+m.Deposit.StringFixed(2)+" EUR", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("Gross revenue: "+m.Gross.StringFixed(2)+" EUR", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New("Margin: "+m.Gross.Sub(m.COGS).StringFixed(2)+" EUR", props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorPrimary,
			}),
		),
	)
}

func salesTableHeaderRow() core.Row {
	header := func(size int, label string, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(7).Add(
		header(5, "Product", align.Left),
		header(3, "Barcode", align.Left),
		header(2, "Units", align.Right),
		header(2, "Revenue EUR", align.Right),
	)
}

func salesDetailRow(r repository.ProductRevenue) core.Row {
	cell := func(size int, value string, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1}))
	}
	return row.New(6).Add(
		cell(5, r.ProductName, align.Left),
		cell(3, r.Barcode, align.Left),
		cell(2, fmt.Sprintf("%d", r.Units), align.Right),
		cell(2, r.Revenue.StringFixed(2), align.Right),
	)
}
