package email

import (
	"bytes"
	"html/template"
)

// Templates are compiled once at startup. Rendering failures are programming
// errors and surface as send failures, not panics.
var tmpl = template.Must(template.New("email").Parse(`
{{define "layout_top"}}
<div style="font-family:Arial,sans-serif;max-width:640px;margin:0 auto">
<h2 style="color:#2c3e50">{{.Title}}</h2>
{{end}}

{{define "layout_bottom"}}
<p style="color:#95a5a6;font-size:12px">AutomatenManager &middot; automated message, do not reply</p>
</div>
{{end}}

{{define "waste_alert"}}
{{template "layout_top" .}}
<p>A disposal crossed the cost alert threshold.</p>
<table style="border-collapse:collapse;width:100%">
<tr><td style="padding:4px 8px"><b>Product</b></td><td style="padding:4px 8px">{{.ProductName}}</td></tr>
<tr><td style="padding:4px 8px"><b>Quantity</b></td><td style="padding:4px 8px">{{.Quantity}}</td></tr>
<tr><td style="padding:4px 8px"><b>Reason</b></td><td style="padding:4px 8px">{{.Reason}}</td></tr>
<tr><td style="padding:4px 8px"><b>Total cost</b></td><td style="padding:4px 8px">{{.TotalCost}} &euro;</td></tr>
<tr><td style="padding:4px 8px"><b>Recorded at</b></td><td style="padding:4px 8px">{{.RecordedAt}}</td></tr>
</table>
{{template "layout_bottom" .}}
{{end}}

{{define "session_receipt"}}
{{template "layout_top" .}}
<p>Session <b>{{.SessionID}}</b> at machine <b>{{.MachineID}}</b> was closed.</p>
<table style="border-collapse:collapse;width:100%">
<tr style="background:#ecf0f1"><th style="padding:4px 8px;text-align:left">Item</th><th style="padding:4px 8px;text-align:right">Qty</th><th style="padding:4px 8px;text-align:right">Line total</th></tr>
{{range .Items}}
<tr><td style="padding:4px 8px">{{.Name}}</td><td style="padding:4px 8px;text-align:right">{{.Quantity}}</td><td style="padding:4px 8px;text-align:right">{{.LineTotal}} &euro;</td></tr>
{{end}}
</table>
<p>
Net: {{.TotalNet}} &euro;<br>
VAT: {{.TotalVAT}} &euro;<br>
Deposit: {{.TotalDeposit}} &euro;<br>
<b>Gross: {{.TotalGross}} &euro;</b>
</p>
{{template "layout_bottom" .}}
{{end}}

{{define "periodic_report"}}
{{template "layout_top" .}}
<p>{{.PeriodLabel}}</p>
<table style="border-collapse:collapse;width:100%">
<tr><td style="padding:4px 8px"><b>Revenue</b></td><td style="padding:4px 8px;text-align:right">{{.Revenue}} &euro;</td></tr>
<tr><td style="padding:4px 8px"><b>Margin</b></td><td style="padding:4px 8px;text-align:right">{{.Margin}} &euro;</td></tr>
<tr><td style="padding:4px 8px"><b>Sessions</b></td><td style="padding:4px 8px;text-align:right">{{.Sessions}}</td></tr>
<tr><td style="padding:4px 8px"><b>Units sold</b></td><td style="padding:4px 8px;text-align:right">{{.Units}}</td></tr>
<tr><td style="padding:4px 8px"><b>Waste cost</b></td><td style="padding:4px 8px;text-align:right">{{.WasteCost}} &euro;</td></tr>
</table>
{{template "layout_bottom" .}}
{{end}}

{{define "low_stock"}}
{{template "layout_top" .}}
<p>The following products are at or below their minimum stock:</p>
<table style="border-collapse:collapse;width:100%">
<tr style="background:#ecf0f1"><th style="padding:4px 8px;text-align:left">Product</th><th style="padding:4px 8px;text-align:right">Stock</th><th style="padding:4px 8px;text-align:right">Minimum</th></tr>
{{range .Products}}
<tr><td style="padding:4px 8px">{{.Name}}</td><td style="padding:4px 8px;text-align:right">{{.CurrentStock}}</td><td style="padding:4px 8px;text-align:right">{{.MinStock}}</td></tr>
{{end}}
</table>
{{template "layout_bottom" .}}
{{end}}
`))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
