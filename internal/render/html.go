package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/andy/invoicegen/internal/domain"
)

// documentTemplate is the export markup: a complete HTML document with
// inline presentation rules only, so it renders identically in an email
// client or a standalone viewer with no external resources.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.InvoiceNumber}}</title>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
  .header { display: flex; justify-content: space-between; margin-bottom: 30px; }
  .company-info h1 { margin: 0 0 10px 0; font-size: 24px; }
  .company-info p { margin: 5px 0; color: #666; }
  .invoice-details { text-align: right; }
  .invoice-details p { margin: 5px 0; }
  .bill-to { margin-bottom: 30px; }
  .bill-to h3 { margin: 0 0 10px 0; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
  th, td { padding: 12px; text-align: left; border-bottom: 1px solid #ddd; }
  th { background-color: #f8f9fa; font-weight: bold; }
  .amount { text-align: right; }
  .totals { text-align: right; }
  .totals div { display: flex; justify-content: space-between; width: 300px; margin-left: auto; margin-bottom: 5px; }
  .total { font-weight: bold; font-size: 18px; border-top: 2px solid #333; padding-top: 10px; }
  .notes { margin-top: 30px; }
  .notes h3 { margin: 0 0 10px 0; }
</style>
</head>
<body>
<div class="header">
  <div class="company-info">
    <h1>INVOICE</h1>
    {{if .CompanyName}}<p><strong>{{.CompanyName}}</strong></p>{{end}}
    {{if .CompanyAddress}}<p>{{.CompanyAddress}}</p>{{end}}
    {{if .CompanyEmail}}<p>{{.CompanyEmail}}</p>{{end}}
    {{if .CompanyPhone}}<p>{{.CompanyPhone}}</p>{{end}}
  </div>
  <div class="invoice-details">
    {{if .InvoiceNumber}}<p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>{{end}}
    {{if .InvoiceDate}}<p><strong>Date:</strong> {{.InvoiceDate}}</p>{{end}}
    {{if .DueDate}}<p><strong>Due Date:</strong> {{.DueDate}}</p>{{end}}
  </div>
</div>

<div class="bill-to">
  <h3>Bill To:</h3>
  {{if .ClientName}}<p><strong>{{.ClientName}}</strong></p>{{end}}
  {{if .ClientAddress}}<p>{{.ClientAddress}}</p>{{end}}
  {{if .ClientEmail}}<p>{{.ClientEmail}}</p>{{end}}
</div>

<table>
  <thead>
    <tr>
      <th>Description</th>
      <th class="amount">Qty</th>
      <th class="amount">Rate</th>
      <th class="amount">Amount</th>
    </tr>
  </thead>
  <tbody>
    {{range .Items}}<tr>
      <td>{{.Description}}</td>
      <td class="amount">{{.Quantity}}</td>
      <td class="amount">{{.Rate}}</td>
      <td class="amount">{{.Amount}}</td>
    </tr>
    {{end}}
  </tbody>
</table>

<div class="totals">
  <div><span>Subtotal:</span><span>{{.Subtotal}}</span></div>
  {{range .Charges}}<div><span>{{.Label}}:</span><span>{{.Amount}}</span></div>
  {{end}}<div><span>Tax ({{.TaxRate}}%):</span><span>{{.Tax}}</span></div>
  <div class="total"><span>Total:</span><span>{{.Total}}</span></div>
</div>

{{if .Notes}}<div class="notes">
  <h3>Notes:</h3>
  <p>{{.Notes}}</p>
</div>{{end}}
</body>
</html>
`

var documentTmpl = template.Must(template.New("invoice").Parse(documentTemplate))

type htmlItem struct {
	Description string
	Quantity    string
	Rate        string
	Amount      string
}

type htmlCharge struct {
	Label  string
	Amount string
}

type htmlDocument struct {
	InvoiceNumber  string
	InvoiceDate    string
	DueDate        string
	CompanyName    string
	CompanyAddress template.HTML
	CompanyEmail   string
	CompanyPhone   string
	ClientName     string
	ClientAddress  template.HTML
	ClientEmail    string
	Items          []htmlItem
	Subtotal       string
	Charges        []htmlCharge
	TaxRate        string
	Tax            string
	Total          string
	Notes          template.HTML
}

// HTML renders the invoice as the self-contained export markup. All
// figures are the same strings the text target shows; the charge
// amounts come straight from the computed totals.
func HTML(inv domain.Invoice, totals domain.Totals) (string, error) {
	doc := htmlDocument{
		InvoiceNumber:  inv.InvoiceNumber,
		InvoiceDate:    FormatDate(inv.InvoiceDate, inv.DateFormat),
		DueDate:        FormatDate(inv.DueDate, inv.DateFormat),
		CompanyName:    strings.TrimSpace(inv.CompanyName),
		CompanyAddress: multiline(inv.CompanyAddress),
		CompanyEmail:   strings.TrimSpace(inv.CompanyEmail),
		CompanyPhone:   strings.TrimSpace(inv.CompanyPhone),
		ClientName:     strings.TrimSpace(inv.ClientName),
		ClientAddress:  multiline(inv.ClientAddress),
		ClientEmail:    strings.TrimSpace(inv.ClientEmail),
		Subtotal:       Money(totals.Subtotal),
		TaxRate:        Number(inv.TaxRate),
		Tax:            Money(totals.Tax),
		Total:          Money(totals.Total),
		Notes:          multiline(inv.Notes),
	}

	for _, item := range inv.LineItems {
		desc := item.Description
		if !notBlank(desc) {
			desc = "—"
		}
		doc.Items = append(doc.Items, htmlItem{
			Description: desc,
			Quantity:    Number(item.Quantity),
			Rate:        Money(item.Rate),
			Amount:      Money(item.Amount()),
		})
	}

	for i, charge := range inv.AdditionalCharges {
		doc.Charges = append(doc.Charges, htmlCharge{
			Label:  chargeLabel(charge.Label, charge.Kind == domain.ChargePercentage, charge.Amount),
			Amount: Money(totals.ChargeAmounts[i]),
		})
	}

	var b strings.Builder
	if err := documentTmpl.Execute(&b, doc); err != nil {
		return "", fmt.Errorf("failed to render invoice markup: %w", err)
	}
	return b.String(), nil
}

// multiline escapes a free-text field and preserves its embedded
// newlines as <br> line breaks. Blank fields collapse to empty so the
// template's presence checks skip them.
func multiline(s string) template.HTML {
	if !notBlank(s) {
		return ""
	}
	lines := strings.Split(s, "\n")
	escaped := make([]string, len(lines))
	for i, line := range lines {
		escaped[i] = template.HTMLEscapeString(line)
	}
	return template.HTML(strings.Join(escaped, "<br>"))
}
