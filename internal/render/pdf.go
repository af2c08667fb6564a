package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/andy/invoicegen/internal/domain"
)

// pdfMoney formats money for the PDF target. The built-in core fonts
// are cp1252 and cannot encode the peso glyph, so the PDF spells the
// currency out; the figures themselves are identical to the other
// targets.
func pdfMoney(amount float64) string {
	return "PHP " + fmt.Sprintf("%.2f", amount)
}

// PDF renders the invoice as an A4 PDF with the same sections and the
// same computed figures as the text and HTML targets.
func PDF(inv domain.Invoice, totals domain.Totals) ([]byte, error) {
	tag := inv.DateFormat

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	if notBlank(inv.CompanyName) {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 5, inv.CompanyName)
		pdf.Ln(5)
		pdf.SetFont("Arial", "", 10)
	}
	if notBlank(inv.CompanyAddress) {
		for _, line := range strings.Split(inv.CompanyAddress, "\n") {
			pdf.Cell(0, 5, line)
			pdf.Ln(5)
		}
	}
	if notBlank(inv.CompanyEmail) {
		pdf.Cell(0, 5, inv.CompanyEmail)
		pdf.Ln(5)
	}
	if notBlank(inv.CompanyPhone) {
		pdf.Cell(0, 5, inv.CompanyPhone)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	if notBlank(inv.InvoiceNumber) {
		pdf.Cell(0, 5, fmt.Sprintf("Invoice #: %s", inv.InvoiceNumber))
		pdf.Ln(5)
	}
	if inv.InvoiceDate != "" {
		pdf.Cell(0, 5, fmt.Sprintf("Date: %s", FormatDate(inv.InvoiceDate, tag)))
		pdf.Ln(5)
	}
	if inv.DueDate != "" {
		pdf.Cell(0, 5, fmt.Sprintf("Due Date: %s", FormatDate(inv.DueDate, tag)))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 5, "Bill To:")
	pdf.Ln(5)
	pdf.SetFont("Arial", "", 10)
	if notBlank(inv.ClientName) {
		pdf.Cell(0, 5, inv.ClientName)
		pdf.Ln(5)
	}
	if notBlank(inv.ClientAddress) {
		for _, line := range strings.Split(inv.ClientAddress, "\n") {
			pdf.Cell(0, 5, line)
			pdf.Ln(5)
		}
	}
	if notBlank(inv.ClientEmail) {
		pdf.Cell(0, 5, inv.ClientEmail)
		pdf.Ln(5)
	}
	pdf.Ln(6)

	// Items table.
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(80, 7, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Rate", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, item := range inv.LineItems {
		desc := item.Description
		if !notBlank(desc) {
			desc = "-"
		}
		pdf.CellFormat(80, 7, truncate(desc, 48), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, Number(item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, pdfMoney(item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, pdfMoney(item.Amount()), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	// Totals block, fixed row order.
	writeTotal := func(label, value string, bold bool) {
		if bold {
			pdf.SetFont("Arial", "B", 11)
		} else {
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(145, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, value, "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	writeTotal("Subtotal:", pdfMoney(totals.Subtotal), false)
	for i, charge := range inv.AdditionalCharges {
		label := chargeLabel(charge.Label, charge.Kind == domain.ChargePercentage, charge.Amount)
		writeTotal(label+":", pdfMoney(totals.ChargeAmounts[i]), false)
	}
	writeTotal(fmt.Sprintf("Tax (%s%%):", Number(inv.TaxRate)), pdfMoney(totals.Tax), false)
	writeTotal("Total:", pdfMoney(totals.Total), true)

	if notBlank(inv.Notes) {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 5, "Notes:")
		pdf.Ln(5)
		pdf.SetFont("Arial", "", 10)
		for _, line := range strings.Split(inv.Notes, "\n") {
			pdf.Cell(0, 5, line)
			pdf.Ln(5)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return buf.Bytes(), nil
}
