package render

import (
	"fmt"
	"strings"

	"github.com/andy/invoicegen/internal/domain"
)

const textWidth = 72

// Text renders the invoice as a structured plain-text document: header,
// bill-to, line-item table, totals and notes. This is the interactive /
// print target; the TUI preview pane and the preview command both show
// exactly this output.
func Text(inv domain.Invoice, totals domain.Totals) string {
	var b strings.Builder
	tag := inv.DateFormat
	divider := strings.Repeat("─", textWidth)

	// Header: company identity on the left matter, invoice meta below.
	b.WriteString("INVOICE\n")
	if notBlank(inv.CompanyName) {
		fmt.Fprintf(&b, "%s\n", inv.CompanyName)
	}
	if notBlank(inv.CompanyAddress) {
		for _, line := range strings.Split(inv.CompanyAddress, "\n") {
			fmt.Fprintf(&b, "%s\n", line)
		}
	}
	if notBlank(inv.CompanyEmail) {
		fmt.Fprintf(&b, "%s\n", inv.CompanyEmail)
	}
	if notBlank(inv.CompanyPhone) {
		fmt.Fprintf(&b, "%s\n", inv.CompanyPhone)
	}
	b.WriteString("\n")

	if notBlank(inv.InvoiceNumber) {
		fmt.Fprintf(&b, "Invoice #:  %s\n", inv.InvoiceNumber)
	}
	if inv.InvoiceDate != "" {
		fmt.Fprintf(&b, "Date:       %s\n", FormatDate(inv.InvoiceDate, tag))
	}
	if inv.DueDate != "" {
		fmt.Fprintf(&b, "Due Date:   %s\n", FormatDate(inv.DueDate, tag))
	}

	// Bill-to block.
	b.WriteString("\n" + divider + "\n")
	b.WriteString("Bill To:\n")
	if notBlank(inv.ClientName) {
		fmt.Fprintf(&b, "%s\n", inv.ClientName)
	}
	if notBlank(inv.ClientAddress) {
		for _, line := range strings.Split(inv.ClientAddress, "\n") {
			fmt.Fprintf(&b, "%s\n", line)
		}
	}
	if notBlank(inv.ClientEmail) {
		fmt.Fprintf(&b, "%s\n", inv.ClientEmail)
	}

	// Line items.
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-34s %8s %13s %13s\n", "Description", "Qty", "Rate", "Amount")
	b.WriteString(divider + "\n")
	for _, item := range inv.LineItems {
		desc := item.Description
		if !notBlank(desc) {
			desc = "—"
		}
		fmt.Fprintf(&b, "%-34s %8s %13s %13s\n",
			truncate(desc, 34),
			Number(item.Quantity),
			Money(item.Rate),
			Money(item.Amount()),
		)
	}
	b.WriteString(divider + "\n")

	// Totals block: subtotal, charges in list order, tax, then total.
	writeTotal := func(label, value string) {
		fmt.Fprintf(&b, "%48s %22s\n", label, value)
	}
	writeTotal("Subtotal:", Money(totals.Subtotal))
	for i, charge := range inv.AdditionalCharges {
		label := chargeLabel(charge.Label, charge.Kind == domain.ChargePercentage, charge.Amount)
		writeTotal(label+":", Money(totals.ChargeAmounts[i]))
	}
	writeTotal(fmt.Sprintf("Tax (%s%%):", Number(inv.TaxRate)), Money(totals.Tax))
	fmt.Fprintf(&b, "%48s %22s\n", "", strings.Repeat("─", 22))
	writeTotal("Total:", Money(totals.Total))

	if notBlank(inv.Notes) {
		b.WriteString("\nNotes:\n")
		for _, line := range strings.Split(inv.Notes, "\n") {
			fmt.Fprintf(&b, "%s\n", line)
		}
	}

	return b.String()
}

// truncate shortens a string to maxLen with ellipsis.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
