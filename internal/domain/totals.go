package domain

// Totals is the computed money breakdown for one invoice snapshot.
// ChargeAmounts is aligned index-for-index with Invoice.AdditionalCharges.
type Totals struct {
	Subtotal      float64
	ChargeAmounts []float64
	ChargesTotal  float64
	Tax           float64
	Total         float64
}

// ComputeTotals derives the totals from an invoice. It is a pure
// function: no rounding (that happens at format time), no clamping of
// tax rates, and negative quantities, rates or charge amounts pass
// straight through as negative contributions.
//
// Tax is computed on the subtotal only; additional charges are not part
// of the tax base.
func ComputeTotals(inv Invoice) Totals {
	t := Totals{
		ChargeAmounts: make([]float64, 0, len(inv.AdditionalCharges)),
	}

	for _, item := range inv.LineItems {
		t.Subtotal += item.Quantity * item.Rate
	}

	for _, charge := range inv.AdditionalCharges {
		amount := charge.Amount
		if charge.Kind == ChargePercentage {
			amount = t.Subtotal * (charge.Amount / 100)
		}
		t.ChargeAmounts = append(t.ChargeAmounts, amount)
		t.ChargesTotal += amount
	}

	t.Tax = t.Subtotal * (inv.TaxRate / 100)
	t.Total = t.Subtotal + t.ChargesTotal + t.Tax
	return t
}
