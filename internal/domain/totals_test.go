package domain

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		invoice      Invoice
		wantSubtotal float64
		wantCharges  float64
		wantTax      float64
		wantTotal    float64
	}{
		{
			name: "single item no charges no tax",
			invoice: Invoice{
				LineItems: []LineItem{{Quantity: 2, Rate: 50}},
			},
			wantSubtotal: 100,
			wantCharges:  0,
			wantTax:      0,
			wantTotal:    100,
		},
		{
			name: "fixed and percentage charges with tax",
			invoice: Invoice{
				LineItems: []LineItem{{Quantity: 4, Rate: 50}},
				AdditionalCharges: []AdditionalCharge{
					{Label: "Shipping", Amount: 20, Kind: ChargeFixed},
					{Label: "Handling", Amount: 10, Kind: ChargePercentage},
				},
				TaxRate: 5,
			},
			wantSubtotal: 200,
			wantCharges:  40, // 20 fixed + 10% of 200
			wantTax:      10, // 5% of subtotal only
			wantTotal:    250,
		},
		{
			name:         "empty line items",
			invoice:      Invoice{},
			wantSubtotal: 0,
			wantCharges:  0,
			wantTax:      0,
			wantTotal:    0,
		},
		{
			name: "empty items with fixed charge",
			invoice: Invoice{
				AdditionalCharges: []AdditionalCharge{
					{Label: "Setup fee", Amount: 75, Kind: ChargeFixed},
				},
				TaxRate: 10,
			},
			wantSubtotal: 0,
			wantCharges:  75,
			wantTax:      0,
			wantTotal:    75,
		},
		{
			name: "negative amounts pass through",
			invoice: Invoice{
				LineItems: []LineItem{
					{Quantity: 1, Rate: 100},
					{Quantity: -2, Rate: 25},
				},
				AdditionalCharges: []AdditionalCharge{
					{Label: "Discount", Amount: -10, Kind: ChargeFixed},
				},
				TaxRate: 10,
			},
			wantSubtotal: 50,
			wantCharges:  -10,
			wantTax:      5,
			wantTotal:    45,
		},
		{
			name: "tax rate above 100 is not clamped",
			invoice: Invoice{
				LineItems: []LineItem{{Quantity: 1, Rate: 10}},
				TaxRate:   150,
			},
			wantSubtotal: 10,
			wantCharges:  0,
			wantTax:      15,
			wantTotal:    25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.invoice)
			if !approx(got.Subtotal, tt.wantSubtotal) {
				t.Errorf("Subtotal = %v, want %v", got.Subtotal, tt.wantSubtotal)
			}
			if !approx(got.ChargesTotal, tt.wantCharges) {
				t.Errorf("ChargesTotal = %v, want %v", got.ChargesTotal, tt.wantCharges)
			}
			if !approx(got.Tax, tt.wantTax) {
				t.Errorf("Tax = %v, want %v", got.Tax, tt.wantTax)
			}
			if !approx(got.Total, tt.wantTotal) {
				t.Errorf("Total = %v, want %v", got.Total, tt.wantTotal)
			}
			if len(got.ChargeAmounts) != len(tt.invoice.AdditionalCharges) {
				t.Errorf("ChargeAmounts length = %d, want %d",
					len(got.ChargeAmounts), len(tt.invoice.AdditionalCharges))
			}
		})
	}
}

func TestComputeTotals_SubtotalOrderInvariant(t *testing.T) {
	items := []LineItem{
		{Quantity: 3, Rate: 19.99},
		{Quantity: 0.5, Rate: 120},
		{Quantity: 7, Rate: 3.33},
		{Quantity: 1, Rate: 0.01},
	}
	forward := ComputeTotals(Invoice{LineItems: items})

	reversed := make([]LineItem, len(items))
	for i, item := range items {
		reversed[len(items)-1-i] = item
	}
	backward := ComputeTotals(Invoice{LineItems: reversed})

	if !approx(forward.Subtotal, backward.Subtotal) {
		t.Errorf("subtotal changed under reordering: %v vs %v",
			forward.Subtotal, backward.Subtotal)
	}
}

func TestComputeTotals_TaxBaseExcludesCharges(t *testing.T) {
	// For subtotal=1000 and taxRate=10, tax must be 100 regardless of
	// how many charges are attached.
	chargeSets := [][]AdditionalCharge{
		{{Label: "Fee", Amount: 500, Kind: ChargeFixed}},
		{{Label: "Markup", Amount: 50, Kind: ChargePercentage}},
		{
			{Label: "Fee", Amount: 500, Kind: ChargeFixed},
			{Label: "Markup", Amount: 50, Kind: ChargePercentage},
			{Label: "Discount", Amount: -25, Kind: ChargePercentage},
		},
	}

	for _, charges := range chargeSets {
		got := ComputeTotals(Invoice{
			LineItems:         []LineItem{{Quantity: 10, Rate: 100}},
			TaxRate:           10,
			AdditionalCharges: charges,
		})
		if !approx(got.Tax, 100) {
			t.Errorf("tax = %v with %d charges, want 100", got.Tax, len(charges))
		}
	}
}

func TestComputeTotals_ChargeAmountsPreserveOrder(t *testing.T) {
	inv := Invoice{
		LineItems: []LineItem{{Quantity: 1, Rate: 200}},
		AdditionalCharges: []AdditionalCharge{
			{Label: "A", Amount: 20, Kind: ChargeFixed},
			{Label: "B", Amount: 10, Kind: ChargePercentage},
			{Label: "C", Amount: 5, Kind: ChargeFixed},
		},
	}
	got := ComputeTotals(inv)

	want := []float64{20, 20, 5}
	for i, amount := range want {
		if !approx(got.ChargeAmounts[i], amount) {
			t.Errorf("ChargeAmounts[%d] = %v, want %v", i, got.ChargeAmounts[i], amount)
		}
	}
}

func TestComputeTotals_TotalIdentity(t *testing.T) {
	inv := Invoice{
		LineItems: []LineItem{
			{Quantity: 2.5, Rate: 33.33},
			{Quantity: 1, Rate: 99.95},
		},
		AdditionalCharges: []AdditionalCharge{
			{Label: "Rush", Amount: 12.5, Kind: ChargePercentage},
			{Label: "Courier", Amount: 8.75, Kind: ChargeFixed},
		},
		TaxRate: 12,
	}
	got := ComputeTotals(inv)

	if got.Total != got.Subtotal+got.ChargesTotal+got.Tax {
		t.Errorf("total %v != subtotal %v + charges %v + tax %v",
			got.Total, got.Subtotal, got.ChargesTotal, got.Tax)
	}
}

func TestNew_Seed(t *testing.T) {
	inv := New("INV")

	if inv.InvoiceNumber == "" {
		t.Error("expected a generated invoice number")
	}
	if len(inv.LineItems) != 1 {
		t.Fatalf("expected one seeded line item, got %d", len(inv.LineItems))
	}
	if inv.LineItems[0].Quantity != 1 || inv.LineItems[0].Rate != 0 {
		t.Errorf("seed line item = %+v, want qty 1 rate 0", inv.LineItems[0])
	}
	if inv.InvoiceDate == "" || inv.DueDate == "" {
		t.Error("expected seeded invoice and due dates")
	}
}

func TestRemoveLineItem_RefusesLast(t *testing.T) {
	inv := New("INV")
	if err := inv.RemoveLineItem(inv.LineItems[0].ID); err != ErrLastLineItem {
		t.Errorf("expected ErrLastLineItem, got %v", err)
	}

	inv.AddLineItem()
	if err := inv.RemoveLineItem(inv.LineItems[0].ID); err != nil {
		t.Errorf("unexpected error removing with two items: %v", err)
	}
	if len(inv.LineItems) != 1 {
		t.Errorf("expected 1 item left, got %d", len(inv.LineItems))
	}
}
