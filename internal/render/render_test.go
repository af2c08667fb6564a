package render

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/andy/invoicegen/internal/domain"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		iso  string
		tag  string
		want string
	}{
		{"", "en-US", ""},
		{"", "long", ""},
		{"2025-01-01", "long", "January 1, 2025"},
		{"2025-03-15", "en-US", "3/15/2025"},
		{"2025-03-15", "en-PH", "3/15/2025"},
		{"2025-03-15", "en-GB", "15/03/2025"},
		{"2025-03-15", "fr-FR", "15/03/2025"},
		{"2025-03-15", "de-DE", "15.3.2025"},
		{"2025-03-15", "ja-JP", "2025/03/15"},
		// Unrecognized tag falls back to the default ordering.
		{"2025-03-15", "xx-XX", "3/15/2025"},
		{"2025-03-15", "", "3/15/2025"},
		// Unparseable input is passed through rather than erroring.
		{"not-a-date", "en-US", "not-a-date"},
	}

	for _, tt := range tests {
		if got := FormatDate(tt.iso, tt.tag); got != tt.want {
			t.Errorf("FormatDate(%q, %q) = %q, want %q", tt.iso, tt.tag, got, tt.want)
		}
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	values := []float64{0, 0.005, 1, 99.99, 123.456, 1000000.004, -42.5}
	for _, v := range values {
		s := Money(v)
		if !strings.HasPrefix(s, CurrencySymbol) {
			t.Fatalf("Money(%v) = %q missing currency prefix", v, s)
		}
		stripped := strings.TrimPrefix(s, CurrencySymbol)
		parsed, err := strconv.ParseFloat(stripped, 64)
		if err != nil {
			t.Fatalf("Money(%v) = %q not re-parseable: %v", v, s, err)
		}
		if math.Abs(parsed-v) >= 0.005 {
			t.Errorf("Money(%v) = %q round-trips to %v (off by %v)", v, s, parsed, math.Abs(parsed-v))
		}
	}
}

// sharedFixture is Scenario B: subtotal 200, a fixed 20 charge, a 10%
// charge, 5% tax. Totals: charges 40, tax 10, total 250.
func sharedFixture() (domain.Invoice, domain.Totals) {
	inv := domain.Invoice{
		InvoiceNumber:  "INV-042",
		InvoiceDate:    "2025-06-01",
		DueDate:        "2025-07-01",
		CompanyName:    "Acme Studio",
		CompanyAddress: "12 Hill Road\nMakati",
		CompanyEmail:   "billing@acme.test",
		ClientName:     "Globex",
		ClientAddress:  "1 Plaza Drive\nCebu",
		ClientEmail:    "ap@globex.test",
		LineItems: []domain.LineItem{
			{ID: "a", Description: "Design work", Quantity: 4, Rate: 50},
		},
		AdditionalCharges: []domain.AdditionalCharge{
			{ID: "c1", Label: "Shipping", Amount: 20, Kind: domain.ChargeFixed},
			{ID: "c2", Label: "Handling", Amount: 10, Kind: domain.ChargePercentage},
		},
		TaxRate: 5,
		Notes:   "Thank you for your business.",
	}
	return inv, domain.ComputeTotals(inv)
}

var moneyPattern = regexp.MustCompile(CurrencySymbol + `-?[0-9]+\.[0-9]{2}`)

// TestRenderTargetsAgree feeds one fixture into both render targets and
// diffs every currency substring: the preview and the export document
// must show identical figures.
func TestRenderTargetsAgree(t *testing.T) {
	inv, totals := sharedFixture()

	text := Text(inv, totals)
	html, err := HTML(inv, totals)
	if err != nil {
		t.Fatalf("HTML render failed: %v", err)
	}

	textAmounts := moneyPattern.FindAllString(text, -1)
	htmlAmounts := moneyPattern.FindAllString(html, -1)

	if len(textAmounts) == 0 {
		t.Fatal("text target rendered no currency figures")
	}
	if len(textAmounts) != len(htmlAmounts) {
		t.Fatalf("figure count differs: text %d vs html %d\ntext: %v\nhtml: %v",
			len(textAmounts), len(htmlAmounts), textAmounts, htmlAmounts)
	}
	for i := range textAmounts {
		if textAmounts[i] != htmlAmounts[i] {
			t.Errorf("figure %d differs: text %q vs html %q", i, textAmounts[i], htmlAmounts[i])
		}
	}

	// Scenario D: both must show the same total string.
	if !strings.Contains(text, CurrencySymbol+"250.00") {
		t.Error("text target missing total ₱250.00")
	}
	if !strings.Contains(html, CurrencySymbol+"250.00") {
		t.Error("html target missing total ₱250.00")
	}
}

func TestTextOptionalFields(t *testing.T) {
	inv := domain.Invoice{
		InvoiceNumber: "INV-1",
		LineItems:     []domain.LineItem{{ID: "a", Quantity: 1, Rate: 10}},
	}
	text := Text(inv, domain.ComputeTotals(inv))

	// Absent optional fields leave no empty labeled rows behind; the
	// blank description renders the placeholder dash.
	for _, label := range []string{"Notes:"} {
		if strings.Contains(text, label) {
			t.Errorf("text target rendered %q for an absent field", label)
		}
	}
	if !strings.Contains(text, "—") {
		t.Error("blank description should render the placeholder dash")
	}
}

func TestTextChargeRowOrderAndLabels(t *testing.T) {
	inv, totals := sharedFixture()
	text := Text(inv, totals)

	subtotalIdx := strings.Index(text, "Subtotal:")
	shippingIdx := strings.Index(text, "Shipping:")
	handlingIdx := strings.Index(text, "Handling (10%):")
	taxIdx := strings.Index(text, "Tax (5%):")
	totalIdx := strings.LastIndex(text, "Total:")

	for name, idx := range map[string]int{
		"Subtotal": subtotalIdx, "Shipping": shippingIdx,
		"Handling with percentage": handlingIdx, "Tax": taxIdx, "Total": totalIdx,
	} {
		if idx < 0 {
			t.Fatalf("totals block missing %s row", name)
		}
	}
	if !(subtotalIdx < shippingIdx && shippingIdx < handlingIdx && handlingIdx < taxIdx && taxIdx < totalIdx) {
		t.Error("totals rows out of order: want Subtotal, charges in list order, Tax, Total")
	}
}

func TestHTMLEscapesAndPreservesNewlines(t *testing.T) {
	inv := domain.Invoice{
		InvoiceNumber:  "INV-<7>",
		CompanyName:    "A & B",
		CompanyAddress: "Line 1\nLine 2",
		LineItems:      []domain.LineItem{{ID: "a", Quantity: 1, Rate: 10}},
	}
	html, err := HTML(inv, domain.ComputeTotals(inv))
	if err != nil {
		t.Fatalf("HTML render failed: %v", err)
	}

	if !strings.Contains(html, "A &amp; B") {
		t.Error("company name not escaped")
	}
	if !strings.Contains(html, "Line 1<br>Line 2") {
		t.Error("address newlines not preserved as line breaks")
	}
	if strings.Contains(html, "<script") {
		t.Error("unexpected script content")
	}
	// Self-contained: no external resource references.
	for _, ref := range []string{"http://", "https://", "<link", "src="} {
		if strings.Contains(html, ref) {
			t.Errorf("export markup references an external resource: %s", ref)
		}
	}
}

func TestPDFRenders(t *testing.T) {
	inv, totals := sharedFixture()
	pdf, err := PDF(inv, totals)
	if err != nil {
		t.Fatalf("PDF render failed: %v", err)
	}
	if len(pdf) == 0 || !strings.HasPrefix(string(pdf[:5]), "%PDF-") {
		t.Error("output does not look like a PDF document")
	}
}
