package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChargeKind distinguishes how an additional charge is applied.
type ChargeKind string

const (
	ChargeFixed      ChargeKind = "fixed"      // amount in currency units
	ChargePercentage ChargeKind = "percentage" // percentage of the subtotal
)

// LineItem is one billable row on an invoice.
type LineItem struct {
	ID          string  `yaml:"id"`
	Description string  `yaml:"description"`
	Quantity    float64 `yaml:"quantity"`
	Rate        float64 `yaml:"rate"`
}

// Amount returns quantity x rate for this item.
func (li LineItem) Amount() float64 {
	return li.Quantity * li.Rate
}

// AdditionalCharge is a named surcharge or discount applied after the
// subtotal, either a fixed amount or a percentage of the subtotal.
type AdditionalCharge struct {
	ID     string     `yaml:"id"`
	Label  string     `yaml:"label"`
	Amount float64    `yaml:"amount"`
	Kind   ChargeKind `yaml:"kind"`
}

// Invoice is the full editing-session snapshot: header fields, parties,
// line items, tax rate, optional charges and an optional date-format tag.
// It is owned by the editing session; ComputeTotals and the renderers
// only ever read it.
type Invoice struct {
	InvoiceNumber string `yaml:"invoice_number"`
	InvoiceDate   string `yaml:"invoice_date"` // ISO date (YYYY-MM-DD)
	DueDate       string `yaml:"due_date"`     // ISO date (YYYY-MM-DD)

	CompanyName    string `yaml:"company_name"`
	CompanyAddress string `yaml:"company_address"`
	CompanyEmail   string `yaml:"company_email"`
	CompanyPhone   string `yaml:"company_phone"`

	ClientName    string `yaml:"client_name"`
	ClientAddress string `yaml:"client_address"`
	ClientEmail   string `yaml:"client_email"`

	LineItems []LineItem `yaml:"line_items"`
	TaxRate   float64    `yaml:"tax_rate"` // percentage, e.g. 12 for 12%
	Notes     string     `yaml:"notes"`

	// AdditionalCharges may be nil/empty (absent).
	AdditionalCharges []AdditionalCharge `yaml:"additional_charges,omitempty"`

	// DateFormat is a locale tag ("en-US", "de-DE", ..., or "long").
	// Empty means the default locale.
	DateFormat string `yaml:"date_format,omitempty"`
}

var ErrLastLineItem = errors.New("invoice must keep at least one line item")

// New creates a fresh invoice seeded for a new editing session: a
// generated number, today's date, a due date 30 days out and one blank
// line item.
func New(numberPrefix string) *Invoice {
	if numberPrefix == "" {
		numberPrefix = "INV"
	}
	now := time.Now()
	return &Invoice{
		InvoiceNumber: fmt.Sprintf("%s-%s", numberPrefix, now.Format("20060102-150405")),
		InvoiceDate:   now.Format("2006-01-02"),
		DueDate:       now.AddDate(0, 0, 30).Format("2006-01-02"),
		LineItems:     []LineItem{NewLineItem()},
	}
}

// NewLineItem returns a blank line item with a fresh ID.
func NewLineItem() LineItem {
	return LineItem{ID: uuid.NewString(), Quantity: 1}
}

// NewCharge returns a blank fixed charge with a fresh ID.
func NewCharge() AdditionalCharge {
	return AdditionalCharge{ID: uuid.NewString(), Kind: ChargeFixed}
}

// AddLineItem appends a blank line item and returns it.
func (inv *Invoice) AddLineItem() LineItem {
	item := NewLineItem()
	inv.LineItems = append(inv.LineItems, item)
	return item
}

// RemoveLineItem deletes the item with the given ID. Deleting the last
// remaining item is refused; the form always shows at least one row.
func (inv *Invoice) RemoveLineItem(id string) error {
	if len(inv.LineItems) <= 1 {
		return ErrLastLineItem
	}
	for i, item := range inv.LineItems {
		if item.ID == id {
			inv.LineItems = append(inv.LineItems[:i], inv.LineItems[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("line item %q not found", id)
}

// UpdateLineItem replaces the item with the same ID, preserving position.
func (inv *Invoice) UpdateLineItem(item LineItem) {
	for i := range inv.LineItems {
		if inv.LineItems[i].ID == item.ID {
			inv.LineItems[i] = item
			return
		}
	}
}

// AddCharge appends a blank fixed charge and returns it. Insertion order
// is display order.
func (inv *Invoice) AddCharge() AdditionalCharge {
	charge := NewCharge()
	inv.AdditionalCharges = append(inv.AdditionalCharges, charge)
	return charge
}

// RemoveCharge deletes the charge with the given ID.
func (inv *Invoice) RemoveCharge(id string) {
	for i, c := range inv.AdditionalCharges {
		if c.ID == id {
			inv.AdditionalCharges = append(inv.AdditionalCharges[:i], inv.AdditionalCharges[i+1:]...)
			return
		}
	}
}

// UpdateCharge replaces the charge with the same ID, preserving position.
func (inv *Invoice) UpdateCharge(charge AdditionalCharge) {
	for i := range inv.AdditionalCharges {
		if inv.AdditionalCharges[i].ID == charge.ID {
			inv.AdditionalCharges[i] = charge
			return
		}
	}
}

// Validate returns an error if the invoice is missing what a send needs.
// Header date strings are opaque; no cross-field validation happens here.
func (inv *Invoice) Validate() error {
	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		return errors.New("invoice number is required")
	}
	if len(inv.LineItems) == 0 {
		return errors.New("invoice needs at least one line item")
	}
	return nil
}
