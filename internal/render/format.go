// Package render turns an invoice snapshot and its computed totals into
// the documents the app shows and sends: a plain-text view for the
// terminal preview and printing, a self-contained HTML document for
// email delivery, and a PDF. All targets share the same formatting
// rules so the numbers never drift between them.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CurrencySymbol prefixes every money figure in the text and HTML targets.
const CurrencySymbol = "₱"

// DefaultDateFormat is used when an invoice carries no date-format tag.
const DefaultDateFormat = "en-US"

// Money renders an amount with the currency glyph and exactly two
// fractional digits. No thousands separators.
func Money(amount float64) string {
	return CurrencySymbol + fmt.Sprintf("%.2f", amount)
}

// Number renders a plain quantity, trimming trailing zeros (2 not 2.00,
// but 2.5 stays 2.5).
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// dateLayouts maps each recognized locale tag to its numeric layout.
// "long" is handled separately and unknown tags fall back to en-US.
var dateLayouts = map[string]string{
	"en-US": "1/2/2006",
	"en-PH": "1/2/2006",
	"en-GB": "02/01/2006",
	"fr-FR": "02/01/2006",
	"de-DE": "2.1.2006",
	"ja-JP": "2006/01/02",
}

// FormatDate renders an ISO date string (YYYY-MM-DD) according to the
// locale tag. Empty input yields empty output; an unparseable date is
// returned as-is; the "long" sentinel yields "January 2, 2006" style;
// unrecognized tags use the default locale's ordering.
func FormatDate(isoDate, tag string) string {
	if isoDate == "" {
		return ""
	}
	date, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	if tag == "long" {
		return date.Format("January 2, 2006")
	}
	layout, ok := dateLayouts[tag]
	if !ok {
		layout = dateLayouts[DefaultDateFormat]
	}
	return date.Format(layout)
}

// chargeLabel renders a charge label, appending the configured
// percentage for percentage charges ("Handling (10%)").
func chargeLabel(label string, percentage bool, amount float64) string {
	if percentage {
		return fmt.Sprintf("%s (%s%%)", label, Number(amount))
	}
	return label
}

// notBlank reports whether an optional field should render at all.
func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
