// Package extract pulls currency-tagged amounts out of free-form text, such
// as forwarded payment-notification messages.
package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// The two supported shapes, in priority order: currency marker before the
// number, then number before the marker. If the first pattern matches
// anywhere in the text the second is never consulted.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Rs\.?|INR|₹)\s*([\d,]+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)([\d,]+(?:\.\d{2})?)\s*(?:Rs\.?|INR|₹)`),
}

// ParseAmount scans text for a currency-tagged numeric amount. Thousands
// separators are stripped before parsing. The second return value is false
// when no supported pattern matches.
func ParseAmount(text string) (decimal.Decimal, bool) {
	for _, pattern := range amountPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return amount, true
	}
	return decimal.Decimal{}, false
}
