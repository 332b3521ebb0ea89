// Package pricing matches chat queries against the service catalog and
// evaluates counter-offers against a previously quoted price.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// rangeMarkup is the fixed ceiling applied over the summed base price.
var rangeMarkup = decimal.RequireFromString("1.2")

// QuoteResult is the aggregate of every service matched by one query.
type QuoteResult struct {
	MatchedServices []ServiceOffering
	TotalBasePrice  decimal.Decimal
	PriceRangeHigh  decimal.Decimal
	EstimatedDays   int
}

// ComputeQuote returns the quote for query, or ok=false when no catalog entry
// has a trigger keyword contained in it. Entries are visited in catalog order.
func ComputeQuote(query string, cfg *PricingConfiguration) (QuoteResult, bool) {
	if cfg == nil {
		return QuoteResult{}, false
	}
	q := strings.ToLower(query)

	var res QuoteResult
	res.TotalBasePrice = decimal.Zero
	for _, svc := range cfg.Services {
		if !matches(q, svc.TriggerKeywords) {
			continue
		}
		res.MatchedServices = append(res.MatchedServices, svc)
		res.TotalBasePrice = res.TotalBasePrice.Add(svc.BasePrice)
		if svc.AvgDurationDays > res.EstimatedDays {
			res.EstimatedDays = svc.AvgDurationDays
		}
	}

	if len(res.MatchedServices) == 0 {
		return QuoteResult{}, false
	}
	res.PriceRangeHigh = res.TotalBasePrice.Mul(rangeMarkup)
	return res, true
}

func matches(query string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(query, k) {
			return true
		}
	}
	return false
}

// ServiceNames returns the matched service names in match order.
func (r QuoteResult) ServiceNames() []string {
	names := make([]string, 0, len(r.MatchedServices))
	for _, s := range r.MatchedServices {
		names = append(names, s.Name)
	}
	return names
}

// PriceRange renders "$<low> - $<high>".
func (r QuoteResult) PriceRange() string {
	return fmt.Sprintf("%s - %s", FormatAmount(r.TotalBasePrice), FormatAmount(r.PriceRangeHigh))
}

// Render produces the customer-facing quote. The first dollar amount in the
// text is always the total base price; ExtractReferencePrice depends on it.
func (r QuoteResult) Render(disclaimer string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your request for: %s.\n", strings.Join(r.ServiceNames(), ", "))
	fmt.Fprintf(&b, "ESTIMATED RANGE: %s (USD)\n", r.PriceRange())
	fmt.Fprintf(&b, "TIMELINE: Approx %d business days.", r.EstimatedDays)
	if disclaimer != "" {
		fmt.Fprintf(&b, "\nNote: %s", disclaimer)
	}
	return b.String()
}

// FormatAmount renders a price as "$<amount>" without trailing zeros.
func FormatAmount(d decimal.Decimal) string {
	return "$" + d.String()
}
