// internal/domain/pricing/calculator.go
package pricing

import "math"

// All amounts are in cents. Line totals are exact integer arithmetic, so the
// only rounding happens when a tax component is derived from the subtotal.

// LineItem is the minimal shape the calculator needs: a unit price captured
// at the time the item was added, and a quantity.
type LineItem struct {
	UnitPriceCents int64 `json:"unit_price_cents"`
	Quantity       int   `json:"quantity"`
}

// Rates holds the jurisdiction tax split
type Rates struct {
	GST float64
	PST float64
}

// Summary is the priced view of a list of line items. It is derived data:
// recomputed from the items on every read, never mutated independently.
// DeliveryFeeCents is nil while the fee is unresolved (pre-checkout); an
// explicit zero fee is a different thing and does appear in the total.
type Summary struct {
	SubtotalCents    int64  `json:"subtotal_cents"`
	GSTCents         int64  `json:"gst_cents"`
	PSTCents         int64  `json:"pst_cents"`
	TaxCents         int64  `json:"tax_cents"`
	PlatformFeeCents int64  `json:"platform_fee_cents"`
	DeliveryFeeCents *int64 `json:"delivery_fee_cents"`
	TotalCents       int64  `json:"total_cents"`
	ItemCount        int    `json:"item_count"`
}

// Calculate produces a Summary from line items. Pure function: no side
// effects, same inputs always produce the same output.
func Calculate(items []LineItem, rates Rates, platformFeeCents int64, deliveryFeeCents *int64) Summary {
	if len(items) == 0 {
		return Summary{}
	}

	var summary Summary
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		summary.SubtotalCents += item.UnitPriceCents * int64(item.Quantity)
		summary.ItemCount += item.Quantity
	}

	if summary.ItemCount == 0 {
		return Summary{}
	}

	summary.GSTCents = RoundCents(float64(summary.SubtotalCents) * rates.GST)
	summary.PSTCents = RoundCents(float64(summary.SubtotalCents) * rates.PST)
	summary.TaxCents = summary.GSTCents + summary.PSTCents
	summary.PlatformFeeCents = platformFeeCents
	summary.DeliveryFeeCents = deliveryFeeCents

	var delivery int64
	if deliveryFeeCents != nil {
		delivery = *deliveryFeeCents
	}
	summary.TotalCents = summary.SubtotalCents + delivery + summary.PlatformFeeCents + summary.TaxCents

	return summary
}

// RoundCents rounds a fractional cent amount to the nearest whole cent
func RoundCents(v float64) int64 {
	return int64(math.Round(v))
}
