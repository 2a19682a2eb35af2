// internal/domain/pricing/discount.go
package pricing

import "math"

// Discount is the evaluated new-customer delivery discount. The server-side
// value is authoritative; clients treat it as a display hint.
type Discount struct {
	Eligible           bool    `json:"eligible"`
	Percentage         float64 `json:"percentage"`
	OriginalFeeCents   int64   `json:"original_fee_cents"`
	DiscountedFeeCents int64   `json:"discounted_fee_cents"`
	OrdersRemaining    int     `json:"orders_remaining"`
}

// DiscountInput carries the raw inputs for discount evaluation. Fee and
// percentage arrive as float64 because store documents are loosely typed and
// stale cached values can surface as NaN.
type DiscountInput struct {
	CompletedOrders int
	OriginalFee     float64
	Percentage      float64
	OrderLimit      int
}

// EvaluateDiscount decides first-N-orders delivery discount eligibility.
// Fail closed: any input that does not pass a finite-number check makes the
// customer ineligible rather than rendering a broken discount.
func EvaluateDiscount(in DiscountInput) Discount {
	if !isFinite(in.OriginalFee) || in.OriginalFee < 0 {
		return Discount{}
	}

	original := RoundCents(in.OriginalFee)
	ineligible := Discount{
		OriginalFeeCents:   original,
		DiscountedFeeCents: original,
	}

	if !isFinite(in.Percentage) || in.Percentage < 0 || in.Percentage > 1 {
		return ineligible
	}
	if in.CompletedOrders < 0 || in.OrderLimit <= 0 {
		return ineligible
	}
	if in.CompletedOrders >= in.OrderLimit {
		return ineligible
	}

	discounted := RoundCents(in.OriginalFee * (1 - in.Percentage))

	return Discount{
		Eligible:           true,
		Percentage:         in.Percentage,
		OriginalFeeCents:   original,
		DiscountedFeeCents: discounted,
		OrdersRemaining:    in.OrderLimit - in.CompletedOrders,
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
