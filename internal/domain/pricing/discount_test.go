package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateDiscountEligible(t *testing.T) {
	d := EvaluateDiscount(DiscountInput{
		CompletedOrders: 1,
		OriginalFee:     499,
		Percentage:      0.5,
		OrderLimit:      3,
	})

	assert.True(t, d.Eligible)
	assert.Equal(t, int64(499), d.OriginalFeeCents)
	assert.Equal(t, int64(250), d.DiscountedFeeCents) // round(499 * 0.5)
	assert.Equal(t, 2, d.OrdersRemaining)
}

func TestEvaluateDiscountExhausted(t *testing.T) {
	d := EvaluateDiscount(DiscountInput{
		CompletedOrders: 3,
		OriginalFee:     499,
		Percentage:      0.5,
		OrderLimit:      3,
	})

	assert.False(t, d.Eligible)
	assert.Equal(t, int64(499), d.DiscountedFeeCents)
	assert.Equal(t, 0, d.OrdersRemaining)
}

func TestEvaluateDiscountFullPercentage(t *testing.T) {
	d := EvaluateDiscount(DiscountInput{
		CompletedOrders: 0,
		OriginalFee:     499,
		Percentage:      1,
		OrderLimit:      1,
	})

	assert.True(t, d.Eligible)
	assert.Equal(t, int64(0), d.DiscountedFeeCents)
}

func TestEvaluateDiscountFailsClosed(t *testing.T) {
	tests := []struct {
		name string
		in   DiscountInput
	}{
		{"NaN fee", DiscountInput{CompletedOrders: 0, OriginalFee: math.NaN(), Percentage: 0.5, OrderLimit: 3}},
		{"Inf fee", DiscountInput{CompletedOrders: 0, OriginalFee: math.Inf(1), Percentage: 0.5, OrderLimit: 3}},
		{"negative fee", DiscountInput{CompletedOrders: 0, OriginalFee: -100, Percentage: 0.5, OrderLimit: 3}},
		{"NaN percentage", DiscountInput{CompletedOrders: 0, OriginalFee: 499, Percentage: math.NaN(), OrderLimit: 3}},
		{"percentage above 1", DiscountInput{CompletedOrders: 0, OriginalFee: 499, Percentage: 1.5, OrderLimit: 3}},
		{"negative percentage", DiscountInput{CompletedOrders: 0, OriginalFee: 499, Percentage: -0.1, OrderLimit: 3}},
		{"negative order count", DiscountInput{CompletedOrders: -1, OriginalFee: 499, Percentage: 0.5, OrderLimit: 3}},
		{"zero order limit", DiscountInput{CompletedOrders: 0, OriginalFee: 499, Percentage: 0.5, OrderLimit: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := EvaluateDiscount(tt.in)
			assert.False(t, d.Eligible)
			assert.Equal(t, 0.0, d.Percentage)
			// Discounted fee never drops below the original when ineligible
			assert.Equal(t, d.OriginalFeeCents, d.DiscountedFeeCents)
		})
	}
}

func TestEvaluateDiscountInvariant(t *testing.T) {
	// discountedFee = originalFee * (1 - percentage), rounded to cents
	for _, pct := range []float64{0, 0.1, 0.25, 0.5, 0.75, 1} {
		d := EvaluateDiscount(DiscountInput{
			CompletedOrders: 0,
			OriginalFee:     499,
			Percentage:      pct,
			OrderLimit:      3,
		})
		want := RoundCents(499 * (1 - pct))
		assert.Equal(t, want, d.DiscountedFeeCents, "pct=%v", pct)
	}
}
