package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var bcRates = Rates{GST: 0.05, PST: 0.07}

func TestCalculateSingleItem(t *testing.T) {
	// $15.99 x 1 at the BC 12% combined rate
	items := []LineItem{{UnitPriceCents: 1599, Quantity: 1}}

	summary := Calculate(items, bcRates, 0, nil)

	assert.Equal(t, int64(1599), summary.SubtotalCents)
	assert.Equal(t, int64(80), summary.GSTCents)  // round(1599 * 0.05)
	assert.Equal(t, int64(112), summary.PSTCents) // round(1599 * 0.07)
	assert.Equal(t, int64(192), summary.TaxCents) // $1.92
	assert.Nil(t, summary.DeliveryFeeCents)
	// Total excludes the delivery fee until it is resolved
	assert.Equal(t, int64(1599+192), summary.TotalCents)
	assert.Equal(t, 1, summary.ItemCount)
}

func TestCalculateMultipleItems(t *testing.T) {
	items := []LineItem{
		{UnitPriceCents: 1599, Quantity: 2},
		{UnitPriceCents: 849, Quantity: 3},
	}

	summary := Calculate(items, bcRates, 99, nil)

	assert.Equal(t, int64(2*1599+3*849), summary.SubtotalCents)
	assert.Equal(t, 5, summary.ItemCount)
	assert.Equal(t, int64(99), summary.PlatformFeeCents)
	assert.Equal(t, summary.SubtotalCents+summary.TaxCents+99, summary.TotalCents)
}

func TestCalculateResolvedDeliveryFee(t *testing.T) {
	items := []LineItem{{UnitPriceCents: 1000, Quantity: 1}}
	fee := int64(499)

	summary := Calculate(items, bcRates, 99, &fee)

	if assert.NotNil(t, summary.DeliveryFeeCents) {
		assert.Equal(t, int64(499), *summary.DeliveryFeeCents)
	}
	assert.Equal(t, int64(1000+499+99+120), summary.TotalCents)
}

func TestCalculateZeroDeliveryFeeIsNotUnresolved(t *testing.T) {
	items := []LineItem{{UnitPriceCents: 1000, Quantity: 1}}
	free := int64(0)

	summary := Calculate(items, bcRates, 0, &free)

	// An explicit zero fee stays an explicit zero, not "unknown"
	if assert.NotNil(t, summary.DeliveryFeeCents) {
		assert.Equal(t, int64(0), *summary.DeliveryFeeCents)
	}
}

func TestCalculateEmptyCart(t *testing.T) {
	summary := Calculate(nil, bcRates, 99, nil)

	assert.Equal(t, Summary{}, summary)
	assert.Nil(t, summary.DeliveryFeeCents)
}

func TestCalculateSkipsNonPositiveQuantities(t *testing.T) {
	items := []LineItem{
		{UnitPriceCents: 1599, Quantity: 0},
		{UnitPriceCents: 849, Quantity: -2},
	}

	summary := Calculate(items, bcRates, 99, nil)

	assert.Equal(t, Summary{}, summary)
}

func TestCalculateIsDeterministic(t *testing.T) {
	items := []LineItem{
		{UnitPriceCents: 1234, Quantity: 3},
		{UnitPriceCents: 567, Quantity: 2},
	}
	fee := int64(350)

	first := Calculate(items, bcRates, 99, &fee)
	second := Calculate(items, bcRates, 99, &fee)

	assert.Equal(t, first, second)
}
