package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresentationForKnownStatuses(t *testing.T) {
	for _, status := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusOutForDelivery, OrderStatusDelivered,
		OrderStatusCancelled,
	} {
		p := PresentationFor(status)
		assert.Equal(t, status, p.Status)
		assert.NotEmpty(t, p.Icon, "icon for %s", status)
		assert.NotEmpty(t, p.Color, "color for %s", status)
		assert.NotEmpty(t, p.LabelEN, "english label for %s", status)
		assert.NotEmpty(t, p.LabelES, "spanish label for %s", status)
	}
}

func TestPresentationForUnknownStatusFallsBackToPending(t *testing.T) {
	p := PresentationFor("definitely_not_a_status")
	assert.Equal(t, OrderStatusPending, p.Status)
	assert.Equal(t, "Pending", p.LabelEN)
}

func TestPresentationLabelLocalization(t *testing.T) {
	p := PresentationFor(OrderStatusOutForDelivery)

	assert.Equal(t, "En camino", p.Label("es"))
	assert.Equal(t, "Out for delivery", p.Label("en"))
	// Unknown languages default to English
	assert.Equal(t, "Out for delivery", p.Label("fr"))
	assert.Equal(t, "Out for delivery", p.Label(""))
}
