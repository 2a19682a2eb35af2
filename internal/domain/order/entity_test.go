package order

import "testing"

func TestValidStatusTransition(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusPreparing, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusPreparing, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusReady, false},
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusPreparing, OrderStatusCancelled, true},
		{OrderStatusPreparing, OrderStatusConfirmed, false},
		{OrderStatusReady, OrderStatusOutForDelivery, true},
		{OrderStatusReady, OrderStatusCancelled, true},
		{OrderStatusReady, OrderStatusDelivered, false},
		{OrderStatusOutForDelivery, OrderStatusDelivered, true},
		{OrderStatusOutForDelivery, OrderStatusCancelled, true},
		{OrderStatusOutForDelivery, OrderStatusReady, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
		{"", OrderStatusPending, false},
		{OrderStatusPending, "", false},
		{"unknown", OrderStatusConfirmed, false},
	}
	for _, tt := range tests {
		got := ValidStatusTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("ValidStatusTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	terminal := []OrderStatus{OrderStatusDelivered, OrderStatusCancelled}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%q should be terminal", s)
		}
	}

	active := []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusOutForDelivery,
	}
	for _, s := range active {
		if s.IsTerminal() {
			t.Errorf("%q should not be terminal", s)
		}
	}
}

func TestCanBeCancelled(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{OrderStatusPending, true},
		{OrderStatusConfirmed, true},
		{OrderStatusPreparing, true},
		{OrderStatusReady, true},
		{OrderStatusOutForDelivery, true},
		{OrderStatusDelivered, false},
		{OrderStatusCancelled, false},
	}
	for _, tt := range tests {
		o := &Order{Status: tt.status}
		if got := o.CanBeCancelled(); got != tt.want {
			t.Errorf("CanBeCancelled() with status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}
