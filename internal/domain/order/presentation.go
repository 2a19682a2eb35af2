// internal/domain/order/presentation.go
package order

// Presentation is how a status is rendered: an icon name, a display color
// and a label in the requested language.
type Presentation struct {
	Status  OrderStatus `json:"status"`
	Icon    string      `json:"icon"`
	Color   string      `json:"color"`
	LabelEN string      `json:"label_en"`
	LabelES string      `json:"label_es"`
}

var statusPresentations = map[OrderStatus]Presentation{
	OrderStatusPending: {
		Status:  OrderStatusPending,
		Icon:    "clock",
		Color:   "#f59e0b",
		LabelEN: "Pending",
		LabelES: "Pendiente",
	},
	OrderStatusConfirmed: {
		Status:  OrderStatusConfirmed,
		Icon:    "check-circle",
		Color:   "#3b82f6",
		LabelEN: "Confirmed",
		LabelES: "Confirmado",
	},
	OrderStatusPreparing: {
		Status:  OrderStatusPreparing,
		Icon:    "chef-hat",
		Color:   "#8b5cf6",
		LabelEN: "Preparing",
		LabelES: "En preparación",
	},
	OrderStatusReady: {
		Status:  OrderStatusReady,
		Icon:    "package",
		Color:   "#06b6d4",
		LabelEN: "Ready",
		LabelES: "Listo",
	},
	OrderStatusOutForDelivery: {
		Status:  OrderStatusOutForDelivery,
		Icon:    "truck",
		Color:   "#f97316",
		LabelEN: "Out for delivery",
		LabelES: "En camino",
	},
	OrderStatusDelivered: {
		Status:  OrderStatusDelivered,
		Icon:    "check-circle-2",
		Color:   "#22c55e",
		LabelEN: "Delivered",
		LabelES: "Entregado",
	},
	OrderStatusCancelled: {
		Status:  OrderStatusCancelled,
		Icon:    "x-circle",
		Color:   "#ef4444",
		LabelEN: "Cancelled",
		LabelES: "Cancelado",
	},
}

// PresentationFor maps a raw status to its presentation. Total function:
// unrecognized statuses fall back to pending's presentation instead of
// failing, so a newer backend status never breaks older clients.
func PresentationFor(status OrderStatus) Presentation {
	if p, ok := statusPresentations[status]; ok {
		return p
	}
	return statusPresentations[OrderStatusPending]
}

// Label returns the localized label for the given language, defaulting to
// English for anything that is not Spanish
func (p Presentation) Label(language string) string {
	if language == "es" {
		return p.LabelES
	}
	return p.LabelEN
}
