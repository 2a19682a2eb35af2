// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// Order represents a placed order. It is an immutable snapshot of the cart
// at purchase time; only status, receipt fields and delivery timestamps
// change after creation, and those changes are server-driven.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	StoreID     uint        `gorm:"not null;index" json:"store_id"`
	StoreName   string      `gorm:"not null;size:255" json:"store_name"`
	Status      OrderStatus `gorm:"not null;default:'pending'" json:"status"`

	// Pricing snapshot, in cents
	SubtotalCents         int64 `gorm:"not null" json:"subtotal_cents"`
	GSTCents              int64 `gorm:"default:0" json:"gst_cents"`
	PSTCents              int64 `gorm:"default:0" json:"pst_cents"`
	TaxCents              int64 `gorm:"default:0" json:"tax_cents"`
	PlatformFeeCents      int64 `gorm:"default:0" json:"platform_fee_cents"`
	DeliveryFeeCents      int64 `gorm:"default:0" json:"delivery_fee_cents"`
	DeliveryDiscountCents int64 `gorm:"default:0" json:"delivery_discount_cents"`
	TotalCents            int64 `gorm:"not null" json:"total_cents"`

	// Customer snapshot
	CustomerName  string `gorm:"not null;size:255" json:"customer_name"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`
	CustomerEmail string `gorm:"not null;size:255" json:"customer_email"`

	// Delivery address snapshot
	DeliveryAddress Address `gorm:"embedded;embeddedPrefix:delivery_" json:"delivery_address"`

	Language   string `gorm:"size:2;default:'es'" json:"language"`
	OrderNotes string `gorm:"type:text" json:"order_notes"`

	// Receipt signed-URL lifecycle
	ReceiptURL         string     `gorm:"size:1000" json:"receipt_url,omitempty"`
	ReceiptGeneratedAt *time.Time `json:"receipt_generated_at,omitempty"`
	ReceiptExpiresAt   *time.Time `json:"receipt_expires_at,omitempty"`

	EstimatedDeliveryTime *time.Time     `json:"estimated_delivery_time,omitempty"`
	DeliveredAt           *time.Time     `json:"delivered_at,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"status_history,omitempty"`
}

// OrderItem represents a line item snapshot inside an order
type OrderItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OrderID         uint      `gorm:"not null;index" json:"order_id"`
	ProductID       uint      `gorm:"not null;index" json:"product_id"`
	Name            string    `gorm:"not null;size:255" json:"name"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	UnitPriceCents  int64     `gorm:"not null" json:"unit_price_cents"`
	TotalPriceCents int64     `gorm:"not null" json:"total_price_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

// OrderStatusHistory tracks order status changes
type OrderStatusHistory struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"not null;index" json:"order_id"`
	Status    OrderStatus `gorm:"not null" json:"status"`
	Comment   string      `gorm:"type:text" json:"comment"`
	CreatedBy uint        `gorm:"index" json:"created_by"`
	CreatedAt time.Time   `json:"created_at"`
}

// Address represents a delivery address (embedded in Order)
type Address struct {
	AddressLine1 string `gorm:"size:255" json:"address_line1"`
	AddressLine2 string `gorm:"size:255" json:"address_line2"`
	City         string `gorm:"size:100" json:"city"`
	Province     string `gorm:"size:2" json:"province"`
	PostalCode   string `gorm:"size:10" json:"postal_code"`
	Instructions string `gorm:"type:text" json:"instructions"`
}

// TableName overrides
func (Order) TableName() string              { return "orders" }
func (OrderItem) TableName() string          { return "order_items" }
func (OrderStatusHistory) TableName() string { return "order_status_history" }

// validTransitions is the server-authoritative transition table. Cancelled
// is reachable from every pre-delivered state; delivered and cancelled are
// terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:      {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:          {OrderStatusOutForDelivery, OrderStatusCancelled},
	OrderStatusOutForDelivery: {OrderStatusDelivered, OrderStatusCancelled},
}

// ValidStatusTransition reports whether an order may move from one status
// to another
func ValidStatusTransition(from, to OrderStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanBeCancelled checks if the order can still be cancelled
func (o *Order) CanBeCancelled() bool {
	return ValidStatusTransition(o.Status, OrderStatusCancelled)
}

// GenerateOrderNumber generates a unique order number
func (o *Order) GenerateOrderNumber() string {
	// Format: LM-YYYYMMDD-XXXXX
	return fmt.Sprintf("LM-%s-%05d", time.Now().Format("20060102"), o.ID)
}

// GetFormattedTotal returns total amount in dollars
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.TotalCents) / 100
}

// AddStatusHistory appends a status change to the in-memory history
func (o *Order) AddStatusHistory(status OrderStatus, comment string, createdBy uint) {
	o.StatusHistory = append(o.StatusHistory, OrderStatusHistory{
		OrderID:   o.ID,
		Status:    status,
		Comment:   comment,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	})
}
