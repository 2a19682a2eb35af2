// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/cart"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/pricing"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/store"
)

// Service handles order business logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	cartService *cart.Service
	log         *logrus.Logger
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, cartService *cart.Service, log *logrus.Logger) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		cartService: cartService,
		log:         log,
	}
}

// CreateOrderRequest represents order creation data
type CreateOrderRequest struct {
	CustomerName    string  `json:"customer_name" binding:"required"`
	CustomerPhone   string  `json:"customer_phone" binding:"required"`
	CustomerEmail   string  `json:"customer_email" binding:"required,email"`
	DeliveryAddress Address `json:"delivery_address" binding:"required"`
	OrderNotes      string  `json:"order_notes,omitempty"`
	Language        string  `json:"language" binding:"omitempty,oneof=en es"`
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page      int         `form:"page,default=1"`
	Limit     int         `form:"limit,default=20"`
	Status    OrderStatus `form:"status"`
	SortOrder string      `form:"sort_order,default=desc"`
}

// OrderListResponse represents orders with pagination
type OrderListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// CreateOrder creates a new order from the user's cart. The cart summary is
// recomputed server-side with the delivery fee resolved, the cart is
// snapshotted into immutable order rows, and the cart is cleared on success.
func (s *Service) CreateOrder(ctx context.Context, userID uint, req *CreateOrderRequest) (*Order, error) {
	userCart := s.cartService.GetCart(ctx, userID)
	if userCart.IsEmpty() || userCart.StoreID == nil {
		return nil, fmt.Errorf("cart is empty")
	}

	// Load the store the cart is bound to
	var st store.Store
	if err := s.db.Where("id = ? AND is_active = ?", *userCart.StoreID, true).First(&st).Error; err != nil {
		return nil, fmt.Errorf("store not found or inactive: %w", err)
	}

	// Resolve the delivery fee, applying the new-customer discount
	discount := s.EvaluateDeliveryDiscount(userID, &st)
	deliveryFee := discount.OriginalFeeCents
	if discount.Eligible {
		deliveryFee = discount.DiscountedFeeCents
	}

	// Final pricing with the fee resolved
	lineItems := make([]pricing.LineItem, len(userCart.Items))
	for i, item := range userCart.Items {
		lineItems[i] = pricing.LineItem{
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		}
	}
	rates := pricing.Rates{GST: s.config.Tax.GSTRate, PST: s.config.Tax.PSTRate}
	platformFee := st.PlatformFee(s.config.Delivery.PlatformFeeCents)
	summary := pricing.Calculate(lineItems, rates, platformFee, &deliveryFee)

	language := req.Language
	if language == "" {
		language = s.config.App.DefaultLanguage
	}

	newOrder := Order{
		UserID:                userID,
		StoreID:               st.ID,
		StoreName:             st.Name,
		Status:                OrderStatusPending,
		SubtotalCents:         summary.SubtotalCents,
		GSTCents:              summary.GSTCents,
		PSTCents:              summary.PSTCents,
		TaxCents:              summary.TaxCents,
		PlatformFeeCents:      summary.PlatformFeeCents,
		DeliveryFeeCents:      deliveryFee,
		DeliveryDiscountCents: discount.OriginalFeeCents - deliveryFee,
		TotalCents:            summary.TotalCents,
		CustomerName:          req.CustomerName,
		CustomerPhone:         req.CustomerPhone,
		CustomerEmail:         req.CustomerEmail,
		DeliveryAddress:       req.DeliveryAddress,
		Language:              language,
		OrderNotes:            req.OrderNotes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newOrder).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		newOrder.OrderNumber = newOrder.GenerateOrderNumber()
		if err := tx.Model(&newOrder).Update("order_number", newOrder.OrderNumber).Error; err != nil {
			return fmt.Errorf("failed to update order number: %w", err)
		}

		for _, item := range userCart.Items {
			orderItem := OrderItem{
				OrderID:         newOrder.ID,
				ProductID:       item.ProductID,
				Name:            item.Name,
				Quantity:        item.Quantity,
				UnitPriceCents:  item.UnitPriceCents,
				TotalPriceCents: item.UnitPriceCents * int64(item.Quantity),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}

		history := OrderStatusHistory{
			OrderID:   newOrder.ID,
			Status:    OrderStatusPending,
			Comment:   "Order created",
			CreatedBy: userID,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to create status history: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Clear the cart; a failure here is logged, not fatal to the order
	s.cartService.Clear(ctx, userID)

	if err := s.db.Preload("Items").Preload("StatusHistory").First(&newOrder, newOrder.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load complete order: %w", err)
	}

	return &newOrder, nil
}

// GetOrder retrieves a single order by ID
func (s *Service) GetOrder(id uint) (*Order, error) {
	var o Order
	result := s.db.
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", id).
		First(&o)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}

	return &o, nil
}

// GetUserOrders retrieves a user's orders with pagination, newest first
func (s *Service) GetUserOrders(userID uint, req *OrderListRequest) (*OrderListResponse, error) {
	var orders []Order
	var total int64

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Order{}).
		Preload("Items").
		Where("user_id = ?", userID)

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	sortOrder := "desc"
	if req.SortOrder == "asc" {
		sortOrder = "asc"
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at " + sortOrder).Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &OrderListResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// UpdateOrderStatus applies a validated status transition and records it in
// the status history. Delivery timestamps are set when the matching status
// is reached.
func (s *Service) UpdateOrderStatus(orderID uint, status OrderStatus, comment string, updatedBy uint) error {
	var o Order
	if err := s.db.First(&o, orderID).Error; err != nil {
		return fmt.Errorf("order not found: %w", err)
	}

	if !ValidStatusTransition(o.Status, status) {
		return fmt.Errorf("invalid status transition from %s to %s", o.Status, status)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status": status,
	}
	switch status {
	case OrderStatusOutForDelivery:
		eta := now.Add(45 * time.Minute)
		updates["estimated_delivery_time"] = eta
	case OrderStatusDelivered:
		updates["delivered_at"] = now
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&o).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		history := OrderStatusHistory{
			OrderID:   orderID,
			Status:    status,
			Comment:   comment,
			CreatedBy: updatedBy,
			CreatedAt: now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to create status history: %w", err)
		}
		return nil
	})
}

// CancelOrder cancels an order if it has not been delivered yet
func (s *Service) CancelOrder(orderID uint, reason string, cancelledBy uint) error {
	var o Order
	if err := s.db.First(&o, orderID).Error; err != nil {
		return fmt.Errorf("order not found: %w", err)
	}

	if !o.CanBeCancelled() {
		return fmt.Errorf("order cannot be cancelled in current status: %s", o.Status)
	}

	return s.UpdateOrderStatus(orderID, OrderStatusCancelled, fmt.Sprintf("Order cancelled: %s", reason), cancelledBy)
}

// CountCompletedOrders counts a user's delivered orders, the basis for the
// new-customer delivery discount
func (s *Service) CountCompletedOrders(userID uint) (int, error) {
	var count int64
	err := s.db.Model(&Order{}).
		Where("user_id = ? AND status = ?", userID, OrderStatusDelivered).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count completed orders: %w", err)
	}
	return int(count), nil
}

// EvaluateDeliveryDiscount evaluates the new-customer delivery discount for
// a user ordering from the given store. A failed order count lookup fails
// closed to no discount.
func (s *Service) EvaluateDeliveryDiscount(userID uint, st *store.Store) pricing.Discount {
	baseFee := st.DeliveryFee(s.config.Delivery.BaseFeeCents)

	completed, err := s.CountCompletedOrders(userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("Completed order count failed, skipping delivery discount")
		return pricing.EvaluateDiscount(pricing.DiscountInput{
			CompletedOrders: 0,
			OriginalFee:     float64(baseFee),
			Percentage:      0,
			OrderLimit:      0,
		})
	}

	return pricing.EvaluateDiscount(pricing.DiscountInput{
		CompletedOrders: completed,
		OriginalFee:     float64(baseFee),
		Percentage:      s.config.Delivery.DiscountPercentage,
		OrderLimit:      s.config.Delivery.DiscountOrderCount,
	})
}
