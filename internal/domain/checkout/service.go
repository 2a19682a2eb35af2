// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/cart"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/order"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/pricing"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/store"
)

// Service produces pre-order quotes: the cart summary with the delivery
// fee resolved and the new-customer discount applied, computed server-side
// so the client never decides pricing
type Service struct {
	db           *gorm.DB
	config       *config.Config
	cartService  *cart.Service
	orderService *order.Service
	log          *logrus.Logger
}

// NewService creates a new checkout service
func NewService(db *gorm.DB, cfg *config.Config, cartService *cart.Service, orderService *order.Service, log *logrus.Logger) *Service {
	return &Service{
		db:           db,
		config:       cfg,
		cartService:  cartService,
		orderService: orderService,
		log:          log,
	}
}

// Quote is the authoritative checkout preview for a user's current cart
type Quote struct {
	StoreID   uint             `json:"store_id"`
	StoreName string           `json:"store_name"`
	Items     []cart.LineItem  `json:"items"`
	Summary   pricing.Summary  `json:"summary"`
	Discount  pricing.Discount `json:"delivery_discount"`
}

// GetQuote computes the checkout quote for the user's cart. The cart must
// be non-empty and bound to an active store.
func (s *Service) GetQuote(ctx context.Context, userID uint) (*Quote, error) {
	userCart := s.cartService.GetCart(ctx, userID)
	if userCart.IsEmpty() || userCart.StoreID == nil {
		return nil, fmt.Errorf("cart is empty")
	}

	var st store.Store
	if err := s.db.Where("id = ? AND is_active = ?", *userCart.StoreID, true).First(&st).Error; err != nil {
		return nil, fmt.Errorf("store not found or inactive: %w", err)
	}

	discount := s.orderService.EvaluateDeliveryDiscount(userID, &st)
	deliveryFee := discount.OriginalFeeCents
	if discount.Eligible {
		deliveryFee = discount.DiscountedFeeCents
	}

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

	return &Quote{
		StoreID:   st.ID,
		StoreName: st.Name,
		Items:     userCart.Items,
		Summary:   summary,
		Discount:  discount,
	}, nil
}
