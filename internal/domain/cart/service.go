// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/pricing"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/product"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/store"
)

// ErrStoreMismatch is returned when an item from a different store is added
// to a non-empty cart. Callers are expected to consult CanAddToCart first
// and prompt the customer to clear the cart.
var ErrStoreMismatch = errors.New("cart is bound to a different store")

// Service handles cart business logic
type Service struct {
	snapshots SnapshotStore
	config    *config.Config
	log       *logrus.Logger
}

// NewService creates a new cart service
func NewService(snapshots SnapshotStore, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		snapshots: snapshots,
		config:    cfg,
		log:       log,
	}
}

// GetCart loads a user's cart. A missing or corrupted snapshot degrades to
// an empty cart; this never returns an error for bad persisted data.
func (s *Service) GetCart(ctx context.Context, userID uint) *Cart {
	data, found, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("Cart snapshot load failed, starting empty")
		return s.emptyCart()
	}
	if !found {
		return s.emptyCart()
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("Cart snapshot corrupted, starting empty")
		return s.emptyCart()
	}

	// Items without a store binding cannot satisfy the single-store rule;
	// such a snapshot is as corrupt as unparseable JSON
	if !c.IsEmpty() && c.StoreID == nil {
		s.log.WithField("user_id", userID).Warn("Cart snapshot has items but no store binding, starting empty")
		return s.emptyCart()
	}

	// Summary is derived data: always recompute on read
	c.Recompute(s.rates())
	return &c
}

// CanAddToCart reports whether an item from the given store may be added.
// An empty cart accepts any store.
func (s *Service) CanAddToCart(ctx context.Context, userID, storeID uint) bool {
	return s.GetCart(ctx, userID).BoundTo(storeID)
}

// AddItem adds a product to the cart, binding the cart to the product's
// store. Adding the same product again increments its quantity.
func (s *Service) AddItem(ctx context.Context, userID uint, prod *product.Product, st *store.Store, quantity int) (*Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	c := s.GetCart(ctx, userID)
	if !c.BoundTo(st.ID) {
		return nil, ErrStoreMismatch
	}

	now := time.Now().UTC()
	found := false
	for i := range c.Items {
		if c.Items[i].ProductID == prod.ID {
			c.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		c.Items = append(c.Items, LineItem{
			ProductID:      prod.ID,
			Name:           prod.Name,
			UnitPriceCents: prod.PriceCents,
			Quantity:       quantity,
			AddedAt:        now,
		})
	}

	if c.StoreID == nil {
		storeID := st.ID
		c.StoreID = &storeID
		c.StoreName = st.Name
		c.PlatformFeeCents = st.PlatformFee(s.config.Delivery.PlatformFeeCents)
	}

	s.commit(ctx, userID, c)
	return c, nil
}

// UpdateQuantity sets the quantity of a line item. A quantity of zero or
// less removes the item. Unknown product IDs are a no-op.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID uint, quantity int) *Cart {
	c := s.GetCart(ctx, userID)

	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		if c.IsEmpty() {
			c.unbind()
		}
		s.commit(ctx, userID, c)
		return c
	}

	return c
}

// RemoveItem removes a line item. Unknown product IDs are a no-op.
func (s *Service) RemoveItem(ctx context.Context, userID, productID uint) *Cart {
	return s.UpdateQuantity(ctx, userID, productID, 0)
}

// Clear empties the cart and removes the store binding
func (s *Service) Clear(ctx context.Context, userID uint) *Cart {
	c := s.emptyCart()
	if err := s.snapshots.Delete(ctx, userID); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("Cart snapshot delete failed")
	}
	return c
}

// commit recomputes the summary and writes the snapshot through. A write
// failure is logged, not surfaced: the mutated cart is still returned and
// keeps working for this request.
func (s *Service) commit(ctx context.Context, userID uint, c *Cart) {
	c.UpdatedAt = time.Now().UTC()
	c.Recompute(s.rates())

	data, err := json.Marshal(c)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("Cart snapshot marshal failed")
		return
	}
	if err := s.snapshots.Save(ctx, userID, data); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("Cart snapshot save failed")
	}
}

func (s *Service) emptyCart() *Cart {
	c := &Cart{Items: []LineItem{}}
	c.Recompute(s.rates())
	return c
}

func (s *Service) rates() pricing.Rates {
	return pricing.Rates{
		GST: s.config.Tax.GSTRate,
		PST: s.config.Tax.PSTRate,
	}
}

func (c *Cart) unbind() {
	c.StoreID = nil
	c.StoreName = ""
	c.PlatformFeeCents = 0
}
