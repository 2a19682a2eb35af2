// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/pricing"
)

// LineItem represents a single product line in the cart. The unit price is
// captured at the time the item was added and does not track later price
// changes.
type LineItem struct {
	ProductID      uint      `json:"product_id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	AddedAt        time.Time `json:"added_at"`
}

// Cart holds a customer's line items. All items belong to a single store;
// switching stores empties the cart rather than merging. Summary is derived
// and recomputed from the items on every read.
type Cart struct {
	StoreID          *uint           `json:"store_id"`
	StoreName        string          `json:"store_name"`
	PlatformFeeCents int64           `json:"platform_fee_cents"`
	Items            []LineItem      `json:"items"`
	Summary          pricing.Summary `json:"summary"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// BoundTo reports whether the cart is bound to the given store. An empty
// cart is bound to no store and accepts any; a cart holding items without a
// store binding is inconsistent and accepts none.
func (c *Cart) BoundTo(storeID uint) bool {
	if c.IsEmpty() {
		return true
	}
	if c.StoreID == nil {
		return false
	}
	return *c.StoreID == storeID
}

// Recompute refreshes the derived summary from the current items. The
// delivery fee stays unresolved (nil) until checkout.
func (c *Cart) Recompute(rates pricing.Rates) {
	items := make([]pricing.LineItem, len(c.Items))
	for i, item := range c.Items {
		items[i] = pricing.LineItem{
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		}
	}

	platformFee := c.PlatformFeeCents
	if len(c.Items) == 0 {
		platformFee = 0
	}

	c.Summary = pricing.Calculate(items, rates, platformFee, nil)
}
