// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/cart"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/product"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/store"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService    *cart.Service
	productService *product.Service
	storeService   *store.Service
	config         *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) *CartHandler {
	return &CartHandler{
		cartService:    cart.NewService(cart.NewRedisStore(redisClient), cfg, log),
		productService: product.NewService(db, cfg),
		storeService:   store.NewService(db, cfg),
		config:         cfg,
	}
}

// AddToCartRequest represents the add-to-cart payload
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	userCart := h.cartService.GetCart(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    userCart,
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	prod, err := h.productService.GetProduct(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	st, err := h.storeService.GetStore(prod.StoreID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	userCart, err := h.cartService.AddItem(c.Request.Context(), userID, prod, st, req.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrStoreMismatch) {
			// The client should prompt the customer to clear the cart first
			c.JSON(http.StatusConflict, gin.H{
				"error": "Your cart contains items from another store. Clear it to order from this store.",
				"code":  "store_mismatch",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    userCart,
	})
}

// CanAddToCart handles GET /cart/can-add/:storeId - store binding pre-check
func (h *CartHandler) CanAddToCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	storeID, err := strconv.ParseUint(c.Param("storeId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid store ID",
		})
		return
	}

	allowed := h.cartService.CanAddToCart(c.Request.Context(), userID, uint(storeID))

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"can_add": allowed,
		},
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	userCart := h.cartService.UpdateQuantity(c.Request.Context(), userID, uint(productID), req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    userCart,
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	userCart := h.cartService.RemoveItem(c.Request.Context(), userID, uint(productID))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    userCart,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	userCart := h.cartService.Clear(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    userCart,
	})
}
