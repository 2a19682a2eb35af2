// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/cart"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/checkout"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/order"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout quote endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) *CheckoutHandler {
	cartService := cart.NewService(cart.NewRedisStore(redisClient), cfg, log)
	orderService := order.NewService(db, cfg, cartService, log)
	return &CheckoutHandler{
		checkoutService: checkout.NewService(db, cfg, cartService, orderService, log),
		config:          cfg,
	}
}

// GetQuote handles GET /checkout/quote - the authoritative pre-order
// pricing preview, delivery discount included
func (h *CheckoutHandler) GetQuote(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	quote, err := h.checkoutService.GetQuote(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout quote computed successfully",
		"data":    quote,
	})
}
