// internal/interfaces/http/handlers/order.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/cart"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/order"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/interfaces/http/middleware"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService *order.Service
	config       *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) *OrderHandler {
	cartService := cart.NewService(cart.NewRedisStore(redisClient), cfg, log)
	return &OrderHandler{
		orderService: order.NewService(db, cfg, cartService, log),
		config:       cfg,
	}
}

// CreateOrder handles POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	newOrder, err := h.orderService.CreateOrder(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    newOrder,
	})
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req order.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	resp, err := h.orderService.GetUserOrders(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    resp,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	o, err := h.orderService.GetOrder(uint(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	// Customers can only see their own orders
	if o.UserID != userID && !middleware.IsAdminFromContext(c) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "order not found",
		})
		return
	}

	language := middleware.GetUserLanguageFromContext(c)
	if language == "" {
		language = o.Language
	}
	presentation := order.PresentationFor(o.Status)

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data": gin.H{
			"order": o,
			"status_presentation": gin.H{
				"status": presentation.Status,
				"icon":   presentation.Icon,
				"color":  presentation.Color,
				"label":  presentation.Label(language),
			},
		},
	})
}

// CancelOrder handles PUT /orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	o, err := h.orderService.GetOrder(uint(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	if o.UserID != userID && !middleware.IsAdminFromContext(c) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "order not found",
		})
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.orderService.CancelOrder(uint(orderID), req.Reason, userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
	})
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	updatedBy, _ := middleware.GetUserIDFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	var req struct {
		Status  order.OrderStatus `json:"status" binding:"required"`
		Comment string            `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.orderService.UpdateOrderStatus(uint(orderID), req.Status, req.Comment, updatedBy); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
	})
}

// GetStatusPresentations handles GET /orders/statuses - the full status
// display catalog for client rendering
func (h *OrderHandler) GetStatusPresentations(c *gin.Context) {
	language := middleware.GetUserLanguageFromContext(c)
	if language == "" {
		language = h.config.App.DefaultLanguage
	}

	statuses := []order.OrderStatus{
		order.OrderStatusPending, order.OrderStatusConfirmed,
		order.OrderStatusPreparing, order.OrderStatusReady,
		order.OrderStatusOutForDelivery, order.OrderStatusDelivered,
		order.OrderStatusCancelled,
	}

	out := make([]gin.H, 0, len(statuses))
	for _, status := range statuses {
		p := order.PresentationFor(status)
		out = append(out, gin.H{
			"status": p.Status,
			"icon":   p.Icon,
			"color":  p.Color,
			"label":  p.Label(language),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data": out,
	})
}
