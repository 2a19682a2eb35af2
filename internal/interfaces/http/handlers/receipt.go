// internal/interfaces/http/handlers/receipt.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/order"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/receipt"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/interfaces/http/middleware"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/pkg/pdf"
)

// ReceiptHandler handles receipt generation and download endpoints
type ReceiptHandler struct {
	db             *gorm.DB
	receiptService *receipt.Service
	pdfService     *pdf.Service
	config         *config.Config
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		db:             db,
		receiptService: receipt.NewService(db, cfg, log),
		pdfService:     pdf.NewService(cfg),
		config:         cfg,
	}
}

// GenerateReceipt handles POST /orders/:id/receipt
func (h *ReceiptHandler) GenerateReceipt(c *gin.Context) {
	o, ok := h.loadOwnedOrder(c)
	if !ok {
		return
	}

	var req struct {
		Language string `json:"language" binding:"omitempty,oneof=en es"`
	}
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	language := req.Language
	if language == "" {
		language = middleware.GetUserLanguageFromContext(c)
	}

	updated, err := h.receiptService.Generate(c.Request.Context(), o.ID, language)
	if err != nil {
		switch {
		case errors.Is(err, receipt.ErrGenerationInProgress):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Receipt generation already in progress for this order",
			})
		case errors.Is(err, receipt.ErrReceiptUnavailable):
			// Retryable: the upstream generator failed
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Receipt is currently unavailable. Please try again.",
			})
		default:
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Receipt generated successfully",
		"data": gin.H{
			"receipt_url":        updated.ReceiptURL,
			"receipt_expires_at": updated.ReceiptExpiresAt,
		},
	})
}

// DownloadReceipt handles GET /orders/:id/receipt
func (h *ReceiptHandler) DownloadReceipt(c *gin.Context) {
	o, ok := h.loadOwnedOrder(c)
	if !ok {
		return
	}

	url, err := h.receiptService.DownloadURL(o)
	if err != nil {
		// Expired or never generated: the client should request regeneration
		c.JSON(http.StatusGone, gin.H{
			"error": "Receipt link has expired. Generate a new one.",
			"code":  "receipt_expired",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Receipt retrieved successfully",
		"data": gin.H{
			"receipt_url":        url,
			"receipt_expires_at": o.ReceiptExpiresAt,
		},
	})
}

// RenderReceiptPDF handles GET /admin/orders/:id/receipt/pdf - server-side
// rendering for support staff, independent of the signed-URL pipeline
func (h *ReceiptHandler) RenderReceiptPDF(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	var o order.Order
	if err := h.db.Preload("Items").First(&o, uint(orderID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "order not found",
		})
		return
	}

	buf, err := h.pdfService.GenerateReceipt(&o)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to render receipt PDF",
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receipt-`+o.OrderNumber+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// loadOwnedOrder loads the order from the path parameter and enforces that
// it belongs to the authenticated user
func (h *ReceiptHandler) loadOwnedOrder(c *gin.Context) (*order.Order, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return nil, false
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return nil, false
	}

	var o order.Order
	if err := h.db.First(&o, uint(orderID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "order not found",
		})
		return nil, false
	}

	if o.UserID != userID && !middleware.IsAdminFromContext(c) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "order not found",
		})
		return nil, false
	}

	return &o, true
}
