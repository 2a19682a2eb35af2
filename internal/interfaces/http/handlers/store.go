// internal/interfaces/http/handlers/store.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/product"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/store"
)

// StoreHandler handles store and menu endpoints
type StoreHandler struct {
	storeService   *store.Service
	productService *product.Service
	config         *config.Config
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(db *gorm.DB, cfg *config.Config) *StoreHandler {
	return &StoreHandler{
		storeService:   store.NewService(db, cfg),
		productService: product.NewService(db, cfg),
		config:         cfg,
	}
}

// GetStores handles GET /stores
func (h *StoreHandler) GetStores(c *gin.Context) {
	stores, err := h.storeService.GetStores()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve stores",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stores retrieved successfully",
		"data":    stores,
	})
}

// GetStore handles GET /stores/:id
func (h *StoreHandler) GetStore(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid store ID",
		})
		return
	}

	st, err := h.storeService.GetStore(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store retrieved successfully",
		"data":    st,
	})
}

// GetStoreBySlug handles GET /stores/slug/:slug
func (h *StoreHandler) GetStoreBySlug(c *gin.Context) {
	st, err := h.storeService.GetStoreBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store retrieved successfully",
		"data":    st,
	})
}

// GetStoreProducts handles GET /stores/:id/products
func (h *StoreHandler) GetStoreProducts(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid store ID",
		})
		return
	}

	products, err := h.productService.GetStoreProducts(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve store products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// CreateLead handles POST /leads - store onboarding applications
func (h *StoreHandler) CreateLead(c *gin.Context) {
	var req store.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	lead, err := h.storeService.CreateLead(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to submit application",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Application submitted successfully",
		"data":    lead,
	})
}
