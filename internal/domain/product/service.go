// internal/domain/product/service.go
package product

import (
	"fmt"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
	"gorm.io/gorm"
)

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// GetStoreProducts retrieves available products for a store
func (s *Service) GetStoreProducts(storeID uint) ([]Product, error) {
	var products []Product
	err := s.db.
		Where("store_id = ? AND is_available = ?", storeID, true).
		Order("category asc, name asc").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve store products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a single available product
func (s *Service) GetProduct(id uint) (*Product, error) {
	var prod Product
	result := s.db.Where("id = ? AND is_available = ?", id, true).First(&prod)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &prod, nil
}
