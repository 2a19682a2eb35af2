// internal/domain/store/service.go
package store

import (
	"fmt"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
	"gorm.io/gorm"
)

// Service handles store and onboarding-lead business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new store service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateLeadRequest represents a store-onboarding application
type CreateLeadRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	ContactName  string `json:"contact_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	Message      string `json:"message"`
	Language     string `json:"language" binding:"omitempty,oneof=en es"`
}

// GetStores retrieves active stores
func (s *Service) GetStores() ([]Store, error) {
	var stores []Store
	if err := s.db.Where("is_active = ?", true).Order("name asc").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve stores: %w", err)
	}
	return stores, nil
}

// GetStore retrieves a single store by ID
func (s *Service) GetStore(id uint) (*Store, error) {
	var st Store
	result := s.db.Where("id = ? AND is_active = ?", id, true).First(&st)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("store not found")
		}
		return nil, fmt.Errorf("failed to retrieve store: %w", result.Error)
	}
	return &st, nil
}

// GetStoreBySlug retrieves a single store by slug
func (s *Service) GetStoreBySlug(slug string) (*Store, error) {
	var st Store
	result := s.db.Where("slug = ? AND is_active = ?", slug, true).First(&st)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("store not found")
		}
		return nil, fmt.Errorf("failed to retrieve store: %w", result.Error)
	}
	return &st, nil
}

// CreateLead records a store-onboarding application
func (s *Service) CreateLead(req *CreateLeadRequest) (*Lead, error) {
	language := req.Language
	if language == "" {
		language = s.config.App.DefaultLanguage
	}

	lead := Lead{
		BusinessName: req.BusinessName,
		ContactName:  req.ContactName,
		Email:        req.Email,
		Phone:        req.Phone,
		City:         req.City,
		Message:      req.Message,
		Language:     language,
		Status:       LeadStatusNew,
	}

	if err := s.db.Create(&lead).Error; err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	return &lead, nil
}
