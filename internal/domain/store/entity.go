// internal/domain/store/entity.go
package store

import (
	"time"

	"gorm.io/gorm"
)

// Store represents a restaurant or food store on the marketplace
type Store struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"not null;size:255" json:"name"`
	Slug          string `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description   string `gorm:"type:text" json:"description"`
	DescriptionES string `gorm:"type:text" json:"description_es"`

	// Contact and location
	Email        string `gorm:"size:255" json:"email"`
	Phone        string `gorm:"size:20" json:"phone"`
	AddressLine1 string `gorm:"size:255" json:"address_line1"`
	City         string `gorm:"size:100" json:"city"`
	Province     string `gorm:"size:2" json:"province"`
	PostalCode   string `gorm:"size:10" json:"postal_code"`

	// Per-store fee overrides, in cents. Nil means the platform default applies.
	PlatformFeeCents *int64 `json:"platform_fee_cents"`
	DeliveryFeeCents *int64 `json:"delivery_fee_cents"`

	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Lead represents a store-onboarding application from a prospective seller
type Lead struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BusinessName string     `gorm:"not null;size:255" json:"business_name"`
	ContactName  string     `gorm:"not null;size:255" json:"contact_name"`
	Email        string     `gorm:"not null;size:255" json:"email"`
	Phone        string     `gorm:"size:20" json:"phone"`
	City         string     `gorm:"size:100" json:"city"`
	Message      string     `gorm:"type:text" json:"message"`
	Language     string     `gorm:"size:2;default:'es'" json:"language"`
	Status       LeadStatus `gorm:"not null;default:'new'" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// LeadStatus represents the state of an onboarding application
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusDeclined  LeadStatus = "declined"
)

// TableName overrides
func (Store) TableName() string { return "stores" }
func (Lead) TableName() string  { return "potential_leads" }

// PlatformFee returns the store's platform fee, falling back to the
// platform-wide default when the store has no override
func (s *Store) PlatformFee(defaultCents int64) int64 {
	if s.PlatformFeeCents != nil {
		return *s.PlatformFeeCents
	}
	return defaultCents
}

// DeliveryFee returns the store's delivery fee, falling back to the
// platform-wide base fee when the store has no override
func (s *Store) DeliveryFee(defaultCents int64) int64 {
	if s.DeliveryFeeCents != nil {
		return *s.DeliveryFeeCents
	}
	return defaultCents
}
