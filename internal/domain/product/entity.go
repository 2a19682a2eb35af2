// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a product offered by a marketplace store
type Product struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	StoreID       uint           `gorm:"not null;index" json:"store_id"`
	Name          string         `gorm:"not null;size:255" json:"name"`
	NameES        string         `gorm:"size:255" json:"name_es"`
	Description   string         `gorm:"type:text" json:"description"`
	DescriptionES string         `gorm:"type:text" json:"description_es"`
	PriceCents    int64          `gorm:"not null" json:"price_cents"`
	ImageURL      string         `gorm:"size:500" json:"image_url"`
	Category      string         `gorm:"size:100;index" json:"category"`
	IsAvailable   bool           `gorm:"default:true" json:"is_available"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// LocalizedName returns the product name for the requested language,
// falling back to the default name when no translation exists
func (p *Product) LocalizedName(language string) string {
	if language == "es" && p.NameES != "" {
		return p.NameES
	}
	return p.Name
}
