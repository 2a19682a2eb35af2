// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents the user entity
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Email         string         `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password      string         `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	FirstName     string         `gorm:"size:100" json:"first_name"`
	LastName      string         `gorm:"size:100" json:"last_name"`
	Phone         string         `gorm:"size:20" json:"phone"`
	Language      string         `gorm:"size:2;default:'es'" json:"language"` // "en" or "es"
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	IsAdmin       bool           `gorm:"default:false" json:"is_admin"`
	EmailVerified bool           `gorm:"default:false" json:"email_verified"`
	LastLoginAt   *time.Time     `json:"last_login_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to handle business logic before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Email should be lowercase
	u.Email = strings.ToLower(u.Email)
	if u.Language != "en" && u.Language != "es" {
		u.Language = "es"
	}
	return nil
}

// GetFullName returns the user's full name
func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// GetDisplayName returns display name (full name or email)
func (u *User) GetDisplayName() string {
	fullName := u.GetFullName()
	if fullName != "" {
		return fullName
	}
	return u.Email
}
