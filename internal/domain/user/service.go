// internal/domain/user/service.go
package user

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/pkg/auth"
)

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
	log             *logrus.Logger
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
		log:             log,
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Phone           string `json:"phone"`
	Language        string `json:"language" binding:"omitempty,oneof=en es"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Register creates a new user account
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("passwords do not match")
	}

	var existingUser User
	result := s.db.Where("email = ?", req.Email).First(&existingUser)
	if result.Error == nil {
		return nil, fmt.Errorf("user with this email already exists")
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	language := req.Language
	if language == "" {
		language = s.config.App.DefaultLanguage
	}

	newUser := User{
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Language:  language,
		IsActive:  true,
		IsAdmin:   false,
	}

	if err := s.db.Create(&newUser).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(&newUser)
}

// Login authenticates a user
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var u User
	result := s.db.Where("email = ? AND is_active = ?", req.Email, true).First(&u)
	if result.Error != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueTokens(&u)
}

// RefreshToken generates new tokens using refresh token
func (s *Service) RefreshToken(refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	var u User
	result := s.db.Where("id = ? AND is_active = ?", claims.UserID, true).First(&u)
	if result.Error != nil {
		return nil, fmt.Errorf("user not found or inactive")
	}

	return s.issueTokens(&u)
}

// issueTokens generates an access/refresh token pair and records the login
func (s *Service) issueTokens(u *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID, u.Email, u.IsAdmin, u.Language)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now().UTC()
	u.LastLoginAt = &now
	s.db.Model(u).Update("last_login_at", now)

	// Clear password from response
	u.Password = ""

	return &AuthResponse{
		User:         u,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// GetProfile gets user profile by ID
func (s *Service) GetProfile(userID uint) (*User, error) {
	var u User
	result := s.db.Where("id = ? AND is_active = ?", userID, true).First(&u)
	if result.Error != nil {
		return nil, fmt.Errorf("user not found")
	}

	u.Password = ""
	return &u, nil
}

// UpdateProfile updates user profile
func (s *Service) UpdateProfile(userID uint, updates map[string]interface{}) (*User, error) {
	var u User
	result := s.db.Where("id = ? AND is_active = ?", userID, true).First(&u)
	if result.Error != nil {
		return nil, fmt.Errorf("user not found")
	}

	// Remove sensitive fields from updates
	delete(updates, "password")
	delete(updates, "is_admin")
	delete(updates, "is_active")
	delete(updates, "email_verified")

	if lang, ok := updates["language"].(string); ok && lang != "en" && lang != "es" {
		delete(updates, "language")
	}

	if err := s.db.Model(&u).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	u.Password = ""
	return &u, nil
}

// SetLanguage updates the user's preferred language
func (s *Service) SetLanguage(userID uint, language string) error {
	if language != "en" && language != "es" {
		return fmt.Errorf("unsupported language: %s", language)
	}
	return s.db.Model(&User{}).
		Where("id = ?", userID).
		Update("language", language).Error
}

// ChangePassword changes user password after verifying current password
func (s *Service) ChangePassword(userID uint, currentPassword, newPassword string) error {
	var u User
	result := s.db.Where("id = ? AND is_active = ?", userID, true).First(&u)
	if result.Error != nil {
		return fmt.Errorf("user not found")
	}

	if err := s.passwordManager.VerifyPassword(currentPassword, u.Password); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hashedPassword, err := s.passwordManager.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.db.Model(&u).Update("password", hashedPassword).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves user by email
func (s *Service) GetUserByEmail(email string) (*User, error) {
	var u User
	result := s.db.Where("email = ?", email).First(&u)
	if result.Error != nil {
		return nil, fmt.Errorf("user not found")
	}

	u.Password = ""
	return &u, nil
}
