// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Development fallback for the receipt endpoint. Staging and production
// must provide RECEIPT_ENDPOINT explicitly.
const devReceiptEndpoint = "http://localhost:5001/lulo-market-dev/us-central1/generateReceipt"

// Config holds all configuration for our application
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Security SecurityConfig
	Tax      TaxConfig
	Delivery DeliveryConfig
	Receipt  ReceiptConfig
	Stripe   StripeConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name            string
	Version         string
	Environment     string
	Debug           bool
	DefaultLanguage string // "en" or "es"
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// JWTConfig contains JWT token configuration
type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	BcryptCost         int
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
}

// TaxConfig contains the jurisdiction tax rates applied at checkout.
// Defaults are the British Columbia split: 5% GST + 7% PST.
type TaxConfig struct {
	GSTRate float64
	PSTRate float64
}

// DeliveryConfig contains delivery fee and new-customer discount configuration
type DeliveryConfig struct {
	BaseFeeCents     int64
	PlatformFeeCents int64
	// First-N-orders delivery discount for new customers
	DiscountPercentage float64
	DiscountOrderCount int
}

// ReceiptConfig contains the signed-URL receipt endpoint configuration
type ReceiptConfig struct {
	Endpoint string
	// Signed URLs are valid for this long after issuance
	URLTTL  time.Duration
	Timeout time.Duration
}

// StripeConfig contains Stripe Connect configuration. Payment capture is
// owned by the hosted processor; only the keys pass through here.
type StripeConfig struct {
	SecretKey      string
	PublishableKey string
	WebhookSecret  string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "Lulo Market API"),
			Version:         getEnv("APP_VERSION", "1.0.0"),
			Environment:     getEnv("APP_ENV", "development"),
			Debug:           getEnvAsBool("APP_DEBUG", true),
			DefaultLanguage: getEnv("APP_DEFAULT_LANGUAGE", "es"),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "lulo_market"),
			User:         getEnv("DB_USER", "lulo"),
			Password:     getEnv("DB_PASSWORD", "lulo_password"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-in-production"),
			AccessTokenExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRE", 24*time.Hour),
			RefreshTokenExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRE", 7*24*time.Hour),
		},
		Security: SecurityConfig{
			BcryptCost:         getEnvAsInt("BCRYPT_COST", 12),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
		},
		Tax: TaxConfig{
			GSTRate: getEnvAsFloat("TAX_GST_RATE", 0.05),
			PSTRate: getEnvAsFloat("TAX_PST_RATE", 0.07),
		},
		Delivery: DeliveryConfig{
			BaseFeeCents:       getEnvAsInt64("DELIVERY_BASE_FEE_CENTS", 499),
			PlatformFeeCents:   getEnvAsInt64("PLATFORM_FEE_CENTS", 99),
			DiscountPercentage: getEnvAsFloat("DELIVERY_DISCOUNT_PERCENTAGE", 0.5),
			DiscountOrderCount: getEnvAsInt("DELIVERY_DISCOUNT_ORDER_COUNT", 3),
		},
		Receipt: ReceiptConfig{
			Endpoint: getEnv("RECEIPT_ENDPOINT", ""),
			URLTTL:   getEnvAsDuration("RECEIPT_URL_TTL", 24*time.Hour),
			Timeout:  getEnvAsDuration("RECEIPT_TIMEOUT", 15*time.Second),
		},
		Stripe: StripeConfig{
			SecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
			PublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
			WebhookSecret:  getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Development gets a local receipt endpoint fallback
	if config.Receipt.Endpoint == "" && config.IsDevelopment() {
		config.Receipt.Endpoint = devReceiptEndpoint
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate JWT secret
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	// Validate database configuration
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}

	// Validate Redis configuration
	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	// Validate server port
	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	// Tax rates must be sane fractions
	if c.Tax.GSTRate < 0 || c.Tax.GSTRate >= 1 {
		return fmt.Errorf("TAX_GST_RATE must be in [0, 1)")
	}
	if c.Tax.PSTRate < 0 || c.Tax.PSTRate >= 1 {
		return fmt.Errorf("TAX_PST_RATE must be in [0, 1)")
	}

	if c.Delivery.DiscountPercentage < 0 || c.Delivery.DiscountPercentage > 1 {
		return fmt.Errorf("DELIVERY_DISCOUNT_PERCENTAGE must be between 0 and 1")
	}

	// A missing receipt endpoint outside development is logged, not fatal:
	// receipt generation degrades to a retryable error at request time
	if c.Receipt.Endpoint == "" && !c.IsDevelopment() {
		log.Printf("Warning: RECEIPT_ENDPOINT is not set in %s mode; receipt generation will fail until configured", c.App.Environment)
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
