// internal/domain/receipt/service.go
package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/order"
)

var (
	// ErrReceiptUnavailable is the single retryable error every generation
	// failure normalizes to: network error, non-2xx, success:false or a
	// response without a usable URL. The caller may retry at any time.
	ErrReceiptUnavailable = errors.New("receipt is currently unavailable")

	// ErrReceiptExpired means the signed URL has passed its validity window
	// and a new one must be generated before downloading
	ErrReceiptExpired = errors.New("receipt link has expired")

	// ErrGenerationInProgress means a generation request for this order is
	// already in flight
	ErrGenerationInProgress = errors.New("receipt generation already in progress")
)

// Service manages the receipt signed-URL lifecycle
type Service struct {
	db     *gorm.DB
	config *config.Config
	client *http.Client
	log    *logrus.Logger

	mu       sync.Mutex
	inFlight map[uint]struct{}
}

// NewService creates a new receipt service
func NewService(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		db:       db,
		config:   cfg,
		client:   &http.Client{Timeout: cfg.Receipt.Timeout},
		log:      log,
		inFlight: map[uint]struct{}{},
	}
}

// generateRequest is the wire format of the signed-URL endpoint
type generateRequest struct {
	OrderID  string `json:"orderId"`
	Language string `json:"language"`
}

// generateResponse is the endpoint's reply
type generateResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ReceiptURL  string `json:"receiptUrl"`
	OrderID     string `json:"orderId"`
	GeneratedAt string `json:"generatedAt"`
}

// Generate requests a signed receipt URL for an order and stores it with
// its 24-hour expiration window. Concurrent requests for the same order are
// rejected while one is in flight.
func (s *Service) Generate(ctx context.Context, orderID uint, language string) (*order.Order, error) {
	if !s.beginGeneration(orderID) {
		return nil, ErrGenerationInProgress
	}
	defer s.endGeneration(orderID)

	var o order.Order
	if err := s.db.First(&o, orderID).Error; err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	if language == "" {
		language = o.Language
	}

	url, err := s.requestSignedURL(ctx, &o, language)
	if err != nil {
		// Already logged with context; hand the caller the one retryable error
		return nil, ErrReceiptUnavailable
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.config.Receipt.URLTTL)
	updates := map[string]interface{}{
		"receipt_url":          url,
		"receipt_generated_at": now,
		"receipt_expires_at":   expiresAt,
	}
	if err := s.db.Model(&o).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to store receipt fields: %w", err)
	}

	o.ReceiptURL = url
	o.ReceiptGeneratedAt = &now
	o.ReceiptExpiresAt = &expiresAt
	return &o, nil
}

// IsExpired reports whether an order's receipt URL has expired. An order
// that never had a receipt generated is not considered expired.
func IsExpired(o *order.Order, now time.Time) bool {
	if o.ReceiptExpiresAt == nil {
		return false
	}
	return now.After(*o.ReceiptExpiresAt)
}

// DownloadURL returns the stored signed URL if it is still valid. Expired
// or missing URLs return ErrReceiptExpired so the caller can offer
// regeneration instead of opening a stale link.
func (s *Service) DownloadURL(o *order.Order) (string, error) {
	if o.ReceiptURL == "" {
		return "", ErrReceiptExpired
	}
	if IsExpired(o, time.Now().UTC()) {
		return "", ErrReceiptExpired
	}
	return o.ReceiptURL, nil
}

func (s *Service) requestSignedURL(ctx context.Context, o *order.Order, language string) (string, error) {
	endpoint := s.config.Receipt.Endpoint
	if endpoint == "" {
		s.log.WithField("order_id", o.ID).Error("Receipt endpoint is not configured")
		return "", fmt.Errorf("receipt endpoint not configured")
	}

	body, err := json.Marshal(generateRequest{
		OrderID:  o.OrderNumber,
		Language: language,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode receipt request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build receipt request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"endpoint": endpoint,
			"order_id": o.ID,
		}).Error("Receipt endpoint request failed")
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"status":   resp.StatusCode,
			"order_id": o.ID,
		}).Error("Receipt endpoint returned non-2xx status")
		return "", fmt.Errorf("receipt endpoint returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		s.log.WithError(err).WithField("order_id", o.ID).Error("Receipt endpoint response malformed")
		return "", err
	}

	if !out.Success || out.ReceiptURL == "" {
		s.log.WithFields(logrus.Fields{
			"order_id": o.ID,
			"message":  out.Message,
		}).Error("Receipt endpoint reported failure or returned no URL")
		return "", fmt.Errorf("receipt endpoint did not return a usable URL")
	}

	return out.ReceiptURL, nil
}

func (s *Service) beginGeneration(orderID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[orderID]; busy {
		return false
	}
	s.inFlight[orderID] = struct{}{}
	return true
}

func (s *Service) endGeneration(orderID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, orderID)
}
