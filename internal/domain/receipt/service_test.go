package receipt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/order"
)

func newTestService(endpoint string) *Service {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	cfg := &config.Config{
		Receipt: config.ReceiptConfig{
			Endpoint: endpoint,
			URLTTL:   24 * time.Hour,
			Timeout:  5 * time.Second,
		},
	}
	return NewService(nil, cfg, log)
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// No expiry set: never expired
	assert.False(t, IsExpired(&order.Order{}, now))

	future := now.Add(time.Hour)
	assert.False(t, IsExpired(&order.Order{ReceiptExpiresAt: &future}, now))

	past := now.Add(-time.Minute)
	assert.True(t, IsExpired(&order.Order{ReceiptExpiresAt: &past}, now))

	// Exactly at the boundary is still valid
	assert.False(t, IsExpired(&order.Order{ReceiptExpiresAt: &now}, now))
}

func TestDownloadURLBlocksExpiredReceipt(t *testing.T) {
	svc := newTestService("http://unused")

	past := time.Now().UTC().Add(-time.Hour)
	o := &order.Order{ReceiptURL: "https://signed.example.com/r/abc", ReceiptExpiresAt: &past}

	_, err := svc.DownloadURL(o)
	assert.ErrorIs(t, err, ErrReceiptExpired)
}

func TestDownloadURLReturnsValidReceipt(t *testing.T) {
	svc := newTestService("http://unused")

	future := time.Now().UTC().Add(time.Hour)
	o := &order.Order{ReceiptURL: "https://signed.example.com/r/abc", ReceiptExpiresAt: &future}

	url, err := svc.DownloadURL(o)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example.com/r/abc", url)
}

func TestDownloadURLWithoutReceipt(t *testing.T) {
	svc := newTestService("http://unused")

	_, err := svc.DownloadURL(&order.Order{})
	assert.ErrorIs(t, err, ErrReceiptExpired)
}

func TestRequestSignedURLSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"receiptUrl":"https://signed.example.com/r/abc","orderId":"LM-20250615-00042","generatedAt":"2025-06-15T12:00:00Z"}`))
	}))
	defer server.Close()

	svc := newTestService(server.URL)
	o := &order.Order{ID: 42, OrderNumber: "LM-20250615-00042", Language: "es"}

	url, err := svc.requestSignedURL(context.Background(), o, "es")
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example.com/r/abc", url)
}

func TestRequestSignedURLFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"non-2xx response",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			"success false",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false,"message":"order not found"}`))
			},
		},
		{
			"missing url",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":true,"receiptUrl":""}`))
			},
		},
		{
			"malformed body",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			svc := newTestService(server.URL)
			o := &order.Order{ID: 42, OrderNumber: "LM-20250615-00042"}

			_, err := svc.requestSignedURL(context.Background(), o, "en")
			assert.Error(t, err)
		})
	}
}

func TestRequestSignedURLNetworkFailure(t *testing.T) {
	// Closed server: connection refused
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := newTestService(server.URL)
	o := &order.Order{ID: 42, OrderNumber: "LM-20250615-00042"}

	_, err := svc.requestSignedURL(context.Background(), o, "en")
	assert.Error(t, err)
}

func TestRequestSignedURLUnconfiguredEndpoint(t *testing.T) {
	svc := newTestService("")
	o := &order.Order{ID: 42, OrderNumber: "LM-20250615-00042"}

	_, err := svc.requestSignedURL(context.Background(), o, "en")
	assert.Error(t, err)
}

func TestInFlightGuard(t *testing.T) {
	svc := newTestService("http://unused")

	require.True(t, svc.beginGeneration(42))
	// Second concurrent request for the same order is rejected
	assert.False(t, svc.beginGeneration(42))
	// Other orders are unaffected
	assert.True(t, svc.beginGeneration(43))

	svc.endGeneration(42)
	assert.True(t, svc.beginGeneration(42))
}
