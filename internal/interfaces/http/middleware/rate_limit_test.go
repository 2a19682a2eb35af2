// internal/interfaces/http/middleware/rate_limit_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
)

func TestRateLimitAllowsRequestWhenRedisUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Security: config.SecurityConfig{RateLimitPerMinute: 10},
	}
	// Nothing listens here; every counter update fails
	unreachable := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	router := gin.New()
	router.Use(RateLimit(cfg, unreachable, log))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}
