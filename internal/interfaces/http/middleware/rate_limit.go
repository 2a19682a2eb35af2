// internal/interfaces/http/middleware/rate_limit.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
)

// RateLimit enforces a per-IP fixed-window limit backed by Redis. The
// counter is incremented atomically before the check, so concurrent
// requests cannot slip past the limit between a read and a write. When
// Redis is unreachable the request is allowed rather than failing closed.
func RateLimit(cfg *config.Config, redisClient *redis.Client, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s", c.ClientIP())
		limit := cfg.Security.RateLimitPerMinute

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		// ExpireNX starts the window on the first hit of the minute only
		pipe := redisClient.TxPipeline()
		count := pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, time.Minute)
		if _, err := pipe.Exec(ctx); err != nil {
			log.WithError(err).WithField("client_ip", c.ClientIP()).Warn("Rate limit counter unavailable, allowing request")
			c.Next()
			return
		}

		current := int(count.Val())
		if current > limit {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limit-current))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))

		c.Next()
	}
}
