package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yigit/curso/internal/pkg/apperrors"
	"github.com/yigit/curso/internal/pkg/logger"
)

// RateLimiter counts requests per client in fixed Redis windows
type RateLimiter struct {
	redisClient *redis.Client
}

// NewRateLimiter creates a new RateLimiter
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{redisClient: client}
}

// Limit allows at most limit requests per client ip per window.
// Redis failures let the request through.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.redisClient == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.ClientIP())

		count, err := rl.redisClient.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		// First hit opens the window
		if count == 1 {
			if err := rl.redisClient.Expire(c.Request.Context(), key, window).Err(); err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("Failed to set rate limit window")
			}
		}

		if count > int64(limit) {
			HandleError(c, apperrors.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
