package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/infrastructure/config"
	"github.com/pantrychef/v1/internal/ports/outbound"
)

// RateLimit enforces a per-client fixed window limit backed by the
// cache repository, so the count survives restarts and is shared
// between replicas when Redis is behind it. A cache failure lets the
// request through; availability wins over strictness here.
func RateLimit(cache outbound.CacheRepository, cfg config.RateLimitConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enable {
			c.Next()
			return
		}

		window := cfg.Window
		if window <= 0 {
			window = time.Minute
		}
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix()/int64(window.Seconds()))

		count, err := cache.Increment(c.Request.Context(), key, window)
		if err != nil {
			logger.Warn("Rate limit counter unavailable",
				zap.String("ip", c.ClientIP()),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if count > int64(cfg.RequestsPerMin) {
			logger.Info("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
				zap.Int64("count", count),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests",
				"retry_after": window.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
