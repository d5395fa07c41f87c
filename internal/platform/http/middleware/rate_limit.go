package middleware

import (
	"log/slog"
	"net/http"

	"blog_backend/internal/shared/ratelimiter"

	"github.com/gin-gonic/gin"
)

// RateLimit answers 429 when the client IP has used up its allowance.
func RateLimit(limiter ratelimiter.RateLimiterInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.Allow(ip) {
			slog.Warn("rate limit exceeded", "remote_addr", ip, "path", c.Request.URL.Path)
			c.Header("Retry-After", "60")
			c.String(http.StatusTooManyRequests, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
