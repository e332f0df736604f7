package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Limiter decides whether one more request for key is allowed.
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

// RateLimit refuses requests beyond the limiter's quota per client IP with
// 429 and a Retry-After header.
func RateLimit(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retry := l.Allow(c.ClientIP())
		if !ok {
			seconds := int(math.Ceil(retry.Seconds()))
			slog.Warn("rate limit hit", "path", c.FullPath(), "remote_addr", c.ClientIP())
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Trop de requêtes"})
			return
		}
		c.Next()
	}
}
