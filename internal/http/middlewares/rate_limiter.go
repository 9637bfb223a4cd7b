package middlewares

import (
	"log/slog"
	"math"
	"net"
	"strconv"
	"time"

	"github.com/Marco21c/backend-noticias/internal/apperr"
	"github.com/Marco21c/backend-noticias/internal/observability"
	"github.com/Marco21c/backend-noticias/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// RateLimit rejects requests once limiter refuses the key derived by keyFn.
// Limiter failures let the request through.
func RateLimit(name string, limiter ratelimit.Limiter, keyFn func(*gin.Context) string, prom *observability.Prom) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		if key == "" {
			// fallback to IP if key cannot be derived
			key = clientIP(c)
		}

		ok, retryAfter, err := limiter.Allow(c.Request.Context(), name+":"+key)
		if err != nil {
			slog.Default().WarnContext(c.Request.Context(), "rate limiter unavailable",
				"limiter", name,
				"err", err,
			)
			c.Next()
			return
		}

		if !ok {
			if prom != nil {
				prom.RateLimited.WithLabelValues(name).Inc()
			}
			c.Header("Retry-After", strconv.Itoa(retrySeconds(retryAfter)))
			c.Error(apperr.ErrRateLimited)
			c.Abort()
			return
		}

		c.Next()
	}
}

func retrySeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// for unauthenticated endpoints: rate limit by IP
func KeyByIP(c *gin.Context) string {
	return clientIP(c)
}

func clientIP(c *gin.Context) string {
	// Gin's ClientIP respects X-Forwarded-For / X-Real-IP if configured.
	ip := c.ClientIP()

	host, _, err := net.SplitHostPort(ip)

	if err == nil && host != "" {
		return host
	}

	return ip
}
