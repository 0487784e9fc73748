package middleware

import (
	"net/http"
	"time"

	"github.com/crm/backend/internal/infrastructure/ratelimit"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// IPRateLimit bounds request volume per client IP across all routes.
// This is a coarse abuse guard; the per-(provider, user) limiter in the
// search path enforces the provider quota budget.
func IPRateLimit(limit int, window time.Duration) gin.HandlerFunc {
	limiter := ratelimit.NewFixedWindowLimiter(limit, window)
	return func(c *gin.Context) {
		if !limiter.AllowKey(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse(dto.ErrCodeRateLimited, "Too many requests"))
			return
		}
		c.Next()
	}
}

// BodyLimit caps request body size. Oversized bodies fail inside the
// handlers' binding step with a read error.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
