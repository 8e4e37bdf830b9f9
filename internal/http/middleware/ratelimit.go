package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yungbote/addressbook-backend/internal/http/response"
	"github.com/yungbote/addressbook-backend/internal/platform/logger"
)

// RateLimit caps the process-wide request rate. rps <= 0 disables it.
func RateLimit(log *logger.Logger, rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst <= 0 {
		burst = 10
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			if log != nil {
				log.Warn("rate limit exceeded", "path", c.Request.URL.Path, "remote_addr", c.ClientIP())
			}
			c.Abort()
			response.RespondError(c, http.StatusTooManyRequests, "rate_limited", nil)
			return
		}
		c.Next()
	}
}
