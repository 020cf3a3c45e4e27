package ratelimit

import (
	"fmt"
	"net/http"
	"strings"

	"busly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Middleware applies the rate limiter to every request, classifying
// routes into budget classes by path.
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		// Determine rate limit type from route
		limitType := getRateLimitType(c.FullPath())

		// Check rate limit
		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Rate limit check failed", nil)
			c.Abort()
			return
		}

		// Set rate limit headers
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		// Check if rate limited
		if !result.Allowed {
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded", map[string]interface{}{
				"limit":      result.Limit,
				"reset_time": result.ResetTime,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func getRateLimitType(path string) RateLimitType {
	switch {
	// Health/monitoring endpoints
	case strings.HasPrefix(path, "/health"),
		strings.HasPrefix(path, "/ping"),
		strings.HasPrefix(path, "/status"):
		return RateLimitTypeHealth

	// Reservation writes hit the remote service; keep these tight
	case strings.Contains(path, "/bookings"),
		strings.Contains(path, "/seats"):
		return RateLimitTypeBooking

	case strings.Contains(path, "/cancellations"):
		return RateLimitTypeCancellation

	// Route search and ticket lookups
	case strings.Contains(path, "/routes"),
		strings.Contains(path, "/tickets"):
		return RateLimitTypePublic

	default:
		return RateLimitTypeDefault
	}
}
